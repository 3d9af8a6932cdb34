package main

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"fieldnotes/internal/entity"
	"fieldnotes/pkg/gallery"
	"fieldnotes/pkg/imaging"
)

func loadImageFiles(paths []string) ([]imaging.File, error) {
	files := make([]imaging.File, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}

		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}

		mimeType := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
		if mimeType == "" {
			mimeType = "application/octet-stream"
		}

		files = append(files, imaging.File{
			Name:     filepath.Base(path),
			Data:     data,
			MimeType: mimeType,
			ModTime:  info.ModTime(),
		})
	}
	return files, nil
}

func compressBatch(files []imaging.File, opts imaging.Options) []imaging.File {
	if len(files) == 0 {
		return files
	}

	fmt.Printf("Compressing %d image(s)...\n", len(files))
	return imaging.CompressAll(files, opts, func(percent, completed, total int) {
		fmt.Printf("  %3d%% (%d/%d)\n", percent, completed, total)
	})
}

func compressOptions(quality, targetKB int, watermark string) imaging.Options {
	opts := imaging.DefaultOptions()
	if quality > 0 {
		opts.Quality = quality
	}
	if targetKB > 0 {
		opts.TargetSizeKB = targetKB
	}
	opts.Watermark = watermark
	return opts
}

// existingRecords converts a post's stored images into durable collection
// records, sorted by their stored display order.
func existingRecords(images []entity.PostImage) []gallery.ImageRecord {
	sorted := make([]entity.PostImage, len(images))
	copy(sorted, images)
	sort.Slice(sorted, func(a, b int) bool { return sorted[a].Order < sorted[b].Order })

	records := make([]gallery.ImageRecord, len(sorted))
	for i, img := range sorted {
		records[i] = gallery.ImageRecord{
			ID:       img.ID,
			Filename: img.Filename,
			URL:      img.URL,
			Size:     img.Size,
			MimeType: img.MimeType,
			Order:    i,
			Source:   gallery.DurableSource{Path: img.Path},
		}
	}
	return records
}
