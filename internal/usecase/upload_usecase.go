package usecase

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"fieldnotes/pkg/gallery"
	"fieldnotes/pkg/logger"
)

var (
	ErrNoFiles      = errors.New("at least one file is required")
	ErrTooManyFiles = errors.New("too many files")
	ErrFileTooLarge = errors.New("file exceeds the size limit")
	ErrBadFileType  = errors.New("unsupported file type")
)

var allowedMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// UploadFile is one incoming multipart file, already read into memory.
type UploadFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

type UploadUseCase interface {
	UploadImages(files []UploadFile) ([]gallery.UploadedImage, error)
}

type uploadUseCase struct {
	storage  ObjectStorage
	maxFiles int
	maxBytes int64
	logger   *logger.Logger
}

func NewUploadUseCase(storage ObjectStorage, maxFiles int, maxBytes int64, logger *logger.Logger) UploadUseCase {
	return &uploadUseCase{
		storage:  storage,
		maxFiles: maxFiles,
		maxBytes: maxBytes,
		logger:   logger,
	}
}

// UploadImages validates and stores the batch, returning one descriptor per
// file in the order the files were given. The whole batch is rejected before
// any upload starts if any file fails validation.
func (uc *uploadUseCase) UploadImages(files []UploadFile) ([]gallery.UploadedImage, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	if len(files) > uc.maxFiles {
		return nil, fmt.Errorf("%w: got %d, maximum is %d", ErrTooManyFiles, len(files), uc.maxFiles)
	}

	for _, f := range files {
		if int64(len(f.Data)) > uc.maxBytes {
			return nil, fmt.Errorf("%w: %s", ErrFileTooLarge, f.Filename)
		}
		if !allowedMimeTypes[strings.ToLower(f.ContentType)] {
			return nil, fmt.Errorf("%w: %s (%s)", ErrBadFileType, f.Filename, f.ContentType)
		}
	}

	uploaded := make([]gallery.UploadedImage, 0, len(files))
	for _, f := range files {
		key := uc.storage.ObjectKey(filepath.Ext(f.Filename))

		url, err := uc.storage.UploadFile(key, bytes.NewReader(f.Data), f.ContentType)
		if err != nil {
			uc.logger.Error("Failed to upload %s: %v", f.Filename, err)
			return nil, fmt.Errorf("upload %s: %w", f.Filename, err)
		}

		uploaded = append(uploaded, gallery.UploadedImage{
			Filename: f.Filename,
			Path:     key,
			URL:      url,
			Size:     int64(len(f.Data)),
			MimeType: f.ContentType,
		})
	}

	return uploaded, nil
}
