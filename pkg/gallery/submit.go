package gallery

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"fieldnotes/pkg/imaging"
)

var ErrNoImages = errors.New("at least one image is required")

// UploadedImage is the descriptor the upload endpoint returns per file, in
// request order.
type UploadedImage struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
	URL      string `json:"url"`
	Size     int64  `json:"size"`
	MimeType string `json:"mimeType"`
}

// Uploader sends a batch of pending files to the server. Implementations
// must return one descriptor per input file, in the same order as submitted.
type Uploader interface {
	UploadImages(ctx context.Context, files []imaging.File) ([]UploadedImage, error)
}

// SubmitImage is one entry of the create/update payload. ID is set only for
// images the server already knows.
type SubmitImage struct {
	ID       string `json:"id,omitempty"`
	Filename string `json:"filename"`
	Path     string `json:"path"`
	URL      string `json:"url"`
	Size     int64  `json:"size"`
	MimeType string `json:"mimeType"`
	Order    int    `json:"order"`
}

// Reconcile turns the in-memory collection into the persistence payload:
// pending records are uploaded as one ordered batch, each uploaded
// descriptor takes the display position its pending record held in the
// combined list, and the merged result comes back sorted by order as a
// dense 0..N-1 sequence. If the upload fails nothing is persisted and the
// caller's collection is untouched, so the author can retry.
func Reconcile(ctx context.Context, records []ImageRecord, uploader Uploader) ([]SubmitImage, error) {
	if len(records) == 0 {
		return nil, ErrNoImages
	}

	var pendingFiles []imaging.File
	var pendingPositions []int
	merged := make([]SubmitImage, 0, len(records))

	for i, rec := range records {
		switch src := rec.Source.(type) {
		case PendingSource:
			pendingFiles = append(pendingFiles, src.File)
			pendingPositions = append(pendingPositions, i)
		case DurableSource:
			merged = append(merged, SubmitImage{
				ID:       rec.ID,
				Filename: rec.Filename,
				Path:     src.Path,
				URL:      rec.URL,
				Size:     rec.Size,
				MimeType: rec.MimeType,
				Order:    i,
			})
		}
	}

	if len(pendingFiles) > 0 {
		uploaded, err := uploader.UploadImages(ctx, pendingFiles)
		if err != nil {
			return nil, fmt.Errorf("upload images: %w", err)
		}
		if len(uploaded) != len(pendingFiles) {
			return nil, fmt.Errorf("upload returned %d descriptors for %d files", len(uploaded), len(pendingFiles))
		}

		for k, up := range uploaded {
			merged = append(merged, SubmitImage{
				Filename: up.Filename,
				Path:     up.Path,
				URL:      up.URL,
				Size:     up.Size,
				MimeType: up.MimeType,
				Order:    pendingPositions[k],
			})
		}
	}

	sort.Slice(merged, func(a, b int) bool { return merged[a].Order < merged[b].Order })
	return merged, nil
}
