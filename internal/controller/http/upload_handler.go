package http

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"

	"fieldnotes/internal/usecase"
	"fieldnotes/pkg/logger"

	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	uploadUseCase usecase.UploadUseCase
	logger        *logger.Logger
}

func NewUploadHandler(uploadUseCase usecase.UploadUseCase, logger *logger.Logger) *UploadHandler {
	return &UploadHandler{
		uploadUseCase: uploadUseCase,
		logger:        logger,
	}
}

type indexedFile struct {
	index  int
	header *multipart.FileHeader
}

// orderedFileHeaders extracts the files from fields named images[0],
// images[1], ... sorted by their field index, so the response order matches
// the sender's order regardless of multipart part ordering. A bare repeated
// images field is accepted as a fallback.
func orderedFileHeaders(form *multipart.Form) []*multipart.FileHeader {
	var indexed []indexedFile
	for field, headers := range form.File {
		var idx int
		if n, err := fmt.Sscanf(field, "images[%d]", &idx); n == 1 && err == nil {
			for _, fh := range headers {
				indexed = append(indexed, indexedFile{index: idx, header: fh})
			}
		}
	}

	if len(indexed) == 0 {
		return form.File["images"]
	}

	sort.Slice(indexed, func(a, b int) bool { return indexed[a].index < indexed[b].index })

	headers := make([]*multipart.FileHeader, len(indexed))
	for i, f := range indexed {
		headers[i] = f.header
	}
	return headers
}

// UploadImages godoc
// @Summary      Upload post images
// @Description  Accepts multipart fields images[0..n] and stores each file, returning one descriptor per file in request order.
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Param        images[0] formData file true "Image files"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]interface{}
// @Router       /api/upload-images [post]
func (h *UploadHandler) UploadImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		respondError(c, http.StatusBadRequest, "Failed to parse form")
		return
	}

	headers := orderedFileHeaders(form)

	files := make([]usecase.UploadFile, 0, len(headers))
	for _, fh := range headers {
		src, err := fh.Open()
		if err != nil {
			respondError(c, http.StatusBadRequest, fmt.Sprintf("Failed to open %s", fh.Filename))
			return
		}

		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			respondError(c, http.StatusBadRequest, fmt.Sprintf("Failed to read %s", fh.Filename))
			return
		}

		files = append(files, usecase.UploadFile{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	uploaded, err := h.uploadUseCase.UploadImages(files)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrNoFiles),
			errors.Is(err, usecase.ErrTooManyFiles),
			errors.Is(err, usecase.ErrFileTooLarge),
			errors.Is(err, usecase.ErrBadFileType):
			respondError(c, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("Failed to upload images: %v", err)
			respondError(c, http.StatusInternalServerError, "Failed to upload images")
		}
		return
	}

	respondOK(c, http.StatusOK, gin.H{"images": uploaded})
}
