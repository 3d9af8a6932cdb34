package usecase

import (
	"bytes"
	"errors"
	"testing"

	"fieldnotes/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newUploadUseCase(storage *MockStorage) UploadUseCase {
	return NewUploadUseCase(storage, 10, 5<<20, logger.New())
}

func uploadFiles(names ...string) []UploadFile {
	files := make([]UploadFile, 0, len(names))
	for _, n := range names {
		files = append(files, UploadFile{
			Filename:    n,
			ContentType: "image/jpeg",
			Data:        bytes.Repeat([]byte{0xff}, 64),
		})
	}
	return files
}

func TestUploadImages_RejectsEmptyBatch(t *testing.T) {
	uc := newUploadUseCase(new(MockStorage))

	_, err := uc.UploadImages(nil)
	assert.ErrorIs(t, err, ErrNoFiles)
}

func TestUploadImages_RejectsOversizedBatch(t *testing.T) {
	uc := newUploadUseCase(new(MockStorage))

	files := uploadFiles("a.jpg", "b.jpg", "c.jpg", "d.jpg", "e.jpg", "f.jpg",
		"g.jpg", "h.jpg", "i.jpg", "j.jpg", "k.jpg")

	_, err := uc.UploadImages(files)
	assert.ErrorIs(t, err, ErrTooManyFiles)
}

func TestUploadImages_RejectsLargeFile(t *testing.T) {
	storage := new(MockStorage)
	uc := NewUploadUseCase(storage, 10, 100, logger.New())

	files := []UploadFile{{
		Filename:    "huge.jpg",
		ContentType: "image/jpeg",
		Data:        bytes.Repeat([]byte{0xff}, 101),
	}}

	_, err := uc.UploadImages(files)
	assert.ErrorIs(t, err, ErrFileTooLarge)
	storage.AssertNotCalled(t, "UploadFile")
}

func TestUploadImages_RejectsUnsupportedType(t *testing.T) {
	storage := new(MockStorage)
	uc := newUploadUseCase(storage)

	files := []UploadFile{{
		Filename:    "doc.pdf",
		ContentType: "application/pdf",
		Data:        []byte("%PDF"),
	}}

	_, err := uc.UploadImages(files)
	assert.ErrorIs(t, err, ErrBadFileType)
	storage.AssertNotCalled(t, "UploadFile")
}

func TestUploadImages_ValidationBeforeAnyUpload(t *testing.T) {
	// Second file is invalid: the first must not be uploaded either.
	storage := new(MockStorage)
	uc := newUploadUseCase(storage)

	files := append(uploadFiles("good.jpg"), UploadFile{
		Filename:    "bad.exe",
		ContentType: "application/octet-stream",
		Data:        []byte{0x4d, 0x5a},
	})

	_, err := uc.UploadImages(files)
	assert.ErrorIs(t, err, ErrBadFileType)
	storage.AssertNotCalled(t, "UploadFile")
}

func TestUploadImages_ReturnsDescriptorsInRequestOrder(t *testing.T) {
	storage := new(MockStorage)
	storage.On("ObjectKey", ".jpg").Return("posts/2026/08/key.jpg").Times(3)
	storage.On("UploadFile", "posts/2026/08/key.jpg", mock.Anything, "image/jpeg").
		Return("http://s3/posts/2026/08/key.jpg", nil).Times(3)

	uc := newUploadUseCase(storage)

	uploaded, err := uc.UploadImages(uploadFiles("first.jpg", "second.jpg", "third.jpg"))

	assert.NoError(t, err)
	assert.Len(t, uploaded, 3)
	assert.Equal(t, "first.jpg", uploaded[0].Filename)
	assert.Equal(t, "second.jpg", uploaded[1].Filename)
	assert.Equal(t, "third.jpg", uploaded[2].Filename)
	assert.Equal(t, "posts/2026/08/key.jpg", uploaded[0].Path)
	assert.Equal(t, int64(64), uploaded[0].Size)
	storage.AssertExpectations(t)
}

func TestUploadImages_StorageFailureAbortsBatch(t *testing.T) {
	storage := new(MockStorage)
	storage.On("ObjectKey", ".jpg").Return("posts/2026/08/key.jpg")
	storage.On("UploadFile", mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("bucket unavailable"))

	uc := newUploadUseCase(storage)

	_, err := uc.UploadImages(uploadFiles("a.jpg", "b.jpg"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "a.jpg")
}
