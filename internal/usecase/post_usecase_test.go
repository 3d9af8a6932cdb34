package usecase

import (
	"io"
	"testing"
	"time"

	"fieldnotes/internal/entity"
	"fieldnotes/internal/repo/persistent"
	"fieldnotes/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(post *entity.Post) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(id string) (*entity.Post, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostRepository) List(limit, offset int) ([]*entity.Post, int64, error) {
	args := m.Called(limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.Post), args.Get(1).(int64), args.Error(2)
}

func (m *MockPostRepository) UpdateWithImageDiff(post *entity.Post) ([]entity.PostImage, error) {
	args := m.Called(post)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.PostImage), args.Error(1)
}

func (m *MockPostRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) UploadFile(key string, file io.Reader, contentType string) (string, error) {
	args := m.Called(key, file, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockStorage) DeleteFile(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func (m *MockStorage) ObjectKey(ext string) string {
	args := m.Called(ext)
	return args.String(0)
}

func newPostUseCase(repo *MockPostRepository, storage *MockStorage) PostUseCase {
	return NewPostUseCase(repo, storage, nil, nil, logger.New())
}

func validInput() PostInput {
	return PostInput{
		Title:   "Trip",
		Content: "<p>hello</p>",
		Images: []entity.PostImage{
			{Filename: "a.jpg", Path: "posts/2026/08/a.jpg", URL: "http://s3/a.jpg", Order: 0},
			{Filename: "b.jpg", Path: "posts/2026/08/b.jpg", URL: "http://s3/b.jpg", Order: 1},
		},
	}
}

func TestCreatePost_Validation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*PostInput)
		want   error
	}{
		{"empty title", func(in *PostInput) { in.Title = "  " }, ErrTitleRequired},
		{"empty content", func(in *PostInput) { in.Content = "" }, ErrContentRequired},
		{"no images", func(in *PostInput) { in.Images = nil }, ErrImagesRequired},
		{"duplicate orders", func(in *PostInput) { in.Images[1].Order = 0 }, ErrBadImageOrder},
		{"gapped orders", func(in *PostInput) { in.Images[1].Order = 5 }, ErrBadImageOrder},
		{"negative order", func(in *PostInput) { in.Images[0].Order = -1 }, ErrBadImageOrder},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := new(MockPostRepository)
			uc := newPostUseCase(repo, new(MockStorage))

			input := validInput()
			tc.mutate(&input)

			_, err := uc.CreatePost(input)
			assert.ErrorIs(t, err, tc.want)
			repo.AssertNotCalled(t, "Create")
		})
	}
}

func TestCreatePost_DefaultsPublishDate(t *testing.T) {
	repo := new(MockPostRepository)
	repo.On("Create", mock.Anything).Return(nil)

	uc := newPostUseCase(repo, new(MockStorage))
	post, err := uc.CreatePost(validInput())

	assert.NoError(t, err)
	assert.WithinDuration(t, time.Now(), post.PublishDate, 5*time.Second)
	repo.AssertExpectations(t)
}

func TestCreatePost_KeepsGivenPublishDate(t *testing.T) {
	repo := new(MockPostRepository)
	repo.On("Create", mock.Anything).Return(nil)

	uc := newPostUseCase(repo, new(MockStorage))

	input := validInput()
	input.PublishDate = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	post, err := uc.CreatePost(input)
	assert.NoError(t, err)
	assert.Equal(t, input.PublishDate, post.PublishDate)
}

func TestUpdatePost_DeletesRemovedStorageObjects(t *testing.T) {
	removed := []entity.PostImage{
		{ID: "img-1", Path: "posts/2026/08/gone.jpg"},
	}

	repo := new(MockPostRepository)
	repo.On("UpdateWithImageDiff", mock.Anything).Return(removed, nil)
	repo.On("GetByID", "post-1").Return(&entity.Post{ID: "post-1"}, nil)

	storage := new(MockStorage)
	storage.On("DeleteFile", "posts/2026/08/gone.jpg").Return(nil)

	uc := newPostUseCase(repo, storage)

	input := validInput()
	input.ID = "post-1"

	post, err := uc.UpdatePost(input)
	assert.NoError(t, err)
	assert.Equal(t, "post-1", post.ID)
	storage.AssertExpectations(t)
}

func TestUpdatePost_UnknownID(t *testing.T) {
	repo := new(MockPostRepository)
	repo.On("UpdateWithImageDiff", mock.Anything).Return(nil, persistent.ErrNotFound)

	uc := newPostUseCase(repo, new(MockStorage))

	input := validInput()
	input.ID = "missing"

	_, err := uc.UpdatePost(input)
	assert.ErrorIs(t, err, persistent.ErrNotFound)
}

func TestDeletePost_CascadesStorageObjects(t *testing.T) {
	post := &entity.Post{
		ID: "post-1",
		Images: []entity.PostImage{
			{ID: "img-1", Path: "posts/2026/08/a.jpg"},
			{ID: "img-2", Path: "posts/2026/08/b.jpg"},
		},
	}

	repo := new(MockPostRepository)
	repo.On("GetByID", "post-1").Return(post, nil)
	repo.On("Delete", "post-1").Return(nil)

	storage := new(MockStorage)
	storage.On("DeleteFile", "posts/2026/08/a.jpg").Return(nil)
	storage.On("DeleteFile", "posts/2026/08/b.jpg").Return(nil)

	uc := newPostUseCase(repo, storage)

	assert.NoError(t, uc.DeletePost("post-1"))
	storage.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestDeletePost_SecondDeleteIsNotFound(t *testing.T) {
	repo := new(MockPostRepository)
	repo.On("GetByID", "post-1").Return(nil, persistent.ErrNotFound)

	uc := newPostUseCase(repo, new(MockStorage))

	err := uc.DeletePost("post-1")
	assert.ErrorIs(t, err, persistent.ErrNotFound)
	repo.AssertNotCalled(t, "Delete")
}

func TestListPosts_PassesPageBounds(t *testing.T) {
	repo := new(MockPostRepository)
	repo.On("List", 12, 24).Return([]*entity.Post{{ID: "p"}}, int64(30), nil)

	uc := newPostUseCase(repo, new(MockStorage))

	posts, total, err := uc.ListPosts(3, 12)
	assert.NoError(t, err)
	assert.Len(t, posts, 1)
	assert.Equal(t, int64(30), total)
	repo.AssertExpectations(t)
}
