package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"fieldnotes/internal/entity"
	"fieldnotes/internal/repo/persistent"
	"fieldnotes/pkg/logger"
	"fieldnotes/pkg/queue"

	"github.com/redis/go-redis/v9"
)

var (
	ErrTitleRequired   = errors.New("title is required")
	ErrContentRequired = errors.New("content is required")
	ErrImagesRequired  = errors.New("at least one image is required")
	ErrBadImageOrder   = errors.New("image orders must be unique and dense from 0")
)

const (
	listCachePrefix = "posts:list:"
	listCacheTTL    = 5 * time.Minute
)

// ObjectStorage is the slice of the storage client the post flows need.
type ObjectStorage interface {
	UploadFile(key string, file io.Reader, contentType string) (string, error)
	DeleteFile(key string) error
	ObjectKey(ext string) string
}

// PostInput is the payload of the create and update operations. Images
// arrive order-indexed; entries with an ID refer to rows the server
// already holds.
type PostInput struct {
	ID          string
	Title       string
	Content     string
	PublishDate time.Time
	Images      []entity.PostImage
}

type PostUseCase interface {
	ListPosts(page, pageSize int) ([]*entity.Post, int64, error)
	GetPost(id string) (*entity.Post, error)
	CreatePost(input PostInput) (*entity.Post, error)
	UpdatePost(input PostInput) (*entity.Post, error)
	DeletePost(id string) error
}

type postUseCase struct {
	postRepo    persistent.PostRepository
	storage     ObjectStorage
	redisClient *redis.Client
	queueClient *queue.Client
	logger      *logger.Logger
}

func NewPostUseCase(
	postRepo persistent.PostRepository,
	storage ObjectStorage,
	redisClient *redis.Client,
	queueClient *queue.Client,
	logger *logger.Logger,
) PostUseCase {
	return &postUseCase{
		postRepo:    postRepo,
		storage:     storage,
		redisClient: redisClient,
		queueClient: queueClient,
		logger:      logger,
	}
}

type listPage struct {
	Posts []*entity.Post `json:"posts"`
	Total int64          `json:"total"`
}

func (uc *postUseCase) ListPosts(page, pageSize int) ([]*entity.Post, int64, error) {
	cacheKey := fmt.Sprintf("%s%d:%d", listCachePrefix, page, pageSize)

	if uc.redisClient != nil {
		if raw, err := uc.redisClient.Get(context.Background(), cacheKey).Result(); err == nil {
			var cached listPage
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return cached.Posts, cached.Total, nil
			}
		}
	}

	posts, total, err := uc.postRepo.List(pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}

	if uc.redisClient != nil {
		if raw, err := json.Marshal(listPage{Posts: posts, Total: total}); err == nil {
			uc.redisClient.Set(context.Background(), cacheKey, raw, listCacheTTL)
		}
	}

	return posts, total, nil
}

func (uc *postUseCase) GetPost(id string) (*entity.Post, error) {
	return uc.postRepo.GetByID(id)
}

func (uc *postUseCase) CreatePost(input PostInput) (*entity.Post, error) {
	if err := validatePostInput(input); err != nil {
		return nil, err
	}

	publishDate := input.PublishDate
	if publishDate.IsZero() {
		publishDate = time.Now()
	}

	post := &entity.Post{
		Title:       input.Title,
		Content:     input.Content,
		PublishDate: publishDate,
		Images:      input.Images,
	}

	if err := uc.postRepo.Create(post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	uc.invalidateListCache()
	uc.publishEvent(queue.EventPostCreated, post.ID)
	return post, nil
}

func (uc *postUseCase) UpdatePost(input PostInput) (*entity.Post, error) {
	if input.ID == "" {
		return nil, persistent.ErrNotFound
	}
	if err := validatePostInput(input); err != nil {
		return nil, err
	}

	publishDate := input.PublishDate
	if publishDate.IsZero() {
		publishDate = time.Now()
	}

	removed, err := uc.postRepo.UpdateWithImageDiff(&entity.Post{
		ID:          input.ID,
		Title:       input.Title,
		Content:     input.Content,
		PublishDate: publishDate,
		Images:      input.Images,
	})
	if err != nil {
		return nil, err
	}

	for _, img := range removed {
		if img.Path == "" {
			continue
		}
		if err := uc.storage.DeleteFile(img.Path); err != nil {
			uc.logger.Warn("Failed to delete storage object %s: %v", img.Path, err)
		}
	}

	uc.invalidateListCache()
	uc.publishEvent(queue.EventPostUpdated, input.ID)
	return uc.postRepo.GetByID(input.ID)
}

func (uc *postUseCase) DeletePost(id string) error {
	post, err := uc.postRepo.GetByID(id)
	if err != nil {
		return err
	}

	for _, img := range post.Images {
		if img.Path == "" {
			continue
		}
		if err := uc.storage.DeleteFile(img.Path); err != nil {
			uc.logger.Warn("Failed to delete storage object %s: %v", img.Path, err)
		}
	}

	if err := uc.postRepo.Delete(id); err != nil {
		return err
	}

	uc.invalidateListCache()
	uc.publishEvent(queue.EventPostDeleted, id)
	return nil
}

func validatePostInput(input PostInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return ErrTitleRequired
	}
	if strings.TrimSpace(input.Content) == "" {
		return ErrContentRequired
	}
	if len(input.Images) == 0 {
		return ErrImagesRequired
	}

	seen := make(map[int]bool, len(input.Images))
	for _, img := range input.Images {
		if img.Order < 0 || img.Order >= len(input.Images) || seen[img.Order] {
			return ErrBadImageOrder
		}
		seen[img.Order] = true
	}
	return nil
}

func (uc *postUseCase) invalidateListCache() {
	if uc.redisClient == nil {
		return
	}

	ctx := context.Background()
	iter := uc.redisClient.Scan(ctx, 0, listCachePrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		uc.redisClient.Del(ctx, iter.Val())
	}
	if err := iter.Err(); err != nil {
		uc.logger.Warn("Failed to invalidate listing cache: %v", err)
	}
}

func (uc *postUseCase) publishEvent(event, postID string) {
	if uc.queueClient == nil {
		return
	}

	payload := map[string]interface{}{"post_id": postID}
	if err := uc.queueClient.PublishPostEvent(event, payload); err != nil {
		uc.logger.Warn("Failed to publish %s event: %v", event, err)
	}
}
