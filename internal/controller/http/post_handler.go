package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"fieldnotes/internal/entity"
	"fieldnotes/internal/repo/persistent"
	"fieldnotes/internal/usecase"
	"fieldnotes/pkg/logger"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 12
	maxPageSize     = 96
)

type PostHandler struct {
	postUseCase usecase.PostUseCase
	logger      *logger.Logger
}

func NewPostHandler(postUseCase usecase.PostUseCase, logger *logger.Logger) *PostHandler {
	return &PostHandler{
		postUseCase: postUseCase,
		logger:      logger,
	}
}

type PostImagePayload struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	Path     string `json:"path"`
	URL      string `json:"url"`
	Size     int64  `json:"size"`
	MimeType string `json:"mimeType"`
	Order    int    `json:"order"`
}

type SavePostRequest struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Content     string             `json:"content"`
	PublishDate *time.Time         `json:"publishDate"`
	Images      []PostImagePayload `json:"images"`
}

func (req *SavePostRequest) toInput() usecase.PostInput {
	input := usecase.PostInput{
		ID:      req.ID,
		Title:   req.Title,
		Content: req.Content,
		Images:  make([]entity.PostImage, len(req.Images)),
	}
	if req.PublishDate != nil {
		input.PublishDate = *req.PublishDate
	}
	for i, img := range req.Images {
		input.Images[i] = entity.PostImage{
			ID:       img.ID,
			Filename: img.Filename,
			Path:     img.Path,
			URL:      img.URL,
			Size:     img.Size,
			MimeType: img.MimeType,
			Order:    img.Order,
		}
	}
	return input
}

func isValidationError(err error) bool {
	return errors.Is(err, usecase.ErrTitleRequired) ||
		errors.Is(err, usecase.ErrContentRequired) ||
		errors.Is(err, usecase.ErrImagesRequired) ||
		errors.Is(err, usecase.ErrBadImageOrder)
}

// ListPosts godoc
// @Summary      List posts
// @Description  Paginated post listing, newest publish date first, each post with its images in display order.
// @Tags         posts
// @Produce      json
// @Param        page query int false "Page number (default 1)"
// @Param        pageSize query int false "Page size (default 12, max 96)"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]interface{}
// @Router       /api/posts [get]
func (h *PostHandler) ListPosts(c *gin.Context) {
	page := 1
	pageSize := defaultPageSize

	if v := c.Query("page"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			page = p
		}
	}
	if v := c.Query("pageSize"); v != "" {
		if s, err := strconv.Atoi(v); err == nil && s > 0 {
			pageSize = s
			if pageSize > maxPageSize {
				pageSize = maxPageSize
			}
		}
	}

	posts, total, err := h.postUseCase.ListPosts(page, pageSize)
	if err != nil {
		h.logger.Error("Failed to list posts: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to fetch posts")
		return
	}

	if posts == nil {
		posts = []*entity.Post{}
	}

	respondOK(c, http.StatusOK, gin.H{
		"posts":    posts,
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
	})
}

// GetPost godoc
// @Summary      Get post by ID
// @Tags         posts
// @Produce      json
// @Param        id path string true "Post ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /api/posts/{id} [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	post, err := h.postUseCase.GetPost(c.Param("id"))
	if err != nil {
		if errors.Is(err, persistent.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Post not found")
			return
		}
		h.logger.Error("Failed to get post: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to fetch post")
		return
	}

	respondOK(c, http.StatusOK, gin.H{"post": post})
}

// CreatePost godoc
// @Summary      Create a post
// @Description  Creates a post with its ordered image set in one transaction.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        request body SavePostRequest true "Post payload"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]interface{}
// @Router       /api/posts/create [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	var req SavePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	post, err := h.postUseCase.CreatePost(req.toInput())
	if err != nil {
		if isValidationError(err) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("Failed to create post: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to create post")
		return
	}

	respondOK(c, http.StatusCreated, gin.H{"post": post})
}

// UpdatePost godoc
// @Summary      Update a post
// @Description  Replaces title/content and diffs the image set against stored state.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        request body SavePostRequest true "Post payload with id"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /api/posts/update [post]
func (h *PostHandler) UpdatePost(c *gin.Context) {
	var req SavePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	post, err := h.postUseCase.UpdatePost(req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, persistent.ErrNotFound):
			respondError(c, http.StatusNotFound, "Post not found")
		case isValidationError(err):
			respondError(c, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("Failed to update post: %v", err)
			respondError(c, http.StatusInternalServerError, "Failed to update post")
		}
		return
	}

	respondOK(c, http.StatusOK, gin.H{"post": post})
}

type DeletePostRequest struct {
	ID string `json:"id" binding:"required"`
}

// DeletePost godoc
// @Summary      Delete a post
// @Description  Removes the post, its image rows and their storage objects.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        request body DeletePostRequest true "Post id"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /api/posts/delete [post]
func (h *PostHandler) DeletePost(c *gin.Context) {
	var req DeletePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.postUseCase.DeletePost(req.ID); err != nil {
		if errors.Is(err, persistent.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Post not found")
			return
		}
		h.logger.Error("Failed to delete post: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to delete post")
		return
	}

	respondOK(c, http.StatusOK, gin.H{"deleted": req.ID})
}
