package persistent

import (
	"fieldnotes/internal/entity"
	"fieldnotes/internal/model"
)

func ToPostEntity(m *model.PostModel) *entity.Post {
	if m == nil {
		return nil
	}

	post := &entity.Post{
		ID:          m.ID,
		Title:       m.Title,
		Content:     m.Content,
		PublishDate: m.PublishDate,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		Images:      make([]entity.PostImage, len(m.Images)),
	}

	for i, img := range m.Images {
		post.Images[i] = ToPostImageEntity(&img)
	}

	return post
}

func ToPostModel(e *entity.Post) *model.PostModel {
	if e == nil {
		return nil
	}

	post := &model.PostModel{
		ID:          e.ID,
		Title:       e.Title,
		Content:     e.Content,
		PublishDate: e.PublishDate,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}

	if len(e.Images) > 0 {
		post.Images = make([]model.PostImageModel, len(e.Images))
		for i, img := range e.Images {
			post.Images[i] = *ToPostImageModel(&img)
		}
	}

	return post
}

func ToPostImageEntity(m *model.PostImageModel) entity.PostImage {
	if m == nil {
		return entity.PostImage{}
	}

	return entity.PostImage{
		ID:       m.ID,
		PostID:   m.PostID,
		Filename: m.Filename,
		Path:     m.Path,
		URL:      m.URL,
		Size:     m.Size,
		MimeType: m.MimeType,
		Order:    m.Order,
	}
}

func ToPostImageModel(e *entity.PostImage) *model.PostImageModel {
	if e == nil {
		return nil
	}

	return &model.PostImageModel{
		ID:       e.ID,
		PostID:   e.PostID,
		Filename: e.Filename,
		Path:     e.Path,
		URL:      e.URL,
		Size:     e.Size,
		MimeType: e.MimeType,
		Order:    e.Order,
	}
}

func ToUserEntity(m *model.UserModel) *entity.User {
	if m == nil {
		return nil
	}

	return &entity.User{
		ID:        m.ID,
		Email:     m.Email,
		Password:  m.Password,
		Role:      entity.Role(m.Role),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToUserModel(e *entity.User) *model.UserModel {
	if e == nil {
		return nil
	}

	return &model.UserModel{
		ID:        e.ID,
		Email:     e.Email,
		Password:  e.Password,
		Role:      string(e.Role),
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
