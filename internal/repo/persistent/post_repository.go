package persistent

import (
	"errors"

	"fieldnotes/internal/entity"
	"fieldnotes/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

type PostRepository interface {
	Create(post *entity.Post) error
	GetByID(id string) (*entity.Post, error)
	List(limit, offset int) ([]*entity.Post, int64, error)
	UpdateWithImageDiff(post *entity.Post) (removed []entity.PostImage, err error)
	Delete(id string) error
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func orderedImages(db *gorm.DB) *gorm.DB {
	return db.Order(`post_images."order" ASC`)
}

func (r *postRepository) Create(post *entity.Post) error {
	postModel := ToPostModel(post)
	if postModel.ID == "" {
		postModel.ID = uuid.New().String()
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		images := postModel.Images
		postModel.Images = nil

		if err := tx.Create(postModel).Error; err != nil {
			return err
		}

		for i := range images {
			images[i].PostID = postModel.ID
			if images[i].ID == "" {
				images[i].ID = uuid.New().String()
			}
			if err := tx.Create(&images[i]).Error; err != nil {
				return err
			}
		}
		postModel.Images = images

		*post = *ToPostEntity(postModel)
		return nil
	})
}

func (r *postRepository) GetByID(id string) (*entity.Post, error) {
	var postModel model.PostModel
	err := r.db.Preload("Images", orderedImages).Where("id = ?", id).First(&postModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return ToPostEntity(&postModel), nil
}

func (r *postRepository) List(limit, offset int) ([]*entity.Post, int64, error) {
	var total int64
	if err := r.db.Model(&model.PostModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var postModels []model.PostModel
	query := r.db.Preload("Images", orderedImages).Order("publish_date DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&postModels).Error; err != nil {
		return nil, 0, err
	}

	posts := make([]*entity.Post, len(postModels))
	for i := range postModels {
		posts[i] = ToPostEntity(&postModels[i])
	}
	return posts, total, nil
}

// UpdateWithImageDiff replaces title, content and publish date, then diffs
// the submitted image set against the stored rows: rows missing from the
// submission are deleted, rows submitted with an id keep their row but take
// the submitted order, rows submitted without an id are inserted. The
// deleted rows are returned so the caller can remove their storage objects.
func (r *postRepository) UpdateWithImageDiff(post *entity.Post) ([]entity.PostImage, error) {
	var removed []entity.PostImage

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing model.PostModel
		err := tx.Preload("Images", orderedImages).Where("id = ?", post.ID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		updates := map[string]interface{}{
			"title":        post.Title,
			"content":      post.Content,
			"publish_date": post.PublishDate,
		}
		if err := tx.Model(&model.PostModel{}).Where("id = ?", post.ID).Updates(updates).Error; err != nil {
			return err
		}

		submitted := make(map[string]entity.PostImage, len(post.Images))
		for _, img := range post.Images {
			if img.ID != "" {
				submitted[img.ID] = img
			}
		}

		for _, row := range existing.Images {
			if _, keep := submitted[row.ID]; keep {
				continue
			}
			if err := tx.Unscoped().Delete(&model.PostImageModel{}, "id = ?", row.ID).Error; err != nil {
				return err
			}
			removed = append(removed, ToPostImageEntity(&row))
		}

		for _, img := range post.Images {
			if img.ID != "" {
				err := tx.Model(&model.PostImageModel{}).
					Where("id = ?", img.ID).
					Update("order", img.Order).Error
				if err != nil {
					return err
				}
				continue
			}

			row := ToPostImageModel(&img)
			row.ID = uuid.New().String()
			row.PostID = post.ID
			if err := tx.Create(row).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return removed, nil
}

func (r *postRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Unscoped().Delete(&model.PostModel{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Unscoped().Delete(&model.PostImageModel{}, "post_id = ?", id).Error
	})
}
