package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostModel struct {
	ID          string           `gorm:"type:uuid;primary_key" json:"id"`
	Title       string           `gorm:"type:varchar(255);not null" json:"title"`
	Content     string           `gorm:"type:text;not null" json:"content"`
	PublishDate time.Time        `gorm:"not null;index" json:"publish_date"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	DeletedAt   gorm.DeletedAt   `gorm:"index" json:"-"`
	Images      []PostImageModel `gorm:"foreignKey:PostID" json:"images,omitempty"`
}

func (PostModel) TableName() string { return "posts" }

func (p *PostModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

type PostImageModel struct {
	ID        string         `gorm:"type:uuid;primary_key" json:"id"`
	PostID    string         `gorm:"type:uuid;not null;index" json:"post_id"`
	Filename  string         `gorm:"type:varchar(255);not null" json:"filename"`
	Path      string         `gorm:"type:varchar(500);not null" json:"path"`
	URL       string         `gorm:"type:varchar(500);not null" json:"url"`
	Size      int64          `gorm:"default:0" json:"size"`
	MimeType  string         `gorm:"type:varchar(100)" json:"mime_type"`
	Order     int            `gorm:"column:order;default:0;index" json:"order"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (PostImageModel) TableName() string { return "post_images" }

func (pi *PostImageModel) BeforeCreate(tx *gorm.DB) error {
	if pi.ID == "" {
		pi.ID = uuid.New().String()
	}
	return nil
}
