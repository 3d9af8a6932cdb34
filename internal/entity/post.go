package entity

import "time"

type Post struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Content     string      `json:"content"`
	PublishDate time.Time   `json:"publishDate"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
	Images      []PostImage `json:"images"`
}

type PostImage struct {
	ID       string `json:"id"`
	PostID   string `json:"postId"`
	Filename string `json:"filename"`
	Path     string `json:"path"`
	URL      string `json:"url"`
	Size     int64  `json:"size"`
	MimeType string `json:"mimeType"`
	Order    int    `json:"order"`
}
