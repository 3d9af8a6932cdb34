package main

import (
	"flag"
	"fmt"
	"time"

	"fieldnotes/internal/model"
	"fieldnotes/pkg/config"
	"fieldnotes/pkg/database"
	"fieldnotes/pkg/logger"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	var (
		email    = flag.String("email", "admin@example.com", "admin account email")
		password = flag.String("password", "", "admin account password (required)")
		demo     = flag.Bool("demo", false, "also insert demo posts")
	)
	flag.Parse()

	if *password == "" {
		panic("-password is required")
	}

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	if err := db.AutoMigrate(&model.UserModel{}, &model.PostModel{}, &model.PostImageModel{}); err != nil {
		log.Error("Failed to migrate database: %v", err)
		panic(err)
	}

	if err := seedAdmin(db, *email, *password); err != nil {
		log.Error("Failed to seed admin user: %v", err)
		panic(err)
	}
	log.Info("Admin user %s ready", *email)

	if *demo {
		if err := seedDemoPosts(db); err != nil {
			log.Error("Failed to seed demo posts: %v", err)
			panic(err)
		}
		log.Info("Demo posts inserted")
	}
}

func seedAdmin(db *gorm.DB, email, password string) error {
	var existing model.UserModel
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return db.Create(&model.UserModel{
		Email:    email,
		Password: string(hash),
		Role:     "admin",
	}).Error
}

func seedDemoPosts(db *gorm.DB) error {
	titles := []string{"First entry", "A walk in the hills", "Notes from the coast"}

	for i, title := range titles {
		post := model.PostModel{
			ID:          uuid.New().String(),
			Title:       title,
			Content:     fmt.Sprintf("<p>Demo content for %q.</p>", title),
			PublishDate: time.Now().AddDate(0, 0, -i),
		}
		if err := db.Create(&post).Error; err != nil {
			return err
		}

		image := model.PostImageModel{
			PostID:   post.ID,
			Filename: fmt.Sprintf("demo-%d.jpg", i),
			Path:     fmt.Sprintf("posts/demo/demo-%d.jpg", i),
			URL:      fmt.Sprintf("https://placehold.co/1200x800?text=demo-%d", i),
			Size:     1024,
			MimeType: "image/jpeg",
			Order:    0,
		}
		if err := db.Create(&image).Error; err != nil {
			return err
		}
	}

	return nil
}
