package main

import (
	"fieldnotes/internal/app"
	"fieldnotes/internal/model"
	"fieldnotes/pkg/cache"
	"fieldnotes/pkg/config"
	"fieldnotes/pkg/database"
	"fieldnotes/pkg/logger"
	"fieldnotes/pkg/queue"
	"fieldnotes/pkg/s3"
)

// @title           Fieldnotes API
// @version         1.0
// @description     Personal blog platform with an admin console for authoring posts with ordered image galleries.

// @host      localhost:8080
// @BasePath  /api

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if cfg.SessionSecret == "" {
		panic("SESSION_SECRET must be set in environment variables")
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

	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Error("Failed to create S3 client: %v", err)
		panic(err)
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Warn("Redis unavailable, continuing without listing cache: %v", err)
		redisClient = nil
	}

	var queueClient *queue.Client
	if cfg.QueueEnabled {
		queueClient, err = queue.NewRabbitMQClient(cfg, log)
		if err != nil {
			log.Warn("RabbitMQ unavailable, post events disabled: %v", err)
			queueClient = nil
		}
	}

	app.Run(cfg, log, db, s3Client, queueClient, redisClient)
}
