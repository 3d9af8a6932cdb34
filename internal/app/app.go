package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	controller "fieldnotes/internal/controller/http"
	"fieldnotes/internal/repo/persistent"
	"fieldnotes/internal/usecase"
	"fieldnotes/pkg/config"
	"fieldnotes/pkg/jwt"
	"fieldnotes/pkg/logger"
	"fieldnotes/pkg/middleware"
	"fieldnotes/pkg/queue"
	"fieldnotes/pkg/s3"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "fieldnotes/docs" // Swagger docs
)

func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, s3Client *s3.Client, queueClient *queue.Client, redisClient *redis.Client) {
	jwtService := jwt.NewService(cfg.SessionSecret)

	postRepo := persistent.NewPostRepository(db)
	userRepo := persistent.NewUserRepository(db)

	authUseCase := usecase.NewAuthUseCase(userRepo, jwtService, log)
	postUseCase := usecase.NewPostUseCase(postRepo, s3Client, redisClient, queueClient, log)
	uploadUseCase := usecase.NewUploadUseCase(s3Client, cfg.MaxUploadFiles, cfg.MaxUploadBytes, log)

	authHandler := controller.NewAuthHandler(authUseCase, cfg.SessionCookie)
	postHandler := controller.NewPostHandler(postUseCase, log)
	uploadHandler := controller.NewUploadHandler(uploadUseCase, log)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000", cfg.BaseURL},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	{
		login := api.Group("")
		if redisClient != nil {
			login.Use(middleware.RateLimitMiddleware(redisClient, 10, time.Minute))
		}
		login.POST("/login", authHandler.Login)

		api.POST("/logout", authHandler.Logout)
		api.GET("/posts", postHandler.ListPosts)
		api.GET("/posts/:id", postHandler.GetPost)

		admin := api.Group("")
		admin.Use(middleware.AuthMiddleware(jwtService, cfg.SessionCookie))
		{
			admin.POST("/posts/create", postHandler.CreatePost)
			admin.POST("/posts/update", postHandler.UpdatePost)
			admin.POST("/posts/delete", postHandler.DeletePost)
			admin.POST("/upload-images", uploadHandler.UploadImages)
		}
	}

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	go func() {
		log.Info("Server starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sqlDB, err := db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error("Error closing database: %v", err)
		}
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing Redis: %v", err)
		}
	}

	if queueClient != nil {
		queueClient.Close()
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
		panic(err)
	}

	log.Info("Server exited")
}
