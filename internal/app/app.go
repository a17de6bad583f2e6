package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	chilaqHTTP "chilaq/internal/controller/http"
	"chilaq/internal/ratelimit"
	"chilaq/internal/repo/persistent"
	"chilaq/internal/usecase"
	"chilaq/pkg/config"
	"chilaq/pkg/jwt"
	"chilaq/pkg/logger"
	"chilaq/pkg/middleware"
	"chilaq/pkg/queue"
)

func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, redisClient *redis.Client, queueClient *queue.Client) {
	jwtService := jwt.NewService(cfg.JWTSecret)

	// Initialize repositories
	likeRepo := persistent.NewLikeRepository(db)
	postRepo := persistent.NewPostRepository(db)
	userRepo := persistent.NewUserRepository(db)

	// Initialize the like cooldown (injectable; per-process lifecycle)
	cooldown := ratelimit.NewCooldown(redisClient, cfg.LikeCooldown, log)

	// Initialize usecases
	likeUseCase := usecase.NewLikeUseCase(likeRepo, postRepo, cooldown, redisClient, queueClient, log)
	postUseCase := usecase.NewPostUseCase(postRepo, likeRepo, redisClient, log)
	authUseCase := usecase.NewAuthUseCase(userRepo, jwtService)

	// Initialize HTTP handlers
	likeHandler := chilaqHTTP.NewLikeHandler(likeUseCase, log)
	postHandler := chilaqHTTP.NewPostHandler(postUseCase, log)
	authHandler := chilaqHTTP.NewAuthHandler(authUseCase, log)

	// Setup router
	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})

	// Front-end assets (like button controller)
	r.Static("/static", "./web/static")

	// Legacy like endpoints redirect to the canonical routes
	r.POST("/p/:post_id/like", chilaqHTTP.RedirectLegacyLike)
	r.POST("/api/posts/:post_id/like", chilaqHTTP.RedirectLegacyLike)
	r.GET("/posts/:post_id/likes", chilaqHTTP.RedirectLegacyLikes)

	api := r.Group("/api/v1")
	api.Use(middleware.IdentityMiddleware(jwtService))
	api.Use(middleware.RateLimitMiddleware(redisClient, 100, time.Minute))

	// Public routes
	{
		api.POST("/auth/login", authHandler.Login)

		api.GET("/posts", postHandler.ListPosts)
		api.GET("/posts/:post_id", postHandler.GetPost)
		api.GET("/stats", postHandler.Stats)

		api.POST("/posts/:post_id/like", likeHandler.LikePost)
		api.GET("/posts/:post_id/likes", likeHandler.GetLikes)
		api.GET("/posts/:post_id/liked", likeHandler.HasLiked)
	}

	// Admin routes
	admin := api.Group("")
	admin.Use(middleware.AuthMiddleware(jwtService), middleware.RequireAdmin())
	{
		admin.DELETE("/posts/:post_id", postHandler.DeletePost)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		log.Info("chilaq starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down chilaq...")

	// The context is used to inform the server it has 5 seconds to finish
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Close database connection
	sqlDB, err := db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error("Error closing database: %v", err)
		}
	}

	// Close Redis connection if it was initialized
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing Redis: %v", err)
		}
	}

	// Close RabbitMQ connection if it was initialized
	if queueClient != nil {
		queueClient.Close()
	}

	// Shutdown server
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
		panic(err)
	}

	log.Info("chilaq exited")
}
