package main

import (
	"github.com/gin-gonic/gin"

	"chilaq/internal/app"
	"chilaq/pkg/cache"
	"chilaq/pkg/config"
	"chilaq/pkg/database"
	"chilaq/pkg/logger"
	"chilaq/pkg/queue"
)

func init() {
	gin.SetMode(gin.ReleaseMode)
}

// @title           chilaq API
// @version         1.0
// @description     Music discovery posts with a crash-tolerant like ledger

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v", err)
		panic(err)
	}

	// Connect to RabbitMQ for publishing like events
	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Error("Failed to connect to RabbitMQ: %v (continuing without queue)", err)
		queueClient = nil // Allow the service to start without RabbitMQ
	}

	app.Run(cfg, log, db, redisClient, queueClient)
}
