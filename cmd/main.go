package main

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/Canapean/Market/config"
	"github.com/Canapean/Market/internal/delivery"
	"github.com/Canapean/Market/internal/notification"
	"github.com/Canapean/Market/internal/repository"
	"github.com/Canapean/Market/internal/session"
	"github.com/Canapean/Market/internal/usecase"
	"github.com/Canapean/Market/pkg/db"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg := config.LoadConfig(logger)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Warnf("Invalid log level '%s', defaulting to info", cfg.LogLevel)
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	logger.Info("Starting Market service...")

	// --- Database Connection ---
	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()
	logger.Info("Database connection established.")

	if err := db.RunMigrations(database, cfg.MigrationsPath); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Info("Database migrations completed.")

	// --- Session Store ---
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatalf("Failed to connect to redis: %v", err)
	}
	cartStore := session.NewRedisStore(redisClient, cfg.SessionTTL)
	logger.Info("Session store initialized.")

	// --- Dependency Injection ---
	categoryRepo := repository.NewPostgresCategoryRepository(database, logger)
	productRepo := repository.NewPostgresProductRepository(database, logger)
	logger.Info("Repositories initialized.")

	mailGateway := notification.NewSMTPGateway(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)

	categoryUseCase := usecase.NewCategoryUseCase(categoryRepo, productRepo, logger)
	productUseCase := usecase.NewProductUseCase(productRepo, categoryRepo, logger)
	cartUseCase := usecase.NewCartUseCase(cartStore, productRepo, logger)
	feedbackUseCase := usecase.NewFeedbackUseCase(mailGateway, cfg.FeedbackFrom, strings.Split(cfg.FeedbackTo, ","), logger)
	logger.Info("Use cases initialized.")

	categoryHandler := delivery.NewCategoryHandler(categoryUseCase, logger)
	productHandler := delivery.NewProductHandler(productUseCase, logger)
	cartHandler := delivery.NewCartHandler(cartUseCase, logger)
	feedbackHandler := delivery.NewFeedbackHandler(feedbackUseCase, logger)
	logger.Info("Handlers initialized.")

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(delivery.RequestLogger(logger))
	router.Use(delivery.Session(cfg.SessionTTL, logger))

	categoryHandler.RegisterRoutes(router)
	productHandler.RegisterRoutes(router)
	cartHandler.RegisterRoutes(router)
	feedbackHandler.RegisterRoutes(router)
	logger.Info("API routes registered.")

	logger.Infof("Starting server on port %s", cfg.HTTPPort)
	if err := router.Run(cfg.HTTPPort); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}
