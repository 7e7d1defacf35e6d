package config

import (
	"log"
	"os"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

type Config struct {
	DatabaseURL    string        `envconfig:"DATABASE_URL"    required:"true"`
	HTTPPort       string        `envconfig:"HTTP_PORT"       default:":8080"`
	MigrationsPath string        `envconfig:"MIGRATIONS_PATH" default:"./migrations"`
	LogLevel       string        `envconfig:"LOG_LEVEL"       default:"info"`

	RedisAddr     string        `envconfig:"REDIS_ADDR"     default:"localhost:6379"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD" default:""`
	SessionTTL    time.Duration `envconfig:"SESSION_TTL"    default:"720h"` // cart lives as long as the session

	SMTPHost     string `envconfig:"SMTP_HOST"     default:"localhost"`
	SMTPPort     int    `envconfig:"SMTP_PORT"     default:"587"`
	SMTPUser     string `envconfig:"SMTP_USER"     default:""`
	SMTPPassword string `envconfig:"SMTP_PASSWORD" default:""`
	FeedbackFrom string `envconfig:"FEEDBACK_FROM" default:"support@market.local"`
	FeedbackTo   string `envconfig:"FEEDBACK_TO"   default:"support@market.local"`

	PageSize int `envconfig:"PAGE_SIZE" default:"3"`
}

var (
	config Config
	once   sync.Once
)

func LoadConfig(logger *logrus.Logger) *Config {
	once.Do(func() {
		err := godotenv.Load()
		if err != nil && !os.IsNotExist(err) {
			logger.Warnf("Error loading .env file (but continuing): %v", err)
		} else if err == nil {
			logger.Info("Loaded configuration from .env file")
		}

		err = envconfig.Process("", &config)
		if err != nil {
			logger.Fatalf("Failed to process configuration from environment variables: %v", err)
		}

		logger.Infof("Configuration loaded: HTTP Port=%s, LogLevel=%s, PageSize=%d", config.HTTPPort, config.LogLevel, config.PageSize)
		if config.DatabaseURL != "" {
			logger.Info("Configuration loaded: DatabaseURL is set")
		} else {
			logger.Fatal("Configuration error: DATABASE_URL is not set")
		}
	})
	return &config
}

func GetConfig() *Config {
	if config.HTTPPort == "" || config.DatabaseURL == "" {
		log.Fatal("Configuration not loaded. Call LoadConfig first.")
	}
	return &config
}
