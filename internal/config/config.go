package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds every configuration parameter of the application.
type Config struct {
	DatabaseURL    string        `env:"DATABASE_URL,required"`
	MigrationsPath string        `env:"MIGRATIONS_PATH" envDefault:"file://internal/database/postgres/migrations"`
	ServerPort     string        `env:"SERVER_PORT"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	JWT struct {
		Secret        string        `env:"JWT_SECRET,required"`
		Issuer        string        `env:"JWT_ISSUER" envDefault:"moviecatalog"`
		TTL           time.Duration `env:"JWT_TTL" envDefault:"24h"`
		ActivationTTL time.Duration `env:"ACTIVATION_TTL" envDefault:"48h"`
		ResetTTL      time.Duration `env:"RESET_TTL" envDefault:"1h"`
	}

	// Redis is optional: an empty address disables the list cache.
	Redis struct {
		Addr     string        `env:"REDIS_ADDR"`
		Password string        `env:"REDIS_PASSWORD"`
		DB       int           `env:"REDIS_DB" envDefault:"0"`
		CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"60s"`
	}

	// RabbitMQ is optional: without a URL mails are only logged.
	RabbitMQ struct {
		RabbitMQURL       string `env:"RABBITMQ_URL"`
		RabbitMQQueueName string `env:"RABBITMQ_QUEUE_NAME" envDefault:"mail_queue"`
	}

	// MinIO is optional: without an endpoint uploads are rejected.
	Minio struct {
		Endpoint        string `env:"MINIO_ENDPOINT"`
		AccessKeyID     string `env:"MINIO_ACCESS_KEY_ID"`
		SecretAccessKey string `env:"MINIO_SECRET_ACCESS_KEY"`
		UseSSL          bool   `env:"MINIO_USE_SSL"`
		BucketName      string `env:"MINIO_BUCKET_NAME" envDefault:"catalog-media"`
		Region          string `env:"MINIO_REGION" envDefault:"us-east-1"`
		PublicURL       string `env:"MINIO_PUBLIC_URL"`
	}
}

// LoadConfig loads the configuration from environment variables.
// A .env file is read first when present.
func LoadConfig() (*Config, error) {
	if _, err := os.Stat(".env"); !os.IsNotExist(err) {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("load .env file: %w", err)
		}
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse config from environment: %w", err)
	}

	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}

	return &cfg, nil
}
