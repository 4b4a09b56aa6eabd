package di

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"

	"github.com/GoArmGo/MovieCatalog/internal/adapter/storage/minio"
	"github.com/GoArmGo/MovieCatalog/internal/app"
	"github.com/GoArmGo/MovieCatalog/internal/auth"
	"github.com/GoArmGo/MovieCatalog/internal/cache"
	"github.com/GoArmGo/MovieCatalog/internal/config"
	"github.com/GoArmGo/MovieCatalog/internal/core/ports"
	"github.com/GoArmGo/MovieCatalog/internal/database/client"
	"github.com/GoArmGo/MovieCatalog/internal/database/postgres"
	"github.com/GoArmGo/MovieCatalog/internal/logger"
	"github.com/GoArmGo/MovieCatalog/internal/mail"
	"github.com/GoArmGo/MovieCatalog/internal/rabbitmq"
	"github.com/GoArmGo/MovieCatalog/internal/usecase"
)

// Infra is everything the HTTP API needs from the outside world.
type Infra struct {
	DB        *gorm.DB
	SQLX      *sqlx.DB
	Cache     ports.Cache
	Publisher ports.MailPublisher
	// Files is nil when object storage is not configured.
	Files  ports.FileStorage
	Tokens *auth.TokenManager

	RequestTimeout time.Duration
	CacheTTL       time.Duration
	Auth           usecase.AuthConfig
}

// BuildApp initializes every dependency and returns the ready App.
func BuildApp() (*app.App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	slogger := logger.NewSlog(logger.SlogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	slogger.Info("logger initialized", "level", cfg.LogLevel, "format", cfg.LogFormat)

	ctx := context.Background()
	var closers []func() error
	fail := func(err error) (*app.App, error) {
		for i := len(closers) - 1; i >= 0; i-- {
			_ = closers[i]()
		}
		return nil, err
	}

	dbClient, err := client.NewClient(cfg, slogger)
	if err != nil {
		return fail(err)
	}
	closers = append(closers, dbClient.Close)

	gormDB, err := postgres.Open(cfg, slogger)
	if err != nil {
		return fail(err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return fail(fmt.Errorf("gorm pool: %w", err))
	}
	closers = append(closers, sqlDB.Close)

	infra := Infra{
		DB:             gormDB,
		SQLX:           dbClient.DB,
		Cache:          cache.Nop{},
		Tokens:         auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TTL),
		RequestTimeout: cfg.RequestTimeout,
		CacheTTL:       cfg.Redis.CacheTTL,
		Auth: usecase.AuthConfig{
			ActivationTTL: cfg.JWT.ActivationTTL,
			ResetTTL:      cfg.JWT.ResetTTL,
		},
	}

	if cfg.Redis.Addr != "" {
		redisCache, err := cache.NewRedisCache(ctx, cfg, slogger)
		if err != nil {
			return fail(err)
		}
		closers = append(closers, redisCache.Close)
		infra.Cache = redisCache
	} else {
		slogger.Warn("REDIS_ADDR is empty, list cache disabled")
	}

	sender := mail.NewLogSender(slogger)
	var consumer ports.MailConsumer
	if cfg.RabbitMQ.RabbitMQURL != "" {
		rabbitMQClient, err := rabbitmq.NewClient(cfg, slogger)
		if err != nil {
			return fail(err)
		}
		closers = append(closers, func() error {
			rabbitMQClient.Close()
			return nil
		})
		infra.Publisher = rabbitMQClient
		consumer = rabbitMQClient
	} else {
		slogger.Warn("RABBITMQ_URL is empty, mail is delivered inline")
		infra.Publisher = mail.NewLogPublisher(sender)
	}

	if cfg.Minio.Endpoint != "" {
		fileStorage, err := minio.NewMinioClient(ctx, cfg, slogger)
		if err != nil {
			return fail(err)
		}
		infra.Files = fileStorage
	} else {
		slogger.Warn("MINIO_ENDPOINT is empty, uploads are disabled")
	}

	router := NewRouter(infra, slogger)

	slogger.Info("all dependencies initialized")
	return app.NewApp(cfg, slogger, router, consumer, sender, closers...), nil
}
