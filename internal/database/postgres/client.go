package postgres

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/MovieCatalog/internal/config"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open applies pending migrations and opens GORM through the pgx driver.
func Open(cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	if err := ApplyMigrations(cfg.MigrationsPath, cfg.DatabaseURL, logger); err != nil {
		return nil, err
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormLogLevel(cfg.LogLevel)),
	})
	if err != nil {
		logger.Error("failed to initialize GORM", "error", err)
		return nil, fmt.Errorf("open gorm: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("gorm pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	logger.Info("GORM initialized")
	return db, nil
}

// ApplyMigrations runs every migration found at sourceURL.
func ApplyMigrations(sourceURL, databaseURL string, logger *slog.Logger) error {
	start := time.Now()

	m, err := migrate.New(sourceURL, databaseURL)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	defer m.Close()

	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("database schema is up to date")
		return nil
	}
	if err != nil {
		logger.Error("failed to apply migrations", "error", err)
		return fmt.Errorf("apply migrations: %w", err)
	}

	logger.Info("migrations applied", "duration_ms", time.Since(start).Milliseconds())
	return nil
}

func gormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "debug":
		return gormlogger.Info
	case "warn":
		return gormlogger.Warn
	case "error":
		return gormlogger.Error
	default:
		return gormlogger.Silent
	}
}
