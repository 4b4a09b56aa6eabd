// Package testutil builds throwaway databases for tests.
package testutil

import (
	"fmt"
	"testing"

	"github.com/GoArmGo/MovieCatalog/internal/database/storage"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewTestDB opens a private in-memory SQLite database with the full schema.
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, storage.AutoMigrate(db))
	return db
}

// SQLX wraps the connection pool of db for the sqlx based storages.
func SQLX(t testing.TB, db *gorm.DB) *sqlx.DB {
	t.Helper()

	sqlDB, err := db.DB()
	require.NoError(t, err)
	return sqlx.NewDb(sqlDB, "sqlite3")
}
