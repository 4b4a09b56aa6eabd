package storage

import (
	"fmt"

	"github.com/GoArmGo/MovieCatalog/internal/domain"
	"gorm.io/gorm"
)

// AutoMigrate creates the whole schema through gorm. Production databases are
// migrated with the SQL files under internal/database/postgres/migrations;
// this is used for SQLite test databases and local development.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.Movie{}, &domain.Serie{}, &domain.Season{}, &domain.Episode{},
		&domain.Actor{}, &domain.Crew{}, &domain.Genre{},
		&domain.User{}, &domain.UserToken{},
		&domain.Follow{}, &domain.Notification{}, &domain.Message{},
		&domain.List{}, &domain.ListShare{},
		&domain.ForumCategory{}, &domain.ForumTopic{}, &domain.ForumPost{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	idColumn := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if db.Dialector.Name() == "postgres" {
		idColumn = "SERIAL PRIMARY KEY"
	}

	for _, kind := range []domain.Kind{domain.KindMovie, domain.KindSerie} {
		for _, lt := range kind.LinkTables() {
			ddl := fmt.Sprintf(
				"CREATE TABLE IF NOT EXISTS %s (id %s, %s INTEGER NOT NULL, %s INTEGER NOT NULL)",
				lt.Table, idColumn, lt.ItemColumn, lt.RelatedColumn,
			)
			if err := db.Exec(ddl).Error; err != nil {
				return fmt.Errorf("create %s: %w", lt.Table, err)
			}
			idx := fmt.Sprintf("CREATE UNIQUE INDEX IF NOT EXISTS uq_%s_pair ON %s (%s, %s)",
				lt.Table, lt.Table, lt.ItemColumn, lt.RelatedColumn)
			if err := db.Exec(idx).Error; err != nil {
				return fmt.Errorf("index %s: %w", lt.Table, err)
			}
		}
	}

	for _, kind := range domain.ReviewableKinds {
		tables := []struct {
			name   string
			model  any
			unique string
		}{
			{kind.ReviewTable(), &domain.Review{}, "user_id, item_id"},
			{kind.FavoriteTable(), &domain.Favorite{}, "user_id, item_id"},
			{kind.UpvoteTable(), &domain.Vote{}, "user_id, review_id"},
			{kind.DownvoteTable(), &domain.Vote{}, "user_id, review_id"},
			{kind.ListItemTable(), &domain.ListItem{}, "list_id, item_id"},
		}
		for _, t := range tables {
			if err := db.Table(t.name).AutoMigrate(t.model); err != nil {
				return fmt.Errorf("auto migrate %s: %w", t.name, err)
			}
			idx := fmt.Sprintf("CREATE UNIQUE INDEX IF NOT EXISTS uq_%s_pair ON %s (%s)", t.name, t.name, t.unique)
			if err := db.Exec(idx).Error; err != nil {
				return fmt.Errorf("index %s: %w", t.name, err)
			}
		}
	}

	return nil
}
