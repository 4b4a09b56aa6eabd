package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/GoArmGo/MovieCatalog/internal/apperrors"
	"github.com/GoArmGo/MovieCatalog/internal/domain"
	"github.com/GoArmGo/MovieCatalog/internal/listquery"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CatalogStorage implements ports.CatalogStorage for one catalog kind with GORM.
type CatalogStorage[T any, PT interface {
	*T
	domain.CatalogEntity
}] struct {
	db     *gorm.DB
	kind   domain.Kind
	logger *slog.Logger
}

func NewCatalogStorage[T any, PT interface {
	*T
	domain.CatalogEntity
}](db *gorm.DB, kind domain.Kind, logger *slog.Logger) *CatalogStorage[T, PT] {
	return &CatalogStorage[T, PT]{db: db, kind: kind, logger: logger.With("kind", kind.String())}
}

// List runs the parsed query and counts every matching row.
func (s *CatalogStorage[T, PT]) List(ctx context.Context, q listquery.Parsed) ([]T, int64, error) {
	start := time.Now()

	base := applyFilters(s.db.WithContext(ctx).Model(new(T)), q.Filters).Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		s.logger.Error("failed to count items", "error", err)
		return nil, 0, translate("count items", err)
	}

	items := make([]T, 0)
	err := applyOrder(base, q.OrderBy).
		Offset(q.Skip).
		Limit(q.Take).
		Find(&items).Error
	if err != nil {
		s.logger.Error("failed to list items", "error", err)
		return nil, 0, translate("list items", err)
	}

	s.logger.Debug("items listed",
		"count", len(items),
		"total", total,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return items, total, nil
}

// Get returns nil, nil when the item does not exist.
func (s *CatalogStorage[T, PT]) Get(ctx context.Context, id int) (*T, error) {
	var item T
	err := s.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, translate("get item", err)
	}
	return &item, nil
}

func (s *CatalogStorage[T, PT]) GetMany(ctx context.Context, ids []int) ([]T, error) {
	items := make([]T, 0, len(ids))
	if len(ids) == 0 {
		return items, nil
	}
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, translate("get items", err)
	}
	return items, nil
}

// Create inserts the item and its link rows in one transaction.
func (s *CatalogStorage[T, PT]) Create(ctx context.Context, item *T, links domain.Links) error {
	start := time.Now()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(item).Error; err != nil {
			return err
		}
		return s.writeLinks(tx, PT(item).GetID(), links)
	})
	if err != nil {
		s.logger.Error("failed to create item", "error", err)
		return translate("create item", err)
	}

	s.logger.Info("item created",
		"id", PT(item).GetID(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// Update writes the non-zero fields of patch. Link sets that are nil stay as they are.
func (s *CatalogStorage[T, PT]) Update(ctx context.Context, id int, patch *T, links domain.Links) error {
	start := time.Now()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(new(T)).Where("id = ?", id).Updates(patch).Error; err != nil {
			return err
		}
		return s.writeLinks(tx, id, links)
	})
	if err != nil {
		s.logger.Error("failed to update item", "id", id, "error", err)
		return translate("update item", err)
	}

	s.logger.Info("item updated", "id", id, "duration_ms", time.Since(start).Milliseconds())
	return nil
}

// Delete removes the item together with its links, reviews, votes, favorites and list entries.
// Deleting a genre, actor or crew member also drops the links pointing at it.
func (s *CatalogStorage[T, PT]) Delete(ctx context.Context, id int) error {
	start := time.Now()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, lt := range s.kind.LinkTables() {
			if err := tx.Exec("DELETE FROM "+lt.Table+" WHERE "+lt.ItemColumn+" = ?", id).Error; err != nil {
				return err
			}
		}
		for _, owner := range []domain.Kind{domain.KindMovie, domain.KindSerie} {
			for _, lt := range owner.LinkTables() {
				if lt.Related != s.kind {
					continue
				}
				if err := tx.Exec("DELETE FROM "+lt.Table+" WHERE "+lt.RelatedColumn+" = ?", id).Error; err != nil {
					return err
				}
			}
		}
		if s.kind.Reviewable() {
			for _, table := range []string{
				s.kind.UpvoteTable(),
				s.kind.DownvoteTable(),
				s.kind.ReviewTable(),
				s.kind.FavoriteTable(),
				s.kind.ListItemTable(),
			} {
				if err := tx.Exec("DELETE FROM "+table+" WHERE item_id = ?", id).Error; err != nil {
					return err
				}
			}
		}

		res := tx.Delete(new(T), id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.NotFound(fmt.Sprintf("%s not found", s.kind))
		}
		return nil
	})
	if err != nil {
		if !apperrors.IsNotFound(err) {
			s.logger.Error("failed to delete item", "id", id, "error", err)
		}
		return translate("delete item", err)
	}

	s.logger.Info("item deleted", "id", id, "duration_ms", time.Since(start).Milliseconds())
	return nil
}

func (s *CatalogStorage[T, PT]) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(new(T)).Count(&total).Error; err != nil {
		return 0, translate("count items", err)
	}
	return total, nil
}

// Latest orders by date_aired for kinds that have it, otherwise by id.
func (s *CatalogStorage[T, PT]) Latest(ctx context.Context, limit int) ([]T, error) {
	tx := s.db.WithContext(ctx).Model(new(T))
	if s.kind.HasDateAired() {
		tx = tx.Order("date_aired DESC")
	}

	items := make([]T, 0, limit)
	if err := tx.Order("id DESC").Limit(limit).Find(&items).Error; err != nil {
		return nil, translate("latest items", err)
	}
	return items, nil
}

// Related lists the other items sharing at least one genre with id.
// It returns nil, 0 when the item has no genres or no peers.
func (s *CatalogStorage[T, PT]) Related(ctx context.Context, id, skip, take int) ([]T, int64, error) {
	if !s.kind.HasGenres() {
		return nil, 0, nil
	}
	genres := s.kind.LinkTables()[0]
	db := s.db.WithContext(ctx)

	var genreIDs []int
	err := db.Table(genres.Table).
		Where(genres.ItemColumn+" = ?", id).
		Pluck(genres.RelatedColumn, &genreIDs).Error
	if err != nil {
		return nil, 0, translate("item genres", err)
	}
	if len(genreIDs) == 0 {
		return nil, 0, nil
	}

	peers := db.Table(genres.Table).
		Select(genres.ItemColumn).
		Where(genres.RelatedColumn+" IN ? AND "+genres.ItemColumn+" <> ?", genreIDs, id)

	base := db.Model(new(T)).Where("id IN (?)", peers).Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, translate("count related", err)
	}
	if total == 0 {
		return nil, 0, nil
	}

	var items []T
	if err := base.Order("id").Offset(skip).Limit(take).Find(&items).Error; err != nil {
		return nil, 0, translate("related items", err)
	}
	return items, total, nil
}

// Relations loads genre, cast and crew summaries of a movie or serie.
func (s *CatalogStorage[T, PT]) Relations(ctx context.Context, id int) (*domain.Relations, error) {
	rel := &domain.Relations{Genres: []domain.Genre{}, Cast: []domain.Actor{}, Crew: []domain.Crew{}}
	if !s.kind.HasGenres() {
		return rel, nil
	}
	db := s.db.WithContext(ctx)

	for _, lt := range s.kind.LinkTables() {
		var dest any
		switch lt.Related {
		case domain.KindGenre:
			dest = &rel.Genres
		case domain.KindActor:
			dest = &rel.Cast
		case domain.KindCrew:
			dest = &rel.Crew
		}
		related := lt.Related.Table()
		err := db.Joins(fmt.Sprintf("JOIN %s l ON l.%s = %s.id", lt.Table, lt.RelatedColumn, related)).
			Where("l."+lt.ItemColumn+" = ?", id).
			Order(related + ".id").
			Find(dest).Error
		if err != nil {
			return nil, translate("load "+lt.Table, err)
		}
	}
	return rel, nil
}

func (s *CatalogStorage[T, PT]) SetPhoto(ctx context.Context, id int, url string) error {
	err := s.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Update("photo_src", url).Error
	if err != nil {
		s.logger.Error("failed to set photo", "id", id, "error", err)
		return translate("set photo", err)
	}
	return nil
}

func (s *CatalogStorage[T, PT]) writeLinks(tx *gorm.DB, id int, links domain.Links) error {
	for _, lt := range s.kind.LinkTables() {
		ids := links.IDs(lt.Related)
		if ids == nil {
			continue
		}
		if err := tx.Exec("DELETE FROM "+lt.Table+" WHERE "+lt.ItemColumn+" = ?", id).Error; err != nil {
			return err
		}
		insert := fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES (?, ?)", lt.Table, lt.ItemColumn, lt.RelatedColumn)
		seen := make(map[int]bool, len(ids))
		for _, relatedID := range ids {
			if seen[relatedID] {
				continue
			}
			seen[relatedID] = true
			if err := tx.Exec(insert, id, relatedID).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern matches needle literally anywhere in the value.
func containsPattern(needle string) string {
	return "%" + likeEscaper.Replace(needle) + "%"
}

// applyFilters expects columns that were resolved through a whitelist.
func applyFilters(tx *gorm.DB, filters []listquery.Predicate) *gorm.DB {
	for _, f := range filters {
		switch f.Op {
		case listquery.OpContains:
			tx = tx.Where("LOWER("+f.Column+") LIKE ? ESCAPE '\\'", containsPattern(fmt.Sprint(f.Value)))
		case listquery.OpGreater:
			tx = tx.Where(f.Column+" > ?", f.Value)
		case listquery.OpLess:
			tx = tx.Where(f.Column+" < ?", f.Value)
		default:
			if _, ok := f.Value.(string); ok {
				tx = tx.Where("LOWER("+f.Column+") = ?", f.Value)
			} else {
				tx = tx.Where(f.Column+" = ?", f.Value)
			}
		}
	}
	return tx
}

func applyOrder(tx *gorm.DB, o listquery.OrderBy) *gorm.DB {
	col := o.Column
	if col == "" {
		col = "id"
	}
	tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: col}, Desc: o.Desc})
	if col != "id" {
		tx = tx.Order("id")
	}
	return tx
}
