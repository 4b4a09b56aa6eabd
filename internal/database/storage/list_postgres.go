package storage

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/GoArmGo/MovieCatalog/internal/apperrors"
	"github.com/GoArmGo/MovieCatalog/internal/domain"
	"gorm.io/gorm"
)

// ListStorage implements ports.ListStorage. Items live in the table of the list's content type.
type ListStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewListStorage(db *gorm.DB, logger *slog.Logger) *ListStorage {
	return &ListStorage{db: db, logger: logger}
}

func (s *ListStorage) Create(ctx context.Context, list *domain.List) error {
	if err := s.db.WithContext(ctx).Create(list).Error; err != nil {
		s.logger.Error("failed to create list", "user_id", list.UserID, "error", err)
		return translate("create list", err)
	}
	return nil
}

func (s *ListStorage) Get(ctx context.Context, id int) (*domain.List, error) {
	var l domain.List
	if err := s.db.WithContext(ctx).Take(&l, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, translate("get list", err)
	}
	return &l, nil
}

func (s *ListStorage) Update(ctx context.Context, list *domain.List) error {
	if err := s.db.WithContext(ctx).Save(list).Error; err != nil {
		return translate("update list", err)
	}
	return nil
}

func (s *ListStorage) Delete(ctx context.Context, list *domain.List) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM "+list.ContentType.ListItemTable()+" WHERE list_id = ?", list.ID).Error; err != nil {
			return err
		}
		if err := tx.Where("list_id = ?", list.ID).Delete(&domain.ListShare{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.List{}, list.ID).Error
	})
	if err != nil {
		s.logger.Error("failed to delete list", "list_id", list.ID, "error", err)
		return translate("delete list", err)
	}
	return nil
}

func (s *ListStorage) ByUser(ctx context.Context, userID int, includePrivate bool, skip, take int) ([]domain.List, int64, error) {
	tx := s.db.WithContext(ctx).Model(&domain.List{}).Where("user_id = ?", userID)
	if !includePrivate {
		tx = tx.Where("is_private = ?", false)
	}
	return pageLists(tx, skip, take)
}

func (s *ListStorage) SharedWith(ctx context.Context, userID, skip, take int) ([]domain.List, int64, error) {
	shared := s.db.Model(&domain.ListShare{}).Select("list_id").Where("user_id = ?", userID)
	tx := s.db.WithContext(ctx).Model(&domain.List{}).Where("id IN (?)", shared)
	return pageLists(tx, skip, take)
}

func pageLists(tx *gorm.DB, skip, take int) ([]domain.List, int64, error) {
	base := tx.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, translate("count lists", err)
	}

	lists := make([]domain.List, 0)
	if err := base.Order("updated_at DESC").Order("id DESC").Offset(skip).Limit(take).Find(&lists).Error; err != nil {
		return nil, 0, translate("list lists", err)
	}
	return lists, total, nil
}

func (s *ListStorage) Items(ctx context.Context, list *domain.List) ([]domain.ListItem, error) {
	items := make([]domain.ListItem, 0)
	err := s.db.WithContext(ctx).Table(list.ContentType.ListItemTable()).
		Where("list_id = ?", list.ID).
		Order("order_index").Order("id").
		Find(&items).Error
	if err != nil {
		return nil, translate("list items", err)
	}
	return items, nil
}

func (s *ListStorage) GetItem(ctx context.Context, list *domain.List, itemID int) (*domain.ListItem, error) {
	var item domain.ListItem
	err := s.db.WithContext(ctx).Table(list.ContentType.ListItemTable()).
		Where("list_id = ? AND item_id = ?", list.ID, itemID).
		Take(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, translate("get list item", err)
	}
	return &item, nil
}

// AddItem inserts the item and touches the list's updated_at.
func (s *ListStorage) AddItem(ctx context.Context, list *domain.List, item *domain.ListItem) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Table(list.ContentType.ListItemTable()).Create(item).Error; err != nil {
			return err
		}
		return tx.Model(&domain.List{}).Where("id = ?", list.ID).Update("updated_at", item.CreatedAt).Error
	})
	if err != nil {
		s.logger.Error("failed to add list item", "list_id", list.ID, "item_id", item.ItemID, "error", err)
		return translate("add list item", err)
	}
	return nil
}

func (s *ListStorage) RemoveItem(ctx context.Context, list *domain.List, itemID int) error {
	res := s.db.WithContext(ctx).
		Exec("DELETE FROM "+list.ContentType.ListItemTable()+" WHERE list_id = ? AND item_id = ?", list.ID, itemID)
	if res.Error != nil {
		return translate("remove list item", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("list item not found")
	}
	return nil
}

// MaxOrderIndex is -1 for an empty list.
func (s *ListStorage) MaxOrderIndex(ctx context.Context, list *domain.List) (int, error) {
	var maxIndex sql.NullInt64
	err := s.db.WithContext(ctx).Table(list.ContentType.ListItemTable()).
		Where("list_id = ?", list.ID).
		Select("MAX(order_index)").
		Row().Scan(&maxIndex)
	if err != nil {
		return 0, translate("max order index", err)
	}
	if !maxIndex.Valid {
		return -1, nil
	}
	return int(maxIndex.Int64), nil
}

func (s *ListStorage) GetShare(ctx context.Context, listID, userID int) (*domain.ListShare, error) {
	var share domain.ListShare
	err := s.db.WithContext(ctx).Where("list_id = ? AND user_id = ?", listID, userID).Take(&share).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, translate("get share", err)
	}
	return &share, nil
}

func (s *ListStorage) AddShare(ctx context.Context, share *domain.ListShare) error {
	if err := s.db.WithContext(ctx).Create(share).Error; err != nil {
		return translate("add share", err)
	}
	return nil
}

func (s *ListStorage) RemoveShare(ctx context.Context, listID, userID int) error {
	res := s.db.WithContext(ctx).Where("list_id = ? AND user_id = ?", listID, userID).Delete(&domain.ListShare{})
	if res.Error != nil {
		return translate("remove share", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("share not found")
	}
	return nil
}
