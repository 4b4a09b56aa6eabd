package storage

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/GoArmGo/MovieCatalog/internal/apperrors"
	"github.com/GoArmGo/MovieCatalog/internal/domain"
	"gorm.io/gorm"
)

// ItemStorage checks catalog rows of any kind.
type ItemStorage struct {
	db *gorm.DB
}

func NewItemStorage(db *gorm.DB) *ItemStorage {
	return &ItemStorage{db: db}
}

func (s *ItemStorage) Exists(ctx context.Context, kind domain.Kind, id int) (bool, error) {
	var n int64
	if err := s.db.WithContext(ctx).Table(kind.Table()).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, translate("item exists", err)
	}
	return n > 0, nil
}

func (s *ItemStorage) CountExisting(ctx context.Context, kind domain.Kind, ids []int) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var n int64
	if err := s.db.WithContext(ctx).Table(kind.Table()).Where("id IN ?", ids).Count(&n).Error; err != nil {
		return 0, translate("count existing items", err)
	}
	return n, nil
}

// ReviewStorage implements ports.ReviewStorage over the per-kind review tables.
type ReviewStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewReviewStorage(db *gorm.DB, logger *slog.Logger) *ReviewStorage {
	return &ReviewStorage{db: db, logger: logger}
}

func (s *ReviewStorage) ListByItem(ctx context.Context, kind domain.Kind, itemID, skip, take int) ([]domain.Review, int64, error) {
	return s.list(ctx, kind, "item_id = ?", itemID, skip, take)
}

func (s *ReviewStorage) ListByUser(ctx context.Context, kind domain.Kind, userID, skip, take int) ([]domain.Review, int64, error) {
	return s.list(ctx, kind, "user_id = ?", userID, skip, take)
}

func (s *ReviewStorage) list(ctx context.Context, kind domain.Kind, cond string, arg, skip, take int) ([]domain.Review, int64, error) {
	base := s.db.WithContext(ctx).Table(kind.ReviewTable()).Where(cond, arg).Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, translate("count reviews", err)
	}

	reviews := make([]domain.Review, 0)
	if err := base.Order("created_at DESC").Order("id DESC").Offset(skip).Limit(take).Find(&reviews).Error; err != nil {
		return nil, 0, translate("list reviews", err)
	}
	return reviews, total, nil
}

func (s *ReviewStorage) Get(ctx context.Context, kind domain.Kind, id int) (*domain.Review, error) {
	return s.first(ctx, kind, "id = ?", id)
}

func (s *ReviewStorage) FindByUserAndItem(ctx context.Context, kind domain.Kind, userID, itemID int) (*domain.Review, error) {
	return s.first(ctx, kind, "user_id = ? AND item_id = ?", userID, itemID)
}

func (s *ReviewStorage) first(ctx context.Context, kind domain.Kind, cond string, args ...any) (*domain.Review, error) {
	var r domain.Review
	err := s.db.WithContext(ctx).Table(kind.ReviewTable()).Where(cond, args...).Take(&r).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, translate("get review", err)
	}
	return &r, nil
}

func (s *ReviewStorage) Create(ctx context.Context, kind domain.Kind, review *domain.Review) error {
	if err := s.db.WithContext(ctx).Table(kind.ReviewTable()).Create(review).Error; err != nil {
		s.logger.Error("failed to create review", "kind", kind, "item_id", review.ItemID, "error", err)
		return translate("create review", err)
	}
	s.logger.Info("review created", "kind", kind, "id", review.ID, "item_id", review.ItemID)
	return nil
}

func (s *ReviewStorage) Update(ctx context.Context, kind domain.Kind, review *domain.Review) error {
	err := s.db.WithContext(ctx).Table(kind.ReviewTable()).
		Where("id = ?", review.ID).
		Updates(map[string]any{
			"content":    review.Content,
			"rating":     review.Rating,
			"updated_at": review.UpdatedAt,
		}).Error
	if err != nil {
		s.logger.Error("failed to update review", "kind", kind, "id", review.ID, "error", err)
		return translate("update review", err)
	}
	return nil
}

func (s *ReviewStorage) Delete(ctx context.Context, kind domain.Kind, review *domain.Review) error {
	start := time.Now()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, table := range []string{kind.UpvoteTable(), kind.DownvoteTable()} {
			if err := tx.Exec("DELETE FROM "+table+" WHERE review_id = ?", review.ID).Error; err != nil {
				return err
			}
		}
		return tx.Exec("DELETE FROM "+kind.ReviewTable()+" WHERE id = ?", review.ID).Error
	})
	if err != nil {
		s.logger.Error("failed to delete review", "kind", kind, "id", review.ID, "error", err)
		return translate("delete review", err)
	}

	s.logger.Info("review deleted",
		"kind", kind,
		"id", review.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

func (s *ReviewStorage) ReviewedItems(ctx context.Context, kind domain.Kind, userID int, itemIDs []int) (map[int]bool, error) {
	return flagged(ctx, s.db, kind.ReviewTable(), userID, itemIDs)
}

// flagged returns the subset of itemIDs that have a row for userID in table.
func flagged(ctx context.Context, db *gorm.DB, table string, userID int, itemIDs []int) (map[int]bool, error) {
	out := make(map[int]bool, len(itemIDs))
	if len(itemIDs) == 0 {
		return out, nil
	}
	var found []int
	err := db.WithContext(ctx).Table(table).
		Where("user_id = ? AND item_id IN ?", userID, itemIDs).
		Pluck("item_id", &found).Error
	if err != nil {
		return nil, translate("flag items", err)
	}
	for _, id := range found {
		out[id] = true
	}
	return out, nil
}

// VoteStorage implements ports.VoteStorage over the upvote/downvote tables.
type VoteStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewVoteStorage(db *gorm.DB, logger *slog.Logger) *VoteStorage {
	return &VoteStorage{db: db, logger: logger}
}

func (s *VoteStorage) Exists(ctx context.Context, kind domain.Kind, up bool, userID, reviewID int) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Table(kind.VoteTable(up)).
		Where("user_id = ? AND review_id = ?", userID, reviewID).
		Count(&n).Error
	if err != nil {
		return false, translate("vote exists", err)
	}
	return n > 0, nil
}

func (s *VoteStorage) Add(ctx context.Context, kind domain.Kind, up bool, vote *domain.Vote) error {
	if err := s.db.WithContext(ctx).Table(kind.VoteTable(up)).Create(vote).Error; err != nil {
		s.logger.Error("failed to add vote", "table", kind.VoteTable(up), "review_id", vote.ReviewID, "error", err)
		return translate("add vote", err)
	}
	return nil
}

func (s *VoteStorage) Remove(ctx context.Context, kind domain.Kind, up bool, userID, reviewID int) error {
	res := s.db.WithContext(ctx).
		Exec("DELETE FROM "+kind.VoteTable(up)+" WHERE user_id = ? AND review_id = ?", userID, reviewID)
	if res.Error != nil {
		return translate("remove vote", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("vote not found")
	}
	return nil
}

func (s *VoteStorage) Voters(ctx context.Context, kind domain.Kind, reviewIDs []int) (map[int]domain.VoteSet, error) {
	out := make(map[int]domain.VoteSet, len(reviewIDs))
	if len(reviewIDs) == 0 {
		return out, nil
	}

	for _, up := range []bool{true, false} {
		var votes []domain.Vote
		err := s.db.WithContext(ctx).Table(kind.VoteTable(up)).
			Where("review_id IN ?", reviewIDs).
			Order("id").
			Find(&votes).Error
		if err != nil {
			return nil, translate("load voters", err)
		}
		for _, v := range votes {
			set := out[v.ReviewID]
			if up {
				set.Upvoters = append(set.Upvoters, v.UserID)
			} else {
				set.Downvoters = append(set.Downvoters, v.UserID)
			}
			out[v.ReviewID] = set
		}
	}
	return out, nil
}

// FavoriteStorage implements ports.FavoriteStorage over the per-kind favorite tables.
type FavoriteStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewFavoriteStorage(db *gorm.DB, logger *slog.Logger) *FavoriteStorage {
	return &FavoriteStorage{db: db, logger: logger}
}

func (s *FavoriteStorage) Exists(ctx context.Context, kind domain.Kind, userID, itemID int) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Table(kind.FavoriteTable()).
		Where("user_id = ? AND item_id = ?", userID, itemID).
		Count(&n).Error
	if err != nil {
		return false, translate("favorite exists", err)
	}
	return n > 0, nil
}

func (s *FavoriteStorage) Add(ctx context.Context, kind domain.Kind, fav *domain.Favorite) error {
	if err := s.db.WithContext(ctx).Table(kind.FavoriteTable()).Create(fav).Error; err != nil {
		s.logger.Error("failed to add favorite", "kind", kind, "item_id", fav.ItemID, "error", err)
		return translate("add favorite", err)
	}
	return nil
}

func (s *FavoriteStorage) Remove(ctx context.Context, kind domain.Kind, userID, itemID int) error {
	res := s.db.WithContext(ctx).
		Exec("DELETE FROM "+kind.FavoriteTable()+" WHERE user_id = ? AND item_id = ?", userID, itemID)
	if res.Error != nil {
		return translate("remove favorite", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("favorite not found")
	}
	return nil
}

// ItemIDs pages through a user's favorites, newest first.
func (s *FavoriteStorage) ItemIDs(ctx context.Context, kind domain.Kind, userID, skip, take int) ([]int, int64, error) {
	base := s.db.WithContext(ctx).Table(kind.FavoriteTable()).Where("user_id = ?", userID).Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, translate("count favorites", err)
	}

	ids := make([]int, 0)
	err := base.Order("created_at DESC").Order("id DESC").Offset(skip).Limit(take).Pluck("item_id", &ids).Error
	if err != nil {
		return nil, 0, translate("list favorites", err)
	}
	return ids, total, nil
}

func (s *FavoriteStorage) Bookmarked(ctx context.Context, kind domain.Kind, userID int, itemIDs []int) (map[int]bool, error) {
	return flagged(ctx, s.db, kind.FavoriteTable(), userID, itemIDs)
}
