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

// UserStorage implements ports.UserStorage with GORM.
type UserStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewUserStorage creates a new UserStorage
func NewUserStorage(db *gorm.DB, logger *slog.Logger) *UserStorage {
	return &UserStorage{db: db, logger: logger}
}

func (s *UserStorage) Get(ctx context.Context, id int) (*domain.User, error) {
	return s.first(ctx, "id = ?", id)
}

func (s *UserStorage) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.first(ctx, "email = ?", email)
}

func (s *UserStorage) first(ctx context.Context, cond string, args ...any) (*domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).Where(cond, args...).Take(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, translate("get user", err)
	}
	return &user, nil
}

func (s *UserStorage) GetMany(ctx context.Context, ids []int) ([]domain.User, error) {
	users := make([]domain.User, 0, len(ids))
	if len(ids) == 0 {
		return users, nil
	}
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, translate("get users", err)
	}
	return users, nil
}

func (s *UserStorage) ExistsByEmailOrUserName(ctx context.Context, email, userName string) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&domain.User{}).
		Where("email = ? OR user_name = ?", email, userName).
		Count(&n).Error
	if err != nil {
		return false, translate("user exists", err)
	}
	return n > 0, nil
}

// Search matches active users whose user name contains the needle.
func (s *UserStorage) Search(ctx context.Context, userName string, skip, take int) ([]domain.User, int64, error) {
	tx := s.db.WithContext(ctx).Model(&domain.User{}).Where("active = ?", true)
	if userName != "" {
		tx = tx.Where("user_name LIKE ? ESCAPE '\\'", containsPattern(userName))
	}
	base := tx.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, translate("count users", err)
	}

	users := make([]domain.User, 0)
	if err := base.Order("user_name").Offset(skip).Limit(take).Find(&users).Error; err != nil {
		return nil, 0, translate("search users", err)
	}
	return users, total, nil
}

func (s *UserStorage) Update(ctx context.Context, user *domain.User) error {
	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		s.logger.Error("failed to update user", "user_id", user.ID, "error", err)
		return translate("update user", err)
	}
	return nil
}

// CreateWithToken inserts an inactive user and its activation token in one transaction.
func (s *UserStorage) CreateWithToken(ctx context.Context, user *domain.User, token *domain.UserToken) error {
	start := time.Now()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		token.UserID = user.ID
		return tx.Create(token).Error
	})
	if err != nil {
		s.logger.Error("failed to create user", "user_name", user.UserName, "error", err)
		return translate("create user", err)
	}

	s.logger.Info("user created",
		"user_id", user.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

func (s *UserStorage) CreateToken(ctx context.Context, token *domain.UserToken) error {
	if err := s.db.WithContext(ctx).Create(token).Error; err != nil {
		return translate("create token", err)
	}
	return nil
}

func (s *UserStorage) FindToken(ctx context.Context, token, tokenType string) (*domain.UserToken, error) {
	var t domain.UserToken
	err := s.db.WithContext(ctx).Where("token = ? AND type = ?", token, tokenType).Take(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, translate("find token", err)
	}
	return &t, nil
}

// Activate marks the user active and the token used in one transaction.
func (s *UserStorage) Activate(ctx context.Context, token *domain.UserToken, now time.Time) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := consumeToken(tx, token, now); err != nil {
			return err
		}
		return tx.Model(&domain.User{}).Where("id = ?", token.UserID).
			Updates(map[string]any{"active": true, "updated_at": now}).Error
	})
	if err != nil {
		s.logger.Error("failed to activate user", "user_id", token.UserID, "error", err)
		return translate("activate user", err)
	}
	s.logger.Info("user activated", "user_id", token.UserID)
	return nil
}

// ResetPassword stores the new hash and marks the token used in one transaction.
func (s *UserStorage) ResetPassword(ctx context.Context, token *domain.UserToken, passwordHash string, now time.Time) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := consumeToken(tx, token, now); err != nil {
			return err
		}
		return tx.Model(&domain.User{}).Where("id = ?", token.UserID).
			Updates(map[string]any{"password_hash": passwordHash, "updated_at": now}).Error
	})
	if err != nil {
		s.logger.Error("failed to reset password", "user_id", token.UserID, "error", err)
		return translate("reset password", err)
	}
	return nil
}

// consumeToken fails when another request used the token first.
func consumeToken(tx *gorm.DB, token *domain.UserToken, now time.Time) error {
	res := tx.Model(&domain.UserToken{}).
		Where("id = ? AND used_at IS NULL", token.ID).
		Update("used_at", now)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.BadRequest("invalid or expired token")
	}
	token.UsedAt = &now
	return nil
}
