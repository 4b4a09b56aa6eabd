package storage

import (
	"context"
	"errors"
	"log/slog"

	"github.com/GoArmGo/MovieCatalog/internal/apperrors"
	"github.com/GoArmGo/MovieCatalog/internal/domain"
	"gorm.io/gorm"
)

// FollowStorage implements ports.FollowStorage.
type FollowStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewFollowStorage(db *gorm.DB, logger *slog.Logger) *FollowStorage {
	return &FollowStorage{db: db, logger: logger}
}

func (s *FollowStorage) Get(ctx context.Context, followerID, followingID int) (*domain.Follow, error) {
	var f domain.Follow
	err := s.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Take(&f).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, translate("get follow", err)
	}
	return &f, nil
}

// CreateWithNotification stores a pending edge and the recipient's notification together.
func (s *FollowStorage) CreateWithNotification(ctx context.Context, follow *domain.Follow, n *domain.Notification) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(follow).Error; err != nil {
			return err
		}
		n.EntityID = follow.ID
		return tx.Create(n).Error
	})
	if err != nil {
		s.logger.Error("failed to create follow",
			"follower_id", follow.FollowerID,
			"following_id", follow.FollowingID,
			"error", err,
		)
		return translate("create follow", err)
	}
	return nil
}

func (s *FollowStorage) Accept(ctx context.Context, follow *domain.Follow, n *domain.Notification) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Follow{}).
			Where("id = ? AND state = ?", follow.ID, domain.FollowPending).
			Update("state", domain.FollowAccepted)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.NotFound("follow request not found")
		}
		n.EntityID = follow.ID
		return tx.Create(n).Error
	})
	if err != nil {
		return translate("accept follow", err)
	}
	follow.State = domain.FollowAccepted
	return nil
}

func (s *FollowStorage) Delete(ctx context.Context, follow *domain.Follow) error {
	if err := s.db.WithContext(ctx).Delete(&domain.Follow{}, follow.ID).Error; err != nil {
		return translate("delete follow", err)
	}
	return nil
}

func (s *FollowStorage) Followers(ctx context.Context, userID int, state domain.FollowState, skip, take int) ([]domain.Follow, int64, error) {
	return s.page(ctx, "following_id = ?", userID, state, skip, take)
}

func (s *FollowStorage) Following(ctx context.Context, userID int, state domain.FollowState, skip, take int) ([]domain.Follow, int64, error) {
	return s.page(ctx, "follower_id = ?", userID, state, skip, take)
}

func (s *FollowStorage) page(ctx context.Context, cond string, userID int, state domain.FollowState, skip, take int) ([]domain.Follow, int64, error) {
	base := s.db.WithContext(ctx).Model(&domain.Follow{}).
		Where(cond, userID).
		Where("state = ?", state).
		Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, translate("count follows", err)
	}

	follows := make([]domain.Follow, 0)
	if err := base.Order("created_at DESC").Order("id DESC").Offset(skip).Limit(take).Find(&follows).Error; err != nil {
		return nil, 0, translate("list follows", err)
	}
	return follows, total, nil
}

// Counts returns the accepted followers and following of a user.
func (s *FollowStorage) Counts(ctx context.Context, userID int) (int64, int64, error) {
	db := s.db.WithContext(ctx)

	var followers, following int64
	err := db.Model(&domain.Follow{}).
		Where("following_id = ? AND state = ?", userID, domain.FollowAccepted).
		Count(&followers).Error
	if err != nil {
		return 0, 0, translate("count followers", err)
	}
	err = db.Model(&domain.Follow{}).
		Where("follower_id = ? AND state = ?", userID, domain.FollowAccepted).
		Count(&following).Error
	if err != nil {
		return 0, 0, translate("count following", err)
	}
	return followers, following, nil
}

// MessageStorage implements ports.MessageStorage.
type MessageStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewMessageStorage(db *gorm.DB, logger *slog.Logger) *MessageStorage {
	return &MessageStorage{db: db, logger: logger}
}

func (s *MessageStorage) CreateWithNotification(ctx context.Context, m *domain.Message, n *domain.Notification) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		n.EntityID = m.ID
		return tx.Create(n).Error
	})
	if err != nil {
		s.logger.Error("failed to create message", "sender_id", m.SenderID, "receiver_id", m.ReceiverID, "error", err)
		return translate("create message", err)
	}
	return nil
}

func (s *MessageStorage) Conversation(ctx context.Context, userA, userB, skip, take int) ([]domain.Message, int64, error) {
	tx := s.db.WithContext(ctx).Model(&domain.Message{}).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", userA, userB, userB, userA)
	return pageMessages(tx, skip, take)
}

func (s *MessageStorage) Inbox(ctx context.Context, userID, skip, take int) ([]domain.Message, int64, error) {
	tx := s.db.WithContext(ctx).Model(&domain.Message{}).Where("receiver_id = ?", userID)
	return pageMessages(tx, skip, take)
}

func pageMessages(tx *gorm.DB, skip, take int) ([]domain.Message, int64, error) {
	base := tx.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, translate("count messages", err)
	}

	messages := make([]domain.Message, 0)
	if err := base.Order("created_at DESC").Order("id DESC").Offset(skip).Limit(take).Find(&messages).Error; err != nil {
		return nil, 0, translate("list messages", err)
	}
	return messages, total, nil
}

func (s *MessageStorage) Get(ctx context.Context, id int) (*domain.Message, error) {
	var m domain.Message
	if err := s.db.WithContext(ctx).Take(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, translate("get message", err)
	}
	return &m, nil
}

func (s *MessageStorage) MarkRead(ctx context.Context, id int) error {
	err := s.db.WithContext(ctx).Model(&domain.Message{}).Where("id = ?", id).Update("is_read", true).Error
	return translate("mark message read", err)
}

// NotificationStorage implements ports.NotificationStorage.
type NotificationStorage struct {
	db *gorm.DB
}

func NewNotificationStorage(db *gorm.DB) *NotificationStorage {
	return &NotificationStorage{db: db}
}

func (s *NotificationStorage) List(ctx context.Context, userID, skip, take int) ([]domain.Notification, int64, error) {
	base := s.db.WithContext(ctx).Model(&domain.Notification{}).Where("user_id = ?", userID).Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, translate("count notifications", err)
	}

	list := make([]domain.Notification, 0)
	if err := base.Order("created_at DESC").Order("id DESC").Offset(skip).Limit(take).Find(&list).Error; err != nil {
		return nil, 0, translate("list notifications", err)
	}
	return list, total, nil
}

func (s *NotificationStorage) Get(ctx context.Context, id int) (*domain.Notification, error) {
	var n domain.Notification
	if err := s.db.WithContext(ctx).Take(&n, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, translate("get notification", err)
	}
	return &n, nil
}

func (s *NotificationStorage) MarkRead(ctx context.Context, id int) error {
	err := s.db.WithContext(ctx).Model(&domain.Notification{}).Where("id = ?", id).Update("is_read", true).Error
	return translate("mark notification read", err)
}
