package storage

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/GoArmGo/MovieCatalog/internal/domain"
	"gorm.io/gorm"
)

// ForumStorage implements ports.ForumStorage.
type ForumStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewForumStorage(db *gorm.DB, logger *slog.Logger) *ForumStorage {
	return &ForumStorage{db: db, logger: logger}
}

func (s *ForumStorage) ListCategories(ctx context.Context, activeOnly bool) ([]domain.ForumCategory, error) {
	tx := s.db.WithContext(ctx).Model(&domain.ForumCategory{})
	if activeOnly {
		tx = tx.Where("is_active = ?", true)
	}
	categories := make([]domain.ForumCategory, 0)
	if err := tx.Order("sort_order").Order("id").Find(&categories).Error; err != nil {
		return nil, translate("list categories", err)
	}
	return categories, nil
}

func (s *ForumStorage) GetCategory(ctx context.Context, id int) (*domain.ForumCategory, error) {
	var c domain.ForumCategory
	if err := s.db.WithContext(ctx).Take(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, translate("get category", err)
	}
	return &c, nil
}

func (s *ForumStorage) CreateCategory(ctx context.Context, c *domain.ForumCategory) error {
	if err := s.db.WithContext(ctx).Create(c).Error; err != nil {
		s.logger.Error("failed to create category", "name", c.Name, "error", err)
		return translate("create category", err)
	}
	return nil
}

func (s *ForumStorage) UpdateCategory(ctx context.Context, c *domain.ForumCategory) error {
	if err := s.db.WithContext(ctx).Save(c).Error; err != nil {
		return translate("update category", err)
	}
	return nil
}

func (s *ForumStorage) DeleteCategory(ctx context.Context, c *domain.ForumCategory) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		topics := tx.Model(&domain.ForumTopic{}).Select("id").Where("category_id = ?", c.ID)
		if err := tx.Where("topic_id IN (?)", topics).Delete(&domain.ForumPost{}).Error; err != nil {
			return err
		}
		if err := tx.Where("category_id = ?", c.ID).Delete(&domain.ForumTopic{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.ForumCategory{}, c.ID).Error
	})
	if err != nil {
		s.logger.Error("failed to delete category", "category_id", c.ID, "error", err)
		return translate("delete category", err)
	}
	return nil
}

// ListTopics returns pinned topics first, then the most recently active.
func (s *ForumStorage) ListTopics(ctx context.Context, categoryID, skip, take int) ([]domain.ForumTopic, int64, error) {
	base := s.db.WithContext(ctx).Model(&domain.ForumTopic{}).Where("category_id = ?", categoryID).Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, translate("count topics", err)
	}

	topics := make([]domain.ForumTopic, 0)
	err := base.Order("is_pinned DESC").Order("updated_at DESC").Order("id DESC").
		Offset(skip).Limit(take).
		Find(&topics).Error
	if err != nil {
		return nil, 0, translate("list topics", err)
	}
	return topics, total, nil
}

func (s *ForumStorage) GetTopic(ctx context.Context, id int) (*domain.ForumTopic, error) {
	var t domain.ForumTopic
	if err := s.db.WithContext(ctx).Take(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, translate("get topic", err)
	}
	return &t, nil
}

// CreateTopicWithPost stores the topic and its opening post together.
func (s *ForumStorage) CreateTopicWithPost(ctx context.Context, t *domain.ForumTopic, first *domain.ForumPost) error {
	start := time.Now()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(t).Error; err != nil {
			return err
		}
		first.TopicID = t.ID
		return tx.Create(first).Error
	})
	if err != nil {
		s.logger.Error("failed to create topic", "category_id", t.CategoryID, "error", err)
		return translate("create topic", err)
	}

	s.logger.Info("topic created",
		"topic_id", t.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

func (s *ForumStorage) UpdateTopic(ctx context.Context, t *domain.ForumTopic) error {
	if err := s.db.WithContext(ctx).Save(t).Error; err != nil {
		return translate("update topic", err)
	}
	return nil
}

func (s *ForumStorage) DeleteTopic(ctx context.Context, t *domain.ForumTopic) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("topic_id = ?", t.ID).Delete(&domain.ForumPost{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.ForumTopic{}, t.ID).Error
	})
	if err != nil {
		s.logger.Error("failed to delete topic", "topic_id", t.ID, "error", err)
		return translate("delete topic", err)
	}
	return nil
}

// IncrementViews does not touch updated_at so reading never reorders topics.
func (s *ForumStorage) IncrementViews(ctx context.Context, id int) error {
	err := s.db.WithContext(ctx).Model(&domain.ForumTopic{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error
	return translate("increment views", err)
}

// ListPosts returns posts oldest first.
func (s *ForumStorage) ListPosts(ctx context.Context, topicID, skip, take int) ([]domain.ForumPost, int64, error) {
	base := s.db.WithContext(ctx).Model(&domain.ForumPost{}).Where("topic_id = ?", topicID).Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, translate("count posts", err)
	}

	posts := make([]domain.ForumPost, 0)
	if err := base.Order("created_at").Order("id").Offset(skip).Limit(take).Find(&posts).Error; err != nil {
		return nil, 0, translate("list posts", err)
	}
	return posts, total, nil
}

func (s *ForumStorage) GetPost(ctx context.Context, id int) (*domain.ForumPost, error) {
	var p domain.ForumPost
	if err := s.db.WithContext(ctx).Take(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, translate("get post", err)
	}
	return &p, nil
}

func (s *ForumStorage) CreatePost(ctx context.Context, p *domain.ForumPost) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		return tx.Model(&domain.ForumTopic{}).Where("id = ?", p.TopicID).
			UpdateColumn("updated_at", p.CreatedAt).Error
	})
	if err != nil {
		s.logger.Error("failed to create post", "topic_id", p.TopicID, "error", err)
		return translate("create post", err)
	}
	return nil
}

func (s *ForumStorage) UpdatePost(ctx context.Context, p *domain.ForumPost) error {
	if err := s.db.WithContext(ctx).Save(p).Error; err != nil {
		return translate("update post", err)
	}
	return nil
}
