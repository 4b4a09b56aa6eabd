package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/GoArmGo/MovieCatalog/internal/apperrors"
	"github.com/GoArmGo/MovieCatalog/internal/core/ports"
	"github.com/GoArmGo/MovieCatalog/internal/domain"
	"github.com/GoArmGo/MovieCatalog/internal/listquery"
	"github.com/GoArmGo/MovieCatalog/internal/mapper"
)

type forumUseCase struct {
	forum  ports.ForumStorage
	users  ports.UserStorage
	logger *slog.Logger
	now    func() time.Time
}

func NewForumUseCase(forum ports.ForumStorage, users ports.UserStorage, logger *slog.Logger) ForumUseCase {
	return &forumUseCase{forum: forum, users: users, logger: logger, now: time.Now}
}

func (uc *forumUseCase) Categories(ctx context.Context) ([]domain.ForumCategory, error) {
	rows, err := uc.forum.ListCategories(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return rows, nil
}

func (uc *forumUseCase) CreateCategory(ctx context.Context, caller *domain.Caller, in CategoryInput) (*domain.ForumCategory, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	c := &domain.ForumCategory{IsActive: true}
	if err := applyCategory(c, in); err != nil {
		return nil, err
	}
	if c.Name == "" {
		return nil, apperrors.BadRequest("name is required")
	}
	if err := uc.forum.CreateCategory(ctx, c); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	uc.logger.Info("forum category created", "category_id", c.ID)
	return c, nil
}

func (uc *forumUseCase) UpdateCategory(ctx context.Context, caller *domain.Caller, id int, in CategoryInput) (*domain.ForumCategory, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	c, err := uc.category(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyCategory(c, in); err != nil {
		return nil, err
	}
	if err := uc.forum.UpdateCategory(ctx, c); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return c, nil
}

func (uc *forumUseCase) DeleteCategory(ctx context.Context, caller *domain.Caller, id int) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}
	c, err := uc.category(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.forum.DeleteCategory(ctx, c); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	uc.logger.Info("forum category deleted", "category_id", id)
	return nil
}

func (uc *forumUseCase) Topics(ctx context.Context, categoryID int, page listquery.Page) (*TopicPage, error) {
	if _, err := uc.category(ctx, categoryID); err != nil {
		return nil, err
	}
	rows, total, err := uc.forum.ListTopics(ctx, categoryID, page.Skip(), page.Take())
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	return &TopicPage{Topics: rows, Count: total}, nil
}

func (uc *forumUseCase) CreateTopic(ctx context.Context, caller *domain.Caller, categoryID int, in TopicInput) (*domain.ForumTopic, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(in.Title)
	content := strings.TrimSpace(in.Content)
	if title == "" || content == "" {
		return nil, apperrors.BadRequest("title and content are required")
	}

	c, err := uc.category(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if !c.IsActive {
		return nil, apperrors.BadRequest("category is not active")
	}

	topic := &domain.ForumTopic{Title: title, CategoryID: c.ID, UserID: caller.UserID}
	first := &domain.ForumPost{UserID: caller.UserID, Content: content}
	if err := uc.forum.CreateTopicWithPost(ctx, topic, first); err != nil {
		return nil, fmt.Errorf("create topic: %w", err)
	}
	return topic, nil
}

func (uc *forumUseCase) Topic(ctx context.Context, id int) (*domain.ForumTopic, error) {
	t, err := uc.topic(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.forum.IncrementViews(ctx, id); err != nil {
		return nil, fmt.Errorf("increment views: %w", err)
	}
	t.ViewCount++
	return t, nil
}

func (uc *forumUseCase) UpdateTopic(ctx context.Context, caller *domain.Caller, id int, in TopicInput) (*domain.ForumTopic, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	t, err := uc.topic(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.UserID != caller.UserID {
		return nil, apperrors.Forbidden("only the author can edit this topic")
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, apperrors.BadRequest("title is required")
	}

	t.Title = title
	if err := uc.forum.UpdateTopic(ctx, t); err != nil {
		return nil, fmt.Errorf("update topic: %w", err)
	}
	return t, nil
}

func (uc *forumUseCase) DeleteTopic(ctx context.Context, caller *domain.Caller, id int) error {
	if err := requireCaller(caller); err != nil {
		return err
	}
	t, err := uc.topic(ctx, id)
	if err != nil {
		return err
	}
	if t.UserID != caller.UserID && !caller.IsAdmin() {
		return apperrors.Forbidden("you cannot delete this topic")
	}
	if err := uc.forum.DeleteTopic(ctx, t); err != nil {
		return fmt.Errorf("delete topic: %w", err)
	}
	uc.logger.Info("forum topic deleted", "topic_id", id, "user_id", caller.UserID)
	return nil
}

func (uc *forumUseCase) TogglePin(ctx context.Context, caller *domain.Caller, id int) (*domain.ForumTopic, error) {
	return uc.toggle(ctx, caller, id, func(t *domain.ForumTopic) { t.IsPinned = !t.IsPinned })
}

func (uc *forumUseCase) ToggleLock(ctx context.Context, caller *domain.Caller, id int) (*domain.ForumTopic, error) {
	return uc.toggle(ctx, caller, id, func(t *domain.ForumTopic) { t.IsLocked = !t.IsLocked })
}

func (uc *forumUseCase) toggle(ctx context.Context, caller *domain.Caller, id int, flip func(*domain.ForumTopic)) (*domain.ForumTopic, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	t, err := uc.topic(ctx, id)
	if err != nil {
		return nil, err
	}
	flip(t)
	if err := uc.forum.UpdateTopic(ctx, t); err != nil {
		return nil, fmt.Errorf("update topic: %w", err)
	}
	return t, nil
}

func (uc *forumUseCase) Posts(ctx context.Context, topicID int, page listquery.Page) (*PostPage, error) {
	if _, err := uc.topic(ctx, topicID); err != nil {
		return nil, err
	}
	rows, total, err := uc.forum.ListPosts(ctx, topicID, page.Skip(), page.Take())
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	ids := make([]int, 0, len(rows))
	for _, p := range rows {
		ids = append(ids, p.UserID)
	}
	users, err := usersByID(ctx, uc.users, ids)
	if err != nil {
		return nil, err
	}
	return &PostPage{Posts: mapper.ToPostViews(rows, users), Count: total}, nil
}

func (uc *forumUseCase) CreatePost(ctx context.Context, caller *domain.Caller, topicID int, in PostInput) (*domain.ForumPost, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, apperrors.BadRequest("content is required")
	}
	t, err := uc.topic(ctx, topicID)
	if err != nil {
		return nil, err
	}
	if t.IsLocked {
		return nil, apperrors.Forbidden("topic is locked")
	}

	post := &domain.ForumPost{TopicID: t.ID, UserID: caller.UserID, Content: content, CreatedAt: uc.now()}
	if err := uc.forum.CreatePost(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

func (uc *forumUseCase) UpdatePost(ctx context.Context, caller *domain.Caller, id int, in PostInput) (*domain.ForumPost, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	p, err := uc.post(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.UserID != caller.UserID {
		return nil, apperrors.Forbidden("only the author can edit this post")
	}
	if p.IsDeleted {
		return nil, apperrors.BadRequest("post is deleted")
	}
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, apperrors.BadRequest("content is required")
	}

	p.Content = content
	if err := uc.forum.UpdatePost(ctx, p); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	return p, nil
}

func (uc *forumUseCase) DeletePost(ctx context.Context, caller *domain.Caller, id int) error {
	if err := requireCaller(caller); err != nil {
		return err
	}
	p, err := uc.post(ctx, id)
	if err != nil {
		return err
	}
	if p.UserID != caller.UserID && !caller.IsAdmin() {
		return apperrors.Forbidden("you cannot delete this post")
	}
	if p.IsDeleted {
		return apperrors.NotFound("post not found")
	}

	now := uc.now()
	p.IsDeleted = true
	p.DeletedAt = &now
	if err := uc.forum.UpdatePost(ctx, p); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	uc.logger.Info("forum post deleted", "post_id", id, "user_id", caller.UserID)
	return nil
}

func (uc *forumUseCase) category(ctx context.Context, id int) (*domain.ForumCategory, error) {
	c, err := uc.forum.GetCategory(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get category %d: %w", id, err)
	}
	if c == nil {
		return nil, apperrors.NotFound("category not found")
	}
	return c, nil
}

func (uc *forumUseCase) topic(ctx context.Context, id int) (*domain.ForumTopic, error) {
	t, err := uc.forum.GetTopic(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get topic %d: %w", id, err)
	}
	if t == nil {
		return nil, apperrors.NotFound("topic not found")
	}
	return t, nil
}

func (uc *forumUseCase) post(ctx context.Context, id int) (*domain.ForumPost, error) {
	p, err := uc.forum.GetPost(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get post %d: %w", id, err)
	}
	if p == nil {
		return nil, apperrors.NotFound("post not found")
	}
	return p, nil
}

func applyCategory(c *domain.ForumCategory, in CategoryInput) error {
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return apperrors.BadRequest("name is required")
		}
		c.Name = name
	}
	if in.Description != nil {
		c.Description = strings.TrimSpace(*in.Description)
	}
	if in.Order != nil {
		c.Order = *in.Order
	}
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	return nil
}
