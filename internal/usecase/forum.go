package usecase

import (
	"context"

	"github.com/GoArmGo/MovieCatalog/internal/domain"
	"github.com/GoArmGo/MovieCatalog/internal/listquery"
	"github.com/GoArmGo/MovieCatalog/internal/mapper"
)

type CategoryInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Order       *int    `json:"order"`
	IsActive    *bool   `json:"isActive"`
}

type TopicInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type PostInput struct {
	Content string `json:"content"`
}

type TopicPage struct {
	Topics []domain.ForumTopic `json:"topics"`
	Count  int64               `json:"count"`
}

type PostPage struct {
	Posts []mapper.PostView `json:"posts"`
	Count int64             `json:"count"`
}

type ForumUseCase interface {
	Categories(ctx context.Context) ([]domain.ForumCategory, error)
	CreateCategory(ctx context.Context, caller *domain.Caller, in CategoryInput) (*domain.ForumCategory, error)
	UpdateCategory(ctx context.Context, caller *domain.Caller, id int, in CategoryInput) (*domain.ForumCategory, error)
	DeleteCategory(ctx context.Context, caller *domain.Caller, id int) error

	Topics(ctx context.Context, categoryID int, page listquery.Page) (*TopicPage, error)
	// CreateTopic stores the topic together with its first post.
	CreateTopic(ctx context.Context, caller *domain.Caller, categoryID int, in TopicInput) (*domain.ForumTopic, error)
	// Topic counts as a view.
	Topic(ctx context.Context, id int) (*domain.ForumTopic, error)
	UpdateTopic(ctx context.Context, caller *domain.Caller, id int, in TopicInput) (*domain.ForumTopic, error)
	DeleteTopic(ctx context.Context, caller *domain.Caller, id int) error
	TogglePin(ctx context.Context, caller *domain.Caller, id int) (*domain.ForumTopic, error)
	ToggleLock(ctx context.Context, caller *domain.Caller, id int) (*domain.ForumTopic, error)

	Posts(ctx context.Context, topicID int, page listquery.Page) (*PostPage, error)
	CreatePost(ctx context.Context, caller *domain.Caller, topicID int, in PostInput) (*domain.ForumPost, error)
	UpdatePost(ctx context.Context, caller *domain.Caller, id int, in PostInput) (*domain.ForumPost, error)
	DeletePost(ctx context.Context, caller *domain.Caller, id int) error
}
