package ports

import (
	"context"
	"time"

	"github.com/GoArmGo/MovieCatalog/internal/domain"
	"github.com/GoArmGo/MovieCatalog/internal/listquery"
)

// CatalogStorage is the persistence of one catalog kind.
// Get returns nil, nil when the row does not exist.
type CatalogStorage[T any] interface {
	List(ctx context.Context, q listquery.Parsed) ([]T, int64, error)
	Get(ctx context.Context, id int) (*T, error)
	GetMany(ctx context.Context, ids []int) ([]T, error)
	Create(ctx context.Context, item *T, links domain.Links) error
	Update(ctx context.Context, id int, patch *T, links domain.Links) error
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context) (int64, error)
	Latest(ctx context.Context, limit int) ([]T, error)
	Related(ctx context.Context, id, skip, take int) ([]T, int64, error)
	Relations(ctx context.Context, id int) (*domain.Relations, error)
	SetPhoto(ctx context.Context, id int, url string) error
}

// ItemStorage answers existence checks across catalog kinds.
type ItemStorage interface {
	Exists(ctx context.Context, kind domain.Kind, id int) (bool, error)
	CountExisting(ctx context.Context, kind domain.Kind, ids []int) (int64, error)
}

type ReviewStorage interface {
	ListByItem(ctx context.Context, kind domain.Kind, itemID, skip, take int) ([]domain.Review, int64, error)
	ListByUser(ctx context.Context, kind domain.Kind, userID, skip, take int) ([]domain.Review, int64, error)
	Get(ctx context.Context, kind domain.Kind, id int) (*domain.Review, error)
	FindByUserAndItem(ctx context.Context, kind domain.Kind, userID, itemID int) (*domain.Review, error)
	Create(ctx context.Context, kind domain.Kind, review *domain.Review) error
	Update(ctx context.Context, kind domain.Kind, review *domain.Review) error
	// Delete removes the review and every vote on it.
	Delete(ctx context.Context, kind domain.Kind, review *domain.Review) error
	ReviewedItems(ctx context.Context, kind domain.Kind, userID int, itemIDs []int) (map[int]bool, error)
}

type VoteStorage interface {
	Exists(ctx context.Context, kind domain.Kind, up bool, userID, reviewID int) (bool, error)
	Add(ctx context.Context, kind domain.Kind, up bool, vote *domain.Vote) error
	Remove(ctx context.Context, kind domain.Kind, up bool, userID, reviewID int) error
	Voters(ctx context.Context, kind domain.Kind, reviewIDs []int) (map[int]domain.VoteSet, error)
}

// RatingStorage computes review aggregates per item.
type RatingStorage interface {
	Summaries(ctx context.Context, kind domain.Kind, itemIDs []int) (map[int]domain.RatingSummary, error)
}

type FavoriteStorage interface {
	Exists(ctx context.Context, kind domain.Kind, userID, itemID int) (bool, error)
	Add(ctx context.Context, kind domain.Kind, fav *domain.Favorite) error
	Remove(ctx context.Context, kind domain.Kind, userID, itemID int) error
	ItemIDs(ctx context.Context, kind domain.Kind, userID, skip, take int) ([]int, int64, error)
	Bookmarked(ctx context.Context, kind domain.Kind, userID int, itemIDs []int) (map[int]bool, error)
}

type UserStorage interface {
	Get(ctx context.Context, id int) (*domain.User, error)
	GetMany(ctx context.Context, ids []int) ([]domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmailOrUserName(ctx context.Context, email, userName string) (bool, error)
	Search(ctx context.Context, userName string, skip, take int) ([]domain.User, int64, error)
	Update(ctx context.Context, user *domain.User) error
	CreateWithToken(ctx context.Context, user *domain.User, token *domain.UserToken) error
	CreateToken(ctx context.Context, token *domain.UserToken) error
	FindToken(ctx context.Context, token, tokenType string) (*domain.UserToken, error)
	Activate(ctx context.Context, token *domain.UserToken, now time.Time) error
	ResetPassword(ctx context.Context, token *domain.UserToken, passwordHash string, now time.Time) error
}

type FollowStorage interface {
	Get(ctx context.Context, followerID, followingID int) (*domain.Follow, error)
	CreateWithNotification(ctx context.Context, follow *domain.Follow, n *domain.Notification) error
	Accept(ctx context.Context, follow *domain.Follow, n *domain.Notification) error
	Delete(ctx context.Context, follow *domain.Follow) error
	// Followers lists edges pointing at userID, Following the edges leaving it.
	Followers(ctx context.Context, userID int, state domain.FollowState, skip, take int) ([]domain.Follow, int64, error)
	Following(ctx context.Context, userID int, state domain.FollowState, skip, take int) ([]domain.Follow, int64, error)
	Counts(ctx context.Context, userID int) (followers, following int64, err error)
}

type MessageStorage interface {
	CreateWithNotification(ctx context.Context, m *domain.Message, n *domain.Notification) error
	Conversation(ctx context.Context, userA, userB, skip, take int) ([]domain.Message, int64, error)
	Inbox(ctx context.Context, userID, skip, take int) ([]domain.Message, int64, error)
	Get(ctx context.Context, id int) (*domain.Message, error)
	MarkRead(ctx context.Context, id int) error
}

type NotificationStorage interface {
	List(ctx context.Context, userID, skip, take int) ([]domain.Notification, int64, error)
	Get(ctx context.Context, id int) (*domain.Notification, error)
	MarkRead(ctx context.Context, id int) error
}

type ListStorage interface {
	Create(ctx context.Context, list *domain.List) error
	Get(ctx context.Context, id int) (*domain.List, error)
	Update(ctx context.Context, list *domain.List) error
	// Delete removes the list with its items and shares.
	Delete(ctx context.Context, list *domain.List) error
	ByUser(ctx context.Context, userID int, includePrivate bool, skip, take int) ([]domain.List, int64, error)
	SharedWith(ctx context.Context, userID, skip, take int) ([]domain.List, int64, error)

	Items(ctx context.Context, list *domain.List) ([]domain.ListItem, error)
	GetItem(ctx context.Context, list *domain.List, itemID int) (*domain.ListItem, error)
	AddItem(ctx context.Context, list *domain.List, item *domain.ListItem) error
	RemoveItem(ctx context.Context, list *domain.List, itemID int) error
	MaxOrderIndex(ctx context.Context, list *domain.List) (int, error)

	GetShare(ctx context.Context, listID, userID int) (*domain.ListShare, error)
	AddShare(ctx context.Context, share *domain.ListShare) error
	RemoveShare(ctx context.Context, listID, userID int) error
}

type ForumStorage interface {
	ListCategories(ctx context.Context, activeOnly bool) ([]domain.ForumCategory, error)
	GetCategory(ctx context.Context, id int) (*domain.ForumCategory, error)
	CreateCategory(ctx context.Context, c *domain.ForumCategory) error
	UpdateCategory(ctx context.Context, c *domain.ForumCategory) error
	// DeleteCategory removes the category with its topics and posts.
	DeleteCategory(ctx context.Context, c *domain.ForumCategory) error

	ListTopics(ctx context.Context, categoryID, skip, take int) ([]domain.ForumTopic, int64, error)
	GetTopic(ctx context.Context, id int) (*domain.ForumTopic, error)
	CreateTopicWithPost(ctx context.Context, t *domain.ForumTopic, first *domain.ForumPost) error
	UpdateTopic(ctx context.Context, t *domain.ForumTopic) error
	DeleteTopic(ctx context.Context, t *domain.ForumTopic) error
	IncrementViews(ctx context.Context, id int) error

	ListPosts(ctx context.Context, topicID, skip, take int) ([]domain.ForumPost, int64, error)
	GetPost(ctx context.Context, id int) (*domain.ForumPost, error)
	// CreatePost inserts the post and bumps the topic's updated_at.
	CreatePost(ctx context.Context, p *domain.ForumPost) error
	UpdatePost(ctx context.Context, p *domain.ForumPost) error
}
