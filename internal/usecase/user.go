package usecase

import (
	"context"

	"github.com/GoArmGo/MovieCatalog/internal/domain"
	"github.com/GoArmGo/MovieCatalog/internal/listquery"
	"github.com/GoArmGo/MovieCatalog/internal/mapper"
)

type ProfileInput struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Bio       *string `json:"bio"`
}

type UserPage struct {
	Users []mapper.UserSummary `json:"users"`
	Count int64                `json:"count"`
}

type UserUseCase interface {
	Search(ctx context.Context, userName string, page listquery.Page) (*UserPage, error)
	// Profile includes the caller's follow state towards the user, if any.
	Profile(ctx context.Context, caller *domain.Caller, id int) (*mapper.Profile, error)
	Me(ctx context.Context, caller *domain.Caller) (*mapper.Account, error)
	UpdateMe(ctx context.Context, caller *domain.Caller, in ProfileInput) (*mapper.Account, error)
	SetAvatar(ctx context.Context, caller *domain.Caller, file Upload) (*mapper.Account, error)
}

type MessageInput struct {
	Content string `json:"content"`
}

type MessagePage struct {
	Messages []domain.Message `json:"messages"`
	Count    int64            `json:"count"`
}

type NotificationPage struct {
	Notifications []domain.Notification `json:"notifications"`
	Count         int64                 `json:"count"`
}

// SocialUseCase is the follow state machine plus messaging and notifications.
type SocialUseCase interface {
	Follow(ctx context.Context, caller *domain.Caller, userID int) error
	// Unfollow removes the edge in either state.
	Unfollow(ctx context.Context, caller *domain.Caller, userID int) error
	FollowRequests(ctx context.Context, caller *domain.Caller, page listquery.Page) (*UserPage, error)
	Accept(ctx context.Context, caller *domain.Caller, followerID int) error
	Reject(ctx context.Context, caller *domain.Caller, followerID int) error
	Followers(ctx context.Context, userID int, page listquery.Page) (*UserPage, error)
	Following(ctx context.Context, userID int, page listquery.Page) (*UserPage, error)

	SendMessage(ctx context.Context, caller *domain.Caller, receiverID int, in MessageInput) (*domain.Message, error)
	Conversation(ctx context.Context, caller *domain.Caller, userID int, page listquery.Page) (*MessagePage, error)
	Inbox(ctx context.Context, caller *domain.Caller, page listquery.Page) (*MessagePage, error)
	MarkMessageRead(ctx context.Context, caller *domain.Caller, id int) error

	Notifications(ctx context.Context, caller *domain.Caller, page listquery.Page) (*NotificationPage, error)
	MarkNotificationRead(ctx context.Context, caller *domain.Caller, id int) error
}
