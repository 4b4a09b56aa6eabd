package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/GoArmGo/MovieCatalog/internal/apperrors"
	"github.com/GoArmGo/MovieCatalog/internal/core/ports"
	"github.com/GoArmGo/MovieCatalog/internal/domain"
	"github.com/GoArmGo/MovieCatalog/internal/listquery"
	"github.com/GoArmGo/MovieCatalog/internal/mapper"
)

type socialUseCase struct {
	users         ports.UserStorage
	follows       ports.FollowStorage
	messages      ports.MessageStorage
	notifications ports.NotificationStorage
	logger        *slog.Logger
}

func NewSocialUseCase(
	users ports.UserStorage,
	follows ports.FollowStorage,
	messages ports.MessageStorage,
	notifications ports.NotificationStorage,
	logger *slog.Logger,
) SocialUseCase {
	return &socialUseCase{
		users:         users,
		follows:       follows,
		messages:      messages,
		notifications: notifications,
		logger:        logger,
	}
}

func (uc *socialUseCase) Follow(ctx context.Context, caller *domain.Caller, userID int) error {
	if err := requireCaller(caller); err != nil {
		return err
	}
	if caller.UserID == userID {
		return apperrors.BadRequest("you cannot follow yourself")
	}
	if _, err := requireUser(ctx, uc.users, userID); err != nil {
		return err
	}

	edge, err := uc.follows.Get(ctx, caller.UserID, userID)
	if err != nil {
		return fmt.Errorf("get follow: %w", err)
	}
	if edge != nil {
		return apperrors.Conflict("follow request already exists")
	}

	follow := &domain.Follow{FollowerID: caller.UserID, FollowingID: userID, State: domain.FollowPending}
	n := &domain.Notification{UserID: userID, ActorID: caller.UserID, Type: domain.NotificationFollowRequest}
	if err := uc.follows.CreateWithNotification(ctx, follow, n); err != nil {
		return err
	}
	uc.logger.Info("follow requested", "follower_id", caller.UserID, "following_id", userID)
	return nil
}

func (uc *socialUseCase) Unfollow(ctx context.Context, caller *domain.Caller, userID int) error {
	if err := requireCaller(caller); err != nil {
		return err
	}
	edge, err := uc.follows.Get(ctx, caller.UserID, userID)
	if err != nil {
		return fmt.Errorf("get follow: %w", err)
	}
	if edge == nil {
		return apperrors.NotFound("follow not found")
	}
	return uc.follows.Delete(ctx, edge)
}

func (uc *socialUseCase) FollowRequests(ctx context.Context, caller *domain.Caller, page listquery.Page) (*UserPage, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	rows, total, err := uc.follows.Followers(ctx, caller.UserID, domain.FollowPending, page.Skip(), page.Take())
	if err != nil {
		return nil, fmt.Errorf("list follow requests: %w", err)
	}
	return uc.userPage(ctx, followerIDs(rows), total)
}

func (uc *socialUseCase) Accept(ctx context.Context, caller *domain.Caller, followerID int) error {
	edge, err := uc.pendingRequest(ctx, caller, followerID)
	if err != nil {
		return err
	}
	n := &domain.Notification{UserID: followerID, ActorID: caller.UserID, Type: domain.NotificationFollowAccepted}
	if err := uc.follows.Accept(ctx, edge, n); err != nil {
		return err
	}
	uc.logger.Info("follow accepted", "follower_id", followerID, "following_id", caller.UserID)
	return nil
}

func (uc *socialUseCase) Reject(ctx context.Context, caller *domain.Caller, followerID int) error {
	edge, err := uc.pendingRequest(ctx, caller, followerID)
	if err != nil {
		return err
	}
	return uc.follows.Delete(ctx, edge)
}

func (uc *socialUseCase) Followers(ctx context.Context, userID int, page listquery.Page) (*UserPage, error) {
	if _, err := requireUser(ctx, uc.users, userID); err != nil {
		return nil, err
	}
	rows, total, err := uc.follows.Followers(ctx, userID, domain.FollowAccepted, page.Skip(), page.Take())
	if err != nil {
		return nil, fmt.Errorf("list followers: %w", err)
	}
	return uc.userPage(ctx, followerIDs(rows), total)
}

func (uc *socialUseCase) Following(ctx context.Context, userID int, page listquery.Page) (*UserPage, error) {
	if _, err := requireUser(ctx, uc.users, userID); err != nil {
		return nil, err
	}
	rows, total, err := uc.follows.Following(ctx, userID, domain.FollowAccepted, page.Skip(), page.Take())
	if err != nil {
		return nil, fmt.Errorf("list following: %w", err)
	}
	ids := make([]int, 0, len(rows))
	for _, f := range rows {
		ids = append(ids, f.FollowingID)
	}
	return uc.userPage(ctx, ids, total)
}

func (uc *socialUseCase) SendMessage(ctx context.Context, caller *domain.Caller, receiverID int, in MessageInput) (*domain.Message, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	if caller.UserID == receiverID {
		return nil, apperrors.BadRequest("you cannot message yourself")
	}
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, apperrors.BadRequest("content is required")
	}
	if _, err := requireUser(ctx, uc.users, receiverID); err != nil {
		return nil, err
	}

	m := &domain.Message{SenderID: caller.UserID, ReceiverID: receiverID, Content: content}
	n := &domain.Notification{UserID: receiverID, ActorID: caller.UserID, Type: domain.NotificationMessage}
	if err := uc.messages.CreateWithNotification(ctx, m, n); err != nil {
		return nil, err
	}
	return m, nil
}

func (uc *socialUseCase) Conversation(ctx context.Context, caller *domain.Caller, userID int, page listquery.Page) (*MessagePage, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	if _, err := requireUser(ctx, uc.users, userID); err != nil {
		return nil, err
	}
	rows, total, err := uc.messages.Conversation(ctx, caller.UserID, userID, page.Skip(), page.Take())
	if err != nil {
		return nil, fmt.Errorf("load conversation: %w", err)
	}
	return &MessagePage{Messages: rows, Count: total}, nil
}

func (uc *socialUseCase) Inbox(ctx context.Context, caller *domain.Caller, page listquery.Page) (*MessagePage, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	rows, total, err := uc.messages.Inbox(ctx, caller.UserID, page.Skip(), page.Take())
	if err != nil {
		return nil, fmt.Errorf("load inbox: %w", err)
	}
	return &MessagePage{Messages: rows, Count: total}, nil
}

func (uc *socialUseCase) MarkMessageRead(ctx context.Context, caller *domain.Caller, id int) error {
	if err := requireCaller(caller); err != nil {
		return err
	}
	m, err := uc.messages.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get message: %w", err)
	}
	if m == nil || m.ReceiverID != caller.UserID {
		return apperrors.NotFound("message not found")
	}
	return uc.messages.MarkRead(ctx, id)
}

func (uc *socialUseCase) Notifications(ctx context.Context, caller *domain.Caller, page listquery.Page) (*NotificationPage, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	rows, total, err := uc.notifications.List(ctx, caller.UserID, page.Skip(), page.Take())
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return &NotificationPage{Notifications: rows, Count: total}, nil
}

func (uc *socialUseCase) MarkNotificationRead(ctx context.Context, caller *domain.Caller, id int) error {
	if err := requireCaller(caller); err != nil {
		return err
	}
	n, err := uc.notifications.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get notification: %w", err)
	}
	if n == nil || n.UserID != caller.UserID {
		return apperrors.NotFound("notification not found")
	}
	return uc.notifications.MarkRead(ctx, id)
}

func (uc *socialUseCase) pendingRequest(ctx context.Context, caller *domain.Caller, followerID int) (*domain.Follow, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	edge, err := uc.follows.Get(ctx, followerID, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("get follow: %w", err)
	}
	if edge == nil || edge.State != domain.FollowPending {
		return nil, apperrors.NotFound("follow request not found")
	}
	return edge, nil
}

func (uc *socialUseCase) userPage(ctx context.Context, ids []int, total int64) (*UserPage, error) {
	users, err := orderedUsers(ctx, uc.users, ids)
	if err != nil {
		return nil, err
	}
	return &UserPage{Users: mapper.ToUserSummaries(users), Count: total}, nil
}

func followerIDs(rows []domain.Follow) []int {
	ids := make([]int, 0, len(rows))
	for _, f := range rows {
		ids = append(ids, f.FollowerID)
	}
	return ids
}
