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

const AvatarFolder = "avatars"

type userUseCase struct {
	users   ports.UserStorage
	follows ports.FollowStorage
	media   MediaUseCase
	logger  *slog.Logger
}

func NewUserUseCase(users ports.UserStorage, follows ports.FollowStorage, media MediaUseCase, logger *slog.Logger) UserUseCase {
	return &userUseCase{users: users, follows: follows, media: media, logger: logger}
}

func (uc *userUseCase) Search(ctx context.Context, userName string, page listquery.Page) (*UserPage, error) {
	rows, total, err := uc.users.Search(ctx, strings.ToLower(strings.TrimSpace(userName)), page.Skip(), page.Take())
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	return &UserPage{Users: mapper.ToUserSummaries(rows), Count: total}, nil
}

func (uc *userUseCase) Profile(ctx context.Context, caller *domain.Caller, id int) (*mapper.Profile, error) {
	u, err := requireUser(ctx, uc.users, id)
	if err != nil {
		return nil, err
	}
	followers, following, err := uc.follows.Counts(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("count follows: %w", err)
	}

	var state domain.FollowState
	if caller.ID() != 0 && caller.ID() != id {
		edge, err := uc.follows.Get(ctx, caller.UserID, id)
		if err != nil {
			return nil, fmt.Errorf("get follow: %w", err)
		}
		if edge != nil {
			state = edge.State
		}
	}

	profile := mapper.ToProfile(*u, followers, following, state)
	return &profile, nil
}

func (uc *userUseCase) Me(ctx context.Context, caller *domain.Caller) (*mapper.Account, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	u, err := requireUser(ctx, uc.users, caller.UserID)
	if err != nil {
		return nil, err
	}
	return uc.account(ctx, u)
}

func (uc *userUseCase) UpdateMe(ctx context.Context, caller *domain.Caller, in ProfileInput) (*mapper.Account, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	u, err := requireUser(ctx, uc.users, caller.UserID)
	if err != nil {
		return nil, err
	}

	if in.FirstName != nil {
		u.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		u.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.Bio != nil {
		u.Bio = strings.TrimSpace(*in.Bio)
	}
	if err := uc.users.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return uc.account(ctx, u)
}

func (uc *userUseCase) SetAvatar(ctx context.Context, caller *domain.Caller, file Upload) (*mapper.Account, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	u, err := requireUser(ctx, uc.users, caller.UserID)
	if err != nil {
		return nil, err
	}

	url, err := uc.media.Upload(ctx, AvatarFolder, file)
	if err != nil {
		return nil, err
	}
	u.Avatar = url
	if err := uc.users.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("update avatar: %w", err)
	}
	uc.logger.Info("avatar updated", "user_id", u.ID)
	return uc.account(ctx, u)
}

func (uc *userUseCase) account(ctx context.Context, u *domain.User) (*mapper.Account, error) {
	followers, following, err := uc.follows.Counts(ctx, u.ID)
	if err != nil {
		return nil, fmt.Errorf("count follows: %w", err)
	}
	account := mapper.ToAccount(*u, followers, following)
	return &account, nil
}

func requireUser(ctx context.Context, users ports.UserStorage, id int) (*domain.User, error) {
	u, err := users.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	if u == nil {
		return nil, apperrors.NotFound("user not found")
	}
	return u, nil
}
