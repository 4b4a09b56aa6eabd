package usecase

import (
	"context"
	"fmt"

	"github.com/GoArmGo/MovieCatalog/internal/apperrors"
	"github.com/GoArmGo/MovieCatalog/internal/core/ports"
	"github.com/GoArmGo/MovieCatalog/internal/domain"
)

func requireCaller(caller *domain.Caller) error {
	if caller == nil || caller.UserID == 0 {
		return apperrors.Unauthorized("authentication required")
	}
	return nil
}

func requireAdmin(caller *domain.Caller) error {
	if err := requireCaller(caller); err != nil {
		return err
	}
	if !caller.IsAdmin() {
		return apperrors.Forbidden("admin role required")
	}
	return nil
}

func unique(ids []int) []int {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[int]bool, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func usersByID(ctx context.Context, users ports.UserStorage, ids []int) (map[int]domain.User, error) {
	rows, err := users.GetMany(ctx, unique(ids))
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	out := make(map[int]domain.User, len(rows))
	for _, u := range rows {
		out[u.ID] = u
	}
	return out, nil
}

// orderedUsers returns the users of ids in the order of ids.
func orderedUsers(ctx context.Context, users ports.UserStorage, ids []int) ([]domain.User, error) {
	byID, err := usersByID(ctx, users, ids)
	if err != nil {
		return nil, err
	}
	out := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}
