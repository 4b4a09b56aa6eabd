package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/MovieCatalog/internal/apperrors"
	"github.com/GoArmGo/MovieCatalog/internal/core/ports"
	"github.com/GoArmGo/MovieCatalog/internal/domain"
)

type favoriteUseCase struct {
	items     ports.ItemStorage
	favorites ports.FavoriteStorage
	logger    *slog.Logger
}

func NewFavoriteUseCase(items ports.ItemStorage, favorites ports.FavoriteStorage, logger *slog.Logger) FavoriteUseCase {
	return &favoriteUseCase{items: items, favorites: favorites, logger: logger}
}

func (uc *favoriteUseCase) Add(ctx context.Context, caller *domain.Caller, kind domain.Kind, itemID int) error {
	if err := requireCaller(caller); err != nil {
		return err
	}
	if !kind.Reviewable() {
		return apperrors.BadRequest("invalid item type")
	}
	if err := requireItem(ctx, uc.items, kind, itemID); err != nil {
		return err
	}

	exists, err := uc.favorites.Exists(ctx, kind, caller.UserID, itemID)
	if err != nil {
		return fmt.Errorf("check favorite: %w", err)
	}
	if exists {
		return apperrors.Conflict("item is already in favorites")
	}

	if err := uc.favorites.Add(ctx, kind, &domain.Favorite{UserID: caller.UserID, ItemID: itemID}); err != nil {
		return fmt.Errorf("add favorite: %w", err)
	}
	uc.logger.Info("favorite added", "kind", kind, "item_id", itemID, "user_id", caller.UserID)
	return nil
}

func (uc *favoriteUseCase) Remove(ctx context.Context, caller *domain.Caller, kind domain.Kind, itemID int) error {
	if err := requireCaller(caller); err != nil {
		return err
	}
	if !kind.Reviewable() {
		return apperrors.BadRequest("invalid item type")
	}
	return uc.favorites.Remove(ctx, kind, caller.UserID, itemID)
}
