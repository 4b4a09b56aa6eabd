package usecase

import (
	"context"

	"github.com/GoArmGo/MovieCatalog/internal/domain"
	"github.com/GoArmGo/MovieCatalog/internal/listquery"
	"github.com/GoArmGo/MovieCatalog/internal/mapper"
)

type ReviewInput struct {
	Content string   `json:"content"`
	Rating  *float64 `json:"rating"`
}

type ReviewPage struct {
	Reviews []mapper.ReviewView `json:"reviews"`
	Count   int64               `json:"count"`
}

// ReviewUseCase covers reviews and their votes for every reviewable kind.
type ReviewUseCase interface {
	ListByItem(ctx context.Context, caller *domain.Caller, kind domain.Kind, itemID int, page listquery.Page) (*ReviewPage, error)
	ListByUser(ctx context.Context, caller *domain.Caller, kind domain.Kind, userID int, page listquery.Page) (*ReviewPage, error)
	Create(ctx context.Context, caller *domain.Caller, kind domain.Kind, itemID int, in ReviewInput) (*mapper.ReviewView, error)
	// Update changes the caller's own review of the item.
	Update(ctx context.Context, caller *domain.Caller, kind domain.Kind, itemID int, in ReviewInput) (*mapper.ReviewView, error)
	Delete(ctx context.Context, caller *domain.Caller, kind domain.Kind, itemID int) error

	Vote(ctx context.Context, caller *domain.Caller, kind domain.Kind, itemID, reviewID int, up bool) error
	Unvote(ctx context.Context, caller *domain.Caller, kind domain.Kind, itemID, reviewID int, up bool) error
}

// FavoriteUseCase bookmarks items. Listing lives in CatalogUseCase.Favorites.
type FavoriteUseCase interface {
	Add(ctx context.Context, caller *domain.Caller, kind domain.Kind, itemID int) error
	Remove(ctx context.Context, caller *domain.Caller, kind domain.Kind, itemID int) error
}
