package usecase

import (
	"context"
	"log/slog"

	"github.com/GoArmGo/MovieCatalog/internal/core/ports"
	"github.com/GoArmGo/MovieCatalog/internal/domain"
	"github.com/GoArmGo/MovieCatalog/internal/listquery"
	"github.com/GoArmGo/MovieCatalog/internal/mapper"
)

// DetailReviewLimit is the number of newest reviews embedded in a detail view.
const DetailReviewLimit = 20

// CatalogUseCase is the business logic of one catalog kind.
type CatalogUseCase[T any] interface {
	Kind() domain.Kind
	Spec() listquery.Spec

	// List serves both the plain list and the search endpoint.
	List(ctx context.Context, caller *domain.Caller, q listquery.Query) (*mapper.Page[T], error)
	Latest(ctx context.Context, caller *domain.Caller) ([]mapper.Item[T], error)
	Count(ctx context.Context) (int64, error)
	Get(ctx context.Context, caller *domain.Caller, id int) (*mapper.Detail[T], error)
	// Related returns a page with nil items when nothing shares a genre with id.
	Related(ctx context.Context, caller *domain.Caller, id int, page listquery.Page) (*mapper.Page[T], error)
	// Favorites lists the caller's bookmarked items of this kind, newest bookmark first.
	Favorites(ctx context.Context, caller *domain.Caller, page listquery.Page) (*mapper.Page[T], error)

	Create(ctx context.Context, caller *domain.Caller, item *T, links domain.Links) (*mapper.Detail[T], error)
	// Update applies the non-zero fields of patch.
	Update(ctx context.Context, caller *domain.Caller, id int, patch *T, links domain.Links) (*mapper.Detail[T], error)
	Delete(ctx context.Context, caller *domain.Caller, id int) error
	SetPoster(ctx context.Context, caller *domain.Caller, id int, file Upload) (*mapper.Detail[T], error)
}

// CatalogDeps are shared by the catalog usecases of every kind.
type CatalogDeps struct {
	Items     ports.ItemStorage
	Reviews   ports.ReviewStorage
	Votes     ports.VoteStorage
	Favorites ports.FavoriteStorage
	Users     ports.UserStorage
	Enricher  *Enricher
	Cache     *ListCache
	Media     MediaUseCase
	Logger    *slog.Logger
}
