package usecase

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/GoArmGo/MovieCatalog/internal/core/ports"
	"github.com/GoArmGo/MovieCatalog/internal/domain"
	"github.com/GoArmGo/MovieCatalog/internal/mapper"
)

// Enricher attaches rating aggregates and caller flags to a page of items.
type Enricher struct {
	ratings   ports.RatingStorage
	favorites ports.FavoriteStorage
	reviews   ports.ReviewStorage
}

func NewEnricher(ratings ports.RatingStorage, favorites ports.FavoriteStorage, reviews ports.ReviewStorage) *Enricher {
	return &Enricher{ratings: ratings, favorites: favorites, reviews: reviews}
}

// Enrich returns one entry per id. Flags stay false for callerID 0 and
// everything is zero for kinds without reviews.
func (e *Enricher) Enrich(ctx context.Context, kind domain.Kind, callerID int, ids []int) (map[int]mapper.Enrichment, error) {
	out := make(map[int]mapper.Enrichment, len(ids))
	for _, id := range ids {
		out[id] = mapper.Enrichment{}
	}
	if len(ids) == 0 || !kind.Reviewable() {
		return out, nil
	}

	var (
		summaries  map[int]domain.RatingSummary
		bookmarked map[int]bool
		reviewed   map[int]bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		summaries, err = e.ratings.Summaries(gctx, kind, ids)
		return err
	})
	if callerID != 0 {
		g.Go(func() error {
			var err error
			bookmarked, err = e.favorites.Bookmarked(gctx, kind, callerID, ids)
			return err
		})
		g.Go(func() error {
			var err error
			reviewed, err = e.reviews.ReviewedItems(gctx, kind, callerID, ids)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("enrich %s: %w", kind, err)
	}

	for _, id := range ids {
		s := summaries[id]
		out[id] = mapper.Enrichment{
			AverageRating: s.AverageRating,
			TotalReviews:  s.TotalReviews,
			IsBookmarked:  bookmarked[id],
			IsReviewed:    reviewed[id],
		}
	}
	return out, nil
}
