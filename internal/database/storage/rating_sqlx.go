package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/MovieCatalog/internal/domain"
	"github.com/jmoiron/sqlx"
)

// RatingStorage computes review aggregates with plain SQL through sqlx.
type RatingStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewRatingStorage(db *sqlx.DB, logger *slog.Logger) *RatingStorage {
	return &RatingStorage{db: db, logger: logger}
}

type ratingRow struct {
	ItemID        int     `db:"item_id"`
	AverageRating float64 `db:"average_rating"`
	TotalReviews  int     `db:"total_reviews"`
}

// Summaries returns one entry per requested id; items without reviews get zero values.
func (s *RatingStorage) Summaries(ctx context.Context, kind domain.Kind, itemIDs []int) (map[int]domain.RatingSummary, error) {
	out := make(map[int]domain.RatingSummary, len(itemIDs))
	if len(itemIDs) == 0 || !kind.Reviewable() {
		for _, id := range itemIDs {
			out[id] = domain.RatingSummary{}
		}
		return out, nil
	}

	start := time.Now()

	query, args, err := sqlx.In(fmt.Sprintf(
		`SELECT item_id, AVG(rating) AS average_rating, COUNT(*) AS total_reviews
		FROM %s WHERE item_id IN (?) GROUP BY item_id`, kind.ReviewTable()), itemIDs)
	if err != nil {
		return nil, fmt.Errorf("build rating query: %w", err)
	}

	var rows []ratingRow
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(query), args...); err != nil {
		s.logger.Error("failed to aggregate ratings", "kind", kind, "error", err)
		return nil, translate("aggregate ratings", err)
	}

	for _, id := range itemIDs {
		out[id] = domain.RatingSummary{}
	}
	for _, r := range rows {
		out[r.ItemID] = domain.RatingSummary{AverageRating: r.AverageRating, TotalReviews: r.TotalReviews}
	}

	s.logger.Debug("ratings aggregated",
		"kind", kind,
		"items", len(itemIDs),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return out, nil
}
