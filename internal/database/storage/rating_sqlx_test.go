package storage_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoArmGo/MovieCatalog/internal/database/storage"
	"github.com/GoArmGo/MovieCatalog/internal/domain"
	"github.com/GoArmGo/MovieCatalog/internal/logger"
)

func newMockRatingStorage(t *testing.T) (*storage.RatingStorage, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })
	return storage.NewRatingStorage(sqlx.NewDb(mockDB, "postgres"), logger.Discard()), mock
}

func TestRatingStorage_Summaries_Postgres(t *testing.T) {
	ratings, mock := newMockRatingStorage(t)

	rows := sqlmock.NewRows([]string{"item_id", "average_rating", "total_reviews"}).
		AddRow(1, 3.5, 2)
	mock.ExpectQuery(regexp.QuoteMeta("FROM serie_reviews WHERE item_id IN ($1, $2) GROUP BY item_id")).
		WithArgs(1, 2).
		WillReturnRows(rows)

	got, err := ratings.Summaries(context.Background(), domain.KindSerie, []int{1, 2})
	require.NoError(t, err)
	assert.Equal(t, domain.RatingSummary{AverageRating: 3.5, TotalReviews: 2}, got[1])
	assert.Equal(t, domain.RatingSummary{}, got[2])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRatingStorage_Summaries_Error(t *testing.T) {
	ratings, mock := newMockRatingStorage(t)

	mock.ExpectQuery("SELECT item_id").WillReturnError(errors.New("connection reset"))

	_, err := ratings.Summaries(context.Background(), domain.KindMovie, []int{1})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRatingStorage_Summaries_NoQueryForGenres(t *testing.T) {
	ratings, mock := newMockRatingStorage(t)

	got, err := ratings.Summaries(context.Background(), domain.KindGenre, []int{4})
	require.NoError(t, err)
	assert.Equal(t, domain.RatingSummary{}, got[4])
	assert.NoError(t, mock.ExpectationsWereMet())
}
