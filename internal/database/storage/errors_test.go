package storage

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/GoArmGo/MovieCatalog/internal/apperrors"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want apperrors.ErrorType
	}{
		{"record not found", gorm.ErrRecordNotFound, apperrors.ErrorTypeNotFound},
		{"pgx unique violation", &pgconn.PgError{Code: "23505"}, apperrors.ErrorTypeConflict},
		{"pgx bad integer", &pgconn.PgError{Code: "22P02"}, apperrors.ErrorTypeBadRequest},
		{"pgx undefined column", &pgconn.PgError{Code: "42703"}, apperrors.ErrorTypeBadRequest},
		{"pq undefined function", &pq.Error{Code: "42883"}, apperrors.ErrorTypeBadRequest},
		{"sqlite unique", errors.New("UNIQUE constraint failed: movie_reviews.user_id"), apperrors.ErrorTypeConflict},
		{"other", errors.New("connection refused"), apperrors.ErrorTypeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apperrors.TypeOf(translate("op", tt.err)))
		})
	}
}

func TestTranslate_KeepsAppErrors(t *testing.T) {
	orig := apperrors.Forbidden("nope")
	assert.Same(t, orig, translate("op", orig))
	assert.NoError(t, translate("op", nil))
}
