package storage

import (
	"errors"
	"fmt"

	"github.com/GoArmGo/MovieCatalog/internal/apperrors"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Postgres SQLSTATEs that signal a malformed request rather than a failure.
var badRequestCodes = map[string]bool{
	"22P02": true, // invalid_text_representation
	"22003": true, // numeric_value_out_of_range
	"22007": true, // invalid_datetime_format
	"42703": true, // undefined_column
	"42883": true, // undefined_function
}

// translate maps driver errors to application errors, keeping the cause.
func translate(op string, err error) error {
	if err == nil {
		return nil
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.Wrap(apperrors.ErrorTypeNotFound, "resource not found", err)
	}

	if code := sqlState(err); code != "" {
		if code == "23505" {
			return apperrors.Wrap(apperrors.ErrorTypeConflict, "resource already exists", err)
		}
		if badRequestCodes[code] {
			return apperrors.Wrap(apperrors.ErrorTypeBadRequest, "malformed query", err)
		}
	}

	if apperrors.IsDuplicateError(err) {
		return apperrors.Wrap(apperrors.ErrorTypeConflict, "resource already exists", err)
	}

	return fmt.Errorf("%s: %w", op, err)
}

// sqlState extracts the SQLSTATE from pgx (GORM) and lib/pq (sqlx) errors.
func sqlState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}
