package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/drivedeal/drivedeal-backend/internal/models"
)

const (
	pgUniqueViolation = "23505"
	pgFKViolation     = "23503"
)

// translate maps pgx errors onto the shared taxonomy: no rows -> not found,
// unique violation -> conflict, FK violation -> not found (the referenced
// row is gone).
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return models.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return models.ErrConflict
		case pgFKViolation:
			return models.ErrNotFound
		}
	}
	return err
}
