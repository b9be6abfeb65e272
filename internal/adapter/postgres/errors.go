package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/mental-clarity/internal/domain"
)

// MapError converts pgx/pgconn errors into a *domain.RemoteStoreError for
// the given operation. Known conditions are classified with a domain
// sentinel; context errors and everything else keep their cause so
// errors.Is still matches them.
func MapError(err error, op string) error {
	if err == nil {
		return nil
	}

	// pgx.ErrNoRows → domain.ErrNotFound
	if errors.Is(err, pgx.ErrNoRows) {
		return &domain.RemoteStoreError{Op: op, Err: fmt.Errorf("%w: %w", domain.ErrNotFound, err)}
	}

	// PgError codes
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23502", "23514": // not_null_violation, check_violation
			return &domain.RemoteStoreError{Op: op, Err: fmt.Errorf("%w: %w", domain.ErrValidation, err)}
		}
	}

	return &domain.RemoteStoreError{Op: op, Err: err}
}
