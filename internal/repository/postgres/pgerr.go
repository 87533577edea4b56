package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pmikheev/tasktracker/internal/apperrors"
)

// SQLSTATE classes we translate. Everything else stays a raw store error
// for the service layer to wrap as internal.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// mapErr converts constraint failures into domain errors, relying on the
// store's atomic checks instead of separate existence reads. conflictMsg
// and notFoundMsg name the entity in caller terms so raw constraint text
// never reaches a response.
func mapErr(err error, conflictMsg, notFoundMsg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NotFound(notFoundMsg)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return apperrors.Conflict(conflictMsg)
		case codeForeignKeyViolation:
			return apperrors.NotFound(notFoundMsg)
		}
	}
	return err
}

// mapReadErr is the select-path variant: the only constraint outcome a
// plain read can hit is a missing row.
func mapReadErr(err error, notFoundMsg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NotFound(notFoundMsg)
	}
	return err
}
