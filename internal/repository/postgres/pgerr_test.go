package postgres

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pmikheev/tasktracker/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestMapErr(t *testing.T) {
	raw := errors.New("connection reset")

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil passes", nil, nil},
		{"no rows", pgx.ErrNoRows, apperrors.ErrNotFound},
		{"unique violation", &pgconn.PgError{Code: codeUniqueViolation}, apperrors.ErrConflict},
		{"fk violation", &pgconn.PgError{Code: codeForeignKeyViolation}, apperrors.ErrNotFound},
		{"other pg error", &pgconn.PgError{Code: "40001"}, nil},
		{"unrelated error", raw, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapErr(tt.in, "duplicate", "missing")
			if tt.want != nil {
				assert.ErrorIs(t, got, tt.want)
				return
			}
			assert.Equal(t, tt.in, got)
		})
	}
}

func TestMapReadErr(t *testing.T) {
	raw := errors.New("connection reset")

	assert.NoError(t, mapReadErr(nil, "missing"))
	assert.ErrorIs(t, mapReadErr(pgx.ErrNoRows, "missing"), apperrors.ErrNotFound)
	assert.Equal(t, raw, mapReadErr(raw, "missing"))
	assert.Contains(t, mapReadErr(pgx.ErrNoRows, "task not found").Error(), "task not found")
}

func TestMapErrMessageHidesStoreDetail(t *testing.T) {
	pgErr := &pgconn.PgError{Code: codeUniqueViolation, Message: `duplicate key value violates unique constraint "users_email_key"`}
	got := mapErr(pgErr, "user already exists", "user not found")
	assert.NotContains(t, got.Error(), "users_email_key")
	assert.Contains(t, got.Error(), "user already exists")
}
