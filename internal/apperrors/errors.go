// Package apperrors defines the domain error taxonomy shared by services
// and the HTTP boundary. Services return (wrapped) sentinel values;
// transport code classifies them with errors.Is.
package apperrors

import (
	"errors"
	"fmt"
)

var (
	// ErrConflict indicates a duplicate on a unique field.
	ErrConflict = errors.New("conflict")

	// ErrNotFound indicates a missing row or a broken foreign-key target.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indicates bad credentials or a missing/invalid token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrBadRequest indicates input validation failure at the request boundary.
	ErrBadRequest = errors.New("bad request")

	// ErrInternal indicates an unexpected store or infrastructure failure.
	ErrInternal = errors.New("internal error")
)

// Conflict wraps ErrConflict with a human-readable message.
func Conflict(msg string) error { return fmt.Errorf("%w: %s", ErrConflict, msg) }

// NotFound wraps ErrNotFound with a human-readable message.
func NotFound(msg string) error { return fmt.Errorf("%w: %s", ErrNotFound, msg) }

// Unauthorized wraps ErrUnauthorized with a human-readable message.
func Unauthorized(msg string) error { return fmt.Errorf("%w: %s", ErrUnauthorized, msg) }

// BadRequest wraps ErrBadRequest with a human-readable message.
func BadRequest(msg string) error { return fmt.Errorf("%w: %s", ErrBadRequest, msg) }

// Internal hides a store-level error behind ErrInternal. The cause text
// stays in the chain for logging but only the sentinel is matched on.
func Internal(cause error) error { return fmt.Errorf("%w: %v", ErrInternal, cause) }

// IsDomain reports whether err is already part of the taxonomy. Services use
// it to re-throw known errors as-is instead of re-wrapping them as internal.
func IsDomain(err error) bool {
	return errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrBadRequest)
}
