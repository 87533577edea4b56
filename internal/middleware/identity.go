package middleware

import (
	"context"

	"github.com/pmikheev/tasktracker/internal/models"
)

type identityKey struct{}

// Identity is the authenticated caller as seen by handlers. A concrete
// value type on purpose; handlers never dig through raw claims.
type Identity struct {
	ID       int64
	Username string
	Email    string
	Roles    []string
}

func identityFromUser(u models.User) Identity {
	return Identity{ID: u.ID, Username: u.Username, Email: u.Email, Roles: u.Roles}
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}
