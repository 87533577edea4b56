package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/pmikheev/tasktracker/internal/api/httpx"
	"github.com/pmikheev/tasktracker/internal/auth"
	"github.com/pmikheev/tasktracker/internal/models"
)

// SubjectResolver checks that a token subject still maps to a live account.
type SubjectResolver interface {
	ResolveSubject(ctx context.Context, userID int64) (models.User, error)
}

type AuthMiddleware struct {
	tm       *auth.TokenManager
	resolver SubjectResolver
}

func NewAuthMiddleware(tm *auth.TokenManager, resolver SubjectResolver) *AuthMiddleware {
	return &AuthMiddleware{tm: tm, resolver: resolver}
}

// Guard rejects requests without a valid bearer token before any handler
// runs. Missing, malformed, expired and badly signed tokens all get the
// same 401; so do tokens whose subject was deleted after issuance.
func (m *AuthMiddleware) Guard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ah := r.Header.Get("Authorization")
		if ah == "" || !strings.HasPrefix(strings.ToLower(ah), "bearer ") {
			m.reject(w)
			return
		}
		token := strings.TrimSpace(ah[len("Bearer "):])

		claims, err := m.tm.Parse(token)
		if err != nil {
			m.reject(w)
			return
		}

		u, err := m.resolver.ResolveSubject(r.Context(), claims.UserID)
		if err != nil {
			// a missing subject is an authentication failure here, not a 404
			m.reject(w)
			return
		}

		ctx := WithIdentity(r.Context(), identityFromUser(u))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *AuthMiddleware) reject(w http.ResponseWriter) {
	httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "missing or invalid bearer token", nil)
}
