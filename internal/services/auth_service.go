package services

import (
	"context"
	"errors"

	"github.com/pmikheev/tasktracker/internal/apperrors"
	"github.com/pmikheev/tasktracker/internal/audit"
	"github.com/pmikheev/tasktracker/internal/auth"
	"github.com/pmikheev/tasktracker/internal/metrics"
	"github.com/pmikheev/tasktracker/internal/models"
	repo "github.com/pmikheev/tasktracker/internal/repository"
)

// ErrInvalidCredentials is returned for unknown username and wrong password
// alike. One value for both cases so a caller cannot tell which occurred.
var ErrInvalidCredentials = apperrors.Unauthorized("invalid credentials")

type AuthService struct {
	users repo.Users
	tm    *auth.TokenManager
	audit *audit.Recorder
}

func NewAuthService(users repo.Users, tm *auth.TokenManager, rec *audit.Recorder) *AuthService {
	return &AuthService{users: users, tm: tm, audit: rec}
}

// Register creates a self-service account with the default role. Duplicate
// username or email surfaces as a conflict from the store's unique
// constraints; there is no pre-check, so no partial state can be created.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (models.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, apperrors.Internal(err)
	}
	u, err := s.users.Create(ctx, username, email, hash, []string{models.RoleUser})
	if err != nil {
		if apperrors.IsDomain(err) {
			return models.User{}, err
		}
		return models.User{}, apperrors.Internal(err)
	}
	metrics.RegistrationsTotal.Inc()
	s.audit.Record("user", u.ID, "user.registered", map[string]any{"username": u.Username})
	return u.Redacted(), nil
}

// Login verifies the credential pair and issues a bearer token carrying the
// user's id, username and roles.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, models.User, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return "", models.User{}, ErrInvalidCredentials
		}
		return "", models.User{}, apperrors.Internal(err)
	}
	if err := auth.VerifyPassword(password, u.PasswordHash); err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return "", models.User{}, ErrInvalidCredentials
	}

	token, err := s.tm.Issue(u.ID, u.Username, u.Roles)
	if err != nil {
		return "", models.User{}, apperrors.Internal(err)
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.audit.Record("user", u.ID, "user.login", nil)
	return token, u.Redacted(), nil
}

// ResolveSubject maps a token subject back to a live account. The guard
// calls this on every request so tokens for deleted accounts stop working.
func (s *AuthService) ResolveSubject(ctx context.Context, userID int64) (models.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return models.User{}, err
		}
		return models.User{}, apperrors.Internal(err)
	}
	return u.Redacted(), nil
}
