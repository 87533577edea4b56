package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/pmikheev/tasktracker/internal/apperrors"
	"github.com/pmikheev/tasktracker/internal/audit"
	"github.com/pmikheev/tasktracker/internal/auth"
	"github.com/pmikheev/tasktracker/internal/models"
	repo "github.com/pmikheev/tasktracker/internal/repository"
)

// UserService is the administrative CRUD facade over accounts. Every path
// returns a redacted record with the user's tasks embedded; the hash never
// leaves this package.
type UserService struct {
	users repo.Users
	tasks repo.Tasks
	audit *audit.Recorder
}

func NewUserService(users repo.Users, tasks repo.Tasks, rec *audit.Recorder) *UserService {
	return &UserService{users: users, tasks: tasks, audit: rec}
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, wrap(err)
	}
	out := make([]models.User, 0, len(users))
	for _, u := range users {
		view, err := s.view(ctx, u)
		if err != nil {
			return nil, err
		}
		out = append(out, view)
	}
	return out, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (models.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return models.User{}, wrap(err)
	}
	return s.view(ctx, u)
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (models.User, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return models.User{}, wrap(err)
	}
	return s.view(ctx, u)
}

// Create is the administrative path: the account starts with a random
// temporary password that must be reset out of band.
func (s *UserService) Create(ctx context.Context, username, email string) (models.User, error) {
	hash, err := auth.HashPassword(uuid.NewString())
	if err != nil {
		return models.User{}, apperrors.Internal(err)
	}
	u, err := s.users.Create(ctx, username, email, hash, []string{models.RoleUser})
	if err != nil {
		return models.User{}, wrap(err)
	}
	s.audit.Record("user", u.ID, "user.created", map[string]any{"username": u.Username})
	return u.Redacted(), nil
}

func (s *UserService) Update(ctx context.Context, id int64, username, email string) (models.User, error) {
	u, err := s.users.Update(ctx, id, username, email)
	if err != nil {
		return models.User{}, wrap(err)
	}
	s.audit.Record("user", u.ID, "user.updated", nil)
	return s.view(ctx, u)
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return wrap(err)
	}
	s.audit.Record("user", id, "user.deleted", nil)
	return nil
}

// view redacts the record and attaches the user's tasks, matching the task
// payloads that already embed their owner.
func (s *UserService) view(ctx context.Context, u models.User) (models.User, error) {
	out := u.Redacted()
	tasks, err := s.tasks.ListByUser(ctx, u.ID)
	if err != nil {
		return models.User{}, wrap(err)
	}
	// drop the owner back-reference; the enclosing user is the owner
	for i := range tasks {
		tasks[i].User = nil
	}
	out.Tasks = tasks
	return out, nil
}
