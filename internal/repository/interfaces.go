package repository

import (
	"context"

	"github.com/pmikheev/tasktracker/internal/models"
)

// Implementations translate store constraint violations into the apperrors
// taxonomy: unique violations become ErrConflict, missing rows and broken
// foreign keys become ErrNotFound. Anything else passes through untouched.
type Users interface {
	Create(ctx context.Context, username, email, passwordHash string, roles []string) (models.User, error)
	GetByID(ctx context.Context, id int64) (models.User, error)
	GetByUsername(ctx context.Context, username string) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, id int64, username, email string) (models.User, error)
	Delete(ctx context.Context, id int64) error
}

type Tasks interface {
	Create(ctx context.Context, title, description string, userID *int64) (models.Task, error)
	GetByID(ctx context.Context, id int64) (models.Task, error)
	List(ctx context.Context) ([]models.Task, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Task, error)
	Update(ctx context.Context, id int64, patch models.TaskPatch) (models.Task, error)
	SetCompleted(ctx context.Context, id int64) (models.Task, error)
	Delete(ctx context.Context, id int64) error
}

type AuditLogs interface {
	Create(ctx context.Context, l models.AuditLog) error
}
