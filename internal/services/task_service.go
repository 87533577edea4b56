package services

import (
	"context"

	"github.com/pmikheev/tasktracker/internal/apperrors"
	"github.com/pmikheev/tasktracker/internal/audit"
	"github.com/pmikheev/tasktracker/internal/metrics"
	"github.com/pmikheev/tasktracker/internal/models"
	repo "github.com/pmikheev/tasktracker/internal/repository"
)

type TaskService struct {
	tasks repo.Tasks
	audit *audit.Recorder
}

func NewTaskService(tasks repo.Tasks, rec *audit.Recorder) *TaskService {
	return &TaskService{tasks: tasks, audit: rec}
}

func (s *TaskService) List(ctx context.Context) ([]models.Task, error) {
	out, err := s.tasks.List(ctx)
	return out, wrap(err)
}

func (s *TaskService) Get(ctx context.Context, id int64) (models.Task, error) {
	t, err := s.tasks.GetByID(ctx, id)
	return t, wrap(err)
}

// Create inserts a task, optionally bound to an owner. A dangling owner id
// fails the store's foreign key and comes back as "user not found" rather
// than a raw constraint error.
func (s *TaskService) Create(ctx context.Context, title, description string, userID *int64) (models.Task, error) {
	t, err := s.tasks.Create(ctx, title, description, userID)
	if err != nil {
		return models.Task{}, wrap(err)
	}
	metrics.TaskOperationsTotal.WithLabelValues("create").Inc()
	s.audit.Record("task", t.ID, "task.created", nil)
	return t, nil
}

func (s *TaskService) Update(ctx context.Context, id int64, patch models.TaskPatch) (models.Task, error) {
	t, err := s.tasks.Update(ctx, id, patch)
	if err != nil {
		return models.Task{}, wrap(err)
	}
	metrics.TaskOperationsTotal.WithLabelValues("update").Inc()
	s.audit.Record("task", t.ID, "task.updated", nil)
	return t, nil
}

// Complete sets the completed flag. Completing an already completed task is
// a successful no-op.
func (s *TaskService) Complete(ctx context.Context, id int64) (models.Task, error) {
	t, err := s.tasks.SetCompleted(ctx, id)
	if err != nil {
		return models.Task{}, wrap(err)
	}
	metrics.TaskOperationsTotal.WithLabelValues("complete").Inc()
	s.audit.Record("task", t.ID, "task.completed", nil)
	return t, nil
}

func (s *TaskService) Delete(ctx context.Context, id int64) error {
	if err := s.tasks.Delete(ctx, id); err != nil {
		return wrap(err)
	}
	metrics.TaskOperationsTotal.WithLabelValues("delete").Inc()
	s.audit.Record("task", id, "task.deleted", nil)
	return nil
}

func (s *TaskService) ListByUser(ctx context.Context, userID int64) ([]models.Task, error) {
	out, err := s.tasks.ListByUser(ctx, userID)
	return out, wrap(err)
}

// wrap keeps taxonomy errors as-is and hides everything else behind the
// internal sentinel.
func wrap(err error) error {
	if err == nil || apperrors.IsDomain(err) {
		return err
	}
	return apperrors.Internal(err)
}
