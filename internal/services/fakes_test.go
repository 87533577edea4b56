package services

import (
	"context"
	"sort"
	"time"

	"github.com/pmikheev/tasktracker/internal/apperrors"
	"github.com/pmikheev/tasktracker/internal/models"
)

// In-memory repositories mirroring the postgres error mapping: unique
// violations come back as conflicts, missing rows and broken foreign keys
// as not-found.

type fakeUsers struct {
	seq  int64
	byID map[int64]models.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[int64]models.User{}}
}

func (f *fakeUsers) Create(_ context.Context, username, email, hash string, roles []string) (models.User, error) {
	for _, u := range f.byID {
		if u.Username == username || u.Email == email {
			return models.User{}, apperrors.Conflict("user already exists")
		}
	}
	f.seq++
	now := time.Now()
	u := models.User{
		ID:           f.seq,
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Roles:        append([]string(nil), roles...),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	f.byID[u.ID] = u
	return u, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (models.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return models.User{}, apperrors.NotFound("user not found")
	}
	return u, nil
}

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (models.User, error) {
	for _, u := range f.byID {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, apperrors.NotFound("user not found")
}

func (f *fakeUsers) List(_ context.Context) ([]models.User, error) {
	out := make([]models.User, 0, len(f.byID))
	for _, u := range f.byID {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeUsers) Update(_ context.Context, id int64, username, email string) (models.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return models.User{}, apperrors.NotFound("user not found")
	}
	for _, other := range f.byID {
		if other.ID != id && (other.Username == username || other.Email == email) {
			return models.User{}, apperrors.Conflict("user already exists")
		}
	}
	u.Username, u.Email, u.UpdatedAt = username, email, time.Now()
	f.byID[id] = u
	return u, nil
}

func (f *fakeUsers) Delete(_ context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return apperrors.NotFound("user not found")
	}
	delete(f.byID, id)
	return nil
}

type fakeTasks struct {
	seq   int64
	byID  map[int64]models.Task
	users *fakeUsers
}

func newFakeTasks(users *fakeUsers) *fakeTasks {
	return &fakeTasks{byID: map[int64]models.Task{}, users: users}
}

func (f *fakeTasks) Create(_ context.Context, title, description string, userID *int64) (models.Task, error) {
	var owner *models.User
	if userID != nil {
		u, ok := f.users.byID[*userID]
		if !ok {
			return models.Task{}, apperrors.NotFound("user not found")
		}
		red := u.Redacted()
		owner = &red
	}
	f.seq++
	now := time.Now()
	t := models.Task{
		ID:          f.seq,
		Title:       title,
		Description: description,
		UserID:      userID,
		User:        owner,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	f.byID[t.ID] = t
	return t, nil
}

func (f *fakeTasks) GetByID(_ context.Context, id int64) (models.Task, error) {
	t, ok := f.byID[id]
	if !ok {
		return models.Task{}, apperrors.NotFound("task not found")
	}
	return t, nil
}

func (f *fakeTasks) List(_ context.Context) ([]models.Task, error) {
	out := make([]models.Task, 0, len(f.byID))
	for _, t := range f.byID {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeTasks) ListByUser(_ context.Context, userID int64) ([]models.Task, error) {
	var out []models.Task
	for _, t := range f.byID {
		if t.UserID != nil && *t.UserID == userID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeTasks) Update(_ context.Context, id int64, patch models.TaskPatch) (models.Task, error) {
	t, ok := f.byID[id]
	if !ok {
		return models.Task{}, apperrors.NotFound("task not found")
	}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Completed != nil {
		t.Completed = *patch.Completed
	}
	t.UpdatedAt = time.Now()
	f.byID[id] = t
	return t, nil
}

func (f *fakeTasks) SetCompleted(ctx context.Context, id int64) (models.Task, error) {
	completed := true
	return f.Update(ctx, id, models.TaskPatch{Completed: &completed})
}

func (f *fakeTasks) Delete(_ context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return apperrors.NotFound("task not found")
	}
	delete(f.byID, id)
	return nil
}
