package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pmikheev/tasktracker/internal/apperrors"
	"github.com/pmikheev/tasktracker/internal/auth"
	"github.com/pmikheev/tasktracker/internal/config"
	"github.com/pmikheev/tasktracker/internal/middleware"
	"github.com/pmikheev/tasktracker/internal/models"
	"github.com/pmikheev/tasktracker/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memory-backed repositories with the same error mapping contract as the
// postgres implementations

type memUsers struct {
	seq  int64
	byID map[int64]models.User
}

func (m *memUsers) Create(_ context.Context, username, email, hash string, roles []string) (models.User, error) {
	for _, u := range m.byID {
		if u.Username == username || u.Email == email {
			return models.User{}, apperrors.Conflict("user already exists")
		}
	}
	m.seq++
	u := models.User{ID: m.seq, Username: username, Email: email, PasswordHash: hash,
		Roles: roles, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	m.byID[u.ID] = u
	return u, nil
}

func (m *memUsers) GetByID(_ context.Context, id int64) (models.User, error) {
	if u, ok := m.byID[id]; ok {
		return u, nil
	}
	return models.User{}, apperrors.NotFound("user not found")
}

func (m *memUsers) GetByUsername(_ context.Context, username string) (models.User, error) {
	for _, u := range m.byID {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, apperrors.NotFound("user not found")
}

func (m *memUsers) List(_ context.Context) ([]models.User, error) {
	out := make([]models.User, 0, len(m.byID))
	for _, u := range m.byID {
		out = append(out, u)
	}
	return out, nil
}

func (m *memUsers) Update(_ context.Context, id int64, username, email string) (models.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return models.User{}, apperrors.NotFound("user not found")
	}
	u.Username, u.Email = username, email
	m.byID[id] = u
	return u, nil
}

func (m *memUsers) Delete(_ context.Context, id int64) error {
	if _, ok := m.byID[id]; !ok {
		return apperrors.NotFound("user not found")
	}
	delete(m.byID, id)
	return nil
}

type memTasks struct {
	seq   int64
	byID  map[int64]models.Task
	users *memUsers
}

func (m *memTasks) Create(_ context.Context, title, description string, userID *int64) (models.Task, error) {
	if userID != nil {
		if _, ok := m.users.byID[*userID]; !ok {
			return models.Task{}, apperrors.NotFound("user not found")
		}
	}
	m.seq++
	t := models.Task{ID: m.seq, Title: title, Description: description, UserID: userID,
		CreatedAt: time.Now(), UpdatedAt: time.Now()}
	m.byID[t.ID] = t
	return t, nil
}

func (m *memTasks) GetByID(_ context.Context, id int64) (models.Task, error) {
	if t, ok := m.byID[id]; ok {
		return t, nil
	}
	return models.Task{}, apperrors.NotFound("task not found")
}

func (m *memTasks) List(_ context.Context) ([]models.Task, error) {
	out := make([]models.Task, 0, len(m.byID))
	for _, t := range m.byID {
		out = append(out, t)
	}
	return out, nil
}

func (m *memTasks) ListByUser(_ context.Context, userID int64) ([]models.Task, error) {
	var out []models.Task
	for _, t := range m.byID {
		if t.UserID != nil && *t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memTasks) Update(_ context.Context, id int64, patch models.TaskPatch) (models.Task, error) {
	t, ok := m.byID[id]
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
	m.byID[id] = t
	return t, nil
}

func (m *memTasks) SetCompleted(ctx context.Context, id int64) (models.Task, error) {
	completed := true
	return m.Update(ctx, id, models.TaskPatch{Completed: &completed})
}

func (m *memTasks) Delete(_ context.Context, id int64) error {
	if _, ok := m.byID[id]; !ok {
		return apperrors.NotFound("task not found")
	}
	delete(m.byID, id)
	return nil
}

func newTestRouter() http.Handler {
	users := &memUsers{byID: map[int64]models.User{}}
	tasks := &memTasks{byID: map[int64]models.Task{}, users: users}
	tm := auth.NewTokenManager("test-secret", "tasktracker", time.Hour)
	authSvc := services.NewAuthService(users, tm, nil)

	return NewRouter(RouterDeps{
		Cfg:     config.Config{Env: "test", RateRPS: 0},
		AuthSvc: authSvc,
		TaskSvc: services.NewTaskService(tasks, nil),
		UserSvc: services.NewUserService(users, tasks, nil),
		Guard:   middleware.NewAuthMiddleware(tm, authSvc),
	})
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRegisterLoginFlow(t *testing.T) {
	h := newTestRouter()

	rec := doJSON(t, h, http.MethodPost, "/auth/register", "",
		map[string]string{"username": "alice", "email": "a@x.com", "password": "secret1"})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
	assert.NotContains(t, rec.Body.String(), "secret1")

	// duplicate username
	rec = doJSON(t, h, http.MethodPost, "/auth/register", "",
		map[string]string{"username": "alice", "email": "b@x.com", "password": "secret2"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// bad input stays at the boundary
	rec = doJSON(t, h, http.MethodPost, "/auth/register", "",
		map[string]string{"username": "al", "email": "nope", "password": "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/auth/login", "",
		map[string]string{"username": "alice", "password": "secret1"})
	require.Equal(t, http.StatusOK, rec.Code)
	var login struct {
		AccessToken string      `json:"access_token"`
		User        models.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	assert.NotEmpty(t, login.AccessToken)
	assert.Equal(t, "alice", login.User.Username)

	// wrong password and unknown user produce identical bodies
	wrong := doJSON(t, h, http.MethodPost, "/auth/login", "",
		map[string]string{"username": "alice", "password": "wrong"})
	unknown := doJSON(t, h, http.MethodPost, "/auth/login", "",
		map[string]string{"username": "nouser", "password": "whatever"})
	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, wrong.Body.String(), unknown.Body.String())
}

func TestTaskEndpoints(t *testing.T) {
	h := newTestRouter()

	rec := doJSON(t, h, http.MethodPost, "/auth/register", "",
		map[string]string{"username": "alice", "email": "a@x.com", "password": "secret1"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/auth/login", "",
		map[string]string{"username": "alice", "password": "secret1"})
	require.Equal(t, http.StatusOK, rec.Code)
	var login struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	token := login.AccessToken

	// guard blocks anonymous access
	assert.Equal(t, http.StatusUnauthorized,
		doJSON(t, h, http.MethodGet, "/prisma/tasks", "", nil).Code)

	// create bound to caller
	rec = doJSON(t, h, http.MethodPost, "/prisma/tasks", token,
		map[string]string{"title": "write report"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var task models.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &task))
	require.NotNil(t, task.UserID)

	// create for a user that does not exist
	rec = doJSON(t, h, http.MethodPost, "/prisma/tasks/user/999", token,
		map[string]string{"title": "orphan"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// complete twice stays completed
	for i := 0; i < 2; i++ {
		rec = doJSON(t, h, http.MethodPut, fmt.Sprintf("/prisma/tasks/%d/complete", task.ID), token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var done models.Task
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &done))
		assert.True(t, done.Completed)
	}

	// caller-scoped listing sees the task
	rec = doJSON(t, h, http.MethodGet, "/prisma/tasks/my/tasks", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var mine []models.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &mine))
	require.Len(t, mine, 1)

	// delete twice: 204 then 404
	assert.Equal(t, http.StatusNoContent,
		doJSON(t, h, http.MethodDelete, fmt.Sprintf("/prisma/tasks/%d", task.ID), token, nil).Code)
	assert.Equal(t, http.StatusNotFound,
		doJSON(t, h, http.MethodDelete, fmt.Sprintf("/prisma/tasks/%d", task.ID), token, nil).Code)

	// single fetch of a missing task
	assert.Equal(t, http.StatusNotFound,
		doJSON(t, h, http.MethodGet, "/prisma/tasks/12345", token, nil).Code)
}

func TestUserEndpointsStripHash(t *testing.T) {
	h := newTestRouter()

	rec := doJSON(t, h, http.MethodPost, "/prisma/users", "",
		map[string]string{"username": "bob", "email": "b@x.com"})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")

	rec = doJSON(t, h, http.MethodGet, "/prisma/users", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")

	rec = doJSON(t, h, http.MethodGet, "/prisma/users/username/bob", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"bob"`)
}
