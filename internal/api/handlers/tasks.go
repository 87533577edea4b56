package handlers

import (
	"net/http"

	"github.com/pmikheev/tasktracker/internal/api/httpx"
	"github.com/pmikheev/tasktracker/internal/middleware"
	"github.com/pmikheev/tasktracker/internal/models"
	"github.com/pmikheev/tasktracker/internal/services"
)

type TasksHandler struct {
	svc *services.TaskService
}

func NewTasksHandler(svc *services.TaskService) *TasksHandler {
	return &TasksHandler{svc: svc}
}

type createTaskReq struct {
	Title       string `json:"title" validate:"required,min=3,max=255"`
	Description string `json:"description" validate:"omitempty"`
}

type updateTaskReq struct {
	Title       *string `json:"title" validate:"omitempty,min=3,max=255"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

func (h *TasksHandler) List(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.svc.List(r.Context())
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, tasks)
}

func (h *TasksHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	task, err := h.svc.Get(r.Context(), id)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, task)
}

// Create binds the new task to the authenticated caller.
func (h *TasksHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTaskReq
	if !decodeValid(w, r, &req) {
		return
	}
	ident, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "missing identity", nil)
		return
	}
	task, err := h.svc.Create(r.Context(), req.Title, req.Description, &ident.ID)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, task)
}

// CreateForUser binds the new task to an explicit owner.
func (h *TasksHandler) CreateForUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := idParam(w, r, "userId")
	if !ok {
		return
	}
	var req createTaskReq
	if !decodeValid(w, r, &req) {
		return
	}
	task, err := h.svc.Create(r.Context(), req.Title, req.Description, &userID)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, task)
}

func (h *TasksHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	var req updateTaskReq
	if !decodeValid(w, r, &req) {
		return
	}
	task, err := h.svc.Update(r.Context(), id, models.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, task)
}

func (h *TasksHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	task, err := h.svc.Complete(r.Context(), id)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, task)
}

func (h *TasksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		httpx.Error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TasksHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := idParam(w, r, "userId")
	if !ok {
		return
	}
	tasks, err := h.svc.ListByUser(r.Context(), userID)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, tasks)
}

// MyTasks lists the tasks owned by the authenticated caller.
func (h *TasksHandler) MyTasks(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "missing identity", nil)
		return
	}
	tasks, err := h.svc.ListByUser(r.Context(), ident.ID)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, tasks)
}
