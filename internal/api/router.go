package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/pmikheev/tasktracker/internal/api/handlers"
	"github.com/pmikheev/tasktracker/internal/config"
	"github.com/pmikheev/tasktracker/internal/metrics"
	"github.com/pmikheev/tasktracker/internal/middleware"
	"github.com/pmikheev/tasktracker/internal/services"
)

type RouterDeps struct {
	Cfg     config.Config
	AuthSvc *services.AuthService
	TaskSvc *services.TaskService
	UserSvc *services.UserService
	Guard   *middleware.AuthMiddleware
}

func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.RateLimit(d.Cfg.RateRPS), middleware.HTTPMetrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	authH := handlers.NewAuthHandler(d.AuthSvc)
	tasksH := handlers.NewTasksHandler(d.TaskSvc)
	usersH := handlers.NewUsersHandler(d.UserSvc)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	r.Post("/auth/register", authH.Register)
	r.Post("/auth/login", authH.Login)

	// every task route sits behind the bearer guard
	r.Route("/prisma/tasks", func(r chi.Router) {
		r.Use(d.Guard.Guard)
		r.Get("/", tasksH.List)
		r.Post("/", tasksH.Create)
		r.Get("/my/tasks", tasksH.MyTasks)
		r.Get("/user/{userId}", tasksH.ListByUser)
		r.Post("/user/{userId}", tasksH.CreateForUser)
		r.Get("/{id}", tasksH.Get)
		r.Put("/{id}", tasksH.Update)
		r.Put("/{id}/complete", tasksH.Complete)
		r.Delete("/{id}", tasksH.Delete)
	})

	// user management stays outside the guard, matching the task/user
	// asymmetry of the published interface
	r.Route("/prisma/users", func(r chi.Router) {
		r.Get("/", usersH.List)
		r.Post("/", usersH.Create)
		r.Get("/username/{username}", usersH.GetByUsername)
		r.Get("/{id}", usersH.Get)
		r.Put("/{id}", usersH.Update)
		r.Delete("/{id}", usersH.Delete)
	})

	return r
}
