package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pmikheev/tasktracker/internal/api"
	"github.com/pmikheev/tasktracker/internal/audit"
	"github.com/pmikheev/tasktracker/internal/auth"
	"github.com/pmikheev/tasktracker/internal/config"
	"github.com/pmikheev/tasktracker/internal/db"
	"github.com/pmikheev/tasktracker/internal/logger"
	"github.com/pmikheev/tasktracker/internal/metrics"
	"github.com/pmikheev/tasktracker/internal/middleware"
	"github.com/pmikheev/tasktracker/internal/repository/postgres"
	"github.com/pmikheev/tasktracker/internal/services"
	"github.com/pmikheev/tasktracker/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "err", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.Migrate {
		if err := db.RunMigrations(ctx, pool); err != nil {
			log.Error("migrations", "err", err)
			os.Exit(1)
		}
	}

	repos := postgres.NewRepositories(pool)
	wp := worker.NewPool(4)
	defer wp.Stop()

	metrics.Init()

	rec := audit.NewRecorder(repos.AuditLogs, wp)
	tm := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)

	authSvc := services.NewAuthService(repos.Users, tm, rec)
	taskSvc := services.NewTaskService(repos.Tasks, rec)
	userSvc := services.NewUserService(repos.Users, repos.Tasks, rec)

	r := api.NewRouter(api.RouterDeps{
		Cfg:     cfg,
		AuthSvc: authSvc,
		TaskSvc: taskSvc,
		UserSvc: userSvc,
		Guard:   middleware.NewAuthMiddleware(tm, authSvc),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
