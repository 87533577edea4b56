package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"
	repo "github.com/pmikheev/tasktracker/internal/repository"
)

type Repositories struct {
	Users     repo.Users
	Tasks     repo.Tasks
	AuditLogs repo.AuditLogs
}

func NewRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Users:     &usersRepo{pool},
		Tasks:     &tasksRepo{pool},
		AuditLogs: &auditLogsRepo{pool},
	}
}
