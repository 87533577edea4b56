package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pmikheev/tasktracker/internal/apperrors"
	"github.com/pmikheev/tasktracker/internal/models"
	repo "github.com/pmikheev/tasktracker/internal/repository"
)

type tasksRepo struct{ pool *pgxpool.Pool }

func NewTasks(pool *pgxpool.Pool) repo.Tasks {
	return &tasksRepo{pool: pool}
}

// Task rows come back joined to their owner so responses can embed a user
// summary without a second query. The owner columns are null for unowned
// tasks. The hash is never selected here.
const taskSelect = `
SELECT t.id, t.title, t.description, t.completed, t.user_id, t.created_at, t.updated_at,
       u.id, u.username, u.email, u.roles, u.created_at, u.updated_at
  FROM tasks t
  LEFT JOIN users u ON u.id = t.user_id`

// Every owner column must scan into a nullable destination: unowned tasks
// (user_id NULL, the state ON DELETE SET NULL produces) carry SQL NULL in
// all of them.
func scanTask(row interface{ Scan(dest ...any) error }) (models.Task, error) {
	var (
		t             models.Task
		desc          *string
		ownerID       *int64
		ownerUsername *string
		ownerEmail    *string
		ownerRoles    []string
		ownerCreated  *time.Time
		ownerUpdated  *time.Time
	)
	err := row.Scan(
		&t.ID, &t.Title, &desc, &t.Completed, &t.UserID, &t.CreatedAt, &t.UpdatedAt,
		&ownerID, &ownerUsername, &ownerEmail, &ownerRoles, &ownerCreated, &ownerUpdated,
	)
	if err != nil {
		return models.Task{}, err
	}
	if desc != nil {
		t.Description = *desc
	}
	if ownerID != nil {
		t.User = &models.User{
			ID:        *ownerID,
			Username:  *ownerUsername,
			Email:     *ownerEmail,
			Roles:     ownerRoles,
			CreatedAt: *ownerCreated,
			UpdatedAt: *ownerUpdated,
		}
	}
	return t, nil
}

func (r *tasksRepo) Create(ctx context.Context, title, description string, userID *int64) (models.Task, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO tasks(title, description, user_id) VALUES($1,$2,$3) RETURNING id`,
		title, nullIfEmpty(description), userID,
	).Scan(&id)
	if err != nil {
		return models.Task{}, mapErr(err, "task already exists", "user not found")
	}
	return r.GetByID(ctx, id)
}

func (r *tasksRepo) GetByID(ctx context.Context, id int64) (models.Task, error) {
	t, err := scanTask(r.pool.QueryRow(ctx, taskSelect+` WHERE t.id=$1`, id))
	if err != nil {
		return models.Task{}, mapReadErr(err, "task not found")
	}
	return t, nil
}

func (r *tasksRepo) List(ctx context.Context) ([]models.Task, error) {
	return r.queryTasks(ctx, taskSelect+` ORDER BY t.created_at DESC`)
}

func (r *tasksRepo) ListByUser(ctx context.Context, userID int64) ([]models.Task, error) {
	return r.queryTasks(ctx, taskSelect+` WHERE t.user_id=$1 ORDER BY t.created_at DESC`, userID)
}

func (r *tasksRepo) queryTasks(ctx context.Context, q string, args ...any) ([]models.Task, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *tasksRepo) Update(ctx context.Context, id int64, patch models.TaskPatch) (models.Task, error) {
	var updated int64
	err := r.pool.QueryRow(ctx,
		`UPDATE tasks
		    SET title       = COALESCE($2, title),
		        description = COALESCE($3, description),
		        completed   = COALESCE($4, completed),
		        updated_at  = now()
		  WHERE id=$1
		  RETURNING id`,
		id, patch.Title, patch.Description, patch.Completed,
	).Scan(&updated)
	if err != nil {
		return models.Task{}, mapErr(err, "task already exists", "task not found")
	}
	return r.GetByID(ctx, updated)
}

func (r *tasksRepo) SetCompleted(ctx context.Context, id int64) (models.Task, error) {
	completed := true
	return r.Update(ctx, id, models.TaskPatch{Completed: &completed})
}

func (r *tasksRepo) Delete(ctx context.Context, id int64) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("task not found")
	}
	return nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
