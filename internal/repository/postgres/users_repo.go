package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pmikheev/tasktracker/internal/apperrors"
	"github.com/pmikheev/tasktracker/internal/models"
	repo "github.com/pmikheev/tasktracker/internal/repository"
)

type usersRepo struct{ pool *pgxpool.Pool }

func NewUsers(pool *pgxpool.Pool) repo.Users {
	return &usersRepo{pool: pool}
}

const userCols = `id, username, email, password_hash, roles, created_at, updated_at`

func scanUser(row interface{ Scan(dest ...any) error }) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Roles, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func (r *usersRepo) Create(ctx context.Context, username, email, hash string, roles []string) (models.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx,
		`INSERT INTO users(username, email, password_hash, roles)
		 VALUES($1,$2,$3,$4)
		 RETURNING `+userCols,
		username, email, hash, roles,
	))
	if err != nil {
		return models.User{}, mapErr(err, "user already exists", "user not found")
	}
	return u, nil
}

func (r *usersRepo) GetByID(ctx context.Context, id int64) (models.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userCols+` FROM users WHERE id=$1`, id))
	if err != nil {
		return models.User{}, mapReadErr(err, "user not found")
	}
	return u, nil
}

func (r *usersRepo) GetByUsername(ctx context.Context, username string) (models.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userCols+` FROM users WHERE username=$1`, username))
	if err != nil {
		return models.User{}, mapReadErr(err, "user not found")
	}
	return u, nil
}

func (r *usersRepo) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+userCols+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *usersRepo) Update(ctx context.Context, id int64, username, email string) (models.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx,
		`UPDATE users SET username=$2, email=$3, updated_at=now()
		 WHERE id=$1
		 RETURNING `+userCols,
		id, username, email,
	))
	if err != nil {
		return models.User{}, mapErr(err, "user already exists", "user not found")
	}
	return u, nil
}

func (r *usersRepo) Delete(ctx context.Context, id int64) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("user not found")
	}
	return nil
}
