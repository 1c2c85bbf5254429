package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oleksii-sytar/personal-finance-sub002/internal/models"
)

type usersRepo struct{ pool *pgxpool.Pool }

func (r *usersRepo) Create(ctx context.Context, u models.User) (models.User, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users(id, username, email, password_hash) VALUES($1,$2,$3,$4)
		 RETURNING id, username, email, password_hash, created_at, updated_at`,
		u.ID, u.Username, u.Email, u.PasswordHash,
	).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	return u, mapErr(err)
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (models.User, error) {
	var u models.User
	err := r.pool.QueryRow(ctx,
		`SELECT id, username, email, password_hash, created_at, updated_at FROM users WHERE id=$1`, id,
	).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	return u, mapErr(err)
}

func (r *usersRepo) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := r.pool.QueryRow(ctx,
		`SELECT id, username, email, password_hash, created_at, updated_at FROM users WHERE email=$1`, email,
	).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	return u, mapErr(err)
}
