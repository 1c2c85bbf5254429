package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oleksii-sytar/personal-finance-sub002/internal/models"
)

type categoriesRepo struct{ pool *pgxpool.Pool }

func (r *categoriesRepo) Create(ctx context.Context, c models.Category) (models.Category, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO categories(id, workspace_id, name) VALUES($1,$2,$3)
		 RETURNING id, workspace_id, name, created_at`,
		c.ID, c.WorkspaceID, c.Name,
	).Scan(&c.ID, &c.WorkspaceID, &c.Name, &c.CreatedAt)
	return c, mapErr(err)
}

func (r *categoriesRepo) GetByID(ctx context.Context, id string) (models.Category, error) {
	var c models.Category
	err := r.pool.QueryRow(ctx,
		`SELECT id, workspace_id, name, created_at FROM categories WHERE id=$1`, id,
	).Scan(&c.ID, &c.WorkspaceID, &c.Name, &c.CreatedAt)
	return c, mapErr(err)
}

func (r *categoriesRepo) ListByWorkspace(ctx context.Context, workspaceID string) ([]models.Category, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, workspace_id, name, created_at FROM categories WHERE workspace_id=$1 ORDER BY lower(name)`,
		workspaceID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.WorkspaceID, &c.Name, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *categoriesRepo) Rename(ctx context.Context, id, name string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE categories SET name=$2 WHERE id=$1`, id, name)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return mapErr(pgx.ErrNoRows)
	}
	return nil
}

func (r *categoriesRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id=$1`, id)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return mapErr(pgx.ErrNoRows)
	}
	return nil
}
