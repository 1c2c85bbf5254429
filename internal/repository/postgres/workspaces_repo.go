package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oleksii-sytar/personal-finance-sub002/internal/models"
)

type workspacesRepo struct{ pool *pgxpool.Pool }

func (r *workspacesRepo) Create(ctx context.Context, ws models.Workspace) (models.Workspace, error) {
	if ws.ID == "" {
		ws.ID = uuid.NewString()
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return models.Workspace{}, err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO workspaces(id, name, currency, created_by) VALUES($1,$2,$3,$4)
		 RETURNING id, name, currency, created_by, created_at`,
		ws.ID, ws.Name, ws.Currency, ws.CreatedBy,
	).Scan(&ws.ID, &ws.Name, &ws.Currency, &ws.CreatedBy, &ws.CreatedAt)
	if err != nil {
		return models.Workspace{}, mapErr(err)
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO workspace_members(workspace_id, user_id, role) VALUES($1,$2,$3)`,
		ws.ID, ws.CreatedBy, models.RoleOwner,
	)
	if err != nil {
		return models.Workspace{}, mapErr(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return models.Workspace{}, err
	}
	return ws, nil
}

func (r *workspacesRepo) GetByID(ctx context.Context, id string) (models.Workspace, error) {
	var ws models.Workspace
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, currency, created_by, created_at FROM workspaces WHERE id=$1`, id,
	).Scan(&ws.ID, &ws.Name, &ws.Currency, &ws.CreatedBy, &ws.CreatedAt)
	return ws, mapErr(err)
}

func (r *workspacesRepo) ListByUser(ctx context.Context, userID string) ([]models.Workspace, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT w.id, w.name, w.currency, w.created_by, w.created_at
		   FROM workspaces w
		   JOIN workspace_members m ON m.workspace_id = w.id
		  WHERE m.user_id = $1
		  ORDER BY w.created_at`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Workspace
	for rows.Next() {
		var ws models.Workspace
		if err := rows.Scan(&ws.ID, &ws.Name, &ws.Currency, &ws.CreatedBy, &ws.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, ws)
	}
	return out, rows.Err()
}

func (r *workspacesRepo) AddMember(ctx context.Context, m models.WorkspaceMember) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO workspace_members(workspace_id, user_id, role) VALUES($1,$2,$3)
		 ON CONFLICT (workspace_id, user_id) DO NOTHING`,
		m.WorkspaceID, m.UserID, m.Role,
	)
	return mapErr(err)
}

func (r *workspacesRepo) GetMember(ctx context.Context, workspaceID, userID string) (models.WorkspaceMember, error) {
	var m models.WorkspaceMember
	err := r.pool.QueryRow(ctx,
		`SELECT workspace_id, user_id, role, joined_at
		   FROM workspace_members WHERE workspace_id=$1 AND user_id=$2`,
		workspaceID, userID,
	).Scan(&m.WorkspaceID, &m.UserID, &m.Role, &m.JoinedAt)
	return m, mapErr(err)
}
