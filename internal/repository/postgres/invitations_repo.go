package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oleksii-sytar/personal-finance-sub002/internal/models"
)

type invitationsRepo struct{ pool *pgxpool.Pool }

const invitationCols = `id, workspace_id, email, token, invited_by, status, created_at, expires_at`

func scanInvitation(row pgx.Row) (models.Invitation, error) {
	var inv models.Invitation
	err := row.Scan(&inv.ID, &inv.WorkspaceID, &inv.Email, &inv.Token,
		&inv.InvitedBy, &inv.Status, &inv.CreatedAt, &inv.ExpiresAt)
	return inv, mapErr(err)
}

func (r *invitationsRepo) Create(ctx context.Context, inv models.Invitation) (models.Invitation, error) {
	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}
	return scanInvitation(r.pool.QueryRow(ctx,
		`INSERT INTO invitations(id, workspace_id, email, token, invited_by, status, expires_at)
		 VALUES($1,$2,$3,$4,$5,$6,$7)
		 RETURNING `+invitationCols,
		inv.ID, inv.WorkspaceID, inv.Email, inv.Token, inv.InvitedBy, inv.Status, inv.ExpiresAt,
	))
}

func (r *invitationsRepo) GetByID(ctx context.Context, id string) (models.Invitation, error) {
	return scanInvitation(r.pool.QueryRow(ctx,
		`SELECT `+invitationCols+` FROM invitations WHERE id=$1`, id))
}

func (r *invitationsRepo) GetByToken(ctx context.Context, token string) (models.Invitation, error) {
	return scanInvitation(r.pool.QueryRow(ctx,
		`SELECT `+invitationCols+` FROM invitations WHERE token=$1`, token))
}

func (r *invitationsRepo) ListByEmail(ctx context.Context, email string) ([]models.Invitation, error) {
	return r.list(ctx, `SELECT `+invitationCols+` FROM invitations WHERE email=$1 ORDER BY created_at DESC`, email)
}

func (r *invitationsRepo) ListByWorkspace(ctx context.Context, workspaceID string) ([]models.Invitation, error) {
	return r.list(ctx, `SELECT `+invitationCols+` FROM invitations WHERE workspace_id=$1 ORDER BY created_at DESC`, workspaceID)
}

func (r *invitationsRepo) list(ctx context.Context, q string, arg any) ([]models.Invitation, error) {
	rows, err := r.pool.Query(ctx, q, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Invitation
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

func (r *invitationsRepo) UpdateStatus(ctx context.Context, id string, status models.InvitationStatus) error {
	tag, err := r.pool.Exec(ctx, `UPDATE invitations SET status=$2 WHERE id=$1`, id, status)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return mapErr(pgx.ErrNoRows)
	}
	return nil
}
