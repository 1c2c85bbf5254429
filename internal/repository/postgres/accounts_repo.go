package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oleksii-sytar/personal-finance-sub002/internal/models"
)

type accountsRepo struct{ pool *pgxpool.Pool }

const accountCols = `id, workspace_id, name, currency, opening_balance, actual_balance, created_at, updated_at, archived_at`

func scanAccount(row pgx.Row) (models.Account, error) {
	var a models.Account
	err := row.Scan(&a.ID, &a.WorkspaceID, &a.Name, &a.Currency,
		&a.OpeningBalance, &a.ActualBalance, &a.CreatedAt, &a.UpdatedAt, &a.ArchivedAt)
	return a, mapErr(err)
}

func (r *accountsRepo) Create(ctx context.Context, a models.Account) (models.Account, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return scanAccount(r.pool.QueryRow(ctx,
		`INSERT INTO accounts(id, workspace_id, name, currency, opening_balance, actual_balance)
		 VALUES($1,$2,$3,$4,$5,$6)
		 RETURNING `+accountCols,
		a.ID, a.WorkspaceID, a.Name, a.Currency, a.OpeningBalance, a.ActualBalance,
	))
}

func (r *accountsRepo) GetByID(ctx context.Context, id string) (models.Account, error) {
	return scanAccount(r.pool.QueryRow(ctx,
		`SELECT `+accountCols+` FROM accounts WHERE id=$1`, id))
}

func (r *accountsRepo) ListByWorkspace(ctx context.Context, workspaceID string, includeArchived bool) ([]models.Account, error) {
	q := `SELECT ` + accountCols + ` FROM accounts WHERE workspace_id=$1`
	if !includeArchived {
		q += ` AND archived_at IS NULL`
	}
	q += ` ORDER BY created_at`

	rows, err := r.pool.Query(ctx, q, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *accountsRepo) Rename(ctx context.Context, id, name string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE accounts SET name=$2, updated_at=now() WHERE id=$1`, id, name)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return mapErr(pgx.ErrNoRows)
	}
	return nil
}

func (r *accountsRepo) Archive(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE accounts SET archived_at=now(), updated_at=now() WHERE id=$1 AND archived_at IS NULL`, id)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return mapErr(pgx.ErrNoRows)
	}
	return nil
}
