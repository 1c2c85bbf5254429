package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oleksii-sytar/personal-finance-sub002/internal/models"
	repo "github.com/oleksii-sytar/personal-finance-sub002/internal/repository"
)

type recurringsRepo struct{ pool *pgxpool.Pool }

const recurringCols = `id, workspace_id, account_id, type, amount, category_id, note, frequency, next_run_at, active, created_at, updated_at, deleted_at`

func scanRecurring(row pgx.Row) (models.RecurringTransaction, error) {
	var r models.RecurringTransaction
	err := row.Scan(&r.ID, &r.WorkspaceID, &r.AccountID, &r.Type, &r.Amount,
		&r.CategoryID, &r.Note, &r.Frequency, &r.NextRunAt,
		&r.Active, &r.CreatedAt, &r.UpdatedAt, &r.DeletedAt)
	return r, mapErr(err)
}

func (r *recurringsRepo) Create(ctx context.Context, rec models.RecurringTransaction) (models.RecurringTransaction, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	return scanRecurring(r.pool.QueryRow(ctx,
		`INSERT INTO recurring_transactions (id, workspace_id, account_id, type, amount, category_id, note, frequency, next_run_at, active)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		 RETURNING `+recurringCols,
		rec.ID, rec.WorkspaceID, rec.AccountID, rec.Type, rec.Amount,
		rec.CategoryID, rec.Note, rec.Frequency, rec.NextRunAt, rec.Active,
	))
}

func (r *recurringsRepo) GetByID(ctx context.Context, id string) (models.RecurringTransaction, error) {
	return scanRecurring(r.pool.QueryRow(ctx,
		`SELECT `+recurringCols+` FROM recurring_transactions WHERE id=$1 AND deleted_at IS NULL`, id))
}

func (r *recurringsRepo) ListByWorkspace(ctx context.Context, workspaceID string) ([]models.RecurringTransaction, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+recurringCols+` FROM recurring_transactions
		  WHERE workspace_id=$1 AND deleted_at IS NULL
		  ORDER BY next_run_at, id`, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.RecurringTransaction
	for rows.Next() {
		rec, err := scanRecurring(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *recurringsRepo) Update(ctx context.Context, rec models.RecurringTransaction) (models.RecurringTransaction, error) {
	return scanRecurring(r.pool.QueryRow(ctx,
		`UPDATE recurring_transactions
		    SET type=$2, amount=$3, category_id=$4, note=$5, frequency=$6, next_run_at=$7, active=$8, updated_at=now()
		  WHERE id=$1 AND deleted_at IS NULL
		  RETURNING `+recurringCols,
		rec.ID, rec.Type, rec.Amount, rec.CategoryID, rec.Note, rec.Frequency, rec.NextRunAt, rec.Active,
	))
}

func (r *recurringsRepo) SoftDelete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE recurring_transactions SET deleted_at=now(), updated_at=now()
		  WHERE id=$1 AND deleted_at IS NULL`, id)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return mapErr(pgx.ErrNoRows)
	}
	return nil
}

func (r *recurringsRepo) ListDue(ctx context.Context, asOf time.Time, limit int) ([]models.RecurringTransaction, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+recurringCols+` FROM recurring_transactions
		  WHERE active AND deleted_at IS NULL AND next_run_at <= $1
		  ORDER BY next_run_at, id
		  LIMIT $2`, asOf, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.RecurringTransaction
	for rows.Next() {
		rec, err := scanRecurring(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Materialize inserts the spawned transaction and advances next_run_at in one
// transaction. The update is guarded on the schedule still pointing at the run
// being materialized, so two schedulers racing on the same row produce one
// transaction, not two.
func (r *recurringsRepo) Materialize(ctx context.Context, rec models.RecurringTransaction, tx models.Transaction, nextRun time.Time) (models.Transaction, error) {
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	dbTx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return models.Transaction{}, err
	}
	defer dbTx.Rollback(ctx)

	tag, err := dbTx.Exec(ctx,
		`UPDATE recurring_transactions SET next_run_at=$3, updated_at=now()
		  WHERE id=$1 AND next_run_at=$2 AND active AND deleted_at IS NULL`,
		rec.ID, rec.NextRunAt, nextRun)
	if err != nil {
		return models.Transaction{}, mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return models.Transaction{}, repo.ErrConflict
	}

	tx, err = scanTxn(dbTx.QueryRow(ctx, insertTxn,
		tx.ID, tx.WorkspaceID, tx.AccountID, tx.Type, tx.Amount, tx.Currency,
		tx.OccurredAt, tx.CategoryID, tx.Note, tx.TransferID))
	if err != nil {
		return models.Transaction{}, err
	}
	if err := dbTx.Commit(ctx); err != nil {
		return models.Transaction{}, err
	}
	return tx, nil
}
