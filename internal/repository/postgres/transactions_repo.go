package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/oleksii-sytar/personal-finance-sub002/internal/models"
)

type transactionsRepo struct{ pool *pgxpool.Pool }

const txnCols = `id, workspace_id, account_id, type, amount, currency, occurred_at, category_id, note, transfer_id, created_at, updated_at, deleted_at`

func scanTxn(row pgx.Row) (models.Transaction, error) {
	var tx models.Transaction
	err := row.Scan(&tx.ID, &tx.WorkspaceID, &tx.AccountID, &tx.Type, &tx.Amount,
		&tx.Currency, &tx.OccurredAt, &tx.CategoryID, &tx.Note, &tx.TransferID,
		&tx.CreatedAt, &tx.UpdatedAt, &tx.DeletedAt)
	return tx, mapErr(err)
}

const insertTxn = `
INSERT INTO transactions (id, workspace_id, account_id, type, amount, currency, occurred_at, category_id, note, transfer_id)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
RETURNING ` + txnCols

func (r *transactionsRepo) Create(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	return scanTxn(r.pool.QueryRow(ctx, insertTxn,
		tx.ID, tx.WorkspaceID, tx.AccountID, tx.Type, tx.Amount, tx.Currency,
		tx.OccurredAt, tx.CategoryID, tx.Note, tx.TransferID,
	))
}

func (r *transactionsRepo) CreatePair(ctx context.Context, out, in models.Transaction) (models.Transaction, models.Transaction, error) {
	if out.ID == "" {
		out.ID = uuid.NewString()
	}
	if in.ID == "" {
		in.ID = uuid.NewString()
	}
	dbTx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return models.Transaction{}, models.Transaction{}, err
	}
	defer dbTx.Rollback(ctx)

	out, err = scanTxn(dbTx.QueryRow(ctx, insertTxn,
		out.ID, out.WorkspaceID, out.AccountID, out.Type, out.Amount, out.Currency,
		out.OccurredAt, out.CategoryID, out.Note, out.TransferID))
	if err != nil {
		return models.Transaction{}, models.Transaction{}, err
	}
	in, err = scanTxn(dbTx.QueryRow(ctx, insertTxn,
		in.ID, in.WorkspaceID, in.AccountID, in.Type, in.Amount, in.Currency,
		in.OccurredAt, in.CategoryID, in.Note, in.TransferID))
	if err != nil {
		return models.Transaction{}, models.Transaction{}, err
	}
	if err := dbTx.Commit(ctx); err != nil {
		return models.Transaction{}, models.Transaction{}, err
	}
	return out, in, nil
}

func (r *transactionsRepo) GetByID(ctx context.Context, id string) (models.Transaction, error) {
	return scanTxn(r.pool.QueryRow(ctx,
		`SELECT `+txnCols+` FROM transactions WHERE id=$1 AND deleted_at IS NULL`, id))
}

func (r *transactionsRepo) List(ctx context.Context, f models.TransactionFilter) ([]models.Transaction, error) {
	var b strings.Builder
	b.WriteString(`SELECT ` + txnCols + ` FROM transactions WHERE workspace_id=$1 AND deleted_at IS NULL`)
	args := []any{f.WorkspaceID}

	add := func(cond string, arg any) {
		args = append(args, arg)
		fmt.Fprintf(&b, " AND "+cond, len(args))
	}
	if f.AccountID != "" {
		add("account_id=$%d", f.AccountID)
	}
	if f.CategoryID != "" {
		add("category_id=$%d", f.CategoryID)
	}
	if f.Type != "" {
		add("type=$%d", f.Type)
	}
	if f.From != nil {
		add("occurred_at >= $%d", *f.From)
	}
	if f.To != nil {
		add("occurred_at <= $%d", *f.To)
	}
	if f.Query != "" {
		add("note ILIKE '%%'|| $%d ||'%%'", f.Query)
	}
	b.WriteString(" ORDER BY occurred_at DESC, id")

	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit)
	fmt.Fprintf(&b, " LIMIT $%d", len(args))
	if f.Offset > 0 {
		args = append(args, f.Offset)
		fmt.Fprintf(&b, " OFFSET $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, b.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Transaction
	for rows.Next() {
		tx, err := scanTxn(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, tx)
	}
	return out, rows.Err()
}

func (r *transactionsRepo) Update(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	return scanTxn(r.pool.QueryRow(ctx,
		`UPDATE transactions
		    SET type=$2, amount=$3, occurred_at=$4, category_id=$5, note=$6, updated_at=now()
		  WHERE id=$1 AND deleted_at IS NULL
		  RETURNING `+txnCols,
		tx.ID, tx.Type, tx.Amount, tx.OccurredAt, tx.CategoryID, tx.Note,
	))
}

// SoftDelete marks the row and, when the row is a transfer leg, its twin.
func (r *transactionsRepo) SoftDelete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE transactions SET deleted_at=now(), updated_at=now()
		  WHERE deleted_at IS NULL
		    AND (id=$1 OR (transfer_id IS NOT NULL AND transfer_id=(
		         SELECT transfer_id FROM transactions WHERE id=$1)))`,
		id,
	)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return mapErr(pgx.ErrNoRows)
	}
	return nil
}

func (r *transactionsRepo) SumSigned(ctx context.Context, accountID string, asOf time.Time) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(CASE WHEN type IN ('income','transfer_in') THEN amount ELSE -amount END), 0)
		   FROM transactions
		  WHERE account_id=$1 AND deleted_at IS NULL AND occurred_at <= $2`,
		accountID, asOf,
	).Scan(&sum)
	return sum, mapErr(err)
}
