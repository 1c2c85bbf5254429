package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/oleksii-sytar/personal-finance-sub002/internal/models"
)

type balanceUpdatesRepo struct{ pool *pgxpool.Pool }

// Record locks the account row, swaps its actual balance and appends the
// history event in a single transaction. Either both rows change or neither.
func (r *balanceUpdatesRepo) Record(ctx context.Context, accountID string, newBalance decimal.Decimal, actor, note string) (models.Account, models.BalanceUpdateEvent, error) {
	dbTx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return models.Account{}, models.BalanceUpdateEvent{}, err
	}
	defer dbTx.Rollback(ctx)

	var old decimal.Decimal
	var workspaceID string
	err = dbTx.QueryRow(ctx,
		`SELECT workspace_id, actual_balance FROM accounts
		  WHERE id=$1 AND archived_at IS NULL FOR UPDATE`, accountID).
		Scan(&workspaceID, &old)
	if err != nil {
		return models.Account{}, models.BalanceUpdateEvent{}, mapErr(err)
	}

	acc, err := scanAccount(dbTx.QueryRow(ctx,
		`UPDATE accounts SET actual_balance=$2, updated_at=now()
		  WHERE id=$1
		  RETURNING `+accountCols, accountID, newBalance))
	if err != nil {
		return models.Account{}, models.BalanceUpdateEvent{}, err
	}

	ev := models.BalanceUpdateEvent{
		ID:          uuid.NewString(),
		WorkspaceID: workspaceID,
		AccountID:   accountID,
		OldBalance:  old,
		NewBalance:  newBalance,
		Difference:  newBalance.Sub(old),
		Note:        note,
		Actor:       actor,
	}
	err = dbTx.QueryRow(ctx,
		`INSERT INTO balance_updates (id, workspace_id, account_id, old_balance, new_balance, difference, note, actor)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		 RETURNING created_at`,
		ev.ID, ev.WorkspaceID, ev.AccountID, ev.OldBalance, ev.NewBalance, ev.Difference, ev.Note, ev.Actor,
	).Scan(&ev.CreatedAt)
	if err != nil {
		return models.Account{}, models.BalanceUpdateEvent{}, mapErr(err)
	}
	if err := dbTx.Commit(ctx); err != nil {
		return models.Account{}, models.BalanceUpdateEvent{}, err
	}
	return acc, ev, nil
}

func (r *balanceUpdatesRepo) List(ctx context.Context, f models.BalanceUpdateFilter) ([]models.BalanceUpdateEvent, error) {
	var b strings.Builder
	b.WriteString(`SELECT id, workspace_id, account_id, old_balance, new_balance, difference, note, actor, created_at
		 FROM balance_updates WHERE workspace_id=$1`)
	args := []any{f.WorkspaceID}

	add := func(cond string, arg any) {
		args = append(args, arg)
		fmt.Fprintf(&b, " AND "+cond, len(args))
	}
	if f.AccountID != "" {
		add("account_id=$%d", f.AccountID)
	}
	if f.From != nil {
		add("created_at >= $%d", *f.From)
	}
	if f.To != nil {
		add("created_at <= $%d", *f.To)
	}
	b.WriteString(" ORDER BY created_at DESC, id DESC")

	limit := f.Limit
	if limit <= 0 {
		limit = 100
	}
	args = append(args, limit)
	fmt.Fprintf(&b, " LIMIT $%d", len(args))

	rows, err := r.pool.Query(ctx, b.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.BalanceUpdateEvent
	for rows.Next() {
		var ev models.BalanceUpdateEvent
		if err := rows.Scan(&ev.ID, &ev.WorkspaceID, &ev.AccountID, &ev.OldBalance,
			&ev.NewBalance, &ev.Difference, &ev.Note, &ev.Actor, &ev.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}
