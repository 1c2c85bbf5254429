package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceUpdateEvent is one entry of the append-only reconciliation
// history: a user recorded NewBalance as the account's actual balance,
// replacing OldBalance. Difference = NewBalance - OldBalance.
type BalanceUpdateEvent struct {
	ID          string          `json:"id"`
	WorkspaceID string          `json:"workspace_id"`
	AccountID   string          `json:"account_id"`
	OldBalance  decimal.Decimal `json:"old_balance"`
	NewBalance  decimal.Decimal `json:"new_balance"`
	Difference  decimal.Decimal `json:"difference"`
	Note        string          `json:"note"`
	Actor       string          `json:"actor"`
	CreatedAt   time.Time       `json:"created_at"`

	// ElapsedSeconds is derived on read: seconds since the previous
	// event for the same account, nil for the account's earliest event
	// in the listing. Never persisted.
	ElapsedSeconds *int64 `json:"elapsed_seconds"`
}

type BalanceUpdateFilter struct {
	WorkspaceID string
	AccountID   string
	From        *time.Time
	To          *time.Time
	Limit       int
}

func (f BalanceUpdateFilter) Matches(ev BalanceUpdateEvent) bool {
	if ev.WorkspaceID != f.WorkspaceID { return false }
	if f.AccountID != "" && ev.AccountID != f.AccountID { return false }
	if f.From != nil && ev.CreatedAt.Before(*f.From) { return false }
	if f.To != nil && ev.CreatedAt.After(*f.To) { return false }
	return true
}

// ReconciliationView is the read model for an account's expected vs
// actual balance at a point in time.
type ReconciliationView struct {
	AccountID         string          `json:"account_id"`
	Currency          string          `json:"currency"`
	CalculatedBalance decimal.Decimal `json:"calculated_balance"`
	ActualBalance     decimal.Decimal `json:"actual_balance"`
	Difference        decimal.Decimal `json:"difference"`
	IsReconciled      bool            `json:"is_reconciled"`
	AsOf              time.Time       `json:"as_of"`
}
