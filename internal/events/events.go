package events

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Publisher fans domain events out to interested consumers. The key
// groups events of one account onto one partition so consumers see
// them in order.
type Publisher interface {
	Publish(ctx context.Context, key string, event any) error
	Close() error
}

// Noop drops every event. Used when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, string, any) error { return nil }
func (Noop) Close() error                               { return nil }

type TransactionCreated struct {
	Kind        string          `json:"kind"` // "transaction.created"
	TxID        string          `json:"tx_id"`
	WorkspaceID string          `json:"workspace_id"`
	AccountID   string          `json:"account_id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	OccurredAt  time.Time       `json:"occurred_at"`
}

type BalanceUpdated struct {
	Kind        string          `json:"kind"` // "balance.updated"
	EventID     string          `json:"event_id"`
	WorkspaceID string          `json:"workspace_id"`
	AccountID   string          `json:"account_id"`
	OldBalance  decimal.Decimal `json:"old_balance"`
	NewBalance  decimal.Decimal `json:"new_balance"`
	Difference  decimal.Decimal `json:"difference"`
	Actor       string          `json:"actor"`
	RecordedAt  time.Time       `json:"recorded_at"`
}

type RecurringMaterialized struct {
	Kind        string    `json:"kind"` // "recurring.materialized"
	RecurringID string    `json:"recurring_id"`
	TxID        string    `json:"tx_id"`
	WorkspaceID string    `json:"workspace_id"`
	AccountID   string    `json:"account_id"`
	RanAt       time.Time `json:"ran_at"`
}
