package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Frequency string

const (
	FreqDaily   Frequency = "daily"
	FreqWeekly  Frequency = "weekly"
	FreqMonthly Frequency = "monthly"
	FreqYearly  Frequency = "yearly"
)

func (f Frequency) Valid() bool {
	switch f {
	case FreqDaily, FreqWeekly, FreqMonthly, FreqYearly:
		return true
	}
	return false
}

// RecurringTransaction is a template the scheduler turns into real
// transactions each time NextRunAt comes due.
type RecurringTransaction struct {
	ID          string          `json:"id"`
	WorkspaceID string          `json:"workspace_id"`
	AccountID   string          `json:"account_id"`
	Type        TransactionType `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	CategoryID  *string         `json:"category_id,omitempty"`
	Note        string          `json:"note"`
	Frequency   Frequency       `json:"frequency"`
	NextRunAt   time.Time       `json:"next_run_at"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   *time.Time      `json:"-"`
}
