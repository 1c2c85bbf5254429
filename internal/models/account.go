package models

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Account tracks a real-world money pot. OpeningBalance anchors the
// calculated balance; ActualBalance is whatever the user last recorded
// against it. Accounts are never deleted, only archived.
type Account struct {
	ID             string          `json:"id"`
	WorkspaceID    string          `json:"workspace_id"`
	Name           string          `json:"name"`
	Currency       string          `json:"currency"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	ActualBalance  decimal.Decimal `json:"actual_balance"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	ArchivedAt     *time.Time      `json:"archived_at,omitempty"`
}

func (a *Account) Validate() error {
	if strings.TrimSpace(a.Name) == "" { return errors.New("name required") }
	if len(a.Currency) != 3 { return errors.New("currency must be a 3-letter code") }
	return nil
}

func (a Account) Archived() bool { return a.ArchivedAt != nil }
