package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TxnIncome      TransactionType = "income"
	TxnExpense     TransactionType = "expense"
	TxnTransferIn  TransactionType = "transfer_in"
	TxnTransferOut TransactionType = "transfer_out"
)

// Sign is +1 for money entering the account, -1 for money leaving it.
func (t TransactionType) Sign() int {
	switch t {
	case TxnIncome, TxnTransferIn:
		return 1
	case TxnExpense, TxnTransferOut:
		return -1
	}
	return 0
}

func (t TransactionType) Valid() bool { return t.Sign() != 0 }

// Entry types a user may create directly; transfer legs are only ever
// produced in pairs by the transfer operation.
func (t TransactionType) Entry() bool { return t == TxnIncome || t == TxnExpense }

type Transaction struct {
	ID          string          `json:"id"`
	WorkspaceID string          `json:"workspace_id"`
	AccountID   string          `json:"account_id"`
	Type        TransactionType `json:"type"`
	Amount      decimal.Decimal `json:"amount"` // always positive; the type carries the sign
	Currency    string          `json:"currency"`
	OccurredAt  time.Time       `json:"occurred_at"`
	CategoryID  *string         `json:"category_id,omitempty"`
	Note        string          `json:"note"`
	TransferID  *string         `json:"transfer_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   *time.Time      `json:"-"`
}

func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Type.Sign() < 0 {
		return t.Amount.Neg()
	}
	return t.Amount
}

func (t Transaction) Deleted() bool { return t.DeletedAt != nil }

func (t Transaction) TransferLeg() bool { return t.TransferID != nil }

// TransactionFilter narrows a workspace's transaction list. The zero value
// of every optional field means "don't filter on this".
type TransactionFilter struct {
	WorkspaceID string
	AccountID   string
	CategoryID  string
	Type        TransactionType
	From        *time.Time
	To          *time.Time
	Query       string
	Limit       int
	Offset      int
}

// Matches applies every filter except paging to a single transaction.
// Deleted transactions never match.
func (f TransactionFilter) Matches(tx Transaction) bool {
	if tx.Deleted() { return false }
	if tx.WorkspaceID != f.WorkspaceID { return false }
	if f.AccountID != "" && tx.AccountID != f.AccountID { return false }
	if f.CategoryID != "" && (tx.CategoryID == nil || *tx.CategoryID != f.CategoryID) { return false }
	if f.Type != "" && tx.Type != f.Type { return false }
	if f.From != nil && tx.OccurredAt.Before(*f.From) { return false }
	if f.To != nil && tx.OccurredAt.After(*f.To) { return false }
	if f.Query != "" && !strings.Contains(strings.ToLower(tx.Note), strings.ToLower(f.Query)) { return false }
	return true
}
