package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestTransactionTypeSign(t *testing.T) {
	cases := []struct {
		typ   TransactionType
		sign  int
		entry bool
	}{
		{TxnIncome, 1, true},
		{TxnExpense, -1, true},
		{TxnTransferIn, 1, false},
		{TxnTransferOut, -1, false},
		{TransactionType(""), 0, false},
		{TransactionType("refund"), 0, false},
	}
	for _, tc := range cases {
		if got := tc.typ.Sign(); got != tc.sign {
			t.Errorf("%q.Sign() = %d, want %d", tc.typ, got, tc.sign)
		}
		if got := tc.typ.Valid(); got != (tc.sign != 0) {
			t.Errorf("%q.Valid() = %v", tc.typ, got)
		}
		if got := tc.typ.Entry(); got != tc.entry {
			t.Errorf("%q.Entry() = %v, want %v", tc.typ, got, tc.entry)
		}
	}
}

func TestSignedAmount(t *testing.T) {
	amount := decimal.RequireFromString("25.50")
	cases := []struct {
		typ  TransactionType
		want decimal.Decimal
	}{
		{TxnIncome, amount},
		{TxnTransferIn, amount},
		{TxnExpense, amount.Neg()},
		{TxnTransferOut, amount.Neg()},
	}
	for _, tc := range cases {
		tx := Transaction{Type: tc.typ, Amount: amount}
		if got := tx.SignedAmount(); !got.Equal(tc.want) {
			t.Errorf("%s: SignedAmount() = %s, want %s", tc.typ, got, tc.want)
		}
	}
}

func TestTransactionFilterMatches(t *testing.T) {
	occurred := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	catID := "cat-1"
	tx := Transaction{
		ID:          "tx-1",
		WorkspaceID: "ws-1",
		AccountID:   "acc-1",
		Type:        TxnExpense,
		Amount:      decimal.NewFromInt(42),
		OccurredAt:  occurred,
		CategoryID:  &catID,
		Note:        "Weekly groceries at REWE",
	}
	earlier := occurred.Add(-time.Hour)
	later := occurred.Add(time.Hour)
	deleted := tx
	deleted.DeletedAt = &later

	cases := []struct {
		name string
		f    TransactionFilter
		tx   Transaction
		want bool
	}{
		{"workspace only", TransactionFilter{WorkspaceID: "ws-1"}, tx, true},
		{"other workspace", TransactionFilter{WorkspaceID: "ws-2"}, tx, false},
		{"account match", TransactionFilter{WorkspaceID: "ws-1", AccountID: "acc-1"}, tx, true},
		{"account mismatch", TransactionFilter{WorkspaceID: "ws-1", AccountID: "acc-2"}, tx, false},
		{"category match", TransactionFilter{WorkspaceID: "ws-1", CategoryID: "cat-1"}, tx, true},
		{"category mismatch", TransactionFilter{WorkspaceID: "ws-1", CategoryID: "cat-2"}, tx, false},
		{"type match", TransactionFilter{WorkspaceID: "ws-1", Type: TxnExpense}, tx, true},
		{"type mismatch", TransactionFilter{WorkspaceID: "ws-1", Type: TxnIncome}, tx, false},
		{"from inclusive", TransactionFilter{WorkspaceID: "ws-1", From: &occurred}, tx, true},
		{"from excludes older", TransactionFilter{WorkspaceID: "ws-1", From: &later}, tx, false},
		{"to inclusive", TransactionFilter{WorkspaceID: "ws-1", To: &occurred}, tx, true},
		{"to excludes newer", TransactionFilter{WorkspaceID: "ws-1", To: &earlier}, tx, false},
		{"query case-insensitive", TransactionFilter{WorkspaceID: "ws-1", Query: "rewe"}, tx, true},
		{"query no match", TransactionFilter{WorkspaceID: "ws-1", Query: "aldi"}, tx, false},
		{"deleted never matches", TransactionFilter{WorkspaceID: "ws-1"}, deleted, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.f.Matches(tc.tx); got != tc.want {
				t.Fatalf("Matches = %v, want %v", got, tc.want)
			}
		})
	}

	uncategorized := tx
	uncategorized.CategoryID = nil
	if (TransactionFilter{WorkspaceID: "ws-1", CategoryID: "cat-1"}).Matches(uncategorized) {
		t.Fatal("category filter matched a transaction without a category")
	}
}
