package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/oleksii-sytar/personal-finance-sub002/internal/models"
	repo "github.com/oleksii-sytar/personal-finance-sub002/internal/repository"
)

func (e *env) seedLedger(t *testing.T) (models.Workspace, models.Account) {
	t.Helper()
	owner := e.seedUser(t, "owner", "owner@example.com")
	ws := e.seedWorkspace(t, owner.ID)
	acc := e.seedAccount(t, ws.ID, "Checking", "1000")
	return ws, acc
}

func TestCreateTransaction(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	ws, acc := e.seedLedger(t)

	tx, err := e.txs.Create(ctx, ws.ID, TransactionInput{
		AccountID: acc.ID,
		Type:      models.TxnIncome,
		Amount:    dec(t, "500"),
		Note:      "salary",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if tx.Currency != acc.Currency {
		t.Fatalf("currency = %q, want account currency %q", tx.Currency, acc.Currency)
	}
	if tx.OccurredAt.IsZero() {
		t.Fatal("occurred_at not defaulted")
	}
	if !tx.SignedAmount().Equal(dec(t, "500")) {
		t.Fatalf("signed amount = %s, want 500", tx.SignedAmount())
	}
}

func TestCreateTransactionValidation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	ws, acc := e.seedLedger(t)

	cases := []struct {
		name string
		in   TransactionInput
		want error
	}{
		{"transfer type refused", TransactionInput{AccountID: acc.ID, Type: models.TxnTransferIn, Amount: dec(t, "1")}, ErrInvalid},
		{"zero amount", TransactionInput{AccountID: acc.ID, Type: models.TxnExpense, Amount: dec(t, "0")}, ErrInvalid},
		{"negative amount", TransactionInput{AccountID: acc.ID, Type: models.TxnExpense, Amount: dec(t, "-5")}, ErrInvalid},
		{"unknown account", TransactionInput{AccountID: "missing", Type: models.TxnExpense, Amount: dec(t, "5")}, repo.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := e.txs.Create(ctx, ws.ID, tc.in); !errors.Is(err, tc.want) {
				t.Fatalf("want %v, got %v", tc.want, err)
			}
		})
	}

	t.Run("foreign category", func(t *testing.T) {
		otherOwner := e.seedUser(t, "other", "other@example.com")
		otherWs := e.seedWorkspace(t, otherOwner.ID)
		foreign, err := e.categories.Create(ctx, otherWs.ID, "Groceries")
		if err != nil {
			t.Fatalf("seed category: %v", err)
		}
		in := TransactionInput{AccountID: acc.ID, Type: models.TxnExpense, Amount: dec(t, "5"), CategoryID: &foreign.ID}
		if _, err := e.txs.Create(ctx, ws.ID, in); !errors.Is(err, ErrInvalid) {
			t.Fatalf("foreign category: want ErrInvalid, got %v", err)
		}
	})

	t.Run("archived account", func(t *testing.T) {
		frozen := e.seedAccount(t, ws.ID, "Old savings", "0")
		if err := e.accounts.Archive(ctx, ws.ID, frozen.ID); err != nil {
			t.Fatalf("archive: %v", err)
		}
		in := TransactionInput{AccountID: frozen.ID, Type: models.TxnExpense, Amount: dec(t, "5")}
		if _, err := e.txs.Create(ctx, ws.ID, in); !errors.Is(err, ErrAccountArchived) {
			t.Fatalf("archived account: want ErrAccountArchived, got %v", err)
		}
	})
}

func TestTransferCreatesLinkedPair(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	ws, from := e.seedLedger(t)
	to := e.seedAccount(t, ws.ID, "Savings", "0")

	out, in, err := e.txs.Transfer(ctx, ws.ID, TransferInput{
		FromAccountID: from.ID,
		ToAccountID:   to.ID,
		Amount:        dec(t, "250"),
		Note:          "monthly savings",
	})
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if out.Type != models.TxnTransferOut || in.Type != models.TxnTransferIn {
		t.Fatalf("leg types = %s/%s", out.Type, in.Type)
	}
	if out.TransferID == nil || in.TransferID == nil || *out.TransferID != *in.TransferID {
		t.Fatal("legs do not share a transfer id")
	}
	if !out.SignedAmount().Equal(dec(t, "-250")) || !in.SignedAmount().Equal(dec(t, "250")) {
		t.Fatalf("signed amounts = %s/%s", out.SignedAmount(), in.SignedAmount())
	}

	if _, _, err := e.txs.Transfer(ctx, ws.ID, TransferInput{FromAccountID: from.ID, ToAccountID: from.ID, Amount: dec(t, "1")}); !errors.Is(err, ErrSameAccount) {
		t.Fatalf("same account: want ErrSameAccount, got %v", err)
	}
}

func TestTransferCurrencyMismatch(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	ws, from := e.seedLedger(t)

	usd, err := e.accounts.Create(ctx, ws.ID, "Travel card", "USD", dec(t, "0"))
	if err != nil {
		t.Fatalf("seed usd account: %v", err)
	}
	_, _, err = e.txs.Transfer(ctx, ws.ID, TransferInput{FromAccountID: from.ID, ToAccountID: usd.ID, Amount: dec(t, "10")})
	if !errors.Is(err, ErrCurrencyMismatch) {
		t.Fatalf("want ErrCurrencyMismatch, got %v", err)
	}
}

func TestDeleteTransferCascades(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	ws, from := e.seedLedger(t)
	to := e.seedAccount(t, ws.ID, "Savings", "0")

	out, in, err := e.txs.Transfer(ctx, ws.ID, TransferInput{FromAccountID: from.ID, ToAccountID: to.ID, Amount: dec(t, "250")})
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if err := e.txs.Delete(ctx, ws.ID, out.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := e.txs.Get(ctx, ws.ID, out.ID); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("deleted leg still readable: %v", err)
	}
	if _, err := e.txs.Get(ctx, ws.ID, in.ID); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("twin leg survived the delete: %v", err)
	}

	list, err := e.txs.List(ctx, models.TransactionFilter{WorkspaceID: ws.ID})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("deleted transfer still listed: %+v", list)
	}
}

func TestUpdateTransferLegLocked(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	ws, from := e.seedLedger(t)
	to := e.seedAccount(t, ws.ID, "Savings", "0")

	out, _, err := e.txs.Transfer(ctx, ws.ID, TransferInput{FromAccountID: from.ID, ToAccountID: to.ID, Amount: dec(t, "250")})
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}

	// Changing the amount on one leg would desync the pair.
	_, err = e.txs.Update(ctx, ws.ID, out.ID, TransactionUpdate{
		Type: out.Type, Amount: dec(t, "300"), OccurredAt: out.OccurredAt,
	})
	if !errors.Is(err, ErrTransferLeg) {
		t.Fatalf("amount change on leg: want ErrTransferLeg, got %v", err)
	}

	// The note is free to change.
	got, err := e.txs.Update(ctx, ws.ID, out.ID, TransactionUpdate{
		Type: out.Type, Amount: out.Amount, OccurredAt: out.OccurredAt, Note: "rebalanced",
	})
	if err != nil {
		t.Fatalf("note change on leg: %v", err)
	}
	if got.Note != "rebalanced" {
		t.Fatalf("note = %q", got.Note)
	}
}

func TestListFilters(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	ws, acc := e.seedLedger(t)
	other := e.seedAccount(t, ws.ID, "Savings", "0")

	groceries, err := e.categories.Create(ctx, ws.ID, "Groceries")
	if err != nil {
		t.Fatalf("seed category: %v", err)
	}

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	mk := func(accID string, typ models.TransactionType, amount, note string, at time.Time, cat *string) models.Transaction {
		tx, err := e.txs.Create(ctx, ws.ID, TransactionInput{
			AccountID: accID, Type: typ, Amount: dec(t, amount), Note: note, OccurredAt: at, CategoryID: cat,
		})
		if err != nil {
			t.Fatalf("seed tx %s: %v", note, err)
		}
		return tx
	}
	mk(acc.ID, models.TxnIncome, "1000", "Salary March", base, nil)
	weekly := mk(acc.ID, models.TxnExpense, "75", "weekly shop", base.Add(24*time.Hour), &groceries.ID)
	mk(other.ID, models.TxnIncome, "20", "Interest", base.Add(48*time.Hour), nil)
	deleted := mk(acc.ID, models.TxnExpense, "5", "fat-finger", base.Add(72*time.Hour), nil)
	if err := e.txs.Delete(ctx, ws.ID, deleted.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	cases := []struct {
		name string
		f    models.TransactionFilter
		want int
	}{
		{"workspace wide", models.TransactionFilter{WorkspaceID: ws.ID}, 3},
		{"by account", models.TransactionFilter{WorkspaceID: ws.ID, AccountID: acc.ID}, 2},
		{"by type", models.TransactionFilter{WorkspaceID: ws.ID, Type: models.TxnIncome}, 2},
		{"by category", models.TransactionFilter{WorkspaceID: ws.ID, CategoryID: groceries.ID}, 1},
		{"note substring", models.TransactionFilter{WorkspaceID: ws.ID, Query: "SHOP"}, 1},
		{"window", func() models.TransactionFilter {
			from, to := base.Add(12*time.Hour), base.Add(60*time.Hour)
			return models.TransactionFilter{WorkspaceID: ws.ID, From: &from, To: &to}
		}(), 2},
		{"paging", models.TransactionFilter{WorkspaceID: ws.ID, Limit: 2}, 2},
		{"foreign workspace", models.TransactionFilter{WorkspaceID: "nope"}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := e.txs.List(ctx, tc.f)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(got) != tc.want {
				t.Fatalf("got %d transactions, want %d", len(got), tc.want)
			}
		})
	}

	// Newest first.
	all, err := e.txs.List(ctx, models.TransactionFilter{WorkspaceID: ws.ID})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].OccurredAt.Before(all[i].OccurredAt) {
			t.Fatalf("list not sorted newest first at %d", i)
		}
	}
	if all[1].ID != weekly.ID {
		t.Fatalf("expected weekly shop second, got %q", all[1].Note)
	}
}
