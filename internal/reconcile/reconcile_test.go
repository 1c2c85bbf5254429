package reconcile

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/oleksii-sytar/personal-finance-sub002/internal/models"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func txn(typ models.TransactionType, amount string) models.Transaction {
	return models.Transaction{Type: typ, Amount: dec(amount)}
}

func TestCalculate(t *testing.T) {
	cases := []struct {
		name    string
		opening string
		txns    []models.Transaction
		want    string
	}{
		{"empty list equals opening", "1000", nil, "1000"},
		{"income and expense", "1000", []models.Transaction{
			txn(models.TxnIncome, "500"),
			txn(models.TxnExpense, "50"),
		}, "1450"},
		{"transfers sign like income and expense", "0", []models.Transaction{
			txn(models.TxnTransferIn, "200"),
			txn(models.TxnTransferOut, "75.50"),
		}, "124.5"},
		{"deleted transactions are excluded", "100", []models.Transaction{
			txn(models.TxnIncome, "40"),
			func() models.Transaction {
				tx := txn(models.TxnExpense, "999")
				now := time.Now()
				tx.DeletedAt = &now
				return tx
			}(),
		}, "140"},
		{"fractional cents survive", "0.10", []models.Transaction{
			txn(models.TxnIncome, "0.20"),
		}, "0.3"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Calculate(dec(c.opening), c.txns)
			if !got.Equal(dec(c.want)) {
				t.Fatalf("Calculate(%s, ...) = %s, want %s", c.opening, got, c.want)
			}
		})
	}
}

func TestGapAndReconciled(t *testing.T) {
	calculated := Calculate(dec("1000"), []models.Transaction{
		txn(models.TxnIncome, "500"),
		txn(models.TxnExpense, "50"),
	})
	if !calculated.Equal(dec("1450")) {
		t.Fatalf("calculated = %s, want 1450", calculated)
	}

	cases := []struct {
		actual     string
		wantGap    string
		reconciled bool
	}{
		{"1450", "0", true},
		{"1600", "150", false},
		{"1300", "-150", false},
	}
	for _, c := range cases {
		gap := Gap(dec(c.actual), calculated)
		if !gap.Equal(dec(c.wantGap)) {
			t.Fatalf("Gap(%s, 1450) = %s, want %s", c.actual, gap, c.wantGap)
		}
		if Reconciled(gap) != c.reconciled {
			t.Fatalf("Reconciled(%s) = %v, want %v", gap, Reconciled(gap), c.reconciled)
		}
	}
}

func TestView(t *testing.T) {
	a := models.Account{
		ID:             "acc-1",
		Currency:       "EUR",
		OpeningBalance: dec("1000"),
		ActualBalance:  dec("1450"),
	}
	asOf := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	v := View(a, dec("450"), asOf)
	if !v.CalculatedBalance.Equal(dec("1450")) {
		t.Fatalf("calculated = %s, want 1450", v.CalculatedBalance)
	}
	if !v.IsReconciled {
		t.Fatalf("expected reconciled view, gap=%s", v.Difference)
	}
	if v.AsOf != asOf || v.Currency != "EUR" || v.AccountID != "acc-1" {
		t.Fatalf("view metadata mismatch: %+v", v)
	}
}

func TestAnnotate(t *testing.T) {
	base := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	ev := func(account string, offset time.Duration) models.BalanceUpdateEvent {
		return models.BalanceUpdateEvent{AccountID: account, CreatedAt: base.Add(offset)}
	}

	// newest-first, two accounts interleaved
	events := []models.BalanceUpdateEvent{
		ev("a", 90*time.Minute),
		ev("b", 60*time.Minute),
		ev("a", 30*time.Minute),
		ev("a", 0),
	}
	got := Annotate(events)

	if got[3].ElapsedSeconds != nil {
		t.Fatalf("earliest event for account a should have nil elapsed, got %d", *got[3].ElapsedSeconds)
	}
	if got[1].ElapsedSeconds != nil {
		t.Fatalf("only event for account b should have nil elapsed, got %d", *got[1].ElapsedSeconds)
	}
	if got[2].ElapsedSeconds == nil || *got[2].ElapsedSeconds != 1800 {
		t.Fatalf("second event for account a should be 1800s after the first, got %v", got[2].ElapsedSeconds)
	}
	if got[0].ElapsedSeconds == nil || *got[0].ElapsedSeconds != 3600 {
		t.Fatalf("newest event for account a should be 3600s after the previous, got %v", got[0].ElapsedSeconds)
	}

	// input untouched
	if events[0].ElapsedSeconds != nil {
		t.Fatal("Annotate must not modify its input")
	}
}

func TestAnnotateEmpty(t *testing.T) {
	if got := Annotate(nil); len(got) != 0 {
		t.Fatalf("Annotate(nil) = %v, want empty", got)
	}
}
