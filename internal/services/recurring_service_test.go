package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/oleksii-sytar/personal-finance-sub002/internal/models"
)

func TestAdvance(t *testing.T) {
	from := time.Date(2026, 1, 31, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		freq models.Frequency
		want time.Time
	}{
		{models.FreqDaily, time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)},
		{models.FreqWeekly, time.Date(2026, 2, 7, 9, 0, 0, 0, time.UTC)},
		// Jan 31 + 1 month normalizes through Feb 31 to Mar 3.
		{models.FreqMonthly, time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC)},
		{models.FreqYearly, time.Date(2027, 1, 31, 9, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		t.Run(string(tc.freq), func(t *testing.T) {
			if got := Advance(tc.freq, from); !got.Equal(tc.want) {
				t.Fatalf("Advance(%s) = %s, want %s", tc.freq, got, tc.want)
			}
		})
	}
}

func TestRecurringCreateValidation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	ws, acc := e.seedLedger(t)

	cases := []struct {
		name string
		in   RecurringInput
	}{
		{"transfer type", RecurringInput{AccountID: acc.ID, Type: models.TxnTransferOut, Amount: dec(t, "1"), Frequency: models.FreqDaily}},
		{"zero amount", RecurringInput{AccountID: acc.ID, Type: models.TxnExpense, Amount: dec(t, "0"), Frequency: models.FreqDaily}},
		{"bad frequency", RecurringInput{AccountID: acc.ID, Type: models.TxnExpense, Amount: dec(t, "1"), Frequency: "hourly"}},
		{"unknown account", RecurringInput{AccountID: "missing", Type: models.TxnExpense, Amount: dec(t, "1"), Frequency: models.FreqDaily}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := e.recurring.Create(ctx, ws.ID, tc.in); !errors.Is(err, ErrInvalid) {
				t.Fatalf("want ErrInvalid, got %v", err)
			}
		})
	}
}

func TestRunDueMaterializesAndAdvances(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	ws, acc := e.seedLedger(t)

	firstRun := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	rec, err := e.recurring.Create(ctx, ws.ID, RecurringInput{
		AccountID: acc.ID,
		Type:      models.TxnExpense,
		Amount:    dec(t, "9.99"),
		Note:      "music subscription",
		Frequency: models.FreqDaily,
		NextRunAt: firstRun,
	})
	if err != nil {
		t.Fatalf("create recurring: %v", err)
	}

	// Two missed days plus the current one: three transactions.
	asOf := firstRun.Add(48 * time.Hour)
	n, err := e.recurring.RunDue(ctx, asOf)
	if err != nil {
		t.Fatalf("run due: %v", err)
	}
	if n != 3 {
		t.Fatalf("materialized %d, want 3", n)
	}

	list, err := e.txs.List(ctx, models.TransactionFilter{WorkspaceID: ws.ID, AccountID: acc.ID})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("got %d transactions, want 3", len(list))
	}
	for _, tx := range list {
		if tx.Type != models.TxnExpense || !tx.Amount.Equal(dec(t, "9.99")) || tx.Note != "music subscription" {
			t.Fatalf("unexpected spawned transaction: %+v", tx)
		}
	}
	// Newest first: the latest occurrence is the current day.
	if !list[0].OccurredAt.Equal(firstRun.Add(48 * time.Hour)) {
		t.Fatalf("latest occurrence at %s", list[0].OccurredAt)
	}

	got, err := e.recurring.Get(ctx, ws.ID, rec.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.NextRunAt.Equal(firstRun.Add(72 * time.Hour)) {
		t.Fatalf("next_run_at = %s, want %s", got.NextRunAt, firstRun.Add(72*time.Hour))
	}

	// Nothing due anymore.
	n, err = e.recurring.RunDue(ctx, asOf)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if n != 0 {
		t.Fatalf("second run materialized %d, want 0", n)
	}
}

func TestRunDueCapsCatchUp(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	ws, acc := e.seedLedger(t)

	firstRun := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	if _, err := e.recurring.Create(ctx, ws.ID, RecurringInput{
		AccountID: acc.ID,
		Type:      models.TxnExpense,
		Amount:    dec(t, "1"),
		Frequency: models.FreqDaily,
		NextRunAt: firstRun,
	}); err != nil {
		t.Fatalf("create recurring: %v", err)
	}

	// 99 days late. One pass backfills at most maxCatchUp periods.
	n, err := e.recurring.RunDue(ctx, firstRun.Add(99*24*time.Hour))
	if err != nil {
		t.Fatalf("run due: %v", err)
	}
	if n != maxCatchUp {
		t.Fatalf("materialized %d, want %d", n, maxCatchUp)
	}
}

func TestRunDueRetiresArchivedAccount(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	ws, _ := e.seedLedger(t)
	doomed := e.seedAccount(t, ws.ID, "Closing soon", "0")

	rec, err := e.recurring.Create(ctx, ws.ID, RecurringInput{
		AccountID: doomed.ID,
		Type:      models.TxnExpense,
		Amount:    dec(t, "5"),
		Frequency: models.FreqMonthly,
		NextRunAt: time.Now().Add(-time.Hour),
	})
	if err != nil {
		t.Fatalf("create recurring: %v", err)
	}
	if err := e.accounts.Archive(ctx, ws.ID, doomed.ID); err != nil {
		t.Fatalf("archive: %v", err)
	}

	n, err := e.recurring.RunDue(ctx, time.Now())
	if err != nil {
		t.Fatalf("run due: %v", err)
	}
	if n != 0 {
		t.Fatalf("materialized %d on archived account", n)
	}
	got, err := e.recurring.Get(ctx, ws.ID, rec.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Active {
		t.Fatal("definition on archived account still active")
	}
}

func TestRecurringUpdateAndDelete(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	ws, acc := e.seedLedger(t)

	rec, err := e.recurring.Create(ctx, ws.ID, RecurringInput{
		AccountID: acc.ID,
		Type:      models.TxnExpense,
		Amount:    dec(t, "9.99"),
		Frequency: models.FreqMonthly,
		NextRunAt: time.Now().Add(24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := e.recurring.Update(ctx, ws.ID, rec.ID, RecurringUpdate{
		Type:      models.TxnExpense,
		Amount:    dec(t, "12.99"),
		Note:      "price hike",
		Frequency: models.FreqMonthly,
		NextRunAt: rec.NextRunAt,
		Active:    false,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !got.Amount.Equal(dec(t, "12.99")) || got.Active {
		t.Fatalf("update not applied: %+v", got)
	}

	// Inactive definitions never run.
	n, err := e.recurring.RunDue(ctx, time.Now().Add(48*time.Hour))
	if err != nil {
		t.Fatalf("run due: %v", err)
	}
	if n != 0 {
		t.Fatalf("inactive definition ran %d times", n)
	}

	if err := e.recurring.Delete(ctx, ws.ID, rec.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := e.recurring.Get(ctx, ws.ID, rec.ID); err == nil {
		t.Fatal("deleted definition still readable")
	}
}
