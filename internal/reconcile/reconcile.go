// Package reconcile holds the balance arithmetic the rest of the service
// is built around: deriving an account's calculated balance from its
// transactions, comparing it to a user-recorded actual balance, and
// annotating the balance-update history with elapsed times.
package reconcile

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/oleksii-sytar/personal-finance-sub002/internal/models"
)

// Sum adds up the signed amounts of txns. Deleted transactions are
// skipped so callers can pass raw lists.
func Sum(txns []models.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txns {
		if tx.Deleted() {
			continue
		}
		total = total.Add(tx.SignedAmount())
	}
	return total
}

// Calculate returns the balance an account should hold given its opening
// balance and transaction history: opening + sum of signed amounts.
// An empty history yields the opening balance unchanged.
func Calculate(opening decimal.Decimal, txns []models.Transaction) decimal.Decimal {
	return opening.Add(Sum(txns))
}

// Gap is the signed reconciliation difference: actual - calculated.
// Positive means the account holds more than the books say.
func Gap(actual, calculated decimal.Decimal) decimal.Decimal {
	return actual.Sub(calculated)
}

// Reconciled reports whether a gap closes the books.
func Reconciled(gap decimal.Decimal) bool { return gap.IsZero() }

// View assembles the reconciliation read model for an account whose
// transaction sum has already been computed.
func View(a models.Account, txnSum decimal.Decimal, asOf time.Time) models.ReconciliationView {
	calculated := a.OpeningBalance.Add(txnSum)
	gap := Gap(a.ActualBalance, calculated)
	return models.ReconciliationView{
		AccountID:         a.ID,
		Currency:          a.Currency,
		CalculatedBalance: calculated,
		ActualBalance:     a.ActualBalance,
		Difference:        gap,
		IsReconciled:      Reconciled(gap),
		AsOf:              asOf,
	}
}

// Annotate fills ElapsedSeconds on a list of balance-update events sorted
// newest-first: for each event, the seconds since the previous event for
// the same account in chronological order. The earliest event per account
// keeps a nil ElapsedSeconds. The input slice is not modified.
func Annotate(events []models.BalanceUpdateEvent) []models.BalanceUpdateEvent {
	out := make([]models.BalanceUpdateEvent, len(events))
	copy(out, events)

	prev := make(map[string]time.Time) // account id -> previous (older) event time
	for i := len(out) - 1; i >= 0; i-- {
		if p, ok := prev[out[i].AccountID]; ok {
			secs := int64(out[i].CreatedAt.Sub(p) / time.Second)
			out[i].ElapsedSeconds = &secs
		} else {
			out[i].ElapsedSeconds = nil
		}
		prev[out[i].AccountID] = out[i].CreatedAt
	}
	return out
}
