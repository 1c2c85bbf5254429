package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/oleksii-sytar/personal-finance-sub002/internal/events"
	"github.com/oleksii-sytar/personal-finance-sub002/internal/metrics"
	"github.com/oleksii-sytar/personal-finance-sub002/internal/models"
	"github.com/oleksii-sytar/personal-finance-sub002/internal/reconcile"
	repo "github.com/oleksii-sytar/personal-finance-sub002/internal/repository"
	"github.com/oleksii-sytar/personal-finance-sub002/internal/worker"
)

type ReconciliationService struct {
	acc repo.Accounts
	txs repo.Transactions
	upd repo.BalanceUpdates
	wp  *worker.Pool
	pub events.Publisher
}

func NewReconciliationService(acc repo.Accounts, txs repo.Transactions, upd repo.BalanceUpdates, wp *worker.Pool, pub events.Publisher) *ReconciliationService {
	return &ReconciliationService{acc: acc, txs: txs, upd: upd, wp: wp, pub: pub}
}

// View compares what the ledger says the account should hold against
// what the user last recorded. The calculated side is derived fresh on
// every call and never stored.
func (s *ReconciliationService) View(ctx context.Context, workspaceID, accountID string, asOf time.Time) (models.ReconciliationView, error) {
	account, err := s.workspaceAccount(ctx, workspaceID, accountID)
	if err != nil {
		return models.ReconciliationView{}, err
	}
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}
	sum, err := s.txs.SumSigned(ctx, accountID, asOf)
	if err != nil {
		return models.ReconciliationView{}, err
	}
	return reconcile.View(account, sum, asOf), nil
}

// RecordActualBalance stores what the user counted on the real account
// and appends the change to the balance history.
func (s *ReconciliationService) RecordActualBalance(ctx context.Context, workspaceID, accountID string, newBalance decimal.Decimal, actorID, note string) (models.Account, models.BalanceUpdateEvent, error) {
	account, err := s.workspaceAccount(ctx, workspaceID, accountID)
	if err != nil {
		return models.Account{}, models.BalanceUpdateEvent{}, err
	}
	if account.Archived() {
		return models.Account{}, models.BalanceUpdateEvent{}, ErrAccountArchived
	}

	account, ev, err := s.upd.Record(ctx, accountID, newBalance, actorID, note)
	if err != nil {
		return models.Account{}, models.BalanceUpdateEvent{}, err
	}
	metrics.BalanceUpdatesTotal.Inc()
	s.announce(ev)
	return account, ev, nil
}

// History lists balance updates newest first, each annotated with the
// seconds elapsed since the previous update of the same account.
func (s *ReconciliationService) History(ctx context.Context, f models.BalanceUpdateFilter) ([]models.BalanceUpdateEvent, error) {
	list, err := s.upd.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return reconcile.Annotate(list), nil
}

func (s *ReconciliationService) workspaceAccount(ctx context.Context, workspaceID, accountID string) (models.Account, error) {
	a, err := s.acc.GetByID(ctx, accountID)
	if err != nil {
		return models.Account{}, err
	}
	if a.WorkspaceID != workspaceID {
		return models.Account{}, repo.ErrNotFound
	}
	return a, nil
}

func (s *ReconciliationService) announce(ev models.BalanceUpdateEvent) {
	s.wp.Submit(func() {
		msg := events.BalanceUpdated{
			Kind:        "balance.updated",
			EventID:     ev.ID,
			WorkspaceID: ev.WorkspaceID,
			AccountID:   ev.AccountID,
			OldBalance:  ev.OldBalance,
			NewBalance:  ev.NewBalance,
			Difference:  ev.Difference,
			Actor:       ev.Actor,
			RecordedAt:  ev.CreatedAt,
		}
		if err := s.pub.Publish(context.Background(), ev.AccountID, msg); err != nil {
			slog.Warn("event publish failed", "kind", msg.Kind, "error", err)
		}
	})
}
