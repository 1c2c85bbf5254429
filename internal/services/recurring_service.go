package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/oleksii-sytar/personal-finance-sub002/internal/events"
	"github.com/oleksii-sytar/personal-finance-sub002/internal/metrics"
	"github.com/oleksii-sytar/personal-finance-sub002/internal/models"
	repo "github.com/oleksii-sytar/personal-finance-sub002/internal/repository"
	"github.com/oleksii-sytar/personal-finance-sub002/internal/worker"
)

const (
	// dueBatchSize bounds one scheduler pass.
	dueBatchSize = 100
	// maxCatchUp bounds how many missed periods one definition may
	// backfill in a single pass. A daily definition idle for a year
	// catches up over several passes instead of flooding one.
	maxCatchUp = 36
)

type RecurringService struct {
	recs repo.Recurrings
	acc  repo.Accounts
	cats repo.Categories
	wp   *worker.Pool
	pub  events.Publisher
}

func NewRecurringService(recs repo.Recurrings, acc repo.Accounts, cats repo.Categories, wp *worker.Pool, pub events.Publisher) *RecurringService {
	return &RecurringService{recs: recs, acc: acc, cats: cats, wp: wp, pub: pub}
}

type RecurringInput struct {
	AccountID  string
	Type       models.TransactionType
	Amount     decimal.Decimal
	CategoryID *string
	Note       string
	Frequency  models.Frequency
	NextRunAt  time.Time
}

func (s *RecurringService) Create(ctx context.Context, workspaceID string, in RecurringInput) (models.RecurringTransaction, error) {
	if err := s.validate(ctx, workspaceID, in.Type, in.Amount, in.Frequency, in.AccountID, in.CategoryID); err != nil {
		return models.RecurringTransaction{}, err
	}
	if in.NextRunAt.IsZero() {
		in.NextRunAt = time.Now().UTC()
	}
	return s.recs.Create(ctx, models.RecurringTransaction{
		WorkspaceID: workspaceID,
		AccountID:   in.AccountID,
		Type:        in.Type,
		Amount:      in.Amount,
		CategoryID:  in.CategoryID,
		Note:        in.Note,
		Frequency:   in.Frequency,
		NextRunAt:   in.NextRunAt,
		Active:      true,
	})
}

func (s *RecurringService) List(ctx context.Context, workspaceID string) ([]models.RecurringTransaction, error) {
	return s.recs.ListByWorkspace(ctx, workspaceID)
}

func (s *RecurringService) Get(ctx context.Context, workspaceID, id string) (models.RecurringTransaction, error) {
	rec, err := s.recs.GetByID(ctx, id)
	if err != nil {
		return models.RecurringTransaction{}, err
	}
	if rec.WorkspaceID != workspaceID {
		return models.RecurringTransaction{}, repo.ErrNotFound
	}
	return rec, nil
}

type RecurringUpdate struct {
	Type       models.TransactionType
	Amount     decimal.Decimal
	CategoryID *string
	Note       string
	Frequency  models.Frequency
	NextRunAt  time.Time
	Active     bool
}

func (s *RecurringService) Update(ctx context.Context, workspaceID, id string, in RecurringUpdate) (models.RecurringTransaction, error) {
	cur, err := s.Get(ctx, workspaceID, id)
	if err != nil {
		return models.RecurringTransaction{}, err
	}
	if err := s.validate(ctx, workspaceID, in.Type, in.Amount, in.Frequency, cur.AccountID, in.CategoryID); err != nil {
		return models.RecurringTransaction{}, err
	}
	cur.Type = in.Type
	cur.Amount = in.Amount
	cur.CategoryID = in.CategoryID
	cur.Note = in.Note
	cur.Frequency = in.Frequency
	if !in.NextRunAt.IsZero() {
		cur.NextRunAt = in.NextRunAt
	}
	cur.Active = in.Active
	return s.recs.Update(ctx, cur)
}

func (s *RecurringService) Delete(ctx context.Context, workspaceID, id string) error {
	if _, err := s.Get(ctx, workspaceID, id); err != nil {
		return err
	}
	return s.recs.SoftDelete(ctx, id)
}

func (s *RecurringService) validate(ctx context.Context, workspaceID string, typ models.TransactionType, amount decimal.Decimal, freq models.Frequency, accountID string, categoryID *string) error {
	if !typ.Entry() {
		return fmt.Errorf("%w: type must be income or expense", ErrInvalid)
	}
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", ErrInvalid)
	}
	if !freq.Valid() {
		return fmt.Errorf("%w: frequency must be daily, weekly, monthly or yearly", ErrInvalid)
	}
	a, err := s.acc.GetByID(ctx, accountID)
	if err != nil || a.WorkspaceID != workspaceID {
		return fmt.Errorf("%w: unknown account", ErrInvalid)
	}
	if a.Archived() {
		return ErrAccountArchived
	}
	if categoryID != nil {
		c, err := s.cats.GetByID(ctx, *categoryID)
		if err != nil || c.WorkspaceID != workspaceID {
			return fmt.Errorf("%w: unknown category", ErrInvalid)
		}
	}
	return nil
}

// Advance returns the run after from for the given frequency. Monthly
// and yearly use calendar arithmetic, so Jan 31 + 1 month lands on
// Mar 2/3 the way time.AddDate normalizes it.
func Advance(freq models.Frequency, from time.Time) time.Time {
	switch freq {
	case models.FreqDaily:
		return from.AddDate(0, 0, 1)
	case models.FreqWeekly:
		return from.AddDate(0, 0, 7)
	case models.FreqMonthly:
		return from.AddDate(0, 1, 0)
	case models.FreqYearly:
		return from.AddDate(1, 0, 0)
	}
	return from
}

// RunDue materializes every definition due at asOf and returns how many
// transactions were created. Errors on single definitions are logged
// and skipped so one bad row cannot stall the rest.
func (s *RecurringService) RunDue(ctx context.Context, asOf time.Time) (int, error) {
	due, err := s.recs.ListDue(ctx, asOf, dueBatchSize)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, rec := range due {
		n, err := s.runOne(ctx, rec, asOf)
		total += n
		if err != nil {
			slog.Error("recurring materialization failed", "recurring_id", rec.ID, "error", err)
		}
	}
	return total, nil
}

func (s *RecurringService) runOne(ctx context.Context, rec models.RecurringTransaction, asOf time.Time) (int, error) {
	account, err := s.acc.GetByID(ctx, rec.AccountID)
	if err != nil {
		return 0, err
	}
	if account.Archived() {
		// An archived account takes no new transactions; retire the
		// definition instead of retrying it forever.
		rec.Active = false
		_, err := s.recs.Update(ctx, rec)
		return 0, err
	}

	count := 0
	for steps := 0; steps < maxCatchUp && !rec.NextRunAt.After(asOf); steps++ {
		next := Advance(rec.Frequency, rec.NextRunAt)
		created, err := s.recs.Materialize(ctx, rec, models.Transaction{
			WorkspaceID: rec.WorkspaceID,
			AccountID:   rec.AccountID,
			Type:        rec.Type,
			Amount:      rec.Amount,
			Currency:    account.Currency,
			OccurredAt:  rec.NextRunAt,
			CategoryID:  rec.CategoryID,
			Note:        rec.Note,
		}, next)
		if err != nil {
			if errors.Is(err, repo.ErrConflict) {
				// Another scheduler instance took this run.
				return count, nil
			}
			return count, err
		}
		count++
		metrics.RecurringMaterializedTotal.Inc()
		metrics.TransactionsTotal.WithLabelValues(string(created.Type)).Inc()
		s.announce(rec, created)
		rec.NextRunAt = next
	}
	return count, nil
}

func (s *RecurringService) announce(rec models.RecurringTransaction, tx models.Transaction) {
	s.wp.Submit(func() {
		ev := events.RecurringMaterialized{
			Kind:        "recurring.materialized",
			RecurringID: rec.ID,
			TxID:        tx.ID,
			WorkspaceID: tx.WorkspaceID,
			AccountID:   tx.AccountID,
			RanAt:       tx.OccurredAt,
		}
		if err := s.pub.Publish(context.Background(), tx.AccountID, ev); err != nil {
			slog.Warn("event publish failed", "kind", ev.Kind, "error", err)
		}
	})
}
