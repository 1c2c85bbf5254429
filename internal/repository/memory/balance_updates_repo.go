package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/oleksii-sytar/personal-finance-sub002/internal/models"
	repo "github.com/oleksii-sytar/personal-finance-sub002/internal/repository"
)

type balanceUpdatesRepo struct{ s *Store }

func (r *balanceUpdatesRepo) Record(ctx context.Context, accountID string, newBalance decimal.Decimal, actor, note string) (models.Account, models.BalanceUpdateEvent, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	acc, ok := r.s.accounts[accountID]
	if !ok || acc.Archived() {
		return models.Account{}, models.BalanceUpdateEvent{}, repo.ErrNotFound
	}
	now := r.s.now()
	old := acc.ActualBalance
	acc.ActualBalance = newBalance
	acc.UpdatedAt = now
	r.s.accounts[accountID] = acc

	ev := models.BalanceUpdateEvent{
		ID:          uuid.NewString(),
		WorkspaceID: acc.WorkspaceID,
		AccountID:   accountID,
		OldBalance:  old,
		NewBalance:  newBalance,
		Difference:  newBalance.Sub(old),
		Note:        note,
		Actor:       actor,
		CreatedAt:   now,
	}
	r.s.updates = append(r.s.updates, ev)
	return acc, ev, nil
}

func (r *balanceUpdatesRepo) List(ctx context.Context, f models.BalanceUpdateFilter) ([]models.BalanceUpdateEvent, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []models.BalanceUpdateEvent
	for _, ev := range r.s.updates {
		if f.Matches(ev) {
			out = append(out, ev)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	limit := f.Limit
	if limit <= 0 {
		limit = 100
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
