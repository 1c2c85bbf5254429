package memory

import (
	"context"
	"sort"
	"time"

	"github.com/oleksii-sytar/personal-finance-sub002/internal/models"
	repo "github.com/oleksii-sytar/personal-finance-sub002/internal/repository"
)

type recurringsRepo struct{ s *Store }

func (r *recurringsRepo) Create(ctx context.Context, rec models.RecurringTransaction) (models.RecurringTransaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec.ID = orID(rec.ID)
	now := r.s.now()
	rec.CreatedAt, rec.UpdatedAt = now, now
	r.s.recurrings[rec.ID] = rec
	return rec, nil
}

func (r *recurringsRepo) GetByID(ctx context.Context, id string) (models.RecurringTransaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.recurrings[id]
	if !ok || rec.DeletedAt != nil {
		return models.RecurringTransaction{}, repo.ErrNotFound
	}
	return rec, nil
}

func (r *recurringsRepo) ListByWorkspace(ctx context.Context, workspaceID string) ([]models.RecurringTransaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []models.RecurringTransaction
	for _, rec := range r.s.recurrings {
		if rec.WorkspaceID == workspaceID && rec.DeletedAt == nil {
			out = append(out, rec)
		}
	}
	sortByNextRun(out)
	return out, nil
}

func (r *recurringsRepo) Update(ctx context.Context, rec models.RecurringTransaction) (models.RecurringTransaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.recurrings[rec.ID]
	if !ok || cur.DeletedAt != nil {
		return models.RecurringTransaction{}, repo.ErrNotFound
	}
	cur.Type = rec.Type
	cur.Amount = rec.Amount
	cur.CategoryID = rec.CategoryID
	cur.Note = rec.Note
	cur.Frequency = rec.Frequency
	cur.NextRunAt = rec.NextRunAt
	cur.Active = rec.Active
	cur.UpdatedAt = r.s.now()
	r.s.recurrings[cur.ID] = cur
	return cur, nil
}

func (r *recurringsRepo) SoftDelete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.recurrings[id]
	if !ok || rec.DeletedAt != nil {
		return repo.ErrNotFound
	}
	now := r.s.now()
	rec.DeletedAt = &now
	rec.UpdatedAt = now
	r.s.recurrings[id] = rec
	return nil
}

func (r *recurringsRepo) ListDue(ctx context.Context, asOf time.Time, limit int) ([]models.RecurringTransaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []models.RecurringTransaction
	for _, rec := range r.s.recurrings {
		if rec.Active && rec.DeletedAt == nil && !rec.NextRunAt.After(asOf) {
			out = append(out, rec)
		}
	}
	sortByNextRun(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *recurringsRepo) Materialize(ctx context.Context, rec models.RecurringTransaction, tx models.Transaction, nextRun time.Time) (models.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.recurrings[rec.ID]
	if !ok || cur.DeletedAt != nil || !cur.Active || !cur.NextRunAt.Equal(rec.NextRunAt) {
		return models.Transaction{}, repo.ErrConflict
	}
	cur.NextRunAt = nextRun
	cur.UpdatedAt = r.s.now()
	r.s.recurrings[cur.ID] = cur

	txRepo := transactionsRepo{r.s}
	return txRepo.insert(tx), nil
}

func sortByNextRun(recs []models.RecurringTransaction) {
	sort.Slice(recs, func(i, j int) bool {
		if !recs[i].NextRunAt.Equal(recs[j].NextRunAt) {
			return recs[i].NextRunAt.Before(recs[j].NextRunAt)
		}
		return recs[i].ID < recs[j].ID
	})
}
