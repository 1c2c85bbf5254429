package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/oleksii-sytar/personal-finance-sub002/internal/models"
	repo "github.com/oleksii-sytar/personal-finance-sub002/internal/repository"
)

type transactionsRepo struct{ s *Store }

func (r *transactionsRepo) Create(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.insert(tx), nil
}

func (r *transactionsRepo) insert(tx models.Transaction) models.Transaction {
	tx.ID = orID(tx.ID)
	now := r.s.now()
	tx.CreatedAt, tx.UpdatedAt = now, now
	r.s.transactions[tx.ID] = tx
	return tx
}

func (r *transactionsRepo) CreatePair(ctx context.Context, out, in models.Transaction) (models.Transaction, models.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.insert(out), r.insert(in), nil
}

func (r *transactionsRepo) GetByID(ctx context.Context, id string) (models.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	tx, ok := r.s.transactions[id]
	if !ok || tx.Deleted() {
		return models.Transaction{}, repo.ErrNotFound
	}
	return tx, nil
}

func (r *transactionsRepo) List(ctx context.Context, f models.TransactionFilter) ([]models.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []models.Transaction
	for _, tx := range r.s.transactions {
		if f.Matches(tx) {
			out = append(out, tx)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].OccurredAt.Equal(out[j].OccurredAt) {
			return out[i].OccurredAt.After(out[j].OccurredAt)
		}
		return out[i].ID < out[j].ID
	})

	if f.Offset > 0 {
		if f.Offset >= len(out) {
			return nil, nil
		}
		out = out[f.Offset:]
	}
	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *transactionsRepo) Update(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.transactions[tx.ID]
	if !ok || cur.Deleted() {
		return models.Transaction{}, repo.ErrNotFound
	}
	cur.Type = tx.Type
	cur.Amount = tx.Amount
	cur.OccurredAt = tx.OccurredAt
	cur.CategoryID = tx.CategoryID
	cur.Note = tx.Note
	cur.UpdatedAt = r.s.now()
	r.s.transactions[cur.ID] = cur
	return cur, nil
}

func (r *transactionsRepo) SoftDelete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	tx, ok := r.s.transactions[id]
	if !ok || tx.Deleted() {
		return repo.ErrNotFound
	}
	now := r.s.now()
	mark := func(t models.Transaction) {
		t.DeletedAt = &now
		t.UpdatedAt = now
		r.s.transactions[t.ID] = t
	}
	mark(tx)
	if tx.TransferLeg() {
		for _, twin := range r.s.transactions {
			if twin.ID != tx.ID && twin.TransferLeg() && *twin.TransferID == *tx.TransferID && !twin.Deleted() {
				mark(twin)
			}
		}
	}
	return nil
}

func (r *transactionsRepo) SumSigned(ctx context.Context, accountID string, asOf time.Time) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sum := decimal.Zero
	for _, tx := range r.s.transactions {
		if tx.AccountID != accountID || tx.Deleted() || tx.OccurredAt.After(asOf) {
			continue
		}
		sum = sum.Add(tx.SignedAmount())
	}
	return sum, nil
}
