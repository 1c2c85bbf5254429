package memory

import (
	"context"
	"sort"

	"github.com/oleksii-sytar/personal-finance-sub002/internal/models"
	repo "github.com/oleksii-sytar/personal-finance-sub002/internal/repository"
)

type accountsRepo struct{ s *Store }

func (r *accountsRepo) Create(ctx context.Context, a models.Account) (models.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a.ID = orID(a.ID)
	now := r.s.now()
	a.CreatedAt, a.UpdatedAt = now, now
	r.s.accounts[a.ID] = a
	return a, nil
}

func (r *accountsRepo) GetByID(ctx context.Context, id string) (models.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.accounts[id]
	if !ok {
		return models.Account{}, repo.ErrNotFound
	}
	return a, nil
}

func (r *accountsRepo) ListByWorkspace(ctx context.Context, workspaceID string, includeArchived bool) ([]models.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []models.Account
	for _, a := range r.s.accounts {
		if a.WorkspaceID != workspaceID {
			continue
		}
		if a.Archived() && !includeArchived {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *accountsRepo) Rename(ctx context.Context, id, name string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.accounts[id]
	if !ok {
		return repo.ErrNotFound
	}
	a.Name = name
	a.UpdatedAt = r.s.now()
	r.s.accounts[id] = a
	return nil
}

func (r *accountsRepo) Archive(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.accounts[id]
	if !ok || a.Archived() {
		return repo.ErrNotFound
	}
	now := r.s.now()
	a.ArchivedAt = &now
	a.UpdatedAt = now
	r.s.accounts[id] = a
	return nil
}
