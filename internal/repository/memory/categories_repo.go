package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/oleksii-sytar/personal-finance-sub002/internal/models"
	repo "github.com/oleksii-sytar/personal-finance-sub002/internal/repository"
)

type categoriesRepo struct{ s *Store }

func (r *categoriesRepo) Create(ctx context.Context, c models.Category) (models.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, ex := range r.s.categories {
		if ex.WorkspaceID == c.WorkspaceID && strings.EqualFold(ex.Name, c.Name) {
			return models.Category{}, repo.ErrConflict
		}
	}
	c.ID = orID(c.ID)
	c.CreatedAt = r.s.now()
	r.s.categories[c.ID] = c
	return c, nil
}

func (r *categoriesRepo) GetByID(ctx context.Context, id string) (models.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.categories[id]
	if !ok {
		return models.Category{}, repo.ErrNotFound
	}
	return c, nil
}

func (r *categoriesRepo) ListByWorkspace(ctx context.Context, workspaceID string) ([]models.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []models.Category
	for _, c := range r.s.categories {
		if c.WorkspaceID == workspaceID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

func (r *categoriesRepo) Rename(ctx context.Context, id, name string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.categories[id]
	if !ok {
		return repo.ErrNotFound
	}
	for _, ex := range r.s.categories {
		if ex.ID != id && ex.WorkspaceID == c.WorkspaceID && strings.EqualFold(ex.Name, name) {
			return repo.ErrConflict
		}
	}
	c.Name = name
	r.s.categories[id] = c
	return nil
}

// Delete removes the category and clears references the way the foreign
// keys' ON DELETE SET NULL does in postgres.
func (r *categoriesRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.categories[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.s.categories, id)
	for txID, tx := range r.s.transactions {
		if tx.CategoryID != nil && *tx.CategoryID == id {
			tx.CategoryID = nil
			r.s.transactions[txID] = tx
		}
	}
	for recID, rec := range r.s.recurrings {
		if rec.CategoryID != nil && *rec.CategoryID == id {
			rec.CategoryID = nil
			r.s.recurrings[recID] = rec
		}
	}
	return nil
}
