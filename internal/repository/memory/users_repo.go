package memory

import (
	"context"

	"github.com/oleksii-sytar/personal-finance-sub002/internal/models"
	repo "github.com/oleksii-sytar/personal-finance-sub002/internal/repository"
)

type usersRepo struct{ s *Store }

func (r *usersRepo) Create(ctx context.Context, u models.User) (models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, ex := range r.s.users {
		if ex.Email == u.Email {
			return models.User{}, repo.ErrConflict
		}
	}
	u.ID = orID(u.ID)
	now := r.s.now()
	u.CreatedAt, u.UpdatedAt = now, now
	r.s.users[u.ID] = u
	return u, nil
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return models.User{}, repo.ErrNotFound
	}
	return u, nil
}

func (r *usersRepo) GetByEmail(ctx context.Context, email string) (models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, repo.ErrNotFound
}
