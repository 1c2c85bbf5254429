package memory

import (
	"context"
	"sort"

	"github.com/oleksii-sytar/personal-finance-sub002/internal/models"
	repo "github.com/oleksii-sytar/personal-finance-sub002/internal/repository"
)

type invitationsRepo struct{ s *Store }

func (r *invitationsRepo) Create(ctx context.Context, inv models.Invitation) (models.Invitation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, ex := range r.s.invitations {
		if ex.Token == inv.Token {
			return models.Invitation{}, repo.ErrConflict
		}
	}
	inv.ID = orID(inv.ID)
	inv.CreatedAt = r.s.now()
	r.s.invitations[inv.ID] = inv
	return inv, nil
}

func (r *invitationsRepo) GetByID(ctx context.Context, id string) (models.Invitation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	inv, ok := r.s.invitations[id]
	if !ok {
		return models.Invitation{}, repo.ErrNotFound
	}
	return inv, nil
}

func (r *invitationsRepo) GetByToken(ctx context.Context, token string) (models.Invitation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, inv := range r.s.invitations {
		if inv.Token == token {
			return inv, nil
		}
	}
	return models.Invitation{}, repo.ErrNotFound
}

func (r *invitationsRepo) ListByEmail(ctx context.Context, email string) ([]models.Invitation, error) {
	return r.list(func(inv models.Invitation) bool { return inv.Email == email })
}

func (r *invitationsRepo) ListByWorkspace(ctx context.Context, workspaceID string) ([]models.Invitation, error) {
	return r.list(func(inv models.Invitation) bool { return inv.WorkspaceID == workspaceID })
}

func (r *invitationsRepo) list(keep func(models.Invitation) bool) ([]models.Invitation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []models.Invitation
	for _, inv := range r.s.invitations {
		if keep(inv) {
			out = append(out, inv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *invitationsRepo) UpdateStatus(ctx context.Context, id string, status models.InvitationStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	inv, ok := r.s.invitations[id]
	if !ok {
		return repo.ErrNotFound
	}
	inv.Status = status
	r.s.invitations[id] = inv
	return nil
}
