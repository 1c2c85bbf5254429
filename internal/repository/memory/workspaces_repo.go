package memory

import (
	"context"
	"sort"

	"github.com/oleksii-sytar/personal-finance-sub002/internal/models"
	repo "github.com/oleksii-sytar/personal-finance-sub002/internal/repository"
)

type workspacesRepo struct{ s *Store }

func (r *workspacesRepo) Create(ctx context.Context, ws models.Workspace) (models.Workspace, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	ws.ID = orID(ws.ID)
	now := r.s.now()
	ws.CreatedAt = now
	r.s.workspaces[ws.ID] = ws
	r.s.members[memberKey(ws.ID, ws.CreatedBy)] = models.WorkspaceMember{
		WorkspaceID: ws.ID,
		UserID:      ws.CreatedBy,
		Role:        models.RoleOwner,
		JoinedAt:    now,
	}
	return ws, nil
}

func (r *workspacesRepo) GetByID(ctx context.Context, id string) (models.Workspace, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	ws, ok := r.s.workspaces[id]
	if !ok {
		return models.Workspace{}, repo.ErrNotFound
	}
	return ws, nil
}

func (r *workspacesRepo) ListByUser(ctx context.Context, userID string) ([]models.Workspace, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []models.Workspace
	for _, m := range r.s.members {
		if m.UserID != userID {
			continue
		}
		if ws, ok := r.s.workspaces[m.WorkspaceID]; ok {
			out = append(out, ws)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *workspacesRepo) AddMember(ctx context.Context, m models.WorkspaceMember) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := memberKey(m.WorkspaceID, m.UserID)
	if _, ok := r.s.members[key]; ok {
		return nil
	}
	if m.JoinedAt.IsZero() {
		m.JoinedAt = r.s.now()
	}
	r.s.members[key] = m
	return nil
}

func (r *workspacesRepo) GetMember(ctx context.Context, workspaceID, userID string) (models.WorkspaceMember, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	m, ok := r.s.members[memberKey(workspaceID, userID)]
	if !ok {
		return models.WorkspaceMember{}, repo.ErrNotFound
	}
	return m, nil
}
