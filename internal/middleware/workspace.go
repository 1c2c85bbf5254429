package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/oleksii-sytar/personal-finance-sub002/internal/api/httpx"
	"github.com/oleksii-sytar/personal-finance-sub002/internal/cache"
	"github.com/oleksii-sytar/personal-finance-sub002/internal/models"
	repo "github.com/oleksii-sytar/personal-finance-sub002/internal/repository"
)

// Memberships answers "what is this user in this workspace" with a
// short TTL cache in front of the store, so the check on every request
// does not cost a query.
type Memberships struct {
	workspaces repo.Workspaces
	roles      *cache.TTL[string, models.MemberRole]
}

func NewMemberships(ws repo.Workspaces, ttl time.Duration) *Memberships {
	return &Memberships{
		workspaces: ws,
		roles:      cache.New[string, models.MemberRole](ttl),
	}
}

func (m *Memberships) Role(ctx context.Context, workspaceID, userID string) (models.MemberRole, error) {
	key := workspaceID + "/" + userID
	if role, ok := m.roles.Get(key); ok {
		return role, nil
	}
	mem, err := m.workspaces.GetMember(ctx, workspaceID, userID)
	if err != nil {
		return "", err
	}
	m.roles.Set(key, mem.Role)
	return mem.Role, nil
}

// Invalidate drops the cached role after a membership change so the
// next request sees the new state.
func (m *Memberships) Invalidate(workspaceID, userID string) {
	m.roles.Delete(workspaceID + "/" + userID)
}

// RequireMember gates routes carrying a {workspaceID} URL parameter.
func (m *Memberships) RequireMember(next http.Handler) http.Handler {
	return m.require(next, func(models.MemberRole) bool { return true })
}

// RequireOwner gates owner-only routes such as inviting members.
func (m *Memberships) RequireOwner(next http.Handler) http.Handler {
	return m.require(next, func(r models.MemberRole) bool { return r == models.RoleOwner })
}

func (m *Memberships) require(next http.Handler, allowed func(models.MemberRole) bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		workspaceID := chi.URLParam(r, "workspaceID")
		user := FromCtx(r.Context())
		if workspaceID == "" || user.UserID == "" {
			httpx.WriteError(w, http.StatusForbidden, "forbidden", "not a workspace member", nil)
			return
		}
		role, err := m.Role(r.Context(), workspaceID, user.UserID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				httpx.WriteError(w, http.StatusForbidden, "forbidden", "not a workspace member", nil)
				return
			}
			httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "internal error", nil)
			return
		}
		if !allowed(role) {
			httpx.WriteError(w, http.StatusForbidden, "forbidden", "owner role required", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}
