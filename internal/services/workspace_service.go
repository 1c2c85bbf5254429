package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/oleksii-sytar/personal-finance-sub002/internal/models"
	repo "github.com/oleksii-sytar/personal-finance-sub002/internal/repository"
)

// invitationTTL is how long an invitation can sit unaccepted.
const invitationTTL = 7 * 24 * time.Hour

type WorkspaceService struct {
	ws    repo.Workspaces
	inv   repo.Invitations
	users repo.Users
}

func NewWorkspaceService(ws repo.Workspaces, inv repo.Invitations, users repo.Users) *WorkspaceService {
	return &WorkspaceService{ws: ws, inv: inv, users: users}
}

func (s *WorkspaceService) Create(ctx context.Context, ownerID, name, currency string) (models.Workspace, error) {
	w := models.Workspace{
		Name:      strings.TrimSpace(name),
		Currency:  strings.ToUpper(strings.TrimSpace(currency)),
		CreatedBy: ownerID,
	}
	if err := w.Validate(); err != nil {
		return models.Workspace{}, fmt.Errorf("%w: %s", ErrInvalid, err)
	}
	return s.ws.Create(ctx, w)
}

func (s *WorkspaceService) ListMine(ctx context.Context, userID string) ([]models.Workspace, error) {
	return s.ws.ListByUser(ctx, userID)
}

func (s *WorkspaceService) Get(ctx context.Context, workspaceID string) (models.Workspace, error) {
	return s.ws.GetByID(ctx, workspaceID)
}

func (s *WorkspaceService) Invite(ctx context.Context, workspaceID, inviterID, email string) (models.Invitation, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !strings.Contains(email, "@") {
		return models.Invitation{}, fmt.Errorf("%w: invalid email", ErrInvalid)
	}

	// An existing member needs no invitation.
	if u, err := s.users.GetByEmail(ctx, email); err == nil {
		if _, err := s.ws.GetMember(ctx, workspaceID, u.ID); err == nil {
			return models.Invitation{}, ErrAlreadyMember
		}
	}

	return s.inv.Create(ctx, models.Invitation{
		WorkspaceID: workspaceID,
		Email:       email,
		Token:       uuid.NewString(),
		InvitedBy:   inviterID,
		Status:      models.InvitationPending,
		ExpiresAt:   time.Now().Add(invitationTTL),
	})
}

// MyInvitations lists the caller's still-acceptable invitations.
func (s *WorkspaceService) MyInvitations(ctx context.Context, email string) ([]models.Invitation, error) {
	all, err := s.inv.ListByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	now := time.Now()
	pending := all[:0:0]
	for _, inv := range all {
		if inv.Pending(now) {
			pending = append(pending, inv)
		}
	}
	return pending, nil
}

// WorkspaceInvitations lists every invitation of the workspace, any status.
func (s *WorkspaceService) WorkspaceInvitations(ctx context.Context, workspaceID string) ([]models.Invitation, error) {
	return s.inv.ListByWorkspace(ctx, workspaceID)
}

// Accept joins the caller to the invitation's workspace. The invitation
// must still be pending and addressed to the caller's email.
func (s *WorkspaceService) Accept(ctx context.Context, token, userID string) (models.Workspace, error) {
	inv, err := s.inv.GetByToken(ctx, token)
	if err != nil {
		return models.Workspace{}, err
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return models.Workspace{}, err
	}
	if !strings.EqualFold(u.Email, inv.Email) {
		return models.Workspace{}, ErrInvitationForOther
	}
	if !inv.Pending(time.Now()) {
		return models.Workspace{}, ErrInvitationNotPending
	}

	err = s.ws.AddMember(ctx, models.WorkspaceMember{
		WorkspaceID: inv.WorkspaceID,
		UserID:      userID,
		Role:        models.RoleMember,
	})
	if err != nil {
		return models.Workspace{}, err
	}
	if err := s.inv.UpdateStatus(ctx, inv.ID, models.InvitationAccepted); err != nil {
		return models.Workspace{}, err
	}
	return s.ws.GetByID(ctx, inv.WorkspaceID)
}

// Revoke cancels a pending invitation of the workspace.
func (s *WorkspaceService) Revoke(ctx context.Context, workspaceID, invitationID string) error {
	inv, err := s.inv.GetByID(ctx, invitationID)
	if err != nil {
		return err
	}
	if inv.WorkspaceID != workspaceID {
		return repo.ErrNotFound
	}
	if inv.Status != models.InvitationPending {
		return ErrInvitationNotPending
	}
	return s.inv.UpdateStatus(ctx, inv.ID, models.InvitationRevoked)
}
