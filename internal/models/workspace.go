package models

import (
	"errors"
	"strings"
	"time"
)

// Workspace is the tenant boundary: a household sharing accounts,
// categories and transactions.
type Workspace struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Currency  string    `json:"currency"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

func (w *Workspace) Validate() error {
	if strings.TrimSpace(w.Name) == "" { return errors.New("name required") }
	if len(w.Currency) != 3 { return errors.New("currency must be a 3-letter code") }
	return nil
}

type MemberRole string

const (
	RoleOwner  MemberRole = "owner"
	RoleMember MemberRole = "member"
)

type WorkspaceMember struct {
	WorkspaceID string     `json:"workspace_id"`
	UserID      string     `json:"user_id"`
	Role        MemberRole `json:"role"`
	JoinedAt    time.Time  `json:"joined_at"`
}

type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationRevoked  InvitationStatus = "revoked"
)

type Invitation struct {
	ID          string           `json:"id"`
	WorkspaceID string           `json:"workspace_id"`
	Email       string           `json:"email"`
	Token       string           `json:"token"`
	InvitedBy   string           `json:"invited_by"`
	Status      InvitationStatus `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
	ExpiresAt   time.Time        `json:"expires_at"`
}

// Pending reports whether the invitation can still be accepted at t.
func (i Invitation) Pending(t time.Time) bool {
	return i.Status == InvitationPending && t.Before(i.ExpiresAt)
}
