package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oleksii-sytar/personal-finance-sub002/internal/auth"
	"github.com/oleksii-sytar/personal-finance-sub002/internal/models"
	repo "github.com/oleksii-sytar/personal-finance-sub002/internal/repository"
)

type UserService struct {
	users repo.Users
	ws    repo.Workspaces
	inv   repo.Invitations
	tm    *auth.TokenManager
}

func NewUserService(users repo.Users, ws repo.Workspaces, inv repo.Invitations, tm *auth.TokenManager) *UserService {
	return &UserService{users: users, ws: ws, inv: inv, tm: tm}
}

func (s *UserService) Register(ctx context.Context, username, email, password string) (models.User, auth.TokenPair, error) {
	u := models.User{
		Username: strings.TrimSpace(username),
		Email:    strings.ToLower(strings.TrimSpace(email)),
	}
	if err := u.Validate(); err != nil {
		return models.User{}, auth.TokenPair{}, fmt.Errorf("%w: %s", ErrInvalid, err)
	}
	if len(password) < 8 {
		return models.User{}, auth.TokenPair{}, fmt.Errorf("%w: password must be at least 8 characters", ErrInvalid)
	}
	if _, err := s.users.GetByEmail(ctx, u.Email); err == nil {
		return models.User{}, auth.TokenPair{}, ErrEmailTaken
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, auth.TokenPair{}, err
	}
	u.PasswordHash = hash

	u, err = s.users.Create(ctx, u)
	if err != nil {
		if errors.Is(err, repo.ErrConflict) {
			return models.User{}, auth.TokenPair{}, ErrEmailTaken
		}
		return models.User{}, auth.TokenPair{}, err
	}
	pair, err := s.tm.GeneratePair(u.ID, u.Email)
	return u, pair, err
}

func (s *UserService) Login(ctx context.Context, email, password string) (models.User, auth.TokenPair, error) {
	u, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return models.User{}, auth.TokenPair{}, ErrInvalidCredentials
		}
		return models.User{}, auth.TokenPair{}, err
	}
	if err := auth.VerifyPassword(password, u.PasswordHash); err != nil {
		return models.User{}, auth.TokenPair{}, ErrInvalidCredentials
	}
	pair, err := s.tm.GeneratePair(u.ID, u.Email)
	return u, pair, err
}

func (s *UserService) Refresh(ctx context.Context, refreshToken string) (auth.TokenPair, error) {
	claims, err := s.tm.ParseRefresh(refreshToken)
	if err != nil {
		return auth.TokenPair{}, err
	}
	u, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return auth.TokenPair{}, auth.ErrInvalidToken
		}
		return auth.TokenPair{}, err
	}
	return s.tm.GeneratePair(u.ID, u.Email)
}

// MeView is the session bootstrap: who the user is, where they can go,
// and what the client should show first.
type MeView struct {
	User        models.User         `json:"user"`
	Workspaces  []models.Workspace  `json:"workspaces"`
	Invitations []models.Invitation `json:"pending_invitations"`
	NextStep    string              `json:"next_step"`
}

func (s *UserService) Me(ctx context.Context, userID string) (MeView, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return MeView{}, err
	}
	workspaces, err := s.ws.ListByUser(ctx, userID)
	if err != nil {
		return MeView{}, err
	}
	invitations, err := s.inv.ListByEmail(ctx, u.Email)
	if err != nil {
		return MeView{}, err
	}
	pending := invitations[:0:0]
	now := time.Now()
	for _, inv := range invitations {
		if inv.Pending(now) {
			pending = append(pending, inv)
		}
	}
	return MeView{
		User:        u,
		Workspaces:  workspaces,
		Invitations: pending,
		NextStep:    ResolveNextStep(workspaces, pending),
	}, nil
}

// ResolveNextStep picks the screen a signed-in user lands on: their
// dashboard when they belong somewhere, otherwise pending invitations,
// otherwise workspace creation.
func ResolveNextStep(workspaces []models.Workspace, pending []models.Invitation) string {
	switch {
	case len(workspaces) > 0:
		return "dashboard"
	case len(pending) > 0:
		return "review_invitations"
	default:
		return "create_workspace"
	}
}
