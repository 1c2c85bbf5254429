package services

import (
	"context"
	"errors"
	"testing"

	"github.com/oleksii-sytar/personal-finance-sub002/internal/models"
)

func TestRegisterAndLogin(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	u, pair, err := e.users.Register(ctx, "ada", "Ada@Example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.Email != "ada@example.com" {
		t.Fatalf("email not normalized: %q", u.Email)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("expected a token pair on register")
	}

	if _, _, err := e.users.Register(ctx, "ada2", "ada@example.com", "s3cret-pass"); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("duplicate email: want ErrEmailTaken, got %v", err)
	}

	if _, _, err := e.users.Login(ctx, "ada@example.com", "s3cret-pass"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, _, err := e.users.Login(ctx, "ada@example.com", "wrong-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: want ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := e.users.Login(ctx, "nobody@example.com", "s3cret-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email: want ErrInvalidCredentials, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	cases := []struct {
		name               string
		username, email, p string
	}{
		{"short username", "ab", "ok@example.com", "s3cret-pass"},
		{"bad email", "ada", "not-an-email", "s3cret-pass"},
		{"short password", "ada", "ok@example.com", "short"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := e.users.Register(ctx, tc.username, tc.email, tc.p); !errors.Is(err, ErrInvalid) {
				t.Fatalf("want ErrInvalid, got %v", err)
			}
		})
	}
}

func TestRefresh(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, pair, err := e.users.Register(ctx, "ada", "ada@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := e.users.Refresh(ctx, pair.RefreshToken); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if _, err := e.users.Refresh(ctx, pair.AccessToken); err == nil {
		t.Fatal("access token accepted as refresh token")
	}
}

func TestResolveNextStep(t *testing.T) {
	ws := []models.Workspace{{ID: "w1"}}
	inv := []models.Invitation{{ID: "i1"}}

	cases := []struct {
		name       string
		workspaces []models.Workspace
		pending    []models.Invitation
		want       string
	}{
		{"member somewhere", ws, inv, "dashboard"},
		{"only invited", nil, inv, "review_invitations"},
		{"fresh user", nil, nil, "create_workspace"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ResolveNextStep(tc.workspaces, tc.pending); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestMeFollowsOnboarding(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	owner := e.seedUser(t, "owner", "owner@example.com")
	invitee := e.seedUser(t, "guest", "guest@example.com")

	// 1. Fresh user with nothing: create_workspace.
	me, err := e.users.Me(ctx, invitee.ID)
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	if me.NextStep != "create_workspace" {
		t.Fatalf("next_step = %q, want create_workspace", me.NextStep)
	}

	// 2. A pending invitation flips it to review_invitations.
	ws := e.seedWorkspace(t, owner.ID)
	inv, err := e.workspaces.Invite(ctx, ws.ID, owner.ID, "guest@example.com")
	if err != nil {
		t.Fatalf("invite: %v", err)
	}
	me, err = e.users.Me(ctx, invitee.ID)
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	if me.NextStep != "review_invitations" || len(me.Invitations) != 1 {
		t.Fatalf("next_step = %q with %d invitations, want review_invitations with 1", me.NextStep, len(me.Invitations))
	}

	// 3. Accepting makes it dashboard.
	if _, err := e.workspaces.Accept(ctx, inv.Token, invitee.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}
	me, err = e.users.Me(ctx, invitee.ID)
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	if me.NextStep != "dashboard" || len(me.Workspaces) != 1 {
		t.Fatalf("next_step = %q with %d workspaces, want dashboard with 1", me.NextStep, len(me.Workspaces))
	}
	if len(me.Invitations) != 0 {
		t.Fatalf("accepted invitation still listed as pending")
	}
}
