package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/oleksii-sytar/personal-finance-sub002/internal/auth"
	"github.com/oleksii-sytar/personal-finance-sub002/internal/events"
	"github.com/oleksii-sytar/personal-finance-sub002/internal/models"
	"github.com/oleksii-sytar/personal-finance-sub002/internal/repository/memory"
	"github.com/oleksii-sytar/personal-finance-sub002/internal/worker"
)

// env wires every service over the in-memory store, the way main wires
// them over postgres.
type env struct {
	store      *memory.Store
	users      *UserService
	workspaces *WorkspaceService
	accounts   *AccountService
	categories *CategoryService
	txs        *TransactionService
	recurring  *RecurringService
	reconcile  *ReconciliationService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repositories()
	tm := auth.NewTokenManager("test-access", "test-refresh", "finance-api", 15*time.Minute, 24*time.Hour)
	wp := worker.NewPool(1)
	t.Cleanup(wp.Stop)
	pub := events.Noop{}

	return &env{
		store:      store,
		users:      NewUserService(repos.Users, repos.Workspaces, repos.Invitations, tm),
		workspaces: NewWorkspaceService(repos.Workspaces, repos.Invitations, repos.Users),
		accounts:   NewAccountService(repos.Accounts, repos.Workspaces),
		categories: NewCategoryService(repos.Categories),
		txs:        NewTransactionService(repos.Transactions, repos.Accounts, repos.Categories, wp, pub),
		recurring:  NewRecurringService(repos.Recurrings, repos.Accounts, repos.Categories, wp, pub),
		reconcile:  NewReconciliationService(repos.Accounts, repos.Transactions, repos.BalanceUpdates, wp, pub),
	}
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func (e *env) seedUser(t *testing.T, username, email string) models.User {
	t.Helper()
	u, _, err := e.users.Register(context.Background(), username, email, "s3cret-pass")
	if err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
	return u
}

func (e *env) seedWorkspace(t *testing.T, ownerID string) models.Workspace {
	t.Helper()
	ws, err := e.workspaces.Create(context.Background(), ownerID, "Family", "EUR")
	if err != nil {
		t.Fatalf("seed workspace: %v", err)
	}
	return ws
}

func (e *env) seedAccount(t *testing.T, workspaceID, name, opening string) models.Account {
	t.Helper()
	a, err := e.accounts.Create(context.Background(), workspaceID, name, "", dec(t, opening))
	if err != nil {
		t.Fatalf("seed account %s: %v", name, err)
	}
	return a
}
