package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oleksii-sytar/personal-finance-sub002/internal/models"
	repo "github.com/oleksii-sytar/personal-finance-sub002/internal/repository"
)

// Store keeps every table in process memory behind one mutex. It backs
// tests and local development with the same observable behavior as the
// postgres store: same sentinel errors, same soft deletes and cascades.
type Store struct {
	mu sync.Mutex

	// Now stamps rows the way column defaults do in postgres. Tests
	// replace it to control time.
	Now func() time.Time

	users        map[string]models.User
	workspaces   map[string]models.Workspace
	members      map[string]models.WorkspaceMember
	invitations  map[string]models.Invitation
	accounts     map[string]models.Account
	categories   map[string]models.Category
	transactions map[string]models.Transaction
	recurrings   map[string]models.RecurringTransaction
	updates      []models.BalanceUpdateEvent
}

func NewStore() *Store {
	return &Store{
		Now:          time.Now,
		users:        make(map[string]models.User),
		workspaces:   make(map[string]models.Workspace),
		members:      make(map[string]models.WorkspaceMember),
		invitations:  make(map[string]models.Invitation),
		accounts:     make(map[string]models.Account),
		categories:   make(map[string]models.Category),
		transactions: make(map[string]models.Transaction),
		recurrings:   make(map[string]models.RecurringTransaction),
	}
}

// NewRepositories bundles a fresh store behind the repository interfaces.
func NewRepositories() repo.Repositories {
	return NewStore().Repositories()
}

func (s *Store) Repositories() repo.Repositories {
	return repo.Repositories{
		Users:          &usersRepo{s},
		Workspaces:     &workspacesRepo{s},
		Invitations:    &invitationsRepo{s},
		Accounts:       &accountsRepo{s},
		Categories:     &categoriesRepo{s},
		Transactions:   &transactionsRepo{s},
		Recurrings:     &recurringsRepo{s},
		BalanceUpdates: &balanceUpdatesRepo{s},
	}
}

func (s *Store) now() time.Time { return s.Now().UTC() }

func orID(id string) string {
	if id == "" {
		return uuid.NewString()
	}
	return id
}

func memberKey(workspaceID, userID string) string { return workspaceID + "/" + userID }

var (
	_ repo.Users          = (*usersRepo)(nil)
	_ repo.Workspaces     = (*workspacesRepo)(nil)
	_ repo.Invitations    = (*invitationsRepo)(nil)
	_ repo.Accounts       = (*accountsRepo)(nil)
	_ repo.Categories     = (*categoriesRepo)(nil)
	_ repo.Transactions   = (*transactionsRepo)(nil)
	_ repo.Recurrings     = (*recurringsRepo)(nil)
	_ repo.BalanceUpdates = (*balanceUpdatesRepo)(nil)
)
