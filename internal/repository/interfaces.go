package repository

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/oleksii-sytar/personal-finance-sub002/internal/models"
)

// ErrNotFound is returned by every store when a row does not exist.
// The postgres store maps pgx.ErrNoRows onto it so callers never
// depend on a driver error.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned on unique-constraint style collisions
// (duplicate email, duplicate category name, stale recurring run).
var ErrConflict = errors.New("conflict")

type Users interface {
	Create(ctx context.Context, u models.User) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
}

type Workspaces interface {
	// Create inserts the workspace and its owner membership atomically.
	Create(ctx context.Context, ws models.Workspace) (models.Workspace, error)
	GetByID(ctx context.Context, id string) (models.Workspace, error)
	ListByUser(ctx context.Context, userID string) ([]models.Workspace, error)
	AddMember(ctx context.Context, m models.WorkspaceMember) error
	GetMember(ctx context.Context, workspaceID, userID string) (models.WorkspaceMember, error)
}

type Invitations interface {
	Create(ctx context.Context, inv models.Invitation) (models.Invitation, error)
	GetByID(ctx context.Context, id string) (models.Invitation, error)
	GetByToken(ctx context.Context, token string) (models.Invitation, error)
	ListByEmail(ctx context.Context, email string) ([]models.Invitation, error)
	ListByWorkspace(ctx context.Context, workspaceID string) ([]models.Invitation, error)
	UpdateStatus(ctx context.Context, id string, status models.InvitationStatus) error
}

type Accounts interface {
	Create(ctx context.Context, a models.Account) (models.Account, error)
	GetByID(ctx context.Context, id string) (models.Account, error)
	ListByWorkspace(ctx context.Context, workspaceID string, includeArchived bool) ([]models.Account, error)
	Rename(ctx context.Context, id, name string) error
	Archive(ctx context.Context, id string) error
}

type Categories interface {
	Create(ctx context.Context, c models.Category) (models.Category, error)
	GetByID(ctx context.Context, id string) (models.Category, error)
	ListByWorkspace(ctx context.Context, workspaceID string) ([]models.Category, error)
	Rename(ctx context.Context, id, name string) error
	Delete(ctx context.Context, id string) error
}

type Transactions interface {
	Create(ctx context.Context, tx models.Transaction) (models.Transaction, error)
	// CreatePair inserts both legs of a transfer in one database
	// transaction; neither leg exists if either insert fails.
	CreatePair(ctx context.Context, out, in models.Transaction) (models.Transaction, models.Transaction, error)
	GetByID(ctx context.Context, id string) (models.Transaction, error)
	List(ctx context.Context, f models.TransactionFilter) ([]models.Transaction, error)
	Update(ctx context.Context, tx models.Transaction) (models.Transaction, error)
	// SoftDelete marks the transaction, and its transfer twin if it has
	// one, as deleted.
	SoftDelete(ctx context.Context, id string) error
	// SumSigned totals the signed amounts of an account's live
	// transactions that occurred at or before asOf.
	SumSigned(ctx context.Context, accountID string, asOf time.Time) (decimal.Decimal, error)
}

type Recurrings interface {
	Create(ctx context.Context, r models.RecurringTransaction) (models.RecurringTransaction, error)
	GetByID(ctx context.Context, id string) (models.RecurringTransaction, error)
	ListByWorkspace(ctx context.Context, workspaceID string) ([]models.RecurringTransaction, error)
	Update(ctx context.Context, r models.RecurringTransaction) (models.RecurringTransaction, error)
	SoftDelete(ctx context.Context, id string) error
	ListDue(ctx context.Context, asOf time.Time, limit int) ([]models.RecurringTransaction, error)
	// Materialize inserts the occurrence and advances the definition's
	// next_run_at in one database transaction. The definition's current
	// NextRunAt guards against a concurrent run (ErrConflict on a stale
	// definition).
	Materialize(ctx context.Context, r models.RecurringTransaction, tx models.Transaction, nextRun time.Time) (models.Transaction, error)
}

type BalanceUpdates interface {
	// Record sets the account's actual balance and appends the history
	// event in one database transaction: either both happen or neither.
	Record(ctx context.Context, accountID string, newBalance decimal.Decimal, actor, note string) (models.Account, models.BalanceUpdateEvent, error)
	List(ctx context.Context, f models.BalanceUpdateFilter) ([]models.BalanceUpdateEvent, error)
}

// Repositories bundles every store behind one wiring point; postgres and
// memory implementations both return it.
type Repositories struct {
	Users          Users
	Workspaces     Workspaces
	Invitations    Invitations
	Accounts       Accounts
	Categories     Categories
	Transactions   Transactions
	Recurrings     Recurrings
	BalanceUpdates BalanceUpdates
}
