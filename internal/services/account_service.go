package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/oleksii-sytar/personal-finance-sub002/internal/models"
	repo "github.com/oleksii-sytar/personal-finance-sub002/internal/repository"
)

type AccountService struct {
	acc repo.Accounts
	ws  repo.Workspaces
}

func NewAccountService(acc repo.Accounts, ws repo.Workspaces) *AccountService {
	return &AccountService{acc: acc, ws: ws}
}

// Create opens an account. An empty currency falls back to the
// workspace currency; the actual balance starts equal to the opening
// balance, so a fresh account is reconciled by definition.
func (s *AccountService) Create(ctx context.Context, workspaceID, name, currency string, opening decimal.Decimal) (models.Account, error) {
	if currency == "" {
		w, err := s.ws.GetByID(ctx, workspaceID)
		if err != nil {
			return models.Account{}, err
		}
		currency = w.Currency
	}
	a := models.Account{
		WorkspaceID:    workspaceID,
		Name:           name,
		Currency:       currency,
		OpeningBalance: opening,
		ActualBalance:  opening,
	}
	if err := a.Validate(); err != nil {
		return models.Account{}, fmt.Errorf("%w: %s", ErrInvalid, err)
	}
	return s.acc.Create(ctx, a)
}

func (s *AccountService) List(ctx context.Context, workspaceID string, includeArchived bool) ([]models.Account, error) {
	return s.acc.ListByWorkspace(ctx, workspaceID, includeArchived)
}

// Get scopes the lookup to the workspace: an account of another
// workspace reads as absent.
func (s *AccountService) Get(ctx context.Context, workspaceID, accountID string) (models.Account, error) {
	a, err := s.acc.GetByID(ctx, accountID)
	if err != nil {
		return models.Account{}, err
	}
	if a.WorkspaceID != workspaceID {
		return models.Account{}, repo.ErrNotFound
	}
	return a, nil
}

func (s *AccountService) Rename(ctx context.Context, workspaceID, accountID, name string) (models.Account, error) {
	if _, err := s.Get(ctx, workspaceID, accountID); err != nil {
		return models.Account{}, err
	}
	if err := s.acc.Rename(ctx, accountID, name); err != nil {
		return models.Account{}, err
	}
	return s.acc.GetByID(ctx, accountID)
}

// Archive hides the account from day-to-day use. Its transactions and
// history stay readable.
func (s *AccountService) Archive(ctx context.Context, workspaceID, accountID string) error {
	a, err := s.Get(ctx, workspaceID, accountID)
	if err != nil {
		return err
	}
	if a.Archived() {
		return ErrAccountArchived
	}
	return s.acc.Archive(ctx, accountID)
}
