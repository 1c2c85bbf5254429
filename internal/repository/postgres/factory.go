package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	repo "github.com/oleksii-sytar/personal-finance-sub002/internal/repository"
)

func NewRepositories(pool *pgxpool.Pool) repo.Repositories {
	return repo.Repositories{
		Users:          &usersRepo{pool},
		Workspaces:     &workspacesRepo{pool},
		Invitations:    &invitationsRepo{pool},
		Accounts:       &accountsRepo{pool},
		Categories:     &categoriesRepo{pool},
		Transactions:   &transactionsRepo{pool},
		Recurrings:     &recurringsRepo{pool},
		BalanceUpdates: &balanceUpdatesRepo{pool},
	}
}

// mapErr translates driver errors into the repository's sentinel errors.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return repo.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return repo.ErrConflict
	}
	return err
}
