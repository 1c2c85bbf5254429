package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/oleksii-sytar/personal-finance-sub002/internal/events"
	"github.com/oleksii-sytar/personal-finance-sub002/internal/metrics"
	"github.com/oleksii-sytar/personal-finance-sub002/internal/models"
	repo "github.com/oleksii-sytar/personal-finance-sub002/internal/repository"
	"github.com/oleksii-sytar/personal-finance-sub002/internal/worker"
)

type TransactionService struct {
	txs  repo.Transactions
	acc  repo.Accounts
	cats repo.Categories
	wp   *worker.Pool
	pub  events.Publisher
}

func NewTransactionService(txs repo.Transactions, acc repo.Accounts, cats repo.Categories, wp *worker.Pool, pub events.Publisher) *TransactionService {
	return &TransactionService{txs: txs, acc: acc, cats: cats, wp: wp, pub: pub}
}

// TransactionInput is a direct entry: income into or expense out of one
// account. Transfer legs are never created through it.
type TransactionInput struct {
	AccountID  string
	Type       models.TransactionType
	Amount     decimal.Decimal
	OccurredAt time.Time
	CategoryID *string
	Note       string
}

func (s *TransactionService) Create(ctx context.Context, workspaceID string, in TransactionInput) (models.Transaction, error) {
	if !in.Type.Entry() {
		return models.Transaction{}, fmt.Errorf("%w: type must be income or expense", ErrInvalid)
	}
	if !in.Amount.IsPositive() {
		return models.Transaction{}, fmt.Errorf("%w: amount must be positive", ErrInvalid)
	}
	account, err := s.liveAccount(ctx, workspaceID, in.AccountID)
	if err != nil {
		return models.Transaction{}, err
	}
	if err := s.checkCategory(ctx, workspaceID, in.CategoryID); err != nil {
		return models.Transaction{}, err
	}
	if in.OccurredAt.IsZero() {
		in.OccurredAt = time.Now().UTC()
	}

	tx, err := s.txs.Create(ctx, models.Transaction{
		WorkspaceID: workspaceID,
		AccountID:   in.AccountID,
		Type:        in.Type,
		Amount:      in.Amount,
		Currency:    account.Currency,
		OccurredAt:  in.OccurredAt,
		CategoryID:  in.CategoryID,
		Note:        in.Note,
	})
	if err != nil {
		return models.Transaction{}, err
	}
	metrics.TransactionsTotal.WithLabelValues(string(tx.Type)).Inc()
	s.announce(tx)
	return tx, nil
}

func (s *TransactionService) Get(ctx context.Context, workspaceID, id string) (models.Transaction, error) {
	tx, err := s.txs.GetByID(ctx, id)
	if err != nil {
		return models.Transaction{}, err
	}
	if tx.WorkspaceID != workspaceID {
		return models.Transaction{}, repo.ErrNotFound
	}
	return tx, nil
}

func (s *TransactionService) List(ctx context.Context, f models.TransactionFilter) ([]models.Transaction, error) {
	return s.txs.List(ctx, f)
}

// TransactionUpdate carries the editable fields. On a transfer leg only
// the note and category may change; amount, type and date stay locked
// to the twin's.
type TransactionUpdate struct {
	Type       models.TransactionType
	Amount     decimal.Decimal
	OccurredAt time.Time
	CategoryID *string
	Note       string
}

func (s *TransactionService) Update(ctx context.Context, workspaceID, id string, in TransactionUpdate) (models.Transaction, error) {
	cur, err := s.Get(ctx, workspaceID, id)
	if err != nil {
		return models.Transaction{}, err
	}
	if err := s.checkCategory(ctx, workspaceID, in.CategoryID); err != nil {
		return models.Transaction{}, err
	}

	if cur.TransferLeg() {
		if in.Type != cur.Type || !in.Amount.Equal(cur.Amount) || !in.OccurredAt.Equal(cur.OccurredAt) {
			return models.Transaction{}, ErrTransferLeg
		}
	} else {
		if !in.Type.Entry() {
			return models.Transaction{}, fmt.Errorf("%w: type must be income or expense", ErrInvalid)
		}
		if !in.Amount.IsPositive() {
			return models.Transaction{}, fmt.Errorf("%w: amount must be positive", ErrInvalid)
		}
		if in.OccurredAt.IsZero() {
			in.OccurredAt = cur.OccurredAt
		}
	}

	cur.Type = in.Type
	cur.Amount = in.Amount
	cur.OccurredAt = in.OccurredAt
	cur.CategoryID = in.CategoryID
	cur.Note = in.Note
	return s.txs.Update(ctx, cur)
}

// Delete soft deletes the transaction. Deleting one leg of a transfer
// removes both, keeping the two accounts consistent.
func (s *TransactionService) Delete(ctx context.Context, workspaceID, id string) error {
	if _, err := s.Get(ctx, workspaceID, id); err != nil {
		return err
	}
	return s.txs.SoftDelete(ctx, id)
}

// TransferInput moves money between two accounts of the workspace.
type TransferInput struct {
	FromAccountID string
	ToAccountID   string
	Amount        decimal.Decimal
	OccurredAt    time.Time
	Note          string
}

// Transfer writes two linked legs: transfer_out on the source account
// and transfer_in on the destination, sharing one transfer id. Both
// legs land or neither does.
func (s *TransactionService) Transfer(ctx context.Context, workspaceID string, in TransferInput) (models.Transaction, models.Transaction, error) {
	if in.FromAccountID == in.ToAccountID {
		return models.Transaction{}, models.Transaction{}, ErrSameAccount
	}
	if !in.Amount.IsPositive() {
		return models.Transaction{}, models.Transaction{}, fmt.Errorf("%w: amount must be positive", ErrInvalid)
	}
	from, err := s.liveAccount(ctx, workspaceID, in.FromAccountID)
	if err != nil {
		return models.Transaction{}, models.Transaction{}, err
	}
	to, err := s.liveAccount(ctx, workspaceID, in.ToAccountID)
	if err != nil {
		return models.Transaction{}, models.Transaction{}, err
	}
	if from.Currency != to.Currency {
		return models.Transaction{}, models.Transaction{}, ErrCurrencyMismatch
	}
	if in.OccurredAt.IsZero() {
		in.OccurredAt = time.Now().UTC()
	}

	transferID := uuid.NewString()
	leg := func(accountID string, typ models.TransactionType) models.Transaction {
		return models.Transaction{
			WorkspaceID: workspaceID,
			AccountID:   accountID,
			Type:        typ,
			Amount:      in.Amount,
			Currency:    from.Currency,
			OccurredAt:  in.OccurredAt,
			Note:        in.Note,
			TransferID:  &transferID,
		}
	}
	outLeg, inLeg, err := s.txs.CreatePair(ctx,
		leg(in.FromAccountID, models.TxnTransferOut),
		leg(in.ToAccountID, models.TxnTransferIn),
	)
	if err != nil {
		return models.Transaction{}, models.Transaction{}, err
	}
	metrics.TransactionsTotal.WithLabelValues(string(models.TxnTransferOut)).Inc()
	metrics.TransactionsTotal.WithLabelValues(string(models.TxnTransferIn)).Inc()
	s.announce(outLeg)
	s.announce(inLeg)
	return outLeg, inLeg, nil
}

// liveAccount resolves an account of the workspace that can still take
// transactions.
func (s *TransactionService) liveAccount(ctx context.Context, workspaceID, accountID string) (models.Account, error) {
	a, err := s.acc.GetByID(ctx, accountID)
	if err != nil {
		return models.Account{}, err
	}
	if a.WorkspaceID != workspaceID {
		return models.Account{}, repo.ErrNotFound
	}
	if a.Archived() {
		return models.Account{}, ErrAccountArchived
	}
	return a, nil
}

func (s *TransactionService) checkCategory(ctx context.Context, workspaceID string, categoryID *string) error {
	if categoryID == nil {
		return nil
	}
	c, err := s.cats.GetByID(ctx, *categoryID)
	if err != nil || c.WorkspaceID != workspaceID {
		return fmt.Errorf("%w: unknown category", ErrInvalid)
	}
	return nil
}

func (s *TransactionService) announce(tx models.Transaction) {
	s.wp.Submit(func() {
		ev := events.TransactionCreated{
			Kind:        "transaction.created",
			TxID:        tx.ID,
			WorkspaceID: tx.WorkspaceID,
			AccountID:   tx.AccountID,
			Type:        string(tx.Type),
			Amount:      tx.Amount,
			Currency:    tx.Currency,
			OccurredAt:  tx.OccurredAt,
		}
		if err := s.pub.Publish(context.Background(), tx.AccountID, ev); err != nil {
			slog.Warn("event publish failed", "kind", ev.Kind, "error", err)
		}
	})
}
