package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/statement-ledger/internal/domain/batch"
	"github.com/statement-ledger/internal/domain/transaction"
	"github.com/statement-ledger/internal/platform/persistence"
)

// TransactionServiceImpl implements the TransactionService interface
type TransactionServiceImpl struct {
	txRunner  persistence.TxRunner
	txRepo    transaction.Repository
	batchRepo batch.Repository
	logger    *slog.Logger
}

// NewTransactionService creates a new transaction service
func NewTransactionService(logger *slog.Logger, txRunner persistence.TxRunner, txRepo transaction.Repository, batchRepo batch.Repository) TransactionService {
	return &TransactionServiceImpl{
		txRunner:  txRunner,
		txRepo:    txRepo,
		batchRepo: batchRepo,
		logger:    logger,
	}
}

// List returns transactions matching the filter in deterministic order
func (s *TransactionServiceImpl) List(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	return s.txRepo.List(ctx, filter)
}

// PatchCategory validates and applies a manual category edit
func (s *TransactionServiceImpl) PatchCategory(ctx context.Context, id uuid.UUID, category string) (*transaction.Transaction, error) {
	if err := transaction.ValidateCategory(category); err != nil {
		return nil, err
	}

	t, err := s.txRepo.PatchCategory(ctx, id, category)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Transaction category patched", "id", id.String(), "category", category)
	return t, nil
}

// ClearAll removes every transaction and batch record in one transaction,
// so a cleared file can be uploaded again immediately.
func (s *TransactionServiceImpl) ClearAll(ctx context.Context) (int64, error) {
	var deleted int64

	err := s.txRunner.ExecuteTx(ctx, func(tx pgx.Tx) error {
		n, err := s.txRepo.WithTx(tx).ClearAll(ctx)
		if err != nil {
			return err
		}
		deleted = n
		return s.batchRepo.WithTx(tx).DeleteAll(ctx)
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("Cleared all transactions", "deleted", deleted)
	return deleted, nil
}
