package service

import (
	"context"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/statement-ledger/internal/domain/batch"
	"github.com/statement-ledger/internal/domain/transaction"
	"github.com/stretchr/testify/mock"
)

// Mock implementations of the repository dependencies

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) InsertBatch(ctx context.Context, txs []*transaction.Transaction) error {
	args := m.Called(ctx, txs)
	return args.Error(0)
}

func (m *MockTransactionRepository) List(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*transaction.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) PatchCategory(ctx context.Context, id uuid.UUID, category string) (*transaction.Transaction, error) {
	args := m.Called(ctx, id, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transaction.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) UpdateAutoCategory(ctx context.Context, id uuid.UUID, category string) (bool, error) {
	args := m.Called(ctx, id, category)
	return args.Bool(0), args.Error(1)
}

func (m *MockTransactionRepository) ClearAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransactionRepository) WithTx(tx pgx.Tx) transaction.Repository {
	return m
}

type MockBatchRepository struct {
	mock.Mock
}

func (m *MockBatchRepository) Create(ctx context.Context, b *batch.Batch) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBatchRepository) GetByContentHash(ctx context.Context, hash string) (*batch.Batch, error) {
	args := m.Called(ctx, hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*batch.Batch), args.Error(1)
}

func (m *MockBatchRepository) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockBatchRepository) WithTx(tx pgx.Tx) batch.Repository {
	return m
}

// fakeTxRunner runs the transactional function directly against the mocks
type fakeTxRunner struct {
	err error
}

func (f *fakeTxRunner) ExecuteTx(ctx context.Context, fn func(pgx.Tx) error) error {
	if f.err != nil {
		return f.err
	}
	return fn(nil)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}
