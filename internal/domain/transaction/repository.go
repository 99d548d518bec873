package transaction

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Repository defines transaction persistence operations.
//
// InsertBatch is all-or-nothing: implementations either persist every record
// or none, and no reader ever observes a partial batch.
type Repository interface {
	// InsertBatch atomically persists all records.
	// Returns ErrInsertFailed (wrapped) when the batch is rolled back.
	InsertBatch(ctx context.Context, txs []*Transaction) error

	// List returns transactions matching the filter, ordered by date
	// ascending with ties broken by id ascending.
	List(ctx context.Context, filter ListFilter) ([]*Transaction, error)

	// PatchCategory sets category and marks it user-set.
	// Returns ErrTransactionNotFound if no such transaction exists.
	PatchCategory(ctx context.Context, id uuid.UUID, category string) (*Transaction, error)

	// UpdateAutoCategory rewrites a machine-assigned category. Rows where
	// the user has set the category are left untouched; returns true when
	// a row was actually updated.
	UpdateAutoCategory(ctx context.Context, id uuid.UUID, category string) (bool, error)

	// ClearAll deletes every transaction and returns the number deleted.
	// Clearing an empty store succeeds with zero.
	ClearAll(ctx context.Context) (int64, error)

	WithTx(tx pgx.Tx) Repository
}

// ErrTransactionNotFound indicates a missing transaction
type ErrTransactionNotFound struct {
	ID uuid.UUID
}

func (e ErrTransactionNotFound) Error() string {
	return "transaction not found: " + e.ID.String()
}

// ErrInsertFailed indicates the whole batch was rolled back
type ErrInsertFailed struct {
	BatchID uuid.UUID
}

func (e ErrInsertFailed) Error() string {
	return "batch insert failed and was rolled back: " + e.BatchID.String()
}
