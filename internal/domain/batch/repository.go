package batch

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// Repository defines batch persistence operations
type Repository interface {
	// Create stores a new batch record
	Create(ctx context.Context, b *Batch) error

	// GetByContentHash returns the batch with the given content hash,
	// or nil when no such batch exists.
	GetByContentHash(ctx context.Context, hash string) (*Batch, error)

	// DeleteAll removes every batch record. Run together with clearing
	// transactions so a cleared file can be uploaded again.
	DeleteAll(ctx context.Context) error

	WithTx(tx pgx.Tx) Repository
}
