package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/statement-ledger/internal/domain/batch"
	"github.com/statement-ledger/internal/platform/persistence"
)

// BatchRepository implements batch.Repository for PostgreSQL
type BatchRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewBatchRepository creates a new PostgreSQL batch repository
func NewBatchRepository(logger *slog.Logger, db *persistence.PostgresDB) batch.Repository {
	return &BatchRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx returns a repository bound to the given transaction
func (r *BatchRepository) WithTx(tx pgx.Tx) batch.Repository {
	return &BatchRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Create stores a new batch record. The unique index on content_hash turns
// duplicate re-uploads into a constraint error.
func (r *BatchRepository) Create(ctx context.Context, b *batch.Batch) error {
	query := `
		INSERT INTO batches (id, filename, content_hash, uploaded_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.querier.Exec(ctx, query, b.ID, b.Filename, b.ContentHash, b.UploadedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// Concurrent upload of the same file won the insert race
			return batch.ErrDuplicateBatch{Filename: b.Filename}
		}
		r.logger.Error("Failed to create batch", "id", b.ID.String(), "filename", b.Filename, "error", err)
		return fmt.Errorf("failed to create batch: %w", err)
	}

	return nil
}

// GetByContentHash returns the batch with the given hash, or nil when the
// file has never been ingested.
func (r *BatchRepository) GetByContentHash(ctx context.Context, hash string) (*batch.Batch, error) {
	query := `
		SELECT id, filename, content_hash, uploaded_at
		FROM batches
		WHERE content_hash = $1
	`

	var b batch.Batch
	err := r.querier.QueryRow(ctx, query, hash).Scan(&b.ID, &b.Filename, &b.ContentHash, &b.UploadedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get batch by content hash", "error", err)
		return nil, fmt.Errorf("failed to get batch by content hash: %w", err)
	}

	return &b, nil
}

// DeleteAll removes every batch record
func (r *BatchRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.querier.Exec(ctx, `DELETE FROM batches`); err != nil {
		r.logger.Error("Failed to delete batches", "error", err)
		return fmt.Errorf("failed to delete batches: %w", err)
	}
	return nil
}
