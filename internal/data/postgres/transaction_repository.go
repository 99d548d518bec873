// Package postgres provides PostgreSQL implementations of the domain
// repositories. All write paths are designed to run inside a pgx transaction
// supplied by the caller so uploads and clears stay atomic.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/statement-ledger/internal/domain/transaction"
	"github.com/statement-ledger/internal/platform/persistence"
)

// TransactionRepository implements transaction.Repository for PostgreSQL
type TransactionRepository struct {
	querier persistence.Querier // *pgxpool.Pool or pgx.Tx
	logger  *slog.Logger
}

// NewTransactionRepository creates a new PostgreSQL transaction repository
func NewTransactionRepository(logger *slog.Logger, db *persistence.PostgresDB) transaction.Repository {
	return &TransactionRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx returns a repository bound to the given transaction so multiple
// repository calls commit or roll back together.
func (r *TransactionRepository) WithTx(tx pgx.Tx) transaction.Repository {
	return &TransactionRepository{
		querier: tx,
		logger:  r.logger,
	}
}

const insertTransactionQuery = `
		INSERT INTO transactions (id, date, merchant, description, amount, type, category, category_is_user_set, batch_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

// InsertBatch persists all records through the bound querier. Callers are
// expected to invoke this on a WithTx repository; a failure on any row
// surfaces immediately so the enclosing transaction rolls back whole.
func (r *TransactionRepository) InsertBatch(ctx context.Context, txs []*transaction.Transaction) error {
	for _, t := range txs {
		_, err := r.querier.Exec(ctx, insertTransactionQuery,
			t.ID,
			t.Date,
			t.Merchant,
			t.Description,
			t.Amount,
			string(t.Type),
			t.Category,
			t.CategoryIsUserSet,
			t.BatchID,
			t.CreatedAt,
		)
		if err != nil {
			r.logger.Error("Failed to insert transaction", "id", t.ID.String(), "batch_id", t.BatchID.String(), "error", err)
			return fmt.Errorf("failed to insert transaction %s: %w", t.ID, err)
		}
	}
	return nil
}

const selectTransactionColumns = `id, date, merchant, description, amount, type, category, category_is_user_set, batch_id, created_at`

// List returns transactions ordered by date ascending, ties broken by id
// ascending, optionally restricted to one calendar month.
func (r *TransactionRepository) List(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	query := `
		SELECT ` + selectTransactionColumns + `
		FROM transactions
		ORDER BY date ASC, id ASC
	`
	args := []interface{}{}

	if filter.Month != nil {
		start, end := filter.Month.Bounds()
		query = `
		SELECT ` + selectTransactionColumns + `
		FROM transactions
		WHERE date >= $1 AND date < $2
		ORDER BY date ASC, id ASC
	`
		args = append(args, start, end)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list transactions", "error", err)
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// PatchCategory sets the category and marks it user-set, returning the
// updated record.
func (r *TransactionRepository) PatchCategory(ctx context.Context, id uuid.UUID, category string) (*transaction.Transaction, error) {
	query := `
		UPDATE transactions
		SET category = $1, category_is_user_set = TRUE
		WHERE id = $2
		RETURNING ` + selectTransactionColumns + `
	`

	t, err := scanTransaction(r.querier.QueryRow(ctx, query, category, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, transaction.ErrTransactionNotFound{ID: id}
		}
		r.logger.Error("Failed to patch transaction category", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to patch transaction category: %w", err)
	}

	return t, nil
}

// UpdateAutoCategory rewrites a machine-assigned category. The guard on
// category_is_user_set keeps user edits durable across recategorization runs.
func (r *TransactionRepository) UpdateAutoCategory(ctx context.Context, id uuid.UUID, category string) (bool, error) {
	query := `
		UPDATE transactions
		SET category = $1
		WHERE id = $2 AND category_is_user_set = FALSE
	`

	result, err := r.querier.Exec(ctx, query, category, id)
	if err != nil {
		r.logger.Error("Failed to update auto category", "id", id.String(), "error", err)
		return false, fmt.Errorf("failed to update auto category: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// ClearAll deletes every transaction and reports how many were removed
func (r *TransactionRepository) ClearAll(ctx context.Context) (int64, error) {
	result, err := r.querier.Exec(ctx, `DELETE FROM transactions`)
	if err != nil {
		r.logger.Error("Failed to clear transactions", "error", err)
		return 0, fmt.Errorf("failed to clear transactions: %w", err)
	}

	return result.RowsAffected(), nil
}

func scanTransaction(row pgx.Row) (*transaction.Transaction, error) {
	var t transaction.Transaction
	var typ string
	err := row.Scan(
		&t.ID,
		&t.Date,
		&t.Merchant,
		&t.Description,
		&t.Amount,
		&typ,
		&t.Category,
		&t.CategoryIsUserSet,
		&t.BatchID,
		&t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.Type = transaction.Type(typ)
	return &t, nil
}

func scanTransactions(rows pgx.Rows) ([]*transaction.Transaction, error) {
	txs := []*transaction.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txs = append(txs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transaction rows: %w", err)
	}
	return txs, nil
}
