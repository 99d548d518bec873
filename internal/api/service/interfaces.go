package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/statement-ledger/internal/analytics"
	"github.com/statement-ledger/internal/categorize"
	"github.com/statement-ledger/internal/domain/report"
	"github.com/statement-ledger/internal/domain/transaction"
)

// IngestionService runs the upload pipeline and serves archived reports
type IngestionService interface {
	// IngestFile processes one uploaded CSV and returns its report.
	// Returns batch.ErrDuplicateBatch for byte-identical re-uploads and
	// the ingest error taxonomy for unusable files.
	IngestFile(ctx context.Context, filename string, content []byte) (*report.IngestionReport, error)

	// GetReport retrieves the archived report for a batch.
	// Returns report.ErrReportNotFound when unknown.
	GetReport(ctx context.Context, batchID uuid.UUID) (*report.IngestionReport, error)
}

// TransactionService defines the read/patch/clear operations over stored
// transactions
type TransactionService interface {
	// List returns transactions ordered by date then id, optionally
	// filtered to one month.
	List(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error)

	// PatchCategory sets a transaction's category by hand and marks it
	// user-set. Returns transaction.ErrTransactionNotFound or
	// transaction.ErrEmptyCategory.
	PatchCategory(ctx context.Context, id uuid.UUID, category string) (*transaction.Transaction, error)

	// ClearAll deletes every transaction (and its batch provenance) and
	// reports how many were removed. Idempotent.
	ClearAll(ctx context.Context) (int64, error)
}

// AnalyticsService computes aggregates over the store's current state
type AnalyticsService interface {
	// SpendByCategory sums debit magnitudes per category, optionally for
	// one month.
	SpendByCategory(ctx context.Context, month *transaction.Month) ([]analytics.CategorySpend, error)

	// MonthlyCategoryTotals buckets all transactions by month and
	// category, months ascending.
	MonthlyCategoryTotals(ctx context.Context) ([]analytics.MonthRow, error)
}

// MaintenanceService exposes the admin operations
type MaintenanceService interface {
	// Recategorize re-runs the rule engine over all stored transactions,
	// skipping user-set categories.
	Recategorize(ctx context.Context) (categorize.Result, error)

	// ReloadRules re-reads the configured rule file and swaps it in.
	// On error the previous rule set stays active.
	ReloadRules(ctx context.Context) (int, error)
}
