package report

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the ingestion report archive
type Repository interface {
	// Save archives a report. Saving the same batch twice overwrites.
	Save(ctx context.Context, r *IngestionReport) error

	// GetByBatchID retrieves an archived report.
	// Returns ErrReportNotFound if the batch has no report.
	GetByBatchID(ctx context.Context, batchID uuid.UUID) (*IngestionReport, error)
}
