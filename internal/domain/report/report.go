// Package report models the outcome of one CSV ingestion: how many rows
// parsed, how many were persisted, and why each rejected row was refused.
// Reports are archived so an upload's row-level diagnostics survive past the
// HTTP response that first carried them.
package report

import (
	"time"

	"github.com/google/uuid"
)

// RowError records why a single source row was rejected during ingestion.
type RowError struct {
	Line   int    `json:"line" bson:"line"` // 1-based line number in the source file
	Reason string `json:"reason" bson:"reason"`
}

// IngestionReport summarizes one processed upload.
type IngestionReport struct {
	BatchID      uuid.UUID  `json:"batch_id" bson:"batch_id"`
	Filename     string     `json:"filename" bson:"filename"`
	RowsParsed   int        `json:"rows_parsed" bson:"rows_parsed"`
	RowsInserted int        `json:"rows_inserted" bson:"rows_inserted"`
	RowsRejected int        `json:"rows_rejected" bson:"rows_rejected"`
	RowErrors    []RowError `json:"row_errors,omitempty" bson:"row_errors,omitempty"`
	CreatedAt    time.Time  `json:"created_at" bson:"created_at"`
}

// ErrReportNotFound indicates no archived report for the batch
type ErrReportNotFound struct {
	BatchID uuid.UUID
}

func (e ErrReportNotFound) Error() string {
	return "ingestion report not found for batch: " + e.BatchID.String()
}
