// Package mongo provides the MongoDB implementation of the ingestion report
// archive. Reports are documents rather than rows: each carries a variable
// number of per-row rejection reasons, which suits a document store.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/statement-ledger/internal/domain/report"
)

const (
	// ReportCollectionName is the name of the ingestion report collection
	ReportCollectionName = "ingestion_reports"
)

// ReportRepository implements report.Repository for MongoDB
type ReportRepository struct {
	db     *mongo.Database
	logger *slog.Logger
}

// NewReportRepository creates a new MongoDB ingestion report repository
func NewReportRepository(logger *slog.Logger, db *mongo.Database) report.Repository {
	return &ReportRepository{
		db:     db,
		logger: logger,
	}
}

// Save archives an ingestion report, replacing any previous report for the
// same batch.
func (r *ReportRepository) Save(ctx context.Context, rep *report.IngestionReport) error {
	collection := r.db.Collection(ReportCollectionName)

	filter := bson.M{"batch_id": rep.BatchID}
	opts := options.Replace().SetUpsert(true)

	_, err := collection.ReplaceOne(ctx, filter, rep, opts)
	if err != nil {
		r.logger.Error("Failed to save ingestion report",
			"batch_id", rep.BatchID.String(),
			"error", err)
		return fmt.Errorf("failed to save ingestion report: %w", err)
	}

	return nil
}

// GetByBatchID retrieves an archived ingestion report.
// Returns ErrReportNotFound if the batch has no report.
func (r *ReportRepository) GetByBatchID(ctx context.Context, batchID uuid.UUID) (*report.IngestionReport, error) {
	collection := r.db.Collection(ReportCollectionName)

	filter := bson.M{"batch_id": batchID}
	var rep report.IngestionReport
	err := collection.FindOne(ctx, filter).Decode(&rep)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, report.ErrReportNotFound{BatchID: batchID}
		}
		r.logger.Error("Failed to get ingestion report",
			"batch_id", batchID.String(),
			"error", err)
		return nil, fmt.Errorf("failed to get ingestion report: %w", err)
	}

	return &rep, nil
}
