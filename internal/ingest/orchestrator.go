package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/statement-ledger/internal/categorize"
	"github.com/statement-ledger/internal/config"
	"github.com/statement-ledger/internal/domain/batch"
	"github.com/statement-ledger/internal/domain/report"
	"github.com/statement-ledger/internal/domain/transaction"
	"github.com/statement-ledger/internal/platform/messaging/producers"
	"github.com/statement-ledger/internal/platform/persistence"
)

// Orchestrator composes the ingestion pipeline: parse, normalize and
// categorize every row, then insert the whole file as one atomic batch.
// It is the only writer that creates transactions.
type Orchestrator struct {
	logger     *slog.Logger
	txRunner   persistence.TxRunner
	txRepo     transaction.Repository
	batchRepo  batch.Repository
	reportRepo report.Repository
	publisher  producers.MessagePublisher
	engine     *categorize.Engine
	cfg        config.IngestConfig
}

// NewOrchestrator wires the ingestion pipeline.
func NewOrchestrator(
	logger *slog.Logger,
	txRunner persistence.TxRunner,
	txRepo transaction.Repository,
	batchRepo batch.Repository,
	reportRepo report.Repository,
	publisher producers.MessagePublisher,
	engine *categorize.Engine,
	cfg config.IngestConfig,
) *Orchestrator {
	return &Orchestrator{
		logger:     logger,
		txRunner:   txRunner,
		txRepo:     txRepo,
		batchRepo:  batchRepo,
		reportRepo: reportRepo,
		publisher:  publisher,
		engine:     engine,
		cfg:        cfg,
	}
}

// IngestFile runs the full pipeline for one uploaded file. Row-level
// normalization failures are collected and reported, not fatal (unless
// strict mode is configured); file-level failures abort the upload with no
// transaction data left visible. Re-uploading a byte-identical file returns
// batch.ErrDuplicateBatch.
func (o *Orchestrator) IngestFile(ctx context.Context, filename string, content []byte) (*report.IngestionReport, error) {
	parsed, err := ParseStatement(content, Limits{MaxBytes: o.cfg.MaxUploadBytes, MaxRows: o.cfg.MaxRows})
	if err != nil {
		return nil, err
	}

	b := batch.New(filename, content)

	existing, err := o.batchRepo.GetByContentHash(ctx, b.ContentHash)
	if err != nil {
		return nil, fmt.Errorf("failed to check for duplicate upload: %w", err)
	}
	if existing != nil {
		return nil, batch.ErrDuplicateBatch{ExistingID: existing.ID, Filename: filename}
	}

	txs := make([]*transaction.Transaction, 0, len(parsed.Rows))
	var rowErrors []report.RowError

	for _, row := range parsed.Rows {
		candidate, err := NormalizeRow(row)
		if err != nil {
			rowErrors = append(rowErrors, report.RowError{Line: row.Line, Reason: err.Error()})
			continue
		}

		category := o.engine.Categorize(candidate)
		txs = append(txs, transaction.NewFromCandidate(candidate, category, b.ID))
	}

	if o.cfg.Strict && len(rowErrors) > 0 {
		return nil, StrictModeError{RowErrors: rowErrors}
	}

	err = o.txRunner.ExecuteTx(ctx, func(tx pgx.Tx) error {
		if err := o.batchRepo.WithTx(tx).Create(ctx, b); err != nil {
			return err
		}
		return o.txRepo.WithTx(tx).InsertBatch(ctx, txs)
	})
	if err != nil {
		var dup batch.ErrDuplicateBatch
		if errors.As(err, &dup) {
			// Lost an insert race against a concurrent identical upload
			if winner, lookupErr := o.batchRepo.GetByContentHash(ctx, b.ContentHash); lookupErr == nil && winner != nil {
				dup.ExistingID = winner.ID
			}
			return nil, dup
		}
		o.logger.Error("Batch insert rolled back", "batch_id", b.ID.String(), "error", err)
		return nil, fmt.Errorf("%w: %v", transaction.ErrInsertFailed{BatchID: b.ID}, err)
	}

	rep := &report.IngestionReport{
		BatchID:      b.ID,
		Filename:     filename,
		RowsParsed:   len(parsed.Rows),
		RowsInserted: len(txs),
		RowsRejected: len(rowErrors),
		RowErrors:    rowErrors,
		CreatedAt:    time.Now().UTC(),
	}

	o.archiveReport(ctx, rep)
	o.publishEvent(ctx, rep)

	o.logger.Info("Ingested statement file",
		"batch_id", b.ID.String(),
		"filename", filename,
		"rows_parsed", rep.RowsParsed,
		"rows_inserted", rep.RowsInserted,
		"rows_rejected", rep.RowsRejected,
	)

	return rep, nil
}

// GetReport retrieves an archived ingestion report by batch ID.
func (o *Orchestrator) GetReport(ctx context.Context, batchID uuid.UUID) (*report.IngestionReport, error) {
	return o.reportRepo.GetByBatchID(ctx, batchID)
}

// archiveReport stores the report for later retrieval. Archive failures are
// logged, never surfaced: the transactions are already committed.
func (o *Orchestrator) archiveReport(ctx context.Context, rep *report.IngestionReport) {
	if err := o.reportRepo.Save(ctx, rep); err != nil {
		o.logger.Warn("Failed to archive ingestion report", "batch_id", rep.BatchID.String(), "error", err)
	}
}

// publishEvent emits the batch-ingested event, best effort.
func (o *Orchestrator) publishEvent(ctx context.Context, rep *report.IngestionReport) {
	event := producers.BatchIngestedEvent{
		BatchID:      rep.BatchID,
		Filename:     rep.Filename,
		RowsParsed:   rep.RowsParsed,
		RowsInserted: rep.RowsInserted,
		RowsRejected: rep.RowsRejected,
		IngestedAt:   rep.CreatedAt,
	}
	if err := o.publisher.Publish(ctx, rep.BatchID.String(), event); err != nil {
		o.logger.Warn("Failed to publish ingestion event", "batch_id", rep.BatchID.String(), "error", err)
	}
}
