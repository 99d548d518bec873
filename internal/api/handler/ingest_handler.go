package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/statement-ledger/internal/api/service"
	"github.com/statement-ledger/internal/domain/batch"
	"github.com/statement-ledger/internal/domain/report"
	"github.com/statement-ledger/internal/domain/transaction"
	"github.com/statement-ledger/internal/ingest"
)

// IngestHandler handles statement uploads and ingestion report lookups
type IngestHandler struct {
	ingestionService service.IngestionService
	maxUploadBytes   int64
	logger           *slog.Logger
}

// NewIngestHandler creates a new ingest handler
func NewIngestHandler(logger *slog.Logger, ingestionService service.IngestionService, maxUploadBytes int64) *IngestHandler {
	return &IngestHandler{
		ingestionService: ingestionService,
		maxUploadBytes:   maxUploadBytes,
		logger:           logger,
	}
}

// Upload ingests a multipart CSV upload as one atomic batch
func (h *IngestHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		RespondBadRequest(c, "Missing 'file' field in multipart form")
		return
	}

	if h.maxUploadBytes > 0 && fileHeader.Size > h.maxUploadBytes {
		RespondPayloadTooLarge(c, "Uploaded file exceeds the size limit")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("Failed to open uploaded file", "filename", fileHeader.Filename, "error", err)
		RespondInternalError(c)
		return
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		h.logger.Error("Failed to read uploaded file", "filename", fileHeader.Filename, "error", err)
		RespondInternalError(c)
		return
	}

	rep, err := h.ingestionService.IngestFile(c.Request.Context(), fileHeader.Filename, content)
	if err != nil {
		h.respondIngestError(c, err)
		return
	}

	response := mapReportToResponse(rep)
	if rep.RowsParsed == 0 {
		RespondWithWarning(c, http.StatusCreated, response, "File parsed but contained no data rows")
		return
	}
	RespondCreated(c, response)
}

// GetReport returns the archived ingestion report for a batch
func (h *IngestHandler) GetReport(c *gin.Context) {
	idParam := c.Param("id")
	batchID, err := uuid.Parse(idParam)
	if err != nil {
		RespondBadRequest(c, "Invalid batch ID")
		return
	}

	rep, err := h.ingestionService.GetReport(c.Request.Context(), batchID)
	if err != nil {
		var notFound report.ErrReportNotFound
		if errors.As(err, &notFound) {
			RespondNotFound(c, "Ingestion report not found")
			return
		}
		h.logger.Error("Failed to get ingestion report", "batch_id", idParam, "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapReportToResponse(rep))
}

// respondIngestError maps the ingestion error taxonomy onto HTTP statuses
func (h *IngestHandler) respondIngestError(c *gin.Context, err error) {
	var (
		tooLarge  ingest.PayloadTooLargeError
		malformed ingest.MalformedInputError
		duplicate batch.ErrDuplicateBatch
		strict    ingest.StrictModeError
		insert    transaction.ErrInsertFailed
	)

	switch {
	case errors.As(err, &tooLarge):
		RespondPayloadTooLarge(c, tooLarge.Error())
	case errors.As(err, &malformed):
		RespondWithError(c, http.StatusBadRequest, "MALFORMED_INPUT", malformed.Error())
	case errors.As(err, &duplicate):
		RespondConflict(c, "DUPLICATE_BATCH", duplicate.Error())
	case errors.As(err, &strict):
		RespondUnprocessable(c, "ROWS_REJECTED", strict.Error())
	case errors.As(err, &insert):
		h.logger.Error("Batch insert failed", "error", err)
		RespondWithError(c, http.StatusInternalServerError, "INSERT_FAILED", "The batch could not be persisted and was rolled back")
	default:
		h.logger.Error("Ingestion failed", "error", err)
		RespondInternalError(c)
	}
}
