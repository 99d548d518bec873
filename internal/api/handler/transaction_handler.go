package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/statement-ledger/internal/api/service"
	"github.com/statement-ledger/internal/domain/transaction"
)

// TransactionHandler handles transaction listing and mutation requests
type TransactionHandler struct {
	transactionService service.TransactionService
	logger             *slog.Logger
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(logger *slog.Logger, transactionService service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		logger:             logger,
	}
}

// List returns transactions, optionally restricted to one calendar month
func (h *TransactionHandler) List(c *gin.Context) {
	var filter transaction.ListFilter
	if monthParam := c.Query("month"); monthParam != "" {
		month, err := transaction.ParseMonth(monthParam)
		if err != nil {
			RespondBadRequest(c, "Invalid 'month' parameter, expected YYYY-MM")
			return
		}
		filter.Month = &month
	}

	txs, err := h.transactionService.List(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("Failed to list transactions", "error", err)
		RespondInternalError(c)
		return
	}

	responses := make([]TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		responses = append(responses, mapTransactionToResponse(tx))
	}
	RespondOK(c, responses)
}

// PatchCategory sets a user-chosen category on one transaction
func (h *TransactionHandler) PatchCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBadRequest(c, "Invalid transaction ID")
		return
	}

	var req PatchCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	tx, err := h.transactionService.PatchCategory(c.Request.Context(), id, req.Category)
	if err != nil {
		var notFound transaction.ErrTransactionNotFound
		switch {
		case errors.Is(err, transaction.ErrEmptyCategory):
			RespondWithError(c, http.StatusBadRequest, "INVALID_ARGUMENT", "Category must not be empty")
		case errors.As(err, &notFound):
			RespondNotFound(c, "Transaction not found")
		default:
			h.logger.Error("Failed to patch category", "transaction_id", id, "error", err)
			RespondInternalError(c)
		}
		return
	}

	RespondOK(c, mapTransactionToResponse(tx))
}

// Clear deletes every transaction and batch
func (h *TransactionHandler) Clear(c *gin.Context) {
	deleted, err := h.transactionService.ClearAll(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to clear transactions", "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, ClearResponse{Deleted: deleted})
}
