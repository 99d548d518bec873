package handler

import (
	"time"

	"github.com/statement-ledger/internal/domain/report"
	"github.com/statement-ledger/internal/domain/transaction"
)

// dateLayout is the wire format for transaction dates
const dateLayout = "2006-01-02"

// TransactionResponse represents a transaction in API responses
type TransactionResponse struct {
	ID                string  `json:"id"`
	Date              string  `json:"date"`
	Merchant          string  `json:"merchant"`
	Description       string  `json:"description"`
	Amount            float64 `json:"amount"`
	Type              string  `json:"type"`
	Category          string  `json:"category"`
	CategoryIsUserSet bool    `json:"category_is_user_set"`
	BatchID           string  `json:"source_batch_id"`
	CreatedAt         string  `json:"created_at"`
}

// PatchCategoryRequest represents a manual category edit
type PatchCategoryRequest struct {
	Category string `json:"category" binding:"required"`
}

// UploadResponse represents the outcome of a CSV upload
type UploadResponse struct {
	BatchID      string           `json:"batch_id"`
	Filename     string           `json:"filename"`
	RowsParsed   int              `json:"rows_parsed"`
	RowsInserted int              `json:"rows_inserted"`
	RowsRejected int              `json:"rows_rejected"`
	RowErrors    []RowErrorDetail `json:"row_errors,omitempty"`
}

// RowErrorDetail describes one rejected source row
type RowErrorDetail struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// CategorySpendResponse is one spend-by-category row
type CategorySpendResponse struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// ClearResponse reports the number of deleted transactions
type ClearResponse struct {
	Deleted int64 `json:"deleted"`
}

// ReloadRulesResponse reports the size of the freshly loaded rule set
type ReloadRulesResponse struct {
	RulesLoaded int `json:"rules_loaded"`
}

// mapTransactionToResponse maps a domain transaction to its response DTO
func mapTransactionToResponse(t *transaction.Transaction) TransactionResponse {
	amount, _ := t.Amount.Float64()
	return TransactionResponse{
		ID:                t.ID.String(),
		Date:              t.Date.Format(dateLayout),
		Merchant:          t.Merchant,
		Description:       t.Description,
		Amount:            amount,
		Type:              string(t.Type),
		Category:          t.Category,
		CategoryIsUserSet: t.CategoryIsUserSet,
		BatchID:           t.BatchID.String(),
		CreatedAt:         t.CreatedAt.Format(time.RFC3339),
	}
}

// mapReportToResponse maps an ingestion report to the upload response DTO
func mapReportToResponse(rep *report.IngestionReport) UploadResponse {
	resp := UploadResponse{
		BatchID:      rep.BatchID.String(),
		Filename:     rep.Filename,
		RowsParsed:   rep.RowsParsed,
		RowsInserted: rep.RowsInserted,
		RowsRejected: rep.RowsRejected,
	}
	for _, re := range rep.RowErrors {
		resp.RowErrors = append(resp.RowErrors, RowErrorDetail{Line: re.Line, Reason: re.Reason})
	}
	return resp
}
