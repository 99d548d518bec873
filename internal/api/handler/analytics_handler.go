package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/statement-ledger/internal/analytics"
	"github.com/statement-ledger/internal/api/service"
	"github.com/statement-ledger/internal/domain/transaction"
)

// AnalyticsHandler serves the aggregate reporting endpoints
type AnalyticsHandler struct {
	analyticsService service.AnalyticsService
	logger           *slog.Logger
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(logger *slog.Logger, analyticsService service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		logger:           logger,
	}
}

// SpendByCategory returns per-category debit totals, largest first
func (h *AnalyticsHandler) SpendByCategory(c *gin.Context) {
	var month *transaction.Month
	if monthParam := c.Query("month"); monthParam != "" {
		parsed, err := transaction.ParseMonth(monthParam)
		if err != nil {
			RespondBadRequest(c, "Invalid 'month' parameter, expected YYYY-MM")
			return
		}
		month = &parsed
	}

	spend, err := h.analyticsService.SpendByCategory(c.Request.Context(), month)
	if err != nil {
		h.logger.Error("Failed to compute spend by category", "error", err)
		RespondInternalError(c)
		return
	}

	responses := make([]CategorySpendResponse, 0, len(spend))
	for _, s := range spend {
		responses = append(responses, CategorySpendResponse{
			Category: s.Category,
			Amount:   s.Amount.InexactFloat64(),
		})
	}
	RespondOK(c, responses)
}

// MonthlyCategoryTotals returns category totals bucketed by calendar month
func (h *AnalyticsHandler) MonthlyCategoryTotals(c *gin.Context) {
	rows, err := h.analyticsService.MonthlyCategoryTotals(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to compute monthly category totals", "error", err)
		RespondInternalError(c)
		return
	}

	if rows == nil {
		rows = []analytics.MonthRow{}
	}
	RespondOK(c, rows)
}
