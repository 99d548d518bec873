package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/statement-ledger/internal/api/service"
)

// AdminHandler serves the maintenance endpoints
type AdminHandler struct {
	maintenanceService service.MaintenanceService
	logger             *slog.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(logger *slog.Logger, maintenanceService service.MaintenanceService) *AdminHandler {
	return &AdminHandler{
		maintenanceService: maintenanceService,
		logger:             logger,
	}
}

// Recategorize re-runs the rule engine over every stored transaction
func (h *AdminHandler) Recategorize(c *gin.Context) {
	result, err := h.maintenanceService.Recategorize(c.Request.Context())
	if err != nil {
		h.logger.Error("Recategorization failed", "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, result)
}

// ReloadRules re-reads the rule file and swaps in the new set
func (h *AdminHandler) ReloadRules(c *gin.Context) {
	count, err := h.maintenanceService.ReloadRules(c.Request.Context())
	if err != nil {
		h.logger.Error("Rule reload failed", "error", err)
		RespondBadRequest(c, "Rule file could not be loaded: "+err.Error())
		return
	}

	RespondOK(c, ReloadRulesResponse{RulesLoaded: count})
}
