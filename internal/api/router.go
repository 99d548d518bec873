package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/statement-ledger/internal/api/handler"
	"github.com/statement-ledger/internal/api/middleware"
)

// setupRouter configures API routes and middleware for the application
func setupRouter(
	logger *slog.Logger,
	r *gin.Engine,
	ingestHandler *handler.IngestHandler,
	transactionHandler *handler.TransactionHandler,
	analyticsHandler *handler.AnalyticsHandler,
	adminHandler *handler.AdminHandler,
) {
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CorrelationID())

	// API v1 endpoints
	v1 := r.Group("/api/v1")
	{
		// Statement uploads and ingestion reports
		v1.POST("/files", ingestHandler.Upload)
		v1.GET("/imports/:id", ingestHandler.GetReport)

		// Transaction operations
		transactions := v1.Group("/transactions")
		{
			transactions.GET("", transactionHandler.List)
			transactions.PATCH("/:id", transactionHandler.PatchCategory)
			transactions.DELETE("/clear", transactionHandler.Clear)
		}

		// Aggregate reporting
		analytics := v1.Group("/analytics")
		{
			analytics.GET("/spend-by-category", analyticsHandler.SpendByCategory)
			analytics.GET("/monthly-category-totals", analyticsHandler.MonthlyCategoryTotals)
		}

		// Maintenance operations
		admin := v1.Group("/admin")
		{
			admin.POST("/recategorize", adminHandler.Recategorize)
			admin.POST("/rules/reload", adminHandler.ReloadRules)
		}
	}

	// Health check endpoint for monitoring
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})
}
