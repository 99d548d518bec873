package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/statement-ledger/internal/api"
	"github.com/statement-ledger/internal/api/service"
	"github.com/statement-ledger/internal/categorize"
	"github.com/statement-ledger/internal/config"
	"github.com/statement-ledger/internal/data/mongo"
	"github.com/statement-ledger/internal/data/postgres"
	"github.com/statement-ledger/internal/ingest"
	"github.com/statement-ledger/internal/logger"
	"github.com/statement-ledger/internal/platform/messaging/producers"
	"github.com/statement-ledger/internal/platform/persistence"
)

func main() {
	// Create base context with cancellation
	appCtx, cancelAppCtx := context.WithCancel(context.Background())
	defer cancelAppCtx()

	// Initialize configuration
	cfg, err := config.LoadConfig("api")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewLogger(cfg)

	log.Info("Starting statement ledger API",
		"app_name", cfg.Application.Name,
		"env", cfg.Application.Env,
	)

	// Initialize databases with app context
	postgresDB, err := persistence.NewPostgresDB(appCtx, log, &cfg.Postgres)
	if err != nil {
		log.Error("Failed to initialize PostgreSQL", "error", err)
		os.Exit(1)
	}

	mongoDB, err := persistence.NewMongoDB(appCtx, log, &cfg.MongoDB)
	if err != nil {
		log.Error("Failed to initialize MongoDB", "error", err)
		os.Exit(1)
	}

	// Initialize the ingestion event publisher. Without Kafka configured
	// the pipeline runs with a no-op publisher.
	var publisher producers.MessagePublisher = producers.NewNoopPublisher()
	var kafkaProducer *producers.IngestionEventProducer
	if cfg.Kafka.Enabled {
		kafkaProducer, err = producers.NewIngestionEventProducer(appCtx, log, &cfg.Kafka)
		if err != nil {
			log.Error("Failed to initialize Kafka producer", "error", err)
			os.Exit(1)
		}
		publisher = kafkaProducer
	}

	// Initialize repositories
	transactionRepo := postgres.NewTransactionRepository(log, postgresDB)
	batchRepo := postgres.NewBatchRepository(log, postgresDB)
	reportRepo := mongo.NewReportRepository(log, mongoDB.Database())

	// Initialize the categorization engine from the configured rule file,
	// falling back to the built-in rule set
	rules := categorize.DefaultRules()
	if cfg.Rules.Path != "" {
		rules, err = categorize.LoadRuleFile(cfg.Rules.Path)
		if err != nil {
			log.Error("Failed to load rule file", "path", cfg.Rules.Path, "error", err)
			os.Exit(1)
		}
	}
	engine, err := categorize.NewEngine(rules)
	if err != nil {
		log.Error("Failed to compile categorization rules", "error", err)
		os.Exit(1)
	}
	log.Info("Categorization engine ready", "rules", engine.RuleCount())

	recategorizer, err := categorize.NewRecategorizer(log, engine, transactionRepo, cfg.WorkerPool.Size)
	if err != nil {
		log.Error("Failed to initialize recategorizer worker pool", "error", err)
		os.Exit(1)
	}

	// Initialize services
	ingestionService := ingest.NewOrchestrator(log, postgresDB, transactionRepo, batchRepo, reportRepo, publisher, engine, cfg.Ingest)
	transactionService := service.NewTransactionService(log, postgresDB, transactionRepo, batchRepo)
	analyticsService := service.NewAnalyticsService(log, transactionRepo)
	maintenanceService := service.NewMaintenanceService(log, engine, recategorizer, cfg.Rules)

	// Initialize REST server
	server := api.NewServer(log, cfg, ingestionService, transactionService, analyticsService, maintenanceService)
	log.Info("REST server initialized")

	// Create error channel for server errors
	errChan := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Server.Port)
		if err := server.Start(); err != nil {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Set up signal handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	// Wait for a shutdown signal or error
	var serverErr error
	select {
	case <-quit:
		log.Info("Shutdown signal received")
	case err := <-errChan:
		log.Error("Server error occurred", "error", err)
		serverErr = err
	}

	// Cancel the application context
	cancelAppCtx()

	// Create a shutdown context with timeout
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	// Graceful shutdown sequence
	log.Info("Starting graceful shutdown...")

	// Shutdown HTTP server first so no new work arrives
	if err = server.Stop(shutdownCtx); err != nil {
		log.Error("Error during server shutdown", "error", err)
	}

	// Release the recategorization worker pool
	recategorizer.Shutdown()

	// Shutdown postgres connection pool
	postgresDB.Close()

	if kafkaProducer != nil {
		if err = kafkaProducer.Close(); err != nil {
			log.Error("Error closing Kafka producer", "error", err)
		}
	}

	if err = mongoDB.Close(shutdownCtx); err != nil {
		log.Error("Error closing MongoDB connection", "error", err)
	}

	// Final status
	if serverErr != nil {
		log.Error("HTTP server shutdown with errors", "error", serverErr)
	}
	if err != nil {
		log.Error("Server shutdown completed with errors")
	} else {
		log.Info("Server shutdown completed successfully")
	}
}
