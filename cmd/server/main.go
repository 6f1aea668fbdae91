package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BerylCAtieno/blood-report-analyzer/internal/analyzer"
	"github.com/BerylCAtieno/blood-report-analyzer/internal/config"
	"github.com/BerylCAtieno/blood-report-analyzer/internal/crew"
	"github.com/BerylCAtieno/blood-report-analyzer/internal/db"
	"github.com/BerylCAtieno/blood-report-analyzer/internal/extractor"
	"github.com/BerylCAtieno/blood-report-analyzer/internal/repository"
	"github.com/BerylCAtieno/blood-report-analyzer/internal/router"
	"github.com/BerylCAtieno/blood-report-analyzer/internal/services"
	"github.com/BerylCAtieno/blood-report-analyzer/internal/storage"
	"github.com/BerylCAtieno/blood-report-analyzer/internal/tools"
	"github.com/BerylCAtieno/blood-report-analyzer/internal/utils"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	// Initialize logger
	logger := utils.NewLogger(cfg.LogLevel)

	// Run migrations
	if err := db.RunMigrations(cfg.DatabasePath); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	// Initialize database
	database, err := db.NewSQLiteDB(cfg.DatabasePath)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	defer database.Close()

	// Report archive is optional
	var store storage.Storage
	if cfg.ArchiveEnabled() {
		initCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		store, err = storage.NewS3Storage(initCtx, cfg)
		cancel()
		if err != nil {
			logger.Fatal("Failed to initialize report archive", "error", err)
		}
	} else {
		logger.Info("Report archive disabled")
	}

	// LLM client
	limiter := analyzer.NewRateLimiter(cfg.LLMTokensPerSecond, logger)
	llm := analyzer.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL, limiter, logger)

	reader, err := tools.NewReportReader(extractor.NewPDFLoader(), cfg.DefaultReportPath)
	if err != nil {
		logger.Fatal("Failed to create report reader", "error", err)
	}

	def, err := crew.LoadDefinition(cfg.CrewConfigPath)
	if err != nil {
		logger.Fatal("Failed to load crew definition", "error", err)
	}
	reviewers, err := crew.New(def, llm, []tools.Tool{reader}, logger)
	if err != nil {
		logger.Fatal("Failed to assemble crew", "error", err)
	}

	// Initialize analysis service
	repo := repository.NewRepository(database)
	service := services.NewService(repo, store, reviewers, extractor.NewPDFInspector(), cfg.UploadDir, logger)

	// Setup HTTP router
	handler := router.NewRouter(service, logger, cfg.MaxFileSize)

	// Create HTTP server. An analysis makes one LLM call per task.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	go func() {
		logger.Info("Starting server", "port", cfg.Port, "model", cfg.OpenAIModel)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited")
}
