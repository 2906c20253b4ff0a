package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/api"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/config"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/database"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/logging"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/metrics"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/repository"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/scheduler"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/service"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/version"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck // Nothing left to report to on exit.
	zap.ReplaceGlobals(logger)

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close()

	schemaVersion, err := database.Migrate(context.Background(), db)
	if err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}

	logger.Info("connected to database",
		zap.String("path", cfg.Database.Path),
		zap.Int64("schema_version", schemaVersion),
		zap.String("user_id", cfg.UserID),
	)

	collector := metrics.NewCollector()

	// Create repositories
	fundRepo := repository.NewFundRepository(db, cfg.UserID)
	cashflowRepo := repository.NewCashflowRepository(db, cfg.UserID)
	generalFundRepo := repository.NewGeneralFundRepository(db, cfg.UserID)
	portfolioRepo := repository.NewPortfolioRepository(db, cfg.UserID)
	importRepo := repository.NewImportRepository(db, cfg.UserID)

	// Create services
	importService := service.NewImportService(
		db,
		fundRepo,
		cashflowRepo,
		generalFundRepo,
		importRepo,
		collector,
		logger.Named("import"),
	)
	services := api.Services{
		System:      service.NewSystemService(db),
		Fund:        service.NewFundService(fundRepo, cashflowRepo),
		Cashflow:    service.NewCashflowService(cashflowRepo, fundRepo),
		GeneralFund: service.NewGeneralFundService(db, generalFundRepo),
		Portfolio:   service.NewPortfolioService(portfolioRepo, generalFundRepo),
		Import:      importService,
		Dashboard:   service.NewDashboardService(fundRepo, cashflowRepo, generalFundRepo, portfolioRepo),
	}

	pruner, err := scheduler.New(cfg.Import.PruneSchedule, cfg.Import.RetentionDays, importService, logger.Named("scheduler"))
	if err != nil {
		logger.Fatal("failed to create scheduler", zap.Error(err))
	}
	pruner.Start()

	// Create router
	router := api.NewRouter(services, collector, logger.Named("http"), cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("starting server", zap.String("addr", cfg.Server.Addr), zap.String("version", version.Version))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}
	pruner.Stop(ctx)

	logger.Info("server exited")
}
