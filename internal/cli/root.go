// Package cli implements cashflowctl, the command line companion of the
// server. It works directly on the SQLite database the server uses.
package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/config"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/database"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/logging"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/repository"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/service"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/version"
)

// Output formats of the report commands.
const (
	OutputText = "text"
	OutputJSON = "json"
)

type appContextKey struct{}

// RootOptions holds global CLI flags. Empty values fall back to the
// environment configuration.
type RootOptions struct {
	DBPath   string
	UserID   string
	LogLevel string
	Output   string
}

// App carries the opened database and the services through the command tree.
type App struct {
	DB        *sql.DB
	Logger    *zap.Logger
	Output    string
	Fund      *service.FundService
	Import    *service.ImportService
	Portfolio *service.PortfolioService
}

// NewRootCommand creates the root command with its global flags and subcommands.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:     "cashflowctl",
		Short:   "Import, export and analyze private fund cashflows",
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return openApp(cmd, opts)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return closeApp(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.DBPath, "db", "", "SQLite database path (default: DB_PATH)")
	pf.StringVar(&opts.UserID, "user", "", "user id to scope data to (default: USER_ID)")
	pf.StringVar(&opts.LogLevel, "log-level", "", "log level: debug, info, warn, error (default: LOG_LEVEL)")
	pf.StringVarP(&opts.Output, "output", "o", OutputText, "output format: text or json")

	cmd.AddCommand(
		newImportCmd(),
		newExportCmd(),
		newExportFundCmd(),
		newWaterfallCmd(),
		newProjectCmd(),
		newMetricsCmd(),
	)

	return cmd
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

func openApp(cmd *cobra.Command, opts *RootOptions) error {
	if opts.Output != OutputText && opts.Output != OutputJSON {
		return fmt.Errorf("invalid output format %q: must be %s or %s", opts.Output, OutputText, OutputJSON)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}
	if opts.DBPath != "" {
		cfg.Database.Path = opts.DBPath
	}
	if opts.UserID != "" {
		cfg.UserID = opts.UserID
	}
	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
	}
	// The CLI prints results on stdout; logs go to stderr in console form.
	cfg.Logging.Format = "console"

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("logger initialization failed: %w", err)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	if _, err := database.Migrate(cmd.Context(), db); err != nil {
		db.Close()
		return err
	}

	fundRepo := repository.NewFundRepository(db, cfg.UserID)
	cashflowRepo := repository.NewCashflowRepository(db, cfg.UserID)
	generalFundRepo := repository.NewGeneralFundRepository(db, cfg.UserID)
	portfolioRepo := repository.NewPortfolioRepository(db, cfg.UserID)
	importRepo := repository.NewImportRepository(db, cfg.UserID)

	app := &App{
		DB:        db,
		Logger:    logger,
		Output:    opts.Output,
		Fund:      service.NewFundService(fundRepo, cashflowRepo),
		Import:    service.NewImportService(db, fundRepo, cashflowRepo, generalFundRepo, importRepo, nil, logger),
		Portfolio: service.NewPortfolioService(portfolioRepo, generalFundRepo),
	}

	cmd.SetContext(context.WithValue(cmd.Context(), appContextKey{}, app))
	return nil
}

func closeApp(cmd *cobra.Command) error {
	app, err := appFrom(cmd)
	if err != nil {
		return nil
	}
	//nolint:errcheck // Flushing stderr can fail on some terminals.
	app.Logger.Sync()
	return app.DB.Close()
}

func appFrom(cmd *cobra.Command) (*App, error) {
	app, ok := cmd.Context().Value(appContextKey{}).(*App)
	if !ok {
		return nil, errors.New("application not initialized")
	}
	return app, nil
}
