package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/api/handlers"
	custommiddleware "github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/api/middleware"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/config"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/metrics"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/service"
)

// Services groups the services the router dispatches to.
type Services struct {
	System      *service.SystemService
	Fund        *service.FundService
	Cashflow    *service.CashflowService
	GeneralFund *service.GeneralFundService
	Portfolio   *service.PortfolioService
	Import      *service.ImportService
	Dashboard   *service.DashboardService
}

// NewRouter creates and configures the HTTP router
func NewRouter(services Services, collector *metrics.Collector, logger *zap.Logger, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger(logger, collector))
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	r.Method(http.MethodGet, "/metrics", collector.Handler())

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(services.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/fund", func(r chi.Router) {
			fundHandler := handlers.NewFundHandler(services.Fund)
			r.Get("/", fundHandler.Funds)
			r.Post("/", fundHandler.CreateFund)
			r.Get("/metrics", fundHandler.AllFundMetrics)
			r.Get("/types", fundHandler.FundTypes)
			r.Get("/scenarios", fundHandler.Scenarios)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", fundHandler.GetFund)
				r.Put("/", fundHandler.UpdateFund)
				r.Delete("/", fundHandler.DeleteFund)
				r.Get("/metrics", fundHandler.FundMetrics)
				r.Get("/projection", fundHandler.Projection)
				r.Get("/timeline", fundHandler.Timeline)
				r.Get("/export", fundHandler.Export)
			})
		})

		r.Route("/cashflow", func(r chi.Router) {
			cashflowHandler := handlers.NewCashflowHandler(services.Cashflow)
			r.Post("/", cashflowHandler.CreateCashflow)
			r.With(custommiddleware.ValidateUUIDMiddleware).Get("/fund/{uuid}", cashflowHandler.FundCashflows)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Put("/", cashflowHandler.UpdateCashflow)
				r.Delete("/", cashflowHandler.DeleteCashflow)
			})
		})

		r.Route("/general-fund", func(r chi.Router) {
			generalFundHandler := handlers.NewGeneralFundHandler(services.GeneralFund)
			r.Get("/", generalFundHandler.GeneralFunds)
			r.Post("/", generalFundHandler.CreateGeneralFund)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", generalFundHandler.GetGeneralFund)
				r.Put("/", generalFundHandler.UpdateGeneralFund)
				r.Delete("/", generalFundHandler.DeleteGeneralFund)
				r.Get("/cashflows", generalFundHandler.NetCashflows)
				r.Put("/cashflows", generalFundHandler.SetNetCashflows)
			})
		})

		r.Route("/portfolio", func(r chi.Router) {
			portfolioHandler := handlers.NewPortfolioHandler(services.Portfolio)
			r.Get("/", portfolioHandler.Portfolios)
			r.Post("/", portfolioHandler.CreatePortfolio)
			r.With(custommiddleware.ValidateUUIDMiddleware).Delete("/position/{uuid}", portfolioHandler.DeletePosition)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", portfolioHandler.GetPortfolio)
				r.Put("/", portfolioHandler.UpdatePortfolio)
				r.Delete("/", portfolioHandler.DeletePortfolio)
				r.Get("/positions", portfolioHandler.Positions)
				r.Post("/positions", portfolioHandler.AddPosition)
				r.Get("/waterfall", portfolioHandler.Waterfall)
				r.Get("/export", portfolioHandler.Export)
			})
		})

		r.Route("/import", func(r chi.Router) {
			importHandler := handlers.NewImportHandler(services.Import)
			r.Post("/general-funds", importHandler.ImportGeneralFunds)
			r.Post("/single-fund", importHandler.ImportSingleFund)
			r.Get("/batches", importHandler.Batches)
		})

		r.Get("/dashboard", handlers.NewDashboardHandler(services.Dashboard).Overview)
	})

	return r
}
