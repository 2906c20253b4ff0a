package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/cashflow"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/model"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/repository"
)

// DashboardService builds the single-payload overview the dashboard opens with.
type DashboardService struct {
	fundRepo        *repository.FundRepository
	cashflowRepo    *repository.CashflowRepository
	generalFundRepo *repository.GeneralFundRepository
	portfolioRepo   *repository.PortfolioRepository
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(
	fundRepo *repository.FundRepository,
	cashflowRepo *repository.CashflowRepository,
	generalFundRepo *repository.GeneralFundRepository,
	portfolioRepo *repository.PortfolioRepository,
) *DashboardService {
	return &DashboardService{
		fundRepo:        fundRepo,
		cashflowRepo:    cashflowRepo,
		generalFundRepo: generalFundRepo,
		portfolioRepo:   portfolioRepo,
	}
}

// GetOverview loads funds, cashflow records, general funds and portfolios
// concurrently and summarizes them. The first failing query cancels the rest.
func (s *DashboardService) GetOverview(ctx context.Context) (model.DashboardOverview, error) {
	var (
		funds        []model.Fund
		records      []model.CashflowRecord
		generalFunds []model.GeneralFund
		portfolios   []model.Portfolio
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		funds, err = s.fundRepo.GetFunds(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		records, err = s.cashflowRepo.GetCashflows(gctx, "")
		return err
	})
	g.Go(func() error {
		var err error
		generalFunds, err = s.generalFundRepo.GetGeneralFunds(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		portfolios, err = s.portfolioRepo.GetPortfolios(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return model.DashboardOverview{}, err
	}

	overview := model.DashboardOverview{
		FundCount:        len(funds),
		GeneralFundCount: len(generalFunds),
		PortfolioCount:   len(portfolios),
		Portfolios:       portfolios,
	}

	// Totals come from the unrounded engine output.
	byFund := cashflow.GroupRecordsByFund(records)
	for _, fund := range funds {
		metrics := cashflow.ComputeFundMetrics(fund, byFund[fund.ID])
		overview.TotalCommitment += cashflow.Finite(fund.CommitmentAmount)
		overview.TotalCalls += metrics.TotalCalls
		overview.TotalDistributions += metrics.TotalDistributions
		overview.TotalNAV += metrics.CurrentNAV
	}
	overview.Multiple = round(cashflow.SafeDivide(overview.TotalDistributions+overview.TotalNAV, overview.TotalCalls))
	overview.TotalCommitment = round(overview.TotalCommitment)
	overview.TotalCalls = round(overview.TotalCalls)
	overview.TotalDistributions = round(overview.TotalDistributions)
	overview.TotalNAV = round(overview.TotalNAV)
	overview.Funds = fundsWithMetrics(funds, records)

	return overview, nil
}
