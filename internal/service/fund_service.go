package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/api/request"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/apperrors"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/cashflow"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/csvio"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/model"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/repository"
)

// FundService handles fund-related business logic operations.
// It combines stored funds and cashflow records with the cashflow engine to
// produce metrics, projections and timelines.
type FundService struct {
	fundRepo     *repository.FundRepository
	cashflowRepo *repository.CashflowRepository
	expectations map[string]model.FundTypeExpectation
}

// NewFundService creates a new FundService using the built-in fund type expectations.
func NewFundService(
	fundRepo *repository.FundRepository,
	cashflowRepo *repository.CashflowRepository,
) *FundService {
	return &FundService{
		fundRepo:     fundRepo,
		cashflowRepo: cashflowRepo,
		expectations: cashflow.DefaultExpectations(),
	}
}

// GetAllFunds retrieves all funds of the configured user ordered by name.
func (s *FundService) GetAllFunds(ctx context.Context) ([]model.Fund, error) {
	return s.fundRepo.GetFunds(ctx)
}

// GetFund retrieves a single fund by ID.
func (s *FundService) GetFund(ctx context.Context, fundID string) (model.Fund, error) {
	return s.fundRepo.GetFund(ctx, fundID)
}

func (s *FundService) CreateFund(ctx context.Context, req request.CreateFundRequest) (*model.Fund, error) {
	fund := &model.Fund{
		ID:                  uuid.New().String(),
		Name:                req.Name,
		Vintage:             req.Vintage,
		CommitmentAmount:    req.CommitmentAmount,
		FundType:            req.FundType,
		ManagementFeeRate:   req.ManagementFeeRate,
		CarriedInterestRate: req.CarriedInterestRate,
		TaxRate:             req.TaxRate,
	}

	if err := s.fundRepo.InsertFund(ctx, fund); err != nil {
		return nil, fmt.Errorf("failed to create fund: %w", err)
	}

	return fund, nil
}

func (s *FundService) UpdateFund(
	ctx context.Context,
	id string,
	req request.UpdateFundRequest,
) (*model.Fund, error) {
	fund, err := s.fundRepo.GetFund(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		fund.Name = *req.Name
	}
	if req.Vintage != nil {
		fund.Vintage = *req.Vintage
	}
	if req.CommitmentAmount != nil {
		fund.CommitmentAmount = *req.CommitmentAmount
	}
	if req.FundType != nil {
		fund.FundType = *req.FundType
	}
	if req.ManagementFeeRate != nil {
		fund.ManagementFeeRate = req.ManagementFeeRate
	}
	if req.CarriedInterestRate != nil {
		fund.CarriedInterestRate = req.CarriedInterestRate
	}
	if req.TaxRate != nil {
		fund.TaxRate = req.TaxRate
	}

	if err := s.fundRepo.UpdateFund(ctx, &fund); err != nil {
		return nil, fmt.Errorf("failed to update fund: %w", err)
	}

	return &fund, nil
}

// DeleteFund removes a fund and, by cascade, all of its cashflow records.
func (s *FundService) DeleteFund(ctx context.Context, id string) error {
	return s.fundRepo.DeleteFund(ctx, id)
}

// GetFundMetrics computes the metrics of a single fund from its records.
func (s *FundService) GetFundMetrics(ctx context.Context, fundID string) (model.FundMetrics, error) {
	fund, err := s.fundRepo.GetFund(ctx, fundID)
	if err != nil {
		return model.FundMetrics{}, err
	}

	records, err := s.cashflowRepo.GetCashflows(ctx, fundID)
	if err != nil {
		return model.FundMetrics{}, err
	}

	return roundMetrics(cashflow.ComputeFundMetrics(fund, records)), nil
}

// GetAllFundMetrics computes metrics for every fund with two queries:
// one for the funds and one for all cashflow records.
func (s *FundService) GetAllFundMetrics(ctx context.Context) ([]model.FundWithMetrics, error) {
	funds, err := s.fundRepo.GetFunds(ctx)
	if err != nil {
		return nil, err
	}

	records, err := s.cashflowRepo.GetCashflows(ctx, "")
	if err != nil {
		return nil, err
	}

	return fundsWithMetrics(funds, records), nil
}

func fundsWithMetrics(funds []model.Fund, records []model.CashflowRecord) []model.FundWithMetrics {
	byFund := cashflow.GroupRecordsByFund(records)

	result := make([]model.FundWithMetrics, 0, len(funds))
	for _, fund := range funds {
		result = append(result, model.FundWithMetrics{
			Fund:    fund,
			Metrics: roundMetrics(cashflow.ComputeFundMetrics(fund, byFund[fund.ID])),
		})
	}
	return result
}

// GetProjection projects a fund's cashflows for the named scenario.
// Returns ErrScenarioNotFound for an unknown scenario and an empty slice for
// a fund type without expectations.
func (s *FundService) GetProjection(ctx context.Context, fundID, scenarioID string) ([]model.CashflowPoint, error) {
	scenario, ok := cashflow.ScenarioByID(scenarioID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrScenarioNotFound, scenarioID)
	}

	fund, err := s.fundRepo.GetFund(ctx, fundID)
	if err != nil {
		return nil, err
	}

	return roundPoints(cashflow.ProjectCashflows(fund, scenario, s.expectations)), nil
}

// GetTimeline merges a fund's actual records with its projection: years with
// actual data keep the actuals, the remaining years are projected.
func (s *FundService) GetTimeline(ctx context.Context, fundID, scenarioID string) (model.FundTimeline, error) {
	scenario, ok := cashflow.ScenarioByID(scenarioID)
	if !ok {
		return model.FundTimeline{}, fmt.Errorf("%w: %s", apperrors.ErrScenarioNotFound, scenarioID)
	}

	fund, err := s.fundRepo.GetFund(ctx, fundID)
	if err != nil {
		return model.FundTimeline{}, err
	}

	records, err := s.cashflowRepo.GetCashflows(ctx, fundID)
	if err != nil {
		return model.FundTimeline{}, err
	}

	projected := cashflow.ProjectCashflows(fund, scenario, s.expectations)

	return model.FundTimeline{
		FundID:   fund.ID,
		Scenario: scenario.ID,
		Points:   roundPoints(cashflow.MergeWithActuals(records, projected)),
	}, nil
}

// GetFundTypes returns the built-in fund type expectations ordered by fund type.
func (s *FundService) GetFundTypes() []model.FundTypeExpectation {
	return cashflow.SortedExpectations(s.expectations)
}

// GetScenarios returns the available projection scenarios.
func (s *FundService) GetScenarios() []model.PortfolioScenario {
	return cashflow.Scenarios()
}

// ExportFund writes a fund and its yearly net cashflows, as percentages of
// commitment, in the single-fund CSV format.
func (s *FundService) ExportFund(ctx context.Context, fundID string) (model.Fund, []byte, error) {
	fund, err := s.fundRepo.GetFund(ctx, fundID)
	if err != nil {
		return model.Fund{}, nil, err
	}

	records, err := s.cashflowRepo.GetCashflows(ctx, fund.ID)
	if err != nil {
		return model.Fund{}, nil, err
	}

	var buf bytes.Buffer
	if err := csvio.WriteSingleFund(&buf, fund, records); err != nil {
		return model.Fund{}, nil, fmt.Errorf("failed to write export: %w", err)
	}

	return fund, buf.Bytes(), nil
}
