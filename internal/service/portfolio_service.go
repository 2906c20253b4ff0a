package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/api/request"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/cashflow"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/csvio"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/model"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/repository"
)

// PortfolioService handles portfolio-related business logic operations.
// It binds commitments to general funds and aggregates their percentage
// cashflows into the portfolio waterfall.
type PortfolioService struct {
	portfolioRepo   *repository.PortfolioRepository
	generalFundRepo *repository.GeneralFundRepository
}

// NewPortfolioService creates a new PortfolioService with the provided repository dependencies.
func NewPortfolioService(
	portfolioRepo *repository.PortfolioRepository,
	generalFundRepo *repository.GeneralFundRepository,
) *PortfolioService {
	return &PortfolioService{
		portfolioRepo:   portfolioRepo,
		generalFundRepo: generalFundRepo,
	}
}

// GetAllPortfolios retrieves all portfolios ordered by name.
func (s *PortfolioService) GetAllPortfolios(ctx context.Context) ([]model.Portfolio, error) {
	return s.portfolioRepo.GetPortfolios(ctx)
}

// GetPortfolio retrieves a single portfolio by ID.
func (s *PortfolioService) GetPortfolio(ctx context.Context, portfolioID string) (model.Portfolio, error) {
	return s.portfolioRepo.GetPortfolioOnID(ctx, portfolioID)
}

func (s *PortfolioService) CreatePortfolio(ctx context.Context, req request.CreatePortfolioRequest) (*model.Portfolio, error) {
	portfolio := &model.Portfolio{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		TotalSize:   req.TotalSize,
	}

	if err := s.portfolioRepo.InsertPortfolio(ctx, portfolio); err != nil {
		return nil, fmt.Errorf("failed to create portfolio: %w", err)
	}

	return portfolio, nil
}

func (s *PortfolioService) UpdatePortfolio(
	ctx context.Context,
	id string,
	req request.UpdatePortfolioRequest,
) (*model.Portfolio, error) {
	portfolio, err := s.portfolioRepo.GetPortfolioOnID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		portfolio.Name = *req.Name
	}
	if req.Description != nil {
		portfolio.Description = *req.Description
	}
	if req.TotalSize != nil {
		portfolio.TotalSize = *req.TotalSize
	}

	if err := s.portfolioRepo.UpdatePortfolio(ctx, &portfolio); err != nil {
		return nil, fmt.Errorf("failed to update portfolio: %w", err)
	}

	return &portfolio, nil
}

// DeletePortfolio removes a portfolio and its positions.
func (s *PortfolioService) DeletePortfolio(ctx context.Context, id string) error {
	return s.portfolioRepo.DeletePortfolio(ctx, id)
}

// GetPositions returns the positions of a portfolio with their allocation
// percentage: commitment / totalSize * 100, or 0 for a portfolio without size.
func (s *PortfolioService) GetPositions(ctx context.Context, portfolioID string) ([]model.PortfolioPosition, error) {
	portfolio, err := s.portfolioRepo.GetPortfolioOnID(ctx, portfolioID)
	if err != nil {
		return nil, err
	}

	positions, err := s.portfolioRepo.GetPositions(ctx, portfolioID)
	if err != nil {
		return nil, err
	}

	for i := range positions {
		positions[i].AllocationPercentage = allocation(positions[i].CommitmentAmount, portfolio.TotalSize)
	}
	return positions, nil
}

// AddPosition commits an amount to a general fund. Adding a fund that is
// already part of the portfolio replaces its commitment.
func (s *PortfolioService) AddPosition(
	ctx context.Context,
	portfolioID string,
	req request.AddPositionRequest,
) (*model.PortfolioPosition, error) {
	portfolio, err := s.portfolioRepo.GetPortfolioOnID(ctx, portfolioID)
	if err != nil {
		return nil, err
	}

	fund, err := s.generalFundRepo.GetGeneralFund(ctx, req.FundID)
	if err != nil {
		return nil, err
	}

	position := &model.PortfolioPosition{
		ID:               uuid.New().String(),
		PortfolioID:      portfolio.ID,
		FundID:           fund.ID,
		CommitmentAmount: req.CommitmentAmount,
	}

	if err := s.portfolioRepo.UpsertPosition(ctx, position); err != nil {
		return nil, fmt.Errorf("failed to save position: %w", err)
	}

	position.FundName = fund.Name
	position.AllocationPercentage = allocation(position.CommitmentAmount, portfolio.TotalSize)
	return position, nil
}

func (s *PortfolioService) DeletePosition(ctx context.Context, positionID string) error {
	return s.portfolioRepo.DeletePosition(ctx, positionID)
}

// GetWaterfall aggregates the percentage cashflows of a portfolio's general
// funds, scaled by each position's commitment, into yearly totals.
func (s *PortfolioService) GetWaterfall(ctx context.Context, portfolioID string) (model.PortfolioWaterfall, error) {
	portfolio, err := s.portfolioRepo.GetPortfolioOnID(ctx, portfolioID)
	if err != nil {
		return model.PortfolioWaterfall{}, err
	}

	positions, err := s.portfolioRepo.GetPositions(ctx, portfolioID)
	if err != nil {
		return model.PortfolioWaterfall{}, err
	}

	rows, err := s.netCashflowsFor(ctx, positions)
	if err != nil {
		return model.PortfolioWaterfall{}, err
	}

	waterfall := cashflow.BuildWaterfall(positions, cashflow.IndexNetCashflows(rows))

	return model.PortfolioWaterfall{
		PortfolioID:   portfolio.ID,
		PortfolioName: portfolio.Name,
		Waterfall:     roundWaterfall(waterfall),
	}, nil
}

// ExportPortfolio writes the general funds of a portfolio and their net
// percentages in the multi-fund CSV format.
func (s *PortfolioService) ExportPortfolio(ctx context.Context, portfolioID string) (model.Portfolio, []byte, error) {
	portfolio, err := s.portfolioRepo.GetPortfolioOnID(ctx, portfolioID)
	if err != nil {
		return model.Portfolio{}, nil, err
	}

	positions, err := s.portfolioRepo.GetPositions(ctx, portfolioID)
	if err != nil {
		return model.Portfolio{}, nil, err
	}

	funds := make([]model.GeneralFund, 0, len(positions))
	for _, p := range positions {
		fund, err := s.generalFundRepo.GetGeneralFund(ctx, p.FundID)
		if err != nil {
			return model.Portfolio{}, nil, err
		}
		funds = append(funds, fund)
	}

	rows, err := s.netCashflowsFor(ctx, positions)
	if err != nil {
		return model.Portfolio{}, nil, err
	}

	byFund := make(map[string][]model.GeneralFundNetCashflow, len(funds))
	for _, row := range rows {
		byFund[row.FundID] = append(byFund[row.FundID], row)
	}

	var buf bytes.Buffer
	if err := csvio.WriteGeneralFunds(&buf, funds, byFund); err != nil {
		return model.Portfolio{}, nil, fmt.Errorf("failed to write export: %w", err)
	}

	return portfolio, buf.Bytes(), nil
}

// netCashflowsFor loads the net cashflows of the positions' funds.
// An empty portfolio loads nothing (an empty ID filter would load every fund).
func (s *PortfolioService) netCashflowsFor(ctx context.Context, positions []model.PortfolioPosition) ([]model.GeneralFundNetCashflow, error) {
	if len(positions) == 0 {
		return []model.GeneralFundNetCashflow{}, nil
	}

	fundIDs := make([]string, len(positions))
	for i, p := range positions {
		fundIDs[i] = p.FundID
	}
	return s.generalFundRepo.GetNetCashflows(ctx, fundIDs)
}

func allocation(commitment, totalSize float64) float64 {
	return round(cashflow.SafeDivide(commitment, totalSize) * 100)
}
