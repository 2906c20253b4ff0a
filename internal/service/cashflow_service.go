package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/api/request"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/model"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/repository"
)

// CashflowService handles the quarterly cashflow records of funds.
type CashflowService struct {
	cashflowRepo *repository.CashflowRepository
	fundRepo     *repository.FundRepository
}

// NewCashflowService creates a new CashflowService.
func NewCashflowService(
	cashflowRepo *repository.CashflowRepository,
	fundRepo *repository.FundRepository,
) *CashflowService {
	return &CashflowService{
		cashflowRepo: cashflowRepo,
		fundRepo:     fundRepo,
	}
}

// GetFundCashflows returns the records of a fund ordered by (year, quarter).
// Returns ErrFundNotFound if the fund does not exist.
func (s *CashflowService) GetFundCashflows(ctx context.Context, fundID string) ([]model.CashflowRecord, error) {
	if _, err := s.fundRepo.GetFund(ctx, fundID); err != nil {
		return nil, err
	}
	return s.cashflowRepo.GetCashflows(ctx, fundID)
}

// CreateCashflow records one quarter of a fund. Omitted amounts are stored as 0
// (calls, distributions, nav) or NULL (fees, carry, taxes).
// Returns ErrDuplicateEntry if the fund already has a record for the quarter.
func (s *CashflowService) CreateCashflow(ctx context.Context, req request.CreateCashflowRequest) (*model.CashflowRecord, error) {
	if _, err := s.fundRepo.GetFund(ctx, req.FundID); err != nil {
		return nil, err
	}

	record := &model.CashflowRecord{
		ID:              uuid.New().String(),
		FundID:          req.FundID,
		Year:            req.Year,
		Quarter:         req.Quarter,
		Calls:           valueOrZero(req.Calls),
		Distributions:   valueOrZero(req.Distributions),
		NAV:             valueOrZero(req.NAV),
		ManagementFees:  req.ManagementFees,
		CarriedInterest: req.CarriedInterest,
		Taxes:           req.Taxes,
	}

	if err := s.cashflowRepo.InsertCashflow(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create cashflow: %w", err)
	}

	return record, nil
}

func (s *CashflowService) UpdateCashflow(ctx context.Context, id string, req request.UpdateCashflowRequest) (*model.CashflowRecord, error) {
	record, err := s.cashflowRepo.GetCashflow(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Year != nil {
		record.Year = *req.Year
	}
	if req.Quarter != nil {
		record.Quarter = *req.Quarter
	}
	if req.Calls != nil {
		record.Calls = *req.Calls
	}
	if req.Distributions != nil {
		record.Distributions = *req.Distributions
	}
	if req.NAV != nil {
		record.NAV = *req.NAV
	}
	if req.ManagementFees != nil {
		record.ManagementFees = req.ManagementFees
	}
	if req.CarriedInterest != nil {
		record.CarriedInterest = req.CarriedInterest
	}
	if req.Taxes != nil {
		record.Taxes = req.Taxes
	}

	if err := s.cashflowRepo.UpdateCashflow(ctx, &record); err != nil {
		return nil, fmt.Errorf("failed to update cashflow: %w", err)
	}

	return &record, nil
}

func (s *CashflowService) DeleteCashflow(ctx context.Context, id string) error {
	return s.cashflowRepo.DeleteCashflow(ctx, id)
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
