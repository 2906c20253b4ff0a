package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/api/request"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/csvio"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/model"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/repository"
)

// GeneralFundService manages funds tracked as percentages of commitment.
type GeneralFundService struct {
	db              *sql.DB
	generalFundRepo *repository.GeneralFundRepository
}

// NewGeneralFundService creates a new GeneralFundService.
func NewGeneralFundService(db *sql.DB, generalFundRepo *repository.GeneralFundRepository) *GeneralFundService {
	return &GeneralFundService{
		db:              db,
		generalFundRepo: generalFundRepo,
	}
}

func (s *GeneralFundService) GetAllGeneralFunds(ctx context.Context) ([]model.GeneralFund, error) {
	return s.generalFundRepo.GetGeneralFunds(ctx)
}

func (s *GeneralFundService) GetGeneralFund(ctx context.Context, id string) (model.GeneralFund, error) {
	return s.generalFundRepo.GetGeneralFund(ctx, id)
}

func (s *GeneralFundService) CreateGeneralFund(ctx context.Context, req request.CreateGeneralFundRequest) (*model.GeneralFund, error) {
	fund := &model.GeneralFund{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Vintage:   req.Vintage,
		FundType:  req.FundType,
		Subtype:   req.Subtype,
		Geography: req.Geography,
	}

	if err := s.generalFundRepo.InsertGeneralFund(ctx, fund); err != nil {
		return nil, fmt.Errorf("failed to create general fund: %w", err)
	}

	return fund, nil
}

func (s *GeneralFundService) UpdateGeneralFund(ctx context.Context, id string, req request.UpdateGeneralFundRequest) (*model.GeneralFund, error) {
	fund, err := s.generalFundRepo.GetGeneralFund(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		fund.Name = *req.Name
	}
	if req.Vintage != nil {
		fund.Vintage = *req.Vintage
	}
	if req.FundType != nil {
		fund.FundType = *req.FundType
	}
	if req.Subtype != nil {
		fund.Subtype = *req.Subtype
	}
	if req.Geography != nil {
		fund.Geography = *req.Geography
	}

	if err := s.generalFundRepo.UpdateGeneralFund(ctx, &fund); err != nil {
		return nil, fmt.Errorf("failed to update general fund: %w", err)
	}

	return &fund, nil
}

// DeleteGeneralFund removes a general fund, its net cashflows and every
// portfolio position that references it.
func (s *GeneralFundService) DeleteGeneralFund(ctx context.Context, id string) error {
	return s.generalFundRepo.DeleteGeneralFund(ctx, id)
}

// GetNetCashflows returns the yearly percentages of a general fund ordered by year.
func (s *GeneralFundService) GetNetCashflows(ctx context.Context, id string) ([]model.GeneralFundNetCashflow, error) {
	if _, err := s.generalFundRepo.GetGeneralFund(ctx, id); err != nil {
		return nil, err
	}
	return s.generalFundRepo.GetNetCashflows(ctx, []string{id})
}

// SetNetCashflows replaces all yearly percentages of a general fund in one
// transaction. Contributions and distributions are derived from the sign of
// the net percentage.
func (s *GeneralFundService) SetNetCashflows(
	ctx context.Context,
	id string,
	req request.SetNetCashflowsRequest,
) ([]model.GeneralFundNetCashflow, error) {
	if _, err := s.generalFundRepo.GetGeneralFund(ctx, id); err != nil {
		return nil, err
	}

	rows := make([]model.GeneralFundNetCashflow, 0, len(req.Cashflows))
	for _, entry := range req.Cashflows {
		contributions, distributions := csvio.SplitNet(entry.NetCashflowPercentage)
		rows = append(rows, model.GeneralFundNetCashflow{
			FundID:                  id,
			Year:                    entry.Year,
			NetCashflowPercentage:   entry.NetCashflowPercentage,
			ContributionsPercentage: contributions,
			DistributionsPercentage: distributions,
			NAVPercentage:           valueOrZero(entry.NAVPercentage),
		})
	}

	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		return replaceNetCashflows(ctx, s.generalFundRepo.WithTx(tx), id, rows)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save net cashflows: %w", err)
	}

	return s.generalFundRepo.GetNetCashflows(ctx, []string{id})
}

// replaceNetCashflows deletes the existing rows of fundID and stores rows.
// Shared by the cashflow endpoint and the general fund import.
func replaceNetCashflows(ctx context.Context, repo *repository.GeneralFundRepository, fundID string, rows []model.GeneralFundNetCashflow) error {
	if err := repo.DeleteNetCashflows(ctx, fundID); err != nil {
		return err
	}
	for i := range rows {
		rows[i].FundID = fundID
		if err := repo.UpsertNetCashflow(ctx, &rows[i]); err != nil {
			return err
		}
	}
	return nil
}
