package service

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/csvio"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/model"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/repository"
)

// ImportObserver receives the row counts of every committed import.
type ImportObserver interface {
	ObserveImport(format string, imported, skipped int)
}

// ImportService loads CSV uploads into funds and general funds.
//
// Uploads are parsed completely before anything is written, so a malformed
// file changes nothing. Rows that parse but cannot be matched to an existing
// fund are skipped with a warning and the rest of the batch is imported.
// Every committed upload leaves an ImportBatch audit record.
type ImportService struct {
	db              *sql.DB
	fundRepo        *repository.FundRepository
	cashflowRepo    *repository.CashflowRepository
	generalFundRepo *repository.GeneralFundRepository
	importRepo      *repository.ImportRepository
	observer        ImportObserver
	logger          *zap.Logger
	now             func() time.Time
}

// NewImportService creates a new ImportService. observer may be nil.
func NewImportService(
	db *sql.DB,
	fundRepo *repository.FundRepository,
	cashflowRepo *repository.CashflowRepository,
	generalFundRepo *repository.GeneralFundRepository,
	importRepo *repository.ImportRepository,
	observer ImportObserver,
	logger *zap.Logger,
) *ImportService {
	return &ImportService{
		db:              db,
		fundRepo:        fundRepo,
		cashflowRepo:    cashflowRepo,
		generalFundRepo: generalFundRepo,
		importRepo:      importRepo,
		observer:        observer,
		logger:          logger,
		now:             time.Now,
	}
}

// ImportGeneralFunds imports a multi-fund upload. Each row is matched by name
// to an existing general fund, whose net cashflows are replaced by the row's.
// Unmatched rows create a new general fund when createMissing is set and are
// skipped with a warning otherwise.
func (s *ImportService) ImportGeneralFunds(ctx context.Context, fileName string, r io.Reader, createMissing bool) (model.ImportResult, error) {
	rows, err := csvio.ParseGeneralFunds(r)
	if err != nil {
		return model.ImportResult{}, err
	}

	batch := s.newBatch(model.ImportFormatGeneralFunds, fileName, len(rows))
	result := model.ImportResult{FundIDs: []string{}}

	err = withTx(ctx, s.db, func(tx *sql.Tx) error {
		generalFundRepo := s.generalFundRepo.WithTx(tx)

		existing, err := generalFundRepo.GetGeneralFunds(ctx)
		if err != nil {
			return err
		}

		importedOn := make(map[string]int)

		for _, row := range rows {
			fund, ok := csvio.MatchFund(row.Name, existing, func(f model.GeneralFund) string { return f.Name })

			switch {
			case ok && importedOn[fund.ID] > 0:
				batch.skip(fmt.Sprintf("line %d: %q matches general fund %q already imported from line %d", row.Line, row.Name, fund.Name, importedOn[fund.ID]))
				continue
			case ok:
				if csvio.NormalizeFundName(fund.Name) != csvio.NormalizeFundName(row.Name) {
					batch.warn(fmt.Sprintf("line %d: matched %q to general fund %q", row.Line, row.Name, fund.Name))
				}
			case createMissing:
				fund = row.GeneralFund()
				fund.ID = uuid.New().String()
				if err := generalFundRepo.InsertGeneralFund(ctx, &fund); err != nil {
					return err
				}
				existing = append(existing, fund)
				result.CreatedIDs = append(result.CreatedIDs, fund.ID)
			default:
				batch.skip(fmt.Sprintf("line %d: no general fund matches %q", row.Line, row.Name))
				continue
			}

			if err := replaceNetCashflows(ctx, generalFundRepo, fund.ID, row.NetCashflows(fund.ID)); err != nil {
				return err
			}

			importedOn[fund.ID] = row.Line
			result.FundIDs = append(result.FundIDs, fund.ID)
			batch.RowsImported++
		}

		return s.importRepo.WithTx(tx).InsertBatch(ctx, &batch.ImportBatch)
	})
	if err != nil {
		return model.ImportResult{}, fmt.Errorf("failed to import general funds: %w", err)
	}

	s.finish(&batch)
	result.Batch = batch.ImportBatch
	return result, nil
}

// ImportSingleFund imports a single-fund upload. A fund whose name matches an
// existing fund takes over the upload's vintage, commitment and fund type and
// has all of its cashflow records replaced; otherwise a new fund is created.
func (s *ImportService) ImportSingleFund(ctx context.Context, fileName string, r io.Reader) (model.ImportResult, error) {
	upload, err := csvio.ParseSingleFund(r)
	if err != nil {
		return model.ImportResult{}, err
	}

	batch := s.newBatch(model.ImportFormatSingleFund, fileName, len(upload.Percentages))
	result := model.ImportResult{FundIDs: []string{}}

	err = withTx(ctx, s.db, func(tx *sql.Tx) error {
		fundRepo := s.fundRepo.WithTx(tx)
		cashflowRepo := s.cashflowRepo.WithTx(tx)

		funds, err := fundRepo.GetFunds(ctx)
		if err != nil {
			return err
		}

		fund, ok := csvio.MatchFund(upload.Name, funds, func(f model.Fund) string { return f.Name })
		if ok {
			if csvio.NormalizeFundName(fund.Name) != csvio.NormalizeFundName(upload.Name) {
				batch.warn(fmt.Sprintf("matched %q to fund %q", upload.Name, fund.Name))
			}
			fund.Vintage = upload.Vintage
			fund.CommitmentAmount = upload.CommitmentAmount
			fund.FundType = upload.FundType
			if err := fundRepo.UpdateFund(ctx, &fund); err != nil {
				return err
			}

			replaced, err := cashflowRepo.DeleteCashflowsForFund(ctx, fund.ID)
			if err != nil {
				return err
			}
			if replaced > 0 {
				batch.warn(fmt.Sprintf("replaced %d existing cashflow records of %q", replaced, fund.Name))
			}
		} else {
			fund = upload.Fund()
			fund.ID = uuid.New().String()
			if err := fundRepo.InsertFund(ctx, &fund); err != nil {
				return err
			}
			result.CreatedIDs = append(result.CreatedIDs, fund.ID)
		}

		for _, record := range upload.CashflowRecords(fund.ID) {
			record.ID = uuid.New().String()
			if err := cashflowRepo.InsertCashflow(ctx, &record); err != nil {
				return err
			}
			batch.RowsImported++
		}

		result.FundIDs = append(result.FundIDs, fund.ID)
		return s.importRepo.WithTx(tx).InsertBatch(ctx, &batch.ImportBatch)
	})
	if err != nil {
		return model.ImportResult{}, fmt.Errorf("failed to import single fund: %w", err)
	}

	s.finish(&batch)
	result.Batch = batch.ImportBatch
	return result, nil
}

// GetBatches returns the most recent import batches, newest first.
func (s *ImportService) GetBatches(ctx context.Context, limit int) ([]model.ImportBatch, error) {
	return s.importRepo.GetBatches(ctx, limit)
}

// PruneBatches deletes import batches created before cutoff.
func (s *ImportService) PruneBatches(ctx context.Context, cutoff time.Time) (int64, error) {
	return s.importRepo.DeleteBatchesBefore(ctx, cutoff)
}

type batchBuilder struct {
	model.ImportBatch
}

func (b *batchBuilder) warn(msg string) {
	b.Warnings = append(b.Warnings, msg)
}

func (b *batchBuilder) skip(msg string) {
	b.RowsSkipped++
	b.warn(msg)
}

func (s *ImportService) newBatch(format, fileName string, rowsTotal int) batchBuilder {
	return batchBuilder{model.ImportBatch{
		ID:        uuid.New().String(),
		Format:    format,
		FileName:  fileName,
		RowsTotal: rowsTotal,
		Warnings:  []string{},
		CreatedAt: s.now().UTC().Truncate(time.Second),
	}}
}

// finish logs and reports a committed batch.
func (s *ImportService) finish(batch *batchBuilder) {
	for _, warning := range batch.Warnings {
		s.logger.Warn("import warning",
			zap.String("batch_id", batch.ID),
			zap.String("format", batch.Format),
			zap.String("warning", warning),
		)
	}

	s.logger.Info("import completed",
		zap.String("batch_id", batch.ID),
		zap.String("format", batch.Format),
		zap.String("file_name", batch.FileName),
		zap.Int("rows_total", batch.RowsTotal),
		zap.Int("rows_imported", batch.RowsImported),
		zap.Int("rows_skipped", batch.RowsSkipped),
	)

	if s.observer != nil {
		s.observer.ObserveImport(batch.Format, batch.RowsImported, batch.RowsSkipped)
	}
}
