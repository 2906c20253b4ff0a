package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/apperrors"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/model"
)

// FundRepository provides data access methods for the fund table.
// Every query is scoped to the configured user.
type FundRepository struct {
	db     *sql.DB
	tx     *sql.Tx
	userID string
}

// NewFundRepository creates a new FundRepository with the provided database connection.
func NewFundRepository(db *sql.DB, userID string) *FundRepository {
	return &FundRepository{db: db, userID: userID}
}

func (r *FundRepository) WithTx(tx *sql.Tx) *FundRepository {
	return &FundRepository{
		db:     r.db,
		tx:     tx,
		userID: r.userID,
	}
}

func (r *FundRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

const fundColumns = `id, name, vintage, commitment_amount, fund_type, management_fee_rate, carried_interest_rate, tax_rate`

func scanFund(scan func(dest ...any) error) (model.Fund, error) {
	var f model.Fund
	var fee, carry, tax sql.NullFloat64

	err := scan(
		&f.ID,
		&f.Name,
		&f.Vintage,
		&f.CommitmentAmount,
		&f.FundType,
		&fee,
		&carry,
		&tax,
	)
	if err != nil {
		return model.Fund{}, err
	}

	f.ManagementFeeRate = floatPtr(fee)
	f.CarriedInterestRate = floatPtr(carry)
	f.TaxRate = floatPtr(tax)
	return f, nil
}

// GetFunds retrieves all funds ordered by name.
// Returns an empty slice if no funds are found.
func (r *FundRepository) GetFunds(ctx context.Context) ([]model.Fund, error) {
	query := `SELECT ` + fundColumns + ` FROM fund WHERE user_id = ? ORDER BY name COLLATE NOCASE, id`

	rows, err := r.getQuerier().QueryContext(ctx, query, r.userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query fund table: %w", err)
	}
	defer rows.Close()

	funds := []model.Fund{}

	for rows.Next() {
		f, err := scanFund(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fund table results: %w", err)
		}
		funds = append(funds, f)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fund table: %w", err)
	}

	return funds, nil
}

// GetFund retrieves a single fund by ID.
// Returns ErrFundNotFound if no such fund exists for the user.
func (r *FundRepository) GetFund(ctx context.Context, fundID string) (model.Fund, error) {
	query := `SELECT ` + fundColumns + ` FROM fund WHERE id = ? AND user_id = ?`

	f, err := scanFund(r.getQuerier().QueryRowContext(ctx, query, fundID, r.userID).Scan)
	if err == sql.ErrNoRows {
		return model.Fund{}, apperrors.ErrFundNotFound
	}
	if err != nil {
		return model.Fund{}, fmt.Errorf("failed to query fund: %w", err)
	}

	return f, nil
}

func (r *FundRepository) InsertFund(ctx context.Context, f *model.Fund) error {
	query := `
        INSERT INTO fund (id, user_id, name, vintage, commitment_amount, fund_type, management_fee_rate, carried_interest_rate, tax_rate)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
    `

	_, err := r.getQuerier().ExecContext(ctx, query,
		f.ID,
		r.userID,
		f.Name,
		f.Vintage,
		f.CommitmentAmount,
		f.FundType,
		nullableFloat(f.ManagementFeeRate),
		nullableFloat(f.CarriedInterestRate),
		nullableFloat(f.TaxRate),
	)
	if err != nil {
		return fmt.Errorf("failed to insert fund: %w", err)
	}

	return nil
}

func (r *FundRepository) UpdateFund(ctx context.Context, f *model.Fund) error {
	query := `
        UPDATE fund
        SET name = ?, vintage = ?, commitment_amount = ?, fund_type = ?,
            management_fee_rate = ?, carried_interest_rate = ?, tax_rate = ?
        WHERE id = ? AND user_id = ?
    `

	result, err := r.getQuerier().ExecContext(ctx, query,
		f.Name,
		f.Vintage,
		f.CommitmentAmount,
		f.FundType,
		nullableFloat(f.ManagementFeeRate),
		nullableFloat(f.CarriedInterestRate),
		nullableFloat(f.TaxRate),
		f.ID,
		r.userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update fund: %w", err)
	}

	return affectedOrNotFound(result, apperrors.ErrFundNotFound)
}

// DeleteFund removes a fund. Its cashflow records are removed by the
// ON DELETE CASCADE constraint.
func (r *FundRepository) DeleteFund(ctx context.Context, fundID string) error {
	query := `DELETE FROM fund WHERE id = ? AND user_id = ?`

	result, err := r.getQuerier().ExecContext(ctx, query, fundID, r.userID)
	if err != nil {
		return fmt.Errorf("failed to delete fund: %w", err)
	}

	return affectedOrNotFound(result, apperrors.ErrFundNotFound)
}
