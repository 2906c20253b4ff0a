package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/apperrors"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/model"
)

// CashflowRepository provides data access methods for the cashflow table.
type CashflowRepository struct {
	db     *sql.DB
	tx     *sql.Tx
	userID string
}

// NewCashflowRepository creates a new CashflowRepository with the provided database connection.
func NewCashflowRepository(db *sql.DB, userID string) *CashflowRepository {
	return &CashflowRepository{db: db, userID: userID}
}

func (r *CashflowRepository) WithTx(tx *sql.Tx) *CashflowRepository {
	return &CashflowRepository{
		db:     r.db,
		tx:     tx,
		userID: r.userID,
	}
}

func (r *CashflowRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

const cashflowColumns = `id, fund_id, year, quarter, calls, distributions, nav, management_fees, carried_interest, taxes`

func scanCashflow(scan func(dest ...any) error) (model.CashflowRecord, error) {
	var c model.CashflowRecord
	var fees, carry, taxes sql.NullFloat64

	err := scan(
		&c.ID,
		&c.FundID,
		&c.Year,
		&c.Quarter,
		&c.Calls,
		&c.Distributions,
		&c.NAV,
		&fees,
		&carry,
		&taxes,
	)
	if err != nil {
		return model.CashflowRecord{}, err
	}

	c.ManagementFees = floatPtr(fees)
	c.CarriedInterest = floatPtr(carry)
	c.Taxes = floatPtr(taxes)
	return c, nil
}

// GetCashflows retrieves cashflow records ordered by fund, year and quarter.
// An empty fundID returns the records of all funds.
// Returns an empty slice if no records are found.
func (r *CashflowRepository) GetCashflows(ctx context.Context, fundID string) ([]model.CashflowRecord, error) {
	query := `SELECT ` + cashflowColumns + ` FROM cashflow WHERE user_id = ?`
	args := []any{r.userID}

	if fundID != "" {
		query += ` AND fund_id = ?`
		args = append(args, fundID)
	}
	query += ` ORDER BY fund_id, year, quarter`

	rows, err := r.getQuerier().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query cashflow table: %w", err)
	}
	defer rows.Close()

	records := []model.CashflowRecord{}

	for rows.Next() {
		c, err := scanCashflow(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cashflow table results: %w", err)
		}
		records = append(records, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cashflow table: %w", err)
	}

	return records, nil
}

// GetCashflow retrieves a single cashflow record by ID.
// Returns ErrCashflowNotFound if the record does not exist.
func (r *CashflowRepository) GetCashflow(ctx context.Context, cashflowID string) (model.CashflowRecord, error) {
	query := `SELECT ` + cashflowColumns + ` FROM cashflow WHERE id = ? AND user_id = ?`

	c, err := scanCashflow(r.getQuerier().QueryRowContext(ctx, query, cashflowID, r.userID).Scan)
	if err == sql.ErrNoRows {
		return model.CashflowRecord{}, apperrors.ErrCashflowNotFound
	}
	if err != nil {
		return model.CashflowRecord{}, fmt.Errorf("failed to query cashflow: %w", err)
	}

	return c, nil
}

// InsertCashflow inserts a new record. Returns ErrDuplicateEntry when the fund
// already has a record for the same (year, quarter).
func (r *CashflowRepository) InsertCashflow(ctx context.Context, c *model.CashflowRecord) error {
	query := `
        INSERT INTO cashflow (id, user_id, fund_id, year, quarter, calls, distributions, nav, management_fees, carried_interest, taxes)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `

	_, err := r.getQuerier().ExecContext(ctx, query,
		c.ID,
		r.userID,
		c.FundID,
		c.Year,
		c.Quarter,
		c.Calls,
		c.Distributions,
		c.NAV,
		nullableFloat(c.ManagementFees),
		nullableFloat(c.CarriedInterest),
		nullableFloat(c.Taxes),
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: cashflow for %d Q%d", apperrors.ErrDuplicateEntry, c.Year, c.Quarter)
	}
	if err != nil {
		return fmt.Errorf("failed to insert cashflow: %w", err)
	}

	return nil
}

// UpsertCashflow inserts a record or overwrites the amounts of the existing
// record for the same (fund, year, quarter). c.ID is set to the stored ID.
func (r *CashflowRepository) UpsertCashflow(ctx context.Context, c *model.CashflowRecord) error {
	query := `
        INSERT INTO cashflow (id, user_id, fund_id, year, quarter, calls, distributions, nav, management_fees, carried_interest, taxes)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT (fund_id, year, quarter) DO UPDATE SET
            calls = excluded.calls,
            distributions = excluded.distributions,
            nav = excluded.nav,
            management_fees = excluded.management_fees,
            carried_interest = excluded.carried_interest,
            taxes = excluded.taxes
        RETURNING id
    `

	err := r.getQuerier().QueryRowContext(ctx, query,
		c.ID,
		r.userID,
		c.FundID,
		c.Year,
		c.Quarter,
		c.Calls,
		c.Distributions,
		c.NAV,
		nullableFloat(c.ManagementFees),
		nullableFloat(c.CarriedInterest),
		nullableFloat(c.Taxes),
	).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert cashflow: %w", err)
	}

	return nil
}

func (r *CashflowRepository) UpdateCashflow(ctx context.Context, c *model.CashflowRecord) error {
	query := `
        UPDATE cashflow
        SET year = ?, quarter = ?, calls = ?, distributions = ?, nav = ?,
            management_fees = ?, carried_interest = ?, taxes = ?
        WHERE id = ? AND user_id = ?
    `

	result, err := r.getQuerier().ExecContext(ctx, query,
		c.Year,
		c.Quarter,
		c.Calls,
		c.Distributions,
		c.NAV,
		nullableFloat(c.ManagementFees),
		nullableFloat(c.CarriedInterest),
		nullableFloat(c.Taxes),
		c.ID,
		r.userID,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: cashflow for %d Q%d", apperrors.ErrDuplicateEntry, c.Year, c.Quarter)
	}
	if err != nil {
		return fmt.Errorf("failed to update cashflow: %w", err)
	}

	return affectedOrNotFound(result, apperrors.ErrCashflowNotFound)
}

func (r *CashflowRepository) DeleteCashflow(ctx context.Context, cashflowID string) error {
	query := `DELETE FROM cashflow WHERE id = ? AND user_id = ?`

	result, err := r.getQuerier().ExecContext(ctx, query, cashflowID, r.userID)
	if err != nil {
		return fmt.Errorf("failed to delete cashflow: %w", err)
	}

	return affectedOrNotFound(result, apperrors.ErrCashflowNotFound)
}

// DeleteCashflowsForFund removes every record of a fund and returns how many were removed.
func (r *CashflowRepository) DeleteCashflowsForFund(ctx context.Context, fundID string) (int64, error) {
	query := `DELETE FROM cashflow WHERE fund_id = ? AND user_id = ?`

	result, err := r.getQuerier().ExecContext(ctx, query, fundID, r.userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete cashflows of fund: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return deleted, nil
}
