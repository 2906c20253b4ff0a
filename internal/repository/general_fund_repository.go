package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/apperrors"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/model"
)

// GeneralFundRepository provides data access methods for the general_fund and
// general_fund_net_cashflow tables.
type GeneralFundRepository struct {
	db     *sql.DB
	tx     *sql.Tx
	userID string
}

// NewGeneralFundRepository creates a new GeneralFundRepository with the provided database connection.
func NewGeneralFundRepository(db *sql.DB, userID string) *GeneralFundRepository {
	return &GeneralFundRepository{db: db, userID: userID}
}

func (r *GeneralFundRepository) WithTx(tx *sql.Tx) *GeneralFundRepository {
	return &GeneralFundRepository{
		db:     r.db,
		tx:     tx,
		userID: r.userID,
	}
}

func (r *GeneralFundRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// GetGeneralFunds retrieves all general funds ordered by name.
// Returns an empty slice if no general funds are found.
func (r *GeneralFundRepository) GetGeneralFunds(ctx context.Context) ([]model.GeneralFund, error) {
	query := `
        SELECT id, name, vintage, fund_type, subtype, geography
        FROM general_fund
        WHERE user_id = ?
        ORDER BY name COLLATE NOCASE, id
    `

	rows, err := r.getQuerier().QueryContext(ctx, query, r.userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query general_fund table: %w", err)
	}
	defer rows.Close()

	funds := []model.GeneralFund{}

	for rows.Next() {
		var f model.GeneralFund

		err := rows.Scan(
			&f.ID,
			&f.Name,
			&f.Vintage,
			&f.FundType,
			&f.Subtype,
			&f.Geography,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan general_fund table results: %w", err)
		}
		funds = append(funds, f)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating general_fund table: %w", err)
	}

	return funds, nil
}

// GetGeneralFund retrieves a single general fund by ID.
// Returns ErrGeneralFundNotFound if it does not exist.
func (r *GeneralFundRepository) GetGeneralFund(ctx context.Context, fundID string) (model.GeneralFund, error) {
	query := `
        SELECT id, name, vintage, fund_type, subtype, geography
        FROM general_fund
        WHERE id = ? AND user_id = ?
    `

	var f model.GeneralFund

	err := r.getQuerier().QueryRowContext(ctx, query, fundID, r.userID).Scan(
		&f.ID,
		&f.Name,
		&f.Vintage,
		&f.FundType,
		&f.Subtype,
		&f.Geography,
	)
	if err == sql.ErrNoRows {
		return model.GeneralFund{}, apperrors.ErrGeneralFundNotFound
	}
	if err != nil {
		return model.GeneralFund{}, fmt.Errorf("failed to query general fund: %w", err)
	}

	return f, nil
}

func (r *GeneralFundRepository) InsertGeneralFund(ctx context.Context, f *model.GeneralFund) error {
	query := `
        INSERT INTO general_fund (id, user_id, name, vintage, fund_type, subtype, geography)
        VALUES (?, ?, ?, ?, ?, ?, ?)
    `

	_, err := r.getQuerier().ExecContext(ctx, query,
		f.ID,
		r.userID,
		f.Name,
		f.Vintage,
		f.FundType,
		f.Subtype,
		f.Geography,
	)
	if err != nil {
		return fmt.Errorf("failed to insert general fund: %w", err)
	}

	return nil
}

func (r *GeneralFundRepository) UpdateGeneralFund(ctx context.Context, f *model.GeneralFund) error {
	query := `
        UPDATE general_fund
        SET name = ?, vintage = ?, fund_type = ?, subtype = ?, geography = ?
        WHERE id = ? AND user_id = ?
    `

	result, err := r.getQuerier().ExecContext(ctx, query,
		f.Name,
		f.Vintage,
		f.FundType,
		f.Subtype,
		f.Geography,
		f.ID,
		r.userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update general fund: %w", err)
	}

	return affectedOrNotFound(result, apperrors.ErrGeneralFundNotFound)
}

// DeleteGeneralFund removes a general fund together with its net cashflows
// and the portfolio positions that reference it.
func (r *GeneralFundRepository) DeleteGeneralFund(ctx context.Context, fundID string) error {
	query := `DELETE FROM general_fund WHERE id = ? AND user_id = ?`

	result, err := r.getQuerier().ExecContext(ctx, query, fundID, r.userID)
	if err != nil {
		return fmt.Errorf("failed to delete general fund: %w", err)
	}

	return affectedOrNotFound(result, apperrors.ErrGeneralFundNotFound)
}

// GetNetCashflows retrieves the percentage cashflows of the given general
// funds ordered by fund and year. A nil or empty fundIDs returns all rows.
func (r *GeneralFundRepository) GetNetCashflows(ctx context.Context, fundIDs []string) ([]model.GeneralFundNetCashflow, error) {
	query := `
        SELECT id, fund_id, year, net_cashflow_percentage, contributions_percentage, distributions_percentage, nav_percentage
        FROM general_fund_net_cashflow
        WHERE user_id = ?
    `
	args := []any{r.userID}

	if len(fundIDs) > 0 {
		marks, idArgs := placeholders(fundIDs)
		//#nosec G202 -- Safe: placeholders are generated programmatically, not from user input
		query += ` AND fund_id IN (` + marks + `)`
		args = append(args, idArgs...)
	}
	query += ` ORDER BY fund_id, year`

	rows, err := r.getQuerier().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query general_fund_net_cashflow table: %w", err)
	}
	defer rows.Close()

	cashflows := []model.GeneralFundNetCashflow{}

	for rows.Next() {
		var c model.GeneralFundNetCashflow

		err := rows.Scan(
			&c.ID,
			&c.FundID,
			&c.Year,
			&c.NetCashflowPercentage,
			&c.ContributionsPercentage,
			&c.DistributionsPercentage,
			&c.NAVPercentage,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan general_fund_net_cashflow table results: %w", err)
		}
		cashflows = append(cashflows, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating general_fund_net_cashflow table: %w", err)
	}

	return cashflows, nil
}

// UpsertNetCashflow inserts a percentage row or overwrites the existing row
// of the same (fund, year). c.ID is set to the stored ID.
func (r *GeneralFundRepository) UpsertNetCashflow(ctx context.Context, c *model.GeneralFundNetCashflow) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}

	query := `
        INSERT INTO general_fund_net_cashflow
            (id, user_id, fund_id, year, net_cashflow_percentage, contributions_percentage, distributions_percentage, nav_percentage)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT (fund_id, year) DO UPDATE SET
            net_cashflow_percentage = excluded.net_cashflow_percentage,
            contributions_percentage = excluded.contributions_percentage,
            distributions_percentage = excluded.distributions_percentage,
            nav_percentage = excluded.nav_percentage
        RETURNING id
    `

	err := r.getQuerier().QueryRowContext(ctx, query,
		c.ID,
		r.userID,
		c.FundID,
		c.Year,
		c.NetCashflowPercentage,
		c.ContributionsPercentage,
		c.DistributionsPercentage,
		c.NAVPercentage,
	).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert general fund net cashflow: %w", err)
	}

	return nil
}

// DeleteNetCashflows removes all percentage rows of a general fund.
func (r *GeneralFundRepository) DeleteNetCashflows(ctx context.Context, fundID string) error {
	query := `DELETE FROM general_fund_net_cashflow WHERE fund_id = ? AND user_id = ?`

	if _, err := r.getQuerier().ExecContext(ctx, query, fundID, r.userID); err != nil {
		return fmt.Errorf("failed to delete general fund net cashflows: %w", err)
	}

	return nil
}
