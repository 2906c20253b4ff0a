package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/apperrors"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/model"
)

// PortfolioRepository provides data access methods for the portfolio and
// portfolio_position tables.
type PortfolioRepository struct {
	db     *sql.DB
	tx     *sql.Tx
	userID string
}

// NewPortfolioRepository creates a new PortfolioRepository with the provided database connection.
func NewPortfolioRepository(db *sql.DB, userID string) *PortfolioRepository {
	return &PortfolioRepository{db: db, userID: userID}
}

func (r *PortfolioRepository) WithTx(tx *sql.Tx) *PortfolioRepository {
	return &PortfolioRepository{
		db:     r.db,
		tx:     tx,
		userID: r.userID,
	}
}

func (r *PortfolioRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// GetPortfolios retrieves all portfolios ordered by name.
// Returns an empty slice if no portfolios exist.
func (r *PortfolioRepository) GetPortfolios(ctx context.Context) ([]model.Portfolio, error) {
	query := `
          SELECT id, name, description, total_size
          FROM portfolio
          WHERE user_id = ?
          ORDER BY name COLLATE NOCASE, id
      `

	rows, err := r.getQuerier().QueryContext(ctx, query, r.userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolios table: %w", err)
	}
	defer rows.Close()

	portfolios := []model.Portfolio{}

	for rows.Next() {
		var p model.Portfolio

		err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Description,
			&p.TotalSize,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan portfolio table results: %w", err)
		}

		portfolios = append(portfolios, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating portfolios table: %w", err)
	}

	return portfolios, nil
}

func (r *PortfolioRepository) GetPortfolioOnID(ctx context.Context, portfolioID string) (model.Portfolio, error) {
	query := `
          SELECT id, name, description, total_size
          FROM portfolio
          WHERE id = ? AND user_id = ?
      `
	var p model.Portfolio

	err := r.getQuerier().QueryRowContext(ctx, query, portfolioID, r.userID).Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.TotalSize,
	)
	if err == sql.ErrNoRows {
		return model.Portfolio{}, apperrors.ErrPortfolioNotFound
	}
	if err != nil {
		return model.Portfolio{}, fmt.Errorf("failed to query portfolio: %w", err)
	}

	return p, nil
}

func (r *PortfolioRepository) InsertPortfolio(ctx context.Context, p *model.Portfolio) error {
	query := `
        INSERT INTO portfolio (id, user_id, name, description, total_size)
        VALUES (?, ?, ?, ?, ?)
    `

	_, err := r.getQuerier().ExecContext(ctx, query, p.ID, r.userID, p.Name, p.Description, p.TotalSize)
	if err != nil {
		return fmt.Errorf("failed to insert portfolio: %w", err)
	}

	return nil
}

func (r *PortfolioRepository) UpdatePortfolio(ctx context.Context, p *model.Portfolio) error {
	query := `
        UPDATE portfolio
        SET name = ?, description = ?, total_size = ?
        WHERE id = ? AND user_id = ?
    `

	result, err := r.getQuerier().ExecContext(ctx, query, p.Name, p.Description, p.TotalSize, p.ID, r.userID)
	if err != nil {
		return fmt.Errorf("failed to update portfolio: %w", err)
	}

	return affectedOrNotFound(result, apperrors.ErrPortfolioNotFound)
}

// DeletePortfolio removes a portfolio; its positions are removed by cascade.
func (r *PortfolioRepository) DeletePortfolio(ctx context.Context, portfolioID string) error {
	query := `DELETE FROM portfolio WHERE id = ? AND user_id = ?`

	result, err := r.getQuerier().ExecContext(ctx, query, portfolioID, r.userID)
	if err != nil {
		return fmt.Errorf("failed to delete portfolio: %w", err)
	}

	return affectedOrNotFound(result, apperrors.ErrPortfolioNotFound)
}

// GetPositions retrieves the positions of a portfolio joined with their
// general fund names, ordered by fund name. AllocationPercentage is left at 0;
// it is derived by the service from the portfolio's total size.
func (r *PortfolioRepository) GetPositions(ctx context.Context, portfolioID string) ([]model.PortfolioPosition, error) {
	query := `
		SELECT pp.id, pp.portfolio_id, pp.fund_id, gf.name, pp.commitment_amount
		FROM portfolio_position pp
		INNER JOIN general_fund gf ON gf.id = pp.fund_id
		WHERE pp.portfolio_id = ? AND pp.user_id = ?
		ORDER BY gf.name COLLATE NOCASE, pp.id
	`

	rows, err := r.getQuerier().QueryContext(ctx, query, portfolioID, r.userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolio_position or general_fund table: %w", err)
	}
	defer rows.Close()

	positions := []model.PortfolioPosition{}

	for rows.Next() {
		var p model.PortfolioPosition

		err := rows.Scan(
			&p.ID,
			&p.PortfolioID,
			&p.FundID,
			&p.FundName,
			&p.CommitmentAmount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan portfolio_position table results: %w", err)
		}

		positions = append(positions, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating portfolio_position table: %w", err)
	}

	return positions, nil
}

// UpsertPosition adds a general fund to a portfolio, or updates the commitment
// when the fund is already part of it. p.ID is set to the stored ID.
func (r *PortfolioRepository) UpsertPosition(ctx context.Context, p *model.PortfolioPosition) error {
	query := `
        INSERT INTO portfolio_position (id, user_id, portfolio_id, fund_id, commitment_amount)
        VALUES (?, ?, ?, ?, ?)
        ON CONFLICT (portfolio_id, fund_id) DO UPDATE SET
            commitment_amount = excluded.commitment_amount
        RETURNING id
    `

	err := r.getQuerier().QueryRowContext(ctx, query,
		p.ID,
		r.userID,
		p.PortfolioID,
		p.FundID,
		p.CommitmentAmount,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert portfolio position: %w", err)
	}

	return nil
}

func (r *PortfolioRepository) DeletePosition(ctx context.Context, positionID string) error {
	query := `DELETE FROM portfolio_position WHERE id = ? AND user_id = ?`

	result, err := r.getQuerier().ExecContext(ctx, query, positionID, r.userID)
	if err != nil {
		return fmt.Errorf("failed to delete portfolio position: %w", err)
	}

	return affectedOrNotFound(result, apperrors.ErrPositionNotFound)
}
