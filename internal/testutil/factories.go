package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/model"
)

// FundBuilder provides a fluent interface for creating test funds.
//
// Example usage:
//
//	// Simple creation with defaults
//	fund := testutil.NewFund().Build(t, db)
//
//	// Customized fund
//	fund := testutil.NewFund().
//	    WithName("Alpha Buyout Fund I").
//	    WithCommitment(5_000_000).
//	    Build(t, db)
type FundBuilder struct {
	ID               string
	Name             string
	Vintage          int
	CommitmentAmount float64
	FundType         string
	UserID           string
}

// NewFund creates a FundBuilder with sensible defaults: a 10M Buyout fund of vintage 2020.
func NewFund() *FundBuilder {
	return &FundBuilder{
		ID:               MakeID(),
		Name:             MakeFundName("Test Fund"),
		Vintage:          2020,
		CommitmentAmount: 10_000_000,
		FundType:         "Buyout",
		UserID:           TestUserID,
	}
}

// WithName sets a custom name.
func (b *FundBuilder) WithName(name string) *FundBuilder {
	b.Name = name
	return b
}

// WithVintage sets a custom vintage year.
func (b *FundBuilder) WithVintage(vintage int) *FundBuilder {
	b.Vintage = vintage
	return b
}

// WithCommitment sets a custom commitment amount.
func (b *FundBuilder) WithCommitment(amount float64) *FundBuilder {
	b.CommitmentAmount = amount
	return b
}

// WithFundType sets a custom fund type.
func (b *FundBuilder) WithFundType(fundType string) *FundBuilder {
	b.FundType = fundType
	return b
}

// ForUser stores the fund for another user, for scoping tests.
func (b *FundBuilder) ForUser(userID string) *FundBuilder {
	b.UserID = userID
	return b
}

// Build inserts the fund into the database and returns the model.
func (b *FundBuilder) Build(t *testing.T, db *sql.DB) model.Fund {
	t.Helper()

	query := `
		INSERT INTO fund (id, user_id, name, vintage, commitment_amount, fund_type)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.UserID, b.Name, b.Vintage, b.CommitmentAmount, b.FundType)
	if err != nil {
		t.Fatalf("Failed to create test fund: %v", err)
	}

	return model.Fund{
		ID:               b.ID,
		Name:             b.Name,
		Vintage:          b.Vintage,
		CommitmentAmount: b.CommitmentAmount,
		FundType:         b.FundType,
	}
}

// CreateFund creates a fund with the given name and default values.
func CreateFund(t *testing.T, db *sql.DB, name string) model.Fund {
	t.Helper()
	return NewFund().WithName(name).Build(t, db)
}

// CashflowBuilder provides a fluent interface for creating cashflow records.
type CashflowBuilder struct {
	ID            string
	FundID        string
	Year          int
	Quarter       int
	Calls         float64
	Distributions float64
	NAV           float64
}

// NewCashflow creates a CashflowBuilder for fundID in 2021 Q1 with zero amounts.
func NewCashflow(fundID string) *CashflowBuilder {
	return &CashflowBuilder{
		ID:      MakeID(),
		FundID:  fundID,
		Year:    2021,
		Quarter: 1,
	}
}

// WithPeriod sets the year and quarter.
func (b *CashflowBuilder) WithPeriod(year, quarter int) *CashflowBuilder {
	b.Year = year
	b.Quarter = quarter
	return b
}

// WithAmounts sets calls, distributions and NAV.
func (b *CashflowBuilder) WithAmounts(calls, distributions, nav float64) *CashflowBuilder {
	b.Calls = calls
	b.Distributions = distributions
	b.NAV = nav
	return b
}

func (b *CashflowBuilder) Build(t *testing.T, db *sql.DB) model.CashflowRecord {
	t.Helper()

	query := `
		INSERT INTO cashflow (id, user_id, fund_id, year, quarter, calls, distributions, nav)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, TestUserID, b.FundID, b.Year, b.Quarter, b.Calls, b.Distributions, b.NAV)
	if err != nil {
		t.Fatalf("Failed to create test cashflow: %v", err)
	}

	return model.CashflowRecord{
		ID:            b.ID,
		FundID:        b.FundID,
		Year:          b.Year,
		Quarter:       b.Quarter,
		Calls:         b.Calls,
		Distributions: b.Distributions,
		NAV:           b.NAV,
	}
}

// GeneralFundBuilder provides a fluent interface for creating general funds.
type GeneralFundBuilder struct {
	ID        string
	Name      string
	Vintage   int
	FundType  string
	Subtype   string
	Geography string
}

// NewGeneralFund creates a GeneralFundBuilder for a 2020 Buyout fund.
func NewGeneralFund() *GeneralFundBuilder {
	return &GeneralFundBuilder{
		ID:        MakeID(),
		Name:      MakeFundName("General Fund"),
		Vintage:   2020,
		FundType:  "Buyout",
		Subtype:   "Mid Market",
		Geography: "North America",
	}
}

// WithName sets a custom name.
func (b *GeneralFundBuilder) WithName(name string) *GeneralFundBuilder {
	b.Name = name
	return b
}

// WithVintage sets a custom vintage year.
func (b *GeneralFundBuilder) WithVintage(vintage int) *GeneralFundBuilder {
	b.Vintage = vintage
	return b
}

func (b *GeneralFundBuilder) Build(t *testing.T, db *sql.DB) model.GeneralFund {
	t.Helper()

	query := `
		INSERT INTO general_fund (id, user_id, name, vintage, fund_type, subtype, geography)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, TestUserID, b.Name, b.Vintage, b.FundType, b.Subtype, b.Geography)
	if err != nil {
		t.Fatalf("Failed to create test general fund: %v", err)
	}

	return model.GeneralFund{
		ID:        b.ID,
		Name:      b.Name,
		Vintage:   b.Vintage,
		FundType:  b.FundType,
		Subtype:   b.Subtype,
		Geography: b.Geography,
	}
}

// CreateNetCashflow stores one year of a general fund, splitting net by sign.
//
// Example usage:
//
//	testutil.CreateNetCashflow(t, db, gf.ID, 2020, -0.25) // 25% called in 2020
func CreateNetCashflow(t *testing.T, db *sql.DB, fundID string, year int, net float64) model.GeneralFundNetCashflow {
	t.Helper()

	c := model.GeneralFundNetCashflow{
		ID:                    MakeID(),
		FundID:                fundID,
		Year:                  year,
		NetCashflowPercentage: net,
	}
	if net < 0 {
		c.ContributionsPercentage = net
	} else {
		c.DistributionsPercentage = net
	}

	query := `
		INSERT INTO general_fund_net_cashflow
			(id, user_id, fund_id, year, net_cashflow_percentage, contributions_percentage, distributions_percentage)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, c.ID, TestUserID, c.FundID, c.Year, c.NetCashflowPercentage, c.ContributionsPercentage, c.DistributionsPercentage)
	if err != nil {
		t.Fatalf("Failed to create test net cashflow: %v", err)
	}

	return c
}

// PortfolioBuilder provides a fluent interface for creating test portfolios.
//
// Example usage:
//
//	portfolio := testutil.NewPortfolio().
//	    WithName("Core").
//	    WithTotalSize(50_000_000).
//	    Build(t, db)
type PortfolioBuilder struct {
	ID          string
	Name        string
	Description string
	TotalSize   float64
}

// NewPortfolio creates a PortfolioBuilder with sensible defaults.
func NewPortfolio() *PortfolioBuilder {
	return &PortfolioBuilder{
		ID:          MakeID(),
		Name:        MakePortfolioName("Test Portfolio"),
		Description: "Test description",
		TotalSize:   100_000_000,
	}
}

// WithName sets a custom name.
func (b *PortfolioBuilder) WithName(name string) *PortfolioBuilder {
	b.Name = name
	return b
}

// WithTotalSize sets a custom total size.
func (b *PortfolioBuilder) WithTotalSize(size float64) *PortfolioBuilder {
	b.TotalSize = size
	return b
}

func (b *PortfolioBuilder) Build(t *testing.T, db *sql.DB) model.Portfolio {
	t.Helper()

	query := `
		INSERT INTO portfolio (id, user_id, name, description, total_size)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, TestUserID, b.Name, b.Description, b.TotalSize)
	if err != nil {
		t.Fatalf("Failed to create test portfolio: %v", err)
	}

	return model.Portfolio{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		TotalSize:   b.TotalSize,
	}
}

// CreatePortfolio creates a portfolio with the given name and default values.
func CreatePortfolio(t *testing.T, db *sql.DB, name string) model.Portfolio {
	t.Helper()
	return NewPortfolio().WithName(name).Build(t, db)
}

// CreatePosition commits amount to a general fund within a portfolio.
func CreatePosition(t *testing.T, db *sql.DB, portfolioID, fundID string, amount float64) model.PortfolioPosition {
	t.Helper()

	p := model.PortfolioPosition{
		ID:               MakeID(),
		PortfolioID:      portfolioID,
		FundID:           fundID,
		CommitmentAmount: amount,
	}

	query := `
		INSERT INTO portfolio_position (id, user_id, portfolio_id, fund_id, commitment_amount)
		VALUES (?, ?, ?, ?, ?)
	`

	if _, err := db.Exec(query, p.ID, TestUserID, p.PortfolioID, p.FundID, p.CommitmentAmount); err != nil {
		t.Fatalf("Failed to create test position: %v", err)
	}

	return p
}

// CreateImportBatch stores an audit record created at createdAt.
func CreateImportBatch(t *testing.T, db *sql.DB, format string, createdAt time.Time) model.ImportBatch {
	t.Helper()

	b := model.ImportBatch{
		ID:        MakeID(),
		Format:    format,
		FileName:  "upload.csv",
		Warnings:  []string{},
		CreatedAt: createdAt.UTC().Truncate(time.Second),
	}

	query := `
		INSERT INTO import_batch (id, user_id, format, file_name, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	if _, err := db.Exec(query, b.ID, TestUserID, b.Format, b.FileName, b.CreatedAt.Format(time.RFC3339)); err != nil {
		t.Fatalf("Failed to create test import batch: %v", err)
	}

	return b
}
