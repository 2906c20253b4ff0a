package testutil

import (
	"database/sql"
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/repository"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/service"
)

func NewTestFundService(t *testing.T, db *sql.DB) *service.FundService {
	t.Helper()

	return service.NewFundService(
		repository.NewFundRepository(db, TestUserID),
		repository.NewCashflowRepository(db, TestUserID),
	)
}

func NewTestCashflowService(t *testing.T, db *sql.DB) *service.CashflowService {
	t.Helper()

	return service.NewCashflowService(
		repository.NewCashflowRepository(db, TestUserID),
		repository.NewFundRepository(db, TestUserID),
	)
}

func NewTestGeneralFundService(t *testing.T, db *sql.DB) *service.GeneralFundService {
	t.Helper()

	return service.NewGeneralFundService(db, repository.NewGeneralFundRepository(db, TestUserID))
}

func NewTestPortfolioService(t *testing.T, db *sql.DB) *service.PortfolioService {
	t.Helper()

	return service.NewPortfolioService(
		repository.NewPortfolioRepository(db, TestUserID),
		repository.NewGeneralFundRepository(db, TestUserID),
	)
}

// NewTestImportService creates an ImportService with a no-op logger and no metrics observer.
func NewTestImportService(t *testing.T, db *sql.DB) *service.ImportService {
	t.Helper()

	return service.NewImportService(
		db,
		repository.NewFundRepository(db, TestUserID),
		repository.NewCashflowRepository(db, TestUserID),
		repository.NewGeneralFundRepository(db, TestUserID),
		repository.NewImportRepository(db, TestUserID),
		nil,
		zap.NewNop(),
	)
}

func NewTestDashboardService(t *testing.T, db *sql.DB) *service.DashboardService {
	t.Helper()

	return service.NewDashboardService(
		repository.NewFundRepository(db, TestUserID),
		repository.NewCashflowRepository(db, TestUserID),
		repository.NewGeneralFundRepository(db, TestUserID),
		repository.NewPortfolioRepository(db, TestUserID),
	)
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()
	return service.NewSystemService(db)
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// MakePortfolioName generates a unique portfolio name for testing.
//
// Example usage:
//
//	name := testutil.MakePortfolioName("MyPortfolio")
//	// Returns: "MyPortfolio ABC123"
func MakePortfolioName(base string) string {
	if base == "" {
		base = "Portfolio"
	}
	return base + " " + randomAlphanumeric(6)
}

// MakeFundName generates a unique fund name for testing.
//
// Example usage:
//
//	name := testutil.MakeFundName("Buyout Fund")
//	// Returns: "Buyout Fund XYZ789"
func MakeFundName(base string) string {
	if base == "" {
		base = "Fund"
	}
	return base + " " + randomAlphanumeric(6)
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}
