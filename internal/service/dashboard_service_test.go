package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/testutil"
)

// TestDashboardService_GetOverview tests the dashboard summary.
//
// WHY: The dashboard loads four tables concurrently over a single connection.
// The totals must match the per-fund metrics and an empty database must still
// produce a well-formed payload.
func TestDashboardService_GetOverview(t *testing.T) {
	ctx := context.Background()

	t.Run("empty database", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestDashboardService(t, db)

		overview, err := svc.GetOverview(ctx)

		require.NoError(t, err)
		assert.Equal(t, 0, overview.FundCount)
		assert.Equal(t, 0.0, overview.Multiple)
		assert.NotNil(t, overview.Funds)
		assert.NotNil(t, overview.Portfolios)
	})

	t.Run("summarizes funds and counts", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestDashboardService(t, db)

		a := testutil.NewFund().WithName("A").WithCommitment(1_000).Build(t, db)
		b := testutil.NewFund().WithName("B").WithCommitment(3_000).Build(t, db)
		testutil.NewCashflow(a.ID).WithPeriod(2021, 1).WithAmounts(500, 100, 450).Build(t, db)
		testutil.NewCashflow(b.ID).WithPeriod(2021, 1).WithAmounts(1_000, 0, 900).Build(t, db)
		testutil.NewCashflow(b.ID).WithPeriod(2022, 1).WithAmounts(500, 300, 1_250).Build(t, db)
		testutil.NewGeneralFund().Build(t, db)
		testutil.CreatePortfolio(t, db, "Core")

		overview, err := svc.GetOverview(ctx)

		require.NoError(t, err)
		assert.Equal(t, 2, overview.FundCount)
		assert.Equal(t, 1, overview.GeneralFundCount)
		assert.Equal(t, 1, overview.PortfolioCount)
		assert.Equal(t, 4_000.0, overview.TotalCommitment)
		assert.Equal(t, 2_000.0, overview.TotalCalls)
		assert.Equal(t, 400.0, overview.TotalDistributions)
		assert.Equal(t, 1_700.0, overview.TotalNAV)
		assert.Equal(t, 1.05, overview.Multiple)
		require.Len(t, overview.Funds, 2)
		assert.Equal(t, 1_500.0, overview.Funds[1].Metrics.TotalCalls)
	})

	t.Run("fails on a closed database", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestDashboardService(t, db)
		db.Close()

		_, err := svc.GetOverview(ctx)

		assert.Error(t, err)
	})
}
