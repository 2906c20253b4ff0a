package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/api/request"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/apperrors"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/testutil"
)

// TestGeneralFundService tests general fund management.
//
// WHY: Setting net cashflows replaces the whole series. Years missing from the
// request must disappear, and the sign of each net value decides whether it is
// stored as a contribution or a distribution.
func TestGeneralFundService(t *testing.T) {
	ctx := context.Background()

	t.Run("creates and updates a general fund", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestGeneralFundService(t, db)

		created, err := svc.CreateGeneralFund(ctx, request.CreateGeneralFundRequest{
			Name:     "Northwind Infra II",
			Vintage:  2019,
			FundType: "Infrastructure",
		})
		if err != nil {
			t.Fatalf("CreateGeneralFund() returned unexpected error: %v", err)
		}
		geography := "Europe"

		// Execute
		updated, err := svc.UpdateGeneralFund(ctx, created.ID, request.UpdateGeneralFundRequest{Geography: &geography})

		// Assert
		if err != nil {
			t.Fatalf("UpdateGeneralFund() returned unexpected error: %v", err)
		}
		if updated.Geography != "Europe" || updated.Name != "Northwind Infra II" {
			t.Errorf("Expected Northwind Infra II in Europe, got %s in %s", updated.Name, updated.Geography)
		}
	})

	t.Run("set net cashflows replaces the series", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestGeneralFundService(t, db)
		gf := testutil.NewGeneralFund().Build(t, db)
		testutil.CreateNetCashflow(t, db, gf.ID, 2015, -0.4)

		// Execute
		rows, err := svc.SetNetCashflows(ctx, gf.ID, request.SetNetCashflowsRequest{
			Cashflows: []request.NetCashflowEntry{
				{Year: 2021, NetCashflowPercentage: 0.3},
				{Year: 2020, NetCashflowPercentage: -0.2, NAVPercentage: floatPtr(0.19)},
			},
		})

		// Assert
		if err != nil {
			t.Fatalf("SetNetCashflows() returned unexpected error: %v", err)
		}
		if len(rows) != 2 {
			t.Fatalf("Expected 2 rows, got %d", len(rows))
		}
		if rows[0].Year != 2020 || rows[0].ContributionsPercentage != -0.2 || rows[0].DistributionsPercentage != 0 {
			t.Errorf("Expected 2020 contribution -0.2, got %+v", rows[0])
		}
		if rows[0].NAVPercentage != 0.19 {
			t.Errorf("Expected NAV percentage 0.19, got %f", rows[0].NAVPercentage)
		}
		if rows[1].DistributionsPercentage != 0.3 || rows[1].ContributionsPercentage != 0 {
			t.Errorf("Expected 2021 distribution 0.3, got %+v", rows[1])
		}
	})

	t.Run("empty request clears the series", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestGeneralFundService(t, db)
		gf := testutil.NewGeneralFund().Build(t, db)
		testutil.CreateNetCashflow(t, db, gf.ID, 2020, -0.4)

		// Execute
		rows, err := svc.SetNetCashflows(ctx, gf.ID, request.SetNetCashflowsRequest{})

		// Assert
		if err != nil {
			t.Fatalf("SetNetCashflows() returned unexpected error: %v", err)
		}
		if len(rows) != 0 {
			t.Errorf("Expected no rows, got %d", len(rows))
		}
	})

	t.Run("unknown general fund returns not found", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestGeneralFundService(t, db)

		// Execute
		_, err := svc.GetNetCashflows(ctx, testutil.MakeID())

		// Assert
		if !errors.Is(err, apperrors.ErrGeneralFundNotFound) {
			t.Errorf("Expected ErrGeneralFundNotFound, got %v", err)
		}
	})

	t.Run("delete removes cashflows and positions", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestGeneralFundService(t, db)
		gf := testutil.NewGeneralFund().Build(t, db)
		p := testutil.CreatePortfolio(t, db, "Core")
		testutil.CreatePosition(t, db, p.ID, gf.ID, 1_000)
		testutil.CreateNetCashflow(t, db, gf.ID, 2020, -0.1)

		// Execute
		err := svc.DeleteGeneralFund(ctx, gf.ID)

		// Assert
		if err != nil {
			t.Fatalf("DeleteGeneralFund() returned unexpected error: %v", err)
		}
		testutil.AssertRowCount(t, db, "general_fund_net_cashflow", 0)
		testutil.AssertRowCount(t, db, "portfolio_position", 0)
		testutil.AssertRowCount(t, db, "portfolio", 1)
	})
}
