package service_test

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/api/request"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/apperrors"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/csvio"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/testutil"
)

func floatPtr(v float64) *float64 { return &v }

// TestFundService_CRUD tests creating, reading, updating and deleting funds.
//
// WHY: Funds are the anchor of every cashflow record. Deleting a fund must
// take its records along, and partial updates must leave omitted fields alone.
func TestFundService_CRUD(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a fund with optional rates", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestFundService(t, db)

		// Execute
		created, err := svc.CreateFund(ctx, request.CreateFundRequest{
			Name:              "Alpha Buyout I",
			Vintage:           2020,
			CommitmentAmount:  10_000_000,
			FundType:          "Buyout",
			ManagementFeeRate: floatPtr(0.02),
		})

		// Assert
		if err != nil {
			t.Fatalf("CreateFund() returned unexpected error: %v", err)
		}

		got, err := svc.GetFund(ctx, created.ID)
		if err != nil {
			t.Fatalf("GetFund() returned unexpected error: %v", err)
		}
		if got.ManagementFeeRate == nil || *got.ManagementFeeRate != 0.02 {
			t.Errorf("Expected management fee rate 0.02, got %v", got.ManagementFeeRate)
		}
		if got.TaxRate != nil {
			t.Errorf("Expected nil tax rate, got %v", *got.TaxRate)
		}
	})

	t.Run("returns empty slice without funds", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestFundService(t, db)

		// Execute
		funds, err := svc.GetAllFunds(ctx)

		// Assert
		if err != nil {
			t.Fatalf("GetAllFunds() returned unexpected error: %v", err)
		}
		if funds == nil || len(funds) != 0 {
			t.Errorf("Expected empty slice, got %v", funds)
		}
	})

	t.Run("does not return funds of other users", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestFundService(t, db)
		other := testutil.NewFund().ForUser("someone-else").Build(t, db)

		// Execute
		_, err := svc.GetFund(ctx, other.ID)

		// Assert
		if !errors.Is(err, apperrors.ErrFundNotFound) {
			t.Errorf("Expected ErrFundNotFound, got %v", err)
		}
	})

	t.Run("partial update keeps other fields", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestFundService(t, db)
		fund := testutil.NewFund().WithVintage(2018).WithCommitment(5_000_000).Build(t, db)
		commitment := 7_500_000.0

		// Execute
		updated, err := svc.UpdateFund(ctx, fund.ID, request.UpdateFundRequest{CommitmentAmount: &commitment})

		// Assert
		if err != nil {
			t.Fatalf("UpdateFund() returned unexpected error: %v", err)
		}
		if updated.CommitmentAmount != 7_500_000 {
			t.Errorf("Expected commitment 7500000, got %f", updated.CommitmentAmount)
		}
		if updated.Vintage != 2018 {
			t.Errorf("Expected vintage 2018, got %d", updated.Vintage)
		}
	})

	t.Run("delete cascades to cashflow records", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestFundService(t, db)
		fund := testutil.NewFund().Build(t, db)
		testutil.NewCashflow(fund.ID).WithPeriod(2021, 1).Build(t, db)
		testutil.NewCashflow(fund.ID).WithPeriod(2021, 2).Build(t, db)

		// Execute
		err := svc.DeleteFund(ctx, fund.ID)

		// Assert
		if err != nil {
			t.Fatalf("DeleteFund() returned unexpected error: %v", err)
		}
		testutil.AssertRowCount(t, db, "fund", 0)
		testutil.AssertRowCount(t, db, "cashflow", 0)

		if err := svc.DeleteFund(ctx, fund.ID); !errors.Is(err, apperrors.ErrFundNotFound) {
			t.Errorf("Expected ErrFundNotFound on second delete, got %v", err)
		}
	})
}

// TestFundService_Metrics tests metric computation through the service.
//
// WHY: Metrics are computed on demand from the stored records and rounded to
// two decimals for display. A fund without records must report zeros.
func TestFundService_Metrics(t *testing.T) {
	ctx := context.Background()

	t.Run("computes metrics from records", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestFundService(t, db)
		fund := testutil.NewFund().WithCommitment(1_000_000).Build(t, db)
		testutil.NewCashflow(fund.ID).WithPeriod(2021, 1).WithAmounts(300_000, 0, 290_000).Build(t, db)
		testutil.NewCashflow(fund.ID).WithPeriod(2022, 4).WithAmounts(0, 100_000, 400_000).Build(t, db)

		// Execute
		metrics, err := svc.GetFundMetrics(ctx, fund.ID)

		// Assert
		if err != nil {
			t.Fatalf("GetFundMetrics() returned unexpected error: %v", err)
		}
		if metrics.TotalCalls != 300_000 {
			t.Errorf("Expected total calls 300000, got %f", metrics.TotalCalls)
		}
		if metrics.CurrentNAV != 400_000 {
			t.Errorf("Expected current NAV 400000, got %f", metrics.CurrentNAV)
		}
		if metrics.NetCashflow != -200_000 {
			t.Errorf("Expected net cashflow -200000, got %f", metrics.NetCashflow)
		}
		if metrics.Multiple != 1.67 {
			t.Errorf("Expected multiple 1.67, got %f", metrics.Multiple)
		}
		if metrics.CalledPercentage != 30 {
			t.Errorf("Expected called percentage 30, got %f", metrics.CalledPercentage)
		}
	})

	t.Run("fund without records reports zeros", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestFundService(t, db)
		fund := testutil.NewFund().Build(t, db)

		// Execute
		metrics, err := svc.GetFundMetrics(ctx, fund.ID)

		// Assert
		if err != nil {
			t.Fatalf("GetFundMetrics() returned unexpected error: %v", err)
		}
		if metrics.TotalCalls != 0 || metrics.Multiple != 0 || metrics.CurrentNAV != 0 {
			t.Errorf("Expected zero metrics, got %+v", metrics)
		}
	})

	t.Run("all fund metrics keep records per fund", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestFundService(t, db)
		a := testutil.NewFund().WithName("A").Build(t, db)
		b := testutil.NewFund().WithName("B").Build(t, db)
		testutil.NewCashflow(a.ID).WithAmounts(100, 0, 0).Build(t, db)
		testutil.NewCashflow(b.ID).WithAmounts(250, 0, 0).Build(t, db)

		// Execute
		all, err := svc.GetAllFundMetrics(ctx)

		// Assert
		if err != nil {
			t.Fatalf("GetAllFundMetrics() returned unexpected error: %v", err)
		}
		if len(all) != 2 {
			t.Fatalf("Expected 2 funds, got %d", len(all))
		}
		if all[0].Metrics.TotalCalls != 100 || all[1].Metrics.TotalCalls != 250 {
			t.Errorf("Expected calls 100 and 250, got %f and %f", all[0].Metrics.TotalCalls, all[1].Metrics.TotalCalls)
		}
	})

	t.Run("unknown fund returns not found", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestFundService(t, db)

		// Execute
		_, err := svc.GetFundMetrics(ctx, testutil.MakeID())

		// Assert
		if !errors.Is(err, apperrors.ErrFundNotFound) {
			t.Errorf("Expected ErrFundNotFound, got %v", err)
		}
	})
}

// TestFundService_Projection tests projections and timelines.
//
// WHY: Projections follow the lifecycle pattern of the fund type, scaled by the
// scenario. The timeline must prefer actual data over projected data per year.
func TestFundService_Projection(t *testing.T) {
	ctx := context.Background()

	t.Run("projects one point per year of fund life", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestFundService(t, db)
		fund := testutil.NewFund().WithVintage(2020).WithCommitment(1_000_000).WithFundType("Buyout").Build(t, db)

		// Execute
		points, err := svc.GetProjection(ctx, fund.ID, "neutral")

		// Assert
		if err != nil {
			t.Fatalf("GetProjection() returned unexpected error: %v", err)
		}
		if len(points) != 12 {
			t.Fatalf("Expected 12 projected years, got %d", len(points))
		}
		if points[0].Year != 2020 || points[0].Calls != 250_000 {
			t.Errorf("Expected 2020 calls 250000, got %d calls %f", points[0].Year, points[0].Calls)
		}
		if !points[0].IsProjected {
			t.Error("Expected projected points to be flagged")
		}
	})

	t.Run("scenario scales distributions but not calls", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestFundService(t, db)
		fund := testutil.NewFund().WithCommitment(1_000_000).WithFundType("Buyout").Build(t, db)

		// Execute
		neutral, err := svc.GetProjection(ctx, fund.ID, "neutral")
		if err != nil {
			t.Fatalf("GetProjection() returned unexpected error: %v", err)
		}
		conservative, err := svc.GetProjection(ctx, fund.ID, "conservative")
		if err != nil {
			t.Fatalf("GetProjection() returned unexpected error: %v", err)
		}

		// Assert
		if conservative[0].Calls != neutral[0].Calls {
			t.Errorf("Expected equal calls, got %f and %f", conservative[0].Calls, neutral[0].Calls)
		}
		if conservative[6].Distributions != neutral[6].Distributions*0.75 {
			t.Errorf("Expected distributions scaled by 0.75, got %f vs %f", conservative[6].Distributions, neutral[6].Distributions)
		}
	})

	t.Run("unknown scenario is rejected", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestFundService(t, db)
		fund := testutil.NewFund().Build(t, db)

		// Execute
		_, err := svc.GetProjection(ctx, fund.ID, "euphoric")

		// Assert
		if !errors.Is(err, apperrors.ErrScenarioNotFound) {
			t.Errorf("Expected ErrScenarioNotFound, got %v", err)
		}
	})

	t.Run("unknown fund type projects nothing", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestFundService(t, db)
		fund := testutil.NewFund().WithFundType("Hedge").Build(t, db)

		// Execute
		points, err := svc.GetProjection(ctx, fund.ID, "neutral")

		// Assert
		if err != nil {
			t.Fatalf("GetProjection() returned unexpected error: %v", err)
		}
		if points == nil || len(points) != 0 {
			t.Errorf("Expected empty slice, got %v", points)
		}
	})

	t.Run("timeline prefers actual years", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestFundService(t, db)
		fund := testutil.NewFund().WithVintage(2020).WithFundType("Buyout").Build(t, db)
		testutil.NewCashflow(fund.ID).WithPeriod(2020, 2).WithAmounts(123, 0, 0).Build(t, db)

		// Execute
		timeline, err := svc.GetTimeline(ctx, fund.ID, "")

		// Assert
		if err != nil {
			t.Fatalf("GetTimeline() returned unexpected error: %v", err)
		}
		if timeline.Scenario != "neutral" {
			t.Errorf("Expected neutral scenario, got %s", timeline.Scenario)
		}
		if len(timeline.Points) != 12 {
			t.Fatalf("Expected 12 points, got %d", len(timeline.Points))
		}
		first := timeline.Points[0]
		if first.IsProjected || first.Calls != 123 {
			t.Errorf("Expected actual 2020 record first, got %+v", first)
		}
		if !timeline.Points[1].IsProjected || timeline.Points[1].Year != 2021 {
			t.Errorf("Expected projected 2021 second, got %+v", timeline.Points[1])
		}
	})
}

// TestFundService_ReferenceData tests fund types and scenarios.
func TestFundService_ReferenceData(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestFundService(t, db)

	types := svc.GetFundTypes()
	if len(types) == 0 {
		t.Fatal("Expected built-in fund types, got none")
	}
	for i := 1; i < len(types); i++ {
		if types[i-1].FundType > types[i].FundType {
			t.Errorf("Expected fund types sorted, got %s before %s", types[i-1].FundType, types[i].FundType)
		}
	}

	scenarios := svc.GetScenarios()
	if len(scenarios) != 3 {
		t.Errorf("Expected 3 scenarios, got %d", len(scenarios))
	}
}

// TestFundService_ExportFund tests the single-fund CSV export.
//
// WHY: An exported fund must import again as the same fund with the same
// yearly net percentages of commitment.
func TestFundService_ExportFund(t *testing.T) {
	ctx := context.Background()

	t.Run("round-trips through the single-fund parser", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestFundService(t, db)
		fund := testutil.NewFund().WithName("Alpha Buyout I").WithVintage(2020).WithCommitment(10_000_000).Build(t, db)
		testutil.NewCashflow(fund.ID).WithPeriod(2020, 1).WithAmounts(1_000_000, 0, 1_000_000).Build(t, db)
		testutil.NewCashflow(fund.ID).WithPeriod(2020, 3).WithAmounts(500_000, 0, 1_500_000).Build(t, db)
		testutil.NewCashflow(fund.ID).WithPeriod(2022, 4).WithAmounts(0, 2_000_000, 0).Build(t, db)

		// Execute
		exported, data, err := svc.ExportFund(ctx, fund.ID)

		// Assert
		if err != nil {
			t.Fatalf("ExportFund() returned unexpected error: %v", err)
		}
		if exported.ID != fund.ID {
			t.Errorf("Expected fund %s, got %s", fund.ID, exported.ID)
		}

		upload, err := csvio.ParseSingleFund(strings.NewReader(string(data)))
		if err != nil {
			t.Fatalf("Failed to parse export: %v\n%s", err, data)
		}
		if upload.Name != fund.Name || upload.Vintage != 2020 || upload.CommitmentAmount != 10_000_000 {
			t.Errorf("Expected fund details to round-trip, got %+v", upload)
		}
		if len(upload.Percentages) != 2 {
			t.Fatalf("Expected 2 years, got %d", len(upload.Percentages))
		}
		if p := upload.Percentages[0]; p.Year != 2020 || math.Abs(p.Percentage-(-0.15)) > 1e-9 {
			t.Errorf("Expected 2020 at -15%%, got %+v", p)
		}
		if p := upload.Percentages[1]; p.Year != 2022 || math.Abs(p.Percentage-0.2) > 1e-9 {
			t.Errorf("Expected 2022 at 20%%, got %+v", p)
		}
	})

	t.Run("returns not found for an unknown fund", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestFundService(t, db)

		// Execute
		_, _, err := svc.ExportFund(ctx, testutil.MakeID())

		// Assert
		if !errors.Is(err, apperrors.ErrFundNotFound) {
			t.Errorf("Expected ErrFundNotFound, got %v", err)
		}
	})
}
