package service_test

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/apperrors"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/model"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/testutil"
)

const generalFundsCSVHeader = "FundName,Vintage,FundType,Subtype,Geography,Year1,Year2,Year3,Year4,Year5,Year6,Year7,Year8,Year9,Year10,Year11,Year12\n"

func singleFundCSV(name string, vintage int, commitment, years string) string {
	return "FundName,Vintage,CommitmentAmount,FundType\n" +
		name + "," + strconv.Itoa(vintage) + "," + commitment + ",Buyout\n" +
		"Year1,Year2,Year3,Year4,Year5,Year6,Year7,Year8,Year9,Year10,Year11,Year12,Year13\n" +
		years + "\n"
}

// TestImportService_ImportGeneralFunds tests the multi-fund CSV import.
//
// WHY: The import replaces the percentage cashflows of matched general funds.
// Unmatched rows must never abort the batch; they are skipped with a warning
// unless createMissing is set.
func TestImportService_ImportGeneralFunds(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces net cashflows of a matched fund", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestImportService(t, db)
		gf := testutil.NewGeneralFund().WithName("Acme Buyout Fund IV").WithVintage(2019).Build(t, db)
		testutil.CreateNetCashflow(t, db, gf.ID, 2010, -0.9)

		input := generalFundsCSVHeader + "Acme Buyout Fund IV,2019,Buyout,,,-25,-20,10,,,,,,,,,\n"

		// Execute
		result, err := svc.ImportGeneralFunds(ctx, "funds.csv", strings.NewReader(input), false)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, []string{gf.ID}, result.FundIDs)
		assert.Empty(t, result.CreatedIDs)
		assert.Equal(t, 1, result.Batch.RowsTotal)
		assert.Equal(t, 1, result.Batch.RowsImported)
		assert.Equal(t, 0, result.Batch.RowsSkipped)
		assert.Equal(t, model.ImportFormatGeneralFunds, result.Batch.Format)

		rows, err := testutil.NewTestGeneralFundService(t, db).GetNetCashflows(ctx, gf.ID)
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, 2019, rows[0].Year)
		assert.InDelta(t, -0.25, rows[0].ContributionsPercentage, 1e-9)
		assert.Equal(t, 2021, rows[2].Year)
		assert.InDelta(t, 0.10, rows[2].DistributionsPercentage, 1e-9)

		testutil.AssertRowCount(t, db, "import_batch", 1)
	})

	t.Run("skips unmatched rows with a warning", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestImportService(t, db)
		testutil.NewGeneralFund().WithName("Known Fund").Build(t, db)

		input := generalFundsCSVHeader +
			"Known Fund,2020,Buyout,,,-10,,,,,,,,,,,\n" +
			"Unknown Ventures,2020,Venture Capital,,,-10,,,,,,,,,,,\n"

		// Execute
		result, err := svc.ImportGeneralFunds(ctx, "funds.csv", strings.NewReader(input), false)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 1, result.Batch.RowsImported)
		assert.Equal(t, 1, result.Batch.RowsSkipped)
		require.Len(t, result.Batch.Warnings, 1)
		assert.Contains(t, result.Batch.Warnings[0], "line 3")
		assert.Contains(t, result.Batch.Warnings[0], "Unknown Ventures")
		testutil.AssertRowCount(t, db, "general_fund", 1)
	})

	t.Run("creates missing funds when requested", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestImportService(t, db)

		input := generalFundsCSVHeader + "New Growth Fund,2022,Growth Equity,Tech,Asia,-30,,,,,,,,,,,\n"

		// Execute
		result, err := svc.ImportGeneralFunds(ctx, "funds.csv", strings.NewReader(input), true)

		// Assert
		require.NoError(t, err)
		require.Len(t, result.CreatedIDs, 1)
		assert.Equal(t, result.CreatedIDs, result.FundIDs)

		fund, err := testutil.NewTestGeneralFundService(t, db).GetGeneralFund(ctx, result.CreatedIDs[0])
		require.NoError(t, err)
		assert.Equal(t, "New Growth Fund", fund.Name)
		assert.Equal(t, 2022, fund.Vintage)
		assert.Equal(t, "Asia", fund.Geography)
	})

	t.Run("skips a second row matching the same fund", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestImportService(t, db)
		testutil.NewGeneralFund().WithName("Acme Capital II").Build(t, db)

		input := generalFundsCSVHeader +
			"Acme Capital II,2020,Buyout,,,-10,,,,,,,,,,,\n" +
			"Acme Capital Fund II L.P.,2020,Buyout,,,-50,,,,,,,,,,,\n"

		// Execute
		result, err := svc.ImportGeneralFunds(ctx, "funds.csv", strings.NewReader(input), false)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 1, result.Batch.RowsImported)
		assert.Equal(t, 1, result.Batch.RowsSkipped)
		require.Len(t, result.Batch.Warnings, 1)
		assert.Contains(t, result.Batch.Warnings[0], "already imported from line 2")
	})

	t.Run("malformed file changes nothing", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestImportService(t, db)
		gf := testutil.NewGeneralFund().WithName("Known Fund").Build(t, db)
		testutil.CreateNetCashflow(t, db, gf.ID, 2020, -0.5)

		input := generalFundsCSVHeader +
			"Known Fund,2020,Buyout,,,-10,,,,,,,,,,,\n" +
			"Broken,2020,Buyout,,,abc,,,,,,,,,,,\n"

		// Execute
		_, err := svc.ImportGeneralFunds(ctx, "funds.csv", strings.NewReader(input), false)

		// Assert
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrInvalidImportFile), "expected ErrInvalidImportFile, got %v", err)
		testutil.AssertRowCount(t, db, "general_fund_net_cashflow", 1)
		testutil.AssertRowCount(t, db, "import_batch", 0)
	})
}

// TestImportService_ImportSingleFund tests the single-fund CSV import.
//
// WHY: A single-fund upload is the authoritative history of that fund, so a
// matched fund has all of its previous records replaced.
func TestImportService_ImportSingleFund(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a new fund", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestImportService(t, db)

		input := singleFundCSV("Harbor Growth III", 2021, "1000", "-30,0,45,,,,,,,,,,")

		// Execute
		result, err := svc.ImportSingleFund(ctx, "harbor.csv", strings.NewReader(input))

		// Assert
		require.NoError(t, err)
		require.Len(t, result.CreatedIDs, 1)
		assert.Equal(t, 3, result.Batch.RowsTotal)
		assert.Equal(t, 3, result.Batch.RowsImported)
		assert.Equal(t, model.ImportFormatSingleFund, result.Batch.Format)

		records, err := testutil.NewTestCashflowService(t, db).GetFundCashflows(ctx, result.CreatedIDs[0])
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.InDelta(t, 300, records[0].Calls, 1e-9)
		assert.InDelta(t, 450, records[2].Distributions, 1e-9)
	})

	t.Run("replaces records of a matched fund", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestImportService(t, db)
		fund := testutil.NewFund().WithName("Harbor Growth III").WithCommitment(500).Build(t, db)
		testutil.NewCashflow(fund.ID).WithPeriod(2015, 1).WithAmounts(100, 0, 100).Build(t, db)
		testutil.NewCashflow(fund.ID).WithPeriod(2015, 2).WithAmounts(50, 0, 150).Build(t, db)

		input := singleFundCSV("Harbor Growth III", 2021, "1000", "-30,,,,,,,,,,,,")

		// Execute
		result, err := svc.ImportSingleFund(ctx, "harbor.csv", strings.NewReader(input))

		// Assert
		require.NoError(t, err)
		assert.Empty(t, result.CreatedIDs)
		assert.Equal(t, []string{fund.ID}, result.FundIDs)
		require.Len(t, result.Batch.Warnings, 1)
		assert.Contains(t, result.Batch.Warnings[0], "replaced 2 existing cashflow records")

		updated, err := testutil.NewTestFundService(t, db).GetFund(ctx, fund.ID)
		require.NoError(t, err)
		assert.Equal(t, 1000.0, updated.CommitmentAmount)
		assert.Equal(t, 2021, updated.Vintage)

		testutil.AssertRowCount(t, db, "cashflow", 1)
		testutil.AssertRowCount(t, db, "fund", 1)
	})

	t.Run("warns on a fuzzy match", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestImportService(t, db)
		testutil.NewFund().WithName("Harbor Growth III").Build(t, db)

		input := singleFundCSV("Harbor Growth III Feeder", 2021, "1000", "-30,,,,,,,,,,,,")

		// Execute
		result, err := svc.ImportSingleFund(ctx, "harbor.csv", strings.NewReader(input))

		// Assert
		require.NoError(t, err)
		assert.Empty(t, result.CreatedIDs)
		require.NotEmpty(t, result.Batch.Warnings)
		assert.Contains(t, result.Batch.Warnings[0], "matched")
	})

	t.Run("creates a successor fund instead of overwriting its predecessor", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestImportService(t, db)
		predecessor := testutil.NewFund().WithName("Acme Capital").WithVintage(2015).WithCommitment(500).Build(t, db)
		testutil.NewCashflow(predecessor.ID).WithPeriod(2015, 4).WithAmounts(100, 0, 100).Build(t, db)

		input := singleFundCSV("Acme Capital II", 2021, "1000", "-30,,,,,,,,,,,,")

		// Execute
		result, err := svc.ImportSingleFund(ctx, "acme.csv", strings.NewReader(input))

		// Assert
		require.NoError(t, err)
		require.Len(t, result.CreatedIDs, 1)
		assert.NotEqual(t, predecessor.ID, result.CreatedIDs[0])

		unchanged, err := testutil.NewTestFundService(t, db).GetFund(ctx, predecessor.ID)
		require.NoError(t, err)
		assert.Equal(t, 2015, unchanged.Vintage)
		assert.Equal(t, 500.0, unchanged.CommitmentAmount)

		testutil.AssertRowCount(t, db, "fund", 2)
		testutil.AssertRowCount(t, db, "cashflow", 2)
	})

	t.Run("rejects a malformed upload", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestImportService(t, db)

		// Execute
		_, err := svc.ImportSingleFund(ctx, "broken.csv", strings.NewReader("not,a,fund\n"))

		// Assert
		assert.True(t, errors.Is(err, apperrors.ErrInvalidImportFile), "expected ErrInvalidImportFile, got %v", err)
		testutil.AssertRowCount(t, db, "fund", 0)
	})
}

// TestImportService_Batches tests listing and pruning of import audit records.
//
// WHY: The audit trail is listed newest first and pruned by the scheduler;
// pruning must only touch batches older than the cutoff.
func TestImportService_Batches(t *testing.T) {
	ctx := context.Background()

	t.Run("lists newest first with limit", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestImportService(t, db)
		base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
		testutil.CreateImportBatch(t, db, model.ImportFormatGeneralFunds, base)
		newest := testutil.CreateImportBatch(t, db, model.ImportFormatSingleFund, base.Add(2*time.Hour))
		testutil.CreateImportBatch(t, db, model.ImportFormatGeneralFunds, base.Add(time.Hour))

		// Execute
		batches, err := svc.GetBatches(ctx, 2)

		// Assert
		require.NoError(t, err)
		require.Len(t, batches, 2)
		assert.Equal(t, newest.ID, batches[0].ID)
		assert.True(t, batches[0].CreatedAt.Equal(newest.CreatedAt))
		assert.Equal(t, []string{}, batches[0].Warnings)
	})

	t.Run("prunes batches before the cutoff", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestImportService(t, db)
		cutoff := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
		testutil.CreateImportBatch(t, db, model.ImportFormatGeneralFunds, cutoff.Add(-48*time.Hour))
		testutil.CreateImportBatch(t, db, model.ImportFormatGeneralFunds, cutoff.Add(-time.Second))
		kept := testutil.CreateImportBatch(t, db, model.ImportFormatGeneralFunds, cutoff.Add(time.Hour))

		// Execute
		deleted, err := svc.PruneBatches(ctx, cutoff)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, int64(2), deleted)

		batches, err := svc.GetBatches(ctx, 0)
		require.NoError(t, err)
		require.Len(t, batches, 1)
		assert.Equal(t, kept.ID, batches[0].ID)
	})
}
