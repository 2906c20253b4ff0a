package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/model"
)

const harborCSV = "FundName,Vintage,CommitmentAmount,FundType\n" +
	"Harbor Growth III,2021,1000,Buyout\n" +
	"Year1,Year2,Year3,Year4,Year5,Year6,Year7,Year8,Year9,Year10,Year11,Year12,Year13\n" +
	"-30,0,45,,,,,,,,,,\n"

// run executes cashflowctl against dbPath and returns its stdout.
func run(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"--db", dbPath, "--log-level", "error"}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// TestCLI tests the command line against a database file.
//
// WHY: The CLI shares the import and report services with the server; these
// tests make sure an import is visible to the report commands afterwards.
func TestCLI(t *testing.T) {
	t.Run("imports a single fund and reports its metrics", func(t *testing.T) {
		// Setup
		dbPath := filepath.Join(t.TempDir(), "data", "cli.db")
		csvPath := writeFile(t, "harbor.csv", harborCSV)

		// Execute
		out, err := run(t, dbPath, "import", "single-fund", csvPath)

		// Assert
		require.NoError(t, err)
		assert.Contains(t, out, "imported 3 of 3 rows")

		out, err = run(t, dbPath, "--output", "json", "metrics")
		require.NoError(t, err)

		var funds []model.FundWithMetrics
		require.NoError(t, json.Unmarshal([]byte(out), &funds))
		require.Len(t, funds, 1)
		assert.Equal(t, "Harbor Growth III", funds[0].Name)
		assert.InDelta(t, 300, funds[0].Metrics.TotalCalls, 1e-9)
	})

	t.Run("projects an imported fund", func(t *testing.T) {
		// Setup
		dbPath := filepath.Join(t.TempDir(), "cli.db")
		csvPath := writeFile(t, "harbor.csv", harborCSV)
		_, err := run(t, dbPath, "import", "single-fund", csvPath)
		require.NoError(t, err)

		out, err := run(t, dbPath, "-o", "json", "metrics")
		require.NoError(t, err)
		var funds []model.FundWithMetrics
		require.NoError(t, json.Unmarshal([]byte(out), &funds))
		require.Len(t, funds, 1)

		// Execute
		out, err = run(t, dbPath, "project", funds[0].ID, "--scenario", "conservative")

		// Assert
		require.NoError(t, err)
		assert.Contains(t, out, "actual")
		assert.Contains(t, out, "projected")
	})

	t.Run("exports an imported fund in the upload format", func(t *testing.T) {
		// Setup
		dbPath := filepath.Join(t.TempDir(), "cli.db")
		_, err := run(t, dbPath, "import", "single-fund", writeFile(t, "harbor.csv", harborCSV))
		require.NoError(t, err)

		out, err := run(t, dbPath, "-o", "json", "metrics")
		require.NoError(t, err)
		var funds []model.FundWithMetrics
		require.NoError(t, json.Unmarshal([]byte(out), &funds))
		require.Len(t, funds, 1)
		exportPath := filepath.Join(t.TempDir(), "export.csv")

		// Execute
		_, err = run(t, dbPath, "export-fund", funds[0].ID, "--out", exportPath)

		// Assert
		require.NoError(t, err)
		data, err := os.ReadFile(exportPath)
		require.NoError(t, err)
		assert.Contains(t, string(data), "Harbor Growth III,2021,1000.00,Buyout\n")
		assert.Contains(t, string(data), "-30.0000,0.0000,45.0000,,,,,,,,,,\n")

		out, err = run(t, dbPath, "import", "single-fund", exportPath)
		require.NoError(t, err)
		assert.Contains(t, out, "imported 3 of 3 rows")
		assert.Contains(t, out, "0 funds created")
	})

	t.Run("rejects an invalid id", func(t *testing.T) {
		_, err := run(t, filepath.Join(t.TempDir(), "cli.db"), "waterfall", "not-a-uuid")
		assert.Error(t, err)
	})

	t.Run("rejects an unknown output format", func(t *testing.T) {
		_, err := run(t, filepath.Join(t.TempDir(), "cli.db"), "--output", "xml", "metrics")
		assert.Error(t, err)
	})

	t.Run("creates missing general funds", func(t *testing.T) {
		// Setup
		dbPath := filepath.Join(t.TempDir(), "cli.db")
		csvPath := writeFile(t, "funds.csv",
			"FundName,Vintage,FundType,Subtype,Geography,Year1,Year2,Year3,Year4,Year5,Year6,Year7,Year8,Year9,Year10,Year11,Year12\n"+
				"Acme Buyout Fund IV,2019,Buyout,,,-25,-20,10,,,,,,,,,\n")

		// Execute
		out, err := run(t, dbPath, "import", "general-funds", "--create-missing", csvPath)

		// Assert
		require.NoError(t, err)
		assert.Contains(t, out, "1 funds created")
	})
}
