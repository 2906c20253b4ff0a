package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/model"
)

func newImportCmd() *cobra.Command {
	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Import CSV files into the database",
	}

	var createMissing bool
	generalFundsCmd := &cobra.Command{
		Use:   "general-funds FILE",
		Short: "Import yearly percentages of general funds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			result, err := app.Import.ImportGeneralFunds(cmd.Context(), filepath.Base(args[0]), f, createMissing)
			if err != nil {
				return err
			}
			return printImportResult(cmd, app, result)
		},
	}
	generalFundsCmd.Flags().BoolVar(&createMissing, "create-missing", false, "create general funds for names that match nothing")

	singleFundCmd := &cobra.Command{
		Use:   "single-fund FILE",
		Short: "Import one fund with its commitment and yearly percentages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			result, err := app.Import.ImportSingleFund(cmd.Context(), filepath.Base(args[0]), f)
			if err != nil {
				return err
			}
			return printImportResult(cmd, app, result)
		},
	}

	importCmd.AddCommand(generalFundsCmd, singleFundCmd)
	return importCmd
}

func printImportResult(cmd *cobra.Command, app *App, result model.ImportResult) error {
	out := cmd.OutOrStdout()
	if app.Output == OutputJSON {
		return printJSON(out, result)
	}

	batch := result.Batch
	fmt.Fprintf(out, "imported %d of %d rows (%d skipped, %d funds created)\n",
		batch.RowsImported, batch.RowsTotal, batch.RowsSkipped, len(result.CreatedIDs))
	for _, warning := range batch.Warnings {
		fmt.Fprintf(out, "warning: %s\n", warning)
	}
	return nil
}
