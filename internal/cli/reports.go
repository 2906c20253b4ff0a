package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/api/request"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/model"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/validation"
)

func newExportCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export PORTFOLIO_ID",
		Short: "Export the general funds of a portfolio as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}
			if err := validation.ValidateUUID(args[0]); err != nil {
				return err
			}

			_, data, err := app.Portfolio.ExportPortfolio(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeExport(cmd, outPath, data)
		},
	}
	cmd.Flags().StringVar(&outPath, "out", "", "write to this file instead of stdout")

	return cmd
}

func newExportFundCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export-fund FUND_ID",
		Short: "Export a fund and its yearly net cashflows as single-fund CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}
			if err := validation.ValidateUUID(args[0]); err != nil {
				return err
			}

			_, data, err := app.Fund.ExportFund(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeExport(cmd, outPath, data)
		},
	}
	cmd.Flags().StringVar(&outPath, "out", "", "write to this file instead of stdout")

	return cmd
}

func writeExport(cmd *cobra.Command, outPath string, data []byte) error {
	if outPath == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	return os.WriteFile(outPath, data, 0o600)
}

func newWaterfallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "waterfall PORTFOLIO_ID",
		Short: "Print the yearly cashflow waterfall of a portfolio",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}
			if err := validation.ValidateUUID(args[0]); err != nil {
				return err
			}

			waterfall, err := app.Portfolio.GetWaterfall(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if app.Output == OutputJSON {
				return printJSON(out, waterfall)
			}

			rows := make([][]string, 0, len(waterfall.Yearly))
			for _, y := range waterfall.Yearly {
				rows = append(rows, []string{
					strconv.Itoa(y.Year),
					formatAmount(y.Contributions),
					formatAmount(y.Distributions),
					formatAmount(y.NetCashflow),
					formatAmount(y.CumulativeNet),
				})
			}
			if err := printTable(out, []string{"YEAR", "CONTRIBUTIONS", "DISTRIBUTIONS", "NET", "CUMULATIVE"}, rows); err != nil {
				return err
			}

			breakEven := "never"
			if waterfall.BreakEvenYear != nil {
				breakEven = strconv.Itoa(*waterfall.BreakEvenYear)
			}
			fmt.Fprintf(out, "\ncommitment %s, final cumulative %s, break-even %s\n",
				formatAmount(waterfall.TotalCommitment), formatAmount(waterfall.FinalCumulative), breakEven)
			return nil
		},
	}
}

func newProjectCmd() *cobra.Command {
	var scenario string

	cmd := &cobra.Command{
		Use:   "project FUND_ID",
		Short: "Print the actual and projected cashflows of a fund",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}
			if err := validation.ValidateUUID(args[0]); err != nil {
				return err
			}

			timeline, err := app.Fund.GetTimeline(cmd.Context(), args[0], request.ParseScenario(scenario))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if app.Output == OutputJSON {
				return printJSON(out, timeline)
			}

			rows := make([][]string, 0, len(timeline.Points))
			for _, p := range timeline.Points {
				kind := "actual"
				if p.IsProjected {
					kind = "projected"
				}
				rows = append(rows, []string{
					strconv.Itoa(p.Year),
					formatAmount(p.Calls),
					formatAmount(p.Distributions),
					formatAmount(p.NAV),
					kind,
				})
			}
			return printTable(out, []string{"YEAR", "CALLS", "DISTRIBUTIONS", "NAV", "KIND"}, rows)
		},
	}
	cmd.Flags().StringVar(&scenario, "scenario", "neutral", "scenario: conservative, neutral or optimistic")

	return cmd
}

func newMetricsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "metrics [FUND_ID]",
		Short: "Print performance metrics of one fund or of all funds",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}

			var funds []model.FundWithMetrics
			if len(args) == 1 {
				if err := validation.ValidateUUID(args[0]); err != nil {
					return err
				}
				fund, err := app.Fund.GetFund(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				metrics, err := app.Fund.GetFundMetrics(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				funds = []model.FundWithMetrics{{Fund: fund, Metrics: metrics}}
			} else {
				funds, err = app.Fund.GetAllFundMetrics(cmd.Context())
				if err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			if app.Output == OutputJSON {
				return printJSON(out, funds)
			}

			rows := make([][]string, 0, len(funds))
			for _, f := range funds {
				rows = append(rows, []string{
					f.Name,
					formatAmount(f.CommitmentAmount),
					formatAmount(f.Metrics.TotalCalls),
					formatAmount(f.Metrics.TotalDistributions),
					formatAmount(f.Metrics.CurrentNAV),
					fmt.Sprintf("%.2fx", f.Metrics.Multiple),
					fmt.Sprintf("%.2f%%", f.Metrics.CalledPercentage),
				})
			}
			return printTable(out, []string{"FUND", "COMMITMENT", "CALLS", "DISTRIBUTIONS", "NAV", "MULTIPLE", "CALLED"}, rows)
		},
	}
}
