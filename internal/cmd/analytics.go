package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/zeebo/blake3"

	"github.com/opsdeskhq/opsdesk/internal/api"
	"github.com/opsdeskhq/opsdesk/internal/authz"
	"github.com/opsdeskhq/opsdesk/internal/errors"
	"github.com/opsdeskhq/opsdesk/internal/tui"
)

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Dashboards, financial views, and report exports",
	Long: `Aggregated views over the whole dataset.

The summary needs the view_all_data capability; the financial view and
report export need view_financials.

Examples:
  opsdesk analytics summary
  opsdesk analytics financial --period 2026-08
  opsdesk analytics export --format xlsx --out report.xlsx`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var analyticsSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show the dashboard summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		if err := a.Guard.Ensure(cmd.Context(), authz.CapViewAllData); err != nil {
			return err
		}

		var summary api.AnalyticsSummary
		err = tui.WithSpinner("Loading dashboard summary", func() error {
			var err error
			summary, err = a.Client.AnalyticsSummary(cmd.Context())
			return err
		})
		if err != nil {
			return err
		}
		return renderObject(a, summary)
	},
}

var analyticsFinancialCmd = &cobra.Command{
	Use:   "financial",
	Short: "Show the financial overview",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		if err := a.Guard.Ensure(cmd.Context(), authz.CapViewFinancials); err != nil {
			return err
		}

		period, _ := cmd.Flags().GetString("period")
		overview, err := a.Client.FinancialOverview(cmd.Context(), period)
		if err != nil {
			return err
		}
		return renderObject(a, overview)
	},
}

var analyticsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Download a report blob",
	Long: `Download a server-generated report.

The blob is written as-is; a BLAKE3 checksum of the bytes is written next to
it as <out>.b3 so the download can be verified later.

Examples:
  opsdesk analytics export --format csv --out report.csv
  opsdesk analytics export --format pdf --out monthly.pdf`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		if err := a.Guard.Ensure(cmd.Context(), authz.CapViewFinancials); err != nil {
			return err
		}

		formatName, _ := cmd.Flags().GetString("format")
		format := api.ExportFormat(formatName)
		if !format.Valid() {
			return errors.NewExportFormatError(formatName)
		}

		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			out = "report." + formatName
		}

		var blob []byte
		err = tui.WithSpinner("Generating report", func() error {
			var err error
			blob, err = a.Client.ExportReport(cmd.Context(), format)
			return err
		})
		if err != nil {
			return err
		}

		if err := os.WriteFile(out, blob, 0o644); err != nil {
			return err
		}

		sum := blake3.Sum256(blob)
		sumLine := fmt.Sprintf("%x  %s\n", sum, out)
		if err := os.WriteFile(out+".b3", []byte(sumLine), 0o644); err != nil {
			return err
		}

		tui.Success(cmd.OutOrStdout(), "Wrote %s (%d bytes, checksum in %s.b3)", out, len(blob), out)
		return nil
	},
}

func init() {
	analyticsFinancialCmd.Flags().String("period", "", "period to aggregate (YYYY-MM)")
	analyticsExportCmd.Flags().String("format", "csv", "export format: csv, xlsx, pdf")
	analyticsExportCmd.Flags().String("out", "", "output file (default report.<format>)")

	analyticsCmd.AddCommand(analyticsSummaryCmd)
	analyticsCmd.AddCommand(analyticsFinancialCmd)
	analyticsCmd.AddCommand(analyticsExportCmd)

	rootCmd.AddCommand(analyticsCmd)
}
