package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"flip-order-labels/report"
	"flip-order-labels/service"
)

var (
	reportInput     string
	reportOut       string
	reportReference bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render the order report for a JSON order file into an XLSX workbook",
	Example: `  flip-order-labels report --in orders.json --out report.xlsx
  flip-order-labels report --in orders.json --out report.xlsx --reference`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&reportInput, "in", "i", "", "Orders JSON file, or - for stdin")
	reportCmd.Flags().StringVarP(&reportOut, "out", "o", "report.xlsx", "Output XLSX file")
	reportCmd.Flags().BoolVar(&reportReference, "reference", false, "Join with the reference sheet (needs Google credentials)")
	_ = reportCmd.MarkFlagRequired("in")
}

func runReport(cmd *cobra.Command, args []string) (err error) {
	orders, err := readOrders(reportInput)
	if err != nil {
		return err
	}

	opts := service.ExportServiceOptions{
		Builder: report.NewBuilder(cfg.Report.Title, cfg.Report.ProductURLBase),
		XLSX:    service.NewXLSXRenderer(cfg.Report.ReportSheet),
		Logger:  logg,
	}
	if reportReference {
		sheets, err := service.NewSheetsService(cmd.Context(), cfg.Google, cfg.Report.SpreadsheetID)
		if err != nil {
			return err
		}
		opts.References = service.NewReferenceService(sheets, cfg.Report.ReferenceSheet)
	}
	svc := service.NewExportService(opts)

	f, err := os.Create(reportOut)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", reportOut, err)
	}
	defer func() {
		err = multierr.Append(err, f.Close())
		if err != nil {
			_ = os.Remove(reportOut)
		}
	}()

	if err = svc.RenderXLSX(cmd.Context(), orders, f); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s (%d orders)\n", reportOut, len(orders))
	return nil
}
