package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"flip-order-labels/service"
)

var (
	labelsInput string
	labelsSize  string
	labelsOut   string
)

var labelsCmd = &cobra.Command{
	Use:   "labels",
	Short: "Render barcode labels for a JSON order file into a PDF",
	Example: `  flip-order-labels labels --in orders.json --size 30x20
  cat orders.json | flip-order-labels labels --in - --out ./out`,
	RunE: runLabels,
}

func init() {
	labelsCmd.Flags().StringVarP(&labelsInput, "in", "i", "", "Orders JSON file, or - for stdin")
	labelsCmd.Flags().StringVarP(&labelsSize, "size", "s", "58x40", "Label size: 30x20 or 58x40")
	labelsCmd.Flags().StringVarP(&labelsOut, "out", "o", "", "Output directory (defaults to LABEL_OUTPUT_DIR)")
	_ = labelsCmd.MarkFlagRequired("in")
}

func runLabels(cmd *cobra.Command, args []string) error {
	orders, err := readOrders(labelsInput)
	if err != nil {
		return err
	}

	outDir := labelsOut
	if outDir == "" {
		outDir = cfg.Labels.OutputDir
	}

	printer := service.NewChromePrinter(cfg.Labels.ChromePath, cfg.Labels.RenderTimeout, logg)
	svc := service.NewLabelService(service.LabelServiceOptions{
		Documents: service.PrinterDocuments(printer),
		OutputDir: outDir,
		MaxLabels: cfg.Labels.MaxLabels,
		Logger:    logg,
	})

	doc, err := svc.Print(cmd.Context(), orders, labelsSize)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s (%d labels, %s)\n", filepath.Join(outDir, doc.FileName), doc.LabelCount, doc.LabelSize)
	return nil
}
