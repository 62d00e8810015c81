package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"flip-order-labels/config"
	"flip-order-labels/logger"
	"flip-order-labels/models"
)

var (
	cfg  *config.Config
	logg *logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "flip-order-labels",
	Short: "Order report export and barcode label printing",
	Long: `flip-order-labels publishes supplier order reports to Google Sheets and
renders Code128 barcode labels (30x20 or 58x40 mm) as PDF documents.`,
	SilenceUsage:      true,
	PersistentPreRunE: initConfig,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(labelsCmd)
	rootCmd.AddCommand(reportCmd)
}

func initConfig(cmd *cobra.Command, args []string) error {
	// Load .env in development; Overload lets .env values win over the shell
	if !(config.AppConfig{Env: os.Getenv("APP_ENV")}).IsProd() {
		_ = godotenv.Overload(".env")
	}

	loaded, err := config.Load()
	if err != nil {
		return err
	}
	cfg = loaded
	logg = logger.New(logger.Options{
		ServiceName: "flip-order-labels",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
		Output:      os.Stderr,
	})
	return nil
}

// readOrders reads orders from a JSON file holding either an array of orders or
// an object with an "orders" array. "-" reads stdin.
func readOrders(path string) ([]models.RawOrder, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read orders: %w", err)
	}

	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var orders []models.RawOrder
		if err := json.Unmarshal(data, &orders); err != nil {
			return nil, fmt.Errorf("invalid orders data: %w", err)
		}
		return orders, nil
	}

	var req models.ExportRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("invalid orders data: %w", err)
	}
	if req.Orders == nil {
		return nil, fmt.Errorf("invalid orders data: missing orders array")
	}
	return req.Orders, nil
}
