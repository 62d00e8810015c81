package service

import (
	"context"
	"io"

	"flip-order-labels/models"
)

// ExportServiceInterface defines the contract for report export operations
type ExportServiceInterface interface {
	// Export publishes the report and returns the spreadsheet URL
	Export(ctx context.Context, orders []models.RawOrder) (string, error)
	RenderXLSX(ctx context.Context, orders []models.RawOrder, w io.Writer) error
}
