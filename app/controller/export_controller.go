package controller

import (
	"bytes"
	"net/http"
	"time"

	"flip-order-labels/logger"
	"flip-order-labels/models"
	"flip-order-labels/service"
)

const (
	msgExportFailed = "Failed to export orders"
	msgExported     = "Orders exported successfully"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ExportController handles HTTP requests for the order report
type ExportController struct {
	service service.ExportServiceInterface
	logger  *logger.Logger
}

// NewExportController creates a new ExportController
func NewExportController(svc service.ExportServiceInterface, logg *logger.Logger) *ExportController {
	if logg == nil {
		logg = logger.Nop()
	}
	return &ExportController{service: svc, logger: logg}
}

// Export handles POST /export
// Example request:
// POST /export
// {"orders": [{"supplierCode": "A1", "flipCode": "123", "productName": "Soap", "quantity": "2", "price": "1 200"}]}
// Example response:
// {"success": true, "message": "Orders exported successfully", "spreadsheetUrl": "https://docs.google.com/spreadsheets/d/..."}
func (c *ExportController) Export(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.ExportRequest
	if err := decodeOrders(r, &req); err != nil {
		writeError(ctx, c.logger, w, err, msgInvalidOrders)
		return
	}

	url, err := c.service.Export(ctx, req.Orders)
	if err != nil {
		writeError(ctx, c.logger, w, err, msgExportFailed)
		return
	}

	writeJSON(w, http.StatusOK, models.ExportResponse{
		Success:        true,
		Message:        msgExported,
		SpreadsheetURL: url,
	})
}

// ExportXLSX handles POST /export/xlsx and returns the report as a workbook attachment
func (c *ExportController) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.ExportRequest
	if err := decodeOrders(r, &req); err != nil {
		writeError(ctx, c.logger, w, err, msgInvalidOrders)
		return
	}

	var buf bytes.Buffer
	if err := c.service.RenderXLSX(ctx, req.Orders, &buf); err != nil {
		writeError(ctx, c.logger, w, err, msgExportFailed)
		return
	}

	fileName := "orders_" + time.Now().Format("20060102_150405") + ".xlsx"
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+fileName+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
