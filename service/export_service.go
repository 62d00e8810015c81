package service

import (
	"context"
	"io"
	"time"

	"flip-order-labels/apperrors"
	"flip-order-labels/logger"
	"flip-order-labels/metrics"
	"flip-order-labels/models"
	"flip-order-labels/report"
)

const (
	msgExportFailed = "Failed to export orders"
	msgXLSXFailed   = "Failed to render report"
)

// ExportService builds the order report and publishes it to the spreadsheet
type ExportService struct {
	references     ReferenceServiceInterface
	builder        *report.Builder
	publisher      ReportPublisherInterface
	xlsx           *XLSXRenderer
	spreadsheetURL string
	metrics        *metrics.PipelineMetrics
	logger         *logger.Logger
}

// Ensure ExportService implements ExportServiceInterface
var _ ExportServiceInterface = (*ExportService)(nil)

// ExportServiceOptions wires an ExportService. References and Publisher may be nil when
// only XLSX rendering is needed.
type ExportServiceOptions struct {
	References     ReferenceServiceInterface
	Builder        *report.Builder
	Publisher      ReportPublisherInterface
	XLSX           *XLSXRenderer
	SpreadsheetURL string
	Metrics        *metrics.PipelineMetrics
	Logger         *logger.Logger
}

// NewExportService creates a new ExportService instance
func NewExportService(opts ExportServiceOptions) *ExportService {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	xlsx := opts.XLSX
	if xlsx == nil {
		xlsx = NewXLSXRenderer("")
	}
	return &ExportService{
		references:     opts.References,
		builder:        opts.Builder,
		publisher:      opts.Publisher,
		xlsx:           xlsx,
		spreadsheetURL: opts.SpreadsheetURL,
		metrics:        opts.Metrics,
		logger:         log,
	}
}

// Export normalizes the orders, joins them with the reference table and replaces the
// report sheet. It returns the spreadsheet URL on success.
func (s *ExportService) Export(ctx context.Context, raw []models.RawOrder) (url string, err error) {
	started := time.Now()
	defer func() { s.metrics.Observe(metrics.PipelineExport, started, err) }()

	if raw == nil {
		return "", apperrors.New(apperrors.CodeValidation, msgInvalidOrders)
	}
	if s.publisher == nil || s.references == nil {
		return "", apperrors.New(apperrors.CodeInternal, "report publishing is not configured")
	}

	model, err := s.model(ctx, raw)
	if err != nil {
		return "", err
	}
	ctx = s.logger.WithFields(ctx, map[string]any{
		"rows":         len(model.Rows),
		"total_qty":    model.Totals.Quantity,
		"total_amount": model.Totals.Amount,
	})

	if err := s.publisher.Publish(ctx, model); err != nil {
		s.logger.Error(ctx, "failed to publish report", err)
		return "", apperrors.Wrap(apperrors.CodeDependency, err, msgExportFailed)
	}

	s.logger.Info(ctx, "report exported")
	return s.spreadsheetURL, nil
}

// RenderXLSX writes the same report as an XLSX workbook. The reference table is used
// when a reference source is configured.
func (s *ExportService) RenderXLSX(ctx context.Context, raw []models.RawOrder, w io.Writer) (err error) {
	started := time.Now()
	defer func() { s.metrics.Observe(metrics.PipelineXLSX, started, err) }()

	if raw == nil {
		return apperrors.New(apperrors.CodeValidation, msgInvalidOrders)
	}

	model, err := s.model(ctx, raw)
	if err != nil {
		return err
	}
	if err := s.xlsx.Render(model, w); err != nil {
		s.logger.Error(ctx, "failed to render xlsx report", err)
		return apperrors.Wrap(apperrors.CodeInternal, err, msgXLSXFailed)
	}
	return nil
}

func (s *ExportService) model(ctx context.Context, raw []models.RawOrder) (report.Model, error) {
	orders := models.NormalizeOrders(raw)

	var refs report.ReferenceTable
	if s.references != nil {
		loaded, err := s.references.Load(ctx)
		if err != nil {
			s.logger.Error(ctx, "failed to load reference table", err)
			return report.Model{}, apperrors.Wrap(apperrors.CodeDependency, err, msgExportFailed)
		}
		refs = loaded
	}

	builder := s.builder
	if builder == nil {
		builder = report.NewBuilder("", "")
	}
	return builder.Build(orders, refs), nil
}
