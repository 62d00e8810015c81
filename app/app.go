package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"flip-order-labels/app/controller"
	"flip-order-labels/app/router"
	"flip-order-labels/config"
	"flip-order-labels/db"
	"flip-order-labels/logger"
	"flip-order-labels/metrics"
	"flip-order-labels/report"
	"flip-order-labels/repository"
	"flip-order-labels/service"
)

// App is the wired HTTP application
type App struct {
	Handler http.Handler
}

// Close releases resources opened by Initialize
func (a *App) Close() error {
	return db.CloseDB()
}

// Initialize initializes the application
func Initialize(ctx context.Context, cfg *config.Config, logg *logger.Logger) (*App, error) {
	if cfg.Report.SpreadsheetID == "" {
		return nil, fmt.Errorf("SPREADSHEET_ID environment variable is not set")
	}
	if !cfg.Google.HasCredentials() {
		return nil, fmt.Errorf("GOOGLE_APPLICATION_CREDENTIALS or GOOGLE_APPLICATION_CREDENTIALS_JSON must be set")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	pipelineMetrics := metrics.NewPipelineMetrics(registry)

	// Initialize ledger database when configured
	var ledger repository.LabelDocumentRepositoryInterface
	if cfg.DB.Enabled() {
		if err := db.InitDB(ctx, cfg.DB.URL); err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		if err := db.EnsureSchema(ctx); err != nil {
			_ = db.CloseDB()
			return nil, err
		}
		ledger = repository.NewLabelDocumentRepository(db.DB)
		logg.Info(ctx, "label document ledger enabled")
	}

	// Initialize Sheets service
	sheetsService, err := service.NewSheetsService(ctx, cfg.Google, cfg.Report.SpreadsheetID)
	if err != nil {
		_ = db.CloseDB()
		return nil, err
	}

	exportService := service.NewExportService(service.ExportServiceOptions{
		References: service.NewReferenceService(sheetsService, cfg.Report.ReferenceSheet),
		Builder:    report.NewBuilder(cfg.Report.Title, cfg.Report.ProductURLBase),
		Publisher: service.NewReportPublisher(sheetsService, service.ReportPublisherOptions{
			SheetName:         cfg.Report.ReportSheet,
			SheetID:           cfg.Report.ReportSheetID,
			HyperlinkFunction: cfg.Report.HyperlinkFunction,
			FormulaSeparator:  cfg.Report.FormulaSeparator,
		}, logg),
		XLSX:           service.NewXLSXRenderer(cfg.Report.ReportSheet),
		SpreadsheetURL: cfg.Report.SpreadsheetURL(),
		Metrics:        pipelineMetrics,
		Logger:         logg,
	})

	printer := service.NewChromePrinter(cfg.Labels.ChromePath, cfg.Labels.RenderTimeout, logg)
	labelService := service.NewLabelService(service.LabelServiceOptions{
		Documents: service.PrinterDocuments(printer),
		OutputDir: cfg.Labels.OutputDir,
		MaxLabels: cfg.Labels.MaxLabels,
		Ledger:    ledger,
		Metrics:   pipelineMetrics,
		Logger:    logg,
	})

	// Create controllers
	controllers := &router.Controllers{
		Export: controller.NewExportController(exportService, logg),
		Label:  controller.NewLabelController(labelService, cfg.App.PublicBaseURL, logg),
	}

	handler := router.NewRouter(controllers, router.Options{
		Logger:    logg,
		Gatherer:  registry,
		OutputDir: cfg.Labels.OutputDir,
	})

	return &App{Handler: handler}, nil
}
