package router

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"flip-order-labels/app/controller"
	"flip-order-labels/app/middleware"
	"flip-order-labels/logger"
)

type Controllers struct {
	Export *controller.ExportController
	Label  *controller.LabelController
}

// Options holds what the router needs besides the controllers
type Options struct {
	Logger    *logger.Logger
	Gatherer  prometheus.Gatherer
	OutputDir string
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// NewRouter wires middleware and routes
func NewRouter(controllers *Controllers, opts Options) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(opts.Logger),
		middleware.RequestID(opts.Logger),
		middleware.Logging(opts.Logger),
		middleware.CORS(),
	)

	r.Get("/ping", pingHandler)
	if opts.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	// Report routes
	r.Post("/export", controllers.Export.Export)
	r.Post("/export/xlsx", controllers.Export.ExportXLSX)

	// Label routes
	r.Post("/print-barcodes", controllers.Label.PrintBarcodes)
	r.Get("/label-documents", controllers.Label.ListDocuments)

	// Generated documents, read-only
	files := http.StripPrefix(controller.PDFRoute, http.FileServer(http.Dir(opts.OutputDir)))
	r.Get(controller.PDFRoute+"*", func(w http.ResponseWriter, req *http.Request) {
		if strings.HasSuffix(req.URL.Path, "/") {
			http.NotFound(w, req)
			return
		}
		files.ServeHTTP(w, req)
	})

	return r
}
