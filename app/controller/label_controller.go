package controller

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"flip-order-labels/logger"
	"flip-order-labels/models"
	"flip-order-labels/service"
)

const (
	msgLabelsFailed    = "Failed to generate barcode PDF"
	msgDocumentsFailed = "Failed to list label documents"

	// PDFRoute is where generated documents are served from.
	PDFRoute = "/pdfs/"
)

// LabelController handles HTTP requests for barcode labels
type LabelController struct {
	service       service.LabelServiceInterface
	publicBaseURL string
	logger        *logger.Logger
}

// NewLabelController creates a new LabelController. publicBaseURL may be empty, in which
// case document URLs are built from the incoming request.
func NewLabelController(svc service.LabelServiceInterface, publicBaseURL string, logg *logger.Logger) *LabelController {
	if logg == nil {
		logg = logger.Nop()
	}
	return &LabelController{
		service:       svc,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		logger:        logg,
	}
}

// PrintBarcodes handles POST /print-barcodes
// Example request:
// POST /print-barcodes
// {"orders": [{"supplierCode": "A1", "flipCode": "123", "productName": "Soap", "quantity": 2}], "labelSize": "30x20"}
// Example response:
// {"success": true, "pdfUrl": "http://localhost:3000/pdfs/barcodes_1700000000000_1a2b3c4d.pdf"}
func (c *LabelController) PrintBarcodes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.PrintLabelsRequest
	if err := decodeOrders(r, &req); err != nil {
		writeError(ctx, c.logger, w, err, msgInvalidOrders)
		return
	}

	doc, err := c.service.Print(ctx, req.Orders, req.LabelSize)
	if err != nil {
		writeError(ctx, c.logger, w, err, msgLabelsFailed)
		return
	}

	writeJSON(w, http.StatusOK, models.PrintLabelsResponse{
		Success: true,
		PDFURL:  c.baseURL(r) + PDFRoute + url.PathEscape(doc.FileName),
	})
}

// ListDocuments handles GET /label-documents?limit=N
func (c *LabelController) ListDocuments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	docs, err := c.service.Recent(ctx, limit)
	if err != nil {
		writeError(ctx, c.logger, w, err, msgDocumentsFailed)
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

func (c *LabelController) baseURL(r *http.Request) string {
	if c.publicBaseURL != "" {
		return c.publicBaseURL
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
	}
	return scheme + "://" + r.Host
}
