package service

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"flip-order-labels/apperrors"
	"flip-order-labels/labels"
	"flip-order-labels/logger"
	"flip-order-labels/metrics"
	"flip-order-labels/models"
	"flip-order-labels/repository"
)

const (
	msgInvalidOrders = "Invalid orders data"
	msgNoLabels      = "No labels to print"
	msgTooManyLabels = "Too many labels to print"
	msgLabelsFailed  = "Failed to generate barcode PDF"

	defaultRecentDocuments = 20
	DefaultMaxLabels       = 10000
)

// ErrNoLabels is returned when every order has a quantity of zero or less.
var ErrNoLabels = apperrors.New(apperrors.CodeValidation, msgNoLabels)

// DocumentFactory creates an empty paginated document for one print job
type DocumentFactory func() labels.Document

// LabelService turns orders into a barcode label PDF on disk
type LabelService struct {
	generator *labels.Generator
	newDoc    DocumentFactory
	outputDir string
	maxLabels int
	ledger    repository.LabelDocumentRepositoryInterface
	metrics   *metrics.PipelineMetrics
	logger    *logger.Logger
	now       func() time.Time
}

// Ensure LabelService implements LabelServiceInterface
var _ LabelServiceInterface = (*LabelService)(nil)

// LabelServiceOptions wires the collaborators of a LabelService. Ledger and Metrics are optional.
// MaxLabels caps the pages of one document; zero means DefaultMaxLabels.
type LabelServiceOptions struct {
	Barcoder  labels.Barcoder
	Documents DocumentFactory
	OutputDir string
	MaxLabels int
	Ledger    repository.LabelDocumentRepositoryInterface
	Metrics   *metrics.PipelineMetrics
	Logger    *logger.Logger
}

// NewLabelService creates a new LabelService instance
func NewLabelService(opts LabelServiceOptions) *LabelService {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	barcoder := opts.Barcoder
	if barcoder == nil {
		barcoder = labels.Code128Barcoder{}
	}
	maxLabels := opts.MaxLabels
	if maxLabels <= 0 {
		maxLabels = DefaultMaxLabels
	}
	return &LabelService{
		generator: labels.NewGenerator(barcoder),
		newDoc:    opts.Documents,
		outputDir: opts.OutputDir,
		maxLabels: maxLabels,
		ledger:    opts.Ledger,
		metrics:   opts.Metrics,
		logger:    log,
		now:       time.Now,
	}
}

// PrinterDocuments returns a DocumentFactory producing HTML documents printed by printer
func PrinterDocuments(printer labels.Printer) DocumentFactory {
	return func() labels.Document {
		return labels.NewHTMLDocument(printer)
	}
}

// Print renders one page per unit of quantity and writes the PDF into the output directory.
// Nothing is written when there is nothing to print.
func (s *LabelService) Print(ctx context.Context, raw []models.RawOrder, labelSize string) (doc *models.LabelDocument, err error) {
	started := s.now()
	defer func() { s.metrics.Observe(metrics.PipelineLabels, started, err) }()

	if len(raw) == 0 {
		return nil, apperrors.New(apperrors.CodeValidation, msgInvalidOrders)
	}

	orders := models.NormalizeOrders(raw)
	total := labels.CountLabels(orders)
	if total == 0 {
		return nil, ErrNoLabels
	}
	if total > s.maxLabels {
		return nil, apperrors.New(apperrors.CodeValidation, fmt.Sprintf("%s: %d exceeds the limit of %d", msgTooManyLabels, total, s.maxLabels))
	}

	profile := labels.ParseProfile(labelSize)
	geo := labels.LayoutFor(profile)
	ctx = s.logger.WithFields(ctx, map[string]any{
		"label_size":  profile.String(),
		"label_count": total,
		"order_count": len(orders),
	})

	pages, err := s.generator.Pages(ctx, orders, geo)
	if err != nil {
		s.logger.Error(ctx, "barcode generation failed", err)
		return nil, apperrors.Wrap(apperrors.CodeDependency, err, msgLabelsFailed)
	}

	if s.newDoc == nil {
		return nil, apperrors.New(apperrors.CodeInternal, "label document factory is not configured")
	}
	document := s.newDoc()
	labels.Render(document, pages, geo)

	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		s.logger.Error(ctx, "failed to create output directory", err)
		return nil, apperrors.Wrap(apperrors.CodeDependency, err, msgLabelsFailed)
	}

	fileName := s.fileName()
	path := filepath.Join(s.outputDir, fileName)
	size, err := writeDocument(ctx, document, path)
	if err != nil {
		s.logger.Error(s.logger.WithField(ctx, "file", fileName), "failed to write labels PDF", err)
		return nil, apperrors.Wrap(apperrors.CodeDependency, err, msgLabelsFailed)
	}

	doc = &models.LabelDocument{
		FileName:   fileName,
		LabelSize:  profile.String(),
		LabelCount: total,
		OrderCount: len(orders),
		SizeBytes:  size,
		CreatedAt:  s.now().UTC(),
	}
	if s.ledger != nil {
		if err := s.ledger.Insert(ctx, doc); err != nil {
			// The PDF is already on disk; the ledger is informational.
			s.logger.Warn(s.logger.WithField(ctx, "error", err.Error()), "failed to record label document")
		}
	}

	s.metrics.AddLabels(total)
	s.logger.Info(s.logger.WithField(ctx, "file", fileName), "labels PDF generated")
	return doc, nil
}

// Recent lists recently generated documents. It returns an empty list without a ledger.
func (s *LabelService) Recent(ctx context.Context, limit int) ([]models.LabelDocument, error) {
	if s.ledger == nil {
		return []models.LabelDocument{}, nil
	}
	if limit <= 0 || limit > 100 {
		limit = defaultRecentDocuments
	}
	docs, err := s.ledger.ListRecent(ctx, limit)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeDependency, err, "Failed to list label documents")
	}
	return docs, nil
}

// fileName returns barcodes_{unixMillis}_{8 hex}.pdf
func (s *LabelService) fileName() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("barcodes_%d_%s.pdf", s.now().UnixMilli(), suffix)
}

// writeDocument finalizes doc into a new file at path. The file is always closed and is
// removed again when anything fails.
func writeDocument(ctx context.Context, doc labels.Document, path string) (size int64, err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		err = multierr.Append(err, f.Close())
		if err != nil {
			err = multierr.Append(err, os.Remove(path))
			size = 0
		}
	}()

	w := bufio.NewWriter(f)
	counter := &countingWriter{w: w}
	if err = doc.Finalize(ctx, counter); err != nil {
		return 0, err
	}
	if err = w.Flush(); err != nil {
		return 0, fmt.Errorf("failed to flush %s: %w", path, err)
	}
	return counter.n, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
