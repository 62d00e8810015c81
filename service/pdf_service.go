package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"

	"flip-order-labels/labels"
	"flip-order-labels/logger"
)

const pointsPerInch = 72.0

// ChromePrinter prints HTML to PDF with a headless Chrome driven by chromedp
type ChromePrinter struct {
	chromePath string
	timeout    time.Duration
	logger     *logger.Logger
}

// Ensure ChromePrinter implements labels.Printer
var _ labels.Printer = (*ChromePrinter)(nil)

// NewChromePrinter creates a printer. An empty chromePath falls back to detection.
func NewChromePrinter(chromePath string, timeout time.Duration, log *logger.Logger) *ChromePrinter {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ChromePrinter{
		chromePath: detectChromePath(chromePath),
		timeout:    timeout,
		logger:     log,
	}
}

// detectChromePath returns the configured Chrome/Chromium path when it exists,
// otherwise the first common installation path found
func detectChromePath(configured string) string {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// PrintHTML loads html into a blank tab and prints it with the given paper size in points
func (p *ChromePrinter) PrintHTML(ctx context.Context, html string, widthPt, heightPt float64) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
		chromedp.DisableGPU,
	)
	if p.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(p.chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	var pdfBuf []byte
	var fontsReady bool
	err := chromedp.Run(chromedpCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		chromedp.Evaluate(`document.fonts.ready.then(() => true)`, &fontsReady, func(params *runtime.EvaluateParams) *runtime.EvaluateParams {
			return params.WithAwaitPromise(true)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				WithPaperWidth(widthPt / pointsPerInch).
				WithPaperHeight(heightPt / pointsPerInch).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	p.logger.Debug(p.logger.WithField(ctx, "bytes", len(pdfBuf)), "labels PDF printed")
	return pdfBuf, nil
}
