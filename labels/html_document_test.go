package labels

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePrinter struct {
	html          string
	width, height float64
	err           error
}

func (p *fakePrinter) PrintHTML(ctx context.Context, html string, widthPt, heightPt float64) ([]byte, error) {
	p.html, p.width, p.height = html, widthPt, heightPt
	if p.err != nil {
		return nil, p.err
	}
	return []byte("%PDF-1.4 fake"), nil
}

func TestHTMLDocumentFinalize(t *testing.T) {
	printer := &fakePrinter{}
	doc := NewHTMLDocument(printer)
	geo := LayoutFor(Profile58x40)
	pages := []Page{
		{Barcode: []byte("same"), Code: "S1", FlipLine: "КОД FLIP - F1", Name: "Tom & <Jerry>"},
		{Barcode: []byte("same"), Code: "S1", FlipLine: "КОД FLIP - F1", Name: "Tom & <Jerry>"},
	}
	Render(doc, pages, geo)
	assert.Equal(t, 2, len(doc.pages))

	var out bytes.Buffer
	require.NoError(t, doc.Finalize(context.Background(), &out))

	assert.Equal(t, "%PDF-1.4 fake", out.String())
	assert.InDelta(t, geo.PageWidth, printer.width, 1e-9)
	assert.InDelta(t, geo.PageHeight, printer.height, 1e-9)

	html := printer.html
	assert.Equal(t, 2, strings.Count(html, `<div class="page">`))
	assert.Equal(t, 1, strings.Count(html, "background-image:"), "identical barcodes are embedded once")
	assert.Contains(t, html, "@page{size:164.41pt 113.39pt;margin:0}")
	assert.Contains(t, html, "Tom &amp; &lt;Jerry&gt;")
	assert.Contains(t, html, "font-size:10.00pt")
}

func TestHTMLDocumentWithoutPages(t *testing.T) {
	doc := NewHTMLDocument(&fakePrinter{})
	doc.Text("orphan", 0, 0, 10, 8, AlignCenter)
	err := doc.Finalize(context.Background(), &bytes.Buffer{})
	assert.Error(t, err)
}

func TestHTMLDocumentRejectsMixedPageSizes(t *testing.T) {
	doc := NewHTMLDocument(&fakePrinter{})
	doc.AddPage(10, 10)
	doc.AddPage(20, 10)
	_, err := doc.HTML()
	assert.Error(t, err)
}

func TestHTMLDocumentPrinterFailure(t *testing.T) {
	doc := NewHTMLDocument(&fakePrinter{err: errors.New("chrome not found")})
	doc.AddPage(10, 10)
	err := doc.Finalize(context.Background(), &bytes.Buffer{})
	assert.ErrorContains(t, err, "chrome not found")
}
