package labels

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"html/template"
	"io"
	"strings"
)

// Printer turns a self-contained HTML document into PDF bytes with the given paper size in points.
type Printer interface {
	PrintHTML(ctx context.Context, html string, widthPt, heightPt float64) ([]byte, error)
}

// HTMLDocument lays pages out as absolutely positioned HTML and hands the result to a Printer.
type HTMLDocument struct {
	printer Printer
	pages   []htmlPage
	images  map[string]int
	sources []string
}

type htmlPage struct {
	Width  float64
	Height float64
	Items  []htmlItem
}

type htmlItem struct {
	Image int
	Text  string
	Style template.CSS
	IsImg bool
}

func NewHTMLDocument(printer Printer) *HTMLDocument {
	return &HTMLDocument{
		printer: printer,
		images:  make(map[string]int),
	}
}

var _ Document = (*HTMLDocument)(nil)

// AddPage starts a new zero-margin page.
func (d *HTMLDocument) AddPage(width, height float64) {
	d.pages = append(d.pages, htmlPage{Width: width, Height: height})
}

// Image places a PNG. Identical images are embedded once.
func (d *HTMLDocument) Image(png []byte, x, y, width, height float64) {
	p := d.current()
	if p == nil {
		return
	}
	key := string(png)
	idx, ok := d.images[key]
	if !ok {
		idx = len(d.sources)
		d.images[key] = idx
		d.sources = append(d.sources, base64.StdEncoding.EncodeToString(png))
	}
	p.Items = append(p.Items, htmlItem{
		Image: idx,
		IsImg: true,
		Style: template.CSS(fmt.Sprintf("left:%.2fpt;top:%.2fpt;width:%.2fpt;height:%.2fpt", x, y, width, height)),
	})
}

// Text places a text box; long text wraps inside width.
func (d *HTMLDocument) Text(text string, x, y, width, fontSize float64, align Align) {
	p := d.current()
	if p == nil {
		return
	}
	p.Items = append(p.Items, htmlItem{
		Text:  text,
		Style: template.CSS(fmt.Sprintf("left:%.2fpt;top:%.2fpt;width:%.2fpt;font-size:%.2fpt;text-align:%s", x, y, width, fontSize, align)),
	})
}

func (d *HTMLDocument) current() *htmlPage {
	if len(d.pages) == 0 {
		return nil
	}
	return &d.pages[len(d.pages)-1]
}

// HTML renders the document markup.
func (d *HTMLDocument) HTML() (string, error) {
	if len(d.pages) == 0 {
		return "", errors.New("document has no pages")
	}
	first := d.pages[0]
	for i, p := range d.pages {
		if p.Width != first.Width || p.Height != first.Height {
			return "", fmt.Errorf("page %d size %.2fx%.2f differs from %.2fx%.2f", i+1, p.Width, p.Height, first.Width, first.Height)
		}
	}

	var css strings.Builder
	fmt.Fprintf(&css, "@page{size:%.2fpt %.2fpt;margin:0}\n", first.Width, first.Height)
	fmt.Fprintf(&css, ".page{width:%.2fpt;height:%.2fpt}\n", first.Width, first.Height)
	for i, src := range d.sources {
		fmt.Fprintf(&css, ".img-%d{background-image:url(data:image/png;base64,%s)}\n", i, src)
	}

	data := struct {
		Styles template.CSS
		Pages  []htmlPage
	}{
		Styles: template.CSS(css.String()),
		Pages:  d.pages,
	}

	var buf bytes.Buffer
	if err := documentTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute label template: %w", err)
	}
	return buf.String(), nil
}

// Finalize prints the document and writes the PDF to w.
func (d *HTMLDocument) Finalize(ctx context.Context, w io.Writer) error {
	html, err := d.HTML()
	if err != nil {
		return err
	}
	first := d.pages[0]
	pdf, err := d.printer.PrintHTML(ctx, html, first.Width, first.Height)
	if err != nil {
		return fmt.Errorf("failed to print labels: %w", err)
	}
	if _, err := w.Write(pdf); err != nil {
		return fmt.Errorf("failed to write labels PDF: %w", err)
	}
	return nil
}

var documentTemplate = template.Must(template.New("labels").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
html, body { margin: 0; padding: 0; }
body { font-family: Arial, Helvetica, sans-serif; color: #000; -webkit-print-color-adjust: exact; }
.page { position: relative; overflow: hidden; page-break-after: always; break-after: page; }
.page:last-child { page-break-after: auto; break-after: auto; }
.barcode { position: absolute; background-size: 100% 100%; background-repeat: no-repeat; }
.text { position: absolute; line-height: 1.15; overflow-wrap: break-word; }
{{.Styles}}
</style>
</head>
<body>
{{- range .Pages}}
<div class="page">
{{- range .Items}}
{{- if .IsImg}}
<div class="barcode img-{{.Image}}" style="{{.Style}}"></div>
{{- else}}
<div class="text" style="{{.Style}}">{{.Text}}</div>
{{- end}}
{{- end}}
</div>
{{- end}}
</body>
</html>
`))
