package labels

import (
	"context"
	"fmt"
	"io"

	"flip-order-labels/models"
	"flip-order-labels/utils"
)

const (
	missingValue = "N/A"
	flipPrefix   = "КОД FLIP - "
	maxNameRunes = 50
)

// Page is one physical label.
type Page struct {
	// Barcode is shared by every page of the same order.
	Barcode  []byte
	Code     string
	FlipLine string
	Name     string
}

// CountLabels returns how many pages the orders expand to. The sum saturates at
// math.MaxInt so callers can compare it against a limit.
func CountLabels(orders []models.Order) int {
	total := 0
	for _, o := range orders {
		if o.Quantity > 0 {
			total = utils.AddCapped(total, o.Quantity)
		}
	}
	return total
}

// Generator expands orders into label pages.
type Generator struct {
	Barcoder Barcoder
}

func NewGenerator(b Barcoder) *Generator {
	return &Generator{Barcoder: b}
}

// Pages produces quantity pages per order, in input order. Orders with a quantity of
// zero or less contribute nothing. One barcode is rendered per order and reused.
func (g *Generator) Pages(ctx context.Context, orders []models.Order, geo Geometry) ([]Page, error) {
	var pages []Page
	for i, o := range orders {
		if o.Quantity <= 0 {
			continue
		}

		code := o.SupplierCode
		if code == "" {
			code = missingValue
		}
		flip := o.FlipCode
		if flip == "" {
			flip = missingValue
		}

		png, err := g.Barcoder.Encode(ctx, BarcodeSpec{
			Text:         code,
			Scale:        geo.BarcodeScale,
			ModuleHeight: geo.BarcodeModuleHeight,
		})
		if err != nil {
			return nil, fmt.Errorf("barcode for order %d (%s): %w", i, code, err)
		}

		page := Page{
			Barcode:  png,
			Code:     code,
			FlipLine: flipPrefix + flip,
			Name:     utils.TruncateRunes(utils.SanitizeProductName(o.ProductName), maxNameRunes),
		}
		for n := 0; n < o.Quantity; n++ {
			pages = append(pages, page)
		}
	}
	return pages, nil
}

type Align string

const AlignCenter Align = "center"

// Document is a paginated output. Placement calls never fail; problems surface in Finalize.
type Document interface {
	AddPage(width, height float64)
	Image(png []byte, x, y, width, height float64)
	Text(text string, x, y, width, fontSize float64, align Align)
	Finalize(ctx context.Context, w io.Writer) error
}

// Render places every page on doc using geo. It does not finalize the document.
func Render(doc Document, pages []Page, geo Geometry) {
	for _, p := range pages {
		doc.AddPage(geo.PageWidth, geo.PageHeight)
		doc.Image(p.Barcode, geo.BarcodeX, geo.BarcodeY, geo.BarcodeWidth, geo.BarcodeHeight)
		doc.Text(p.Code, geo.TextX, geo.CodeY, geo.TextWidth, geo.CodeFontSize, AlignCenter)
		doc.Text(p.FlipLine, geo.TextX, geo.FlipY, geo.TextWidth, geo.FlipFontSize, AlignCenter)
		doc.Text(p.Name, geo.TextX, geo.NameY, geo.TextWidth, geo.NameFontSize, AlignCenter)
	}
}
