package service

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"flip-order-labels/report"
)

const (
	defaultXLSXSheet = "Report"
	pixelsPerChar    = 7.0
	minAutoWidth     = 10.0
	maxAutoWidth     = 80.0
)

// XLSXRenderer replays report operations into an in-memory workbook
type XLSXRenderer struct {
	sheetName string
}

func NewXLSXRenderer(sheetName string) *XLSXRenderer {
	if sheetName == "" {
		sheetName = defaultXLSXSheet
	}
	return &XLSXRenderer{sheetName: sheetName}
}

type cellKey struct {
	row, col int
}

// xlsxStyle is the merged formatting of one cell
type xlsxStyle struct {
	fill        string
	fontColor   string
	bold        bool
	size        float64
	horizontal  string
	vertical    string
	borderStyle int
}

type xlsxBuild struct {
	f        *excelize.File
	sheet    string
	styles   map[cellKey]*xlsxStyle
	colChars map[int]int
}

// Render writes the model as an XLSX workbook. Operations that only make sense against
// a reused sheet (clearing, resetting, deleting rules) are no-ops on a fresh workbook.
func (r *XLSXRenderer) Render(model report.Model, w io.Writer) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err := f.SetSheetName("Sheet1", r.sheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	b := &xlsxBuild{
		f:        f,
		sheet:    r.sheetName,
		styles:   make(map[cellKey]*xlsxStyle),
		colChars: make(map[int]int),
	}

	var conditional []report.Operation
	for _, op := range model.Operations {
		switch op.Kind {
		case report.OpClearValues, report.OpResetFormat, report.OpDeleteConditionalRules:
		case report.OpWriteValues:
			if err := b.writeValues(op); err != nil {
				return err
			}
		case report.OpFormatCells:
			if op.Format != nil {
				b.format(op.Range, *op.Format)
			}
		case report.OpBorders:
			if op.Border != nil {
				b.border(op.Range, *op.Border)
			}
		case report.OpColumnWidth:
			if err := b.columnWidth(op.Range, float64(op.PixelSize)/pixelsPerChar); err != nil {
				return err
			}
		case report.OpAutoResizeColumns:
			if err := b.autoResize(op.Range); err != nil {
				return err
			}
		case report.OpConditionalEquals:
			conditional = append(conditional, op)
		default:
			return fmt.Errorf("unsupported report operation %q", op.Kind)
		}
	}

	if err := b.applyStyles(); err != nil {
		return err
	}
	for _, op := range conditional {
		if err := b.conditionalEquals(op); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func (b *xlsxBuild) writeValues(op report.Operation) error {
	start := strings.SplitN(op.A1, ":", 2)[0]
	col, row, err := excelize.CellNameToCoordinates(start)
	if err != nil {
		return fmt.Errorf("invalid range %q: %w", op.A1, err)
	}

	for i, values := range op.Values {
		for j, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+j, row+i)
			if err != nil {
				return err
			}
			text, err := b.setCell(cell, v)
			if err != nil {
				return fmt.Errorf("failed to set %s: %w", cell, err)
			}
			if n := utf8.RuneCountInString(text); n > b.colChars[col+j-1] {
				b.colChars[col+j-1] = n
			}
		}
	}
	return nil
}

// setCell writes one value and returns its display text
func (b *xlsxBuild) setCell(cell string, v any) (string, error) {
	switch value := v.(type) {
	case report.Hyperlink:
		if err := b.f.SetCellValue(b.sheet, cell, value.Text); err != nil {
			return "", err
		}
		if value.URL == "" {
			return value.Text, nil
		}
		return value.Text, b.f.SetCellHyperLink(b.sheet, cell, value.URL, "External")
	case nil:
		return "", nil
	default:
		return fmt.Sprint(value), b.f.SetCellValue(b.sheet, cell, value)
	}
}

func (b *xlsxBuild) cells(r report.GridRange, fn func(*xlsxStyle)) {
	for row := r.StartRow; row < r.EndRow; row++ {
		for col := r.StartCol; col < r.EndCol; col++ {
			key := cellKey{row: row, col: col}
			st, ok := b.styles[key]
			if !ok {
				st = &xlsxStyle{}
				b.styles[key] = st
			}
			fn(st)
		}
	}
}

func (b *xlsxBuild) format(r report.GridRange, f report.CellFormat) {
	b.cells(r, func(st *xlsxStyle) {
		if f.Background != nil {
			st.fill = f.Background.Hex()
		}
		if f.Foreground != nil {
			st.fontColor = f.Foreground.Hex()
		}
		if f.Bold != nil {
			st.bold = *f.Bold
		}
		if f.FontSize > 0 {
			st.size = float64(f.FontSize)
		}
		if f.HAlign != "" {
			st.horizontal = strings.ToLower(string(f.HAlign))
		}
		if f.VAlign != "" {
			st.vertical = strings.ToLower(f.VAlign)
		}
	})
}

func (b *xlsxBuild) border(r report.GridRange, border report.Border) {
	style := 1
	if border.Style == report.BorderSolidMedium {
		style = 2
	}
	b.cells(r, func(st *xlsxStyle) {
		st.borderStyle = style
	})
}

func (b *xlsxBuild) columnWidth(r report.GridRange, width float64) error {
	if r.EndCol <= r.StartCol {
		return nil
	}
	first, err := excelize.ColumnNumberToName(r.StartCol + 1)
	if err != nil {
		return err
	}
	last, err := excelize.ColumnNumberToName(r.EndCol)
	if err != nil {
		return err
	}
	return b.f.SetColWidth(b.sheet, first, last, width)
}

func (b *xlsxBuild) autoResize(r report.GridRange) error {
	for col := r.StartCol; col < r.EndCol; col++ {
		width := float64(b.colChars[col]) * 1.2
		if width < minAutoWidth {
			width = minAutoWidth
		}
		if width > maxAutoWidth {
			width = maxAutoWidth
		}
		if err := b.columnWidth(report.GridRange{StartCol: col, EndCol: col + 1}, width); err != nil {
			return err
		}
	}
	return nil
}

func (b *xlsxBuild) applyStyles() error {
	keys := make([]cellKey, 0, len(b.styles))
	for k := range b.styles {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].row != keys[j].row {
			return keys[i].row < keys[j].row
		}
		return keys[i].col < keys[j].col
	})

	ids := make(map[xlsxStyle]int)
	for _, k := range keys {
		st := *b.styles[k]
		id, ok := ids[st]
		if !ok {
			var err error
			id, err = b.f.NewStyle(st.toExcelize())
			if err != nil {
				return fmt.Errorf("failed to create style: %w", err)
			}
			ids[st] = id
		}
		cell, err := excelize.CoordinatesToCellName(k.col+1, k.row+1)
		if err != nil {
			return err
		}
		if err := b.f.SetCellStyle(b.sheet, cell, cell, id); err != nil {
			return fmt.Errorf("failed to style %s: %w", cell, err)
		}
	}
	return nil
}

func (st xlsxStyle) toExcelize() *excelize.Style {
	style := &excelize.Style{
		Font: &excelize.Font{
			Bold:  st.bold,
			Size:  st.size,
			Color: st.fontColor,
		},
	}
	if st.fill != "" {
		style.Fill = excelize.Fill{Type: "pattern", Color: []string{st.fill}, Pattern: 1}
	}
	if st.horizontal != "" || st.vertical != "" {
		style.Alignment = &excelize.Alignment{Horizontal: st.horizontal, Vertical: st.vertical}
	}
	if st.borderStyle > 0 {
		for _, side := range []string{"left", "top", "right", "bottom"} {
			style.Border = append(style.Border, excelize.Border{Type: side, Color: report.Black.Hex(), Style: st.borderStyle})
		}
	}
	return style
}

func (b *xlsxBuild) conditionalEquals(op report.Operation) error {
	if op.Range.Empty() || op.Highlight == nil {
		return nil
	}
	format, err := b.f.NewConditionalStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{op.Highlight.Hex()}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create conditional style: %w", err)
	}

	first, err := excelize.CoordinatesToCellName(op.Range.StartCol+1, op.Range.StartRow+1)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(op.Range.EndCol, op.Range.EndRow)
	if err != nil {
		return err
	}
	return b.f.SetConditionalFormat(b.sheet, first+":"+last, []excelize.ConditionalFormatOptions{{
		Type:     "cell",
		Criteria: "==",
		Format:   &format,
		Value:    op.EqualsValue,
	}})
}
