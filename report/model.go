// Package report builds the logical content of the order report: values plus an ordered,
// declarative list of operations that a publisher replays against a spreadsheet backend.
package report

import (
	"fmt"
	"strings"
)

// Stage is a step of the publish pipeline. Operations must be replayed in
// non-decreasing stage order: clearing precedes writing, styling follows data placement.
type Stage int

const (
	StageClear Stage = iota
	StageReset
	StageTitle
	StageHeader
	StageData
	StageTotals
	StageStyle
)

// Stages lists every stage in pipeline order.
var Stages = []Stage{StageClear, StageReset, StageTitle, StageHeader, StageData, StageTotals, StageStyle}

func (s Stage) String() string {
	switch s {
	case StageClear:
		return "clear"
	case StageReset:
		return "reset"
	case StageTitle:
		return "title"
	case StageHeader:
		return "header"
	case StageData:
		return "data"
	case StageTotals:
		return "totals"
	case StageStyle:
		return "style"
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// OpKind tags an Operation.
type OpKind string

const (
	OpClearValues            OpKind = "clear_values"
	OpResetFormat            OpKind = "reset_format"
	OpDeleteConditionalRules OpKind = "delete_conditional_rules"
	OpWriteValues            OpKind = "write_values"
	OpFormatCells            OpKind = "format_cells"
	OpBorders                OpKind = "borders"
	OpColumnWidth            OpKind = "column_width"
	OpAutoResizeColumns      OpKind = "auto_resize_columns"
	OpConditionalEquals      OpKind = "conditional_equals"
)

// InputMode controls how written values are interpreted by the spreadsheet.
type InputMode string

const (
	InputRaw         InputMode = "RAW"
	InputUserEntered InputMode = "USER_ENTERED"
)

// GridRange is a 0-indexed, end-exclusive cell block.
type GridRange struct {
	StartRow int
	EndRow   int
	StartCol int
	EndCol   int
}

func (g GridRange) Empty() bool {
	return g.EndRow <= g.StartRow || g.EndCol <= g.StartCol
}

// Color is an RGB color with components in [0, 1].
type Color struct {
	Red   float64
	Green float64
	Blue  float64
}

// Hex returns the color as RRGGBB.
func (c Color) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", channel(c.Red), channel(c.Green), channel(c.Blue))
}

func channel(v float64) int {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return int(v*255 + 0.5)
}

var (
	White  = Color{Red: 1, Green: 1, Blue: 1}
	Black  = Color{}
	Yellow = Color{Red: 1, Green: 1}
	Green  = Color{Green: 1}
	Red    = Color{Red: 1}
)

type HAlign string

const (
	AlignLeft   HAlign = "LEFT"
	AlignCenter HAlign = "CENTER"
	AlignRight  HAlign = "RIGHT"
)

// CellFormat describes the attributes an OpFormatCells or OpResetFormat sets.
// Nil pointers and zero values leave the attribute untouched, except for the reset
// operation which always writes every attribute.
type CellFormat struct {
	Background *Color
	Foreground *Color
	Bold       *bool
	FontSize   int
	HAlign     HAlign
	VAlign     string
}

type BorderStyle string

const (
	BorderSolid       BorderStyle = "SOLID"
	BorderSolidMedium BorderStyle = "SOLID_MEDIUM"
)

// Border is applied to the outer edges and inner lines of a range.
type Border struct {
	Style BorderStyle
	Width int
	Color Color
}

// Hyperlink is a cell value linking to URL and showing Text.
type Hyperlink struct {
	URL  string
	Text string
}

// Formula renders the link as a spreadsheet formula, e.g. =HYPERLINK("url"; "text").
func (h Hyperlink) Formula(function, separator string) string {
	if function == "" {
		function = "HYPERLINK"
	}
	if separator == "" {
		separator = ";"
	}
	return fmt.Sprintf("=%s(%s%s %s)", function, quoteFormula(h.URL), separator, quoteFormula(h.Text))
}

func quoteFormula(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// Operation is one declarative step of publishing a report. Kind selects which of the
// parameter fields are meaningful.
type Operation struct {
	Kind  OpKind
	Stage Stage

	// A1 addresses value operations relative to the report sheet, e.g. "A4:H6".
	A1     string
	Values [][]any
	Input  InputMode

	Range     GridRange
	Format    *CellFormat
	Border    *Border
	PixelSize int

	// Conditional highlight: cells equal to EqualsValue get Highlight as background.
	EqualsValue string
	Highlight   *Color
}

// Row is one report line derived from an order and its reference entry.
type Row struct {
	SupplierCode string
	FlipCode     string
	Product      Hyperlink
	Quantity     int
	UnitPrice    int
	LineAmount   int
	Expiration   string
	OrderDate    string
}

// Values returns the row cells in column order.
func (r Row) Values() []any {
	return []any{r.SupplierCode, r.FlipCode, r.Product, r.Quantity, r.UnitPrice, r.LineAmount, r.Expiration, r.OrderDate}
}

type Totals struct {
	Quantity int
	Amount   int
}

// Model is the complete report prior to publication.
type Model struct {
	Title      string
	Header     []string
	Rows       []Row
	Totals     Totals
	Operations []Operation
}

// TotalsRowIndex is the 0-indexed row of the totals line.
func (m Model) TotalsRowIndex() int {
	return FirstDataRow + len(m.Rows)
}
