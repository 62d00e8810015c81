package report

import (
	"fmt"
	"time"

	"flip-order-labels/models"
	"flip-order-labels/utils"
)

// Sheet layout, 0-indexed.
const (
	TitleRow     = 0
	TitleCol     = 2
	HeaderRow    = 2
	FirstDataRow = 3
	ColumnCount  = 8
)

// Column indexes.
const (
	ColSupplierCode = iota
	ColFlipCode
	ColProduct
	ColQuantity
	ColPrice
	ColAmount
	ColExpiration
	ColOrderDate
)

const (
	clearRange      = "A1:ZZ10000"
	resetRowCount   = 10000
	resetColCount   = 702
	totalsLabel     = "ИТОГО:"
	conditionalZero = "0"
)

// Header holds the fixed column titles.
var Header = []string{
	"Код поставщика",
	"КОД FLIP",
	"Наименование + ссылка на товар",
	"Кол-во",
	"Цена",
	"Сумма",
	"Срок годности",
	"Дата заказа",
}

// Fixed column widths in pixels, [start, end) -> px. The product column is auto-sized.
var columnWidths = []struct {
	start, end, px int
}{
	{ColSupplierCode, ColFlipCode, 120},
	{ColFlipCode, ColProduct, 80},
	{ColQuantity, ColOrderDate, 100},
	{ColOrderDate, ColumnCount, 100},
}

// Builder turns normalized orders into a report Model.
type Builder struct {
	Title          string
	ProductURLBase string
	Now            func() time.Time
}

func NewBuilder(title, productURLBase string) *Builder {
	return &Builder{
		Title:          title,
		ProductURLBase: productURLBase,
		Now:            time.Now,
	}
}

// Rows derives one report row per order, in input order.
func (b *Builder) Rows(orders []models.Order, refs ReferenceTable) []Row {
	date := utils.FormatOrderDate(b.now())
	rows := make([]Row, 0, len(orders))
	for _, o := range orders {
		text, expiration := refs.Lookup(o.SupplierCode)
		display := o.ProductName
		if text != "" {
			display = utils.SanitizeProductName(text)
		}
		rows = append(rows, Row{
			SupplierCode: o.SupplierCode,
			FlipCode:     o.FlipCode,
			Product: Hyperlink{
				URL:  b.ProductURLBase + o.FlipCode,
				Text: display,
			},
			Quantity:   o.Quantity,
			UnitPrice:  o.Price,
			LineAmount: utils.MulCapped(o.Quantity, o.Price),
			Expiration: expiration,
			OrderDate:  date,
		})
	}
	return rows
}

// Build produces the full report model: values and the ordered operation list.
func (b *Builder) Build(orders []models.Order, refs ReferenceTable) Model {
	rows := b.Rows(orders, refs)

	// Amounts saturate at math.MaxInt rather than wrapping into wrong figures.
	var totals Totals
	for _, r := range rows {
		totals.Quantity = utils.AddCapped(totals.Quantity, r.Quantity)
		totals.Amount = utils.AddCapped(totals.Amount, r.LineAmount)
	}

	m := Model{
		Title:  b.Title,
		Header: append([]string(nil), Header...),
		Rows:   rows,
		Totals: totals,
	}
	m.Operations = b.operations(m)
	return m
}

func (b *Builder) now() time.Time {
	if b.Now == nil {
		return time.Now()
	}
	return b.Now()
}

func (b *Builder) operations(m Model) []Operation {
	n := len(m.Rows)
	totalsRow := m.TotalsRowIndex()

	ops := []Operation{
		{Kind: OpClearValues, Stage: StageClear, A1: clearRange},
		{
			Kind:   OpResetFormat,
			Stage:  StageReset,
			Range:  GridRange{StartRow: 0, EndRow: resetRowCount, StartCol: 0, EndCol: resetColCount},
			Format: &CellFormat{Background: color(White), Foreground: color(Black), Bold: boolPtr(false), HAlign: AlignLeft, VAlign: "BOTTOM"},
		},
		{Kind: OpDeleteConditionalRules, Stage: StageReset},
		{
			Kind:   OpWriteValues,
			Stage:  StageTitle,
			A1:     cellName(TitleRow, TitleCol),
			Values: [][]any{{m.Title}},
			Input:  InputRaw,
		},
		{
			Kind:   OpWriteValues,
			Stage:  StageHeader,
			A1:     rowRange(HeaderRow),
			Values: [][]any{stringsToCells(m.Header)},
			Input:  InputRaw,
		},
	}

	if n > 0 {
		values := make([][]any, 0, n)
		for _, r := range m.Rows {
			values = append(values, r.Values())
		}
		ops = append(ops, Operation{
			Kind:   OpWriteValues,
			Stage:  StageData,
			A1:     fmt.Sprintf("A%d:H%d", FirstDataRow+1, FirstDataRow+n),
			Values: values,
			Input:  InputUserEntered,
		})
	}

	ops = append(ops, Operation{
		Kind:   OpWriteValues,
		Stage:  StageTotals,
		A1:     rowRange(totalsRow),
		Values: [][]any{{"", "", totalsLabel, m.Totals.Quantity, "", m.Totals.Amount, "", ""}},
		Input:  InputRaw,
	})

	ops = append(ops,
		formatOp(GridRange{TitleRow, TitleRow + 1, TitleCol, TitleCol + 1},
			CellFormat{Bold: boolPtr(true), FontSize: 20, HAlign: AlignCenter}),
		Operation{
			Kind:   OpBorders,
			Stage:  StageStyle,
			Range:  GridRange{HeaderRow, totalsRow + 1, 0, ColumnCount},
			Border: &Border{Style: BorderSolid, Width: 1, Color: Black},
		},
		Operation{
			Kind:   OpBorders,
			Stage:  StageStyle,
			Range:  GridRange{HeaderRow, HeaderRow + 1, 0, ColumnCount},
			Border: &Border{Style: BorderSolidMedium, Width: 2, Color: Black},
		},
		formatOp(GridRange{HeaderRow, HeaderRow + 1, 0, ColumnCount},
			CellFormat{Background: color(Yellow), Foreground: color(Black), Bold: boolPtr(true), HAlign: AlignCenter}),
		formatOp(GridRange{totalsRow, totalsRow + 1, 0, ColumnCount},
			CellFormat{Background: color(Green), Bold: boolPtr(true), HAlign: AlignRight}),
	)

	if n > 0 {
		data := func(start, end int) GridRange {
			return GridRange{FirstDataRow, totalsRow, start, end}
		}
		ops = append(ops,
			formatOp(data(ColQuantity, ColQuantity+1), CellFormat{HAlign: AlignCenter}),
			formatOp(data(ColPrice, ColAmount+1), CellFormat{HAlign: AlignRight}),
			formatOp(data(ColExpiration, ColExpiration+1), CellFormat{HAlign: AlignCenter}),
			formatOp(data(ColOrderDate, ColOrderDate+1), CellFormat{HAlign: AlignRight}),
			formatOp(data(ColProduct, ColProduct+1), CellFormat{HAlign: AlignLeft}),
		)
	}

	for _, w := range columnWidths {
		ops = append(ops, Operation{
			Kind:      OpColumnWidth,
			Stage:     StageStyle,
			Range:     GridRange{StartCol: w.start, EndCol: w.end},
			PixelSize: w.px,
		})
	}
	ops = append(ops, Operation{
		Kind:  OpAutoResizeColumns,
		Stage: StageStyle,
		Range: GridRange{StartCol: ColProduct, EndCol: ColProduct + 1},
	})

	if n > 0 {
		ops = append(ops, Operation{
			Kind:        OpConditionalEquals,
			Stage:       StageStyle,
			Range:       GridRange{FirstDataRow, totalsRow, ColQuantity, ColumnCount},
			EqualsValue: conditionalZero,
			Highlight:   color(Red),
		})
	}
	return ops
}

func formatOp(r GridRange, f CellFormat) Operation {
	return Operation{Kind: OpFormatCells, Stage: StageStyle, Range: r, Format: &f}
}

// rowRange returns "A{n}:H{n}" for a 0-indexed row.
func rowRange(row int) string {
	return fmt.Sprintf("A%d:H%d", row+1, row+1)
}

// cellName converts 0-indexed coordinates to A1 notation (columns up to Z).
func cellName(row, col int) string {
	return fmt.Sprintf("%c%d", rune('A'+col), row+1)
}

func stringsToCells(ss []string) []any {
	cells := make([]any, len(ss))
	for i, s := range ss {
		cells[i] = s
	}
	return cells
}

func color(c Color) *Color { return &c }

func boolPtr(b bool) *bool { return &b }
