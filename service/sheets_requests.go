package service

import (
	"fmt"
	"strings"

	"google.golang.org/api/sheets/v4"

	"flip-order-labels/report"
)

// sheetsRequestBuilder translates report operations into Sheets API batch requests
type sheetsRequestBuilder struct {
	sheetID int64
}

func (b sheetsRequestBuilder) gridRange(r report.GridRange) *sheets.GridRange {
	return &sheets.GridRange{
		SheetId:          b.sheetID,
		StartRowIndex:    int64(r.StartRow),
		EndRowIndex:      int64(r.EndRow),
		StartColumnIndex: int64(r.StartCol),
		EndColumnIndex:   int64(r.EndCol),
		ForceSendFields:  []string{"SheetId", "StartRowIndex", "StartColumnIndex"},
	}
}

func sheetsColor(c report.Color) *sheets.Color {
	return &sheets.Color{
		Red:             c.Red,
		Green:           c.Green,
		Blue:            c.Blue,
		ForceSendFields: []string{"Red", "Green", "Blue"},
	}
}

// format builds a repeatCell request. Only attributes set on the operation are
// listed in the field mask, so other formatting on the range is preserved.
func (b sheetsRequestBuilder) format(op report.Operation) (*sheets.Request, error) {
	if op.Format == nil {
		return nil, fmt.Errorf("%s operation without format", op.Kind)
	}
	f := op.Format
	reset := op.Kind == report.OpResetFormat

	cell := &sheets.CellFormat{}
	var fields []string

	if f.Background != nil {
		cell.BackgroundColor = sheetsColor(*f.Background)
		fields = append(fields, "userEnteredFormat.backgroundColor")
	}

	text := &sheets.TextFormat{}
	var textFields []string
	if f.Foreground != nil {
		text.ForegroundColor = sheetsColor(*f.Foreground)
		textFields = append(textFields, "foregroundColor")
	}
	if f.Bold != nil {
		text.Bold = *f.Bold
		text.ForceSendFields = append(text.ForceSendFields, "Bold")
		textFields = append(textFields, "bold")
	}
	if f.FontSize > 0 {
		text.FontSize = int64(f.FontSize)
		textFields = append(textFields, "fontSize")
	}
	if reset {
		text.ForceSendFields = append(text.ForceSendFields, "Italic", "Underline", "Strikethrough")
		textFields = append(textFields, "italic", "underline", "strikethrough")
	}
	if len(textFields) > 0 {
		cell.TextFormat = text
		for _, tf := range textFields {
			fields = append(fields, "userEnteredFormat.textFormat."+tf)
		}
	}

	if f.HAlign != "" {
		cell.HorizontalAlignment = string(f.HAlign)
		fields = append(fields, "userEnteredFormat.horizontalAlignment")
	}
	if f.VAlign != "" {
		cell.VerticalAlignment = f.VAlign
		fields = append(fields, "userEnteredFormat.verticalAlignment")
	}
	if reset {
		cell.Borders = &sheets.Borders{}
		fields = append(fields, "userEnteredFormat.borders")
	}

	if len(fields) == 0 {
		return nil, fmt.Errorf("%s operation sets no attributes", op.Kind)
	}

	return &sheets.Request{
		RepeatCell: &sheets.RepeatCellRequest{
			Range:  b.gridRange(op.Range),
			Cell:   &sheets.CellData{UserEnteredFormat: cell},
			Fields: strings.Join(fields, ","),
		},
	}, nil
}

func (b sheetsRequestBuilder) borders(op report.Operation) (*sheets.Request, error) {
	if op.Border == nil {
		return nil, fmt.Errorf("%s operation without border", op.Kind)
	}
	border := func() *sheets.Border {
		return &sheets.Border{
			Style: string(op.Border.Style),
			Width: int64(op.Border.Width),
			Color: sheetsColor(op.Border.Color),
		}
	}
	return &sheets.Request{
		UpdateBorders: &sheets.UpdateBordersRequest{
			Range:           b.gridRange(op.Range),
			Top:             border(),
			Bottom:          border(),
			Left:            border(),
			Right:           border(),
			InnerHorizontal: border(),
			InnerVertical:   border(),
		},
	}, nil
}

func (b sheetsRequestBuilder) columnWidth(op report.Operation) *sheets.Request {
	return &sheets.Request{
		UpdateDimensionProperties: &sheets.UpdateDimensionPropertiesRequest{
			Range:      b.columns(op.Range),
			Properties: &sheets.DimensionProperties{PixelSize: int64(op.PixelSize)},
			Fields:     "pixelSize",
		},
	}
}

func (b sheetsRequestBuilder) autoResize(op report.Operation) *sheets.Request {
	return &sheets.Request{
		AutoResizeDimensions: &sheets.AutoResizeDimensionsRequest{
			Dimensions: b.columns(op.Range),
		},
	}
}

func (b sheetsRequestBuilder) columns(r report.GridRange) *sheets.DimensionRange {
	return &sheets.DimensionRange{
		SheetId:         b.sheetID,
		Dimension:       "COLUMNS",
		StartIndex:      int64(r.StartCol),
		EndIndex:        int64(r.EndCol),
		ForceSendFields: []string{"SheetId", "StartIndex"},
	}
}

func (b sheetsRequestBuilder) conditionalEquals(op report.Operation) (*sheets.Request, error) {
	if op.Highlight == nil {
		return nil, fmt.Errorf("%s operation without highlight color", op.Kind)
	}
	return &sheets.Request{
		AddConditionalFormatRule: &sheets.AddConditionalFormatRuleRequest{
			Index: 0,
			Rule: &sheets.ConditionalFormatRule{
				Ranges: []*sheets.GridRange{b.gridRange(op.Range)},
				BooleanRule: &sheets.BooleanRule{
					Condition: &sheets.BooleanCondition{
						Type:   "NUMBER_EQ",
						Values: []*sheets.ConditionValue{{UserEnteredValue: op.EqualsValue}},
					},
					Format: &sheets.CellFormat{BackgroundColor: sheetsColor(*op.Highlight)},
				},
			},
			ForceSendFields: []string{"Index"},
		},
	}, nil
}

// deleteConditionalRules removes count rules; each request deletes the current first rule.
func (b sheetsRequestBuilder) deleteConditionalRules(count int) []*sheets.Request {
	requests := make([]*sheets.Request, 0, count)
	for i := 0; i < count; i++ {
		requests = append(requests, &sheets.Request{
			DeleteConditionalFormatRule: &sheets.DeleteConditionalFormatRuleRequest{
				SheetId:         b.sheetID,
				Index:           0,
				ForceSendFields: []string{"SheetId", "Index"},
			},
		})
	}
	return requests
}

// cellValues converts report cells to API values. Hyperlinks become formulas.
func cellValues(values [][]any, hyperlinkFunction, separator string) [][]interface{} {
	out := make([][]interface{}, len(values))
	for i, row := range values {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			switch cell := v.(type) {
			case report.Hyperlink:
				cells[j] = cell.Formula(hyperlinkFunction, separator)
			case nil:
				cells[j] = ""
			default:
				cells[j] = cell
			}
		}
		out[i] = cells
	}
	return out
}

// sheetRange qualifies an A1 range with the quoted sheet name.
func sheetRange(sheetName, a1 string) string {
	if sheetName == "" {
		return a1
	}
	return "'" + strings.ReplaceAll(sheetName, "'", "''") + "'!" + a1
}
