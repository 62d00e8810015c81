package report

import "strings"

// ReferenceTable maps trimmed supplier codes to a display text override and an expiration label.
type ReferenceTable struct {
	Text       map[string]string
	Expiration map[string]string
}

// BuildReferenceTable builds the lookup from reference rows (code, text, expiration).
// Row 0 is a header and is skipped. A row feeds the text map only when both code and
// text are non-empty after trimming, and independently the expiration map only when
// both code and expiration are non-empty. Later rows overwrite earlier ones.
func BuildReferenceTable(rows [][]string) ReferenceTable {
	table := ReferenceTable{
		Text:       make(map[string]string),
		Expiration: make(map[string]string),
	}
	for i := 1; i < len(rows); i++ {
		code := column(rows[i], 0)
		text := column(rows[i], 1)
		expiration := column(rows[i], 2)

		if code != "" && text != "" {
			table.Text[code] = text
		}
		if code != "" && expiration != "" {
			table.Expiration[code] = expiration
		}
	}
	return table
}

func column(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// Lookup returns the display text and expiration for a supplier code.
func (t ReferenceTable) Lookup(supplierCode string) (text, expiration string) {
	code := strings.TrimSpace(supplierCode)
	if code == "" {
		return "", ""
	}
	return t.Text[code], t.Expiration[code]
}
