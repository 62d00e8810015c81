package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildReferenceTableSkipsHeader(t *testing.T) {
	table := BuildReferenceTable([][]string{
		{"S1", "header text", "header exp"},
	})
	assert.Empty(t, table.Text)
	assert.Empty(t, table.Expiration)
}

func TestBuildReferenceTableLastRowWins(t *testing.T) {
	table := BuildReferenceTable([][]string{
		{"code", "text", "exp"},
		{"S1", "First", "2024-01-01"},
		{"S1", "Second", "2025-06-30"},
	})
	text, exp := table.Lookup("S1")
	assert.Equal(t, "Second", text)
	assert.Equal(t, "2025-06-30", exp)
}

func TestBuildReferenceTableMapsAreIndependent(t *testing.T) {
	table := BuildReferenceTable([][]string{
		{"code", "text", "exp"},
		{"S1", "Only text"},
		{"S2", "  ", "2026-02-02"},
		{"  ", "orphan", "2020-01-01"},
		{"S1", "", "2027-03-03"},
	})

	text, exp := table.Lookup("S1")
	assert.Equal(t, "Only text", text)
	assert.Equal(t, "2027-03-03", exp)

	text, exp = table.Lookup(" S2 ")
	assert.Equal(t, "", text)
	assert.Equal(t, "2026-02-02", exp)

	assert.Len(t, table.Text, 1)
	assert.Len(t, table.Expiration, 2)
}

func TestLookupOnEmptyTable(t *testing.T) {
	var table ReferenceTable
	text, exp := table.Lookup("S1")
	assert.Empty(t, text)
	assert.Empty(t, exp)
}
