package service

import (
	"context"

	"flip-order-labels/report"
)

// referenceColumns covers supplier code, product text and expiration.
const referenceColumns = "A:C"

// ReferenceService reads the supplier reference table from a sheet of the spreadsheet
type ReferenceService struct {
	sheets    SheetsServiceInterface
	sheetName string
}

// Ensure ReferenceService implements ReferenceServiceInterface
var _ ReferenceServiceInterface = (*ReferenceService)(nil)

func NewReferenceService(client SheetsServiceInterface, sheetName string) *ReferenceService {
	return &ReferenceService{sheets: client, sheetName: sheetName}
}

// Load reads the whole reference sheet. The first row is a header.
func (s *ReferenceService) Load(ctx context.Context) (report.ReferenceTable, error) {
	rows, err := s.sheets.GetValues(ctx, sheetRange(s.sheetName, referenceColumns))
	if err != nil {
		return report.ReferenceTable{}, err
	}
	return report.BuildReferenceTable(rows), nil
}
