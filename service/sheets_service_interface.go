package service

import (
	"context"

	"google.golang.org/api/sheets/v4"
)

// SheetsServiceInterface defines the contract for spreadsheet operations
type SheetsServiceInterface interface {
	GetValues(ctx context.Context, rng string) ([][]string, error)
	ClearValues(ctx context.Context, rng string) error
	// UpdateValues writes values starting at rng. inputOption is RAW or USER_ENTERED.
	UpdateValues(ctx context.Context, rng string, values [][]interface{}, inputOption string) error
	ConditionalFormatRuleCount(ctx context.Context, sheetID int64) (int, error)
	BatchUpdate(ctx context.Context, requests []*sheets.Request) error
}
