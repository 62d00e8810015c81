package service

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"flip-order-labels/config"
)

// SheetsService handles Google Sheets API operations against one spreadsheet
type SheetsService struct {
	client        *sheets.Service
	spreadsheetID string
}

// Ensure SheetsService implements SheetsServiceInterface
var _ SheetsServiceInterface = (*SheetsService)(nil)

// NewSheetsService creates a new SheetsService instance.
// Credentials come from GOOGLE_APPLICATION_CREDENTIALS_JSON when set, otherwise from the
// Service Account file at GOOGLE_APPLICATION_CREDENTIALS.
func NewSheetsService(ctx context.Context, creds config.GoogleConfig, spreadsheetID string) (*SheetsService, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet id is required")
	}

	opts := []option.ClientOption{option.WithScopes(sheets.SpreadsheetsScope)}
	switch {
	case creds.CredentialsJSON != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(creds.CredentialsJSON)))
	case creds.CredentialsPath != "":
		opts = append(opts, option.WithCredentialsFile(creds.CredentialsPath))
	default:
		return nil, fmt.Errorf("google credentials are not configured")
	}

	client, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &SheetsService{
		client:        client,
		spreadsheetID: spreadsheetID,
	}, nil
}

// GetValues reads a range and returns every cell as text
func (s *SheetsService) GetValues(ctx context.Context, rng string) ([][]string, error) {
	resp, err := s.client.Spreadsheets.Values.Get(s.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read range %s: %w", rng, err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, len(raw))
		for i, cell := range raw {
			if cell != nil {
				row[i] = fmt.Sprint(cell)
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ClearValues clears the values of a range, keeping formatting
func (s *SheetsService) ClearValues(ctx context.Context, rng string) error {
	_, err := s.client.Spreadsheets.Values.Clear(s.spreadsheetID, rng, &sheets.ClearValuesRequest{}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to clear range %s: %w", rng, err)
	}
	return nil
}

// UpdateValues writes values to a range. inputOption is RAW or USER_ENTERED.
func (s *SheetsService) UpdateValues(ctx context.Context, rng string, values [][]interface{}, inputOption string) error {
	_, err := s.client.Spreadsheets.Values.
		Update(s.spreadsheetID, rng, &sheets.ValueRange{Values: values}).
		ValueInputOption(inputOption).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to update range %s: %w", rng, err)
	}
	return nil
}

// ConditionalFormatRuleCount returns how many conditional format rules the sheet currently has
func (s *SheetsService) ConditionalFormatRuleCount(ctx context.Context, sheetID int64) (int, error) {
	spreadsheet, err := s.client.Spreadsheets.Get(s.spreadsheetID).
		Fields("sheets(properties.sheetId,conditionalFormats)").
		Context(ctx).
		Do()
	if err != nil {
		return 0, fmt.Errorf("failed to read spreadsheet metadata: %w", err)
	}

	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil && sheet.Properties.SheetId == sheetID {
			return len(sheet.ConditionalFormats), nil
		}
	}
	return 0, fmt.Errorf("sheet %d not found in spreadsheet", sheetID)
}

// BatchUpdate sends structural and formatting requests in one call
func (s *SheetsService) BatchUpdate(ctx context.Context, requests []*sheets.Request) error {
	if len(requests) == 0 {
		return nil
	}
	_, err := s.client.Spreadsheets.BatchUpdate(s.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to apply %d sheet requests: %w", len(requests), err)
	}
	return nil
}
