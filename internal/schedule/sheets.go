package schedule

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsSource reads a schedule from a Google spreadsheet. The path passed
// to Read is the spreadsheet id.
type SheetsSource struct {
	service *sheets.Service
	sheet   string
}

// NewSheetsSource creates a Sheets API client. An empty sheet reads the
// first sheet of the spreadsheet.
func NewSheetsSource(ctx context.Context, sheet string, opts ...option.ClientOption) (*SheetsSource, error) {
	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &SheetsSource{service: service, sheet: sheet}, nil
}

// Read fetches the formatted values of the sheet
func (s *SheetsSource) Read(ctx context.Context, spreadsheetID string) (*Grid, error) {
	sheet := s.sheet
	if sheet == "" {
		name, err := s.firstSheet(ctx, spreadsheetID)
		if err != nil {
			return nil, err
		}
		sheet = name
	}

	resp, err := s.service.Spreadsheets.Values.Get(spreadsheetID, sheet).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, sheetsError(spreadsheetID, err)
	}

	rows := make([][]string, len(resp.Values))
	for i, values := range resp.Values {
		row := make([]string, len(values))
		for j, v := range values {
			row[j] = fmt.Sprint(v)
		}
		rows[i] = row
	}
	return &Grid{Sheet: sheet, Rows: rows}, nil
}

func (s *SheetsSource) firstSheet(ctx context.Context, spreadsheetID string) (string, error) {
	ss, err := s.service.Spreadsheets.Get(spreadsheetID).
		Fields("sheets.properties.title").
		Context(ctx).
		Do()
	if err != nil {
		return "", sheetsError(spreadsheetID, err)
	}
	if len(ss.Sheets) == 0 || ss.Sheets[0].Properties == nil {
		return "", fmt.Errorf("spreadsheet %s has no sheets", spreadsheetID)
	}
	return ss.Sheets[0].Properties.Title, nil
}

func sheetsError(spreadsheetID string, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound {
		return fmt.Errorf("%w: spreadsheet %s", ErrSourceNotFound, spreadsheetID)
	}
	return fmt.Errorf("failed to read spreadsheet %s: %w", spreadsheetID, err)
}
