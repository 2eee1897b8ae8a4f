package schedule

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Kirankkt/Complex-gannt/internal/config"
)

// Source reads the cell grid of a schedule identified by path
type Source interface {
	Read(ctx context.Context, path string) (*Grid, error)
}

// ExcelSource reads .xlsx workbooks from disk
type ExcelSource struct {
	// Sheet names the worksheet to read. Empty means the first sheet.
	Sheet string
}

// Read opens the workbook at path and returns the raw cell values of the
// selected sheet. Date cells come back as Excel serial numbers.
func (s ExcelSource) Read(ctx context.Context, path string) (*Grid, error) {
	if !config.FileExists(path) {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer f.Close()

	sheet := s.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook %s has no sheets", path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q of %s: %w", sheet, path, err)
	}

	grid := &Grid{Sheet: sheet, Rows: rows}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		grid.Date1904 = *props.Date1904
	}
	return grid, nil
}
