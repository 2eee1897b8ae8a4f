package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

// ScheduleHeader is the column row used by the sample schedules
var ScheduleHeader = []interface{}{"Activity", "Task", "Start Date", "End Date", "Status", "Progress"}

// SampleScheduleRows returns a three task schedule with two activities.
// Dates are written as real date cells.
func SampleScheduleRows() [][]interface{} {
	day := func(m time.Month, d int) time.Time {
		return time.Date(2024, m, d, 0, 0, 0, 0, time.UTC)
	}
	return [][]interface{}{
		ScheduleHeader,
		{"A", "T1", day(time.January, 1), day(time.January, 11), "Finished", 100},
		{"A", "T2", day(time.January, 5), day(time.January, 10), "In Progress", 50},
		{"B", "T1", day(time.February, 1), day(time.February, 1), "Blocked", 0},
	}
}

// WriteWorkbook saves rows to sheet in a new workbook under t.TempDir and
// returns the file path. An empty sheet name keeps the default "Sheet1".
func WriteWorkbook(t *testing.T, name, sheet string, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if sheet == "" {
		sheet = "Sheet1"
	} else {
		if _, err := f.NewSheet(sheet); err != nil {
			t.Fatalf("create sheet %s: %v", sheet, err)
		}
		f.SetActiveSheet(0)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("write row %d: %v", i+1, err)
		}
	}

	path := filepath.Join(t.TempDir(), name)
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}
