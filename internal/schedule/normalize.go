package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrSourceNotFound is returned when the schedule file or spreadsheet
	// does not exist
	ErrSourceNotFound = errors.New("schedule source not found")

	// ErrMissingColumn is returned when the header lacks a required column
	ErrMissingColumn = errors.New("schedule is missing required columns")
)

// ColumnError lists the required columns a header row lacks
type ColumnError struct {
	Columns []string
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingColumn, strings.Join(e.Columns, ", "))
}

// Is makes errors.Is(err, ErrMissingColumn) true
func (e *ColumnError) Is(target error) bool {
	return target == ErrMissingColumn
}

// Grid is the cell text of one sheet as read by a Source
type Grid struct {
	Sheet string
	Rows  [][]string

	// Date1904 selects the 1904 epoch for numeric date cells
	Date1904 bool
}

// Normalize turns a grid into a Table. The first non-empty row is the
// header. Empty rows are dropped.
func Normalize(source string, grid *Grid) (*Table, error) {
	if grid == nil {
		grid = &Grid{}
	}

	headerAt := -1
	for i, row := range grid.Rows {
		if !blankRow(row) {
			headerAt = i
			break
		}
	}
	if headerAt < 0 {
		return nil, &ColumnError{Columns: append([]string(nil), RequiredColumns...)}
	}

	h := newHeader(grid.Rows[headerAt])
	if missing := h.missing(RequiredColumns); len(missing) > 0 {
		return nil, &ColumnError{Columns: missing}
	}

	table := &Table{
		Source:   source,
		Sheet:    grid.Sheet,
		Columns:  append([]string(nil), h.names...),
		LoadedAt: time.Now().UTC(),
	}
	for _, col := range OptionalColumns {
		if !h.has(col) {
			table.Columns = append(table.Columns, col)
		}
	}

	for _, row := range grid.Rows[headerAt+1:] {
		if blankRow(row) {
			continue
		}
		table.Tasks = append(table.Tasks, normalizeRow(h, row, grid.Date1904))
	}
	return table, nil
}

func normalizeRow(h header, row []string, date1904 bool) Task {
	text := func(name string) string {
		v, _ := h.cell(row, name)
		return v
	}

	t := Task{
		Activity:  text(ColActivity),
		Task:      text(ColTask),
		StartDate: ParseDate(text(ColStartDate), date1904),
		EndDate:   ParseDate(text(ColEndDate), date1904),
		Status:    text(ColStatus),
		Priority:  DefaultPriority,
		Raw:       make(map[string]string, len(h.names)),
	}

	for i, name := range h.names {
		if _, seen := t.Raw[name]; seen {
			continue
		}
		if i < len(row) {
			t.Raw[name] = row[i]
		} else {
			t.Raw[name] = ""
		}
	}

	if v, ok := h.cell(row, ColProgress); ok {
		t.Progress = parseFloat(v)
	}
	if v, ok := h.cell(row, ColPriority); ok {
		t.Priority = v
	}
	if v, ok := h.cell(row, ColPlannedStart); ok {
		t.PlannedStart = ParseDate(v, date1904)
	}
	if v, ok := h.cell(row, ColActualStart); ok {
		t.ActualStart = ParseDate(v, date1904)
	}
	if v, ok := h.cell(row, ColDue); ok {
		t.Due = ParseDate(v, date1904)
	}
	if v, ok := h.cell(row, ColFinish); ok {
		t.Finish = ParseDate(v, date1904)
	}
	if v, ok := h.cell(row, ColDuration); ok {
		t.Duration = parseInt(v)
	}
	if v, ok := h.cell(row, ColHours); ok {
		t.Hours = parseFloat(v)
	}
	if v, ok := h.cell(row, ColCost); ok {
		t.Cost = parseFloat(v)
	}

	return t
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func trimName(name string) string {
	return strings.TrimSpace(name)
}

func unnamedColumn(i int) string {
	return fmt.Sprintf("Unnamed: %d", i)
}
