package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNormalize_RequiredOnly(t *testing.T) {
	grid := &Grid{
		Sheet: "Sheet1",
		Rows: [][]string{
			{" Activity ", "Task", "Start Date  ", "End Date", "Status"},
			{"A", "T1", "2024-01-01", "2024-01-11", "Finished"},
			{"B", "T1", "not a date", "2024-02-01", "Blocked"},
		},
	}

	table, err := Normalize("plan.xlsx", grid)
	require.NoError(t, err)

	assert.Equal(t, "plan.xlsx", table.Source)
	assert.Equal(t, "Sheet1", table.Sheet)
	assert.Equal(t, []string{
		"Activity", "Task", "Start Date", "End Date", "Status",
		"Progress", "Priority", "Planned Start", "Actual Start", "Due", "Finish", "Duration", "Hours", "Cost",
	}, table.Columns)
	require.Len(t, table.Tasks, 2)

	first := table.Tasks[0]
	assert.Equal(t, "A", first.Activity)
	assert.Equal(t, DateOf(day(2024, 1, 1)), first.StartDate)
	assert.Equal(t, DateOf(day(2024, 1, 11)), first.EndDate)
	assert.Equal(t, 0.0, first.Progress)
	assert.Equal(t, "Normal", first.Priority)
	assert.False(t, first.PlannedStart.Valid)
	assert.False(t, first.Finish.Valid)
	assert.Zero(t, first.Duration)
	assert.Zero(t, first.Hours)
	assert.Zero(t, first.Cost)
	assert.NotContains(t, first.Raw, "Priority", "defaulted columns have no raw text")

	assert.False(t, table.Tasks[1].StartDate.Valid, "unparseable dates become absent")
	assert.True(t, table.Tasks[1].EndDate.Valid)
}

func TestNormalize_EveryRowGetsDefaultPriority(t *testing.T) {
	grid := &Grid{Rows: [][]string{
		{"Activity", "Task", "Start Date", "End Date", "Status", "Progress"},
		{"A", "T1", "2024-01-01", "2024-01-02", "Finished", "100"},
		{"A", "T2", "2024-01-01", "2024-01-02", "Finished", "40"},
		{"A", "T3", "", "", "", ""},
	}}

	table, err := Normalize("x", grid)
	require.NoError(t, err)
	for _, task := range table.Tasks {
		assert.Equal(t, DefaultPriority, task.Priority)
	}
	assert.Contains(t, table.Columns, ColPriority)
}

func TestNormalize_PresentOptionalColumnsKeepTheirValues(t *testing.T) {
	grid := &Grid{Rows: [][]string{
		{"Activity", "Task", "Start Date", "End Date", "Status", "Priority", "Progress", "Duration", "Hours", "Cost", "Due"},
		{"A", "T1", "2024-01-01", "2024-01-05", "In Progress", "", "37.5", "4", "12.5", "1,200.50", "03/15/2024"},
		{"A", "T2", "2024-01-01", "2024-01-05", "In Progress", "High", "n/a", "x", "", "", "soon"},
	}}

	table, err := Normalize("x", grid)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Activity", "Task", "Start Date", "End Date", "Status", "Priority", "Progress", "Duration", "Hours", "Cost", "Due",
		"Planned Start", "Actual Start", "Finish",
	}, table.Columns)

	first := table.Tasks[0]
	assert.Equal(t, "", first.Priority, "a present Priority column is not defaulted")
	assert.Equal(t, 37.5, first.Progress)
	assert.Equal(t, 4, first.Duration)
	assert.Equal(t, 12.5, first.Hours)
	assert.Equal(t, 1200.50, first.Cost)
	assert.Equal(t, DateOf(day(2024, 3, 15)), first.Due)
	assert.Equal(t, "1,200.50", first.Raw["Cost"])

	second := table.Tasks[1]
	assert.Equal(t, "High", second.Priority)
	assert.Zero(t, second.Progress)
	assert.Zero(t, second.Duration)
	assert.False(t, second.Due.Valid)
	assert.Equal(t, "n/a", second.Raw["Progress"])
}

func TestNormalize_HeaderAfterBlankRowsAndShortRows(t *testing.T) {
	grid := &Grid{Rows: [][]string{
		{},
		{"", "  "},
		{"Activity", "Task", "Start Date", "End Date", "Status", "", "Progress"},
		{"A", "T1", "2024-01-01"},
		{"", "", "", ""},
		{"B", "T2", "2024-01-01", "2024-01-03", "Finished", "note", "80"},
	}}

	table, err := Normalize("x", grid)
	require.NoError(t, err)
	require.Len(t, table.Tasks, 2, "blank rows are dropped")

	short := table.Tasks[0]
	assert.True(t, short.StartDate.Valid)
	assert.False(t, short.EndDate.Valid)
	assert.Equal(t, "", short.Status)
	assert.Equal(t, "", short.Raw["Progress"])

	assert.Equal(t, "note", table.Tasks[1].Raw["Unnamed: 5"])
	assert.Equal(t, 80.0, table.Tasks[1].Progress)
}

func TestNormalize_NumericStatusStaysText(t *testing.T) {
	grid := &Grid{Rows: [][]string{
		{"Activity", "Task", "Start Date", "End Date", "Status"},
		{"A", "T1", "45292", "45302", "1"},
	}}

	table, err := Normalize("x", grid)
	require.NoError(t, err)
	task := table.Tasks[0]
	assert.Equal(t, "1", task.Status)
	assert.Equal(t, DateOf(day(2024, 1, 1)), task.StartDate, "serial 45292 is 2024-01-01")
	assert.Equal(t, DateOf(day(2024, 1, 11)), task.EndDate)
}

func TestNormalize_MissingRequiredColumns(t *testing.T) {
	tests := []struct {
		name    string
		grid    *Grid
		missing []string
	}{
		{
			name:    "empty sheet",
			grid:    &Grid{},
			missing: RequiredColumns,
		},
		{
			name: "no status or end date",
			grid: &Grid{Rows: [][]string{
				{"Activity", "Task", "Start Date"},
			}},
			missing: []string{"End Date", "Status"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize("x", tt.grid)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMissingColumn))

			var colErr *ColumnError
			require.True(t, errors.As(err, &colErr))
			assert.Equal(t, tt.missing, colErr.Columns)
		})
	}
}

func TestNormalize_HeaderOnly(t *testing.T) {
	table, err := Normalize("x", &Grid{Rows: [][]string{RequiredColumns}})
	require.NoError(t, err)
	assert.Empty(t, table.Tasks)
	assert.Equal(t, 0, table.Len())
}
