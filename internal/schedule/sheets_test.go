package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

type fakeSheetsAPI struct {
	title  string
	values [][]interface{}
	ranges []string
}

func (f *fakeSheetsAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/v4/spreadsheets/"), "/")
	if parts[0] != "plan-123" {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]interface{}{"code": 404, "message": "Requested entity was not found.", "status": "NOT_FOUND"},
		})
		return
	}

	if len(parts) == 1 {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"sheets": []map[string]interface{}{{"properties": map[string]interface{}{"title": f.title}}},
		})
		return
	}

	f.ranges = append(f.ranges, parts[2])
	json.NewEncoder(w).Encode(map[string]interface{}{
		"range":          parts[2] + "!A1:F4",
		"majorDimension": "ROWS",
		"values":         f.values,
	})
}

func newTestSheetsSource(t *testing.T, api *fakeSheetsAPI, sheet string) *SheetsSource {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	src, err := NewSheetsSource(context.Background(), sheet,
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)
	return src
}

func TestSheetsSource_Read(t *testing.T) {
	api := &fakeSheetsAPI{
		title: "Plan",
		values: [][]interface{}{
			{"Activity", "Task", "Start Date", "End Date", "Status", "Progress"},
			{"A", "T1", "1/1/2024", "1/11/2024", "Finished", "100"},
			{"A", "T2", "1/5/2024", "1/10/2024", "In Progress", "50%"},
		},
	}
	src := newTestSheetsSource(t, api, "")

	table, err := NewLoader(src, nil).Load(context.Background(), "plan-123")
	require.NoError(t, err)

	assert.Equal(t, []string{"Plan"}, api.ranges, "first sheet title is looked up")
	assert.Equal(t, "Plan", table.Sheet)
	require.Len(t, table.Tasks, 2)
	assert.Equal(t, DateOf(day(2024, 1, 11)), table.Tasks[0].EndDate)
	assert.Equal(t, 50.0, table.Tasks[1].Progress)
}

func TestSheetsSource_NamedSheet(t *testing.T) {
	api := &fakeSheetsAPI{values: [][]interface{}{requiredColumnsRow()}}
	src := newTestSheetsSource(t, api, "Timeline")

	grid, err := src.Read(context.Background(), "plan-123")
	require.NoError(t, err)
	assert.Equal(t, "Timeline", grid.Sheet)
	assert.Equal(t, []string{"Timeline"}, api.ranges)
}

func TestSheetsSource_NotFound(t *testing.T) {
	src := newTestSheetsSource(t, &fakeSheetsAPI{}, "Timeline")

	_, err := src.Read(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSourceNotFound))
}

func requiredColumnsRow() []interface{} {
	row := make([]interface{}, len(RequiredColumns))
	for i, c := range RequiredColumns {
		row[i] = c
	}
	return row
}
