package tablecsv

import (
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/Kirankkt/Complex-gannt/internal/gantt"
	"github.com/Kirankkt/Complex-gannt/internal/schedule"
)

// ContentType is the media type of the CSV representation
const ContentType = "text/csv; charset=utf-8"

// DateLayout is used for every date cell
const DateLayout = "2006-01-02"

// Headers are the CSV columns, in order
var Headers = []string{
	"Activity", "Task", "Start Date", "End Date", "Status", "Progress", "Duration (days)",
}

// Wanted reports whether the request asks for CSV, either with ?format=csv
// or an Accept header naming text/csv
func Wanted(r *http.Request) bool {
	if f := r.URL.Query().Get("format"); f != "" {
		return strings.EqualFold(f, "csv")
	}
	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		mediaType, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err == nil && mediaType == "text/csv" {
			return true
		}
	}
	return false
}

// TaskRecords flattens tasks into rows matching Headers. Duration uses the
// same whole-day floor as the chart.
func TaskRecords(tasks []schedule.Task) [][]string {
	records := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		duration := ""
		if t.StartDate.Valid && t.EndDate.Valid {
			duration = strconv.Itoa(gantt.DurationDays(t.StartDate.Time, t.EndDate.Time))
		}
		records = append(records, []string{
			t.Activity,
			t.Task,
			formatDate(t.StartDate),
			formatDate(t.EndDate),
			t.Status,
			formatFloat(t.Progress),
			duration,
		})
	}
	return records
}

// formatFloat trims trailing zeros so 50 stays 50 and 12.5 stays 12.5
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatDate(d schedule.NullDate) string {
	if !d.Valid {
		return ""
	}
	return d.Time.Format(DateLayout)
}
