package tablecsv

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/Kirankkt/Complex-gannt/internal/schedule"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter writes header and record rows as CSV
type CSVWriter struct {
	// BOMPrefix adds a UTF-8 byte order mark for Excel compatibility
	BOMPrefix bool
}

// NewCSVWriter creates a CSV writer that emits a byte order mark
func NewCSVWriter() *CSVWriter {
	return &CSVWriter{BOMPrefix: true}
}

// Write writes headers followed by records to out
func (w *CSVWriter) Write(out io.Writer, headers []string, records [][]string) error {
	if w.BOMPrefix {
		if _, err := out.Write(utf8BOM); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(out)
	if len(headers) > 0 {
		if err := writer.Write(headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}
	for i, record := range records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteTable writes the table's tasks under Headers. A nil table writes
// the header row only.
func (w *CSVWriter) WriteTable(out io.Writer, table *schedule.Table) error {
	var tasks []schedule.Task
	if table != nil {
		tasks = table.Tasks
	}
	return w.Write(out, Headers, TaskRecords(tasks))
}
