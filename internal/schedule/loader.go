package schedule

import (
	"context"
	"log/slog"
)

// Loader reads a source and normalizes it
type Loader struct {
	source Source
	logger *slog.Logger
}

// NewLoader creates a loader over source. A nil source reads workbooks from
// disk.
func NewLoader(source Source, logger *slog.Logger) *Loader {
	if source == nil {
		source = ExcelSource{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		source: source,
		logger: logger.With(slog.String("component", "schedule_loader")),
	}
}

// Load reads path and returns a freshly normalized table
func (l *Loader) Load(ctx context.Context, path string) (*Table, error) {
	grid, err := l.source.Read(ctx, path)
	if err != nil {
		return nil, err
	}

	table, err := Normalize(path, grid)
	if err != nil {
		return nil, err
	}

	var skipped int
	for _, t := range table.Tasks {
		if !t.StartDate.Valid || !t.EndDate.Valid {
			skipped++
		}
	}
	l.logger.DebugContext(ctx, "schedule loaded",
		slog.String("source", path),
		slog.String("sheet", grid.Sheet),
		slog.Int("tasks", table.Len()),
		slog.Int("undated", skipped),
		slog.Any("columns", table.Columns))

	return table, nil
}

// Load reads the first sheet of the workbook at path
func Load(ctx context.Context, path string) (*Table, error) {
	return NewLoader(ExcelSource{}, nil).Load(ctx, path)
}
