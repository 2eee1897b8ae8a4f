package infrastructure

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/Kirankkt/Complex-gannt/internal/config"
)

var (
	dashboardLogger *slog.Logger
	loggerOnce      sync.Once

	logFileMu sync.Mutex
	logFile   *os.File
)

type contextKey string

// TraceIDContextKey carries the request trace id that every dashboard log
// line is stamped with.
const TraceIDContextKey contextKey = "trace_id"

// InitializeLogger builds the dashboard logger once and makes it the slog
// default. Later calls return the first logger and its error.
func InitializeLogger(cfg config.LoggingConfig) (*slog.Logger, error) {
	var err error
	loggerOnce.Do(func() {
		dashboardLogger, err = NewLogger(cfg)
		if dashboardLogger != nil {
			slog.SetDefault(dashboardLogger)
		}
	})
	return dashboardLogger, err
}

// GetLogger falls back to slog.Default until InitializeLogger has run.
func GetLogger() *slog.Logger {
	if dashboardLogger == nil {
		return slog.Default()
	}
	return dashboardLogger
}

// NewLogger writes JSON records to the sink named by cfg.Output: "console"
// (the default), "file" or "both".
func NewLogger(cfg config.LoggingConfig) (*slog.Logger, error) {
	out, err := logOutput(cfg)
	if err != nil {
		return nil, err
	}
	return NewLoggerWithWriter(out, &slog.HandlerOptions{
		AddSource: true,
		Level:     ParseLogLevel(cfg.Level),
	}), nil
}

func logOutput(cfg config.LoggingConfig) (io.Writer, error) {
	mode := strings.ToLower(cfg.Output)
	if mode != "file" && mode != "both" {
		return os.Stdout, nil
	}
	file, err := openLogFile(cfg.FilePath)
	if err != nil {
		return nil, err
	}
	if mode == "file" {
		return file, nil
	}
	return io.MultiWriter(os.Stdout, file), nil
}

// NewLoggerWithWriter is used by the CLI and tests to log JSON to w.
func NewLoggerWithWriter(w io.Writer, opts *slog.HandlerOptions) *slog.Logger {
	return slog.New(traceIDHandler{next: slog.NewJSONHandler(w, opts)})
}

type traceIDHandler struct {
	next slog.Handler
}

func (h traceIDHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h traceIDHandler) Handle(ctx context.Context, r slog.Record) error {
	if id := GetTraceID(ctx); id != "" {
		r.AddAttrs(slog.String("trace_id", id))
	}
	return h.next.Handle(ctx, r)
}

func (h traceIDHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return traceIDHandler{next: h.next.WithAttrs(attrs)}
}

func (h traceIDHandler) WithGroup(name string) slog.Handler {
	return traceIDHandler{next: h.next.WithGroup(name)}
}

// ParseLogLevel accepts debug, info, warn/warning and error in any case.
// Anything else is info.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDContextKey, traceID)
}

// GetTraceID returns "" for a nil context or one without a trace id.
func GetTraceID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(TraceIDContextKey).(string)
	return id
}

// CloseLogFile releases the log file opened for the "file" and "both"
// outputs.
func CloseLogFile() error {
	logFileMu.Lock()
	defer logFileMu.Unlock()

	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// ResetLoggerForTesting lets a test initialize the dashboard logger again.
func ResetLoggerForTesting() {
	_ = CloseLogFile()
	dashboardLogger = nil
	loggerOnce = sync.Once{}
}

func openLogFile(path string) (*os.File, error) {
	if err := config.EnsureDir(path); err != nil {
		return nil, fmt.Errorf("dashboard log directory for %s: %w", path, err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("dashboard log file %s: %w", path, err)
	}

	logFileMu.Lock()
	logFile = file
	logFileMu.Unlock()
	return file, nil
}
