package services

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/Kirankkt/Complex-gannt/internal/infrastructure"
	"github.com/Kirankkt/Complex-gannt/internal/schedule"
)

// InstrumentedLoader wraps a schedule.TableLoader with a span and load
// counters. It sits between the cache and the real loader so only actual
// source reads are counted.
type InstrumentedLoader struct {
	next    schedule.TableLoader
	tracer  trace.Tracer
	metrics *infrastructure.Metrics
	logger  *slog.Logger
}

// NewInstrumentedLoader wraps next. tracer and metrics may be nil.
func NewInstrumentedLoader(next schedule.TableLoader, tracer trace.Tracer, metrics *infrastructure.Metrics, logger *slog.Logger) *InstrumentedLoader {
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &InstrumentedLoader{
		next:    next,
		tracer:  tracer,
		metrics: metrics,
		logger:  logger.With(slog.String("component", "schedule_loader")),
	}
}

// Load implements schedule.TableLoader
func (l *InstrumentedLoader) Load(ctx context.Context, path string) (*schedule.Table, error) {
	ctx, span := l.tracer.Start(ctx, "schedule.load",
		trace.WithAttributes(attribute.String("schedule.source", path)))
	defer span.End()

	table, err := l.next.Load(ctx, path)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		l.count(ctx, loadReason(err))
		l.logger.WarnContext(ctx, "Schedule load failed",
			slog.String("source", path),
			slog.String("error", err.Error()))
		return nil, err
	}

	l.count(ctx, "")
	span.SetAttributes(
		attribute.String("schedule.sheet", table.Sheet),
		attribute.Int("schedule.tasks", table.Len()),
	)
	return table, nil
}

func (l *InstrumentedLoader) count(ctx context.Context, reason string) {
	if l.metrics == nil {
		return
	}
	l.metrics.ScheduleLoadsTotal.Add(ctx, 1)
	if reason != "" {
		l.metrics.ScheduleLoadErrors.Add(ctx, 1,
			metric.WithAttributes(attribute.String("reason", reason)))
	}
}

func loadReason(err error) string {
	switch {
	case errors.Is(err, schedule.ErrSourceNotFound):
		return "not_found"
	case errors.Is(err, schedule.ErrMissingColumn):
		return "missing_column"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "read"
	}
}
