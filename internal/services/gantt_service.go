package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/Kirankkt/Complex-gannt/internal/gantt"
	"github.com/Kirankkt/Complex-gannt/internal/infrastructure"
	"github.com/Kirankkt/Complex-gannt/internal/schedule"
	api "github.com/Kirankkt/Complex-gannt/pkg/contracts/api/v1"
	"github.com/Kirankkt/Complex-gannt/pkg/contracts/events"
)

// ScheduleCache is satisfied by *schedule.Cache
type ScheduleCache interface {
	Get(ctx context.Context, path string) (*schedule.Table, error)
	Peek(path string) (*schedule.Table, bool)
	Invalidate(path string)
}

// WebSocketHub is satisfied by *websocket.Hub
type WebSocketHub interface {
	Broadcast(messageType string, data interface{})
}

// GanttService builds Gantt scenes for one configured schedule source
type GanttService struct {
	cache   ScheduleCache
	source  string
	builder *gantt.Builder
	hub     WebSocketHub
	tracer  trace.Tracer
	metrics *infrastructure.Metrics
	logger  *slog.Logger

	reloadMu sync.Mutex
}

// GanttOption configures a GanttService
type GanttOption func(*GanttService)

// WithTracer records a span per operation
func WithTracer(tracer trace.Tracer) GanttOption {
	return func(s *GanttService) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

// WithMetrics records scene and reload metrics
func WithMetrics(m *infrastructure.Metrics) GanttOption {
	return func(s *GanttService) {
		s.metrics = m
	}
}

// WithHub broadcasts reload events to WebSocket clients
func WithHub(hub WebSocketHub) GanttOption {
	return func(s *GanttService) {
		s.hub = hub
	}
}

// NewGanttService creates the service for source, a workbook path or a
// spreadsheet id
func NewGanttService(cache ScheduleCache, source string, builder *gantt.Builder, logger *slog.Logger, opts ...GanttOption) *GanttService {
	if builder == nil {
		builder = gantt.NewBuilder()
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &GanttService{
		cache:   cache,
		source:  source,
		builder: builder,
		tracer:  noop.NewTracerProvider().Tracer(""),
		logger:  logger.With(slog.String("component", "gantt_service")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Source returns the configured schedule source
func (s *GanttService) Source() string {
	return s.source
}

// Warm performs the first load. A failure here is fatal for the server.
func (s *GanttService) Warm(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "gantt.warm")
	defer span.End()

	table, err := s.cache.Get(ctx, s.source)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		return fmt.Errorf("failed to load schedule %s: %w", s.source, err)
	}

	s.logger.InfoContext(ctx, "Schedule loaded",
		slog.String("source", s.source),
		slog.String("sheet", table.Sheet),
		slog.Int("tasks", table.Len()))
	return nil
}

// Scene loads the schedule (cached) and builds a fresh scene
func (s *GanttService) Scene(ctx context.Context) (*gantt.Scene, error) {
	ctx, span := s.tracer.Start(ctx, "gantt.scene",
		trace.WithAttributes(attribute.String("gantt.source", s.source)))
	defer span.End()

	start := time.Now()
	table, err := s.cache.Get(ctx, s.source)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		s.recordBuild(ctx, "error", time.Since(start), 0)
		return nil, fmt.Errorf("failed to load schedule %s: %w", s.source, err)
	}

	scene := s.builder.Build(table)
	s.recordBuild(ctx, "ok", time.Since(start), scene.Stats.Skipped)

	span.SetAttributes(
		attribute.Int("gantt.lanes", scene.Stats.Total),
		attribute.Int("gantt.skipped", scene.Stats.Skipped),
	)
	if scene.Stats.Skipped > 0 {
		s.logger.DebugContext(ctx, "Tasks without a valid date range rendered as empty lanes",
			slog.Int("skipped", scene.Stats.Skipped))
	}
	return scene, nil
}

// Tasks returns the normalized table
func (s *GanttService) Tasks(ctx context.Context) (*schedule.Table, error) {
	ctx, span := s.tracer.Start(ctx, "gantt.tasks")
	defer span.End()

	table, err := s.cache.Get(ctx, s.source)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		return nil, fmt.Errorf("failed to load schedule %s: %w", s.source, err)
	}
	return table, nil
}

// Reload drops the cached table, reads the source again and tells
// WebSocket clients about it
func (s *GanttService) Reload(ctx context.Context) (*api.ReloadResponse, error) {
	if !s.reloadMu.TryLock() {
		return nil, ErrReloadInProgress
	}
	defer s.reloadMu.Unlock()

	ctx, span := s.tracer.Start(ctx, "gantt.reload")
	defer span.End()

	s.cache.Invalidate(s.source)
	table, err := s.cache.Get(ctx, s.source)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		s.logger.ErrorContext(ctx, "Schedule reload failed",
			slog.String("source", s.source),
			slog.String("error", err.Error()))
		s.broadcast(events.MessageTypeError, events.ErrorPayload{
			Code:    "SCHEDULE_RELOAD_FAILED",
			Message: err.Error(),
		})
		return nil, fmt.Errorf("failed to reload schedule %s: %w", s.source, err)
	}

	summary := Summarize(s.builder.Build(table).Stats)
	s.logger.InfoContext(ctx, "Schedule reloaded",
		slog.String("source", s.source),
		slog.Int("tasks", summary.Total),
		slog.Int("skipped", summary.Skipped))

	s.broadcast(events.MessageTypeScheduleReloaded, events.ScheduleReloaded{
		Source:   table.Source,
		LoadedAt: table.LoadedAt,
		Summary:  summary,
	})

	return &api.ReloadResponse{
		Source:   table.Source,
		Sheet:    table.Sheet,
		LoadedAt: table.LoadedAt,
		Summary:  summary,
	}, nil
}

// Loaded returns the cached table without triggering a load
func (s *GanttService) Loaded() (*schedule.Table, bool) {
	return s.cache.Peek(s.source)
}

func (s *GanttService) broadcast(t events.MessageType, data interface{}) {
	if s.hub == nil {
		return
	}
	s.hub.Broadcast(string(t), data)
}

func (s *GanttService) recordBuild(ctx context.Context, result string, elapsed time.Duration, skipped int) {
	if s.metrics == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("result", result))
	s.metrics.SceneBuildsTotal.Add(ctx, 1, attrs)
	s.metrics.SceneBuildDuration.Record(ctx, elapsed.Seconds(), attrs)
	if skipped > 0 {
		s.metrics.TasksSkippedTotal.Add(ctx, int64(skipped))
	}
}

// Summarize converts scene stats to the API summary
func Summarize(st gantt.Stats) api.ScheduleSummary {
	return api.ScheduleSummary{
		Total:      st.Total,
		Scheduled:  st.Scheduled,
		Skipped:    st.Skipped,
		Finished:   st.Finished,
		InProgress: st.InProgress,
		Other:      st.Other,
	}
}
