package services

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/Kirankkt/Complex-gannt/internal/schedule"
	"github.com/Kirankkt/Complex-gannt/pkg/contracts"
)

// ScheduleState reports whether a schedule is currently loaded. Satisfied by
// *GanttService.
type ScheduleState interface {
	Source() string
	Loaded() (*schedule.Table, bool)
}

// ClientCounter is satisfied by *websocket.Hub
type ClientCounter interface {
	ClientCount() int
}

// HealthService provides health check functionality
type HealthService struct {
	version   contracts.VersionInfo
	schedule  ScheduleState
	clients   ClientCounter
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime,omitempty"`
	Services  map[string]interface{} `json:"services,omitempty"`
}

// ServiceHealth represents individual service health
type ServiceHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Uptime  string `json:"uptime,omitempty"`
}

// NewHealthService creates a new health service. Either dependency may be
// nil, in which case its readiness entry is reported as not_ready.
func NewHealthService(state ScheduleState, clients ClientCounter, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}

	info := contracts.GetVersionInfo()
	logger.Info("HealthService initialized",
		slog.String("version", info.Version),
		slog.String("build_time", info.BuildTime),
		slog.String("git_commit", info.GitCommit))

	return &HealthService{
		version:   info,
		schedule:  state,
		clients:   clients,
		startTime: time.Now(),
		logger:    logger,
	}
}

// HealthCheck returns overall health status
func (hs *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	hs.logger.DebugContext(ctx, "HealthCheck: performing health check",
		slog.String("uptime", time.Since(hs.startTime).String()))

	return HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   hs.version.Version,
	}
}

// ReadinessCheck returns readiness status
func (hs *HealthService) ReadinessCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "ready",
		Timestamp: time.Now(),
		Version:   hs.version.Version,
		Services: map[string]interface{}{
			"schedule":  hs.checkScheduleHealth(),
			"websocket": hs.checkWebSocketHealth(),
		},
	}

	for name, service := range status.Services {
		if sh, ok := service.(ServiceHealth); ok && sh.Status != "ready" {
			status.Status = "not_ready"
			hs.logger.WarnContext(ctx, "ReadinessCheck: service not ready",
				slog.String("service", name),
				slog.String("message", sh.Message))
		}
	}

	return status
}

// LivenessCheck returns liveness status
func (hs *HealthService) LivenessCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   hs.version.Version,
		Runtime: map[string]interface{}{
			"uptime":     time.Since(hs.startTime).Seconds(),
			"go_version": runtime.Version(),
			"goroutines": runtime.NumGoroutine(),
		},
	}
}

// Version returns version information
func (hs *HealthService) Version() map[string]interface{} {
	return map[string]interface{}{
		"version":      hs.version.Version,
		"build_time":   hs.version.BuildTime,
		"git_commit":   hs.version.GitCommit,
		"go_version":   hs.version.GoVersion,
		"os":           hs.version.OS,
		"arch":         hs.version.Architecture,
		"data_format":  hs.version.DataFormat,
		"api_version":  hs.version.APIVersion,
		"uptime":       time.Since(hs.startTime).Seconds(),
		"start_time":   hs.startTime.Format(time.RFC3339),
		"current_time": time.Now().Format(time.RFC3339),
	}
}

func (hs *HealthService) checkScheduleHealth() ServiceHealth {
	if hs.schedule == nil {
		return ServiceHealth{Status: "not_ready", Message: "schedule service not initialized"}
	}

	table, ok := hs.schedule.Loaded()
	if !ok {
		return ServiceHealth{
			Status:  "not_ready",
			Message: fmt.Sprintf("%v: %s", ErrScheduleNotLoaded, hs.schedule.Source()),
		}
	}

	return ServiceHealth{
		Status:  "ready",
		Message: fmt.Sprintf("%d tasks loaded from %s", table.Len(), table.Source),
		Uptime:  time.Since(table.LoadedAt).Round(time.Second).String(),
	}
}

func (hs *HealthService) checkWebSocketHealth() ServiceHealth {
	if hs.clients == nil {
		return ServiceHealth{Status: "not_ready", Message: "websocket hub not initialized"}
	}

	return ServiceHealth{
		Status:  "ready",
		Message: fmt.Sprintf("%d clients connected", hs.clients.ClientCount()),
		Uptime:  time.Since(hs.startTime).Round(time.Second).String(),
	}
}
