package http

import (
	"context"

	"github.com/Kirankkt/Complex-gannt/internal/gantt"
	"github.com/Kirankkt/Complex-gannt/internal/schedule"
	"github.com/Kirankkt/Complex-gannt/internal/services"
	api "github.com/Kirankkt/Complex-gannt/pkg/contracts/api/v1"
)

// GanttServiceInterface is satisfied by *services.GanttService
type GanttServiceInterface interface {
	Source() string
	Scene(ctx context.Context) (*gantt.Scene, error)
	Tasks(ctx context.Context) (*schedule.Table, error)
	Reload(ctx context.Context) (*api.ReloadResponse, error)
}

// HealthServiceInterface is satisfied by *services.HealthService
type HealthServiceInterface interface {
	HealthCheck(ctx context.Context) services.HealthStatus
	ReadinessCheck(ctx context.Context) services.HealthStatus
	LivenessCheck(ctx context.Context) services.HealthStatus
	Version() map[string]interface{}
}
