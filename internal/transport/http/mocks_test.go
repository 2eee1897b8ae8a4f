package http

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Kirankkt/Complex-gannt/internal/gantt"
	"github.com/Kirankkt/Complex-gannt/internal/schedule"
	"github.com/Kirankkt/Complex-gannt/internal/services"
	api "github.com/Kirankkt/Complex-gannt/pkg/contracts/api/v1"
)

type MockGanttService struct {
	mock.Mock
}

func (m *MockGanttService) Source() string {
	return m.Called().String(0)
}

func (m *MockGanttService) Scene(ctx context.Context) (*gantt.Scene, error) {
	args := m.Called(ctx)
	scene, _ := args.Get(0).(*gantt.Scene)
	return scene, args.Error(1)
}

func (m *MockGanttService) Tasks(ctx context.Context) (*schedule.Table, error) {
	args := m.Called(ctx)
	table, _ := args.Get(0).(*schedule.Table)
	return table, args.Error(1)
}

func (m *MockGanttService) Reload(ctx context.Context) (*api.ReloadResponse, error) {
	args := m.Called(ctx)
	resp, _ := args.Get(0).(*api.ReloadResponse)
	return resp, args.Error(1)
}

type MockHealthService struct {
	mock.Mock
}

func (m *MockHealthService) HealthCheck(ctx context.Context) services.HealthStatus {
	return m.Called(ctx).Get(0).(services.HealthStatus)
}

func (m *MockHealthService) ReadinessCheck(ctx context.Context) services.HealthStatus {
	return m.Called(ctx).Get(0).(services.HealthStatus)
}

func (m *MockHealthService) LivenessCheck(ctx context.Context) services.HealthStatus {
	return m.Called(ctx).Get(0).(services.HealthStatus)
}

func (m *MockHealthService) Version() map[string]interface{} {
	return m.Called().Get(0).(map[string]interface{})
}
