package services

import (
	"github.com/stretchr/testify/mock"

	"github.com/Kirankkt/Complex-gannt/internal/schedule"
)

// MockWebSocketHub is a mock implementation of WebSocketHub
type MockWebSocketHub struct {
	mock.Mock
}

func (m *MockWebSocketHub) Broadcast(messageType string, data interface{}) {
	m.Called(messageType, data)
}

func (m *MockWebSocketHub) ClientCount() int {
	args := m.Called()
	return args.Int(0)
}

// MockScheduleState is a mock implementation of ScheduleState
type MockScheduleState struct {
	mock.Mock
}

func (m *MockScheduleState) Source() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockScheduleState) Loaded() (*schedule.Table, bool) {
	args := m.Called()
	table, _ := args.Get(0).(*schedule.Table)
	return table, args.Bool(1)
}
