// Package events contains the WebSocket message contracts of the dashboard.
package events

import (
	"time"

	"github.com/google/uuid"

	api "github.com/Kirankkt/Complex-gannt/pkg/contracts/api/v1"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	// MessageTypeScheduleReloaded tells clients to fetch the scene again
	MessageTypeScheduleReloaded MessageType = "schedule:reloaded"

	MessageTypeConnect   MessageType = "connect"
	MessageTypeError     MessageType = "error"
	MessageTypeHeartbeat MessageType = "heartbeat"
)

// BaseMessage represents the base structure for all WebSocket messages
type BaseMessage struct {
	ID        string      `json:"id,omitempty"`
	Type      MessageType `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	TraceID   string      `json:"trace_id,omitempty"`
}

// WebSocketMessage represents a complete WebSocket message
type WebSocketMessage struct {
	BaseMessage
	Data interface{} `json:"data,omitempty"`
}

// NewMessage stamps a message with a fresh id and the current time
func NewMessage(msgType MessageType, data interface{}) WebSocketMessage {
	return WebSocketMessage{
		BaseMessage: BaseMessage{
			ID:        uuid.New().String(),
			Type:      msgType,
			Timestamp: time.Now().UTC(),
		},
		Data: data,
	}
}

// WithTrace sets the trace id of the message
func (m WebSocketMessage) WithTrace(traceID string) WebSocketMessage {
	m.TraceID = traceID
	return m
}

// ScheduleReloaded is the payload of MessageTypeScheduleReloaded
type ScheduleReloaded struct {
	Source   string              `json:"source"`
	LoadedAt time.Time           `json:"loaded_at"`
	Summary  api.ScheduleSummary `json:"summary"`
}

// ConnectionStatus is the payload of MessageTypeConnect
type ConnectionStatus struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	ClientID string `json:"client_id"`
}

// ErrorPayload is the payload of MessageTypeError
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
