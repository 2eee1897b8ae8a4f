package errors

import (
	"fmt"
	"net/http"

	"github.com/go-chi/render"
)

// APIError represents a structured API error response
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// Render implements the render.Renderer interface for chi/render
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// New creates a new APIError with the given parameters
func New(statusCode int, errorCode, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

// NewWithDetails creates a new APIError with additional details
func NewWithDetails(statusCode int, errorCode, message string, details interface{}) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
		Details:    details,
	}
}

// Error codes returned by the dashboard API
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeNotFound           = "NOT_FOUND"
	CodeSourceNotFound     = "SOURCE_NOT_FOUND"
	CodeInvalidSchedule    = "INVALID_SCHEDULE"
	CodeReloadInProgress   = "RELOAD_IN_PROGRESS"
	CodeRateLimitExceeded  = "RATE_LIMIT_EXCEEDED"
	CodeInternal           = "INTERNAL_SERVER_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	CodeWebSocketUpgrade   = "WEBSOCKET_UPGRADE_FAILED"
)

var (
	ErrInvalidRequest     = New(http.StatusBadRequest, CodeInvalidRequest, "Invalid request format")
	ErrNotFound           = New(http.StatusNotFound, CodeNotFound, "Resource not found")
	ErrRateLimitExceeded  = New(http.StatusTooManyRequests, CodeRateLimitExceeded, "Rate limit exceeded")
	ErrInternalServer     = New(http.StatusInternalServerError, CodeInternal, "Internal server error")
	ErrServiceUnavailable = New(http.StatusServiceUnavailable, CodeServiceUnavailable, "Service temporarily unavailable")
	ErrWebSocketUpgrade   = New(http.StatusInternalServerError, CodeWebSocketUpgrade, "WebSocket upgrade failed")
)

// SourceNotFoundError reports a schedule source that does not exist
func SourceNotFoundError(source string, err error) *APIError {
	return NewWithDetails(http.StatusNotFound, CodeSourceNotFound,
		fmt.Sprintf("File %s not found!", source), err.Error())
}

// ReloadInProgressError reports a reload that was refused because another
// one is running
func ReloadInProgressError() *APIError {
	return New(http.StatusConflict, CodeReloadInProgress, "A schedule reload is already in progress")
}

// InvalidScheduleError reports a schedule that could not be normalized
func InvalidScheduleError(err error) *APIError {
	return NewWithDetails(http.StatusUnprocessableEntity, CodeInvalidSchedule,
		"Schedule could not be read", err.Error())
}

