// Package api contains the JSON response contracts of the dashboard HTTP API.
package api

import "time"

// SuccessResponse wraps a successful payload
type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// ScheduleSummary counts the lanes of the current scene
type ScheduleSummary struct {
	Total      int `json:"total"`
	Scheduled  int `json:"scheduled"`
	Skipped    int `json:"skipped"`
	Finished   int `json:"finished"`
	InProgress int `json:"in_progress"`
	Other      int `json:"other"`
}

// ReloadResponse is returned by POST /api/gantt/reload
type ReloadResponse struct {
	Source   string          `json:"source"`
	Sheet    string          `json:"sheet,omitempty"`
	LoadedAt time.Time       `json:"loaded_at"`
	Summary  ScheduleSummary `json:"summary"`
}
