// Package services implements the business logic layer of the dashboard.
// It sits between the HTTP handlers and the schedule and gantt packages.
//
// # Available Services
//
//	- GanttService: loads the schedule through the cache, builds scenes,
//	  reloads on demand and notifies WebSocket clients
//	- HealthService: health, readiness, liveness and version reports
//
// Services take their collaborators as interfaces and a *slog.Logger, so
// tests drive them with testify mocks.
package services
