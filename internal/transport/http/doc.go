// Package http implements the HTTP handlers of the dashboard. Handlers stay
// thin. They call a service, render JSON with go-chi/render and turn errors
// into RFC 7807 problems through internal/errors.ErrorHandler.
//
// # Routes
//
//	GET  /                  dashboard page
//	GET  /static/*          dashboard assets
//	GET  /api/gantt/scene   scene JSON
//	GET  /api/gantt/tasks   normalized table, JSON or text/csv (?format=csv)
//	POST /api/gantt/reload  re-read the source
//	POST /api/logs          browser log forwarding
//	GET  /api/health        health, /ready and /live below it
//	GET  /api/version       build information
package http
