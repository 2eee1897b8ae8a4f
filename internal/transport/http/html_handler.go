package http

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/Kirankkt/Complex-gannt/internal/config"
	"github.com/Kirankkt/Complex-gannt/pkg/contracts"
)

// DashboardPage is the template data of index.html
type DashboardPage struct {
	Title       string
	Description string
	ChartTitle  string
	Version     string
}

// DashboardHandler serves the dashboard page and its assets from the
// embedded frontend filesystem
type DashboardHandler struct {
	frontend fs.FS
	page     DashboardPage
	tmpl     *template.Template
	logger   *slog.Logger
}

// NewDashboardHandler parses index.html from frontend. A nil frontend, or
// one without index.html, serves a plain fallback page instead.
func NewDashboardHandler(frontend fs.FS, chartTitle string, logger *slog.Logger) *DashboardHandler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &DashboardHandler{
		frontend: frontend,
		page: DashboardPage{
			Title:       config.PageTitle,
			Description: config.PageDescription,
			ChartTitle:  chartTitle,
			Version:     contracts.Version,
		},
		logger: logger.With(slog.String("handler", "dashboard")),
	}

	if frontend != nil {
		tmpl, err := template.ParseFS(frontend, "index.html")
		if err != nil {
			h.logger.Warn("Dashboard template unavailable, serving fallback page",
				slog.String("error", err.Error()))
		} else {
			h.tmpl = tmpl
		}
	}
	return h
}

// ServeIndex handles GET /
func (h *DashboardHandler) ServeIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")

	if h.tmpl == nil {
		h.serveFallback(w)
		return
	}

	var buf bytes.Buffer
	if err := h.tmpl.Execute(&buf, h.page); err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to render dashboard",
			slog.String("error", err.Error()))
		http.Error(w, "Error rendering page", http.StatusInternalServerError)
		return
	}
	w.Write(buf.Bytes())
}

// Static serves the frontend assets under prefix
func (h *DashboardHandler) Static(prefix string) http.Handler {
	if h.frontend == nil {
		return http.NotFoundHandler()
	}
	return http.StripPrefix(prefix, http.FileServerFS(h.frontend))
}

func (h *DashboardHandler) serveFallback(w http.ResponseWriter) {
	fmt.Fprintf(w, `<!DOCTYPE html>
<html>
<head><title>%s</title></head>
<body>
    <h1>%s</h1>
    <p>%s</p>
    <ul>
        <li><a href="/api/gantt/scene">Scene JSON</a></li>
        <li><a href="/api/gantt/tasks">Tasks JSON</a></li>
        <li><a href="/api/health">Health Check</a></li>
        <li><a href="/api/version">Version Info</a></li>
    </ul>
    <p><small>%s</small></p>
</body>
</html>
`, template.HTMLEscapeString(h.page.Title), template.HTMLEscapeString(h.page.Title),
		template.HTMLEscapeString(h.page.Description), time.Now().Format("2006-01-02 15:04:05"))
}
