package http

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "github.com/Kirankkt/Complex-gannt/internal/errors"
		"github.com/Kirankkt/Complex-gannt/internal/schedule"
	"github.com/Kirankkt/Complex-gannt/internal/services"
	"github.com/Kirankkt/Complex-gannt/internal/tablecsv"
	api "github.com/Kirankkt/Complex-gannt/pkg/contracts/api/v1"
)

// GanttHandler serves the chart data
type GanttHandler struct {
	service      GanttServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewGanttHandler creates a new gantt handler
func NewGanttHandler(service GanttServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *GanttHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &GanttHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "gantt_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the gantt routes
func (h *GanttHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/scene", h.GetScene)
	r.Get("/tasks", h.GetTasks)
	r.Post("/reload", h.Reload)

	return r
}

// GetScene handles GET /api/gantt/scene
func (h *GanttHandler) GetScene(w http.ResponseWriter, r *http.Request) {
	scene, err := h.service.Scene(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	render.JSON(w, r, scene)
}

// GetTasks handles GET /api/gantt/tasks. The table is JSON unless the
// request asks for CSV.
func (h *GanttHandler) GetTasks(w http.ResponseWriter, r *http.Request) {
	table, err := h.service.Tasks(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	if !tablecsv.Wanted(r) {
		render.JSON(w, r, table)
		return
	}

	var buf bytes.Buffer
	if err := tablecsv.NewCSVWriter().WriteTable(&buf, table); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", tablecsv.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.WarnContext(r.Context(), "Task table write failed", slog.String("error", err.Error()))
	}
}

// Reload handles POST /api/gantt/reload
func (h *GanttHandler) Reload(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Reload(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Schedule reload requested",
		slog.String("source", resp.Source),
		slog.Int("tasks", resp.Summary.Total))

	render.JSON(w, r, api.SuccessResponse{Success: true, Data: resp})
}

// handleError maps schedule errors onto API errors before rendering
func (h *GanttHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, schedule.ErrSourceNotFound):
		err = apierrors.SourceNotFoundError(h.service.Source(), err)
	case errors.Is(err, schedule.ErrMissingColumn):
		err = apierrors.InvalidScheduleError(err)
	case errors.Is(err, services.ErrReloadInProgress):
		err = apierrors.ReloadInProgressError()
	}
	h.errorHandler.HandleError(w, r, err)
}
