package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "github.com/Kirankkt/Complex-gannt/internal/errors"
	"github.com/Kirankkt/Complex-gannt/internal/infrastructure"
)

// maxClientLogBody caps the size of a forwarded browser log entry
const maxClientLogBody = 16 * 1024

// ClientLogHandler forwards dashboard log lines into the server log
type ClientLogHandler struct {
	logger       *slog.Logger
	validate     *validator.Validate
	errorHandler *apierrors.ErrorHandler
}

// NewClientLogHandler creates a new client log handler
func NewClientLogHandler(logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ClientLogHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ClientLogHandler{
		logger:       logger.With(slog.String("handler", "client_log")),
		validate:     validator.New(validator.WithRequiredStructEnabled()),
		errorHandler: errorHandler,
	}
}

// LogRequest represents a client log entry
type LogRequest struct {
	Level   string                 `json:"level" validate:"omitempty,oneof=debug info warn error"`
	Message string                 `json:"message" validate:"required,max=2000"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Source  string                 `json:"source,omitempty" validate:"max=200"`
}

// Handle processes POST /api/logs
func (h *ClientLogHandler) Handle(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxClientLogBody)

	var req LogRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.NewWithDetails(http.StatusBadRequest,
			apierrors.CodeInvalidRequest, "Invalid request format", err.Error()))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.NewWithDetails(http.StatusBadRequest,
			apierrors.CodeInvalidRequest, "Invalid log entry", validationDetails(err)))
		return
	}

	attrs := []slog.Attr{slog.String("client_source", req.Source)}
	if req.Data != nil {
		attrs = append(attrs, slog.Any("data", req.Data))
	}
	h.logger.LogAttrs(r.Context(), infrastructure.ParseLogLevel(req.Level), req.Message, attrs...)

	render.JSON(w, r, map[string]interface{}{"success": true})
}

// validationDetails flattens validator errors into field messages
func validationDetails(err error) []string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}
	details := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, strings.ToLower(fe.Field())+": failed "+fe.Tag())
	}
	return details
}
