package errors

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime"
	"runtime/debug"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

const internalDetail = "The dashboard could not complete this request"

// codeProblemTypes maps API error codes onto problem type URIs. Codes not
// listed fall back to TypeInternal.
var codeProblemTypes = map[string]string{
	CodeInvalidRequest:     TypeValidation,
	CodeNotFound:           TypeNotFound,
	CodeSourceNotFound:     TypeSourceNotFound,
	CodeInvalidSchedule:    TypeInvalidSchedule,
	CodeReloadInProgress:   TypeReloadConflict,
	CodeRateLimitExceeded:  TypeRateLimit,
	CodeServiceUnavailable: TypeServiceDown,
}

type appProblem struct {
	status      int
	problemType string
	title       string
}

var appProblems = map[ErrorType]appProblem{
	ErrTypeNotFound:   {http.StatusNotFound, TypeNotFound, "Resource Not Found"},
	ErrTypeValidation: {http.StatusUnprocessableEntity, TypeValidation, "Unprocessable Entity"},
	ErrTypeParsing:    {http.StatusUnprocessableEntity, TypeValidation, "Unprocessable Entity"},
	ErrTypeNetwork:    {http.StatusServiceUnavailable, TypeServiceDown, "Service Unavailable"},
}

// ErrorHandler turns handler errors and panics into problem responses and
// logs them with the chi request id.
type ErrorHandler struct {
	logger       *slog.Logger
	includeStack bool
}

func NewErrorHandler(logger *slog.Logger, includeStack bool) *ErrorHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ErrorHandler{
		logger:       logger.With(slog.String("component", "problems")),
		includeStack: includeStack,
	}
}

// HandleError writes err as a problem response. A nil error writes nothing.
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	reqID := middleware.GetReqID(r.Context())
	h.logger.ErrorContext(r.Context(), "dashboard request failed",
		slog.String("error", err.Error()),
		slog.String("request_id", reqID),
		slog.String("route", r.Method+" "+r.URL.Path),
		slog.String("remote_addr", r.RemoteAddr),
	)

	problem := h.ErrorToProblem(err, r).WithExtension("trace_id", reqID)
	if h.includeStack {
		problem.WithExtension("stack", stackTrace())
	}
	render.Render(w, r, problem)
}

// ErrorToProblem picks the problem for err. Cancelled or expired contexts win
// over any wrapped error type.
func (h *ErrorHandler) ErrorToProblem(err error, r *http.Request) *ProblemDetails {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return NewProblemDetails(http.StatusGatewayTimeout, TypeTimeout, "Request Timeout",
			"Loading the schedule took too long and was cancelled", r.URL.Path)
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		problemType, ok := codeProblemTypes[apiErr.ErrorCode]
		if !ok {
			problemType = TypeInternal
		}
		problem := NewProblemDetails(apiErr.StatusCode, problemType,
			http.StatusText(apiErr.StatusCode), apiErr.Message, r.URL.Path).
			WithExtension("error_code", apiErr.ErrorCode)
		if apiErr.Details != nil {
			problem.WithExtension("details", apiErr.Details)
		}
		return problem
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		p, ok := appProblems[appErr.Type]
		if !ok {
			return NewProblemDetails(http.StatusInternalServerError, TypeInternal,
				"Internal Server Error", internalDetail, r.URL.Path).
				WithExtension("error_type", string(appErr.Type))
		}
		return NewProblemDetails(p.status, p.problemType, p.title, appErr.Message, r.URL.Path).
			WithExtension("error_type", string(appErr.Type))
	}

	return NewProblemDetails(http.StatusInternalServerError, TypeInternal,
		"Internal Server Error", internalDetail, r.URL.Path)
}

// HandlePanic answers 500 for a recovered panic. The panic value only reaches
// the client when stacks are enabled.
func (h *ErrorHandler) HandlePanic(w http.ResponseWriter, r *http.Request, recovered interface{}) {
	reqID := middleware.GetReqID(r.Context())
	h.logger.ErrorContext(r.Context(), "dashboard handler panicked",
		slog.Any("panic", recovered),
		slog.String("request_id", reqID),
		slog.String("route", r.Method+" "+r.URL.Path),
		slog.String("stack", string(debug.Stack())),
	)

	problem := NewProblemDetails(http.StatusInternalServerError, TypeInternal,
		"Internal Server Error", internalDetail, r.URL.Path).
		WithExtension("trace_id", reqID)
	if h.includeStack {
		problem.WithExtension("panic", fmt.Sprintf("%v", recovered))
		problem.WithExtension("stack", stackTrace())
	}
	render.Render(w, r, problem)
}

// NotFound is installed as the router's 404 handler.
func (h *ErrorHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	render.Render(w, r, NewProblemDetails(http.StatusNotFound, TypeNotFound, "Not Found",
		fmt.Sprintf("No dashboard route matches %s", r.URL.Path), r.URL.Path).
		WithExtension("trace_id", middleware.GetReqID(r.Context())))
}

// MethodNotAllowed is installed as the router's 405 handler.
func (h *ErrorHandler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	render.Render(w, r, NewProblemDetails(http.StatusMethodNotAllowed, TypeMethod, "Method Not Allowed",
		fmt.Sprintf("%s is not supported on %s", r.Method, r.URL.Path), r.URL.Path).
		WithExtension("trace_id", middleware.GetReqID(r.Context())))
}

func stackTrace() string {
	buf := make([]byte, 8<<10)
	return string(buf[:runtime.Stack(buf, false)])
}
