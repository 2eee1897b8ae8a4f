package websocket

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gorilla/websocket"

	"github.com/Kirankkt/Complex-gannt/internal/config"
	"github.com/Kirankkt/Complex-gannt/internal/infrastructure"
)

// Handler upgrades HTTP requests and registers the resulting clients
type Handler struct {
	hub            *Hub
	upgrader       websocket.Upgrader
	allowedOrigins []string
	logger         *slog.Logger
}

// NewHandler creates the /ws endpoint
func NewHandler(hub *Hub, wsCfg config.WebSocketConfig, allowedOrigins []string, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}
	h := &Handler{
		hub:            hub,
		allowedOrigins: allowedOrigins,
		logger:         logger.With(slog.String("component", "websocket.handler")),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  wsCfg.ReadBufferSize,
		WriteBufferSize: wsCfg.WriteBufferSize,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

// ServeHTTP implements http.Handler
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := infrastructure.EnsureTraceID(r.Context())

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// The upgrader has already written the error response
		h.logger.WarnContext(ctx, "WebSocket upgrade failed",
			slog.String("error", err.Error()),
			slog.String("origin", r.Header.Get("Origin")))
		return
	}

	client := NewClient(h.hub, conn, infrastructure.GetTraceID(ctx), h.logger)
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}

// checkOrigin allows same-host requests, requests without an Origin header
// and the configured origins
func (h *Handler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	if u, err := url.Parse(origin); err == nil && u.Host == r.Host {
		return true
	}
	for _, allowed := range h.allowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}

	h.logger.WarnContext(r.Context(), "WebSocket origin not allowed",
		slog.String("origin", origin),
		slog.Any("allowed_origins", h.allowedOrigins))
	return false
}
