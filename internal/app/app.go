package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"google.golang.org/api/option"

	"github.com/Kirankkt/Complex-gannt/internal/config"
	apierrors "github.com/Kirankkt/Complex-gannt/internal/errors"
	"github.com/Kirankkt/Complex-gannt/internal/gantt"
	"github.com/Kirankkt/Complex-gannt/internal/infrastructure"
	customMiddleware "github.com/Kirankkt/Complex-gannt/internal/middleware"
	"github.com/Kirankkt/Complex-gannt/internal/schedule"
	"github.com/Kirankkt/Complex-gannt/internal/services"
	handlers "github.com/Kirankkt/Complex-gannt/internal/transport/http"
	ws "github.com/Kirankkt/Complex-gannt/internal/websocket"
	"github.com/Kirankkt/Complex-gannt/pkg/contracts"
)

// Application represents the main application container
type Application struct {
	Config        *config.Config
	Router        *chi.Mux
	Server        *http.Server
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
	Metrics       *infrastructure.Metrics
	ErrorHandler  *apierrors.ErrorHandler
	FrontendFS    fs.FS

	Cache         *schedule.Cache
	WebSocketHub  *ws.Hub
	GanttService  *services.GanttService
	HealthService *services.HealthService
}

// NewApplication loads configuration, initializes the global logger and
// builds the application. A missing schedule source is fatal.
func NewApplication(frontendFS fs.FS) (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, apierrors.NewConfigError("failed to load configuration", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return New(cfg, frontendFS, logger)
}

// New wires every component from cfg and performs the first schedule load
func New(cfg *config.Config, frontendFS fs.FS, logger *slog.Logger) (*Application, error) {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}

	logger.Info("Application starting",
		slog.String("name", config.AppName),
		slog.String("version", contracts.Version),
		slog.String("schedule_source", cfg.Schedule.Source))

	otelProviders, err := infrastructure.InitializeOTel(infrastructure.OTelConfigFrom(cfg.Telemetry), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	metrics, err := infrastructure.CreateMetrics(otelProviders.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics: %w", err)
	}

	app := &Application{
		Config:        cfg,
		Logger:        logger,
		OTelProviders: otelProviders,
		Metrics:       metrics,
		ErrorHandler:  apierrors.NewErrorHandler(logger, false),
		FrontendFS:    frontendFS,
	}

	if err := app.initializeServices(context.Background()); err != nil {
		otelProviders.Shutdown(context.Background())
		return nil, err
	}

	app.setupRouter()
	app.createServer()

	return app, nil
}

// initializeServices builds the schedule pipeline and warms the cache
func (a *Application) initializeServices(ctx context.Context) error {
	source, path, err := a.scheduleSource(ctx)
	if err != nil {
		return err
	}

	loader := services.NewInstrumentedLoader(
		schedule.NewLoader(source, a.Logger),
		a.OTelProviders.Tracer,
		a.Metrics,
		a.Logger,
	)
	a.Cache = schedule.NewCache(loader, a.Logger)

	a.WebSocketHub = ws.NewHub(a.Logger, a.Metrics)

	a.GanttService = services.NewGanttService(a.Cache, path,
		gantt.NewBuilder(
			gantt.WithTitle(a.Config.Schedule.Title),
			gantt.WithHeight(a.Config.Schedule.ChartHeight),
		),
		a.Logger,
		services.WithTracer(a.OTelProviders.Tracer),
		services.WithMetrics(a.Metrics),
		services.WithHub(a.WebSocketHub),
	)
	a.HealthService = services.NewHealthService(a.GanttService, a.WebSocketHub, a.Logger)

	if err := a.GanttService.Warm(ctx); err != nil {
		switch {
		case errors.Is(err, schedule.ErrSourceNotFound):
			return apierrors.NewNotFoundError("schedule source", err).WithContext("source", path)
		case errors.Is(err, schedule.ErrMissingColumn):
			return apierrors.NewParsingError("schedule is missing required columns", err).WithContext("source", path)
		}
		return err
	}
	return nil
}

// scheduleSource picks the reader for the configured source and returns
// it with the path or spreadsheet id to load
func (a *Application) scheduleSource(ctx context.Context) (schedule.Source, string, error) {
	sc := a.Config.Schedule
	if sc.Source != config.ScheduleSourceSheets {
		if resolved, err := config.ResolvePath(sc.File); err == nil {
			a.Logger.InfoContext(ctx, "Schedule workbook",
				slog.String("file", sc.File),
				slog.String("resolved_path", resolved))
		}
		return schedule.ExcelSource{Sheet: sc.Sheet}, sc.File, nil
	}

	var opts []option.ClientOption
	if sc.CredentialsFile != "" {
		if !config.FileExists(sc.CredentialsFile) {
			return nil, "", apierrors.NewNotFoundError("credentials file", schedule.ErrSourceNotFound).
				WithContext("source", sc.CredentialsFile)
		}
		opts = append(opts, option.WithCredentialsFile(sc.CredentialsFile))
	}

	src, err := schedule.NewSheetsSource(ctx, sc.Sheet, opts...)
	if err != nil {
		return nil, "", apierrors.NewNetworkError("failed to create sheets client", err)
	}
	return src, sc.SpreadsheetID, nil
}

// MissingSource reports the path of a source that could not be found
func MissingSource(err error) (string, bool) {
	var appErr *apierrors.AppError
	if !errors.As(err, &appErr) || appErr.Type != apierrors.ErrTypeNotFound {
		return "", false
	}
	source, _ := appErr.Context["source"].(string)
	return source, true
}

// setupRouter configures the HTTP router with all routes
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	// These don't wrap the ResponseWriter in a way that breaks WebSocket upgrades
	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)

	r.NotFound(a.ErrorHandler.NotFound)
	r.MethodNotAllowed(a.ErrorHandler.MethodNotAllowed)

	otelMiddleware := customMiddleware.NewOTelMiddleware(a.OTelProviders.Tracer, a.Metrics, a.Logger)

	wsHandler := ws.NewHandler(a.WebSocketHub, a.Config.WebSocket, a.Config.Security.AllowedOrigins, a.Logger)
	r.With(otelMiddleware.Handler).Get("/ws", wsHandler.ServeHTTP)

	if a.OTelProviders.PrometheusHTTP != nil {
		r.Handle("/metrics", a.OTelProviders.PrometheusHTTP)
	}

	r.Group(func(r chi.Router) {
		// RequestID → RealIP → OTel → Logger → Recoverer → headers → limits
		r.Use(otelMiddleware.Handler)
		r.Use(customMiddleware.StructuredLogger(a.Logger))
		r.Use(customMiddleware.Recoverer(a.ErrorHandler))
		r.Use(customMiddleware.SecurityHeaders)

		if a.Config.Security.EnableCORS {
			r.Use(customMiddleware.CORS(customMiddleware.CORSConfig{
				AllowedOrigins: a.Config.Security.AllowedOrigins,
				Logger:         a.Logger,
			}))
		}

		if a.Config.Security.RateLimit.Enabled {
			r.Use(customMiddleware.NewRateLimiter(
				a.Config.Security.RateLimit.RPS,
				a.Config.Security.RateLimit.Burst,
				a.ErrorHandler,
				a.Logger,
			).Handler)
		}

		a.setupAPIRoutes(r)
		a.setupHTMLRoutes(r)
	})

	a.Router = r
}

// setupAPIRoutes configures API endpoints
func (a *Application) setupAPIRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Use(customMiddleware.Timeout(a.Config.Server.ReadTimeout, a.ErrorHandler, a.Logger))

		healthHandler := handlers.NewHealthHandler(a.HealthService, a.Logger)
		r.Get("/health", healthHandler.HealthCheck)
		r.Get("/health/ready", healthHandler.ReadinessCheck)
		r.Get("/health/live", healthHandler.LivenessCheck)
		r.Get("/version", healthHandler.Version)

		ganttHandler := handlers.NewGanttHandler(a.GanttService, a.Logger, a.ErrorHandler)
		r.Mount("/gantt", ganttHandler.Routes())

		r.Post("/logs", handlers.NewClientLogHandler(a.Logger, a.ErrorHandler).Handle)
	})
}

// setupHTMLRoutes serves the dashboard page and its assets
func (a *Application) setupHTMLRoutes(r chi.Router) {
	dashboard := handlers.NewDashboardHandler(a.FrontendFS, a.Config.Schedule.Title, a.Logger)

	r.Group(func(r chi.Router) {
		r.Use(customMiddleware.Compress(5))
		r.Get("/", dashboard.ServeIndex)
		r.Handle("/static/*", dashboard.Static("/static/"))
	})
}

// createServer creates the HTTP server
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// Start starts the hub and the HTTP server. Serve errors cancel ctx through
// cancel.
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) error {
	a.Logger.InfoContext(ctx, "Starting application",
		slog.String("name", config.AppName),
		slog.String("version", contracts.Version),
		slog.Int("port", a.Config.Server.Port),
		slog.String("level", a.Config.Logging.Level))

	a.WebSocketHub.Start()

	go func() {
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.Logger.ErrorContext(ctx, "Server error", slog.String("error", err.Error()))
			cancel()
		}
	}()

	a.Logger.InfoContext(ctx, "Application started successfully",
		slog.String("address", fmt.Sprintf("http://localhost:%d", a.Config.Server.Port)),
		slog.String("schedule", a.GanttService.Source()))
	return nil
}

// Stop gracefully stops the application
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancel()

	var errs []error
	if a.Server != nil {
		if err := a.Server.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("server shutdown error: %w", err))
		}
	}

	a.WebSocketHub.Stop()
	a.Cache.Purge()

	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			a.Logger.ErrorContext(ctx, "Error shutting down OpenTelemetry", slog.String("error", err.Error()))
		}
	}

	a.Logger.InfoContext(ctx, "Application shutdown complete")
	return errors.Join(errs...)
}

// Run runs the application until interrupted
func (a *Application) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	if err := a.Start(ctx, cancel); err != nil {
		return err
	}

	select {
	case sig := <-sigChan:
		a.Logger.InfoContext(ctx, "Received interrupt signal", slog.String("signal", sig.String()))
	case <-ctx.Done():
		a.Logger.WarnContext(ctx, "Server stopped unexpectedly")
	}

	return a.Stop(ctx)
}
