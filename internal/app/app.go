package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"slidepulse/internal/config"
	"slidepulse/internal/extraction"
	"slidepulse/internal/infrastructure"
	customMiddleware "slidepulse/internal/middleware"
	"slidepulse/internal/services"
	transporthttp "slidepulse/internal/transport/http"
	"slidepulse/internal/websocket"
	"slidepulse/pkg/contracts"
)

// AppName identifies the application in startup logs.
const AppName = "slidepulse"

// Application holds the wired components of the running server.
type Application struct {
	Config       *config.Config
	Logger       *slog.Logger
	Paths        *config.Paths
	Hub          *websocket.Hub
	BatchService *services.BatchService
	Router       chi.Router
	Server       *http.Server
}

// NewApplication loads configuration, initializes the logger and wires
// all services and routes.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("Application starting",
		slog.String("name", AppName),
		slog.String("version", contracts.Version))

	paths, err := config.GetPaths(cfg.Paths)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve paths: %w", err)
	}
	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}

	app := &Application{
		Config: cfg,
		Logger: logger,
		Paths:  paths,
	}

	app.initializeServices()
	app.setupRouter()
	app.createServer()

	return app, nil
}

func (a *Application) initializeServices() {
	a.Hub = websocket.NewHub(a.Logger)

	processor := extraction.NewProcessor(a.Logger, a.Config.Extraction)
	a.BatchService = services.NewBatchService(processor, a.Paths, a.Hub, a.Logger)
}

// setupRouter configures the HTTP router. The websocket route stays
// outside the main middleware group: the wrapped ResponseWriter used by
// the logging middleware breaks the connection upgrade.
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(customMiddleware.RequestID)

	r.HandleFunc("/ws", a.handleWebSocket)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(customMiddleware.StructuredLogger(a.Logger))
		r.Use(customMiddleware.Recoverer(a.Logger))

		if a.Config.Server.RateLimit.Enabled {
			r.Use(customMiddleware.RateLimit(
				a.Config.Server.RateLimit.RPS,
				a.Config.Server.RateLimit.Burst,
			))
		}

		a.setupAPIRoutes(r)
	})

	a.Router = r
}

func (a *Application) setupAPIRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		healthHandler := transporthttp.NewHealthHandler()
		r.Get("/health", healthHandler.HealthCheck)
		r.Get("/version", healthHandler.VersionInfo)

		extractionHandler := transporthttp.NewExtractionHandler(a.BatchService, a.Logger)
		r.Post("/extraction", extractionHandler.RunExtraction)
		r.Get("/posts", extractionHandler.GetPosts)
	})
}

func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// Start starts the websocket hub and the HTTP server.
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) error {
	a.Logger.InfoContext(ctx, "Starting server",
		slog.Int("port", a.Config.Server.Port),
		slog.String("input_dir", a.Paths.InputDir),
		slog.String("reports_dir", a.Paths.ReportsDir))

	go a.Hub.Run(ctx)

	go func() {
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.Logger.ErrorContext(ctx, "Server error", slog.String("error", err.Error()))
			cancel()
		}
	}()

	a.Logger.InfoContext(ctx, "Server started",
		slog.String("address", fmt.Sprintf("http://localhost:%d", a.Config.Server.Port)))
	return nil
}

// Stop gracefully stops the HTTP server.
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	a.Logger.InfoContext(ctx, "Shutdown complete")
	return infrastructure.CloseLogFile()
}

// Run runs the application until interrupted.
func (a *Application) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	if err := a.Start(ctx, cancel); err != nil {
		return err
	}

	select {
	case <-sigChan:
		a.Logger.InfoContext(ctx, "Received interrupt signal")
	case <-ctx.Done():
	}

	return a.Stop(context.Background())
}

func (a *Application) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	websocket.ServeWS(a.Hub, w, r)
}
