package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/preston-bernstein/league-standings-service/internal/app/games"
	"github.com/preston-bernstein/league-standings-service/internal/app/teams"
	"github.com/preston-bernstein/league-standings-service/internal/config"
	httpserver "github.com/preston-bernstein/league-standings-service/internal/http"
	"github.com/preston-bernstein/league-standings-service/internal/http/handlers"
	"github.com/preston-bernstein/league-standings-service/internal/http/middleware"
	"github.com/preston-bernstein/league-standings-service/internal/logging"
	"github.com/preston-bernstein/league-standings-service/internal/metrics"
	"github.com/preston-bernstein/league-standings-service/internal/poller"
	"github.com/preston-bernstein/league-standings-service/internal/providers"
	"github.com/preston-bernstein/league-standings-service/internal/snapshots"
	"github.com/preston-bernstein/league-standings-service/internal/standings"
	"github.com/preston-bernstein/league-standings-service/internal/store"
)

var metricsSetup = metrics.Setup

// Poller is the slice of the poller the server drives and reports on.
type Poller interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Refresh(ctx context.Context) error
	Status() poller.Status
}

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	store         *store.MemoryStore
	gamesService  *games.Service
	teamsService  *teams.Service
	httpServer    httpServer
	metricsServer httpServer
	poller        Poller
	metricsStop   func(context.Context) error
}

// New constructs a server with default provider and poller wiring.
func New(cfg config.Config, logger *slog.Logger) *Server {
	return newServerWithMetrics(cfg, logger, nil, nil)
}

func newServerWithProvider(cfg config.Config, logger *slog.Logger, provider providers.GameProvider) *Server {
	return newServerWithMetrics(cfg, logger, provider, nil)
}

func newServerWithMetrics(cfg config.Config, logger *slog.Logger, provider providers.GameProvider, recorder *metrics.Recorder) *Server {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	if provider == nil {
		provider = newProviderFactory(logger, recorder).build(context.Background(), cfg)
	} else {
		provider = providers.NewRetryingProvider(provider, logger, recorder, providerLabel(cfg.Provider, provider), 0, 0)
	}
	memoryStore, gameSvc, teamSvc := buildServices(cfg, recorder)

	snaps := buildSnapshots(cfg, logger)
	snapshots.Warm(snaps.store, gameSvc, logger)

	var writer poller.SnapshotWriter
	if snaps.writer != nil {
		writer = snaps.writer
	}
	plr := poller.New(provider, gameSvc, writer, logger, recorder, cfg.PollInterval)
	httpSrv := buildHTTPServer(cfg, gameSvc, teamSvc, logger, recorder, plr)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		store:         memoryStore,
		gamesService:  gameSvc,
		teamsService:  teamSvc,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		poller:        plr,
		metricsStop:   metricsShutdown,
	}
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, gameSvc *games.Service, httpSrv httpServer, plr Poller) *Server {
	return &Server{
		cfg:          cfg,
		logger:       logger,
		gamesService: gameSvc,
		httpServer:   httpSrv,
		poller:       plr,
	}
}

func buildServices(cfg config.Config, recorder *metrics.Recorder) (*store.MemoryStore, *games.Service, *teams.Service) {
	memoryStore := store.NewMemoryStore()
	gameSvc := games.NewService(memoryStore, recorder, standings.ParseTieBreak(cfg.TieBreak))
	return memoryStore, gameSvc, teams.NewService(gameSvc)
}

func buildHTTPServer(cfg config.Config, gameSvc *games.Service, teamSvc *teams.Service, logger *slog.Logger, recorder *metrics.Recorder, plr Poller) httpServer {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}

	var statusFn func() poller.Status
	var refresher handlers.Refresher
	if plr != nil {
		statusFn = plr.Status
		refresher = plr
	}

	handler := handlers.NewHandler(gameSvc, teamSvc, logger, statusFn)
	var admin *handlers.AdminHandler
	if cfg.AdminToken != "" {
		admin = handlers.NewAdminHandler(refresher, gameSvc, cfg.AdminToken, logger)
	}
	router := httpserver.NewRouter(handler, admin, logger)
	wrapped := middleware.LoggingMiddleware(logger, recorder, router)

	return newNetHTTPServer(cfg.Port, wrapped)
}

// Run starts the poller and HTTP server, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	if s.metricsServer != nil {
		launchServer("metrics", s.metricsServer, s.logger, nil)
	}
	s.startServer(stop)
	s.poller.Start(ctx)

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")
	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	launchServer("http", s.httpServer, s.logger, func(error) {
		if stop != nil {
			stop()
		}
	})
}

// shutdownStep is one component to release, in order, under the shared deadline.
type shutdownStep struct {
	name  string
	run   func(context.Context) error
	fatal bool
}

func (s *Server) gracefulShutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	steps := []shutdownStep{
		{name: "metrics exporter", run: s.metricsStop},
		{name: "metrics server", run: serverShutdown(s.metricsServer)},
		{name: "poller", run: s.poller.Stop, fatal: true},
		{name: "http server", run: s.httpServer.Shutdown, fatal: true},
		{name: "provider", run: func(ctx context.Context) error { return providers.Close(ctx, s.pollerProvider()) }},
	}
	for _, step := range steps {
		if step.run == nil {
			continue
		}
		err := step.run(ctx)
		switch {
		case err == nil:
		case step.fatal:
			logging.Error(s.logger, step.name+" shutdown failed", err)
		default:
			logging.Warn(s.logger, step.name+" shutdown failed", logging.FieldError, err)
		}
	}
	logging.Info(s.logger, "shutdown complete")
}

func serverShutdown(srv httpServer) func(context.Context) error {
	if srv == nil {
		return nil
	}
	return srv.Shutdown
}

// pollerProvider extracts the underlying provider from the poller when available.
func (s *Server) pollerProvider() providers.GameProvider {
	if pa, ok := s.poller.(interface {
		Provider() providers.GameProvider
	}); ok {
		return pa.Provider()
	}
	return nil
}

// buildMetrics returns the recorder every component reports to. A caller
// supplied recorder skips exporter setup entirely. Setup failures degrade to
// an in-memory recorder with no scrape endpoint.
func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	rec, exposition, shutdown, err := metricsSetup(context.Background(), metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	})
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", logging.FieldError, err)
		return metrics.NewRecorder(), nil, nil
	}
	if cfg.Metrics.Pushes() {
		logging.Info(logger, "metrics push enabled", "endpoint", cfg.Metrics.OtlpEndpoint)
	}
	if exposition == nil || !cfg.Metrics.Enabled {
		return rec, nil, shutdown
	}

	path := cfg.Metrics.Path
	if path == "" {
		path = "/metrics"
	}
	router := mux.NewRouter()
	router.Handle(path, exposition).Methods(http.MethodGet)
	return rec, newNetHTTPServer(cfg.Metrics.Port, router), shutdown
}

// launchServer serves srv in the background. Any exit other than a clean
// shutdown is logged and reported to onError.
func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	logging.Info(logger, name+" server starting", "addr", srv.Addr())
	go func() {
		err := srv.ListenAndServe()
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return
		}
		logging.Error(logger, name+" server failed", err)
		if onError != nil {
			onError(err)
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
