package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/cfb-data-service/internal/app/analysis"
	"github.com/preston-bernstein/cfb-data-service/internal/app/games"
	"github.com/preston-bernstein/cfb-data-service/internal/app/teamstats"
	"github.com/preston-bernstein/cfb-data-service/internal/config"
	"github.com/preston-bernstein/cfb-data-service/internal/fanout"
	httpserver "github.com/preston-bernstein/cfb-data-service/internal/http"
	"github.com/preston-bernstein/cfb-data-service/internal/http/handlers"
	"github.com/preston-bernstein/cfb-data-service/internal/logging"
	"github.com/preston-bernstein/cfb-data-service/internal/metrics"
	"github.com/preston-bernstein/cfb-data-service/internal/poller"
	"github.com/preston-bernstein/cfb-data-service/internal/providers"
	"github.com/preston-bernstein/cfb-data-service/internal/store"
	"github.com/preston-bernstein/cfb-data-service/internal/teamnames"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg             config.Config
	logger          *slog.Logger
	metrics         *metrics.Recorder
	store           *store.MemoryStore
	gamesService    *games.Service
	analysisService *analysis.Service
	httpServer      httpServer
	metricsServer   httpServer
	poller          Poller
	metricsStop     func(context.Context) error
	closers         []func() error
}

// New constructs a server with the configured provider, cache, and poller wiring.
func New(cfg config.Config, logger *slog.Logger) *Server {
	return newServerWithMetrics(cfg, logger, nil, nil)
}

func newServerWithProvider(cfg config.Config, logger *slog.Logger, provider providers.DataProvider) *Server {
	return newServerWithMetrics(cfg, logger, provider, nil)
}

func newServerWithMetrics(cfg config.Config, logger *slog.Logger, provider providers.DataProvider, recorder *metrics.Recorder) *Server {
	logger = logging.OrDiscard(logger)
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	var closers []func() error
	bodies, closeCache := buildCache(cfg, logger)
	if closeCache != nil {
		closers = append(closers, closeCache)
	}

	data, wx := newProviderFactory(logger, recorder, bodies).build(cfg, provider)
	if c, ok := data.(interface{ Close() error }); ok {
		closers = append(closers, c.Close)
	}

	memoryStore := store.NewMemoryStore()
	gameSvc, analysisSvc, statsSvc := buildServices(cfg, data, wx, memoryStore, logger, recorder)
	plr := poller.New(gameSvc, poller.Options{
		Season:   cfg.Season,
		Division: cfg.Aggregation.DefaultDivision,
		Interval: cfg.PollInterval,
		Logger:   logger,
		Metrics:  recorder,
	})
	httpSrv := buildHTTPServer(cfg, handlers.Deps{
		Games:     gameSvc,
		TeamStats: statsSvc,
		Analysis:  analysisSvc,
		Season:    cfg.Season,
		Logger:    logger,
		Status:    plr.Status,
	}, logger, recorder)

	return &Server{
		cfg:             cfg,
		logger:          logger,
		metrics:         recorder,
		store:           memoryStore,
		gamesService:    gameSvc,
		analysisService: analysisSvc,
		httpServer:      httpSrv,
		metricsServer:   metricsSrv,
		poller:          plr,
		metricsStop:     metricsShutdown,
		closers:         closers,
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

func buildServices(cfg config.Config, data providers.DataProvider, wx providers.WeatherProvider, boards games.Store, logger *slog.Logger, recorder *metrics.Recorder) (*games.Service, *analysis.Service, *teamstats.Service) {
	names := teamnames.Default()
	stats := teamstats.NewService(data, names, logger)
	builder := games.NewBuilder(games.Options{
		Provider:        data,
		Weather:         wx,
		Stats:           stats,
		Pool:            fanout.New(cfg.Aggregation.StatsWorkers, cfg.Aggregation.StatsRequestsPerSecond),
		Names:           names,
		DefaultDivision: cfg.Aggregation.DefaultDivision,
		Logger:          logger,
		Metrics:         recorder,
	})
	return games.NewService(builder, boards), analysis.NewService(data, stats, names, logger), stats
}

func buildHTTPServer(cfg config.Config, deps handlers.Deps, logger *slog.Logger, recorder *metrics.Recorder) httpServer {
	router := httpserver.NewRouter(handlers.NewHandler(deps), httpserver.RouterOptions{
		AllowedOrigins: cfg.CORSOrigins,
		Logger:         logger,
		Metrics:        recorder,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run starts the poller and HTTP server, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	s.poller.Start(ctx)

	<-ctx.Done()
	if s.logger != nil {
		s.logger.Info("shutdown signal received")
	}

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	if s.logger != nil {
		s.logger.Info("http server starting", slog.String("addr", s.httpServer.Addr()))
	}
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	if s.logger != nil {
		s.logger.Info("metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics server shutdown failed", "error", err)
		}
	}

	if err := s.poller.Stop(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("failed to stop poller", "error", err)
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("graceful shutdown failed", "error", err)
	}

	for _, closeFn := range s.closers {
		if err := closeFn(); err != nil && s.logger != nil {
			s.logger.Warn("failed to release upstream resources", "error", err)
		}
	}

	if s.logger != nil {
		s.logger.Info("shutdown complete")
	}
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		if logger != nil {
			logger.Warn("metrics setup failed, continuing without telemetry", "err", err)
		}
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + recCfg.Port,
				Handler:           handler,
				ReadHeaderTimeout: readTimeout,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if logger != nil {
			logger.Info("starting "+name+" server", slog.String("addr", srv.Addr()))
		}
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if logger != nil {
				logger.Warn(name+" server failed", "error", err)
			}
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
