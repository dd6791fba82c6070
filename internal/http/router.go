package http

import (
	"log/slog"
	nethttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/preston-bernstein/cfb-data-service/internal/http/handlers"
	"github.com/preston-bernstein/cfb-data-service/internal/http/middleware"
	"github.com/preston-bernstein/cfb-data-service/internal/http/requestutil"
	"github.com/preston-bernstein/cfb-data-service/internal/metrics"
)

// requestTimeout bounds a whole board build; each upstream call has its own 10s limit.
const requestTimeout = 30 * time.Second

// RouterOptions carries the cross-cutting pieces of the router.
type RouterOptions struct {
	AllowedOrigins []string
	Logger         *slog.Logger
	Metrics        *metrics.Recorder
}

// NewRouter registers HTTP routes on a chi router.
func NewRouter(handler *handlers.Handler, opts RouterOptions) nethttp.Handler {
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(func(next nethttp.Handler) nethttp.Handler {
		return middleware.LoggingMiddleware(opts.Logger, opts.Metrics, next)
	})
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{nethttp.MethodGet, nethttp.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", requestutil.HeaderRequestID},
		ExposedHeaders: []string{requestutil.HeaderRequestID},
		MaxAge:         300,
	}))

	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	r.Get("/health", handler.Health)
	r.Get("/ready", handler.Ready)

	r.Route("/api", func(r chi.Router) {
		r.Use(chimiddleware.Timeout(requestTimeout))
		r.Get("/games/{year}", handler.Games)
		r.Get("/team-stats", handler.TeamStats)
		r.Get("/llm-analysis", handler.Analysis)
		r.Get("/llm-context", handler.AnalysisContext)
		r.Options("/*", handler.Preflight)
	})
	return r
}
