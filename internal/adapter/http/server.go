package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/festival-guide/internal/domain"
	"github.com/couchcryptid/festival-guide/internal/observability"
	"github.com/couchcryptid/festival-guide/internal/recommend"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// CatalogProvider serves the current festival catalog and reports readiness.
type CatalogProvider interface {
	Current(ctx context.Context) (domain.Catalog, error)
	CheckReadiness(ctx context.Context) error
}

// Server exposes health, readiness, metrics and the festival API.
type Server struct {
	httpServer *http.Server
	catalog    CatalogProvider
	matcher    *recommend.Matcher
	limiter    *rate.Limiter
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewServer creates an HTTP server with the probe, metrics and /api routes.
// A nil limiter leaves the guide endpoint unlimited.
func NewServer(
	addr string,
	catalog CatalogProvider,
	matcher *recommend.Matcher,
	limiter *rate.Limiter,
	metrics *observability.Metrics,
	logger *slog.Logger,
) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		catalog: catalog,
		matcher: matcher,
		limiter: limiter,
		metrics: metrics,
		logger:  logger,
	}

	mux.Handle("GET /healthz", sharedobs.LivenessHandler())
	mux.Handle("GET /readyz", sharedobs.ReadinessHandler(catalog))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/festivals", s.handleFestivals)
	mux.HandleFunc("GET /api/vocabulary", s.handleVocabulary)
	mux.HandleFunc("GET /api/rankings", s.handleRankings)
	mux.HandleFunc("GET /api/seasonal", s.handleSeasonal)
	mux.HandleFunc("POST /api/guide", s.handleGuide)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}
