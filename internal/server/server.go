// Package server provides the HTTP API for xlsxcsv.
package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/ukaji3/xlsxcsv-go/internal/config"
	"github.com/ukaji3/xlsxcsv-go/pkg/xlsxcsv"
	"go.uber.org/zap"
)

// Server is the HTTP server for the conversion API.
type Server struct {
	config   *config.ServerConfig
	opts     xlsxcsv.Options
	logger   *zap.Logger
	metrics  *Metrics
	registry *prometheus.Registry
	router   chi.Router
	server   *http.Server
}

// NewServer creates a server converting with opts as the per-request
// baseline. Metrics are registered on a fresh registry.
func NewServer(cfg *config.ServerConfig, opts xlsxcsv.Options, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	reg := prometheus.NewRegistry()
	s := &Server{
		config:   cfg,
		opts:     opts,
		logger:   logger,
		metrics:  NewMetrics(reg),
		registry: reg,
	}
	s.router = s.routes()
	s.server = &http.Server{
		Addr:    cfg.Addr(),
		Handler: s.router,
	}
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.config.RequestTimeout))

	r.Post("/convert", s.handleConvert)
	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	return r
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	s.logger.Info("Starting server", zap.String("addr", s.server.Addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
