// Package server exposes chart rendering over HTTP.
//
// Routes:
//
//	POST /render?format=svg|png|pdf|json   chart definition in, image out
//	POST /table?format=json|xlsx           chart definition in, step table out
//	GET  /healthz                          liveness and version
//	GET  /metrics                          Prometheus metrics
//
// Definitions are JSON by default; TOML, YAML and XLSX bodies are accepted
// when the request's Content-Type names them. Errors are JSON objects with
// a machine-readable code.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/waterfall/pkg/observability"
	"github.com/matzehuels/waterfall/pkg/pipeline"
)

// Server is the waterfall HTTP API.
type Server struct {
	cfg      Config
	logger   *log.Logger
	runner   *pipeline.Runner
	registry *prometheus.Registry
	router   chi.Router
}

// New creates a server and registers its Prometheus render hooks.
func New(cfg Config, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	reg := prometheus.NewRegistry()
	observability.SetRenderHooks(NewMetrics(reg))

	s := &Server{
		cfg:      cfg,
		logger:   logger,
		runner:   pipeline.NewRunner(logger),
		registry: reg,
	}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		if s.cfg.WriteTimeout > 0 {
			r.Use(middleware.Timeout(s.cfg.WriteTimeout))
		}
		r.Post("/render", s.handleRender)
		r.Post("/table", s.handleTable)
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout + 5*time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
