// Package server is the HTTP preview server for heatmaps and legends.
//
// Clients POST a drawing, the server renders it through the [pipeline.Runner]
// and publishes the bytes under a random id that can be fetched until the
// blob TTL expires:
//
//	POST /v1/heatmaps        {"data": [[1,2],[3,4]], "format": "svg"}
//	POST /v1/legends         {"texts": ["a"], "colors": ["red"]}
//	GET  /v1/artifacts/{id}  rendered bytes with their content type
//	GET  /healthz
//
// Renders are stateless; the configured cache carries both the artifact
// cache of the runner and the published blobs, so several servers sharing a
// Redis or Mongo backend serve each other's ids.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/tagkit/pkg/cache"
	"github.com/matzehuels/tagkit/pkg/heatmap"
	"github.com/matzehuels/tagkit/pkg/legend"
	"github.com/matzehuels/tagkit/pkg/pipeline"
)

// Defaults.
const (
	DefaultAddr         = "127.0.0.1:8080"
	DefaultMaxBodyBytes = 4 << 20
	DefaultTimeout      = 30 * time.Second
	shutdownTimeout     = 5 * time.Second
)

// Config configures a Server. Zero fields take the defaults.
type Config struct {
	Addr         string
	MaxBodyBytes int64
	Timeout      time.Duration

	// HeatmapOptions and LegendOptions seed every request before its body
	// is decoded, so a body only names the fields it changes.
	HeatmapOptions heatmap.Options
	LegendOptions  legend.Options
}

func (c *Config) setDefaults() {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.HeatmapOptions == (heatmap.Options{}) {
		c.HeatmapOptions = heatmap.DefaultOptions()
	}
	if c.LegendOptions == (legend.Options{}) {
		c.LegendOptions = legend.DefaultOptions()
	}
}

// Server renders drawings and serves the published artifacts.
type Server struct {
	cfg    Config
	runner *pipeline.Runner
	logger *log.Logger
}

// New creates a server rendering through runner. Published artifacts are
// written to runner.Cache under runner.Keyer.BlobKey.
func New(cfg Config, runner *pipeline.Runner, logger *log.Logger) *Server {
	cfg.setDefaults()
	if logger == nil {
		logger = log.Default()
	}
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	return &Server{cfg: cfg, runner: runner, logger: logger}
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.cfg.Timeout))

	r.Get("/healthz", s.instrument("/healthz", s.handleHealth))
	r.Route("/v1", func(r chi.Router) {
		r.Post("/heatmaps", s.instrument("/v1/heatmaps", s.handleHeatmap))
		r.Post("/legends", s.instrument("/v1/legends", s.handleLegend))
		r.Get("/artifacts/{id}", s.instrument("/v1/artifacts/{id}", s.handleArtifact))
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("preview server listening", "addr", s.cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down preview server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close releases the runner's cache.
func (s *Server) Close() error {
	return s.runner.Close()
}

func (s *Server) blobKey(id string) string {
	return s.runner.Keyer.BlobKey(id)
}

func (s *Server) blobCache() cache.Cache {
	return s.runner.Cache
}
