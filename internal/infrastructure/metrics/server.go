package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nerrad567/gray-logic-power/internal/infrastructure/config"
)

// gracefulShutdownTimeout bounds how long Close waits for in-flight scrapes.
const gracefulShutdownTimeout = 5 * time.Second

// readHeaderTimeout guards the listener against slow clients.
const readHeaderTimeout = 5 * time.Second

// Logger interface for optional logging support.
// Compatible with logging.Logger and slog.Logger.
type Logger interface {
	Info(msg string, args ...any)
	Error(msg string, args ...any)
}

// Server serves a private Prometheus registry over HTTP.
type Server struct {
	cfg      config.MetricsConfig
	registry *prometheus.Registry

	mu       sync.Mutex
	server   *http.Server
	listener net.Listener
	logger   Logger
}

// NewServer creates a registry holding the build info and Go runtime
// collectors plus the given collectors.
//
// Returns ErrDisabled if metrics are disabled in configuration.
func NewServer(cfg config.MetricsConfig, extra ...prometheus.Collector) (*Server, error) {
	if !cfg.Enabled {
		return nil, ErrDisabled
	}

	reg := prometheus.NewRegistry()
	all := append([]prometheus.Collector{
		collectors.NewBuildInfoCollector(),
		collectors.NewGoCollector(),
	}, extra...)
	for _, c := range all {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRegisterFailed, err)
		}
	}

	return &Server{cfg: cfg, registry: reg}, nil
}

// SetLogger sets a logger for server lifecycle events.
func (s *Server) SetLogger(logger Logger) {
	s.mu.Lock()
	s.logger = logger
	s.mu.Unlock()
}

// Registry returns the underlying registry.
func (s *Server) Registry() *prometheus.Registry {
	return s.registry
}

// Handler returns the HTTP routes: the scrape endpoint on the configured
// path and a liveness probe on /healthz.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Handle(s.cfg.Path, promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{
		Registry:      s.registry,
		ErrorHandling: promhttp.ContinueOnError,
	}))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok\n")) //nolint:errcheck // best-effort probe body
	})
	return r
}

// Start opens the listener and serves in the background.
// A port already in use is reported here rather than in the goroutine.
func (s *Server) Start(_ context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Listen)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrListenFailed, s.cfg.Listen, err)
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	s.mu.Lock()
	s.server = srv
	s.listener = ln
	logger := s.logger
	s.mu.Unlock()

	if logger != nil {
		logger.Info("metrics server listening", "address", ln.Addr().String(), "path", s.cfg.Path)
	}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			if logger != nil {
				logger.Error("metrics server error", "error", err)
			}
		}
	}()
	return nil
}

// Addr returns the bound listen address, or "" before Start.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Close gracefully shuts the server down. Safe to call on nil or unstarted servers.
func (s *Server) Close() error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	srv := s.server
	s.server = nil
	s.mu.Unlock()
	if srv == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down metrics server: %w", err)
	}
	return nil
}
