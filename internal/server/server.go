// Package server exposes one editor session over HTTP.
//
// The browser page at / shows the canvas SVG and posts clicks back to the
// JSON API; every request goes through the same editor state machine the
// terminal UI uses. The server holds a single editor behind a mutex.
package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ntwkui/ntwk/pkg/config"
	"github.com/ntwkui/ntwk/pkg/editor"
	"github.com/ntwkui/ntwk/pkg/gesture"
)

const shutdownTimeout = 5 * time.Second

// Server serves the canvas and the editing API.
type Server struct {
	cfg    *config.Config
	logger *log.Logger

	mu      sync.Mutex
	ed      *editor.Editor
	history gesture.Script

	metrics http.Handler
}

// New creates a server around a fresh editor.
func New(cfg *config.Config, logger *log.Logger) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{cfg: cfg, logger: logger, ed: editor.New()}
}

// Session returns the editor session id.
func (s *Server) Session() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ed.ID()
}

// EnableMetrics exposes the series gathered by g at /metrics.
func (s *Server) EnableMetrics(g prometheus.Gatherer) {
	s.metrics = promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// Handler configures all routes and middleware.
func (s *Server) Handler() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(requestLogger(s.logger))

	router.Get("/health", s.health)
	router.Get("/", s.index)
	router.Get("/canvas.svg", s.canvasSVG)
	router.Get("/canvas.dot", s.canvasDOT)
	if s.metrics != nil {
		router.Handle("/metrics", s.metrics)
	}

	router.Route("/api", func(r chi.Router) {
		r.Get("/state", s.state)
		r.Post("/click", s.click)
		r.Put("/mode", s.mode)
		r.Post("/clear", s.clear)
		r.Get("/script", s.script)
	})

	return router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr, "session", s.Session())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func requestLogger(logger *log.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Debug("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", chimiddleware.GetReqID(r.Context()),
			)
		})
	}
}
