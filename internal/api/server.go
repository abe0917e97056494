// Package api implements the HTTP API for computing and archiving tile
// timings.
//
// The API exposes the same pipeline the CLI uses:
//
//	POST   /v1/timings      Compute timings for an uploaded or linked level
//	POST   /v1/levels       Compute and archive a level
//	GET    /v1/levels       List archived levels, newest first
//	GET    /v1/levels/{id}  Fetch one archived level
//	DELETE /v1/levels/{id}  Remove an archived level
//	GET    /healthz         Liveness probe
//
// Requests and responses are JSON. POST /v1/timings additionally accepts the
// raw level text as the body when the content type is not application/json.
// Errors carry a machine-readable code:
//
//	{"error": {"code": "INVALID_INPUT", "message": "path, url or content is required"}}
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/adofai-tools/tilebeat/pkg/pipeline"
	"github.com/adofai-tools/tilebeat/pkg/store"
)

// requestTimeout bounds one request end to end, including a remote level
// fetch on a cache miss.
const requestTimeout = 60 * time.Second

// Config carries the server's dependencies and listen address.
type Config struct {
	Addr   string
	Runner *pipeline.Runner
	Store  store.Store
	Logger *log.Logger
}

// Server is the HTTP API server.
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
	http   *http.Server
}

// NewServer creates a server from cfg. Nil dependencies get defaults: a
// cacheless runner, an in-memory store, and the package logger.
func NewServer(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	if cfg.Store == nil {
		cfg.Store = store.NewMemoryStore()
	}

	s := &Server{
		runner: cfg.Runner,
		store:  cfg.Store,
		logger: cfg.Logger,
	}
	s.http = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Router builds the HTTP handler. Exposed separately so tests can drive the
// API without a listener.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.logRequests)
	r.Use(s.recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/timings", s.handleTimings)
		r.Route("/levels", func(r chi.Router) {
			r.Get("/", s.handleListLevels)
			r.Post("/", s.handleCreateLevel)
			r.Get("/{id}", s.handleGetLevel)
			r.Delete("/{id}", s.handleDeleteLevel)
		})
	})
	return r
}

// Start listens and serves until Shutdown is called or the listener fails.
func (s *Server) Start() error {
	s.logger.Info("api listening", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server, waiting for in-flight requests up to the
// context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
