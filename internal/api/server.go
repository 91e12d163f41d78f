// Package api provides the HTTP API server and handlers for Gongyu.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/gongyuapp/gongyu-server/internal/ratelimit"
	"github.com/gongyuapp/gongyu-server/internal/store"
)

// Options tunes the server. Zero values get sensible defaults.
type Options struct {
	// MaxUploadSize caps import file uploads in bytes.
	MaxUploadSize int64
	// ImportRPS and ImportBurst rate limit import requests per client IP.
	ImportRPS   float64
	ImportBurst int
}

func (o *Options) applyDefaults() {
	if o.MaxUploadSize <= 0 {
		o.MaxUploadSize = 10 << 20
	}
	if o.ImportRPS <= 0 {
		o.ImportRPS = 1
	}
	if o.ImportBurst <= 0 {
		o.ImportBurst = 5
	}
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	router   *chi.Mux
	api      huma.API
	services *Services
	backend  store.Backend
	limiter  *ratelimit.KeyedRateLimiter
	opts     Options
	logger   *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(services *Services, backend store.Backend, opts Options, logger *slog.Logger) *Server {
	opts.applyDefaults()

	s := &Server{
		router:   chi.NewRouter(),
		services: services,
		backend:  backend,
		limiter:  ratelimit.New(opts.ImportRPS, opts.ImportBurst),
		opts:     opts,
		logger:   logger,
	}

	s.setupMiddleware()

	humaConfig := huma.DefaultConfig("Gongyu API", "1.0.0")
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)
	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()

	s.registerHealthRoutes()
	s.registerBookmarkRoutes()
	s.registerImportRoutes()
	s.registerExportRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}
