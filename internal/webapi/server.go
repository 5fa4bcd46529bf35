// Package webapi exposes project scanning over HTTP for render farms and
// ingest pipelines that want to check asset health without shelling out to
// the CLI.
package webapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"
)

// Config holds the tunables for the API server.
type Config struct {
	// RatePerSecond caps request throughput across all clients. Zero
	// disables rate limiting.
	RatePerSecond float64

	// Burst is the token bucket depth when rate limiting is on.
	Burst int
}

// Server is the HTTP API server.
type Server struct {
	router chi.Router
	log    *slog.Logger
	cfg    Config
}

// New creates and configures the HTTP server.
func New(log *slog.Logger, cfg Config) *Server {
	if cfg.Burst <= 0 {
		cfg.Burst = 10
	}
	s := &Server{
		log: log,
		cfg: cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))
	if s.cfg.RatePerSecond > 0 {
		r.Use(RateLimit(rate.NewLimiter(rate.Limit(s.cfg.RatePerSecond), s.cfg.Burst)))
	}

	r.Get("/health", s.handleHealth)
	r.Post("/api/scan", s.handleScan)
	r.Post("/api/diff", s.handleDiff)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
