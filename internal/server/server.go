// Package server is the operational HTTP surface of the worker manager:
// liveness, readiness, database health and prometheus metrics.
package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"time"

	"consultancy-workers/internal/common/database"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Check reports whether one dependency is reachable.
type Check func(ctx context.Context) error

type Dependencies struct {
	// Checks run on /ready, keyed by dependency name.
	Checks   map[string]Check
	DB       *sql.DB
	Gatherer prometheus.Gatherer
}

type Config struct {
	Addr            string
	Service         string
	Version         string
	CheckTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type Server struct {
	router *chi.Mux
	log    *zap.Logger
	cfg    Config
	deps   Dependencies
	server *http.Server
	now    func() time.Time
}

func New(log *zap.Logger, cfg Config, deps Dependencies) *Server {
	if cfg.CheckTimeout == 0 {
		cfg.CheckTimeout = 2 * time.Second
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}

	s := &Server{log: log, cfg: cfg, deps: deps, now: time.Now}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(RequestLogger(log))
	router.Use(middleware.Recoverer)

	router.Get("/health", s.health)
	router.Get("/ready", s.ready)
	router.Get("/health/database", s.databaseHealth)
	router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))

	s.router = router
	s.server = &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	serverErrors := make(chan error, 1)
	go func() {
		s.log.Info("ops server listening", zap.String("addr", s.server.Addr))
		serverErrors <- s.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()

		if err := s.server.Shutdown(shutdownCtx); err != nil {
			s.log.Error("graceful shutdown failed", zap.Error(err))
			return s.server.Close()
		}
		return nil
	}
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"service": s.cfg.Service,
		"version": s.cfg.Version,
		"time":    s.now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) ready(w http.ResponseWriter, r *http.Request) {
	names := make([]string, 0, len(s.deps.Checks))
	for name := range s.deps.Checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := http.StatusOK
	results := make(map[string]string, len(names))
	for _, name := range names {
		ctx, cancel := context.WithTimeout(r.Context(), s.cfg.CheckTimeout)
		err := s.deps.Checks[name](ctx)
		cancel()

		if err != nil {
			status = http.StatusServiceUnavailable
			results[name] = err.Error()
			s.log.Warn("readiness check failed", zap.String("dependency", name), zap.Error(err))
			continue
		}
		results[name] = "ok"
	}

	body := map[string]interface{}{
		"status": "ready",
		"checks": results,
		"time":   s.now().UTC().Format(time.RFC3339),
	}
	if status != http.StatusOK {
		body["status"] = "not_ready"
	}
	writeJSON(w, status, body)
}

func (s *Server) databaseHealth(w http.ResponseWriter, r *http.Request) {
	body := map[string]interface{}{
		"timestamp": s.now().UTC().Format(time.RFC3339),
	}
	if s.deps.DB == nil {
		body["overall_status"] = "error"
		body["connection"] = map[string]string{"status": "error", "message": "database not configured"}
		writeJSON(w, http.StatusServiceUnavailable, body)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.CheckTimeout)
	defer cancel()

	if err := s.deps.DB.PingContext(ctx); err != nil {
		body["overall_status"] = "error"
		body["connection"] = map[string]string{"status": "error", "message": "Database connection failed: " + err.Error()}
		writeJSON(w, http.StatusServiceUnavailable, body)
		return
	}
	body["connection"] = map[string]string{"status": "healthy", "message": "Database connection successful"}

	stats, err := database.TableStats(ctx, s.deps.DB)
	if err != nil {
		// A missing table is a warning; the connection itself is fine.
		body["overall_status"] = "warning"
		body["tables"] = map[string]string{"status": "warning", "message": err.Error()}
		writeJSON(w, http.StatusOK, body)
		return
	}

	body["overall_status"] = "healthy"
	body["tables"] = map[string]string{"status": "healthy", "message": "All tables exist"}
	body["statistics"] = stats
	writeJSON(w, http.StatusOK, body)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
