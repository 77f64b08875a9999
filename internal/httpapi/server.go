// Package httpapi exposes a small operational surface next to the gateway
// connection: liveness and a read-only store summary.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"zvitbot/internal/bootstrap/logging"
	"zvitbot/internal/errs"
	"zvitbot/internal/ports"
)

const (
	readHeaderTimeout = 5 * time.Second
	handlerTimeout    = 10 * time.Second
)

type statsResponse struct {
	Reports      int64  `json:"reports"`
	LastReportID uint64 `json:"last_report_id"`
}

// Server serves the ops endpoints. A zero listen address means the surface is
// disabled and Start is a no-op.
type Server struct {
	addr string
	repo ports.ReportRepository

	httpServer *http.Server
}

func NewServer(addr string, repo ports.ReportRepository) *Server {
	return &Server{addr: addr, repo: repo}
}

// Enabled reports whether a listen address was configured.
func (s *Server) Enabled() bool { return s.addr != "" }

// Start begins serving in a background goroutine and returns immediately.
func (s *Server) Start(ctx context.Context) error {
	if !s.Enabled() {
		return nil
	}

	s.httpServer = &http.Server{
		Addr:              s.addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		logging.Info(ctx, "ops endpoint listening", slog.String("addr", s.addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error(ctx, "ops endpoint failed", slog.Any("err", errs.Loggable(err)))
		}
	}()
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return errs.Wrap(err, "shut down ops endpoint")
	}
	return nil
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(handlerTimeout))

	r.Get("/healthz", s.handleHealthz)
	r.Get("/stats", s.handleStats)

	return r
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	count, err := s.repo.Count(ctx)
	if err != nil {
		logging.Error(ctx, "stats query failed", slog.Any("err", errs.Loggable(err)))
		http.Error(w, "store unavailable", http.StatusInternalServerError)
		return
	}

	var lastID uint64
	if recent, err := s.repo.ListRecent(ctx, 1); err == nil && len(recent) > 0 {
		lastID = recent[0].ID
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(statsResponse{Reports: count, LastReportID: lastID})
}
