// Package status serves a small local HTTP endpoint with the
// application's health, current state and Prometheus metrics. It exists
// for headless troubleshooting over SSH; the display works fine without
// it, so a taken port is logged and ignored.
package status

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// Snapshot is the application state reported on /status.
type Snapshot struct {
	// State is "flight" or "idle".
	State string `json:"state"`

	// FlightCount is the size of the current nearby list.
	FlightCount int `json:"flight_count"`

	// SelectedIndex is the flight currently on screen.
	SelectedIndex int `json:"selected_index"`

	// LastPoll is when the feed was last polled, zero before the first.
	LastPoll time.Time `json:"last_poll"`

	// WeatherAgeSeconds is the age of the cached weather, -1 when none.
	WeatherAgeSeconds float64 `json:"weather_age_seconds"`
}

// Server exposes /healthz, /status and /metrics on a local address.
type Server struct {
	addr     string
	snapshot func() Snapshot
	metrics  *Metrics
	logger   *slog.Logger
	srv      *http.Server
}

// NewServer builds the server. snapshot is called on every /status
// request and must be safe for concurrent use.
func NewServer(addr string, snapshot func() Snapshot, metrics *Metrics, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		addr:     addr,
		snapshot: snapshot,
		metrics:  metrics,
		logger:   logger,
	}
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler returns the route mux, exported for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/status", s.handleStatus)
	mux.Handle("/metrics", s.metrics.Handler())
	return mux
}

// Start serves in the background. Failure to bind is not fatal to the
// display; it is logged and the server stays down.
func (s *Server) Start() {
	go func() {
		s.logger.Info("status server listening", "addr", s.addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Warn("status server unavailable", "addr", s.addr, "error", err)
		}
	}()
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok\n"))
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.snapshot()); err != nil {
		s.logger.Warn("status encode failed", "error", err)
	}
}
