// Package http exposes the dashboard over a JSON API: the filtered+sorted
// rows for the table, marker payloads and bounds for the map, and the state
// mutations (filters, sort, reset, toggles) the UI issues. Health,
// readiness, and Prometheus metrics ride along.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mikasimoncelli/Railway-Temperature-Dashboard/internal/dashboard"
	"github.com/mikasimoncelli/Railway-Temperature-Dashboard/internal/domain"
)

// Server wires the dashboard controller to HTTP routes.
type Server struct {
	httpServer *http.Server
	ctrl       *dashboard.Controller
	logger     *slog.Logger
}

// NewServer creates the HTTP server with all dashboard and observability
// routes registered.
func NewServer(addr string, ctrl *dashboard.Controller, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		ctrl:   ctrl,
		logger: logger,
	}
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.withRequestLog(mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ctrl))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/readings", s.handleReadings)
	mux.HandleFunc("GET /api/markers", s.handleMarkers)
	mux.HandleFunc("GET /api/bounds", s.handleBounds)
	mux.HandleFunc("GET /api/state", s.handleState)
	mux.HandleFunc("PUT /api/filters", s.handleSetFilters)
	mux.HandleFunc("PUT /api/sort", s.handleSetSort)
	mux.HandleFunc("POST /api/reset", s.handleReset)
	mux.HandleFunc("POST /api/map/toggle", s.handleMapToggle)
	mux.HandleFunc("POST /api/theme/toggle", s.handleThemeToggle)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker *dashboard.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

// handleReadings serves the current filtered+sorted sequence for the table.
// An empty result is a valid state, rendered as an empty array with a count
// of zero — the UI shows "no records match", not an error.
func (s *Server) handleReadings(w http.ResponseWriter, _ *http.Request) {
	rows := s.ctrl.Rows()
	if rows == nil {
		rows = []domain.Reading{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"readings": rows,
		"count":    len(rows),
	})
}

func (s *Server) handleMarkers(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"markers": s.ctrl.Markers(),
	})
}

// handleBounds serves the full-dataset map framing. With an empty dataset
// there are no bounds and the map must not render; that is a 404, never a
// zero rectangle.
func (s *Server) handleBounds(w http.ResponseWriter, _ *http.Request) {
	bounds, ok := s.ctrl.Bounds()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no bounds available"})
		return
	}
	writeJSON(w, http.StatusOK, bounds)
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.ctrl.Snapshot())
}

// handleSetFilters applies a partial filter update: fields present in the
// body overwrite the current state, absent fields keep their value, and an
// explicit null clears an optional bound.
func (s *Server) handleSetFilters(w http.ResponseWriter, r *http.Request) {
	filter := s.ctrl.Snapshot().Filter
	if err := json.NewDecoder(r.Body).Decode(&filter); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid filter payload: " + err.Error()})
		return
	}
	if !validSeverityFilter(filter.Severity) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid severity filter"})
		return
	}

	s.ctrl.SetFilter(filter)
	writeJSON(w, http.StatusOK, s.ctrl.Snapshot())
}

func (s *Server) handleSetSort(w http.ResponseWriter, r *http.Request) {
	var sortState domain.SortState
	if err := json.NewDecoder(r.Body).Decode(&sortState); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid sort payload: " + err.Error()})
		return
	}
	if err := s.ctrl.SetSort(sortState); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, s.ctrl.Snapshot())
}

func (s *Server) handleReset(w http.ResponseWriter, _ *http.Request) {
	s.ctrl.Reset()
	writeJSON(w, http.StatusOK, s.ctrl.Snapshot())
}

func (s *Server) handleMapToggle(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"map_expanded": s.ctrl.ToggleMapExpanded()})
}

func (s *Server) handleThemeToggle(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"dark_mode": s.ctrl.ToggleDarkMode()})
}

func validSeverityFilter(f domain.SeverityFilter) bool {
	switch f {
	case "", domain.SeverityAll,
		domain.SeverityFilter(domain.SeverityHigh),
		domain.SeverityFilter(domain.SeverityMedium),
		domain.SeverityFilter(domain.SeverityLow):
		return true
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
