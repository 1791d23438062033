// Package api exposes the tracker's HTTP endpoints: REST queries,
// the websocket stream, health and Prometheus metrics.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vietddude/whalewatch/internal/core/domain"
	"github.com/vietddude/whalewatch/internal/infra/ws"
	"github.com/vietddude/whalewatch/internal/tracking/aggregate"
)

const (
	defaultWhaleLimit = 20
	maxWhaleLimit     = 100
)

// Server provides the HTTP surface over the aggregation engine and hub.
type Server struct {
	engine     *aggregate.Engine
	hub        *ws.Hub
	corsOrigin string
	server     *http.Server
	mux        *http.ServeMux
}

// NewServer creates an API server listening on port.
func NewServer(engine *aggregate.Engine, hub *ws.Hub, port int, corsOrigin string) *Server {
	mux := http.NewServeMux()
	s := &Server{
		engine:     engine,
		hub:        hub,
		corsOrigin: corsOrigin,
		mux:        mux,
	}
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s.withCORS(mux),
	}

	mux.HandleFunc("/api/whales", s.handleWhales)
	mux.HandleFunc("/api/stats", s.handleStats)
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/ws", hub.Handler())

	return s
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Stop stops the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler returns the routing handler, exposed for tests.
func (s *Server) Handler() http.Handler {
	return s.withCORS(s.mux)
}

func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.corsOrigin)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statsSnapshot merges the engine stats with the live subscriber count.
func (s *Server) statsSnapshot() domain.Stats {
	stats := s.engine.Snapshot()
	stats.ConnectedClients = s.hub.ClientCount()
	return stats
}

func (s *Server) handleWhales(w http.ResponseWriter, r *http.Request) {
	limit := defaultWhaleLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > maxWhaleLimit {
		limit = maxWhaleLimit
	}

	events := s.engine.RecentEvents(limit)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(events)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.statsSnapshot())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"ethereum":  s.statsSnapshot(),
	})
}
