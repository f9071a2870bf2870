// Package server serves the comparison dashboard over HTTP: an HTML page
// rendered on the server, form endpoints that mutate the board and a JSON
// view of the heat map.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/skill-heatmap/internal/board"
	"github.com/spigell/skill-heatmap/internal/filtering"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// Board is the state the handlers operate on.
type Board interface {
	Snapshot(ctx context.Context) (*board.View, error)
	ToggleSelect(id string) (bool, error)
	ToggleSkillVisibility(name string) (bool, error)
	SetThreshold(skill string, value filtering.Threshold) error
	Refresh(ctx context.Context) error
}

// Recorder receives per-request metrics.
type Recorder interface {
	ObserveHTTP(route string, code int)
}

type Server struct {
	board    Board
	logger   *zap.Logger
	recorder Recorder
	metrics  http.Handler
}

// New creates a server. metrics may be nil, in which case /metrics is not routed.
func New(b Board, logger *zap.Logger, recorder Recorder, metrics http.Handler) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{board: b, logger: logger, recorder: recorder, metrics: metrics}
}

// Register attaches all routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	mux.HandleFunc("GET /{$}", s.middleware("index", s.handleIndex))
	mux.HandleFunc("GET /api/heatmap", s.middleware("heatmap", s.handleHeatmap))
	mux.HandleFunc("POST /candidates/{id}/toggle", s.middleware("toggle_candidate", s.handleToggleCandidate))
	mux.HandleFunc("POST /skills/toggle", s.middleware("toggle_skill", s.handleToggleSkill))
	mux.HandleFunc("POST /thresholds", s.middleware("threshold", s.handleThreshold))
	mux.HandleFunc("POST /refresh", s.middleware("refresh", s.handleRefresh))
	mux.HandleFunc("GET /healthz", s.middleware("healthz", s.handleHealth))
	if s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics)
	}
}

// Handler returns a mux with every route registered.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.Register(mux)
	return mux
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("dashboard listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps board errors onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, board.ErrUnknownCandidate), errors.Is(err, board.ErrUnknownSkill):
		writeJSON(w, http.StatusNotFound, errorResponse{Code: "not_found", Message: err.Error()})
	case errors.Is(err, filtering.ErrInvalidThreshold):
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: "invalid_threshold", Message: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Code: "internal", Message: err.Error()})
	}
}
