// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pitchlab/gaffer/internal/domain/event"
	"github.com/pitchlab/gaffer/internal/domain/sim"
	"github.com/pitchlab/gaffer/internal/domain/tactic"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Teams returns the match's team pair.
	Teams() [2]string

	// TeamAdvice evaluates the team cascade for (team, minute).
	TeamAdvice(ctx context.Context, team string, minute int) (tactic.TeamAdvice, error)

	// PlayerAdvice evaluates the player cascade at the current position.
	PlayerAdvice(ctx context.Context, playerID string) (tactic.PlayerAdvice, error)

	// Tick advances the position simulator by n steps.
	Tick(ctx context.Context, n int) (int, error)

	// Positions returns every tracked player's simulated state.
	Positions(ctx context.Context) ([]sim.State, error)

	// GetStats returns engine statistics for monitoring.
	GetStats() map[string]interface{}
}

// Server wires HTTP routes for the tactical API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	insightsHandler  *InsightsHandler
	adviceHandler    *AdviceHandler
	tickHandler      *TickHandler
	positionsHandler *PositionsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(deps),
		insightsHandler:  NewInsightsHandler(deps),
		adviceHandler:    NewAdviceHandler(deps),
		tickHandler:      NewTickHandler(deps),
		positionsHandler: NewPositionsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/insights/", MetricsMiddleware(s.insightsHandler.HandleGetInsights, "insights"))
	mux.HandleFunc("/advice/", MetricsMiddleware(s.adviceHandler.HandleGetAdvice, "advice"))
	mux.HandleFunc("/tick", MetricsMiddleware(s.tickHandler.HandlePostTick, "tick"))
	mux.HandleFunc("/positions", MetricsMiddleware(s.positionsHandler.HandleGetPositions, "positions"))
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

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError translates domain sentinels to HTTP statuses: range and
// unknown-team problems are the client's, an unknown player is a 404.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, event.ErrMinuteRange), errors.Is(err, event.ErrUnknownTeam):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, sim.ErrUnknownPlayer):
		writeError(w, http.StatusNotFound, "not_found", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
