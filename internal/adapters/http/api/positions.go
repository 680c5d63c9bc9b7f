package api

import (
	"encoding/json"
	"net/http"
)

// PositionsHandler serves the simulator's current player states.
type PositionsHandler struct {
	deps Dependencies
}

// NewPositionsHandler creates a new positions handler.
func NewPositionsHandler(deps Dependencies) *PositionsHandler {
	return &PositionsHandler{deps: deps}
}

// HandleGetPositions handles GET /positions requests.
func (h *PositionsHandler) HandleGetPositions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	states, err := h.deps.Positions(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, states)
}

// TickHandler advances the position simulator.
type TickHandler struct {
	deps Dependencies
}

// NewTickHandler creates a new tick handler.
func NewTickHandler(deps Dependencies) *TickHandler {
	return &TickHandler{deps: deps}
}

// tickRequest mirrors the POST /tick body. Steps defaults to one.
type tickRequest struct {
	Steps int `json:"steps"`
}

type tickResponse struct {
	Ticks int `json:"ticks"`
}

// HandlePostTick handles POST /tick requests.
func (h *TickHandler) HandlePostTick(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req tickRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", err)
			return
		}
	}

	ticks, err := h.deps.Tick(r.Context(), req.Steps)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tickResponse{Ticks: ticks})
}
