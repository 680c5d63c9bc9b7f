package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/pitchlab/gaffer/internal/domain/tactic"
)

// InsightsHandler serves minute-indexed tactical advice for both teams.
type InsightsHandler struct {
	deps Dependencies
}

// NewInsightsHandler creates a new insights handler.
func NewInsightsHandler(deps Dependencies) *InsightsHandler {
	return &InsightsHandler{deps: deps}
}

// insightsResponse pairs both teams' advice for one minute.
type insightsResponse struct {
	Minute int                 `json:"minute"`
	Teams  []tactic.TeamAdvice `json:"teams"`
}

// HandleGetInsights handles GET /insights/{minute} requests.
func (h *InsightsHandler) HandleGetInsights(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	raw := strings.TrimPrefix(r.URL.Path, "/insights/")
	minute, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadMinute)
		return
	}

	resp := insightsResponse{Minute: minute}
	for _, team := range h.deps.Teams() {
		advice, err := h.deps.TeamAdvice(r.Context(), team, minute)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		resp.Teams = append(resp.Teams, advice)
	}
	writeJSON(w, http.StatusOK, resp)
}
