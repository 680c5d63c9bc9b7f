package api

import (
	"net/http"
	"strings"
)

// AdviceHandler serves per-player positioning advice.
type AdviceHandler struct {
	deps Dependencies
}

// NewAdviceHandler creates a new advice handler.
func NewAdviceHandler(deps Dependencies) *AdviceHandler {
	return &AdviceHandler{deps: deps}
}

// HandleGetAdvice handles GET /advice/{player} requests.
func (h *AdviceHandler) HandleGetAdvice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	playerID := strings.TrimPrefix(r.URL.Path, "/advice/")
	if playerID == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrMissingPlayer)
		return
	}

	advice, err := h.deps.PlayerAdvice(r.Context(), playerID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, advice)
}
