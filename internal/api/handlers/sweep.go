package handlers

import (
	"net/http"

	"github.com/Krishiv14/EarningsAgent/internal/engine"
	"github.com/Krishiv14/EarningsAgent/pkg/logger"
)

// SweepHandler triggers on-demand watchlist sweeps
type SweepHandler struct {
	engine    *engine.Orchestrator
	watchlist []string
	logger    *logger.Logger
}

// NewSweepHandler creates a new sweep handler
func NewSweepHandler(eng *engine.Orchestrator, watchlist []string, log *logger.Logger) *SweepHandler {
	return &SweepHandler{
		engine:    eng,
		watchlist: watchlist,
		logger:    log,
	}
}

// Run sweeps the configured watchlist now
// POST /api/sweep
func (h *SweepHandler) Run(w http.ResponseWriter, r *http.Request) {
	if len(h.watchlist) == 0 {
		respondError(w, http.StatusBadRequest, "watchlist is empty")
		return
	}

	result := h.engine.Sweep(r.Context(), h.watchlist)

	failed := make(map[string]string, len(result.Failed))
	for ticker, err := range result.Failed {
		failed[ticker] = err.Error()
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"analyzed": result.Analyzed,
		"failed":   failed,
		"duration": result.Duration.String(),
	})
}
