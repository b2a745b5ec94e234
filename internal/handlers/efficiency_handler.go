package handlers

import (
	"errors"
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/sfb/internal/interfaces"
	"github.com/ternarybob/sfb/internal/models"
)

// EfficiencyHandler serves efficiency metric documents
type EfficiencyHandler struct {
	efficiency interfaces.EfficiencyService
	logger     arbor.ILogger
}

// NewEfficiencyHandler creates a new EfficiencyHandler
func NewEfficiencyHandler(efficiency interfaces.EfficiencyService, logger arbor.ILogger) *EfficiencyHandler {
	return &EfficiencyHandler{
		efficiency: efficiency,
		logger:     logger,
	}
}

// GetMetricHandler handles GET and HEAD /api/efficiencymetric/{urn}.
// HEAD answers 200 or 404 with no body; GET answers 204 when no document exists.
func (h *EfficiencyHandler) GetMetricHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}

	urn, ok := PathInt64(w, r, "urn")
	if !ok {
		return
	}

	metric, err := h.efficiency.GetMetric(r.Context(), urn)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		h.logger.Error().Err(err).Int64("urn", urn).Msg("Failed to load efficiency metric")
	}

	if r.Method == http.MethodHead {
		if err != nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
		return
	}

	if err != nil {
		WriteNoContent(w)
		return
	}
	WriteJSON(w, http.StatusOK, metric)
}
