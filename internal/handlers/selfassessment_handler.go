package handlers

import (
	"errors"
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/sfb/internal/interfaces"
	"github.com/ternarybob/sfb/internal/models"
)

// SelfAssessmentHandler serves school, federation and trust dashboards
type SelfAssessmentHandler struct {
	assessment interfaces.AssessmentService
	trust      interfaces.TrustService
	logger     arbor.ILogger
}

// NewSelfAssessmentHandler creates a new SelfAssessmentHandler
func NewSelfAssessmentHandler(assessment interfaces.AssessmentService, trust interfaces.TrustService, logger arbor.ILogger) *SelfAssessmentHandler {
	return &SelfAssessmentHandler{
		assessment: assessment,
		trust:      trust,
		logger:     logger,
	}
}

// GetSchoolHandler handles GET /api/selfassessment/{urn}
func (h *SelfAssessmentHandler) GetSchoolHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	urn, ok := PathInt64(w, r, "urn")
	if !ok {
		return
	}

	report, err := h.assessment.BuildSchoolReport(r.Context(), urn)
	if err != nil {
		h.logger.Error().Err(err).Int64("urn", urn).Msg("Failed to build self-assessment report")
		WriteNoContent(w)
		return
	}

	WriteJSON(w, http.StatusOK, report)
}

// GetTrustHandler handles GET /api/selfassessment/trust/{uid}
func (h *SelfAssessmentHandler) GetTrustHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	uid, ok := PathInt64(w, r, "uid")
	if !ok {
		return
	}

	report, err := h.trust.BuildTrustReport(r.Context(), uid)
	if err != nil {
		h.logger.Error().Err(err).Int64("uid", uid).Msg("Failed to build trust report")
		WriteNoContent(w)
		return
	}

	WriteJSON(w, http.StatusOK, report)
}

// GetTrustCategoryHandler handles GET /api/selfassessment/trust/{uid}/{category}
func (h *SelfAssessmentHandler) GetTrustCategoryHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	uid, ok := PathInt64(w, r, "uid")
	if !ok {
		return
	}
	category := r.PathValue("category")

	entries, err := h.trust.BuildTrustCategory(r.Context(), uid, category)
	if errors.Is(err, models.ErrUnknownCategory) {
		WriteError(w, http.StatusNotFound, "Unknown category: "+category)
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Int64("uid", uid).Str("category", category).Msg("Failed to build trust category")
		WriteNoContent(w)
		return
	}

	WriteJSON(w, http.StatusOK, entries)
}
