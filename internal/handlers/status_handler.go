package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/sfb/internal/interfaces"
)

// StatusHandler answers establishment status checks: 200 active, 204 inactive,
// 500 when the active id sets are unavailable
type StatusHandler struct {
	statusService interfaces.StatusService
	logger        arbor.ILogger
}

// NewStatusHandler creates a new StatusHandler
func NewStatusHandler(statusService interfaces.StatusService, logger arbor.ILogger) *StatusHandler {
	return &StatusHandler{
		statusService: statusService,
		logger:        logger,
	}
}

// SchoolStatusHandler handles GET /api/establishmentstatus/SchoolStatus/{urn}
func (h *StatusHandler) SchoolStatusHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	urn, ok := PathInt64(w, r, "urn")
	if !ok {
		return
	}

	active, err := h.statusService.IsSchoolActive(urn)
	h.writeStatus(w, "school", active, err)
}

// TrustStatusHandler handles GET /api/establishmentstatus/TrustStatus/{companyNo}
func (h *StatusHandler) TrustStatusHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	companyNumber, ok := PathInt64(w, r, "companyNo")
	if !ok {
		return
	}

	active, err := h.statusService.IsTrustActive(int(companyNumber))
	h.writeStatus(w, "trust", active, err)
}

// FederationStatusHandler handles GET /api/establishmentstatus/FederationStatus/{fuid}
func (h *StatusHandler) FederationStatusHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	fuid, ok := PathInt64(w, r, "fuid")
	if !ok {
		return
	}

	active, err := h.statusService.IsFederationActive(fuid)
	h.writeStatus(w, "federation", active, err)
}

func (h *StatusHandler) writeStatus(w http.ResponseWriter, kind string, active bool, err error) {
	switch {
	case err != nil:
		h.logger.Error().Err(err).Str("kind", kind).Msg("Establishment status check failed")
		w.WriteHeader(http.StatusInternalServerError)
	case active:
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}
