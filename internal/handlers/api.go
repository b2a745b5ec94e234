package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/sfb/internal/common"
)

// APIHandler serves the service endpoints that sit beside the report API
type APIHandler struct {
	cacheBackend string
	logger       arbor.ILogger
}

// NewAPIHandler creates the handler. cacheBackend is reported by the health endpoint.
func NewAPIHandler(cacheBackend string, logger arbor.ILogger) *APIHandler {
	return &APIHandler{
		cacheBackend: cacheBackend,
		logger:       logger,
	}
}

// VersionHandler reports the running build
func (h *APIHandler) VersionHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, common.CurrentBuild())
}

// HealthHandler answers liveness checks with the configured report cache backend
func (h *APIHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"status":       "ok",
		"report_cache": h.cacheBackend,
	})
}

// NotFoundHandler answers unrouted paths
func (h *APIHandler) NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	h.logger.Debug().Str("method", r.Method).Str("path", r.URL.Path).Msg("No route for request")
	WriteJSON(w, http.StatusNotFound, map[string]string{
		"error": "no such endpoint",
		"path":  r.URL.Path,
	})
}
