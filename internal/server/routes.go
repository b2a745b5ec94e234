package server

import (
	"net/http"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// API routes - Self-assessment dashboards
	mux.HandleFunc("/api/selfassessment/{urn}", s.app.SelfAssessmentHandler.GetSchoolHandler)                         // GET - school or federation
	mux.HandleFunc("/api/selfassessment/trust/{uid}", s.app.SelfAssessmentHandler.GetTrustHandler)                    // GET - trust aggregate
	mux.HandleFunc("/api/selfassessment/trust/{uid}/{category}", s.app.SelfAssessmentHandler.GetTrustCategoryHandler) // GET - one category across a trust

	// API routes - Efficiency metrics
	mux.HandleFunc("/api/efficiencymetric/{urn}", s.app.EfficiencyHandler.GetMetricHandler) // GET, HEAD

	// API routes - Establishment status checks
	mux.HandleFunc("/api/establishmentstatus/SchoolStatus/{urn}", s.app.StatusHandler.SchoolStatusHandler)
	mux.HandleFunc("/api/establishmentstatus/TrustStatus/{companyNo}", s.app.StatusHandler.TrustStatusHandler)
	mux.HandleFunc("/api/establishmentstatus/FederationStatus/{fuid}", s.app.StatusHandler.FederationStatusHandler)

	// API routes - Lookup tables
	mux.HandleFunc("/api/sadfsmlookupcontroller", s.app.LookupHandler.FSMLookupsHandler)
	mux.HandleFunc("/api/sadsizelookupcontroller", s.app.LookupHandler.SizeLookupsHandler)
	mux.HandleFunc("/api/sadtresholdscontroller", s.app.LookupHandler.ThresholdsHandler)

	// API routes - System
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)
	mux.HandleFunc("/api/health", s.app.APIHandler.HealthHandler)

	// 404 handler for unmatched API routes
	mux.HandleFunc("/", s.app.APIHandler.NotFoundHandler)

	return mux
}
