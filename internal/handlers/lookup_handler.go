package handlers

import (
	"errors"
	"net/http"
	"regexp"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/sfb/internal/interfaces"
	"github.com/ternarybob/sfb/internal/models"
)

var termLabelPattern = regexp.MustCompile(`^(\d{4})/(\d{4})$`)

// isTermLabel accepts "{term-1}/{term}" labels such as "2022/2023"
func isTermLabel(fl validator.FieldLevel) bool {
	m := termLabelPattern.FindStringSubmatch(fl.Field().String())
	if m == nil {
		return false
	}
	from, _ := strconv.Atoi(m[1])
	to, _ := strconv.Atoi(m[2])
	return to == from+1
}

// thresholdQuery is the query string of the thresholds endpoint
type thresholdQuery struct {
	AreaName     string `validate:"required"`
	OverallPhase string `validate:"required"`
	Has6Form     string `validate:"required,boolean"`
	LondonWeight string
	SizeType     string
	FSMScale     string
	TermYears    string `validate:"required,termlabel"`
}

// LookupHandler serves the peer-group reference tables
type LookupHandler struct {
	lookups  interfaces.LookupStorage
	matcher  interfaces.BenchmarkMatcher
	validate *validator.Validate
	logger   arbor.ILogger
}

// NewLookupHandler creates a new LookupHandler
func NewLookupHandler(lookups interfaces.LookupStorage, matcher interfaces.BenchmarkMatcher, logger arbor.ILogger) *LookupHandler {
	validate := validator.New()
	if err := validate.RegisterValidation("termlabel", isTermLabel); err != nil {
		panic(err)
	}

	return &LookupHandler{
		lookups:  lookups,
		matcher:  matcher,
		validate: validate,
		logger:   logger,
	}
}

// FSMLookupsHandler handles GET /api/sadfsmlookupcontroller
func (h *LookupHandler) FSMLookupsHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	rows, err := h.lookups.ListFSMLookups(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list FSM lookups")
		WriteNoContent(w)
		return
	}
	if rows == nil {
		rows = []*models.FSMLookup{}
	}

	WriteJSON(w, http.StatusOK, rows)
}

// SizeLookupsHandler handles GET /api/sadsizelookupcontroller
func (h *LookupHandler) SizeLookupsHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	rows, err := h.lookups.ListSizeLookups(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list size lookups")
		WriteNoContent(w)
		return
	}
	if rows == nil {
		rows = []*models.SizeLookup{}
	}

	WriteJSON(w, http.StatusOK, rows)
}

// ThresholdsHandler handles GET /api/sadtresholdscontroller and returns the rating bands
// for one metric and peer group in ascending ScoreLow order
func (h *LookupHandler) ThresholdsHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	q := r.URL.Query()
	query := thresholdQuery{
		AreaName:     q.Get("areaName"),
		OverallPhase: q.Get("overallPhase"),
		Has6Form:     q.Get("has6Form"),
		LondonWeight: q.Get("londonWeight"),
		SizeType:     q.Get("sizeType"),
		FSMScale:     q.Get("fsmScale"),
		TermYears:    q.Get("termYears"),
	}

	if err := h.validate.Struct(query); err != nil {
		writeValidationError(w, err)
		return
	}

	hasSixthForm, _ := strconv.ParseBool(query.Has6Form)
	keys := models.PeerKeys{
		OverallPhase: query.OverallPhase,
		HasSixthForm: hasSixthForm,
		LondonWeight: query.LondonWeight,
		TermYears:    query.TermYears,
	}
	if query.SizeType != "" {
		keys.SizeType = &query.SizeType
	}
	if query.FSMScale != "" {
		keys.FSMScale = &query.FSMScale
	}

	thresholds, err := h.matcher.ResolveThresholds(r.Context(), query.AreaName, keys)
	if err != nil {
		h.logger.Error().Err(err).Str("area", query.AreaName).Msg("Failed to resolve thresholds")
		WriteNoContent(w)
		return
	}

	WriteJSON(w, http.StatusOK, thresholds)
}

// writeValidationError answers 400 with the failing field and tag of each validation error
func writeValidationError(w http.ResponseWriter, err error) {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		WriteError(w, http.StatusBadRequest, "Invalid query")
		return
	}

	fields := make(map[string]string, len(ve))
	for _, fieldErr := range ve {
		fields[fieldErr.Field()] = fieldErr.Tag()
	}

	WriteJSON(w, http.StatusBadRequest, map[string]interface{}{
		"status": "error",
		"error":  "Invalid query",
		"fields": fields,
	})
}
