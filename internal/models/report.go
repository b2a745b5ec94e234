package models

import "time"

// AssessmentArea is one rated metric of a self-assessment report
type AssessmentArea struct {
	AreaType    string            `json:"area_type"`
	AreaName    string            `json:"area_name"`
	Value       *float64          `json:"value"`
	Denominator *float64          `json:"denominator"`
	Ratio       *float64          `json:"ratio"`
	Thresholds  []RatingThreshold `json:"thresholds"`
	Rating      *RatingThreshold  `json:"rating,omitempty"`
}

// SelfAssessmentReport is the full dashboard for one establishment
type SelfAssessmentReport struct {
	URN               int64       `json:"urn"`
	Name              string      `json:"name"`
	EstablishmentType FinanceType `json:"establishment_type"`
	IsFederation      bool        `json:"is_federation"`
	FederationUID     int64       `json:"federation_uid,omitempty"`
	TrustUID          int64       `json:"trust_uid,omitempty"`

	Phase        string `json:"phase"`
	OverallPhase string `json:"overall_phase"`
	HasSixthForm bool   `json:"has_sixth_form"`
	LondonWeight string `json:"london_weight"`

	NumberOfPupils *float64 `json:"number_of_pupils"`
	FSMPercentage  *float64 `json:"fsm_percentage"`

	OfstedRating         string     `json:"ofsted_rating"`
	OfstedInspectionDate *time.Time `json:"ofsted_inspection_date"`

	ProgressScore       *float64 `json:"progress_score"`
	ProgressScoreType   *string  `json:"progress_score_type"`
	Progress8Banding    *float64 `json:"progress_8_banding"`
	ProgressDescription string   `json:"progress_description"`

	// Raw measures as reported, whichever one ProgressScore selected
	Ks2Progress      *float64 `json:"ks2_progress"`
	Progress8Measure *float64 `json:"progress_8_measure"`

	TotalExpenditure *float64 `json:"total_expenditure"`
	TotalIncome      *float64 `json:"total_income"`
	TeachersTotal    *float64 `json:"teachers_total"`
	TeachersLeader   *float64 `json:"teachers_leader"`
	WorkforceTotal   *float64 `json:"workforce_total"`

	PeriodCoveredByReturn *int `json:"period_covered_by_return"`
	IsPartialYear         bool `json:"is_partial_year"`
	HasFinancialData      bool `json:"has_financial_data"`

	TermYears     string           `json:"term_years"`
	SizeLookup    *SizeLookup      `json:"size_lookup"`
	FSMLookup     *FSMLookup       `json:"fsm_lookup"`
	Areas         []AssessmentArea `json:"areas"`
	ScenarioTerms []string         `json:"scenario_terms"`
}

// Area returns the named assessment area, or nil when the report does not carry it
func (r *SelfAssessmentReport) Area(name string) *AssessmentArea {
	for i := range r.Areas {
		if r.Areas[i].AreaName == name {
			return &r.Areas[i]
		}
	}
	return nil
}

// AcademySummary is a roster entry for an academy listed but not assessed in a trust report
type AcademySummary struct {
	URN          int64  `json:"urn"`
	Name         string `json:"name"`
	OverallPhase string `json:"overall_phase"`
}

// TrustReport aggregates the reports of every assessed academy in a trust
type TrustReport struct {
	UID           int64                  `json:"uid"`
	TrustName     string                 `json:"trust_name"`
	CompanyNumber *int                   `json:"company_number"`
	Academies     []SelfAssessmentReport `json:"academies"`
	Roster        []AcademySummary       `json:"roster,omitempty"`
}

// TrustCategoryEntry is one academy's slice of a trust report for a single category.
// Exactly one of Area, Progress and Ofsted is set, by category.
type TrustCategoryEntry struct {
	URN      int64           `json:"urn"`
	Name     string          `json:"name"`
	Area     *AssessmentArea `json:"area,omitempty"`
	Progress *ProgressScore  `json:"progress,omitempty"`
	Ofsted   *OfstedSummary  `json:"ofsted,omitempty"`
}

// OfstedSummary is an academy's latest inspection outcome
type OfstedSummary struct {
	Rating         string     `json:"rating"`
	InspectionDate *time.Time `json:"inspection_date"`
}

// ProgressScore carries both progress measures for one academy with their descriptions
type ProgressScore struct {
	Progress8Score       *float64 `json:"progress_8_score"`
	Progress8Description string   `json:"progress_8_description"`
	Ks2Score             *float64 `json:"ks2_score"`
	Ks2ScoreDescription  string   `json:"ks2_score_description"`
}
