package assessment

import "github.com/ternarybob/sfb/internal/models"

// Area types group the catalogue on the dashboard
const (
	AreaTypeSpending        = "Spending"
	AreaTypeReserve         = "Reserve and balance"
	AreaTypeCharacteristics = "School characteristics"
)

// Area names as keyed in the rating threshold tables
const (
	AreaTeachingStaff         = "Teaching staff"
	AreaSupplyStaff           = "Supply staff"
	AreaEducationSupportStaff = "Education support staff"
	AreaAdminClericalStaff    = "Administrative and clerical staff"
	AreaOtherStaffCosts       = "Other staff costs"
	AreaPremisesCosts         = "Premises costs"
	AreaEducationalSupplies   = "Educational supplies"
	AreaEnergy                = "Energy"
	AreaInYearBalance         = "In-year balance"
	AreaRevenueReserve        = "Revenue reserve"
	AreaAverageTeacherCost    = "Average teacher cost"
	AreaSeniorLeaders         = "Senior leaders as a percentage of workforce"
	AreaPupilToTeacherRatio   = "Pupil to teacher ratio"
	AreaPupilToAdultRatio     = "Pupil to adult ratio"
	AreaTeacherContactRatio   = "Teacher contact ratio (less than 1)"
	AreaAverageClassSize      = "Average Class size"
	AreaPredictedPupilChange  = "Predicted percentage pupil number change in 3-5 years"
)

// figure reads one optional figure from a financial record
type figure func(r *models.FinancialRecord) *float64

// AreaSpec describes one metric of the fixed catalogue.
// Placeholder metrics have no Value/Denominator; their figures are computed downstream.
type AreaSpec struct {
	Type        string
	Name        string
	Value       figure
	Denominator figure

	// ExcludedPhases lists overall phases the metric is not reported for
	ExcludedPhases []string
}

// AppliesTo reports whether the metric is part of the catalogue for an overall phase
func (s AreaSpec) AppliesTo(overallPhase string) bool {
	for _, phase := range s.ExcludedPhases {
		if phase == overallPhase {
			return false
		}
	}
	return true
}

// Figures returns the raw value and denominator for a record; nil record or placeholder gives nils
func (s AreaSpec) Figures(record *models.FinancialRecord) (value, denominator *float64) {
	if record == nil {
		return nil, nil
	}
	if s.Value != nil {
		value = s.Value(record)
	}
	if s.Denominator != nil {
		denominator = s.Denominator(record)
	}
	return value, denominator
}

func totalExpenditure(r *models.FinancialRecord) *float64 { return r.TotalExpenditure }
func totalIncome(r *models.FinancialRecord) *float64      { return r.TotalIncome }

var classroomExcluded = []string{models.PhaseNursery, models.PhasePupilReferral, models.PhaseSpecial}

// Catalogue is the fixed, ordered metric list every report attempts
var Catalogue = []AreaSpec{
	{Type: AreaTypeSpending, Name: AreaTeachingStaff, Value: func(r *models.FinancialRecord) *float64 { return r.TeachingStaff }, Denominator: totalExpenditure},
	{Type: AreaTypeSpending, Name: AreaSupplyStaff, Value: func(r *models.FinancialRecord) *float64 { return r.SupplyStaff }, Denominator: totalExpenditure},
	{Type: AreaTypeSpending, Name: AreaEducationSupportStaff, Value: func(r *models.FinancialRecord) *float64 { return r.EducationSupportStaff }, Denominator: totalExpenditure},
	{Type: AreaTypeSpending, Name: AreaAdminClericalStaff, Value: func(r *models.FinancialRecord) *float64 { return r.AdministrativeClericalStaff }, Denominator: totalExpenditure},
	{Type: AreaTypeSpending, Name: AreaOtherStaffCosts, Value: func(r *models.FinancialRecord) *float64 { return r.OtherStaffCosts }, Denominator: totalExpenditure},
	{Type: AreaTypeSpending, Name: AreaPremisesCosts, Value: func(r *models.FinancialRecord) *float64 { return r.Premises }, Denominator: totalExpenditure},
	{Type: AreaTypeSpending, Name: AreaEducationalSupplies, Value: func(r *models.FinancialRecord) *float64 { return r.EducationalSupplies }, Denominator: totalExpenditure},
	{Type: AreaTypeSpending, Name: AreaEnergy, Value: func(r *models.FinancialRecord) *float64 { return r.Energy }, Denominator: totalExpenditure},

	{Type: AreaTypeReserve, Name: AreaInYearBalance, Value: func(r *models.FinancialRecord) *float64 { return r.InYearBalance }, Denominator: totalIncome},
	{Type: AreaTypeReserve, Name: AreaRevenueReserve, Value: func(r *models.FinancialRecord) *float64 { return r.RevenueReserve }, Denominator: totalIncome},

	{Type: AreaTypeCharacteristics, Name: AreaAverageTeacherCost},
	{Type: AreaTypeCharacteristics, Name: AreaSeniorLeaders},
	{Type: AreaTypeCharacteristics, Name: AreaPupilToTeacherRatio},
	{Type: AreaTypeCharacteristics, Name: AreaPupilToAdultRatio},
	{Type: AreaTypeCharacteristics, Name: AreaTeacherContactRatio, ExcludedPhases: classroomExcluded},
	{Type: AreaTypeCharacteristics, Name: AreaAverageClassSize, ExcludedPhases: classroomExcluded},
	{Type: AreaTypeCharacteristics, Name: AreaPredictedPupilChange},
}

// CatalogueFor returns the catalogue entries reported for an overall phase, in catalogue order
func CatalogueFor(overallPhase string) []AreaSpec {
	specs := make([]AreaSpec, 0, len(Catalogue))
	for _, spec := range Catalogue {
		if spec.AppliesTo(overallPhase) {
			specs = append(specs, spec)
		}
	}
	return specs
}

// LookupArea returns the catalogue entry with the given name
func LookupArea(name string) (AreaSpec, bool) {
	for _, spec := range Catalogue {
		if spec.Name == name {
			return spec, true
		}
	}
	return AreaSpec{}, false
}
