package trust

import (
	"context"
	"fmt"

	"github.com/ternarybob/sfb/internal/models"
	"github.com/ternarybob/sfb/internal/services/assessment"
)

// Categories that carry something other than an assessment area
const (
	CategoryKs2Score       = "ks2-score"
	CategoryProgress8Score = "progress8-score"
	CategoryOfstedRating   = "ofsted-rating"
)

// categoryAreas maps URL categories to catalogue area names
var categoryAreas = map[string]string{
	"in-year-balance":          assessment.AreaInYearBalance,
	"revenue-reserve":          assessment.AreaRevenueReserve,
	"teaching-staff":           assessment.AreaTeachingStaff,
	"supply-staff":             assessment.AreaSupplyStaff,
	"education-support-staff":  assessment.AreaEducationSupportStaff,
	"admin-and-clerical-staff": assessment.AreaAdminClericalStaff,
	"other-staff-costs":        assessment.AreaOtherStaffCosts,
	"premises-costs":           assessment.AreaPremisesCosts,
	"educational-supplies":     assessment.AreaEducationalSupplies,
	"energy":                   assessment.AreaEnergy,
	"average-teacher-cost":     assessment.AreaAverageTeacherCost,
	"senior-leaders":           assessment.AreaSeniorLeaders,
	"pupil-to-teacher-ratio":   assessment.AreaPupilToTeacherRatio,
	"pupil-to-adult-ratio":     assessment.AreaPupilToAdultRatio,
}

// IsCategory reports whether category names a trust report slice
func IsCategory(category string) bool {
	switch category {
	case CategoryKs2Score, CategoryProgress8Score, CategoryOfstedRating:
		return true
	}
	_, ok := categoryAreas[category]
	return ok
}

// BuildTrustCategory returns one category of the trust report for each academy, in report order.
// Academies whose report does not carry the category's area get an entry without an area.
func (a *Aggregator) BuildTrustCategory(ctx context.Context, uid int64, category string) ([]models.TrustCategoryEntry, error) {
	if !IsCategory(category) {
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownCategory, category)
	}

	report, err := a.BuildTrustReport(ctx, uid)
	if err != nil {
		return nil, err
	}

	entries := make([]models.TrustCategoryEntry, 0, len(report.Academies))
	for i := range report.Academies {
		academy := &report.Academies[i]
		entry := models.TrustCategoryEntry{URN: academy.URN, Name: academy.Name}

		switch category {
		case CategoryKs2Score, CategoryProgress8Score:
			progress := progressOf(academy)
			entry.Progress = &progress
		case CategoryOfstedRating:
			entry.Ofsted = &models.OfstedSummary{
				Rating:         academy.OfstedRating,
				InspectionDate: academy.OfstedInspectionDate,
			}
		default:
			entry.Area = academy.Area(categoryAreas[category])
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// progressOf reports both raw progress measures, independent of the report's score type
func progressOf(report *models.SelfAssessmentReport) models.ProgressScore {
	return models.ProgressScore{
		Progress8Score:       report.Progress8Measure,
		Progress8Description: assessment.Progress8Description(report.Progress8Banding),
		Ks2Score:             report.Ks2Progress,
		Ks2ScoreDescription:  assessment.Ks2Description(report.Ks2Progress),
	}
}
