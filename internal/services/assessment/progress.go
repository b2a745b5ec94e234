package assessment

import "github.com/ternarybob/sfb/internal/models"

// Progress score types
const (
	ProgressTypeKS2        = "KS2 score"
	ProgressTypeP8         = "Progress 8 score"
	ProgressTypeAllThrough = "All-through"
)

const notApplicable = "n/a"

// ProgressScoreType classifies which progress measure applies. Rules are ordered and
// the first match wins; nil means no measure is reportable.
func ProgressScoreType(phase, overallPhase string, ks2, p8 *float64) *string {
	result := func(s string) *string { return &s }

	switch phase {
	case models.PhaseNursery, models.PhaseInfantAndJunior:
		if ks2 != nil {
			return result(ProgressTypeKS2)
		}
		return nil
	case models.PhaseSpecial, models.PhasePupilReferral:
		if p8 != nil {
			return result(ProgressTypeP8)
		}
		if ks2 != nil {
			return result(ProgressTypeKS2)
		}
		return nil
	}

	if overallPhase == models.PhaseAllThrough {
		return result(ProgressTypeAllThrough)
	}
	if overallPhase == models.PhaseSecondary {
		return result(ProgressTypeP8)
	}
	return result(ProgressTypeKS2)
}

// ProgressScore picks the figure matching a progress score type; All-through reports Progress 8
func ProgressScore(scoreType *string, ks2, p8 *float64) *float64 {
	if scoreType == nil {
		return nil
	}
	switch *scoreType {
	case ProgressTypeKS2:
		return ks2
	case ProgressTypeP8, ProgressTypeAllThrough:
		return p8
	}
	return nil
}

// Progress8Description maps a Progress 8 banding (5 lowest .. 1 highest, 0 unknown)
func Progress8Description(banding *float64) string {
	if banding == nil {
		return notApplicable
	}
	switch *banding {
	case 5:
		return "well below average"
	case 4:
		return "below average"
	case 3:
		return "average"
	case 2:
		return "above average"
	case 1:
		return "well above average"
	case 0:
		return "unknown"
	}
	return notApplicable
}

// Ks2Description maps a KS2 progress score onto its national comparison band
func Ks2Description(score *float64) string {
	if score == nil {
		return notApplicable
	}
	s := *score
	switch {
	case s < -3:
		return "well below average"
	case s < -2:
		return "below average"
	case s <= 2:
		return "average"
	case s <= 3:
		return "above average"
	default:
		return "well above average"
	}
}

// ProgressDescription describes a report's progress figure for its score type
func ProgressDescription(scoreType *string, ks2, p8Banding *float64) string {
	if scoreType == nil {
		return notApplicable
	}
	switch *scoreType {
	case ProgressTypeKS2:
		return Ks2Description(ks2)
	case ProgressTypeP8, ProgressTypeAllThrough:
		return Progress8Description(p8Banding)
	}
	return notApplicable
}
