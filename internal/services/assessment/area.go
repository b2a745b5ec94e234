package assessment

import (
	"context"
	"fmt"

	"github.com/ternarybob/sfb/internal/interfaces"
	"github.com/ternarybob/sfb/internal/models"
)

// Ratio returns x/y, or nil when either figure is absent or y is zero
func Ratio(x, y *float64) *float64 {
	if x == nil || y == nil || *y == 0 {
		return nil
	}
	r := *x / *y
	return &r
}

// RatingFor returns the band with the greatest ScoreLow not above ratio.
// thresholds must be in ascending ScoreLow order. Nil when ratio is absent or below every band.
func RatingFor(thresholds []models.RatingThreshold, ratio *float64) *models.RatingThreshold {
	if ratio == nil {
		return nil
	}

	var rating *models.RatingThreshold
	for i := range thresholds {
		if thresholds[i].ScoreLow > *ratio {
			break
		}
		rating = &thresholds[i]
	}
	if rating == nil {
		return nil
	}

	band := *rating
	return &band
}

// BuildArea resolves one metric's thresholds and rates its ratio against them.
// Placeholder metrics pass nil value and denominator through unchanged.
func BuildArea(ctx context.Context, matcher interfaces.BenchmarkMatcher, spec AreaSpec, value, denominator *float64, keys models.PeerKeys) (models.AssessmentArea, error) {
	thresholds, err := matcher.ResolveThresholds(ctx, spec.Name, keys)
	if err != nil {
		return models.AssessmentArea{}, fmt.Errorf("build area %s: %w", spec.Name, err)
	}
	if thresholds == nil {
		thresholds = []models.RatingThreshold{}
	}

	ratio := Ratio(value, denominator)

	return models.AssessmentArea{
		AreaType:    spec.Type,
		AreaName:    spec.Name,
		Value:       value,
		Denominator: denominator,
		Ratio:       ratio,
		Thresholds:  thresholds,
		Rating:      RatingFor(thresholds, ratio),
	}, nil
}
