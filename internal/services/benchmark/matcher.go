// Package benchmark selects the peer-group rows a report is rated against.
package benchmark

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/sfb/internal/interfaces"
	"github.com/ternarybob/sfb/internal/models"
)

// Matcher implements interfaces.BenchmarkMatcher over the lookup tables
type Matcher struct {
	lookups interfaces.LookupStorage
	logger  arbor.ILogger
}

// NewMatcher creates a benchmark matcher
func NewMatcher(lookups interfaces.LookupStorage, logger arbor.ILogger) *Matcher {
	return &Matcher{
		lookups: lookups,
		logger:  logger,
	}
}

// MatchSizeBand returns the size band whose pupil range contains pupils, or nil when
// pupils is absent or no row matches. The first matching row wins.
func (m *Matcher) MatchSizeBand(ctx context.Context, overallPhase string, hasSixthForm bool, pupils *float64, termLabel string) (*models.SizeLookup, error) {
	if pupils == nil {
		return nil, nil
	}

	rows, err := m.lookups.GetSizeLookups(ctx, overallPhase, hasSixthForm, termLabel)
	if err != nil {
		return nil, fmt.Errorf("size band lookup: %w", err)
	}

	for _, row := range rows {
		if row.Contains(*pupils) {
			return row, nil
		}
	}

	m.logger.Debug().
		Str("overall_phase", overallPhase).
		Bool("has_sixth_form", hasSixthForm).
		Str("term", termLabel).
		Msg("No size band matched")

	return nil, nil
}

// MatchFSMBand returns the FSM band whose inclusive range contains fsm, or nil.
// Band bounds are published to two decimal places (10 then 10.01), so fsm is rounded
// to that precision before matching.
func (m *Matcher) MatchFSMBand(ctx context.Context, overallPhase string, hasSixthForm bool, fsm *float64, termLabel string) (*models.FSMLookup, error) {
	if fsm == nil {
		return nil, nil
	}

	rows, err := m.lookups.GetFSMLookups(ctx, overallPhase, hasSixthForm, termLabel)
	if err != nil {
		return nil, fmt.Errorf("fsm band lookup: %w", err)
	}

	rounded := math.Round(*fsm*100) / 100
	for _, row := range rows {
		if row.Contains(rounded) {
			return row, nil
		}
	}

	m.logger.Debug().
		Str("overall_phase", overallPhase).
		Bool("has_sixth_form", hasSixthForm).
		Float64("fsm", *fsm).
		Str("term", termLabel).
		Msg("No FSM band matched")

	return nil, nil
}

// ResolveThresholds returns the rating bands for a metric in ascending ScoreLow order.
// Rows with equal ScoreLow keep their storage order. An empty result is valid.
func (m *Matcher) ResolveThresholds(ctx context.Context, metric string, keys models.PeerKeys) ([]models.RatingThreshold, error) {
	rows, err := m.lookups.GetThresholds(ctx, metric, keys)
	if err != nil {
		return nil, fmt.Errorf("thresholds for %s: %w", metric, err)
	}

	thresholds := make([]models.RatingThreshold, 0, len(rows))
	for _, row := range rows {
		thresholds = append(thresholds, *row)
	}
	sort.SliceStable(thresholds, func(i, j int) bool {
		return thresholds[i].ScoreLow < thresholds[j].ScoreLow
	})

	return thresholds, nil
}
