// Package terms resolves reporting terms per finance type and formats term labels.
package terms

import (
	"context"
	"fmt"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/sfb/internal/interfaces"
	"github.com/ternarybob/sfb/internal/models"
)

// scenarioTermsBefore and scenarioTermsAfter bound the scenario window around the latest Maintained term
const (
	scenarioTermsBefore = 1
	scenarioTermsAfter  = 3
)

// Resolver implements interfaces.TermResolver
type Resolver struct {
	financial interfaces.FinancialStorage
	logger    arbor.ILogger
}

// NewResolver creates a term resolver over the financial data store
func NewResolver(financial interfaces.FinancialStorage, logger arbor.ILogger) *Resolver {
	return &Resolver{
		financial: financial,
		logger:    logger,
	}
}

// LatestTerm returns the most recent reporting year loaded for a finance type.
// Fails with models.ErrDataUnavailable when no data exists for that type.
func (r *Resolver) LatestTerm(ctx context.Context, financeType models.FinanceType) (int, error) {
	term, err := r.financial.GetLatestDataYear(ctx, financeType)
	if err != nil {
		return 0, fmt.Errorf("latest term for %s: %w", financeType, err)
	}
	return term, nil
}

// FormatTermLabel renders a term as "{term-1}/{term}", e.g. 2023 -> "2022/2023"
func (r *Resolver) FormatTermLabel(term int) string {
	return FormatTermLabel(term)
}

// AvailableScenarioTerms returns the labels a user may model scenarios against.
// The window is always anchored on the latest Maintained term, whatever financeType is given.
func (r *Resolver) AvailableScenarioTerms(ctx context.Context, financeType models.FinanceType) ([]string, error) {
	latest, err := r.LatestTerm(ctx, models.FinanceTypeMaintained)
	if err != nil {
		return nil, err
	}

	labels := make([]string, 0, scenarioTermsBefore+scenarioTermsAfter+1)
	for term := latest - scenarioTermsBefore; term <= latest+scenarioTermsAfter; term++ {
		labels = append(labels, FormatTermLabel(term))
	}
	return labels, nil
}

// FormatTermLabel renders a term as "{term-1}/{term}" with whitespace removed
func FormatTermLabel(term int) string {
	return strings.Join(strings.Fields(fmt.Sprintf("%d/%d", term-1, term)), "")
}
