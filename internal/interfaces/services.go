package interfaces

import (
	"context"

	"github.com/ternarybob/sfb/internal/models"
)

// TermResolver resolves the latest reporting term per finance type
type TermResolver interface {
	LatestTerm(ctx context.Context, financeType models.FinanceType) (int, error)
	FormatTermLabel(term int) string
	AvailableScenarioTerms(ctx context.Context, financeType models.FinanceType) ([]string, error)
}

// BenchmarkMatcher selects peer-group lookup rows and rating thresholds
type BenchmarkMatcher interface {
	MatchSizeBand(ctx context.Context, overallPhase string, hasSixthForm bool, pupils *float64, termLabel string) (*models.SizeLookup, error)
	MatchFSMBand(ctx context.Context, overallPhase string, hasSixthForm bool, fsm *float64, termLabel string) (*models.FSMLookup, error)
	ResolveThresholds(ctx context.Context, metric string, keys models.PeerKeys) ([]models.RatingThreshold, error)
}

// AssessmentService builds self-assessment reports for single establishments
type AssessmentService interface {
	BuildSchoolReport(ctx context.Context, urn int64) (*models.SelfAssessmentReport, error)
	BuildFederationReport(ctx context.Context, fuid int64) (*models.SelfAssessmentReport, error)
	BuildAcademyReport(ctx context.Context, academy *models.Establishment) (*models.SelfAssessmentReport, error)
}

// TrustService builds trust-level aggregate reports
type TrustService interface {
	BuildTrustReport(ctx context.Context, uid int64) (*models.TrustReport, error)
	BuildTrustCategory(ctx context.Context, uid int64, category string) ([]models.TrustCategoryEntry, error)
}

// StatusService answers whether an establishment is currently active
type StatusService interface {
	IsSchoolActive(urn int64) (bool, error)
	IsTrustActive(companyNumber int) (bool, error)
	IsFederationActive(fuid int64) (bool, error)
	Refresh(ctx context.Context) error
}

// EfficiencyService returns efficiency metric documents
type EfficiencyService interface {
	GetMetric(ctx context.Context, urn int64) (*models.EfficiencyMetric, error)
}
