// Package assessment builds self-assessment dashboard reports for single establishments.
package assessment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/sfb/internal/interfaces"
	"github.com/ternarybob/sfb/internal/models"
)

// ofstedDateLayout is the dd/MM/yyyy format of inspection dates in context records
const ofstedDateLayout = "02/01/2006"

// Builder implements interfaces.AssessmentService
type Builder struct {
	contexts         interfaces.ContextStorage
	financial        interfaces.FinancialStorage
	terms            interfaces.TermResolver
	matcher          interfaces.BenchmarkMatcher
	centralFinancing models.CentralFinancing
	logger           arbor.ILogger
}

// NewBuilder creates a report builder
func NewBuilder(
	contexts interfaces.ContextStorage,
	financial interfaces.FinancialStorage,
	terms interfaces.TermResolver,
	matcher interfaces.BenchmarkMatcher,
	centralFinancing models.CentralFinancing,
	logger arbor.ILogger,
) *Builder {
	if centralFinancing == "" {
		centralFinancing = models.CentralFinancingInclude
	}
	return &Builder{
		contexts:         contexts,
		financial:        financial,
		terms:            terms,
		matcher:          matcher,
		centralFinancing: centralFinancing,
		logger:           logger,
	}
}

// buildContext carries everything fetched once per report into each area build
type buildContext struct {
	establishment *models.Establishment
	financeType   models.FinanceType
	term          int
	termLabel     string
	record        *models.FinancialRecord // nil in context-only reports
}

// peer-group attributes prefer the financial record and fall back to context
func (bc *buildContext) overallPhase() string {
	if bc.record != nil && bc.record.OverallPhase != "" {
		return bc.record.OverallPhase
	}
	return bc.establishment.OverallPhase
}

func (bc *buildContext) phase() string {
	if bc.record != nil && bc.record.Phase != "" {
		return bc.record.Phase
	}
	return bc.establishment.Phase
}

func (bc *buildContext) hasSixthForm() bool {
	if bc.record != nil {
		return bc.record.Has6Form
	}
	return bc.establishment.HasSixthForm
}

func (bc *buildContext) londonWeight() string {
	if bc.record != nil && bc.record.LondonWeight != "" {
		return bc.record.LondonWeight
	}
	return bc.establishment.LondonWeight
}

func (bc *buildContext) pupils() *float64 {
	if bc.record != nil {
		return bc.record.NoPupils
	}
	return bc.establishment.NumberOfPupils
}

func (bc *buildContext) fsm() *float64 {
	if bc.record != nil {
		return bc.record.PercentageFSM
	}
	return nil
}

func (bc *buildContext) name() string {
	if bc.establishment.IsFederation {
		return bc.establishment.DisplayName()
	}
	if bc.record != nil && bc.record.SchoolName != "" {
		return bc.record.SchoolName
	}
	return bc.establishment.Name
}

// BuildSchoolReport builds the report for a URN. Identifiers not found among schools are
// tried as federation UIDs.
func (b *Builder) BuildSchoolReport(ctx context.Context, urn int64) (*models.SelfAssessmentReport, error) {
	establishment, err := b.contexts.GetSchool(ctx, urn)
	if errors.Is(err, models.ErrNotFound) {
		establishment, err = b.contexts.GetFederation(ctx, urn)
	}
	if err != nil {
		return nil, fmt.Errorf("resolve establishment %d: %w", urn, err)
	}
	return b.build(ctx, establishment)
}

// BuildFederationReport builds the report for a federation entity
func (b *Builder) BuildFederationReport(ctx context.Context, fuid int64) (*models.SelfAssessmentReport, error) {
	establishment, err := b.contexts.GetFederation(ctx, fuid)
	if err != nil {
		return nil, fmt.Errorf("resolve federation %d: %w", fuid, err)
	}
	return b.build(ctx, establishment)
}

// BuildAcademyReport builds the report for an already resolved establishment
func (b *Builder) BuildAcademyReport(ctx context.Context, academy *models.Establishment) (*models.SelfAssessmentReport, error) {
	return b.build(ctx, academy)
}

func (b *Builder) build(ctx context.Context, establishment *models.Establishment) (*models.SelfAssessmentReport, error) {
	bc := &buildContext{establishment: establishment}

	// Resolve identity and finance type
	recordID := establishment.URN
	if establishment.IsFederation {
		bc.financeType = models.FinanceTypeFederation
		recordID = establishment.FederationUID
	} else {
		financeType, err := models.ParseFinanceType(establishment.FinanceType)
		if err != nil {
			return nil, fmt.Errorf("establishment %d: %w", establishment.URN, err)
		}
		bc.financeType = financeType
	}

	// Resolve term
	term, err := b.terms.LatestTerm(ctx, bc.financeType)
	if err != nil {
		return nil, err
	}
	bc.term = term
	bc.termLabel = b.terms.FormatTermLabel(term)

	// Fetch financial record; absence degrades to a context-only report
	record, err := b.financial.GetSchoolRecord(ctx, recordID, term, bc.financeType, b.centralFinancing)
	switch {
	case err == nil:
		bc.record = record
	case errors.Is(err, models.ErrNotFound):
		b.logger.Debug().
			Int64("id", recordID).
			Str("finance_type", bc.financeType.String()).
			Str("term", bc.termLabel).
			Msg("No financial record, building context-only report")
	default:
		b.logger.Warn().
			Err(err).
			Int64("id", recordID).
			Str("finance_type", bc.financeType.String()).
			Msg("Financial record fetch failed, building context-only report")
	}

	report := b.identity(bc)

	scenarioTerms, err := b.terms.AvailableScenarioTerms(ctx, bc.financeType)
	if err != nil {
		b.logger.Warn().Err(err).Int64("urn", establishment.URN).Msg("Scenario terms unavailable")
		scenarioTerms = []string{}
	}
	report.ScenarioTerms = scenarioTerms

	// Compute peer bands
	sizeBand, err := b.matcher.MatchSizeBand(ctx, bc.overallPhase(), bc.hasSixthForm(), bc.pupils(), bc.termLabel)
	if err != nil {
		return nil, err
	}
	fsmBand, err := b.matcher.MatchFSMBand(ctx, bc.overallPhase(), bc.hasSixthForm(), bc.fsm(), bc.termLabel)
	if err != nil {
		return nil, err
	}
	report.SizeLookup = sizeBand
	report.FSMLookup = fsmBand

	keys := models.PeerKeys{
		OverallPhase: bc.overallPhase(),
		HasSixthForm: bc.hasSixthForm(),
		LondonWeight: bc.londonWeight(),
		TermYears:    bc.termLabel,
	}
	if sizeBand != nil {
		keys.SizeType = &sizeBand.SizeType
	}
	if fsmBand != nil {
		keys.FSMScale = &fsmBand.FSMScale
	}

	// Build fixed metric catalogue
	specs := CatalogueFor(bc.overallPhase())
	report.Areas = make([]models.AssessmentArea, 0, len(specs))
	for _, spec := range specs {
		value, denominator := spec.Figures(bc.record)
		area, err := BuildArea(ctx, b.matcher, spec, value, denominator, keys)
		if err != nil {
			return nil, err
		}
		report.Areas = append(report.Areas, area)
	}

	return report, nil
}

// identity fills the report header from context and, when present, the financial record
func (b *Builder) identity(bc *buildContext) *models.SelfAssessmentReport {
	e := bc.establishment

	report := &models.SelfAssessmentReport{
		URN:                  e.URN,
		Name:                 bc.name(),
		EstablishmentType:    bc.financeType,
		IsFederation:         e.IsFederation,
		FederationUID:        e.FederationUID,
		TrustUID:             e.TrustUID,
		Phase:                bc.phase(),
		OverallPhase:         bc.overallPhase(),
		HasSixthForm:         bc.hasSixthForm(),
		LondonWeight:         bc.londonWeight(),
		NumberOfPupils:       bc.pupils(),
		FSMPercentage:        bc.fsm(),
		OfstedRating:         e.OfstedRating,
		OfstedInspectionDate: ParseOfstedDate(e.OfstedLastInspection),
		ProgressDescription:  notApplicable,
		TermYears:            bc.termLabel,
	}
	if e.IsFederation {
		report.URN = e.FederationUID
	}

	r := bc.record
	if r == nil {
		return report
	}

	report.HasFinancialData = true
	report.TotalExpenditure = r.TotalExpenditure
	report.TotalIncome = r.TotalIncome
	report.TeachersTotal = r.TeachersTotal
	report.TeachersLeader = r.TeachersLeader
	report.WorkforceTotal = r.WorkforceTotal
	report.PeriodCoveredByReturn = r.PeriodCoveredByReturn
	report.IsPartialYear = r.PeriodCoveredByReturn != nil && *r.PeriodCoveredByReturn < 12

	scoreType := ProgressScoreType(bc.phase(), bc.overallPhase(), r.Ks2Progress, r.Progress8Measure)
	report.ProgressScoreType = scoreType
	report.ProgressScore = ProgressScore(scoreType, r.Ks2Progress, r.Progress8Measure)
	report.Progress8Banding = r.Progress8Banding
	report.Ks2Progress = r.Ks2Progress
	report.Progress8Measure = r.Progress8Measure
	report.ProgressDescription = ProgressDescription(scoreType, r.Ks2Progress, r.Progress8Banding)

	return report
}

// ParseOfstedDate parses a dd/MM/yyyy inspection date; blank or malformed input gives nil
func ParseOfstedDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.Parse(ofstedDateLayout, value)
	if err != nil {
		return nil
	}
	return &t
}
