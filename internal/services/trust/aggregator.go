// Package trust builds trust-level reports from the reports of each academy in a trust.
package trust

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/sync/errgroup"

	"github.com/ternarybob/sfb/internal/common"
	"github.com/ternarybob/sfb/internal/interfaces"
	"github.com/ternarybob/sfb/internal/models"
	"github.com/ternarybob/sfb/internal/services/reportcache"
)

// Options controls trust aggregation
type Options struct {
	SixteenPlusPolicy string        // common.SixteenPlusExclude or common.SixteenPlusRoster
	Concurrency       int           // Academies assessed in parallel, <= 0 means sequential
	HotCount          int           // Leading academies cached with HotTTL
	HotTTL            time.Duration // TTL for academies at positions below HotCount
	ColdTTL           time.Duration // TTL for the remainder, zero means no expiry
}

// Aggregator implements interfaces.TrustService
type Aggregator struct {
	contexts   interfaces.ContextStorage
	financial  interfaces.FinancialStorage
	terms      interfaces.TermResolver
	assessment interfaces.AssessmentService
	cache      *reportcache.Store
	options    Options
	logger     arbor.ILogger
}

// NewAggregator creates a trust aggregator. cache may be nil to disable report caching.
func NewAggregator(
	contexts interfaces.ContextStorage,
	financial interfaces.FinancialStorage,
	terms interfaces.TermResolver,
	assessment interfaces.AssessmentService,
	cache *reportcache.Store,
	options Options,
	logger arbor.ILogger,
) *Aggregator {
	if options.Concurrency <= 0 {
		options.Concurrency = 1
	}
	if options.SixteenPlusPolicy == "" {
		options.SixteenPlusPolicy = common.SixteenPlusExclude
	}
	return &Aggregator{
		contexts:   contexts,
		financial:  financial,
		terms:      terms,
		assessment: assessment,
		cache:      cache,
		options:    options,
		logger:     logger,
	}
}

// ttlFor returns the cache TTL for an academy at a position in the trust's academy list
func (a *Aggregator) ttlFor(position int) time.Duration {
	if position < a.options.HotCount {
		return a.options.HotTTL
	}
	return a.options.ColdTTL
}

// isSixteenPlus reports whether an academy is out of scope for assessment
func isSixteenPlus(e *models.Establishment) bool {
	return e.OverallPhase == models.PhaseSixteenPlus || e.Phase == models.PhaseSixteenPlus
}

// BuildTrustReport assesses every in-scope academy of a trust, reusing cached reports
// built for the current term. Academies are returned ordered by name.
func (a *Aggregator) BuildTrustReport(ctx context.Context, uid int64) (*models.TrustReport, error) {
	academies, err := a.contexts.GetAcademiesByTrust(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("academies for trust %d: %w", uid, err)
	}
	if len(academies) == 0 {
		return nil, fmt.Errorf("trust %d: %w", uid, models.ErrNotFound)
	}

	report := &models.TrustReport{UID: uid}
	a.resolveIdentity(ctx, report, academies[0])

	assessed := make([]*models.Establishment, 0, len(academies))
	for _, academy := range academies {
		if !isSixteenPlus(academy) {
			assessed = append(assessed, academy)
			continue
		}
		if a.options.SixteenPlusPolicy == common.SixteenPlusRoster {
			report.Roster = append(report.Roster, models.AcademySummary{
				URN:          academy.URN,
				Name:         academy.Name,
				OverallPhase: academy.OverallPhase,
			})
		}
	}

	termLabels, err := a.termLabels(ctx, assessed)
	if err != nil {
		return nil, err
	}

	reports := make([]*models.SelfAssessmentReport, len(assessed))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.options.Concurrency)

	for i, academy := range assessed {
		g.Go(func() error {
			academyReport, err := a.academyReport(gctx, academy, termLabels[i], a.ttlFor(i))
			if err != nil {
				return err
			}
			reports[i] = academyReport
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("trust %d: %w", uid, err)
	}

	report.Academies = make([]models.SelfAssessmentReport, 0, len(reports))
	for _, academyReport := range reports {
		report.Academies = append(report.Academies, *academyReport)
	}
	sortByName(report.Academies)

	a.logger.Debug().
		Int64("uid", uid).
		Int("academies", len(report.Academies)).
		Int("roster", len(report.Roster)).
		Msg("Trust report built")

	return report, nil
}

// termLabels returns, per academy, the label of the latest term for the academy's own
// finance type. An unparseable finance type yields an empty label and is left to the builder.
func (a *Aggregator) termLabels(ctx context.Context, academies []*models.Establishment) ([]string, error) {
	byType := make(map[models.FinanceType]string)
	labels := make([]string, len(academies))

	for i, academy := range academies {
		financeType, err := models.ParseFinanceType(academy.FinanceType)
		if err != nil {
			continue
		}
		label, ok := byType[financeType]
		if !ok {
			term, err := a.terms.LatestTerm(ctx, financeType)
			if err != nil {
				return nil, err
			}
			label = a.terms.FormatTermLabel(term)
			byType[financeType] = label
		}
		labels[i] = label
	}
	return labels, nil
}

// academyReport returns the cached report for the current term or rebuilds and caches it
func (a *Aggregator) academyReport(ctx context.Context, academy *models.Establishment, termLabel string, ttl time.Duration) (*models.SelfAssessmentReport, error) {
	if termLabel != "" {
		if cached, ok := a.cache.Get(ctx, academy.URN, termLabel); ok {
			a.logger.Debug().Int64("urn", academy.URN).Msg("Academy report served from cache")
			return cached, nil
		}
	}

	report, err := a.assessment.BuildAcademyReport(ctx, academy)
	if err != nil {
		return nil, fmt.Errorf("academy %d: %w", academy.URN, err)
	}

	if err := a.cache.Put(ctx, report, ttl); err != nil {
		a.logger.Warn().Err(err).Int64("urn", academy.URN).Msg("Failed to cache academy report")
	}
	return report, nil
}

// resolveIdentity takes the trust name from the trust's latest MAT record, falling back
// to the name carried on the academy context records
func (a *Aggregator) resolveIdentity(ctx context.Context, report *models.TrustReport, first *models.Establishment) {
	report.TrustName = first.TrustName
	report.CompanyNumber = first.CompanyNumber

	term, err := a.terms.LatestTerm(ctx, models.FinanceTypeMAT)
	if err != nil {
		a.logger.Debug().Err(err).Int64("uid", report.UID).Msg("No MAT term, using context trust name")
		return
	}

	record, err := a.financial.GetTrustRecord(ctx, report.UID, term)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			a.logger.Warn().Err(err).Int64("uid", report.UID).Msg("Trust record fetch failed")
		}
		return
	}

	if record.TrustOrCompanyName != "" {
		report.TrustName = record.TrustOrCompanyName
	}
	if record.CompanyNumber != nil {
		report.CompanyNumber = record.CompanyNumber
	}
}

// sortByName orders reports by name, case-insensitively, with URN as tie-break
func sortByName(reports []models.SelfAssessmentReport) {
	sort.SliceStable(reports, func(i, j int) bool {
		ni, nj := strings.ToLower(reports[i].Name), strings.ToLower(reports[j].Name)
		if ni != nj {
			return ni < nj
		}
		return reports[i].URN < reports[j].URN
	})
}
