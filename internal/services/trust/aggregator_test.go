package trust

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/sfb/internal/common"
	"github.com/ternarybob/sfb/internal/interfaces"
	"github.com/ternarybob/sfb/internal/models"
	"github.com/ternarybob/sfb/internal/services/assessment"
	"github.com/ternarybob/sfb/internal/services/reportcache"
	"github.com/ternarybob/sfb/internal/services/terms"
)

type fakeContextStorage struct {
	interfaces.ContextStorage
	academies map[int64][]*models.Establishment
	err       error
}

func (f *fakeContextStorage) GetAcademiesByTrust(ctx context.Context, uid int64) ([]*models.Establishment, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.academies[uid], nil
}

type fakeFinancialStorage struct {
	interfaces.FinancialStorage
	latest map[models.FinanceType]int
	trusts map[int64]*models.TrustFinancialRecord
}

func (f *fakeFinancialStorage) GetLatestDataYear(ctx context.Context, financeType models.FinanceType) (int, error) {
	term, ok := f.latest[financeType]
	if !ok {
		return 0, models.ErrDataUnavailable
	}
	return term, nil
}

func (f *fakeFinancialStorage) GetTrustRecord(ctx context.Context, uid int64, term int) (*models.TrustFinancialRecord, error) {
	if r, ok := f.trusts[uid]; ok && r.Term == term {
		return r, nil
	}
	return nil, models.ErrNotFound
}

// fakeAssessment builds a minimal report per academy and counts builds
type fakeAssessment struct {
	interfaces.AssessmentService
	termYears   string
	termsByType map[string]string // overrides termYears by academy finance type
	builds      atomic.Int32
	failURN     int64
}

func (f *fakeAssessment) BuildAcademyReport(ctx context.Context, academy *models.Establishment) (*models.SelfAssessmentReport, error) {
	f.builds.Add(1)
	if academy.URN == f.failURN {
		return nil, models.ErrDataUnavailable
	}
	termYears := f.termYears
	if override, ok := f.termsByType[academy.FinanceType]; ok {
		termYears = override
	}
	ks2 := 2.5
	scoreType := assessment.ProgressTypeKS2
	inspected := time.Date(2019, time.March, 14, 0, 0, 0, 0, time.UTC)
	report := &models.SelfAssessmentReport{
		URN:                  academy.URN,
		Name:                 academy.Name,
		EstablishmentType:    models.FinanceTypeAcademies,
		Phase:                academy.Phase,
		OverallPhase:         academy.OverallPhase,
		OfstedRating:         "Good",
		OfstedInspectionDate: &inspected,
		TermYears:            termYears,
		ProgressScoreType:    &scoreType,
		ProgressScore:        &ks2,
		Ks2Progress:          &ks2,
		Areas: []models.AssessmentArea{
			{AreaType: assessment.AreaTypeSpending, AreaName: assessment.AreaTeachingStaff, Thresholds: []models.RatingThreshold{}},
		},
	}

	// Special schools report both measures and are scored on Progress 8
	if academy.Phase == models.PhaseSpecial {
		ks2Special, p8, banding := 1.2, 0.3, 3.0
		p8Type := assessment.ProgressTypeP8
		report.ProgressScoreType = &p8Type
		report.ProgressScore = &p8
		report.Progress8Banding = &banding
		report.Ks2Progress = &ks2Special
		report.Progress8Measure = &p8
	}
	return report, nil
}

type cacheEntry struct {
	value []byte
	ttl   time.Duration
}

type memoryCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
}

func (m *memoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.entries[key]
	if !ok {
		return nil, models.ErrCacheMiss
	}
	return entry.value, nil
}

func (m *memoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = cacheEntry{value: value, ttl: ttl}
	return nil
}

func (m *memoryCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

func (m *memoryCache) Close() error { return nil }

// tenAcademyNames are listed out of alphabetical order
var tenAcademyNames = []string{
	"Willow Academy", "ash grove academy", "Maple Academy", "Beech Academy", "Oak Academy",
	"Yew Academy", "Cedar Academy", "Larch Academy", "Elm Academy", "Hazel Academy",
}

type fixture struct {
	contexts   *fakeContextStorage
	financial  *fakeFinancialStorage
	assessment *fakeAssessment
	cache      *memoryCache
}

func newFixture() *fixture {
	academies := make([]*models.Establishment, 0, len(tenAcademyNames))
	for i, name := range tenAcademyNames {
		academies = append(academies, &models.Establishment{
			URN:          int64(100 + i),
			Name:         name,
			Phase:        models.PhasePrimary,
			OverallPhase: models.PhasePrimary,
			FinanceType:  "Academies",
			TrustUID:     5001,
			TrustName:    "Context Trust Name",
		})
	}

	financial := &fakeFinancialStorage{
		latest: map[models.FinanceType]int{
			models.FinanceTypeMaintained: 2023,
			models.FinanceTypeAcademies:  2023,
			models.FinanceTypeMAT:        2023,
		},
		trusts: map[int64]*models.TrustFinancialRecord{
			5001: {UID: 5001, Term: 2023, TrustOrCompanyName: "Forest Learning Trust", CompanyNumber: intPtr(7654321)},
		},
	}

	return &fixture{
		contexts:   &fakeContextStorage{academies: map[int64][]*models.Establishment{5001: academies}},
		financial:  financial,
		assessment: &fakeAssessment{termYears: "2022/2023", failURN: -1},
		cache:      &memoryCache{entries: make(map[string]cacheEntry)},
	}
}

func intPtr(v int) *int { return &v }

func (f *fixture) aggregator(options Options) *Aggregator {
	logger := arbor.NewLogger()
	return NewAggregator(
		f.contexts,
		f.financial,
		terms.NewResolver(f.financial, logger),
		f.assessment,
		reportcache.NewStore(f.cache, "sad", logger),
		options,
		logger,
	)
}

func defaultOptions() Options {
	return Options{
		SixteenPlusPolicy: common.SixteenPlusExclude,
		Concurrency:       4,
		HotCount:          7,
		HotTTL:            time.Hour,
		ColdTTL:           0,
	}
}

func TestAggregator_TenAcademies(t *testing.T) {
	f := newFixture()
	aggregator := f.aggregator(defaultOptions())

	report, err := aggregator.BuildTrustReport(context.Background(), 5001)
	require.NoError(t, err)

	assert.Equal(t, int64(5001), report.UID)
	assert.Equal(t, "Forest Learning Trust", report.TrustName)
	require.NotNil(t, report.CompanyNumber)
	assert.Equal(t, 7654321, *report.CompanyNumber)

	names := make([]string, 0, len(report.Academies))
	for _, academy := range report.Academies {
		names = append(names, academy.Name)
	}
	assert.Equal(t, []string{
		"ash grove academy", "Beech Academy", "Cedar Academy", "Elm Academy", "Hazel Academy",
		"Larch Academy", "Maple Academy", "Oak Academy", "Willow Academy", "Yew Academy",
	}, names)

	// TTL follows list position, not output order
	require.Len(t, f.cache.entries, 10)
	for position := range tenAcademyNames {
		entry := f.cache.entries[fmt.Sprintf("sad:%d", 100+position)]
		if position < 7 {
			assert.Equal(t, time.Hour, entry.ttl, "position %d", position)
		} else {
			assert.Equal(t, time.Duration(0), entry.ttl, "position %d", position)
		}
	}
	assert.Equal(t, int32(10), f.assessment.builds.Load())
}

func TestAggregator_ReusesCachedReports(t *testing.T) {
	f := newFixture()
	aggregator := f.aggregator(defaultOptions())
	ctx := context.Background()

	first, err := aggregator.BuildTrustReport(ctx, 5001)
	require.NoError(t, err)
	second, err := aggregator.BuildTrustReport(ctx, 5001)
	require.NoError(t, err)

	assert.Equal(t, int32(10), f.assessment.builds.Load())
	assert.Equal(t, first.Academies, second.Academies)
}

func TestAggregator_RebuildsStaleTerm(t *testing.T) {
	f := newFixture()
	aggregator := f.aggregator(defaultOptions())
	ctx := context.Background()

	_, err := aggregator.BuildTrustReport(ctx, 5001)
	require.NoError(t, err)

	// a new academies term lands
	f.financial.latest[models.FinanceTypeAcademies] = 2024
	f.assessment.termYears = "2023/2024"

	report, err := aggregator.BuildTrustReport(ctx, 5001)
	require.NoError(t, err)

	assert.Equal(t, int32(20), f.assessment.builds.Load())
	for _, academy := range report.Academies {
		assert.Equal(t, "2023/2024", academy.TermYears)
	}
}

func TestAggregator_CacheTermFollowsAcademyFinanceType(t *testing.T) {
	f := newFixture()
	f.contexts.academies[5001][0].FinanceType = "Maintained"
	f.financial.latest[models.FinanceTypeMaintained] = 2022
	f.assessment.termsByType = map[string]string{"Maintained": "2021/2022"}
	aggregator := f.aggregator(defaultOptions())
	ctx := context.Background()

	_, err := aggregator.BuildTrustReport(ctx, 5001)
	require.NoError(t, err)
	report, err := aggregator.BuildTrustReport(ctx, 5001)
	require.NoError(t, err)

	assert.Equal(t, int32(10), f.assessment.builds.Load())
	for _, academy := range report.Academies {
		if academy.URN == 100 {
			assert.Equal(t, "2021/2022", academy.TermYears)
		} else {
			assert.Equal(t, "2022/2023", academy.TermYears)
		}
	}
}

func TestAggregator_SixteenPlusPolicy(t *testing.T) {
	tests := []struct {
		policy     string
		wantRoster int
	}{
		{common.SixteenPlusExclude, 0},
		{common.SixteenPlusRoster, 1},
	}

	for _, tt := range tests {
		t.Run(tt.policy, func(t *testing.T) {
			f := newFixture()
			academies := f.contexts.academies[5001]
			academies[3].OverallPhase = models.PhaseSixteenPlus
			academies[3].Phase = models.PhaseSixteenPlus

			options := defaultOptions()
			options.SixteenPlusPolicy = tt.policy
			report, err := f.aggregator(options).BuildTrustReport(context.Background(), 5001)
			require.NoError(t, err)

			assert.Len(t, report.Academies, 9)
			for _, academy := range report.Academies {
				assert.NotEqual(t, "Beech Academy", academy.Name)
			}
			require.Len(t, report.Roster, tt.wantRoster)
			if tt.wantRoster > 0 {
				assert.Equal(t, int64(103), report.Roster[0].URN)
			}
		})
	}
}

func TestAggregator_TrustNameFallback(t *testing.T) {
	f := newFixture()
	delete(f.financial.latest, models.FinanceTypeMAT)

	report, err := f.aggregator(defaultOptions()).BuildTrustReport(context.Background(), 5001)
	require.NoError(t, err)
	assert.Equal(t, "Context Trust Name", report.TrustName)
	assert.Nil(t, report.CompanyNumber)
}

func TestAggregator_Failures(t *testing.T) {
	t.Run("unknown trust", func(t *testing.T) {
		f := newFixture()
		_, err := f.aggregator(defaultOptions()).BuildTrustReport(context.Background(), 1)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("context fault", func(t *testing.T) {
		f := newFixture()
		f.contexts.err = errors.New("store offline")
		_, err := f.aggregator(defaultOptions()).BuildTrustReport(context.Background(), 5001)
		assert.Error(t, err)
	})

	t.Run("academies term unavailable", func(t *testing.T) {
		f := newFixture()
		delete(f.financial.latest, models.FinanceTypeAcademies)
		_, err := f.aggregator(defaultOptions()).BuildTrustReport(context.Background(), 5001)
		assert.ErrorIs(t, err, models.ErrDataUnavailable)
	})

	t.Run("academy build fault", func(t *testing.T) {
		f := newFixture()
		f.assessment.failURN = 104
		_, err := f.aggregator(defaultOptions()).BuildTrustReport(context.Background(), 5001)
		assert.ErrorIs(t, err, models.ErrDataUnavailable)
	})
}

func TestAggregator_WithoutCache(t *testing.T) {
	f := newFixture()
	logger := arbor.NewLogger()
	aggregator := NewAggregator(
		f.contexts, f.financial, terms.NewResolver(f.financial, logger), f.assessment,
		reportcache.NewStore(nil, "sad", logger), Options{}, logger,
	)
	ctx := context.Background()

	_, err := aggregator.BuildTrustReport(ctx, 5001)
	require.NoError(t, err)
	_, err = aggregator.BuildTrustReport(ctx, 5001)
	require.NoError(t, err)

	assert.Equal(t, int32(20), f.assessment.builds.Load())
}
