package badger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/sfb/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

func newTestDB(t *testing.T) *BadgerDB {
	t.Helper()

	tmpDir := t.TempDir()
	options := badgerhold.DefaultOptions
	options.Dir = tmpDir
	options.ValueDir = tmpDir
	options.Logger = nil

	store, err := badgerhold.Open(options)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return &BadgerDB{store: store}
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
func strPtr(v string) *string     { return &v }

func TestContextStorage(t *testing.T) {
	ctx := context.Background()
	storage := NewContextStorage(newTestDB(t), arbor.NewLogger())

	schools := []*models.Establishment{
		{URN: 3, Name: "Gamma Academy", TrustUID: 500, CompanyNumber: intPtr(777), Active: true},
		{URN: 1, Name: "Alpha Academy", TrustUID: 500, CompanyNumber: intPtr(777), Active: true},
		{URN: 2, Name: "Beta School", Active: false},
		{URN: 4, Name: "Delta Federated School", FederationUID: 9001, Active: true},
		{Name: "Delta Federation", IsFederation: true, FederationUID: 9001, FederationName: "Delta Federation", Active: true},
	}
	for _, s := range schools {
		require.NoError(t, storage.SaveEstablishment(ctx, s))
	}

	t.Run("get school", func(t *testing.T) {
		school, err := storage.GetSchool(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, "Beta School", school.Name)
	})

	t.Run("missing school wraps ErrNotFound", func(t *testing.T) {
		_, err := storage.GetSchool(ctx, 42)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("federation is keyed apart from member schools", func(t *testing.T) {
		federation, err := storage.GetFederation(ctx, 9001)
		require.NoError(t, err)
		assert.Equal(t, "Delta Federation", federation.DisplayName())

		member, err := storage.GetSchool(ctx, 4)
		require.NoError(t, err)
		assert.Equal(t, "Delta Federated School", member.Name)
	})

	t.Run("academies by trust ordered by urn", func(t *testing.T) {
		academies, err := storage.GetAcademiesByTrust(ctx, 500)
		require.NoError(t, err)
		require.Len(t, academies, 2)
		assert.Equal(t, int64(1), academies[0].URN)
		assert.Equal(t, int64(3), academies[1].URN)
	})

	t.Run("active id sets", func(t *testing.T) {
		urns, err := storage.ListActiveURNs(ctx)
		require.NoError(t, err)
		assert.ElementsMatch(t, []int64{1, 3, 4}, urns)

		companies, err := storage.ListActiveCompanyNumbers(ctx)
		require.NoError(t, err)
		assert.Equal(t, []int{777}, companies)

		fuids, err := storage.ListActiveFederationUIDs(ctx)
		require.NoError(t, err)
		assert.Equal(t, []int64{9001}, fuids)
	})

	t.Run("save requires identity", func(t *testing.T) {
		err := storage.SaveEstablishment(ctx, &models.Establishment{Name: "Nameless"})
		assert.Error(t, err)
	})
}

func TestFinancialStorage(t *testing.T) {
	ctx := context.Background()
	storage := NewFinancialStorage(newTestDB(t), arbor.NewLogger())

	t.Run("latest data year missing is DataUnavailable", func(t *testing.T) {
		_, err := storage.GetLatestDataYear(ctx, models.FinanceTypeMAT)
		assert.ErrorIs(t, err, models.ErrDataUnavailable)
	})

	t.Run("latest data year per finance type", func(t *testing.T) {
		require.NoError(t, storage.SetLatestDataYear(ctx, models.FinanceTypeMaintained, 2023))
		require.NoError(t, storage.SetLatestDataYear(ctx, models.FinanceTypeAcademies, 2022))

		term, err := storage.GetLatestDataYear(ctx, models.FinanceTypeMaintained)
		require.NoError(t, err)
		assert.Equal(t, 2023, term)

		term, err = storage.GetLatestDataYear(ctx, models.FinanceTypeAcademies)
		require.NoError(t, err)
		assert.Equal(t, 2022, term)
	})

	t.Run("academy records split by central financing", func(t *testing.T) {
		require.NoError(t, storage.SaveSchoolRecord(ctx, &models.FinancialRecord{
			ID: 100, FinanceType: models.FinanceTypeAcademies, Term: 2022, TotalIncome: floatPtr(1000),
		}))
		require.NoError(t, storage.SaveSchoolRecord(ctx, &models.FinancialRecord{
			ID: 100, FinanceType: models.FinanceTypeAcademies, Term: 2022,
			CentralFinancing: models.CentralFinancingExclude, TotalIncome: floatPtr(900),
		}))

		included, err := storage.GetSchoolRecord(ctx, 100, 2022, models.FinanceTypeAcademies, models.CentralFinancingInclude)
		require.NoError(t, err)
		assert.Equal(t, 1000.0, *included.TotalIncome)

		excluded, err := storage.GetSchoolRecord(ctx, 100, 2022, models.FinanceTypeAcademies, models.CentralFinancingExclude)
		require.NoError(t, err)
		assert.Equal(t, 900.0, *excluded.TotalIncome)
	})

	t.Run("maintained records ignore central financing", func(t *testing.T) {
		require.NoError(t, storage.SaveSchoolRecord(ctx, &models.FinancialRecord{
			ID: 200, FinanceType: models.FinanceTypeMaintained, Term: 2023, TotalIncome: floatPtr(500),
		}))

		record, err := storage.GetSchoolRecord(ctx, 200, 2023, models.FinanceTypeMaintained, models.CentralFinancingExclude)
		require.NoError(t, err)
		assert.Equal(t, 500.0, *record.TotalIncome)

		_, err = storage.GetSchoolRecord(ctx, 200, 2022, models.FinanceTypeMaintained, models.CentralFinancingInclude)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("unknown finance type rejected", func(t *testing.T) {
		err := storage.SaveSchoolRecord(ctx, &models.FinancialRecord{ID: 1, FinanceType: "Free school", Term: 2023})
		assert.ErrorIs(t, err, models.ErrUnknownFinanceType)
	})

	t.Run("trust record", func(t *testing.T) {
		require.NoError(t, storage.SaveTrustRecord(ctx, &models.TrustFinancialRecord{
			UID: 500, Term: 2022, TrustOrCompanyName: "Example Trust", CompanyNumber: intPtr(777),
		}))

		record, err := storage.GetTrustRecord(ctx, 500, 2022)
		require.NoError(t, err)
		assert.Equal(t, "Example Trust", record.TrustOrCompanyName)

		_, err = storage.GetTrustRecord(ctx, 500, 2021)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestLookupStorage(t *testing.T) {
	ctx := context.Background()
	storage := NewLookupStorage(newTestDB(t), arbor.NewLogger())

	sizeRows := []*models.SizeLookup{
		{OverallPhase: "Primary", TermYears: "2022/2023", NoPupilsMin: 301, SizeType: "large"},
		{OverallPhase: "Primary", TermYears: "2022/2023", NoPupilsMin: 0, NoPupilsMax: floatPtr(150), SizeType: "small"},
		{OverallPhase: "Primary", TermYears: "2022/2023", NoPupilsMin: 151, NoPupilsMax: floatPtr(300), SizeType: "medium"},
		{OverallPhase: "Primary", TermYears: "2021/2022", NoPupilsMin: 0, SizeType: "old"},
		{OverallPhase: "Secondary", HasSixthForm: true, TermYears: "2022/2023", NoPupilsMin: 0, SizeType: "any"},
	}
	for _, row := range sizeRows {
		require.NoError(t, storage.SaveSizeLookup(ctx, row))
	}

	t.Run("size lookups filtered and ordered", func(t *testing.T) {
		rows, err := storage.GetSizeLookups(ctx, "Primary", false, "2022/2023")
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, "small", rows[0].SizeType)
		assert.Equal(t, "medium", rows[1].SizeType)
		assert.Equal(t, "large", rows[2].SizeType)
	})

	t.Run("list all size lookups", func(t *testing.T) {
		rows, err := storage.ListSizeLookups(ctx)
		require.NoError(t, err)
		assert.Len(t, rows, 5)
	})

	t.Run("fsm lookups", func(t *testing.T) {
		require.NoError(t, storage.SaveFSMLookup(ctx, &models.FSMLookup{OverallPhase: "Primary", TermYears: "2022/2023", FSMMin: 20, FSMMax: 100, FSMScale: "high"}))
		require.NoError(t, storage.SaveFSMLookup(ctx, &models.FSMLookup{OverallPhase: "Primary", TermYears: "2022/2023", FSMMin: 0, FSMMax: 19.99, FSMScale: "low"}))

		rows, err := storage.GetFSMLookups(ctx, "Primary", false, "2022/2023")
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "low", rows[0].FSMScale)

		all, err := storage.ListFSMLookups(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("thresholds match the full key tuple", func(t *testing.T) {
		base := models.RatingThreshold{
			AreaName: "Teaching staff", OverallPhase: "Primary", LondonWeight: "Neither",
			SizeType: "small", FSMScale: "low", TermYears: "2022/2023",
		}
		for i, low := range []float64{0.6, 0, 0.5} {
			row := base
			row.ScoreLow = low
			row.Rating = []string{"red", "green", "amber"}[i]
			require.NoError(t, storage.SaveThreshold(ctx, &row))
		}
		unkeyed := base
		unkeyed.SizeType = ""
		unkeyed.FSMScale = ""
		unkeyed.Rating = "grey"
		require.NoError(t, storage.SaveThreshold(ctx, &unkeyed))

		keys := models.PeerKeys{
			OverallPhase: "Primary", LondonWeight: "Neither",
			SizeType: strPtr("small"), FSMScale: strPtr("low"), TermYears: "2022/2023",
		}
		rows, err := storage.GetThresholds(ctx, "Teaching staff", keys)
		require.NoError(t, err)
		assert.Len(t, rows, 3)

		keys.SizeType = nil
		keys.FSMScale = nil
		rows, err = storage.GetThresholds(ctx, "Teaching staff", keys)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "grey", rows[0].Rating)

		keys.TermYears = "2020/2021"
		rows, err = storage.GetThresholds(ctx, "Teaching staff", keys)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("thresholds sharing a lower bound are both kept", func(t *testing.T) {
		base := models.RatingThreshold{
			AreaName: "Energy", OverallPhase: "Primary", LondonWeight: "Neither",
			TermYears: "2022/2023", ScoreLow: 0.1,
		}
		green := base
		green.Rating = "green"
		amber := base
		amber.Rating = "amber"
		require.NoError(t, storage.SaveThreshold(ctx, &green))
		require.NoError(t, storage.SaveThreshold(ctx, &amber))

		// Saving the same row again replaces it
		require.NoError(t, storage.SaveThreshold(ctx, &amber))

		rows, err := storage.GetThresholds(ctx, "Energy", models.PeerKeys{
			OverallPhase: "Primary", LondonWeight: "Neither", TermYears: "2022/2023",
		})
		require.NoError(t, err)
		require.Len(t, rows, 2)

		ratings := []string{rows[0].Rating, rows[1].Rating}
		assert.ElementsMatch(t, []string{"green", "amber"}, ratings)
	})
}

func TestEfficiencyStorage(t *testing.T) {
	ctx := context.Background()
	storage := NewEfficiencyStorage(newTestDB(t), arbor.NewLogger())

	_, err := storage.GetEfficiencyMetric(ctx, 1)
	assert.ErrorIs(t, err, models.ErrNotFound)

	require.NoError(t, storage.SaveEfficiencyMetric(ctx, &models.EfficiencyMetric{
		URN: 1, Name: "Alpha", Rank: 3,
		Neighbours: []models.EfficiencyNeighbour{{URN: 2, Name: "Beta", Rank: 4}},
	}))

	metric, err := storage.GetEfficiencyMetric(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, metric.Rank)
	require.Len(t, metric.Neighbours, 1)
	assert.Equal(t, "Beta", metric.Neighbours[0].Name)
}
