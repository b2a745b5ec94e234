package badger

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/sfb/internal/models"
)

const tomlFixture = `
[[latest_data_years]]
finance_type = "Maintained"
term = 2023

[[establishments]]
urn = 138082
name = "Example Primary"
phase = "Primary"
overall_phase = "Primary"
finance_type = "Maintained"
london_weight = "Neither"
ofsted_rating = "2"
ofsted_last_inspection = "14/03/2019"
active = true

[[financial_records]]
id = 138082
finance_type = "Maintained"
term = 2023
school_name = "Example Primary"
overall_phase = "Primary"
no_pupils = 210.0
percentage_fsm = 18.5
teaching_staff = 450000.0
total_expenditure = 1000000.0

[[size_lookups]]
overall_phase = "Primary"
has_sixth_form = false
term_years = "2022/2023"
no_pupils_min = 0.0
no_pupils_max = 250.0
size_type = "small"
`

const yamlFixture = `
thresholds:
  - area_name: Teaching staff
    overall_phase: Primary
    has_sixth_form: false
    london_weight: Neither
    size_type: small
    term_years: 2022/2023
    score_low: 0
    rating: green
    rating_text: average
trust_records:
  - uid: 500
    term: 2023
    trust_or_company_name: Example Trust
    company_number: 777
`

func TestLoadFixturesFromFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "01-school.toml"), []byte(tomlFixture), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "02-lookups.yaml"), []byte(yamlFixture), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "03-broken.toml"), []byte("[[establishments]\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("ignored"), 0644))

	manager := newManager(newTestDB(t), arbor.NewLogger())
	require.NoError(t, manager.LoadFixturesFromFiles(ctx, dir))

	term, err := manager.FinancialStorage().GetLatestDataYear(ctx, models.FinanceTypeMaintained)
	require.NoError(t, err)
	assert.Equal(t, 2023, term)

	school, err := manager.ContextStorage().GetSchool(ctx, 138082)
	require.NoError(t, err)
	assert.Equal(t, "Example Primary", school.Name)
	assert.True(t, school.Active)

	record, err := manager.FinancialStorage().GetSchoolRecord(ctx, 138082, 2023, models.FinanceTypeMaintained, models.CentralFinancingInclude)
	require.NoError(t, err)
	require.NotNil(t, record.NoPupils)
	assert.Equal(t, 210.0, *record.NoPupils)
	assert.Nil(t, record.Energy)

	sizes, err := manager.LookupStorage().GetSizeLookups(ctx, "Primary", false, "2022/2023")
	require.NoError(t, err)
	require.Len(t, sizes, 1)
	require.NotNil(t, sizes[0].NoPupilsMax)
	assert.Equal(t, 250.0, *sizes[0].NoPupilsMax)

	small := "small"
	thresholds, err := manager.LookupStorage().GetThresholds(ctx, "Teaching staff", models.PeerKeys{
		OverallPhase: "Primary", LondonWeight: "Neither", SizeType: &small, TermYears: "2022/2023",
	})
	require.NoError(t, err)
	require.Len(t, thresholds, 1)
	assert.Equal(t, "green", thresholds[0].Rating)

	trust, err := manager.FinancialStorage().GetTrustRecord(ctx, 500, 2023)
	require.NoError(t, err)
	assert.Equal(t, "Example Trust", trust.TrustOrCompanyName)
}

func TestLoadFixturesFromFiles_MissingDirectory(t *testing.T) {
	manager := newManager(newTestDB(t), arbor.NewLogger())
	err := manager.LoadFixturesFromFiles(context.Background(), filepath.Join(t.TempDir(), "absent"))
	assert.NoError(t, err)
}
