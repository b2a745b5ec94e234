package trust

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/sfb/internal/models"
	"github.com/ternarybob/sfb/internal/services/assessment"
)

func TestIsCategory(t *testing.T) {
	assert.True(t, IsCategory("teaching-staff"))
	assert.True(t, IsCategory(CategoryKs2Score))
	assert.True(t, IsCategory(CategoryProgress8Score))
	assert.True(t, IsCategory(CategoryOfstedRating))
	assert.False(t, IsCategory("Teaching staff"))
	assert.False(t, IsCategory(""))
}

func TestAggregator_BuildTrustCategory_Area(t *testing.T) {
	f := newFixture()

	entries, err := f.aggregator(defaultOptions()).BuildTrustCategory(context.Background(), 5001, "teaching-staff")
	require.NoError(t, err)
	require.Len(t, entries, 10)

	assert.Equal(t, "ash grove academy", entries[0].Name)
	require.NotNil(t, entries[0].Area)
	assert.Equal(t, assessment.AreaTeachingStaff, entries[0].Area.AreaName)
	assert.Nil(t, entries[0].Progress)

	// the fake report carries no energy area
	entries, err = f.aggregator(defaultOptions()).BuildTrustCategory(context.Background(), 5001, "energy")
	require.NoError(t, err)
	assert.Nil(t, entries[0].Area)
}

func TestAggregator_BuildTrustCategory_Progress(t *testing.T) {
	f := newFixture()

	entries, err := f.aggregator(defaultOptions()).BuildTrustCategory(context.Background(), 5001, CategoryKs2Score)
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	progress := entries[0].Progress
	require.NotNil(t, progress)
	assert.Nil(t, entries[0].Area)
	assert.Equal(t, 2.5, *progress.Ks2Score)
	assert.Equal(t, "above average", progress.Ks2ScoreDescription)
	assert.Nil(t, progress.Progress8Score)
	assert.Equal(t, "n/a", progress.Progress8Description)
}

func TestAggregator_BuildTrustCategory_ProgressKeepsBothMeasures(t *testing.T) {
	f := newFixture()
	// "ash grove academy" sorts first
	f.contexts.academies[5001][1].Phase = models.PhaseSpecial

	entries, err := f.aggregator(defaultOptions()).BuildTrustCategory(context.Background(), 5001, CategoryProgress8Score)
	require.NoError(t, err)
	require.Equal(t, "ash grove academy", entries[0].Name)

	progress := entries[0].Progress
	require.NotNil(t, progress)
	require.NotNil(t, progress.Progress8Score)
	assert.Equal(t, 0.3, *progress.Progress8Score)
	assert.Equal(t, "average", progress.Progress8Description)
	require.NotNil(t, progress.Ks2Score)
	assert.Equal(t, 1.2, *progress.Ks2Score)
	assert.Equal(t, "average", progress.Ks2ScoreDescription)
}

func TestAggregator_BuildTrustCategory_Ofsted(t *testing.T) {
	f := newFixture()

	entries, err := f.aggregator(defaultOptions()).BuildTrustCategory(context.Background(), 5001, CategoryOfstedRating)
	require.NoError(t, err)
	require.Len(t, entries, 10)

	ofsted := entries[0].Ofsted
	require.NotNil(t, ofsted)
	assert.Nil(t, entries[0].Area)
	assert.Nil(t, entries[0].Progress)
	assert.Equal(t, "Good", ofsted.Rating)
	require.NotNil(t, ofsted.InspectionDate)
	assert.Equal(t, "2019-03-14", ofsted.InspectionDate.Format("2006-01-02"))
}

func TestAggregator_BuildTrustCategory_Unknown(t *testing.T) {
	f := newFixture()

	_, err := f.aggregator(defaultOptions()).BuildTrustCategory(context.Background(), 5001, "catering")
	assert.ErrorIs(t, err, models.ErrUnknownCategory)
	assert.Equal(t, int32(0), f.assessment.builds.Load())
}
