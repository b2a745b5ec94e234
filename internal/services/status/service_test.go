package status

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/sfb/internal/interfaces"
)

type fakeContextStorage struct {
	interfaces.ContextStorage
	urns        []int64
	companies   []int
	federations []int64
	err         error
}

func (f *fakeContextStorage) ListActiveURNs(ctx context.Context) ([]int64, error) {
	return f.urns, f.err
}

func (f *fakeContextStorage) ListActiveCompanyNumbers(ctx context.Context) ([]int, error) {
	return f.companies, f.err
}

func (f *fakeContextStorage) ListActiveFederationUIDs(ctx context.Context) ([]int64, error) {
	return f.federations, f.err
}

func TestService_NotLoaded(t *testing.T) {
	service := NewService(&fakeContextStorage{}, "", arbor.NewLogger())

	_, err := service.IsSchoolActive(1)
	assert.ErrorIs(t, err, ErrNotLoaded)
	_, err = service.IsTrustActive(1)
	assert.ErrorIs(t, err, ErrNotLoaded)
	_, err = service.IsFederationActive(1)
	assert.ErrorIs(t, err, ErrNotLoaded)
	assert.True(t, service.RefreshedAt().IsZero())
}

func TestService_Refresh(t *testing.T) {
	contexts := &fakeContextStorage{
		urns:        []int64{138082, 140001},
		companies:   []int{7654321},
		federations: []int64{9001},
	}
	service := NewService(contexts, "", arbor.NewLogger())
	require.NoError(t, service.Refresh(context.Background()))

	tests := []struct {
		name  string
		check func() (bool, error)
		want  bool
	}{
		{"active school", func() (bool, error) { return service.IsSchoolActive(138082) }, true},
		{"inactive school", func() (bool, error) { return service.IsSchoolActive(1) }, false},
		{"active trust", func() (bool, error) { return service.IsTrustActive(7654321) }, true},
		{"inactive trust", func() (bool, error) { return service.IsTrustActive(1) }, false},
		{"active federation", func() (bool, error) { return service.IsFederationActive(9001) }, true},
		{"federation uid is not a school", func() (bool, error) { return service.IsSchoolActive(9001) }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.check()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_RefreshFaultKeepsPreviousSets(t *testing.T) {
	contexts := &fakeContextStorage{urns: []int64{138082}}
	service := NewService(contexts, "", arbor.NewLogger())
	require.NoError(t, service.Refresh(context.Background()))

	contexts.err = errors.New("store offline")
	assert.Error(t, service.Refresh(context.Background()))

	active, err := service.IsSchoolActive(138082)
	require.NoError(t, err)
	assert.True(t, active)
}

func TestService_Start(t *testing.T) {
	t.Run("schedules refresh", func(t *testing.T) {
		service := NewService(&fakeContextStorage{urns: []int64{1}}, "*/30 * * * *", arbor.NewLogger())
		require.NoError(t, service.Start(context.Background()))
		defer service.Stop()

		assert.Len(t, service.cron.Entries(), 1)
		active, err := service.IsSchoolActive(1)
		require.NoError(t, err)
		assert.True(t, active)
	})

	t.Run("invalid schedule", func(t *testing.T) {
		service := NewService(&fakeContextStorage{}, "not a schedule", arbor.NewLogger())
		assert.Error(t, service.Start(context.Background()))
	})

	t.Run("initial load failure is not fatal", func(t *testing.T) {
		service := NewService(&fakeContextStorage{err: errors.New("store offline")}, "", arbor.NewLogger())
		require.NoError(t, service.Start(context.Background()))

		_, err := service.IsSchoolActive(1)
		assert.ErrorIs(t, err, ErrNotLoaded)
	})
}
