package badger

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/sfb/internal/interfaces"
	"github.com/ternarybob/sfb/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// LookupStorage implements the LookupStorage interface for Badger
type LookupStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewLookupStorage creates a new LookupStorage instance
func NewLookupStorage(db *BadgerDB, logger arbor.ILogger) interfaces.LookupStorage {
	return &LookupStorage{
		db:     db,
		logger: logger,
	}
}

func sizeLookupKey(row *models.SizeLookup) string {
	return fmt.Sprintf("size:%s:%t:%s:%g", row.OverallPhase, row.HasSixthForm, row.TermYears, row.NoPupilsMin)
}

func fsmLookupKey(row *models.FSMLookup) string {
	return fmt.Sprintf("fsm:%s:%t:%s:%g", row.OverallPhase, row.HasSixthForm, row.TermYears, row.FSMMin)
}

// thresholdKey identifies a band by its peer group, bounds and rating.
// Bands may share a lower bound.
func thresholdKey(row *models.RatingThreshold) string {
	scoreHigh := "-"
	if row.ScoreHigh != nil {
		scoreHigh = fmt.Sprintf("%g", *row.ScoreHigh)
	}
	return fmt.Sprintf("threshold:%s:%s:%t:%s:%s:%s:%s:%g:%s:%s",
		row.AreaName, row.OverallPhase, row.HasSixthForm, row.LondonWeight,
		row.SizeType, row.FSMScale, row.TermYears, row.ScoreLow, scoreHigh, row.Rating)
}

func peerGroupQuery(overallPhase string, hasSixthForm bool, termYears string) *badgerhold.Query {
	return badgerhold.Where("OverallPhase").Eq(overallPhase).
		And("HasSixthForm").Eq(hasSixthForm).
		And("TermYears").Eq(termYears)
}

// GetSizeLookups returns size band rows for a peer group, ordered by lower bound
func (s *LookupStorage) GetSizeLookups(ctx context.Context, overallPhase string, hasSixthForm bool, termYears string) ([]*models.SizeLookup, error) {
	var rows []models.SizeLookup
	query := peerGroupQuery(overallPhase, hasSixthForm, termYears).SortBy("NoPupilsMin")
	if err := s.db.Store().Find(&rows, query); err != nil {
		return nil, fmt.Errorf("failed to find size lookups: %w", err)
	}

	result := make([]*models.SizeLookup, 0, len(rows))
	for i := range rows {
		result = append(result, &rows[i])
	}
	return result, nil
}

// GetFSMLookups returns FSM band rows for a peer group, ordered by lower bound
func (s *LookupStorage) GetFSMLookups(ctx context.Context, overallPhase string, hasSixthForm bool, termYears string) ([]*models.FSMLookup, error) {
	var rows []models.FSMLookup
	query := peerGroupQuery(overallPhase, hasSixthForm, termYears).SortBy("FSMMin")
	if err := s.db.Store().Find(&rows, query); err != nil {
		return nil, fmt.Errorf("failed to find fsm lookups: %w", err)
	}

	result := make([]*models.FSMLookup, 0, len(rows))
	for i := range rows {
		result = append(result, &rows[i])
	}
	return result, nil
}

// GetThresholds returns the rating bands for a metric and peer-group key tuple.
// A nil size or FSM key only matches rows not keyed on that axis.
func (s *LookupStorage) GetThresholds(ctx context.Context, areaName string, keys models.PeerKeys) ([]*models.RatingThreshold, error) {
	sizeType := ""
	if keys.SizeType != nil {
		sizeType = *keys.SizeType
	}
	fsmScale := ""
	if keys.FSMScale != nil {
		fsmScale = *keys.FSMScale
	}

	query := badgerhold.Where("AreaName").Eq(areaName).
		And("OverallPhase").Eq(keys.OverallPhase).
		And("HasSixthForm").Eq(keys.HasSixthForm).
		And("LondonWeight").Eq(keys.LondonWeight).
		And("SizeType").Eq(sizeType).
		And("FSMScale").Eq(fsmScale).
		And("TermYears").Eq(keys.TermYears)

	var rows []models.RatingThreshold
	if err := s.db.Store().Find(&rows, query); err != nil {
		return nil, fmt.Errorf("failed to find thresholds for %s: %w", areaName, err)
	}

	result := make([]*models.RatingThreshold, 0, len(rows))
	for i := range rows {
		result = append(result, &rows[i])
	}
	return result, nil
}

// ListSizeLookups returns every size band row
func (s *LookupStorage) ListSizeLookups(ctx context.Context) ([]*models.SizeLookup, error) {
	var rows []models.SizeLookup
	if err := s.db.Store().Find(&rows, nil); err != nil {
		return nil, fmt.Errorf("failed to list size lookups: %w", err)
	}

	result := make([]*models.SizeLookup, 0, len(rows))
	for i := range rows {
		result = append(result, &rows[i])
	}
	return result, nil
}

// ListFSMLookups returns every FSM band row
func (s *LookupStorage) ListFSMLookups(ctx context.Context) ([]*models.FSMLookup, error) {
	var rows []models.FSMLookup
	if err := s.db.Store().Find(&rows, nil); err != nil {
		return nil, fmt.Errorf("failed to list fsm lookups: %w", err)
	}

	result := make([]*models.FSMLookup, 0, len(rows))
	for i := range rows {
		result = append(result, &rows[i])
	}
	return result, nil
}

func (s *LookupStorage) SaveSizeLookup(ctx context.Context, row *models.SizeLookup) error {
	if err := s.db.Store().Upsert(sizeLookupKey(row), row); err != nil {
		return fmt.Errorf("failed to save size lookup: %w", err)
	}
	return nil
}

func (s *LookupStorage) SaveFSMLookup(ctx context.Context, row *models.FSMLookup) error {
	if err := s.db.Store().Upsert(fsmLookupKey(row), row); err != nil {
		return fmt.Errorf("failed to save fsm lookup: %w", err)
	}
	return nil
}

func (s *LookupStorage) SaveThreshold(ctx context.Context, row *models.RatingThreshold) error {
	if err := s.db.Store().Upsert(thresholdKey(row), row); err != nil {
		return fmt.Errorf("failed to save threshold: %w", err)
	}
	return nil
}
