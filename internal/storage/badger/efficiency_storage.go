package badger

import (
	"context"
	"errors"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/sfb/internal/interfaces"
	"github.com/ternarybob/sfb/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// EfficiencyStorage implements the EfficiencyStorage interface for Badger
type EfficiencyStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewEfficiencyStorage creates a new EfficiencyStorage instance
func NewEfficiencyStorage(db *BadgerDB, logger arbor.ILogger) interfaces.EfficiencyStorage {
	return &EfficiencyStorage{
		db:     db,
		logger: logger,
	}
}

func (s *EfficiencyStorage) GetEfficiencyMetric(ctx context.Context, urn int64) (*models.EfficiencyMetric, error) {
	var metric models.EfficiencyMetric
	err := s.db.Store().Get(urn, &metric)
	if errors.Is(err, badgerhold.ErrNotFound) {
		return nil, fmt.Errorf("efficiency metric %d: %w", urn, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get efficiency metric %d: %w", urn, err)
	}
	return &metric, nil
}

func (s *EfficiencyStorage) SaveEfficiencyMetric(ctx context.Context, metric *models.EfficiencyMetric) error {
	if err := s.db.Store().Upsert(metric.URN, metric); err != nil {
		return fmt.Errorf("failed to save efficiency metric: %w", err)
	}
	return nil
}
