// Package efficiency serves precomputed efficiency metric documents.
package efficiency

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/sfb/internal/interfaces"
	"github.com/ternarybob/sfb/internal/models"
)

// Service implements interfaces.EfficiencyService
type Service struct {
	storage interfaces.EfficiencyStorage
	logger  arbor.ILogger
}

// NewService creates an efficiency metric service
func NewService(storage interfaces.EfficiencyStorage, logger arbor.ILogger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// GetMetric returns the efficiency document for a URN; models.ErrNotFound when none exists
func (s *Service) GetMetric(ctx context.Context, urn int64) (*models.EfficiencyMetric, error) {
	metric, err := s.storage.GetEfficiencyMetric(ctx, urn)
	if err != nil {
		return nil, fmt.Errorf("efficiency metric %d: %w", urn, err)
	}
	if metric.Neighbours == nil {
		metric.Neighbours = []models.EfficiencyNeighbour{}
	}
	return metric, nil
}
