package badger

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/sfb/internal/interfaces"
	"github.com/ternarybob/sfb/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// ContextStorage implements the ContextStorage interface for Badger
type ContextStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewContextStorage creates a new ContextStorage instance
func NewContextStorage(db *BadgerDB, logger arbor.ILogger) interfaces.ContextStorage {
	return &ContextStorage{
		db:     db,
		logger: logger,
	}
}

// establishmentKey separates federation entities from schools; federations are addressed by UID
func establishmentKey(e *models.Establishment) string {
	if e.IsFederation {
		return federationKey(e.FederationUID)
	}
	return schoolKey(e.URN)
}

func schoolKey(urn int64) string {
	return fmt.Sprintf("school:%d", urn)
}

func federationKey(fuid int64) string {
	return fmt.Sprintf("federation:%d", fuid)
}

func (s *ContextStorage) get(key string) (*models.Establishment, error) {
	var establishment models.Establishment
	err := s.db.Store().Get(key, &establishment)
	if errors.Is(err, badgerhold.ErrNotFound) {
		return nil, fmt.Errorf("establishment %s: %w", key, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get establishment %s: %w", key, err)
	}
	return &establishment, nil
}

// GetSchool returns the context record for a school or academy
func (s *ContextStorage) GetSchool(ctx context.Context, urn int64) (*models.Establishment, error) {
	return s.get(schoolKey(urn))
}

// GetFederation returns the context record for a federation entity
func (s *ContextStorage) GetFederation(ctx context.Context, fuid int64) (*models.Establishment, error) {
	return s.get(federationKey(fuid))
}

// GetAcademiesByTrust returns every establishment linked to a trust, ordered by URN
func (s *ContextStorage) GetAcademiesByTrust(ctx context.Context, uid int64) ([]*models.Establishment, error) {
	var establishments []models.Establishment
	if err := s.db.Store().Find(&establishments, badgerhold.Where("TrustUID").Eq(uid)); err != nil {
		return nil, fmt.Errorf("failed to find academies for trust %d: %w", uid, err)
	}

	result := make([]*models.Establishment, 0, len(establishments))
	for i := range establishments {
		result = append(result, &establishments[i])
	}
	sort.Slice(result, func(i, j int) bool { return result[i].URN < result[j].URN })

	return result, nil
}

func (s *ContextStorage) findActive() ([]models.Establishment, error) {
	var establishments []models.Establishment
	if err := s.db.Store().Find(&establishments, badgerhold.Where("Active").Eq(true)); err != nil {
		return nil, fmt.Errorf("failed to find active establishments: %w", err)
	}
	return establishments, nil
}

// ListActiveURNs returns the URNs of active schools and academies
func (s *ContextStorage) ListActiveURNs(ctx context.Context) ([]int64, error) {
	establishments, err := s.findActive()
	if err != nil {
		return nil, err
	}

	urns := make([]int64, 0, len(establishments))
	for _, e := range establishments {
		if !e.IsFederation && e.URN != 0 {
			urns = append(urns, e.URN)
		}
	}
	return urns, nil
}

// ListActiveCompanyNumbers returns the distinct company numbers of trusts with an active academy
func (s *ContextStorage) ListActiveCompanyNumbers(ctx context.Context) ([]int, error) {
	establishments, err := s.findActive()
	if err != nil {
		return nil, err
	}

	seen := make(map[int]struct{})
	numbers := []int{}
	for _, e := range establishments {
		if e.CompanyNumber == nil {
			continue
		}
		if _, ok := seen[*e.CompanyNumber]; ok {
			continue
		}
		seen[*e.CompanyNumber] = struct{}{}
		numbers = append(numbers, *e.CompanyNumber)
	}
	return numbers, nil
}

// ListActiveFederationUIDs returns the distinct UIDs of active federations
func (s *ContextStorage) ListActiveFederationUIDs(ctx context.Context) ([]int64, error) {
	establishments, err := s.findActive()
	if err != nil {
		return nil, err
	}

	seen := make(map[int64]struct{})
	uids := []int64{}
	for _, e := range establishments {
		if !e.IsFederation || e.FederationUID == 0 {
			continue
		}
		if _, ok := seen[e.FederationUID]; ok {
			continue
		}
		seen[e.FederationUID] = struct{}{}
		uids = append(uids, e.FederationUID)
	}
	return uids, nil
}

// SaveEstablishment inserts or replaces a context record
func (s *ContextStorage) SaveEstablishment(ctx context.Context, establishment *models.Establishment) error {
	if establishment.IsFederation && establishment.FederationUID == 0 {
		return fmt.Errorf("federation requires a federation UID")
	}
	if !establishment.IsFederation && establishment.URN == 0 {
		return fmt.Errorf("establishment requires a URN")
	}
	if err := s.db.Store().Upsert(establishmentKey(establishment), establishment); err != nil {
		return fmt.Errorf("failed to save establishment: %w", err)
	}
	return nil
}
