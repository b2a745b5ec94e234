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

// FinancialStorage implements the FinancialStorage interface for Badger
type FinancialStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewFinancialStorage creates a new FinancialStorage instance
func NewFinancialStorage(db *BadgerDB, logger arbor.ILogger) interfaces.FinancialStorage {
	return &FinancialStorage{
		db:     db,
		logger: logger,
	}
}

// Only academy records are split by central financing; other types carry a single record per term.
func recordKey(financeType models.FinanceType, id int64, term int, cf models.CentralFinancing) string {
	if financeType != models.FinanceTypeAcademies {
		cf = ""
	} else if cf == "" {
		cf = models.CentralFinancingInclude
	}
	return fmt.Sprintf("financial:%s:%s:%d:%d", financeType, cf, id, term)
}

func trustRecordKey(uid int64, term int) string {
	return fmt.Sprintf("trust:%d:%d", uid, term)
}

func latestYearKey(financeType models.FinanceType) string {
	return fmt.Sprintf("latest:%s", financeType)
}

// GetSchoolRecord returns one establishment's financial record for a term
func (s *FinancialStorage) GetSchoolRecord(ctx context.Context, id int64, term int, financeType models.FinanceType, cf models.CentralFinancing) (*models.FinancialRecord, error) {
	key := recordKey(financeType, id, term, cf)

	var record models.FinancialRecord
	err := s.db.Store().Get(key, &record)
	if errors.Is(err, badgerhold.ErrNotFound) {
		return nil, fmt.Errorf("financial record %s: %w", key, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get financial record %s: %w", key, err)
	}
	return &record, nil
}

// GetTrustRecord returns a trust's MAT-level record for a term
func (s *FinancialStorage) GetTrustRecord(ctx context.Context, uid int64, term int) (*models.TrustFinancialRecord, error) {
	key := trustRecordKey(uid, term)

	var record models.TrustFinancialRecord
	err := s.db.Store().Get(key, &record)
	if errors.Is(err, badgerhold.ErrNotFound) {
		return nil, fmt.Errorf("trust record %s: %w", key, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trust record %s: %w", key, err)
	}
	return &record, nil
}

// GetLatestDataYear returns the most recent term loaded for a finance type
func (s *FinancialStorage) GetLatestDataYear(ctx context.Context, financeType models.FinanceType) (int, error) {
	var latest models.LatestDataYear
	err := s.db.Store().Get(latestYearKey(financeType), &latest)
	if errors.Is(err, badgerhold.ErrNotFound) {
		return 0, fmt.Errorf("no data year for %s: %w", financeType, models.ErrDataUnavailable)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get latest data year for %s: %w", financeType, err)
	}
	return latest.Term, nil
}

// SaveSchoolRecord inserts or replaces a financial record
func (s *FinancialStorage) SaveSchoolRecord(ctx context.Context, record *models.FinancialRecord) error {
	if _, err := models.ParseFinanceType(string(record.FinanceType)); err != nil {
		return err
	}
	if err := s.db.Store().Upsert(recordKey(record.FinanceType, record.ID, record.Term, record.CentralFinancing), record); err != nil {
		return fmt.Errorf("failed to save financial record: %w", err)
	}
	return nil
}

// SaveTrustRecord inserts or replaces a trust record
func (s *FinancialStorage) SaveTrustRecord(ctx context.Context, record *models.TrustFinancialRecord) error {
	if err := s.db.Store().Upsert(trustRecordKey(record.UID, record.Term), record); err != nil {
		return fmt.Errorf("failed to save trust record: %w", err)
	}
	return nil
}

// SetLatestDataYear records the latest loaded term for a finance type
func (s *FinancialStorage) SetLatestDataYear(ctx context.Context, financeType models.FinanceType, term int) error {
	latest := &models.LatestDataYear{FinanceType: financeType, Term: term}
	if err := s.db.Store().Upsert(latestYearKey(financeType), latest); err != nil {
		return fmt.Errorf("failed to set latest data year: %w", err)
	}
	return nil
}
