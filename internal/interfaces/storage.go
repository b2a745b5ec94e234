package interfaces

import (
	"context"

	"github.com/ternarybob/sfb/internal/models"
)

// ContextStorage - read access to establishment context records.
// Lookups return models.ErrNotFound when no record exists.
type ContextStorage interface {
	GetSchool(ctx context.Context, urn int64) (*models.Establishment, error)
	GetFederation(ctx context.Context, fuid int64) (*models.Establishment, error)
	GetAcademiesByTrust(ctx context.Context, uid int64) ([]*models.Establishment, error)

	// Active identifier sets feed the establishment status checks
	ListActiveURNs(ctx context.Context) ([]int64, error)
	ListActiveCompanyNumbers(ctx context.Context) ([]int, error)
	ListActiveFederationUIDs(ctx context.Context) ([]int64, error)

	SaveEstablishment(ctx context.Context, establishment *models.Establishment) error
}

// FinancialStorage - read access to per-term financial records
type FinancialStorage interface {
	// GetSchoolRecord returns the record for an establishment (URN, or federation UID for
	// federations) in one term. Academies records are filtered by central financing mode.
	GetSchoolRecord(ctx context.Context, id int64, term int, financeType models.FinanceType, cf models.CentralFinancing) (*models.FinancialRecord, error)
	GetTrustRecord(ctx context.Context, uid int64, term int) (*models.TrustFinancialRecord, error)
	GetLatestDataYear(ctx context.Context, financeType models.FinanceType) (int, error)

	SaveSchoolRecord(ctx context.Context, record *models.FinancialRecord) error
	SaveTrustRecord(ctx context.Context, record *models.TrustFinancialRecord) error
	SetLatestDataYear(ctx context.Context, financeType models.FinanceType, term int) error
}

// LookupStorage - read access to peer-group reference tables
type LookupStorage interface {
	GetSizeLookups(ctx context.Context, overallPhase string, hasSixthForm bool, termYears string) ([]*models.SizeLookup, error)
	GetFSMLookups(ctx context.Context, overallPhase string, hasSixthForm bool, termYears string) ([]*models.FSMLookup, error)
	GetThresholds(ctx context.Context, areaName string, keys models.PeerKeys) ([]*models.RatingThreshold, error)

	ListSizeLookups(ctx context.Context) ([]*models.SizeLookup, error)
	ListFSMLookups(ctx context.Context) ([]*models.FSMLookup, error)

	SaveSizeLookup(ctx context.Context, row *models.SizeLookup) error
	SaveFSMLookup(ctx context.Context, row *models.FSMLookup) error
	SaveThreshold(ctx context.Context, row *models.RatingThreshold) error
}

// EfficiencyStorage - read access to efficiency metric documents
type EfficiencyStorage interface {
	GetEfficiencyMetric(ctx context.Context, urn int64) (*models.EfficiencyMetric, error)
	SaveEfficiencyMetric(ctx context.Context, metric *models.EfficiencyMetric) error
}

// StorageManager - composite storage manager
type StorageManager interface {
	ContextStorage() ContextStorage
	FinancialStorage() FinancialStorage
	LookupStorage() LookupStorage
	EfficiencyStorage() EfficiencyStorage

	// ReportCache returns the local TTL report cache backed by the same store
	ReportCache() ReportCache

	// LoadFixturesFromFiles loads reference records from TOML/YAML files in a directory
	LoadFixturesFromFiles(ctx context.Context, dirPath string) error

	Close() error
}
