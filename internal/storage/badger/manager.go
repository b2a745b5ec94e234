package badger

import (
	"context"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/sfb/internal/common"
	"github.com/ternarybob/sfb/internal/interfaces"
)

// Manager implements the StorageManager interface for Badger
type Manager struct {
	db          *BadgerDB
	context     interfaces.ContextStorage
	financial   interfaces.FinancialStorage
	lookup      interfaces.LookupStorage
	efficiency  interfaces.EfficiencyStorage
	reportCache interfaces.ReportCache
	logger      arbor.ILogger
}

// NewManager creates a new Badger storage manager
func NewManager(logger arbor.ILogger, config *common.BadgerConfig) (interfaces.StorageManager, error) {
	db, err := NewBadgerDB(logger, config)
	if err != nil {
		return nil, err
	}

	manager := newManager(db, logger)

	logger.Info().Str("path", config.Path).Msg("Badger storage manager initialized")

	return manager, nil
}

func newManager(db *BadgerDB, logger arbor.ILogger) *Manager {
	return &Manager{
		db:          db,
		context:     NewContextStorage(db, logger),
		financial:   NewFinancialStorage(db, logger),
		lookup:      NewLookupStorage(db, logger),
		efficiency:  NewEfficiencyStorage(db, logger),
		reportCache: NewReportCache(db, logger),
		logger:      logger,
	}
}

// ContextStorage returns the establishment context storage interface
func (m *Manager) ContextStorage() interfaces.ContextStorage {
	return m.context
}

// FinancialStorage returns the financial record storage interface
func (m *Manager) FinancialStorage() interfaces.FinancialStorage {
	return m.financial
}

// LookupStorage returns the peer-group lookup storage interface
func (m *Manager) LookupStorage() interfaces.LookupStorage {
	return m.lookup
}

// EfficiencyStorage returns the efficiency metric storage interface
func (m *Manager) EfficiencyStorage() interfaces.EfficiencyStorage {
	return m.efficiency
}

// ReportCache returns the local TTL report cache
func (m *Manager) ReportCache() interfaces.ReportCache {
	return m.reportCache
}

// LoadFixturesFromFiles loads reference records from TOML/YAML files
func (m *Manager) LoadFixturesFromFiles(ctx context.Context, dirPath string) error {
	return LoadFixturesFromFiles(ctx, m, dirPath, m.logger)
}

// Close closes the database connection
func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}
