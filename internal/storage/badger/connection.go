package badger

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/sfb/internal/common"
	"github.com/timshannon/badgerhold/v4"
)

// BadgerDB owns the badgerhold store that holds establishment context, financial
// records, peer-group lookups, efficiency metrics and, when configured, cached reports.
type BadgerDB struct {
	store  *badgerhold.Store
	logger arbor.ILogger
	config *common.BadgerConfig
}

// NewBadgerDB opens the reference store at config.Path, wiping it first when
// ResetOnStartup is set so fixtures reload into an empty store.
func NewBadgerDB(logger arbor.ILogger, config *common.BadgerConfig) (*BadgerDB, error) {
	if config.ResetOnStartup {
		if err := resetStoreDir(config.Path); err != nil {
			return nil, err
		}
		logger.Info().Str("path", config.Path).Msg("Reference store wiped for reset_on_startup")
	}

	if err := os.MkdirAll(filepath.Dir(config.Path), 0755); err != nil {
		return nil, fmt.Errorf("reference store parent %s: %w", config.Path, err)
	}

	options := badgerhold.DefaultOptions
	options.Dir = config.Path
	options.ValueDir = config.Path
	options.Logger = nil // badger's own logger is silenced; arbor carries storage events

	store, err := badgerhold.Open(options)
	if err != nil {
		return nil, fmt.Errorf("open reference store %s: %w", config.Path, err)
	}

	logger.Debug().Str("path", config.Path).Msg("Reference store open")

	return &BadgerDB{
		store:  store,
		logger: logger,
		config: config,
	}, nil
}

// resetStoreDir removes a previous store directory; a missing directory is not an error
func resetStoreDir(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("reset reference store %s: %w", path, err)
	}
	return nil
}

// Store returns the underlying badgerhold store
func (b *BadgerDB) Store() *badgerhold.Store {
	return b.store
}

func (b *BadgerDB) Close() error {
	if b.store == nil {
		return nil
	}
	if err := b.store.Close(); err != nil {
		return fmt.Errorf("close reference store: %w", err)
	}
	return nil
}
