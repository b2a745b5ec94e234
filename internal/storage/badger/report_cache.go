package badger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/sfb/internal/interfaces"
	"github.com/ternarybob/sfb/internal/models"
)

// reportKeyPrefix keeps cache entries apart from badgerhold's typed records in the same DB
const reportKeyPrefix = "reportcache:"

// ReportCache implements the ReportCache interface on raw Badger keys with native TTL
type ReportCache struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewReportCache creates a report cache sharing the storage manager's database
func NewReportCache(db *BadgerDB, logger arbor.ILogger) interfaces.ReportCache {
	return &ReportCache{
		db:     db,
		logger: logger,
	}
}

func (c *ReportCache) key(key string) []byte {
	return []byte(reportKeyPrefix + key)
}

// Get returns the cached bytes; expired entries are invisible to Badger reads
func (c *ReportCache) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := c.db.Store().Badger().View(func(txn *badger.Txn) error {
		item, err := txn.Get(c.key(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, models.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cache entry %s: %w", key, err)
	}
	return value, nil
}

// Set stores an entry, with no expiry when ttl is zero
func (c *ReportCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := c.db.Store().Badger().Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(c.key(key), value)
		if ttl > 0 {
			entry = entry.WithTTL(ttl)
		}
		return txn.SetEntry(entry)
	})
	if err != nil {
		return fmt.Errorf("failed to write cache entry %s: %w", key, err)
	}
	return nil
}

func (c *ReportCache) Delete(ctx context.Context, key string) error {
	err := c.db.Store().Badger().Update(func(txn *badger.Txn) error {
		return txn.Delete(c.key(key))
	})
	if err != nil {
		return fmt.Errorf("failed to delete cache entry %s: %w", key, err)
	}
	return nil
}

// Close is a no-op; the database is owned by the storage manager
func (c *ReportCache) Close() error {
	return nil
}

