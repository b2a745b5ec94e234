package storage

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/sfb/internal/common"
	"github.com/ternarybob/sfb/internal/interfaces"
	"github.com/ternarybob/sfb/internal/storage/badger"
	"github.com/ternarybob/sfb/internal/storage/redis"
)

// NewStorageManager creates a new storage manager based on config
func NewStorageManager(logger arbor.ILogger, config *common.Config) (interfaces.StorageManager, error) {
	// Enforce Badger-only storage
	if config.Storage.Type != "badger" && config.Storage.Type != "" {
		return nil, fmt.Errorf("unsupported storage type: %s (only 'badger' is supported)", config.Storage.Type)
	}
	return badger.NewManager(logger, &config.Storage.Badger)
}

// NewReportCache selects the report cache backend. It returns nil for the "none" backend,
// which disables trust report caching.
func NewReportCache(ctx context.Context, logger arbor.ILogger, config *common.Config, manager interfaces.StorageManager) (interfaces.ReportCache, error) {
	switch config.Cache.Backend {
	case common.CacheBackendBadger, "":
		return manager.ReportCache(), nil
	case common.CacheBackendRedis:
		return redis.NewReportCache(ctx, logger, &config.Cache.Redis)
	case common.CacheBackendNone:
		logger.Warn().Msg("Report cache disabled (cache.backend=none)")
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported cache backend: %s", config.Cache.Backend)
	}
}
