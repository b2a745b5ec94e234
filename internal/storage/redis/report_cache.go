package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/sfb/internal/common"
	"github.com/ternarybob/sfb/internal/interfaces"
	"github.com/ternarybob/sfb/internal/models"
)

// ReportCache implements the ReportCache interface on a shared Redis instance
type ReportCache struct {
	client *redis.Client
	logger arbor.ILogger
}

// NewReportCache connects to Redis and verifies the connection with PING
func NewReportCache(ctx context.Context, logger arbor.ILogger, config *common.RedisConfig) (interfaces.ReportCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Address,
		Password: config.Password,
		DB:       config.DB,
	})

	if _, err := client.Ping(ctx).Result(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", config.Address, err)
	}

	logger.Info().Str("address", config.Address).Int("db", config.DB).Msg("Redis report cache connected")

	return NewReportCacheWithClient(client, logger), nil
}

// NewReportCacheWithClient wraps an existing client
func NewReportCacheWithClient(client *redis.Client, logger arbor.ILogger) interfaces.ReportCache {
	return &ReportCache{
		client: client,
		logger: logger,
	}
}

func (c *ReportCache) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, models.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis GET %s failed: %w", key, err)
	}
	return value, nil
}

// Set stores an entry; a zero ttl keeps the entry until overwritten or evicted
func (c *ReportCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis SET %s failed: %w", key, err)
	}
	return nil
}

func (c *ReportCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis DEL %s failed: %w", key, err)
	}
	return nil
}

func (c *ReportCache) Close() error {
	return c.client.Close()
}
