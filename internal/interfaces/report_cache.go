package interfaces

import (
	"context"
	"time"
)

// ReportCache is a byte-level key/value cache with per-entry expiry.
// Get returns models.ErrCacheMiss when a key is absent or has expired.
// A ttl of zero stores the entry without expiry.
type ReportCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
