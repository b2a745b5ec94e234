// Package reportcache stores built academy reports in a byte-level TTL cache.
// Entries carry the term they were built for; an entry from an older term is a miss.
package reportcache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/sfb/internal/interfaces"
	"github.com/ternarybob/sfb/internal/models"
)

// envelope is the cached document
type envelope struct {
	TermYears string                       `json:"term_years"`
	Report    *models.SelfAssessmentReport `json:"report"`
	CachedAt  time.Time                    `json:"cached_at"`
}

// Store wraps an interfaces.ReportCache. A Store over a nil cache never hits and never writes.
type Store struct {
	cache  interfaces.ReportCache
	prefix string
	logger arbor.ILogger
}

// NewStore creates a report store; prefix is prepended to every key
func NewStore(cache interfaces.ReportCache, prefix string, logger arbor.ILogger) *Store {
	return &Store{
		cache:  cache,
		prefix: prefix,
		logger: logger,
	}
}

// Enabled reports whether a backing cache is configured
func (s *Store) Enabled() bool {
	return s != nil && s.cache != nil
}

// Key returns the cache key for an academy URN
func (s *Store) Key(urn int64) string {
	if s.prefix == "" {
		return strconv.FormatInt(urn, 10)
	}
	return s.prefix + ":" + strconv.FormatInt(urn, 10)
}

// Get returns the cached report for urn when present, unexpired and built for termYears.
// Every other outcome, including a corrupt entry or a cache fault, is a miss.
func (s *Store) Get(ctx context.Context, urn int64, termYears string) (*models.SelfAssessmentReport, bool) {
	if !s.Enabled() {
		return nil, false
	}

	data, err := s.cache.Get(ctx, s.Key(urn))
	if err != nil {
		if !errors.Is(err, models.ErrCacheMiss) {
			s.logger.Warn().Err(err).Int64("urn", urn).Msg("Report cache read failed")
		}
		return nil, false
	}

	var entry envelope
	if err := sonic.Unmarshal(data, &entry); err != nil {
		s.logger.Warn().Err(err).Int64("urn", urn).Msg("Discarding undecodable cached report")
		return nil, false
	}
	if entry.Report == nil || entry.TermYears != termYears {
		s.logger.Debug().
			Int64("urn", urn).
			Str("cached_term", entry.TermYears).
			Str("term", termYears).
			Msg("Cached report is stale")
		return nil, false
	}

	return entry.Report, true
}

// Put stores a report under its URN with the given ttl; zero ttl means no expiry
func (s *Store) Put(ctx context.Context, report *models.SelfAssessmentReport, ttl time.Duration) error {
	if !s.Enabled() {
		return nil
	}

	data, err := sonic.Marshal(envelope{
		TermYears: report.TermYears,
		Report:    report,
		CachedAt:  time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("encode report %d: %w", report.URN, err)
	}

	if err := s.cache.Set(ctx, s.Key(report.URN), data, ttl); err != nil {
		return fmt.Errorf("cache report %d: %w", report.URN, err)
	}
	return nil
}
