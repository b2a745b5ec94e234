// Package status answers whether establishments are active, from in-memory id sets
// refreshed from the context store on a cron schedule.
package status

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/sfb/internal/interfaces"
)

// ErrNotLoaded is returned by the status checks until the first refresh succeeds
var ErrNotLoaded = errors.New("active establishment ids not loaded")

// Service implements interfaces.StatusService
type Service struct {
	contexts interfaces.ContextStorage
	schedule string
	logger   arbor.ILogger
	cron     *cron.Cron

	mu          sync.RWMutex
	urns        map[int64]struct{}
	companies   map[int]struct{}
	federations map[int64]struct{}
	loaded      bool
	refreshedAt time.Time
}

// NewService creates a status service; an empty schedule disables periodic refresh
func NewService(contexts interfaces.ContextStorage, schedule string, logger arbor.ILogger) *Service {
	return &Service{
		contexts: contexts,
		schedule: schedule,
		logger:   logger,
		cron:     cron.New(),
	}
}

// Refresh reloads all three id sets and swaps them in together
func (s *Service) Refresh(ctx context.Context) error {
	urns, err := s.contexts.ListActiveURNs(ctx)
	if err != nil {
		return fmt.Errorf("list active urns: %w", err)
	}
	companies, err := s.contexts.ListActiveCompanyNumbers(ctx)
	if err != nil {
		return fmt.Errorf("list active company numbers: %w", err)
	}
	federations, err := s.contexts.ListActiveFederationUIDs(ctx)
	if err != nil {
		return fmt.Errorf("list active federation uids: %w", err)
	}

	urnSet := make(map[int64]struct{}, len(urns))
	for _, urn := range urns {
		urnSet[urn] = struct{}{}
	}
	companySet := make(map[int]struct{}, len(companies))
	for _, number := range companies {
		companySet[number] = struct{}{}
	}
	federationSet := make(map[int64]struct{}, len(federations))
	for _, fuid := range federations {
		federationSet[fuid] = struct{}{}
	}

	s.mu.Lock()
	s.urns = urnSet
	s.companies = companySet
	s.federations = federationSet
	s.loaded = true
	s.refreshedAt = time.Now()
	s.mu.Unlock()

	s.logger.Info().
		Int("schools", len(urnSet)).
		Int("trusts", len(companySet)).
		Int("federations", len(federationSet)).
		Msg("Active establishment ids refreshed")

	return nil
}

// Start performs the initial load and schedules periodic refreshes.
// A failed initial load is logged; status checks answer ErrNotLoaded until a refresh succeeds.
func (s *Service) Start(ctx context.Context) error {
	if err := s.Refresh(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("Initial active id load failed")
	}

	if s.schedule == "" {
		return nil
	}

	if _, err := s.cron.AddFunc(s.schedule, s.runScheduledRefresh); err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", s.schedule, err)
	}
	s.cron.Start()

	s.logger.Info().Str("schedule", s.schedule).Msg("Active id refresh scheduled")
	return nil
}

func (s *Service) runScheduledRefresh() {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().Str("panic", fmt.Sprintf("%v", r)).Msg("Recovered from panic in active id refresh")
		}
	}()

	if err := s.Refresh(context.Background()); err != nil {
		s.logger.Error().Err(err).Msg("Scheduled active id refresh failed")
	}
}

// Stop halts scheduled refreshes and waits for a running one to finish
func (s *Service) Stop() {
	<-s.cron.Stop().Done()
}

// RefreshedAt returns when the id sets were last loaded, zero before the first load
func (s *Service) RefreshedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshedAt
}

// IsSchoolActive reports whether a school URN is in the active set
func (s *Service) IsSchoolActive(urn int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return false, ErrNotLoaded
	}
	_, ok := s.urns[urn]
	return ok, nil
}

// IsTrustActive reports whether a trust company number is in the active set
func (s *Service) IsTrustActive(companyNumber int) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return false, ErrNotLoaded
	}
	_, ok := s.companies[companyNumber]
	return ok, nil
}

// IsFederationActive reports whether a federation UID is in the active set
func (s *Service) IsFederationActive(fuid int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return false, ErrNotLoaded
	}
	_, ok := s.federations[fuid]
	return ok, nil
}
