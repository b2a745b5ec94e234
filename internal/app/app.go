package app

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/sfb/internal/common"
	"github.com/ternarybob/sfb/internal/handlers"
	"github.com/ternarybob/sfb/internal/interfaces"
	"github.com/ternarybob/sfb/internal/models"
	"github.com/ternarybob/sfb/internal/services/assessment"
	"github.com/ternarybob/sfb/internal/services/benchmark"
	"github.com/ternarybob/sfb/internal/services/efficiency"
	"github.com/ternarybob/sfb/internal/services/reportcache"
	"github.com/ternarybob/sfb/internal/services/status"
	"github.com/ternarybob/sfb/internal/services/terms"
	"github.com/ternarybob/sfb/internal/services/trust"
	"github.com/ternarybob/sfb/internal/storage"
)

// App holds all application components and dependencies
type App struct {
	Config         *common.Config
	Logger         arbor.ILogger
	StorageManager interfaces.StorageManager
	ReportCache    interfaces.ReportCache // nil when caching is disabled

	// Report services
	TermResolver      *terms.Resolver
	BenchmarkMatcher  *benchmark.Matcher
	AssessmentService *assessment.Builder
	TrustService      *trust.Aggregator
	EfficiencyService *efficiency.Service

	// Active establishment ids
	StatusService *status.Service

	// HTTP handlers
	APIHandler            *handlers.APIHandler
	SelfAssessmentHandler *handlers.SelfAssessmentHandler
	EfficiencyHandler     *handlers.EfficiencyHandler
	StatusHandler         *handlers.StatusHandler
	LookupHandler         *handlers.LookupHandler
}

// New initializes the application with all dependencies
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	// Initialize database
	if err := app.initDatabase(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize services
	if err := app.initServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	// Initialize handlers
	app.initHandlers()

	logger.Info().
		Str("cache_backend", cfg.Cache.Backend).
		Str("sixteen_plus_policy", cfg.Assessment.SixteenPlusPolicy).
		Bool("status_enabled", cfg.Status.Enabled).
		Msg("Application initialization complete")

	return app, nil
}

// initDatabase initializes the storage layer (Badger), loads fixtures and opens the report cache
func (a *App) initDatabase() error {
	storageManager, err := storage.NewStorageManager(a.Logger, a.Config)
	if err != nil {
		return fmt.Errorf("failed to create storage manager: %w", err)
	}

	a.StorageManager = storageManager
	a.Logger.Debug().
		Str("storage", "badger").
		Str("path", a.Config.Storage.Badger.Path).
		Msg("Storage layer initialized")

	// Load reference data from fixture files
	if fixturesDir := a.Config.Storage.Fixtures.Dir; fixturesDir != "" {
		if err := a.StorageManager.LoadFixturesFromFiles(context.Background(), fixturesDir); err != nil {
			// Log warning but don't fail startup
			a.Logger.Warn().Err(err).Msg("Failed to load fixtures from files")
		}
	}

	reportCache, err := storage.NewReportCache(context.Background(), a.Logger, a.Config, a.StorageManager)
	if err != nil {
		return fmt.Errorf("failed to create report cache: %w", err)
	}
	a.ReportCache = reportCache

	return nil
}

// initServices initializes all business services in dependency order
func (a *App) initServices() error {
	centralFinancing, err := models.ParseCentralFinancing(a.Config.Assessment.CentralFinancing)
	if err != nil {
		return err
	}
	hotTTL, err := a.Config.Cache.HotTTLDuration()
	if err != nil {
		return err
	}
	coldTTL, err := a.Config.Cache.ColdTTLDuration()
	if err != nil {
		return err
	}

	contexts := a.StorageManager.ContextStorage()
	financial := a.StorageManager.FinancialStorage()

	a.TermResolver = terms.NewResolver(financial, a.Logger)
	a.BenchmarkMatcher = benchmark.NewMatcher(a.StorageManager.LookupStorage(), a.Logger)
	a.AssessmentService = assessment.NewBuilder(
		contexts,
		financial,
		a.TermResolver,
		a.BenchmarkMatcher,
		centralFinancing,
		a.Logger,
	)

	a.TrustService = trust.NewAggregator(
		contexts,
		financial,
		a.TermResolver,
		a.AssessmentService,
		reportcache.NewStore(a.ReportCache, a.Config.Cache.KeyPrefix, a.Logger),
		trust.Options{
			SixteenPlusPolicy: a.Config.Assessment.SixteenPlusPolicy,
			Concurrency:       a.Config.Assessment.TrustConcurrency,
			HotCount:          a.Config.Cache.HotCount,
			HotTTL:            hotTTL,
			ColdTTL:           coldTTL,
		},
		a.Logger,
	)

	a.EfficiencyService = efficiency.NewService(a.StorageManager.EfficiencyStorage(), a.Logger)

	// Status ids load eagerly; the cron refresh only runs when enabled
	schedule := ""
	if a.Config.Status.Enabled {
		schedule = a.Config.Status.RefreshSchedule
	}
	a.StatusService = status.NewService(contexts, schedule, a.Logger)
	if err := a.StatusService.Start(context.Background()); err != nil {
		return fmt.Errorf("failed to start status service: %w", err)
	}

	return nil
}

// initHandlers initializes all HTTP handlers
func (a *App) initHandlers() {
	a.APIHandler = handlers.NewAPIHandler(a.Config.Cache.Backend, a.Logger)
	a.SelfAssessmentHandler = handlers.NewSelfAssessmentHandler(a.AssessmentService, a.TrustService, a.Logger)
	a.EfficiencyHandler = handlers.NewEfficiencyHandler(a.EfficiencyService, a.Logger)
	a.StatusHandler = handlers.NewStatusHandler(a.StatusService, a.Logger)
	a.LookupHandler = handlers.NewLookupHandler(a.StorageManager.LookupStorage(), a.BenchmarkMatcher, a.Logger)
}

// Close closes all application resources
func (a *App) Close() error {
	// Stop status refresh
	if a.StatusService != nil {
		a.StatusService.Stop()
		a.Logger.Info().Msg("Status refresh stopped")
	}

	// Close a remote report cache; the badger cache closes with storage
	if a.ReportCache != nil && a.Config.Cache.Backend == common.CacheBackendRedis {
		if err := a.ReportCache.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close report cache")
		}
	}

	// Close storage
	if a.StorageManager != nil {
		if err := a.StorageManager.Close(); err != nil {
			return fmt.Errorf("failed to close storage: %w", err)
		}
		a.Logger.Info().Msg("Storage closed")
	}

	return nil
}
