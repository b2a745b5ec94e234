package common

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/robfig/cron/v3"
	"github.com/ternarybob/sfb/internal/models"
)

// Config represents the application configuration
type Config struct {
	Environment string           `toml:"environment"` // "development" or "production"
	Server      ServerConfig     `toml:"server"`
	Storage     StorageConfig    `toml:"storage"`
	Cache       CacheConfig      `toml:"cache"`
	Assessment  AssessmentConfig `toml:"assessment"`
	Status      StatusConfig     `toml:"status"`
	Logging     LoggingConfig    `toml:"logging"`
}

type ServerConfig struct {
	Port            int     `toml:"port"`
	Host            string  `toml:"host"`
	ShutdownTimeout string  `toml:"shutdown_timeout"` // e.g. "10s"
	RateLimit       float64 `toml:"rate_limit"`       // Requests per second across all clients, 0 disables
	RateBurst       int     `toml:"rate_burst"`
}

type StorageConfig struct {
	Type     string         `toml:"type"` // Only "badger" is supported
	Badger   BadgerConfig   `toml:"badger"`
	Fixtures FixturesConfig `toml:"fixtures"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path"`             // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"` // Delete database on startup for clean test runs
}

// FixturesConfig points at reference data files loaded into the store on startup
type FixturesConfig struct {
	Dir string `toml:"dir"` // Directory of *.toml / *.yaml fixture files, empty disables loading
}

// CacheConfig controls the trust report cache
type CacheConfig struct {
	Backend   string      `toml:"backend"`    // "badger", "redis" or "none"
	HotCount  int         `toml:"hot_count"`  // Leading academies cached with HotTTL
	HotTTL    string      `toml:"hot_ttl"`    // e.g. "1h"
	ColdTTL   string      `toml:"cold_ttl"`   // "0" or "" = no expiry
	KeyPrefix string      `toml:"key_prefix"` // Prepended to every cache key
	Redis     RedisConfig `toml:"redis"`
}

type RedisConfig struct {
	Address  string `toml:"address"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// AssessmentConfig controls report building
type AssessmentConfig struct {
	SixteenPlusPolicy string `toml:"sixteen_plus_policy"` // "exclude" or "roster"
	TrustConcurrency  int    `toml:"trust_concurrency"`   // Academies assessed in parallel per trust request
	CentralFinancing  string `toml:"central_financing"`   // "include" or "exclude"
}

// StatusConfig controls the active establishment id refresh
type StatusConfig struct {
	Enabled         bool   `toml:"enabled"`
	RefreshSchedule string `toml:"refresh_schedule"` // Standard 5-field cron expression
}

type LoggingConfig struct {
	Level      string   `toml:"level"`       // "debug", "info", "warn", "error"
	Output     []string `toml:"output"`      // "stdout", "file"
	TimeFormat string   `toml:"time_format"` // Time format for logs (default: "15:04:05.000")
	Dir        string   `toml:"dir"`         // Directory for file output (default: "./logs")
}

const (
	SixteenPlusExclude = "exclude"
	SixteenPlusRoster  = "roster"

	CacheBackendBadger = "badger"
	CacheBackendRedis  = "redis"
	CacheBackendNone   = "none"
)

// NewDefaultConfig creates a configuration with default values
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port:            8080,
			Host:            "localhost",
			ShutdownTimeout: "10s",
			RateLimit:       0, // Disabled by default
			RateBurst:       50,
		},
		Storage: StorageConfig{
			Type: "badger",
			Badger: BadgerConfig{
				Path: "./data",
			},
		},
		Cache: CacheConfig{
			Backend:   CacheBackendBadger,
			HotCount:  7,
			HotTTL:    "1h",
			ColdTTL:   "0",
			KeyPrefix: "sad",
			Redis: RedisConfig{
				Address: "localhost:6379",
			},
		},
		Assessment: AssessmentConfig{
			SixteenPlusPolicy: SixteenPlusExclude,
			TrustConcurrency:  4,
			CentralFinancing:  "include",
		},
		Status: StatusConfig{
			Enabled:         true,
			RefreshSchedule: "*/30 * * * *", // Every 30 minutes
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout", "file"},
			Dir:    "./logs",
		},
	}
}

// LoadFromFiles loads configuration with priority: default -> file1 -> file2 -> ... -> .env -> env -> CLI
// Later files override earlier files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	// A missing .env is normal outside development
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// applyEnvOverrides applies SFB_* environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("SFB_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	// Server configuration
	if port := os.Getenv("SFB_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("SFB_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if rateLimit := os.Getenv("SFB_SERVER_RATE_LIMIT"); rateLimit != "" {
		if r, err := strconv.ParseFloat(rateLimit, 64); err == nil {
			config.Server.RateLimit = r
		}
	}

	// Storage configuration
	if badgerPath := os.Getenv("SFB_BADGER_PATH"); badgerPath != "" {
		config.Storage.Badger.Path = badgerPath
	}
	if fixturesDir := os.Getenv("SFB_FIXTURES_DIR"); fixturesDir != "" {
		config.Storage.Fixtures.Dir = fixturesDir
	}

	// Cache configuration
	if backend := os.Getenv("SFB_CACHE_BACKEND"); backend != "" {
		config.Cache.Backend = backend
	}
	if hotTTL := os.Getenv("SFB_CACHE_HOT_TTL"); hotTTL != "" {
		config.Cache.HotTTL = hotTTL
	}
	if coldTTL := os.Getenv("SFB_CACHE_COLD_TTL"); coldTTL != "" {
		config.Cache.ColdTTL = coldTTL
	}
	if hotCount := os.Getenv("SFB_CACHE_HOT_COUNT"); hotCount != "" {
		if c, err := strconv.Atoi(hotCount); err == nil {
			config.Cache.HotCount = c
		}
	}
	if address := os.Getenv("SFB_REDIS_ADDRESS"); address != "" {
		config.Cache.Redis.Address = address
	}
	if password := os.Getenv("SFB_REDIS_PASSWORD"); password != "" {
		config.Cache.Redis.Password = password
	}
	if db := os.Getenv("SFB_REDIS_DB"); db != "" {
		if d, err := strconv.Atoi(db); err == nil {
			config.Cache.Redis.DB = d
		}
	}

	// Assessment configuration
	if policy := os.Getenv("SFB_SIXTEEN_PLUS_POLICY"); policy != "" {
		config.Assessment.SixteenPlusPolicy = policy
	}
	if concurrency := os.Getenv("SFB_TRUST_CONCURRENCY"); concurrency != "" {
		if c, err := strconv.Atoi(concurrency); err == nil {
			config.Assessment.TrustConcurrency = c
		}
	}
	if cf := os.Getenv("SFB_CENTRAL_FINANCING"); cf != "" {
		config.Assessment.CentralFinancing = cf
	}

	// Status configuration
	if schedule := os.Getenv("SFB_STATUS_REFRESH_SCHEDULE"); schedule != "" {
		config.Status.RefreshSchedule = schedule
	}

	// Logging configuration
	if level := os.Getenv("SFB_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if output := os.Getenv("SFB_LOG_OUTPUT"); output != "" {
		outputs := []string{}
		for _, o := range strings.Split(output, ",") {
			if trimmed := strings.TrimSpace(o); trimmed != "" {
				outputs = append(outputs, trimmed)
			}
		}
		if len(outputs) > 0 {
			config.Logging.Output = outputs
		}
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// Validate checks values that cannot be defaulted silently
func (c *Config) Validate() error {
	if c.Storage.Type != "" && c.Storage.Type != "badger" {
		return fmt.Errorf("unsupported storage type: %s (only 'badger' is supported)", c.Storage.Type)
	}

	switch c.Cache.Backend {
	case CacheBackendBadger, CacheBackendRedis, CacheBackendNone:
	default:
		return fmt.Errorf("unsupported cache backend: %s", c.Cache.Backend)
	}

	if _, err := c.Cache.HotTTLDuration(); err != nil {
		return err
	}
	if _, err := c.Cache.ColdTTLDuration(); err != nil {
		return err
	}

	switch c.Assessment.SixteenPlusPolicy {
	case SixteenPlusExclude, SixteenPlusRoster:
	default:
		return fmt.Errorf("invalid sixteen_plus_policy: %s (expected 'exclude' or 'roster')", c.Assessment.SixteenPlusPolicy)
	}

	if _, err := models.ParseCentralFinancing(c.Assessment.CentralFinancing); err != nil {
		return err
	}

	if c.Assessment.TrustConcurrency < 1 {
		return fmt.Errorf("trust_concurrency must be at least 1, got %d", c.Assessment.TrustConcurrency)
	}

	if c.Status.Enabled {
		if err := ValidateSchedule(c.Status.RefreshSchedule); err != nil {
			return fmt.Errorf("invalid status refresh_schedule: %w", err)
		}
	}

	return nil
}

// HotTTLDuration parses the TTL applied to the leading academies of a trust
func (c CacheConfig) HotTTLDuration() (time.Duration, error) {
	return parseTTL("hot_ttl", c.HotTTL)
}

// ColdTTLDuration parses the TTL applied to the remaining academies; zero means no expiry
func (c CacheConfig) ColdTTLDuration() (time.Duration, error) {
	return parseTTL("cold_ttl", c.ColdTTL)
}

func parseTTL(name, value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" || value == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid cache %s %q: %w", name, value, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("cache %s must not be negative, got %s", name, value)
	}
	return d, nil
}

// ShutdownTimeoutDuration returns the graceful shutdown timeout, defaulting to 10s
func (c ServerConfig) ShutdownTimeoutDuration() time.Duration {
	if d, err := time.ParseDuration(c.ShutdownTimeout); err == nil && d > 0 {
		return d
	}
	return 10 * time.Second
}

// ValidateSchedule validates a standard 5-field cron expression
func ValidateSchedule(schedule string) error {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	if _, err := parser.Parse(schedule); err != nil {
		return fmt.Errorf("invalid cron expression: %w", err)
	}
	return nil
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
