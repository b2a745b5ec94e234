package badger

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/sfb/internal/models"
	"gopkg.in/yaml.v3"
)

// FixtureFile is the layout of a reference data file. Every section is optional.
// Format (TOML):
//
//	[[latest_data_years]]
//	finance_type = "Maintained"
//	term = 2023
//
//	[[establishments]]
//	urn = 138082
//	name = "Example Primary"
//
// YAML files use the same section and field names.
type FixtureFile struct {
	LatestDataYears   []models.LatestDataYear       `toml:"latest_data_years" yaml:"latest_data_years"`
	Establishments    []models.Establishment        `toml:"establishments" yaml:"establishments"`
	FinancialRecords  []models.FinancialRecord      `toml:"financial_records" yaml:"financial_records"`
	TrustRecords      []models.TrustFinancialRecord `toml:"trust_records" yaml:"trust_records"`
	SizeLookups       []models.SizeLookup           `toml:"size_lookups" yaml:"size_lookups"`
	FSMLookups        []models.FSMLookup            `toml:"fsm_lookups" yaml:"fsm_lookups"`
	Thresholds        []models.RatingThreshold      `toml:"thresholds" yaml:"thresholds"`
	EfficiencyMetrics []models.EfficiencyMetric     `toml:"efficiency_metrics" yaml:"efficiency_metrics"`
}

// LoadFixturesFromFiles loads every *.toml, *.yaml and *.yml file in dirPath into storage.
// Files are processed in name order. Invalid files and records are logged and skipped.
func LoadFixturesFromFiles(ctx context.Context, m *Manager, dirPath string, logger arbor.ILogger) error {
	logger.Debug().Str("dir", dirPath).Msg("Loading fixtures from files")

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug().Str("dir", dirPath).Msg("Fixtures directory not found, skipping")
			return nil
		}
		return fmt.Errorf("failed to read fixtures directory: %w", err)
	}

	names := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".toml", ".yaml", ".yml":
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	loadedCount := 0
	errorCount := 0

	for _, name := range names {
		filePath := filepath.Join(dirPath, name)

		fixture, err := parseFixtureFile(filePath)
		if err != nil {
			logger.Warn().Err(err).Str("file", filePath).Msg("Failed to parse fixture file")
			errorCount++
			continue
		}

		loaded, failed := m.saveFixture(ctx, fixture)
		loadedCount += loaded
		errorCount += failed

		logger.Debug().
			Str("file", name).
			Int("records", loaded).
			Int("errors", failed).
			Msg("Loaded fixture file")
	}

	logger.Info().
		Int("files", len(names)).
		Int("loaded", loadedCount).
		Int("errors", errorCount).
		Msg("Finished loading fixtures")

	return nil
}

func parseFixtureFile(filePath string) (*FixtureFile, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var fixture FixtureFile
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".toml":
		err = toml.Unmarshal(content, &fixture)
	default:
		err = yaml.Unmarshal(content, &fixture)
	}
	if err != nil {
		return nil, err
	}
	return &fixture, nil
}

func (m *Manager) saveFixture(ctx context.Context, fixture *FixtureFile) (loaded, failed int) {
	record := func(err error, kind string) {
		if err != nil {
			m.logger.Warn().Err(err).Str("kind", kind).Msg("Failed to save fixture record")
			failed++
			return
		}
		loaded++
	}

	for _, latest := range fixture.LatestDataYears {
		financeType, err := models.ParseFinanceType(string(latest.FinanceType))
		if err == nil {
			err = m.financial.SetLatestDataYear(ctx, financeType, latest.Term)
		}
		record(err, "latest_data_year")
	}
	for i := range fixture.Establishments {
		record(m.context.SaveEstablishment(ctx, &fixture.Establishments[i]), "establishment")
	}
	for i := range fixture.FinancialRecords {
		record(m.financial.SaveSchoolRecord(ctx, &fixture.FinancialRecords[i]), "financial_record")
	}
	for i := range fixture.TrustRecords {
		record(m.financial.SaveTrustRecord(ctx, &fixture.TrustRecords[i]), "trust_record")
	}
	for i := range fixture.SizeLookups {
		record(m.lookup.SaveSizeLookup(ctx, &fixture.SizeLookups[i]), "size_lookup")
	}
	for i := range fixture.FSMLookups {
		record(m.lookup.SaveFSMLookup(ctx, &fixture.FSMLookups[i]), "fsm_lookup")
	}
	for i := range fixture.Thresholds {
		record(m.lookup.SaveThreshold(ctx, &fixture.Thresholds[i]), "threshold")
	}
	for i := range fixture.EfficiencyMetrics {
		record(m.efficiency.SaveEfficiencyMetric(ctx, &fixture.EfficiencyMetrics[i]), "efficiency_metric")
	}

	return loaded, failed
}
