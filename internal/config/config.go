package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"ReceiptLedger/internal/domain"
)

const (
	configPathEnv = "RECEIPT_LEDGER_CONFIG"
	storeEnv      = "RECEIPT_LEDGER_STORE"
	logLevelEnv   = "RECEIPT_LEDGER_LOG_LEVEL"

	// SpanDataset uses the dataset-wide day span for every group's cadence
	// estimate; SpanGroup uses each group's own first/last range.
	SpanDataset = "dataset"
	SpanGroup   = "group"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging LoggingConfig  `yaml:"logging"`
	Store   string         `yaml:"store"`
	Summary SummaryConfig  `yaml:"summary"`
	Vendors []VendorConfig `yaml:"vendors"`
}

// LoggingConfig controls slog verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// SummaryConfig tunes the roll-up aggregator.
type SummaryConfig struct {
	SpanMode string `yaml:"spanMode"`
}

// GroupLocalSpan reports whether the cadence estimate should use each
// group's own date range instead of the dataset-wide span.
func (s SummaryConfig) GroupLocalSpan() bool {
	return s.SpanMode == SpanGroup
}

// VendorConfig declares one vendor's ordered grouping-key candidates.
type VendorConfig struct {
	Name      string   `yaml:"name"`
	KeyFields []string `yaml:"keyFields"`
}

// KeyFields flattens the vendor list into the lookup table the aggregator
// consumes.
func (c Config) KeyFields() map[string][]string {
	tables := map[string][]string{}
	for _, v := range c.Vendors {
		if v.Name != "" && len(v.KeyFields) > 0 {
			tables[v.Name] = v.KeyFields
		}
	}
	return tables
}

// Load reads YAML configuration (if present) and applies environment
// overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(storeEnv); v != "" {
		c.Store = v
	}
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	if override.Store != "" {
		base.Store = override.Store
	}
	if override.Summary.SpanMode != "" {
		base.Summary.SpanMode = override.Summary.SpanMode
	}
	if len(override.Vendors) > 0 {
		base.Vendors = override.Vendors
	}
	return base
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Store:   domain.DefaultStore,
		Summary: SummaryConfig{SpanMode: SpanDataset},
		Vendors: []VendorConfig{
			{Name: domain.DefaultStore, KeyFields: []string{"UPC"}},
		},
	}
}
