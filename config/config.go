// Package config loads tool configuration from the working directory
// or the user's home directory, filling unset fields from defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"dario.cat/mergo"
	"github.com/ghodss/yaml"
)

// FileNames are the config files searched for, in order, first in the
// working directory and then in the user's home directory. YAML files
// pass through a JSON round-trip, so one set of field tags serves both
// formats.
var FileNames = []string{".gitsect.json", ".gitsect.yaml"}

// Config aggregates collection, cache, and metric settings.
type Config struct {
	Collection CollectionConfig `json:"collection"`
	Cache      CacheConfig      `json:"cache"`
	Metrics    MetricsConfig    `json:"metrics"`
}

// CollectionConfig controls how history is gathered.
type CollectionConfig struct {
	MaxCommits int      `json:"max_commits"`
	SinceDays  int      `json:"since_days"`
	Include    []string `json:"include"`
	Exclude    []string `json:"exclude"`
	UseGoGit   bool     `json:"use_gogit"`
}

// CacheConfig controls where and how long history is cached. An empty
// Dir falls back to the per-user default at wiring time.
type CacheConfig struct {
	Dir      string `json:"dir"`
	TTLHours int    `json:"ttl_hours"`
}

// MetricsConfig selects and tunes the analysis metrics. An empty
// Enabled list runs every registered metric.
type MetricsConfig struct {
	Enabled  []string       `json:"enabled"`
	Limit    int            `json:"limit"`
	Churn    ChurnConfig    `json:"churn"`
	Coupling CouplingConfig `json:"coupling"`
	Hotspot  HotspotConfig  `json:"hotspot"`
}

// ChurnConfig tunes the code churn metric.
type ChurnConfig struct {
	Risk RiskBands `json:"risk"`
}

// CouplingConfig tunes the change coupling metric.
type CouplingConfig struct {
	// MinStrength is the co-change ratio above which an unmodified
	// coupled file is reported during impact analysis.
	MinStrength float64 `json:"min_strength"`
}

// HotspotConfig tunes the hotspot metric.
type HotspotConfig struct {
	// Percentile is the score percentile above which a file is
	// reported as a hotspot.
	Percentile float64 `json:"percentile"`
}

// RiskBands classify a score percentile into a severity label.
type RiskBands struct {
	Critical float64 `json:"critical"`
	High     float64 `json:"high"`
	Medium   float64 `json:"medium"`
}

// Classify maps a percentile to its severity label, "low" when no
// band matches.
func (r RiskBands) Classify(percentile float64) string {
	switch {
	case percentile > r.Critical:
		return "critical"
	case percentile > r.High:
		return "high"
	case percentile > r.Medium:
		return "medium"
	}
	return "low"
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		Cache: CacheConfig{
			TTLHours: 24,
		},
		Metrics: MetricsConfig{
			Limit: 10,
			Churn: ChurnConfig{
				Risk: RiskBands{Critical: 0.9, High: 0.8, Medium: 0.6},
			},
			Coupling: CouplingConfig{MinStrength: 0.7},
			Hotspot:  HotspotConfig{Percentile: 0.7},
		},
	}
}

// Load reads the first config file found in the search path and merges
// it over the defaults. No file found means defaults; an explicit path
// that cannot be read is an error.
func Load(path string) (*Config, error) {
	defaults := DefaultConfig()

	if path != "" {
		return loadFile(path, defaults)
	}

	for _, dir := range searchDirs() {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err != nil {
				continue
			}
			return loadFile(candidate, defaults)
		}
	}
	return defaults, nil
}

func searchDirs() []string {
	dirs := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, home)
	}
	return dirs
}

// loadFile decodes one file and fills its unset fields from defaults.
func loadFile(path string, defaults *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := mergo.Merge(&cfg, *defaults); err != nil {
		return nil, fmt.Errorf("apply config defaults: %w", err)
	}
	return &cfg, nil
}
