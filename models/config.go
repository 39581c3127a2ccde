// Package models defines data structures for configuration and records.
package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds runtime configuration for the pipeline. Values come from a
// YAML file; CLI flags override individual fields.
type Config struct {
	// WorkerCount is the number of archives preprocessed in parallel.
	WorkerCount int `yaml:"worker_count"`

	// MajorityLanguage is the language expected to dominate the corpus.
	// Posts in it face a stricter score gate so they do not drown out
	// everything else.
	MajorityLanguage string `yaml:"majority_language"`

	// MinConfidence is the language-detector confidence floor; detections
	// below it are treated as undetermined.
	MinConfidence float64 `yaml:"min_confidence"`

	// BannedGroupsFile points at the precomputed banned-group hash list.
	// Empty means no groups are banned.
	BannedGroupsFile string `yaml:"banned_groups_file"`

	// StatsDB is the optional SQLite file recording run statistics.
	StatsDB string `yaml:"stats_db"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		WorkerCount:      4,
		MajorityLanguage: "en",
		MinConfidence:    0.7,
	}
}

// LoadConfig reads a YAML config file, filling unset fields with defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = DefaultConfig().WorkerCount
	}
	if cfg.MajorityLanguage == "" {
		cfg.MajorityLanguage = DefaultConfig().MajorityLanguage
	}
	return cfg, nil
}
