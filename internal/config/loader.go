// Package config loads thingsexport settings from YAML files and the
// environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. THINGSEXPORT_SOURCE or
// THINGSEXPORT_REPORT_SANITIZE_MENTIONS.
const EnvPrefix = "THINGSEXPORT"

// Load merges defaults, the global config file, the file at path (if any)
// and the environment, in increasing order of precedence. A missing global
// file is ignored; a missing explicit file is an error. The result is not
// validated, since command-line flags may still override it.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if global := GlobalConfigPath(); global != "" {
		if _, err := os.Stat(global); err == nil {
			if err := mergeFile(v, global); err != nil {
				return nil, err
			}
		}
	}

	if path != "" {
		if err := mergeFile(v, path); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

func mergeFile(v *viper.Viper, path string) error {
	v.SetConfigFile(path)
	if err := v.MergeInConfig(); err != nil {
		return fmt.Errorf("could not read config '%s': %w", path, err)
	}
	return nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("source", cfg.Source)
	v.SetDefault("snapshot", cfg.Snapshot)
	v.SetDefault("osascript", cfg.Osascript)
	v.SetDefault("output", cfg.Output)
	v.SetDefault("format", cfg.Format)
	v.SetDefault("cycle_weeks", cfg.CycleWeeks)
	v.SetDefault("scan", cfg.Scan)
	v.SetDefault("tags", cfg.Tags)
	v.SetDefault("report.sanitize_mentions", cfg.Report.SanitizeMentions)
	v.SetDefault("report.projects_only", cfg.Report.ProjectsOnly)
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	switch c.Source {
	case SourceOsascript:
	case SourceFile:
		if c.Snapshot == "" {
			return fmt.Errorf("source %q requires a snapshot path", SourceFile)
		}
	default:
		return fmt.Errorf("unknown source %q (want %s or %s)", c.Source, SourceOsascript, SourceFile)
	}

	switch c.Format {
	case FormatJSON, FormatMarkdown:
	default:
		return fmt.Errorf("unknown format %q (want %s or %s)", c.Format, FormatJSON, FormatMarkdown)
	}

	switch c.Scan {
	case "", "early", "full":
	default:
		return fmt.Errorf("unknown scan strategy %q (want early or full)", c.Scan)
	}

	if c.CycleWeeks <= 0 {
		return fmt.Errorf("cycle_weeks must be positive, got %d", c.CycleWeeks)
	}
	return nil
}

// GlobalConfigPath returns the path to the per-user config file
func GlobalConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "thingsexport", "config.yaml")
}
