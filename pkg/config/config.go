// Package config provides a viper-backed loader that layers a YAML config
// file, environment variables, and built-in defaults into a single
// application Config, independent of the lower-level internal/config
// struct (which backs direct file load/save from the CLI's --config flag).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete filo application configuration.
type Config struct {
	RulesetStore RulesetStoreConfig `mapstructure:"ruleset_store" yaml:"ruleset_store"`
	Engine       EngineConfig       `mapstructure:"engine" yaml:"engine"`
	CLI          CLIConfig          `mapstructure:"cli" yaml:"cli"`
}

// RulesetStoreConfig overrides where the persisted rulesets file lives.
type RulesetStoreConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// EngineConfig holds engine settings loaded by the Loader. The engine does
// not read these fields.
type EngineConfig struct {
	ProgressInterval string `mapstructure:"progress_interval" yaml:"progress_interval"`
	DefaultOverwrite bool   `mapstructure:"default_overwrite" yaml:"default_overwrite"`
}

// CLIConfig holds verbosity and progress-format settings loaded by the
// Loader. The CLI commands do not read these fields.
type CLIConfig struct {
	Verbose        bool   `mapstructure:"verbose" yaml:"verbose"`
	Quiet          bool   `mapstructure:"quiet" yaml:"quiet"`
	ProgressFormat string `mapstructure:"progress_format" yaml:"progress_format"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		RulesetStore: RulesetStoreConfig{Path: ""},
		Engine: EngineConfig{
			ProgressInterval: "100ms",
			DefaultOverwrite: false,
		},
		CLI: CLIConfig{
			Verbose:        false,
			Quiet:          false,
			ProgressFormat: "human",
		},
	}
}

// Loader handles configuration loading and merging
type Loader struct {
	searchPaths []string
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		searchPaths: []string{
			".",
			"~",
			"/etc/filo",
		},
	}
}

// Load loads configuration from multiple sources with precedence
func (l *Loader) Load() (*Config, error) {
	v := viper.New()

	config := DefaultConfig()

	v.SetConfigName("filo")
	v.SetConfigType("yaml")

	for _, path := range l.searchPaths {
		expandedPath := l.expandPath(path)
		v.AddConfigPath(expandedPath)
	}

	v.SetEnvPrefix("FILO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Unmarshal only sees keys viper knows about; binding each one lets a
	// FILO_* variable apply even when no config file was found.
	for _, key := range []string{
		"ruleset_store.path", "engine.progress_interval", "engine.default_overwrite",
		"cli.verbose", "cli.quiet", "cli.progress_format",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("binding environment for %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := l.Validate(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if config.RulesetStore.Path != "" {
		config.RulesetStore.Path = l.expandPath(config.RulesetStore.Path)
	}

	return config, nil
}

// expandPath expands ~ to home directory and resolves relative paths
func (l *Loader) expandPath(path string) string {
	if path == "" {
		return path
	}

	if path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}

	return abs
}

// Validate performs basic validation on the configuration
func (l *Loader) Validate(config *Config) error {
	validFormats := map[string]bool{"human": true, "json": true, "": true}
	if !validFormats[config.CLI.ProgressFormat] {
		return fmt.Errorf("invalid cli.progress_format: %s", config.CLI.ProgressFormat)
	}

	return nil
}
