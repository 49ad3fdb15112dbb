// Package config defines filo's on-disk application configuration — the
// ruleset store location, engine defaults, and CLI defaults — distinct
// from internal/rulesetstore, which persists the rulesets themselves.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents filo's application configuration.
type Config struct {
	Version      string             `yaml:"version"`
	RulesetStore RulesetStoreConfig `yaml:"ruleset_store"`
	Engine       EngineConfig       `yaml:"engine"`
	CLI          CLIConfig          `yaml:"cli"`
}

// RulesetStoreConfig overrides where the persisted rulesets file lives.
// An empty Path defers to rulesetstore.DefaultPath.
type RulesetStoreConfig struct {
	Path string `yaml:"path"`
}

// EngineConfig holds engine settings loaded from the config file. The
// engine and the CLI commands do not read these fields.
type EngineConfig struct {
	ProgressInterval string `yaml:"progress_interval"`
	DefaultOverwrite bool   `yaml:"default_overwrite"`
}

// CLIConfig holds verbosity and progress-format settings loaded from the
// config file. The CLI commands take these from their flags and do not read
// these fields.
type CLIConfig struct {
	Verbose        bool   `yaml:"verbose"`
	Quiet          bool   `yaml:"quiet"`
	ProgressFormat string `yaml:"progress_format"`
}

// LoadConfig loads configuration from a reader with environment variable expansion
func LoadConfig(reader io.Reader) (*Config, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	expandedContent := expandEnvVars(string(content))

	var config Config
	if err := yaml.Unmarshal([]byte(expandedContent), &config); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	return &config, nil
}

// LoadConfigFromFile loads configuration from a file
func LoadConfigFromFile(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening config file %s: %w", path, err)
	}
	defer file.Close()

	return LoadConfig(file)
}

// LoadConfigWithFallback tries to load config from multiple paths, returns default if none found
func LoadConfigWithFallback(paths []string) (*Config, error) {
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return LoadConfigFromFile(path)
		}
	}

	return DefaultConfig(), nil
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Version:      "1.0",
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

// GetDefaultConfigPaths returns default configuration file paths to search
func GetDefaultConfigPaths() []string {
	homeDir, _ := os.UserHomeDir()
	currentDir, _ := os.Getwd()

	return []string{
		filepath.Join(currentDir, ".filo.yaml"),
		filepath.Join(currentDir, "filo.yaml"),
		filepath.Join(homeDir, ".config", "filo", "config.yaml"),
		filepath.Join(homeDir, ".filo.yaml"),
		"/etc/filo/config.yaml",
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Version == "" {
		return fmt.Errorf("version is required")
	}

	if c.Engine.ProgressInterval != "" {
		if _, err := time.ParseDuration(c.Engine.ProgressInterval); err != nil {
			return fmt.Errorf("invalid engine progress_interval: %w", err)
		}
	}

	validFormats := map[string]bool{"human": true, "json": true}
	if c.CLI.ProgressFormat != "" && !validFormats[c.CLI.ProgressFormat] {
		return fmt.Errorf("invalid cli progress_format: %s", c.CLI.ProgressFormat)
	}

	return nil
}

// SaveToFile saves the configuration to a file
func (c *Config) SaveToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one, with the other config taking precedence
func (c *Config) Merge(other Config) *Config {
	result := *c

	if other.Version != "" {
		result.Version = other.Version
	}

	if other.RulesetStore.Path != "" {
		result.RulesetStore.Path = other.RulesetStore.Path
	}

	if other.Engine.ProgressInterval != "" {
		result.Engine.ProgressInterval = other.Engine.ProgressInterval
	}
	if other.Engine.DefaultOverwrite {
		result.Engine.DefaultOverwrite = other.Engine.DefaultOverwrite
	}

	if other.CLI.Verbose {
		result.CLI.Verbose = other.CLI.Verbose
	}
	if other.CLI.Quiet {
		result.CLI.Quiet = other.CLI.Quiet
	}
	if other.CLI.ProgressFormat != "" {
		result.CLI.ProgressFormat = other.CLI.ProgressFormat
	}

	return &result
}

// expandEnvVars expands environment variables in the format ${VAR_NAME}
func expandEnvVars(content string) string {
	pattern := regexp.MustCompile(`\$\{([^}]+)\}`)

	return pattern.ReplaceAllStringFunc(content, func(match string) string {
		varName := match[2 : len(match)-1]
		return os.Getenv(varName)
	})
}
