package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Load(t *testing.T) {
	configYAML := `
version: "1.0"
ruleset_store:
  path: "${RULESET_STORE_PATH}"
engine:
  progress_interval: "250ms"
  default_overwrite: true
cli:
  verbose: true
  progress_format: "json"
`

	os.Setenv("RULESET_STORE_PATH", "/tmp/filo-rules.yaml")
	defer os.Unsetenv("RULESET_STORE_PATH")

	config, err := LoadConfig(strings.NewReader(configYAML))
	require.NoError(t, err)

	assert.Equal(t, "1.0", config.Version)
	assert.Equal(t, "/tmp/filo-rules.yaml", config.RulesetStore.Path)
	assert.Equal(t, "250ms", config.Engine.ProgressInterval)
	assert.True(t, config.Engine.DefaultOverwrite)
	assert.True(t, config.CLI.Verbose)
	assert.Equal(t, "json", config.CLI.ProgressFormat)
}

func TestConfig_LoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "filo.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: \"1.0\"\n"), 0644))

	config, err := LoadConfigFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1.0", config.Version)
}

func TestConfig_LoadFromFile_MissingFile(t *testing.T) {
	_, err := LoadConfigFromFile("/does/not/exist.yaml")
	assert.Error(t, err)
}

func TestConfig_LoadWithFallback_UsesDefaultWhenNoneFound(t *testing.T) {
	config, err := LoadConfigWithFallback([]string{"/does/not/exist-a.yaml", "/does/not/exist-b.yaml"})
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)
}

func TestConfig_LoadWithFallback_FindsFirstExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "filo.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: \"2.0\"\n"), 0644))

	config, err := LoadConfigWithFallback([]string{"/does/not/exist.yaml", path})
	require.NoError(t, err)
	assert.Equal(t, "2.0", config.Version)
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, "1.0", config.Version)
	assert.Equal(t, "", config.RulesetStore.Path)
	assert.Equal(t, "100ms", config.Engine.ProgressInterval)
	assert.False(t, config.Engine.DefaultOverwrite)
	assert.False(t, config.CLI.Verbose)
	assert.False(t, config.CLI.Quiet)
	assert.Equal(t, "human", config.CLI.ProgressFormat)

	require.NoError(t, config.Validate())
}

func TestGetDefaultConfigPaths(t *testing.T) {
	paths := GetDefaultConfigPaths()
	assert.Len(t, paths, 5)
	assert.Contains(t, paths[0], "filo.yaml")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name:    "valid default",
			config:  DefaultConfig(),
			wantErr: false,
		},
		{
			name: "missing version",
			config: &Config{
				Engine: EngineConfig{ProgressInterval: "100ms"},
				CLI:    CLIConfig{ProgressFormat: "human"},
			},
			wantErr: true,
		},
		{
			name: "invalid progress interval",
			config: &Config{
				Version: "1.0",
				Engine:  EngineConfig{ProgressInterval: "not-a-duration"},
				CLI:     CLIConfig{ProgressFormat: "human"},
			},
			wantErr: true,
		},
		{
			name: "invalid progress format",
			config: &Config{
				Version: "1.0",
				Engine:  EngineConfig{ProgressInterval: "100ms"},
				CLI:     CLIConfig{ProgressFormat: "xml"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_SaveToFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "filo.yaml")

	config := DefaultConfig()
	config.CLI.Verbose = true

	require.NoError(t, config.SaveToFile(path))

	loaded, err := LoadConfigFromFile(path)
	require.NoError(t, err)
	assert.True(t, loaded.CLI.Verbose)
}

func TestConfig_Merge(t *testing.T) {
	base := DefaultConfig()
	override := Config{
		RulesetStore: RulesetStoreConfig{Path: "/custom/path.yaml"},
		CLI:          CLIConfig{Verbose: true, ProgressFormat: "json"},
	}

	merged := base.Merge(override)

	assert.Equal(t, "/custom/path.yaml", merged.RulesetStore.Path)
	assert.True(t, merged.CLI.Verbose)
	assert.Equal(t, "json", merged.CLI.ProgressFormat)
	assert.Equal(t, base.Engine.ProgressInterval, merged.Engine.ProgressInterval)
}
