package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, "", config.RulesetStore.Path)
	assert.Equal(t, "100ms", config.Engine.ProgressInterval)
	assert.False(t, config.Engine.DefaultOverwrite)
	assert.Equal(t, "human", config.CLI.ProgressFormat)
}

func TestLoader_Load_NoConfigFile(t *testing.T) {
	tempDir := t.TempDir()
	oldDir, _ := os.Getwd()
	defer os.Chdir(oldDir)
	os.Chdir(tempDir)

	loader := NewLoader()
	config, err := loader.Load()

	require.NoError(t, err)
	require.NotNil(t, config)

	assert.Equal(t, "100ms", config.Engine.ProgressInterval)
	assert.Equal(t, "human", config.CLI.ProgressFormat)
}

func TestLoader_Load_ValidConfigFile(t *testing.T) {
	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "filo.yaml")

	configContent := `
ruleset_store:
  path: "/custom/rules.yaml"
engine:
  progress_interval: "250ms"
  default_overwrite: true
cli:
  verbose: true
  progress_format: "json"
`

	err := os.WriteFile(configFile, []byte(configContent), 0644)
	require.NoError(t, err)

	oldDir, _ := os.Getwd()
	defer os.Chdir(oldDir)
	os.Chdir(tempDir)

	loader := NewLoader()
	config, err := loader.Load()

	require.NoError(t, err)
	require.NotNil(t, config)

	assert.Contains(t, config.RulesetStore.Path, "rules.yaml")
	assert.Equal(t, "250ms", config.Engine.ProgressInterval)
	assert.True(t, config.Engine.DefaultOverwrite)
	assert.True(t, config.CLI.Verbose)
	assert.Equal(t, "json", config.CLI.ProgressFormat)
}

func TestLoader_Load_InvalidYAML(t *testing.T) {
	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "filo.yaml")

	invalidYAML := `
engine:
  progress_interval: "100ms"
  invalid_yaml: [unclosed list
`

	err := os.WriteFile(configFile, []byte(invalidYAML), 0644)
	require.NoError(t, err)

	oldDir, _ := os.Getwd()
	defer os.Chdir(oldDir)
	os.Chdir(tempDir)

	loader := NewLoader()
	_, err = loader.Load()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoader_Validate(t *testing.T) {
	loader := NewLoader()

	tests := []struct {
		name        string
		config      *Config
		expectError bool
		errorMsg    string
	}{
		{
			name:        "valid config",
			config:      DefaultConfig(),
			expectError: false,
		},
		{
			name: "invalid progress format",
			config: &Config{
				CLI: CLIConfig{ProgressFormat: "xml"},
			},
			expectError: true,
			errorMsg:    "invalid cli.progress_format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := loader.Validate(tt.config)

			if tt.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoader_ExpandPath(t *testing.T) {
	loader := NewLoader()

	tests := []struct {
		name     string
		input    string
		expected func(string) bool
	}{
		{
			name:  "empty path",
			input: "",
			expected: func(result string) bool {
				return result == ""
			},
		},
		{
			name:  "current directory",
			input: ".",
			expected: func(result string) bool {
				abs, _ := filepath.Abs(".")
				return result == abs
			},
		},
		{
			name:  "home directory expansion",
			input: "~",
			expected: func(result string) bool {
				home, _ := os.UserHomeDir()
				return result == home
			},
		},
		{
			name:  "home subdirectory expansion",
			input: "~/filo-rules",
			expected: func(result string) bool {
				home, _ := os.UserHomeDir()
				return result == filepath.Join(home, "filo-rules")
			},
		},
		{
			name:  "absolute path",
			input: "/tmp",
			expected: func(result string) bool {
				return result == "/tmp"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := loader.expandPath(tt.input)
			assert.True(t, tt.expected(result), "Expected validation failed for result: %s", result)
		})
	}
}

func TestLoader_EnvironmentVariableOverrides(t *testing.T) {
	os.Setenv("FILO_CLI_PROGRESS_FORMAT", "json")
	os.Setenv("FILO_ENGINE_DEFAULT_OVERWRITE", "true")
	defer func() {
		os.Unsetenv("FILO_CLI_PROGRESS_FORMAT")
		os.Unsetenv("FILO_ENGINE_DEFAULT_OVERWRITE")
	}()

	tempDir := t.TempDir()
	oldDir, _ := os.Getwd()
	defer os.Chdir(oldDir)
	os.Chdir(tempDir)

	loader := NewLoader()
	config, err := loader.Load()

	require.NoError(t, err)
	require.NotNil(t, config)

	assert.Equal(t, "json", config.CLI.ProgressFormat)
	assert.True(t, config.Engine.DefaultOverwrite)
}
