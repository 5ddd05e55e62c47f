package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir switches to dir for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	originalDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(originalDir))
	})
}

func TestInitializeConfig_Defaults(t *testing.T) {
	clearTestEnvVars(t)
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.Equal(t, "", config.Data.Directory)
	assert.Equal(t, "text", config.Report.Format)
	assert.Equal(t, "UTC", config.Budget.Timezone)
	assert.Equal(t, "INR", config.Currency)
	assert.Equal(t, time.UTC, config.Location())
}

func TestInitializeConfig_EnvironmentVariables(t *testing.T) {
	clearTestEnvVars(t)
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())

	testEnvVars := map[string]string{
		"FINSIGHT_LOG_LEVEL":       "debug",
		"FINSIGHT_LOG_FORMAT":      "json",
		"FINSIGHT_DATA_DIRECTORY":  "/tmp/finsight",
		"FINSIGHT_REPORT_FORMAT":   "yaml",
		"FINSIGHT_BUDGET_TIMEZONE": "Asia/Kolkata",
		"FINSIGHT_CURRENCY":        "EUR",
	}
	for key, value := range testEnvVars {
		t.Setenv(key, value)
	}

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, "/tmp/finsight", config.Data.Directory)
	assert.Equal(t, "/tmp/finsight", config.DataDirectory())
	assert.Equal(t, "yaml", config.Report.Format)
	assert.Equal(t, "Asia/Kolkata", config.Location().String())
	assert.Equal(t, "EUR", config.Currency)
}

func TestInitializeConfig_ConfigFile(t *testing.T) {
	clearTestEnvVars(t)
	t.Setenv("HOME", t.TempDir())

	tempDir := t.TempDir()
	configContent := `
log:
  level: "warn"
  format: "json"
report:
  format: "json"
budget:
  timezone: "Europe/Zurich"
currency: "CHF"
`
	err := os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(configContent), 0600)
	require.NoError(t, err)
	chdir(t, tempDir)

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "warn", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, "json", config.Report.Format)
	assert.Equal(t, "Europe/Zurich", config.Location().String())
	assert.Equal(t, "CHF", config.Currency)
}

func TestInitializeConfig_HierarchicalPrecedence(t *testing.T) {
	clearTestEnvVars(t)
	t.Setenv("HOME", t.TempDir())

	tempDir := t.TempDir()
	configContent := `
log:
  level: "warn"
currency: "CHF"
`
	err := os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(configContent), 0600)
	require.NoError(t, err)

	t.Setenv("FINSIGHT_LOG_LEVEL", "error")
	chdir(t, tempDir)

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "error", config.Log.Level) // env var wins
	assert.Equal(t, "CHF", config.Currency)    // config file value
	assert.Equal(t, "text", config.Log.Format) // default
}

func TestInitializeConfig_InvalidFile(t *testing.T) {
	clearTestEnvVars(t)
	t.Setenv("HOME", t.TempDir())

	tempDir := t.TempDir()
	err := os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte("log: [unterminated"), 0600)
	require.NoError(t, err)
	chdir(t, tempDir)

	_, err = InitializeConfig()
	assert.Error(t, err)
}

func TestValidateConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name         string
		modifyConfig func(*Config)
		expectError  string
	}{
		{
			name:         "invalid log level",
			modifyConfig: func(c *Config) { c.Log.Level = "invalid" },
			expectError:  "invalid log level",
		},
		{
			name:         "invalid log format",
			modifyConfig: func(c *Config) { c.Log.Format = "invalid" },
			expectError:  "invalid log format",
		},
		{
			name:         "invalid report format",
			modifyConfig: func(c *Config) { c.Report.Format = "xml" },
			expectError:  "invalid report format",
		},
		{
			name:         "unknown timezone",
			modifyConfig: func(c *Config) { c.Budget.Timezone = "Mars/Olympus_Mons" },
			expectError:  "invalid budget timezone",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := Default()
			tt.modifyConfig(config)
			err := validateConfig(config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectError)
		})
	}
}

func TestDefault_IsValid(t *testing.T) {
	config := Default()
	assert.NoError(t, validateConfig(config))
	assert.Equal(t, time.UTC, config.Location())
}

func TestDataDirectory_Default(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	config := Default()
	assert.Equal(t, filepath.Join(home, ".finsight", "data"), config.DataDirectory())
}

func TestLoadEnv(t *testing.T) {
	clearTestEnvVars(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("FINSIGHT_CURRENCY=USD\n"), 0600))
	chdir(t, dir)
	t.Setenv("FINSIGHT_CURRENCY", "")
	require.NoError(t, os.Unsetenv("FINSIGHT_CURRENCY"))

	assert.Equal(t, ".env", LoadEnv(nil))
	assert.Equal(t, "USD", os.Getenv("FINSIGHT_CURRENCY"))
}

func TestLoadEnv_NoFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	require.NoError(t, os.MkdirAll(dir, 0750))
	chdir(t, dir)

	assert.Equal(t, "", LoadEnv(nil))
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"defaults", func(c *Config) {}, ""},
		{"log level", func(c *Config) { c.Log.Level = "loud" }, "invalid log level: loud"},
		{"log format", func(c *Config) { c.Log.Format = "xml" }, "invalid log format"},
		{"report format", func(c *Config) { c.Report.Format = "csv" }, "invalid report format"},
		{"timezone", func(c *Config) { c.Budget.Timezone = "Mars/Olympus" }, "invalid budget timezone"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_ValidateResolvesTimezone(t *testing.T) {
	c := Default()
	c.Budget.Timezone = "Asia/Kolkata"
	require.NoError(t, c.Validate())
	assert.Equal(t, "Asia/Kolkata", c.Location().String())
}

func TestNewLogger(t *testing.T) {
	assert.NotNil(t, NewLogger(Default()))
}

// clearTestEnvVars unsets the FINSIGHT variables for the duration of the test.
func clearTestEnvVars(t *testing.T) {
	envVars := []string{
		"FINSIGHT_LOG_LEVEL",
		"FINSIGHT_LOG_FORMAT",
		"FINSIGHT_DATA_DIRECTORY",
		"FINSIGHT_REPORT_FORMAT",
		"FINSIGHT_BUDGET_TIMEZONE",
		"FINSIGHT_CURRENCY",
	}
	for _, envVar := range envVars {
		// Setenv registers restoration of the original value.
		t.Setenv(envVar, "")
		require.NoError(t, os.Unsetenv(envVar))
	}
}
