// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata" // budget.timezone must resolve on hosts without a zoneinfo database

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables overriding config keys,
// e.g. FINSIGHT_LOG_LEVEL for log.level.
const EnvPrefix = "FINSIGHT"

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// DataConfig locates the record files.
type DataConfig struct {
	Directory string `mapstructure:"directory" yaml:"directory"`
}

// ReportConfig holds output settings.
type ReportConfig struct {
	Format string `mapstructure:"format" yaml:"format"`
}

// BudgetConfig holds budget evaluation settings. Timezone is an IANA name used
// for month and day boundaries.
type BudgetConfig struct {
	Timezone string `mapstructure:"timezone" yaml:"timezone"`
}

// Config represents the complete application configuration
type Config struct {
	Log      LogConfig    `mapstructure:"log" yaml:"log"`
	Data     DataConfig   `mapstructure:"data" yaml:"data"`
	Report   ReportConfig `mapstructure:"report" yaml:"report"`
	Budget   BudgetConfig `mapstructure:"budget" yaml:"budget"`
	Currency string       `mapstructure:"currency" yaml:"currency"`

	location *time.Location
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.finsight")
	v.AddConfigPath(".finsight")
	v.AddConfigPath(".")

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("data.directory", "")

	v.SetDefault("report.format", "text")

	v.SetDefault("budget.timezone", "UTC")

	v.SetDefault("currency", "INR")
}

// validateConfig validates the configuration values and resolves the
// timezone.
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	switch strings.ToLower(config.Report.Format) {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("invalid report format: %s (must be 'text', 'json' or 'yaml')", config.Report.Format)
	}

	loc, err := time.LoadLocation(config.Budget.Timezone)
	if err != nil {
		return fmt.Errorf("invalid budget timezone: %s: %w", config.Budget.Timezone, err)
	}
	config.location = loc

	return nil
}

// Validate checks the configuration again, e.g. after command line flags
// overrode loaded values, and re-resolves the timezone.
func (c *Config) Validate() error {
	if err := validateConfig(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Location returns the timezone used for day and month boundaries.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

// DataDirectory returns the configured data directory, defaulting to
// $HOME/.finsight/data.
func (c *Config) DataDirectory() string {
	if c.Data.Directory != "" {
		return c.Data.Directory
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".finsight", "data")
	}
	return filepath.Join(home, ".finsight", "data")
}

// Default returns a validated configuration holding only default values.
func Default() *Config {
	c := &Config{
		Log:      LogConfig{Level: "info", Format: "text"},
		Report:   ReportConfig{Format: "text"},
		Budget:   BudgetConfig{Timezone: "UTC"},
		Currency: "INR",
	}
	c.location = time.UTC
	return c
}
