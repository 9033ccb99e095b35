// Package config handles configuration loading for finratios.
// It supports YAML config files, an optional .env file and environment
// variable overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "FINRATIOS"

// Config represents the complete application configuration.
type Config struct {
	Analysis   AnalysisConfig   `mapstructure:"analysis"   yaml:"analysis"`
	DataSource DataSourceConfig `mapstructure:"datasource" yaml:"datasource"`
	Export     ExportConfig     `mapstructure:"export"     yaml:"export"`
	Charts     ChartsConfig     `mapstructure:"charts"     yaml:"charts"`
	Logging    LoggingConfig    `mapstructure:"logging"    yaml:"logging"`
}

// AnalysisConfig selects the company being analysed.
type AnalysisConfig struct {
	Ticker  string `mapstructure:"ticker"  yaml:"ticker"`  // e.g. "BMW.DE"
	Company string `mapstructure:"company" yaml:"company"` // used in titles and file names
}

// DataSourceConfig holds the statement provider settings. Session toggles
// the Yahoo cookie + crumb handshake.
type DataSourceConfig struct {
	BaseURL    string `mapstructure:"base_url"    yaml:"base_url"`
	CookieURL  string `mapstructure:"cookie_url"  yaml:"cookie_url"`
	Session    bool   `mapstructure:"session"     yaml:"session"`
	TimeoutSec int    `mapstructure:"timeout_sec" yaml:"timeout_sec"`
	RateLimit  int    `mapstructure:"rate_limit"  yaml:"rate_limit"` // requests per second, 0 = unlimited
}

// Timeout returns the HTTP timeout as a duration.
func (d DataSourceConfig) Timeout() time.Duration {
	return time.Duration(d.TimeoutSec) * time.Second
}

// ExportConfig holds spreadsheet output settings.
type ExportConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// ChartsConfig holds trend chart settings.
type ChartsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Open    bool   `mapstructure:"open"    yaml:"open"` // open the chart page in a browser
	Dir     string `mapstructure:"dir"     yaml:"dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "console" or "json"
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.finratios/config.yaml (home directory)
//  3. /etc/finratios/config.yaml (system)
//
// A .env file in the working directory is loaded first when present.
// Environment variables override config file values.
// Format: FINRATIOS_<SECTION>_<KEY>, e.g., FINRATIOS_ANALYSIS_TICKER
func Load() (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".finratios"))
	v.AddConfigPath("/etc/finratios")

	// Read config file (not required to exist)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return decode(v)
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}
	return decode(v)
}

// Validate reports settings the pipeline cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Analysis.Ticker) == "" {
		errs = append(errs, errors.New("analysis.ticker must not be empty"))
	}
	if strings.TrimSpace(c.Analysis.Company) == "" {
		errs = append(errs, errors.New("analysis.company must not be empty"))
	}
	if c.DataSource.TimeoutSec <= 0 {
		errs = append(errs, fmt.Errorf("datasource.timeout_sec must be positive, got %d", c.DataSource.TimeoutSec))
	}
	if c.DataSource.RateLimit < 0 {
		errs = append(errs, fmt.Errorf("datasource.rate_limit must not be negative, got %d", c.DataSource.RateLimit))
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format))
	}
	return errors.Join(errs...)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("analysis.ticker", "BMW.DE")
	v.SetDefault("analysis.company", "BMW")

	v.SetDefault("datasource.base_url", "https://query2.finance.yahoo.com")
	v.SetDefault("datasource.cookie_url", "https://fc.yahoo.com")
	v.SetDefault("datasource.session", true)
	v.SetDefault("datasource.timeout_sec", 30)
	v.SetDefault("datasource.rate_limit", 5)

	v.SetDefault("export.path", "BMW_Financial_Analysis.xlsx")

	v.SetDefault("charts.enabled", true)
	v.SetDefault("charts.open", true)
	v.SetDefault("charts.dir", ".")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// loadDotEnv exports the variables in path without overriding ones already
// set. A missing file is not an error.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("error loading %s: %w", path, err)
	}
	return nil
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
