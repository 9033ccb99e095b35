package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ── Load / Defaults ──

func TestLoadReturnsDefaults(t *testing.T) {
	testChdir(t, t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Analysis.Ticker != "BMW.DE" {
		t.Errorf("Analysis.Ticker: got %q, want %q", cfg.Analysis.Ticker, "BMW.DE")
	}
	if cfg.Analysis.Company != "BMW" {
		t.Errorf("Analysis.Company: got %q, want %q", cfg.Analysis.Company, "BMW")
	}
	if cfg.DataSource.BaseURL != "https://query2.finance.yahoo.com" {
		t.Errorf("DataSource.BaseURL: got %q", cfg.DataSource.BaseURL)
	}
	if cfg.DataSource.CookieURL != "https://fc.yahoo.com" || !cfg.DataSource.Session {
		t.Errorf("DataSource session: got %q, %v", cfg.DataSource.CookieURL, cfg.DataSource.Session)
	}
	if cfg.DataSource.TimeoutSec != 30 {
		t.Errorf("DataSource.TimeoutSec: got %d, want 30", cfg.DataSource.TimeoutSec)
	}
	if cfg.DataSource.RateLimit != 5 {
		t.Errorf("DataSource.RateLimit: got %d, want 5", cfg.DataSource.RateLimit)
	}
	if cfg.Export.Path != "BMW_Financial_Analysis.xlsx" {
		t.Errorf("Export.Path: got %q", cfg.Export.Path)
	}
	if !cfg.Charts.Enabled || !cfg.Charts.Open {
		t.Error("Charts should be enabled and opened by default")
	}
	if cfg.Charts.Dir != "." {
		t.Errorf("Charts.Dir: got %q, want %q", cfg.Charts.Dir, ".")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level: got %q, want %q", cfg.Logging.Level, "info")
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("Logging.Format: got %q, want %q", cfg.Logging.Format, "console")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadReadsProjectConfig(t *testing.T) {
	dir := t.TempDir()
	testChdir(t, dir)
	if err := os.Mkdir("config", 0o755); err != nil {
		t.Fatal(err)
	}
	content := []byte("analysis:\n  ticker: \"MBG.DE\"\n  company: \"Mercedes\"\n")
	if err := os.WriteFile(filepath.Join("config", "config.yaml"), content, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Analysis.Ticker != "MBG.DE" || cfg.Analysis.Company != "Mercedes" {
		t.Errorf("Analysis: got %+v", cfg.Analysis)
	}
	// Untouched sections keep their defaults.
	if cfg.DataSource.TimeoutSec != 30 {
		t.Errorf("DataSource.TimeoutSec: got %d, want 30", cfg.DataSource.TimeoutSec)
	}
}

// ── LoadFromFile ──

func TestLoadFromFile(t *testing.T) {
	testChdir(t, t.TempDir())
	cfgPath := filepath.Join(t.TempDir(), "test_config.yaml")
	content := []byte(`
analysis:
  ticker: "VOW3.DE"
  company: "VW"
datasource:
  base_url: "http://localhost:9999"
  session: false
  timeout_sec: 5
  rate_limit: 0
export:
  path: "out/vw.xlsx"
charts:
  enabled: false
logging:
  level: "debug"
  format: "json"
`)
	if err := os.WriteFile(cfgPath, content, 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg, err := LoadFromFile(cfgPath)
	if err != nil {
		t.Fatalf("LoadFromFile() error: %v", err)
	}
	if cfg.Analysis.Ticker != "VOW3.DE" {
		t.Errorf("Analysis.Ticker: got %q", cfg.Analysis.Ticker)
	}
	if cfg.DataSource.BaseURL != "http://localhost:9999" {
		t.Errorf("DataSource.BaseURL: got %q", cfg.DataSource.BaseURL)
	}
	if cfg.DataSource.Session {
		t.Error("DataSource.Session should be false")
	}
	if cfg.DataSource.Timeout().Seconds() != 5 {
		t.Errorf("DataSource.Timeout(): got %v", cfg.DataSource.Timeout())
	}
	if cfg.DataSource.RateLimit != 0 {
		t.Errorf("DataSource.RateLimit: got %d, want 0", cfg.DataSource.RateLimit)
	}
	if cfg.Export.Path != "out/vw.xlsx" {
		t.Errorf("Export.Path: got %q", cfg.Export.Path)
	}
	if cfg.Charts.Enabled {
		t.Error("Charts.Enabled should be false")
	}
	if !cfg.Charts.Open {
		t.Error("Charts.Open should keep its default")
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format: got %q, want %q", cfg.Logging.Format, "json")
	}
}

func TestLoadFromFileNotFound(t *testing.T) {
	testChdir(t, t.TempDir())
	if _, err := LoadFromFile("/nonexistent/path/config.yaml"); err == nil {
		t.Error("LoadFromFile() with nonexistent path should return error")
	}
}

// ── Environment ──

func TestEnvOverridesDefaults(t *testing.T) {
	testChdir(t, t.TempDir())
	t.Setenv("FINRATIOS_ANALYSIS_TICKER", "BMW3.DE")
	t.Setenv("FINRATIOS_CHARTS_OPEN", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Analysis.Ticker != "BMW3.DE" {
		t.Errorf("Analysis.Ticker: got %q, want %q", cfg.Analysis.Ticker, "BMW3.DE")
	}
	if cfg.Charts.Open {
		t.Error("Charts.Open should be overridden to false")
	}
}

func TestDotEnvLoaded(t *testing.T) {
	dir := t.TempDir()
	testChdir(t, dir)
	// Registered so the variable set by godotenv is removed afterwards.
	t.Setenv("FINRATIOS_EXPORT_PATH", "")
	os.Unsetenv("FINRATIOS_EXPORT_PATH")

	if err := os.WriteFile(".env", []byte("FINRATIOS_EXPORT_PATH=from-dotenv.xlsx\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Export.Path != "from-dotenv.xlsx" {
		t.Errorf("Export.Path: got %q, want %q", cfg.Export.Path, "from-dotenv.xlsx")
	}
}

func TestDotEnvDoesNotOverrideEnvironment(t *testing.T) {
	testChdir(t, t.TempDir())
	t.Setenv("FINRATIOS_ANALYSIS_COMPANY", "FromEnv")
	if err := os.WriteFile(".env", []byte("FINRATIOS_ANALYSIS_COMPANY=FromFile\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Analysis.Company != "FromEnv" {
		t.Errorf("Analysis.Company: got %q, want %q", cfg.Analysis.Company, "FromEnv")
	}
}

// ── Validate ──

func TestValidate(t *testing.T) {
	valid := Config{
		Analysis:   AnalysisConfig{Ticker: "BMW.DE", Company: "BMW"},
		DataSource: DataSourceConfig{TimeoutSec: 30, RateLimit: 5},
		Logging:    LoggingConfig{Level: "info", Format: "console"},
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"empty ticker", func(c *Config) { c.Analysis.Ticker = " " }, "analysis.ticker"},
		{"empty company", func(c *Config) { c.Analysis.Company = "" }, "analysis.company"},
		{"zero timeout", func(c *Config) { c.DataSource.TimeoutSec = 0 }, "timeout_sec"},
		{"negative rate", func(c *Config) { c.DataSource.RateLimit = -1 }, "rate_limit"},
		{"bad format", func(c *Config) { c.Logging.Format = "text" }, "logging.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}
