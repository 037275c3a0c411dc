package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.CoinGecko.FetchLimit != 100 {
		t.Errorf("fetch limit = %d, want 100", cfg.CoinGecko.FetchLimit)
	}
	if cfg.Schedule.CollectCron != "0 0 9,15,21 * * *" {
		t.Errorf("collect cron = %q", cfg.Schedule.CollectCron)
	}
	if cfg.Database.SQLitePath != "data/crypto_prices.db" {
		t.Errorf("sqlite path = %q", cfg.Database.SQLitePath)
	}
	if cfg.Report.WindowDays != 7 {
		t.Errorf("window days = %d, want 7", cfg.Report.WindowDays)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_YAMLAndEnvOverride(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
coingecko:
  api_key: file-key
  tier: Free
  fetch_limit: 20
database:
  sqlite_path: /tmp/test.db
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("COINGECKO_API_KEY", "env-key")
	t.Setenv("COINGECKO_API_TIER", "PRO")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.CoinGecko.APIKey != "env-key" {
		t.Errorf("api key = %q, env should override file", cfg.CoinGecko.APIKey)
	}
	if cfg.CoinGecko.Tier != "pro" {
		t.Errorf("tier = %q, want lowercased pro", cfg.CoinGecko.Tier)
	}
	if cfg.CoinGecko.FetchLimit != 20 {
		t.Errorf("fetch limit = %d, want 20 from file", cfg.CoinGecko.FetchLimit)
	}
	if cfg.Database.SQLitePath != "/tmp/test.db" {
		t.Errorf("sqlite path = %q", cfg.Database.SQLitePath)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults ok", func(c *Config) {}, false},
		{"limit too low", func(c *Config) { c.CoinGecko.FetchLimit = 0 }, true},
		{"limit too high", func(c *Config) { c.CoinGecko.FetchLimit = 300 }, true},
		{"unknown tier", func(c *Config) { c.CoinGecko.Tier = "gold" }, true},
		{"pro tier ok", func(c *Config) { c.CoinGecko.Tier = "pro" }, false},
		{"bad window", func(c *Config) { c.Report.WindowDays = -1 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"COINGECKO_API_KEY", "COINGECKO_API_TIER", "COINGECKO_API_BASE_URL",
		"FETCH_LIMIT", "CRON_COLLECT", "SQLITE_PATH", "REPORT_WINDOW_DAYS", "HTTPS_PROXY",
	} {
		t.Setenv(key, "")
	}
}
