package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	CoinGecko struct {
		APIKey     string `yaml:"api_key"`
		Tier       string `yaml:"tier"`
		BaseURL    string `yaml:"base_url"`
		FetchLimit int    `yaml:"fetch_limit"`
	} `yaml:"coingecko"`
	Schedule struct {
		CollectCron string `yaml:"collect_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Report struct {
		WindowDays int `yaml:"window_days"`
	} `yaml:"report"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("COINGECKO_API_KEY"); v != "" {
		cfg.CoinGecko.APIKey = v
	}
	if v := os.Getenv("COINGECKO_API_TIER"); v != "" {
		cfg.CoinGecko.Tier = v
	}
	if v := os.Getenv("COINGECKO_API_BASE_URL"); v != "" {
		cfg.CoinGecko.BaseURL = v
	}
	if v := os.Getenv("FETCH_LIMIT"); v != "" {
		var limit int
		if _, err := fmt.Sscanf(v, "%d", &limit); err == nil {
			cfg.CoinGecko.FetchLimit = limit
		}
	}
	if v := os.Getenv("CRON_COLLECT"); v != "" {
		cfg.Schedule.CollectCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("REPORT_WINDOW_DAYS"); v != "" {
		var days int
		if _, err := fmt.Sscanf(v, "%d", &days); err == nil {
			cfg.Report.WindowDays = days
		}
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	cfg.CoinGecko.Tier = strings.ToLower(strings.TrimSpace(cfg.CoinGecko.Tier))

	// Defaults
	if cfg.CoinGecko.FetchLimit == 0 {
		cfg.CoinGecko.FetchLimit = 100
	}
	if cfg.Schedule.CollectCron == "" {
		cfg.Schedule.CollectCron = "0 0 9,15,21 * * *"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/crypto_prices.db"
	}
	if cfg.Report.WindowDays == 0 {
		cfg.Report.WindowDays = 7
	}

	return cfg, nil
}

// Validate checks that all fields hold usable values.
func (c *Config) Validate() error {
	if c.CoinGecko.FetchLimit < 1 || c.CoinGecko.FetchLimit > 250 {
		return fmt.Errorf("coingecko.fetch_limit must be between 1 and 250, got %d", c.CoinGecko.FetchLimit)
	}
	switch c.CoinGecko.Tier {
	case "", "free", "pro":
	default:
		return fmt.Errorf("coingecko.tier must be \"pro\" or \"free\", got %q", c.CoinGecko.Tier)
	}
	if c.Report.WindowDays < 1 {
		return fmt.Errorf("report.window_days must be positive, got %d", c.Report.WindowDays)
	}
	return nil
}
