package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Fixed crawl target and output location
const (
	BaseURL    = "https://quotes.toscrape.com/"
	OutputPath = "quotes.csv"
)

// Config is the root configuration loaded from YAML
type Config struct {
	Log     LogConfig     `yaml:"log"`
	Fetcher FetcherConfig `yaml:"fetcher"`
	Crawl   CrawlConfig   `yaml:"crawl"`
	Filters FilterConfig  `yaml:"filters"`
	Export  ExportConfig  `yaml:"export"`
}

// LogConfig controls the logger
type LogConfig struct {
	Level  string        `yaml:"level"`  // debug, info, warn, error
	Format string        `yaml:"format"` // text, json
	File   LogFileConfig `yaml:"file"`
}

// LogFileConfig enables an additional rolling JSON log file
type LogFileConfig struct {
	Path       string `yaml:"path"`
	MaxSizeMB  int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age"`
}

// FetcherConfig selects and tunes the page fetcher
type FetcherConfig struct {
	Backend   string        `yaml:"backend"` // http, colly
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
}

// CrawlConfig tunes the pagination loop
type CrawlConfig struct {
	MaxPages int `yaml:"max_pages"` // 0 = until the first empty page
}

// FilterConfig represents the filter criteria
type FilterConfig struct {
	Authors []string `yaml:"authors"`
	Tags    []string `yaml:"tags"`
}

// ExportConfig holds the optional exports run after the CSV is written
type ExportConfig struct {
	Postgres PostgresConfig `yaml:"postgres"`
	Sheets   SheetsConfig   `yaml:"sheets"`
}

// PostgresConfig configures the database export
type PostgresConfig struct {
	Enabled bool   `yaml:"enabled"`
	DSN     string `yaml:"dsn"`
}

// SheetsConfig configures the Google Sheets export
type SheetsConfig struct {
	Enabled        bool   `yaml:"enabled"`
	SpreadsheetURL string `yaml:"spreadsheet_url"`
	Credentials    string `yaml:"credentials"`
}

// LoadConfig loads configuration from a YAML file on top of the defaults
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := GetDefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Load is LoadConfig, except that a missing file yields the defaults
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return GetDefaultConfig(), nil
	}
	return LoadConfig(path)
}

// GetDefaultConfig returns a default configuration
func GetDefaultConfig() *Config {
	cfg := &Config{}
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.Log.File.MaxSizeMB = 10
	cfg.Log.File.MaxBackups = 3
	cfg.Log.File.MaxAgeDays = 28
	cfg.Fetcher.Backend = "http"
	return cfg
}

// Validate checks enumerated settings and export prerequisites
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q", c.Log.Format)
	}

	switch c.Fetcher.Backend {
	case "http", "colly":
	default:
		return fmt.Errorf("invalid fetcher backend %q", c.Fetcher.Backend)
	}

	if c.Fetcher.Timeout < 0 {
		return fmt.Errorf("fetcher timeout must not be negative")
	}
	if c.Crawl.MaxPages < 0 {
		return fmt.Errorf("crawl max_pages must not be negative")
	}

	if c.Export.Sheets.Enabled && c.Export.Sheets.SpreadsheetURL == "" {
		return fmt.Errorf("sheets export enabled without spreadsheet_url")
	}

	return nil
}
