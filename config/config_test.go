package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, GetDefaultConfig(), cfg)
}

func TestGetDefaultConfig(t *testing.T) {
	cfg := GetDefaultConfig()
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Empty(t, cfg.Log.File.Path)
	assert.Equal(t, "http", cfg.Fetcher.Backend)
	assert.Zero(t, cfg.Fetcher.Timeout)
	assert.Zero(t, cfg.Crawl.MaxPages)
	assert.False(t, cfg.Export.Postgres.Enabled)
	assert.False(t, cfg.Export.Sheets.Enabled)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig_Overrides(t *testing.T) {
	path := writeConfig(t, `
log:
  level: debug
  format: json
  file:
    path: /tmp/quotes.log
fetcher:
  backend: colly
  timeout: 15s
  user_agent: quotes-bot
crawl:
  max_pages: 20
filters:
  authors: ["Albert Einstein"]
  tags: [life, love]
export:
  postgres:
    enabled: true
    dsn: postgres://localhost/quotes
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "/tmp/quotes.log", cfg.Log.File.Path)
	assert.Equal(t, 10, cfg.Log.File.MaxSizeMB, "unset nested values keep defaults")
	assert.Equal(t, "colly", cfg.Fetcher.Backend)
	assert.Equal(t, 15*time.Second, cfg.Fetcher.Timeout)
	assert.Equal(t, "quotes-bot", cfg.Fetcher.UserAgent)
	assert.Equal(t, 20, cfg.Crawl.MaxPages)
	assert.Equal(t, []string{"Albert Einstein"}, cfg.Filters.Authors)
	assert.Equal(t, []string{"life", "love"}, cfg.Filters.Tags)
	assert.True(t, cfg.Export.Postgres.Enabled)
	assert.Equal(t, "postgres://localhost/quotes", cfg.Export.Postgres.DSN)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad yaml", "log: [level"},
		{"bad level", "log:\n  level: loud\n"},
		{"bad format", "log:\n  format: xml\n"},
		{"bad backend", "fetcher:\n  backend: rod\n"},
		{"negative max pages", "crawl:\n  max_pages: -1\n"},
		{"sheets without url", "export:\n  sheets:\n    enabled: true\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}
