package sheets

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"quotes-scraper/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractSpreadsheetID(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"edit link", "https://docs.google.com/spreadsheets/d/abc123/edit", "abc123"},
		{"sharing link", "https://docs.google.com/spreadsheets/d/abc123/edit?usp=sharing", "abc123"},
		{"bare id path", "https://docs.google.com/spreadsheets/d/abc123", "abc123"},
		{"query only", "https://docs.google.com/spreadsheets/d/abc123?gid=0", "abc123"},
		{"not a sheet", "https://quotes.toscrape.com/", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractSpreadsheetID(tt.url))
		})
	}
}

func TestSanitizeSheetName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"clean", "Quotes 2026-10-17", "Quotes 2026-10-17"},
		{"invalid chars", "a/b\\c?d*e[f]", "a_b_c_d_e_f_"},
		{"trimmed", "  quotes  ", "quotes"},
		{"empty", "   ", "Sheet1"},
		{"too long", strings.Repeat("q", 150), strings.Repeat("q", maxSheetNameLen)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeSheetName(tt.input))
		})
	}
}

func TestBuildValues(t *testing.T) {
	quotes := []models.Quote{
		{Text: "The world is a book...", Author: "Saint Augustine", Tags: []string{"books", "travel"}},
		{Text: "Be yourself...", Author: "Oscar Wilde", Tags: nil},
	}

	values, err := buildValues(quotes, "https://quotes.toscrape.com/")
	require.NoError(t, err)
	require.Len(t, values, 4)

	assert.Equal(t, []interface{}{"URL", "https://quotes.toscrape.com/", "Quotes", 2}, values[0])
	assert.Equal(t, []interface{}{"text", "author", "tags"}, values[1])
	assert.Equal(t, []interface{}{"The world is a book...", "Saint Augustine", `["books","travel"]`}, values[2])
	assert.Equal(t, []interface{}{"Be yourself...", "Oscar Wilde", `[]`}, values[3])
}

func TestBuildValues_NoSourceURL(t *testing.T) {
	values, err := buildValues(nil, "")
	require.NoError(t, err)
	require.Len(t, values, 1)
	assert.Equal(t, []interface{}{"text", "author", "tags"}, values[0])
}

func TestLoadCredentials(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dir := t.TempDir()

	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
		return path
	}

	t.Run("service account file", func(t *testing.T) {
		path := write("sa.json", `{"type":"service_account","project_id":"p"}`)
		data, err := loadCredentials(path, logger)
		require.NoError(t, err)
		assert.Contains(t, string(data), "service_account")
	})

	t.Run("wrong type", func(t *testing.T) {
		path := write("user.json", `{"type":"authorized_user"}`)
		_, err := loadCredentials(path, logger)
		assert.Error(t, err)
	})

	t.Run("invalid json", func(t *testing.T) {
		path := write("bad.json", `{type`)
		_, err := loadCredentials(path, logger)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := loadCredentials(filepath.Join(dir, "nope.json"), logger)
		assert.Error(t, err)
	})

	t.Run("environment", func(t *testing.T) {
		t.Setenv("GOOGLE_SHEETS_CREDENTIALS", "  {\"type\":\"service_account\"}\n")
		data, err := loadCredentials("", logger)
		require.NoError(t, err)
		assert.Equal(t, `{"type":"service_account"}`, string(data))
	})

	t.Run("environment unset", func(t *testing.T) {
		t.Setenv("GOOGLE_SHEETS_CREDENTIALS", "")
		_, err := loadCredentials("", logger)
		assert.Error(t, err)
	})
}
