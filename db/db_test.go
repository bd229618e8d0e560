package db

import (
	"os"
	"testing"

	"quotes-scraper/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnString(t *testing.T) {
	t.Run("explicit dsn wins", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://env/ignored")
		assert.Equal(t, "postgres://cfg/quotes", ConnString("postgres://cfg/quotes"))
	})

	t.Run("DATABASE_URL", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://env/quotes")
		assert.Equal(t, "postgres://env/quotes", ConnString(""))
	})

	t.Run("component variables", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")
		t.Setenv("DB_HOST", "db.internal")
		t.Setenv("DB_PORT", "")
		t.Setenv("DB_USER", "")
		t.Setenv("DB_PASSWORD", "secret")
		t.Setenv("DB_NAME", "")
		t.Setenv("DB_SSLMODE", "require")
		assert.Equal(t,
			"host=db.internal port=5432 user=quotes password=secret dbname=quotes sslmode=require",
			ConnString(""))
	})
}

func TestTagsOrEmpty(t *testing.T) {
	assert.Equal(t, []string{}, tagsOrEmpty(nil))
	assert.Equal(t, []string{"a"}, tagsOrEmpty([]string{"a"}))
}

// TestSaveRun_Postgres runs against a real database when TEST_DATABASE_URL is set.
func TestSaveRun_Postgres(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	database, err := NewDB(dsn, nil)
	require.NoError(t, err)
	defer database.Close()

	quotes := []models.Quote{
		{Text: "The world is a book...", Author: "Saint Augustine", Tags: []string{"books", "travel"}},
		{Text: "Be yourself...", Author: "Oscar Wilde", Tags: []string{}},
	}

	runID, err := database.SaveRun("https://quotes.toscrape.com/", 2, quotes)
	require.NoError(t, err)

	got, err := database.GetRunQuotes(runID)
	require.NoError(t, err)
	assert.Equal(t, quotes, got)
}
