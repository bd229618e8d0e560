package db

import (
	"fmt"
	"log/slog"

	"quotes-scraper/models"

	"github.com/lib/pq"
)

// SaveRun stores one finished crawl and all of its quotes in a single
// transaction and returns the run ID
func (db *DB) SaveRun(baseURL string, pages int, quotes []models.Quote) (int, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var runID int
	err = tx.QueryRow(`
		INSERT INTO crawl_runs (base_url, pages, quotes_count)
		VALUES ($1, $2, $3)
		RETURNING id
	`, baseURL, pages, len(quotes)).Scan(&runID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert crawl run: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO quotes (run_id, position, text, author, tags)
		VALUES ($1, $2, $3, $4, $5)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare quote insert: %w", err)
	}
	defer stmt.Close()

	for i, quote := range quotes {
		if _, err := stmt.Exec(runID, i, quote.Text, quote.Author, pq.Array(tagsOrEmpty(quote.Tags))); err != nil {
			return 0, fmt.Errorf("failed to insert quote %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit crawl run: %w", err)
	}

	db.logger.Info("saved crawl run to database",
		slog.Int("run_id", runID),
		slog.Int("quotes", len(quotes)),
	)
	return runID, nil
}

// GetRunQuotes returns the quotes of a run in crawl order
func (db *DB) GetRunQuotes(runID int) ([]models.Quote, error) {
	rows, err := db.conn.Query(`
		SELECT text, author, tags
		FROM quotes
		WHERE run_id = $1
		ORDER BY position ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query quotes: %w", err)
	}
	defer rows.Close()

	quotes := []models.Quote{}
	for rows.Next() {
		var q models.Quote
		var tags pq.StringArray
		if err := rows.Scan(&q.Text, &q.Author, &tags); err != nil {
			return nil, fmt.Errorf("failed to scan quote: %w", err)
		}
		q.Tags = tagsOrEmpty(tags)
		quotes = append(quotes, q)
	}
	return quotes, rows.Err()
}

func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
