// Package csvwriter serializes quotes to a flat CSV file.
package csvwriter

import (
	"fmt"
	"log/slog"
	"os"

	"quotes-scraper/models"

	"github.com/gocarina/gocsv"
)

// Header is the fixed first row of every output file
var Header = []string{"text", "author", "tags"}

// QuoteRow is one CSV data row
type QuoteRow struct {
	Text   string  `csv:"text"`
	Author string  `csv:"author"`
	Tags   TagList `csv:"tags"`
}

// Writer writes quote collections to CSV files
type Writer struct {
	logger *slog.Logger
}

// NewWriter creates a new Writer
func NewWriter(logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{logger: logger}
}

// Write truncates or creates path and writes the header followed by one row
// per quote. A failure part way through leaves a partial file behind.
func (w *Writer) Write(path string, quotes []models.Quote) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	rows := toRows(quotes)
	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return fmt.Errorf("failed to write CSV to %s: %w", path, err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}

	w.logger.Info("wrote quotes to CSV",
		slog.String("path", path),
		slog.Int("rows", len(rows)),
	)
	return nil
}

// Read loads quotes back from a file produced by Write
func Read(path string) ([]models.Quote, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	var rows []QuoteRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("failed to read CSV from %s: %w", path, err)
	}

	quotes := make([]models.Quote, 0, len(rows))
	for _, row := range rows {
		tags := []string(row.Tags)
		if tags == nil {
			tags = []string{}
		}
		quotes = append(quotes, models.Quote{
			Text:   row.Text,
			Author: row.Author,
			Tags:   tags,
		})
	}
	return quotes, nil
}

func toRows(quotes []models.Quote) []QuoteRow {
	rows := make([]QuoteRow, 0, len(quotes))
	for _, q := range quotes {
		rows = append(rows, QuoteRow{
			Text:   q.Text,
			Author: q.Author,
			Tags:   TagList(q.Tags),
		})
	}
	return rows
}
