package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"quotes-scraper/collector"
	"quotes-scraper/config"
	"quotes-scraper/csvwriter"
	"quotes-scraper/db"
	"quotes-scraper/fetcher"
	"quotes-scraper/filter"
	"quotes-scraper/logging"
	"quotes-scraper/models"
	"quotes-scraper/parser"
	"quotes-scraper/sheets"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("scrape failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, closer := logging.New(logging.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		FilePath:   cfg.Log.File.Path,
		MaxSizeMB:  cfg.Log.File.MaxSizeMB,
		MaxBackups: cfg.Log.File.MaxBackups,
		MaxAgeDays: cfg.Log.File.MaxAgeDays,
	})
	defer closer.Close()
	slog.SetDefault(logger)

	f, err := fetcher.New(cfg.Fetcher.Backend, fetcher.Options{
		Timeout:   cfg.Fetcher.Timeout,
		UserAgent: cfg.Fetcher.UserAgent,
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	c, err := collector.New(config.BaseURL, f, parser.NewParser(), collector.Options{
		MaxPages: cfg.Crawl.MaxPages,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	result, err := c.Collect()
	if err != nil {
		return fmt.Errorf("failed to collect quotes: %w", err)
	}

	quotes := result.Quotes
	if qf := filter.NewFilter(cfg.Filters); qf.Active() {
		quotes = qf.Apply(quotes)
		logger.Info("applied filters",
			slog.Int("before", len(result.Quotes)),
			slog.Int("after", len(quotes)),
		)
	}

	if err := csvwriter.NewWriter(logger).Write(config.OutputPath, quotes); err != nil {
		return err
	}

	if cfg.Export.Postgres.Enabled {
		if err := exportPostgres(cfg.Export.Postgres, result.Pages, quotes, logger); err != nil {
			return err
		}
	}

	if cfg.Export.Sheets.Enabled {
		if err := exportSheets(cfg.Export.Sheets, quotes, logger); err != nil {
			return err
		}
	}

	return nil
}

func exportPostgres(cfg config.PostgresConfig, pages int, quotes []models.Quote, logger *slog.Logger) error {
	database, err := db.NewDB(cfg.DSN, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	if _, err := database.SaveRun(config.BaseURL, pages, quotes); err != nil {
		return fmt.Errorf("failed to save crawl run: %w", err)
	}
	return nil
}

func exportSheets(cfg config.SheetsConfig, quotes []models.Quote, logger *slog.Logger) error {
	spreadsheetID := sheets.ExtractSpreadsheetID(cfg.SpreadsheetURL)
	if spreadsheetID == "" {
		return fmt.Errorf("could not extract spreadsheet ID from URL: %s", cfg.SpreadsheetURL)
	}

	ctx := context.Background()
	writer, err := sheets.NewWriter(ctx, spreadsheetID, cfg.Credentials, logger)
	if err != nil {
		return fmt.Errorf("failed to create sheets writer: %w", err)
	}

	sheetName := fmt.Sprintf("Quotes_%s", time.Now().Format("20060102_150405"))
	if _, _, err := writer.CreateSheetAndWriteQuotes(ctx, sheetName, quotes, config.BaseURL); err != nil {
		return fmt.Errorf("failed to write to Google Sheets: %w", err)
	}
	return nil
}
