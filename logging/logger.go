// Package logging builds the process logger: a charmbracelet/log terminal
// handler behind log/slog, optionally mirrored to a rolling JSON file.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds logging configuration.
type Config struct {
	Level  string // debug, info, warn, error
	Format string // text, json

	// FilePath enables the rolling log file when non-empty.
	FilePath   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// New creates the logger writing to stderr. The returned closer releases the
// log file, if any.
func New(cfg Config) (*slog.Logger, io.Closer) {
	return NewWithWriter(cfg, os.Stderr)
}

// NewWithWriter is New with a custom terminal writer.
func NewWithWriter(cfg Config, w io.Writer) (*slog.Logger, io.Closer) {
	level := parseLevel(cfg.Level)

	terminal := charmlog.NewWithOptions(w, charmlog.Options{
		Level:           charmlog.Level(level),
		ReportTimestamp: true,
		Formatter:       formatter(cfg.Format),
	})

	if cfg.FilePath == "" {
		return slog.New(terminal), nopCloser{}
	}

	rolling := &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
	}
	file := slog.NewJSONHandler(rolling, &slog.HandlerOptions{Level: level})

	return slog.New(NewMultiHandler(terminal, file)), rolling
}

func formatter(format string) charmlog.Formatter {
	if strings.EqualFold(format, "json") {
		return charmlog.JSONFormatter
	}
	return charmlog.TextFormatter
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
