// Package config provides centralized configuration management for the
// application. It loads settings from environment variables with sensible
// defaults and validates everything on startup to fail fast on
// misconfiguration.
package config

import (
	"fmt"
	"strings"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Logging LoggingConfig
	Report  ReportConfig
	Source  SourceConfig
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// ReportConfig holds annotated-workbook styling settings.
type ReportConfig struct {
	// ErrorFill is the RGB hex fill for error cells (default: FFC7CE)
	ErrorFill string `env:"REPORT_ERROR_FILL" default:"FFC7CE"`

	// WarningFill is the RGB hex fill for warning cells (default: FFEB9C)
	WarningFill string `env:"REPORT_WARNING_FILL" default:"FFEB9C"`

	// CommentAuthor is shown on diagnostic comments (default: exceldiag)
	CommentAuthor string `env:"REPORT_COMMENT_AUTHOR" default:"exceldiag"`

	// MaxColumnWidth caps auto-fitted column widths (default: 60)
	MaxColumnWidth float64 `env:"REPORT_MAX_COLUMN_WIDTH" default:"60"`
}

// SourceConfig holds input-file settings.
type SourceConfig struct {
	// MaxFileSize is the maximum allowed input size in bytes (default: 100MB)
	MaxFileSize int64 `env:"SOURCE_MAX_FILE_SIZE" default:"104857600"`

	// HeaderRows is the default number of header rows to skip (default: 1)
	HeaderRows int `env:"SOURCE_HEADER_ROWS" default:"1"`
}

// Validate checks the loaded configuration for values that would only fail
// later, mid-run.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid LOG_LEVEL %q (expect debug, info, warn, or error)", c.Logging.Level)
	}

	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid LOG_FORMAT %q (expect text or json)", c.Logging.Format)
	}

	if err := validHex(c.Report.ErrorFill); err != nil {
		return fmt.Errorf("invalid REPORT_ERROR_FILL: %w", err)
	}
	if err := validHex(c.Report.WarningFill); err != nil {
		return fmt.Errorf("invalid REPORT_WARNING_FILL: %w", err)
	}
	if c.Report.MaxColumnWidth <= 0 {
		return fmt.Errorf("REPORT_MAX_COLUMN_WIDTH must be positive, got %v", c.Report.MaxColumnWidth)
	}

	if c.Source.MaxFileSize <= 0 {
		return fmt.Errorf("SOURCE_MAX_FILE_SIZE must be positive, got %d", c.Source.MaxFileSize)
	}
	if c.Source.HeaderRows < 0 {
		return fmt.Errorf("SOURCE_HEADER_ROWS must not be negative, got %d", c.Source.HeaderRows)
	}

	return nil
}

// validHex accepts a 6-digit RGB hex color, with or without a leading '#'.
func validHex(s string) error {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 {
		return fmt.Errorf("%q is not a 6-digit hex color", s)
	}
	for _, r := range h {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return fmt.Errorf("%q is not a 6-digit hex color", s)
		}
	}
	return nil
}
