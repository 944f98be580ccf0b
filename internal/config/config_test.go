package config

import (
	"os"
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("Logging.Format = %q, want %q", cfg.Logging.Format, "text")
	}
	if cfg.Report.ErrorFill != "FFC7CE" {
		t.Errorf("Report.ErrorFill = %q, want %q", cfg.Report.ErrorFill, "FFC7CE")
	}
	if cfg.Report.WarningFill != "FFEB9C" {
		t.Errorf("Report.WarningFill = %q, want %q", cfg.Report.WarningFill, "FFEB9C")
	}
	if cfg.Report.MaxColumnWidth != 60 {
		t.Errorf("Report.MaxColumnWidth = %v, want 60", cfg.Report.MaxColumnWidth)
	}
	if cfg.Source.MaxFileSize != 104857600 {
		t.Errorf("Source.MaxFileSize = %d, want %d", cfg.Source.MaxFileSize, 104857600)
	}
	if cfg.Source.HeaderRows != 1 {
		t.Errorf("Source.HeaderRows = %d, want 1", cfg.Source.HeaderRows)
	}
}

func TestLoad_OverrideDefaults(t *testing.T) {
	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("REPORT_ERROR_FILL", "FF0000")
	os.Setenv("REPORT_MAX_COLUMN_WIDTH", "80.5")
	os.Setenv("SOURCE_HEADER_ROWS", "0")
	defer func() {
		os.Unsetenv("LOG_LEVEL")
		os.Unsetenv("REPORT_ERROR_FILL")
		os.Unsetenv("REPORT_MAX_COLUMN_WIDTH")
		os.Unsetenv("SOURCE_HEADER_ROWS")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
	if cfg.Report.ErrorFill != "FF0000" {
		t.Errorf("Report.ErrorFill = %q, want %q", cfg.Report.ErrorFill, "FF0000")
	}
	if cfg.Report.MaxColumnWidth != 80.5 {
		t.Errorf("Report.MaxColumnWidth = %v, want 80.5", cfg.Report.MaxColumnWidth)
	}
	if cfg.Source.HeaderRows != 0 {
		t.Errorf("Source.HeaderRows = %d, want 0", cfg.Source.HeaderRows)
	}
}

func TestLoad_InvalidInteger(t *testing.T) {
	os.Setenv("SOURCE_MAX_FILE_SIZE", "lots")
	defer os.Unsetenv("SOURCE_MAX_FILE_SIZE")

	if _, err := Load(); err == nil {
		t.Fatal("Load() expected error for non-numeric SOURCE_MAX_FILE_SIZE")
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Logging: LoggingConfig{Level: "info", Format: "text"},
			Report:  ReportConfig{ErrorFill: "FFC7CE", WarningFill: "#ffeb9c", MaxColumnWidth: 60},
			Source:  SourceConfig{MaxFileSize: 1024, HeaderRows: 1},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: "LOG_LEVEL",
		},
		{
			name:    "bad log format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "LOG_FORMAT",
		},
		{
			name:    "short hex color",
			mutate:  func(c *Config) { c.Report.ErrorFill = "F00" },
			wantErr: "REPORT_ERROR_FILL",
		},
		{
			name:    "non-hex color",
			mutate:  func(c *Config) { c.Report.WarningFill = "GGGGGG" },
			wantErr: "REPORT_WARNING_FILL",
		},
		{
			name:    "zero column width",
			mutate:  func(c *Config) { c.Report.MaxColumnWidth = 0 },
			wantErr: "REPORT_MAX_COLUMN_WIDTH",
		},
		{
			name:    "zero file size",
			mutate:  func(c *Config) { c.Source.MaxFileSize = 0 },
			wantErr: "SOURCE_MAX_FILE_SIZE",
		},
		{
			name:    "negative header rows",
			mutate:  func(c *Config) { c.Source.HeaderRows = -1 },
			wantErr: "SOURCE_HEADER_ROWS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should mention %s", err, tt.wantErr)
			}
		})
	}
}

func TestValidHex(t *testing.T) {
	valid := []string{"FFC7CE", "#FFC7CE", "ffeb9c", "00Ff00"}
	for _, s := range valid {
		if err := validHex(s); err != nil {
			t.Errorf("validHex(%q) = %v, want nil", s, err)
		}
	}

	invalid := []string{"", "FFF", "FFC7CEE", "GGGGGG", "FF C7CE"}
	for _, s := range invalid {
		if err := validHex(s); err == nil {
			t.Errorf("validHex(%q) = nil, want error", s)
		}
	}
}
