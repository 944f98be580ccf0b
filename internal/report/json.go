package report

// json.go writes the machine-readable run summary. The shape mirrors
// core.ReportData directly; downstream tooling consumes it without needing
// to parse the workbook.

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/M-JOXx/ExcelDiagnosticsHelper/internal/core"
)

// WriteJSON writes the full report snapshot as indented JSON.
func WriteJSON(path string, data *core.ReportData) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: create %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("report: encode %s: %w", path, err)
	}
	return nil
}
