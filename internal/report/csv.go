package report

// csv.go writes the failed-rows file: one CSV row per invalid record, with a
// leading Status column describing everything wrong with the row, followed
// by the original raw cells. The file is the quick-triage companion to the
// annotated workbook.

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/M-JOXx/ExcelDiagnosticsHelper/internal/core"
)

// WriteFailedRows writes invalid records to a CSV file and returns how many
// were written. No file is created when every record is valid.
func WriteFailedRows(path string, data *core.ReportData) (int, error) {
	var failed []core.RecordReport
	for _, rec := range data.Records {
		if !rec.Valid {
			failed = append(failed, rec)
		}
	}
	if len(failed) == 0 {
		return 0, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("report: create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := append([]string{"Status"}, fieldOrder(data.Columns)...)
	if err := w.Write(header); err != nil {
		return 0, err
	}

	for _, rec := range failed {
		if err := w.Write(append([]string{statusText(rec)}, rec.Raw...)); err != nil {
			return 0, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return 0, err
	}
	return len(failed), nil
}

// statusText flattens a record's errors into one line:
// "line 4: OrderId: invalid number; row: For 'Refund' rows, ...".
func statusText(rec core.RecordReport) string {
	parts := make([]string, 0, len(rec.CellErrors)+len(rec.RowErrors))
	for _, field := range sortedKeys(rec.CellErrors) {
		parts = append(parts, fmt.Sprintf("%s: %s", field, rec.CellErrors[field]))
	}
	for _, msg := range rec.RowErrors {
		parts = append(parts, fmt.Sprintf("row: %s", msg))
	}
	return fmt.Sprintf("line %d: %s", rec.RowNumber, strings.Join(parts, "; "))
}

// sortedKeys returns map keys in sorted order so the file stays diffable
// between runs.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
