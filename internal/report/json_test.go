package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/M-JOXx/ExcelDiagnosticsHelper/internal/core"
)

func TestWriteJSON_RoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.json")

	if err := WriteJSON(path, sampleData()); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var got core.ReportData
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if got.RunID != sampleData().RunID {
		t.Errorf("RunID = %q", got.RunID)
	}
	if got.TotalRows != 2 || got.InvalidRows != 1 {
		t.Errorf("counters = %d/%d, want 2/1", got.TotalRows, got.InvalidRows)
	}
	if len(got.Records) != 2 {
		t.Fatalf("Records = %d, want 2", len(got.Records))
	}
	if got.Records[1].CellErrors["ItemCode"] == "" {
		t.Error("cell errors lost in serialization")
	}
	if got.Columns["Amount"] != 3 {
		t.Errorf("Columns[Amount] = %d, want 3", got.Columns["Amount"])
	}
}
