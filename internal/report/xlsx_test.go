package report

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestWriteWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "annotated.xlsx")
	data := sampleData()
	data.Records[0].CellWarnings = map[string][]string{
		"Amount": {"Amount is unusually high."},
	}

	if err := WriteWorkbook(path, data, DefaultOptions()); err != nil {
		t.Fatalf("WriteWorkbook() error = %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("output not a readable workbook: %v", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)

	// Header row carries the field names plus the trailing issues column.
	header, err := f.GetCellValue(sheet, "A1")
	if err != nil || header != "OrderId" {
		t.Errorf("A1 = %q, %v; want OrderId", header, err)
	}
	issues, err := f.GetCellValue(sheet, "F1")
	if err != nil || issues != issuesHeader {
		t.Errorf("F1 = %q, %v; want %q", issues, err, issuesHeader)
	}

	// Records land at their original source rows.
	if v, _ := f.GetCellValue(sheet, "A2"); v != "1" {
		t.Errorf("A2 = %q, want row 2 raw value", v)
	}
	if v, _ := f.GetCellValue(sheet, "A4"); v != "x" {
		t.Errorf("A4 = %q, want row 4 raw value", v)
	}
	if v, _ := f.GetCellValue(sheet, "A3"); v != "" {
		t.Errorf("A3 = %q, want the skipped source row left blank", v)
	}

	// Row-level diagnostics go in the issues column of the failing row.
	rowIssues, _ := f.GetCellValue(sheet, "F4")
	if !strings.Contains(rowIssues, "For 'Refund' rows, Amount must be positive.") {
		t.Errorf("F4 = %q, want the row error text", rowIssues)
	}

	// Error cells carry comments with the message.
	comments, err := f.GetComments(sheet)
	if err != nil {
		t.Fatalf("GetComments() error = %v", err)
	}
	byCell := make(map[string]string, len(comments))
	for _, c := range comments {
		var text strings.Builder
		for _, run := range c.Paragraph {
			text.WriteString(run.Text)
		}
		byCell[c.Cell] = text.String()
		if c.Author != DefaultOptions().CommentAuthor {
			t.Errorf("comment author = %q, want %q", c.Author, DefaultOptions().CommentAuthor)
		}
	}
	if !strings.Contains(byCell["B4"], "ItemCode must have at least 3 characters.") {
		t.Errorf("B4 comment = %q", byCell["B4"])
	}
	if !strings.Contains(byCell["C2"], "Amount is unusually high.") {
		t.Errorf("C2 comment = %q", byCell["C2"])
	}

	// Summary sheet carries the counters.
	if v, _ := f.GetCellValue("Summary", "A1"); v != "Run" {
		t.Errorf("Summary!A1 = %q, want Run", v)
	}
	if v, _ := f.GetCellValue("Summary", "B3"); v != "1" {
		t.Errorf("Summary!B3 (valid rows) = %q, want 1", v)
	}
}

func TestWriteWorkbook_NoHeaderRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bare.xlsx")
	opts := DefaultOptions()
	opts.HeaderRow = 0

	if err := WriteWorkbook(path, sampleData(), opts); err != nil {
		t.Fatalf("WriteWorkbook() error = %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if v, _ := f.GetCellValue(f.GetSheetName(0), "A1"); v != "" {
		t.Errorf("A1 = %q, want no header written", v)
	}
}

func TestDataWidth(t *testing.T) {
	data := sampleData()
	if got := dataWidth(data); got != 5 {
		t.Errorf("dataWidth = %d, want 5", got)
	}

	data.Records[0].Raw = append(data.Records[0].Raw, "spill", "over")
	if got := dataWidth(data); got != 7 {
		t.Errorf("dataWidth with wide raw row = %d, want 7", got)
	}
}
