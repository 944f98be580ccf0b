// Package report renders the diagnostics collected by a pipeline run into
// output artifacts: an annotated workbook that reproduces the source layout
// with problem cells highlighted and commented, a failed-rows CSV, and a
// machine-readable JSON summary. Nothing here feeds back into the pipeline;
// the report side only reads the completed ReportData snapshot.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/M-JOXx/ExcelDiagnosticsHelper/internal/core"
)

// Options controls how the annotated workbook is styled.
type Options struct {
	// ErrorFill and WarningFill are RGB hex fill colors for problem cells.
	ErrorFill   string
	WarningFill string

	// CommentAuthor is shown on the diagnostic comments.
	CommentAuthor string

	// HeaderRow, when > 0, receives the field names in column order.
	HeaderRow int

	// MaxColumnWidth caps the auto-fitted column width.
	MaxColumnWidth float64
}

// DefaultOptions returns the standard annotation styling: the classic
// red/yellow conditional-format colors.
func DefaultOptions() Options {
	return Options{
		ErrorFill:      "FFC7CE",
		WarningFill:    "FFEB9C",
		CommentAuthor:  "exceldiag",
		HeaderRow:      1,
		MaxColumnWidth: 60,
	}
}

// issuesHeader names the trailing column that carries row-level diagnostics,
// which have no cell of their own to attach to.
const issuesHeader = "Row Issues"

// WriteWorkbook writes the annotated workbook: every processed row at its
// original source position, error cells filled and commented, warning cells
// likewise, row-level diagnostics in a trailing column, and a Summary sheet
// with the run counters.
func WriteWorkbook(path string, data *core.ReportData, opts Options) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	errStyle, err := fillStyle(f, opts.ErrorFill)
	if err != nil {
		return fmt.Errorf("report: error style: %w", err)
	}
	warnStyle, err := fillStyle(f, opts.WarningFill)
	if err != nil {
		return fmt.Errorf("report: warning style: %w", err)
	}

	width := dataWidth(data)
	issuesCol := width + 1
	colWidths := make([]int, issuesCol)

	if opts.HeaderRow > 0 {
		if err := writeHeader(f, sheet, data.Columns, issuesCol, opts.HeaderRow, colWidths); err != nil {
			return err
		}
	}

	for _, rec := range data.Records {
		if err := writeRecord(f, sheet, data, rec, issuesCol, errStyle, warnStyle, opts, colWidths); err != nil {
			return err
		}
	}

	if err := autoFit(f, sheet, colWidths, opts.MaxColumnWidth); err != nil {
		return err
	}
	if err := writeSummarySheet(f, data); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("report: save %s: %w", path, err)
	}
	return nil
}

func fillStyle(f *excelize.File, color string) (int, error) {
	return f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}},
	})
}

// dataWidth is the highest column touched by any field or raw cell.
func dataWidth(data *core.ReportData) int {
	width := 0
	for _, pos := range data.Columns {
		if pos > width {
			width = pos
		}
	}
	for _, rec := range data.Records {
		if len(rec.Raw) > width {
			width = len(rec.Raw)
		}
	}
	return width
}

func writeHeader(f *excelize.File, sheet string, columns map[string]int, issuesCol, row int, colWidths []int) error {
	for name, pos := range columns {
		cell, err := excelize.CoordinatesToCellName(pos, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return err
		}
		noteWidth(colWidths, pos, name)
	}
	cell, err := excelize.CoordinatesToCellName(issuesCol, row)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, cell, issuesHeader); err != nil {
		return err
	}
	noteWidth(colWidths, issuesCol, issuesHeader)
	return nil
}

func writeRecord(f *excelize.File, sheet string, data *core.ReportData, rec core.RecordReport, issuesCol, errStyle, warnStyle int, opts Options, colWidths []int) error {
	// Original cell values at their original positions.
	for i, v := range rec.Raw {
		cell, err := excelize.CoordinatesToCellName(i+1, rec.RowNumber)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
		noteWidth(colWidths, i+1, v)
	}

	// Error cells: fill plus a comment carrying the message.
	for field, msg := range rec.CellErrors {
		if err := annotateCell(f, sheet, data.Columns[field], rec.RowNumber, errStyle, msg, opts); err != nil {
			return err
		}
	}

	// Warning cells: same treatment, unless the cell already shows an
	// error — the error fill stays authoritative.
	for field, msgs := range rec.CellWarnings {
		if _, hasErr := rec.CellErrors[field]; hasErr {
			continue
		}
		if err := annotateCell(f, sheet, data.Columns[field], rec.RowNumber, warnStyle, strings.Join(msgs, "\n"), opts); err != nil {
			return err
		}
	}

	// Row-level diagnostics go in the trailing column.
	if len(rec.RowErrors) > 0 || len(rec.RowWarnings) > 0 {
		text := strings.Join(append(append([]string{}, rec.RowErrors...), rec.RowWarnings...), "; ")
		style := warnStyle
		if len(rec.RowErrors) > 0 {
			style = errStyle
		}
		cell, err := excelize.CoordinatesToCellName(issuesCol, rec.RowNumber)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, text); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return err
		}
		noteWidth(colWidths, issuesCol, text)
	}
	return nil
}

func annotateCell(f *excelize.File, sheet string, col, row, style int, msg string, opts Options) error {
	if col < 1 {
		return nil
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
		return err
	}
	return f.AddComment(sheet, excelize.Comment{
		Cell:      cell,
		Author:    opts.CommentAuthor,
		Paragraph: []excelize.RichTextRun{{Text: msg}},
	})
}

func noteWidth(colWidths []int, col int, text string) {
	if col-1 < len(colWidths) && len(text) > colWidths[col-1] {
		colWidths[col-1] = len(text)
	}
}

// autoFit sizes each column to its longest content, capped.
func autoFit(f *excelize.File, sheet string, colWidths []int, maxWidth float64) error {
	for i, w := range colWidths {
		if w == 0 {
			continue
		}
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		width := float64(w) + 2
		if maxWidth > 0 && width > maxWidth {
			width = maxWidth
		}
		if err := f.SetColWidth(sheet, name, name, width); err != nil {
			return err
		}
	}
	return nil
}

// writeSummarySheet appends a sheet with the run counters.
func writeSummarySheet(f *excelize.File, data *core.ReportData) error {
	const sheet = "Summary"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	rows := [][]any{
		{"Run", data.RunID},
		{"Total rows", data.TotalRows},
		{"Valid rows", data.ValidRows},
		{"Invalid rows", data.InvalidRows},
		{"Cell errors", data.CellErrors},
		{"Row errors", data.RowErrors},
		{"Cell warnings", data.CellWarnings},
		{"Row warnings", data.RowWarnings},
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return err
		}
	}
	return nil
}

// fieldOrder returns field names sorted by their column position.
func fieldOrder(columns map[string]int) []string {
	names := make([]string, 0, len(columns))
	for name := range columns {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return columns[names[i]] < columns[names[j]] })
	return names
}
