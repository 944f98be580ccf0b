package source

// xlsx.go implements the workbook row source on top of excelize. Rows are
// streamed through the sheet iterator rather than loaded whole, so memory
// stays constant for large workbooks. Sheets map onto the pipeline's
// sub-sections: AdvanceSection moves to the next sheet, and the pipeline's
// first-section-only policy means sheets past the first are read only when a
// caller asks for them explicitly.

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/M-JOXx/ExcelDiagnosticsHelper/internal/core"
)

// XLSXSource streams rows from an .xlsx workbook.
type XLSXSource struct {
	file    *excelize.File
	sheets  []string
	section int
	rows    *excelize.Rows
	cur     []string
	err     error
	closed  bool
}

var _ core.RowSource = (*XLSXSource)(nil)

// OpenXLSX opens a workbook as a row source positioned on its first sheet.
func OpenXLSX(path string) (*XLSXSource, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		f.Close()
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}

	rows, err := f.Rows(sheets[0])
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("not a valid workbook: %w", err)
	}

	return &XLSXSource{file: f, sheets: sheets, rows: rows}, nil
}

// Sheet returns the name of the sheet the cursor is on.
func (s *XLSXSource) Sheet() string { return s.sheets[s.section] }

// Next advances to the next row of the current sheet.
func (s *XLSXSource) Next() bool {
	if s.closed || s.err != nil || s.rows == nil {
		return false
	}
	if !s.rows.Next() {
		return false
	}
	cols, err := s.rows.Columns()
	if err != nil {
		s.err = fmt.Errorf("not a valid workbook: %w", err)
		return false
	}
	s.cur = cols
	return true
}

// Row returns the current row's raw cell values.
func (s *XLSXSource) Row() []string { return s.cur }

// FieldCount returns the number of cells in the current row.
func (s *XLSXSource) FieldCount() int { return len(s.cur) }

// AdvanceSection moves the cursor to the start of the next sheet and
// reports whether one exists.
func (s *XLSXSource) AdvanceSection() bool {
	if s.closed || s.section+1 >= len(s.sheets) {
		return false
	}

	if s.rows != nil {
		if err := s.rows.Close(); err != nil && s.err == nil {
			s.err = err
		}
	}

	s.section++
	rows, err := s.file.Rows(s.sheets[s.section])
	if err != nil {
		s.err = fmt.Errorf("not a valid workbook: %w", err)
		s.rows = nil
		return false
	}
	s.rows = rows
	s.cur = nil
	return true
}

// Err returns the first read error encountered, if any.
func (s *XLSXSource) Err() error { return s.err }

// Close releases the sheet iterator and the workbook, once.
func (s *XLSXSource) Close() error {
	if s.closed {
		return errClosed
	}
	s.closed = true

	var first error
	if s.rows != nil {
		first = s.rows.Close()
	}
	if err := s.file.Close(); err != nil && first == nil {
		first = err
	}
	return first
}
