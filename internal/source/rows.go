package source

// rows.go implements an in-memory row source, used by tests and by library
// callers that already hold their data as string slices.

import "github.com/M-JOXx/ExcelDiagnosticsHelper/internal/core"

// Rows is an in-memory row source. It supports multiple sections so
// multi-sheet behavior can be exercised without a workbook on disk.
type Rows struct {
	sections [][][]string
	section  int
	i        int
	cur      []string
	closed   bool
}

var _ core.RowSource = (*Rows)(nil)

// NewRows builds a single-section in-memory source.
func NewRows(rows [][]string) *Rows {
	return &Rows{sections: [][][]string{rows}}
}

// NewSectionedRows builds a multi-section in-memory source.
func NewSectionedRows(sections ...[][]string) *Rows {
	return &Rows{sections: sections}
}

// Next advances to the next row of the current section.
func (s *Rows) Next() bool {
	if s.closed || s.section >= len(s.sections) {
		return false
	}
	rows := s.sections[s.section]
	if s.i >= len(rows) {
		return false
	}
	s.cur = rows[s.i]
	s.i++
	return true
}

// Row returns the current row's raw cell values.
func (s *Rows) Row() []string { return s.cur }

// FieldCount returns the number of cells in the current row.
func (s *Rows) FieldCount() int { return len(s.cur) }

// AdvanceSection moves to the next section if one exists.
func (s *Rows) AdvanceSection() bool {
	if s.closed || s.section+1 >= len(s.sections) {
		return false
	}
	s.section++
	s.i = 0
	s.cur = nil
	return true
}

// Err always returns nil; in-memory reads cannot fail.
func (s *Rows) Err() error { return nil }

// Closed reports whether Close has been called.
func (s *Rows) Closed() bool { return s.closed }

// Close marks the source released.
func (s *Rows) Close() error {
	if s.closed {
		return errClosed
	}
	s.closed = true
	return nil
}
