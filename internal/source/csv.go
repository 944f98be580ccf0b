package source

// csv.go implements the CSV row source. Input passes through the BOM and
// UTF-8 sanitizing readers before encoding/csv sees it, and the reader is
// configured leniently: variable field counts and lazy quotes, since
// exported spreadsheets rarely follow the CSV spec to the letter.

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/M-JOXx/ExcelDiagnosticsHelper/internal/core"
)

var errClosed = errors.New("source closed")

// CSVSource streams rows from CSV input. A CSV file has a single section;
// AdvanceSection always reports false.
type CSVSource struct {
	file   io.Closer
	reader *csv.Reader
	cur    []string
	err    error
	closed bool
}

var _ core.RowSource = (*CSVSource)(nil)

// OpenCSV opens a CSV file as a row source.
func OpenCSV(path string) (*CSVSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	src := NewCSVSource(f)
	src.file = f
	return src, nil
}

// NewCSVSource wraps an io.Reader as a row source. The caller keeps
// ownership of the reader's underlying resource unless it was opened via
// OpenCSV.
func NewCSVSource(r io.Reader) *CSVSource {
	cr := csv.NewReader(wrapReader(r))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	return &CSVSource{reader: cr}
}

// Next advances to the next row.
func (s *CSVSource) Next() bool {
	if s.closed || s.err != nil {
		return false
	}
	rec, err := s.reader.Read()
	if err == io.EOF {
		return false
	}
	if err != nil {
		s.err = fmt.Errorf("not a valid csv: %w", err)
		return false
	}
	s.cur = rec
	return true
}

// Row returns the current row's raw cell values.
func (s *CSVSource) Row() []string { return s.cur }

// FieldCount returns the number of cells in the current row.
func (s *CSVSource) FieldCount() int { return len(s.cur) }

// AdvanceSection reports false: CSV input has exactly one section.
func (s *CSVSource) AdvanceSection() bool { return false }

// Err returns the first read error encountered, if any.
func (s *CSVSource) Err() error { return s.err }

// Close releases the underlying file, once.
func (s *CSVSource) Close() error {
	if s.closed {
		return errClosed
	}
	s.closed = true
	if s.file != nil {
		return s.file.Close()
	}
	return nil
}
