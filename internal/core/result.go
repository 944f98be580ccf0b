package core

// result.go holds the per-record diagnostic result and the run summary.
// A record's validity is derived purely from the union of its cell and row
// diagnostics; warnings never affect it. Summary counters are computed on
// demand from the current results so they reflect any in-place mutation a
// caller makes before reading them.

import (
	"slices"
	"strings"

	"github.com/google/uuid"
)

// Result is the diagnostic outcome for one source row. Record is exclusively
// owned by the result; no other result references it.
type Result[R any] struct {
	// RowNumber is the 1-based position in the original source, not the
	// position in the emitted sequence (empty rows are skipped, not
	// renumbered).
	RowNumber int

	// Raw is a copy of the row's raw cell values as read from the source.
	Raw []string

	// Record is the materialized, typed record instance.
	Record *R

	// CellErrors maps field identifier to its single error message.
	CellErrors map[string]string

	// CellWarnings maps field identifier to its ordered warning messages.
	CellWarnings map[string][]string

	// RowErrors and RowWarnings are diagnostics not attributable to a
	// single field.
	RowErrors   []string
	RowWarnings []string

	bound []Bound
}

func newResult[R any](rec *R, bound []Bound, rowNumber int, raw []string) *Result[R] {
	return &Result[R]{
		RowNumber:    rowNumber,
		Raw:          slices.Clone(raw),
		Record:       rec,
		CellErrors:   make(map[string]string),
		CellWarnings: make(map[string][]string),
		bound:        bound,
	}
}

// IsValid reports whether the record has no cell errors and no row errors.
func (r *Result[R]) IsValid() bool {
	return len(r.CellErrors) == 0 && len(r.RowErrors) == 0
}

// AddRowError appends a row-level error.
func (r *Result[R]) AddRowError(msg string) {
	r.RowErrors = append(r.RowErrors, msg)
}

// AddRowWarning appends a row-level warning.
func (r *Result[R]) AddRowWarning(msg string) {
	r.RowWarnings = append(r.RowWarnings, msg)
}

// Fields returns the record's field descriptors in declaration order.
func (r *Result[R]) Fields() []Bound { return r.bound }

// Collect copies every invalid field's error into CellErrors and every field
// warning into CellWarnings. It is idempotent: re-running it on an unchanged
// result never duplicates entries (warnings dedup by string equality).
func (r *Result[R]) Collect() {
	for _, b := range r.bound {
		if msg := b.Cell.Err(); strings.TrimSpace(msg) != "" {
			r.CellErrors[b.Name] = msg
		}
		for _, w := range b.Cell.Warnings() {
			if !slices.Contains(r.CellWarnings[b.Name], w) {
				r.CellWarnings[b.Name] = append(r.CellWarnings[b.Name], w)
			}
		}
	}
}

// Summary is the aggregate report over all processed records of one pipeline
// run. Results are held in source order with empty rows excluded. It is
// appended to while the pipeline streams and must not be mutated once the
// source is exhausted.
type Summary[R any] struct {
	runID   uuid.UUID
	columns map[string]int
	results []*Result[R]
}

func newSummary[R any]() *Summary[R] {
	return &Summary[R]{runID: uuid.New()}
}

func (s *Summary[R]) append(r *Result[R]) {
	s.results = append(s.results, r)
}

// RunID identifies this pipeline run.
func (s *Summary[R]) RunID() uuid.UUID { return s.runID }

// Results returns the record results in source order.
func (s *Summary[R]) Results() []*Result[R] { return s.results }

// TotalRows is the number of non-empty rows processed.
func (s *Summary[R]) TotalRows() int { return len(s.results) }

// ValidRows counts results with no cell or row errors.
func (s *Summary[R]) ValidRows() int {
	n := 0
	for _, r := range s.results {
		if r.IsValid() {
			n++
		}
	}
	return n
}

// InvalidRows counts results carrying at least one cell or row error.
func (s *Summary[R]) InvalidRows() int {
	return len(s.results) - s.ValidRows()
}

// CellErrorCount totals cell errors across all results.
func (s *Summary[R]) CellErrorCount() int {
	n := 0
	for _, r := range s.results {
		n += len(r.CellErrors)
	}
	return n
}

// RowErrorCount totals row errors across all results.
func (s *Summary[R]) RowErrorCount() int {
	n := 0
	for _, r := range s.results {
		n += len(r.RowErrors)
	}
	return n
}

// CellWarningCount totals cell warnings across all results.
func (s *Summary[R]) CellWarningCount() int {
	n := 0
	for _, r := range s.results {
		for _, ws := range r.CellWarnings {
			n += len(ws)
		}
	}
	return n
}

// RowWarningCount totals row warnings across all results.
func (s *Summary[R]) RowWarningCount() int {
	n := 0
	for _, r := range s.results {
		n += len(r.RowWarnings)
	}
	return n
}

// RecordReport is the type-erased diagnostic view of one Result, safe for
// report writers and serialization.
type RecordReport struct {
	RowNumber    int                 `json:"rowNumber"`
	Raw          []string            `json:"raw,omitempty"`
	Valid        bool                `json:"valid"`
	CellErrors   map[string]string   `json:"cellErrors,omitempty"`
	CellWarnings map[string][]string `json:"cellWarnings,omitempty"`
	RowErrors    []string            `json:"rowErrors,omitempty"`
	RowWarnings  []string            `json:"rowWarnings,omitempty"`
}

// ReportData is the snapshot a report collaborator consumes: every record's
// diagnostics, the field-to-column map, and the summary counters.
type ReportData struct {
	RunID        string            `json:"runId"`
	Columns      map[string]int    `json:"columns"`
	Records      []RecordReport    `json:"records"`
	TotalRows    int               `json:"totalRows"`
	ValidRows    int               `json:"validRows"`
	InvalidRows  int               `json:"invalidRows"`
	CellErrors   int               `json:"cellErrors"`
	RowErrors    int               `json:"rowErrors"`
	CellWarnings int               `json:"cellWarnings"`
	RowWarnings  int               `json:"rowWarnings"`
}

// Report snapshots the summary for rendering. Counters are computed at call
// time from the current results.
func (s *Summary[R]) Report() *ReportData {
	data := &ReportData{
		RunID:        s.runID.String(),
		Columns:      s.columns,
		Records:      make([]RecordReport, 0, len(s.results)),
		TotalRows:    s.TotalRows(),
		ValidRows:    s.ValidRows(),
		InvalidRows:  s.InvalidRows(),
		CellErrors:   s.CellErrorCount(),
		RowErrors:    s.RowErrorCount(),
		CellWarnings: s.CellWarningCount(),
		RowWarnings:  s.RowWarningCount(),
	}
	for _, r := range s.results {
		data.Records = append(data.Records, RecordReport{
			RowNumber:    r.RowNumber,
			Raw:          r.Raw,
			Valid:        r.IsValid(),
			CellErrors:   r.CellErrors,
			CellWarnings: r.CellWarnings,
			RowErrors:    r.RowErrors,
			RowWarnings:  r.RowWarnings,
		})
	}
	return data
}
