// Package core implements the record materialization and validation pipeline.
// It maps positional rows of raw cell values onto strongly-typed records,
// runs field-level and row-level validation, and aggregates the outcome into
// per-record diagnostics and a run summary. The package has no UI or file
// format dependencies and can be driven by any RowSource implementation.
package core

// RowSource is the abstract provider of raw, positionally-indexed cell
// values. Implementations live outside this package (XLSX, CSV, in-memory).
//
// The cursor is forward-only. Close must be safe to call exactly once; the
// pipeline guarantees it is called when iteration stops, whether by
// exhaustion or by the consumer breaking out early.
type RowSource interface {
	// Next advances the cursor and reports whether a row was read.
	Next() bool

	// Row returns the raw cell values of the current row, indexed from 0.
	// The returned slice is only valid until the next call to Next.
	Row() []string

	// FieldCount returns the number of cells in the current row.
	FieldCount() int

	// AdvanceSection moves to the next sub-section of the source (for a
	// workbook, the next sheet) and reports whether one exists. The
	// pipeline reads only the first section; this is intended behavior,
	// not a gap waiting to be fixed.
	AdvanceSection() bool

	// Err returns the first error encountered while reading, if any.
	Err() error

	// Close releases the underlying resource.
	Close() error
}

// Cell is the type-erased view of a Field[T]. The schema descriptor holds
// fields through this interface so the pipeline can parse and validate them
// without reflection. Only Field[T] implements it.
type Cell interface {
	// IsValid reports whether the cell carries no error.
	IsValid() bool

	// Err returns the cell's error message, empty when valid.
	Err() string

	// Warnings returns the cell's accumulated warnings.
	Warnings() []string

	// SetErr records an error on the cell. The first error wins; later
	// calls on an already-failed cell are ignored.
	SetErr(msg string)

	// Warn appends a warning. Warnings never affect validity.
	Warn(msg string)

	position() int
	setRaw(raw string, ref cellRef)
	runValidators(ref cellRef)
}

// cellRef identifies a cell within the source for diagnostic text.
type cellRef struct {
	Field  string
	Row    int // 1-based source row
	Column int // 1-based source column
}

// Bound pairs a field identifier with its container. The identifier is the
// external column name used in diagnostics, not the Go struct field name.
type Bound struct {
	Name string
	Cell Cell
}

// RecordDef describes a record type: how to construct a fresh instance and
// how to enumerate its field containers in declaration order. The descriptor
// list is static per record type; there is no runtime type inspection.
type RecordDef[R any] struct {
	New    func() *R
	Fields func(*R) []Bound
}

// RowValidator is a caller-supplied business rule invoked once per record,
// after materialization and before the field-level validation pass. It may
// attach additional field validators, set row errors or warnings, and read
// any field's parsed value. Order of registration is significant.
type RowValidator[R any] func(*Result[R])
