package core

// reader.go drives the pipeline: NotStarted -> Mapping (schema computed
// once) -> Streaming (per row: fetch, empty-check, materialize, validate,
// aggregate, emit) -> Exhausted. The row sequence is lazy, single-pass, and
// forward-only; each result is produced only when the consumer asks for it,
// so memory stays constant apart from the accumulated summary, which is the
// deliverable.

import (
	"fmt"
	"iter"
)

type pipelineState int

const (
	stateReady pipelineState = iota
	stateStreaming
	stateExhausted
)

// Pipeline materializes and validates records of type R from a RowSource.
// A pipeline is single-use: it owns its source and releases it exactly once
// when iteration stops, whether by exhaustion or an early break. Independent
// pipelines share no state and may run on separate goroutines; a single
// pipeline must not be used concurrently.
type Pipeline[R any] struct {
	def        RecordDef[R]
	src        RowSource
	schema     *Schema
	validators []RowValidator[R]
	summary    *Summary[R]

	headerRows int
	state      pipelineState
	closed     bool
	err        error
}

// Option configures a Pipeline.
type Option[R any] func(*Pipeline[R])

// WithRowValidators registers cross-field business rules. They run once per
// record in the given order, before the field-level pass.
func WithRowValidators[R any](validators ...RowValidator[R]) Option[R] {
	return func(p *Pipeline[R]) {
		p.validators = append(p.validators, validators...)
	}
}

// WithHeaderRows skips the first n source rows (typically a header). Skipped
// rows still count toward source row numbering.
func WithHeaderRows[R any](n int) Option[R] {
	return func(p *Pipeline[R]) {
		p.headerRows = n
	}
}

// NewPipeline builds the schema for the record type and returns a pipeline
// ready to stream. A schema ambiguity (colliding column positions) is a
// configuration error reported here, before any row is touched.
func NewPipeline[R any](def RecordDef[R], src RowSource, opts ...Option[R]) (*Pipeline[R], error) {
	if def.New == nil || def.Fields == nil {
		return nil, fmt.Errorf("pipeline: record definition is incomplete")
	}
	if src == nil {
		return nil, fmt.Errorf("pipeline: nil row source")
	}

	p := &Pipeline[R]{
		def:     def,
		src:     src,
		summary: newSummary[R](),
	}
	for _, opt := range opts {
		opt(p)
	}

	proto := def.New()
	schema, err := BuildSchema(def.Fields(proto))
	if err != nil {
		return nil, err
	}
	p.schema = schema
	p.summary.columns = schema.Columns()
	return p, nil
}

// Schema returns the column map computed for the record type.
func (p *Pipeline[R]) Schema() *Schema { return p.schema }

// Summary returns the diagnostic summary. It grows while Results is being
// consumed and is complete once the source is exhausted.
func (p *Pipeline[R]) Summary() *Summary[R] { return p.summary }

// Err returns the first source read error encountered, if any. Field and
// row level problems are never surfaced here; they live in the summary.
func (p *Pipeline[R]) Err() error { return p.err }

// Results returns the lazy sequence of record results. Fully-empty rows are
// skipped and produce nothing. Stopping iteration early releases the source
// exactly as exhaustion does. The sequence is not restartable; a second call
// yields nothing.
func (p *Pipeline[R]) Results() iter.Seq[*Result[R]] {
	return func(yield func(*Result[R]) bool) {
		if p.state != stateReady {
			return
		}
		p.state = stateStreaming
		defer p.release()
		defer func() { p.state = stateExhausted }()

		rowNum := 0
		for p.src.Next() {
			rowNum++
			if rowNum <= p.headerRows {
				continue
			}
			raw := p.src.Row()
			if p.rowIsEmpty(raw) {
				continue
			}

			res := p.materialize(raw, rowNum)
			p.validate(res)
			res.Collect()
			p.summary.append(res)

			if !yield(res) {
				return
			}
		}
		if err := p.src.Err(); err != nil && p.err == nil {
			p.err = err
		}
	}
}

// Run drains the sequence and returns the completed summary together with
// any source read error. Convenience for callers that do not need per-row
// streaming.
func (p *Pipeline[R]) Run() (*Summary[R], error) {
	for range p.Results() {
	}
	return p.summary, p.err
}

// rowIsEmpty reports whether every mapped column's raw value is empty-like.
// The check uses raw values before parsing so a non-empty cell with a
// failing custom parse is never mistaken for an empty row.
func (p *Pipeline[R]) rowIsEmpty(raw []string) bool {
	for _, pos := range p.schema.positions {
		if pos-1 < len(raw) && !isEmptyLike(raw[pos-1]) {
			return false
		}
	}
	return true
}

// materialize produces one typed record from a raw row. Every mapped field
// is attempted; one field's parse failure never aborts its siblings.
func (p *Pipeline[R]) materialize(raw []string, rowNum int) *Result[R] {
	rec := p.def.New()
	bound := p.def.Fields(rec)
	res := newResult(rec, bound, rowNum, raw)

	for i, b := range bound {
		pos := p.schema.positions[i]
		val := ""
		if pos-1 < len(raw) {
			val = CleanCell(raw[pos-1])
		}
		b.Cell.setRaw(val, cellRef{Field: b.Name, Row: rowNum, Column: pos})
	}
	return res
}

// release closes the row source exactly once.
func (p *Pipeline[R]) release() {
	if p.closed {
		return
	}
	p.closed = true
	if err := p.src.Close(); err != nil && p.err == nil {
		p.err = err
	}
}
