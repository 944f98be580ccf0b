package core

// field.go holds the typed field container. One Field[T] exists per scalar
// column on a record type. It carries the parsed value, the default used
// when parsing falls through, the required flag, the optional custom parse
// strategy, and the cell-level diagnostic state.

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// RequiredMessage is the error attached to a required field whose value is
// null or blank. The required check runs before any declared validator and
// short-circuits the rest.
const RequiredMessage = "Value is required."

// ParseFunc converts one raw cell value into T. When ok is false the field
// falls back to its default and msg (or a generic fallback naming the field)
// is recorded as the cell error.
type ParseFunc[T any] func(raw string) (value T, ok bool, msg string)

// fieldRule is one declared validator: a predicate over the parsed value and
// the message attached when the predicate fails.
type fieldRule[T any] struct {
	pred func(T) bool
	msg  string
}

// Field is the typed container for one column's value and diagnostics.
//
// Column is the 1-based source column; zero means the schema assigns the
// next unused position in declaration order. Parse, when set, replaces the
// built-in conversion for the declared type.
type Field[T any] struct {
	Column   int
	Value    T
	Default  T
	Required bool
	Parse    ParseFunc[T]

	rules    []fieldRule[T]
	err      string
	warnings []string
	empty    bool // raw cell was empty-like
}

// Validate registers a validator. Validators run in registration order after
// the required check; the first failing predicate sets the field error and
// stops evaluation of the rest.
func (f *Field[T]) Validate(pred func(T) bool, msg string) {
	f.rules = append(f.rules, fieldRule[T]{pred: pred, msg: msg})
}

// IsValid reports whether the field carries no error. Validity is derived
// purely from the error string; warnings do not count.
func (f *Field[T]) IsValid() bool {
	return strings.TrimSpace(f.err) == ""
}

// Err returns the field's error message, empty when valid.
func (f *Field[T]) Err() string { return f.err }

// SetErr records an error. At most one error is ever attached per
// parse/validate cycle; the first failure wins.
func (f *Field[T]) SetErr(msg string) {
	if strings.TrimSpace(f.err) != "" {
		return
	}
	f.err = msg
}

// Warn appends a warning message.
func (f *Field[T]) Warn(msg string) {
	f.warnings = append(f.warnings, msg)
}

// Warnings returns the accumulated warnings.
func (f *Field[T]) Warnings() []string { return f.warnings }

func (f *Field[T]) position() int { return f.Column }

// setRaw populates the field from one raw cell value.
//
// Empty-like input assigns the default and is never an error here; whether
// empty is acceptable belongs to the required check during validation. A
// failing custom parse or built-in conversion also falls back to the default
// so sibling fields and row validators always see a usable value.
func (f *Field[T]) setRaw(raw string, ref cellRef) {
	f.empty = isEmptyLike(raw)
	if f.empty {
		f.Value = f.Default
		return
	}

	if f.Parse != nil {
		v, ok, msg := f.Parse(raw)
		if !ok {
			f.Value = f.Default
			if strings.TrimSpace(msg) == "" {
				msg = fmt.Sprintf("%s has an invalid value", ref.Field)
			}
			f.SetErr(msg)
			return
		}
		f.Value = v
		return
	}

	v, err := convertValue[T](raw)
	if err != nil {
		f.Value = f.Default
		f.SetErr(fmt.Sprintf("%s: %v (row %d, column %d)", ref.Field, err, ref.Row, ref.Column))
		return
	}
	f.Value = v
}

// runValidators executes the field-level validation pass: required check
// first, then declared validators in order, short-circuiting on the first
// failure. A field that already carries a parse error skips validators
// entirely; the parse error is authoritative.
func (f *Field[T]) runValidators(ref cellRef) {
	if !f.IsValid() {
		return
	}
	if f.Required && (f.empty || isBlankValue(f.Value)) {
		f.SetErr(RequiredMessage)
		return
	}
	for _, r := range f.rules {
		if !r.pred(f.Value) {
			f.SetErr(r.msg)
			return
		}
	}
}

// isEmptyLike reports whether a raw cell value counts as absent. Empty
// string and whitespace-only cells are treated uniformly regardless of the
// physical source type.
func isEmptyLike(raw string) bool {
	return strings.TrimSpace(raw) == ""
}

// isBlankValue reports whether a parsed value counts as null or blank for
// the required check. Nullable pgtype values are blank when invalid; text is
// blank when whitespace-only; uuid.Nil counts as unset.
func isBlankValue(v any) bool {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t) == ""
	case pgtype.Text:
		return !t.Valid || strings.TrimSpace(t.String) == ""
	case pgtype.Numeric:
		return !t.Valid
	case pgtype.Date:
		return !t.Valid
	case pgtype.Bool:
		return !t.Valid
	case pgtype.UUID:
		return !t.Valid
	case uuid.UUID:
		return t == uuid.Nil
	default:
		return false
	}
}
