package core

// convert.go provides the built-in conversions from raw cell text to field
// value types. These handle the messy reality of user-maintained
// spreadsheets:
//
//   - Multiple date formats (US, EU, ISO, etc.)
//   - Currency symbols and thousand separators in numbers
//   - Various boolean spellings (yes/no, true/false, 1/0)
//   - Excel formula prefixes (="value")
//
// The To* functions return pgtype values with Valid=false for empty or
// unparseable input so null-like cells propagate as null. convertValue is
// the generic dispatch used by Field[T] when no custom parse strategy is
// declared; there a non-empty unparseable cell is an error, not a null.

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// numericRegex validates that a string is a valid numeric format after
// cleanup. Matches integers, decimals, and scientific notation.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// TwoDigitYearPivot defines how 2-digit years are interpreted. Years that
// would land more than this many years in the future are assumed to be in
// the previous century.
var TwoDigitYearPivot = 20

// Date layouts split by year format for proper 2-digit year handling.
var (
	twoDigitYearLayouts = []string{
		"1/2/06", "01/02/06", "1-2-06", "1.2.06", "01.02.06",
	}
	fourDigitYearLayouts = []string{
		"1/2/2006", "01/02/2006", "1-2-2006", "01-02-2006", "1.2.2006", "01.02.2006",
		"2006-01-02", "2006/01/02", "2006.01.02",
		"Jan 2, 2006", "2 Jan 2006",
		"20060102",
	}
)

// CleanCell normalizes a raw cell value: trims whitespace and unwraps the
// Excel formula-literal form ="value" that some exports produce.
func CleanCell(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, `="`) && strings.HasSuffix(s, `"`) && len(s) >= 3 {
		s = s[2 : len(s)-1]
	}
	return strings.TrimSpace(s)
}

// ToText converts a string to pgtype.Text.
// Returns invalid if the string is empty or only whitespace.
func ToText(s string) pgtype.Text {
	s = strings.TrimSpace(s)
	if s == "" {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: s, Valid: true}
}

// ToDate converts a string to pgtype.Date.
// Supports multiple date formats and handles 2-digit years with a pivot.
func ToDate(s string) pgtype.Date {
	s = strings.TrimSpace(s)
	if s == "" {
		return pgtype.Date{Valid: false}
	}

	// Try 4-digit year layouts first (unambiguous)
	for _, layout := range fourDigitYearLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return pgtype.Date{Time: t, Valid: true}
		}
	}

	// Try 2-digit year layouts with pivot year adjustment
	currentYear := time.Now().Year()
	pivotYear := currentYear + TwoDigitYearPivot

	for _, layout := range twoDigitYearLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			if t.Year() > pivotYear {
				t = t.AddDate(-100, 0, 0)
			}
			return pgtype.Date{Time: t, Valid: true}
		}
	}

	return pgtype.Date{Valid: false}
}

// ToNumeric converts a string to pgtype.Numeric. Handles currency symbols,
// thousands separators, and accounting format (parentheses for negative).
func ToNumeric(s string) pgtype.Numeric {
	s = strings.TrimSpace(s)
	if s == "" {
		return pgtype.Numeric{Valid: false}
	}

	// Detect negative accounting format "(123.45)"
	isNegative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		isNegative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	// Remove common currency symbols and thousands separators
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, "€", "") // Euro
	s = strings.ReplaceAll(s, "£", "") // Pound
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	if isNegative {
		s = "-" + s
	}

	if !numericRegex.MatchString(s) {
		return pgtype.Numeric{Valid: false}
	}

	var n pgtype.Numeric
	if err := n.Scan(s); err != nil {
		return pgtype.Numeric{Valid: false}
	}
	return n
}

// ToBool converts a string to pgtype.Bool. Accepts common spreadsheet
// spellings: true/false, t/f, yes/no, y/n, 1/0.
func ToBool(s string) pgtype.Bool {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return pgtype.Bool{Valid: false}
	}

	switch s {
	case "true", "t", "yes", "y", "1":
		return pgtype.Bool{Bool: true, Valid: true}
	case "false", "f", "no", "n", "0":
		return pgtype.Bool{Bool: false, Valid: true}
	default:
		return pgtype.Bool{Valid: false}
	}
}

// ToUUID converts a string to pgtype.UUID.
func ToUUID(s string) pgtype.UUID {
	s = strings.TrimSpace(s)
	if s == "" {
		return pgtype.UUID{Valid: false}
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return pgtype.UUID{Valid: false}
	}
	return pgtype.UUID{Bytes: [16]byte(u), Valid: true}
}

// cleanNumber strips currency symbols, thousands separators, and accounting
// parentheses the same way ToNumeric does, returning plain digits for the
// strconv parsers.
func cleanNumber(s string) string {
	s = strings.TrimSpace(s)
	isNegative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		isNegative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, "€", "")
	s = strings.ReplaceAll(s, "£", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if isNegative {
		s = "-" + s
	}
	return s
}

// convertValue is the built-in conversion used when a field declares no
// custom parse strategy. Input is never empty-like here; the caller handles
// empty cells before dispatching. An unparseable value is an error that the
// field turns into a cell diagnostic.
func convertValue[T any](raw string) (T, error) {
	var out T

	switch p := any(&out).(type) {
	case *string:
		*p = strings.TrimSpace(raw)

	case *int:
		v, err := strconv.ParseInt(cleanNumber(raw), 10, 0)
		if err != nil {
			return out, fmt.Errorf("invalid number %q", raw)
		}
		*p = int(v)

	case *int64:
		v, err := strconv.ParseInt(cleanNumber(raw), 10, 64)
		if err != nil {
			return out, fmt.Errorf("invalid number %q", raw)
		}
		*p = v

	case *float64:
		v, err := strconv.ParseFloat(cleanNumber(raw), 64)
		if err != nil {
			return out, fmt.Errorf("invalid number %q", raw)
		}
		*p = v

	case *bool:
		b := ToBool(raw)
		if !b.Valid {
			return out, fmt.Errorf("invalid bool %q", raw)
		}
		*p = b.Bool

	case *time.Time:
		d := ToDate(raw)
		if !d.Valid {
			return out, fmt.Errorf("invalid date %q", raw)
		}
		*p = d.Time

	case *uuid.UUID:
		u, err := uuid.Parse(strings.TrimSpace(raw))
		if err != nil {
			return out, fmt.Errorf("invalid uuid %q", raw)
		}
		*p = u

	case *pgtype.Text:
		*p = ToText(raw)

	case *pgtype.Numeric:
		n := ToNumeric(raw)
		if !n.Valid {
			return out, fmt.Errorf("invalid number %q", raw)
		}
		*p = n

	case *pgtype.Date:
		d := ToDate(raw)
		if !d.Valid {
			return out, fmt.Errorf("invalid date %q", raw)
		}
		*p = d

	case *pgtype.Bool:
		b := ToBool(raw)
		if !b.Valid {
			return out, fmt.Errorf("invalid bool %q", raw)
		}
		*p = b

	case *pgtype.UUID:
		u := ToUUID(raw)
		if !u.Valid {
			return out, fmt.Errorf("invalid uuid %q", raw)
		}
		*p = u

	default:
		return out, errors.New("unsupported field type")
	}

	return out, nil
}
