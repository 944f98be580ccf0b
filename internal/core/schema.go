package core

// schema.go derives the column map for a record type: field identifier to
// 1-based column position. The map is a pure function of the descriptor list
// and is computed once per pipeline run, never per row.

import "fmt"

// Schema is the column map for one record type. Positions are parallel to
// the descriptor order returned by RecordDef.Fields.
type Schema struct {
	names     []string
	positions []int
	byName    map[string]int
	width     int
}

// BuildSchema assigns a column position to every field in declaration order.
// Fields with an explicit position keep it; the rest take the next unused
// sequential position starting at 1. An explicit position that lands on an
// already-assigned column is an ambiguous schema and fails fast, before any
// row is processed.
func BuildSchema(bound []Bound) (*Schema, error) {
	s := &Schema{
		names:     make([]string, len(bound)),
		positions: make([]int, len(bound)),
		byName:    make(map[string]int, len(bound)),
	}

	taken := make(map[int]string, len(bound))
	next := 1

	for i, b := range bound {
		if b.Name == "" {
			return nil, fmt.Errorf("schema: field at index %d has no name", i)
		}
		if b.Cell == nil {
			return nil, fmt.Errorf("schema: field %q has no container", b.Name)
		}
		if _, dup := s.byName[b.Name]; dup {
			return nil, fmt.Errorf("schema: duplicate field name %q", b.Name)
		}

		pos := b.Cell.position()
		switch {
		case pos < 0:
			return nil, fmt.Errorf("schema: field %q declares negative column %d", b.Name, pos)
		case pos > 0:
			if other, ok := taken[pos]; ok {
				return nil, fmt.Errorf("schema: column %d assigned to both %q and %q", pos, other, b.Name)
			}
		default:
			for taken[next] != "" {
				next++
			}
			pos = next
		}

		taken[pos] = b.Name
		s.names[i] = b.Name
		s.positions[i] = pos
		s.byName[b.Name] = pos
		if pos > s.width {
			s.width = pos
		}
	}

	return s, nil
}

// Position returns the 1-based column for a field identifier.
func (s *Schema) Position(name string) (int, bool) {
	pos, ok := s.byName[name]
	return pos, ok
}

// Width returns the highest mapped column position.
func (s *Schema) Width() int { return s.width }

// Columns returns a copy of the field-to-column map.
func (s *Schema) Columns() map[string]int {
	out := make(map[string]int, len(s.byName))
	for k, v := range s.byName {
		out[k] = v
	}
	return out
}
