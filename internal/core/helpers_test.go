package core

// helpers_test.go holds shared fixtures: an in-memory row source and a small
// record type exercising the built-in conversions.

type stubRows struct {
	rows    [][]string
	i       int
	cur     []string
	readErr error
	closes  int
}

var _ RowSource = (*stubRows)(nil)

func newStubRows(rows ...[]string) *stubRows {
	return &stubRows{rows: rows}
}

func (s *stubRows) Next() bool {
	if s.i >= len(s.rows) {
		return false
	}
	s.cur = s.rows[s.i]
	s.i++
	return true
}

func (s *stubRows) Row() []string        { return s.cur }
func (s *stubRows) FieldCount() int      { return len(s.cur) }
func (s *stubRows) AdvanceSection() bool { return false }
func (s *stubRows) Err() error           { return s.readErr }

func (s *stubRows) Close() error {
	s.closes++
	return nil
}

// item maps Id, Name, Price onto columns 1-3.
type item struct {
	ID    Field[int]
	Name  Field[string]
	Price Field[float64]
}

func newItem() *item {
	it := &item{}
	it.ID.Required = true
	it.Name.Required = true
	return it
}

func itemDef() RecordDef[item] {
	return RecordDef[item]{
		New: newItem,
		Fields: func(it *item) []Bound {
			return []Bound{
				{Name: "Id", Cell: &it.ID},
				{Name: "Name", Cell: &it.Name},
				{Name: "Price", Cell: &it.Price},
			}
		},
	}
}
