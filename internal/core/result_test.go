package core

import "testing"

func invalidItemResult() *Result[item] {
	rec := newItem()
	bound := itemDef().Fields(rec)
	res := newResult(rec, bound, 4, []string{"x", "", "600"})

	rec.ID.SetErr("Id has an invalid value")
	rec.Price.Warn("Price is unusually high.")
	res.AddRowError("something row-level")
	return res
}

// ----------------------------------------------------------------------------
// Collect Tests
// ----------------------------------------------------------------------------

func TestResultCollect_GathersFieldDiagnostics(t *testing.T) {
	res := invalidItemResult()
	res.Collect()

	if res.CellErrors["Id"] != "Id has an invalid value" {
		t.Errorf("CellErrors[Id] = %q", res.CellErrors["Id"])
	}
	if len(res.CellWarnings["Price"]) != 1 {
		t.Errorf("CellWarnings[Price] = %v, want one warning", res.CellWarnings["Price"])
	}
	if res.IsValid() {
		t.Error("result with errors must be invalid")
	}
}

func TestResultCollect_Idempotent(t *testing.T) {
	res := invalidItemResult()

	res.Collect()
	res.Collect()
	res.Collect()

	if len(res.CellErrors) != 1 {
		t.Errorf("CellErrors = %v, want exactly one entry", res.CellErrors)
	}
	if len(res.CellWarnings["Price"]) != 1 {
		t.Errorf("CellWarnings[Price] = %v, want no duplicates", res.CellWarnings["Price"])
	}
	if len(res.RowErrors) != 1 {
		t.Errorf("RowErrors = %v, want the single row error", res.RowErrors)
	}
}

func TestResultIsValid(t *testing.T) {
	tests := []struct {
		name string
		prep func(*Result[item])
		want bool
	}{
		{name: "untouched", prep: func(*Result[item]) {}, want: true},
		{
			name: "cell error",
			prep: func(r *Result[item]) {
				r.Record.ID.SetErr("bad")
				r.Collect()
			},
			want: false,
		},
		{
			name: "row error",
			prep: func(r *Result[item]) { r.AddRowError("bad pair") },
			want: false,
		},
		{
			name: "warnings only",
			prep: func(r *Result[item]) {
				r.Record.Price.Warn("high")
				r.AddRowWarning("odd")
				r.Collect()
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := newItem()
			res := newResult(rec, itemDef().Fields(rec), 1, nil)
			tt.prep(res)

			if got := res.IsValid(); got != tt.want {
				t.Errorf("IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// Summary Tests
// ----------------------------------------------------------------------------

func TestSummaryCounters(t *testing.T) {
	src := newStubRows(
		[]string{"1", "Widget", "9.99"},       // valid
		[]string{"bad", "Gadget", "1"},        // one cell error
		[]string{"3", "", "2"},                // required Name missing
		[]string{"4", "Sprocket", "also bad"}, // one cell error
	)
	warnBig := func(res *Result[item]) {
		if res.Record.Price.Value > 5 {
			res.Record.Price.Warn("pricey")
		}
	}
	failEven := func(res *Result[item]) {
		if res.Record.ID.Value%2 == 0 && res.Record.ID.IsValid() {
			res.AddRowError("even ids are reserved")
		}
	}

	pipe, err := NewPipeline(itemDef(), src, WithRowValidators(warnBig, failEven))
	if err != nil {
		t.Fatalf("NewPipeline() error = %v", err)
	}
	summary, err := pipe.Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	checks := []struct {
		name string
		got  int
		want int
	}{
		{"TotalRows", summary.TotalRows(), 4},
		{"ValidRows", summary.ValidRows(), 1},
		{"InvalidRows", summary.InvalidRows(), 3},
		{"CellErrorCount", summary.CellErrorCount(), 3},
		{"RowErrorCount", summary.RowErrorCount(), 1},
		{"CellWarningCount", summary.CellWarningCount(), 1},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %d, want %d", c.name, c.got, c.want)
		}
	}

	if summary.TotalRows() != summary.ValidRows()+summary.InvalidRows() {
		t.Error("valid + invalid must equal total")
	}
}

func TestSummaryReport_Snapshot(t *testing.T) {
	src := newStubRows(
		[]string{"1", "Widget", "9.99"},
		[]string{"x", "Gadget", "1"},
	)
	pipe, err := NewPipeline(itemDef(), src)
	if err != nil {
		t.Fatalf("NewPipeline() error = %v", err)
	}
	summary, err := pipe.Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	data := summary.Report()

	if data.RunID != summary.RunID().String() {
		t.Errorf("RunID = %q, want %q", data.RunID, summary.RunID())
	}
	if data.TotalRows != 2 || data.ValidRows != 1 || data.InvalidRows != 1 {
		t.Errorf("counters = %d/%d/%d, want 2/1/1", data.TotalRows, data.ValidRows, data.InvalidRows)
	}
	if len(data.Records) != 2 {
		t.Fatalf("Records = %d, want 2", len(data.Records))
	}
	if data.Records[0].Valid != true || data.Records[1].Valid != false {
		t.Errorf("record validity = %v, %v; want true, false", data.Records[0].Valid, data.Records[1].Valid)
	}
	if data.Columns["Price"] != 3 {
		t.Errorf("Columns[Price] = %d, want 3", data.Columns["Price"])
	}
	if len(data.Records[1].Raw) != 3 || data.Records[1].Raw[0] != "x" {
		t.Errorf("Raw = %v, want the original cells", data.Records[1].Raw)
	}
}
