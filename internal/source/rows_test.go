package source

import (
	"errors"
	"testing"
)

func TestRows_SingleSection(t *testing.T) {
	src := NewRows([][]string{
		{"1", "a"},
		{"2", "b"},
	})

	var got [][]string
	for src.Next() {
		got = append(got, src.Row())
	}

	if len(got) != 2 {
		t.Fatalf("rows = %d, want 2", len(got))
	}
	if src.FieldCount() != 2 {
		t.Errorf("FieldCount() = %d, want 2", src.FieldCount())
	}
	if src.AdvanceSection() {
		t.Error("AdvanceSection() = true for single-section source")
	}
	if src.Err() != nil {
		t.Errorf("Err() = %v", src.Err())
	}
}

func TestRows_Sections(t *testing.T) {
	src := NewSectionedRows(
		[][]string{{"s1r1"}, {"s1r2"}},
		[][]string{{"s2r1"}},
	)

	n := 0
	for src.Next() {
		n++
	}
	if n != 2 {
		t.Fatalf("first section rows = %d, want 2", n)
	}

	if !src.AdvanceSection() {
		t.Fatal("AdvanceSection() = false, want second section")
	}
	if !src.Next() {
		t.Fatal("Next() = false in second section")
	}
	if src.Row()[0] != "s2r1" {
		t.Errorf("Row() = %v, want s2r1", src.Row())
	}
	if src.AdvanceSection() {
		t.Error("AdvanceSection() past last section should report false")
	}
}

func TestRows_Close(t *testing.T) {
	src := NewRows([][]string{{"a"}})

	if err := src.Close(); err != nil {
		t.Errorf("first Close() = %v", err)
	}
	if !src.Closed() {
		t.Error("Closed() = false after Close")
	}
	if err := src.Close(); !errors.Is(err, errClosed) {
		t.Errorf("second Close() = %v, want errClosed", err)
	}
	if src.Next() {
		t.Error("Next() after Close must report false")
	}
}
