package frame

import (
	"testing"
)

func TestSeries_MapPreservesKeys(t *testing.T) {
	s, _ := NewKeyedSeries("v", []string{"a", "b"}, []Value{1.0, 2.0})
	doubled := s.Map(func(v Value) Value {
		f, _ := Float(v)
		return f * 2
	})
	if doubled.Key(1) != "b" {
		t.Fatalf("keys should survive Map, got %q", doubled.Key(1))
	}
	if got, _ := Float(doubled.At(1)); got != 4.0 {
		t.Fatalf("expected 4, got %v", doubled.At(1))
	}
	// receiver untouched
	if got, _ := Float(s.At(1)); got != 2.0 {
		t.Fatalf("Map mutated the receiver: %v", s.At(1))
	}
}

func TestSeries_WhereNarrowsWithKeys(t *testing.T) {
	s, _ := NewKeyedSeries("v", []string{"a", "b", "c"}, []Value{1.0, 2.0, 3.0})
	kept := s.Where(func(v Value) bool {
		f, _ := Float(v)
		return f >= 2
	})
	if kept.Len() != 2 || kept.Key(0) != "b" {
		t.Fatalf("unexpected narrowing: keys=%v", kept.Keys())
	}

	// narrowing again with the same predicate is a no-op
	again := kept.Where(func(v Value) bool {
		f, _ := Float(v)
		return f >= 2
	})
	if again.Len() != 2 {
		t.Fatalf("repeated filter should be idempotent, got %d rows", again.Len())
	}
}

func TestSeries_UniqueFirstAppearance(t *testing.T) {
	s := NewSeries("v", []Value{"b", "a", "b", nil, "c", "a"})
	got := s.Unique()
	want := []string{"b", "a", "c"}
	if len(got) != len(want) {
		t.Fatalf("expected %d distinct values, got %d", len(want), len(got))
	}
	for i, w := range want {
		if got[i] != w {
			t.Fatalf("position %d: expected %q, got %v", i, w, got[i])
		}
	}
}

func TestSeries_Float64sRejectsCategories(t *testing.T) {
	s := NewSeries("v", []Value{1.0, "oops", 3.0})
	if _, err := s.Float64s(); err == nil {
		t.Fatal("expected an error on non-numeric cell")
	}
}

func TestSeries_Float64sSkipsNil(t *testing.T) {
	s := NewSeries("v", []Value{1.0, nil, 3.0})
	got, err := s.Float64s()
	if err != nil {
		t.Fatalf("Float64s: %v", err)
	}
	if len(got) != 2 || got[1] != 3.0 {
		t.Fatalf("unexpected values %v", got)
	}
}

func TestLabel_NumericCategoriesCollapse(t *testing.T) {
	if Label(3.0) != Label(3) {
		t.Fatalf("3 and 3.0 should share a category: %q vs %q", Label(3.0), Label(3))
	}
	if Label(2.5) != "2.5" {
		t.Fatalf("unexpected label %q", Label(2.5))
	}
}
