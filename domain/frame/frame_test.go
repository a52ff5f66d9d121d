package frame

import (
	"testing"

	"gosurvey/domain/core"
)

func TestFromColumns_RejectsRaggedColumns(t *testing.T) {
	_, err := FromColumns([]string{"a", "b"}, map[string][]Value{
		"a": {1, 2, 3},
		"b": {1, 2},
	})
	if !core.IsConfigurationError(err) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestFromRecords_PadsShortRows(t *testing.T) {
	f, err := FromRecords([]string{"a", "b"}, [][]Value{
		{1.0, 2.0},
		{3.0},
	})
	if err != nil {
		t.Fatalf("FromRecords: %v", err)
	}
	col, err := f.Column("b")
	if err != nil {
		t.Fatalf("Column: %v", err)
	}
	if col.At(1) != nil {
		t.Fatalf("expected nil pad, got %v", col.At(1))
	}
}

func TestSetIndex_DropsKeyColumnAndClearsDefault(t *testing.T) {
	f, _ := FromColumns([]string{"id", "v"}, map[string][]Value{
		"id": {"a", "b"},
		"v":  {1.0, 2.0},
	})
	if !f.HasDefaultIndex() {
		t.Fatal("fresh frame should carry the default index")
	}
	if err := f.SetIndex("id"); err != nil {
		t.Fatalf("SetIndex: %v", err)
	}
	if f.HasDefaultIndex() {
		t.Fatal("index should no longer be default")
	}
	if f.HasColumn("id") {
		t.Fatal("index column should be dropped from data columns")
	}
	keys := f.Keys()
	if keys[0] != "a" || keys[1] != "b" {
		t.Fatalf("unexpected keys %v", keys)
	}
}

func TestCopy_IsIndependent(t *testing.T) {
	f, _ := FromColumns([]string{"a"}, map[string][]Value{"a": {1.0, 2.0}})
	c := f.Copy()
	_ = c.SetColumn("a", []Value{9.0, 9.0})

	col, _ := f.Column("a")
	if got, _ := Float(col.At(0)); got != 1.0 {
		t.Fatalf("copy mutation leaked into original: %v", got)
	}
}

func TestRename_CollisionFails(t *testing.T) {
	f, _ := FromColumns([]string{"a", "b"}, map[string][]Value{
		"a": {1.0},
		"b": {2.0},
	})
	err := f.Rename(map[string]string{"a": "b"})
	if !core.IsDuplicateColumnError(err) {
		t.Fatalf("expected duplicate column error, got %v", err)
	}
}

func TestRename_SwapsColumns(t *testing.T) {
	f, _ := FromColumns([]string{"a", "b"}, map[string][]Value{
		"a": {1.0},
		"b": {2.0},
	})
	if err := f.Rename(map[string]string{"a": "b", "b": "a"}); err != nil {
		t.Fatalf("Rename: %v", err)
	}
	a, _ := f.Column("a")
	b, _ := f.Column("b")
	if got, _ := Float(a.At(0)); got != 2.0 {
		t.Fatalf("a should hold b's old values, got %v", a.At(0))
	}
	if got, _ := Float(b.At(0)); got != 1.0 {
		t.Fatalf("b should hold a's old values, got %v", b.At(0))
	}
	got := f.Columns()
	if got[0] != "b" || got[1] != "a" {
		t.Fatalf("swapped columns keep their positions, got %v", got)
	}
}

func TestRename_ChainsThroughVacatedName(t *testing.T) {
	f, _ := FromColumns([]string{"a", "b"}, map[string][]Value{
		"a": {1.0},
		"b": {2.0},
	})
	if err := f.Rename(map[string]string{"a": "b", "b": "c"}); err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if f.HasColumn("a") {
		t.Fatal("a should be gone")
	}
	b, _ := f.Column("b")
	c, _ := f.Column("c")
	if got, _ := Float(b.At(0)); got != 1.0 {
		t.Fatalf("b should hold a's old values, got %v", b.At(0))
	}
	if got, _ := Float(c.At(0)); got != 2.0 {
		t.Fatalf("c should hold b's old values, got %v", c.At(0))
	}
}

func TestRename_TwoOntoOneFails(t *testing.T) {
	f, _ := FromColumns([]string{"a", "b"}, map[string][]Value{
		"a": {1.0},
		"b": {2.0},
	})
	if err := f.Rename(map[string]string{"a": "c", "b": "c"}); !core.IsDuplicateColumnError(err) {
		t.Fatalf("expected duplicate column error, got %v", err)
	}
	// failed rename leaves the frame untouched
	if !f.HasColumn("a") || !f.HasColumn("b") || f.HasColumn("c") {
		t.Fatalf("frame mutated by failed rename: %v", f.Columns())
	}
}

func TestApply_SeesAllColumns(t *testing.T) {
	f, _ := FromColumns([]string{"x", "y"}, map[string][]Value{
		"x": {1.0, 2.0},
		"y": {10.0, 20.0},
	})
	derived := f.Apply(func(r Row) Value {
		x, _ := Float(r.Value("x"))
		y, _ := Float(r.Value("y"))
		return x + y
	})
	if got, _ := Float(derived[1]); got != 22.0 {
		t.Fatalf("expected 22, got %v", derived[1])
	}
}

func TestLeftJoin_ByIndex(t *testing.T) {
	left, _ := FromColumns([]string{"id", "score"}, map[string][]Value{
		"id":    {"a", "b", "c"},
		"score": {1.0, 2.0, 3.0},
	})
	_ = left.SetIndex("id")

	right, _ := FromColumns([]string{"id", "dept"}, map[string][]Value{
		"id":   {"b", "a"},
		"dept": {"eng", "ops"},
	})
	_ = right.SetIndex("id")

	joined, err := left.LeftJoin(right)
	if err != nil {
		t.Fatalf("LeftJoin: %v", err)
	}
	dept, _ := joined.Column("dept")
	if dept.At(0) != "ops" || dept.At(1) != "eng" {
		t.Fatalf("join misaligned: %v", dept.Values())
	}
	if dept.At(2) != nil {
		t.Fatalf("unmatched left row should carry nil, got %v", dept.At(2))
	}
}

func TestLeftJoin_OverlappingColumnsRejected(t *testing.T) {
	left, _ := FromColumns([]string{"id", "v"}, map[string][]Value{
		"id": {"a"},
		"v":  {1.0},
	})
	_ = left.SetIndex("id")
	right, _ := FromColumns([]string{"id", "v"}, map[string][]Value{
		"id": {"a"},
		"v":  {2.0},
	})
	_ = right.SetIndex("id")

	_, err := left.LeftJoin(right)
	if !core.IsLoadingError(err) {
		t.Fatalf("expected loading error on overlap, got %v", err)
	}
}

func TestConcat_AlignsByKey(t *testing.T) {
	a, _ := NewKeyedSeries("a", []string{"r1", "r2"}, []Value{1.0, 2.0})
	b, _ := NewKeyedSeries("b", []string{"r2", "r3"}, []Value{20.0, 30.0})

	f := Concat(a, b)
	if f.NumRows() != 3 {
		t.Fatalf("expected union of 3 keys, got %d", f.NumRows())
	}
	colB, _ := f.Column("b")
	v, ok := colB.Get("r1")
	if !ok || v != nil {
		t.Fatalf("expected nil for unobserved key, got %v", v)
	}
	if v, _ := colB.Get("r2"); v != 20.0 {
		t.Fatalf("expected 20 at r2, got %v", v)
	}
}
