package survey

import (
	"testing"

	"gosurvey/domain/core"
	"gosurvey/domain/frame"
)

func summarizerFixture(t *testing.T) *Summarizer {
	t.Helper()
	f, err := frame.FromColumns([]string{"a", "b"}, map[string][]frame.Value{
		"a": {1.0, 2.0, 3.0},
		"b": {10.0, 20.0, 30.0},
	})
	if err != nil {
		t.Fatalf("FromColumns: %v", err)
	}
	return NewSummarizer(f)
}

func TestSummary_InvalidAxisFails(t *testing.T) {
	s := summarizerFixture(t)
	err := s.Summary(func(v []float64) float64 { return 0 }, "noop", Axis(2))
	if !core.IsConfigurationError(err) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestAverage_AlongRows(t *testing.T) {
	s := summarizerFixture(t)
	if err := s.Average("avg", AxisRows); err != nil {
		t.Fatalf("Average: %v", err)
	}
	rows := s.RowSummary()
	if rows.NumRows() != 1 {
		t.Fatalf("expected one summary row, got %d", rows.NumRows())
	}
	a, _ := rows.Column("a")
	if got, _ := frame.Float(a.At(0)); got != 2.0 {
		t.Fatalf("expected mean 2, got %v", a.At(0))
	}
	b, _ := rows.Column("b")
	if got, _ := frame.Float(b.At(0)); got != 20.0 {
		t.Fatalf("expected mean 20, got %v", b.At(0))
	}
}

func TestMedian_AlongColumns(t *testing.T) {
	s := summarizerFixture(t)
	if err := s.Median("med", AxisColumns); err != nil {
		t.Fatalf("Median: %v", err)
	}
	cols := s.ColumnSummary()
	med, err := cols.Column("med")
	if err != nil {
		t.Fatalf("Column: %v", err)
	}
	// per-row medians of (a, b): 5.5, 11, 16.5
	if got, _ := frame.Float(med.At(0)); got != 5.5 {
		t.Fatalf("expected 5.5, got %v", med.At(0))
	}
}

func TestMultiSummary_TitleMismatchFails(t *testing.T) {
	s := summarizerFixture(t)
	err := s.MultiSummary([]Reducer{mean, median}, []string{"only one"}, AxisRows)
	if !core.IsConfigurationError(err) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestApply_MergesAndBlanksCrossCells(t *testing.T) {
	s := summarizerFixture(t)
	if err := s.Average("avg_row", AxisRows); err != nil {
		t.Fatalf("Average rows: %v", err)
	}
	if err := s.Average("avg_col", AxisColumns); err != nil {
		t.Fatalf("Average columns: %v", err)
	}

	merged := s.Apply()
	if merged.NumRows() != 4 {
		t.Fatalf("expected 3 data rows + 1 summary row, got %d", merged.NumRows())
	}
	if merged.NumColumns() != 3 {
		t.Fatalf("expected 2 data columns + 1 summary column, got %d", merged.NumColumns())
	}

	avgCol, _ := merged.Column("avg_col")
	cross, ok := avgCol.Get("avg_row")
	if !ok {
		t.Fatal("summary row missing from merged frame")
	}
	if cross != "" {
		t.Fatalf("cross cell must be an empty placeholder, got %#v", cross)
	}

	a, _ := merged.Column("a")
	if v, _ := a.Get("avg_row"); v == nil {
		t.Fatal("summary row should carry the column average")
	} else if got, _ := frame.Float(v); got != 2.0 {
		t.Fatalf("expected 2, got %v", v)
	}
}
