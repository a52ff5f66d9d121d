package survey

import (
	"testing"

	"gosurvey/domain/core"
	"gosurvey/domain/frame"
)

func TestNewScale_MismatchedLengthsFail(t *testing.T) {
	_, err := NewScale([]string{"a", "b"}, []float64{1})
	if !core.IsConfigurationError(err) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestScale_Scoring(t *testing.T) {
	s, err := NewScale([]string{"cat1", "cat2", "cat3"}, []float64{2, 3, 1})
	if err != nil {
		t.Fatalf("NewScale: %v", err)
	}
	scoring := s.Scoring()
	want := map[string]float64{"cat1": 2, "cat2": 3, "cat3": 1}
	for label, rating := range want {
		if scoring[label] != rating {
			t.Fatalf("scoring[%q]: expected %v, got %v", label, rating, scoring[label])
		}
	}
}

func TestScale_ScoringLastWriteWins(t *testing.T) {
	s, _ := NewScale([]string{"dup", "dup"}, []float64{1, 9})
	if got := s.Scoring()["dup"]; got != 9 {
		t.Fatalf("repeated label should take last rating, got %v", got)
	}
}

func TestScale_Default(t *testing.T) {
	plain, _ := NewScale([]string{"a"}, []float64{1})
	if _, has := plain.Default(); has {
		t.Fatal("plain scale should not carry a default")
	}

	scored, err := NewScaleWithDefault([]string{"a"}, []float64{1}, 3)
	if err != nil {
		t.Fatalf("NewScaleWithDefault: %v", err)
	}
	if v, has := scored.Default(); !has || v != 3 {
		t.Fatalf("expected default 3, got %v (declared=%v)", v, has)
	}
}

func TestQuestion_LoadDefaultScoresUnmatched(t *testing.T) {
	scale, _ := NewScaleWithDefault([]string{"Agree"}, []float64{5}, 3)
	q := NewQuestion("q", Scored(scale))
	if err := q.Load(frame.NewSeries("q", []frame.Value{"Agree", "Whatever", nil})); err != nil {
		t.Fatalf("Load: %v", err)
	}
	data, err := q.Data()
	if err != nil {
		t.Fatalf("Data: %v", err)
	}
	if v, _ := frame.Float(data.At(0)); v != 5 {
		t.Fatalf("matched label should take its rating, got %v", data.At(0))
	}
	if v, _ := frame.Float(data.At(1)); v != 3 {
		t.Fatalf("unmatched response should take the default, got %v", data.At(1))
	}
	if data.At(2) != nil {
		t.Fatalf("missing responses stay missing, got %v", data.At(2))
	}
}

func TestScale_SortedLabels(t *testing.T) {
	s, _ := NewScale([]string{"cat1", "cat2", "cat3"}, []float64{2, 3, 1})
	got := s.SortedLabels()
	want := []string{"cat3", "cat1", "cat2"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}
