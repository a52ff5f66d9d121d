// Package survey implements the column-oriented survey pipeline: declared
// questions and dimensions with transform/filter/scale semantics, the
// merge-and-format processing that turns raw tables into validated
// per-column series, and statistical breakdowns between dimensions and
// questions.
package survey

import (
	"sort"

	"gosurvey/domain/core"
)

// Scale is a finite ordered mapping from category label to numeric rating.
// Immutable after construction and freely shared across columns.
type Scale struct {
	labels       []string
	ratings      []float64
	defaultValue float64
	hasDefault   bool
}

// NewScale builds a scale pairing labels with ratings positionally.
// Responses matching no label pass through substitution unchanged.
func NewScale(labels []string, ratings []float64) (*Scale, error) {
	if len(labels) != len(ratings) {
		return nil, core.NewConfigurationError("all labels need an associated rating")
	}
	return &Scale{
		labels:  append([]string(nil), labels...),
		ratings: append([]float64(nil), ratings...),
	}, nil
}

// NewScaleWithDefault builds a scale that scores unmatched responses with
// an explicit default rating instead of passing them through.
func NewScaleWithDefault(labels []string, ratings []float64, defaultValue float64) (*Scale, error) {
	s, err := NewScale(labels, ratings)
	if err != nil {
		return nil, err
	}
	s.defaultValue = defaultValue
	s.hasDefault = true
	return s, nil
}

// Labels returns the scale's labels in declaration order.
func (s *Scale) Labels() []string {
	return append([]string(nil), s.labels...)
}

// Ratings returns the scale's ratings in declaration order.
func (s *Scale) Ratings() []float64 {
	return append([]float64(nil), s.ratings...)
}

// Default returns the rating for unmatched responses and whether one was
// declared.
func (s *Scale) Default() (float64, bool) { return s.defaultValue, s.hasDefault }

// Scoring returns the label→rating mapping. When a label repeats, the last
// declaration wins.
func (s *Scale) Scoring() map[string]float64 {
	scoring := make(map[string]float64, len(s.labels))
	for i, label := range s.labels {
		scoring[label] = s.ratings[i]
	}
	return scoring
}

// SortedLabels returns the labels ordered by ascending rating. Ties keep
// declaration order.
func (s *Scale) SortedLabels() []string {
	labels := s.Labels()
	scoring := s.Scoring()
	sort.SliceStable(labels, func(i, j int) bool {
		return scoring[labels[i]] < scoring[labels[j]]
	})
	return labels
}
