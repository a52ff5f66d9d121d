package survey

import (
	"gosurvey/domain/frame"
	"gosurvey/domain/stats"
)

// Question represents a response variable, optionally scored through an
// ordinal scale.
type Question struct {
	base
	scale     *Scale
	breakdown bool
}

// QuestionOption configures a Question at construction.
type QuestionOption func(*Question)

// QuestionColumn sets the canonical column name when it differs from the
// source text.
func QuestionColumn(name string) QuestionOption {
	return func(q *Question) { q.column = name }
}

// QuestionDescription attaches a human-readable description.
func QuestionDescription(text string) QuestionOption {
	return func(q *Question) { q.description = text }
}

// Scored attaches an ordinal scale; matching responses are replaced by
// their rating at load time.
func Scored(scale *Scale) QuestionOption {
	return func(q *Question) { q.scale = scale }
}

// ForBreakdown marks the question for inclusion in dimension sweeps.
func ForBreakdown() QuestionOption {
	return func(q *Question) { q.breakdown = true }
}

// CalculatedQuestion derives the question's values from full rows instead
// of loading a source column.
func CalculatedQuestion(fn Calculation) QuestionOption {
	return func(q *Question) { q.calculation = fn }
}

// NewQuestion declares a response variable found under the given source text.
func NewQuestion(text string, opts ...QuestionOption) *Question {
	q := &Question{base: newBase(text)}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

func (q *Question) Kind() Kind { return KindQuestion }

// Scale returns the attached scale, nil when unscored.
func (q *Question) Scale() *Scale { return q.scale }

// BreakdownEnabled reports whether the question participates in
// BreakdownByDimensions sweeps.
func (q *Question) BreakdownEnabled() bool { return q.breakdown }

// AddTransform appends an element-wise transform. Returns the question for
// chaining.
func (q *Question) AddTransform(fn Transform) *Question {
	q.transforms = append(q.transforms, fn)
	return q
}

// AddFilter appends a row filter. Returns the question for chaining.
func (q *Question) AddFilter(fn Filter) *Question {
	q.filters = append(q.filters, fn)
	return q
}

// Load assigns the backing series. When a scale is attached, responses
// matching a scale label are replaced by their rating; unmatched responses
// take the scale's default rating when one was declared and pass through
// unchanged otherwise. Rows are preserved - this is a value substitution,
// not a filter.
func (q *Question) Load(s *frame.Series) error {
	if q.scale != nil && s != nil {
		scoring := q.scale.Scoring()
		fallback, hasFallback := q.scale.Default()
		s = s.Map(func(v frame.Value) frame.Value {
			if rating, ok := scoring[frame.Label(v)]; ok {
				return rating
			}
			if hasFallback && v != nil {
				return fallback
			}
			return v
		})
	}
	return q.load(s)
}

// Describe computes descriptive statistics over the loaded, transformed,
// filtered series.
func (q *Question) Describe() (*stats.Description, error) {
	data, err := q.Data()
	if err != nil {
		return nil, err
	}
	values, err := data.Float64s()
	if err != nil {
		return nil, err
	}
	return stats.Describe(values)
}
