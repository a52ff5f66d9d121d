package survey

import (
	"gosurvey/domain/core"
	"gosurvey/domain/frame"
)

// Kind marks what a registered column is for. It replaces type inspection:
// callers branch on the marker, never on the concrete type.
type Kind string

const (
	KindQuestion  Kind = "question"
	KindDimension Kind = "dimension"
)

// Transform maps one cell to another; transforms run element-wise before
// any filter.
type Transform func(frame.Value) frame.Value

// Filter keeps the rows whose cell satisfies it. Filters narrow
// sequentially, so each one sees the survivors of the previous.
type Filter func(frame.Value) bool

// Calculation derives a cell from a full row of the working table.
// Calculated columns see every raw column, registered or not.
type Calculation func(frame.Row) frame.Value

// Column is the capability shared by Question and Dimension: a named,
// lazily-transformed, lazily-filtered data series.
type Column interface {
	Kind() Kind
	// Text is the display/source name the column is found under in raw data.
	Text() string
	// Name is the canonical column name the survey registers it under.
	Name() string
	Description() string
	// Calculation is non-nil for derived columns.
	Calculation() Calculation
	Loaded() bool
	// Load assigns the backing series during Survey.Process.
	Load(s *frame.Series) error
	// Data re-derives the transformed, filtered view from the series
	// captured at load time. Each call recomputes and returns a fresh copy.
	Data() (*frame.Series, error)
}

// base carries the state shared by both column kinds. The canonical name
// defaults to the source text.
type base struct {
	text        string
	column      string
	description string
	calculation Calculation
	transforms  []Transform
	filters     []Filter
	series      *frame.Series
}

func newBase(text string) base {
	return base{text: text, column: text}
}

func (b *base) Text() string             { return b.text }
func (b *base) Name() string             { return b.column }
func (b *base) Description() string      { return b.description }
func (b *base) Calculation() Calculation { return b.calculation }
func (b *base) Loaded() bool             { return b.series != nil }

func (b *base) load(s *frame.Series) error {
	if s == nil {
		return core.NewLoadingError("cannot load a nil series into column " + b.column)
	}
	b.series = s.Renamed(b.column)
	return nil
}

// Data applies every transform, then every filter, in registration order,
// against the series captured at load time. Filters must be idempotent
// under re-application; monotonic narrowing is assumed, not enforced.
func (b *base) Data() (*frame.Series, error) {
	if b.series == nil {
		return nil, core.NewNotLoadedError(b.column)
	}
	s := b.series.Copy()
	for _, t := range b.transforms {
		s = s.Map(t)
	}
	for _, f := range b.filters {
		s = s.Where(f)
	}
	return s, nil
}
