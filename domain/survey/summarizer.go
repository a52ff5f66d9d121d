package survey

import (
	"github.com/montanaflynn/stats"

	"gosurvey/domain/core"
	"gosurvey/domain/frame"
)

// Axis selects the direction a reducer runs in.
type Axis int

const (
	// AxisRows reduces each column down its rows, producing one summary row
	// per reducer.
	AxisRows Axis = 0
	// AxisColumns reduces each row across its columns, producing one
	// summary column per reducer.
	AxisColumns Axis = 1
)

// Reducer collapses a slice of observations to a single value.
type Reducer func([]float64) float64

type summaryRow struct {
	title string
	cells map[string]frame.Value
}

// Summarizer accumulates aggregate rows and columns over a table slice and
// can merge them back in. Non-numeric cells are skipped by reducers.
type Summarizer struct {
	base      *frame.Frame
	extraRows []summaryRow
	extraCols []*frame.Series
}

// NewSummarizer wraps a table slice for summarization.
func NewSummarizer(slice *frame.Frame) *Summarizer {
	return &Summarizer{base: slice.Copy()}
}

// Summary applies one reducer along the given axis, storing the resulting
// row or column for a later merge.
func (s *Summarizer) Summary(fn Reducer, title string, axis Axis) error {
	switch axis {
	case AxisRows:
		cells := make(map[string]frame.Value, s.base.NumColumns())
		for _, name := range s.base.Columns() {
			col, err := s.base.Column(name)
			if err != nil {
				return err
			}
			cells[name] = reduce(fn, col.Values())
		}
		s.extraRows = append(s.extraRows, summaryRow{title: title, cells: cells})
		return nil
	case AxisColumns:
		keys := s.base.Keys()
		values := make([]frame.Value, len(keys))
		columns := s.base.Columns()
		for i := range keys {
			row := make([]frame.Value, 0, len(columns))
			for _, name := range columns {
				col, err := s.base.Column(name)
				if err != nil {
					return err
				}
				row = append(row, col.At(i))
			}
			values[i] = reduce(fn, row)
		}
		series, err := frame.NewKeyedSeries(title, keys, values)
		if err != nil {
			return err
		}
		s.extraCols = append(s.extraCols, series)
		return nil
	default:
		return core.NewConfigurationError("summary axis must be rows (0) or columns (1)")
	}
}

// MultiSummary applies several reducers along one axis, pairing them
// positionally with titles.
func (s *Summarizer) MultiSummary(fns []Reducer, titles []string, axis Axis) error {
	if len(fns) != len(titles) {
		return core.NewConfigurationError("every summary function needs a title")
	}
	for i, fn := range fns {
		if err := s.Summary(fn, titles[i], axis); err != nil {
			return err
		}
	}
	return nil
}

// Average stores a mean summary along the given axis.
func (s *Summarizer) Average(title string, axis Axis) error {
	return s.Summary(mean, title, axis)
}

// Median stores a median summary along the given axis.
func (s *Summarizer) Median(title string, axis Axis) error {
	return s.Summary(median, title, axis)
}

// RowSummary returns only the accumulated summary rows, in registration
// order, without the original data.
func (s *Summarizer) RowSummary() *frame.Frame {
	out, _ := frame.FromColumns(nil, nil)
	for _, name := range s.base.Columns() {
		_ = out.SetColumn(name, nil)
	}
	for _, row := range s.extraRows {
		out.AppendRow(row.title, row.cells)
	}
	return out
}

// ColumnSummary returns only the accumulated summary columns, in
// registration order, without the original data.
func (s *Summarizer) ColumnSummary() *frame.Frame {
	copies := make([]*frame.Series, len(s.extraCols))
	for i, col := range s.extraCols {
		copies[i] = col.Copy()
	}
	return frame.Concat(copies...)
}

// Apply merges the accumulated rows and columns back into the original
// table. Cross cells - the intersection of a summary row with a summary
// column - have no defined value and render as empty placeholders.
func (s *Summarizer) Apply() *frame.Frame {
	out := s.base.Copy()
	for _, col := range s.extraCols {
		_ = out.SetColumn(col.Name(), col.Values())
	}
	for _, row := range s.extraRows {
		cells := make(map[string]frame.Value, len(row.cells)+len(s.extraCols))
		for name, v := range row.cells {
			cells[name] = v
		}
		for _, col := range s.extraCols {
			cells[col.Name()] = ""
		}
		out.AppendRow(row.title, cells)
	}
	return out
}

func reduce(fn Reducer, values []frame.Value) frame.Value {
	numeric := make([]float64, 0, len(values))
	for _, v := range values {
		if f, ok := frame.Float(v); ok {
			numeric = append(numeric, f)
		}
	}
	if len(numeric) == 0 {
		return nil
	}
	return fn(numeric)
}

func mean(data []float64) float64 {
	m, _ := stats.Mean(data)
	return m
}

func median(data []float64) float64 {
	m, _ := stats.Median(data)
	return m
}
