package frame

import (
	"strconv"

	"gosurvey/domain/core"
)

// Value is a single table cell. Cells hold either a string category or a
// float64 measurement; readers coerce numeric text on ingest. A nil cell
// marks a missing observation.
type Value = any

// Float reports the numeric value of a cell, when it has one.
func Float(v Value) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// Label renders a cell as a category label. Numeric cells use the shortest
// round-trip representation so 3 and 3.0 land in the same category.
func Label(v Value) string {
	if s, ok := v.(string); ok {
		return s
	}
	if f, ok := Float(v); ok {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return ""
}

// Series is a named column of cells aligned to row keys. A Series owns its
// backing slices; every accessor that hands data out copies first.
type Series struct {
	name   string
	keys   []string
	values []Value
}

// NewSeries builds a series over the default positional index.
func NewSeries(name string, values []Value) *Series {
	keys := make([]string, len(values))
	for i := range values {
		keys[i] = strconv.Itoa(i)
	}
	return &Series{name: name, keys: keys, values: append([]Value(nil), values...)}
}

// NewKeyedSeries builds a series over explicit row keys.
func NewKeyedSeries(name string, keys []string, values []Value) (*Series, error) {
	if len(keys) != len(values) {
		return nil, core.NewConfigurationError("series keys and values must have equal length")
	}
	return &Series{
		name:   name,
		keys:   append([]string(nil), keys...),
		values: append([]Value(nil), values...),
	}, nil
}

// Name returns the column name.
func (s *Series) Name() string { return s.name }

// Len returns the number of observations.
func (s *Series) Len() int { return len(s.values) }

// Key returns the row key at position i.
func (s *Series) Key(i int) string { return s.keys[i] }

// At returns the cell at position i.
func (s *Series) At(i int) Value { return s.values[i] }

// Keys returns a copy of the row keys.
func (s *Series) Keys() []string {
	return append([]string(nil), s.keys...)
}

// Values returns a copy of the cells.
func (s *Series) Values() []Value {
	return append([]Value(nil), s.values...)
}

// Get returns the cell stored under the given row key.
func (s *Series) Get(key string) (Value, bool) {
	for i, k := range s.keys {
		if k == key {
			return s.values[i], true
		}
	}
	return nil, false
}

// Copy returns an independent series with the same name, keys, and cells.
func (s *Series) Copy() *Series {
	return &Series{
		name:   s.name,
		keys:   append([]string(nil), s.keys...),
		values: append([]Value(nil), s.values...),
	}
}

// Renamed returns a copy of the series under a new column name.
func (s *Series) Renamed(name string) *Series {
	c := s.Copy()
	c.name = name
	return c
}

// Map applies fn to every cell and returns the resulting series. Row keys
// are preserved; the receiver is untouched.
func (s *Series) Map(fn func(Value) Value) *Series {
	out := s.Copy()
	for i, v := range out.values {
		out.values[i] = fn(v)
	}
	return out
}

// Where keeps only rows whose cell satisfies pred. Row keys travel with
// their cells, so repeated narrowing composes by intersection.
func (s *Series) Where(pred func(Value) bool) *Series {
	out := &Series{name: s.name}
	for i, v := range s.values {
		if pred(v) {
			out.keys = append(out.keys, s.keys[i])
			out.values = append(out.values, v)
		}
	}
	return out
}

// Unique returns the distinct non-nil cells in first-appearance order.
func (s *Series) Unique() []Value {
	seen := make(map[string]bool, len(s.values))
	var out []Value
	for _, v := range s.values {
		if v == nil {
			continue
		}
		label := Label(v)
		if !seen[label] {
			seen[label] = true
			out = append(out, v)
		}
	}
	return out
}

// Float64s extracts the numeric observations of the series, skipping nil
// cells. A non-nil cell without a numeric value is an error: callers doing
// arithmetic over a series need every remaining observation to be a number.
func (s *Series) Float64s() ([]float64, error) {
	out := make([]float64, 0, len(s.values))
	for _, v := range s.values {
		if v == nil {
			continue
		}
		f, ok := Float(v)
		if !ok {
			return nil, core.NewStatisticalInputError("series " + s.name + " contains non-numeric observations")
		}
		out = append(out, f)
	}
	return out, nil
}
