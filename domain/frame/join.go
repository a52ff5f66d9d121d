package frame

import (
	"strings"

	"gosurvey/domain/core"
)

// LeftJoin joins other onto f by row key: every row of f survives, matched
// against the first row of other sharing its key. Overlapping column names
// are rejected outright; a silent suffix rename is exactly the kind of
// join accident this pipeline exists to prevent.
func (f *Frame) LeftJoin(other *Frame) (*Frame, error) {
	var overlap []string
	for _, name := range other.order {
		if f.HasColumn(name) {
			overlap = append(overlap, name)
		}
	}
	if len(overlap) > 0 {
		return nil, core.NewLoadingError("no overlapping columns allowed: " + strings.Join(overlap, ", "))
	}

	lookup := make(map[string]int, len(other.keys))
	for i := len(other.keys) - 1; i >= 0; i-- {
		lookup[other.keys[i]] = i
	}

	out := f.Copy()
	for _, name := range other.order {
		values := make([]Value, len(f.keys))
		for i, key := range f.keys {
			if j, ok := lookup[key]; ok {
				values[i] = other.columns[name][j]
			}
		}
		out.order = append(out.order, name)
		out.columns[name] = values
	}
	return out, nil
}

// Concat assembles series into a frame, column-aligned by row key. The row
// index is the union of the series' keys in first-appearance order; cells
// absent from a series are nil.
func Concat(series ...*Series) *Frame {
	var keys []string
	seen := make(map[string]bool)
	for _, s := range series {
		for _, k := range s.keys {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}

	f := newFrame(keys, false)
	if len(series) > 0 && positionalKeys(keys) {
		f.defaultIndex = true
	}
	for _, s := range series {
		lookup := make(map[string]int, len(s.keys))
		for i := len(s.keys) - 1; i >= 0; i-- {
			lookup[s.keys[i]] = i
		}
		values := make([]Value, len(keys))
		for i, k := range keys {
			if j, ok := lookup[k]; ok {
				values[i] = s.values[j]
			}
		}
		f.order = append(f.order, s.name)
		f.columns[s.name] = values
	}
	return f
}

func positionalKeys(keys []string) bool {
	positional := defaultKeys(len(keys))
	for i, k := range keys {
		if k != positional[i] {
			return false
		}
	}
	return true
}
