// Package frame implements the small column-indexed table the survey
// pipeline runs on: ordered named columns over a shared row index, with
// copy-on-read semantics so callers can never mutate pipeline internals.
package frame

import (
	"strconv"

	"gosurvey/domain/core"
)

// Frame is a rectangular table: ordered named columns sharing one row index.
// A fresh frame carries the default positional index until SetIndex assigns
// a natural key.
type Frame struct {
	keys         []string
	defaultIndex bool
	order        []string
	columns      map[string][]Value
}

func newFrame(keys []string, defaultIndex bool) *Frame {
	return &Frame{
		keys:         keys,
		defaultIndex: defaultIndex,
		columns:      make(map[string][]Value),
	}
}

func defaultKeys(n int) []string {
	keys := make([]string, n)
	for i := range keys {
		keys[i] = strconv.Itoa(i)
	}
	return keys
}

// FromColumns builds a frame from named cell slices in the given column
// order. All columns must have equal length.
func FromColumns(order []string, columns map[string][]Value) (*Frame, error) {
	if len(order) != len(columns) {
		return nil, core.NewConfigurationError("column order and column data disagree")
	}
	n := -1
	for _, name := range order {
		values, ok := columns[name]
		if !ok {
			return nil, core.NewConfigurationError("column order names unknown column " + name)
		}
		if n == -1 {
			n = len(values)
		} else if len(values) != n {
			return nil, core.NewConfigurationError("columns must have equal length")
		}
	}
	if n == -1 {
		n = 0
	}
	f := newFrame(defaultKeys(n), true)
	for _, name := range order {
		f.order = append(f.order, name)
		f.columns[name] = append([]Value(nil), columns[name]...)
	}
	return f, nil
}

// FromRecords builds a frame from a header row and data rows. Short rows
// are padded with nil cells; long rows are an error.
func FromRecords(headers []string, rows [][]Value) (*Frame, error) {
	columns := make(map[string][]Value, len(headers))
	for _, h := range headers {
		if _, dup := columns[h]; dup {
			return nil, core.NewDuplicateColumnError(h)
		}
		columns[h] = make([]Value, 0, len(rows))
	}
	for _, row := range rows {
		if len(row) > len(headers) {
			return nil, core.NewConfigurationError("row wider than header")
		}
		for i, h := range headers {
			if i < len(row) {
				columns[h] = append(columns[h], row[i])
			} else {
				columns[h] = append(columns[h], nil)
			}
		}
	}
	return FromColumns(headers, columns)
}

// NumRows returns the row count.
func (f *Frame) NumRows() int { return len(f.keys) }

// NumColumns returns the column count.
func (f *Frame) NumColumns() int { return len(f.order) }

// Columns returns the column names in order.
func (f *Frame) Columns() []string {
	return append([]string(nil), f.order...)
}

// HasColumn reports whether the frame holds a column with the given name.
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.columns[name]
	return ok
}

// Keys returns a copy of the row index.
func (f *Frame) Keys() []string {
	return append([]string(nil), f.keys...)
}

// HasDefaultIndex reports whether the frame still carries the trivial
// positional index, i.e. SetIndex was never called.
func (f *Frame) HasDefaultIndex() bool { return f.defaultIndex }

// SetIndex makes the named column the row index and removes it from the
// data columns. Index keys are the column's cell labels.
func (f *Frame) SetIndex(name string) error {
	values, ok := f.columns[name]
	if !ok {
		return core.NewColumnNotFoundError(name)
	}
	keys := make([]string, len(values))
	for i, v := range values {
		keys[i] = Label(v)
	}
	f.keys = keys
	f.defaultIndex = false
	f.Drop(name)
	return nil
}

// Copy returns a deep copy of the frame.
func (f *Frame) Copy() *Frame {
	c := newFrame(append([]string(nil), f.keys...), f.defaultIndex)
	c.order = append([]string(nil), f.order...)
	for name, values := range f.columns {
		c.columns[name] = append([]Value(nil), values...)
	}
	return c
}

// Column extracts the named column as a keyed series.
func (f *Frame) Column(name string) (*Series, error) {
	values, ok := f.columns[name]
	if !ok {
		return nil, core.NewColumnNotFoundError(name)
	}
	return NewKeyedSeries(name, f.keys, values)
}

// SetColumn adds or replaces a column. New columns append to the column
// order; replaced columns keep their position.
func (f *Frame) SetColumn(name string, values []Value) error {
	if len(values) != len(f.keys) {
		return core.NewConfigurationError("column length must match frame row count")
	}
	if _, exists := f.columns[name]; !exists {
		f.order = append(f.order, name)
	}
	f.columns[name] = append([]Value(nil), values...)
	return nil
}

// Drop removes a column if present.
func (f *Frame) Drop(name string) {
	if _, ok := f.columns[name]; !ok {
		return
	}
	delete(f.columns, name)
	for i, n := range f.order {
		if n == name {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
}

// Rename renames columns per the given old→new mapping. The mapping is
// applied simultaneously, so swaps and chains (a→b while b→c) work and the
// outcome never depends on iteration order. Unknown names are ignored.
// Collisions are checked against the post-rename namespace: two renames
// onto one name, or a rename onto a column that is not itself renamed
// away, fail with no mutation.
func (f *Frame) Rename(mapping map[string]string) error {
	renames := make(map[string]string)
	for old, next := range mapping {
		if old == next {
			continue
		}
		if _, ok := f.columns[old]; ok {
			renames[old] = next
		}
	}
	if len(renames) == 0 {
		return nil
	}

	targets := make(map[string]bool, len(renames))
	for _, next := range renames {
		if targets[next] {
			return core.NewDuplicateColumnError(next)
		}
		targets[next] = true
	}
	for name := range f.columns {
		if _, moving := renames[name]; moving {
			continue
		}
		if targets[name] {
			return core.NewDuplicateColumnError(name)
		}
	}

	detached := make(map[string][]Value, len(renames))
	for old := range renames {
		detached[old] = f.columns[old]
		delete(f.columns, old)
	}
	for old, next := range renames {
		f.columns[next] = detached[old]
	}
	for i, n := range f.order {
		if next, ok := renames[n]; ok {
			f.order[i] = next
		}
	}
	return nil
}

// Row is a lightweight view of one frame row, handed to calculated-column
// functions. It sees every column of the working table, registered or not.
type Row struct {
	frame *Frame
	i     int
}

// Key returns the row's index key.
func (r Row) Key() string { return r.frame.keys[r.i] }

// Get returns the named cell of this row.
func (r Row) Get(name string) (Value, bool) {
	values, ok := r.frame.columns[name]
	if !ok {
		return nil, false
	}
	return values[r.i], true
}

// Value returns the named cell of this row, or nil when absent.
func (r Row) Value(name string) Value {
	v, _ := r.Get(name)
	return v
}

// Apply evaluates fn once per row and returns the derived cells in row order.
func (f *Frame) Apply(fn func(Row) Value) []Value {
	out := make([]Value, len(f.keys))
	for i := range f.keys {
		out[i] = fn(Row{frame: f, i: i})
	}
	return out
}

// Records renders the frame as a header row plus data rows of labels,
// suitable for CSV or worksheet output. The index key leads each row unless
// the frame still has the default positional index.
func (f *Frame) Records() [][]string {
	withKey := !f.defaultIndex
	header := make([]string, 0, len(f.order)+1)
	if withKey {
		header = append(header, "key")
	}
	header = append(header, f.order...)
	out := [][]string{header}
	for i, key := range f.keys {
		row := make([]string, 0, len(header))
		if withKey {
			row = append(row, key)
		}
		for _, name := range f.order {
			row = append(row, Label(f.columns[name][i]))
		}
		out = append(out, row)
	}
	return out
}

// AppendRow appends one row under the given key. Missing columns are nil.
func (f *Frame) AppendRow(key string, cells map[string]Value) {
	f.keys = append(f.keys, key)
	f.defaultIndex = false
	for _, name := range f.order {
		f.columns[name] = append(f.columns[name], cells[name])
	}
}
