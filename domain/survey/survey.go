package survey

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"gosurvey/domain/core"
	"gosurvey/domain/frame"
	"gosurvey/domain/stats"
)

type supplement struct {
	data *frame.Frame
	key  string
}

// Survey orchestrates column registration, ingestion of a primary response
// table plus supplementary tables, and the processing pipeline that loads
// every registered column. A Survey is not safe for concurrent use;
// construct one per goroutine.
type Survey struct {
	columns       map[string]Column
	order         []string
	responses     *frame.Frame
	supplementary []supplement
	processed     bool
}

// NewSurvey creates an empty survey.
func NewSurvey() *Survey {
	return &Survey{columns: make(map[string]Column)}
}

// AddColumn registers a question or dimension under its canonical name.
func (s *Survey) AddColumn(c Column) error {
	if _, exists := s.columns[c.Name()]; exists {
		return core.NewDuplicateColumnError(c.Name())
	}
	s.columns[c.Name()] = c
	s.order = append(s.order, c.Name())
	return nil
}

// AddColumns registers several columns, stopping at the first failure.
func (s *Survey) AddColumns(cols ...Column) error {
	for _, c := range cols {
		if err := s.AddColumn(c); err != nil {
			return err
		}
	}
	return nil
}

// Column returns the registered column with the given canonical name.
func (s *Survey) Column(name string) (Column, bool) {
	c, ok := s.columns[name]
	return c, ok
}

// Questions returns the registered questions in registration order.
func (s *Survey) Questions() []*Question {
	var out []*Question
	for _, name := range s.order {
		if q, ok := s.columns[name].(*Question); ok && q.Kind() == KindQuestion {
			out = append(out, q)
		}
	}
	return out
}

// Dimensions returns the registered dimensions in registration order.
func (s *Survey) Dimensions() []*Dimension {
	var out []*Dimension
	for _, name := range s.order {
		if d, ok := s.columns[name].(*Dimension); ok && d.Kind() == KindDimension {
			out = append(out, d)
		}
	}
	return out
}

// SortedDimensions returns the dimensions ordered by canonical name.
func (s *Survey) SortedDimensions() []*Dimension {
	dims := s.Dimensions()
	sort.Slice(dims, func(i, j int) bool { return dims[i].Name() < dims[j].Name() })
	return dims
}

// Responses sets the primary response table. The survey copies at process
// time; the caller's frame is never mutated.
func (s *Survey) Responses(f *frame.Frame) *Survey {
	s.responses = f
	return s
}

// SupplementaryData queues a table for a left join onto the responses by
// the given natural key. The key column becomes the table's index now so a
// bad key fails at registration, not mid-process.
func (s *Survey) SupplementaryData(f *frame.Frame, naturalKey string) error {
	if naturalKey == "" {
		return core.NewConfigurationError("supplementary data requires a natural key")
	}
	indexed := f.Copy()
	if err := indexed.SetIndex(naturalKey); err != nil {
		return core.NewLoadingError(fmt.Sprintf("natural key %q not present in supplementary data", naturalKey))
	}
	s.supplementary = append(s.supplementary, supplement{data: indexed, key: naturalKey})
	return nil
}

// Processed reports whether Process has completed.
func (s *Survey) Processed() bool { return s.processed }

// Process runs the ingestion pipeline: copy, join, validate, rename,
// derive, then load each registered column. It is a no-op once processed.
// On failure no registered column has been mutated; every fallible step
// runs on a scratch copy before the first Load.
func (s *Survey) Process() error {
	if s.processed {
		return nil
	}
	if s.responses == nil {
		return core.NewLoadingError("no response data supplied")
	}

	work := s.responses.Copy()

	// Joining on the meaningless positional index would align rows by
	// accident of ordering. Refuse it.
	if work.HasDefaultIndex() && len(s.supplementary) > 0 {
		return core.NewLoadingError("responses need a natural key index before supplementary data can be joined")
	}
	for _, sup := range s.supplementary {
		joined, err := work.LeftJoin(sup.data)
		if err != nil {
			return err
		}
		work = joined
	}

	// Collect every missing source column before failing.
	var missing []string
	for _, name := range s.order {
		col := s.columns[name]
		if col.Calculation() != nil {
			continue
		}
		if !work.HasColumn(col.Text()) && !work.HasColumn(col.Name()) {
			missing = append(missing, col.Text())
		}
	}
	if len(missing) > 0 {
		return core.NewMissingColumnsError(missing)
	}

	renames := make(map[string]string)
	for _, name := range s.order {
		col := s.columns[name]
		if col.Calculation() == nil && work.HasColumn(col.Text()) {
			renames[col.Text()] = col.Name()
		}
	}
	if err := work.Rename(renames); err != nil {
		return core.NewLoadingError(err.Error())
	}

	for _, name := range s.order {
		col := s.columns[name]
		if calc := col.Calculation(); calc != nil {
			if err := work.SetColumn(col.Name(), work.Apply(calc)); err != nil {
				return core.NewLoadingError(err.Error())
			}
		}
	}

	// All validation has passed; commit the per-column loads. The working
	// table is scratch space, dropped column by column as each load
	// captures its series.
	for _, name := range s.order {
		col := s.columns[name]
		series, err := work.Column(name)
		if err != nil {
			return core.NewLoadingError(err.Error())
		}
		if err := col.Load(series); err != nil {
			return err
		}
		work.Drop(name)
	}

	s.processed = true
	return nil
}

func (s *Survey) ensureProcessed() error {
	if s.processed {
		return nil
	}
	return s.Process()
}

// Data reassembles every registered column's current view into one frame,
// column-aligned by row key, in registration order. Processes first when
// needed. Returns nil when no columns are registered.
func (s *Survey) Data() (*frame.Frame, error) {
	if err := s.ensureProcessed(); err != nil {
		return nil, err
	}
	if len(s.order) == 0 {
		return nil, nil
	}
	series := make([]*frame.Series, 0, len(s.order))
	for _, name := range s.order {
		data, err := s.columns[name].Data()
		if err != nil {
			return nil, err
		}
		series = append(series, data)
	}
	return frame.Concat(series...), nil
}

// Slice is Data restricted to the named registered columns, in the order
// given.
func (s *Survey) Slice(names ...string) (*frame.Frame, error) {
	if err := s.ensureProcessed(); err != nil {
		return nil, err
	}
	series := make([]*frame.Series, 0, len(names))
	for _, name := range names {
		col, ok := s.columns[name]
		if !ok {
			return nil, core.NewColumnNotFoundError(name)
		}
		data, err := col.Data()
		if err != nil {
			return nil, err
		}
		series = append(series, data)
	}
	return frame.Concat(series...), nil
}

// Crosstab cross-tabulates two registered columns directly, bypassing the
// breakdown strategies. When the dependent column is a question with a
// scale, the table's columns follow the scale's rating order ascending.
func (s *Survey) Crosstab(independent, dependent string) (*stats.Contingency, error) {
	if err := s.ensureProcessed(); err != nil {
		return nil, err
	}
	ind, ok := s.columns[independent]
	if !ok {
		return nil, core.NewColumnNotFoundError(independent)
	}
	dep, ok := s.columns[dependent]
	if !ok {
		return nil, core.NewColumnNotFoundError(dependent)
	}
	x, err := ind.Data()
	if err != nil {
		return nil, err
	}
	y, err := dep.Data()
	if err != nil {
		return nil, err
	}
	table, err := stats.Crosstab(x, y)
	if err != nil {
		return nil, err
	}
	if q, isQuestion := dep.(*Question); isQuestion && q.Scale() != nil {
		ordered := make([]string, 0)
		scoring := q.Scale().Scoring()
		for _, label := range q.Scale().SortedLabels() {
			// After load the observed categories are ratings, not labels.
			ordered = append(ordered, frame.Label(scoring[label]))
		}
		table.ReorderCols(ordered)
	}
	return table, nil
}

// Summarize returns a Summarizer over the named columns' slice.
func (s *Survey) Summarize(names ...string) (*Summarizer, error) {
	slice, err := s.Slice(names...)
	if err != nil {
		return nil, err
	}
	return NewSummarizer(slice), nil
}

// BreakdownByDimensions runs every breakdown-flagged question against
// every dimension (sorted by canonical name), keyed by question name.
// Tests are independent of one another and run concurrently.
func (s *Survey) BreakdownByDimensions(ctx context.Context) (map[string][]Result, error) {
	if err := s.ensureProcessed(); err != nil {
		return nil, err
	}

	dims := s.SortedDimensions()
	var flagged []*Question
	for _, q := range s.Questions() {
		if q.BreakdownEnabled() {
			flagged = append(flagged, q)
		}
	}

	breakdown := make(map[string][]Result, len(flagged))
	var mu sync.Mutex
	g, _ := errgroup.WithContext(ctx)

	for _, q := range flagged {
		results := make([]Result, len(dims))
		breakdown[q.Name()] = results
		q := q
		for i, d := range dims {
			i, d := i, d
			g.Go(func() error {
				r, err := d.BreakdownWith(q)
				if err != nil {
					return fmt.Errorf("breakdown of %q by %q: %w", q.Name(), d.Name(), err)
				}
				mu.Lock()
				results[i] = r
				mu.Unlock()
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return breakdown, nil
}

// Summary renders a quick-look block: row, question, and dimension
// counts.
func (s *Survey) Summary() (string, error) {
	data, err := s.Data()
	if err != nil {
		return "", err
	}
	rows := 0
	if data != nil {
		rows = data.NumRows()
	}
	return fmt.Sprintf("Number of Rows: %d\nNumber of Questions: %d\nNumber of Dimensions: %d",
		rows, len(s.Questions()), len(s.Dimensions())), nil
}
