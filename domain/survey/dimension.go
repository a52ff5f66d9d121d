package survey

import (
	"gosurvey/domain/frame"
)

// Dimension represents a categorical grouping variable used to partition
// questions for comparison.
type Dimension struct {
	base
	breakdownBy StatTest
}

// DimensionOption configures a Dimension at construction.
type DimensionOption func(*Dimension)

// DimensionColumn sets the canonical column name when it differs from the
// source text.
func DimensionColumn(name string) DimensionOption {
	return func(d *Dimension) { d.column = name }
}

// DimensionDescription attaches a human-readable description.
func DimensionDescription(text string) DimensionOption {
	return func(d *Dimension) { d.description = text }
}

// Calculated derives the dimension's values from full rows instead of
// loading a source column.
func Calculated(fn Calculation) DimensionOption {
	return func(d *Dimension) { d.calculation = fn }
}

// BreakdownBy injects the association test used by BreakdownWith. The
// default is the chi-square test.
func BreakdownBy(test StatTest) DimensionOption {
	return func(d *Dimension) { d.breakdownBy = test }
}

// NewDimension declares a grouping variable found under the given source text.
func NewDimension(text string, opts ...DimensionOption) *Dimension {
	d := &Dimension{base: newBase(text), breakdownBy: Chi2Test{}}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Dimension) Kind() Kind { return KindDimension }

// Load assigns the backing series.
func (d *Dimension) Load(s *frame.Series) error {
	return d.load(s)
}

// AddTransform appends an element-wise transform. Returns the dimension
// for chaining.
func (d *Dimension) AddTransform(fn Transform) *Dimension {
	d.transforms = append(d.transforms, fn)
	return d
}

// AddFilter appends a row filter. Returns the dimension for chaining.
func (d *Dimension) AddFilter(fn Filter) *Dimension {
	d.filters = append(d.filters, fn)
	return d
}

// Categories returns the distinct observed values of the transformed,
// filtered data in first-appearance order.
func (d *Dimension) Categories() ([]frame.Value, error) {
	data, err := d.Data()
	if err != nil {
		return nil, err
	}
	return data.Unique(), nil
}

// PairwiseCategories returns every unordered 2-combination of categories.
func (d *Dimension) PairwiseCategories() ([][2]frame.Value, error) {
	categories, err := d.Categories()
	if err != nil {
		return nil, err
	}
	var pairs [][2]frame.Value
	for i := 0; i < len(categories); i++ {
		for j := i + 1; j < len(categories); j++ {
			pairs = append(pairs, [2]frame.Value{categories[i], categories[j]})
		}
	}
	return pairs, nil
}

// BreakdownWith runs the configured association test between this
// dimension and the question. Both columns must be loaded.
func (d *Dimension) BreakdownWith(question *Question) (Result, error) {
	test := d.breakdownBy
	if test == nil {
		test = Chi2Test{}
	}
	return test.Test(d, question)
}
