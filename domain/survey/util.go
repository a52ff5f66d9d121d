package survey

import (
	"fmt"

	"gosurvey/domain/core"
	"gosurvey/domain/frame"
)

// ToOrdinal renders a cardinal as its ordinal: 1 -> "1st", 22 -> "22nd".
func ToOrdinal(n int) string {
	suffix := "th"
	if n/10%10 != 1 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

// PercentOf returns the named column expressed as a percentage of its
// total.
func PercentOf(f *frame.Frame, column string) (*frame.Series, error) {
	col, err := f.Column(column)
	if err != nil {
		return nil, err
	}
	values, err := col.Float64s()
	if err != nil {
		return nil, err
	}
	var total float64
	for _, v := range values {
		total += v
	}
	if total == 0 {
		return nil, core.NewStatisticalInputError("column " + column + " sums to zero")
	}
	return col.Map(func(v frame.Value) frame.Value {
		if f, ok := frame.Float(v); ok {
			return 100 * f / total
		}
		return v
	}), nil
}

// GroupSizes counts occurrences of each category in the named column.
func GroupSizes(f *frame.Frame, column string) (map[string]int, error) {
	col, err := f.Column(column)
	if err != nil {
		return nil, err
	}
	sizes := make(map[string]int)
	for i := 0; i < col.Len(); i++ {
		if v := col.At(i); v != nil {
			sizes[frame.Label(v)]++
		}
	}
	return sizes, nil
}
