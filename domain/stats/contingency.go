// Package stats holds the numeric statistics kernel: contingency tables,
// the chi-square test of independence, the Kruskal-Wallis H-test, and
// descriptive summaries. Everything here is pure computation over series
// and float slices; orchestration lives in domain/survey.
package stats

import (
	"sort"

	"gosurvey/domain/core"
	"gosurvey/domain/frame"
)

// Contingency is a cross-tabulation of joint observation counts between two
// categorical series. Row and column categories are sorted lexically for
// deterministic output.
type Contingency struct {
	RowName   string
	ColName   string
	RowLabels []string
	ColLabels []string
	Counts    [][]float64
}

// Crosstab tabulates joint counts of x against y, inner-aligned on row
// keys: a row contributes only when both series observe it.
func Crosstab(x, y *frame.Series) (*Contingency, error) {
	type cell struct{ r, c string }
	counts := make(map[cell]float64)
	rowSet := make(map[string]bool)
	colSet := make(map[string]bool)

	n := 0
	for i := 0; i < x.Len(); i++ {
		xv := x.At(i)
		if xv == nil {
			continue
		}
		yv, ok := y.Get(x.Key(i))
		if !ok || yv == nil {
			continue
		}
		r, c := frame.Label(xv), frame.Label(yv)
		counts[cell{r, c}]++
		rowSet[r] = true
		colSet[c] = true
		n++
	}
	if n == 0 {
		return nil, core.NewStatisticalInputError("no aligned observations to tabulate")
	}

	rows := sortedLabels(rowSet)
	cols := sortedLabels(colSet)
	table := make([][]float64, len(rows))
	for i, r := range rows {
		table[i] = make([]float64, len(cols))
		for j, c := range cols {
			table[i][j] = counts[cell{r, c}]
		}
	}
	return &Contingency{
		RowName:   x.Name(),
		ColName:   y.Name(),
		RowLabels: rows,
		ColLabels: cols,
		Counts:    table,
	}, nil
}

func sortedLabels(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for label := range set {
		out = append(out, label)
	}
	sort.Strings(out)
	return out
}

// Total returns the grand total of the table.
func (c *Contingency) Total() float64 {
	var total float64
	for _, row := range c.Counts {
		for _, v := range row {
			total += v
		}
	}
	return total
}

// RowTotals returns the marginal totals per row category.
func (c *Contingency) RowTotals() []float64 {
	totals := make([]float64, len(c.Counts))
	for i, row := range c.Counts {
		for _, v := range row {
			totals[i] += v
		}
	}
	return totals
}

// ColTotals returns the marginal totals per column category.
func (c *Contingency) ColTotals() []float64 {
	totals := make([]float64, len(c.ColLabels))
	for _, row := range c.Counts {
		for j, v := range row {
			totals[j] += v
		}
	}
	return totals
}

// ReorderCols rearranges the column categories to follow the given label
// order. Labels absent from the table are skipped; table columns absent
// from the ordering keep their relative position at the end.
func (c *Contingency) ReorderCols(labels []string) {
	position := make(map[string]int, len(c.ColLabels))
	for j, label := range c.ColLabels {
		position[label] = j
	}

	var order []int
	taken := make(map[int]bool)
	for _, label := range labels {
		if j, ok := position[label]; ok && !taken[j] {
			order = append(order, j)
			taken[j] = true
		}
	}
	for j := range c.ColLabels {
		if !taken[j] {
			order = append(order, j)
		}
	}

	newLabels := make([]string, len(order))
	for idx, j := range order {
		newLabels[idx] = c.ColLabels[j]
	}
	for i, row := range c.Counts {
		newRow := make([]float64, len(order))
		for idx, j := range order {
			newRow[idx] = row[j]
		}
		c.Counts[i] = newRow
	}
	c.ColLabels = newLabels
}
