package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"gosurvey/domain/core"
)

// ChiSquareResult carries the outcome of a chi-square test of independence.
type ChiSquareResult struct {
	Statistic        float64
	PValue           float64
	DegreesOfFreedom int
	Expected         [][]float64
}

// ChiSquare runs the chi-square test of independence over a contingency
// table. Tables with fewer than two row or two column categories are
// degenerate: the test is undefined on them and they are rejected rather
// than silently producing a zero statistic.
func ChiSquare(table *Contingency) (*ChiSquareResult, error) {
	if table == nil || len(table.RowLabels) < 2 || len(table.ColLabels) < 2 {
		return nil, core.NewStatisticalInputError("contingency table needs at least 2 rows and 2 columns")
	}
	total := table.Total()
	if total == 0 {
		return nil, core.NewStatisticalInputError("contingency table is empty")
	}

	rowTotals := table.RowTotals()
	colTotals := table.ColTotals()

	expected := make([][]float64, len(rowTotals))
	statistic := 0.0
	for i := range rowTotals {
		expected[i] = make([]float64, len(colTotals))
		for j := range colTotals {
			e := rowTotals[i] * colTotals[j] / total
			expected[i][j] = e
			if e > 0 {
				d := table.Counts[i][j] - e
				statistic += d * d / e
			}
		}
	}

	dof := (len(rowTotals) - 1) * (len(colTotals) - 1)
	dist := distuv.ChiSquared{K: float64(dof)}
	return &ChiSquareResult{
		Statistic:        statistic,
		PValue:           dist.Survival(statistic),
		DegreesOfFreedom: dof,
		Expected:         expected,
	}, nil
}

// CramersV computes the Cramer's V effect size for a computed chi-square
// result over the given table.
func CramersV(table *Contingency, result *ChiSquareResult) float64 {
	minDim := len(table.RowLabels) - 1
	if c := len(table.ColLabels) - 1; c < minDim {
		minDim = c
	}
	total := table.Total()
	if minDim <= 0 || total == 0 {
		return 0
	}
	v := result.Statistic / (total * float64(minDim))
	if v < 0 {
		return 0
	}
	return math.Sqrt(v)
}

func (r *ChiSquareResult) String() string {
	return fmt.Sprintf("chi2=%.4f dof=%d p=%.4g", r.Statistic, r.DegreesOfFreedom, r.PValue)
}
