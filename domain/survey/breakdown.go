package survey

import (
	"fmt"

	"gosurvey/domain/core"
	"gosurvey/domain/frame"
	"gosurvey/domain/stats"
)

// Result is the uniform shape of a breakdown outcome.
type Result interface {
	// TestName identifies the strategy that produced the result.
	TestName() string
	DependentLabel() string
	IndependentLabel() string
	TestStatistic() float64
	PValue() float64
	fmt.Stringer
}

// StatTest is a stateless strategy computing an association statistic
// between a dimension and a question.
type StatTest interface {
	Name() string
	Test(independent *Dimension, dependent *Question) (Result, error)
}

// Chi2Test runs a chi-square test of independence over the contingency
// table of the two columns.
type Chi2Test struct{}

func (Chi2Test) Name() string { return "chi_square" }

func (Chi2Test) Test(independent *Dimension, dependent *Question) (Result, error) {
	x, err := independent.Data()
	if err != nil {
		return nil, err
	}
	y, err := dependent.Data()
	if err != nil {
		return nil, err
	}
	table, err := stats.Crosstab(x, y)
	if err != nil {
		return nil, err
	}
	r, err := stats.ChiSquare(table)
	if err != nil {
		return nil, err
	}
	return &Chi2Result{
		Dependent:        dependent.Text(),
		Independent:      independent.Text(),
		Statistic:        r.Statistic,
		P:                r.PValue,
		DegreesOfFreedom: r.DegreesOfFreedom,
		Expected:         r.Expected,
	}, nil
}

// KruskalWallisTest compares the question's observations across the
// dimension's groups with the Kruskal-Wallis H-test. Rows are inner-joined
// on the row index; unmatched rows drop silently.
type KruskalWallisTest struct{}

func (KruskalWallisTest) Name() string { return "kruskal_wallis" }

func (KruskalWallisTest) Test(independent *Dimension, dependent *Question) (Result, error) {
	x, err := independent.Data()
	if err != nil {
		return nil, err
	}
	y, err := dependent.Data()
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]float64)
	var order []string
	for i := 0; i < x.Len(); i++ {
		xv := x.At(i)
		if xv == nil {
			continue
		}
		yv, ok := y.Get(x.Key(i))
		if !ok || yv == nil {
			continue
		}
		f, ok := frame.Float(yv)
		if !ok {
			return nil, core.NewStatisticalInputError(
				"question " + dependent.Name() + " has non-numeric observations; attach a scale or transform first")
		}
		label := frame.Label(xv)
		if _, seen := grouped[label]; !seen {
			order = append(order, label)
		}
		grouped[label] = append(grouped[label], f)
	}

	groups := make([][]float64, 0, len(order))
	for _, label := range order {
		groups = append(groups, grouped[label])
	}
	r, err := stats.KruskalWallis(groups)
	if err != nil {
		return nil, err
	}
	return &KruskalWallisResult{
		Dependent:   dependent.Text(),
		Independent: independent.Text(),
		H:           r.H,
		P:           r.PValue,
		Groups:      r.Groups,
	}, nil
}

// Chi2Result is the immutable outcome of a chi-square breakdown.
type Chi2Result struct {
	Dependent        string
	Independent      string
	Statistic        float64
	P                float64
	DegreesOfFreedom int
	Expected         [][]float64
}

func (r *Chi2Result) TestName() string         { return "chi_square" }
func (r *Chi2Result) DependentLabel() string   { return r.Dependent }
func (r *Chi2Result) IndependentLabel() string { return r.Independent }
func (r *Chi2Result) TestStatistic() float64   { return r.Statistic }
func (r *Chi2Result) PValue() float64          { return r.P }

func (r *Chi2Result) String() string {
	return fmt.Sprintf("Chi2 Test:\nDependent: %s\nIndependent: %s\nResult: pvalue=%g test_statistic=%g",
		r.Dependent, r.Independent, r.P, r.Statistic)
}

// KruskalWallisResult is the immutable outcome of a Kruskal-Wallis
// breakdown.
type KruskalWallisResult struct {
	Dependent   string
	Independent string
	H           float64
	P           float64
	Groups      int
}

func (r *KruskalWallisResult) TestName() string         { return "kruskal_wallis" }
func (r *KruskalWallisResult) DependentLabel() string   { return r.Dependent }
func (r *KruskalWallisResult) IndependentLabel() string { return r.Independent }
func (r *KruskalWallisResult) TestStatistic() float64   { return r.H }
func (r *KruskalWallisResult) PValue() float64          { return r.P }

func (r *KruskalWallisResult) String() string {
	return fmt.Sprintf("KruskalWallis Test:\nDependent: %s\nIndependent: %s\nResult: pvalue=%g test_statistic=%g",
		r.Dependent, r.Independent, r.P, r.H)
}
