package stats

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"

	"gosurvey/domain/core"
)

// KruskalWallisResult carries the outcome of a Kruskal-Wallis H-test.
type KruskalWallisResult struct {
	H      float64
	PValue float64
	Groups int
}

// KruskalWallis runs the Kruskal-Wallis H-test across the given groups of
// observations, with the usual tie correction and chi-square approximation
// for the p-value. At least two non-empty groups are required.
func KruskalWallis(groups [][]float64) (*KruskalWallisResult, error) {
	var kept [][]float64
	n := 0
	for _, g := range groups {
		if len(g) == 0 {
			continue
		}
		kept = append(kept, g)
		n += len(g)
	}
	if len(kept) < 2 {
		return nil, core.NewStatisticalInputError("kruskal-wallis needs at least 2 non-empty groups")
	}

	ranks := rankAll(kept, n)

	// H = 12/(N(N+1)) * sum(R_j^2 / n_j) - 3(N+1)
	h := 0.0
	offset := 0
	for _, g := range kept {
		var rankSum float64
		for i := range g {
			rankSum += ranks[offset+i]
		}
		h += rankSum * rankSum / float64(len(g))
		offset += len(g)
	}
	fn := float64(n)
	h = 12/(fn*(fn+1))*h - 3*(fn+1)

	correction := tieCorrection(kept, n)
	if correction == 0 {
		// Every pooled observation ties in a single group, so ranks carry
		// no information and H is undefined.
		return nil, core.NewStatisticalInputError("kruskal-wallis needs at least 2 distinct values")
	}
	h /= correction

	dof := len(kept) - 1
	dist := distuv.ChiSquared{K: float64(dof)}
	return &KruskalWallisResult{
		H:      h,
		PValue: dist.Survival(h),
		Groups: len(kept),
	}, nil
}

// rankAll assigns mid-ranks to the pooled observations, returned in group
// concatenation order.
func rankAll(groups [][]float64, n int) []float64 {
	type obs struct {
		value float64
		pos   int
	}
	pooled := make([]obs, 0, n)
	pos := 0
	for _, g := range groups {
		for _, v := range g {
			pooled = append(pooled, obs{value: v, pos: pos})
			pos++
		}
	}
	sort.Slice(pooled, func(i, j int) bool { return pooled[i].value < pooled[j].value })

	ranks := make([]float64, n)
	i := 0
	for i < n {
		j := i
		for j+1 < n && pooled[j+1].value == pooled[i].value {
			j++
		}
		mid := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			ranks[pooled[k].pos] = mid
		}
		i = j + 1
	}
	return ranks
}

// tieCorrection returns 1 - sum(t^3 - t)/(N^3 - N) over tie groups.
func tieCorrection(groups [][]float64, n int) float64 {
	pooled := make([]float64, 0, n)
	for _, g := range groups {
		pooled = append(pooled, g...)
	}
	sort.Float64s(pooled)

	var tieSum float64
	i := 0
	for i < n {
		j := i
		for j+1 < n && pooled[j+1] == pooled[i] {
			j++
		}
		t := float64(j - i + 1)
		tieSum += t*t*t - t
		i = j + 1
	}
	fn := float64(n)
	return 1 - tieSum/(fn*fn*fn-fn)
}

func (r *KruskalWallisResult) String() string {
	return fmt.Sprintf("H=%.4f groups=%d p=%.4g", r.H, r.Groups, r.PValue)
}
