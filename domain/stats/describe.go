package stats

import (
	"github.com/montanaflynn/stats"

	"gosurvey/domain/core"
)

// Description summarizes a numeric series.
type Description struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Median float64 `json:"median"`
	Q25    float64 `json:"q25"`
	Q75    float64 `json:"q75"`
}

// Describe computes descriptive statistics over the observations.
func Describe(data []float64) (*Description, error) {
	if len(data) == 0 {
		return nil, core.NewStatisticalInputError("nothing to describe")
	}

	mean, _ := stats.Mean(data)
	stdDev, _ := stats.StandardDeviation(data)
	min, _ := stats.Min(data)
	max, _ := stats.Max(data)
	median, _ := stats.Median(data)
	q25, _ := stats.Percentile(data, 25)
	q75, _ := stats.Percentile(data, 75)

	return &Description{
		Count:  len(data),
		Mean:   mean,
		StdDev: stdDev,
		Min:    min,
		Max:    max,
		Median: median,
		Q25:    q25,
		Q75:    q75,
	}, nil
}
