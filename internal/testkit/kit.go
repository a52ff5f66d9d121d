// Package testkit builds deterministic fixtures for pipeline and
// statistics tests.
package testkit

import (
	"math/rand"
	"strconv"

	"gosurvey/domain/frame"
	"gosurvey/domain/survey"
)

// LikertScale returns the five-point agreement scale used across fixtures.
func LikertScale() *survey.Scale {
	s, err := survey.NewScale(
		[]string{"Strongly Disagree", "Disagree", "Neutral", "Agree", "Strongly Agree"},
		[]float64{1, 2, 3, 4, 5},
	)
	if err != nil {
		panic(err)
	}
	return s
}

// ResponsesFixture builds a small keyed response table: employee id,
// department, tenure in years, and a Likert answer.
func ResponsesFixture() *frame.Frame {
	f, err := frame.FromColumns(
		[]string{"employee_id", "department", "tenure_years", "How satisfied are you?"},
		map[string][]frame.Value{
			"employee_id":            {"e1", "e2", "e3", "e4", "e5", "e6"},
			"department":             {"eng", "ops", "eng", "sales", "ops", "eng"},
			"tenure_years":           {1.0, 3.0, 5.0, 2.0, 7.0, 4.0},
			"How satisfied are you?": {"Agree", "Neutral", "Strongly Agree", "Disagree", "Agree", "Neutral"},
		},
	)
	if err != nil {
		panic(err)
	}
	if err := f.SetIndex("employee_id"); err != nil {
		panic(err)
	}
	return f
}

// RandomCategorical produces n draws from the given categories with a
// seeded generator, keyed positionally.
func RandomCategorical(n int, categories []string, seed int64) []frame.Value {
	rng := rand.New(rand.NewSource(seed))
	out := make([]frame.Value, n)
	for i := range out {
		out[i] = categories[rng.Intn(len(categories))]
	}
	return out
}

// CycledCategorical deals categories round-robin, producing perfectly
// balanced draws. Two columns cycled with coprime periods are exactly
// independent, which pins chi-square near zero without randomness.
func CycledCategorical(n int, categories []string) []frame.Value {
	out := make([]frame.Value, n)
	for i := range out {
		out[i] = categories[i%len(categories)]
	}
	return out
}

// Keys returns n positional keys "0".."n-1".
func Keys(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = strconv.Itoa(i)
	}
	return out
}
