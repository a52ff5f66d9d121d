// Package ports holds the interfaces the application core depends on.
package ports

import (
	"context"
	"time"

	"gosurvey/domain/core"
	"gosurvey/domain/frame"
	"gosurvey/domain/survey"
)

// BreakdownRecord is one persisted breakdown result: a question broken
// down by a dimension with a named statistical test.
type BreakdownRecord struct {
	ID         core.ID   `db:"id" json:"id"`
	SurveyName string    `db:"survey_name" json:"survey_name"`
	Question   string    `db:"question" json:"question"`
	Dimension  string    `db:"dimension" json:"dimension"`
	TestName   string    `db:"test_name" json:"test_name"`
	Statistic  float64   `db:"statistic" json:"statistic"`
	PValue     float64   `db:"p_value" json:"p_value"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// NewBreakdownRecord shapes a breakdown result for storage.
func NewBreakdownRecord(surveyName string, result survey.Result) BreakdownRecord {
	return BreakdownRecord{
		ID:         core.NewID(),
		SurveyName: surveyName,
		Question:   result.DependentLabel(),
		Dimension:  result.IndependentLabel(),
		TestName:   result.TestName(),
		Statistic:  result.TestStatistic(),
		PValue:     result.PValue(),
		CreatedAt:  time.Now().UTC(),
	}
}

// Significant reports whether the record clears the given alpha.
func (r BreakdownRecord) Significant(alpha float64) bool {
	return r.PValue < alpha
}

// ResultRepository stores and retrieves breakdown results.
type ResultRepository interface {
	// SaveResult persists one breakdown record.
	SaveResult(ctx context.Context, record BreakdownRecord) error

	// ListBySurvey returns the records for a named survey, newest first.
	ListBySurvey(ctx context.Context, surveyName string) ([]BreakdownRecord, error)

	// ListSignificant returns records for a survey with p-value below alpha.
	ListSignificant(ctx context.Context, surveyName string, alpha float64) ([]BreakdownRecord, error)
}

// ResponseReader loads a response table from some source; implemented
// by the tabular file reader.
type ResponseReader interface {
	Read() (*frame.Frame, error)
}
