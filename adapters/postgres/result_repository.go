// Package postgres persists breakdown results in PostgreSQL.
package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"gosurvey/ports"
)

// ResultRepositoryImpl implements ResultRepository for PostgreSQL.
type ResultRepositoryImpl struct {
	db *sqlx.DB
}

// NewResultRepository creates a new PostgreSQL result repository.
func NewResultRepository(db *sqlx.DB) ports.ResultRepository {
	return &ResultRepositoryImpl{db: db}
}

// Connect opens a database handle and verifies the connection.
func Connect(ctx context.Context, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return db, nil
}

// EnsureSchema creates the results table when it does not exist yet.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS breakdown_results (
			id UUID PRIMARY KEY,
			survey_name TEXT NOT NULL,
			question TEXT NOT NULL,
			dimension TEXT NOT NULL,
			test_name TEXT NOT NULL,
			statistic DOUBLE PRECISION NOT NULL,
			p_value DOUBLE PRECISION NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_breakdown_results_survey
			ON breakdown_results (survey_name, created_at DESC)`)
	return err
}

// SaveResult persists one breakdown record. Re-saving the same ID
// updates it in place.
func (r *ResultRepositoryImpl) SaveResult(ctx context.Context, record ports.BreakdownRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO breakdown_results (id, survey_name, question, dimension, test_name, statistic, p_value, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			statistic = EXCLUDED.statistic,
			p_value = EXCLUDED.p_value
	`, record.ID, record.SurveyName, record.Question, record.Dimension,
		record.TestName, record.Statistic, record.PValue, record.CreatedAt)
	return err
}

// ListBySurvey returns the records for a named survey, newest first.
func (r *ResultRepositoryImpl) ListBySurvey(ctx context.Context, surveyName string) ([]ports.BreakdownRecord, error) {
	records := []ports.BreakdownRecord{}
	err := r.db.SelectContext(ctx, &records, `
		SELECT id, survey_name, question, dimension, test_name, statistic, p_value, created_at
		FROM breakdown_results
		WHERE survey_name = $1
		ORDER BY created_at DESC
	`, surveyName)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// ListSignificant returns records with a p-value below alpha.
func (r *ResultRepositoryImpl) ListSignificant(ctx context.Context, surveyName string, alpha float64) ([]ports.BreakdownRecord, error) {
	records := []ports.BreakdownRecord{}
	err := r.db.SelectContext(ctx, &records, `
		SELECT id, survey_name, question, dimension, test_name, statistic, p_value, created_at
		FROM breakdown_results
		WHERE survey_name = $1 AND p_value < $2
		ORDER BY p_value ASC
	`, surveyName, alpha)
	if err != nil {
		return nil, err
	}
	return records, nil
}
