package declarative

import (
	"testing"

	"gosurvey/domain/core"
	"gosurvey/domain/frame"
	"gosurvey/domain/survey"
)

const definition = `
scales:
  agreement:
    labels: [Disagree, Neutral, Agree]
    ratings: [1, 2, 3]
questions:
  - column: "How satisfied are you?"
    name: satisfaction
    scale: agreement
    breakdown: true
    filter: 'value != "N/A"'
dimensions:
  - column: Department
    name: department
  - column: Tenure
    name: tenure
    test: kruskal_wallis
`

func TestLoader_BuildsColumns(t *testing.T) {
	columns, err := NewLoader().Load([]byte(definition))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(columns) != 3 {
		t.Fatalf("expected 3 columns, got %d", len(columns))
	}

	q, ok := columns[0].(*survey.Question)
	if !ok {
		t.Fatalf("questions come first, got %T", columns[0])
	}
	if q.Name() != "satisfaction" || q.Text() != "How satisfied are you?" {
		t.Fatalf("question naming wrong: %s / %s", q.Name(), q.Text())
	}
	if !q.BreakdownEnabled() {
		t.Fatal("breakdown flag should be set")
	}
	if q.Scale() == nil {
		t.Fatal("scale should be attached")
	}

	if d, ok := columns[1].(*survey.Dimension); !ok || d.Name() != "department" {
		t.Fatalf("expected department dimension, got %T %v", columns[1], columns[1].Name())
	}
}

func TestLoader_EndToEnd(t *testing.T) {
	columns, err := NewLoader().Load([]byte(definition))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	f, err := frame.FromColumns(
		[]string{"How satisfied are you?", "Department", "Tenure"},
		map[string][]frame.Value{
			"How satisfied are you?": {"Agree", "Disagree", "N/A", "Neutral"},
			"Department":             {"eng", "ops", "eng", "ops"},
			"Tenure":                 {1.0, 2.0, 3.0, 4.0},
		},
	)
	if err != nil {
		t.Fatalf("FromColumns: %v", err)
	}

	s := survey.NewSurvey().Responses(f)
	if err := s.AddColumns(columns...); err != nil {
		t.Fatalf("AddColumns: %v", err)
	}
	if err := s.Process(); err != nil {
		t.Fatalf("Process: %v", err)
	}

	q, _ := s.Column("satisfaction")
	data, err := q.Data()
	if err != nil {
		t.Fatalf("Data: %v", err)
	}
	// N/A row filtered out, the rest substituted through the scale
	if data.Len() != 3 {
		t.Fatalf("expected 3 rows after the filter, got %d", data.Len())
	}
	if v, _ := frame.Float(data.At(0)); v != 3 {
		t.Fatalf("Agree should score 3, got %v", data.At(0))
	}
}

func TestLoader_UnknownScale(t *testing.T) {
	_, err := NewLoader().Load([]byte(`
questions:
  - column: q1
    scale: missing
`))
	if !core.IsConfigurationError(err) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestLoader_UnknownTest(t *testing.T) {
	_, err := NewLoader().Load([]byte(`
dimensions:
  - column: d1
    test: anova
`))
	if !core.IsConfigurationError(err) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

type namedTest struct{ survey.StatTest }

func (namedTest) Name() string { return "custom" }

func TestLoader_RegisterTest(t *testing.T) {
	l := NewLoader()
	l.RegisterTest(namedTest{survey.Chi2Test{}})

	columns, err := l.Load([]byte(`
dimensions:
  - column: d1
    test: custom
`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(columns) != 1 {
		t.Fatalf("expected 1 column, got %d", len(columns))
	}
}

func TestLoader_BadFilterExpression(t *testing.T) {
	_, err := NewLoader().Load([]byte(`
questions:
  - column: q1
    filter: 'exec("rm -rf /")'
`))
	if !core.IsConfigurationError(err) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestLoader_ScaleLengthMismatch(t *testing.T) {
	_, err := NewLoader().Load([]byte(`
scales:
  broken:
    labels: [a, b]
    ratings: [1]
`))
	if !core.IsConfigurationError(err) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
