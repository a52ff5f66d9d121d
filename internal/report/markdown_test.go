package report

import (
	"strings"
	"testing"

	"gosurvey/domain/frame"
	"gosurvey/domain/survey"
)

type fakeResult struct {
	test      string
	dependent string
	dimension string
	statistic float64
	p         float64
}

func (f fakeResult) TestName() string         { return f.test }
func (f fakeResult) DependentLabel() string   { return f.dependent }
func (f fakeResult) IndependentLabel() string { return f.dimension }
func (f fakeResult) TestStatistic() float64   { return f.statistic }
func (f fakeResult) PValue() float64          { return f.p }
func (f fakeResult) String() string           { return f.test }

func reportSurvey(t *testing.T) *survey.Survey {
	t.Helper()
	f, err := frame.FromColumns([]string{"score", "dept"}, map[string][]frame.Value{
		"score": {1.0, 2.0, 3.0, 4.0},
		"dept":  {"eng", "ops", "eng", "ops"},
	})
	if err != nil {
		t.Fatalf("FromColumns: %v", err)
	}
	s := survey.NewSurvey().Responses(f)
	if err := s.AddColumns(survey.NewQuestion("score"), survey.NewDimension("dept")); err != nil {
		t.Fatalf("AddColumns: %v", err)
	}
	if err := s.Process(); err != nil {
		t.Fatalf("Process: %v", err)
	}
	return s
}

func TestRender(t *testing.T) {
	s := reportSurvey(t)
	breakdown := map[string][]survey.Result{
		"score": {
			fakeResult{test: "chi_square", dependent: "score", dimension: "dept", statistic: 6.67, p: 0.0098},
			fakeResult{test: "kruskal_wallis", dependent: "score", dimension: "region", statistic: 0.5, p: 0.48},
		},
	}

	md, err := NewRenderer("Engagement Survey").Render(s, breakdown)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	for _, want := range []string{
		"# Engagement Survey",
		"## Questions",
		"| score | 4 | 2.50 |",
		"## Breakdowns",
		"### score",
		"| dept | chi_square | 6.6700 | 0.0098 | significant |",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("report missing %q:\n%s", want, md)
		}
	}

	// p=0.48 is above alpha, so no marker on that row
	if strings.Contains(md, "| region | kruskal_wallis | 0.5000 | 0.4800 | significant |") {
		t.Error("non-significant result should not be flagged")
	}
}

func TestRender_NoBreakdowns(t *testing.T) {
	s := reportSurvey(t)
	md, err := NewRenderer("Quiet Survey").Render(s, nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(md, "## Breakdowns") {
		t.Error("empty breakdown should omit the section")
	}
}

func TestRenderHTML(t *testing.T) {
	s := reportSurvey(t)
	out, err := NewRenderer("Engagement Survey").RenderHTML(s, nil)
	if err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}
	html := string(out)
	if !strings.Contains(html, "<h1") || !strings.Contains(html, "<table>") {
		t.Fatalf("expected rendered HTML headings and tables:\n%s", html)
	}
}
