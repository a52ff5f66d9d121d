// Package report renders survey analysis into markdown and HTML.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"gosurvey/domain/survey"
)

// Renderer turns breakdown output into a readable report. Alpha marks
// which results get flagged as significant.
type Renderer struct {
	Title string
	Alpha float64
}

// NewRenderer creates a renderer with the conventional 0.05 alpha.
func NewRenderer(title string) *Renderer {
	return &Renderer{Title: title, Alpha: 0.05}
}

// Render produces a markdown report: per-question descriptive figures
// first, then every breakdown grouped by question.
func (r *Renderer) Render(s *survey.Survey, breakdown map[string][]survey.Result) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", r.Title)

	if err := r.renderQuestions(&b, s); err != nil {
		return "", err
	}
	r.renderBreakdowns(&b, breakdown)
	return b.String(), nil
}

func (r *Renderer) renderQuestions(b *strings.Builder, s *survey.Survey) error {
	questions := s.Questions()
	if len(questions) == 0 {
		return nil
	}

	b.WriteString("## Questions\n\n")
	b.WriteString("| Question | Responses | Mean | Median | Std Dev |\n")
	b.WriteString("|---|---|---|---|---|\n")
	for _, q := range questions {
		desc, err := q.Describe()
		if err != nil {
			// categorical questions have no numbers to describe
			fmt.Fprintf(b, "| %s | - | - | - | - |\n", q.Name())
			continue
		}
		fmt.Fprintf(b, "| %s | %d | %.2f | %.2f | %.2f |\n",
			q.Name(), desc.Count, desc.Mean, desc.Median, desc.StdDev)
	}
	b.WriteString("\n")
	return nil
}

func (r *Renderer) renderBreakdowns(b *strings.Builder, breakdown map[string][]survey.Result) {
	if len(breakdown) == 0 {
		return
	}

	names := make([]string, 0, len(breakdown))
	for name := range breakdown {
		names = append(names, name)
	}
	sort.Strings(names)

	b.WriteString("## Breakdowns\n\n")
	for _, name := range names {
		fmt.Fprintf(b, "### %s\n\n", name)
		b.WriteString("| Dimension | Test | Statistic | p-value | |\n")
		b.WriteString("|---|---|---|---|---|\n")
		for _, result := range breakdown[name] {
			marker := ""
			if result.PValue() < r.Alpha {
				marker = "significant"
			}
			fmt.Fprintf(b, "| %s | %s | %.4f | %.4f | %s |\n",
				result.IndependentLabel(), result.TestName(),
				result.TestStatistic(), result.PValue(), marker)
		}
		b.WriteString("\n")
	}
}

// RenderHTML renders the markdown report as a standalone HTML page.
func (r *Renderer) RenderHTML(s *survey.Survey, breakdown map[string][]survey.Result) ([]byte, error) {
	md, err := r.Render(s, breakdown)
	if err != nil {
		return nil, err
	}
	return ToHTML([]byte(md)), nil
}

// ToHTML converts markdown to HTML with tables enabled.
func ToHTML(md []byte) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	doc := p.Parse(md)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.CompletePage})
	return markdown.Render(doc, renderer)
}
