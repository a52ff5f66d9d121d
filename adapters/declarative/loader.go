// Package declarative builds surveys from YAML definition files, so
// recurring surveys can be described as data instead of code.
package declarative

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"gosurvey/domain/core"
	"gosurvey/domain/survey"
)

// Document is the root of a survey definition file.
type Document struct {
	Scales     map[string]ScaleSpec `yaml:"scales"`
	Questions  []QuestionSpec       `yaml:"questions"`
	Dimensions []DimensionSpec      `yaml:"dimensions"`
}

// ScaleSpec declares an ordered response scale.
type ScaleSpec struct {
	Labels  []string  `yaml:"labels"`
	Ratings []float64 `yaml:"ratings"`
	Default *float64  `yaml:"default"`
}

// QuestionSpec declares one question column.
type QuestionSpec struct {
	Column      string `yaml:"column"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Scale       string `yaml:"scale"`
	Breakdown   bool   `yaml:"breakdown"`
	Filter      string `yaml:"filter"`
}

// DimensionSpec declares one dimension column.
type DimensionSpec struct {
	Column      string `yaml:"column"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Test        string `yaml:"test"`
	Filter      string `yaml:"filter"`
}

// Loader turns definition documents into survey columns. Statistical
// tests are resolved by name through an explicit registry, so callers
// can add their own without touching package state.
type Loader struct {
	tests map[string]survey.StatTest
}

// NewLoader creates a loader with the built-in tests registered under
// "chi_square" and "kruskal_wallis".
func NewLoader() *Loader {
	l := &Loader{tests: make(map[string]survey.StatTest)}
	l.RegisterTest(survey.Chi2Test{})
	l.RegisterTest(survey.KruskalWallisTest{})
	return l
}

// RegisterTest makes a test available to definition files under its
// own Name. Registering again replaces the earlier entry.
func (l *Loader) RegisterTest(t survey.StatTest) {
	l.tests[t.Name()] = t
}

// LoadFile reads and builds a definition file.
func (l *Loader) LoadFile(path string) ([]survey.Column, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, core.NewLoadingError(err.Error())
	}
	return l.Load(raw)
}

// Load parses a YAML definition and builds its columns in file order,
// questions first.
func (l *Loader) Load(raw []byte) ([]survey.Column, error) {
	var doc Document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, core.NewConfigurationError(fmt.Sprintf("parsing survey definition: %v", err))
	}
	return l.Build(doc)
}

// Build turns an already-decoded document into survey columns.
func (l *Loader) Build(doc Document) ([]survey.Column, error) {
	scales, err := buildScales(doc.Scales)
	if err != nil {
		return nil, err
	}

	columns := make([]survey.Column, 0, len(doc.Questions)+len(doc.Dimensions))
	for _, spec := range doc.Questions {
		q, err := l.buildQuestion(spec, scales)
		if err != nil {
			return nil, err
		}
		columns = append(columns, q)
	}
	for _, spec := range doc.Dimensions {
		d, err := l.buildDimension(spec)
		if err != nil {
			return nil, err
		}
		columns = append(columns, d)
	}
	return columns, nil
}

func buildScales(specs map[string]ScaleSpec) (map[string]*survey.Scale, error) {
	scales := make(map[string]*survey.Scale, len(specs))
	for name, spec := range specs {
		var scale *survey.Scale
		var err error
		if spec.Default != nil {
			scale, err = survey.NewScaleWithDefault(spec.Labels, spec.Ratings, *spec.Default)
		} else {
			scale, err = survey.NewScale(spec.Labels, spec.Ratings)
		}
		if err != nil {
			return nil, core.NewConfigurationError(fmt.Sprintf("scale %q: %v", name, err))
		}
		scales[name] = scale
	}
	return scales, nil
}

func (l *Loader) buildQuestion(spec QuestionSpec, scales map[string]*survey.Scale) (*survey.Question, error) {
	if spec.Column == "" {
		return nil, core.NewConfigurationError("question needs a column")
	}

	var opts []survey.QuestionOption
	if spec.Name != "" {
		opts = append(opts, survey.QuestionColumn(spec.Name))
	}
	if spec.Description != "" {
		opts = append(opts, survey.QuestionDescription(spec.Description))
	}
	if spec.Breakdown {
		opts = append(opts, survey.ForBreakdown())
	}
	if spec.Scale != "" {
		scale, ok := scales[spec.Scale]
		if !ok {
			return nil, core.NewConfigurationError(fmt.Sprintf("question %q references unknown scale %q", spec.Column, spec.Scale))
		}
		opts = append(opts, survey.Scored(scale))
	}

	q := survey.NewQuestion(spec.Column, opts...)
	if spec.Filter != "" {
		filter, err := CompileFilter(spec.Filter)
		if err != nil {
			return nil, err
		}
		q.AddFilter(filter)
	}
	return q, nil
}

func (l *Loader) buildDimension(spec DimensionSpec) (*survey.Dimension, error) {
	if spec.Column == "" {
		return nil, core.NewConfigurationError("dimension needs a column")
	}

	var opts []survey.DimensionOption
	if spec.Name != "" {
		opts = append(opts, survey.DimensionColumn(spec.Name))
	}
	if spec.Description != "" {
		opts = append(opts, survey.DimensionDescription(spec.Description))
	}
	if spec.Test != "" {
		test, ok := l.tests[spec.Test]
		if !ok {
			return nil, core.NewConfigurationError(fmt.Sprintf("dimension %q references unknown test %q", spec.Column, spec.Test))
		}
		opts = append(opts, survey.BreakdownBy(test))
	}

	d := survey.NewDimension(spec.Column, opts...)
	if spec.Filter != "" {
		filter, err := CompileFilter(spec.Filter)
		if err != nil {
			return nil, err
		}
		d.AddFilter(filter)
	}
	return d, nil
}
