// Package ui serves survey analysis over HTTP.
package ui

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"gosurvey/domain/survey"
	"gosurvey/internal"
	"gosurvey/internal/report"
)

// App exposes a processed survey over a small JSON and HTML API.
type App struct {
	router   *chi.Mux
	survey   *survey.Survey
	renderer *report.Renderer
	logger   *internal.Logger
}

// Config holds UI application configuration.
type Config struct {
	Title string
	Alpha float64
}

// NewApp creates the application around a configured survey. The survey
// is processed here, before the first request: handlers run concurrently
// and may only read, never trigger processing.
func NewApp(s *survey.Survey, cfg Config, logger *internal.Logger) (*App, error) {
	if logger == nil {
		logger = internal.NewDefaultLogger()
	}
	if err := s.Process(); err != nil {
		return nil, fmt.Errorf("processing survey: %w", err)
	}
	renderer := report.NewRenderer(cfg.Title)
	if cfg.Alpha > 0 {
		renderer.Alpha = cfg.Alpha
	}

	app := &App{
		router:   chi.NewRouter(),
		survey:   s,
		renderer: renderer,
		logger:   logger,
	}
	app.setupMiddleware()
	app.setupRoutes()
	return app, nil
}

// Router returns the HTTP handler for mounting or serving.
func (a *App) Router() http.Handler {
	return a.router
}

func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

func (a *App) setupRoutes() {
	a.router.Get("/health", a.handleHealth)
	a.router.Get("/summary", a.handleSummary)
	a.router.Get("/data", a.handleData)
	a.router.Get("/breakdowns", a.handleBreakdowns)
	a.router.Get("/report", a.handleReport)
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *App) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := a.survey.Summary()
	if err != nil {
		a.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(summary))
}

func (a *App) handleData(w http.ResponseWriter, r *http.Request) {
	data, err := a.survey.Data()
	if err != nil {
		a.fail(w, err)
		return
	}
	if data == nil {
		writeJSON(w, http.StatusOK, [][]string{})
		return
	}
	writeJSON(w, http.StatusOK, data.Records())
}

func (a *App) handleBreakdowns(w http.ResponseWriter, r *http.Request) {
	breakdown, err := a.survey.BreakdownByDimensions(r.Context())
	if err != nil {
		a.fail(w, err)
		return
	}

	type entry struct {
		Dimension string  `json:"dimension"`
		Test      string  `json:"test"`
		Statistic float64 `json:"statistic"`
		PValue    float64 `json:"p_value"`
	}
	out := make(map[string][]entry, len(breakdown))
	for question, results := range breakdown {
		entries := make([]entry, 0, len(results))
		for _, result := range results {
			entries = append(entries, entry{
				Dimension: result.IndependentLabel(),
				Test:      result.TestName(),
				Statistic: result.TestStatistic(),
				PValue:    result.PValue(),
			})
		}
		out[question] = entries
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *App) handleReport(w http.ResponseWriter, r *http.Request) {
	breakdown, err := a.survey.BreakdownByDimensions(r.Context())
	if err != nil {
		a.fail(w, err)
		return
	}
	page, err := a.renderer.RenderHTML(a.survey, breakdown)
	if err != nil {
		a.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

func (a *App) fail(w http.ResponseWriter, err error) {
	a.logger.Error("request failed: %v", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
