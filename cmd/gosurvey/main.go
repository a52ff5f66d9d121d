package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"gosurvey/adapters/declarative"
	"gosurvey/adapters/postgres"
	"gosurvey/adapters/tabular"
	"gosurvey/adapters/workday"
	"gosurvey/domain/survey"
	"gosurvey/internal"
	"gosurvey/internal/config"
	"gosurvey/internal/report"
	"gosurvey/ports"
	"gosurvey/ui"
)

func main() {
	// .env is optional; real deployments use environment variables
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "gosurvey",
		Short: "Analyze survey responses with scales, dimensions, and statistical breakdowns",
	}

	rootCmd.AddCommand(
		newAnalyzeCmd(),
		newServeCmd(),
		newFetchCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newAnalyzeCmd() *cobra.Command {
	var definitionFile string
	var title string
	var save bool

	cmd := &cobra.Command{
		Use:   "analyze [responses-file]",
		Short: "Run a survey definition against a response file and print a markdown report",
		Long: `Load responses from a CSV or XLSX file, apply a YAML survey definition,
and print the breakdown report as markdown.

Example: gosurvey analyze responses.csv --definition survey.yaml --save`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd.Context(), args[0], definitionFile, title, save)
		},
	}

	cmd.Flags().StringVar(&definitionFile, "definition", "survey.yaml", "YAML survey definition file")
	cmd.Flags().StringVar(&title, "title", "Survey Report", "Report title, also used as the survey name when saving")
	cmd.Flags().BoolVar(&save, "save", false, "Persist breakdown results to the configured database")

	return cmd
}

func newServeCmd() *cobra.Command {
	var definitionFile string
	var responsesFile string
	var title string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve survey analysis over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(definitionFile, responsesFile, title)
		},
	}

	cmd.Flags().StringVar(&definitionFile, "definition", "survey.yaml", "YAML survey definition file")
	cmd.Flags().StringVar(&responsesFile, "responses", "", "CSV or XLSX response file (defaults to RESPONSE_FILE)")
	cmd.Flags().StringVar(&title, "title", "Survey Report", "Report title")

	return cmd
}

func newFetchCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download a Workday report and save it as a response file",
		Long: `Fetch the JSON custom report configured through WORKDAY_REPORT_URL and
write it to a local CSV or XLSX file for later analysis.

Example: gosurvey fetch --out responses.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd.Context(), out)
		},
	}

	cmd.Flags().StringVar(&out, "out", "responses.csv", "Output file path")

	return cmd
}

func buildSurvey(definitionFile, responsesFile string) (*survey.Survey, error) {
	reader, err := tabular.NewReader(responsesFile)
	if err != nil {
		return nil, err
	}
	responses, err := reader.Read()
	if err != nil {
		return nil, err
	}

	columns, err := declarative.NewLoader().LoadFile(definitionFile)
	if err != nil {
		return nil, err
	}

	s := survey.NewSurvey().Responses(responses)
	if err := s.AddColumns(columns...); err != nil {
		return nil, err
	}
	return s, nil
}

func runAnalyze(ctx context.Context, responsesFile, definitionFile, title string, save bool) error {
	logger := internal.NewDefaultLogger()
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	s, err := buildSurvey(definitionFile, responsesFile)
	if err != nil {
		return err
	}

	breakdown, err := s.BreakdownByDimensions(ctx)
	if err != nil {
		return err
	}

	renderer := report.NewRenderer(title)
	renderer.Alpha = cfg.Data.Alpha
	md, err := renderer.Render(s, breakdown)
	if err != nil {
		return err
	}
	fmt.Println(md)

	if !save {
		return nil
	}
	if cfg.Database.URL == "" {
		return fmt.Errorf("--save needs DATABASE_URL to be set")
	}

	db, err := postgres.Connect(ctx, cfg.Database.URL)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := postgres.EnsureSchema(ctx, db); err != nil {
		return err
	}
	repo := postgres.NewResultRepository(db)
	for _, results := range breakdown {
		for _, result := range results {
			record := ports.NewBreakdownRecord(title, result)
			if err := repo.SaveResult(ctx, record); err != nil {
				return err
			}
			logger.Info("saved breakdown %s x %s (p=%.4f)", record.Question, record.Dimension, record.PValue)
		}
	}
	return nil
}

func runServe(definitionFile, responsesFile, title string) error {
	logger := internal.NewDefaultLogger()
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if responsesFile == "" {
		responsesFile = cfg.Data.ResponseFile
	}
	if responsesFile == "" {
		return fmt.Errorf("no response file: pass --responses or set RESPONSE_FILE")
	}

	s, err := buildSurvey(definitionFile, responsesFile)
	if err != nil {
		return err
	}

	app, err := ui.NewApp(s, ui.Config{Title: title, Alpha: cfg.Data.Alpha}, logger)
	if err != nil {
		return err
	}
	logger.Info("listening on :%s", cfg.Server.Port)
	return http.ListenAndServe(":"+cfg.Server.Port, app.Router())
}

func runFetch(ctx context.Context, out string) error {
	logger := internal.NewDefaultLogger()
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.Workday.ReportURL == "" {
		return fmt.Errorf("WORKDAY_REPORT_URL is not set")
	}

	client := workday.NewClient(cfg.Workday.User, cfg.Workday.Password)
	responses, err := client.FetchReport(ctx, cfg.Workday.ReportURL)
	if err != nil {
		return err
	}
	logger.Info("fetched %d rows, %d columns", responses.NumRows(), responses.NumColumns())

	writer, err := tabular.NewWriter(out)
	if err != nil {
		return err
	}
	return writer.Write(responses)
}
