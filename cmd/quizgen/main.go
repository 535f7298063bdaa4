// Package main implements the quizgen command line tool, which reads terms
// or problem descriptions from a CSV file or Google Sheet, generates
// flashcard definitions through the Gemini API, and writes a Quizlet-ready
// CSV.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quizgen/quizgen/internal/config"
	"github.com/quizgen/quizgen/internal/generation"
	"github.com/quizgen/quizgen/internal/output"
	"github.com/quizgen/quizgen/internal/platform/gemini"
	"github.com/quizgen/quizgen/internal/platform/logger"
	"github.com/quizgen/quizgen/internal/prompt"
	"github.com/quizgen/quizgen/internal/source"
)

// options holds the parsed command line flags for one run.
type options struct {
	csvPath          string
	sheetsRef        string
	column           string
	outputPath       string
	promptType       string
	sheetName        string
	envFile          string
	batchSize        int
	generateKeywords bool
	testAPI          bool
	info             bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "quizgen",
		Short: "Generate Quizlet cards from CSV or Google Sheets using Gemini AI",
		Example: `  # Generate from a local CSV file
  quizgen --csv data.csv --column terms --output quiz.csv

  # Generate from Google Sheets
  quizgen --sheets "https://docs.google.com/spreadsheets/d/ABC123" --column words

  # Use algorithm-specific prompts
  quizgen --csv algorithms.csv --column problems --prompt-type algorithm

  # Generate keywords from problem descriptions (LeetCode mode)
  quizgen --csv descriptions.csv --column problem_desc --prompt-type leetcode --generate-keywords`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.csvPath, "csv", "", "path to local CSV file")
	flags.StringVar(&opts.sheetsRef, "sheets", "", "Google Sheets URL or ID")
	flags.StringVar(&opts.column, "column", "", "column name to extract terms from")
	flags.StringVar(&opts.outputPath, "output", "quizlet_cards.csv", "output CSV file path")
	flags.StringVar(&opts.promptType, "prompt-type", "general",
		fmt.Sprintf("prompt type for content generation (%s)", strings.Join(prompt.AvailableTypes(), ", ")))
	flags.BoolVar(&opts.generateKeywords, "generate-keywords", false,
		"generate keywords from descriptions (useful for LeetCode problems)")
	flags.StringVar(&opts.sheetName, "sheet-name", "", "specific sheet tab name (default: first sheet)")
	flags.StringVar(&opts.envFile, "env-file", "", "path to .env file (default: .env in current directory)")
	flags.IntVar(&opts.batchSize, "batch-size", 0, "items per batch (default: from env or 5)")
	flags.BoolVar(&opts.testAPI, "test-api", false, "test API connections and exit")
	flags.BoolVar(&opts.info, "info", false, "show information about the input source and exit")

	return cmd
}

// run executes one invocation end to end.
func run(ctx context.Context, opts *options) error {
	cfg, err := config.Load(opts.envFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.Setup(cfg.Log)

	// The flag overrides whatever the environment configured.
	if opts.batchSize > 0 {
		cfg.LLM.BatchSize = opts.batchSize
	}

	if opts.testAPI {
		return runTestAPI(ctx, cfg, log, opts)
	}

	if err := validateSourceFlags(opts); err != nil {
		return err
	}

	src, err := buildSource(cfg, opts)
	if err != nil {
		return err
	}

	if opts.info {
		return runInfo(ctx, src)
	}

	return runGenerate(ctx, cfg, log, src, opts)
}

// validateSourceFlags enforces that exactly one input source is named.
func validateSourceFlags(opts *options) error {
	if opts.csvPath == "" && opts.sheetsRef == "" {
		return errors.New("an input source is required: use --csv or --sheets")
	}
	if opts.csvPath != "" && opts.sheetsRef != "" {
		return errors.New("--csv and --sheets are mutually exclusive")
	}
	return nil
}

// buildSource constructs the input adapter for the selected source.
func buildSource(cfg *config.Config, opts *options) (source.Source, error) {
	if opts.csvPath != "" {
		return source.NewCSVSource(opts.csvPath)
	}

	if err := cfg.RequireSheetsCredentials(); err != nil {
		return nil, err
	}
	return source.NewSheetsSource(
		opts.sheetsRef,
		opts.sheetName,
		cfg.Sheets.CredentialsPath,
		cfg.Sheets.TokenPath,
	)
}

// runTestAPI verifies the Gemini connection and, when credentials are
// configured, the Google Sheets connection.
func runTestAPI(ctx context.Context, cfg *config.Config, log *slog.Logger, opts *options) error {
	fmt.Println("Testing API connections...")

	if err := cfg.RequireAPIKey(); err != nil {
		return err
	}

	client, err := gemini.NewClient(ctx, log, cfg.LLM)
	if err != nil {
		return err
	}

	if err := client.TestConnection(ctx); err != nil {
		fmt.Println("✗ Gemini API connection failed")
		return err
	}
	fmt.Println("✓ Gemini API connection successful")

	if cfg.Sheets.CredentialsPath == "" {
		fmt.Println("- Google Sheets API credentials not configured (optional)")
		return nil
	}

	if opts.sheetsRef == "" {
		fmt.Println("- Google Sheets credentials configured (pass --sheets to test against a spreadsheet)")
		return nil
	}

	src, err := source.NewSheetsSource(opts.sheetsRef, "", cfg.Sheets.CredentialsPath, cfg.Sheets.TokenPath)
	if err != nil {
		return err
	}
	if _, err := src.Info(ctx); err != nil {
		fmt.Printf("- Google Sheets API connection failed: %v\n", err)
		return nil
	}
	fmt.Println("✓ Google Sheets API connection successful")
	return nil
}

// runInfo prints the input's sheets and columns.
func runInfo(ctx context.Context, src source.Source) error {
	info, err := src.Info(ctx)
	if err != nil {
		return fmt.Errorf("error getting input info: %w", err)
	}

	fmt.Printf("Input: %s\n", info.Title)
	for _, sheet := range info.Sheets {
		fmt.Printf("  Sheet: %s\n", sheet.Name)
		if len(sheet.Headers) > 0 {
			fmt.Printf("    Columns: %s\n", strings.Join(sheet.Headers, ", "))
		} else {
			fmt.Println("    No headers found")
		}
	}
	return nil
}

// runGenerate is the main pipeline: read the column, generate cards in
// batches, write the output CSV.
func runGenerate(ctx context.Context, cfg *config.Config, log *slog.Logger, src source.Source, opts *options) error {
	if opts.column == "" {
		return errors.New("--column is required")
	}

	promptType, err := prompt.ParseType(opts.promptType)
	if err != nil {
		return err
	}

	fmt.Printf("Loading data from %s...\n", sourceLabel(opts))
	terms, err := src.ReadColumn(ctx, opts.column)
	if err != nil {
		return fmt.Errorf("error loading input data: %w", err)
	}
	if len(terms) == 0 {
		return fmt.Errorf("no data found in column %q", opts.column)
	}
	fmt.Printf("Loaded %d items from column %q\n", len(terms), opts.column)

	if err := cfg.RequireAPIKey(); err != nil {
		return err
	}

	client, err := gemini.NewClient(ctx, log, cfg.LLM)
	if err != nil {
		return err
	}

	orchestrator, err := generation.NewOrchestrator(client, cfg.LLM, log)
	if err != nil {
		return err
	}

	fmt.Printf("Generating content for %d items...\n", len(terms))

	var result *generation.Result
	if opts.generateKeywords {
		result, err = orchestrator.GenerateFromDescriptions(ctx, terms)
	} else {
		result, err = orchestrator.GenerateCards(ctx, terms, promptType)
	}
	if err != nil {
		return fmt.Errorf("error generating content: %w", err)
	}

	if err := output.WriteCards(opts.outputPath, result.Cards); err != nil {
		return err
	}

	fmt.Printf("✓ Successfully generated %d Quizlet cards\n", len(result.Cards))
	if result.Degraded > 0 {
		fmt.Printf("! %d cards carry an error marker instead of a definition\n", result.Degraded)
	}
	fmt.Printf("✓ Output written to: %s\n", opts.outputPath)
	return nil
}

func sourceLabel(opts *options) string {
	if opts.csvPath != "" {
		return "CSV file"
	}
	return "Google Sheets"
}
