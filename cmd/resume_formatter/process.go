package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-formatter/internal/config"
	"github.com/jonathan/resume-formatter/internal/extraction"
	"github.com/jonathan/resume-formatter/internal/llm"
	"github.com/jonathan/resume-formatter/internal/pipeline"
)

var processCommand = &cobra.Command{
	Use:   "process [files...]",
	Short: "Run the formatting pipeline over one or more resume text files",
	Long: `Each input file is processed as an independent pipeline run: PII scrub -> extraction -> mapping -> normalization -> enrichment -> resume.json + resume.md in a stamped run directory.

Multiple files run in parallel, one pipeline instance per document.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runProcessCmd,
}

var (
	processOut       string
	processName      string
	processTitle     string
	processLevel     string
	processHonorific string
	processAPIKey    string
	processVerbose   bool
)

func init() {
	processCommand.Flags().StringVarP(&processOut, "out", "o", "", "Base output directory for run directories (default \"output\")")
	processCommand.Flags().StringVarP(&processName, "name", "n", "", "Candidate name override")
	processCommand.Flags().StringVar(&processTitle, "title", "", "Candidate title override (skips seniority inference)")
	processCommand.Flags().StringVar(&processLevel, "level", "", "Experience level override, e.g. Senior or SME (skips seniority inference)")
	processCommand.Flags().StringVar(&processHonorific, "honorific", "", "Honorific for the summary, Mr. or Ms. (default from config, else Mr.)")
	processCommand.Flags().StringVar(&processAPIKey, "api-key", "", "Gemini API key (optional, defaults to "+config.EnvAPIKey+" env var or saved config)")
	processCommand.Flags().BoolVarP(&processVerbose, "verbose", "v", false, "Print per-stage progress")

	rootCmd.AddCommand(processCommand)
}

func runProcessCmd(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	honorific, err := cfg.ResolveHonorific(processHonorific)
	if err != nil {
		return err
	}

	apiKey := processAPIKey
	if apiKey == "" {
		apiKey = cfg.ResolveAPIKey()
	}
	if apiKey == "" {
		return fmt.Errorf("no API key configured: pass --api-key, set %s, or run 'resume_formatter set-key'", config.EnvAPIKey)
	}

	outputDir := processOut
	if outputDir == "" {
		outputDir = cfg.OutputDir
	}
	if outputDir == "" {
		outputDir = "output"
	}

	logger := zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = os.Stderr
	})).With().Timestamp().Logger()
	if !processVerbose {
		logger = logger.Level(zerolog.WarnLevel)
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return fmt.Errorf("failed to create judgment-service client: %w", err)
	}
	handle := llm.NewHandle(client)
	defer func() { _ = client.Close() }()

	extractor := extraction.NewServiceExtractor(client)

	// One pipeline instance per document, no shared record state.
	g, ctx := errgroup.WithContext(ctx)
	for _, path := range args {
		path := path
		g.Go(func() error {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}

			result, err := pipeline.Run(ctx, pipeline.Options{
				RawText:   string(data),
				Handle:    handle,
				Extractor: extractor,
				OutputDir: outputDir,
				Honorific: honorific,
				Overrides: pipeline.Overrides{
					CandidateName:   processName,
					Title:           processTitle,
					ExperienceLevel: processLevel,
				},
				Logger: logger.With().Str("input", path).Logger(),
			})
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			fmt.Printf("%s -> %s\n", path, result.RunDir)
			if len(result.DegradedStages) > 0 {
				fmt.Printf("  degraded stages: %v\n", result.DegradedStages)
			}
			return nil
		})
	}
	return g.Wait()
}
