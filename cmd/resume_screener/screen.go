package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-screener/internal/config"
	"github.com/jonathan/resume-screener/internal/extract"
	"github.com/jonathan/resume-screener/internal/ingestion"
	"github.com/jonathan/resume-screener/internal/observability"
	"github.com/jonathan/resume-screener/internal/pipeline"
)

var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "Screen a resume against a job description",
	Long: `Runs the screening pipeline on a resume document: text extraction,
resume and job structuring, and matching. The result is always a verdict;
provider failures degrade to fallbacks instead of aborting.

The job description comes from exactly one of --jd (file), --jd-text, or
--jd-url.`,
	RunE: runScreen,
}

var (
	screenConfigPath string
	screenResume     string
	screenJDFile     string
	screenJDText     string
	screenJDURL      string
	screenOutput     string
	screenTimeout    time.Duration
	screenVerbose    bool
)

func init() {
	screenCmd.Flags().StringVar(&screenConfigPath, "config", "", "Path to config.json file")
	screenCmd.Flags().StringVarP(&screenResume, "resume", "r", "", "Path to resume file (pdf, docx, doc, png, jpg, jpeg)")
	screenCmd.Flags().StringVarP(&screenJDFile, "jd", "j", "", "Path to job description text file")
	screenCmd.Flags().StringVar(&screenJDText, "jd-text", "", "Job description as inline text")
	screenCmd.Flags().StringVar(&screenJDURL, "jd-url", "", "URL to fetch the job description from")
	screenCmd.Flags().StringVarP(&screenOutput, "output", "o", "", "Write the result JSON to a file")
	screenCmd.Flags().DurationVar(&screenTimeout, "timeout", 5*time.Minute, "Overall pipeline timeout")
	screenCmd.Flags().BoolVarP(&screenVerbose, "verbose", "v", false, "Print intermediate structures and the provider attempt log")

	_ = screenCmd.MarkFlagRequired("resume")
	rootCmd.AddCommand(screenCmd)
}

func runScreen(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(screenConfigPath)
	if err != nil {
		return err
	}

	jobText, err := loadJobDescription(ctx)
	if err != nil {
		return err
	}

	file, err := extract.ReadFile(screenResume)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}
	if err := extract.ValidateFile(file, extract.MaxFileBytes); err != nil {
		return err
	}

	gw, err := cfg.BuildGateway(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = gw.Close() }()

	fmt.Printf("Screening %s...\n", file.Name)
	runner := pipeline.NewRunner(gw, cfg.MatchingPolicy())
	result := runner.Run(ctx, pipeline.Request{
		File:    file,
		JobText: jobText,
		Timeout: screenTimeout,
	})

	printer := observability.NewPrinter(os.Stdout)
	if screenVerbose {
		printer.PrintResume(result.Resume)
		printer.PrintJob(result.Job)
		printer.PrintAttempts(result.Attempts)
	}
	printer.PrintVerdict(result.Verdict)

	if screenOutput != "" {
		if err := writeResult(screenOutput, result); err != nil {
			return err
		}
		fmt.Printf("Result written to %s\n", screenOutput)
	}

	return nil
}

// loadJobDescription resolves the one allowed job description source.
func loadJobDescription(ctx context.Context) (string, error) {
	sources := 0
	for _, s := range []string{screenJDFile, screenJDText, screenJDURL} {
		if s != "" {
			sources++
		}
	}
	if sources == 0 {
		return "", fmt.Errorf("a job description is required: use --jd, --jd-text, or --jd-url")
	}
	if sources > 1 {
		return "", fmt.Errorf("--jd, --jd-text, and --jd-url are mutually exclusive")
	}

	switch {
	case screenJDFile != "":
		return ingestion.JobFromFile(screenJDFile)
	case screenJDURL != "":
		return ingestion.JobFromURL(ctx, screenJDURL)
	default:
		return ingestion.JobFromText(screenJDText)
	}
}

func writeResult(path string, result *pipeline.Result) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write result file: %w", err)
	}
	return nil
}
