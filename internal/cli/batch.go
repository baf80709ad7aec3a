package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"authorscan/internal/browser"
	"authorscan/internal/model"
	"authorscan/internal/pipeline"
	"authorscan/internal/provider"
	"authorscan/internal/worker"
)

var (
	concurrency    int
	outputDir      string
	batchTimeout   time.Duration
	scansPerMinute float64
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <list-file>",
	Short: "Scan multiple text samples in parallel",
	Long: `Batch reads sample file paths from a list file (one per line) and
runs each sample through the detector concurrently. Every scan owns a
fresh browser session; the worker count bounds how many run at once,
and the rate limiter keeps the submission rate polite.

Example:
  authorscan batch samples.txt
  authorscan batch samples.txt --workers 4 --output-dir ./reports
  authorscan batch samples.txt --scans-per-minute 10`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "workers", 2, "number of concurrent browser sessions")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./authorscan-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 30*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().Float64Var(&scansPerMinute, "scans-per-minute", 6, "provider-wide scan rate limit (0 disables)")

	// Shared flags from scan
	batchCmd.Flags().StringVar(&providerName, "provider", "copyleaks", "detection provider name")
	batchCmd.Flags().StringVar(&providerURL, "provider-url", "", "override the provider page URL")
	batchCmd.Flags().StringVar(&browserBin, "browser-bin", "", "explicit Chromium binary path")
	batchCmd.Flags().StringVar(&browserProxy, "proxy", "", "proxy server for the browser (overrides env)")
	batchCmd.Flags().IntVar(&minChars, "min-chars", defaultMinSampleChars, "reject samples shorter than this many characters")
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// LLM flags
	batchCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable the LLM report explanation")
	batchCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

func runBatch(cmd *cobra.Command, args []string) error {
	listFile := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("workers") {
		cfg.Concurrency.Workers = concurrency
	}
	if cmd.Flags().Changed("scans-per-minute") {
		cfg.Concurrency.ScansPerMinute = scansPerMinute
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Authorscan Batch Processing\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  List file:    %s\n", listFile)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(os.Stderr, "\n")

	spec, err := provider.FromConfig(cfg.Provider)
	if err != nil {
		return err
	}

	if cfg.LLM.Provider != "" {
		fmt.Fprintf(os.Stderr, "  LLM:          %s/%s\n\n", cfg.LLM.Provider, cfg.LLM.Model)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	detector := &batchDetector{
		pipeline: pipeline.NewPipeline(cfg, spec, browser.NewOpener(cfg.Browser)),
		minChars: minChars,
	}

	processor := worker.NewBatchProcessor(detector, cfg.Concurrency.Workers, cfg.Concurrency.ScansPerMinute/60, 1)
	processor.SetProviderURL(spec.URL)

	fmt.Fprintf(os.Stderr, "⚙️  Reading sample list...\n")
	results, err := processor.ProcessFile(ctx, listFile)
	if err != nil {
		return fmt.Errorf("process list: %w", err)
	}

	fmt.Fprintf(os.Stderr, "✓ Processed %d samples with %d workers\n\n", len(results), cfg.Concurrency.Workers)

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	successCount := 0
	failureCount := 0

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Path, describeScanError(result.Error))
			continue
		}

		successCount++

		slug := sanitizeFilename(result.Path)
		jsonPath := filepath.Join(outputDir, slug+".json")
		mdPath := filepath.Join(outputDir, slug+".md")

		if err := renderer.RenderJSON(result.Report, jsonPath); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write JSON: %v\n", result.Path, err)
			continue
		}
		if err := renderer.RenderMarkdown(result.Report, mdPath); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write Markdown: %v\n", result.Path, err)
			continue
		}

		fmt.Fprintf(os.Stderr, "✓ %s: %s\n", result.Path,
			strings.ReplaceAll(result.Report.Presentation.Label, "\n", " — "))
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d samples\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}

// batchDetector applies the minimum-length policy before dispatching
// to the pipeline. The policy belongs to this layer, not the engine.
type batchDetector struct {
	pipeline *pipeline.Pipeline
	minChars int
}

func (d *batchDetector) Detect(ctx context.Context, text string) (*model.Report, error) {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < d.minChars {
		return nil, fmt.Errorf("sample too short: %d characters (minimum %d)", len(trimmed), d.minChars)
	}
	return d.pipeline.Detect(ctx, trimmed)
}

// sanitizeFilename turns a sample path into a safe report file name
func sanitizeFilename(s string) string {
	s = filepath.Base(s)
	s = strings.TrimSuffix(s, filepath.Ext(s))

	replacer := strings.NewReplacer(
		"/", "_", "\\", "_", ":", "_", "*", "_", "?", "_",
		"\"", "_", "<", "_", ">", "_", "|", "_", " ", "-",
	)
	s = replacer.Replace(s)

	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		s = "sample"
	}

	return s
}
