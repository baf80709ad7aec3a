package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"authorscan/internal/browser"
	"authorscan/internal/cache"
	"authorscan/internal/model"
	"authorscan/internal/pipeline"
	"authorscan/internal/provider"
	"authorscan/internal/util"
)

var (
	outJSON       string
	outMD         string
	timeout       time.Duration
	providerName  string
	providerURL   string
	headful       bool
	browserBin    string
	browserProxy  string
	pollRounds    int
	probeTimeout  time.Duration
	respectRobots bool
	noCache       bool
	cacheDir      string
	noFooter      bool
	minChars      int
	llmEnabled    bool
	llmProvider   string
	llmModel      string
)

// defaultMinSampleChars is the default floor under which a sample is
// rejected before a browser is ever launched. Detection providers
// produce meaningless judgments on tiny samples.
const defaultMinSampleChars = 150

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan [file]",
	Short: "Run one text sample through the AI detector",
	Long: `Scan submits a single text sample to the detection provider and
reports the overall authorship judgment with its span breakdown.

The sample is read from the file argument, or from stdin when no
argument is given.

Example:
  authorscan scan essay.txt
  cat essay.txt | authorscan scan
  authorscan scan essay.txt --json report.json --md report.md
  authorscan scan essay.txt --llm openai --llm-model gpt-4o-mini`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	// Output flags
	scanCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	scanCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	scanCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// Provider/browser flags
	scanCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall scan timeout")
	scanCmd.Flags().StringVar(&providerName, "provider", "copyleaks", "detection provider name")
	scanCmd.Flags().StringVar(&providerURL, "provider-url", "", "override the provider page URL")
	scanCmd.Flags().BoolVar(&headful, "headful", false, "run the browser with a visible window (debugging)")
	scanCmd.Flags().StringVar(&browserBin, "browser-bin", "", "explicit Chromium binary path")
	scanCmd.Flags().StringVar(&browserProxy, "proxy", "", "proxy server for the browser (overrides env)")
	scanCmd.Flags().IntVar(&pollRounds, "poll-rounds", 10, "max completion probe rounds")
	scanCmd.Flags().DurationVar(&probeTimeout, "probe-timeout", time.Second, "per-probe wait for a page indicator")
	scanCmd.Flags().BoolVar(&respectRobots, "respect-robots", false, "check the provider's robots.txt before scanning")
	scanCmd.Flags().IntVar(&minChars, "min-chars", defaultMinSampleChars, "reject samples shorter than this many characters")

	// Cache flags
	scanCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the report cache (force a fresh scan)")
	scanCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "report cache directory (default: $HOME/.authorscan/cache)")

	// LLM flags
	scanCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable the LLM report explanation")
	scanCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	scanCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

func runScan(cmd *cobra.Command, args []string) error {
	text, source, err := readSample(args)
	if err != nil {
		return err
	}
	if len(text) < minChars {
		return fmt.Errorf("sample too short: %d characters (minimum %d)", len(text), minChars)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	spec, err := provider.FromConfig(cfg.Provider)
	if err != nil {
		return err
	}

	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "Scanning: %s (%d characters)\n", source, len(text))
		fmt.Fprintf(os.Stderr, "Provider: %s (%s)\n", spec.Name, spec.URL)
		fmt.Fprintf(os.Stderr, "Timeout: %v\n", timeout)
		fmt.Fprintln(os.Stderr)
	}

	if cfg.Provider.RespectRobots {
		checker := util.NewRobotsChecker(cfg.Provider.UserAgent, 10*time.Second)
		if !checker.IsAllowed(ctx, spec.URL) {
			return fmt.Errorf("provider %s disallows %s via robots.txt", spec.Name, spec.URL)
		}
	}

	// Cache lives at this layer only; the pipeline always scans fresh
	reports := reportCache(cfg)
	if reports != nil {
		if report, found := reports.Get(spec.Name, text); found {
			if cfg.Output.Verbose {
				fmt.Fprintf(os.Stderr, "✓ Report served from cache\n")
			}
			return renderReport(cfg, report)
		}
	}

	p := pipeline.NewPipeline(cfg, spec, browser.NewOpener(cfg.Browser))

	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "⚙️  Launching browser and submitting sample...\n")
	}

	report, err := p.Detect(ctx, text)
	if err != nil {
		return describeScanError(err)
	}

	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "✓ Scored %d words across %d spans in %d poll rounds\n",
			report.Overall.WordCount, len(report.Overall.Parts), report.Session.PollRounds)
		if report.LLM != nil && report.LLM.Enabled {
			fmt.Fprintf(os.Stderr, "✓ Generated explanation using %s/%s\n", report.LLM.Provider, report.LLM.Model)
		}
		fmt.Fprintln(os.Stderr)
	}

	if reports != nil {
		if err := reports.Put(spec.Name, text, report); err != nil && cfg.Output.Verbose {
			fmt.Fprintf(os.Stderr, "Warning: failed to cache report: %v\n", err)
		}
	}

	return renderReport(cfg, report)
}

// readSample loads the sample from the file argument or stdin
func readSample(args []string) (text, source string, err error) {
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("read sample: %w", err)
		}
		return strings.TrimSpace(string(data)), args[0], nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimSpace(string(data)), "stdin", nil
}

// yamlTagNames makes viper decode the config file through the model
// structs' yaml tags
func yamlTagNames(dc *mapstructure.DecoderConfig) {
	dc.TagName = "yaml"
}

// buildConfig assembles the configuration in precedence order:
// defaults, then the config file, then explicit flag overrides. A flag
// only overrides when the user actually set it, so file values survive
// unless contradicted on the command line.
func buildConfig(cmd *cobra.Command) (*model.Config, error) {
	cfg := model.DefaultConfig()

	if err := viper.Unmarshal(cfg, yamlTagNames); err != nil {
		return nil, fmt.Errorf("read configuration: %w", err)
	}

	flags := cmd.Flags()

	if flags.Changed("provider") {
		cfg.Provider.Name = providerName
	}
	if flags.Changed("provider-url") {
		cfg.Provider.URL = providerURL
	}
	if flags.Changed("respect-robots") {
		cfg.Provider.RespectRobots = respectRobots
	}

	if flags.Changed("headful") {
		cfg.Browser.Headless = !headful
	}
	if flags.Changed("browser-bin") {
		cfg.Browser.Bin = browserBin
	}
	if flags.Changed("proxy") {
		cfg.Browser.Proxy = browserProxy
	}
	cfg.Browser.Proxy = util.BrowserProxy(cfg.Browser.Proxy)

	if flags.Changed("poll-rounds") {
		cfg.Poll.Rounds = pollRounds
	}
	if flags.Changed("probe-timeout") {
		cfg.Poll.ProbeTimeout = probeTimeout
	}

	if flags.Changed("no-cache") {
		cfg.Cache.Enabled = !noCache
	}
	if flags.Changed("cache-dir") {
		cfg.Cache.Dir = cacheDir
	}

	cfg.Output.Verbose = cfg.Output.Verbose || verbose
	if flags.Changed("no-footer") {
		cfg.Output.IncludeFooter = !noFooter
	}

	// The file may enable the explanation on its own; --llm enables it
	// with the flag-selected provider, --llm=false disables either way
	if flags.Changed("llm-provider") {
		cfg.LLM.Provider = llmProvider
	}
	if flags.Changed("llm-model") {
		cfg.LLM.Model = llmModel
	}
	if llmEnabled && cfg.LLM.Provider == "" {
		cfg.LLM.Provider = llmProvider
	}
	if flags.Changed("llm") && !llmEnabled {
		cfg.LLM.Provider = ""
	}

	switch cfg.LLM.Provider {
	case "":
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}

	return cfg, nil
}

// reportCache builds the layered report cache, or nil when disabled
func reportCache(cfg *model.Config) *cache.ReportCache {
	if !cfg.Cache.Enabled {
		return nil
	}

	dir := cfg.Cache.Dir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		dir = filepath.Join(home, ".authorscan", "cache")
	}

	backend := cache.NewLayeredCache(cfg.Cache.TTL, dir, cfg.Cache.TTL)
	return cache.NewReportCache(backend, cfg.Cache.TTL)
}

// renderReport writes the requested outputs and the stdout summary
func renderReport(cfg *model.Config, report *model.Report) error {
	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)

	if outJSON != "" {
		if err := renderer.RenderJSON(report, outJSON); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if cfg.Output.Verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", outJSON)
		}
	}

	if outMD != "" {
		if err := renderer.RenderMarkdown(report, outMD); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if cfg.Output.Verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote Markdown: %s\n", outMD)
		}
	}

	renderer.RenderSummary(report)
	return nil
}

// describeScanError maps pipeline outcomes onto actionable messages
func describeScanError(err error) error {
	switch {
	case errors.Is(err, pipeline.ErrRateLimited):
		return fmt.Errorf("the provider's daily scan limit has been reached; try again tomorrow")
	case errors.Is(err, pipeline.ErrTimedOut):
		return fmt.Errorf("the provider did not finish the scan in time; try again later")
	case errors.Is(err, pipeline.ErrNoScoredWords):
		return fmt.Errorf("the provider returned no scored spans for this sample")
	default:
		return fmt.Errorf("scan failed: %w", err)
	}
}
