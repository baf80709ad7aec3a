package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"authorscan/internal/model"
)

// Detector runs one text sample through the detection pipeline
type Detector interface {
	Detect(ctx context.Context, text string) (*model.Report, error)
}

// SampleJob scans the text loaded from one sample file
type SampleJob struct {
	Path        string
	Text        string
	Detector    Detector
	Limiter     *Limiter // Optional; nil disables rate limiting
	ProviderURL string
}

// Execute waits for rate-limit clearance, then runs the detection
func (j *SampleJob) Execute(ctx context.Context) Result {
	if j.Limiter != nil {
		if err := j.Limiter.Wait(ctx, j.ProviderURL); err != nil {
			return &SampleResult{Path: j.Path, Error: fmt.Errorf("rate limiter: %w", err)}
		}
	}

	report, err := j.Detector.Detect(ctx, j.Text)
	if err != nil {
		return &SampleResult{Path: j.Path, Error: err}
	}
	return &SampleResult{Path: j.Path, Report: report}
}

// SampleResult is the outcome of one sample scan
type SampleResult struct {
	Path   string
	Report *model.Report
	Error  error
}

// GetError returns the error from the sample result
func (r *SampleResult) GetError() error {
	return r.Error
}

// BatchProcessor scans many sample files concurrently
type BatchProcessor struct {
	detector    Detector
	concurrency int
	limiter     *Limiter
	providerURL string
}

// NewBatchProcessor creates a batch processor. A scansPerSecond of 0
// disables rate limiting.
func NewBatchProcessor(detector Detector, concurrency int, scansPerSecond float64, burst int) *BatchProcessor {
	var limiter *Limiter
	if scansPerSecond > 0 {
		limiter = NewLimiter(scansPerSecond, burst)
	}

	return &BatchProcessor{
		detector:    detector,
		concurrency: concurrency,
		limiter:     limiter,
	}
}

// SetProviderURL sets the URL the rate limiter keys on
func (b *BatchProcessor) SetProviderURL(url string) {
	b.providerURL = url
}

// ProcessSamples scans the given samples concurrently. Each element
// pairs a path (for reporting) with the loaded sample text.
func (b *BatchProcessor) ProcessSamples(ctx context.Context, samples map[string]string) []*SampleResult {
	if len(samples) == 0 {
		return []*SampleResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	for path, text := range samples {
		pool.Submit(&SampleJob{
			Path:        path,
			Text:        text,
			Detector:    b.detector,
			Limiter:     b.limiter,
			ProviderURL: b.providerURL,
		})
	}

	results := pool.Wait()

	sampleResults := make([]*SampleResult, len(results))
	for i, result := range results {
		sampleResults[i] = result.(*SampleResult)
	}

	return sampleResults
}

// ProcessFile reads sample file paths from a list file (one per line)
// and scans each file's contents concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, listPath string) ([]*SampleResult, error) {
	paths, err := ReadPathsFromFile(listPath)
	if err != nil {
		return nil, fmt.Errorf("read sample list: %w", err)
	}

	samples := make(map[string]string, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read sample %s: %w", path, err)
		}
		samples[path] = string(data)
	}

	return b.ProcessSamples(ctx, samples), nil
}

// ReadPathsFromFile reads file paths from a list file, skipping blank
// lines and #-comments and deduplicating
func ReadPathsFromFile(listPath string) ([]string, error) {
	file, err := os.Open(listPath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}
