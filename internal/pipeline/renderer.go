package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"authorscan/internal/model"
	"authorscan/internal/present"
)

// Renderer writes reports as JSON, Markdown, and a stdout summary
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a new renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the report as indented JSON
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// RenderMarkdown writes a human-readable Markdown report with the
// overall judgment followed by the span-by-span breakdown
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# AI Detection Report: %s\n\n", report.Subject)
	fmt.Fprintf(&b, "- Provider: %s\n", report.Provider)
	fmt.Fprintf(&b, "- Scanned: %s\n", report.ScannedAt.Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(&b, "- Words scored: %d\n", report.Overall.WordCount)
	if report.Dropped > 0 {
		fmt.Fprintf(&b, "- Spans dropped during validation: %d\n", report.Dropped)
	}
	fmt.Fprintf(&b, "\n## Overall\n\n%s\n\n", strings.ReplaceAll(report.Presentation.Label, "\n", " — "))
	fmt.Fprintf(&b, "%s\n\n", report.Presentation.Summary)

	if len(report.Overall.Parts) > 0 {
		fmt.Fprintf(&b, "## Breakdown\n\n")
		fmt.Fprintf(&b, "| Words | Analysis | Text |\n")
		fmt.Fprintf(&b, "|-------|----------|------|\n")
		for _, part := range report.Overall.Parts {
			fmt.Fprintf(&b, "| %d | %s | %s |\n",
				part.WordCount,
				strings.ReplaceAll(present.Label(part), "\n", " — "),
				strings.ReplaceAll(present.Summary(part), "\n", " "))
		}
		fmt.Fprintf(&b, "\n")
	}

	if report.LLM != nil && report.LLM.Enabled {
		fmt.Fprintf(&b, "## Explanation (%s/%s)\n\n%s\n\n", report.LLM.Provider, report.LLM.Model, report.LLM.Text)
	}

	if r.includeFooter {
		fmt.Fprintf(&b, "---\n\nGenerated by authorscan. The judgment reflects the provider's span classifications, not ground truth.\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// RenderSummary prints the overall judgment to stdout
func (r *Renderer) RenderSummary(report *model.Report) {
	fmt.Printf("\n%s\n", strings.ReplaceAll(report.Presentation.Label, "\n", " — "))
	fmt.Printf("%s\n", strings.ReplaceAll(report.Presentation.Summary, "\n", ": "))
	fmt.Printf("Classification color: #%06X\n", report.Presentation.Color)
	if report.FromCache {
		fmt.Printf("(served from cache)\n")
	}
}
