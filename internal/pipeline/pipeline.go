package pipeline

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"authorscan/internal/extract"
	"authorscan/internal/llm"
	"authorscan/internal/model"
	"authorscan/internal/present"
	"authorscan/internal/provider"
	"authorscan/internal/score"
	"authorscan/internal/validate"
)

// Pipeline orchestrates one complete detection: open a browser
// session, submit the sample, poll for a terminal page condition,
// parse the rendered spans, validate and aggregate them, and derive
// the presentation. Each invocation owns a fresh session; there is no
// cross-invocation state.
type Pipeline struct {
	opener     SessionOpener
	spec       *provider.Spec
	poller     *Poller
	extractor  *extract.ResultExtractor
	validator  *validate.Validator
	aggregator *score.Aggregator
	renderer   *Renderer
	explainer  *llm.Explainer // Optional LLM explainer (nil if disabled)
	config     *model.Config
}

// NewPipeline creates a pipeline for the given provider spec and
// session opener
func NewPipeline(cfg *model.Config, spec *provider.Spec, opener SessionOpener) *Pipeline {
	var explainer *llm.Explainer
	if cfg.LLM.Provider != "" {
		e, err := llm.NewExplainer(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize LLM provider: %v\n", err)
		} else {
			explainer = e
		}
	}

	return &Pipeline{
		opener:     opener,
		spec:       spec,
		poller:     NewPoller(cfg.Poll.Rounds, cfg.Poll.ProbeTimeout),
		extractor:  extract.NewResultExtractor(spec),
		validator:  validate.NewValidator(),
		aggregator: score.NewAggregator(),
		renderer:   NewRenderer(cfg.Output.IncludeFooter),
		explainer:  explainer,
		config:     cfg,
	}
}

// Detect runs the sample through the provider and returns the full
// report. Blocking: the caller offloads it off any event loop. The
// browser session is released on every exit path, including
// cancellation mid-poll.
func (p *Pipeline) Detect(ctx context.Context, text string) (*model.Report, error) {
	started := time.Now()

	session, err := p.opener.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("open session: %w", err)
	}
	defer func() { _ = session.Close() }()

	if err := session.Navigate(ctx, p.spec.URL); err != nil {
		return nil, fmt.Errorf("navigate: %w", err)
	}

	if err := session.SubmitText(ctx, p.spec.InputSelector, p.spec.SubmitSelector, text); err != nil {
		return nil, fmt.Errorf("submit sample: %w", err)
	}

	outcome, err := p.poller.Poll(ctx, session, p.spec)
	if err != nil {
		return nil, fmt.Errorf("poll: %w", err)
	}

	switch outcome.State {
	case StateRateLimited:
		return nil, ErrRateLimited
	case StateTimedOut:
		return nil, ErrTimedOut
	}

	markup, err := session.PageMarkup()
	if err != nil {
		return nil, fmt.Errorf("read result page: %w", err)
	}

	extracted, ok := p.extractor.Extract(markup)
	if !ok {
		// The poller saw the result container; its absence now breaks
		// the ready-page invariant
		return nil, &ParseError{Reason: "result container missing on a ready page"}
	}

	leaves, dropped := p.validator.Clean(extracted.Leaves)

	overall, ok := p.aggregator.Aggregate(leaves, extracted.ContainerText)
	if !ok {
		return nil, ErrNoScoredWords
	}

	report := &model.Report{
		Subject:   subjectOf(text),
		Provider:  p.spec.Name,
		ScannedAt: time.Now().UTC(),
		Session: model.SessionMeta{
			ProviderURL: p.spec.URL,
			PollRounds:  outcome.Rounds,
			ElapsedMS:   time.Since(started).Milliseconds(),
		},
		Overall:      overall,
		Presentation: present.Derive(overall),
		Dropped:      dropped,
	}

	// Explanation comes last and never affects the judgment
	if p.explainer != nil && p.explainer.IsEnabled() {
		explanation, err := p.explainer.Explain(ctx, report)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: LLM explanation failed: %v\n", err)
		} else if explanation != nil {
			report.LLM = explanation
		}
	}

	return report, nil
}

// Renderer exposes the pipeline's report renderer
func (p *Pipeline) Renderer() *Renderer {
	return p.renderer
}

// subjectOf derives a short report subject from the sample text
func subjectOf(text string) string {
	words := strings.Fields(text)
	if len(words) > 8 {
		words = words[:8]
	}
	subject := strings.Join(words, " ")
	if len(subject) > 60 {
		subject = subject[:60]
	}
	return subject
}
