package extract

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"authorscan/internal/model"
	"authorscan/internal/provider"
)

// ResultExtractor converts a completed result page into per-span
// authorship judgments using the provider's span attributes.
type ResultExtractor struct {
	spec *provider.Spec
}

// NewResultExtractor creates an extractor for the given provider
func NewResultExtractor(spec *provider.Spec) *ResultExtractor {
	return &ResultExtractor{spec: spec}
}

// Extracted is the parsed content of the result container
type Extracted struct {
	// Leaves are the per-span judgments in document order
	Leaves []model.Result

	// ContainerText is the trimmed text of the whole result container,
	// used as the aggregate judgment's text
	ContainerText string
}

// Extract parses the page markup and reads every scored span inside
// the result container. The container must exist: the poller only
// reports a ready page after seeing it. Returns (nil, false) when the
// container is absent so the caller can flag the invariant violation.
func (e *ResultExtractor) Extract(markup string) (*Extracted, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, false
	}

	container := doc.Find(e.spec.ResultSelector).First()
	if container.Length() == 0 {
		return nil, false
	}

	var leaves []model.Result
	container.Find("span").Each(func(_ int, span *goquery.Selection) {
		leaf, ok := e.parseSpan(span)
		if !ok {
			// Spans without the scoring attributes carry no judgment
			// (layout markup, loading placeholders). Partial data is
			// fine: aggregation tolerates a subset of spans.
			return
		}
		leaves = append(leaves, leaf)
	})

	return &Extracted{
		Leaves:        leaves,
		ContainerText: strings.TrimSpace(container.Text()),
	}, true
}

// parseSpan reads one span's word count, probability, and author class
func (e *ResultExtractor) parseSpan(span *goquery.Selection) (model.Result, bool) {
	rawWords, ok := span.Attr(e.spec.WordCountAttr)
	if !ok {
		return model.Result{}, false
	}
	words, err := strconv.Atoi(strings.TrimSpace(rawWords))
	if err != nil {
		return model.Result{}, false
	}

	rawProbability, ok := span.Attr(e.spec.ProbabilityAttr)
	if !ok {
		return model.Result{}, false
	}
	probability, err := strconv.ParseFloat(strings.TrimSpace(rawProbability), 64)
	if err != nil {
		return model.Result{}, false
	}

	prediction := model.AuthorArtificialIntelligence
	if _, ok := span.Attr(e.spec.HumanMarkerAttr); ok {
		prediction = model.AuthorHuman
	}

	return model.Result{
		Prediction: prediction,
		Confidence: probability,
		WordCount:  words,
		Text:       strings.TrimSpace(span.Text()),
	}, true
}
