package provider

import (
	"fmt"
	"strings"
	"sync"

	"authorscan/internal/model"
)

// Spec describes one browser-only detection provider page: where it
// lives, which controls accept the sample, and how its rendered result
// is recognized and read back.
type Spec struct {
	Name string `yaml:"name"`

	// URL is the page the session navigates to
	URL string `yaml:"url"`

	// InputSelector locates the control that accepts the text sample
	InputSelector string `yaml:"input_selector"`

	// SubmitSelector locates the control that starts the scan
	SubmitSelector string `yaml:"submit_selector"`

	// ResultSelector matches the container rendered when the scan is done
	ResultSelector string `yaml:"result_selector"`

	// RateLimitSelector matches the element rendered when the provider
	// refuses the scan because the daily quota is exhausted
	RateLimitSelector string `yaml:"rate_limit_selector"`

	// Per-span attribute names inside the result container
	WordCountAttr   string `yaml:"word_count_attr"`
	ProbabilityAttr string `yaml:"probability_attr"`
	HumanMarkerAttr string `yaml:"human_marker_attr"`
}

// Validate checks that the spec carries everything a scan needs
func (s *Spec) Validate() error {
	switch {
	case s.Name == "":
		return fmt.Errorf("provider spec: name is required")
	case s.URL == "":
		return fmt.Errorf("provider %s: url is required", s.Name)
	case s.InputSelector == "" || s.SubmitSelector == "":
		return fmt.Errorf("provider %s: input and submit selectors are required", s.Name)
	case s.ResultSelector == "" || s.RateLimitSelector == "":
		return fmt.Errorf("provider %s: result and rate-limit selectors are required", s.Name)
	case s.WordCountAttr == "" || s.ProbabilityAttr == "":
		return fmt.Errorf("provider %s: word-count and probability attributes are required", s.Name)
	}
	return nil
}

// Registry manages known provider specs
type Registry struct {
	mu    sync.RWMutex
	specs map[string]*Spec
}

// NewRegistry creates a registry with the built-in providers registered
func NewRegistry() *Registry {
	r := &Registry{specs: make(map[string]*Spec)}
	r.Register(Copyleaks())
	return r
}

// Register adds or replaces a provider spec
func (r *Registry) Register(spec *Spec) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.specs[strings.ToLower(spec.Name)] = spec
}

// Find returns the spec registered under the given name
func (r *Registry) Find(name string) (*Spec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	spec, ok := r.specs[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown provider: %s (registered: %s)", name, strings.Join(r.names(), ", "))
	}
	return spec, nil
}

func (r *Registry) names() []string {
	names := make([]string, 0, len(r.specs))
	for name := range r.specs {
		names = append(names, name)
	}
	return names
}

// FromConfig resolves the provider spec named in the configuration,
// applying any per-scan overrides.
func FromConfig(cfg model.ProviderConfig) (*Spec, error) {
	spec, err := NewRegistry().Find(cfg.Name)
	if err != nil {
		return nil, err
	}

	// Copy before applying overrides so the registry entry stays pristine
	resolved := *spec
	if cfg.URL != "" {
		resolved.URL = cfg.URL
	}

	if err := resolved.Validate(); err != nil {
		return nil, err
	}
	return &resolved, nil
}
