package model

import "time"

// Config holds the complete authorscan configuration
type Config struct {
	Provider    ProviderConfig    `yaml:"provider"`
	Browser     BrowserConfig     `yaml:"browser"`
	Poll        PollConfig        `yaml:"poll"`
	Cache       CacheConfig       `yaml:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	LLM         LLMConfig         `yaml:"llm"`
	Output      OutputConfig      `yaml:"output"`
}

// ProviderConfig selects and tunes the detection provider page
type ProviderConfig struct {
	Name          string `yaml:"name"`           // Provider descriptor name (default: "copyleaks")
	URL           string `yaml:"url"`            // Override for the provider page URL
	RespectRobots bool   `yaml:"respect_robots"` // Check robots.txt before navigating
	UserAgent     string `yaml:"user_agent"`     // UA used for the robots.txt preflight
}

// BrowserConfig controls the headless browser session
type BrowserConfig struct {
	Headless          bool          `yaml:"headless"`
	Bin               string        `yaml:"bin"`                // Optional explicit Chromium binary path
	NavigationTimeout time.Duration `yaml:"navigation_timeout"` // Timeout for the initial page load
	Proxy             string        `yaml:"proxy"`              // Proxy server passed to the browser
}

// PollConfig bounds the completion polling loop
type PollConfig struct {
	Rounds       int           `yaml:"rounds"`        // Max probe rounds before giving up
	ProbeTimeout time.Duration `yaml:"probe_timeout"` // Per-probe wait for either page indicator
}

// CacheConfig controls the CLI-level scan result cache.
// The engine itself never caches; one invocation is one fresh session.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Dir     string        `yaml:"dir"`
	TTL     time.Duration `yaml:"ttl"`
}

// ConcurrencyConfig controls batch processing
type ConcurrencyConfig struct {
	Workers        int     `yaml:"workers"`          // Concurrent browser sessions in batch mode
	ScansPerMinute float64 `yaml:"scans_per_minute"` // Provider-wide rate limit in batch mode
}

// LLMConfig configures the optional report explanation
type LLMConfig struct {
	Provider   string `yaml:"provider"` // "openai", "anthropic", "ollama", "" (disabled)
	Model      string `yaml:"model"`
	APIKey     string `yaml:"-"` // Never serialized; read from env
	BaseURL    string `yaml:"base_url"`
	Timeout    int    `yaml:"timeout"` // seconds
	MaxTokens  int    `yaml:"max_tokens"`
	HTTPProxy  string `yaml:"http_proxy"`
	HTTPSProxy string `yaml:"https_proxy"`
}

// OutputConfig controls rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose"`
	IncludeFooter bool `yaml:"include_footer"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderConfig{
			Name:          "copyleaks",
			RespectRobots: false,
			UserAgent:     "authorscan/0.2",
		},
		Browser: BrowserConfig{
			Headless:          true,
			NavigationTimeout: 30 * time.Second,
		},
		Poll: PollConfig{
			Rounds:       10,
			ProbeTimeout: time.Second,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     "",
			TTL:     24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers:        2,
			ScansPerMinute: 6,
		},
		LLM: LLMConfig{
			Provider:  "", // Disabled by default
			Timeout:   30,
			MaxTokens: 500,
		},
		Output: OutputConfig{
			Verbose:       false,
			IncludeFooter: true,
		},
	}
}
