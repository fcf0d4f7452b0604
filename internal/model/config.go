package model

import "time"

// Config holds the complete triplex configuration.
type Config struct {
	Loop         LoopConfig         `mapstructure:"loop" yaml:"loop"`
	Validation   ValidationConfig   `mapstructure:"validation" yaml:"validation"`
	LLM          LLMConfig          `mapstructure:"llm" yaml:"llm"`
	Concurrency  ConcurrencyConfig  `mapstructure:"concurrency" yaml:"concurrency"`
	RateLimiting RateLimitingConfig `mapstructure:"rate_limiting" yaml:"rate_limiting"`
	HTTP         HTTPConfig         `mapstructure:"http" yaml:"http"`
	Cache        CacheConfig        `mapstructure:"cache" yaml:"cache"`
	Corpus       CorpusConfig       `mapstructure:"corpus" yaml:"corpus"`
	Output       OutputConfig       `mapstructure:"output" yaml:"output"`
}

// LoopConfig controls the extract-validate-revise loop.
type LoopConfig struct {
	// MaxIterations bounds the number of extraction attempts per sentence.
	// The loop itself has no built-in default; this is the application
	// default handed to it by the CLI.
	MaxIterations int `mapstructure:"max_iterations" yaml:"max_iterations"`

	// DetectStagnation short-circuits to exhausted when a revision
	// reproduces the previous attempt verbatim. Off by default: the
	// original behavior burns the full budget.
	DetectStagnation bool `mapstructure:"detect_stagnation" yaml:"detect_stagnation"`
}

// ValidationConfig controls the rule engine.
type ValidationConfig struct {
	// FailClosed treats an unreachable or unparsable oracle judgment as a
	// failed check instead of the default fail-open pass.
	FailClosed bool `mapstructure:"fail_closed" yaml:"fail_closed"`
}

// LLMConfig holds oracle provider configuration.
type LLMConfig struct {
	// Provider name: "openai", "anthropic", "ollama", "" (disabled)
	Provider string `mapstructure:"provider" yaml:"provider"`
	Model    string `mapstructure:"model" yaml:"model"`
	APIKey   string `mapstructure:"api_key" yaml:"api_key,omitempty"`
	BaseURL  string `mapstructure:"base_url" yaml:"base_url,omitempty"`

	// Timeout for a single oracle call, in seconds.
	Timeout   int `mapstructure:"timeout" yaml:"timeout"`
	MaxTokens int `mapstructure:"max_tokens" yaml:"max_tokens"`

	// Proxy settings
	HTTPProxy  string `mapstructure:"http_proxy" yaml:"http_proxy,omitempty"`
	HTTPSProxy string `mapstructure:"https_proxy" yaml:"https_proxy,omitempty"`
	NoProxy    string `mapstructure:"no_proxy" yaml:"no_proxy,omitempty"`
}

// ConcurrencyConfig bounds the batch worker pool.
type ConcurrencyConfig struct {
	Workers int `mapstructure:"workers" yaml:"workers"`
}

// RateLimitingConfig throttles outbound calls (oracle and corpus fetches).
type RateLimitingConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second" yaml:"requests_per_second"`
	BurstSize         int     `mapstructure:"burst_size" yaml:"burst_size"`
}

// HTTPConfig configures corpus page fetching.
type HTTPConfig struct {
	Timeout      time.Duration `mapstructure:"timeout" yaml:"timeout"`
	UserAgent    string        `mapstructure:"user_agent" yaml:"user_agent"`
	MaxBodyBytes int64         `mapstructure:"max_body_bytes" yaml:"max_body_bytes"`
}

// CacheConfig configures the in-memory cache for fetched pages and oracle
// judgments.
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled" yaml:"enabled"`
	TTL     time.Duration `mapstructure:"ttl" yaml:"ttl"`
}

// CorpusConfig controls sentence intake filtering.
type CorpusConfig struct {
	MinSentenceRunes int     `mapstructure:"min_sentence_runes" yaml:"min_sentence_runes"`
	MaxSentenceRunes int     `mapstructure:"max_sentence_runes" yaml:"max_sentence_runes"`
	MinQuality       float64 `mapstructure:"min_quality" yaml:"min_quality"`
}

// OutputConfig controls result rendering.
type OutputConfig struct {
	// Format is "json" or "yaml".
	Format         string `mapstructure:"format" yaml:"format"`
	Verbose        bool   `mapstructure:"verbose" yaml:"verbose"`
	IncludeHistory bool   `mapstructure:"include_history" yaml:"include_history"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Loop: LoopConfig{
			MaxIterations:    3,
			DetectStagnation: false,
		},
		Validation: ValidationConfig{
			FailClosed: false,
		},
		LLM: LLMConfig{
			Provider:  "",
			Model:     "",
			Timeout:   30,
			MaxTokens: 256,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		RateLimiting: RateLimitingConfig{
			RequestsPerSecond: 2.0,
			BurstSize:         5,
		},
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "Triplex/0.1 (+https://github.com/triplex-nlp/triplex)",
			MaxBodyBytes: 2_000_000,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     1 * time.Hour,
		},
		Corpus: CorpusConfig{
			MinSentenceRunes: 6,
			MaxSentenceRunes: 120,
			MinQuality:       0.5,
		},
		Output: OutputConfig{
			Format:         "json",
			Verbose:        false,
			IncludeHistory: true,
		},
	}
}
