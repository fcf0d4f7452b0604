// Package llm implements the external oracle: the text-generation
// capability that proposes candidate triplets and judges semantic
// completeness. Providers are interchangeable backends; the Agent wraps a
// provider with the extraction, revision and judgment prompts.
package llm

import (
	"context"

	"github.com/triplex-nlp/triplex/internal/model"
)

// Provider defines the interface for LLM backends.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Complete generates text for a prompt.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// CompletionRequest contains the input for a single generation call.
type CompletionRequest struct {
	// System is the system message (may be empty).
	System string

	// Prompt is the user prompt.
	Prompt string

	// Model overrides the configured model for this call.
	Model string

	// MaxTokens limits the response length.
	MaxTokens int

	// Temperature defaults to a low value for consistent structured output.
	Temperature float32
}

// CompletionResponse contains the generated text.
type CompletionResponse struct {
	Text       string
	Model      string
	TokensUsed int
}

// Config holds LLM provider configuration.
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider:  "", // Disabled by default
		Model:     "",
		Timeout:   30,
		MaxTokens: 256,
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config.
func ConfigFromModel(modelConfig model.LLMConfig) Config {
	return Config{
		Provider:   modelConfig.Provider,
		Model:      modelConfig.Model,
		APIKey:     modelConfig.APIKey,
		BaseURL:    modelConfig.BaseURL,
		Timeout:    modelConfig.Timeout,
		MaxTokens:  modelConfig.MaxTokens,
		HTTPProxy:  modelConfig.HTTPProxy,
		HTTPSProxy: modelConfig.HTTPSProxy,
		NoProxy:    modelConfig.NoProxy,
	}
}

// defaultTemperature keeps structured output consistent across attempts.
const defaultTemperature float32 = 0.3
