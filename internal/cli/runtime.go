package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/triplex-nlp/triplex/internal/cache"
	"github.com/triplex-nlp/triplex/internal/llm"
	"github.com/triplex-nlp/triplex/internal/loop"
	"github.com/triplex-nlp/triplex/internal/model"
	"github.com/triplex-nlp/triplex/internal/validate"
)

// resolveAPIKey fills the provider API key from the environment, matching
// the key names users already export for these services.
func resolveAPIKey(cfg *model.Config) error {
	switch cfg.LLM.Provider {
	case "openai":
		if cfg.LLM.APIKey == "" {
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		}
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		if cfg.LLM.APIKey == "" {
			cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		}
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if cfg.LLM.BaseURL == "" {
			cfg.LLM.BaseURL = os.Getenv("OLLAMA_BASE_URL")
		}
	}
	return nil
}

// buildLoop assembles the full pipeline from configuration: provider,
// prompting agent, validation engine and revision loop.
func buildLoop(cfg model.Config) (*loop.Loop, error) {
	if cfg.LLM.Provider == "" {
		return nil, fmt.Errorf("an LLM provider is required for extraction (--llm-provider openai|anthropic|ollama)")
	}
	if err := resolveAPIKey(&cfg); err != nil {
		return nil, err
	}

	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return nil, fmt.Errorf("create provider: %w", err)
	}

	var judged cache.Cache
	if cfg.Cache.Enabled {
		judged = cache.NewMemoryCache(cfg.Cache.TTL, 10*time.Minute)
	}
	agent := llm.NewAgent(provider, judged)

	engine := validate.NewEngine(nil, agent, cfg.Validation)
	engine.SetVerbose(verbose)

	l, err := loop.New(agent, engine, cfg.Loop)
	if err != nil {
		return nil, err
	}
	l.SetVerbose(verbose)

	return l, nil
}

// writeOutput renders v as JSON or YAML to path, or stdout when path is
// empty.
func writeOutput(v interface{}, format, path string) error {
	var out io.Writer = os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	switch format {
	case "yaml":
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshal yaml: %w", err)
		}
		_, err = out.Write(data)
		return err
	case "json", "":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(v)
	default:
		return fmt.Errorf("unknown output format: %s (supported: json, yaml)", format)
	}
}
