package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/triplex-nlp/triplex/internal/loop"
	"github.com/triplex-nlp/triplex/internal/model"
)

var (
	outPath       string
	outFormat     string
	timeout       time.Duration
	maxIterations int
	stagnation    bool
	failClosed    bool
	noCache       bool
	noHistory     bool
	llmProvider   string
	llmModel      string
	llmBaseURL    string
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <sentence>",
	Short: "Extract a semantic triplet from a single sentence",
	Long: `Extract runs the full pipeline on one sentence:
- The LLM proposes a candidate triplet in the wire format
- The rule engine validates structure, argument integrity, semantic
  completeness and recoverability, then asks the LLM for a judgment
- On rejection, the feedback is fed back for revision until the triplet
  is accepted or the iteration budget is exhausted

Example:
  triplex extract "小明每天早上在公园跑步。" --llm-provider openai
  triplex extract "She reads in the library." --llm-provider ollama --llm-model qwen2.5:0.5b
  triplex extract "小明跑步。" --llm-provider openai --max-iterations 5 --format yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	// Output flags
	extractCmd.Flags().StringVar(&outPath, "out", "", "output path (default: stdout)")
	extractCmd.Flags().StringVar(&outFormat, "format", "json", "output format (json, yaml)")
	extractCmd.Flags().BoolVar(&noHistory, "no-history", false, "omit per-attempt history from output")

	// Loop flags
	extractCmd.Flags().IntVar(&maxIterations, "max-iterations", 3, "revision attempts per sentence")
	extractCmd.Flags().BoolVar(&stagnation, "detect-stagnation", false, "stop early when a revision repeats the previous attempt")
	extractCmd.Flags().BoolVar(&failClosed, "fail-closed", false, "treat oracle outages as failed judgments")
	extractCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall timeout for the sentence")
	extractCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable judgment caching")

	// LLM flags
	extractCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "LLM provider (openai, anthropic, ollama)")
	extractCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name (provider default if empty)")
	extractCmd.Flags().StringVar(&llmBaseURL, "llm-base-url", "", "custom API endpoint")
}

func runExtract(cmd *cobra.Command, args []string) error {
	sentence := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Sentence: %s\n", sentence)
		fmt.Fprintf(os.Stderr, "Max iterations: %d\n", maxIterations)
		fmt.Fprintln(os.Stderr)
	}

	cfg := extractConfig()

	l, err := buildLoop(cfg)
	if err != nil {
		return err
	}

	session := l.Run(ctx, sentence)
	record := loop.NewRecord(session, cfg.Output.IncludeHistory)

	if session.Status == model.StatusExtractionFailed {
		_ = writeOutput(record, cfg.Output.Format, outPath)
		return fmt.Errorf("extraction failed: %s", session.Err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ %s after %d attempt(s)\n", session.Status, len(session.Attempts))
	}

	return writeOutput(record, cfg.Output.Format, outPath)
}

// extractConfig builds the effective configuration from flags over the
// defaults.
func extractConfig() model.Config {
	cfg := model.DefaultConfig()
	cfg.Loop.MaxIterations = maxIterations
	cfg.Loop.DetectStagnation = stagnation
	cfg.Validation.FailClosed = failClosed
	cfg.LLM.Provider = llmProvider
	cfg.LLM.Model = llmModel
	cfg.LLM.BaseURL = llmBaseURL
	cfg.Cache.Enabled = !noCache
	cfg.Output.Format = outFormat
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeHistory = !noHistory
	return cfg
}
