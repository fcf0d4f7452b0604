package cli

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/triplex-nlp/triplex/internal/loop"
	"github.com/triplex-nlp/triplex/internal/model"
	"github.com/triplex-nlp/triplex/internal/worker"
)

var (
	concurrency  int
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Extract triplets for multiple sentences from a file in parallel",
	Long: `Batch processes multiple sentences concurrently:
- Read sentences from the input file (one per line, # comments skipped)
- Run the full extract-validate-revise loop for each sentence
- Emit one record per sentence, in input order

Example:
  triplex batch sentences.txt --llm-provider openai
  triplex batch sentences.txt --concurrency 8 --out results.json
  triplex batch sentences.txt --format yaml --max-iterations 5`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	// Concurrency flags
	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")

	// Output flags
	batchCmd.Flags().StringVar(&outPath, "out", "", "output path (default: stdout)")
	batchCmd.Flags().StringVar(&outFormat, "format", "json", "output format (json, yaml)")
	batchCmd.Flags().BoolVar(&noHistory, "no-history", false, "omit per-attempt history from output")

	// Loop flags
	batchCmd.Flags().IntVar(&maxIterations, "max-iterations", 3, "revision attempts per sentence")
	batchCmd.Flags().BoolVar(&stagnation, "detect-stagnation", false, "stop early when a revision repeats the previous attempt")
	batchCmd.Flags().BoolVar(&failClosed, "fail-closed", false, "treat oracle outages as failed judgments")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable judgment caching")

	// LLM flags
	batchCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "LLM provider (openai, anthropic, ollama)")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name (provider default if empty)")
	batchCmd.Flags().StringVar(&llmBaseURL, "llm-base-url", "", "custom API endpoint")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg := extractConfig()
	cfg.Concurrency.Workers = concurrency

	l, err := buildLoop(cfg)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Input file: %s\n", file)
		fmt.Fprintf(os.Stderr, "Workers: %d\n", concurrency)
		fmt.Fprintln(os.Stderr)
	}

	processor := worker.NewBatchProcessor(l, cfg.Concurrency.Workers)

	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	accepted := 0
	exhausted := 0
	failed := 0

	records := make([]model.Record, 0, len(results))
	for _, result := range results {
		records = append(records, loop.NewRecord(result.Session, cfg.Output.IncludeHistory))

		switch result.Session.Status {
		case model.StatusAccepted:
			accepted++
		case model.StatusExhausted:
			exhausted++
		default:
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %s\n", result.Session.Sentence, result.Session.Err)
		}
	}

	fmt.Fprintf(os.Stderr, "Processed %d sentences: %d accepted, %d exhausted, %d failed\n",
		len(results), accepted, exhausted, failed)

	return writeOutput(records, cfg.Output.Format, outPath)
}
