package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/triplex-nlp/triplex/internal/codec"
	"github.com/triplex-nlp/triplex/internal/model"
	"github.com/triplex-nlp/triplex/internal/score"
)

// GoldEntry is one labeled example: a sentence and its reference triplet
// in the wire format.
type GoldEntry struct {
	Sentence string `yaml:"sentence" json:"sentence"`
	Triplet  string `yaml:"triplet" json:"triplet"`
}

// EvalResult pairs an entry with its score breakdown.
type EvalResult struct {
	Sentence  string          `yaml:"sentence" json:"sentence"`
	Gold      string          `yaml:"gold" json:"gold"`
	Predicted string          `yaml:"predicted" json:"predicted"`
	Status    model.Status    `yaml:"status" json:"status"`
	Scores    score.Breakdown `yaml:"scores" json:"scores"`
}

// EvalReport is the full evaluation output.
type EvalReport struct {
	Results []EvalResult  `yaml:"results" json:"results"`
	Summary score.Summary `yaml:"summary" json:"summary"`
}

// evalCmd represents the eval command
var evalCmd = &cobra.Command{
	Use:   "eval <gold.yaml>",
	Short: "Evaluate extraction quality against a labeled gold set",
	Long: `Eval runs the pipeline over a YAML gold set and scores each final
triplet against its reference: exact match, entity match, predicate
match, modifier match and argument integrity, plus a weighted overall.

Gold set format:
  - sentence: 小明每天早上在公园跑步。
    triplet: '{time="每天早上", location="在公园"} 跑步(小明, null)'

Example:
  triplex eval gold.yaml --llm-provider openai
  triplex eval gold.yaml --llm-provider ollama --out report.json`,
	Args: cobra.ExactArgs(1),
	RunE: runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)

	evalCmd.Flags().StringVar(&outPath, "out", "", "output path (default: stdout)")
	evalCmd.Flags().StringVar(&outFormat, "format", "json", "output format (json, yaml)")
	evalCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for the evaluation run")

	// Loop flags
	evalCmd.Flags().IntVar(&maxIterations, "max-iterations", 3, "revision attempts per sentence")
	evalCmd.Flags().BoolVar(&stagnation, "detect-stagnation", false, "stop early when a revision repeats the previous attempt")
	evalCmd.Flags().BoolVar(&failClosed, "fail-closed", false, "treat oracle outages as failed judgments")
	evalCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable judgment caching")

	// LLM flags
	evalCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "LLM provider (openai, anthropic, ollama)")
	evalCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name (provider default if empty)")
	evalCmd.Flags().StringVar(&llmBaseURL, "llm-base-url", "", "custom API endpoint")
}

func runEval(cmd *cobra.Command, args []string) error {
	goldPath := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	entries, err := readGoldSet(goldPath)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("gold set is empty: %s", goldPath)
	}

	cfg := extractConfig()

	l, err := buildLoop(cfg)
	if err != nil {
		return err
	}

	evaluator := score.NewEvaluator()
	report := EvalReport{Results: make([]EvalResult, 0, len(entries))}
	breakdowns := make([]score.Breakdown, 0, len(entries))

	for _, entry := range entries {
		reference := codec.Parse(entry.Triplet)
		if reference.IsEmpty() {
			return fmt.Errorf("unparsable gold triplet for %q: %s", entry.Sentence, entry.Triplet)
		}

		session := l.Run(ctx, entry.Sentence)

		var predicted model.Triplet
		if final, ok := session.FinalAttempt(); ok {
			predicted = final.Triplet
		}

		breakdown := evaluator.Evaluate(predicted, reference)
		breakdowns = append(breakdowns, breakdown)

		report.Results = append(report.Results, EvalResult{
			Sentence:  entry.Sentence,
			Gold:      codec.Format(reference),
			Predicted: codec.Format(predicted),
			Status:    session.Status,
			Scores:    breakdown,
		})

		if verbose {
			fmt.Fprintf(os.Stderr, "%.2f %s\n", breakdown.Overall, entry.Sentence)
		}
	}

	report.Summary = evaluator.Aggregate(breakdowns)

	fmt.Fprintf(os.Stderr, "Evaluated %d sentences: exact %.0f%%, mean overall %.2f\n",
		report.Summary.Count, report.Summary.ExactRate*100, report.Summary.MeanOverall)

	return writeOutput(report, cfg.Output.Format, outPath)
}

func readGoldSet(path string) ([]GoldEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read gold set: %w", err)
	}

	var entries []GoldEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse gold set: %w", err)
	}
	return entries, nil
}
