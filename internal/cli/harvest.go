package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/triplex-nlp/triplex/internal/cache"
	"github.com/triplex-nlp/triplex/internal/corpus"
	"github.com/triplex-nlp/triplex/internal/model"
)

var (
	minQuality float64
	minRunes   int
	maxRunes   int
	userAgent  string
	maxBytes   int64
)

// harvestCmd represents the harvest command
var harvestCmd = &cobra.Command{
	Use:   "harvest <url>",
	Short: "Collect candidate sentences from a web page",
	Long: `Harvest fetches a page (honoring robots.txt and per-domain rate
limits), extracts its visible text, splits it into sentences and scores
each for extraction suitability. The surviving sentences can be fed to
the batch command.

Example:
  triplex harvest https://zh.wikipedia.org/wiki/跑步
  triplex harvest https://example.com/article --min-quality 0.7 --out sentences.json`,
	Args: cobra.ExactArgs(1),
	RunE: runHarvest,
}

func init() {
	rootCmd.AddCommand(harvestCmd)

	harvestCmd.Flags().StringVar(&outPath, "out", "", "output path (default: stdout)")
	harvestCmd.Flags().StringVar(&outFormat, "format", "json", "output format (json, yaml)")
	harvestCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "fetch timeout")
	harvestCmd.Flags().StringVar(&userAgent, "ua", "Triplex/0.1 (+https://github.com/triplex-nlp/triplex)", "HTTP User-Agent")
	harvestCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max response bytes to read")
	harvestCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable page cache (force fresh fetch)")
	harvestCmd.Flags().Float64Var(&minQuality, "min-quality", 0.5, "minimum sentence quality score")
	harvestCmd.Flags().IntVar(&minRunes, "min-runes", 6, "minimum sentence length in runes")
	harvestCmd.Flags().IntVar(&maxRunes, "max-runes", 120, "maximum sentence length in runes")
}

func runHarvest(cmd *cobra.Command, args []string) error {
	url := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg := model.DefaultConfig()
	cfg.HTTP.Timeout = timeout
	cfg.HTTP.UserAgent = userAgent
	cfg.HTTP.MaxBodyBytes = maxBytes
	cfg.Cache.Enabled = !noCache
	cfg.Corpus.MinQuality = minQuality
	cfg.Corpus.MinSentenceRunes = minRunes
	cfg.Corpus.MaxSentenceRunes = maxRunes

	var pages cache.Cache
	if cfg.Cache.Enabled {
		pages = cache.NewMemoryCache(cfg.Cache.TTL, 10*time.Minute)
	}

	harvester := corpus.NewHarvester(
		corpus.NewFetcher(cfg.HTTP, cfg.RateLimiting, pages, cfg.Cache.TTL),
		corpus.NewExtractor(cfg.Corpus),
	)

	if verbose {
		fmt.Fprintf(os.Stderr, "Harvesting: %s\n", url)
	}

	sentences, err := harvester.Harvest(ctx, url)
	if err != nil {
		return fmt.Errorf("harvest failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "✓ Collected %d sentences\n", len(sentences))

	return writeOutput(sentences, outFormat, outPath)
}
