package worker

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/triplex-nlp/triplex/internal/model"
)

// Runner defines the interface for processing a single sentence to a
// terminal session.
type Runner interface {
	Run(ctx context.Context, sentence string) *model.Session
}

// SentenceJob carries one sentence through the pool. Index is the
// position in the input so batch output can preserve input order.
type SentenceJob struct {
	Index    int
	Sentence string
	Runner   Runner
}

// Execute runs the revision session for the sentence
func (j *SentenceJob) Execute(ctx context.Context) Result {
	session := j.Runner.Run(ctx, j.Sentence)
	return &SessionResult{
		Index:   j.Index,
		Session: session,
	}
}

// SessionResult represents the outcome of one sentence job
type SessionResult struct {
	Index   int
	Session *model.Session
}

// GetError surfaces a hard extraction fault as an error; rejected or
// exhausted sessions are normal outcomes, not errors.
func (r *SessionResult) GetError() error {
	if r.Session != nil && r.Session.Status == model.StatusExtractionFailed {
		return errors.New(r.Session.Err)
	}
	return nil
}

// BatchProcessor processes multiple sentences concurrently
type BatchProcessor struct {
	runner      Runner
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(runner Runner, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		runner:      runner,
		concurrency: concurrency,
	}
}

// ProcessSentences processes sentences concurrently. Results come back in
// input order regardless of completion order.
func (b *BatchProcessor) ProcessSentences(ctx context.Context, sentences []string) []*SessionResult {
	if len(sentences) == 0 {
		return []*SessionResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for i, sentence := range sentences {
		job := &SentenceJob{
			Index:    i,
			Sentence: sentence,
			Runner:   b.runner,
		}
		pool.Submit(job)
	}

	results := pool.Wait()

	sessionResults := make([]*SessionResult, 0, len(results))
	for _, result := range results {
		sessionResults = append(sessionResults, result.(*SessionResult))
	}
	sort.Slice(sessionResults, func(i, j int) bool {
		return sessionResults[i].Index < sessionResults[j].Index
	})

	return sessionResults
}

// ProcessFile reads sentences from a file and processes them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*SessionResult, error) {
	sentences, err := ReadSentencesFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read sentences: %w", err)
	}

	return b.ProcessSentences(ctx, sentences), nil
}

// ReadSentencesFromFile reads sentences from a file (one per line)
func ReadSentencesFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var sentences []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Deduplicate sentences
		if !seen[line] {
			seen[line] = true
			sentences = append(sentences, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return sentences, nil
}
