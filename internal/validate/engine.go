// Package validate runs the multi-stage rule engine that judges whether a
// candidate triplet completely reflects the sentence it was extracted from.
//
// Five checks run in a fixed order: structural, argument integrity,
// semantic completeness, recoverability, and the external oracle judgment.
// The cheap syntactic checks run first; the oracle call is skipped entirely
// once an earlier check has already failed, but all five sub-results are
// still reported for diagnostics.
package validate

import (
	"context"
	"fmt"
	"os"

	"github.com/triplex-nlp/triplex/internal/model"
	"github.com/triplex-nlp/triplex/internal/vocab"
)

// Oracle is the external judgment capability: given a sentence and a
// serialized triplet, it returns free text expected (but not guaranteed) to
// contain a structured verdict.
type Oracle interface {
	Judge(ctx context.Context, sentence, serialized string) (string, error)
}

// Engine validates (sentence, triplet) pairs.
type Engine struct {
	vocabulary *vocab.Vocabulary
	oracle     Oracle // nil disables the oracle check (it then passes)
	failClosed bool
	verbose    bool
}

// NewEngine creates a validation engine. A nil oracle disables the final
// judgment check. cfg.FailClosed flips the fail-open default for oracle
// outages: an unreachable or unparsable judgment then fails the check
// instead of passing it.
func NewEngine(vocabulary *vocab.Vocabulary, oracle Oracle, cfg model.ValidationConfig) *Engine {
	if vocabulary == nil {
		vocabulary = vocab.Default()
	}
	return &Engine{
		vocabulary: vocabulary,
		oracle:     oracle,
		failClosed: cfg.FailClosed,
	}
}

// SetVerbose enables diagnostic logging to stderr.
func (e *Engine) SetVerbose(v bool) {
	e.verbose = v
}

// Validate runs all five checks over the pair and composes the feedback
// message. It never errors: checks that cannot run default to valid.
func (e *Engine) Validate(ctx context.Context, sentence string, triplet model.Triplet) model.Outcome {
	outcome := model.Outcome{
		Structural:           checkStructure(triplet),
		ArgumentIntegrity:    checkArgumentIntegrity(sentence, triplet),
		SemanticCompleteness: e.checkSemanticCompleteness(sentence, triplet),
		Recoverability:       checkRecoverability(sentence, triplet),
	}

	// The oracle is the expensive step: skip it when the outcome is already
	// decided by a cheaper check.
	alreadyInvalid := !outcome.Structural.Valid ||
		!outcome.ArgumentIntegrity.Valid ||
		!outcome.SemanticCompleteness.Valid ||
		!outcome.Recoverability.Valid
	outcome.Oracle = e.checkOracle(ctx, sentence, triplet, alreadyInvalid)

	outcome.Feedback = ComposeFeedback(outcome)
	return outcome
}

func (e *Engine) logf(format string, args ...interface{}) {
	if e.verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
