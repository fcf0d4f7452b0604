package llm

import (
	"context"

	"github.com/triplex-nlp/triplex/internal/cache"
	"github.com/triplex-nlp/triplex/internal/codec"
	"github.com/triplex-nlp/triplex/internal/model"
)

// Agent wraps a Provider with the extraction, revision and judgment
// prompts. It implements both oracle capabilities the engine consumes:
// proposing candidate triplet text and judging semantic completeness.
//
// Judgments are pure functions of (sentence, serialized triplet), so they
// are cached; extraction is never cached because revision prompts differ
// per attempt.
type Agent struct {
	provider Provider
	judged   cache.Cache // nil disables judgment caching
}

// NewAgent creates an agent over a provider. judged may be nil.
func NewAgent(provider Provider, judged cache.Cache) *Agent {
	return &Agent{provider: provider, judged: judged}
}

// Name returns the underlying provider name.
func (a *Agent) Name() string {
	return a.provider.Name()
}

// Propose asks the oracle for candidate triplet text. With a nil prior it
// builds the first-attempt extraction prompt; with a prior it builds the
// revision prompt carrying the previous triplet and the validator feedback.
// A transport fault surfaces as *OracleError.
func (a *Agent) Propose(ctx context.Context, sentence string, prior *model.Prior) (string, error) {
	var prompt string
	if prior == nil {
		prompt = BuildExtractionPrompt(sentence)
	} else {
		prompt = BuildRevisionPrompt(sentence, codec.Format(prior.Triplet), prior.Feedback)
	}

	resp, err := a.provider.Complete(ctx, CompletionRequest{
		System: extractionSystem,
		Prompt: prompt,
	})
	if err != nil {
		return "", &OracleError{Op: "propose", Err: err}
	}
	return resp.Text, nil
}

// Judge asks the oracle for a completeness verdict over a sentence and a
// serialized triplet. The raw response text is returned; verdict decoding
// is the validation engine's job. A transport fault surfaces as
// *OracleError.
func (a *Agent) Judge(ctx context.Context, sentence, serialized string) (string, error) {
	prompt := BuildJudgmentPrompt(sentence, serialized)
	key := cache.Key(prompt)

	if a.judged != nil {
		if cached, found := a.judged.Get(key); found {
			return string(cached), nil
		}
	}

	resp, err := a.provider.Complete(ctx, CompletionRequest{
		System: judgmentSystem,
		Prompt: prompt,
	})
	if err != nil {
		return "", &OracleError{Op: "judge", Err: err}
	}

	if a.judged != nil {
		_ = a.judged.Set(key, []byte(resp.Text), 0)
	}
	return resp.Text, nil
}
