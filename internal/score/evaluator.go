// Package score evaluates extracted triplets against gold references.
package score

import (
	"unicode/utf8"

	"github.com/triplex-nlp/triplex/internal/model"
)

// Breakdown holds the per-dimension scores for one prediction against its
// reference, all in [0, 1].
type Breakdown struct {
	ExactMatch     float64 `json:"exact_match" yaml:"exact_match"`
	PartialMatch   float64 `json:"partial_match" yaml:"partial_match"`
	EntityMatch    float64 `json:"entity_match" yaml:"entity_match"`
	PredicateMatch float64 `json:"predicate_match" yaml:"predicate_match"`
	ModifierMatch  float64 `json:"modifier_match" yaml:"modifier_match"`
	Integrity      float64 `json:"integrity" yaml:"integrity"`
	Overall        float64 `json:"overall" yaml:"overall"`
}

// Summary aggregates breakdowns over a dataset.
type Summary struct {
	Count       int     `json:"count" yaml:"count"`
	ExactRate   float64 `json:"exact_rate" yaml:"exact_rate"`
	MeanOverall float64 `json:"mean_overall" yaml:"mean_overall"`
}

// Evaluator scores predicted triplets against references
type Evaluator struct{}

// NewEvaluator creates a new evaluator
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Overall weights. PartialMatch is reported but excluded from the
// weighted overall since EntityMatch and PredicateMatch subsume it.
const (
	weightExact     = 0.30
	weightEntity    = 0.20
	weightPredicate = 0.20
	weightModifier  = 0.15
	weightIntegrity = 0.15
)

// Evaluate scores one prediction against its reference.
func (e *Evaluator) Evaluate(predicted, reference model.Triplet) Breakdown {
	b := Breakdown{
		ExactMatch:     e.exactMatch(predicted, reference),
		PartialMatch:   e.partialMatch(predicted, reference),
		EntityMatch:    e.entityMatch(predicted, reference),
		PredicateMatch: e.predicateMatch(predicted, reference),
		ModifierMatch:  e.modifierMatch(predicted, reference),
		Integrity:      e.argumentIntegrity(predicted, reference),
	}

	b.Overall = b.ExactMatch*weightExact +
		b.EntityMatch*weightEntity +
		b.PredicateMatch*weightPredicate +
		b.ModifierMatch*weightModifier +
		b.Integrity*weightIntegrity

	return b
}

// Aggregate summarizes breakdowns over a dataset.
func (e *Evaluator) Aggregate(breakdowns []Breakdown) Summary {
	if len(breakdowns) == 0 {
		return Summary{}
	}

	exact := 0
	sum := 0.0
	for _, b := range breakdowns {
		if b.ExactMatch == 1.0 {
			exact++
		}
		sum += b.Overall
	}

	return Summary{
		Count:       len(breakdowns),
		ExactRate:   float64(exact) / float64(len(breakdowns)),
		MeanOverall: sum / float64(len(breakdowns)),
	}
}

func (e *Evaluator) exactMatch(predicted, reference model.Triplet) float64 {
	if predicted.Equal(reference) {
		return 1.0
	}
	return 0.0
}

// partialMatch is the fraction of the three core slots that match exactly.
func (e *Evaluator) partialMatch(predicted, reference model.Triplet) float64 {
	matches := 0
	if predicted.Predicate == reference.Predicate {
		matches++
	}
	if predicted.Subject == reference.Subject {
		matches++
	}
	if predicted.Object == reference.Object {
		matches++
	}
	return float64(matches) / 3.0
}

func (e *Evaluator) entityMatch(predicted, reference model.Triplet) float64 {
	score := 0.0
	if stringSimilarity(predicted.Subject, reference.Subject) > 0.8 {
		score += 0.5
	}
	if stringSimilarity(predicted.Object, reference.Object) > 0.8 {
		score += 0.5
	}
	return score
}

func (e *Evaluator) predicateMatch(predicted, reference model.Triplet) float64 {
	if predicted.Predicate == reference.Predicate {
		return 1.0
	}
	if stringSimilarity(predicted.Predicate, reference.Predicate) > 0.8 {
		return 0.7
	}
	return 0.0
}

func (e *Evaluator) modifierMatch(predicted, reference model.Triplet) float64 {
	if len(reference.Mods) == 0 {
		if len(predicted.Mods) == 0 {
			return 1.0
		}
		// Spurious modifiers cost a little, not everything.
		return 0.8
	}

	matches := 0
	for _, ref := range reference.Mods {
		if value, ok := predicted.Mods.Get(ref.Role); ok {
			if stringSimilarity(value, ref.Value) > 0.7 {
				matches++
			}
		}
	}

	return float64(matches) / float64(len(reference.Mods))
}

// argumentIntegrity penalizes arguments that are much shorter than the
// reference, which usually means descriptive content was split out.
func (e *Evaluator) argumentIntegrity(predicted, reference model.Triplet) float64 {
	score := 1.0

	if truncated(predicted.Subject, reference.Subject) {
		score -= 0.3
	}
	if truncated(predicted.Object, reference.Object) {
		score -= 0.3
	}

	if score < 0 {
		return 0
	}
	return score
}

func truncated(predicted, reference string) bool {
	if reference == "" || predicted == reference {
		return false
	}
	predLen := float64(utf8.RuneCountInString(predicted))
	refLen := float64(utf8.RuneCountInString(reference))
	return predLen < refLen*0.7
}

// stringSimilarity is the Jaccard similarity over rune sets.
func stringSimilarity(s1, s2 string) float64 {
	if s1 == "" || s2 == "" {
		if s1 == s2 {
			return 1.0
		}
		return 0.0
	}

	set1 := runeSet(s1)
	set2 := runeSet(s2)

	intersection := 0
	for r := range set1 {
		if set2[r] {
			intersection++
		}
	}
	union := len(set1) + len(set2) - intersection
	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union)
}

func runeSet(s string) map[rune]bool {
	set := make(map[rune]bool, len(s))
	for _, r := range s {
		set[r] = true
	}
	return set
}
