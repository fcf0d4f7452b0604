package validate

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/triplex-nlp/triplex/internal/model"
	"github.com/triplex-nlp/triplex/internal/vocab"
)

// minLocationRunes is the shortest location value that still looks like a
// complete locative expression rather than a truncated one.
const minLocationRunes = 2

// locativeCues mark modifier values that are genuine adjuncts (在/从/给/对
// phrases) rather than descriptive words peeled off an argument.
var locativeCues = []string{"在", "从", "给", "对"}

// modifierCues are characters whose presence in a sentence signals adjunct
// information (location, time, degree) that a triplet with no modifiers
// must have dropped.
var modifierCues = []string{"在", "每", "很"}

// checkStructure verifies the triplet's basic shape: predicate and subject
// are required, the modifier list must be a valid role mapping. Object
// absence never fails this check; many predicates are intransitive.
func checkStructure(t model.Triplet) model.CheckResult {
	var issues []string

	if t.Predicate == "" {
		issues = append(issues, "missing predicate")
	}
	if t.Subject == "" {
		issues = append(issues, "missing subject")
	}
	for _, mod := range t.Mods {
		if mod.Role == "" {
			issues = append(issues, "modifier with empty role name")
			break
		}
	}

	return model.CheckResult{Valid: len(issues) == 0, Issues: issues}
}

// checkArgumentIntegrity enforces the rule that descriptive modifiers of
// the subject or object stay folded into the argument text instead of
// being split out as separate modifiers.
//
// Wrong:   {attribute="高大的"} 看到(男人, 一只鸟)
// Correct: {location="在远方的山上"} 看到(高大的男人, 一只鸟)
func checkArgumentIntegrity(sentence string, t model.Triplet) model.CheckResult {
	var issues []string

	for _, mod := range t.Mods {
		switch vocab.ParseRole(mod.Role) {
		case vocab.RoleAttribute:
			if mod.Value != "" && !containsAny(mod.Value, locativeCues) {
				issues = append(issues, fmt.Sprintf(
					"attribute %q should stay part of the subject/object, not a separate modifier", mod.Value))
			}
		case vocab.RoleLocation:
			if utf8.RuneCountInString(mod.Value) < minLocationRunes {
				issues = append(issues, fmt.Sprintf(
					"location modifier %q looks truncated; keep the complete locative expression", mod.Value))
			}
		default:
			// No integrity heuristics for the remaining roles.
		}
	}

	return model.CheckResult{Valid: len(issues) == 0, Issues: issues}
}

// checkSemanticCompleteness verifies that the captured arguments actually
// occur in the sentence and that every role the sentence implies (per the
// vocabulary's trigger keywords) is present among the modifiers.
func (e *Engine) checkSemanticCompleteness(sentence string, t model.Triplet) model.CheckResult {
	var issues []string

	lower := strings.ToLower(sentence)
	if t.Subject != "" && !strings.Contains(lower, strings.ToLower(t.Subject)) {
		issues = append(issues, fmt.Sprintf("subject %q does not appear in the sentence", t.Subject))
	}
	if t.Object != "" && !strings.Contains(lower, strings.ToLower(t.Object)) {
		issues = append(issues, fmt.Sprintf("object %q does not appear in the sentence", t.Object))
	}

	for _, role := range e.vocabulary.ExpectedRoles(sentence) {
		if !t.Mods.Has(string(role)) {
			issues = append(issues, fmt.Sprintf("sentence implies role %s but the triplet omits it", role))
		}
	}

	return model.CheckResult{Valid: len(issues) == 0, Issues: issues}
}

// checkRecoverability is a cheap reconstruction heuristic: the predicate
// must be recoverable verbatim from the sentence, and a sentence that
// visibly carries adjunct information must not map to a modifier-free
// triplet.
func checkRecoverability(sentence string, t model.Triplet) model.CheckResult {
	var issues []string

	if t.Predicate == "" || !strings.Contains(sentence, t.Predicate) {
		issues = append(issues, "predicate cannot be recovered verbatim from the sentence")
	}
	if len(t.Mods) == 0 && containsAny(sentence, modifierCues) {
		issues = append(issues, "sentence carries modifier information the triplet dropped")
	}

	return model.CheckResult{Valid: len(issues) == 0, Issues: issues}
}

func containsAny(s string, cues []string) bool {
	for _, cue := range cues {
		if strings.Contains(s, cue) {
			return true
		}
	}
	return false
}
