package validate

import (
	"strings"

	"github.com/triplex-nlp/triplex/internal/model"
)

// AcceptedFeedback is the fixed message for a fully valid triplet.
const AcceptedFeedback = "triplet is complete and correct; no revision needed"

// ComposeFeedback turns a validation outcome into the single instruction
// string handed to the extractor for the next attempt. Issue groups appear
// in the order the checks run, each prefixed by a category label. Pure
// function of the outcome; idempotent.
func ComposeFeedback(o model.Outcome) string {
	if o.IsValid() {
		return AcceptedFeedback
	}

	var groups []string
	appendGroup := func(label string, issues []string) {
		if len(issues) > 0 {
			groups = append(groups, label+": "+strings.Join(issues, "; "))
		}
	}

	appendGroup("structural issues", o.Structural.Issues)
	appendGroup("argument integrity issues", o.ArgumentIntegrity.Issues)
	appendGroup("completeness issues", o.SemanticCompleteness.Issues)
	appendGroup("recoverability issues", o.Recoverability.Issues)
	appendGroup("oracle issues", o.Oracle.Issues)
	appendGroup("missing information", o.Oracle.MissingInfo)
	appendGroup("suggestions", o.Oracle.Suggestions)

	if len(groups) == 0 {
		return "triplet needs improvement"
	}
	return strings.Join(groups, "; ")
}
