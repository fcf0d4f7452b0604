package validate

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/triplex-nlp/triplex/internal/codec"
	"github.com/triplex-nlp/triplex/internal/model"
)

// verdict is the structured judgment the oracle is asked to emit. Fields
// are pointers so an omitted key can default to permissive, matching the
// fail-open contract.
type verdict struct {
	Complete    *bool    `json:"complete"`
	MissingInfo []string `json:"missing_info"`
	Recoverable *bool    `json:"recoverable"`
	Suggestions []string `json:"suggestions"`
}

// checkOracle delegates final judgment to the external oracle. When skip is
// set (an earlier check already failed) the call is not made and the result
// defaults to valid so the sub-result is still reported.
//
// A transport failure or an undecodable response defaults to valid as well
// (fail-open); the FailClosed engine option flips that to a failing check
// for integrators who would rather block than falsely accept.
func (e *Engine) checkOracle(ctx context.Context, sentence string, t model.Triplet, skip bool) model.OracleResult {
	if e.oracle == nil {
		return model.OracleResult{CheckResult: model.Pass()}
	}
	if skip {
		return model.OracleResult{CheckResult: model.Pass(), Skipped: true}
	}

	serialized := codec.Format(t)
	response, err := e.oracle.Judge(ctx, sentence, serialized)
	if err != nil {
		e.logf("oracle judgment unavailable: %v", err)
		return e.oracleDefault("oracle judgment unavailable")
	}

	v, ok := extractVerdict(response)
	if !ok {
		e.logf("oracle verdict unparsable: %.80s", response)
		return e.oracleDefault("oracle verdict could not be parsed")
	}

	complete := v.Complete == nil || *v.Complete
	recoverable := v.Recoverable == nil || *v.Recoverable

	var issues []string
	if !complete {
		issues = append(issues, "oracle judged the triplet semantically incomplete")
	}
	if !recoverable {
		issues = append(issues, "oracle judged the sentence unrecoverable from the triplet")
	}

	return model.OracleResult{
		CheckResult: model.CheckResult{Valid: complete && recoverable, Issues: issues},
		MissingInfo: v.MissingInfo,
		Suggestions: v.Suggestions,
	}
}

// oracleDefault applies the configured outage policy.
func (e *Engine) oracleDefault(reason string) model.OracleResult {
	if e.failClosed {
		return model.OracleResult{CheckResult: model.Fail(reason)}
	}
	return model.OracleResult{CheckResult: model.Pass(), FailedOpen: true}
}

// extractVerdict locates an embedded JSON verdict block in free text: the
// span from the first '{' to the last '}'.
func extractVerdict(response string) (verdict, bool) {
	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start < 0 || end <= start {
		return verdict{}, false
	}

	var v verdict
	if err := json.Unmarshal([]byte(response[start:end+1]), &v); err != nil {
		return verdict{}, false
	}
	return v, true
}
