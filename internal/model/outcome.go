package model

// CheckResult is the outcome of a single validation check.
type CheckResult struct {
	Valid  bool     `json:"valid"`
	Issues []string `json:"issues,omitempty"`
}

// Pass returns a passing check result.
func Pass() CheckResult {
	return CheckResult{Valid: true}
}

// Fail returns a failing check result with the given issues.
func Fail(issues ...string) CheckResult {
	return CheckResult{Valid: false, Issues: issues}
}

// OracleResult is the outcome of the external oracle judgment.
// MissingInfo and Suggestions come from the oracle's structured verdict
// and feed the composed feedback separately from plain issues.
type OracleResult struct {
	CheckResult
	MissingInfo []string `json:"missing_info,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`

	// Skipped is set when the oracle call was not made because an earlier
	// check already failed. The result then defaults to valid.
	Skipped bool `json:"skipped,omitempty"`

	// FailedOpen is set when the oracle was consulted but its response
	// could not be decoded (or the call failed) and the engine defaulted
	// the check to valid.
	FailedOpen bool `json:"failed_open,omitempty"`
}

// Outcome is the per-attempt validation judgment: five sub-results in the
// order they run, plus the composed feedback message.
type Outcome struct {
	Structural           CheckResult  `json:"structural"`
	ArgumentIntegrity    CheckResult  `json:"argument_integrity"`
	SemanticCompleteness CheckResult  `json:"semantic_completeness"`
	Recoverability       CheckResult  `json:"recoverability"`
	Oracle               OracleResult `json:"oracle"`

	// Feedback is derived from the sub-results by the feedback composer.
	Feedback string `json:"feedback"`
}

// IsValid is the logical AND of all five sub-results. It is never computed
// from fewer than five: a check that could not run reports valid (fail-open).
func (o Outcome) IsValid() bool {
	return o.Structural.Valid &&
		o.ArgumentIntegrity.Valid &&
		o.SemanticCompleteness.Valid &&
		o.Recoverability.Valid &&
		o.Oracle.Valid
}
