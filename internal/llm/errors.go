package llm

import "fmt"

// OracleError marks a transport-level oracle fault: the call itself failed
// (unreachable endpoint, timeout, malformed protocol). For extraction calls
// the revision loop treats it as fatal to the current sentence; for
// judgment calls the validation engine recovers per its outage policy.
type OracleError struct {
	// Op is the capability that failed: "propose" or "judge".
	Op  string
	Err error
}

func (e *OracleError) Error() string {
	return fmt.Sprintf("oracle %s: %v", e.Op, e.Err)
}

func (e *OracleError) Unwrap() error {
	return e.Err
}
