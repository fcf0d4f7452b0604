package model

// Status is the terminal state of a revision session.
type Status string

const (
	// StatusAccepted means the last attempt's validation passed.
	StatusAccepted Status = "accepted"
	// StatusExhausted means the iteration budget ran out before a valid
	// triplet was produced. The last attempt is still reported.
	StatusExhausted Status = "exhausted"
	// StatusExtractionFailed means the extractor itself faulted
	// (unreachable, timeout). No further attempts were made.
	StatusExtractionFailed Status = "extraction_failed"
)

// Prior carries the previous attempt into a revision request: the triplet
// that failed validation and the composed feedback explaining why.
type Prior struct {
	Triplet  Triplet
	Feedback string
}

// Attempt is one extract-then-validate cycle within a session.
type Attempt struct {
	Triplet Triplet `json:"triplet"`
	Outcome Outcome `json:"outcome"`
}

// Session is the per-sentence run: the ordered attempt history and the
// terminal status. History is write-once; attempts are appended in order
// and never modified.
type Session struct {
	Sentence string    `json:"sentence"`
	Attempts []Attempt `json:"attempts"`
	Status   Status    `json:"status"`

	// Err carries the extractor fault message when Status is
	// StatusExtractionFailed.
	Err string `json:"error,omitempty"`
}

// FinalAttempt returns the last attempt, if any.
func (s *Session) FinalAttempt() (Attempt, bool) {
	if len(s.Attempts) == 0 {
		return Attempt{}, false
	}
	return s.Attempts[len(s.Attempts)-1], true
}

// Record is the export shape for a completed session: one record per
// sentence with the serialized terminal triplet and the ordered history.
type Record struct {
	Sentence string          `json:"sentence" yaml:"sentence"`
	Triplet  string          `json:"triplet,omitempty" yaml:"triplet,omitempty"`
	Status   Status          `json:"status" yaml:"status"`
	Attempts int             `json:"attempts" yaml:"attempts"`
	History  []AttemptRecord `json:"history,omitempty" yaml:"history,omitempty"`
	Error    string          `json:"error,omitempty" yaml:"error,omitempty"`
}

// AttemptRecord is one history entry in a Record: the serialized triplet of
// that attempt and the feedback that triggered the next one.
type AttemptRecord struct {
	Triplet  string `json:"triplet" yaml:"triplet"`
	Valid    bool   `json:"valid" yaml:"valid"`
	Feedback string `json:"feedback,omitempty" yaml:"feedback,omitempty"`
}
