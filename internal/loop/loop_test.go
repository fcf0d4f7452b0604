package loop

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/triplex-nlp/triplex/internal/llm"
	"github.com/triplex-nlp/triplex/internal/model"
)

// scriptedExtractor returns canned responses in order, repeating the last
// one when the script runs out.
type scriptedExtractor struct {
	responses []string
	err       error
	calls     int
	priors    []*model.Prior
}

func (s *scriptedExtractor) Propose(ctx context.Context, sentence string, prior *model.Prior) (string, error) {
	s.calls++
	s.priors = append(s.priors, prior)
	if s.err != nil {
		return "", s.err
	}
	idx := s.calls - 1
	if idx >= len(s.responses) {
		idx = len(s.responses) - 1
	}
	return s.responses[idx], nil
}

// ruleValidator marks a triplet valid when its predicate matches.
type ruleValidator struct {
	acceptPredicate string
}

func (v *ruleValidator) Validate(ctx context.Context, sentence string, t model.Triplet) model.Outcome {
	outcome := model.Outcome{
		Structural:           model.Pass(),
		ArgumentIntegrity:    model.Pass(),
		SemanticCompleteness: model.Pass(),
		Recoverability:       model.Pass(),
		Oracle:               model.OracleResult{CheckResult: model.Pass()},
	}
	if t.Predicate != v.acceptPredicate {
		outcome.Structural = model.Fail(fmt.Sprintf("predicate %q not accepted", t.Predicate))
		outcome.Feedback = "structural issues: wrong predicate"
	}
	return outcome
}

func newTestLoop(t *testing.T, e Extractor, v Validator, cfg model.LoopConfig) *Loop {
	t.Helper()
	l, err := New(e, v, cfg)
	if err != nil {
		t.Fatalf("New loop: %v", err)
	}
	return l
}

func TestLoop_SinglePassAcceptance(t *testing.T) {
	extractor := &scriptedExtractor{responses: []string{"跑步(小明, null)"}}
	l := newTestLoop(t, extractor, &ruleValidator{acceptPredicate: "跑步"}, model.LoopConfig{MaxIterations: 3})

	session := l.Run(context.Background(), "小明跑步。")

	if session.Status != model.StatusAccepted {
		t.Errorf("Expected accepted, got %s", session.Status)
	}
	if extractor.calls != 1 {
		t.Errorf("Expected exactly one extraction attempt, got %d", extractor.calls)
	}
	if len(session.Attempts) != 1 {
		t.Errorf("Expected one attempt in history, got %d", len(session.Attempts))
	}
}

func TestLoop_RevisionConverges(t *testing.T) {
	extractor := &scriptedExtractor{responses: []string{
		"走路(小明, null)",
		"跑步(小明, null)",
	}}
	l := newTestLoop(t, extractor, &ruleValidator{acceptPredicate: "跑步"}, model.LoopConfig{MaxIterations: 3})

	session := l.Run(context.Background(), "小明跑步。")

	if session.Status != model.StatusAccepted {
		t.Fatalf("Expected accepted, got %s", session.Status)
	}
	if len(session.Attempts) != 2 {
		t.Errorf("Expected 2 attempts, got %d", len(session.Attempts))
	}

	// The second call must carry the prior triplet and feedback.
	if extractor.priors[0] != nil {
		t.Error("Expected nil prior on the first attempt")
	}
	if extractor.priors[1] == nil {
		t.Fatal("Expected prior on the revision attempt")
	}
	if extractor.priors[1].Triplet.Predicate != "走路" {
		t.Errorf("Expected prior predicate 走路, got %q", extractor.priors[1].Triplet.Predicate)
	}
	if extractor.priors[1].Feedback == "" {
		t.Error("Expected feedback on the revision attempt")
	}
}

func TestLoop_ExhaustionAfterBudget(t *testing.T) {
	extractor := &scriptedExtractor{responses: []string{"走路(小明, null)"}}
	l := newTestLoop(t, extractor, &ruleValidator{acceptPredicate: "跑步"}, model.LoopConfig{MaxIterations: 3})

	session := l.Run(context.Background(), "小明跑步。")

	if session.Status != model.StatusExhausted {
		t.Errorf("Expected exhausted, got %s", session.Status)
	}
	if extractor.calls != 3 {
		t.Errorf("Expected exactly max_iterations extraction attempts, got %d", extractor.calls)
	}
	if len(session.Attempts) != 3 {
		t.Errorf("Expected history length equal to max_iterations, got %d", len(session.Attempts))
	}
}

func TestLoop_ZeroBudgetStillAttemptsOnce(t *testing.T) {
	extractor := &scriptedExtractor{responses: []string{"走路(小明, null)"}}
	l := newTestLoop(t, extractor, &ruleValidator{acceptPredicate: "跑步"}, model.LoopConfig{MaxIterations: 0})

	session := l.Run(context.Background(), "小明跑步。")

	if session.Status != model.StatusExhausted {
		t.Errorf("Expected exhausted, got %s", session.Status)
	}
	if extractor.calls != 1 {
		t.Errorf("Expected a single extraction attempt, got %d", extractor.calls)
	}
}

func TestLoop_SoftParseFailureStillValidates(t *testing.T) {
	extractor := &scriptedExtractor{responses: []string{"garbage with no structure"}}
	l := newTestLoop(t, extractor, &ruleValidator{acceptPredicate: "跑步"}, model.LoopConfig{MaxIterations: 1})

	session := l.Run(context.Background(), "小明跑步。")

	if session.Status != model.StatusExhausted {
		t.Errorf("Expected exhausted (not extraction_failed), got %s", session.Status)
	}
	if len(session.Attempts) != 1 {
		t.Fatalf("Expected the malformed candidate to reach validation, got %d attempts", len(session.Attempts))
	}
	if !session.Attempts[0].Triplet.IsEmpty() {
		t.Errorf("Expected empty triplet from soft parse failure, got %+v", session.Attempts[0].Triplet)
	}
}

func TestLoop_ExtractionFailedOnHardFault(t *testing.T) {
	extractor := &scriptedExtractor{err: &llm.OracleError{Op: "propose", Err: errors.New("connection refused")}}
	l := newTestLoop(t, extractor, &ruleValidator{acceptPredicate: "跑步"}, model.LoopConfig{MaxIterations: 3})

	session := l.Run(context.Background(), "小明跑步。")

	if session.Status != model.StatusExtractionFailed {
		t.Errorf("Expected extraction_failed, got %s", session.Status)
	}
	if len(session.Attempts) != 0 {
		t.Errorf("Expected no attempts after a hard fault, got %d", len(session.Attempts))
	}
	if extractor.calls != 1 {
		t.Errorf("Expected no retry of a failed oracle call, got %d calls", extractor.calls)
	}
	if session.Err == "" {
		t.Error("Expected the fault message on the session")
	}
}

func TestLoop_StagnationDetection(t *testing.T) {
	extractor := &scriptedExtractor{responses: []string{"走路(小明, null)"}}
	l := newTestLoop(t, extractor, &ruleValidator{acceptPredicate: "跑步"},
		model.LoopConfig{MaxIterations: 5, DetectStagnation: true})

	session := l.Run(context.Background(), "小明跑步。")

	if session.Status != model.StatusExhausted {
		t.Errorf("Expected exhausted, got %s", session.Status)
	}
	// Attempt 2 reproduces attempt 1 verbatim, so the loop stops at 2
	// instead of burning the full budget of 5.
	if len(session.Attempts) != 2 {
		t.Errorf("Expected early stop after 2 attempts, got %d", len(session.Attempts))
	}
}

func TestLoop_RejectsNegativeBudget(t *testing.T) {
	_, err := New(&scriptedExtractor{}, &ruleValidator{}, model.LoopConfig{MaxIterations: -1})
	if err == nil {
		t.Error("Expected error for negative max iterations")
	}
}

func TestNewRecord(t *testing.T) {
	extractor := &scriptedExtractor{responses: []string{
		"走路(小明, null)",
		"跑步(小明, null)",
	}}
	l := newTestLoop(t, extractor, &ruleValidator{acceptPredicate: "跑步"}, model.LoopConfig{MaxIterations: 3})
	session := l.Run(context.Background(), "小明跑步。")

	record := NewRecord(session, true)

	if record.Status != model.StatusAccepted {
		t.Errorf("Expected accepted record, got %s", record.Status)
	}
	if record.Triplet != "跑步(小明, null)" {
		t.Errorf("Unexpected final triplet: %q", record.Triplet)
	}
	if record.Attempts != 2 || len(record.History) != 2 {
		t.Errorf("Expected 2 attempts in record, got %d/%d", record.Attempts, len(record.History))
	}
	if record.History[0].Valid || !record.History[1].Valid {
		t.Errorf("Unexpected validity flags: %+v", record.History)
	}

	bare := NewRecord(session, false)
	if len(bare.History) != 0 {
		t.Errorf("Expected no history when disabled, got %d", len(bare.History))
	}
}
