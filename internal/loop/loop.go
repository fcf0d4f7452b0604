// Package loop implements the bounded extract-validate-revise state
// machine that coordinates the external extractor and the validation
// engine for a single sentence.
//
// States: Extracting → Validating → (Accepted | Exhausted | Revising),
// Revising → Extracting, plus the terminal ExtractionFailed reached only on
// a hard extractor fault. The iteration budget is the sole mechanism
// bounding total work: the loop makes no guarantee of improvement between
// attempts.
package loop

import (
	"context"
	"fmt"
	"os"

	"github.com/triplex-nlp/triplex/internal/codec"
	"github.com/triplex-nlp/triplex/internal/model"
)

// Extractor is the external capability that proposes candidate triplet
// text: once for a fresh sentence, repeatedly with feedback for revision.
type Extractor interface {
	Propose(ctx context.Context, sentence string, prior *model.Prior) (string, error)
}

// Validator judges a (sentence, triplet) pair. *validate.Engine satisfies
// this.
type Validator interface {
	Validate(ctx context.Context, sentence string, triplet model.Triplet) model.Outcome
}

type state int

const (
	stateExtracting state = iota
	stateValidating
	stateRevising
)

// Loop runs revision sessions. Steps within one session are strictly
// sequential; separate Loop calls are independent and may run concurrently.
type Loop struct {
	extractor        Extractor
	validator        Validator
	maxIterations    int
	detectStagnation bool
	verbose          bool
}

// New creates a revision loop. MaxIterations is required and must be
// non-negative; zero is legal and yields exactly one attempt before
// exhaustion. There is no built-in default.
func New(extractor Extractor, validator Validator, cfg model.LoopConfig) (*Loop, error) {
	if extractor == nil {
		return nil, fmt.Errorf("extractor is required")
	}
	if validator == nil {
		return nil, fmt.Errorf("validator is required")
	}
	if cfg.MaxIterations < 0 {
		return nil, fmt.Errorf("max iterations must be >= 0, got %d", cfg.MaxIterations)
	}

	return &Loop{
		extractor:        extractor,
		validator:        validator,
		maxIterations:    cfg.MaxIterations,
		detectStagnation: cfg.DetectStagnation,
	}, nil
}

// SetVerbose enables per-attempt diagnostics on stderr.
func (l *Loop) SetVerbose(v bool) {
	l.verbose = v
}

// Run processes one sentence to a terminal state. It always returns a
// session; extractor faults are reported through the session status, never
// as an error, so one sentence's failure cannot abort a batch.
func (l *Loop) Run(ctx context.Context, sentence string) *model.Session {
	session := &model.Session{Sentence: sentence}

	var (
		prior   *model.Prior
		current model.Triplet
	)

	st := stateExtracting
	for {
		switch st {
		case stateExtracting:
			raw, err := l.extractor.Propose(ctx, sentence, prior)
			if err != nil {
				// Hard extractor fault: terminal, no further attempts.
				l.logf("extraction failed: %v", err)
				session.Status = model.StatusExtractionFailed
				session.Err = err.Error()
				return session
			}
			// Even a soft-parse failure flows into validation.
			current = codec.Parse(raw)
			st = stateValidating

		case stateValidating:
			outcome := l.validator.Validate(ctx, sentence, current)
			session.Attempts = append(session.Attempts, model.Attempt{Triplet: current, Outcome: outcome})
			l.logf("attempt %d: %s → valid=%v", len(session.Attempts), codec.Format(current), outcome.IsValid())

			if outcome.IsValid() {
				session.Status = model.StatusAccepted
				return session
			}
			if l.detectStagnation && l.stagnated(session) {
				l.logf("revision reproduced the previous triplet; stopping early")
				session.Status = model.StatusExhausted
				return session
			}
			if len(session.Attempts) >= l.maxIterations {
				session.Status = model.StatusExhausted
				return session
			}
			st = stateRevising

		case stateRevising:
			last := session.Attempts[len(session.Attempts)-1]
			prior = &model.Prior{Triplet: last.Triplet, Feedback: last.Outcome.Feedback}
			st = stateExtracting
		}
	}
}

// stagnated reports whether the newest attempt serializes identically to
// the one before it.
func (l *Loop) stagnated(session *model.Session) bool {
	n := len(session.Attempts)
	if n < 2 {
		return false
	}
	return codec.Format(session.Attempts[n-1].Triplet) == codec.Format(session.Attempts[n-2].Triplet)
}

func (l *Loop) logf(format string, args ...interface{}) {
	if l.verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}

// NewRecord converts a completed session into its export shape.
func NewRecord(session *model.Session, includeHistory bool) model.Record {
	record := model.Record{
		Sentence: session.Sentence,
		Status:   session.Status,
		Attempts: len(session.Attempts),
		Error:    session.Err,
	}

	if final, ok := session.FinalAttempt(); ok {
		record.Triplet = codec.Format(final.Triplet)
	}

	if includeHistory {
		for _, attempt := range session.Attempts {
			record.History = append(record.History, model.AttemptRecord{
				Triplet:  codec.Format(attempt.Triplet),
				Valid:    attempt.Outcome.IsValid(),
				Feedback: attempt.Outcome.Feedback,
			})
		}
	}

	return record
}
