// Package coordinator runs a test session: it steps through the test
// sequence over a word batch, collects results and decides each word's
// final verdict.
package coordinator

import (
	"errors"
	"fmt"
	"time"

	"github.com/at-ishikawa/vocadrill/internal/learning"
	"github.com/at-ishikawa/vocadrill/internal/quiz"
)

var (
	ErrNoWords          = errors.New("no words to test")
	ErrSessionActive    = errors.New("a session is already active")
	ErrNoActiveSession  = errors.New("no active session")
	ErrTestTypeMismatch = errors.New("result is for a different test")
	ErrNoFailedWords    = errors.New("no failed words to retry")
)

// QuestionSource builds the questions of a test.
type QuestionSource interface {
	Build(words []string, testType learning.TestType) []quiz.TestQuestion
}

// StartPolicy decides what happens when a session starts while another one
// is active.
type StartPolicy int

const (
	// RejectWhileActive keeps the active session and fails the new start.
	RejectWhileActive StartPolicy = iota
	// ReplaceActive drops the active session without reporting it.
	ReplaceActive
)

// StartRequest describes a session to start.
type StartRequest struct {
	PlanID           *int64
	Words            []string
	IsNewWordSession bool
}

// Machine holds the transition rules. Its methods never modify the State
// they receive; they return the next one.
type Machine struct {
	Questions QuestionSource
	Policy    StartPolicy
	Now       func() time.Time
}

func (m Machine) now() time.Time {
	if m.Now == nil {
		return time.Now()
	}
	return m.Now()
}

// Start begins a session over req.Words with the sequence for its kind and
// builds the first test's questions.
func (m Machine) Start(s State, req StartRequest) (State, error) {
	if len(req.Words) == 0 {
		return s, ErrNoWords
	}
	if s.Phase == PhaseActive && m.Policy == RejectWhileActive {
		return s, ErrSessionActive
	}

	session := learning.NewWordTestSession(req.PlanID, req.Words, req.IsNewWordSession, m.now())
	testType, _ := session.CurrentTestType()
	return State{
		Phase:       PhaseActive,
		Session:     session,
		Questions:   m.Questions.Build(session.Words, testType),
		Report:      learning.NewSessionLearningReport(),
		LastSession: s.LastSession,
	}, nil
}

// Complete records the results of the current test and moves to the next
// one. After the last test the state becomes Completed and the returned
// Outcome is non-nil.
func (m Machine) Complete(s State, results []learning.WordTestResult) (State, *Outcome, error) {
	current, ok := s.CurrentTestType()
	if !ok {
		return s, nil, ErrNoActiveSession
	}
	for _, result := range results {
		if result.TestType != current {
			return s, nil, fmt.Errorf("%w: got %s for word %s, current test is %s",
				ErrTestTypeMismatch, result.TestType, result.Word, current)
		}
	}

	session := s.Session.Advance(results)
	report := s.Report.Record(results)

	if !session.IsComplete() {
		next, _ := session.CurrentTestType()
		return State{
			Phase:       PhaseActive,
			Session:     session,
			Questions:   m.Questions.Build(session.Words, next),
			Report:      report,
			LastSession: s.LastSession,
		}, nil, nil
	}

	outcome := newOutcome(session, report)
	last := session.Clone()
	return State{
		Phase:       PhaseCompleted,
		Session:     session,
		Report:      report,
		Outcome:     &outcome,
		LastSession: &last,
	}, &outcome, nil
}

// Cancel drops the session and its questions without reporting anything.
func (m Machine) Cancel(s State) State {
	return State{
		Phase:       PhaseIdle,
		LastSession: s.LastSession,
	}
}

// Acknowledge returns a Completed state to Idle once results were shown.
func (m Machine) Acknowledge(s State) State {
	if s.Phase != PhaseCompleted {
		return s
	}
	return State{
		Phase:       PhaseIdle,
		LastSession: s.LastSession,
	}
}

// RetryFailed starts a review session over every word that was answered
// incorrectly at least once in the current or most recent session.
func (m Machine) RetryFailed(s State) (State, error) {
	source := s.LastSession
	if s.Phase == PhaseActive {
		source = &s.Session
	}
	if source == nil {
		return s, ErrNoFailedWords
	}

	failed := source.FailedWords()
	if len(failed) == 0 {
		return s, ErrNoFailedWords
	}
	return m.Start(s, StartRequest{
		PlanID:           source.PlanID,
		Words:            failed,
		IsNewWordSession: false,
	})
}
