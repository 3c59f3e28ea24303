package coordinator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/at-ishikawa/vocadrill/internal/async"
	"github.com/at-ishikawa/vocadrill/internal/learning"
	"github.com/at-ishikawa/vocadrill/internal/quiz"
)

//go:generate mockgen -source=coordinator.go -destination=../mocks/coordinator/mock_coordinator.go -package=mock_coordinator

// StatusReporter submits a word's final verdict to the plan server.
type StatusReporter interface {
	UpdateWordStatus(ctx context.Context, update learning.WordStatusUpdate) error
}

// SessionRefresher reloads a plan's daily session after results were sent.
type SessionRefresher interface {
	RefreshDailySession(ctx context.Context, planID int64) error
}

// EventKind names a state transition.
type EventKind string

const (
	EventSessionStarted   EventKind = "session_started"
	EventTestCompleted    EventKind = "test_completed"
	EventSessionCompleted EventKind = "session_completed"
	EventSessionCancelled EventKind = "session_cancelled"
	EventAcknowledged     EventKind = "acknowledged"
)

// Event is emitted after every transition with a snapshot of the new state.
type Event struct {
	Kind  EventKind
	State State
}

// Coordinator owns the single session of the process. All methods are safe
// for concurrent use, but results must still be submitted one test at a
// time: a result for any other test than the current one is rejected.
type Coordinator struct {
	machine    Machine
	reporter   StatusReporter
	refresher  SessionRefresher
	dispatcher *async.Dispatcher
	sink       func(Event)

	mu    sync.Mutex
	state State
}

type Option func(*Coordinator)

// WithStartPolicy sets what happens on a start while a session is active.
func WithStartPolicy(policy StartPolicy) Option {
	return func(c *Coordinator) {
		c.machine.Policy = policy
	}
}

// WithClock overrides time.Now for session start times.
func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) {
		c.machine.Now = now
	}
}

// WithEventSink registers the function receiving every Event. It is called
// synchronously after the transition, outside the coordinator's lock.
func WithEventSink(sink func(Event)) Option {
	return func(c *Coordinator) {
		c.sink = sink
	}
}

// WithRefresher sets who reloads the daily session after completion.
func WithRefresher(refresher SessionRefresher) Option {
	return func(c *Coordinator) {
		c.refresher = refresher
	}
}

// New creates an idle Coordinator.
func New(questions QuestionSource, reporter StatusReporter, dispatcher *async.Dispatcher, opts ...Option) *Coordinator {
	c := &Coordinator{
		machine:    Machine{Questions: questions},
		reporter:   reporter,
		dispatcher: dispatcher,
		sink:       func(Event) {},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a snapshot of the current state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// Questions returns the questions of the current test.
func (c *Coordinator) Questions() []quiz.TestQuestion {
	return c.State().Questions
}

// StartSession starts testing words. It fails without changing anything
// when words is empty or, under RejectWhileActive, a session is active.
func (c *Coordinator) StartSession(planID *int64, words []string, isNewWordSession bool) (State, error) {
	return c.transition(EventSessionStarted, func(s State) (State, error) {
		next, err := c.machine.Start(s, StartRequest{
			PlanID:           planID,
			Words:            words,
			IsNewWordSession: isNewWordSession,
		})
		if err != nil {
			slog.Default().Warn("failed to start a session",
				slog.Int("words", len(words)),
				slog.Bool("new_words", isNewWordSession),
				slog.Any("error", err),
			)
			return s, err
		}
		if s.Phase == PhaseActive {
			slog.Default().Info("replaced the active session without reporting it",
				slog.String("session_id", s.Session.ID.String()),
			)
		}
		slog.Default().Info("session started",
			slog.String("session_id", next.Session.ID.String()),
			slog.Int("words", len(next.Session.Words)),
			slog.Int("tests", len(next.Session.TestSequence)),
		)
		return next, nil
	})
}

// CompleteCurrentTest records the results of the current test. When it was
// the last test, each word's verdict is reported in the background and the
// daily session is refreshed afterwards.
func (c *Coordinator) CompleteCurrentTest(results []learning.WordTestResult) (State, error) {
	var outcome *Outcome
	state, err := c.transition(EventTestCompleted, func(s State) (State, error) {
		next, o, err := c.machine.Complete(s, results)
		if err != nil {
			return s, err
		}
		outcome = o
		return next, nil
	})
	if err != nil || outcome == nil {
		return state, err
	}

	c.submit(*outcome)
	c.sink(Event{Kind: EventSessionCompleted, State: state.Clone()})
	return state, nil
}

// CancelSession drops the session. Nothing is reported.
func (c *Coordinator) CancelSession() State {
	state, _ := c.transition(EventSessionCancelled, func(s State) (State, error) {
		if s.Phase == PhaseActive {
			slog.Default().Info("session cancelled",
				slog.String("session_id", s.Session.ID.String()),
				slog.Int("completed_tests", s.Session.CurrentTestIndex),
			)
		}
		return c.machine.Cancel(s), nil
	})
	return state
}

// Acknowledge returns to Idle after the results were shown.
func (c *Coordinator) Acknowledge() State {
	state, _ := c.transition(EventAcknowledged, func(s State) (State, error) {
		return c.machine.Acknowledge(s), nil
	})
	return state
}

// RetryFailedWords starts a review session over the words answered
// incorrectly at least once.
func (c *Coordinator) RetryFailedWords() (State, error) {
	return c.transition(EventSessionStarted, func(s State) (State, error) {
		next, err := c.machine.RetryFailed(s)
		if err != nil {
			if !errors.Is(err, ErrNoFailedWords) {
				slog.Default().Warn("failed to retry failed words", slog.Any("error", err))
			}
			return s, err
		}
		return next, nil
	})
}

func (c *Coordinator) transition(kind EventKind, fn func(State) (State, error)) (State, error) {
	c.mu.Lock()
	next, err := fn(c.state)
	if err != nil {
		snapshot := c.state.Clone()
		c.mu.Unlock()
		return snapshot, err
	}
	c.state = next
	snapshot := next.Clone()
	c.mu.Unlock()

	c.sink(Event{Kind: kind, State: snapshot})
	return snapshot, nil
}

func (c *Coordinator) submit(outcome Outcome) {
	for _, word := range outcome.SkippedWords {
		slog.Default().Warn("word has no results in session, skipping status update",
			slog.String("session_id", outcome.SessionID.String()),
			slog.String("word", word),
		)
	}
	slog.Default().Info("session completed",
		slog.String("session_id", outcome.SessionID.String()),
		slog.Int("correct", outcome.CorrectCount),
		slog.Int("total", outcome.TotalCount),
		slog.Float64("accuracy", outcome.Accuracy),
	)

	if outcome.PlanID == nil {
		slog.Default().Info("session has no plan, not reporting word status",
			slog.String("session_id", outcome.SessionID.String()),
		)
		return
	}
	planID := *outcome.PlanID

	group := c.dispatcher.Group()
	for _, verdict := range outcome.Verdicts {
		update := learning.WordStatusUpdate{
			PlanID:    planID,
			Word:      verdict.Word,
			IsCorrect: verdict.IsCorrect,
			TestType:  learning.RoundEndAssessment,
		}
		_ = group.Go(fmt.Sprintf("word-status:%s", verdict.Word), func(ctx context.Context) error {
			return c.reporter.UpdateWordStatus(ctx, update)
		})
	}
	if c.refresher == nil {
		return
	}
	_ = group.Then(fmt.Sprintf("refresh-daily-session:%d", planID), func(ctx context.Context) error {
		return c.refresher.RefreshDailySession(ctx, planID)
	})
}

// Wait blocks until every status update and refresh dispatched so far has
// finished.
func (c *Coordinator) Wait() {
	c.dispatcher.Wait()
}
