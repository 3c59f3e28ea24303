// Package learning defines the state of a day's word tests: sessions,
// results, per-word reports and familiar words.
package learning

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// WordTestSession is a run of a fixed test sequence over a fixed word batch.
// CurrentTestIndex only grows; the session is complete when it reaches the
// length of TestSequence.
type WordTestSession struct {
	ID               uuid.UUID
	PlanID           *int64
	Words            []string
	TestSequence     []TestType
	IsNewWordSession bool
	CurrentTestIndex int
	Results          []WordTestResult
	StartTime        time.Time
}

// NewWordTestSession starts a session at the first test of the sequence for
// the session kind.
func NewWordTestSession(planID *int64, words []string, isNewWordSession bool, now time.Time) WordTestSession {
	return WordTestSession{
		ID:               uuid.New(),
		PlanID:           planID,
		Words:            slices.Clone(words),
		TestSequence:     SequenceFor(isNewWordSession),
		IsNewWordSession: isNewWordSession,
		StartTime:        now,
	}
}

func (s WordTestSession) IsComplete() bool {
	return s.CurrentTestIndex == len(s.TestSequence)
}

// CurrentTestType returns the test to run next. ok is false once complete.
func (s WordTestSession) CurrentTestType() (TestType, bool) {
	if s.IsComplete() {
		return "", false
	}
	return s.TestSequence[s.CurrentTestIndex], true
}

// Advance returns a copy with results appended and the index moved to the
// next test. The receiver is not modified.
func (s WordTestSession) Advance(results []WordTestResult) WordTestSession {
	next := s.Clone()
	next.Results = append(next.Results, results...)
	if !next.IsComplete() {
		next.CurrentTestIndex++
	}
	return next
}

func (s WordTestSession) Clone() WordTestSession {
	clone := s
	clone.Words = slices.Clone(s.Words)
	clone.TestSequence = slices.Clone(s.TestSequence)
	clone.Results = slices.Clone(s.Results)
	if s.PlanID != nil {
		planID := *s.PlanID
		clone.PlanID = &planID
	}
	return clone
}

// Accuracy is correct over total across all collected results, or 0 when
// there are none.
func (s WordTestSession) Accuracy() float64 {
	return Accuracy(s.Results)
}

// FailedWords returns the distinct words with at least one incorrect result,
// in the order they first failed.
func (s WordTestSession) FailedWords() []string {
	var failed []string
	seen := make(map[string]struct{})
	for _, result := range s.Results {
		if result.IsCorrect {
			continue
		}
		key := strings.ToLower(result.Word)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		failed = append(failed, result.Word)
	}
	return failed
}

func Accuracy(results []WordTestResult) float64 {
	if len(results) == 0 {
		return 0
	}
	correct := 0
	for _, result := range results {
		if result.IsCorrect {
			correct++
		}
	}
	return float64(correct) / float64(len(results))
}
