package coordinator

import (
	"slices"

	"github.com/google/uuid"

	"github.com/at-ishikawa/vocadrill/internal/learning"
	"github.com/at-ishikawa/vocadrill/internal/quiz"
)

// Phase is where the coordinator is in a session's life.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseActive
	PhaseCompleted
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseActive:
		return "active"
	case PhaseCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// State is a snapshot of the coordinator. Session and Report are meaningful
// while Active; Outcome is set while Completed. LastSession keeps the most
// recently finished session so its failed words can be retried.
type State struct {
	Phase       Phase
	Session     learning.WordTestSession
	Questions   []quiz.TestQuestion
	Report      learning.SessionLearningReport
	Outcome     *Outcome
	LastSession *learning.WordTestSession
}

// CurrentTestType returns the test the UI should show. ok is false unless a
// session is active.
func (s State) CurrentTestType() (learning.TestType, bool) {
	if s.Phase != PhaseActive {
		return "", false
	}
	return s.Session.CurrentTestType()
}

// Clone returns a deep copy safe to hand to other goroutines.
func (s State) Clone() State {
	clone := s
	clone.Session = s.Session.Clone()
	clone.Questions = slices.Clone(s.Questions)
	clone.Report = s.Report.Clone()
	if s.Outcome != nil {
		outcome := s.Outcome.clone()
		clone.Outcome = &outcome
	}
	if s.LastSession != nil {
		last := s.LastSession.Clone()
		clone.LastSession = &last
	}
	return clone
}

// Outcome is the end-of-session summary.
type Outcome struct {
	SessionID        uuid.UUID
	PlanID           *int64
	IsNewWordSession bool
	Verdicts         []learning.WordVerdict
	// SkippedWords had no buildable question in any test and are not reported.
	SkippedWords []string
	Accuracy     float64
	CorrectCount int
	TotalCount   int
}

func (o Outcome) clone() Outcome {
	clone := o
	clone.Verdicts = slices.Clone(o.Verdicts)
	clone.SkippedWords = slices.Clone(o.SkippedWords)
	return clone
}

// PassedWords returns the words whose verdict is correct.
func (o Outcome) PassedWords() []string {
	var words []string
	for _, verdict := range o.Verdicts {
		if verdict.IsCorrect {
			words = append(words, verdict.Word)
		}
	}
	return words
}

func newOutcome(session learning.WordTestSession, report learning.SessionLearningReport) Outcome {
	outcome := Outcome{
		SessionID:        session.ID,
		IsNewWordSession: session.IsNewWordSession,
		Verdicts:         report.Verdicts(),
		Accuracy:         session.Accuracy(),
		TotalCount:       len(session.Results),
	}
	if session.PlanID != nil {
		planID := *session.PlanID
		outcome.PlanID = &planID
	}
	for _, result := range session.Results {
		if result.IsCorrect {
			outcome.CorrectCount++
		}
	}
	for _, word := range session.Words {
		if len(report.Entries(word)) == 0 {
			outcome.SkippedWords = append(outcome.SkippedWords, word)
		}
	}
	return outcome
}
