// Package study decides which words a session tests and starts it.
package study

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/at-ishikawa/vocadrill/internal/coordinator"
	"github.com/at-ishikawa/vocadrill/internal/learning"
	"github.com/at-ishikawa/vocadrill/internal/planapi"
)

//go:generate mockgen -source=launcher.go -destination=../mocks/study/mock_launcher.go -package=mock_study

// PlanService reads a plan's state from the plan server.
type PlanService interface {
	GetDailySession(ctx context.Context, planID int64) (learning.DailySession, error)
	GetProgress(ctx context.Context, planID int64) (planapi.Progress, error)
}

// SessionStarter starts a test session.
type SessionStarter interface {
	StartSession(planID *int64, words []string, isNewWordSession bool) (coordinator.State, error)
}

// Kind selects which part of the daily session to test.
type Kind string

const (
	KindAuto   Kind = "auto"
	KindNew    Kind = "new"
	KindReview Kind = "review"
)

// Result describes what a launch did.
type Result struct {
	// Started is false when the batch was empty or every word was familiar.
	Started bool
	// EmptyBatch is set when there were no words to test at all.
	EmptyBatch bool
	State   coordinator.State
	// FamiliarWords were removed from the batch before starting.
	FamiliarWords []string
	// Progress is set when the launch refreshed it instead of starting.
	Progress *planapi.Progress
}

type Launcher struct {
	plans    PlanService
	familiar *learning.FamiliarWords
	sessions SessionStarter

	mu       sync.Mutex
	daily    map[int64]learning.DailySession
	progress map[int64]planapi.Progress
}

func NewLauncher(plans PlanService, familiar *learning.FamiliarWords, sessions SessionStarter) *Launcher {
	if familiar == nil {
		familiar = learning.NewFamiliarWords()
	}
	return &Launcher{
		plans:    plans,
		familiar: familiar,
		sessions: sessions,
		daily:    make(map[int64]learning.DailySession),
		progress: make(map[int64]planapi.Progress),
	}
}

// SetSessions sets the starter when it is created after the launcher.
func (l *Launcher) SetSessions(sessions SessionStarter) {
	l.sessions = sessions
}

// LaunchDaily fetches today's session of a plan and starts testing the batch
// selected by kind.
func (l *Launcher) LaunchDaily(ctx context.Context, planID int64, kind Kind) (Result, error) {
	daily, err := l.plans.GetDailySession(ctx, planID)
	if err != nil {
		slog.Default().Warn("failed to fetch the daily session",
			slog.Int64("plan_id", planID),
			slog.Any("error", err),
		)
		return Result{}, fmt.Errorf("plans.GetDailySession() > %w", err)
	}
	l.mu.Lock()
	l.daily[planID] = daily
	l.mu.Unlock()

	words, isNew := selectBatch(daily, kind)
	return l.Launch(ctx, &planID, words, isNew)
}

func selectBatch(daily learning.DailySession, kind Kind) ([]string, bool) {
	switch kind {
	case KindNew:
		return daily.NewWords, true
	case KindReview:
		return daily.ReviewWords, false
	default:
		return daily.Batch()
	}
}

// Launch removes familiar words from words and starts a session over the
// rest. When nothing is left, including an empty batch, no session starts
// and the plan's progress is refreshed instead.
func (l *Launcher) Launch(ctx context.Context, planID *int64, words []string, isNewWordSession bool) (Result, error) {
	remaining := l.familiar.Filter(words)
	result := Result{}
	for _, word := range words {
		if l.familiar.Contains(word) {
			result.FamiliarWords = append(result.FamiliarWords, word)
		}
	}

	if len(remaining) == 0 {
		if len(words) == 0 {
			result.EmptyBatch = true
			slog.Default().Info("no words to test, skipping the session")
		} else {
			slog.Default().Info("every word is familiar, skipping the session",
				slog.Int("words", len(words)),
			)
		}
		if planID != nil {
			if progress, ok := l.refreshProgress(ctx, *planID); ok {
				result.Progress = &progress
			}
		}
		return result, nil
	}

	state, err := l.sessions.StartSession(planID, remaining, isNewWordSession)
	if err != nil {
		return result, fmt.Errorf("sessions.StartSession() > %w", err)
	}
	result.Started = true
	result.State = state
	return result, nil
}

// RefreshDailySession reloads a plan's daily session and progress after a
// session's results were sent. Failures are logged only.
func (l *Launcher) RefreshDailySession(ctx context.Context, planID int64) error {
	daily, err := l.plans.GetDailySession(ctx, planID)
	if err != nil {
		return fmt.Errorf("plans.GetDailySession() > %w", err)
	}
	l.mu.Lock()
	l.daily[planID] = daily
	l.mu.Unlock()

	l.refreshProgress(ctx, planID)
	return nil
}

func (l *Launcher) refreshProgress(ctx context.Context, planID int64) (planapi.Progress, bool) {
	progress, err := l.plans.GetProgress(ctx, planID)
	if err != nil {
		slog.Default().Warn("failed to refresh the plan progress",
			slog.Int64("plan_id", planID),
			slog.Any("error", err),
		)
		return planapi.Progress{}, false
	}
	l.mu.Lock()
	l.progress[planID] = progress
	l.mu.Unlock()
	return progress, true
}

// DailySession returns the last fetched daily session of a plan.
func (l *Launcher) DailySession(planID int64) (learning.DailySession, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	daily, ok := l.daily[planID]
	return daily, ok
}

// Progress returns the last fetched progress of a plan.
func (l *Launcher) Progress(planID int64) (planapi.Progress, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	progress, ok := l.progress[planID]
	return progress, ok
}
