package study

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/vocadrill/internal/coordinator"
	"github.com/at-ishikawa/vocadrill/internal/learning"
	mock_study "github.com/at-ishikawa/vocadrill/internal/mocks/study"
	"github.com/at-ishikawa/vocadrill/internal/planapi"
)

func int64Ptr(v int64) *int64 {
	return &v
}

func TestLauncher_LaunchDaily(t *testing.T) {
	daily := learning.DailySession{
		NewWords:    []string{"cat", "dog"},
		ReviewWords: []string{"bird"},
	}

	tests := []struct {
		name      string
		daily     learning.DailySession
		dailyErr  error
		kind      Kind
		familiar  []string
		wantWords []string
		wantNew   bool
		wantErr   bool
	}{
		{
			name:      "new words first",
			daily:     daily,
			kind:      KindAuto,
			wantWords: []string{"cat", "dog"},
			wantNew:   true,
		},
		{
			name: "paused new words fall back to review",
			daily: learning.DailySession{
				NewWords:        []string{"cat"},
				ReviewWords:     []string{"bird"},
				IsNewWordPaused: true,
			},
			kind:      KindAuto,
			wantWords: []string{"bird"},
		},
		{
			name:      "review requested",
			daily:     daily,
			kind:      KindReview,
			wantWords: []string{"bird"},
		},
		{
			name:      "familiar words are removed",
			daily:     daily,
			kind:      KindNew,
			familiar:  []string{"CAT"},
			wantWords: []string{"dog"},
			wantNew:   true,
		},
		{
			name:     "fetch failure",
			dailyErr: errors.New("timeout"),
			kind:     KindAuto,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			plans := mock_study.NewMockPlanService(ctrl)
			sessions := mock_study.NewMockSessionStarter(ctrl)

			plans.EXPECT().GetDailySession(gomock.Any(), int64(3)).Return(tt.daily, tt.dailyErr)
			if !tt.wantErr {
				sessions.EXPECT().StartSession(int64Ptr(3), tt.wantWords, tt.wantNew).
					Return(coordinator.State{Phase: coordinator.PhaseActive}, nil)
			}

			launcher := NewLauncher(plans, learning.NewFamiliarWords(tt.familiar...), sessions)
			got, err := launcher.LaunchDaily(context.Background(), 3, tt.kind)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Started)
			assert.Equal(t, coordinator.PhaseActive, got.State.Phase)

			cached, ok := launcher.DailySession(3)
			assert.True(t, ok)
			assert.Equal(t, tt.daily, cached)
		})
	}
}

func TestLauncher_Launch_AllFamiliar(t *testing.T) {
	tests := []struct {
		name         string
		planID       *int64
		progressErr  error
		wantProgress *planapi.Progress
	}{
		{
			name:         "progress is refreshed",
			planID:       int64Ptr(8),
			wantProgress: &planapi.Progress{PlanID: 8, LearnedWords: 10, TotalWords: 20},
		},
		{
			name:        "progress failure is not returned",
			planID:      int64Ptr(8),
			progressErr: errors.New("unavailable"),
		},
		{
			name: "no plan",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			plans := mock_study.NewMockPlanService(ctrl)
			sessions := mock_study.NewMockSessionStarter(ctrl)
			sessions.EXPECT().StartSession(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			if tt.planID != nil {
				progress := planapi.Progress{}
				if tt.wantProgress != nil {
					progress = *tt.wantProgress
				}
				plans.EXPECT().GetProgress(gomock.Any(), *tt.planID).Return(progress, tt.progressErr).Times(1)
			}

			launcher := NewLauncher(plans, learning.NewFamiliarWords("cat", "dog"), sessions)
			got, err := launcher.Launch(context.Background(), tt.planID, []string{"Cat", "dog"}, true)
			require.NoError(t, err)
			assert.False(t, got.Started)
			assert.Equal(t, []string{"Cat", "dog"}, got.FamiliarWords)
			assert.Equal(t, tt.wantProgress, got.Progress)
		})
	}
}

func TestLauncher_LaunchDaily_EmptyBatch(t *testing.T) {
	tests := []struct {
		name  string
		daily learning.DailySession
		kind  Kind
	}{
		{
			name: "no new or review words",
			kind: KindAuto,
		},
		{
			name:  "no review words requested",
			daily: learning.DailySession{NewWords: []string{"cat"}},
			kind:  KindReview,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			plans := mock_study.NewMockPlanService(ctrl)
			sessions := mock_study.NewMockSessionStarter(ctrl)
			progress := planapi.Progress{PlanID: 5, LearnedWords: 20, TotalWords: 20}

			plans.EXPECT().GetDailySession(gomock.Any(), int64(5)).Return(tt.daily, nil)
			plans.EXPECT().GetProgress(gomock.Any(), int64(5)).Return(progress, nil)
			sessions.EXPECT().StartSession(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

			launcher := NewLauncher(plans, nil, sessions)
			got, err := launcher.LaunchDaily(context.Background(), 5, tt.kind)
			require.NoError(t, err)
			assert.False(t, got.Started)
			assert.True(t, got.EmptyBatch)
			assert.Empty(t, got.FamiliarWords)
			assert.Equal(t, &progress, got.Progress)
		})
	}
}

func TestLauncher_Launch_StartError(t *testing.T) {
	ctrl := gomock.NewController(t)
	sessions := mock_study.NewMockSessionStarter(ctrl)
	sessions.EXPECT().StartSession(gomock.Nil(), []string{}, false).Return(coordinator.State{}, coordinator.ErrNoWords)

	launcher := NewLauncher(mock_study.NewMockPlanService(ctrl), nil, sessions)
	_, err := launcher.Launch(context.Background(), nil, []string{}, false)
	assert.ErrorIs(t, err, coordinator.ErrNoWords)
}

func TestLauncher_RefreshDailySession(t *testing.T) {
	ctrl := gomock.NewController(t)
	plans := mock_study.NewMockPlanService(ctrl)
	daily := learning.DailySession{ReviewWords: []string{"bird"}}
	progress := planapi.Progress{PlanID: 4, ReviewingWords: 1}
	gomock.InOrder(
		plans.EXPECT().GetDailySession(gomock.Any(), int64(4)).Return(daily, nil),
		plans.EXPECT().GetProgress(gomock.Any(), int64(4)).Return(progress, nil),
	)

	launcher := NewLauncher(plans, nil, nil)
	require.NoError(t, launcher.RefreshDailySession(context.Background(), 4))

	gotDaily, ok := launcher.DailySession(4)
	assert.True(t, ok)
	assert.Equal(t, daily, gotDaily)
	gotProgress, ok := launcher.Progress(4)
	assert.True(t, ok)
	assert.Equal(t, progress, gotProgress)
}
