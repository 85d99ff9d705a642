package module

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khalari/khalari/internal/engine"
	"github.com/khalari/khalari/internal/quiz"
	"github.com/khalari/khalari/internal/roadmap"
	"github.com/khalari/khalari/internal/router"
	"github.com/khalari/khalari/internal/screen"
	"github.com/khalari/khalari/internal/screens/memory"
	quizscreen "github.com/khalari/khalari/internal/screens/quiz"
	"github.com/khalari/khalari/internal/video"
)

type fakeVideos struct {
	query string
	err   error
}

func (f *fakeVideos) Search(_ context.Context, query, _ string) ([]video.Video, error) {
	f.query = query
	if f.err != nil {
		return nil, f.err
	}
	return []video.Video{{ID: "abc123", Title: "Goroutines explained", Channel: "GopherTV", Duration: "12:45"}}, nil
}

func newDeps(t *testing.T) screen.Deps {
	t.Helper()
	svc := engine.NewService(engine.Repos{}, nil)
	svc.Onboard(context.Background(), "Asha", "", "English")
	rm := &roadmap.Roadmap{ID: "rm-1", Topic: "Go"}
	for i := 0; i < 5; i++ {
		rm.Modules = append(rm.Modules, roadmap.Module{
			Title:       fmt.Sprintf("Step %d", i+1),
			Description: "Learn about **concurrency**.",
			Concepts:    []string{"goroutines", "channels"},
			VideoQuery:  "go concurrency",
		})
	}
	require.NoError(t, svc.StartRoadmap(context.Background(), rm))
	return screen.Deps{Engine: svc}
}

func key(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestInvalidIndexPops(t *testing.T) {
	s := New(newDeps(t), 9)
	cmd := s.Init()
	require.NotNil(t, cmd)
	assert.Equal(t, router.PopScreenMsg{}, cmd())
	assert.Nil(t, s.Leave(), "nothing to log for a module never shown")
}

func TestNoRoadmapPops(t *testing.T) {
	s := New(screen.Deps{Engine: engine.NewService(engine.Repos{}, nil)}, 0)
	cmd := s.Init()
	require.NotNil(t, cmd)
	assert.Equal(t, router.PopScreenMsg{}, cmd())
}

func TestShowsModuleAndVideos(t *testing.T) {
	deps := newDeps(t)
	videos := &fakeVideos{}
	deps.Videos = videos
	s := New(deps, 0)
	require.NotNil(t, s.Init())
	assert.True(t, s.loadingVideos)

	vs, err := videos.Search(context.Background(), "go concurrency", "en")
	require.NoError(t, err)
	s.Update(videosMsg{videos: vs})

	view := s.View(100, 60)
	assert.Contains(t, view, "Step 1")
	assert.Contains(t, view, "goroutines")
	assert.Contains(t, view, "Goroutines explained")
	assert.Contains(t, view, "BYPASS (3 free left)")
}

func TestVideoFailureIsNotFatal(t *testing.T) {
	s := New(newDeps(t), 0)
	s.Init()
	s.Update(videosMsg{err: video.ErrUnavailable})
	assert.Contains(t, s.View(100, 60), "Videos are unavailable")
}

func TestMenuPushesQuizAndBypass(t *testing.T) {
	s := New(newDeps(t), 0)
	s.Init()

	_, cmd := s.Update(key(tea.KeyEnter))
	require.NotNil(t, cmd)
	push, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	assert.IsType(t, &quizscreen.Screen{}, push.Screen)

	s.Update(key(tea.KeyDown))
	_, cmd = s.Update(key(tea.KeyEnter))
	require.NotNil(t, cmd)
	push, ok = cmd().(router.PushScreenMsg)
	require.True(t, ok)
	assert.IsType(t, &memory.Screen{}, push.Screen)
}

func TestCompletedModuleCannotBeBypassed(t *testing.T) {
	deps := newDeps(t)
	_, err := deps.Engine.CompleteByQuiz(context.Background(), 0, quiz.Result{Total: 1, Correct: 1, Score: 1, Passed: true})
	require.NoError(t, err)

	s := New(deps, 0)
	assert.Equal(t, "RETAKE QUIZ", s.menu.Items[itemQuiz].Label)
	assert.True(t, s.menu.Items[itemBypass].Disabled)
	assert.Contains(t, s.View(100, 60), "COMPLETED")
}

func TestBypassLabelShowsPenaltyAfterFreeAttempts(t *testing.T) {
	deps := newDeps(t)
	for i := 0; i < 3; i++ {
		_, err := deps.Engine.Bypass(context.Background(), 0, false)
		require.NoError(t, err)
	}
	s := New(deps, 0)
	assert.Equal(t, "BYPASS (-20 ◆)", s.menu.Items[itemBypass].Label)
}

func TestLeaveLogsTimeOnce(t *testing.T) {
	deps := newDeps(t)
	s := New(deps, 0)
	start := time.Now()
	clock := start
	s.now = func() time.Time { return clock }
	s.Init()

	clock = start.Add(4 * time.Minute)
	s.Leave()
	s.Leave()

	days := deps.Engine.LastDays(1)
	require.Len(t, days, 1)
	assert.Equal(t, int64(240), days[0].TimeSpentSeconds)
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "This module is still locked.", describe(fmt.Errorf("x: %w", roadmap.ErrModuleLocked)))
	assert.Equal(t, "boom", describe(errors.New("boom")))
}
