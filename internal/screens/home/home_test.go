package home

import (
	"context"
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/khalari/khalari/internal/engine"
	"github.com/khalari/khalari/internal/roadmap"
	"github.com/khalari/khalari/internal/router"
	"github.com/khalari/khalari/internal/screen"
	"github.com/khalari/khalari/internal/screens/newtopic"
	"github.com/khalari/khalari/internal/screens/profile"
	roadmapscreen "github.com/khalari/khalari/internal/screens/roadmap"
)

func newDeps() screen.Deps {
	svc := engine.NewService(engine.Repos{}, nil)
	svc.Onboard(context.Background(), "Asha", "", "English")
	return screen.Deps{Engine: svc}
}

func startRoadmap(t *testing.T, svc *engine.Service) {
	t.Helper()
	rm := &roadmap.Roadmap{ID: "rm-1", Topic: "Go"}
	for i := 0; i < 5; i++ {
		rm.Modules = append(rm.Modules, roadmap.Module{Title: fmt.Sprintf("Step %d", i+1)})
	}
	if err := svc.StartRoadmap(context.Background(), rm); err != nil {
		t.Fatal(err)
	}
}

func selectItem(t *testing.T, h *HomeScreen) screen.Screen {
	t.Helper()
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	return push.Screen
}

func TestContinueDisabledWithoutRoadmap(t *testing.T) {
	h := New(newDeps())
	if !h.menu.Items[itemContinue].Disabled {
		t.Error("CONTINUE should be disabled without a roadmap")
	}
	if h.menu.Selected != itemNewTopic {
		t.Errorf("selected = %d, want NEW TOPIC", h.menu.Selected)
	}
	if _, ok := selectItem(t, h).(*newtopic.Screen); !ok {
		t.Error("NEW TOPIC should open the topic prompt")
	}
}

func TestContinueOpensRoadmap(t *testing.T) {
	deps := newDeps()
	startRoadmap(t, deps.Engine)
	h := New(deps)
	if h.menu.Selected != itemContinue {
		t.Fatalf("selected = %d, want CONTINUE", h.menu.Selected)
	}
	if _, ok := selectItem(t, h).(*roadmapscreen.Screen); !ok {
		t.Error("CONTINUE should open the roadmap overview")
	}
}

func TestMenuFollowsRoadmapState(t *testing.T) {
	deps := newDeps()
	h := New(deps)
	startRoadmap(t, deps.Engine)
	h.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if h.menu.Items[itemContinue].Disabled || h.menu.Selected != itemContinue {
		t.Error("CONTINUE should become available once a roadmap starts")
	}
}

func TestProfileItem(t *testing.T) {
	h := New(newDeps())
	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if _, ok := selectItem(t, h).(*profile.Screen); !ok {
		t.Error("PROFILE should open the profile")
	}
}

func TestNewTopicBuildsPrompt(t *testing.T) {
	s := NewTopic(newDeps())
	if _, ok := s.(*newtopic.Screen); !ok {
		t.Fatalf("NewTopic returned %T", s)
	}
}

func TestViewShowsStats(t *testing.T) {
	deps := newDeps()
	startRoadmap(t, deps.Engine)
	view := New(deps).View(100, 40)
	for _, want := range []string{"Hi Asha!", "◆ 0", "Learning Go: 0 of 5 modules done", "NEW TOPIC"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
