// Package home is the hub screen shown after onboarding.
package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/khalari/khalari/internal/engine"
	"github.com/khalari/khalari/internal/router"
	"github.com/khalari/khalari/internal/screen"
	"github.com/khalari/khalari/internal/screens/newtopic"
	"github.com/khalari/khalari/internal/screens/profile"
	roadmapscreen "github.com/khalari/khalari/internal/screens/roadmap"
	"github.com/khalari/khalari/internal/screens/welcome"
	"github.com/khalari/khalari/internal/ui/components"
	"github.com/khalari/khalari/internal/ui/layout"
	"github.com/khalari/khalari/internal/ui/theme"
)

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

const (
	itemContinue = iota
	itemNewTopic
	itemProfile
	itemQuit
)

// HomeScreen is the main menu.
type HomeScreen struct {
	deps screen.Deps
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen.
func New(deps screen.Deps) *HomeScreen {
	h := &HomeScreen{deps: deps}
	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			s := build()
			return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
		}
	}
	h.menu = components.NewMenu([]components.MenuItem{
		itemContinue: {Label: "CONTINUE", Action: push(func() screen.Screen {
			return roadmapscreen.New(deps)
		})},
		itemNewTopic: {Label: "NEW TOPIC", Action: push(func() screen.Screen {
			return NewTopic(deps)
		})},
		itemProfile: {Label: "PROFILE", Action: push(func() screen.Screen {
			return profile.New(deps)
		})},
		itemQuit: {Label: "QUIT", Action: func() tea.Cmd { return tea.Quit }},
	})
	h.syncMenu()
	return h
}

// NewTopic builds the topic screen that swaps itself for the roadmap
// overview once the roadmap is generated.
func NewTopic(deps screen.Deps) screen.Screen {
	return newtopic.New(deps, "", func() tea.Cmd {
		return func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: roadmapscreen.New(deps)}
		}
	})
}

// syncMenu enables CONTINUE only while a roadmap is active.
func (h *HomeScreen) syncMenu() {
	h.menu.SetDisabled(itemContinue, h.deps.Engine.Snapshot().Roadmap == nil)
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	h.syncMenu()
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	h.syncMenu()
	snap := h.deps.Engine.Snapshot()
	compact := layout.IsCompactHeight(height+layout.HeaderHeight+layout.FooterHeight) || layout.IsCompactWidth(width)
	cw := components.ContentWidth(width)

	bannerWidth := width
	if compact {
		bannerWidth = 0
	}

	var sections []string
	sections = append(sections, lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).
		Render(welcome.RenderBanner(bannerWidth)))
	sections = append(sections, renderGreeting(snap, cw))
	sections = append(sections, renderStats(snap, cw))
	sections = append(sections, renderMenu(h.menu, cw, compact))

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

func renderGreeting(snap engine.Snapshot, cw int) string {
	line := fmt.Sprintf("Hi %s!", snap.Learner.Name)
	sub := "Pick a topic to get your first roadmap."
	if snap.Roadmap != nil {
		sub = fmt.Sprintf("Learning %s: %d of %d modules done",
			snap.Roadmap.Topic, snap.Completed(), snap.Roadmap.Len())
	}
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(
		theme.Heading.Render(line) + "\n" + theme.Hint.Render(sub))
}

// renderStats renders the balance and streaks in a bordered box matching
// content width.
func renderStats(snap engine.Snapshot, cw int) string {
	diamonds := lipgloss.NewStyle().Foreground(theme.Diamond).Bold(true)
	if snap.Learner.Balance < 0 {
		diamonds = diamonds.Foreground(theme.Error)
	}
	streak := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	best := lipgloss.NewStyle().Foreground(theme.Gold).Bold(true)

	stats := fmt.Sprintf("%s  %s  %s",
		diamonds.Render(fmt.Sprintf("◆ %d", snap.Learner.Balance)),
		streak.Render(fmt.Sprintf("🔥 %d", snap.Learner.CurrentStreak)),
		best.Render(fmt.Sprintf("★ BEST %d", snap.Learner.HighestStreak)),
	)
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// renderMenu renders each item as a fixed-width button, or as plain lines
// on small terminals where bordered buttons would overflow.
func renderMenu(menu components.Menu, cw int, compact bool) string {
	var block string
	if compact {
		block = menu.View()
	} else {
		var buttons []string
		for i, item := range menu.Items {
			if item.Disabled {
				buttons = append(buttons, lipgloss.NewStyle().
					Width(buttonWidth).
					Align(lipgloss.Center).
					Foreground(theme.TextDim).
					Border(lipgloss.RoundedBorder()).
					BorderForeground(theme.Border).
					Padding(0, 1).
					Render(item.Label))
				continue
			}
			buttons = append(buttons, components.Button(item.Label, i == menu.Selected, buttonWidth))
		}
		block = strings.Join(buttons, "\n")
	}
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(block)
}
