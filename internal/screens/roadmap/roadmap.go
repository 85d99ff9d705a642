// Package roadmap renders the active roadmap with per-module lock state and
// the suggested follow-up topics.
package roadmap

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/khalari/khalari/internal/engine"
	rm "github.com/khalari/khalari/internal/roadmap"
	"github.com/khalari/khalari/internal/router"
	"github.com/khalari/khalari/internal/screen"
	modulescreen "github.com/khalari/khalari/internal/screens/module"
	"github.com/khalari/khalari/internal/screens/newtopic"
	"github.com/khalari/khalari/internal/ui/components"
	"github.com/khalari/khalari/internal/ui/layout"
	"github.com/khalari/khalari/internal/ui/theme"
)

const lockedNotice = "Complete the previous module to unlock this one."

// Screen is the roadmap overview.
type Screen struct {
	deps   screen.Deps
	cursor int
	flash  string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the overview with the cursor on the first module that is not
// completed.
func New(deps screen.Deps) *Screen {
	s := &Screen{deps: deps}
	for i, st := range deps.Engine.Snapshot().States {
		if st != rm.Completed {
			s.cursor = i
			break
		}
	}
	return s
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Title() string {
	if r := s.deps.Engine.Snapshot().Roadmap; r != nil {
		return r.Topic
	}
	return "Roadmap"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "N", Description: "New topic"},
		{Key: "Esc", Description: "Back"},
	}
}

// items is the number of selectable rows: modules then further topics.
func items(snap engine.Snapshot) int {
	if snap.Roadmap == nil {
		return 0
	}
	return snap.Roadmap.Len() + len(snap.Roadmap.FurtherTopics)
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	snap := s.deps.Engine.Snapshot()
	n := items(snap)
	s.flash = ""

	switch kmsg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < n-1 {
			s.cursor++
		}
	case "n", "N":
		return s, s.pushTopic("")
	case "enter":
		return s, s.open(snap)
	}
	return s, nil
}

func (s *Screen) open(snap engine.Snapshot) tea.Cmd {
	if snap.Roadmap == nil {
		return s.pushTopic("")
	}
	if s.cursor >= snap.Roadmap.Len() {
		further := snap.Roadmap.FurtherTopics
		idx := s.cursor - snap.Roadmap.Len()
		if idx < len(further) {
			return s.pushTopic(further[idx])
		}
		return nil
	}
	if snap.States[s.cursor] == rm.Locked {
		s.flash = lockedNotice
		return nil
	}
	next := modulescreen.New(s.deps, s.cursor)
	return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

// pushTopic opens the topic prompt; it pops back here once the new roadmap
// is started.
func (s *Screen) pushTopic(topic string) tea.Cmd {
	next := newtopic.New(s.deps, topic, func() tea.Cmd {
		s.cursor = 0
		return func() tea.Msg { return router.PopScreenMsg{} }
	})
	return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func badge(st rm.State) string {
	switch st {
	case rm.Completed:
		return theme.Completed.Render("✓")
	case rm.Unlocked:
		return theme.Unlocked.Render("▶")
	default:
		return theme.Locked.Render("🔒")
	}
}

func stateStyle(st rm.State) lipgloss.Style {
	switch st {
	case rm.Completed:
		return theme.Completed
	case rm.Unlocked:
		return theme.Unlocked
	default:
		return theme.Locked
	}
}

func (s *Screen) View(width, height int) string {
	snap := s.deps.Engine.Snapshot()
	if snap.Roadmap == nil {
		msg := theme.Heading.Render("No roadmap yet") + "\n\n" +
			theme.Hint.Render("Press N or Enter to pick a topic.")
		return layout.Center(msg, width, height)
	}

	cw := min(width-4, 72)
	var b strings.Builder

	done := snap.Completed()
	total := snap.Roadmap.Len()
	b.WriteString(theme.Heading.Render(snap.Roadmap.Topic))
	b.WriteString("\n")
	b.WriteString(components.RoadmapProgress(done, total, cw).View())
	if snap.Bonus {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Gold).Render("★ Roadmap complete: +50 diamonds earned"))
	}
	b.WriteString("\n\n")

	for i, m := range snap.Roadmap.Modules {
		st := snap.States[i]
		prefix := "  "
		title := stateStyle(st).Render(fmt.Sprintf("%d. %s", i+1, m.Title))
		if i == s.cursor {
			prefix = theme.Selected.Render("▸ ")
			title = theme.Selected.Render(fmt.Sprintf("%d. %s", i+1, m.Title))
		}
		fmt.Fprintf(&b, "%s%s %s\n", prefix, badge(st), title)
	}

	if further := snap.Roadmap.FurtherTopics; len(further) > 0 {
		b.WriteString("\n")
		b.WriteString(theme.Heading.Render("What to learn next"))
		b.WriteString("\n")
		for j, topic := range further {
			i := total + j
			line := "  → " + topic
			style := lipgloss.NewStyle().Foreground(theme.TextDim)
			if i == s.cursor {
				line = "▸ → " + topic
				style = theme.Selected
			}
			b.WriteString(style.Render(line))
			b.WriteString("\n")
		}
	}

	if s.flash != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Render("⚠ " + s.flash))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Width(cw).Render(b.String()))
}
