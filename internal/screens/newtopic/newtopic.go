// Package newtopic asks for a topic, generates its roadmap and starts it.
package newtopic

import (
	"context"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/khalari/khalari/internal/learner"
	"github.com/khalari/khalari/internal/roadmap"
	"github.com/khalari/khalari/internal/screen"
	"github.com/khalari/khalari/internal/ui/components"
	"github.com/khalari/khalari/internal/ui/layout"
	"github.com/khalari/khalari/internal/ui/theme"
)

type phase int

const (
	phaseInput phase = iota
	phaseGenerating
	phaseFailed
)

type suggestionsMsg struct {
	query string
	items []string
}

type roadmapMsg struct {
	rm  *roadmap.Roadmap
	err error
}

// Screen is the topic prompt plus roadmap generation.
type Screen struct {
	deps    screen.Deps
	onDone  func() tea.Cmd
	input   components.TextInput
	spinner spinner.Model
	phase   phase
	errMsg  string

	suggestions []string
	suggestFor  string
	suggesting  bool
	cycle       int
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the screen. initial prefills the topic; onDone runs after the
// new roadmap is started.
func New(deps screen.Deps, initial string, onDone func() tea.Cmd) *Screen {
	return &Screen{
		deps:    deps,
		onDone:  onDone,
		input:   components.NewTextInput("e.g. Machine Learning, React, Public speaking", initial, 80),
		spinner: components.NewSpinner(),
		cycle:   -1,
	}
}

func (s *Screen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *Screen) Title() string {
	return "New Roadmap"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseGenerating:
		return []layout.KeyHint{{Key: "…", Description: "Generating"}}
	case phaseFailed:
		return []layout.KeyHint{
			{Key: "R", Description: "Retry"},
			{Key: "E", Description: "Edit topic"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Generate"},
		{Key: "Tab", Description: "Suggestions"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if s.phase != phaseGenerating && !s.suggesting {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case suggestionsMsg:
		s.suggesting = false
		if msg.query == s.input.Value() {
			s.suggestions = msg.items
			s.suggestFor = msg.query
			s.cycle = -1
		}
		return s, nil

	case roadmapMsg:
		return s.handleRoadmap(msg)

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	if s.phase == phaseInput {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *Screen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch s.phase {
	case phaseGenerating:
		// Ignore input until the outstanding request returns.
		return s, nil

	case phaseFailed:
		switch msg.String() {
		case "r", "R":
			return s, s.generate()
		case "e", "E":
			s.phase = phaseInput
			s.errMsg = ""
			return s, s.input.Init()
		}
		return s, nil
	}

	switch msg.String() {
	case "enter":
		if s.input.Value() == "" {
			s.input.SetError("Enter a topic to learn")
			return s, nil
		}
		return s, s.generate()

	case "tab":
		return s, s.nextSuggestion()
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// nextSuggestion fetches suggestions for the typed text, or cycles through
// the ones already fetched.
func (s *Screen) nextSuggestion() tea.Cmd {
	if len(s.suggestions) > 0 && (s.input.Value() == s.suggestFor || s.cycle >= 0) {
		s.cycle = (s.cycle + 1) % len(s.suggestions)
		s.input.Model.SetValue(s.suggestions[s.cycle])
		s.input.Model.CursorEnd()
		return nil
	}
	query := s.input.Value()
	if query == "" || s.suggesting || s.deps.Content == nil {
		return nil
	}
	s.suggesting = true
	content := s.deps.Content
	return tea.Batch(components.SpinnerTick(s.spinner), func() tea.Msg {
		return suggestionsMsg{query: query, items: content.SuggestTopics(context.Background(), query)}
	})
}

func (s *Screen) generate() tea.Cmd {
	s.phase = phaseGenerating
	s.errMsg = ""
	topic := s.input.Value()
	lang := learner.LanguageCode(s.deps.Engine.Learner().PreferredLanguage)
	content := s.deps.Content
	return tea.Batch(components.SpinnerTick(s.spinner), func() tea.Msg {
		if content == nil {
			return roadmapMsg{err: errNoContent}
		}
		rm, err := content.GenerateRoadmap(context.Background(), topic, lang)
		return roadmapMsg{rm: rm, err: err}
	})
}

func (s *Screen) handleRoadmap(msg roadmapMsg) (screen.Screen, tea.Cmd) {
	if msg.err == nil {
		msg.err = s.deps.Engine.StartRoadmap(context.Background(), msg.rm)
	}
	if msg.err != nil {
		s.deps.Log().Warn("roadmap generation failed", zap.Error(msg.err))
		s.phase = phaseFailed
		s.errMsg = msg.err.Error()
		return s, nil
	}
	s.deps.Log().Info("roadmap started",
		zap.String("roadmap_id", msg.rm.ID),
		zap.String("topic", msg.rm.Topic),
		zap.Int("modules", msg.rm.Len()))
	if s.onDone == nil {
		return s, nil
	}
	return s, s.onDone()
}

func (s *Screen) View(width, height int) string {
	switch s.phase {
	case phaseGenerating:
		return components.Loading(s.spinner, "Building your roadmap for "+s.input.Value()+"...", width, height)
	case phaseFailed:
		return components.ErrorBox(s.errMsg, "Press R to retry or E to change the topic.", width, height)
	}

	cw := components.ContentWidth(width)
	var b strings.Builder
	b.WriteString(theme.Heading.Render("What do you want to learn?"))
	b.WriteString("\n\n")
	b.WriteString(s.input.View())
	b.WriteString("\n\n")

	switch {
	case s.suggesting:
		b.WriteString(s.spinner.View() + theme.Hint.Render(" finding ideas..."))
	case len(s.suggestions) > 0:
		b.WriteString(theme.Hint.Render("Suggestions (Tab to cycle):"))
		b.WriteString("\n")
		for i, sug := range s.suggestions {
			style := lipgloss.NewStyle().Foreground(theme.Text)
			if i == s.cycle {
				style = theme.Selected
			}
			b.WriteString(style.Render("  • " + sug))
			b.WriteString("\n")
		}
	default:
		b.WriteString(theme.Hint.Render("Press Tab for topic ideas."))
	}

	if s.deps.Engine.Snapshot().Roadmap != nil {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).
			Render("⚠ This replaces your current roadmap\nand resets your bypass attempts."))
	}

	return layout.Center(components.Card(b.String(), cw), width, height)
}
