// Package onboarding collects the learner profile on first run.
package onboarding

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/khalari/khalari/internal/learner"
	"github.com/khalari/khalari/internal/router"
	"github.com/khalari/khalari/internal/screen"
	"github.com/khalari/khalari/internal/ui/components"
	"github.com/khalari/khalari/internal/ui/layout"
	"github.com/khalari/khalari/internal/ui/theme"
)

type step int

const (
	stepName step = iota
	stepPhone
	stepLanguage
)

const stepCount = 3

// Screen is the onboarding wizard: name, phone, then content language.
type Screen struct {
	deps  screen.Deps
	next  func() screen.Screen
	step  step
	name  components.TextInput
	phone components.TextInput
	langs components.Menu
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the wizard. next builds the screen that replaces it once the
// profile is saved.
func New(deps screen.Deps, next func() screen.Screen) *Screen {
	items := make([]components.MenuItem, len(learner.Languages))
	for i, l := range learner.Languages {
		items[i] = components.MenuItem{Label: l}
	}
	return &Screen{
		deps:  deps,
		next:  next,
		name:  components.NewTextInput("Your name", "", 50),
		phone: components.NewTextInput("+91 98765 43210 (optional)", "", 20),
		langs: components.NewMenu(items),
	}
}

func (s *Screen) Init() tea.Cmd {
	return s.name.Init()
}

func (s *Screen) Title() string {
	return "Welcome"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.step == stepLanguage {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose"},
			{Key: "Enter", Description: "Finish"},
			{Key: "Shift+Tab", Description: "Back"},
		}
	}
	hints := []layout.KeyHint{{Key: "Enter", Description: "Next"}}
	if s.step > stepName {
		hints = append(hints, layout.KeyHint{Key: "Shift+Tab", Description: "Back"})
	}
	return hints
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, s.updateInput(msg)
	}

	switch kmsg.String() {
	case "shift+tab":
		if s.step > stepName {
			s.step--
			return s, s.focus()
		}
		return s, nil
	case "enter":
		return s, s.advance()
	}

	if s.step == stepLanguage {
		s.langs, _ = s.langs.Update(kmsg)
		return s, nil
	}
	return s, s.updateInput(msg)
}

func (s *Screen) updateInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch s.step {
	case stepName:
		s.name, cmd = s.name.Update(msg)
	case stepPhone:
		s.phone, cmd = s.phone.Update(msg)
	}
	return cmd
}

func (s *Screen) focus() tea.Cmd {
	switch s.step {
	case stepName:
		return s.name.Init()
	case stepPhone:
		return s.phone.Init()
	}
	return nil
}

func (s *Screen) advance() tea.Cmd {
	switch s.step {
	case stepName:
		if s.name.Value() == "" {
			s.name.SetError("Please tell us your name")
			return nil
		}
	case stepPhone:
		if err := validPhone(s.phone.Value()); err != "" {
			s.phone.SetError(err)
			return nil
		}
	case stepLanguage:
		return s.finish()
	}
	s.step++
	return s.focus()
}

func (s *Screen) finish() tea.Cmd {
	lang := learner.Languages[s.langs.Selected]
	l := s.deps.Engine.Onboard(context.Background(), s.name.Value(), s.phone.Value(), lang)
	s.deps.Log().Info("learner onboarded", zap.String("language", l.PreferredLanguage))
	if s.next == nil {
		return nil
	}
	next := s.next()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

// validPhone returns the message to show for an invalid phone, or "".
func validPhone(p string) string {
	if err := learner.CheckPhone(p); err != nil {
		msg := err.Error()
		return strings.ToUpper(msg[:1]) + msg[1:]
	}
	return ""
}

func (s *Screen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Title.Render("Let's set up your profile"))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(fmt.Sprintf("Step %d of %d", int(s.step)+1, stepCount)))
	b.WriteString("\n\n")

	switch s.step {
	case stepName:
		b.WriteString(theme.Heading.Render("What should we call you?"))
		b.WriteString("\n\n")
		b.WriteString(s.name.View())
	case stepPhone:
		b.WriteString(theme.Heading.Render("Phone number"))
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("Used on receipts for diamond purchases. Leave empty to skip."))
		b.WriteString("\n\n")
		b.WriteString(s.phone.View())
	case stepLanguage:
		b.WriteString(theme.Heading.Render("Which language should lessons use?"))
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Align(lipgloss.Left).Render(s.langs.View()))
	}

	return layout.Center(components.Card(b.String(), cw), width, height)
}
