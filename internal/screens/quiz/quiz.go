// Package quiz runs a timed quiz for one module and shows the graded result.
package quiz

import (
	"context"
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/khalari/khalari/internal/engine"
	qz "github.com/khalari/khalari/internal/quiz"
	"github.com/khalari/khalari/internal/roadmap"
	"github.com/khalari/khalari/internal/router"
	"github.com/khalari/khalari/internal/screen"
	"github.com/khalari/khalari/internal/ui/components"
	"github.com/khalari/khalari/internal/ui/layout"
	"github.com/khalari/khalari/internal/ui/theme"
)

const tickInterval = 200 * time.Millisecond

type phase int

const (
	phaseGenerating phase = iota
	phaseFailed
	phaseRunning
	phaseResults
)

type questionsMsg struct {
	questions []qz.Question
	err       error
}

type tickMsg struct {
	gen int
	at  time.Time
}

// Screen is a quiz attempt for one module.
type Screen struct {
	deps  screen.Deps
	index int
	mod   roadmap.Module

	phase   phase
	spinner spinner.Model
	errMsg  string

	session *qz.Session
	choice  components.MultiChoice
	outcome engine.Outcome
	review  bool

	// gen tags tick chains so a retry never runs two clocks at once.
	gen int
	now func() time.Time
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates a quiz for module index.
func New(deps screen.Deps, index int) *Screen {
	s := &Screen{
		deps:    deps,
		index:   index,
		spinner: components.NewSpinner(),
		now:     time.Now,
	}
	s.mod, _, _ = deps.Engine.Module(index)
	return s
}

func (s *Screen) Init() tea.Cmd {
	return s.generate()
}

func (s *Screen) Title() string {
	return "Quiz: " + s.mod.Title
}

func (s *Screen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseRunning:
		return []layout.KeyHint{
			{Key: "↑↓/1-4", Description: "Choose"},
			{Key: "←→", Description: "Prev/Next"},
			{Key: "S", Description: "Submit"},
			{Key: "Esc", Description: "Abandon"},
		}
	case phaseResults:
		return []layout.KeyHint{
			{Key: "V", Description: "Review"},
			{Key: "R", Description: "Retry"},
			{Key: "Enter", Description: "Done"},
		}
	case phaseFailed:
		return []layout.KeyHint{
			{Key: "R", Description: "Retry"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{{Key: "Esc", Description: "Cancel"}}
}

func (s *Screen) generate() tea.Cmd {
	s.phase = phaseGenerating
	s.errMsg = ""
	s.session = nil
	s.review = false
	content := s.deps.Content
	mod := s.mod
	return tea.Batch(components.SpinnerTick(s.spinner), func() tea.Msg {
		if content == nil {
			return questionsMsg{err: fmt.Errorf("no LLM provider is configured")}
		}
		qs, err := content.GenerateQuiz(context.Background(), mod)
		return questionsMsg{questions: qs, err: err}
	})
}

func (s *Screen) tick() tea.Cmd {
	gen := s.gen
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg{gen: gen, at: t}
	})
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if s.phase != phaseGenerating {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case questionsMsg:
		return s, s.start(msg)

	case tickMsg:
		if msg.gen != s.gen || s.phase != phaseRunning {
			return s, nil
		}
		if s.session.Tick(s.now()) {
			s.syncChoice()
		}
		if s.session.Submitted() {
			return s, s.finish()
		}
		return s, s.tick()

	case tea.KeyPressMsg:
		return s, s.handleKey(msg)
	}
	return s, nil
}

func (s *Screen) start(msg questionsMsg) tea.Cmd {
	if s.phase != phaseGenerating {
		return nil
	}
	if msg.err == nil {
		s.session, msg.err = qz.NewSession(s.index, msg.questions, s.now())
	}
	if msg.err != nil {
		s.deps.Log().Warn("quiz generation failed", zap.Int("module", s.index), zap.Error(msg.err))
		s.phase = phaseFailed
		s.errMsg = msg.err.Error()
		return nil
	}
	s.phase = phaseRunning
	s.gen++
	s.syncChoice()
	return s.tick()
}

// syncChoice rebuilds the option selector for the current question.
func (s *Screen) syncChoice() {
	q := s.session.Question()
	s.choice = components.NewMultiChoice(q.Prompt, q.Options, q.Correct, s.session.Answer(s.session.Index()))
}

func (s *Screen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch s.phase {
	case phaseGenerating:
		return nil

	case phaseFailed:
		if k := msg.String(); k == "r" || k == "R" {
			return s.generate()
		}
		return nil

	case phaseResults:
		switch msg.String() {
		case "r", "R":
			return s.generate()
		case "v", "V":
			s.review = !s.review
		case "enter":
			return func() tea.Msg { return router.PopScreenMsg{} }
		}
		return nil
	}

	now := s.now()
	switch msg.String() {
	case "right", "l", "n", "tab":
		s.session.Next(now)
	case "left", "h", "p", "shift+tab":
		s.session.Prev(now)
	case "s", "S":
		s.session.Submit()
	default:
		var chose bool
		s.choice, chose = s.choice.Update(msg)
		if chose {
			if err := s.session.Select(s.choice.ChosenIndex); err != nil {
				s.deps.Log().Debug("select rejected", zap.Error(err))
			}
		}
		return nil
	}

	if s.session.Submitted() {
		return s.finish()
	}
	s.syncChoice()
	return nil
}

// finish grades the session and applies it to the engine.
func (s *Screen) finish() tea.Cmd {
	res := s.session.Submit()
	s.phase = phaseResults
	out, err := s.deps.Engine.CompleteByQuiz(context.Background(), s.index, res)
	if err != nil {
		s.deps.Log().Warn("quiz result rejected", zap.Int("module", s.index), zap.Error(err))
		s.errMsg = err.Error()
	}
	s.outcome = out
	return nil
}

func (s *Screen) View(width, height int) string {
	switch s.phase {
	case phaseGenerating:
		return components.Loading(s.spinner, "Writing your quiz...", width, height)
	case phaseFailed:
		return components.ErrorBox(s.errMsg, "Press R to try again.", width, height)
	case phaseResults:
		return s.viewResults(width, height)
	}

	cw := min(width-4, 72)
	bar := components.Countdown(s.session.Remaining(s.now()), qz.QuestionTime, cw)

	answered := 0
	for i := 0; i < s.session.Len(); i++ {
		if s.session.Answer(i) != qz.Unanswered {
			answered++
		}
	}
	counter := theme.Hint.Render(fmt.Sprintf("Question %d of %d · %d answered",
		s.session.Index()+1, s.session.Len(), answered))

	content := lipgloss.JoinVertical(lipgloss.Left,
		counter,
		bar.View(),
		"",
		s.choice.View(cw),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (s *Screen) viewResults(width, height int) string {
	res := s.session.Submit()
	cw := min(width-4, 72)

	var b strings.Builder
	verdict := theme.Incorrect.Render("Not quite. Review and try again.")
	if res.Passed {
		verdict = theme.Correct.Render("Passed!")
	}
	b.WriteString(verdict)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Score: %d/%d (%d%%)\n", res.Correct, res.Total, int(res.Score*100))

	if s.outcome.Completed {
		b.WriteString(theme.Completed.Render("✓ Module completed"))
		b.WriteString("\n")
	}
	if s.outcome.StreakCredit > 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Gold).
			Render(fmt.Sprintf("🔥 Streak milestone: +%d ◆", s.outcome.StreakCredit)))
		b.WriteString("\n")
	}
	if s.outcome.Bonus > 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Gold).
			Render(fmt.Sprintf("★ Roadmap complete: +%d ◆", s.outcome.Bonus)))
		b.WriteString("\n")
	}
	if s.errMsg != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render("⚠ " + s.errMsg))
		b.WriteString("\n")
	}

	if s.review {
		b.WriteString("\n")
		b.WriteString(renderReview(s.session.Questions(), res.Answers, cw))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Width(cw).Render(b.String()))
}

func renderReview(questions []qz.Question, answers []int, width int) string {
	var b strings.Builder
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	for i, q := range questions {
		a := answers[i]
		mark := theme.Incorrect.Render("✗")
		if a == q.Correct {
			mark = theme.Correct.Render("✓")
		}
		b.WriteString(lipgloss.NewStyle().Width(width).Render(fmt.Sprintf("%s %d. %s", mark, i+1, q.Prompt)))
		b.WriteString("\n")
		if a == qz.Unanswered {
			b.WriteString(dim.Render("   no answer"))
			b.WriteString("\n")
		} else if a != q.Correct {
			b.WriteString(dim.Render("   yours: " + q.Options[a]))
			b.WriteString("\n")
		}
		b.WriteString(theme.Correct.Render("   answer: " + q.Options[q.Correct]))
		b.WriteString("\n")
		if q.Explanation != "" {
			b.WriteString(dim.Width(width).Render("   " + q.Explanation))
			b.WriteString("\n")
		}
	}
	return b.String()
}
