// Package memory is the memory-match board played to bypass a module.
package memory

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/khalari/khalari/internal/engine"
	"github.com/khalari/khalari/internal/learner"
	"github.com/khalari/khalari/internal/minigame"
	"github.com/khalari/khalari/internal/router"
	"github.com/khalari/khalari/internal/screen"
	"github.com/khalari/khalari/internal/ui/components"
	"github.com/khalari/khalari/internal/ui/layout"
	"github.com/khalari/khalari/internal/ui/theme"
)

const (
	columns      = 10
	tickInterval = 200 * time.Millisecond
	cellWidth    = 4
)

type tickMsg time.Time

// Screen plays one bypass attempt. The attempt is charged exactly once,
// when the game ends or the screen is left mid-game.
type Screen struct {
	deps  screen.Deps
	index int
	game  *minigame.Game
	now   func() time.Time

	cursor   int
	recorded bool
	outcome  engine.Outcome
	errMsg   string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.Leaver = (*Screen)(nil)

// New deals a fresh board for module index.
func New(deps screen.Deps, index int) *Screen {
	return newScreen(deps, index, rand.New(rand.NewSource(time.Now().UnixNano())), time.Now)
}

func newScreen(deps screen.Deps, index int, rng *rand.Rand, now func() time.Time) *Screen {
	return &Screen{
		deps:  deps,
		index: index,
		game:  minigame.New(minigame.Pairs, rng, now()),
		now:   now,
	}
}

func (s *Screen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (s *Screen) Title() string {
	return "Bypass Challenge"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.recorded {
		return []layout.KeyHint{{Key: "Enter", Description: "Continue"}}
	}
	return []layout.KeyHint{
		{Key: "←↑↓→", Description: "Move"},
		{Key: "Enter/Space", Description: "Flip"},
		{Key: "Esc", Description: "Give up"},
	}
}

// Leave forfeits a game in progress so abandoning still counts as an
// attempt.
func (s *Screen) Leave() tea.Cmd {
	if !s.recorded {
		s.game.Forfeit()
		s.record()
	}
	return nil
}

func (s *Screen) record() {
	if s.recorded {
		return
	}
	s.recorded = true
	won := s.game.Status() == minigame.Won
	out, err := s.deps.Engine.Bypass(context.Background(), s.index, won)
	if err != nil {
		s.deps.Log().Warn("bypass rejected", zap.Int("module", s.index), zap.Error(err))
		s.errMsg = err.Error()
	}
	s.outcome = out
	s.deps.Log().Info("bypass game finished",
		zap.Int("module", s.index),
		zap.Bool("won", won),
		zap.Int("moves", s.game.Moves()),
		zap.Int("debit", out.BypassDebit))
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if s.recorded {
			return s, nil
		}
		s.game.Tick(s.now())
		if s.game.Status() != minigame.Playing {
			s.record()
			return s, nil
		}
		return s, tick()

	case tea.KeyPressMsg:
		if s.recorded {
			if msg.String() == "enter" {
				return s, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return s, nil
		}
		s.handleKey(msg.String())
	}
	return s, nil
}

func (s *Screen) handleKey(key string) {
	n := len(s.game.Cards)
	switch key {
	case "left", "h":
		if s.cursor%columns > 0 {
			s.cursor--
		}
	case "right", "l":
		if s.cursor%columns < columns-1 && s.cursor < n-1 {
			s.cursor++
		}
	case "up", "k":
		if s.cursor >= columns {
			s.cursor -= columns
		}
	case "down", "j":
		if s.cursor+columns < n {
			s.cursor += columns
		}
	case "enter", "space":
		if err := s.game.Flip(s.cursor, s.now()); err != nil {
			s.record()
			return
		}
		if s.game.Status() != minigame.Playing {
			s.record()
		}
	}
}

func (s *Screen) View(width, height int) string {
	if s.recorded {
		return s.viewResult(width, height)
	}

	remaining := s.game.Remaining(s.now())
	secs := int((remaining + time.Second - 1) / time.Second)
	status := fmt.Sprintf("⏱ %d:%02d   pairs %d/%d   moves %d",
		secs/60, secs%60, s.game.Matched(), len(s.game.Cards)/2, s.game.Moves())

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			theme.Heading.Render("Match every pair to unlock the module"),
			theme.Hint.Render(status),
			"",
			s.board(),
		))
}

func (s *Screen) board() string {
	hidden := lipgloss.NewStyle().Foreground(theme.Border)
	shown := lipgloss.NewStyle().Foreground(theme.Text)
	matched := lipgloss.NewStyle().Foreground(theme.Success).Faint(true)
	cursor := lipgloss.NewStyle().Background(theme.Primary)

	var b strings.Builder
	for i, c := range s.game.Cards {
		face := "▒▒"
		style := hidden
		switch {
		case c.Matched:
			face, style = minigame.Icons[c.Face], matched
		case c.Flipped:
			face, style = minigame.Icons[c.Face], shown
		}
		if i == s.cursor {
			style = style.Inherit(cursor)
		}
		b.WriteString(style.Width(cellWidth).Align(lipgloss.Center).Render(face))
		if (i+1)%columns == 0 {
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (s *Screen) viewResult(width, height int) string {
	var b strings.Builder
	if s.outcome.Won {
		b.WriteString(theme.Correct.Render("You cleared the board!"))
	} else {
		b.WriteString(theme.Incorrect.Render("Time's up. The module stays unlocked."))
	}
	b.WriteString("\n\n")

	if s.outcome.Completed {
		b.WriteString(theme.Completed.Render("✓ Module bypassed"))
		b.WriteString("\n")
	}
	if s.outcome.BypassDebit > 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).
			Render(fmt.Sprintf("-%d ◆ bypass fee", s.outcome.BypassDebit)))
		b.WriteString("\n")
	} else if s.errMsg == "" {
		used := s.deps.Engine.Learner().BypassAttemptsUsed
		left := max(0, learner.FreeBypassAttempts-used)
		b.WriteString(theme.Hint.Render(fmt.Sprintf("Free attempt used, %d left", left)))
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
	return layout.Center(components.Card(b.String(), components.ContentWidth(width)), width, height)
}
