package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/khalari/khalari/internal/ui/theme"
)

// MultiChoice is a four-option selector. Choosing an option does not lock
// it; the learner can change the answer until the question is left.
type MultiChoice struct {
	Question     string
	Options      []string
	CorrectIndex int
	Selected     int // cursor
	ChosenIndex  int // -1 when unanswered
	Revealed     bool
}

// NewMultiChoice creates a selector with chosen pre-selected (-1 for none).
func NewMultiChoice(question string, options []string, correctIndex, chosen int) MultiChoice {
	selected := 0
	if chosen >= 0 && chosen < len(options) {
		selected = chosen
	}
	return MultiChoice{
		Question:     question,
		Options:      options,
		CorrectIndex: correctIndex,
		Selected:     selected,
		ChosenIndex:  chosen,
	}
}

// Update handles arrows and the 1-4 / a-d shortcuts. It reports whether an
// option was chosen by this message.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, bool) {
	if m.Revealed {
		return m, false
	}
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, false
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter", "space":
		m.ChosenIndex = m.Selected
		return m, true
	case "1", "2", "3", "4", "a", "b", "c", "d":
		i := optionIndex(key)
		if i < len(m.Options) {
			m.Selected = i
			m.ChosenIndex = i
			return m, true
		}
	}
	return m, false
}

func optionIndex(key string) int {
	if key[0] >= 'a' {
		return int(key[0] - 'a')
	}
	return int(key[0] - '1')
}

var optionLabels = []string{"A", "B", "C", "D"}

// View renders the question and its options.
func (m MultiChoice) View(width int) string {
	questionStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(width)
	s := questionStyle.Render(m.Question) + "\n\n"

	for i, opt := range m.Options {
		label := fmt.Sprint(i + 1)
		if i < len(optionLabels) {
			label = optionLabels[i]
		}
		prefix := "  "
		if i == m.Selected && !m.Revealed {
			prefix = "▸ "
		}
		mark := "○"
		if i == m.ChosenIndex {
			mark = "●"
		}
		line := fmt.Sprintf("%s%s %s)  %s", prefix, mark, label, opt)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case m.Revealed && i == m.CorrectIndex:
			style = theme.Correct
		case m.Revealed && i == m.ChosenIndex:
			style = theme.Incorrect
		case m.Revealed:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Selected:
			style = theme.Selected
		}
		s += style.Width(width).Render(line) + "\n"
	}
	return s
}

// IsCorrect returns true if the chosen option is the correct one.
func (m MultiChoice) IsCorrect() bool {
	return m.ChosenIndex >= 0 && m.ChosenIndex == m.CorrectIndex
}
