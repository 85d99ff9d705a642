package components

import (
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/khalari/khalari/internal/ui/theme"
)

// NewSpinner returns the loading spinner used by every async screen.
func NewSpinner() spinner.Model {
	return spinner.New(
		spinner.WithSpinner(spinner.MiniDot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Accent)),
	)
}

// SpinnerTick starts or continues the animation of model.
func SpinnerTick(model spinner.Model) tea.Cmd {
	return func() tea.Msg {
		return model.Tick()
	}
}

// Loading renders the spinner with a caption, centered.
func Loading(model spinner.Model, caption string, width, height int) string {
	line := model.View() + " " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(caption)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, line)
}

// ErrorBox renders an error with a hint, centered.
func ErrorBox(msg, hint string, width, height int) string {
	body := lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render("Something went wrong") + "\n\n" +
		lipgloss.NewStyle().Foreground(theme.Text).Width(min(width-4, 70)).Render(msg)
	if hint != "" {
		body += "\n\n" + theme.Hint.Render(hint)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}
