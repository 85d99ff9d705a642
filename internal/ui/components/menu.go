package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/khalari/khalari/internal/ui/theme"
)

// MenuItem is one action in a Menu.
type MenuItem struct {
	Label    string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list of actions. Selected always points at an enabled
// item unless every item is disabled.
type Menu struct {
	Items    []MenuItem
	Selected int
}

func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items}
	m.Selected = m.next(-1, 1)
	if m.Selected < 0 {
		m.Selected = 0
	}
	return m
}

// next returns the first enabled index after from in direction dir, or -1.
func (m Menu) next(from, dir int) int {
	for i := from + dir; i >= 0 && i < len(m.Items); i += dir {
		if !m.Items[i].Disabled {
			return i
		}
	}
	return -1
}

// SetDisabled toggles item i. Disabling the selected item moves the
// selection to the next enabled item below it, or above when none is.
func (m *Menu) SetDisabled(i int, disabled bool) {
	if i < 0 || i >= len(m.Items) {
		return
	}
	m.Items[i].Disabled = disabled
	if !disabled || i != m.Selected {
		return
	}
	if n := m.next(i, 1); n >= 0 {
		m.Selected = n
	} else if n := m.next(i, -1); n >= 0 {
		m.Selected = n
	}
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if n := m.next(m.Selected, -1); n >= 0 {
			m.Selected = n
		}
	case "down", "j":
		if n := m.next(m.Selected, 1); n >= 0 {
			m.Selected = n
		}
	case "enter":
		if m.Selected >= 0 && m.Selected < len(m.Items) {
			item := m.Items[m.Selected]
			if item.Action != nil && !item.Disabled {
				return m, item.Action()
			}
		}
	}
	return m, nil
}

var (
	menuDisabled = lipgloss.NewStyle().Foreground(theme.Border)
	menuCurrent  = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	menuItem     = lipgloss.NewStyle().Foreground(theme.Text)
)

// View renders one line per item. Disabled items are dimmed.
func (m Menu) View() string {
	var b strings.Builder
	for i, item := range m.Items {
		switch {
		case item.Disabled:
			b.WriteString(menuDisabled.Render("    " + item.Label))
		case i == m.Selected:
			b.WriteString(menuCurrent.Render("  ▸ " + item.Label))
		default:
			b.WriteString(menuItem.Render("    " + item.Label))
		}
		b.WriteString("\n")
	}
	return b.String()
}
