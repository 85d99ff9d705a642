package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/khalari/khalari/internal/router"
	"github.com/khalari/khalari/internal/screen"
	"github.com/khalari/khalari/internal/screens/home"
	"github.com/khalari/khalari/internal/screens/newtopic"
	"github.com/khalari/khalari/internal/screens/onboarding"
	roadmapscreen "github.com/khalari/khalari/internal/screens/roadmap"
	"github.com/khalari/khalari/internal/screens/welcome"
	"github.com/khalari/khalari/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	deps   screen.Deps
	router *router.Router
	width  int
	height int
}

// newAppModel starts on the welcome splash, which hands over to onboarding
// for a new learner and to the home screen otherwise.
func newAppModel(deps screen.Deps) AppModel {
	next := func() screen.Screen {
		if deps.Engine.Onboarded() {
			return home.New(deps)
		}
		return onboarding.New(deps, func() screen.Screen {
			return firstTopic(deps)
		})
	}
	return AppModel{
		deps:   deps,
		router: router.New(welcome.New(next)),
	}
}

// firstTopic asks a new learner for a topic, then lands on home with the
// fresh roadmap open.
func firstTopic(deps screen.Deps) screen.Screen {
	return newtopic.New(deps, "", func() tea.Cmd {
		hub := home.New(deps)
		overview := roadmapscreen.New(deps)
		return tea.Sequence(
			func() tea.Msg { return router.ReplaceScreenMsg{Screen: hub} },
			func() tea.Msg { return router.PushScreenMsg{Screen: overview} },
		)
	})
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Sequence(m.router.Leave(), tea.Quit)
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the header, the active screen and the footer.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	l := m.deps.Engine.Learner()
	header := layout.RenderHeader(title, l.Balance, l.CurrentStreak, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// footerHints prefers the active screen's hints and always ends with quit.
func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	var hints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		hints = append(hints, p.KeyHints()...)
	} else if m.router.Depth() > 1 {
		hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
	} else {
		hints = append(hints,
			layout.KeyHint{Key: "↑↓", Description: "Navigate"},
			layout.KeyHint{Key: "Enter", Description: "Select"},
		)
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

// Run starts the Bubble Tea program.
func Run(deps screen.Deps) error {
	p := tea.NewProgram(newAppModel(deps))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
