// Package module shows one roadmap module: its description, key concepts
// and videos, with the quiz and bypass actions.
package module

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/khalari/khalari/internal/engine"
	"github.com/khalari/khalari/internal/learner"
	"github.com/khalari/khalari/internal/roadmap"
	"github.com/khalari/khalari/internal/router"
	"github.com/khalari/khalari/internal/screen"
	"github.com/khalari/khalari/internal/screens/memory"
	quizscreen "github.com/khalari/khalari/internal/screens/quiz"
	"github.com/khalari/khalari/internal/ui/components"
	"github.com/khalari/khalari/internal/ui/layout"
	"github.com/khalari/khalari/internal/ui/theme"
	"github.com/khalari/khalari/internal/video"
)

const maxVideos = 5

const (
	itemQuiz = iota
	itemBypass
	itemBack
)

type videosMsg struct {
	videos []video.Video
	err    error
}

// Screen is the module detail view. Time spent while it is on the stack,
// including quizzes and bypass games opened from it, is logged as study
// time when it is left.
type Screen struct {
	deps  screen.Deps
	index int
	mod   roadmap.Module
	state roadmap.State
	err   error

	menu  components.Menu
	flash string

	videos        []video.Video
	videoErr      error
	loadingVideos bool
	spinner       spinner.Model

	scroll int

	now       func() time.Time
	enteredAt time.Time
	left      bool

	rendered      string
	renderedWidth int
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.Leaver = (*Screen)(nil)

// New creates the detail screen for module index.
func New(deps screen.Deps, index int) *Screen {
	s := &Screen{
		deps:    deps,
		index:   index,
		spinner: components.NewSpinner(),
		now:     time.Now,
	}
	s.menu = components.NewMenu([]components.MenuItem{
		itemQuiz:   {Action: s.startQuiz},
		itemBypass: {Action: s.startBypass},
		itemBack: {Label: "BACK", Action: func() tea.Cmd {
			return func() tea.Msg { return router.PopScreenMsg{} }
		}},
	})
	s.refresh()
	return s
}

// refresh reloads the module state and the labels that depend on it.
func (s *Screen) refresh() {
	s.mod, s.state, s.err = s.deps.Engine.Module(s.index)
	if s.err != nil {
		return
	}

	s.menu.Items[itemQuiz].Label = "TAKE QUIZ"
	if s.state == roadmap.Completed {
		s.menu.Items[itemQuiz].Label = "RETAKE QUIZ"
	}
	s.menu.SetDisabled(itemQuiz, s.state == roadmap.Locked)

	used := s.deps.Engine.Learner().BypassAttemptsUsed
	if free := learner.FreeBypassAttempts - used; free > 0 {
		s.menu.Items[itemBypass].Label = fmt.Sprintf("BYPASS (%d free left)", free)
	} else {
		s.menu.Items[itemBypass].Label = fmt.Sprintf("BYPASS (-%d ◆)", learner.BypassPenalty)
	}
	s.menu.SetDisabled(itemBypass, s.state != roadmap.Unlocked)
}

func (s *Screen) Init() tea.Cmd {
	if s.err != nil {
		s.deps.Log().Warn("cannot open module", zap.Int("module", s.index), zap.Error(s.err))
		return func() tea.Msg { return router.PopScreenMsg{} }
	}
	s.enteredAt = s.now()
	return s.fetchVideos()
}

func (s *Screen) fetchVideos() tea.Cmd {
	if s.deps.Videos == nil {
		return nil
	}
	s.loadingVideos = true
	query := s.mod.VideoQuery
	if query == "" {
		query = s.mod.Title
	}
	lang := learner.LanguageCode(s.deps.Engine.Learner().PreferredLanguage)
	videos := s.deps.Videos
	return tea.Batch(components.SpinnerTick(s.spinner), func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		vs, err := videos.Search(ctx, query, lang)
		return videosMsg{videos: vs, err: err}
	})
}

// Leave logs the time spent on the module.
func (s *Screen) Leave() tea.Cmd {
	if s.left || s.enteredAt.IsZero() {
		return nil
	}
	s.left = true
	d := s.now().Sub(s.enteredAt)
	s.deps.Engine.LogTime(context.Background(), d)
	s.deps.Log().Debug("module time logged", zap.Int("module", s.index), zap.Duration("spent", d))
	return nil
}

func (s *Screen) Title() string {
	if s.err != nil {
		return "Module"
	}
	return fmt.Sprintf("Module %d", s.index+1)
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "Enter", Description: "Select"},
		{Key: "PgUp/PgDn", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *Screen) startQuiz() tea.Cmd {
	if err := s.deps.Engine.CheckQuiz(s.index); err != nil {
		s.flash = describe(err)
		return nil
	}
	next := quizscreen.New(s.deps, s.index)
	return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func (s *Screen) startBypass() tea.Cmd {
	if err := s.deps.Engine.CheckBypass(s.index); err != nil {
		s.flash = describe(err)
		return nil
	}
	next := memory.New(s.deps, s.index)
	return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func describe(err error) string {
	switch {
	case errors.Is(err, roadmap.ErrModuleLocked):
		return "This module is still locked."
	case errors.Is(err, roadmap.ErrModuleCompleted):
		return "This module is already completed."
	case errors.Is(err, engine.ErrNoRoadmap):
		return "There is no active roadmap."
	}
	return err.Error()
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.refresh()
	if s.err != nil {
		return s, nil
	}

	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !s.loadingVideos {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case videosMsg:
		s.loadingVideos = false
		s.videoErr = msg.err
		s.videos = msg.videos
		if len(s.videos) > maxVideos {
			s.videos = s.videos[:maxVideos]
		}
		if msg.err != nil {
			s.deps.Log().Warn("video search failed", zap.Int("module", s.index), zap.Error(msg.err))
		}
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "pgdown", "ctrl+d":
			s.scroll += 5
			return s, nil
		case "pgup", "ctrl+u":
			s.scroll = max(0, s.scroll-5)
			return s, nil
		}
		s.flash = ""
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *Screen) body(width int) string {
	if s.renderedWidth != width {
		s.rendered = components.Markdown(s.mod.Description, width)
		s.renderedWidth = width
	}

	var b strings.Builder
	b.WriteString(s.rendered)
	b.WriteString("\n\n")

	if len(s.mod.Concepts) > 0 {
		b.WriteString(theme.Heading.Render("Key concepts"))
		b.WriteString("\n")
		for _, c := range s.mod.Concepts {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Width(width).Render("  • " + c))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(theme.Heading.Render("Videos"))
	b.WriteString("\n")
	switch {
	case s.loadingVideos:
		b.WriteString(s.spinner.View() + theme.Hint.Render(" searching..."))
	case s.videoErr != nil:
		b.WriteString(theme.Hint.Render("Videos are unavailable right now."))
	case len(s.videos) == 0:
		b.WriteString(theme.Hint.Render("No videos found."))
	default:
		dim := lipgloss.NewStyle().Foreground(theme.TextDim)
		for _, v := range s.videos {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render("▶ " + v.Title))
			b.WriteString("\n")
			meta := []string{v.Channel}
			if v.Duration != "" {
				meta = append(meta, v.Duration)
			}
			if v.Views != "" {
				meta = append(meta, v.Views)
			}
			b.WriteString(dim.Render("  " + strings.Join(meta, " · ") + "  " + v.URL()))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (s *Screen) View(width, height int) string {
	if s.err != nil {
		return layout.Center(theme.Hint.Render("Module unavailable."), width, height)
	}

	cw := min(width-4, 80)

	badge := theme.Unlocked.Render("IN PROGRESS")
	switch s.state {
	case roadmap.Completed:
		badge = theme.Completed.Render("✓ COMPLETED")
	case roadmap.Locked:
		badge = theme.Locked.Render("🔒 LOCKED")
	}
	header := theme.Title.Render(s.mod.Title) + "  " + badge

	footer := s.menu.View()
	if s.flash != "" {
		footer += lipgloss.NewStyle().Foreground(theme.Accent).Render("⚠ " + s.flash)
	}

	avail := height - lipgloss.Height(header) - lipgloss.Height(footer) - 2
	lines := strings.Split(s.body(cw), "\n")
	if avail < 1 {
		avail = 1
	}
	if s.scroll > len(lines)-avail {
		s.scroll = max(0, len(lines)-avail)
	}
	end := min(len(lines), s.scroll+avail)
	body := strings.Join(lines[s.scroll:end], "\n")

	content := lipgloss.JoinVertical(lipgloss.Left, header, "", body, "", footer)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, lipgloss.NewStyle().Width(cw).Render(content))
}
