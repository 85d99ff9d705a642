// Package profile shows learner stats and activity and sells diamond packs.
package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/khalari/khalari/internal/career"
	"github.com/khalari/khalari/internal/learner"
	"github.com/khalari/khalari/internal/payment"
	"github.com/khalari/khalari/internal/screen"
	"github.com/khalari/khalari/internal/store"
	"github.com/khalari/khalari/internal/ui/components"
	"github.com/khalari/khalari/internal/ui/layout"
	"github.com/khalari/khalari/internal/ui/theme"
)

const heatmapWeeks = 12

type tab int

const (
	tabOverview tab = iota
	tabStore
)

type jobsMsg struct {
	jobs []career.Job
	err  error
}

type purchaseMsg struct {
	pack     payment.Pack
	credited bool
	err      error
}

// Screen is the learner profile with the diamond store.
type Screen struct {
	deps   screen.Deps
	widget payment.Widget
	now    func() time.Time

	tab    tab
	jobs   []career.Job
	cursor int
	buying bool
	notice string
	failed bool
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the profile screen. Purchases go through the test-mode
// checkout.
func New(deps screen.Deps) *Screen {
	return &Screen{
		deps:   deps,
		widget: payment.TestModeWidget{},
		now:    time.Now,
	}
}

func (s *Screen) Init() tea.Cmd {
	if s.deps.Jobs == nil {
		return nil
	}
	jobs := s.deps.Jobs
	return func() tea.Msg {
		applied, err := jobs.Applied(context.Background())
		return jobsMsg{jobs: applied, err: err}
	}
}

func (s *Screen) Title() string {
	return "Profile"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.tab == tabStore {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose pack"},
			{Key: "Enter", Description: "Buy"},
			{Key: "Tab", Description: "Overview"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Diamond store"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case jobsMsg:
		if msg.err != nil {
			s.deps.Log().Warn("failed to load applied jobs", zap.Error(msg.err))
		}
		s.jobs = msg.jobs
		return s, nil

	case purchaseMsg:
		s.buying = false
		s.failed = msg.err != nil
		switch {
		case errors.Is(msg.err, payment.ErrCancelled):
			s.notice = "Payment cancelled. Nothing was charged."
		case msg.err != nil:
			s.notice = "Payment failed: " + msg.err.Error()
		case !msg.credited:
			s.notice = "This payment was already credited."
		default:
			s.notice = fmt.Sprintf("Added %d diamonds!", msg.pack.Total())
		}
		return s, nil

	case tea.KeyPressMsg:
		return s, s.handleKey(msg.String())
	}
	return s, nil
}

func (s *Screen) handleKey(key string) tea.Cmd {
	if key == "tab" {
		if s.tab == tabOverview {
			s.tab = tabStore
		} else {
			s.tab = tabOverview
		}
		return nil
	}
	if s.tab != tabStore || s.buying {
		return nil
	}
	switch key {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(payment.Packs)-1 {
			s.cursor++
		}
	case "enter":
		return s.buy(payment.Packs[s.cursor])
	}
	return nil
}

// buy runs the checkout off the update loop. The balance only moves inside
// the success callback.
func (s *Screen) buy(pack payment.Pack) tea.Cmd {
	s.buying = true
	s.notice = ""
	l := s.deps.Engine.Learner()
	buyer := payment.Buyer{Name: l.Name, Phone: l.Phone}
	svc, widget, keyID := s.deps.Engine, s.widget, s.deps.PaymentKeyID
	return func() tea.Msg {
		ctx := context.Background()
		credited := false
		err := payment.Checkout(ctx, widget, keyID, pack, buyer, func(c payment.Confirmation, p payment.Pack) error {
			var err error
			credited, err = svc.Purchase(ctx, store.PurchaseData{
				PaymentID:   c.PaymentID,
				PackID:      p.ID,
				Diamonds:    p.Total(),
				AmountPaise: p.PricePaise,
			})
			return err
		})
		return purchaseMsg{pack: pack, credited: credited, err: err}
	}
}

func (s *Screen) View(width, height int) string {
	cw := min(width-4, 76)
	var body string
	if s.tab == tabStore {
		body = s.viewStore(cw)
	} else {
		body = s.viewOverview(cw)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Width(cw).Render(body))
}

func (s *Screen) viewOverview(cw int) string {
	snap := s.deps.Engine.Snapshot()
	l := snap.Learner
	ledger := learner.NewLedger(snap.Activity...)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	var b strings.Builder
	b.WriteString(theme.Title.Render(l.Name))
	b.WriteString("\n")
	b.WriteString(dim.Render(l.Bio))
	b.WriteString("\n")
	meta := []string{"Lessons in " + l.PreferredLanguage, "joined " + l.CreatedAt.Format("Jan 2006")}
	if l.Phone != "" {
		meta = append(meta, l.Phone)
	}
	b.WriteString(dim.Render(strings.Join(meta, " · ")))
	b.WriteString("\n\n")

	balance := lipgloss.NewStyle().Foreground(theme.Diamond).Bold(true)
	if l.Balance < 0 {
		balance = balance.Foreground(theme.Error)
	}
	stat := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	fmt.Fprintf(&b, "%s   %s   %s   %s\n\n",
		balance.Render(fmt.Sprintf("◆ %d diamonds", l.Balance)),
		stat.Render(fmt.Sprintf("🔥 %d day streak", l.CurrentStreak)),
		stat.Render(fmt.Sprintf("★ best %d", l.HighestStreak)),
		stat.Render(fmt.Sprintf("⏱ %s studied", formatDuration(ledger.TotalTime()))),
	)

	b.WriteString(theme.Heading.Render("Last 7 days"))
	b.WriteString("\n")
	b.WriteString(components.BarGraph(s.deps.Engine.LastDays(7), 4))
	b.WriteString("\n\n")

	b.WriteString(theme.Heading.Render(fmt.Sprintf("Activity · %d days with a completed module", ledger.CompletionDays())))
	b.WriteString("\n")
	b.WriteString(components.Heatmap(ledger, s.now(), heatmapWeeks))
	b.WriteString("\n")

	if len(s.jobs) > 0 {
		b.WriteString("\n")
		b.WriteString(theme.Heading.Render("Applied jobs"))
		b.WriteString("\n")
		for _, j := range s.jobs {
			b.WriteString(fmt.Sprintf("  • %s · %s\n", j.Title, dim.Render(j.Company)))
		}
	}
	return b.String()
}

func (s *Screen) viewStore(cw int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Diamond Store"))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(fmt.Sprintf("Balance: ◆ %d", s.deps.Engine.Learner().Balance)))
	b.WriteString("\n\n")

	for i, p := range payment.Packs {
		line := fmt.Sprintf("%-14s ◆ %-4d", p.Name, p.Diamonds)
		if p.Bonus > 0 {
			line += fmt.Sprintf(" +%d bonus", p.Bonus)
		} else {
			line += "         "
		}
		line += "  " + p.Price()
		if p.Popular {
			line += "  ★ popular"
		}
		style := lipgloss.NewStyle().Foreground(theme.Text)
		prefix := "  "
		if i == s.cursor {
			style = theme.Selected
			prefix = "▸ "
		}
		b.WriteString(style.Render(prefix + line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case s.buying:
		b.WriteString(theme.Hint.Render("Processing payment..."))
	case s.notice != "" && s.failed:
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Width(cw).Render(s.notice))
	case s.notice != "":
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Success).Render(s.notice))
	default:
		b.WriteString(theme.Hint.Render("Test mode: no real payment is taken."))
	}
	return b.String()
}

func formatDuration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
