package components

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/khalari/khalari/internal/ui/theme"
)

// ProgressBar is a labelled horizontal bar.
type ProgressBar struct {
	Label       string
	Percent     float64 // clamped to [0, 1] when rendered
	ShowPercent bool
	Width       int
	Fill        color.Color
}

// RoadmapProgress shows done of total modules with a percentage.
func RoadmapProgress(done, total, width int) ProgressBar {
	p := 0.0
	if total > 0 {
		p = float64(done) / float64(total)
	}
	fill := theme.Secondary
	if total > 0 && done == total {
		fill = theme.Gold
	}
	return ProgressBar{
		Label:       fmt.Sprintf("%d/%d", done, total),
		Percent:     p,
		ShowPercent: true,
		Width:       width,
		Fill:        fill,
	}
}

// Countdown drains as remaining approaches zero and turns red in the last
// fifth of the limit.
func Countdown(remaining, limit time.Duration, width int) ProgressBar {
	remaining = max(remaining, 0)
	secs := int((remaining + time.Second - 1) / time.Second)
	p := 0.0
	if limit > 0 {
		p = float64(remaining) / float64(limit)
	}
	fill := theme.Secondary
	if p <= 0.2 {
		fill = theme.Error
	}
	return ProgressBar{
		Label:   fmt.Sprintf("⏱ %2ds", secs),
		Percent: p,
		Width:   width,
		Fill:    fill,
	}
}

func (p ProgressBar) View() string {
	var b strings.Builder
	if p.Label != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label))
		b.WriteString("  ")
	}

	pct := min(max(p.Percent, 0), 1)
	suffix := ""
	if p.ShowPercent {
		suffix = fmt.Sprintf("  %d%%", int(pct*100))
	}

	barWidth := max(p.Width-lipgloss.Width(b.String())-len(suffix), 4)
	filled := int(float64(barWidth) * pct)

	fill := p.Fill
	if fill == nil {
		fill = theme.Secondary
	}
	b.WriteString(lipgloss.NewStyle().Background(fill).Render(strings.Repeat(" ", filled)))
	b.WriteString(lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled)))
	if suffix != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(suffix))
	}
	return b.String()
}
