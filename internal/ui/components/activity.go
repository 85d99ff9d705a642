package components

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/khalari/khalari/internal/learner"
	"github.com/khalari/khalari/internal/ui/theme"
)

// BarGraph renders minutes studied per day as vertical bars, oldest day
// on the left. rows is the bar height in lines.
func BarGraph(days []learner.ActivityEntry, rows int) string {
	if rows < 1 {
		rows = 1
	}
	var peak int64
	for _, d := range days {
		peak = max(peak, d.TimeSpentSeconds)
	}

	bar := lipgloss.NewStyle().Foreground(theme.Secondary)
	empty := lipgloss.NewStyle().Foreground(theme.Border)

	heights := make([]int, len(days))
	for i, d := range days {
		if peak > 0 && d.TimeSpentSeconds > 0 {
			heights[i] = max(1, int(d.TimeSpentSeconds*int64(rows)/peak))
		}
	}

	var b strings.Builder
	for r := rows; r >= 1; r-- {
		for i := range days {
			if heights[i] >= r {
				b.WriteString(bar.Render(" ███ "))
			} else if r == 1 {
				b.WriteString(empty.Render(" ▁▁▁ "))
			} else {
				b.WriteString("     ")
			}
		}
		b.WriteString("\n")
	}
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	for _, d := range days {
		b.WriteString(dim.Render(fmt.Sprintf(" %-3s ", d.Date.Format("Mon"))))
	}
	b.WriteString("\n")
	for _, d := range days {
		b.WriteString(dim.Render(fmt.Sprintf("%4s ", minutes(d.TimeSpentSeconds))))
	}
	return b.String()
}

func minutes(secs int64) string {
	if secs == 0 {
		return "-"
	}
	m := (secs + 59) / 60
	return fmt.Sprintf("%dm", m)
}

// heatLevel buckets a day for the heatmap: completion days are always hot.
func heatLevel(e learner.ActivityEntry) int {
	switch {
	case e.CompletedAnyModule && e.TimeSpentSeconds >= 30*60:
		return 3
	case e.CompletedAnyModule:
		return 2
	case e.TimeSpentSeconds > 0:
		return 1
	default:
		return 0
	}
}

// Heatmap renders weeks columns of activity ending on today, one row per
// weekday starting Sunday.
func Heatmap(ledger *learner.Ledger, today time.Time, weeks int) string {
	today = learner.DayOf(today)
	// Start on the Sunday weeks-1 weeks before this week's Sunday.
	start := today.AddDate(0, 0, -int(today.Weekday())-7*(weeks-1))

	labels := []string{"Sun", "   ", "Tue", "   ", "Thu", "   ", "Sat"}
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	var b strings.Builder
	for wd := 0; wd < 7; wd++ {
		b.WriteString(dim.Render(labels[wd]) + " ")
		for w := 0; w < weeks; w++ {
			day := start.AddDate(0, 0, w*7+wd)
			if day.After(today) {
				b.WriteString("  ")
				continue
			}
			b.WriteString(theme.Heat[heatLevel(ledger.Entry(day))].Render("■ "))
		}
		b.WriteString("\n")
	}
	b.WriteString(dim.Render("    less "))
	for _, s := range theme.Heat {
		b.WriteString(s.Render("■ "))
	}
	b.WriteString(dim.Render("more"))
	return b.String()
}
