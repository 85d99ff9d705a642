package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/khalari/khalari/internal/learner"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		days, _ := cmd.Flags().GetInt("days")
		if days < 1 {
			return fmt.Errorf("--days must be at least 1")
		}

		e, err := openEnv(cmd, true, false)
		if err != nil {
			return err
		}
		defer e.Close()
		if err := e.requireOnboarded(); err != nil {
			return err
		}

		snap := e.svc.Snapshot()
		ledger := learner.NewLedger(snap.Activity...)
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "Diamonds:        %d\n", snap.Learner.Balance)
		fmt.Fprintf(out, "Current streak:  %d\n", snap.Learner.CurrentStreak)
		fmt.Fprintf(out, "Best streak:     %d\n", snap.Learner.HighestStreak)
		fmt.Fprintf(out, "Active days:     %d\n", ledger.CompletionDays())
		fmt.Fprintf(out, "Time studied:    %s\n", formatStudyTime(ledger.TotalTime()))
		if snap.Roadmap != nil {
			fmt.Fprintf(out, "Roadmap:         %s (%d/%d modules)\n",
				snap.Roadmap.Topic, snap.Completed(), snap.Roadmap.Len())
		}

		fmt.Fprintln(out)
		fmt.Fprintf(out, "Last %d days\n", days)
		fmt.Fprintln(out, strings.Repeat("─", 40))
		entries := e.svc.LastDays(days)
		var longest int64
		for _, en := range entries {
			longest = max(longest, en.TimeSpentSeconds)
		}
		for _, en := range entries {
			mark := " "
			if en.CompletedAnyModule {
				mark = "✓"
			}
			fmt.Fprintf(out, "%s  %s %-20s %s\n",
				en.Date.Format("Mon 02 Jan"), mark,
				bar(en.TimeSpentSeconds, longest, 20),
				formatStudyTime(time.Duration(en.TimeSpentSeconds)*time.Second))
		}
		return nil
	},
}

// bar scales v against longest into at most width blocks.
func bar(v, longest int64, width int) string {
	if longest <= 0 || v <= 0 {
		return ""
	}
	n := int(v * int64(width) / longest)
	return strings.Repeat("█", max(n, 1))
}

func formatStudyTime(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

func init() {
	statsCmd.Flags().Int("days", 7, "Number of days of activity to show")
}
