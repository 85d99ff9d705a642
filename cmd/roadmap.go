package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/khalari/khalari/internal/engine"
	"github.com/khalari/khalari/internal/learner"
	"github.com/khalari/khalari/internal/roadmap"
	"github.com/spf13/cobra"
)

var roadmapCmd = &cobra.Command{
	Use:   "roadmap",
	Short: "Generate and inspect learning roadmaps",
}

var roadmapNewCmd = &cobra.Command{
	Use:   "new <topic>",
	Short: "Generate a roadmap for a topic and make it current",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topic := strings.TrimSpace(strings.Join(args, " "))
		yes, _ := cmd.Flags().GetBool("yes")

		e, err := openEnv(cmd, true, true)
		if err != nil {
			return err
		}
		defer e.Close()
		if err := e.requireOnboarded(); err != nil {
			return err
		}
		gen, err := e.generator()
		if err != nil {
			return err
		}

		if e.svc.Snapshot().Roadmap != nil && !yes {
			if !confirm(cmd.InOrStdin(), cmd.OutOrStdout(),
				"This replaces your current roadmap and resets your bypass attempts. Continue?") {
				return fmt.Errorf("cancelled")
			}
		}

		lang := learner.LanguageCode(e.svc.Learner().PreferredLanguage)
		fmt.Fprintf(cmd.ErrOrStderr(), "Generating a roadmap for %q...\n", topic)
		rm, err := gen.GenerateRoadmap(cmd.Context(), topic, lang)
		if err != nil {
			return fmt.Errorf("generate roadmap: %w", err)
		}
		if err := e.svc.StartRoadmap(cmd.Context(), rm); err != nil {
			return fmt.Errorf("start roadmap: %w", err)
		}
		printRoadmap(cmd.OutOrStdout(), e.svc.Snapshot())
		return nil
	},
}

var roadmapShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current roadmap and module states",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, true, false)
		if err != nil {
			return err
		}
		defer e.Close()

		snap := e.svc.Snapshot()
		if snap.Roadmap == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "No roadmap yet. Create one with `khalari roadmap new <topic>`.")
			return nil
		}
		printRoadmap(cmd.OutOrStdout(), snap)
		return nil
	},
}

var roadmapSuggestCmd = &cobra.Command{
	Use:   "suggest <text>",
	Short: "Suggest topics matching a partial query",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, true, true)
		if err != nil {
			return err
		}
		defer e.Close()
		gen, err := e.generator()
		if err != nil {
			return err
		}

		suggestions := gen.SuggestTopics(cmd.Context(), strings.Join(args, " "))
		if len(suggestions) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No suggestions.")
			return nil
		}
		for _, s := range suggestions {
			fmt.Fprintln(cmd.OutOrStdout(), s)
		}
		return nil
	},
}

func printRoadmap(w io.Writer, snap engine.Snapshot) {
	rm := snap.Roadmap
	fmt.Fprintf(w, "%s  (%d/%d complete)\n", rm.Topic, snap.Completed(), rm.Len())
	fmt.Fprintln(w, strings.Repeat("─", 60))
	for i, m := range rm.Modules {
		badge := "🔒"
		if i < len(snap.States) {
			switch snap.States[i] {
			case roadmap.Completed:
				badge = "✓ "
			case roadmap.Unlocked:
				badge = "▶ "
			}
		}
		fmt.Fprintf(w, "%s %2d. %s\n", badge, i+1, m.Title)
	}
	if snap.Bonus {
		fmt.Fprintln(w, "\nRoadmap complete! Bonus diamonds awarded.")
	}
	if len(rm.FurtherTopics) > 0 {
		fmt.Fprintln(w, "\nWhat next:")
		for _, t := range rm.FurtherTopics {
			fmt.Fprintf(w, "  • %s\n", t)
		}
	}
}

// confirm asks a yes/no question on the terminal; anything but y/yes is no.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N] ", question)
	line, _ := bufio.NewReader(in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func init() {
	roadmapNewCmd.Flags().BoolP("yes", "y", false, "Replace the current roadmap without asking")

	roadmapCmd.AddCommand(roadmapNewCmd)
	roadmapCmd.AddCommand(roadmapShowCmd)
	roadmapCmd.AddCommand(roadmapSuggestCmd)
}
