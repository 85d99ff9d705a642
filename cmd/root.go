package cmd

import (
	"github.com/khalari/khalari/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "khalari",
	Short: "AI learning roadmaps in your terminal",
	Long: "Khalari turns any topic into a roadmap of modules, quizzes you on each one\n" +
		"and rewards streaks with diamonds.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides KHALARI_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default $XDG_CONFIG_HOME/khalari/config.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "Log at debug level and echo logs to stderr")

	rootCmd.AddCommand(onboardCmd)
	rootCmd.AddCommand(roadmapCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(diamondsCmd)
	rootCmd.AddCommand(jobsCmd)
	rootCmd.AddCommand(groupsCmd)
	rootCmd.AddCommand(resumeCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the --db flag when set. An empty result leaves the
// choice to the config file, then KHALARI_DB, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return "", nil
}
