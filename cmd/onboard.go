package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/khalari/khalari/internal/learner"
	"github.com/spf13/cobra"
)

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Create the learner profile without the TUI",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		phone, _ := cmd.Flags().GetString("phone")
		language, _ := cmd.Flags().GetString("language")
		force, _ := cmd.Flags().GetBool("force")

		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("--name is required")
		}
		if err := learner.CheckPhone(phone); err != nil {
			return fmt.Errorf("invalid --phone: %w", err)
		}
		if !slices.Contains(learner.Languages, language) {
			return fmt.Errorf("unsupported language %q (choose from %s)", language, strings.Join(learner.Languages, ", "))
		}

		e, err := openEnv(cmd, true, false)
		if err != nil {
			return err
		}
		defer e.Close()

		if e.svc.Onboarded() && !force {
			return fmt.Errorf("a learner profile already exists; use --force to replace it")
		}
		l := e.svc.Onboard(cmd.Context(), name, phone, language)
		fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s! Lessons will be in %s.\n", l.Name, l.PreferredLanguage)
		return nil
	},
}

func init() {
	onboardCmd.Flags().String("name", "", "Your name")
	onboardCmd.Flags().String("phone", "", "Phone number (optional)")
	onboardCmd.Flags().String("language", learner.DefaultLanguage, "Lesson language: "+strings.Join(learner.Languages, ", "))
	onboardCmd.Flags().Bool("force", false, "Replace an existing profile")
}
