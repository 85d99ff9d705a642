package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/khalari/khalari/internal/learner"
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or edit the learner profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the learner profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, true, false)
		if err != nil {
			return err
		}
		defer e.Close()
		if err := e.requireOnboarded(); err != nil {
			return err
		}

		l := e.svc.Learner()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Name:      %s\n", l.Name)
		fmt.Fprintf(out, "Bio:       %s\n", l.Bio)
		if l.Phone != "" {
			fmt.Fprintf(out, "Phone:     %s\n", l.Phone)
		}
		fmt.Fprintf(out, "Language:  %s\n", l.PreferredLanguage)
		fmt.Fprintf(out, "Joined:    %s\n", l.CreatedAt.Local().Format("2 Jan 2006"))
		fmt.Fprintf(out, "Diamonds:  %d\n", l.Balance)
		fmt.Fprintf(out, "Streak:    %d (best %d)\n", l.CurrentStreak, l.HighestStreak)
		return nil
	},
}

var profileEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Update profile fields",
	Long:  "Update profile fields. Only the flags you pass are changed.",
	RunE: func(cmd *cobra.Command, args []string) error {
		var edit learner.Edit
		flags := cmd.Flags()
		if flags.Changed("name") {
			v, _ := flags.GetString("name")
			edit.Name = &v
		}
		if flags.Changed("bio") {
			v, _ := flags.GetString("bio")
			edit.Bio = &v
		}
		if flags.Changed("phone") {
			v, _ := flags.GetString("phone")
			if err := learner.CheckPhone(v); err != nil {
				return fmt.Errorf("invalid --phone: %w", err)
			}
			edit.Phone = &v
		}
		if flags.Changed("language") {
			v, _ := flags.GetString("language")
			if !slices.Contains(learner.Languages, v) {
				return fmt.Errorf("unsupported language %q (choose from %s)", v, strings.Join(learner.Languages, ", "))
			}
			edit.Language = &v
		}
		if edit == (learner.Edit{}) {
			return fmt.Errorf("nothing to change: pass --name, --bio, --phone or --language")
		}

		e, err := openEnv(cmd, true, false)
		if err != nil {
			return err
		}
		defer e.Close()
		if err := e.requireOnboarded(); err != nil {
			return err
		}

		l := e.svc.UpdateProfile(cmd.Context(), edit)
		fmt.Fprintf(cmd.OutOrStdout(), "Profile updated for %s.\n", l.Name)
		return nil
	},
}

func init() {
	profileEditCmd.Flags().String("name", "", "Display name")
	profileEditCmd.Flags().String("bio", "", "Short bio")
	profileEditCmd.Flags().String("phone", "", "Phone number, empty to clear")
	profileEditCmd.Flags().String("language", "", "Lesson language: "+strings.Join(learner.Languages, ", "))

	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileEditCmd)
}
