package cmd

import (
	"fmt"
	"io"

	"github.com/khalari/khalari/internal/community"
	"github.com/spf13/cobra"
)

var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "Find and join study groups",
}

var groupsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List study groups",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, true, false)
		if err != nil {
			return err
		}
		defer e.Close()

		listing, err := community.NewService(e.store.CommunityRepo(), e.logger).List(cmd.Context())
		if err != nil {
			return fmt.Errorf("list groups: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(listing.Mine) > 0 {
			fmt.Fprintln(out, "My groups")
			printGroups(out, listing.Mine)
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out, "Discover")
		if len(listing.Others) == 0 {
			fmt.Fprintln(out, "  You are in every group.")
		}
		printGroups(out, listing.Others)
		return nil
	},
}

var groupsJoinCmd = &cobra.Command{
	Use:   "join <group-id>",
	Short: "Join a study group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, true, false)
		if err != nil {
			return err
		}
		defer e.Close()

		joined, err := community.NewService(e.store.CommunityRepo(), e.logger).Join(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if !joined {
			fmt.Fprintln(cmd.OutOrStdout(), "You are already a member.")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Joined!")
		return nil
	},
}

var groupsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a study group",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		topic, _ := cmd.Flags().GetString("topic")
		desc, _ := cmd.Flags().GetString("description")

		e, err := openEnv(cmd, true, false)
		if err != nil {
			return err
		}
		defer e.Close()

		g, err := community.NewService(e.store.CommunityRepo(), e.logger).Create(cmd.Context(), name, topic, desc)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s [%s].\n", g.Name, g.ID)
		return nil
	},
}

func printGroups(w io.Writer, groups []community.Group) {
	for _, g := range groups {
		fmt.Fprintf(w, "  [%s] %s · %s · %d members\n", g.ID, g.Name, g.Topic, g.Members)
		if g.Description != "" {
			fmt.Fprintf(w, "      %s\n", g.Description)
		}
	}
}

func init() {
	groupsCreateCmd.Flags().String("name", "", "Group name")
	groupsCreateCmd.Flags().String("topic", "", "Topic the group studies")
	groupsCreateCmd.Flags().String("description", "", "What the group is about")
	_ = groupsCreateCmd.MarkFlagRequired("name")
	_ = groupsCreateCmd.MarkFlagRequired("topic")

	groupsCmd.AddCommand(groupsListCmd)
	groupsCmd.AddCommand(groupsJoinCmd)
	groupsCmd.AddCommand(groupsCreateCmd)
}
