package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/khalari/khalari/internal/career"
	"github.com/spf13/cobra"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Browse the job board",
}

var jobsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List openings not applied for yet",
	RunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")

		e, err := openEnv(cmd, true, false)
		if err != nil {
			return err
		}
		defer e.Close()

		jobs, err := e.jobs().Open(cmd.Context())
		if err != nil {
			return fmt.Errorf("list jobs: %w", err)
		}
		if len(jobs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "You have applied for every opening.")
			return nil
		}
		printJobs(cmd.OutOrStdout(), jobs, verbose)
		return nil
	},
}

var jobsApplyCmd = &cobra.Command{
	Use:   "apply <job-id>",
	Short: "Apply for an opening",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, true, false)
		if err != nil {
			return err
		}
		defer e.Close()

		job, err := e.jobs().Apply(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Applied for %s at %s.\n", job.Title, job.Company)
		return nil
	},
}

var jobsAppliedCmd = &cobra.Command{
	Use:   "applied",
	Short: "List the openings you applied for",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, true, false)
		if err != nil {
			return err
		}
		defer e.Close()

		jobs, err := e.jobs().Applied(cmd.Context())
		if err != nil {
			return fmt.Errorf("list applications: %w", err)
		}
		if len(jobs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No applications yet.")
			return nil
		}
		printJobs(cmd.OutOrStdout(), jobs, false)
		return nil
	},
}

func printJobs(w io.Writer, jobs []career.Job, verbose bool) {
	for i, j := range jobs {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "[%s] %s at %s\n", j.ID, j.Title, j.Company)
		fmt.Fprintf(w, "      %s · %s\n", j.Location, strings.Join(j.Skills, ", "))
		if !verbose {
			continue
		}
		fmt.Fprintf(w, "      %s\n", j.Description)
		for _, r := range j.Responsibilities {
			fmt.Fprintf(w, "      - %s\n", r)
		}
		fmt.Fprintln(w, "      Qualifications:")
		for _, q := range j.Qualifications {
			fmt.Fprintf(w, "      - %s\n", q)
		}
	}
}

func init() {
	jobsListCmd.Flags().BoolP("verbose", "v", false, "Show full job descriptions")

	jobsCmd.AddCommand(jobsListCmd)
	jobsCmd.AddCommand(jobsApplyCmd)
	jobsCmd.AddCommand(jobsAppliedCmd)
}
