package cmd

import (
	"fmt"
	"os"

	"github.com/khalari/khalari/internal/ui/components"
	"github.com/spf13/cobra"
)

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Score and improve a markdown resume",
}

var resumeAnalyzeCmd = &cobra.Command{
	Use:   "analyze <resume.md>",
	Short: "Give a resume an ATS score with feedback",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		md, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read resume: %w", err)
		}

		e, err := openEnv(cmd, true, true)
		if err != nil {
			return err
		}
		defer e.Close()
		gen, err := e.generator()
		if err != nil {
			return err
		}

		analysis, err := gen.AnalyzeResume(cmd.Context(), string(md))
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "ATS score: %d/100\n\n", analysis.ATSScore)
		for _, f := range analysis.Feedback {
			fmt.Fprintf(out, "• %s\n", f)
		}
		return nil
	},
}

var resumeEnhanceCmd = &cobra.Command{
	Use:   "enhance <resume.md>",
	Short: "Rewrite a resume using the analysis feedback",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outPath, _ := cmd.Flags().GetString("out")
		width, _ := cmd.Flags().GetInt("width")

		md, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read resume: %w", err)
		}

		e, err := openEnv(cmd, true, true)
		if err != nil {
			return err
		}
		defer e.Close()
		gen, err := e.generator()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		analysis, err := gen.AnalyzeResume(ctx, string(md))
		if err != nil {
			return err
		}
		enhanced, err := gen.EnhanceResume(ctx, string(md), analysis.Feedback)
		if err != nil {
			return err
		}

		if outPath != "" {
			if err := os.WriteFile(outPath, []byte(enhanced), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", outPath, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Enhanced resume written to %s (score was %d/100).\n", outPath, analysis.ATSScore)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), components.Markdown(enhanced, width))
		return nil
	},
}

func init() {
	resumeEnhanceCmd.Flags().StringP("out", "o", "", "Write the enhanced markdown to a file instead of printing it")
	resumeEnhanceCmd.Flags().Int("width", 80, "Wrap width when printing")

	resumeCmd.AddCommand(resumeAnalyzeCmd)
	resumeCmd.AddCommand(resumeEnhanceCmd)
}
