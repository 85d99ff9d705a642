package cmd

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/khalari/khalari/internal/content"
	"github.com/khalari/khalari/internal/llm"
	"github.com/khalari/khalari/internal/store"
	"github.com/khalari/khalari/internal/ui/components"
	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask the learning assistant",
	Long: "Ask the learning assistant. Questions continue the most recent\n" +
		"conversation unless --new is given.",
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fresh, _ := cmd.Flags().GetBool("new")
		width, _ := cmd.Flags().GetInt("width")
		question := strings.TrimSpace(strings.Join(args, " "))

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
		events := e.store.EventRepo()

		threadID := ""
		if !fresh {
			if threadID, err = events.LatestChatThread(ctx); err != nil {
				return fmt.Errorf("find conversation: %w", err)
			}
		}
		var history []content.ChatMessage
		if threadID == "" {
			threadID = uuid.NewString()
		} else {
			recs, err := events.ChatThread(ctx, threadID, store.QueryOpts{})
			if err != nil {
				return fmt.Errorf("load conversation: %w", err)
			}
			for _, r := range recs {
				history = append(history, content.ChatMessage{
					FromUser: r.Role == string(llm.RoleUser),
					Text:     r.Content,
				})
			}
		}
		history = append(history, content.ChatMessage{FromUser: true, Text: question})

		reply, err := gen.Chat(ctx, history)
		if err != nil {
			return err
		}

		// The exchange is stored only once it succeeded so a failed call
		// leaves no dangling question in the thread.
		for _, m := range []store.ChatMessageData{
			{ThreadID: threadID, Role: string(llm.RoleUser), Content: question},
			{ThreadID: threadID, Role: string(llm.RoleAssistant), Content: reply},
		} {
			if err := events.AppendChatMessage(ctx, m); err != nil {
				return fmt.Errorf("save conversation: %w", err)
			}
		}

		fmt.Fprintln(cmd.OutOrStdout(), components.Markdown(reply, width))
		return nil
	},
}

func init() {
	askCmd.Flags().Bool("new", false, "Start a new conversation")
	askCmd.Flags().Int("width", 80, "Wrap width for the answer")
}
