package content

import (
	"context"
	"fmt"
	"strings"

	"github.com/khalari/khalari/internal/llm"
)

// ChatMessage is one turn of the study assistant conversation.
type ChatMessage struct {
	FromUser bool
	Text     string
}

// Chat returns the assistant's reply to the last user message in history.
func (g *Generator) Chat(ctx context.Context, history []ChatMessage) (string, error) {
	if len(history) == 0 || !history[len(history)-1].FromUser {
		return "", fmt.Errorf("%w: chat history must end with a user message", ErrGeneration)
	}
	if n := g.config.ChatHistory; n > 0 && len(history) > n {
		history = history[len(history)-n:]
	}
	// Providers expect the conversation to open with a user turn.
	for len(history) > 0 && !history[0].FromUser {
		history = history[1:]
	}

	msgs := make([]llm.Message, 0, len(history))
	for _, m := range history {
		role := llm.RoleAssistant
		if m.FromUser {
			role = llm.RoleUser
		}
		msgs = append(msgs, llm.Message{Role: role, Content: m.Text})
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeChat)
	resp, err := g.provider.Generate(ctx, llm.Request{
		System:      chatSystemPrompt,
		Messages:    msgs,
		MaxTokens:   g.config.ChatMaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("%w: chat: %w", ErrGeneration, err)
	}
	text, err := resp.Text()
	if err != nil {
		return "", fmt.Errorf("%w: chat: %w", ErrGeneration, err)
	}
	return strings.TrimSpace(text), nil
}
