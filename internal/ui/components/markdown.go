package components

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// Markdown renders md for the terminal, word-wrapped at width. Rendering
// errors fall back to the raw text.
func Markdown(md string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}
