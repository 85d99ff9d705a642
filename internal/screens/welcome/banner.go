package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/khalari/khalari/internal/ui/theme"
)

const bannerArt = `
 ██╗  ██╗██╗  ██╗ █████╗ ██╗      █████╗ ██████╗ ██╗
 ██║ ██╔╝██║  ██║██╔══██╗██║     ██╔══██╗██╔══██╗██║
 █████╔╝ ███████║███████║██║     ███████║██████╔╝██║
 ██╔═██╗ ██╔══██║██╔══██║██║     ██╔══██║██╔══██╗██║
 ██║  ██╗██║  ██║██║  ██║███████╗██║  ██║██║  ██║██║
 ╚═╝  ╚═╝╚═╝  ╚═╝╚═╝  ╚═╝╚══════╝╚═╝  ╚═╝╚═╝  ╚═╝╚═╝`

const bannerCompact = "K H A L A R I"

// RenderBanner returns the KHALARI banner styled in the primary color.
// Terminals narrower than 56 columns get the compact form.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 56 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
