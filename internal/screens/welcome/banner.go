package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/edunova/internal/ui/theme"
)

const bannerArt = `
 ███████╗██████╗ ██╗   ██╗███╗   ██╗ ██████╗ ██╗   ██╗ █████╗
 ██╔════╝██╔══██╗██║   ██║████╗  ██║██╔═══██╗██║   ██║██╔══██╗
 █████╗  ██║  ██║██║   ██║██╔██╗ ██║██║   ██║██║   ██║███████║
 ██╔══╝  ██║  ██║██║   ██║██║╚██╗██║██║   ██║╚██╗ ██╔╝██╔══██║
 ███████╗██████╔╝╚██████╔╝██║ ╚████║╚██████╔╝ ╚████╔╝ ██║  ██║
 ╚══════╝╚═════╝  ╚═════╝ ╚═╝  ╚═══╝ ╚═════╝   ╚═══╝  ╚═╝  ╚═╝`

const bannerCompact = "E D U N O V A"

// bannerMinWidth is the narrowest terminal that fits bannerArt.
const bannerMinWidth = 66

// RenderBanner returns the EDUNOVA banner styled in the primary color,
// falling back to a one-line version on narrow terminals.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerMinWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
