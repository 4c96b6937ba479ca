package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/edunova/internal/ui/theme"
)

// ContentWidth returns the inner width used for cards and result panes.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 96)
}

// Card wraps content in a rounded-border card at the given content width.
func Card(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw-2).
		Padding(0, 1).
		Render(content)
}

// Modal renders a blocking alert with a dismiss hint, centered in the
// given area.
func Modal(message string, width, height int) string {
	box := theme.Modal.
		Width(min(width-4, 50)).
		Render(theme.Body.Bold(true).Render(message) + "\n\n" + theme.Hint.Render("press Enter or Esc"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
