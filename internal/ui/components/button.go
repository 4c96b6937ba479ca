package components

import (
	"github.com/abhisek/edunova/internal/ui/theme"
)

// Button is a styled, possibly disabled, button.
type Button struct {
	Label    string
	Disabled bool
}

// NewButton creates a new button.
func NewButton(label string, disabled bool) Button {
	return Button{Label: label, Disabled: disabled}
}

// View renders the button.
func (b Button) View() string {
	if b.Disabled {
		return theme.ButtonInactive.Render(b.Label)
	}
	return theme.ButtonActive.Render("▸ " + b.Label)
}
