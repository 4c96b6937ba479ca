package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/edunova/internal/ui/theme"
)

// Choice is a single entry of a Selector.
type Choice struct {
	Label  string
	Detail string
}

// Selector picks exactly one of a fixed set of choices. Horizontal
// selectors move with left/right, vertical ones with up/down.
type Selector struct {
	Choices    []Choice
	Selected   int
	Focused    bool
	Horizontal bool
}

// NewSelector creates a selector with the first choice selected.
func NewSelector(choices []Choice, horizontal bool) Selector {
	return Selector{Choices: choices, Horizontal: horizontal}
}

// Select moves the selection to i. Out of range values are ignored.
func (s *Selector) Select(i int) {
	if i >= 0 && i < len(s.Choices) {
		s.Selected = i
	}
}

// Update handles keyboard navigation while focused.
func (s Selector) Update(msg tea.Msg) (Selector, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || !s.Focused {
		return s, nil
	}

	prev, next := "up", "down"
	if s.Horizontal {
		prev, next = "left", "right"
	}

	switch kmsg.String() {
	case prev, "k", "h":
		if s.Selected > 0 {
			s.Selected--
		}
	case next, "j", "l":
		if s.Selected < len(s.Choices)-1 {
			s.Selected++
		}
	}
	return s, nil
}

// View renders the selector. highlight colors the selected entry.
func (s Selector) View(highlight lipgloss.Style) string {
	parts := make([]string, 0, len(s.Choices))
	for i, c := range s.Choices {
		marker := "  "
		style := theme.Unselected
		if i == s.Selected {
			marker = "● "
			style = highlight
			if s.Focused {
				marker = "▸ "
			}
		}
		line := style.Render(marker + c.Label)
		if !s.Horizontal && c.Detail != "" {
			line += "  " + theme.Caption.Render(c.Detail)
		}
		parts = append(parts, line)
	}
	if s.Horizontal {
		return strings.Join(parts, "    ")
	}
	return strings.Join(parts, "\n")
}
