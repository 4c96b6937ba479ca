package components

import (
	"fmt"
	"strings"

	"github.com/abhisek/edunova/internal/content"
	"github.com/abhisek/edunova/internal/ui/theme"
)

// AnswerList renders the four options of a quiz question. cursor is the
// highlighted option, chosen the recorded answer (empty for none).
// Placeholder questions render every option dimmed.
func AnswerList(q content.QuizQuestion, cursor int, chosen content.OptionLabel) string {
	lines := make([]string, 0, len(q.Options))
	for i, opt := range q.Options {
		label := content.OptionLabels[i]
		prefix := "  "
		if i == cursor {
			prefix = "▸ "
		}
		mark := " "
		if label == chosen {
			mark = "✓"
		}
		line := fmt.Sprintf("%s%s %s)  %s", prefix, mark, label, opt)

		switch {
		case q.Placeholder:
			line = theme.Hint.Render(line)
		case label == chosen:
			line = theme.Selected.Render(line)
		case i == cursor:
			line = theme.Body.Bold(true).Render(line)
		default:
			line = theme.Unselected.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
