// Package quiz is the step-by-step quiz screen.
package quiz

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/edunova/internal/content"
	"github.com/abhisek/edunova/internal/screen"
	"github.com/abhisek/edunova/internal/study"
	"github.com/abhisek/edunova/internal/ui/components"
	"github.com/abhisek/edunova/internal/ui/layout"
	"github.com/abhisek/edunova/internal/ui/theme"
)

// QuizScreen walks through a QuizSession one question at a time.
// Choosing an option records it; moving on needs an explicit Next.
type QuizScreen struct {
	session *study.QuizSession
	topic   string
	cursor  int
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a screen over session. The session is shared with the
// caller.
func New(session *study.QuizSession, topic string) *QuizScreen {
	s := &QuizScreen{session: session, topic: topic}
	s.syncCursor()
	return s
}

func (s *QuizScreen) Init() tea.Cmd { return nil }

func (s *QuizScreen) Title() string {
	return "Quiz: " + s.topic
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.session.Completed() {
		return []layout.KeyHint{
			{Key: "R", Description: "Try again"},
			{Key: "Esc", Description: "Back"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Move"},
		{Key: "Enter", Description: "Choose"},
	}
	if s.session.CanAdvance() {
		label := "Next"
		if s.session.IsLast() {
			label = "Finish"
		}
		hints = append(hints, layout.KeyHint{Key: "N", Description: label})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

// syncCursor puts the cursor on the recorded answer of the current
// question, or on the first option.
func (s *QuizScreen) syncCursor() {
	s.cursor = 0
	if l, ok := s.session.Answer(s.session.Current()); ok {
		s.cursor = l.Index()
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	key := kmsg.String()

	if key == "r" && s.session.Completed() {
		s.session.Reset()
		s.syncCursor()
		return s, nil
	}

	switch key {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(content.OptionLabels)-1 {
			s.cursor++
		}
	case "enter", "space":
		s.session.Select(content.OptionLabels[s.cursor])
	case "a", "b", "c", "d":
		label := content.OptionLabel(strings.ToUpper(key))
		if s.session.Select(label) {
			s.cursor = label.Index()
		}
	case "n", "right":
		if s.session.Next() {
			s.syncCursor()
		}
	}
	return s, nil
}

func (s *QuizScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var body string
	if s.session.Completed() {
		body = s.renderResults(cw)
	} else {
		body = s.renderQuestion(cw)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, body)
}

func (s *QuizScreen) renderQuestion(cw int) string {
	q := s.session.CurrentQuestion()
	chosen, _ := s.session.Answer(s.session.Current())

	bar := components.NewProgressBar("Question", s.session.Current()+1, s.session.Len(), cw).View()
	prompt := theme.Body.Bold(true).Width(cw - 4).Render(q.Prompt)

	next := "Next ▸"
	if s.session.IsLast() {
		next = "Finish ▸"
	}
	button := components.NewButton(next, !s.session.CanAdvance()).View()

	card := components.Card(prompt+"\n\n"+components.AnswerList(q, s.cursor, chosen), cw)
	return strings.Join([]string{bar, "", card, "", button}, "\n")
}

// ScoreLine is the headline shown when a quiz is finished.
func ScoreLine(score, total int) string {
	msg := fmt.Sprintf("You got %d out of %d right!", score, total)
	switch {
	case total > 0 && score == total:
		return "🏆 " + msg
	case score*2 >= total:
		return "🌟 " + msg
	}
	return "💪 " + msg + " Keep practicing!"
}

func (s *QuizScreen) renderResults(cw int) string {
	lines := []string{
		theme.Title.Render(ScoreLine(s.session.Score(), s.session.Len())),
		"",
	}
	for i, q := range s.session.Questions() {
		answer, _ := s.session.Answer(i)
		if answer == q.Correct {
			lines = append(lines, theme.Correct.Render(fmt.Sprintf("✓ %d. %s", i+1, q.Prompt)))
			continue
		}
		lines = append(lines,
			theme.Incorrect.Render(fmt.Sprintf("✗ %d. %s", i+1, q.Prompt)),
			theme.Caption.Render(fmt.Sprintf("    you chose %s, answer: %s) %s", answer, q.Correct, q.Option(q.Correct))),
		)
	}
	return components.Card(strings.Join(lines, "\n"), cw)
}
