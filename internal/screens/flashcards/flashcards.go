// Package flashcards is the flip-card study screen.
package flashcards

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/edunova/internal/screen"
	"github.com/abhisek/edunova/internal/study"
	"github.com/abhisek/edunova/internal/ui/components"
	"github.com/abhisek/edunova/internal/ui/layout"
	"github.com/abhisek/edunova/internal/ui/theme"
)

// FlashcardScreen shows a deck of cards. Each card flips independently.
type FlashcardScreen struct {
	session *study.FlashcardSession
	topic   string
	cursor  int
}

var _ screen.Screen = (*FlashcardScreen)(nil)
var _ screen.KeyHintProvider = (*FlashcardScreen)(nil)

// New creates a screen over session. The session is shared with the
// caller, so flips persist after the screen is closed.
func New(session *study.FlashcardSession, topic string) *FlashcardScreen {
	return &FlashcardScreen{session: session, topic: topic}
}

func (s *FlashcardScreen) Init() tea.Cmd { return nil }

func (s *FlashcardScreen) Title() string {
	return "Flashcards: " + s.topic
}

func (s *FlashcardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Move"},
		{Key: "Space", Description: "Flip"},
		{Key: "R", Description: "Reset"},
		{Key: "Esc", Description: "Back"},
	}
}

// Cursor returns the highlighted card index.
func (s *FlashcardScreen) Cursor() int { return s.cursor }

func (s *FlashcardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "up", "k", "left", "h":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j", "right", "l":
		if s.cursor < s.session.Len()-1 {
			s.cursor++
		}
	case "space", "enter":
		s.session.Toggle(s.cursor)
	case "r":
		s.session.Reset()
	}
	return s, nil
}

func (s *FlashcardScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	bar := components.NewProgressBar("Flipped", s.session.FlippedCount(), s.session.Len(), cw).View()
	sections := []string{bar, ""}

	// Keep the highlighted card on screen when the deck is taller than
	// the available height.
	const cardHeight = 4
	visible := max((height-3)/cardHeight, 1)
	first := max(s.cursor-visible+1, 0)

	cards := s.session.Cards()
	for i := first; i < len(cards) && i < first+visible; i++ {
		sections = append(sections, s.renderCard(i, cw))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(sections, "\n"))
}

func (s *FlashcardScreen) renderCard(i, cw int) string {
	card := s.session.Cards()[i]

	style := theme.CardFront
	text := fmt.Sprintf("%d. ❓ %s", i+1, card.Term)
	if s.session.Flipped(i) {
		style = theme.CardBack
		text = fmt.Sprintf("%d. 💡 %s", i+1, card.Definition)
	}
	if card.Placeholder {
		text = theme.Hint.Render(text)
	}
	if i == s.cursor {
		style = style.BorderForeground(theme.Sunshine)
	}
	return style.Width(cw - 2).Render(text)
}
