package study

import "github.com/abhisek/edunova/internal/content"

// FlashcardSession tracks which cards are showing their definition.
type FlashcardSession struct {
	cards   []content.Flashcard
	flipped map[int]bool
}

// NewFlashcardSession creates a session with every card face down.
func NewFlashcardSession(cards []content.Flashcard) *FlashcardSession {
	return &FlashcardSession{cards: cards, flipped: make(map[int]bool)}
}

// Cards returns the cards in source order.
func (s *FlashcardSession) Cards() []content.Flashcard { return s.cards }

// Len returns the number of cards.
func (s *FlashcardSession) Len() int { return len(s.cards) }

// Toggle flips card i. Out of range indices are ignored.
func (s *FlashcardSession) Toggle(i int) {
	if i < 0 || i >= len(s.cards) {
		return
	}
	if s.flipped[i] {
		delete(s.flipped, i)
	} else {
		s.flipped[i] = true
	}
}

// Flipped reports whether card i shows its definition.
func (s *FlashcardSession) Flipped(i int) bool { return s.flipped[i] }

// FlippedCount returns how many cards are face up.
func (s *FlashcardSession) FlippedCount() int { return len(s.flipped) }

// Reset turns every card face down.
func (s *FlashcardSession) Reset() {
	clear(s.flipped)
}
