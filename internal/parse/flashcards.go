package parse

import (
	"strings"

	"github.com/abhisek/edunova/internal/content"
)

// PlaceholderFlashcard is shown when no card could be parsed.
var PlaceholderFlashcard = content.Flashcard{
	Term:        "No flashcards found",
	Definition:  "The response did not contain cards in the expected CARD / TERM / DEFINITION format. Try generating again or pick a more specific topic.",
	Placeholder: true,
}

// FlashcardsStrict extracts every complete CARD segment from text, in
// source order. Segments missing a TERM or a DEFINITION are skipped.
// It returns a *Failure when no card is complete.
func FlashcardsStrict(text string) ([]content.Flashcard, error) {
	segs := segments(normalize(text), cardHeader)

	var cards []content.Flashcard
	for _, seg := range segs {
		if card, ok := flashcard(seg); ok {
			cards = append(cards, card)
		}
	}
	if len(cards) == 0 {
		return nil, &Failure{ContentType: content.Flashcards, Segments: len(segs)}
	}
	return cards, nil
}

// Flashcards is FlashcardsStrict with the placeholder policy applied: the
// result always holds at least one card.
func Flashcards(text string) []content.Flashcard {
	cards, err := FlashcardsStrict(text)
	if err != nil {
		return []content.Flashcard{PlaceholderFlashcard}
	}
	return cards
}

func flashcard(seg string) (content.Flashcard, bool) {
	term := termField.FindStringSubmatch(seg)
	def, ok := definition(seg)
	if term == nil || !ok {
		return content.Flashcard{}, false
	}

	c := content.Flashcard{
		Term:       collapse(term[1]),
		Definition: def,
	}
	if c.Term == "" || c.Definition == "" {
		return content.Flashcard{}, false
	}
	return c, true
}

// definition returns the DEFINITION field of a card. It may wrap onto
// following lines and ends at a blank line or the next labelled field, so
// closing remarks after the last card stay out of it.
func definition(seg string) (string, bool) {
	loc := definitionField.FindStringSubmatchIndex(seg)
	if loc == nil {
		return "", false
	}
	parts := []string{seg[loc[2]:loc[3]]}
	for _, line := range strings.Split(seg[loc[1]:], "\n")[1:] {
		if strings.TrimSpace(line) == "" {
			if collapse(strings.Join(parts, " ")) == "" {
				continue
			}
			break
		}
		if fieldLabel.MatchString(line) {
			break
		}
		parts = append(parts, line)
	}
	return collapse(strings.Join(parts, " ")), true
}
