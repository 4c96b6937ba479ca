// Package study holds the interactive state for flashcard and quiz results
// and the view model that chooses between them.
package study

import (
	"github.com/abhisek/edunova/internal/content"
	"github.com/abhisek/edunova/internal/parse"
)

// View is the rendered form of one generation result. It is implemented by
// PlainText, *FlashcardSession and *QuizSession only.
type View interface {
	isView()
}

// PlainText is shown verbatim: non-interactive content types and every
// failed generation.
type PlainText string

func (PlainText) isView()         {}
func (*FlashcardSession) isView() {}
func (*QuizSession) isView()      {}

// NewView picks the view variant for a successful result of type ct.
// Flashcards and quizzes are parsed; everything else is plain text.
func NewView(ct content.ContentType, text string) View {
	switch ct {
	case content.Flashcards:
		return NewFlashcardSession(parse.Flashcards(text))
	case content.Quiz:
		return NewQuizSession(parse.Quiz(text))
	default:
		return PlainText(text)
	}
}

// ViewFor returns the view for a result that may have failed. A failed
// result is always plain text, whatever its content type.
func ViewFor(ct content.ContentType, text string, failed bool) View {
	if failed {
		return PlainText(text)
	}
	return NewView(ct, text)
}
