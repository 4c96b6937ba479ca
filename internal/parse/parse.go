// Package parse recovers flashcards and quiz questions from generated text.
//
// Each content type has a strict entry point that reports a *Failure when
// nothing valid was found, and a tolerant one that substitutes a single
// placeholder item instead. The tolerant functions never return an empty
// slice.
package parse

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/abhisek/edunova/internal/content"
)

// Failure reports that no valid item could be recovered.
type Failure struct {
	ContentType content.ContentType
	Segments    int // headed segments found, valid or not
}

func (f *Failure) Error() string {
	if f.Segments == 0 {
		return fmt.Sprintf("parse %s: no headed segments found", f.ContentType)
	}
	return fmt.Sprintf("parse %s: none of %d segments were complete", f.ContentType, f.Segments)
}

var (
	cardHeader     = regexp.MustCompile(`(?im)^[ \t]*CARD[ \t]*\d+[ \t]*:`)
	questionHeader = regexp.MustCompile(`(?im)^[ \t]*QUESTION[ \t]*\d+[ \t]*:`)

	termField       = regexp.MustCompile(`(?im)^[ \t]*TERM[ \t]*:[ \t]*(.*\S)`)
	definitionField = regexp.MustCompile(`(?im)^[ \t]*DEFINITION[ \t]*:[ \t]*(.*)$`)
	fieldLabel      = regexp.MustCompile(`^[ \t]*[A-Z][A-Z ]*:`)

	optionLine   = regexp.MustCompile(`(?im)^[ \t]*([A-D])[ \t]*[).:][ \t]*(.*\S)`)
	correctField = regexp.MustCompile(`(?im)^[ \t]*CORRECT(?:[ \t]+ANSWER)?[ \t]*:[ \t]*\(?[ \t]*([A-D])\b`)

	whitespace = regexp.MustCompile(`\s+`)
)

// normalize strips markdown bold markers and unifies line endings.
func normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "**", "")
}

// segments splits text at each header match and returns the body that
// follows every header. Text before the first header is discarded.
func segments(text string, header *regexp.Regexp) []string {
	locs := header.FindAllStringIndex(text, -1)
	out := make([]string, 0, len(locs))
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		out = append(out, text[loc[1]:end])
	}
	return out
}

func collapse(s string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}
