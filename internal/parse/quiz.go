package parse

import (
	"strings"

	"github.com/abhisek/edunova/internal/content"
)

// PlaceholderQuestion is shown when no question could be parsed. It is
// structurally valid so the quiz view can render it like any other.
var PlaceholderQuestion = content.QuizQuestion{
	Prompt:      "No quiz questions could be read from this response. Try generating again.",
	Options:     [4]string{"Try again", "Pick a new topic", "Choose another content type", "Ask a grown-up for help"},
	Correct:     content.OptionA,
	Placeholder: true,
}

// QuizStrict extracts every complete QUESTION segment from text, in source
// order. A segment missing its prompt, any of the options A-D, or the
// CORRECT label is dropped entirely. It returns a *Failure when no
// question is complete.
func QuizStrict(text string) ([]content.QuizQuestion, error) {
	segs := segments(normalize(text), questionHeader)

	var questions []content.QuizQuestion
	for _, seg := range segs {
		if q, ok := question(seg); ok {
			questions = append(questions, q)
		}
	}
	if len(questions) == 0 {
		return nil, &Failure{ContentType: content.Quiz, Segments: len(segs)}
	}
	return questions, nil
}

// Quiz is QuizStrict with the placeholder policy applied: the result
// always holds at least one question.
func Quiz(text string) []content.QuizQuestion {
	questions, err := QuizStrict(text)
	if err != nil {
		return []content.QuizQuestion{PlaceholderQuestion}
	}
	return questions
}

func question(seg string) (content.QuizQuestion, bool) {
	var q content.QuizQuestion

	correct := correctField.FindStringSubmatch(seg)
	if correct == nil {
		return q, false
	}
	q.Correct = content.OptionLabel(strings.ToUpper(correct[1]))

	var found [4]bool
	firstOption := -1
	for _, m := range optionLine.FindAllStringSubmatchIndex(seg, -1) {
		label := content.OptionLabel(strings.ToUpper(seg[m[2]:m[3]]))
		i := label.Index()
		if found[i] {
			continue
		}
		found[i] = true
		q.Options[i] = collapse(seg[m[4]:m[5]])
		if firstOption < 0 {
			firstOption = m[0]
		}
	}
	for _, ok := range found {
		if !ok {
			return q, false
		}
	}

	q.Prompt = collapse(seg[:firstOption])
	if q.Prompt == "" {
		return q, false
	}
	return q, true
}
