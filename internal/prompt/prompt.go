package prompt

import (
	"fmt"
	"strings"

	"github.com/abhisek/edunova/internal/content"
)

// PlainTextDirective is appended to every template so the response can be
// shown verbatim and parsed line by line.
const PlainTextDirective = "Format the response in plain text without markdown formatting."

// ConfigurationError is returned for a content type that has no template.
type ConfigurationError struct {
	ContentType content.ContentType
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("no prompt template for content type %q", e.ContentType)
}

type templateFunc func(age content.AgeGroup, topic string) string

var templates = map[content.ContentType]templateFunc{
	content.LessonPlan: lessonPlan,
	content.Flashcards: flashcards,
	content.Quiz:       quiz,
	content.StudyGuide: studyGuide,
	content.Tutorial:   tutorial,
}

// Build returns the instruction sent to the generation API for the given
// content type, age group and topic. Age group and topic are embedded
// verbatim.
func Build(ct content.ContentType, age content.AgeGroup, topic string) (string, error) {
	tmpl, ok := templates[ct]
	if !ok {
		return "", &ConfigurationError{ContentType: ct}
	}
	return tmpl(age, topic), nil
}

// ForRequest is Build applied to a request.
func ForRequest(req content.Request) (string, error) {
	return Build(req.ContentType, req.AgeGroup, req.Topic)
}

func lessonPlan(age content.AgeGroup, topic string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create an engaging STEM lesson plan for children aged %s.\n", age)
	fmt.Fprintf(&b, "Topic: %s\n", topic)
	b.WriteString(`Include:
- Objective
- Materials Needed
- Step-by-step Instructions
- A fun hands-on activity
Use simple, kid-friendly language.
`)
	b.WriteString(PlainTextDirective)
	return b.String()
}

func flashcards(age content.AgeGroup, topic string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate 5 flashcards for children aged %s.\n", age)
	fmt.Fprintf(&b, "Topic: %s\n", topic)
	b.WriteString(`Each flashcard should have:
- A simple STEM or digital literacy term
- A short, age-appropriate definition
Format each flashcard exactly like this:
CARD 1:
TERM: [term here]
DEFINITION: [definition here]

CARD 2:
TERM: [term here]
DEFINITION: [definition here]

Continue this format for all 5 cards.
`)
	b.WriteString(PlainTextDirective)
	return b.String()
}

func quiz(age content.AgeGroup, topic string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a short quiz for children aged %s on the topic: %s.\n", age, topic)
	b.WriteString(`Include 5 multiple choice questions with 4 options each and the correct answer.
Format each question exactly like this:
QUESTION 1: [question text]
A) [option A]
B) [option B]
C) [option C]
D) [option D]
CORRECT: [A, B, C, or D]

QUESTION 2: [question text]
A) [option A]
B) [option B]
C) [option C]
D) [option D]
CORRECT: [A, B, C, or D]

Continue this format for all 5 questions.
Keep the tone light and fun.
`)
	b.WriteString(PlainTextDirective)
	return b.String()
}

func studyGuide(age content.AgeGroup, topic string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a study guide for children aged %s.\n", age)
	fmt.Fprintf(&b, "Topic: %s\n", topic)
	b.WriteString(`Include:
- A short explanation
- A visual or analogy
- A practice activity
Use age-appropriate and interactive language.
`)
	b.WriteString(PlainTextDirective)
	return b.String()
}

func tutorial(age content.AgeGroup, topic string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a kid-friendly step-by-step tutorial for children aged %s.\n", age)
	fmt.Fprintf(&b, "Topic: %s\n", topic)
	b.WriteString(`Use numbered steps, simple terms, and suggest interactive elements if possible.
Keep it playful and educational.
`)
	b.WriteString(PlainTextDirective)
	return b.String()
}
