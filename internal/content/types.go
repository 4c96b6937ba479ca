package content

import (
	"fmt"
	"strings"
)

// AgeGroup is the coarse audience bucket interpolated into prompts.
type AgeGroup string

const (
	AgeGroupYoung AgeGroup = "6-8"
	AgeGroupOlder AgeGroup = "9-12"
)

// AgeGroups lists the supported age groups in display order.
var AgeGroups = []AgeGroup{AgeGroupYoung, AgeGroupOlder}

// Valid reports whether a is one of the supported age groups.
func (a AgeGroup) Valid() bool {
	return a == AgeGroupYoung || a == AgeGroupOlder
}

func (a AgeGroup) String() string { return string(a) }

// ParseAgeGroup accepts "6-8" / "9-12", tolerating an en dash separator.
func ParseAgeGroup(s string) (AgeGroup, error) {
	a := AgeGroup(strings.ReplaceAll(strings.TrimSpace(s), "–", "-"))
	if !a.Valid() {
		return "", fmt.Errorf("unknown age group %q (want 6-8 or 9-12)", s)
	}
	return a, nil
}

// ContentType selects one of the generation templates.
type ContentType string

const (
	LessonPlan ContentType = "lesson_plan"
	Flashcards ContentType = "flashcards"
	Quiz       ContentType = "quiz"
	StudyGuide ContentType = "study_guide"
	Tutorial   ContentType = "tutorial"
)

// TypeInfo carries the display metadata for a content type.
type TypeInfo struct {
	Type        ContentType
	Label       string
	Emoji       string
	Description string
}

// Types lists the content types in selector order.
var Types = []TypeInfo{
	{LessonPlan, "Lesson Plan", "📚", "Fun activities and learning adventures!"},
	{Flashcards, "Flashcards", "⚡", "Quick memory games & brain boosters!"},
	{Quiz, "Quiz", "🧠", "Test your super brain power!"},
	{StudyGuide, "Study Guide", "📖", "Everything you need to master!"},
	{Tutorial, "Tutorial", "🎬", "Step-by-step learning journeys!"},
}

// Info returns the display metadata for t. Unknown types get their raw name
// as the label.
func (t ContentType) Info() TypeInfo {
	for _, ti := range Types {
		if ti.Type == t {
			return ti
		}
	}
	return TypeInfo{Type: t, Label: string(t)}
}

// Valid reports whether t is one of the five known content types.
func (t ContentType) Valid() bool {
	for _, ti := range Types {
		if ti.Type == t {
			return true
		}
	}
	return false
}

// Interactive reports whether results of this type are parsed into a
// playable session instead of being shown verbatim.
func (t ContentType) Interactive() bool {
	return t == Flashcards || t == Quiz
}

func (t ContentType) String() string { return string(t) }

// ParseContentType accepts the canonical names plus hyphenated and spaced
// variants ("lesson-plan", "study guide").
func ParseContentType(s string) (ContentType, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("-", "_", " ", "_").Replace(norm)
	t := ContentType(norm)
	if !t.Valid() {
		return "", fmt.Errorf("unknown content type %q", s)
	}
	return t, nil
}

// Request is a single generation request. It is a value type and is never
// mutated after submission.
type Request struct {
	AgeGroup    AgeGroup    `json:"ageGroup"`
	ContentType ContentType `json:"contentType"`
	Topic       string      `json:"topic"`
}

// Validate checks the request before anything is sent to the API.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Topic) == "" {
		return &ValidationError{Field: "topic", Message: "Please enter a topic to generate content."}
	}
	if !r.AgeGroup.Valid() {
		return &ValidationError{Field: "ageGroup", Message: fmt.Sprintf("Unknown age group %q.", r.AgeGroup)}
	}
	if !r.ContentType.Valid() {
		return &ValidationError{Field: "contentType", Message: fmt.Sprintf("Unknown content type %q.", r.ContentType)}
	}
	return nil
}

// ValidationError rejects a request before submission.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}
