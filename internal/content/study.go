package content

// OptionLabel identifies one of the four quiz options.
type OptionLabel string

const (
	OptionA OptionLabel = "A"
	OptionB OptionLabel = "B"
	OptionC OptionLabel = "C"
	OptionD OptionLabel = "D"
)

// OptionLabels lists the labels in option order.
var OptionLabels = [4]OptionLabel{OptionA, OptionB, OptionC, OptionD}

// Index returns the option position for l, or -1 if l is not A-D.
func (l OptionLabel) Index() int {
	for i, o := range OptionLabels {
		if o == l {
			return i
		}
	}
	return -1
}

// Valid reports whether l is one of A-D.
func (l OptionLabel) Valid() bool { return l.Index() >= 0 }

// Flashcard is one term/definition pair recovered from generated text.
type Flashcard struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`

	// Placeholder marks the instructional card shown when nothing parsed.
	Placeholder bool `json:"placeholder,omitempty"`
}

// QuizQuestion is one multiple-choice question with exactly four options.
type QuizQuestion struct {
	Prompt  string      `json:"prompt"`
	Options [4]string   `json:"options"`
	Correct OptionLabel `json:"correct"`

	// Placeholder marks the stand-in question shown when nothing parsed.
	// Its options render dimmed but remain selectable.
	Placeholder bool `json:"placeholder,omitempty"`
}

// Option returns the option text for label l.
func (q QuizQuestion) Option(l OptionLabel) string {
	i := l.Index()
	if i < 0 {
		return ""
	}
	return q.Options[i]
}
