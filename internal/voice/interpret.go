package voice

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/abhisek/edunova/internal/content"
)

// ActionKind says what a spoken command asks for.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionSetAgeGroup
	ActionSetContentType
	ActionSetTopic
	ActionGenerate
	ActionAskTopic
	ActionReadAloud
)

func (k ActionKind) String() string {
	switch k {
	case ActionSetAgeGroup:
		return "set_age_group"
	case ActionSetContentType:
		return "set_content_type"
	case ActionSetTopic:
		return "set_topic"
	case ActionGenerate:
		return "generate"
	case ActionAskTopic:
		return "ask_topic"
	case ActionReadAloud:
		return "read_aloud"
	default:
		return "none"
	}
}

// Action is the outcome of interpreting one utterance. Ack is spoken back
// to the user.
type Action struct {
	Kind        ActionKind
	AgeGroup    content.AgeGroup
	ContentType content.ContentType
	Topic       string
	Ack         string

	// FollowUp is set on ActionAskTopic: ActionSetTopic or ActionGenerate,
	// applied to the answer.
	FollowUp ActionKind
}

// Snapshot is the generator state the interpreter may consult.
type Snapshot struct {
	AgeGroup    content.AgeGroup
	ContentType content.ContentType
	Topic       string
	HasResult   bool
}

// Spoken replies.
const (
	PromptGreeting = "What would you like to learn about?"
	AckAskTopic    = "What topic should I use?"
	AckNotCaught   = "Sorry, I didn't catch that."
	AckReading     = "Here is your content."
)

type phraseRule[T any] struct {
	phrase string
	value  T
}

var agePhrases = []phraseRule[content.AgeGroup]{
	{"6-8", content.AgeGroupYoung},
	{"6 to 8", content.AgeGroupYoung},
	{"six to eight", content.AgeGroupYoung},
	{"younger", content.AgeGroupYoung},
	{"little kids", content.AgeGroupYoung},
	{"9-12", content.AgeGroupOlder},
	{"9 to 12", content.AgeGroupOlder},
	{"nine to twelve", content.AgeGroupOlder},
	{"older", content.AgeGroupOlder},
	{"big kids", content.AgeGroupOlder},
}

// Order matters: the first phrase found wins.
var contentTypePhrases = []phraseRule[content.ContentType]{
	{"lesson plan", content.LessonPlan},
	{"lesson", content.LessonPlan},
	{"flashcards", content.Flashcards},
	{"flash cards", content.Flashcards},
	{"cards", content.Flashcards},
	{"quiz", content.Quiz},
	{"test", content.Quiz},
	{"study guide", content.StudyGuide},
	{"study", content.StudyGuide},
	{"guide", content.StudyGuide},
	{"tutorial", content.Tutorial},
	{"how to", content.Tutorial},
	{"steps", content.Tutorial},
}

var (
	generateWords = []string{"generate", "create", "make"}
	topicMarkers  = []string{"about", "on", "for"}
	readWords     = []string{"read", "speak"}
	topicWords    = []string{"topic", "about"}

	fillers = map[string]bool{
		"a": true, "an": true, "the": true, "some": true, "something": true,
		"it": true, "me": true, "now": true, "please": true, "content": true,
		"is": true, "to": true, "be": true,
	}
)

// utterance keeps the original words alongside their lower-cased forms so
// that extracted topics keep the speaker's capitalization.
type utterance struct {
	words []string
	lower []string
}

func newUtterance(transcript string) utterance {
	clean := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '\'' {
			return r
		}
		return ' '
	}, transcript)

	u := utterance{words: strings.Fields(clean)}
	u.lower = make([]string, len(u.words))
	for i, w := range u.words {
		u.lower[i] = strings.ToLower(w)
	}
	return u
}

// find returns the token index where phrase starts, or -1.
func (u utterance) find(phrase string) int {
	parts := strings.Fields(phrase)
	for i := 0; i+len(parts) <= len(u.lower); i++ {
		match := true
		for j, p := range parts {
			if u.lower[i+j] != p {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

// findAny returns the earliest position of any word and the word's length
// in tokens.
func (u utterance) findAny(words []string) (int, int) {
	best, n := -1, 0
	for _, w := range words {
		if i := u.find(w); i >= 0 && (best < 0 || i < best) {
			best, n = i, len(strings.Fields(w))
		}
	}
	return best, n
}

// rest returns the original words from index i on, with leading and
// trailing filler words dropped.
func (u utterance) rest(i int) string {
	if i >= len(u.words) {
		return ""
	}
	lo, hi := i, len(u.words)
	for lo < hi && fillers[u.lower[lo]] {
		lo++
	}
	for hi > lo && fillers[u.lower[hi-1]] {
		hi--
	}
	return strings.Join(u.words[lo:hi], " ")
}

// Interpret maps a transcript to an action. Rules are tried in a fixed
// order and the first match wins: age group, content type, generate, read
// aloud, topic, and finally the whole utterance as the topic. Overlapping
// phrases resolve by that order.
func Interpret(transcript string, snap Snapshot) Action {
	u := newUtterance(transcript)
	if len(u.words) == 0 {
		return Action{Kind: ActionNone, Ack: AckNotCaught}
	}

	for _, r := range agePhrases {
		if u.find(r.phrase) >= 0 {
			return Action{
				Kind:     ActionSetAgeGroup,
				AgeGroup: r.value,
				Ack:      fmt.Sprintf("Okay, content for ages %s.", r.value),
			}
		}
	}

	for _, r := range contentTypePhrases {
		if u.find(r.phrase) >= 0 {
			return Action{
				Kind:        ActionSetContentType,
				ContentType: r.value,
				Ack:         fmt.Sprintf("Okay, let's make a %s.", strings.ToLower(r.value.Info().Label)),
			}
		}
	}

	if i, n := u.findAny(generateWords); i >= 0 {
		return generate(u, i+n, snap)
	}

	if snap.HasResult {
		if i, _ := u.findAny(readWords); i >= 0 {
			return Action{Kind: ActionReadAloud, Ack: AckReading}
		}
	}

	if i, n := u.findAny(topicWords); i >= 0 {
		if topic := u.rest(i + n); topic != "" {
			return setTopic(topic)
		}
		return Action{Kind: ActionAskTopic, Ack: AckAskTopic, FollowUp: ActionSetTopic}
	}

	return setTopic(strings.Join(u.words, " "))
}

func generate(u utterance, after int, snap Snapshot) Action {
	topic := ""
	sub := utterance{words: u.words[after:], lower: u.lower[after:]}
	if i, n := sub.findAny(topicMarkers); i >= 0 {
		topic = sub.rest(i + n)
	} else {
		topic = sub.rest(0)
	}

	if topic == "" {
		topic = strings.TrimSpace(snap.Topic)
	}
	if topic == "" {
		return Action{Kind: ActionAskTopic, Ack: AckAskTopic, FollowUp: ActionGenerate}
	}
	return GenerateAction(topic, snap)
}

// GenerateAction builds the Generate action for topic with its
// acknowledgment.
func GenerateAction(topic string, snap Snapshot) Action {
	what := "content"
	if snap.ContentType.Valid() {
		what = "a " + strings.ToLower(snap.ContentType.Info().Label)
	}
	return Action{
		Kind:  ActionGenerate,
		Topic: topic,
		Ack:   fmt.Sprintf("Creating %s about %s.", what, topic),
	}
}

func setTopic(topic string) Action {
	return Action{
		Kind:  ActionSetTopic,
		Topic: topic,
		Ack:   fmt.Sprintf("Topic set to %s.", topic),
	}
}
