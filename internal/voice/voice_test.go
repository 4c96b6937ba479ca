package voice

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/edunova/internal/content"
)

func TestInterpret(t *testing.T) {
	base := Snapshot{AgeGroup: content.AgeGroupYoung, ContentType: content.Quiz}
	withResult := base
	withResult.HasResult = true
	withTopic := base
	withTopic.Topic = "Volcanoes"

	tests := []struct {
		name       string
		transcript string
		snap       Snapshot
		want       Action
	}{
		{"age young", "Ages six to eight please", base, Action{Kind: ActionSetAgeGroup, AgeGroup: content.AgeGroupYoung}},
		{"age older digits", "switch to 9-12", base, Action{Kind: ActionSetAgeGroup, AgeGroup: content.AgeGroupOlder}},
		{"lesson plan", "a lesson plan", base, Action{Kind: ActionSetContentType, ContentType: content.LessonPlan}},
		{"flash cards spaced", "Flash cards!", base, Action{Kind: ActionSetContentType, ContentType: content.Flashcards}},
		{"test means quiz", "give me a test", base, Action{Kind: ActionSetContentType, ContentType: content.Quiz}},
		{"study guide", "study guide", base, Action{Kind: ActionSetContentType, ContentType: content.StudyGuide}},
		{"how to", "show me how to", base, Action{Kind: ActionSetContentType, ContentType: content.Tutorial}},
		{"content type beats generate", "make a quiz about planets", base, Action{Kind: ActionSetContentType, ContentType: content.Quiz}},
		{"generate with topic", "Create something about Ancient Egypt", base, Action{Kind: ActionGenerate, Topic: "Ancient Egypt"}},
		{"generate trailing topic", "generate Dinosaurs", base, Action{Kind: ActionGenerate, Topic: "Dinosaurs"}},
		{"generate previous topic", "generate it now", withTopic, Action{Kind: ActionGenerate, Topic: "Volcanoes"}},
		{"generate asks for topic", "generate", base, Action{Kind: ActionAskTopic, FollowUp: ActionGenerate}},
		{"read with result", "read it to me", withResult, Action{Kind: ActionReadAloud}},
		{"read without result", "read", base, Action{Kind: ActionSetTopic, Topic: "read"}},
		{"topic remainder", "the topic is Rain Forests", base, Action{Kind: ActionSetTopic, Topic: "Rain Forests"}},
		{"about remainder", "tell me about the Moon", base, Action{Kind: ActionSetTopic, Topic: "Moon"}},
		{"bare topic word", "topic", base, Action{Kind: ActionAskTopic, FollowUp: ActionSetTopic}},
		{"fallback", "Solar System", base, Action{Kind: ActionSetTopic, Topic: "Solar System"}},
		{"empty", "  ...  ", base, Action{Kind: ActionNone}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Interpret(tt.transcript, tt.snap)
			assert.NotEmpty(t, got.Ack, "every action carries an acknowledgment")
			got.Ack = ""
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInterpret_Acks(t *testing.T) {
	snap := Snapshot{ContentType: content.Flashcards}
	assert.Equal(t, "Creating a flashcards about Bees.", Interpret("create about Bees", snap).Ack)
	assert.Equal(t, "Okay, content for ages 9-12.", Interpret("older kids", snap).Ack)
	assert.Equal(t, AckAskTopic, Interpret("make", snap).Ack)
	assert.Equal(t, AckNotCaught, Interpret("", snap).Ack)
}

func TestRecognition_Best(t *testing.T) {
	r := Recognition{Alternatives: []Alternative{
		{Transcript: "quiz", Confidence: 0.4},
		{Transcript: "quick", Confidence: 0.8},
		{Transcript: "", Confidence: 0.99},
		{Transcript: "quit", Confidence: 0.8},
	}}
	best, ok := r.Best()
	require.True(t, ok)
	assert.Equal(t, "quick", best.Transcript)

	_, ok = Recognition{}.Best()
	assert.False(t, ok)
	assert.Equal(t, "", Recognition{}.Transcript())
}

func newTestAssistant(t *testing.T, f *Fake) *Assistant {
	t.Helper()
	a := NewAssistant(f, SpeakOptions{Rate: 1}, nil)
	require.NoError(t, a.Probe(context.Background()))
	a.SetEnabled(true)
	return a
}

func TestAssistant_Converse(t *testing.T) {
	f := NewFake("generate something about Whales")
	a := newTestAssistant(t, f)

	act, err := a.Converse(context.Background(), Snapshot{ContentType: content.Quiz})
	require.NoError(t, err)
	assert.Equal(t, ActionGenerate, act.Kind)
	assert.Equal(t, "Whales", act.Topic)
	assert.Equal(t, []string{PromptGreeting, "Creating a quiz about Whales."}, f.SpokenLines())
	assert.False(t, a.State().Busy())
}

func TestAssistant_ConverseAsksForTopic(t *testing.T) {
	f := NewFake("create", "Butterflies")
	a := newTestAssistant(t, f)

	act, err := a.Converse(context.Background(), Snapshot{ContentType: content.Tutorial})
	require.NoError(t, err)
	assert.Equal(t, ActionGenerate, act.Kind)
	assert.Equal(t, "Butterflies", act.Topic)
	assert.Equal(t, []string{PromptGreeting, AckAskTopic, "Creating a tutorial about Butterflies."}, f.SpokenLines())
}

func TestAssistant_BareTopicOnlySetsTopic(t *testing.T) {
	f := NewFake("topic", "Coral Reefs")
	a := newTestAssistant(t, f)

	act, err := a.Converse(context.Background(), Snapshot{ContentType: content.Quiz})
	require.NoError(t, err)
	assert.Equal(t, ActionSetTopic, act.Kind)
	assert.Equal(t, "Coral Reefs", act.Topic)
	assert.Equal(t, []string{PromptGreeting, AckAskTopic, "Topic set to Coral Reefs."}, f.SpokenLines())
}

func TestAssistant_RecognitionFailure(t *testing.T) {
	f := NewFake()
	f.FailNext(errors.New("mic unplugged"))
	a := newTestAssistant(t, f)

	act, err := a.Converse(context.Background(), Snapshot{})
	var ce *CapabilityError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "recognize", ce.Op)
	assert.Equal(t, ActionNone, act.Kind)
	assert.Equal(t, AckNotCaught, f.SpokenLines()[len(f.SpokenLines())-1])
}

func TestAssistant_Unsupported(t *testing.T) {
	f := &Fake{Unsupported: true}
	a := NewAssistant(f, SpeakOptions{}, nil)

	assert.ErrorIs(t, a.Probe(context.Background()), ErrUnsupported)
	a.SetEnabled(true)
	assert.False(t, a.State().Enabled)

	_, err := a.Converse(context.Background(), Snapshot{})
	assert.ErrorIs(t, err, ErrUnsupported)
	assert.Empty(t, f.SpokenLines())
}

func TestAssistant_DisabledAndNil(t *testing.T) {
	a := NewAssistant(NewFake(), SpeakOptions{}, nil)
	require.NoError(t, a.Probe(context.Background()))
	assert.ErrorIs(t, a.Say(context.Background(), "hi"), ErrDisabled)

	assert.ErrorIs(t, Probe(context.Background(), nil), ErrUnsupported)
}

func TestAssistant_Say(t *testing.T) {
	f := NewFake()
	a := newTestAssistant(t, f)

	require.NoError(t, a.Say(context.Background(), "CARD 1: hello"))
	assert.Equal(t, []string{"CARD 1: hello"}, f.SpokenLines())

	f.SpeakErr = errors.New("no audio device")
	err := a.Say(context.Background(), "again")
	var ce *CapabilityError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "speak", ce.Op)
}
