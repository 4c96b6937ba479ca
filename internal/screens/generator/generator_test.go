package generator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/edunova/internal/content"
	"github.com/abhisek/edunova/internal/generation"
	"github.com/abhisek/edunova/internal/llm"
	"github.com/abhisek/edunova/internal/router"
	"github.com/abhisek/edunova/internal/screen"
	"github.com/abhisek/edunova/internal/screens/quiz"
	"github.com/abhisek/edunova/internal/study"
	"github.com/abhisek/edunova/internal/voice"
)

const quizText = "QUESTION 1: Largest planet?\nA) Earth\nB) Jupiter\nC) Mars\nD) Venus\nCORRECT: B"

type fakeClipboard struct {
	text string
	err  error
}

func (f *fakeClipboard) WriteAll(text string) error {
	if f.err != nil {
		return f.err
	}
	f.text = text
	return nil
}

func newScreen(t *testing.T, opts Options, responses ...llm.MockResponse) (*GeneratorScreen, *llm.MockProvider) {
	t.Helper()
	mock := llm.NewMockProvider(responses...)
	opts.Runner = generation.NewRunner(generation.NewClient(mock, 0), nil, nil)
	if opts.Clipboard == nil {
		opts.Clipboard = &fakeClipboard{}
	}
	if opts.AgeGroup == "" {
		opts.AgeGroup = content.AgeGroupYoung
	}
	if opts.ContentType == "" {
		opts.ContentType = content.LessonPlan
	}
	s := New(opts)
	s.Init()
	return s, mock
}

// drain runs cmd and every command batched inside it, returning the
// produced messages.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, drain(c)...)
		}
		return out
	default:
		return []tea.Msg{msg}
	}
}

func find[T any](msgs []tea.Msg) (T, bool) {
	for _, m := range msgs {
		if v, ok := m.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func keyPress(s *GeneratorScreen, code rune, mod tea.KeyMod) tea.Cmd {
	_, cmd := s.Update(tea.KeyPressMsg{Code: code, Mod: mod})
	return cmd
}

// submit presses Enter in the topic field and feeds the generation result
// back into the screen. It returns the follow-up messages.
func submit(t *testing.T, s *GeneratorScreen) []tea.Msg {
	t.Helper()
	msgs := drain(keyPress(s, tea.KeyEnter, 0))
	done, ok := find[generatedMsg](msgs)
	require.True(t, ok, "expected a generation to run")
	_, cmd := s.Update(done)
	return drain(cmd)
}

func TestInitialSelections(t *testing.T) {
	s, _ := newScreen(t, Options{AgeGroup: content.AgeGroupOlder, ContentType: content.StudyGuide})
	assert.Equal(t, content.AgeGroupOlder, s.AgeGroup())
	assert.Equal(t, content.StudyGuide, s.ContentType())
	assert.Equal(t, focusTopic, s.focus)
}

func TestBlankTopicShowsAlert(t *testing.T) {
	s, mock := newScreen(t, Options{})
	s.topic.SetValue("   ")

	cmd := keyPress(s, tea.KeyEnter, 0)
	assert.Nil(t, cmd)
	assert.False(t, s.Loading())
	assert.Equal(t, "Please enter a topic to generate content.", s.alert)
	assert.True(t, s.HandlesEscape())
	assert.Contains(t, s.View(100, 40), "Please enter a topic")
	assert.Zero(t, mock.CallCount(), "invalid requests are never sent")

	keyPress(s, tea.KeyEscape, 0)
	assert.Empty(t, s.alert)
	assert.False(t, s.HandlesEscape())
}

func TestGenerateQuizOpensStudy(t *testing.T) {
	s, mock := newScreen(t, Options{ContentType: content.Quiz}, llm.MockResponse{Content: quizText})
	s.topic.SetValue("Solar System")

	cmd := keyPress(s, tea.KeyEnter, 0)
	require.NotNil(t, cmd)
	assert.True(t, s.Loading())
	assert.Nil(t, keyPress(s, 'g', tea.ModCtrl), "second trigger while loading is ignored")

	msgs := drain(cmd)
	done, ok := find[generatedMsg](msgs)
	require.True(t, ok)
	_, follow := s.Update(done)

	assert.False(t, s.Loading())
	require.NotNil(t, s.Result())
	assert.Equal(t, quizText, s.Result().Text)
	assert.Equal(t, 1, mock.CallCount())

	sess, ok := s.StudyView().(*study.QuizSession)
	require.True(t, ok)
	assert.Equal(t, 1, sess.Len())

	push, ok := find[router.PushScreenMsg](drain(follow))
	require.True(t, ok, "interactive results open the study screen")
	assert.IsType(t, &quiz.QuizScreen{}, push.Screen)

	view := s.View(100, 40)
	assert.Contains(t, view, "Generated for ages 6-8 • Topic: Solar System")
	assert.Contains(t, view, "1 questions ready")
}

func TestResumeSummarizesQuiz(t *testing.T) {
	s, _ := newScreen(t, Options{ContentType: content.Quiz}, llm.MockResponse{Content: quizText})
	s.topic.SetValue("Solar System")
	submit(t, s)

	sess := s.StudyView().(*study.QuizSession)
	require.True(t, sess.Select(content.OptionB))
	require.True(t, sess.Next())

	s.Resume()
	assert.Equal(t, "Quiz done: 1 of 1 correct", s.notice)
	assert.Equal(t, focusResult, s.focus)
}

func TestResumeWithoutSessionIsNoop(t *testing.T) {
	s, _ := newScreen(t, Options{}, llm.MockResponse{Content: "Welcome to the lesson."})
	s.topic.SetValue("Volcanoes")
	submit(t, s)

	assert.Nil(t, s.Resume())
	assert.Empty(t, s.notice)
}

func TestNavigationWaitsForPendingWork(t *testing.T) {
	histories := 0
	s, _ := newScreen(t, Options{
		ContentType: content.Quiz,
		History:     func() screen.Screen { histories++; return nil },
	}, llm.MockResponse{Content: quizText})
	s.topic.SetValue("Moon")
	submit(t, s)

	s.voiceBusy = true
	assert.Nil(t, keyPress(s, 'o', tea.ModCtrl))
	assert.Nil(t, keyPress(s, 'p', tea.ModCtrl))
	assert.Zero(t, histories)
	assert.Equal(t, waitNotice, s.notice)

	s.Update(voiceMsg{err: voice.ErrBusy})
	assert.Empty(t, s.notice)
	cmd := keyPress(s, 'p', tea.ModCtrl)
	require.NotNil(t, cmd)
	assert.IsType(t, router.PushScreenMsg{}, cmd())
	assert.Equal(t, 1, histories)

	require.NotNil(t, keyPress(s, 'g', tea.ModCtrl))
	assert.Nil(t, keyPress(s, 'o', tea.ModCtrl), "no study screen while loading")
}

func TestGenerationFailureShowsFallback(t *testing.T) {
	s, _ := newScreen(t, Options{ContentType: content.Flashcards},
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})
	s.topic.SetValue("Cells")

	follow := submit(t, s)

	assert.False(t, s.Loading(), "loading is always cleared")
	require.NotNil(t, s.Result())
	assert.True(t, s.Result().Failed())
	assert.Equal(t, generation.FallbackMessage, s.Result().Text)
	assert.IsType(t, study.PlainText(""), s.StudyView())
	_, pushed := find[router.PushScreenMsg](follow)
	assert.False(t, pushed)
}

func TestPlainTextResult(t *testing.T) {
	s, _ := newScreen(t, Options{}, llm.MockResponse{Content: "Welcome to the lesson."})
	s.topic.SetValue("Volcanoes")
	submit(t, s)

	assert.Equal(t, study.PlainText("Welcome to the lesson."), s.StudyView())
	assert.Equal(t, focusResult, s.focus)
	assert.Nil(t, keyPress(s, 'o', tea.ModCtrl), "nothing to study")
}

func TestCopyConfirmationClears(t *testing.T) {
	cb := &fakeClipboard{}
	s, _ := newScreen(t, Options{Clipboard: cb}, llm.MockResponse{Content: "Lesson text"})
	s.topic.SetValue("Rain")
	submit(t, s)

	require.NotNil(t, keyPress(s, 'y', tea.ModCtrl))
	assert.Equal(t, "Lesson text", cb.text)
	assert.True(t, s.copied)
	assert.Contains(t, s.View(100, 40), "Copied!")

	keyPress(s, 'y', tea.ModCtrl)
	s.Update(copyResetMsg{seq: 1})
	assert.True(t, s.copied, "a stale reset does not clear a newer copy")

	s.Update(copyResetMsg{seq: 2})
	assert.False(t, s.copied)
}

func TestCopyFailure(t *testing.T) {
	s, _ := newScreen(t, Options{Clipboard: &fakeClipboard{err: errors.New("no xclip")}},
		llm.MockResponse{Content: "Lesson text"})
	s.topic.SetValue("Rain")
	submit(t, s)

	assert.Nil(t, keyPress(s, 'y', tea.ModCtrl))
	assert.False(t, s.copied)
	assert.Contains(t, s.notice, "no xclip")
}

func TestDownload(t *testing.T) {
	dir := t.TempDir()
	s, _ := newScreen(t, Options{DownloadDir: dir, ContentType: content.Quiz}, llm.MockResponse{Content: quizText})
	s.topic.SetValue("Solar System")
	submit(t, s)

	keyPress(s, 's', tea.ModCtrl)

	path := filepath.Join(dir, "quiz_Solar_System_age_6-8.txt")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, quizText, string(data))
	assert.Equal(t, "Saved to "+path, s.notice)
}

func TestFocusCycle(t *testing.T) {
	s, _ := newScreen(t, Options{})

	keyPress(s, tea.KeyTab, 0)
	assert.Equal(t, focusAge, s.focus, "wraps without a result pane")
	keyPress(s, tea.KeyRight, 0)
	assert.Equal(t, content.AgeGroupOlder, s.AgeGroup())

	keyPress(s, tea.KeyTab, 0)
	keyPress(s, tea.KeyDown, 0)
	keyPress(s, tea.KeyDown, 0)
	assert.Equal(t, content.Quiz, s.ContentType())

	keyPress(s, tea.KeyTab, tea.ModShift)
	assert.Equal(t, focusAge, s.focus)
}

func newVoiceScreen(t *testing.T, fake *voice.Fake, responses ...llm.MockResponse) *GeneratorScreen {
	t.Helper()
	a := voice.NewAssistant(fake, voice.SpeakOptions{}, nil)
	require.NoError(t, a.Probe(context.Background()))
	a.SetEnabled(true)
	s, _ := newScreen(t, Options{Assistant: a}, responses...)
	return s
}

func converse(t *testing.T, s *GeneratorScreen) []tea.Msg {
	t.Helper()
	msgs := drain(keyPress(s, 'l', tea.ModCtrl))
	done, ok := find[voiceMsg](msgs)
	require.True(t, ok)
	_, cmd := s.Update(done)
	return drain(cmd)
}

func TestVoiceSetsSelections(t *testing.T) {
	s := newVoiceScreen(t, voice.NewFake("quiz"))
	assert.Equal(t, "🎤 voice on", s.Status())

	converse(t, s)
	assert.Equal(t, content.Quiz, s.ContentType())
	assert.Contains(t, s.voiceNote, "quiz")
}

func TestVoiceGenerates(t *testing.T) {
	s := newVoiceScreen(t, voice.NewFake("generate about volcanoes"), llm.MockResponse{Content: "Lava!"})

	msgs := converse(t, s)
	assert.Equal(t, "volcanoes", s.Topic())
	done, ok := find[generatedMsg](msgs)
	require.True(t, ok, "a generate command runs the generation")
	s.Update(done)
	assert.Equal(t, "Lava!", s.Result().Text)
}

func TestVoiceFailureIsNotFatal(t *testing.T) {
	fake := voice.NewFake()
	fake.FailNext(errors.New("mic unplugged"))
	s := newVoiceScreen(t, fake)

	converse(t, s)
	assert.Equal(t, voice.AckNotCaught, s.voiceNote)
	assert.False(t, s.voiceBusy)
}

func TestVoiceUnavailable(t *testing.T) {
	s, _ := newScreen(t, Options{})
	assert.Nil(t, keyPress(s, 'l', tea.ModCtrl))
	assert.Contains(t, s.voiceNote, "not available")
	assert.Empty(t, s.Status())

	fake := voice.NewFake()
	fake.Unsupported = true
	a := voice.NewAssistant(fake, voice.SpeakOptions{}, nil)
	_ = a.Probe(context.Background())
	s, _ = newScreen(t, Options{Assistant: a})
	keyPress(s, 't', tea.ModCtrl)
	assert.Contains(t, s.voiceNote, "not available")
}

func TestCaption(t *testing.T) {
	req := content.Request{AgeGroup: content.AgeGroupOlder, ContentType: content.Tutorial, Topic: "Magnets"}
	assert.Equal(t, "Generated for ages 9-12 • Topic: Magnets", Caption(req))
}
