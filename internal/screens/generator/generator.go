// Package generator implements the main EduNova screen: pick an age group
// and a content type, enter a topic, generate, then copy, save, study or
// listen to the result.
package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/edunova/internal/content"
	"github.com/abhisek/edunova/internal/export"
	"github.com/abhisek/edunova/internal/generation"
	"github.com/abhisek/edunova/internal/router"
	"github.com/abhisek/edunova/internal/screen"
	"github.com/abhisek/edunova/internal/screens/flashcards"
	"github.com/abhisek/edunova/internal/screens/quiz"
	"github.com/abhisek/edunova/internal/study"
	"github.com/abhisek/edunova/internal/ui/components"
	"github.com/abhisek/edunova/internal/ui/layout"
	"github.com/abhisek/edunova/internal/ui/theme"
	"github.com/abhisek/edunova/internal/voice"
)

// CopiedFor is how long the copy confirmation stays visible.
const CopiedFor = 2 * time.Second

const topicCharLimit = 200

type focus int

const (
	focusAge focus = iota
	focusType
	focusTopic
	focusResult
)

// Options wires the screen to its collaborators.
type Options struct {
	Runner *generation.Runner

	// Assistant is nil when voice support was not configured.
	Assistant *voice.Assistant

	Clipboard   export.Clipboard
	DownloadDir string

	AgeGroup    content.AgeGroup
	ContentType content.ContentType

	// History builds the audit history screen. Nil hides the shortcut.
	History func() screen.Screen

	Log *zap.Logger
}

// GeneratorScreen is the single working screen of the TUI.
type GeneratorScreen struct {
	opts Options
	log  *zap.Logger

	ages  components.Selector
	types components.Selector
	topic components.TextInput
	focus focus

	loading bool
	spinner spinner.Model

	result *generation.Result
	view   study.View
	pane   viewport.Model

	alert     string
	notice    string
	noticeBad bool
	copied    bool
	copySeq   int

	voiceBusy bool
	voiceNote string
}

var _ screen.Screen = (*GeneratorScreen)(nil)
var _ screen.KeyHintProvider = (*GeneratorScreen)(nil)
var _ screen.StatusProvider = (*GeneratorScreen)(nil)
var _ screen.EscapeHandler = (*GeneratorScreen)(nil)

// New creates the generator screen with the configured initial selections.
func New(opts Options) *GeneratorScreen {
	if opts.Clipboard == nil {
		opts.Clipboard = export.SystemClipboard{}
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	ageChoices := make([]components.Choice, 0, len(content.AgeGroups))
	for _, a := range content.AgeGroups {
		ageChoices = append(ageChoices, components.Choice{Label: "Ages " + a.String()})
	}
	typeChoices := make([]components.Choice, 0, len(content.Types))
	for _, ti := range content.Types {
		typeChoices = append(typeChoices, components.Choice{
			Label:  ti.Emoji + " " + ti.Label,
			Detail: ti.Description,
		})
	}

	s := &GeneratorScreen{
		opts:    opts,
		log:     log,
		ages:    components.NewSelector(ageChoices, true),
		types:   components.NewSelector(typeChoices, false),
		topic:   components.NewTextInput("e.g. Solar System, Dinosaurs, Fractions", topicCharLimit),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Accent))),
		pane:    viewport.New(),
	}
	s.pane.SoftWrap = true
	s.setAgeGroup(opts.AgeGroup)
	s.setContentType(opts.ContentType)
	return s
}

func (s *GeneratorScreen) Init() tea.Cmd {
	return s.setFocus(focusTopic)
}

func (s *GeneratorScreen) Title() string {
	return "Create Learning Content"
}

// AgeGroup returns the selected age group.
func (s *GeneratorScreen) AgeGroup() content.AgeGroup {
	return content.AgeGroups[s.ages.Selected]
}

// ContentType returns the selected content type.
func (s *GeneratorScreen) ContentType() content.ContentType {
	return content.Types[s.types.Selected].Type
}

// Topic returns the topic as typed.
func (s *GeneratorScreen) Topic() string {
	return s.topic.Value()
}

// Loading reports whether a generation is in flight.
func (s *GeneratorScreen) Loading() bool {
	return s.loading
}

// Result returns the latest result, or nil before the first generation.
func (s *GeneratorScreen) Result() *generation.Result {
	return s.result
}

// StudyView returns the view model of the latest result.
func (s *GeneratorScreen) StudyView() study.View {
	return s.view
}

func (s *GeneratorScreen) setAgeGroup(a content.AgeGroup) {
	for i, ag := range content.AgeGroups {
		if ag == a {
			s.ages.Select(i)
		}
	}
}

func (s *GeneratorScreen) setContentType(t content.ContentType) {
	for i, ti := range content.Types {
		if ti.Type == t {
			s.types.Select(i)
		}
	}
}

func (s *GeneratorScreen) request() content.Request {
	return content.Request{
		AgeGroup:    s.AgeGroup(),
		ContentType: s.ContentType(),
		Topic:       strings.TrimSpace(s.topic.Value()),
	}
}

func (s *GeneratorScreen) HandlesEscape() bool {
	return s.alert != ""
}

func (s *GeneratorScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case generatedMsg:
		return s, s.handleGenerated(msg)

	case copyResetMsg:
		if msg.seq == s.copySeq {
			s.copied = false
		}
		return s, nil

	case voiceMsg:
		return s, s.handleVoice(msg)

	case spokenMsg:
		if msg.err != nil {
			s.voiceNote = voice.AckNotCaught
		}
		return s, nil

	case spinner.TickMsg:
		if !s.loading {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyPressMsg:
		return s, s.handleKey(msg)
	}

	if s.focus == focusTopic {
		var cmd tea.Cmd
		s.topic, cmd = s.topic.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *GeneratorScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if s.alert != "" {
		switch msg.String() {
		case "enter", "esc", "space":
			s.alert = ""
		}
		return nil
	}

	switch msg.String() {
	case "tab":
		return s.setFocus(s.nextFocus(1))
	case "shift+tab":
		return s.setFocus(s.nextFocus(-1))
	case "ctrl+g":
		return s.generate()
	case "ctrl+y":
		return s.copy()
	case "ctrl+s":
		s.download()
		return nil
	case "ctrl+o":
		return s.navigate(s.openStudy)
	case "ctrl+t":
		s.toggleVoice()
		return nil
	case "ctrl+l":
		return s.converse()
	case "ctrl+r":
		return s.readAloud()
	case "ctrl+p":
		return s.navigate(s.openHistory)
	}

	var cmd tea.Cmd
	switch s.focus {
	case focusAge:
		s.ages, cmd = s.ages.Update(msg)
	case focusType:
		if msg.String() == "enter" {
			return s.setFocus(focusTopic)
		}
		s.types, cmd = s.types.Update(msg)
	case focusTopic:
		if msg.String() == "enter" {
			return s.generate()
		}
		s.topic, cmd = s.topic.Update(msg)
	case focusResult:
		s.pane, cmd = s.pane.Update(msg)
	}
	return cmd
}

func (s *GeneratorScreen) nextFocus(step int) focus {
	n := 3
	if s.result != nil {
		n = 4
	}
	return focus((int(s.focus) + step + n) % n)
}

func (s *GeneratorScreen) setFocus(f focus) tea.Cmd {
	s.focus = f
	s.ages.Focused = f == focusAge
	s.types.Focused = f == focusType
	if f == focusTopic {
		return s.topic.Focus()
	}
	s.topic.Blur()
	return nil
}

// generate submits the current selections. It does nothing while a
// request is in flight and raises the validation alert for a blank topic.
func (s *GeneratorScreen) generate() tea.Cmd {
	if s.loading {
		return nil
	}
	req := s.request()
	if err := req.Validate(); err != nil {
		s.showError(err)
		return nil
	}

	s.loading = true
	s.notice = ""
	runner := s.opts.Runner
	run := func() tea.Msg {
		res, err := runner.Run(context.Background(), req)
		return generatedMsg{result: res, err: err}
	}
	return tea.Batch(s.spinner.Tick, run)
}

func (s *GeneratorScreen) showError(err error) {
	var ve *content.ValidationError
	if errors.As(err, &ve) {
		s.alert = ve.Message
		return
	}
	s.alert = err.Error()
}

func (s *GeneratorScreen) handleGenerated(msg generatedMsg) tea.Cmd {
	s.loading = false
	s.notice = ""
	if msg.err != nil {
		s.showError(msg.err)
		return nil
	}

	res := msg.result
	s.result = &res
	s.copied = false
	s.view = study.ViewFor(res.Request.ContentType, res.Text, res.Failed())
	s.pane.SetContent(res.Text)
	s.pane.GotoTop()

	cmd := s.setFocus(focusResult)
	if _, ok := s.view.(study.PlainText); ok {
		return cmd
	}
	return tea.Batch(cmd, s.openStudy())
}

// Resume runs when the learner comes back from a study screen and sums up
// the session they left.
func (s *GeneratorScreen) Resume() tea.Cmd {
	switch v := s.view.(type) {
	case *study.QuizSession:
		if v.Completed() {
			s.setNotice(fmt.Sprintf("Quiz done: %d of %d correct", v.Score(), v.Len()), false)
		}
	case *study.FlashcardSession:
		s.setNotice(fmt.Sprintf("Flipped %d of %d cards", v.FlippedCount(), v.Len()), false)
	default:
		return nil
	}
	return s.setFocus(focusResult)
}

const waitNotice = "Please wait for the current request to finish."

// navigate runs open unless a generation or voice interaction is pending.
// Their replies only reach the active screen, so leaving now would strand
// the loading state.
func (s *GeneratorScreen) navigate(open func() tea.Cmd) tea.Cmd {
	if s.loading || s.voiceBusy {
		s.setNotice(waitNotice, false)
		return nil
	}
	return open()
}

func (s *GeneratorScreen) openHistory() tea.Cmd {
	if s.opts.History == nil {
		return nil
	}
	h := s.opts.History()
	return func() tea.Msg { return router.PushScreenMsg{Screen: h} }
}

// openStudy pushes the interactive screen for the current result.
// Sessions live on the generator so progress survives leaving and
// reopening the study screen.
func (s *GeneratorScreen) openStudy() tea.Cmd {
	var next screen.Screen
	switch v := s.view.(type) {
	case *study.FlashcardSession:
		next = flashcards.New(v, s.result.Request.Topic)
	case *study.QuizSession:
		next = quiz.New(v, s.result.Request.Topic)
	default:
		return nil
	}
	return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func (s *GeneratorScreen) copy() tea.Cmd {
	if s.result == nil {
		return nil
	}
	if err := export.Copy(s.opts.Clipboard, s.result.Text); err != nil {
		s.log.Warn("copy failed", zap.Error(err))
		s.setNotice("Copy failed: "+err.Error(), true)
		return nil
	}
	s.copied = true
	s.copySeq++
	seq := s.copySeq
	return tea.Tick(CopiedFor, func(time.Time) tea.Msg { return copyResetMsg{seq: seq} })
}

func (s *GeneratorScreen) download() {
	if s.result == nil {
		return
	}
	path, err := export.WriteFile(s.opts.DownloadDir, s.result.Request, s.result.Text)
	if err != nil {
		s.log.Warn("download failed", zap.Error(err))
		s.setNotice("Download failed: "+err.Error(), true)
		return
	}
	s.log.Info("result saved", zap.String("path", path))
	s.setNotice("Saved to "+path, false)
}

func (s *GeneratorScreen) setNotice(text string, bad bool) {
	s.notice = text
	s.noticeBad = bad
}

func (s *GeneratorScreen) voiceState() (voice.State, bool) {
	if s.opts.Assistant == nil {
		return voice.State{}, false
	}
	st := s.opts.Assistant.State()
	return st, st.Supported
}

func (s *GeneratorScreen) toggleVoice() {
	st, ok := s.voiceState()
	if !ok {
		s.voiceNote = "Voice features are not available on this system."
		return
	}
	s.opts.Assistant.SetEnabled(!st.Enabled)
	if st.Enabled {
		s.voiceNote = "Voice off."
	} else {
		s.voiceNote = "Voice on. Press ctrl+l and speak."
	}
}

func (s *GeneratorScreen) converse() tea.Cmd {
	st, ok := s.voiceState()
	switch {
	case !ok:
		s.voiceNote = "Voice features are not available on this system."
		return nil
	case !st.Enabled:
		s.voiceNote = "Voice is off. Press ctrl+t to turn it on."
		return nil
	case s.voiceBusy:
		return nil
	}

	s.voiceBusy = true
	s.voiceNote = "🎤 " + voice.PromptGreeting
	a := s.opts.Assistant
	snap := voice.Snapshot{
		AgeGroup:    s.AgeGroup(),
		ContentType: s.ContentType(),
		Topic:       strings.TrimSpace(s.topic.Value()),
		HasResult:   s.result != nil,
	}
	return func() tea.Msg {
		act, err := a.Converse(context.Background(), snap)
		return voiceMsg{action: act, err: err}
	}
}

// handleVoice applies a recognized command exactly as the matching key
// presses would.
func (s *GeneratorScreen) handleVoice(msg voiceMsg) tea.Cmd {
	s.voiceBusy = false
	if s.notice == waitNotice {
		s.notice = ""
	}
	if msg.err != nil {
		switch {
		case errors.Is(msg.err, voice.ErrUnsupported):
			s.voiceNote = "Voice features are not available on this system."
		case errors.Is(msg.err, voice.ErrDisabled):
			s.voiceNote = "Voice is off. Press ctrl+t to turn it on."
		case errors.Is(msg.err, voice.ErrBusy):
		default:
			s.voiceNote = voice.AckNotCaught
		}
		return nil
	}

	act := msg.action
	s.voiceNote = "🎤 " + act.Ack
	switch act.Kind {
	case voice.ActionSetAgeGroup:
		s.setAgeGroup(act.AgeGroup)
	case voice.ActionSetContentType:
		s.setContentType(act.ContentType)
	case voice.ActionSetTopic:
		s.topic.SetValue(act.Topic)
	case voice.ActionGenerate:
		if act.Topic != "" {
			s.topic.SetValue(act.Topic)
		}
		return s.generate()
	case voice.ActionReadAloud:
		return s.readAloud()
	}
	return nil
}

func (s *GeneratorScreen) readAloud() tea.Cmd {
	st, ok := s.voiceState()
	if !ok || !st.Enabled || s.result == nil {
		return nil
	}
	a, text := s.opts.Assistant, s.result.Text
	return func() tea.Msg {
		return spokenMsg{err: a.Say(context.Background(), text)}
	}
}

func (s *GeneratorScreen) Status() string {
	st, ok := s.voiceState()
	switch {
	case !ok:
		return ""
	case st.Listening:
		return "🎤 listening"
	case st.Speaking:
		return "🔊 speaking"
	case st.Enabled:
		return "🎤 voice on"
	}
	return "voice off"
}

func (s *GeneratorScreen) KeyHints() []layout.KeyHint {
	if s.alert != "" {
		return []layout.KeyHint{{Key: "Enter", Description: "OK"}}
	}
	hints := []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Generate"},
	}
	if s.result != nil {
		hints = append(hints,
			layout.KeyHint{Key: "^Y", Description: "Copy"},
			layout.KeyHint{Key: "^S", Description: "Save"},
		)
		if _, plain := s.view.(study.PlainText); !plain {
			hints = append(hints, layout.KeyHint{Key: "^O", Description: "Study"})
		}
	}
	if _, ok := s.voiceState(); ok {
		hints = append(hints, layout.KeyHint{Key: "^T/^L", Description: "Voice"})
	}
	if s.opts.History != nil {
		hints = append(hints, layout.KeyHint{Key: "^P", Description: "History"})
	}
	return append(hints, layout.KeyHint{Key: "^C", Description: "Quit"})
}
