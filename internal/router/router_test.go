package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/edunova/internal/screen"
)

type stubScreen struct {
	title    string
	inits    int
	resumes  int
	received []tea.Msg
}

func (s *stubScreen) Init() tea.Cmd { s.inits++; return nil }
func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.received = append(s.received, msg)
	return s, nil
}
func (s *stubScreen) View(int, int) string { return "view:" + s.title }
func (s *stubScreen) Title() string        { return s.title }

// resumingScreen reports back when it becomes active again.
type resumingScreen struct{ stubScreen }

type resumedMsg struct{ title string }

func (s *resumingScreen) Resume() tea.Cmd {
	s.resumes++
	return func() tea.Msg { return resumedMsg{s.title} }
}

func TestNavigation(t *testing.T) {
	generator := &stubScreen{title: "generator"}
	quiz := &stubScreen{title: "quiz"}
	history := &stubScreen{title: "history"}

	r := New(generator)
	assert.Equal(t, 1, r.Depth())

	r.Update(PushScreenMsg{Screen: quiz})
	assert.Equal(t, 2, r.Depth())
	assert.Same(t, quiz, r.Active())
	assert.Equal(t, 1, quiz.inits)

	r.Update(ReplaceScreenMsg{Screen: history})
	assert.Equal(t, 2, r.Depth(), "replace keeps depth")
	assert.Same(t, history, r.Active())
	assert.Equal(t, 1, history.inits)

	r.Update(PopScreenMsg{})
	assert.Same(t, generator, r.Active())

	r.Update(PopScreenMsg{})
	assert.Equal(t, 1, r.Depth(), "bottom screen stays")
	assert.Same(t, generator, r.Active())
	assert.Zero(t, generator.inits, "New does not init")
}

func TestPopResumesScreenBelow(t *testing.T) {
	generator := &resumingScreen{stubScreen{title: "generator"}}
	r := New(generator)
	r.Push(&stubScreen{title: "flashcards"})

	cmd := r.Pop()
	require.NotNil(t, cmd)
	assert.Equal(t, resumedMsg{"generator"}, cmd())
	assert.Equal(t, 1, generator.resumes)

	assert.Nil(t, r.Pop(), "nothing to resume at the bottom")
	assert.Equal(t, 1, generator.resumes)
}

func TestUpdateForwardsToActive(t *testing.T) {
	bottom := &stubScreen{title: "generator"}
	top := &stubScreen{title: "quiz"}
	r := New(bottom)
	r.Push(top)

	key := tea.KeyPressMsg{Code: 'b'}
	r.Update(key)
	assert.Equal(t, []tea.Msg{key}, top.received)
	assert.Empty(t, bottom.received)
	assert.Equal(t, "view:quiz", r.View(80, 24))
}

func TestReplaceOnEmptyStack(t *testing.T) {
	r := &Router{}
	assert.Nil(t, r.Active())
	assert.Empty(t, r.View(80, 24))

	s := &stubScreen{title: "welcome"}
	r.Replace(s)
	assert.Equal(t, 1, r.Depth())
	assert.Same(t, s, r.Active())
}
