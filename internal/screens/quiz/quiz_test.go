package quiz

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/edunova/internal/content"
	"github.com/abhisek/edunova/internal/study"
)

func newSession() *study.QuizSession {
	return study.NewQuizSession([]content.QuizQuestion{
		{Prompt: "Largest planet?", Options: [4]string{"Earth", "Jupiter", "Mars", "Venus"}, Correct: content.OptionB},
		{Prompt: "Closest star?", Options: [4]string{"Sun", "Sirius", "Vega", "Rigel"}, Correct: content.OptionA},
	})
}

func key(s *QuizScreen, code rune) {
	s.Update(tea.KeyPressMsg{Code: code})
}

func TestNextNeedsAnswer(t *testing.T) {
	sess := newSession()
	s := New(sess, "Space")

	key(s, 'n')
	assert.Equal(t, 0, sess.Current(), "next before answering is a no-op")

	key(s, tea.KeyDown)
	key(s, tea.KeyEnter)
	label, ok := sess.Answer(0)
	require.True(t, ok)
	assert.Equal(t, content.OptionB, label)
	assert.Equal(t, 0, sess.Current(), "choosing does not advance")

	key(s, 'n')
	assert.Equal(t, 1, sess.Current())
	assert.Equal(t, 0, s.cursor, "cursor resets for a new question")
}

func TestCompleteAndReset(t *testing.T) {
	sess := newSession()
	s := New(sess, "Space")

	key(s, 'b')
	key(s, 'n')
	key(s, 'c')
	key(s, 'n')

	require.True(t, sess.Completed())
	assert.Equal(t, 1, sess.Score())
	view := s.View(100, 30)
	assert.Contains(t, view, "You got 1 out of 2 right!")
	assert.Contains(t, view, "answer: A) Sun")

	key(s, 'r')
	assert.False(t, sess.Completed())
	assert.Equal(t, 0, sess.Current())
	_, ok := sess.Answer(0)
	assert.False(t, ok)
}

func TestReopenKeepsAnswerHighlighted(t *testing.T) {
	sess := newSession()
	s := New(sess, "Space")
	key(s, 'd')

	again := New(sess, "Space")
	assert.Equal(t, 3, again.cursor)
}

func TestScoreLine(t *testing.T) {
	assert.Equal(t, "🏆 You got 3 out of 3 right!", ScoreLine(3, 3))
	assert.Equal(t, "🌟 You got 2 out of 4 right!", ScoreLine(2, 4))
	assert.Equal(t, "💪 You got 0 out of 4 right! Keep practicing!", ScoreLine(0, 4))
}
