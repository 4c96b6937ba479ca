package study

import "github.com/abhisek/edunova/internal/content"

// QuizSession steps through questions one at a time. The session is either
// answering question Current() or completed; the score is derived from the
// recorded answers.
type QuizSession struct {
	questions []content.QuizQuestion
	current   int
	answers   map[int]content.OptionLabel
	completed bool
}

// NewQuizSession starts a session at the first question.
func NewQuizSession(questions []content.QuizQuestion) *QuizSession {
	return &QuizSession{
		questions: questions,
		answers:   make(map[int]content.OptionLabel),
	}
}

// Questions returns all questions in order.
func (s *QuizSession) Questions() []content.QuizQuestion { return s.questions }

// Len returns the number of questions.
func (s *QuizSession) Len() int { return len(s.questions) }

// Current returns the index of the question being answered.
func (s *QuizSession) Current() int { return s.current }

// CurrentQuestion returns the question being answered.
func (s *QuizSession) CurrentQuestion() content.QuizQuestion {
	if len(s.questions) == 0 {
		return content.QuizQuestion{}
	}
	return s.questions[s.current]
}

// Answer returns the recorded answer for question i.
func (s *QuizSession) Answer(i int) (content.OptionLabel, bool) {
	l, ok := s.answers[i]
	return l, ok
}

// Select records label as the answer to the current question, replacing any
// earlier choice. It does not advance. It returns false when the session
// is completed or the label is not A-D.
func (s *QuizSession) Select(label content.OptionLabel) bool {
	if s.completed || !label.Valid() || len(s.questions) == 0 {
		return false
	}
	s.answers[s.current] = label
	return true
}

// CanAdvance reports whether the current question has an answer.
func (s *QuizSession) CanAdvance() bool {
	if s.completed {
		return false
	}
	_, ok := s.answers[s.current]
	return ok
}

// Next moves to the following question, or completes the quiz after the
// last one. Without an answer for the current question it does nothing and
// returns false.
func (s *QuizSession) Next() bool {
	if !s.CanAdvance() {
		return false
	}
	if s.IsLast() {
		s.completed = true
		return true
	}
	s.current++
	return true
}

// IsLast reports whether the current question is the final one.
func (s *QuizSession) IsLast() bool { return s.current == len(s.questions)-1 }

// Completed reports whether the last question has been submitted.
func (s *QuizSession) Completed() bool { return s.completed }

// Score counts answers that match the correct label.
func (s *QuizSession) Score() int {
	score := 0
	for i, q := range s.questions {
		if l, ok := s.answers[i]; ok && l == q.Correct {
			score++
		}
	}
	return score
}

// Reset returns to the first question and clears every answer.
func (s *QuizSession) Reset() {
	s.current = 0
	s.completed = false
	clear(s.answers)
}
