// Package session owns the interactive lifecycle of answering one quiz:
// recording answers, the submit/reset transitions, and scoring. It is
// independent of how the quiz record was obtained and of any rendering
// layer.
package session

import (
	"fmt"
	"math"
	"sync"

	"github.com/wikiquiz/quizforge/internal/domain"
)

// Mode selects how a session presents its questions.
type Mode int

const (
	// ModePlay hides answers until the session is submitted.
	ModePlay Mode = iota
	// ModeReview always reveals answers and explanations and disables
	// answer recording; used when browsing a past quiz from history.
	ModeReview
)

// OptionState is the render state of one option of one question.
type OptionState int

const (
	OptionNeutral OptionState = iota
	// OptionSelected marks the user's tentative choice before submission.
	OptionSelected
	OptionCorrect
	OptionIncorrect
)

// Score is the result summary of a session.
type Score struct {
	Correct    int
	Total      int
	Percentage int
}

// Session tracks one user's in-progress answers for one quiz. It must not
// be shared across concurrently displayed quizzes; each open quiz owns its
// own instance.
type Session struct {
	mu        sync.Mutex
	questions []domain.Question
	mode      Mode
	answers   map[int]string
	completed bool
}

// New creates a session over the quiz's questions. The slice is not
// copied; the questions are treated as immutable for the session's life.
func New(questions []domain.Question, mode Mode) *Session {
	return &Session{
		questions: questions,
		mode:      mode,
		answers:   make(map[int]string),
	}
}

// Mode returns the display mode the session was opened with.
func (s *Session) Mode() Mode {
	return s.mode
}

// Completed reports whether the session has been submitted.
func (s *Session) Completed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.completed
}

// RecordAnswer stores the chosen option for a question. The choice is kept
// verbatim; wrong answers are legitimate input. Re-answering overwrites
// the prior choice. Recording is rejected once submitted and in review
// mode, where answers are never collected.
func (s *Session) RecordAnswer(questionIndex int, chosenOption string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode == ModeReview {
		return domain.NewInvalidInputError("cannot record answers in review mode")
	}
	if s.completed {
		return domain.NewInvalidInputError("quiz already submitted")
	}
	if questionIndex < 0 || questionIndex >= len(s.questions) {
		return domain.NewInvalidInputError(fmt.Sprintf("question index %d out of range", questionIndex))
	}

	s.answers[questionIndex] = chosenOption
	return nil
}

// Answer returns the recorded answer for a question index, if any.
func (s *Session) Answer(questionIndex int) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	answer, ok := s.answers[questionIndex]
	return answer, ok
}

// Answered returns how many questions currently have a recorded answer.
func (s *Session) Answered() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.answers)
}

// Submit completes the session. There is no constraint that every question
// be answered; unanswered questions simply count as incorrect. Submitting
// twice is a no-op.
func (s *Session) Submit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.completed = true
}

// Reset clears all recorded answers and returns the session to in-progress,
// regardless of prior state.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.answers = make(map[int]string)
	s.completed = false
}

// Score computes the result summary. A question counts as correct only
// when the recorded answer equals its canonical answer exactly, so a
// malformed question whose answer is not among its options can never
// count. A quiz with zero questions scores 0/0 at 0 percent.
func (s *Session) Score() Score {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := len(s.questions)
	correct := 0
	for i, q := range s.questions {
		if answer, ok := s.answers[i]; ok && answer == q.Answer {
			correct++
		}
	}

	percentage := 0
	if total > 0 {
		percentage = int(math.Round(100 * float64(correct) / float64(total)))
	}

	return Score{Correct: correct, Total: total, Percentage: percentage}
}

// OptionStates is the pure render projection for one question's options.
// Before submission in play mode only the tentative selection is
// highlighted; once completed, or always in review mode, the canonical
// answer is marked correct and a wrong selection incorrect. An out-of-range
// index or a question with no options yields an empty slice rather than
// failing.
func (s *Session) OptionStates(questionIndex int) []OptionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	if questionIndex < 0 || questionIndex >= len(s.questions) {
		return []OptionState{}
	}
	question := s.questions[questionIndex]
	selected, hasSelection := s.answers[questionIndex]
	reveal := s.completed || s.mode == ModeReview

	states := make([]OptionState, len(question.Options))
	for i, option := range question.Options {
		switch {
		case reveal && option == question.Answer:
			states[i] = OptionCorrect
		case reveal && hasSelection && option == selected:
			states[i] = OptionIncorrect
		case !reveal && hasSelection && option == selected:
			states[i] = OptionSelected
		default:
			states[i] = OptionNeutral
		}
	}
	return states
}
