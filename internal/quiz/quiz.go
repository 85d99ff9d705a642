// Package quiz runs a timed multiple-choice quiz for a single module and
// scores it against the pass threshold.
package quiz

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	// QuestionTime is the budget for each question.
	QuestionTime = 25 * time.Second

	// PassThreshold is the minimum score that completes a module.
	PassThreshold = 0.5

	// OptionCount is the number of options every question carries.
	OptionCount = 4
)

var (
	ErrNoQuestions = errors.New("quiz has no questions")
	ErrSubmitted   = errors.New("quiz already submitted")
	ErrOptionIndex = errors.New("option index out of range")
	ErrBadQuestion = errors.New("malformed question")
)

// Question is a single multiple-choice question.
type Question struct {
	Prompt      string   `json:"question"`
	Options     []string `json:"options"`
	Correct     int      `json:"correct"`
	Explanation string   `json:"explanation,omitempty"`
}

// Validate checks the option count and the correct index.
func (q Question) Validate() error {
	if q.Prompt == "" {
		return fmt.Errorf("%w: empty prompt", ErrBadQuestion)
	}
	if len(q.Options) != OptionCount {
		return fmt.Errorf("%w: %d options", ErrBadQuestion, len(q.Options))
	}
	if q.Correct < 0 || q.Correct >= len(q.Options) {
		return fmt.Errorf("%w: correct index %d", ErrBadQuestion, q.Correct)
	}
	return nil
}

// Result is the outcome of a submitted quiz.
type Result struct {
	Correct int
	Total   int
	Score   float64
	Passed  bool
	Answers []int // -1 for unanswered
}

// Grade scores answers against questions. Missing or out-of-range answers
// count as incorrect.
func Grade(questions []Question, answers []int) Result {
	r := Result{Total: len(questions), Answers: make([]int, len(questions))}
	for i, q := range questions {
		a := Unanswered
		if i < len(answers) {
			a = answers[i]
		}
		r.Answers[i] = a
		if a == q.Correct {
			r.Correct++
		}
	}
	if r.Total > 0 {
		r.Score = float64(r.Correct) / float64(r.Total)
	}
	r.Passed = r.Total > 0 && r.Score >= PassThreshold
	return r
}

// Unanswered marks a question without a chosen option.
const Unanswered = -1

// Session is the state machine of one quiz attempt. It is not safe for
// concurrent use; the owning screen drives it from its update loop.
type Session struct {
	ID        string
	Module    int
	questions []Question
	answers   []int
	current   int
	budget    time.Duration
	deadline  time.Time
	result    *Result
}

// NewSession starts a quiz at the first question. now anchors the first
// question's deadline.
func NewSession(module int, questions []Question, now time.Time) (*Session, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	answers := make([]int, len(questions))
	for i := range answers {
		answers[i] = Unanswered
	}
	s := &Session{
		ID:        uuid.NewString(),
		Module:    module,
		questions: questions,
		answers:   answers,
		budget:    QuestionTime,
	}
	s.deadline = now.Add(s.budget)
	return s, nil
}

// Len returns the number of questions.
func (s *Session) Len() int { return len(s.questions) }

// Index returns the current question index.
func (s *Session) Index() int { return s.current }

// Question returns the current question.
func (s *Session) Question() Question { return s.questions[s.current] }

// Questions returns the question list.
func (s *Session) Questions() []Question { return s.questions }

// Answer returns the chosen option for question i, or Unanswered.
func (s *Session) Answer(i int) int {
	if i < 0 || i >= len(s.answers) {
		return Unanswered
	}
	return s.answers[i]
}

// Submitted reports whether the session has ended.
func (s *Session) Submitted() bool { return s.result != nil }

// Result returns the graded result, nil until submitted.
func (s *Session) Result() *Result { return s.result }

// Remaining returns the time left on the current question.
func (s *Session) Remaining(now time.Time) time.Duration {
	if s.Submitted() {
		return 0
	}
	if d := s.deadline.Sub(now); d > 0 {
		return d
	}
	return 0
}

// Select records option as the answer to the current question.
func (s *Session) Select(option int) error {
	if s.Submitted() {
		return ErrSubmitted
	}
	if option < 0 || option >= len(s.questions[s.current].Options) {
		return fmt.Errorf("%w: %d", ErrOptionIndex, option)
	}
	s.answers[s.current] = option
	return nil
}

// Next advances to the next question, submitting when already on the last.
func (s *Session) Next(now time.Time) {
	if s.Submitted() {
		return
	}
	if s.current == len(s.questions)-1 {
		s.Submit()
		return
	}
	s.current++
	s.deadline = now.Add(s.budget)
}

// Prev moves back one question and restarts its display timer. Answers
// given so far are kept.
func (s *Session) Prev(now time.Time) {
	if s.Submitted() || s.current == 0 {
		return
	}
	s.current--
	s.deadline = now.Add(s.budget)
}

// Tick advances past the current question if its time is up. It reports
// whether the session moved.
func (s *Session) Tick(now time.Time) bool {
	if s.Submitted() || now.Before(s.deadline) {
		return false
	}
	s.Next(now)
	return true
}

// Submit ends the session and grades it. Calling it again returns the same
// result.
func (s *Session) Submit() Result {
	if s.result == nil {
		r := Grade(s.questions, s.answers)
		s.result = &r
	}
	return *s.result
}
