// Package engine ties the learner, the active roadmap and the activity
// ledger together and applies the progression rules as single transitions.
package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/khalari/khalari/internal/learner"
	"github.com/khalari/khalari/internal/quiz"
	"github.com/khalari/khalari/internal/roadmap"
)

// ErrNoRoadmap is returned by module operations before a roadmap exists.
var ErrNoRoadmap = errors.New("no active roadmap")

// Completion paths.
const (
	PathQuiz   = "quiz"
	PathBypass = "bypass"
)

// Engine is the in-memory progression aggregate. Transitions are pure with
// respect to I/O; Service adds locking and persistence.
type Engine struct {
	Learner  learner.Learner
	Roadmap  *roadmap.Roadmap
	Progress *roadmap.Progress
	Activity *learner.Ledger
}

// New creates an engine for l with no roadmap.
func New(l learner.Learner, activity *learner.Ledger) *Engine {
	if activity == nil {
		activity = learner.NewLedger()
	}
	return &Engine{Learner: l, Activity: activity}
}

// Outcome describes what a transition changed.
type Outcome struct {
	Module int
	Path   string

	// Completed is set when the module moved to Completed.
	Completed bool

	// Passed is the quiz verdict; always false for bypass.
	Passed bool

	// Won is the mini-game verdict; always false for quiz.
	Won bool

	StreakCredit int
	BypassDebit  int
	Bonus        int

	// Activity is the merged ledger entry for the day when the transition
	// recorded activity.
	Activity *learner.ActivityEntry

	// ProgressChanged is set when progress or the bonus flag changed.
	ProgressChanged bool
}

// Net returns the balance change of the transition.
func (o Outcome) Net() int {
	return o.StreakCredit + o.Bonus - o.BypassDebit
}

// StartRoadmap makes rm the active roadmap with fresh progress and resets
// the per-roadmap bypass counter.
func (e *Engine) StartRoadmap(rm *roadmap.Roadmap) error {
	if rm == nil {
		return ErrNoRoadmap
	}
	if err := rm.Validate(); err != nil {
		return err
	}
	e.Roadmap = rm
	e.Progress = roadmap.NewProgress(rm.Len())
	e.Learner = learner.ResetForRoadmap(e.Learner)
	return nil
}

// Restore installs a previously persisted roadmap and progress without
// touching the learner.
func (e *Engine) Restore(rm *roadmap.Roadmap, p *roadmap.Progress) error {
	if rm == nil || p == nil {
		return ErrNoRoadmap
	}
	if p.Len() != rm.Len() {
		return fmt.Errorf("progress has %d modules, roadmap %d", p.Len(), rm.Len())
	}
	e.Roadmap = rm
	e.Progress = p
	return nil
}

// ModuleState returns the derived state of module i.
func (e *Engine) ModuleState(i int) (roadmap.State, error) {
	if e.Progress == nil {
		return roadmap.Locked, ErrNoRoadmap
	}
	return e.Progress.State(i)
}

// CheckQuiz reports whether a quiz may be taken for module i. Completed
// modules may be retaken; locked ones may not.
func (e *Engine) CheckQuiz(i int) error {
	st, err := e.ModuleState(i)
	if err != nil {
		return err
	}
	if st == roadmap.Locked {
		return fmt.Errorf("%w: %d", roadmap.ErrModuleLocked, i)
	}
	return nil
}

// CheckBypass reports whether module i can be bypassed.
func (e *Engine) CheckBypass(i int) error {
	st, err := e.ModuleState(i)
	if err != nil {
		return err
	}
	switch st {
	case roadmap.Locked:
		return fmt.Errorf("%w: %d", roadmap.ErrModuleLocked, i)
	case roadmap.Completed:
		return fmt.Errorf("%w: %d", roadmap.ErrModuleCompleted, i)
	}
	return nil
}

// CompleteByQuiz applies a submitted quiz for module i. A failed quiz
// changes nothing. A pass on an unlocked module completes it, records the
// day's completion, advances the streak and pays any milestone and
// full-completion rewards. Passing an already-completed module is not a
// new completion.
func (e *Engine) CompleteByQuiz(i int, res quiz.Result, now time.Time) (Outcome, error) {
	out := Outcome{Module: i, Path: PathQuiz, Passed: res.Passed}
	if err := e.CheckQuiz(i); err != nil {
		return out, err
	}
	if !res.Passed {
		return out, nil
	}

	changed, err := e.Progress.Complete(i)
	if err != nil {
		return out, err
	}
	if !changed {
		return out, nil
	}
	out.Completed = true
	out.ProgressChanged = true

	previous := e.Learner.CurrentStreak
	e.Learner = learner.RecordCompletion(e.Learner, now)
	e.Learner, out.StreakCredit = learner.CreditForStreak(e.Learner, previous)

	entry := e.Activity.Record(learner.ActivityEntry{Date: now, CompletedAnyModule: true})
	out.Activity = &entry

	out.Bonus = e.claimBonus()
	return out, nil
}

// Bypass applies a finished mini-game for module i. Every attempt is
// charged per the bypass rules; a win completes the module and may pay the
// full-completion bonus. A bypass is not a study completion, so the streak
// and the activity ledger are left alone.
func (e *Engine) Bypass(i int, won bool, now time.Time) (Outcome, error) {
	out := Outcome{Module: i, Path: PathBypass, Won: won}
	if err := e.CheckBypass(i); err != nil {
		return out, err
	}

	e.Learner, out.BypassDebit = learner.DebitForBypass(e.Learner)
	if !won {
		return out, nil
	}

	changed, err := e.Progress.Complete(i)
	if err != nil {
		return out, err
	}
	out.Completed = changed
	out.ProgressChanged = changed
	out.Bonus = e.claimBonus()
	return out, nil
}

func (e *Engine) claimBonus() int {
	if !e.Progress.ClaimBonus() {
		return 0
	}
	e.Learner = learner.CreditForFullCompletion(e.Learner)
	return learner.FullCompletionBonus
}

// LogTime adds study time to the day of now and returns the merged entry.
func (e *Engine) LogTime(d time.Duration, now time.Time) learner.ActivityEntry {
	return e.Activity.Record(learner.ActivityEntry{Date: now, TimeSpentSeconds: int64(d / time.Second)})
}

// Purchase credits bought diamonds.
func (e *Engine) Purchase(amount int) error {
	l, err := learner.Purchase(e.Learner, amount)
	if err != nil {
		return err
	}
	e.Learner = l
	return nil
}

// UpdateProfile applies a profile edit.
func (e *Engine) UpdateProfile(edit learner.Edit) learner.Learner {
	e.Learner = e.Learner.Apply(edit)
	return e.Learner
}
