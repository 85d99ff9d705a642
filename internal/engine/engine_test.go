package engine

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/khalari/khalari/internal/learner"
	"github.com/khalari/khalari/internal/quiz"
	"github.com/khalari/khalari/internal/roadmap"
)

var today = time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC)

func testRoadmap(n int) *roadmap.Roadmap {
	rm := &roadmap.Roadmap{ID: fmt.Sprintf("rm-%d", n), Topic: "Go", Language: "en", CreatedAt: today}
	for i := range n {
		rm.Modules = append(rm.Modules, roadmap.Module{Title: fmt.Sprintf("Module %d", i+1)})
	}
	return rm
}

func newEngine(t *testing.T, n int) *Engine {
	t.Helper()
	e := New(learner.New("Asha", "English", today.AddDate(0, -1, 0)), nil)
	if err := e.StartRoadmap(testRoadmap(n)); err != nil {
		t.Fatalf("StartRoadmap: %v", err)
	}
	return e
}

func pass() quiz.Result {
	qs := []quiz.Question{
		{Prompt: "a", Options: []string{"1", "2", "3", "4"}, Correct: 0},
		{Prompt: "b", Options: []string{"1", "2", "3", "4"}, Correct: 1},
	}
	// One of two correct is exactly the threshold.
	return quiz.Grade(qs, []int{0, 3})
}

func fail() quiz.Result {
	return quiz.Result{Correct: 0, Total: 2, Passed: false}
}

func TestEngine_NoRoadmap(t *testing.T) {
	e := New(learner.New("", "", today), nil)
	if _, err := e.ModuleState(0); !errors.Is(err, ErrNoRoadmap) {
		t.Fatalf("ModuleState: got %v, want ErrNoRoadmap", err)
	}
	if _, err := e.CompleteByQuiz(0, pass(), today); !errors.Is(err, ErrNoRoadmap) {
		t.Fatalf("CompleteByQuiz: got %v, want ErrNoRoadmap", err)
	}
	if _, err := e.Bypass(0, true, today); !errors.Is(err, ErrNoRoadmap) {
		t.Fatalf("Bypass: got %v, want ErrNoRoadmap", err)
	}
}

func TestEngine_StartRoadmapRejectsEmpty(t *testing.T) {
	e := New(learner.New("", "", today), nil)
	if err := e.StartRoadmap(&roadmap.Roadmap{ID: "x"}); !errors.Is(err, roadmap.ErrEmptyRoadmap) {
		t.Fatalf("got %v, want ErrEmptyRoadmap", err)
	}
	if e.Roadmap != nil {
		t.Fatal("roadmap should not be installed")
	}
}

func TestEngine_QuizPassCompletesAndStreaks(t *testing.T) {
	e := newEngine(t, 5)

	out, err := e.CompleteByQuiz(0, pass(), today)
	if err != nil {
		t.Fatalf("CompleteByQuiz: %v", err)
	}
	if !out.Completed || !out.Passed {
		t.Fatalf("outcome = %+v, want completed pass", out)
	}
	if e.Learner.CurrentStreak != 1 || e.Learner.HighestStreak != 1 {
		t.Fatalf("streak = %d/%d, want 1/1", e.Learner.CurrentStreak, e.Learner.HighestStreak)
	}
	if st, _ := e.ModuleState(1); st != roadmap.Unlocked {
		t.Fatalf("module 1 state = %v, want Unlocked", st)
	}
	if out.Activity == nil || !out.Activity.CompletedAnyModule {
		t.Fatalf("activity = %+v, want completion recorded", out.Activity)
	}
	if !e.Activity.Entry(today).CompletedAnyModule {
		t.Fatal("ledger should mark today completed")
	}
}

func TestEngine_QuizFailChangesNothing(t *testing.T) {
	e := newEngine(t, 5)
	before := e.Learner

	out, err := e.CompleteByQuiz(0, fail(), today)
	if err != nil {
		t.Fatalf("CompleteByQuiz: %v", err)
	}
	if out.Completed || out.ProgressChanged || out.Activity != nil {
		t.Fatalf("outcome = %+v, want no change", out)
	}
	if e.Learner != before {
		t.Fatalf("learner changed: %+v", e.Learner)
	}
	if st, _ := e.ModuleState(0); st != roadmap.Unlocked {
		t.Fatalf("state = %v, want Unlocked", st)
	}
}

func TestEngine_QuizOnLockedModule(t *testing.T) {
	e := newEngine(t, 5)
	if _, err := e.CompleteByQuiz(2, pass(), today); !errors.Is(err, roadmap.ErrModuleLocked) {
		t.Fatalf("got %v, want ErrModuleLocked", err)
	}
	if _, err := e.CompleteByQuiz(9, pass(), today); !errors.Is(err, roadmap.ErrModuleIndex) {
		t.Fatalf("got %v, want ErrModuleIndex", err)
	}
}

func TestEngine_StreakSixToSevenCredits(t *testing.T) {
	e := newEngine(t, 5)
	e.Learner.CurrentStreak = 6
	e.Learner.HighestStreak = 6
	e.Learner.LastActivity = learner.DayOf(today.AddDate(0, 0, -1))
	e.Learner.Balance = 100

	out, err := e.CompleteByQuiz(0, pass(), today)
	if err != nil {
		t.Fatalf("CompleteByQuiz: %v", err)
	}
	if e.Learner.CurrentStreak != 7 || e.Learner.HighestStreak != 7 {
		t.Fatalf("streak = %d/%d, want 7/7", e.Learner.CurrentStreak, e.Learner.HighestStreak)
	}
	if out.StreakCredit != 20 || e.Learner.Balance != 120 {
		t.Fatalf("credit %d balance %d, want 20 and 120", out.StreakCredit, e.Learner.Balance)
	}

	// A second completion the same day neither moves the streak nor pays.
	out, err = e.CompleteByQuiz(1, pass(), today.Add(time.Hour))
	if err != nil {
		t.Fatalf("second CompleteByQuiz: %v", err)
	}
	if out.StreakCredit != 0 || e.Learner.Balance != 120 || e.Learner.CurrentStreak != 7 {
		t.Fatalf("same-day repeat paid: credit %d balance %d streak %d", out.StreakCredit, e.Learner.Balance, e.Learner.CurrentStreak)
	}
}

func TestEngine_RepassCompletedIsNoop(t *testing.T) {
	e := newEngine(t, 5)
	if _, err := e.CompleteByQuiz(0, pass(), today); err != nil {
		t.Fatal(err)
	}
	before := e.Learner

	out, err := e.CompleteByQuiz(0, pass(), today.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("re-pass: %v", err)
	}
	if out.Completed || out.Activity != nil {
		t.Fatalf("outcome = %+v, want no completion", out)
	}
	if e.Learner != before {
		t.Fatal("re-passing a completed module should not touch the learner")
	}
}

func TestEngine_BypassRules(t *testing.T) {
	e := newEngine(t, 5)

	if _, err := e.Bypass(1, true, today); !errors.Is(err, roadmap.ErrModuleLocked) {
		t.Fatalf("locked: got %v", err)
	}
	if e.Learner.BypassAttemptsUsed != 0 {
		t.Fatal("a rejected bypass must not count as an attempt")
	}

	for attempt := 1; attempt <= 3; attempt++ {
		out, err := e.Bypass(0, false, today)
		if err != nil {
			t.Fatalf("attempt %d: %v", attempt, err)
		}
		if out.BypassDebit != 0 {
			t.Fatalf("attempt %d debited %d", attempt, out.BypassDebit)
		}
	}
	if e.Learner.BypassAttemptsUsed != 3 || e.Learner.Balance != 0 {
		t.Fatalf("after free attempts: used %d balance %d", e.Learner.BypassAttemptsUsed, e.Learner.Balance)
	}

	out, err := e.Bypass(0, false, today)
	if err != nil {
		t.Fatal(err)
	}
	if out.BypassDebit != 20 || e.Learner.Balance != -20 {
		t.Fatalf("4th attempt: debit %d balance %d, want 20 and -20", out.BypassDebit, e.Learner.Balance)
	}
	if st, _ := e.ModuleState(0); st != roadmap.Unlocked {
		t.Fatalf("lost bypass should leave module Unlocked, got %v", st)
	}

	out, err = e.Bypass(0, true, today)
	if err != nil {
		t.Fatal(err)
	}
	if !out.Completed || e.Learner.Balance != -40 {
		t.Fatalf("won bypass: %+v balance %d", out, e.Learner.Balance)
	}
	if e.Learner.CurrentStreak != 0 || out.Activity != nil {
		t.Fatal("bypass must not record a study completion")
	}

	if _, err := e.Bypass(0, true, today); !errors.Is(err, roadmap.ErrModuleCompleted) {
		t.Fatalf("completed: got %v", err)
	}
}

func TestEngine_BypassFourthAttemptWinsLastModule(t *testing.T) {
	e := newEngine(t, 5)
	for i := range 4 {
		if _, err := e.CompleteByQuiz(i, pass(), today); err != nil {
			t.Fatalf("module %d: %v", i, err)
		}
	}
	e.Learner.BypassAttemptsUsed = 3
	e.Learner.Balance = 100

	out, err := e.Bypass(4, true, today)
	if err != nil {
		t.Fatalf("Bypass: %v", err)
	}
	if out.BypassDebit != 20 || out.Bonus != 50 {
		t.Fatalf("debit %d bonus %d, want 20 and 50", out.BypassDebit, out.Bonus)
	}
	if out.Net() != 30 || e.Learner.Balance != 130 {
		t.Fatalf("net %d balance %d, want +30 and 130", out.Net(), e.Learner.Balance)
	}
	if e.Learner.BypassAttemptsUsed != 4 {
		t.Fatalf("attempts = %d, want 4", e.Learner.BypassAttemptsUsed)
	}
}

func TestEngine_FullCompletionBonusOnce(t *testing.T) {
	e := newEngine(t, 2)

	if out, _ := e.CompleteByQuiz(0, pass(), today); out.Bonus != 0 {
		t.Fatal("bonus paid before all modules completed")
	}
	out, err := e.CompleteByQuiz(1, pass(), today)
	if err != nil {
		t.Fatal(err)
	}
	if out.Bonus != learner.FullCompletionBonus {
		t.Fatalf("bonus = %d, want %d", out.Bonus, learner.FullCompletionBonus)
	}
	if e.Learner.Balance != 50 {
		t.Fatalf("balance = %d, want 50", e.Learner.Balance)
	}

	out, _ = e.CompleteByQuiz(1, pass(), today)
	if out.Bonus != 0 || e.Learner.Balance != 50 {
		t.Fatal("bonus paid twice")
	}
}

func TestEngine_StartRoadmapResets(t *testing.T) {
	e := newEngine(t, 3)
	if _, err := e.CompleteByQuiz(0, pass(), today); err != nil {
		t.Fatal(err)
	}
	e.Learner.BypassAttemptsUsed = 5
	streak := e.Learner.CurrentStreak

	if err := e.StartRoadmap(testRoadmap(6)); err != nil {
		t.Fatal(err)
	}
	if e.Learner.BypassAttemptsUsed != 0 {
		t.Fatalf("bypass attempts = %d, want 0", e.Learner.BypassAttemptsUsed)
	}
	if e.Progress.CompletedCount() != 0 || e.Progress.Len() != 6 {
		t.Fatalf("progress not reset: %d/%d", e.Progress.CompletedCount(), e.Progress.Len())
	}
	if e.Learner.CurrentStreak != streak {
		t.Fatal("a new roadmap must not reset the streak")
	}
}

func TestEngine_PurchaseAndLogTime(t *testing.T) {
	e := newEngine(t, 5)

	if err := e.Purchase(0); !errors.Is(err, learner.ErrInvalidAmount) {
		t.Fatalf("Purchase(0): got %v", err)
	}
	if err := e.Purchase(-5); !errors.Is(err, learner.ErrInvalidAmount) {
		t.Fatalf("Purchase(-5): got %v", err)
	}
	if err := e.Purchase(120); err != nil || e.Learner.Balance != 120 {
		t.Fatalf("Purchase(120): err %v balance %d", err, e.Learner.Balance)
	}

	e.LogTime(90*time.Second, today)
	entry := e.LogTime(30*time.Second, today.Add(time.Hour))
	if entry.TimeSpentSeconds != 120 {
		t.Fatalf("time = %d, want 120", entry.TimeSpentSeconds)
	}
}

func TestEngine_UpdateProfileKeepsGamification(t *testing.T) {
	e := newEngine(t, 5)
	e.Learner.Balance = 70
	name, lang := "Ravi", "Tamil"

	l := e.UpdateProfile(learner.Edit{Name: &name, Language: &lang})
	if l.Name != "Ravi" || l.PreferredLanguage != "Tamil" {
		t.Fatalf("profile = %+v", l)
	}
	if l.Balance != 70 {
		t.Fatal("profile edit touched the balance")
	}
}
