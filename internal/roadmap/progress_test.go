package roadmap

import (
	"errors"
	"math/rand"
	"testing"
)

func TestNewProgressStates(t *testing.T) {
	p := NewProgress(4)
	want := []State{Unlocked, Locked, Locked, Locked}
	for i, st := range p.States() {
		if st != want[i] {
			t.Errorf("State(%d) = %v, want %v", i, st, want[i])
		}
	}
}

func TestCompleteInOrder(t *testing.T) {
	p := NewProgress(3)

	if _, err := p.Complete(1); !errors.Is(err, ErrModuleLocked) {
		t.Fatalf("Complete(1) err = %v, want ErrModuleLocked", err)
	}

	changed, err := p.Complete(0)
	if err != nil || !changed {
		t.Fatalf("Complete(0) = %v, %v", changed, err)
	}
	if st, _ := p.State(1); st != Unlocked {
		t.Errorf("State(1) = %v, want unlocked", st)
	}

	changed, err = p.Complete(0)
	if err != nil || changed {
		t.Errorf("re-completing = %v, %v, want no-op", changed, err)
	}
}

func TestCompleteOutOfRange(t *testing.T) {
	p := NewProgress(2)
	for _, i := range []int{-1, 2, 10} {
		if _, err := p.Complete(i); !errors.Is(err, ErrModuleIndex) {
			t.Errorf("Complete(%d) err = %v, want ErrModuleIndex", i, err)
		}
	}
}

func TestRandomOrderNeverViolatesUnlock(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 200; trial++ {
		n := 1 + rng.Intn(7)
		p := NewProgress(n)
		for step := 0; step < 3*n; step++ {
			i := rng.Intn(n)
			before, _ := p.State(i)
			_, err := p.Complete(i)
			if before == Locked && err == nil {
				t.Fatalf("trial %d: completed locked module %d", trial, i)
			}
			done := p.Done()
			for j := 1; j < n; j++ {
				if done[j] && !done[j-1] {
					t.Fatalf("trial %d: invariant broken at %d: %v", trial, j, done)
				}
			}
		}
	}
}

func TestClaimBonusOnce(t *testing.T) {
	p := NewProgress(2)
	if p.ClaimBonus() {
		t.Fatal("bonus claimed before completion")
	}
	p.Complete(0)
	p.Complete(1)
	if !p.ClaimBonus() {
		t.Fatal("bonus not claimable after completion")
	}
	if p.ClaimBonus() {
		t.Error("bonus claimed twice")
	}
	if !p.BonusAwarded() {
		t.Error("BonusAwarded should be true")
	}
}

func TestRestoreProgressTruncatesGaps(t *testing.T) {
	p := RestoreProgress([]bool{true, false, true, true}, false)
	want := []bool{true, false, false, false}
	for i, d := range p.Done() {
		if d != want[i] {
			t.Errorf("done[%d] = %v, want %v", i, d, want[i])
		}
	}
	if p.Current() != 1 || p.CompletedCount() != 1 {
		t.Errorf("Current = %d, CompletedCount = %d", p.Current(), p.CompletedCount())
	}
}

func TestStateString(t *testing.T) {
	if Completed.String() != "completed" || State(9).String() != "State(9)" {
		t.Error("unexpected State strings")
	}
}

func TestRoadmapModule(t *testing.T) {
	r := &Roadmap{Topic: "Go", Modules: []Module{{Title: "Basics"}}}
	if err := r.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if _, err := r.Module(1); !errors.Is(err, ErrModuleIndex) {
		t.Errorf("Module(1) err = %v", err)
	}
	if err := (&Roadmap{}).Validate(); !errors.Is(err, ErrEmptyRoadmap) {
		t.Errorf("empty Validate err = %v", err)
	}
}
