package roadmap

import "fmt"

// State is the derived state of a single module.
type State int

const (
	Locked State = iota
	Unlocked
	Completed
)

func (s State) String() string {
	switch s {
	case Locked:
		return "locked"
	case Unlocked:
		return "unlocked"
	case Completed:
		return "completed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Progress tracks completion of each module in a roadmap. Only completion
// is stored; Unlocked is derived on every read from the predecessor.
type Progress struct {
	done         []bool
	bonusAwarded bool
}

// NewProgress returns all-false progress for n modules.
func NewProgress(n int) *Progress {
	return &Progress{done: make([]bool, n)}
}

// RestoreProgress rebuilds progress from a stored completion vector. A
// stored vector that violates the unlock order is truncated at the first
// gap so the invariant holds after load.
func RestoreProgress(done []bool, bonusAwarded bool) *Progress {
	p := &Progress{done: make([]bool, len(done)), bonusAwarded: bonusAwarded}
	for i, d := range done {
		if !d {
			break
		}
		p.done[i] = true
	}
	return p
}

// Len returns the number of modules tracked.
func (p *Progress) Len() int {
	return len(p.done)
}

// State returns the derived state of module i.
func (p *Progress) State(i int) (State, error) {
	if i < 0 || i >= len(p.done) {
		return Locked, fmt.Errorf("%w: %d", ErrModuleIndex, i)
	}
	switch {
	case p.done[i]:
		return Completed, nil
	case i == 0 || p.done[i-1]:
		return Unlocked, nil
	default:
		return Locked, nil
	}
}

// States returns the derived state of every module.
func (p *Progress) States() []State {
	out := make([]State, len(p.done))
	for i := range p.done {
		out[i], _ = p.State(i)
	}
	return out
}

// Complete marks module i completed. It reports whether the call changed
// anything; completing an already-completed module is a no-op. Locked and
// out-of-range modules are rejected.
func (p *Progress) Complete(i int) (bool, error) {
	st, err := p.State(i)
	if err != nil {
		return false, err
	}
	switch st {
	case Locked:
		return false, fmt.Errorf("%w: %d", ErrModuleLocked, i)
	case Completed:
		return false, nil
	}
	p.done[i] = true
	return true, nil
}

// AllComplete reports whether every module is completed.
func (p *Progress) AllComplete() bool {
	if len(p.done) == 0 {
		return false
	}
	for _, d := range p.done {
		if !d {
			return false
		}
	}
	return true
}

// ClaimBonus returns true exactly once per roadmap: the first time it is
// called after every module is completed.
func (p *Progress) ClaimBonus() bool {
	if p.bonusAwarded || !p.AllComplete() {
		return false
	}
	p.bonusAwarded = true
	return true
}

// BonusAwarded reports whether the completion bonus has been paid.
func (p *Progress) BonusAwarded() bool {
	return p.bonusAwarded
}

// CompletedCount returns the number of completed modules.
func (p *Progress) CompletedCount() int {
	n := 0
	for _, d := range p.done {
		if d {
			n++
		}
	}
	return n
}

// Current returns the first module that is not completed, or -1 when the
// roadmap is finished.
func (p *Progress) Current() int {
	for i, d := range p.done {
		if !d {
			return i
		}
	}
	return -1
}

// Done returns a copy of the completion vector for persistence.
func (p *Progress) Done() []bool {
	out := make([]bool, len(p.done))
	copy(out, p.done)
	return out
}
