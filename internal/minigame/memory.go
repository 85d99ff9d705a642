// Package minigame implements the memory-match game that decides a module
// bypass attempt.
package minigame

import (
	"errors"
	"math/rand"
	"time"
)

const (
	// Pairs is the number of icon pairs on a full board.
	Pairs = 30

	// TimeLimit is how long the learner has to clear the board.
	TimeLimit = 180 * time.Second

	// MismatchDelay is how long a mismatched pair stays face up.
	MismatchDelay = time.Second
)

// Icons are the card faces, one per pair.
var Icons = []string{
	"⚛", "🧬", "🔬", "💻", "🚀", "💡", "📚", "📈", "🧠", "⚙",
	"🌍", "⚡", "🔗", "🎯", "🔑", "📉", "📊", "🛰", "🧭", "🔭",
	"🧪", "⚗", "🧮", "✒", "📏", "📐", "📎", "📌", "📍", "📖",
}

var ErrGameOver = errors.New("game is over")

// Status is the lifecycle state of a game.
type Status int

const (
	Playing Status = iota
	Won
	Lost
)

func (s Status) String() string {
	switch s {
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "playing"
	}
}

// Card is one face of the board.
type Card struct {
	Face    int // index into Icons
	Flipped bool
	Matched bool
}

// Game is a memory-match board. Flip two cards: equal faces stay up, a
// mismatch turns back over after MismatchDelay or on the next flip.
type Game struct {
	Cards    []Card
	status   Status
	deadline time.Time
	pending  []int
	shownAt  time.Time
	moves    int
}

// New deals a shuffled board of pairs using rng. pairs is clamped to the
// number of available icons.
func New(pairs int, rng *rand.Rand, now time.Time) *Game {
	if pairs <= 0 || pairs > len(Icons) {
		pairs = len(Icons)
	}
	cards := make([]Card, 0, 2*pairs)
	for i := 0; i < pairs; i++ {
		cards = append(cards, Card{Face: i}, Card{Face: i})
	}
	rng.Shuffle(len(cards), func(i, j int) { cards[i], cards[j] = cards[j], cards[i] })
	return &Game{Cards: cards, deadline: now.Add(TimeLimit)}
}

// Status returns the current game status.
func (g *Game) Status() Status { return g.status }

// Moves returns the number of pair attempts made.
func (g *Game) Moves() int { return g.moves }

// Remaining returns the time left on the clock.
func (g *Game) Remaining(now time.Time) time.Duration {
	if g.status != Playing {
		return 0
	}
	if d := g.deadline.Sub(now); d > 0 {
		return d
	}
	return 0
}

// Matched returns the number of matched pairs.
func (g *Game) Matched() int {
	n := 0
	for _, c := range g.Cards {
		if c.Matched {
			n++
		}
	}
	return n / 2
}

// Flip turns card i face up. Flipping a face-up card, or any card while the
// game is over, is ignored; the latter returns ErrGameOver.
func (g *Game) Flip(i int, now time.Time) error {
	if g.Tick(now); g.status != Playing {
		return ErrGameOver
	}
	if i < 0 || i >= len(g.Cards) {
		return nil
	}
	if len(g.pending) == 2 {
		g.hidePending()
	}
	c := &g.Cards[i]
	if c.Flipped || c.Matched {
		return nil
	}
	c.Flipped = true
	g.pending = append(g.pending, i)
	if len(g.pending) < 2 {
		return nil
	}

	g.moves++
	a, b := &g.Cards[g.pending[0]], &g.Cards[g.pending[1]]
	if a.Face == b.Face {
		a.Matched, b.Matched = true, true
		g.pending = g.pending[:0]
		if g.Matched()*2 == len(g.Cards) {
			g.status = Won
		}
		return nil
	}
	g.shownAt = now
	return nil
}

// Tick applies the clock: a mismatched pair turns back after MismatchDelay
// and the game is lost once the time limit passes.
func (g *Game) Tick(now time.Time) {
	if g.status != Playing {
		return
	}
	if len(g.pending) == 2 && now.Sub(g.shownAt) >= MismatchDelay {
		g.hidePending()
	}
	if !now.Before(g.deadline) {
		g.status = Lost
	}
}

// Forfeit ends the game as lost.
func (g *Game) Forfeit() {
	if g.status == Playing {
		g.status = Lost
	}
}

func (g *Game) hidePending() {
	for _, idx := range g.pending {
		g.Cards[idx].Flipped = false
	}
	g.pending = g.pending[:0]
}
