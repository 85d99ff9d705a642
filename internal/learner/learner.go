// Package learner holds the learner aggregate and the pure rules that move
// its gamification state: daily streaks, the diamond balance and the
// per-day activity ledger.
package learner

import (
	"errors"
	"strings"
	"time"
)

// Profile defaults applied when a learner is created.
const (
	DefaultName     = "New User"
	DefaultBio      = "Lifelong learner exploring the world of code and design."
	DefaultLanguage = "English"
)

// ErrInvalidAmount is returned when a purchase credits a non-positive amount.
var ErrInvalidAmount = errors.New("purchase amount must be positive")

// Learner is the identity plus gamification state of the single local user.
type Learner struct {
	Name              string
	Bio               string
	Phone             string // optional
	PreferredLanguage string
	CreatedAt         time.Time

	// Balance is the diamond count. The bypass penalty can push it below zero.
	Balance       int
	CurrentStreak int
	HighestStreak int

	// LastActivity is the calendar day of the last completion, zero if none.
	LastActivity time.Time

	// BypassAttemptsUsed counts bypass attempts since the current roadmap started.
	BypassAttemptsUsed int
}

// New creates a learner with zero gamification state. Empty fields fall back
// to the profile defaults so no read site has to handle them.
func New(name, language string, now time.Time) Learner {
	l := Learner{
		Name:              strings.TrimSpace(name),
		PreferredLanguage: language,
		CreatedAt:         now,
	}
	return l.WithDefaults()
}

// WithDefaults fills empty display fields. Loaded records go through it too.
func (l Learner) WithDefaults() Learner {
	if l.Name == "" {
		l.Name = DefaultName
	}
	if l.Bio == "" {
		l.Bio = DefaultBio
	}
	if _, ok := languageCodes[l.PreferredLanguage]; !ok {
		l.PreferredLanguage = DefaultLanguage
	}
	return l
}

// HasActivity reports whether the learner has ever completed a module.
func (l Learner) HasActivity() bool {
	return !l.LastActivity.IsZero()
}

// Edit is a profile update. Nil fields are left unchanged.
type Edit struct {
	Name     *string
	Bio      *string
	Phone    *string
	Language *string
}

// Apply returns the learner with the edit applied. Gamification state is
// never touched by profile edits.
func (l Learner) Apply(e Edit) Learner {
	if e.Name != nil {
		l.Name = strings.TrimSpace(*e.Name)
	}
	if e.Bio != nil {
		l.Bio = strings.TrimSpace(*e.Bio)
	}
	if e.Phone != nil {
		l.Phone = strings.TrimSpace(*e.Phone)
	}
	if e.Language != nil {
		l.PreferredLanguage = *e.Language
	}
	return l.WithDefaults()
}

// DayOf truncates t to its calendar day in t's own location and returns that
// day as UTC midnight, so days compare with Equal and step with AddDate.
func DayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
