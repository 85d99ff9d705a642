package learner

// Diamond amounts.
const (
	StreakMilestone     = 7
	StreakReward        = 20
	FreeBypassAttempts  = 3
	BypassPenalty       = 20
	FullCompletionBonus = 50
)

// CreditForStreak pays the milestone reward when the streak has just grown
// onto a positive multiple of StreakMilestone. previous is the streak before
// the completion that produced l; an unchanged streak never pays twice.
// It returns the updated learner and the amount credited.
func CreditForStreak(l Learner, previous int) (Learner, int) {
	if l.CurrentStreak <= previous {
		return l, 0
	}
	if l.CurrentStreak <= 0 || l.CurrentStreak%StreakMilestone != 0 {
		return l, 0
	}
	l.Balance += StreakReward
	return l, StreakReward
}

// DebitForBypass charges for a bypass attempt. The first FreeBypassAttempts
// are free; every later attempt costs BypassPenalty whatever its outcome.
// The attempt counter always increments. It returns the updated learner and
// the amount debited.
func DebitForBypass(l Learner) (Learner, int) {
	debit := 0
	if l.BypassAttemptsUsed >= FreeBypassAttempts {
		debit = BypassPenalty
		l.Balance -= debit
	}
	l.BypassAttemptsUsed++
	return l, debit
}

// CreditForFullCompletion pays the one-time roadmap completion bonus. The
// caller guarantees it runs at most once per roadmap.
func CreditForFullCompletion(l Learner) Learner {
	l.Balance += FullCompletionBonus
	return l
}

// Purchase credits diamonds bought through a confirmed payment.
func Purchase(l Learner, amount int) (Learner, error) {
	if amount <= 0 {
		return l, ErrInvalidAmount
	}
	l.Balance += amount
	return l, nil
}

// ResetForRoadmap clears per-roadmap counters when a new roadmap starts.
func ResetForRoadmap(l Learner) Learner {
	l.BypassAttemptsUsed = 0
	return l
}
