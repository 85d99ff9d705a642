package learner

import "time"

// RecordCompletion advances the daily streak for a completion on today.
// Repeated completions on the same day leave the streak untouched; a
// completion the day after the last one extends it; any other gap restarts
// it at 1.
func RecordCompletion(l Learner, today time.Time) Learner {
	today = DayOf(today)

	switch {
	case l.HasActivity() && l.LastActivity.Equal(today):
		// same day
	case l.HasActivity() && l.LastActivity.AddDate(0, 0, 1).Equal(today):
		l.CurrentStreak++
	default:
		l.CurrentStreak = 1
	}

	if l.CurrentStreak > l.HighestStreak {
		l.HighestStreak = l.CurrentStreak
	}
	l.LastActivity = today
	return l
}

// StreakBroken reports whether the streak would restart on the next
// completion, i.e. the learner missed at least one full day.
func StreakBroken(l Learner, today time.Time) bool {
	if !l.HasActivity() {
		return false
	}
	return DayOf(today).After(l.LastActivity.AddDate(0, 0, 1))
}
