package learner

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRecordCompletion(t *testing.T) {
	today := day(2025, 3, 10)

	tests := []struct {
		name        string
		last        time.Time
		streak      int
		highest     int
		wantStreak  int
		wantHighest int
	}{
		{"first ever", time.Time{}, 0, 0, 1, 1},
		{"same day", today, 4, 6, 4, 6},
		{"yesterday", today.AddDate(0, 0, -1), 4, 4, 5, 5},
		{"yesterday below highest", today.AddDate(0, 0, -1), 2, 9, 3, 9},
		{"two day gap", today.AddDate(0, 0, -2), 8, 8, 1, 8},
		{"long gap", today.AddDate(0, -2, 0), 30, 30, 1, 30},
		{"future last date", today.AddDate(0, 0, 3), 5, 5, 1, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Learner{CurrentStreak: tt.streak, HighestStreak: tt.highest, LastActivity: tt.last}
			got := RecordCompletion(l, today)
			if got.CurrentStreak != tt.wantStreak {
				t.Errorf("CurrentStreak = %d, want %d", got.CurrentStreak, tt.wantStreak)
			}
			if got.HighestStreak != tt.wantHighest {
				t.Errorf("HighestStreak = %d, want %d", got.HighestStreak, tt.wantHighest)
			}
			if !got.LastActivity.Equal(today) {
				t.Errorf("LastActivity = %v, want %v", got.LastActivity, today)
			}
		})
	}
}

func TestRecordCompletionSameDayIdempotent(t *testing.T) {
	l := Learner{CurrentStreak: 3, HighestStreak: 3, LastActivity: day(2025, 1, 1)}
	now := time.Date(2025, 1, 2, 9, 30, 0, 0, time.UTC)

	once := RecordCompletion(l, now)
	twice := RecordCompletion(once, now.Add(5*time.Hour))

	if once != twice {
		t.Errorf("second completion changed learner: %+v -> %+v", once, twice)
	}
	if once.CurrentStreak != 4 {
		t.Errorf("CurrentStreak = %d, want 4", once.CurrentStreak)
	}
}

func TestRecordCompletionMonthBoundary(t *testing.T) {
	l := Learner{CurrentStreak: 1, HighestStreak: 1, LastActivity: day(2024, 2, 29)}
	got := RecordCompletion(l, day(2024, 3, 1))
	if got.CurrentStreak != 2 {
		t.Errorf("CurrentStreak = %d, want 2 across leap-day boundary", got.CurrentStreak)
	}
}

func TestHighestNeverBelowCurrent(t *testing.T) {
	l := Learner{}
	start := day(2025, 6, 1)
	// Mix of consecutive days, repeats and gaps.
	offsets := []int{0, 1, 1, 2, 3, 7, 8, 9, 10, 10, 11, 20, 21}
	for _, off := range offsets {
		l = RecordCompletion(l, start.AddDate(0, 0, off))
		if l.HighestStreak < l.CurrentStreak {
			t.Fatalf("day +%d: highest %d < current %d", off, l.HighestStreak, l.CurrentStreak)
		}
	}
	if l.HighestStreak != 5 {
		t.Errorf("HighestStreak = %d, want 5", l.HighestStreak)
	}
}

func TestStreakBroken(t *testing.T) {
	today := day(2025, 3, 10)
	tests := []struct {
		last time.Time
		want bool
	}{
		{time.Time{}, false},
		{today, false},
		{today.AddDate(0, 0, -1), false},
		{today.AddDate(0, 0, -2), true},
	}
	for _, tt := range tests {
		if got := StreakBroken(Learner{LastActivity: tt.last}, today); got != tt.want {
			t.Errorf("StreakBroken(last=%v) = %v, want %v", tt.last, got, tt.want)
		}
	}
}
