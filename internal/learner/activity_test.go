package learner

import (
	"testing"
	"time"
)

func TestLedgerMergesByDate(t *testing.T) {
	l := NewLedger()
	morning := time.Date(2025, 4, 2, 8, 0, 0, 0, time.UTC)

	l.Record(ActivityEntry{Date: morning, TimeSpentSeconds: 60})
	l.Record(ActivityEntry{Date: morning.Add(4 * time.Hour), TimeSpentSeconds: 30, CompletedAnyModule: true})
	merged := l.Record(ActivityEntry{Date: morning.Add(8 * time.Hour), TimeSpentSeconds: 10})

	if merged.TimeSpentSeconds != 100 {
		t.Errorf("TimeSpentSeconds = %d, want 100", merged.TimeSpentSeconds)
	}
	if !merged.CompletedAnyModule {
		t.Error("CompletedAnyModule should stay true once set")
	}
	if n := len(l.Entries()); n != 1 {
		t.Errorf("entries = %d, want 1", n)
	}
}

func TestLedgerLastDays(t *testing.T) {
	today := day(2025, 4, 10)
	l := NewLedger(
		ActivityEntry{Date: today, TimeSpentSeconds: 5},
		ActivityEntry{Date: today.AddDate(0, 0, -3), TimeSpentSeconds: 7, CompletedAnyModule: true},
		ActivityEntry{Date: today.AddDate(0, 0, -30), TimeSpentSeconds: 99},
	)

	days := l.LastDays(today, 7)
	if len(days) != 7 {
		t.Fatalf("len = %d, want 7", len(days))
	}
	if !days[0].Date.Equal(today.AddDate(0, 0, -6)) || !days[6].Date.Equal(today) {
		t.Errorf("range = %v..%v", days[0].Date, days[6].Date)
	}
	if days[3].TimeSpentSeconds != 7 || days[6].TimeSpentSeconds != 5 {
		t.Errorf("unexpected values: %+v", days)
	}
	if l.CompletionDays() != 1 {
		t.Errorf("CompletionDays = %d, want 1", l.CompletionDays())
	}
	if l.TotalTime() != 111*time.Second {
		t.Errorf("TotalTime = %v", l.TotalTime())
	}
}

func TestLedgerClampsNegativeTime(t *testing.T) {
	l := NewLedger()
	got := l.Record(ActivityEntry{Date: day(2025, 1, 1), TimeSpentSeconds: -5})
	if got.TimeSpentSeconds != 0 {
		t.Errorf("TimeSpentSeconds = %d, want 0", got.TimeSpentSeconds)
	}
}
