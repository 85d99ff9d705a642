package learner

import (
	"errors"
	"testing"
	"time"
)

func TestCreditForStreak(t *testing.T) {
	tests := []struct {
		name     string
		previous int
		current  int
		want     int
	}{
		{"reaches 7", 6, 7, StreakReward},
		{"reaches 14", 13, 14, StreakReward},
		{"unchanged at 7", 7, 7, 0},
		{"not a multiple", 4, 5, 0},
		{"reset to 1", 9, 1, 0},
		{"zero", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Learner{Balance: 100, CurrentStreak: tt.current}
			got, credited := CreditForStreak(l, tt.previous)
			if credited != tt.want {
				t.Errorf("credited = %d, want %d", credited, tt.want)
			}
			if got.Balance != 100+tt.want {
				t.Errorf("Balance = %d, want %d", got.Balance, 100+tt.want)
			}
		})
	}
}

func TestStreakCreditOncePerMilestone(t *testing.T) {
	l := Learner{}
	start := day(2025, 1, 1)
	// 14 consecutive days, each with two completions.
	for i := 0; i < 14; i++ {
		for j := 0; j < 2; j++ {
			prev := l.CurrentStreak
			l = RecordCompletion(l, start.AddDate(0, 0, i))
			l, _ = CreditForStreak(l, prev)
		}
	}
	if l.Balance != 2*StreakReward {
		t.Errorf("Balance = %d, want %d", l.Balance, 2*StreakReward)
	}
}

func TestStreakSixToSeven(t *testing.T) {
	today := day(2025, 5, 20)
	l := Learner{CurrentStreak: 6, HighestStreak: 6, LastActivity: today.AddDate(0, 0, -1)}

	prev := l.CurrentStreak
	l = RecordCompletion(l, today)
	l, credited := CreditForStreak(l, prev)

	if l.CurrentStreak != 7 || credited != 20 || l.Balance != 20 {
		t.Errorf("got streak=%d credited=%d balance=%d, want 7/20/20", l.CurrentStreak, credited, l.Balance)
	}
	if !l.LastActivity.Equal(today) {
		t.Errorf("LastActivity = %v, want %v", l.LastActivity, today)
	}
}

func TestDebitForBypass(t *testing.T) {
	l := Learner{Balance: 10}
	wantDebits := []int{0, 0, 0, 20, 20}
	for i, want := range wantDebits {
		var debit int
		l, debit = DebitForBypass(l)
		if debit != want {
			t.Errorf("attempt %d: debit = %d, want %d", i+1, debit, want)
		}
		if l.BypassAttemptsUsed != i+1 {
			t.Errorf("attempt %d: BypassAttemptsUsed = %d", i+1, l.BypassAttemptsUsed)
		}
	}
	if l.Balance != -30 {
		t.Errorf("Balance = %d, want -30 (no floor)", l.Balance)
	}
}

func TestPurchase(t *testing.T) {
	l := Learner{Balance: 5}

	got, err := Purchase(l, 120)
	if err != nil {
		t.Fatalf("Purchase: %v", err)
	}
	if got.Balance != 125 {
		t.Errorf("Balance = %d, want 125", got.Balance)
	}

	for _, amount := range []int{0, -10} {
		got, err := Purchase(l, amount)
		if !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("Purchase(%d) err = %v, want ErrInvalidAmount", amount, err)
		}
		if got.Balance != 5 {
			t.Errorf("Purchase(%d) changed balance to %d", amount, got.Balance)
		}
	}
}

func TestNewDefaults(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	l := New("  ", "Klingon", now)
	if l.Name != DefaultName || l.Bio != DefaultBio || l.PreferredLanguage != DefaultLanguage {
		t.Errorf("defaults not applied: %+v", l)
	}
	if l.Balance != 0 || l.CurrentStreak != 0 || l.HasActivity() {
		t.Errorf("gamification state not zero: %+v", l)
	}

	l = New("Asha", "Tamil", now)
	if l.Name != "Asha" || LanguageCode(l.PreferredLanguage) != "ta" {
		t.Errorf("got %q/%q", l.Name, l.PreferredLanguage)
	}
}

func TestApplyEdit(t *testing.T) {
	l := New("Asha", "Hindi", time.Now())
	l.Balance = 40
	name, bio := "Asha R", ""
	got := l.Apply(Edit{Name: &name, Bio: &bio})
	if got.Name != "Asha R" {
		t.Errorf("Name = %q", got.Name)
	}
	if got.Bio != DefaultBio {
		t.Errorf("empty bio should fall back to default, got %q", got.Bio)
	}
	if got.Balance != 40 || got.PreferredLanguage != "Hindi" {
		t.Errorf("edit touched unrelated fields: %+v", got)
	}
}
