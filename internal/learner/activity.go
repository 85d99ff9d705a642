package learner

import (
	"sort"
	"time"
)

// ActivityEntry is the learning activity of a single calendar day.
type ActivityEntry struct {
	Date               time.Time
	TimeSpentSeconds   int64
	CompletedAnyModule bool
}

// Merge folds o into e: time adds up and the completion flag is sticky.
func (e ActivityEntry) Merge(o ActivityEntry) ActivityEntry {
	e.TimeSpentSeconds += o.TimeSpentSeconds
	e.CompletedAnyModule = e.CompletedAnyModule || o.CompletedAnyModule
	return e
}

// Ledger keeps at most one ActivityEntry per day.
type Ledger struct {
	byDay map[time.Time]ActivityEntry
}

// NewLedger builds a ledger from stored entries, merging duplicates.
func NewLedger(entries ...ActivityEntry) *Ledger {
	l := &Ledger{byDay: make(map[time.Time]ActivityEntry, len(entries))}
	for _, e := range entries {
		l.Record(e)
	}
	return l
}

// Record merges e into the entry for its day and returns the merged entry.
func (l *Ledger) Record(e ActivityEntry) ActivityEntry {
	e.Date = DayOf(e.Date)
	if e.TimeSpentSeconds < 0 {
		e.TimeSpentSeconds = 0
	}
	if cur, ok := l.byDay[e.Date]; ok {
		e = cur.Merge(e)
	}
	l.byDay[e.Date] = e
	return e
}

// Entry returns the entry for day, zero-valued with Date set when absent.
func (l *Ledger) Entry(day time.Time) ActivityEntry {
	day = DayOf(day)
	if e, ok := l.byDay[day]; ok {
		return e
	}
	return ActivityEntry{Date: day}
}

// Entries returns every entry ordered by date.
func (l *Ledger) Entries() []ActivityEntry {
	out := make([]ActivityEntry, 0, len(l.byDay))
	for _, e := range l.byDay {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// LastDays returns n consecutive entries ending on today, oldest first.
// Days without activity appear as zero entries.
func (l *Ledger) LastDays(today time.Time, n int) []ActivityEntry {
	today = DayOf(today)
	out := make([]ActivityEntry, 0, n)
	for i := n - 1; i >= 0; i-- {
		out = append(out, l.Entry(today.AddDate(0, 0, -i)))
	}
	return out
}

// CompletionDays counts days with at least one completed module.
func (l *Ledger) CompletionDays() int {
	n := 0
	for _, e := range l.byDay {
		if e.CompletedAnyModule {
			n++
		}
	}
	return n
}

// TotalTime sums the time spent across all days.
func (l *Ledger) TotalTime() time.Duration {
	var total int64
	for _, e := range l.byDay {
		total += e.TimeSpentSeconds
	}
	return time.Duration(total) * time.Second
}
