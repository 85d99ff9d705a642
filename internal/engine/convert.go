package engine

import (
	"time"

	"github.com/khalari/khalari/internal/learner"
	"github.com/khalari/khalari/internal/roadmap"
	"github.com/khalari/khalari/internal/store"
)

const dayLayout = time.DateOnly

func formatDay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return learner.DayOf(t).Format(dayLayout)
}

func parseDay(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func learnerToRecord(l learner.Learner) store.LearnerRecord {
	return store.LearnerRecord{
		Name:               l.Name,
		Bio:                l.Bio,
		Phone:              l.Phone,
		PreferredLanguage:  l.PreferredLanguage,
		CreatedAt:          l.CreatedAt,
		Balance:            l.Balance,
		CurrentStreak:      l.CurrentStreak,
		HighestStreak:      l.HighestStreak,
		LastActivity:       formatDay(l.LastActivity),
		BypassAttemptsUsed: l.BypassAttemptsUsed,
	}
}

func learnerFromRecord(r store.LearnerRecord) learner.Learner {
	l := learner.Learner{
		Name:               r.Name,
		Bio:                r.Bio,
		Phone:              r.Phone,
		PreferredLanguage:  r.PreferredLanguage,
		CreatedAt:          r.CreatedAt,
		Balance:            r.Balance,
		CurrentStreak:      r.CurrentStreak,
		HighestStreak:      r.HighestStreak,
		LastActivity:       parseDay(r.LastActivity),
		BypassAttemptsUsed: r.BypassAttemptsUsed,
	}
	return l.WithDefaults()
}

func activityToRecord(e learner.ActivityEntry) store.ActivityRecord {
	return store.ActivityRecord{
		Day:                formatDay(e.Date),
		TimeSpentSeconds:   e.TimeSpentSeconds,
		CompletedAnyModule: e.CompletedAnyModule,
	}
}

func activityFromRecord(r store.ActivityRecord) learner.ActivityEntry {
	return learner.ActivityEntry{
		Date:               parseDay(r.Day),
		TimeSpentSeconds:   r.TimeSpentSeconds,
		CompletedAnyModule: r.CompletedAnyModule,
	}
}

func roadmapToRecord(rm *roadmap.Roadmap, p *roadmap.Progress) store.RoadmapRecord {
	mods := make([]store.RoadmapModule, len(rm.Modules))
	for i, m := range rm.Modules {
		mods[i] = store.RoadmapModule(m)
	}
	return store.RoadmapRecord{
		ID:            rm.ID,
		Topic:         rm.Topic,
		Language:      rm.Language,
		Modules:       mods,
		FurtherTopics: rm.FurtherTopics,
		Progress:      p.Done(),
		BonusAwarded:  p.BonusAwarded(),
		Active:        true,
		CreatedAt:     rm.CreatedAt,
	}
}

// RoadmapFromRecord converts a stored roadmap back into the domain type.
func RoadmapFromRecord(r store.RoadmapRecord) (*roadmap.Roadmap, *roadmap.Progress) {
	mods := make([]roadmap.Module, len(r.Modules))
	for i, m := range r.Modules {
		mods[i] = roadmap.Module(m)
	}
	rm := &roadmap.Roadmap{
		ID:            r.ID,
		Topic:         r.Topic,
		Language:      r.Language,
		Modules:       mods,
		FurtherTopics: r.FurtherTopics,
		CreatedAt:     r.CreatedAt,
	}

	done := make([]bool, len(mods))
	copy(done, r.Progress)
	return rm, roadmap.RestoreProgress(done, r.BonusAwarded)
}
