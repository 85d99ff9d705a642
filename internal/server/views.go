package server

import (
	"time"

	"github.com/khalari/khalari/internal/engine"
	"github.com/khalari/khalari/internal/learner"
	"github.com/khalari/khalari/internal/quiz"
)

type profileView struct {
	Name               string `json:"name"`
	Bio                string `json:"bio"`
	Phone              string `json:"phone,omitempty"`
	PreferredLanguage  string `json:"preferredLanguage"`
	AccountCreated     string `json:"accountCreated"`
	Diamonds           int    `json:"diamonds"`
	CurrentStreak      int    `json:"currentStreak"`
	HighestStreak      int    `json:"highestStreak"`
	LastActivityDate   string `json:"lastActivityDate,omitempty"`
	BypassAttemptsUsed int    `json:"bypassAttemptsUsed"`
}

func newProfileView(l learner.Learner) profileView {
	v := profileView{
		Name:               l.Name,
		Bio:                l.Bio,
		Phone:              l.Phone,
		PreferredLanguage:  l.PreferredLanguage,
		AccountCreated:     l.CreatedAt.UTC().Format(time.RFC3339),
		Diamonds:           l.Balance,
		CurrentStreak:      l.CurrentStreak,
		HighestStreak:      l.HighestStreak,
		BypassAttemptsUsed: l.BypassAttemptsUsed,
	}
	if !l.LastActivity.IsZero() {
		v.LastActivityDate = l.LastActivity.Format(time.DateOnly)
	}
	return v
}

type moduleView struct {
	Index       int      `json:"index"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Concepts    []string `json:"concepts"`
	VideoQuery  string   `json:"videoQuery"`
	State       string   `json:"state"`
}

type roadmapView struct {
	ID            string       `json:"id"`
	Topic         string       `json:"topic"`
	Language      string       `json:"language"`
	CreatedAt     string       `json:"createdAt"`
	Modules       []moduleView `json:"modules"`
	FurtherTopics []string     `json:"furtherTopics"`
	Completed     int          `json:"completed"`
	BonusAwarded  bool         `json:"bonusAwarded"`
}

func newRoadmapView(s engine.Snapshot) roadmapView {
	rm := s.Roadmap
	v := roadmapView{
		ID:            rm.ID,
		Topic:         rm.Topic,
		Language:      rm.Language,
		CreatedAt:     rm.CreatedAt.UTC().Format(time.RFC3339),
		Modules:       make([]moduleView, len(rm.Modules)),
		FurtherTopics: rm.FurtherTopics,
		Completed:     s.Completed(),
		BonusAwarded:  s.Bonus,
	}
	for i, m := range rm.Modules {
		v.Modules[i] = moduleView{
			Index:       i,
			Title:       m.Title,
			Description: m.Description,
			Concepts:    m.Concepts,
			VideoQuery:  m.VideoQuery,
		}
		if i < len(s.States) {
			v.Modules[i].State = s.States[i].String()
		}
	}
	return v
}

type activityView struct {
	Date               string `json:"date"`
	TimeSpentSeconds   int64  `json:"timeSpentSeconds"`
	CompletedAnyModule bool   `json:"completedAnyModule"`
}

func newActivityViews(entries []learner.ActivityEntry) []activityView {
	out := make([]activityView, len(entries))
	for i, e := range entries {
		out[i] = activityView{
			Date:               e.Date.Format(time.DateOnly),
			TimeSpentSeconds:   e.TimeSpentSeconds,
			CompletedAnyModule: e.CompletedAnyModule,
		}
	}
	return out
}

type outcomeView struct {
	Module       int    `json:"module"`
	Path         string `json:"path"`
	Completed    bool   `json:"completed"`
	Passed       bool   `json:"passed,omitempty"`
	Won          bool   `json:"won,omitempty"`
	StreakCredit int    `json:"streakCredit"`
	BypassDebit  int    `json:"bypassDebit"`
	Bonus        int    `json:"bonus"`
	Net          int    `json:"net"`
	Diamonds     int    `json:"diamonds"`
	Streak       int    `json:"streak"`
}

func newOutcomeView(o engine.Outcome, l learner.Learner) outcomeView {
	return outcomeView{
		Module:       o.Module,
		Path:         o.Path,
		Completed:    o.Completed,
		Passed:       o.Passed,
		Won:          o.Won,
		StreakCredit: o.StreakCredit,
		BypassDebit:  o.BypassDebit,
		Bonus:        o.Bonus,
		Net:          o.Net(),
		Diamonds:     l.Balance,
		Streak:       l.CurrentStreak,
	}
}

// questionView hides the correct option until the quiz is graded.
type questionView struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

type quizView struct {
	SessionID          string         `json:"sessionId"`
	Module             int            `json:"module"`
	SecondsPerQuestion int            `json:"secondsPerQuestion"`
	Questions          []questionView `json:"questions"`
}

type gradedView struct {
	Correct int          `json:"correct"`
	Total   int          `json:"total"`
	Score   float64      `json:"score"`
	Passed  bool         `json:"passed"`
	Review  []reviewView `json:"review"`
	Outcome outcomeView  `json:"outcome"`
}

type reviewView struct {
	Question    string `json:"question"`
	Answer      int    `json:"answer"`
	Correct     int    `json:"correct"`
	Explanation string `json:"explanation,omitempty"`
}

func newReview(qs []quiz.Question, res quiz.Result) []reviewView {
	out := make([]reviewView, len(qs))
	for i, q := range qs {
		out[i] = reviewView{Question: q.Prompt, Answer: res.Answers[i], Correct: q.Correct, Explanation: q.Explanation}
	}
	return out
}
