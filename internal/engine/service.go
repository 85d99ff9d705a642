package engine

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/khalari/khalari/internal/learner"
	"github.com/khalari/khalari/internal/metrics"
	"github.com/khalari/khalari/internal/quiz"
	"github.com/khalari/khalari/internal/roadmap"
	"github.com/khalari/khalari/internal/store"
)

// activityWindow bounds how much history Load reads into the ledger.
const activityWindow = 366

// Repos are the stores a Service persists to. Nil repos are skipped.
type Repos struct {
	Learners store.LearnerRepo
	Activity store.ActivityRepo
	Roadmaps store.RoadmapRepo
	Events   store.EventRepo
}

// Service serializes access to an Engine and persists every transition.
// Persistence is best-effort: a failed write is logged and the in-memory
// state stands.
type Service struct {
	mu        sync.Mutex
	eng       *Engine
	repos     Repos
	logger    *zap.Logger
	now       func() time.Time
	onboarded bool
}

// NewService creates a Service with an empty learner. Call Load to read
// persisted state. logger may be nil.
func NewService(repos Repos, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		repos:  repos,
		logger: logger.Named("engine"),
		now:    time.Now,
	}
	s.eng = New(learner.New("", "", s.now()), nil)
	return s
}

// SetClock overrides the time source.
func (s *Service) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Load reads the learner, recent activity and the active roadmap.
func (s *Service) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	eng := New(learner.New("", "", now), nil)
	onboarded := false

	if s.repos.Learners != nil {
		rec, err := s.repos.Learners.Get(ctx)
		if err != nil {
			return err
		}
		if rec != nil {
			eng.Learner = learnerFromRecord(*rec)
			onboarded = true
		}
	}

	if s.repos.Activity != nil {
		since := formatDay(now.AddDate(0, 0, -activityWindow))
		recs, err := s.repos.Activity.Since(ctx, since)
		if err != nil {
			return err
		}
		for _, r := range recs {
			eng.Activity.Record(activityFromRecord(r))
		}
	}

	if s.repos.Roadmaps != nil {
		rec, err := s.repos.Roadmaps.Active(ctx)
		if err != nil {
			return err
		}
		if rec != nil {
			rm, p := RoadmapFromRecord(*rec)
			if err := eng.Restore(rm, p); err != nil {
				s.logger.Warn("ignoring stored roadmap", zap.String("roadmap_id", rec.ID), zap.Error(err))
			}
		}
	}

	s.eng = eng
	s.onboarded = onboarded
	return nil
}

// Onboarded reports whether a learner profile exists.
func (s *Service) Onboarded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.onboarded
}

// Onboard creates the learner profile, replacing any existing one.
func (s *Service) Onboard(ctx context.Context, name, phone, language string) learner.Learner {
	s.mu.Lock()
	defer s.mu.Unlock()

	l := learner.New(name, language, s.now())
	l.Phone = phone
	s.eng.Learner = l
	s.onboarded = true
	s.saveLearner(ctx)
	return l
}

// Snapshot is a consistent read-only view of the engine.
type Snapshot struct {
	Learner  learner.Learner
	Roadmap  *roadmap.Roadmap // nil when none; never mutated
	States   []roadmap.State
	Bonus    bool
	Activity []learner.ActivityEntry
}

// Completed returns the number of completed modules.
func (s Snapshot) Completed() int {
	n := 0
	for _, st := range s.States {
		if st == roadmap.Completed {
			n++
		}
	}
	return n
}

// Snapshot returns the current state.
func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Learner:  s.eng.Learner,
		Roadmap:  s.eng.Roadmap,
		Activity: s.eng.Activity.Entries(),
	}
	if s.eng.Progress != nil {
		snap.States = s.eng.Progress.States()
		snap.Bonus = s.eng.Progress.BonusAwarded()
	}
	return snap
}

// Learner returns the current learner.
func (s *Service) Learner() learner.Learner {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eng.Learner
}

// LastDays returns the ledger entries for the n days ending today.
func (s *Service) LastDays(n int) []learner.ActivityEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eng.Activity.LastDays(s.now(), n)
}

// Module returns module i and its state.
func (s *Service) Module(i int) (roadmap.Module, roadmap.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.eng.Roadmap == nil {
		return roadmap.Module{}, roadmap.Locked, ErrNoRoadmap
	}
	m, err := s.eng.Roadmap.Module(i)
	if err != nil {
		return roadmap.Module{}, roadmap.Locked, err
	}
	st, err := s.eng.ModuleState(i)
	return m, st, err
}

// StartRoadmap replaces the active roadmap.
func (s *Service) StartRoadmap(ctx context.Context, rm *roadmap.Roadmap) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.eng.StartRoadmap(rm); err != nil {
		return err
	}
	s.logger.Info("roadmap started",
		zap.String("roadmap_id", rm.ID),
		zap.String("topic", rm.Topic),
		zap.Int("modules", rm.Len()))

	if s.repos.Roadmaps != nil {
		if err := s.repos.Roadmaps.Create(ctx, roadmapToRecord(rm, s.eng.Progress)); err != nil {
			s.logger.Warn("failed to persist roadmap", zap.String("roadmap_id", rm.ID), zap.Error(err))
		}
	}
	s.saveLearner(ctx)
	return nil
}

// CheckQuiz reports whether a quiz may be started for module i.
func (s *Service) CheckQuiz(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eng.CheckQuiz(i)
}

// CheckBypass reports whether a bypass may be started for module i.
func (s *Service) CheckBypass(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eng.CheckBypass(i)
}

// CompleteByQuiz applies a quiz result for module i.
func (s *Service) CompleteByQuiz(ctx context.Context, i int, res quiz.Result) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out, err := s.eng.CompleteByQuiz(i, res, s.now())
	if err != nil {
		return out, err
	}

	result := "fail"
	if res.Passed {
		result = "pass"
	}
	metrics.QuizAttempts.WithLabelValues(result).Inc()

	s.record(ctx, out)
	return out, nil
}

// Bypass applies a finished mini-game for module i.
func (s *Service) Bypass(ctx context.Context, i int, won bool) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out, err := s.eng.Bypass(i, won, s.now())
	if err != nil {
		return out, err
	}

	outcome := "lost"
	if won {
		outcome = "won"
	}
	metrics.BypassAttempts.WithLabelValues(outcome).Inc()
	metrics.Debit("bypass", out.BypassDebit)

	s.record(ctx, out)
	return out, nil
}

// record logs, counts and persists the effects of a module transition.
func (s *Service) record(ctx context.Context, out Outcome) {
	if out.Completed {
		metrics.ModuleCompletions.WithLabelValues(out.Path).Inc()
		s.logger.Info("module completed",
			zap.Int("module", out.Module),
			zap.String("path", out.Path),
			zap.Int("streak", s.eng.Learner.CurrentStreak),
			zap.Int("net_diamonds", out.Net()))
	}
	metrics.Credit("streak", out.StreakCredit)
	metrics.Credit("completion", out.Bonus)

	if out.Activity != nil {
		s.appendActivity(ctx, learner.ActivityEntry{Date: out.Activity.Date, CompletedAnyModule: true})
	}
	if out.ProgressChanged {
		s.saveProgress(ctx)
	}
	// Bypass attempts always move the attempt counter.
	if out.Completed || out.Bonus > 0 || out.Path == PathBypass {
		s.saveLearner(ctx)
	}
}

// LogTime adds study time to today's activity entry.
func (s *Service) LogTime(ctx context.Context, d time.Duration) learner.ActivityEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	entry := s.eng.LogTime(d, now)
	if secs := int64(d / time.Second); secs > 0 {
		s.appendActivity(ctx, learner.ActivityEntry{Date: now, TimeSpentSeconds: secs})
	}
	return entry
}

// Purchase credits a confirmed diamond purchase. A payment ID seen before
// is ignored and reported as not credited.
func (s *Service) Purchase(ctx context.Context, p store.PurchaseData) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.Diamonds <= 0 {
		return false, learner.ErrInvalidAmount
	}
	if s.repos.Events != nil && p.PaymentID != "" {
		fresh, err := s.repos.Events.AppendPurchase(ctx, p)
		switch {
		case err != nil:
			s.logger.Warn("failed to record purchase", zap.String("payment_id", p.PaymentID), zap.Error(err))
		case !fresh:
			s.logger.Info("duplicate payment ignored", zap.String("payment_id", p.PaymentID))
			return false, nil
		}
	}

	if err := s.eng.Purchase(p.Diamonds); err != nil {
		return false, err
	}
	metrics.Credit("purchase", p.Diamonds)
	s.logger.Info("diamonds purchased",
		zap.String("payment_id", p.PaymentID),
		zap.String("pack", p.PackID),
		zap.Int("diamonds", p.Diamonds))
	s.saveLearner(ctx)
	return true, nil
}

// UpdateProfile applies a profile edit.
func (s *Service) UpdateProfile(ctx context.Context, edit learner.Edit) learner.Learner {
	s.mu.Lock()
	defer s.mu.Unlock()

	l := s.eng.UpdateProfile(edit)
	s.saveLearner(ctx)
	return l
}

func (s *Service) saveLearner(ctx context.Context) {
	if s.repos.Learners == nil {
		return
	}
	if err := s.repos.Learners.Save(ctx, learnerToRecord(s.eng.Learner)); err != nil {
		s.logger.Warn("failed to persist learner", zap.Error(err))
	}
}

func (s *Service) saveProgress(ctx context.Context) {
	if s.repos.Roadmaps == nil || s.eng.Roadmap == nil {
		return
	}
	p := s.eng.Progress
	if err := s.repos.Roadmaps.SaveProgress(ctx, s.eng.Roadmap.ID, p.Done(), p.BonusAwarded()); err != nil {
		s.logger.Warn("failed to persist progress", zap.String("roadmap_id", s.eng.Roadmap.ID), zap.Error(err))
	}
}

// appendActivity persists a delta; the store merges it into the day.
func (s *Service) appendActivity(ctx context.Context, delta learner.ActivityEntry) {
	if s.repos.Activity == nil {
		return
	}
	if err := s.repos.Activity.Append(ctx, activityToRecord(delta)); err != nil {
		s.logger.Warn("failed to persist activity", zap.Error(err))
	}
}
