package engine

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khalari/khalari/internal/learner"
	"github.com/khalari/khalari/internal/roadmap"
	"github.com/khalari/khalari/internal/store"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "engine.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func reposFor(st *store.Store) Repos {
	return Repos{
		Learners: st.LearnerRepo(),
		Activity: st.ActivityRepo(),
		Roadmaps: st.RoadmapRepo(),
		Events:   st.EventRepo(),
	}
}

func newService(t *testing.T, repos Repos, clock *time.Time) *Service {
	t.Helper()
	svc := NewService(repos, nil)
	svc.SetClock(func() time.Time { return *clock })
	require.NoError(t, svc.Load(context.Background()))
	return svc
}

func TestService_PersistsAndReloads(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	clock := today

	svc := newService(t, reposFor(st), &clock)
	assert.False(t, svc.Onboarded())

	svc.Onboard(ctx, "Asha", "+91 98765 43210", "Hindi")
	require.NoError(t, svc.StartRoadmap(ctx, testRoadmap(5)))

	_, err := svc.CompleteByQuiz(ctx, 0, pass())
	require.NoError(t, err)
	svc.LogTime(ctx, 10*time.Minute)

	clock = today.AddDate(0, 0, 1)
	_, err = svc.CompleteByQuiz(ctx, 1, pass())
	require.NoError(t, err)
	_, err = svc.Bypass(ctx, 2, false)
	require.NoError(t, err)

	reloaded := newService(t, reposFor(st), &clock)
	require.True(t, reloaded.Onboarded())

	snap := reloaded.Snapshot()
	assert.Equal(t, "Asha", snap.Learner.Name)
	assert.Equal(t, "Hindi", snap.Learner.PreferredLanguage)
	assert.Equal(t, 2, snap.Learner.CurrentStreak)
	assert.Equal(t, 1, snap.Learner.BypassAttemptsUsed)
	assert.True(t, snap.Learner.LastActivity.Equal(learner.DayOf(clock)))
	require.NotNil(t, snap.Roadmap)
	assert.Equal(t, "rm-5", snap.Roadmap.ID)
	assert.Equal(t, 2, snap.Completed())
	assert.Equal(t, roadmap.Unlocked, snap.States[2])

	require.Len(t, snap.Activity, 2)
	assert.Equal(t, int64(600), snap.Activity[0].TimeSpentSeconds)
	assert.True(t, snap.Activity[0].CompletedAnyModule)
	assert.True(t, snap.Activity[1].CompletedAnyModule)
}

func TestService_ModuleErrors(t *testing.T) {
	clock := today
	svc := newService(t, Repos{}, &clock)

	_, _, err := svc.Module(0)
	assert.ErrorIs(t, err, ErrNoRoadmap)

	require.NoError(t, svc.StartRoadmap(context.Background(), testRoadmap(5)))
	_, _, err = svc.Module(7)
	assert.ErrorIs(t, err, roadmap.ErrModuleIndex)

	m, state, err := svc.Module(0)
	require.NoError(t, err)
	assert.Equal(t, "Module 1", m.Title)
	assert.Equal(t, roadmap.Unlocked, state)

	assert.ErrorIs(t, svc.CheckBypass(3), roadmap.ErrModuleLocked)
	assert.NoError(t, svc.CheckQuiz(0))
}

func TestService_PurchaseDeduplicates(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	clock := today
	svc := newService(t, reposFor(st), &clock)

	p := store.PurchaseData{PaymentID: "pay_1", PackID: "student", Diamonds: 120, AmountPaise: 6900}
	credited, err := svc.Purchase(ctx, p)
	require.NoError(t, err)
	assert.True(t, credited)

	credited, err = svc.Purchase(ctx, p)
	require.NoError(t, err)
	assert.False(t, credited)
	assert.Equal(t, 120, svc.Learner().Balance)

	_, err = svc.Purchase(ctx, store.PurchaseData{PaymentID: "pay_2", Diamonds: 0})
	assert.ErrorIs(t, err, learner.ErrInvalidAmount)
}

type failingLearners struct{ saves int }

func (f *failingLearners) Get(context.Context) (*store.LearnerRecord, error) { return nil, nil }

func (f *failingLearners) Save(context.Context, store.LearnerRecord) error {
	f.saves++
	return errors.New("disk full")
}

func TestService_PersistenceFailureIsSwallowed(t *testing.T) {
	ctx := context.Background()
	fl := &failingLearners{}
	clock := today
	svc := newService(t, Repos{Learners: fl}, &clock)

	require.NoError(t, svc.StartRoadmap(ctx, testRoadmap(5)))
	out, err := svc.CompleteByQuiz(ctx, 0, pass())
	require.NoError(t, err)
	assert.True(t, out.Completed)

	assert.Equal(t, 1, svc.Learner().CurrentStreak)
	assert.Positive(t, fl.saves)
}

func TestService_LoadError(t *testing.T) {
	svc := NewService(Repos{Learners: erroringGet{}}, nil)
	assert.Error(t, svc.Load(context.Background()))
}

type erroringGet struct{}

func (erroringGet) Get(context.Context) (*store.LearnerRecord, error) {
	return nil, errors.New("corrupt")
}
func (erroringGet) Save(context.Context, store.LearnerRecord) error { return nil }
