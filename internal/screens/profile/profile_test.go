package profile

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khalari/khalari/internal/career"
	"github.com/khalari/khalari/internal/engine"
	"github.com/khalari/khalari/internal/payment"
	"github.com/khalari/khalari/internal/screen"
	"github.com/khalari/khalari/internal/store"
)

func newTestScreen(t *testing.T) (*Screen, *engine.Service) {
	t.Helper()
	svc := engine.NewService(engine.Repos{}, nil)
	svc.Onboard(context.Background(), "Asha", "+91 98765 43210", "Tamil")
	return New(screen.Deps{Engine: svc, PaymentKeyID: "rzp_test_khalari"}), svc
}

func press(s *Screen, code rune) tea.Cmd {
	_, cmd := s.Update(tea.KeyPressMsg{Code: code})
	return cmd
}

func TestOverview(t *testing.T) {
	s, svc := newTestScreen(t)
	svc.LogTime(context.Background(), 90*time.Minute)

	view := s.View(100, 50)
	assert.Contains(t, view, "Asha")
	assert.Contains(t, view, "Lessons in Tamil")
	assert.Contains(t, view, "◆ 0 diamonds")
	assert.Contains(t, view, "1h 30m studied")
	assert.Contains(t, view, "Last 7 days")
}

func TestBuyPackCreditsBalance(t *testing.T) {
	s, svc := newTestScreen(t)
	press(s, tea.KeyTab)
	require.Equal(t, tabStore, s.tab)

	press(s, tea.KeyDown)
	cmd := press(s, tea.KeyEnter)
	require.NotNil(t, cmd)
	assert.True(t, s.buying)

	// Input is ignored while the checkout runs.
	assert.Nil(t, press(s, tea.KeyEnter))

	s.Update(cmd())
	assert.False(t, s.buying)
	assert.Equal(t, 120, svc.Learner().Balance)
	assert.Contains(t, s.View(100, 40), "Added 120 diamonds!")
}

func TestDeclinedPaymentDoesNotCredit(t *testing.T) {
	s, svc := newTestScreen(t)
	s.widget = payment.TestModeWidget{Decline: true}
	press(s, tea.KeyTab)

	cmd := press(s, tea.KeyEnter)
	require.NotNil(t, cmd)
	s.Update(cmd())

	assert.Zero(t, svc.Learner().Balance)
	assert.True(t, s.failed)
	assert.Contains(t, s.View(100, 40), "Payment failed")
}

type cancelWidget struct{}

func (cancelWidget) Pay(context.Context, payment.Order) (payment.Confirmation, error) {
	return payment.Confirmation{}, payment.ErrCancelled
}

func TestCancelledPayment(t *testing.T) {
	s, svc := newTestScreen(t)
	s.widget = cancelWidget{}
	press(s, tea.KeyTab)
	s.Update(press(s, tea.KeyEnter)())

	assert.Zero(t, svc.Learner().Balance)
	assert.Contains(t, s.View(100, 40), "Payment cancelled")
}

func TestAppliedJobsAreListed(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "profile.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	board := career.NewBoard(st.EventRepo(), nil)
	_, err = board.Apply(context.Background(), "fe-1")
	require.NoError(t, err)

	svc := engine.NewService(engine.Repos{}, nil)
	s := New(screen.Deps{Engine: svc, Jobs: board})
	cmd := s.Init()
	require.NotNil(t, cmd)
	s.Update(cmd())

	require.Len(t, s.jobs, 1)
	assert.Contains(t, s.View(100, 60), s.jobs[0].Title)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0m", formatDuration(0))
	assert.Equal(t, "45m", formatDuration(45*time.Minute))
	assert.Equal(t, "2h 5m", formatDuration(125*time.Minute))
}
