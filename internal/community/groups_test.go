package community

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khalari/khalari/internal/store"
)

func newService(t *testing.T) *Service {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "community.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return NewService(st.CommunityRepo(), nil)
}

func TestList_SeedsDirectory(t *testing.T) {
	ctx := context.Background()
	s := newService(t)

	l, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, l.Mine)
	assert.Len(t, l.Others, len(Directory))

	// seeding twice must not duplicate or reset anything
	require.NoError(t, s.Seed(ctx))
	l, err = s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, l.Others, len(Directory))
}

func TestJoin(t *testing.T) {
	ctx := context.Background()
	s := newService(t)

	joined, err := s.Join(ctx, "sg-2")
	require.NoError(t, err)
	assert.True(t, joined)

	joined, err = s.Join(ctx, "sg-2")
	require.NoError(t, err)
	assert.False(t, joined)

	l, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, l.Mine, 1)
	assert.Equal(t, "React Enthusiasts", l.Mine[0].Name)
	assert.Equal(t, 43, l.Mine[0].Members)
	assert.Len(t, l.Others, len(Directory)-1)

	_, err = s.Join(ctx, "sg-404")
	assert.ErrorIs(t, err, ErrUnknownGroup)
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	s := newService(t)
	s.now = func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }

	g, err := s.Create(ctx, "  Go Gophers ", "Go", "Concurrency and tooling")
	require.NoError(t, err)
	assert.Equal(t, "Go Gophers", g.Name)
	assert.Equal(t, 1, g.Members)
	assert.True(t, g.Joined)

	l, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, l.Mine, 1)
	assert.Equal(t, g.ID, l.Mine[0].ID)

	_, err = s.Create(ctx, "", "Go", "")
	assert.ErrorIs(t, err, ErrInvalidGroup)
}
