package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/games/apps/go-server/internal/chain"
	"github.com/robalobadob/games/apps/go-server/internal/game"
)

func TestMemory_Contract(t *testing.T) {
	runResultsContract(t, func(t *testing.T) Results { return NewMemory() })
}

func TestMemory_SaveCopiesSlices(t *testing.T) {
	m := NewMemory()
	words := []string{"perro", "oso"}
	require.NoError(t, m.SaveChainGame(context.Background(), &ChainGame{Words: words, Score: 2}))
	words[0] = "mutated"

	top, err := m.ChainRanking(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "perro", top[0].Words[0])
}

func TestMemorySessions(t *testing.T) {
	ctx := context.Background()
	s := NewMemorySessions()

	g, err := game.New([]string{"ana"}, "", 0, base)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, g))

	got, err := s.Get(ctx, g.ID)
	require.NoError(t, err)
	assert.Same(t, g, got)

	require.NoError(t, s.Delete(ctx, g.ID))
	_, err = s.Get(ctx, g.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, s.Delete(ctx, "missing"))
}

func TestMemoryUsers(t *testing.T) {
	ctx := context.Background()
	u := NewMemoryUsers()

	created, err := u.CreateUser(ctx, " Ana ", "hash")
	require.NoError(t, err)
	assert.Equal(t, "Ana", created.Username)

	_, err = u.CreateUser(ctx, "ANA", "other")
	assert.ErrorIs(t, err, ErrUsernameTaken)

	byName, err := u.UserByName(ctx, "ana")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)

	byID, err := u.UserByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "hash", byID.PasswordHash)

	_, err = u.UserByID(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemorySessions_SweepsFinished(t *testing.T) {
	ctx := context.Background()
	s := NewMemorySessions()

	var live *game.Game
	for i := 0; i < sweepAt; i++ {
		g, err := game.New([]string{"ana"}, "", 0, base)
		require.NoError(t, err)
		if i == 0 {
			live = g
		} else {
			_, err = g.Play(chain.NewValidator(nil), "", base)
			require.NoError(t, err)
		}
		require.NoError(t, s.Save(ctx, g))
	}

	g, err := game.New([]string{"beto"}, "", 0, base)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, g))

	_, err = s.Get(ctx, live.ID)
	assert.NoError(t, err)
	_, err = s.Get(ctx, g.ID)
	assert.NoError(t, err)
	assert.Len(t, s.(*memorySessions).games, 2)
}

func TestMemorySessions_SweepsExpired(t *testing.T) {
	ctx := context.Background()
	now := base.Add(time.Hour)
	s := NewMemorySessions(WithSessionClock(func() time.Time { return now }))

	for i := 0; i < 3*sweepAt; i++ {
		g, err := game.New([]string{"ana", "beto"}, "", 10*time.Second, base)
		require.NoError(t, err)
		require.NoError(t, s.Save(ctx, g))
	}

	fresh, err := game.New([]string{"ana", "beto"}, "", 10*time.Second, now)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, fresh))

	ms := s.(*memorySessions)
	assert.Less(t, len(ms.games), sweepAt)
	_, err = s.Get(ctx, fresh.ID)
	assert.NoError(t, err)
}

func TestMemorySessions_EvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	now := base
	s := NewMemorySessions(
		WithSessionClock(func() time.Time { return now }),
		WithMaxSessions(4),
	)

	ids := make([]string, 0, 4)
	for i := 0; i < 4; i++ {
		g, err := game.New([]string{"ana"}, "", 0, base)
		require.NoError(t, err)
		require.NoError(t, s.Save(ctx, g))
		ids = append(ids, g.ID)
		now = now.Add(time.Minute)
	}
	// Touch the oldest so the second becomes least recently used.
	_, err := s.Get(ctx, ids[0])
	require.NoError(t, err)
	now = now.Add(time.Minute)

	g, err := game.New([]string{"ana"}, "", 0, now)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, g))

	ms := s.(*memorySessions)
	assert.LessOrEqual(t, len(ms.games), 4)
	_, err = s.Get(ctx, ids[1])
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Get(ctx, ids[0])
	assert.NoError(t, err)
	_, err = s.Get(ctx, g.ID)
	assert.NoError(t, err)
}
