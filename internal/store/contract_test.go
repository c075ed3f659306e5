package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/games/apps/go-server/internal/robot"
)

var base = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

// runResultsContract exercises behaviour every Results backend shares.
func runResultsContract(t *testing.T, newStore func(t *testing.T) Results) {
	t.Run("robot runs newest first", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		empty, err := s.RecentRobotRuns(ctx, 0)
		require.NoError(t, err)
		assert.NotNil(t, empty)
		assert.Empty(t, empty)

		res := robot.Interpret("A A A A")
		for i, cmds := range []string{"A", "A D A", "A A A A"} {
			r := &RobotRun{
				Commands:  cmds,
				History:   res.History,
				Final:     res.Final,
				Anomalies: len(res.Anomalies),
				Player:    "ana",
				CreatedAt: base.Add(time.Duration(i) * time.Minute),
			}
			require.NoError(t, s.SaveRobotRun(ctx, r))
			assert.NotEmpty(t, r.ID)
		}

		runs, err := s.RecentRobotRuns(ctx, 2)
		require.NoError(t, err)
		require.Len(t, runs, 2)
		assert.Equal(t, "A A A A", runs[0].Commands)
		assert.Equal(t, "A D A", runs[1].Commands)
		assert.Equal(t, res.History, runs[0].History)
		assert.Equal(t, robot.State{X: 1, Y: 3, Heading: robot.North}, runs[0].Final)
		assert.Equal(t, 2, runs[0].Anomalies)
		assert.Equal(t, "ana", runs[0].Player)
		assert.True(t, base.Add(2*time.Minute).Equal(runs[0].CreatedAt))
	})

	t.Run("robot runs ordered below one second", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		for _, r := range []*RobotRun{
			{Commands: "whole", CreatedAt: base},
			{Commands: "older", CreatedAt: base.Add(500 * time.Millisecond)},
			{Commands: "newer", CreatedAt: base.Add(500*time.Millisecond + 10*time.Microsecond)},
		} {
			require.NoError(t, s.SaveRobotRun(ctx, r))
		}

		runs, err := s.RecentRobotRuns(ctx, 3)
		require.NoError(t, err)
		require.Len(t, runs, 3)
		assert.Equal(t, "newer", runs[0].Commands)
		assert.Equal(t, "older", runs[1].Commands)
		assert.Equal(t, "whole", runs[2].Commands)
		assert.True(t, base.Add(500*time.Millisecond+10*time.Microsecond).Equal(runs[0].CreatedAt))
	})

	t.Run("save fills id and time", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		g := &ChainGame{Words: []string{"perro", "oso"}, Score: 2}
		require.NoError(t, s.SaveChainGame(ctx, g))
		assert.NotEmpty(t, g.ID)
		assert.False(t, g.CreatedAt.IsZero())

		r := &RobotRun{Commands: ""}
		require.NoError(t, s.SaveRobotRun(ctx, r))
		assert.NotEmpty(t, r.ID)
		assert.NotNil(t, r.History)
	})

	t.Run("ranking by score then age", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		games := []ChainGame{
			{ID: "low", Words: []string{"oso"}, Score: 1, CreatedAt: base},
			{ID: "late-high", Words: []string{"perro", "oso", "oveja"}, Score: 3, CreatedAt: base.Add(time.Hour)},
			{ID: "early-high", Words: []string{"agua", "ala", "ave"}, Score: 3, CreatedAt: base},
			{ID: "mid", Words: []string{"perro", "oso"}, Score: 2, CreatedAt: base.Add(time.Minute)},
		}
		for i := range games {
			require.NoError(t, s.SaveChainGame(ctx, &games[i]))
		}

		top, err := s.ChainRanking(ctx, 3)
		require.NoError(t, err)
		require.Len(t, top, 3)
		assert.Equal(t, "early-high", top[0].ID)
		assert.Equal(t, "late-high", top[1].ID)
		assert.Equal(t, "mid", top[2].ID)
		assert.Equal(t, []string{"agua", "ala", "ave"}, top[0].Words)

		all, err := s.ChainRanking(ctx, 0)
		require.NoError(t, err)
		assert.Len(t, all, 4)
	})

	t.Run("ranking ties ordered below one second", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		// Saved newest first so insertion order cannot stand in for age.
		for _, g := range []*ChainGame{
			{ID: "third", Words: []string{"oso"}, Score: 3, CreatedAt: base.Add(100 * time.Millisecond)},
			{ID: "second", Words: []string{"oso"}, Score: 3, CreatedAt: base.Add(time.Millisecond)},
			{ID: "first", Words: []string{"oso"}, Score: 3, CreatedAt: base},
		} {
			require.NoError(t, s.SaveChainGame(ctx, g))
		}

		top, err := s.ChainRanking(ctx, 3)
		require.NoError(t, err)
		require.Len(t, top, 3)
		assert.Equal(t, "first", top[0].ID)
		assert.Equal(t, "second", top[1].ID)
		assert.Equal(t, "third", top[2].ID)
	})
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, ClampLimit(0))
	assert.Equal(t, DefaultLimit, ClampLimit(-5))
	assert.Equal(t, 7, ClampLimit(7))
	assert.Equal(t, MaxLimit, ClampLimit(MaxLimit+1))
}
