// apps/go-server/internal/store/memory.go
//
// In-memory implementations of Sessions and Results.
// Used for live word chain matches, and as a Results backend for
// development/testing when durability is not required.
//
// Characteristics:
//   - Concurrency-safe via mutexes; Results allow concurrent reads.
//   - Sessions are swept of finished and expired matches and capped (LRU).
//   - State is lost when the process restarts.

package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/robalobadob/games/apps/go-server/internal/game"
)

const (
	// sweepAt is the session count at which the first sweep runs on Save.
	sweepAt = 1000
	// DefaultMaxSessions caps live matches; the least recently used are
	// evicted beyond it.
	DefaultMaxSessions = 10000
)

// SessionOption configures NewMemorySessions.
type SessionOption func(*memorySessions)

// WithSessionClock sets the clock used to detect expired turn clocks.
func WithSessionClock(now func() time.Time) SessionOption {
	return func(m *memorySessions) { m.now = now }
}

// WithMaxSessions sets the hard cap on stored matches.
func WithMaxSessions(n int) SessionOption {
	return func(m *memorySessions) {
		if n > 0 {
			m.max = n
		}
	}
}

type sessionEntry struct {
	g       *game.Game
	touched time.Time
}

// memorySessions is an in-memory map-based Sessions implementation.
// Finished and expired matches are swept on Save once the map reaches
// nextSweep; the threshold doubles with the surviving count so sweeps
// stay amortized.
type memorySessions struct {
	mu        sync.Mutex
	games     map[string]*sessionEntry // keyed by Game.ID
	now       func() time.Time
	max       int
	nextSweep int
}

// NewMemorySessions constructs a new in-memory Sessions store.
func NewMemorySessions(opts ...SessionOption) Sessions {
	m := &memorySessions{
		games:     make(map[string]*sessionEntry),
		now:       time.Now,
		max:       DefaultMaxSessions,
		nextSweep: sweepAt,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.nextSweep > m.max {
		m.nextSweep = m.max
	}
	return m
}

func (m *memorySessions) Save(ctx context.Context, g *game.Game) error {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[g.ID]; !ok && len(m.games) >= m.nextSweep {
		m.sweepLocked(now)
	}
	m.games[g.ID] = &sessionEntry{g: g, touched: now}
	return nil
}

// sweepLocked drops matches that are finished or whose turn clock ran
// out, then evicts the least recently used down to three quarters of max
// if the store is still full.
func (m *memorySessions) sweepLocked(now time.Time) {
	for id, e := range m.games {
		if e.g.Done(now) {
			delete(m.games, id)
		}
	}
	if len(m.games) >= m.max {
		keep := m.max * 3 / 4
		entries := make([]*sessionEntry, 0, len(m.games))
		for _, e := range m.games {
			entries = append(entries, e)
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].touched.Before(entries[j].touched) })
		for _, e := range entries[:len(entries)-keep] {
			delete(m.games, e.g.ID)
		}
	}
	m.nextSweep = 2 * len(m.games)
	if m.nextSweep < sweepAt {
		m.nextSweep = sweepAt
	}
	if m.nextSweep > m.max {
		m.nextSweep = m.max
	}
}

func (m *memorySessions) Get(ctx context.Context, id string) (*game.Game, error) {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.games[id]; ok {
		e.touched = now
		return e.g, nil
	}
	return nil, ErrNotFound
}

func (m *memorySessions) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, id)
	return nil
}

// Memory is a Results backend held in process memory.
type Memory struct {
	mu    sync.RWMutex
	runs  []RobotRun // append order = insertion order
	games []ChainGame
	now   func() time.Time
}

// NewMemory returns an empty in-memory Results store.
func NewMemory() *Memory {
	return &Memory{now: time.Now}
}

func (m *Memory) SaveRobotRun(ctx context.Context, r *RobotRun) error {
	prepareRun(r, m.now())
	cp := *r
	cp.History = append(cp.History[:0:0], r.History...)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs = append(m.runs, cp)
	return nil
}

func (m *Memory) RecentRobotRuns(ctx context.Context, limit int) ([]RobotRun, error) {
	limit = ClampLimit(limit)

	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]RobotRun, 0, limit)
	for i := len(m.runs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.runs[i])
	}
	return out, nil
}

func (m *Memory) SaveChainGame(ctx context.Context, g *ChainGame) error {
	prepareGame(g, m.now())
	cp := *g
	cp.Words = append(cp.Words[:0:0], g.Words...)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.games = append(m.games, cp)
	return nil
}

func (m *Memory) ChainRanking(ctx context.Context, limit int) ([]ChainGame, error) {
	limit = ClampLimit(limit)

	m.mu.RLock()
	all := append([]ChainGame(nil), m.games...)
	m.mu.RUnlock()

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Score != all[j].Score {
			return all[i].Score > all[j].Score
		}
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})
	if len(all) > limit {
		all = all[:limit]
	}
	if all == nil {
		all = []ChainGame{}
	}
	return all, nil
}
