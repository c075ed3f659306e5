// apps/go-server/internal/store/store.go
//
// Persistence interfaces for the games server.
//
//   - Results:  finished game outcomes (robot runs, word chain games).
//     Backed by SQLite (default), Redis or memory.
//   - Sessions: in-progress word chain matches. Memory only; matches are
//     short-lived and are written to Results when they finish.
//   - Users:    accounts for the optional login (SQLite).
//
// Results are written after the game logic has produced its answer; callers
// treat write failures as non-fatal.

package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/robalobadob/games/apps/go-server/internal/game"
	"github.com/robalobadob/games/apps/go-server/internal/robot"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrUsernameTaken = errors.New("username taken")
)

// DefaultLimit is used when a listing is requested with limit <= 0.
const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// RobotRun is one interpreted command string and its replay.
type RobotRun struct {
	ID        string        `json:"id"`
	Commands  string        `json:"commands"`
	History   []robot.State `json:"history"`
	Final     robot.State   `json:"finalPosition"`
	Anomalies int           `json:"anomalies"`
	Player    string        `json:"player,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
}

// ChainGame is a finished word chain game.
type ChainGame struct {
	ID        string    `json:"id"`
	Words     []string  `json:"words"`
	Score     int       `json:"score"`
	Player    string    `json:"player,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Results stores finished game outcomes.
type Results interface {
	// SaveRobotRun persists r, filling ID and CreatedAt when empty.
	SaveRobotRun(ctx context.Context, r *RobotRun) error
	// RecentRobotRuns lists runs newest first.
	RecentRobotRuns(ctx context.Context, limit int) ([]RobotRun, error)
	// SaveChainGame persists g, filling ID and CreatedAt when empty.
	SaveChainGame(ctx context.Context, g *ChainGame) error
	// ChainRanking lists games by score (desc), oldest first among ties.
	ChainRanking(ctx context.Context, limit int) ([]ChainGame, error)
}

// Sessions defines the persistence interface for in-progress matches.
type Sessions interface {
	// Save persists or updates a match.
	Save(ctx context.Context, g *game.Game) error
	// Get retrieves a match by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*game.Game, error)
	// Delete drops a match; missing IDs are not an error.
	Delete(ctx context.Context, id string) error
}

// ClampLimit maps a requested page size into [1, MaxLimit].
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	default:
		return limit
	}
}

func prepareRun(r *RobotRun, now time.Time) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now.UTC()
	}
	if r.History == nil {
		r.History = []robot.State{}
	}
}

func prepareGame(g *ChainGame, now time.Time) {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	if g.CreatedAt.IsZero() {
		g.CreatedAt = now.UTC()
	}
	if g.Words == nil {
		g.Words = []string{}
	}
}
