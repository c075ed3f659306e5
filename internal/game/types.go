// apps/go-server/internal/game/types.go
//
// Core type definitions for a server-side word chain match.
// Defines:
//   - Move:     one accepted word and who played it.
//   - Game:     state for a single in-progress or finished match.
//   - Snapshot: a copy of Game safe to encode after the lock is released.

package game

import (
	"sync"
	"time"

	"github.com/robalobadob/games/apps/go-server/internal/chain"
)

// Move is one accepted word.
type Move struct {
	Player string    `json:"player"`
	Word   string    `json:"word"`
	At     time.Time `json:"at"`
}

// Game holds the state of a single word chain match. All access goes
// through methods, which serialize on mu.
type Game struct {
	mu sync.Mutex

	ID          string
	Players     []string      // turn order
	Current     int           // index into Players
	Used        []string      // accepted words, in order
	LastLetter  string        // letter the next word must start with ("" = any)
	Moves       []Move        // accepted moves
	TurnTimeout time.Duration // 0 disables the per-turn clock
	TurnStarted time.Time
	StartedAt   time.Time
	Daily       bool

	Finished bool
	Loser    string       // player who broke the chain
	Reason   chain.Reason // why the match ended
	LastWord string       // normalized word that ended the match, if any
}

// Snapshot is an immutable copy of a Game for rendering.
type Snapshot struct {
	ID            string       `json:"id"`
	Players       []string     `json:"players"`
	CurrentPlayer string       `json:"currentPlayer,omitempty"`
	UsedWords     []string     `json:"usedWords"`
	LastLetter    string       `json:"requiredFirstLetter,omitempty"`
	Moves         []Move       `json:"moves"`
	Score         int          `json:"score"`
	Daily         bool         `json:"daily"`
	StartedAt     time.Time    `json:"startedAt"`
	TurnDeadline  *time.Time   `json:"turnDeadline,omitempty"`
	Finished      bool         `json:"finished"`
	Loser         string       `json:"loser,omitempty"`
	Reason        chain.Reason `json:"reasonCode,omitempty"`
	LastWord      string       `json:"-"`
}
