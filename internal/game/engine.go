// apps/go-server/internal/game/engine.go
//
// Engine for a turn-based word chain match between a fixed set of players.
// Responsibilities:
//   - Create matches with a player order, optional starting letter and turn clock.
//   - Validate each word through chain.Validator against the match state.
//   - Rotate turns on acceptance; end the match on the first rejection or timeout.
//
// State transitions:
//   playing → finished (rejection: loser = current player, reason = verdict reason)
//   playing → finished (turn clock expired: reason = timeout)

package game

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/robalobadob/games/apps/go-server/internal/chain"
	"github.com/robalobadob/games/apps/go-server/internal/words"
)

const maxPlayers = 8

var (
	ErrFinished  = errors.New("game finished")
	ErrNoPlayers = errors.New("at least one player is required")
)

// New constructs a match. Blank player names become "Player N".
// startLetter may be empty for a free first word.
func New(players []string, startLetter string, turnTimeout time.Duration, now time.Time) (*Game, error) {
	if len(players) == 0 {
		return nil, ErrNoPlayers
	}
	if len(players) > maxPlayers {
		return nil, fmt.Errorf("at most %d players are allowed", maxPlayers)
	}
	names := make([]string, len(players))
	for i, p := range players {
		p = strings.TrimSpace(p)
		if p == "" {
			p = fmt.Sprintf("Player %d", i+1)
		}
		names[i] = p
	}
	if turnTimeout < 0 {
		turnTimeout = 0
	}
	return &Game{
		ID:          randomID(),
		Players:     names,
		Used:        []string{},
		LastLetter:  words.Normalize(startLetter),
		Moves:       []Move{},
		TurnTimeout: turnTimeout,
		TurnStarted: now,
		StartedAt:   now,
	}, nil
}

// Play submits word for the current player.
// A rejected word ends the match and is reported through the verdict, not
// the error; the error is only set when the match was already over.
func (g *Game) Play(v *chain.Validator, word string, now time.Time) (chain.Verdict, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.Finished {
		return chain.Verdict{}, ErrFinished
	}
	if g.expiredLocked(now) {
		g.finishLocked(chain.ReasonTimeout, "")
		return chain.Verdict{Reason: chain.ReasonTimeout, Required: g.LastLetter}, nil
	}

	verdict := v.Validate(word, g.Used, g.LastLetter)
	if !verdict.Accepted {
		g.finishLocked(verdict.Reason, verdict.Candidate)
		return verdict, nil
	}

	g.Used = append(g.Used, verdict.Word)
	g.Moves = append(g.Moves, Move{Player: g.Players[g.Current], Word: verdict.Word, At: now})
	g.LastLetter = verdict.NextLetter
	g.Current = (g.Current + 1) % len(g.Players)
	g.TurnStarted = now
	return verdict, nil
}

// Expire ends the match if the current player's clock has run out.
// Reports whether this call finished the match.
func (g *Game) Expire(now time.Time) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Finished || !g.expiredLocked(now) {
		return false
	}
	g.finishLocked(chain.ReasonTimeout, "")
	return true
}

// Done reports whether the match is finished or its turn clock has run
// out at now. Unlike Expire it does not change the match.
func (g *Game) Done(now time.Time) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.Finished || g.expiredLocked(now)
}

func (g *Game) expiredLocked(now time.Time) bool {
	return g.TurnTimeout > 0 && now.Sub(g.TurnStarted) > g.TurnTimeout
}

func (g *Game) finishLocked(reason chain.Reason, word string) {
	g.Finished = true
	g.Loser = g.Players[g.Current]
	g.Reason = reason
	g.LastWord = word
}

// Snapshot copies the current state.
func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := Snapshot{
		ID:         g.ID,
		Players:    append([]string(nil), g.Players...),
		UsedWords:  append([]string{}, g.Used...),
		LastLetter: g.LastLetter,
		Moves:      append([]Move{}, g.Moves...),
		Score:      len(g.Used),
		Daily:      g.Daily,
		StartedAt:  g.StartedAt,
		Finished:   g.Finished,
		Loser:      g.Loser,
		Reason:     g.Reason,
		LastWord:   g.LastWord,
	}
	if !g.Finished {
		s.CurrentPlayer = g.Players[g.Current]
		if g.TurnTimeout > 0 {
			d := g.TurnStarted.Add(g.TurnTimeout)
			s.TurnDeadline = &d
		}
	}
	return s
}

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
