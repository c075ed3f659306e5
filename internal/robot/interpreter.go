// apps/go-server/internal/robot/interpreter.go
//
// Command interpreter for the grid robot.
// Responsibilities:
//   - Tokenize a command string (trim, upper-case, split on whitespace).
//   - Replay tokens left to right against a fresh State.
//   - Record one history entry per recognised token (blocked advances included).
//   - Collect anomalies instead of failing: the whole string is always processed.

package robot

import "strings"

// Tokenize splits a command string into upper-case tokens.
// Empty or whitespace-only input yields no tokens.
func Tokenize(commands string) []string {
	return strings.Fields(strings.ToUpper(strings.TrimSpace(commands)))
}

// Interpret runs commands from Start and returns the final state, the full
// history and any anomalies. It never fails.
func Interpret(commands string) Result {
	tokens := Tokenize(commands)

	state := Start
	res := Result{
		History:   make([]State, 1, len(tokens)+1),
		Anomalies: []Anomaly{},
		Tokens:    len(tokens),
	}
	res.History[0] = state

	for _, tok := range tokens {
		next, anomaly, ok := Step(state, tok)
		if anomaly != nil {
			res.Anomalies = append(res.Anomalies, *anomaly)
		}
		if !ok {
			continue
		}
		state = next
		res.History = append(res.History, state)
	}

	res.Final = state
	return res
}

// Step applies a single token to s.
// ok is false only for unrecognised tokens, which must not be recorded in
// history. A blocked advance returns s unchanged, ok=true and a boundary anomaly.
func Step(s State, token string) (next State, anomaly *Anomaly, ok bool) {
	switch token {
	case CmdTurnLeft:
		s.Heading = s.Heading.Left()
		return s, nil, true
	case CmdTurnRight:
		s.Heading = s.Heading.Right()
		return s, nil, true
	case CmdAdvance:
		dx, dy := s.Heading.Delta()
		cand := State{X: s.X + dx, Y: s.Y + dy, Heading: s.Heading}
		if !cand.InBounds() {
			return s, &Anomaly{Kind: AnomalyBoundary, Heading: s.Heading}, true
		}
		return cand, nil, true
	default:
		return s, &Anomaly{Kind: AnomalyUnknownCommand, Token: token}, false
	}
}
