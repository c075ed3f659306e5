// apps/go-server/internal/robot/types.go
//
// Core type definitions for the grid robot.
// Defines:
//   - State:   position + heading snapshot on the 3x3 grid.
//   - Anomaly: non-fatal notice raised while interpreting commands.
//   - Result:  everything Interpret hands back to the caller.

package robot

import "encoding/json"

// Grid bounds (inclusive). The origin is (1,1) in the south-west corner.
const (
	MinCoord = 1
	MaxCoord = 3
)

// Command tokens understood by the interpreter.
const (
	CmdAdvance   = "A"
	CmdTurnLeft  = "I"
	CmdTurnRight = "D"
)

// State is an immutable snapshot of the robot.
type State struct {
	X       int     `json:"x"`
	Y       int     `json:"y"`
	Heading Heading `json:"heading"`
}

// Start is the state every interpretation begins from.
var Start = State{X: 1, Y: 1, Heading: North}

// InBounds reports whether the position lies on the grid.
func (s State) InBounds() bool {
	return s.X >= MinCoord && s.X <= MaxCoord && s.Y >= MinCoord && s.Y <= MaxCoord
}

// AnomalyKind classifies an Anomaly.
type AnomalyKind string

const (
	// AnomalyBoundary: an advance would have left the grid and was blocked.
	AnomalyBoundary AnomalyKind = "boundary"
	// AnomalyUnknownCommand: the token is not one of A, I, D.
	AnomalyUnknownCommand AnomalyKind = "unknown_command"
)

// Anomaly is a recoverable notice. Heading is set for boundary anomalies,
// Token for unknown commands.
type Anomaly struct {
	Kind    AnomalyKind
	Heading Heading
	Token   string
}

// MarshalJSON emits only the field relevant to the anomaly kind.
func (a Anomaly) MarshalJSON() ([]byte, error) {
	out := struct {
		Kind    AnomalyKind `json:"kind"`
		Heading *Heading    `json:"heading,omitempty"`
		Token   string      `json:"token,omitempty"`
	}{Kind: a.Kind, Token: a.Token}
	if a.Kind == AnomalyBoundary {
		h := a.Heading
		out.Heading = &h
	}
	return json.Marshal(out)
}

// Result is the outcome of interpreting one command string.
type Result struct {
	Final     State     `json:"finalPosition"`
	History   []State   `json:"history"`
	Anomalies []Anomaly `json:"anomalies"`
	Tokens    int       `json:"processedCommands"` // raw token count, unknown tokens included
}
