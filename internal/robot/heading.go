// apps/go-server/internal/robot/heading.go
//
// Heading is the cardinal direction the robot faces.
// The four values form a closed cycle North → East → South → West → North;
// Right and Left walk that cycle with unsigned modular arithmetic.

package robot

import "fmt"

// Heading is one of the four cardinal orientations.
type Heading uint8

const (
	North Heading = iota
	East
	South
	West
)

const headingCount = 4

var headingNames = [headingCount]string{"NORTH", "EAST", "SOUTH", "WEST"}

// unit vectors indexed by Heading; North increases y.
var headingDeltas = [headingCount]struct{ dx, dy int }{
	North: {0, 1},
	East:  {1, 0},
	South: {0, -1},
	West:  {-1, 0},
}

// Right returns the next heading clockwise.
func (h Heading) Right() Heading { return (h + 1) % headingCount }

// Left returns the next heading counter-clockwise.
// Implemented as +3 so the arithmetic never goes negative.
func (h Heading) Left() Heading { return (h + headingCount - 1) % headingCount }

// Delta returns the unit step taken when advancing in this heading.
func (h Heading) Delta() (dx, dy int) {
	d := headingDeltas[h%headingCount]
	return d.dx, d.dy
}

// Valid reports whether h is one of the four defined headings.
func (h Heading) Valid() bool { return h < headingCount }

func (h Heading) String() string {
	if !h.Valid() {
		return fmt.Sprintf("Heading(%d)", uint8(h))
	}
	return headingNames[h]
}

// MarshalText encodes the heading as its upper-case name ("NORTH", ...).
func (h Heading) MarshalText() ([]byte, error) {
	if !h.Valid() {
		return nil, fmt.Errorf("robot: invalid heading %d", uint8(h))
	}
	return []byte(headingNames[h]), nil
}

// UnmarshalText accepts the upper-case name produced by MarshalText.
func (h *Heading) UnmarshalText(b []byte) error {
	v, err := ParseHeading(string(b))
	if err != nil {
		return err
	}
	*h = v
	return nil
}

// ParseHeading maps a heading name back to its value.
func ParseHeading(s string) (Heading, error) {
	for i, name := range headingNames {
		if name == s {
			return Heading(i), nil
		}
	}
	return 0, fmt.Errorf("robot: unknown heading %q", s)
}
