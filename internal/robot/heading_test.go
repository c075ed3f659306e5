package robot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allHeadings = []Heading{North, East, South, West}

func TestHeading_RotationCycle(t *testing.T) {
	assert.Equal(t, East, North.Right())
	assert.Equal(t, South, East.Right())
	assert.Equal(t, West, South.Right())
	assert.Equal(t, North, West.Right())

	assert.Equal(t, West, North.Left())
	assert.Equal(t, South, West.Left())
	assert.Equal(t, East, South.Left())
	assert.Equal(t, North, East.Left())
}

func TestHeading_LeftRightInverse(t *testing.T) {
	for _, h := range allHeadings {
		assert.Equal(t, h, h.Left().Right(), "%s", h)
		assert.Equal(t, h, h.Right().Left(), "%s", h)
		assert.Equal(t, h, h.Right().Right().Right().Right(), "%s", h)
		assert.Equal(t, h, h.Left().Left().Left().Left(), "%s", h)
	}
}

func TestHeading_Delta(t *testing.T) {
	dx, dy := North.Delta()
	assert.Equal(t, [2]int{0, 1}, [2]int{dx, dy})
	dx, dy = East.Delta()
	assert.Equal(t, [2]int{1, 0}, [2]int{dx, dy})
	dx, dy = South.Delta()
	assert.Equal(t, [2]int{0, -1}, [2]int{dx, dy})
	dx, dy = West.Delta()
	assert.Equal(t, [2]int{-1, 0}, [2]int{dx, dy})
}

func TestHeading_Text(t *testing.T) {
	for _, h := range allHeadings {
		b, err := h.MarshalText()
		require.NoError(t, err)

		var back Heading
		require.NoError(t, back.UnmarshalText(b))
		assert.Equal(t, h, back)
	}

	_, err := Heading(7).MarshalText()
	assert.Error(t, err)
	assert.Equal(t, "Heading(7)", Heading(7).String())

	_, err = ParseHeading("north")
	assert.Error(t, err)
}
