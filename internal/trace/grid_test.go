package trace

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridLinesEvenSpacing(t *testing.T) {
	lines := GridLines(Size{W: 900, H: 500}, 9, 4)
	require.Len(t, lines, 13)

	for i := range 9 {
		l := lines[i]
		want := float64(90 * (i + 1))
		assert.True(t, l.Vertical())
		assert.Equal(t, Point{X: want, Y: 0}, l.From)
		assert.Equal(t, Point{X: want, Y: 500}, l.To)
	}
	for i := range 4 {
		l := lines[9+i]
		want := float64(100 * (i + 1))
		assert.False(t, l.Vertical())
		assert.Equal(t, Point{X: 0, Y: want}, l.From)
		assert.Equal(t, Point{X: 900, Y: want}, l.To)
	}
}

func TestGridLinesZeroCounts(t *testing.T) {
	assert.Empty(t, GridLines(Size{W: 100, H: 100}, 0, 0))
	assert.Len(t, GridLines(Size{W: 100, H: 100}, 0, 3), 3)
	assert.Len(t, GridLines(Size{W: 100, H: 100}, 2, 0), 2)
}

func TestGridLinesNegativeCountsIgnored(t *testing.T) {
	assert.Empty(t, GridLines(Size{W: 100, H: 100}, -1, -4))
}

func TestGridLinesDegenerateGeometry(t *testing.T) {
	assert.Empty(t, GridLines(Size{W: 0, H: 100}, 9, 4))
	assert.Empty(t, GridLines(Size{W: 100, H: -1}, 9, 4))
}

func TestGridLinesCountsCapped(t *testing.T) {
	lines := GridLines(Size{W: 100, H: 100}, math.MaxInt32, MaxGridLines+1)
	assert.Len(t, lines, 2*MaxGridLines)
}
