package trace

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScrollControllerStartsMasked(t *testing.T) {
	c := NewScrollController(time.Second, nil)
	assert.Equal(t, Masked, c.State())
	assert.Equal(t, 200.0, c.OverlayWidth(200))
	assert.Zero(t, c.Fraction())
}

func TestScrollControllerRevealReachesZero(t *testing.T) {
	c := NewScrollController(2*time.Second, nil)
	c.Observe(200)
	require.Equal(t, Revealing, c.State())
	assert.Equal(t, 400.0, c.OverlayWidth(400))

	prev := c.OverlayWidth(400)
	for range 41 {
		c.Advance(50 * time.Millisecond)
		w := c.OverlayWidth(400)
		assert.LessOrEqual(t, w, prev)
		prev = w
	}

	assert.Equal(t, Revealed, c.State())
	assert.Equal(t, 0.0, c.OverlayWidth(400))
	assert.Equal(t, 1.0, c.Fraction())
}

func TestScrollControllerLinearMidpoint(t *testing.T) {
	c := NewScrollController(time.Second, Linear)
	c.Observe(100)
	c.Advance(250 * time.Millisecond)
	assert.InDelta(t, 75, c.OverlayWidth(100), 1e-9)
	assert.InDelta(t, 0.25, c.Fraction(), 1e-9)
}

func TestScrollControllerExactCompletion(t *testing.T) {
	c := NewScrollController(time.Second, nil)
	c.Observe(2)
	c.Advance(time.Second)
	assert.Equal(t, Revealed, c.State())
	assert.Equal(t, 0.0, c.OverlayWidth(321))
	assert.Equal(t, time.Second, c.Elapsed())
}

func TestScrollControllerShortFrameMasks(t *testing.T) {
	c := NewScrollController(time.Second, nil)
	c.Observe(100)
	c.Advance(400 * time.Millisecond)

	c.Observe(1)
	assert.Equal(t, Masked, c.State())
	assert.Equal(t, 80.0, c.OverlayWidth(80))
	assert.Zero(t, c.Elapsed())

	c.Observe(0)
	assert.Equal(t, Masked, c.State())
}

func TestScrollControllerDoesNotRestartWhileRevealing(t *testing.T) {
	c := NewScrollController(time.Second, nil)
	c.Observe(100)
	c.Advance(600 * time.Millisecond)

	c.Observe(100)
	assert.Equal(t, Revealing, c.State())
	assert.Equal(t, 600*time.Millisecond, c.Elapsed())
}

func TestScrollControllerStaysRevealedOnFurtherFrames(t *testing.T) {
	c := NewScrollController(time.Second, nil)
	c.Observe(100)
	c.Advance(2 * time.Second)
	require.Equal(t, Revealed, c.State())

	c.Observe(100)
	assert.Equal(t, Revealed, c.State())
	assert.Equal(t, time.Second, c.Elapsed())
	assert.Zero(t, c.OverlayWidth(50))
}

func TestScrollControllerRetriggersAfterMasking(t *testing.T) {
	c := NewScrollController(time.Second, nil)
	c.Observe(100)
	c.Advance(2 * time.Second)
	require.Equal(t, Revealed, c.State())

	c.Observe(1)
	require.Equal(t, Masked, c.State())

	c.Observe(100)
	assert.Equal(t, Revealing, c.State())
	assert.Zero(t, c.Elapsed())
	assert.Equal(t, 50.0, c.OverlayWidth(50))
}

func TestScrollControllerAdvanceIgnoredWhenMasked(t *testing.T) {
	c := NewScrollController(time.Second, nil)
	c.Advance(5 * time.Second)
	assert.Equal(t, Masked, c.State())
	assert.Zero(t, c.Elapsed())
}

func TestScrollControllerUsesCurrentWidth(t *testing.T) {
	c := NewScrollController(time.Second, nil)
	c.Observe(100)
	c.Advance(500 * time.Millisecond)

	assert.InDelta(t, 50, c.OverlayWidth(100), 1e-9)
	assert.InDelta(t, 150, c.OverlayWidth(300), 1e-9)
	assert.Zero(t, c.OverlayWidth(0))
}

func TestScrollControllerZeroWindowRevealsImmediately(t *testing.T) {
	c := NewScrollController(0, nil)
	c.Observe(10)
	assert.Equal(t, Revealed, c.State())
	assert.Zero(t, c.OverlayWidth(100))
}

func TestOverlayAtEndpoints(t *testing.T) {
	assert.Equal(t, 90.0, OverlayAt(0, time.Second, 90, nil))
	assert.Equal(t, 0.0, OverlayAt(time.Second, time.Second, 90, nil))
	assert.Equal(t, 0.0, OverlayAt(3*time.Second, time.Second, 90, nil))
	assert.Equal(t, 0.0, OverlayAt(0, time.Second, -1, nil))
}

func TestSpringEasingMonotonicWithExactEndpoints(t *testing.T) {
	for _, damping := range []float64{0.3, 1.0, 2.0} {
		ease := SpringEasing(12, damping)
		assert.Equal(t, 0.0, ease(0))
		assert.Equal(t, 1.0, ease(1))

		prev := 0.0
		for i := 0; i <= 1000; i++ {
			v := ease(float64(i) / 1000)
			assert.GreaterOrEqualf(t, v, prev, "damping %v step %d", damping, i)
			assert.LessOrEqual(t, v, 1.0)
			prev = v
		}
	}
}

func TestSpringEasingDrivesOverlayToZero(t *testing.T) {
	c := NewScrollController(time.Second, SpringEasing(12, 1))
	c.Observe(100)

	prev := c.OverlayWidth(100)
	for range 20 {
		c.Advance(50 * time.Millisecond)
		w := c.OverlayWidth(100)
		assert.LessOrEqual(t, w, prev)
		prev = w
	}
	assert.Equal(t, 0.0, prev)
}
