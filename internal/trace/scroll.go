package trace

import "time"

// ScrollState is the phase of the reveal animation.
type ScrollState uint8

const (
	Masked    ScrollState = iota // overlay covers the whole canvas
	Revealing                    // overlay shrinking toward the right edge
	Revealed                     // overlay gone, trace fully visible
)

func (s ScrollState) String() string {
	switch s {
	case Revealing:
		return "revealing"
	case Revealed:
		return "revealed"
	default:
		return "masked"
	}
}

// ScrollController drives the left-to-right reveal of a freshly drawn
// trace. It owns no timer: the host feeds elapsed time through Advance and
// asks for the overlay width at the current canvas width.
type ScrollController struct {
	window  time.Duration
	easing  Easing
	state   ScrollState
	elapsed time.Duration
	// showing records whether the last observed frame had more than one
	// sample. Reveals start only when it flips from false to true.
	showing bool
}

// NewScrollController returns a controller in the Masked state that reveals
// over window. A nil easing means Linear.
func NewScrollController(window time.Duration, easing Easing) *ScrollController {
	if easing == nil {
		easing = Linear
	}
	return &ScrollController{window: window, easing: easing}
}

// State returns the current phase.
func (c *ScrollController) State() ScrollState { return c.state }

// Elapsed returns the animation time consumed since the last trigger.
func (c *ScrollController) Elapsed() time.Duration { return c.elapsed }

// Window returns the reveal duration.
func (c *ScrollController) Window() time.Duration { return c.window }

// Observe feeds the size of a newly arrived frame.
//
// Frames of at most one sample mask the canvas again. A reveal starts only
// when a multi-sample frame follows a masked canvas; further multi-sample
// frames leave a running or finished reveal alone.
func (c *ScrollController) Observe(frameLen int) {
	if frameLen <= 1 {
		c.showing = false
		c.state = Masked
		c.elapsed = 0
		return
	}
	if c.showing {
		return
	}
	c.showing = true
	c.state = Revealing
	c.elapsed = 0
	if c.window <= 0 {
		c.state = Revealed
	}
}

// Advance moves the animation forward by dt. It is a no-op outside the
// Revealing state.
func (c *ScrollController) Advance(dt time.Duration) {
	if c.state != Revealing || dt <= 0 {
		return
	}
	c.elapsed += dt
	if c.elapsed >= c.window {
		c.elapsed = c.window
		c.state = Revealed
	}
}

// Fraction returns eased reveal progress: 0 while masked, 1 once revealed.
func (c *ScrollController) Fraction() float64 {
	switch c.state {
	case Revealed:
		return 1
	case Revealing:
		return revealFraction(c.elapsed, c.window, c.easing)
	default:
		return 0
	}
}

// OverlayWidth returns the width of the mask for a canvas that is
// currently canvasW wide.
func (c *ScrollController) OverlayWidth(canvasW float64) float64 {
	if canvasW <= 0 {
		return 0
	}
	switch c.state {
	case Revealed:
		return 0
	case Revealing:
		return OverlayAt(c.elapsed, c.window, canvasW, c.easing)
	default:
		return canvasW
	}
}

// OverlayAt is the overlay width elapsed into a reveal lasting window on a
// canvas canvasW wide. It starts at canvasW and reaches exactly 0 once
// elapsed >= window.
func OverlayAt(elapsed, window time.Duration, canvasW float64, easing Easing) float64 {
	if canvasW <= 0 {
		return 0
	}
	if easing == nil {
		easing = Linear
	}
	f := revealFraction(elapsed, window, easing)
	if f >= 1 {
		return 0
	}
	return canvasW * (1 - f)
}

func revealFraction(elapsed, window time.Duration, easing Easing) float64 {
	if window <= 0 || elapsed >= window {
		return 1
	}
	if elapsed <= 0 {
		return 0
	}
	return clamp01(easing(float64(elapsed) / float64(window)))
}
