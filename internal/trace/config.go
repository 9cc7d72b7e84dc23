package trace

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"time"
)

// ErrInvalidConfig is wrapped by every error returned from Config.Validate.
var ErrInvalidConfig = errors.New("invalid trace config")

// Upper bounds accepted by Config.Validate.
const (
	MaxGridLines   = 256 // per direction
	MaxStrokeWidth = 64
)

// Frame is one batch of samples delivered together by a signal source.
// Index order is time order.
type Frame []float64

// Size is the canvas geometry in display units.
type Size struct {
	W float64
	H float64
}

// Degenerate reports whether nothing can be drawn on a canvas of this size.
func (s Size) Degenerate() bool {
	return !(s.W > 0) || !(s.H > 0)
}

// Point is a position on the canvas, origin top-left.
type Point struct {
	X float64
	Y float64
}

// Config is the caller-supplied configuration of a trace display.
type Config struct {
	VerticalScale   float64
	HorizontalScale int // seconds spanned by the full canvas width
	SampleRate      float64

	Background color.RGBA
	TraceColor color.RGBA
	TraceWidth float64

	GridColor           color.RGBA
	GridWidth           float64
	HorizontalGridLines int
	VerticalGridLines   int
}

// DefaultConfig returns the configuration the trace uses when nothing else
// is specified: one second at 100 sps on a gray background, no grid.
func DefaultConfig() Config {
	return Config{
		VerticalScale:   0.8,
		HorizontalScale: 1,
		SampleRate:      100,
		Background:      color.RGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xff},
		TraceColor:      color.RGBA{R: 0x00, G: 0xff, B: 0x00, A: 0xff},
		TraceWidth:      1,
		GridColor:       color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		GridWidth:       1,
	}
}

// Validate checks the scaling parameters and grid counts.
func (c Config) Validate() error {
	if c.HorizontalScale <= 0 {
		return fmt.Errorf("%w: horizontal scale must be > 0 seconds, got %d", ErrInvalidConfig, c.HorizontalScale)
	}
	if !(c.SampleRate > 0) || math.IsInf(c.SampleRate, 0) {
		return fmt.Errorf("%w: sample rate must be a positive number, got %v", ErrInvalidConfig, c.SampleRate)
	}
	if math.IsNaN(c.VerticalScale) || math.IsInf(c.VerticalScale, 0) {
		return fmt.Errorf("%w: vertical scale must be finite, got %v", ErrInvalidConfig, c.VerticalScale)
	}
	if c.HorizontalGridLines < 0 || c.VerticalGridLines < 0 ||
		c.HorizontalGridLines > MaxGridLines || c.VerticalGridLines > MaxGridLines {
		return fmt.Errorf("%w: grid line counts must be in [0, %d], got %d horizontal, %d vertical",
			ErrInvalidConfig, MaxGridLines, c.HorizontalGridLines, c.VerticalGridLines)
	}
	for _, w := range []float64{c.TraceWidth, c.GridWidth} {
		if !(w >= 0 && w <= MaxStrokeWidth) {
			return fmt.Errorf("%w: stroke widths must be in [0, %d], got %v", ErrInvalidConfig, MaxStrokeWidth, w)
		}
	}
	return nil
}

// HorizontalShift is the fraction of the canvas width each successive
// sample advances.
func (c Config) HorizontalShift() float64 {
	den := float64(c.HorizontalScale) * c.SampleRate
	if den <= 0 {
		return 0
	}
	return 1 / den
}

// Window is the time span of the full canvas width, which is also the
// length of one reveal animation.
func (c Config) Window() time.Duration {
	return time.Duration(c.HorizontalScale) * time.Second
}

// FrameLen is the number of samples that exactly fill one window.
func (c Config) FrameLen() int {
	return int(math.Round(float64(c.HorizontalScale) * c.SampleRate))
}
