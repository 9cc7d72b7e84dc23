package trace

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// Easing maps linear animation progress in [0, 1] to eased progress.
// Implementations must return 0 for 0, 1 for 1 and never decrease.
type Easing func(t float64) float64

// Linear is the identity easing.
func Linear(t float64) float64 { return clamp01(t) }

const springSteps = 120

// SpringEasing follows a harmonica spring released from rest toward 1.
//
// The spring is sampled once into a lookup table over unit time. A running
// maximum keeps the curve monotonic even for under-damped springs, and the
// table is rescaled so it ends at exactly 1.
func SpringEasing(frequency, damping float64) Easing {
	spring := harmonica.NewSpring(1.0/springSteps, frequency, damping)

	table := make([]float64, springSteps+1)
	var pos, vel, peak float64
	for i := 1; i <= springSteps; i++ {
		pos, vel = spring.Update(pos, vel, 1)
		if pos > peak {
			peak = pos
		}
		table[i] = peak
	}
	end := table[springSteps]
	if end <= 0 {
		return Linear
	}
	for i := range table {
		table[i] = math.Min(table[i]/end, 1)
	}
	table[springSteps] = 1

	return func(t float64) float64 {
		t = clamp01(t)
		f := t * springSteps
		lo := int(f)
		if lo >= springSteps {
			return 1
		}
		frac := f - float64(lo)
		return table[lo] + (table[lo+1]-table[lo])*frac
	}
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
