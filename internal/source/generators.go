package source

import (
	"context"
	"fmt"
	"math"

	"github.com/olivier-w/tracescope/internal/trace"
)

// Sine generates a phase-continuous sine wave, one window per frame.
type Sine struct {
	freq      float64
	amplitude float64
	rate      float64
	n         int
	phase     float64
}

// NewSine creates a sine source at freq Hz sampled to fill one window of cfg.
func NewSine(cfg trace.Config, freq, amplitude float64) *Sine {
	return &Sine{
		freq:      freq,
		amplitude: amplitude,
		rate:      cfg.SampleRate,
		n:         cfg.FrameLen(),
	}
}

func (s *Sine) Title() string { return fmt.Sprintf("sine %g Hz", s.freq) }

func (s *Sine) Next(context.Context) (trace.Frame, error) {
	frame := make(trace.Frame, s.n)
	step := s.freq / s.rate
	for i := range frame {
		frame[i] = s.amplitude * math.Sin(2*math.Pi*s.phase)
		s.phase += step
		if s.phase >= 1 {
			s.phase -= math.Floor(s.phase)
		}
	}
	return frame, nil
}

// ECG generates a synthetic heartbeat-like trace: a slow baseline plus
// Gaussian P, QRS and T waves, with a little deterministic noise.
// It is a display fixture, not a clinical model.
type ECG struct {
	rate  float64
	bpm   float64
	noise float64
	n     int
	phase float64
}

// NewECG creates an ECG source beating at bpm.
func NewECG(cfg trace.Config, bpm, noise float64) *ECG {
	if bpm <= 0 {
		bpm = 60
	}
	return &ECG{rate: cfg.SampleRate, bpm: bpm, noise: noise, n: cfg.FrameLen()}
}

func (e *ECG) Title() string { return fmt.Sprintf("ecg %g bpm", e.bpm) }

func (e *ECG) Next(context.Context) (trace.Frame, error) {
	frame := make(trace.Frame, e.n)
	step := e.bpm / 60 / e.rate
	for i := range frame {
		frame[i] = e.sample(e.phase)
		e.phase += step
		if e.phase >= 1 {
			e.phase -= math.Floor(e.phase)
		}
	}
	return frame, nil
}

func (e *ECG) sample(t float64) float64 {
	baseline := 0.05 * math.Sin(2*math.Pi*t)
	p := 0.08 * gauss(t, 0.18, 0.03)
	q := -0.12 * gauss(t, 0.30, 0.01)
	r := 1.00 * gauss(t, 0.32, 0.008)
	s := -0.25 * gauss(t, 0.35, 0.012)
	tw := 0.25 * gauss(t, 0.60, 0.06)
	n := e.noise * (2*fract(math.Sin(12345.678*t)*9876.543) - 1)
	return baseline + p + q + r + s + tw + n
}

func gauss(x, mu, sigma float64) float64 {
	z := (x - mu) / sigma
	return math.Exp(-0.5 * z * z)
}

func fract(x float64) float64 { return x - math.Floor(x) }
