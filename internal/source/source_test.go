package source

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olivier-w/tracescope/internal/trace"
)

type scriptedSource struct {
	calls atomic.Int32
	fail  func(call int32) bool
}

func (s *scriptedSource) Title() string { return "scripted" }

func (s *scriptedSource) Next(context.Context) (trace.Frame, error) {
	n := s.calls.Add(1)
	if s.fail != nil && s.fail(n) {
		return nil, errors.New("sensor unplugged")
	}
	return trace.Frame{float64(n), 0}, nil
}

func TestPumpPublishesLatestFrame(t *testing.T) {
	src := &scriptedSource{}
	slot := trace.NewSlot[trace.Frame]()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Pump(ctx, src, 5*time.Millisecond, slot) }()

	select {
	case frame := <-slot.C():
		assert.Len(t, frame, 2)
	case <-time.After(2 * time.Second):
		t.Fatal("no frame published")
	}

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("pump did not stop after cancel")
	}
}

func TestPumpSkipsFailingFrames(t *testing.T) {
	src := &scriptedSource{fail: func(call int32) bool { return call%2 == 1 }}
	slot := trace.NewSlot[trace.Frame]()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go Pump(ctx, src, 5*time.Millisecond, slot)

	select {
	case frame := <-slot.C():
		require.Len(t, frame, 2)
		assert.Equal(t, 0.0, float64(int(frame[0])%2), "only even calls succeed")
	case <-time.After(2 * time.Second):
		t.Fatal("pump stopped publishing after an error")
	}
}

func TestPumpStopsBeforeFirstTick(t *testing.T) {
	src := &scriptedSource{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Pump(ctx, src, time.Hour, trace.NewSlot[trace.Frame]())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, src.calls.Load())
}
