package trace

import "sync"

// Slot is a single-slot channel that overwrites on overflow. Producers
// never block; a consumer only ever receives the newest published value.
type Slot[T any] struct {
	mu sync.Mutex
	ch chan T
}

// NewSlot returns an empty slot.
func NewSlot[T any]() *Slot[T] {
	return &Slot[T]{ch: make(chan T, 1)}
}

// Publish stores v, dropping any value the consumer has not read yet.
func (s *Slot[T]) Publish(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	select {
	case <-s.ch:
	default:
	}
	s.ch <- v
}

// C returns the receive side of the slot.
func (s *Slot[T]) C() <-chan T { return s.ch }

// TryTake returns the pending value without blocking. It is a test and
// diagnostic helper; consumers receive through C.
func (s *Slot[T]) TryTake() (T, bool) {
	select {
	case v := <-s.ch:
		return v, true
	default:
		var zero T
		return zero, false
	}
}
