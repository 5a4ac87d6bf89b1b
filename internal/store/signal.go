package store

import "sync"

// Signal is a value holder that publishes on change: Get, Set/Update, and
// Subscribe for notify-on-mutate. It is the explicit stand-in for framework
// reactivity; consumers either poll Get or register a callback.
type Signal[T any] struct {
	mu    sync.RWMutex
	value T
	subs  map[int]func(T)
	next  int
}

// NewSignal creates a signal holding initial.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{value: initial, subs: make(map[int]func(T))}
}

// Get returns the current value.
func (s *Signal[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set replaces the value and notifies subscribers.
func (s *Signal[T]) Set(v T) {
	s.mu.Lock()
	s.value = v
	subs := s.snapshotSubs()
	s.mu.Unlock()

	for _, fn := range subs {
		fn(v)
	}
}

// Update applies fn to the current value, stores the result, and notifies
// subscribers.
func (s *Signal[T]) Update(fn func(T) T) {
	s.mu.Lock()
	s.value = fn(s.value)
	v := s.value
	subs := s.snapshotSubs()
	s.mu.Unlock()

	for _, f := range subs {
		f(v)
	}
}

// Subscribe registers fn to run after every change. The returned function
// removes the subscription.
func (s *Signal[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Callbacks run outside the lock; order across subscribers is unspecified.
func (s *Signal[T]) snapshotSubs() []func(T) {
	out := make([]func(T), 0, len(s.subs))
	for _, fn := range s.subs {
		out = append(out, fn)
	}
	return out
}
