package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignal_GetSetUpdate(t *testing.T) {
	s := NewSignal(1)
	assert.Equal(t, 1, s.Get())

	s.Set(5)
	assert.Equal(t, 5, s.Get())

	s.Update(func(v int) int { return v * 2 })
	assert.Equal(t, 10, s.Get())
}

func TestSignal_SubscribeNotifies(t *testing.T) {
	s := NewSignal("initial")

	var seen []string
	unsub := s.Subscribe(func(v string) { seen = append(seen, v) })

	s.Set("one")
	s.Update(func(string) string { return "two" })
	assert.Equal(t, []string{"one", "two"}, seen)

	unsub()
	s.Set("three")
	assert.Equal(t, []string{"one", "two"}, seen, "no notifications after unsubscribe")
}

func TestSignal_SubscriberCanReadSignal(t *testing.T) {
	s := NewSignal(0)

	// Callbacks run outside the lock, so reading back is allowed.
	var got int
	s.Subscribe(func(int) { got = s.Get() })
	s.Set(7)
	assert.Equal(t, 7, got)
}
