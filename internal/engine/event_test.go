package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventInvoke(t *testing.T) {
	var e Event
	calls := 0
	e.AddListener(func() { calls++ })
	e.AddListener(func() { calls += 10 })
	assert.Equal(t, ListenerID(0), e.AddListener(nil))

	e.Invoke()
	assert.Equal(t, 11, calls)
	assert.Equal(t, 2, e.ListenerCount())
}

func TestEventRemoveListener(t *testing.T) {
	var e Event
	calls := 0
	id := e.AddListener(func() { calls++ })
	e.AddListener(func() { calls += 10 })

	e.RemoveListener(id)
	e.RemoveListener(99)
	e.Invoke()
	assert.Equal(t, 10, calls)

	e.RemoveAllListeners()
	e.Invoke()
	assert.Equal(t, 10, calls)
}

func TestEventWithArg(t *testing.T) {
	var e EventWithArg[int]
	sum := 0
	var self ListenerID
	self = e.AddListener(func(v int) {
		sum += v
		e.RemoveListener(self)
	})
	e.AddListener(func(v int) { sum += v * 100 })

	e.Invoke(2)
	e.Invoke(3)
	assert.Equal(t, 2+200+300, sum)
	assert.Equal(t, 1, e.ListenerCount())
}
