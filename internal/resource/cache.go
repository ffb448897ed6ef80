// Package resource caches loaded assets behind generational handles. A
// handle outlives its resource safely: once released, it stops resolving
// instead of pointing at whatever reused the slot.
package resource

import (
	"fmt"

	"aspect3d/internal/engine"

	"github.com/rotisserie/eris"
)

// Handle names a cached resource. The zero Handle is never valid.
type Handle struct {
	Index      uint32
	Generation uint32
}

func (h Handle) Valid() bool { return h.Generation != 0 }

func (h Handle) String() string {
	return fmt.Sprintf("res(%d:%d)", h.Index, h.Generation)
}

// Loader produces the resource stored under key.
type Loader[T any] func(key string) (T, error)

type slot[T any] struct {
	value T
	key   string
	gen   uint32
	refs  int
	live  bool
}

// Cache shares one loaded T per key and reference counts it.
type Cache[T any] struct {
	slots  []slot[T]
	free   []uint32
	byKey  map[string]Handle
	unload func(T)
}

// NewCache returns an empty cache. unload, if set, runs when the last
// reference to a resource is released and on Clear.
func NewCache[T any](unload func(T)) *Cache[T] {
	return &Cache[T]{byKey: map[string]Handle{}, unload: unload}
}

// Load returns the handle of the resource under key, calling loader only
// when it is not cached yet. Every successful Load takes a reference.
func (c *Cache[T]) Load(key string, loader Loader[T]) (Handle, error) {
	if h, ok := c.byKey[key]; ok {
		c.slots[h.Index].refs++
		return h, nil
	}
	v, err := loader(key)
	if err != nil {
		return Handle{}, eris.Wrapf(err, "load resource %q", key)
	}

	var i uint32
	if n := len(c.free); n > 0 {
		i = c.free[n-1]
		c.free = c.free[:n-1]
	} else {
		c.slots = append(c.slots, slot[T]{})
		i = uint32(len(c.slots) - 1)
	}
	s := &c.slots[i]
	s.gen++
	s.value, s.key, s.refs, s.live = v, key, 1, true

	h := Handle{Index: i, Generation: s.gen}
	c.byKey[key] = h
	return h, nil
}

func (c *Cache[T]) lookup(h Handle) (*slot[T], bool) {
	if !h.Valid() || int(h.Index) >= len(c.slots) {
		return nil, false
	}
	s := &c.slots[h.Index]
	if !s.live || s.gen != h.Generation {
		return nil, false
	}
	return s, true
}

// Resolve returns the resource behind h, or false for a released or
// foreign handle.
func (c *Cache[T]) Resolve(h Handle) (*T, bool) {
	s, ok := c.lookup(h)
	if !ok {
		return nil, false
	}
	return &s.value, true
}

// MustResolve is Resolve for handles the caller knows are held.
func (c *Cache[T]) MustResolve(h Handle) *T {
	v, ok := c.Resolve(h)
	if !ok {
		engine.Fatalf("stale resource handle %v", h)
	}
	return v
}

// Key returns the key h was loaded under.
func (c *Cache[T]) Key(h Handle) (string, bool) {
	s, ok := c.lookup(h)
	if !ok {
		return "", false
	}
	return s.key, true
}

// Release drops one reference. The last one unloads the resource and frees
// its slot. Releasing a stale handle is fatal.
func (c *Cache[T]) Release(h Handle) {
	s, ok := c.lookup(h)
	if !ok {
		engine.Fatalf("release of stale resource handle %v", h)
	}
	s.refs--
	if s.refs > 0 {
		return
	}
	c.drop(h.Index)
}

func (c *Cache[T]) drop(i uint32) {
	s := &c.slots[i]
	if c.unload != nil {
		c.unload(s.value)
	}
	delete(c.byKey, s.key)
	var zero T
	s.value, s.key, s.refs, s.live = zero, "", 0, false
	c.free = append(c.free, i)
}

// Len is the number of live resources.
func (c *Cache[T]) Len() int { return len(c.byKey) }

// Clear unloads everything regardless of reference counts.
func (c *Cache[T]) Clear() {
	for i := range c.slots {
		if c.slots[i].live {
			c.drop(uint32(i))
		}
	}
}
