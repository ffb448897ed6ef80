package engine

import (
	"fmt"
	"reflect"

	"github.com/jinzhu/copier"
)

type flatSlot[T any] struct {
	data       T
	generation uint32
	state      slotState
	owner      EntityID
}

// FlatStore is a manager without an aspect map: AspectID.Index is the
// storage slot itself. It never moves live data between slots, which suits
// read-mostly aspects (meshes, text) scanned straight through by the
// renderer.
type FlatStore[T any] struct {
	typ   AspectType
	name  string
	hooks Hooks[T]

	slots []flatSlot[T]
	free  []uint32
	live  int
}

func NewFlatStore[T any](hooks Hooks[T], capacity int) *FlatStore[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &FlatStore[T]{hooks: hooks, slots: make([]flatSlot[T], 0, capacity)}
}

func (s *FlatStore[T]) Bind(t AspectType, name string) {
	s.typ = t
	s.name = name
}

func (s *FlatStore[T]) Type() AspectType { return s.typ }

func (s *FlatStore[T]) Name() string { return s.name }

func (s *FlatStore[T]) Elem() reflect.Type { return reflect.TypeFor[T]() }

func (s *FlatStore[T]) Len() int { return s.live }

func (s *FlatStore[T]) Slots() int { return len(s.slots) }

func (s *FlatStore[T]) New(owner EntityID) AspectID {
	var i uint32
	if n := len(s.free); n > 0 {
		i = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		s.slots = append(s.slots, flatSlot[T]{})
		i = uint32(len(s.slots) - 1)
	}
	slot := &s.slots[i]
	var zero T
	slot.data = zero
	slot.generation++
	slot.state = slotLive
	slot.owner = owner
	if s.hooks.Init != nil {
		s.hooks.Init(&slot.data)
	}
	s.live++
	return AspectID{Entity: owner, Type: s.typ, Index: i, Generation: slot.generation}
}

func (s *FlatStore[T]) Alive(id AspectID) bool {
	_, ok := s.Lookup(id)
	return ok
}

func (s *FlatStore[T]) Lookup(id AspectID) (*T, bool) {
	if id.Type != s.typ || int(id.Index) >= len(s.slots) {
		return nil, false
	}
	slot := &s.slots[id.Index]
	if slot.state != slotLive || slot.generation != id.Generation {
		return nil, false
	}
	return &slot.data, true
}

func (s *FlatStore[T]) Resolve(id AspectID) *T {
	v, ok := s.Lookup(id)
	if !ok {
		Fatalf("%s: invalid handle %v", s.name, id)
	}
	return v
}

func (s *FlatStore[T]) Destroy(id AspectID) {
	if !s.Alive(id) {
		Fatalf("%s: destroy of invalid handle %v", s.name, id)
	}
	slot := &s.slots[id.Index]
	if s.hooks.Destroy != nil {
		s.hooks.Destroy(&slot.data)
	}
	var zero T
	slot.data = zero
	slot.state = slotDead
	slot.owner = NoEntity
	s.free = append(s.free, id.Index)
	s.live--
}

func (s *FlatStore[T]) Clone(src AspectID, owner EntityID) AspectID {
	id := s.New(owner)
	from, to := s.Resolve(src), s.Resolve(id)
	if err := copier.CopyWithOption(to, from, copier.Option{DeepCopy: true}); err != nil {
		Fatalf("%s: clone %v: %v", s.name, src, err)
	}
	if s.hooks.Clone != nil {
		s.hooks.Clone(to, from)
	}
	return id
}

func (s *FlatStore[T]) Serialize(id AspectID) map[string]any {
	v := s.Resolve(id)
	if s.hooks.Serialize != nil {
		return s.hooks.Serialize(v)
	}
	return map[string]any{"value": fmt.Sprintf("%+v", *v)}
}

func (s *FlatStore[T]) At(i int) (*T, AspectID, bool) {
	if i < 0 || i >= len(s.slots) {
		return nil, AspectID{}, false
	}
	slot := &s.slots[i]
	if slot.state != slotLive {
		return nil, AspectID{}, false
	}
	return &slot.data, AspectID{Entity: slot.owner, Type: s.typ, Index: uint32(i), Generation: slot.generation}, true
}

func (s *FlatStore[T]) Cursor() Cursor {
	return newIterator[T](s)
}
