package engine

import (
	"fmt"
	"reflect"

	"github.com/jinzhu/copier"
)

type slotState uint8

const (
	slotEmpty slotState = iota // never allocated
	slotLive
	slotDead // destroyed, reusable
)

type record[T any] struct {
	data   T
	state  slotState
	handle uint32 // index into Store.handles
	owner  EntityID
}

// mapEntry is one row of the aspect map: where the aspect behind a handle
// currently lives.
type mapEntry struct {
	storage    uint32
	generation uint32
	live       bool
}

// Store is the default manager: a growable backing array of records plus an
// aspect map translating AspectID.Index into a storage slot. Destroyed slots
// are tagged dead and reused by later adds; nothing is shifted, so ids of
// other aspects stay put.
//
// Pointers returned by Resolve point into the backing array and are only
// valid until the next New on the same store. Keep AspectIDs across frames,
// never pointers.
type Store[T any] struct {
	typ   AspectType
	name  string
	hooks Hooks[T]

	records     []record[T]
	handles     []mapEntry
	freeRecords []uint32
	freeHandles []uint32
	live        int
}

// NewStore returns an unbound store with room for capacity aspects before
// its first growth.
func NewStore[T any](hooks Hooks[T], capacity int) *Store[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &Store[T]{
		hooks:   hooks,
		records: make([]record[T], 0, capacity),
		handles: make([]mapEntry, 0, capacity),
	}
}

func (s *Store[T]) Bind(t AspectType, name string) {
	s.typ = t
	s.name = name
}

func (s *Store[T]) Type() AspectType { return s.typ }

func (s *Store[T]) Name() string { return s.name }

func (s *Store[T]) Elem() reflect.Type { return reflect.TypeFor[T]() }

// Len is the number of live aspects.
func (s *Store[T]) Len() int { return s.live }

// Cap is the capacity of the backing array. It changes when the store grows.
func (s *Store[T]) Cap() int { return cap(s.records) }

func (s *Store[T]) Slots() int { return len(s.records) }

func (s *Store[T]) New(owner EntityID) AspectID {
	var slot uint32
	if n := len(s.freeRecords); n > 0 {
		slot = s.freeRecords[n-1]
		s.freeRecords = s.freeRecords[:n-1]
	} else {
		s.records = append(s.records, record[T]{})
		slot = uint32(len(s.records) - 1)
	}

	var h uint32
	if n := len(s.freeHandles); n > 0 {
		h = s.freeHandles[n-1]
		s.freeHandles = s.freeHandles[:n-1]
	} else {
		s.handles = append(s.handles, mapEntry{})
		h = uint32(len(s.handles) - 1)
	}

	entry := &s.handles[h]
	entry.storage = slot
	entry.generation++
	entry.live = true

	rec := &s.records[slot]
	var zero T
	rec.data = zero
	rec.state = slotLive
	rec.handle = h
	rec.owner = owner
	if s.hooks.Init != nil {
		s.hooks.Init(&rec.data)
	}
	s.live++

	return AspectID{Entity: owner, Type: s.typ, Index: h, Generation: entry.generation}
}

func (s *Store[T]) entry(id AspectID) (*mapEntry, bool) {
	if id.Type != s.typ || int(id.Index) >= len(s.handles) {
		return nil, false
	}
	e := &s.handles[id.Index]
	if !e.live || e.generation != id.Generation {
		return nil, false
	}
	return e, true
}

func (s *Store[T]) Alive(id AspectID) bool {
	_, ok := s.entry(id)
	return ok
}

func (s *Store[T]) Lookup(id AspectID) (*T, bool) {
	e, ok := s.entry(id)
	if !ok {
		return nil, false
	}
	return &s.records[e.storage].data, true
}

// Resolve is Lookup for callers that hold a handle they know to be alive.
func (s *Store[T]) Resolve(id AspectID) *T {
	v, ok := s.Lookup(id)
	if !ok {
		Fatalf("%s: invalid handle %v", s.name, id)
	}
	return v
}

func (s *Store[T]) Destroy(id AspectID) {
	e, ok := s.entry(id)
	if !ok {
		Fatalf("%s: destroy of invalid handle %v", s.name, id)
	}
	rec := &s.records[e.storage]
	if rec.state != slotLive {
		Fatalf("%s: destroy of slot %d in state %d", s.name, e.storage, rec.state)
	}
	if s.hooks.Destroy != nil {
		s.hooks.Destroy(&rec.data)
	}
	var zero T
	rec.data = zero
	rec.state = slotDead
	rec.owner = NoEntity

	s.freeRecords = append(s.freeRecords, e.storage)
	e.live = false
	s.freeHandles = append(s.freeHandles, id.Index)
	s.live--
}

func (s *Store[T]) Clone(src AspectID, owner EntityID) AspectID {
	id := s.New(owner)
	// New may have grown the backing array; resolve both after it.
	from := s.Resolve(src)
	to := s.Resolve(id)
	if err := copier.CopyWithOption(to, from, copier.Option{DeepCopy: true}); err != nil {
		Fatalf("%s: clone %v: %v", s.name, src, err)
	}
	if s.hooks.Clone != nil {
		s.hooks.Clone(to, from)
	}
	return id
}

func (s *Store[T]) Serialize(id AspectID) map[string]any {
	v := s.Resolve(id)
	if s.hooks.Serialize != nil {
		return s.hooks.Serialize(v)
	}
	return map[string]any{"value": fmt.Sprintf("%+v", *v)}
}

func (s *Store[T]) At(i int) (*T, AspectID, bool) {
	if i < 0 || i >= len(s.records) {
		return nil, AspectID{}, false
	}
	rec := &s.records[i]
	if rec.state != slotLive {
		return nil, AspectID{}, false
	}
	id := AspectID{
		Entity:     rec.owner,
		Type:       s.typ,
		Index:      rec.handle,
		Generation: s.handles[rec.handle].generation,
	}
	return &rec.data, id, true
}

func (s *Store[T]) Cursor() Cursor {
	return newIterator[T](s)
}

// Compact moves every live record to the front of the backing array and
// rewrites the aspect map. Issued AspectIDs keep resolving; pointers and
// running iterators do not survive it.
func (s *Store[T]) Compact() {
	w := 0
	for r := range s.records {
		if s.records[r].state != slotLive {
			continue
		}
		if w != r {
			s.records[w] = s.records[r]
			s.handles[s.records[w].handle].storage = uint32(w)
		}
		w++
	}
	clear(s.records[w:])
	s.records = s.records[:w]
	s.freeRecords = s.freeRecords[:0]
}
