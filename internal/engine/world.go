package engine

import (
	"fmt"
	"io"
	"iter"
	"maps"
	"reflect"
	"slices"

	"github.com/google/uuid"
)

// World holds every manager and the entity table. Subsystems receive the
// World explicitly; there is no package-level registry, so independent
// worlds can coexist in one process.
//
// A World is not safe for concurrent use. Aspects may be added during
// iteration (see Iterator); everything else must happen between passes.
type World struct {
	managers []Manager
	byElem   map[reflect.Type]AspectType
	byName   map[string]AspectType

	entities     []entityRecord
	freeEntities []uint32
	byUUID       map[uuid.UUID]uint32
	live         int
}

func NewWorld() *World {
	return &World{
		byElem: make(map[reflect.Type]AspectType),
		byName: make(map[string]AspectType),
		byUUID: make(map[uuid.UUID]uint32),
	}
}

// Register creates the default Store for T, reserving hooks.Capacity
// slots, and returns its tag.
func Register[T any](w *World, name string, hooks Hooks[T]) AspectType {
	capacity := hooks.Capacity
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return w.RegisterManager(name, NewStore(hooks, capacity))
}

// RegisterManager binds m to a fresh tag. Registering the same Go type or
// the same name twice is fatal.
func (w *World) RegisterManager(name string, m Manager) AspectType {
	elem := m.Elem()
	if t, ok := w.byElem[elem]; ok {
		Fatalf("aspect type %s already registered as %q", elem, w.managers[t].Name())
	}
	if _, ok := w.byName[name]; ok {
		Fatalf("aspect name %q already registered", name)
	}
	if len(w.managers) > int(^AspectType(0)) {
		Fatalf("too many aspect types")
	}
	t := AspectType(len(w.managers))
	m.Bind(t, name)
	w.managers = append(w.managers, m)
	w.byElem[elem] = t
	w.byName[name] = t
	return t
}

// Manager returns the manager bound to t.
func (w *World) Manager(t AspectType) Manager {
	if int(t) >= len(w.managers) {
		Fatalf("unknown aspect type %d", t)
	}
	return w.managers[t]
}

// TypeByName returns the tag registered under name.
func (w *World) TypeByName(name string) (AspectType, bool) {
	t, ok := w.byName[name]
	return t, ok
}

// TypeOf returns the tag registered for T.
func TypeOf[T any](w *World) (AspectType, bool) {
	t, ok := w.byElem[reflect.TypeFor[T]()]
	return t, ok
}

// Types lists all registered tags in registration order.
func (w *World) Types() []AspectType {
	out := make([]AspectType, len(w.managers))
	for i := range out {
		out[i] = AspectType(i)
	}
	return out
}

func managerFor[T any](w *World) TypedManager[T] {
	elem := reflect.TypeFor[T]()
	t, ok := w.byElem[elem]
	if !ok {
		Fatalf("aspect type %s not registered", elem)
	}
	m, ok := w.managers[t].(TypedManager[T])
	if !ok {
		Fatalf("manager %q does not expose %s", w.managers[t].Name(), elem)
	}
	return m
}

// --- entities ---

// NewEntity reserves an entity with no aspects.
func (w *World) NewEntity() EntityID {
	var idx uint32
	if n := len(w.freeEntities); n > 0 {
		idx = w.freeEntities[n-1]
		w.freeEntities = w.freeEntities[:n-1]
	} else {
		w.entities = append(w.entities, entityRecord{})
		idx = uint32(len(w.entities) - 1)
	}
	rec := &w.entities[idx]
	rec.generation++
	rec.alive = true
	rec.uuid = uuid.New()
	rec.aspects = rec.aspects[:0]
	w.byUUID[rec.uuid] = idx
	w.live++
	return EntityID{Index: idx, Generation: rec.generation}
}

// NewEntityWithAspects reserves an entity together with one fresh aspect of
// each given type.
func (w *World) NewEntityWithAspects(types ...AspectType) EntityID {
	e := w.NewEntity()
	for _, t := range types {
		w.AddType(e, t)
	}
	return e
}

func (w *World) record(e EntityID) (*entityRecord, bool) {
	if e.IsZero() || int(e.Index) >= len(w.entities) {
		return nil, false
	}
	rec := &w.entities[e.Index]
	if !rec.alive || rec.generation != e.Generation {
		return nil, false
	}
	return rec, true
}

func (w *World) mustRecord(e EntityID) *entityRecord {
	rec, ok := w.record(e)
	if !ok {
		Fatalf("invalid entity %v", e)
	}
	return rec
}

// Alive reports whether e names a live entity.
func (w *World) Alive(e EntityID) bool {
	_, ok := w.record(e)
	return ok
}

// EntityCount is the number of live entities.
func (w *World) EntityCount() int {
	return w.live
}

// UUID returns the entity's unique name.
func (w *World) UUID(e EntityID) uuid.UUID {
	return w.mustRecord(e).uuid
}

// EntityByUUID finds a live entity by its unique name.
func (w *World) EntityByUUID(u uuid.UUID) (EntityID, bool) {
	idx, ok := w.byUUID[u]
	if !ok {
		return NoEntity, false
	}
	rec := &w.entities[idx]
	return EntityID{Index: idx, Generation: rec.generation}, rec.alive
}

// DestroyEntity releases every aspect of e, then the entity itself.
func (w *World) DestroyEntity(e EntityID) {
	rec := w.mustRecord(e)
	for _, id := range rec.aspects {
		if id.Valid() {
			w.managers[id.Type].Destroy(id)
		}
	}
	clear(rec.aspects)
	rec.aspects = rec.aspects[:0]
	rec.alive = false
	delete(w.byUUID, rec.uuid)
	w.freeEntities = append(w.freeEntities, e.Index)
	w.live--
}

// CloneEntity creates a new entity carrying a deep copy of every aspect of
// src. Each manager's Clone hook then fixes up the copy.
func (w *World) CloneEntity(src EntityID) EntityID {
	ids := slices.Clone(w.mustRecord(src).aspects)
	dst := w.NewEntity()
	for _, id := range ids {
		if !id.Valid() {
			continue
		}
		clone := w.managers[id.Type].Clone(id, dst)
		w.entities[dst.Index].attach(clone)
	}
	return dst
}

// Aspects lists the handles carried by e in type order.
func (w *World) Aspects(e EntityID) []AspectID {
	rec := w.mustRecord(e)
	out := make([]AspectID, 0, len(rec.aspects))
	for _, id := range rec.aspects {
		if id.Valid() {
			out = append(out, id)
		}
	}
	return out
}

// --- aspects ---

// AddType adds a fresh aspect of type t to e.
func (w *World) AddType(e EntityID, t AspectType) AspectID {
	rec := w.mustRecord(e)
	m := w.Manager(t)
	if rec.aspect(t).Valid() {
		Fatalf("%v already carries %s", e, m.Name())
	}
	id := m.New(e)
	rec.attach(id)
	return id
}

// AspectOf returns the handle of e's aspect of type t.
func (w *World) AspectOf(e EntityID, t AspectType) (AspectID, bool) {
	rec, ok := w.record(e)
	if !ok {
		return AspectID{}, false
	}
	id := rec.aspect(t)
	return id, id.Valid()
}

// DestroyAspect runs the manager's destroy hook and frees the slot. The id
// and any copy of it stop resolving.
func (w *World) DestroyAspect(id AspectID) {
	m := w.Manager(id.Type)
	if !m.Alive(id) {
		Fatalf("destroy of dead %v", id)
	}
	m.Destroy(id)
	if rec, ok := w.record(id.Entity); ok {
		rec.detach(id.Type)
	}
}

// Add attaches a fresh T to e and returns it with its handle.
func Add[T any](w *World, e EntityID) (*T, AspectID) {
	m := managerFor[T](w)
	id := w.AddType(e, m.Type())
	return m.Resolve(id), id
}

// Get returns e's T, or false when e is dead or carries no T.
func Get[T any](w *World, e EntityID) (*T, bool) {
	m := managerFor[T](w)
	id, ok := w.AspectOf(e, m.Type())
	if !ok {
		return nil, false
	}
	return m.Resolve(id), true
}

// MustGet is Get for callers that require the aspect.
func MustGet[T any](w *World, e EntityID) *T {
	v, ok := Get[T](w, e)
	if !ok {
		Fatalf("%v has no %s", e, managerFor[T](w).Name())
	}
	return v
}

// Resolve turns a live handle into its data.
func Resolve[T any](w *World, id AspectID) *T {
	return managerFor[T](w).Resolve(id)
}

// Lookup is the tolerant Resolve.
func Lookup[T any](w *World, id AspectID) (*T, bool) {
	return managerFor[T](w).Lookup(id)
}

// Sibling returns the T on the same entity as the aspect id.
func Sibling[T any](w *World, id AspectID) *T {
	v, ok := TrySibling[T](w, id)
	if !ok {
		Fatalf("%v has no sibling %s", id, managerFor[T](w).Name())
	}
	return v
}

// TrySibling is the tolerant Sibling.
func TrySibling[T any](w *World, id AspectID) (*T, bool) {
	if !w.Manager(id.Type).Alive(id) {
		Fatalf("sibling lookup from dead %v", id)
	}
	return Get[T](w, id.Entity)
}

// SiblingID returns the handle of the T on the same entity as id.
func SiblingID[T any](w *World, id AspectID) (AspectID, bool) {
	return w.AspectOf(id.Entity, managerFor[T](w).Type())
}

// Each returns a cursor over every live T.
func Each[T any](w *World) *Iterator[T] {
	return newIterator(managerFor[T](w))
}

// All ranges over every live T.
func All[T any](w *World) iter.Seq2[AspectID, *T] {
	return Each[T](w).Seq()
}

// Count is the number of live T.
func Count[T any](w *World) int {
	return managerFor[T](w).Len()
}

// --- lifecycle ---

// Close destroys every live entity, running all destroy hooks.
func (w *World) Close() {
	for i := range w.entities {
		rec := &w.entities[i]
		if rec.alive {
			w.DestroyEntity(EntityID{Index: uint32(i), Generation: rec.generation})
		}
	}
}

// Dump writes a debug listing of every live aspect through each manager's
// serialize hook.
func (w *World) Dump(out io.Writer) error {
	for _, m := range w.managers {
		if _, err := fmt.Fprintf(out, "%s (%d)\n", m.Name(), m.Len()); err != nil {
			return err
		}
		c := m.Cursor()
		for c.Next() {
			id := c.ID()
			fields := m.Serialize(id)
			if _, err := fmt.Fprintf(out, "  %v %s\n", id.Entity, w.entities[id.Entity.Index].uuid); err != nil {
				return err
			}
			for _, k := range slices.Sorted(maps.Keys(fields)) {
				if _, err := fmt.Fprintf(out, "    %s: %v\n", k, fields[k]); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
