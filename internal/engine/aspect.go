package engine

import (
	"fmt"
	"reflect"
)

// AspectType tags one registered aspect kind. Tags are assigned in
// registration order and stay stable for the life of the World.
type AspectType uint16

// AspectID is a stable handle to one aspect instance. Index addresses the
// manager's aspect map, not its storage, so the id keeps resolving to the
// same logical aspect after the backing store grows or is compacted.
type AspectID struct {
	Entity     EntityID
	Type       AspectType
	Index      uint32
	Generation uint32
}

// Valid reports whether the id was ever issued. It says nothing about
// whether the aspect is still alive.
func (id AspectID) Valid() bool {
	return id.Generation != 0
}

func (id AspectID) String() string {
	if !id.Valid() {
		return "aspect(none)"
	}
	return fmt.Sprintf("aspect(%d:%d#%d of %v)", id.Type, id.Index, id.Generation, id.Entity)
}

// Hooks customise a Store. All hooks are optional.
type Hooks[T any] struct {
	// Init runs on freshly zeroed data when an aspect is added.
	Init func(v *T)
	// Destroy releases anything the aspect holds before its slot is freed.
	Destroy func(v *T)
	// Serialize produces the debug dump of one aspect.
	Serialize func(v *T) map[string]any
	// Clone runs after src has been deep-copied into dst. It rebuilds
	// whatever a plain copy would leave shared, such as closures.
	Clone func(dst, src *T)
	// Capacity is the initial slot count Register reserves. Zero means
	// DefaultCapacity.
	Capacity int
}

// DefaultCapacity is the slot count Register reserves when Hooks leave
// Capacity unset.
const DefaultCapacity = 32

// Cursor walks the live slots of a manager in storage order.
type Cursor interface {
	Next() bool
	ID() AspectID
	Reset()
}

// Manager owns the storage of one aspect type. Store and FlatStore are the
// stock implementations; RegisterManager accepts any other.
type Manager interface {
	// Bind is called once by RegisterManager.
	Bind(t AspectType, name string)
	Type() AspectType
	Name() string
	// Elem is the Go type of the aspect data.
	Elem() reflect.Type

	New(owner EntityID) AspectID
	Destroy(id AspectID)
	Alive(id AspectID) bool
	Clone(src AspectID, owner EntityID) AspectID
	Serialize(id AspectID) map[string]any
	Cursor() Cursor
	Len() int
}

// TypedManager is a Manager whose data can be reached as *T.
type TypedManager[T any] interface {
	Manager
	Resolve(id AspectID) *T
	Lookup(id AspectID) (*T, bool)
	// Slots is the number of storage slots, live or not.
	Slots() int
	// At returns the data and id at storage slot i when that slot is live.
	At(i int) (*T, AspectID, bool)
}
