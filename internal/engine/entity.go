package engine

import (
	"fmt"

	"github.com/google/uuid"
)

// EntityID names a logical game object. Entities own no data; they are keys
// into the aspect managers. Generation 0 is never issued, so the zero value
// is "no entity".
type EntityID struct {
	Index      uint32
	Generation uint32
}

// NoEntity is the zero EntityID.
var NoEntity EntityID

func (e EntityID) IsZero() bool {
	return e.Generation == 0
}

func (e EntityID) String() string {
	if e.IsZero() {
		return "entity(none)"
	}
	return fmt.Sprintf("entity(%d#%d)", e.Index, e.Generation)
}

// entityRecord is one slot of the world's entity table.
type entityRecord struct {
	generation uint32
	alive      bool
	uuid       uuid.UUID
	// aspects is indexed by AspectType; a zero AspectID means "not carried".
	aspects []AspectID
}

func (r *entityRecord) aspect(t AspectType) AspectID {
	if int(t) >= len(r.aspects) {
		return AspectID{}
	}
	return r.aspects[t]
}

func (r *entityRecord) attach(id AspectID) {
	for int(id.Type) >= len(r.aspects) {
		r.aspects = append(r.aspects, AspectID{})
	}
	r.aspects[id.Type] = id
}

func (r *entityRecord) detach(t AspectType) {
	if int(t) < len(r.aspects) {
		r.aspects[t] = AspectID{}
	}
}
