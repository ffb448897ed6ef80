package components

import "aspect3d/internal/engine"

// UpdateFunc is a per-entity update closure. self is the Logic aspect being
// run; use engine.Sibling to reach the entity's other aspects.
type UpdateFunc func(w *engine.World, self engine.AspectID, dt float32)

// Logic runs its Update once per tick, before physics.
type Logic struct {
	Behaviour string // registry name, empty for code-built closures
	Update    UpdateFunc
	Props     map[string]any

	// rebuild makes a fresh closure from the definition ReadLogic saw.
	rebuild func() (UpdateFunc, error)
}

// cloneLogic gives a copied Logic its own closure state. Behaviours are
// rebuilt from their definition; code-built closures are dropped, since
// they capture the source entity.
func cloneLogic(dst, src *Logic) {
	dst.Update, dst.rebuild = nil, src.rebuild
	if src.rebuild == nil {
		return
	}
	fn, err := src.rebuild()
	if err != nil {
		engine.Fatalf("clone behaviour %q: %v", src.Behaviour, err)
	}
	dst.Update = fn
}

// RunLogic calls every live Logic aspect's update. Aspects added during the
// pass may or may not run this tick.
func RunLogic(w *engine.World, dt float32) {
	it := engine.Each[Logic](w)
	for it.Next() {
		l := it.Get()
		if l.Update == nil {
			continue
		}
		l.Update(w, it.ID(), dt)
	}
}

func serializeLogic(l *Logic) map[string]any {
	m := map[string]any{"behaviour": l.Behaviour}
	for k, v := range l.Props {
		m[k] = v
	}
	return m
}
