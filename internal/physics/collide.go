package physics

import (
	"aspect3d/internal/components"
	"aspect3d/internal/engine"
	"aspect3d/internal/geom"
)

// WorldShape returns the body's shape placed by its sibling Transform.
func WorldShape(w *engine.World, body engine.AspectID) geom.Polytope {
	rb := engine.Resolve[components.RigidBody](w, body)
	t := engine.Sibling[components.Transform](w, body)
	switch s := rb.Shape.(type) {
	case geom.Polytope:
		return s.Transformed(t.WorldMatrix(w))
	case nil:
		engine.Fatalf("rigid body %s has no shape", body)
	}
	engine.Fatalf("rigid body %s: unhandled shape %T", body, rb.Shape)
	return geom.Polytope{}
}

// Collide runs GJK on two RigidBody aspects in world space.
func Collide(w *engine.World, a, b engine.AspectID, opts Options) Manifold {
	return GJK(WorldShape(w, a).Points, WorldShape(w, b).Points, opts)
}

// BoundsOverlap is the cheap reject test: false means the two bodies are
// certainly apart.
func BoundsOverlap(w *engine.World, a, b engine.AspectID) bool {
	return WorldShape(w, a).Bounds().Intersects(WorldShape(w, b).Bounds())
}
