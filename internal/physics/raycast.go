package physics

import (
	"aspect3d/internal/components"
	"aspect3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type RaycastHit struct {
	Body     engine.AspectID
	Point    rl.Vector3
	Normal   rl.Vector3
	Distance float32
}

// Raycast returns the closest shaped RigidBody whose world bounds the ray
// hits within maxDistance. The test is against bounds, not the hull.
func Raycast(w *engine.World, origin, direction rl.Vector3, maxDistance float32) (RaycastHit, bool) {
	direction = rl.Vector3Normalize(direction)
	closest := RaycastHit{Distance: maxDistance}
	hit := false

	for id, rb := range engine.All[components.RigidBody](w) {
		if rb.Shape == nil {
			continue
		}
		t, normal, ok := WorldShape(w, id).Bounds().Raycast(origin, direction, closest.Distance)
		if !ok {
			continue
		}
		closest = RaycastHit{
			Body:     id,
			Point:    rl.Vector3Add(origin, rl.Vector3Scale(direction, t)),
			Normal:   normal,
			Distance: t,
		}
		hit = true
	}
	return closest, hit
}
