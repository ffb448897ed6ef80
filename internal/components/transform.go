package components

import (
	"aspect3d/internal/engine"
	"aspect3d/internal/geom"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// maxParentDepth bounds WorldMatrix's walk up the parent chain.
const maxParentDepth = 64

var (
	forward = rl.Vector3{Z: -1}
	up      = rl.Vector3{Y: 1}
	right   = rl.Vector3{X: 1}
)

// Transform places an entity in its parent's space.
//
// Orientation comes from exactly one of two sources. In Euler mode the
// angles in Euler (degrees, applied X then Y then Z) govern. In matrix mode
// RotationMatrix governs and whoever writes it keeps it orthonormal. The
// mode only changes through UseEuler and UseMatrix.
type Transform struct {
	Position        rl.Vector3
	Scale           rl.Vector3
	Center          rl.Vector3 // center of rotation, in local units
	EulerControlled bool
	Euler           rl.Vector3
	RotationMatrix  geom.Mat3
	Parent          engine.AspectID
}

func initTransform(t *Transform) {
	t.Scale = rl.Vector3{X: 1, Y: 1, Z: 1}
	t.EulerControlled = true
	t.RotationMatrix = geom.Identity3()
}

// Rotation returns the rotation as columns, whichever mode governs.
func (t *Transform) Rotation() geom.Mat3 {
	if !t.EulerControlled {
		return t.RotationMatrix
	}
	return geom.Euler(t.Euler)
}

// Matrix returns the local matrix: scale, rotation about Center, then
// translation. It is rebuilt on every call.
func (t *Transform) Matrix() rl.Matrix {
	m := rl.MatrixScale(t.Scale.X, t.Scale.Y, t.Scale.Z)
	m = rl.MatrixMultiply(m, rl.MatrixTranslate(-t.Center.X, -t.Center.Y, -t.Center.Z))
	m = rl.MatrixMultiply(m, t.Rotation().Matrix())
	m = rl.MatrixMultiply(m, rl.MatrixTranslate(t.Center.X+t.Position.X, t.Center.Y+t.Position.Y, t.Center.Z+t.Position.Z))
	return m
}

// WorldMatrix concatenates the local matrix with every ancestor's. A parent
// id that no longer resolves is fatal.
func (t *Transform) WorldMatrix(w *engine.World) rl.Matrix {
	m := t.Matrix()
	p := t.Parent
	for depth := 0; p.Valid(); depth++ {
		if depth == maxParentDepth {
			engine.Fatalf("transform parent chain deeper than %d (cycle?)", maxParentDepth)
		}
		parent := engine.Resolve[Transform](w, p)
		m = rl.MatrixMultiply(m, parent.Matrix())
		p = parent.Parent
	}
	return m
}

// WorldPosition is the origin of the transform in world space.
func (t *Transform) WorldPosition(w *engine.World) rl.Vector3 {
	return rl.Vector3Transform(rl.Vector3Zero(), t.WorldMatrix(w))
}

// Move translates by delta in parent space.
func (t *Transform) Move(delta rl.Vector3) {
	t.Position = rl.Vector3Add(t.Position, delta)
}

// MoveRelative translates by delta expressed in the transform's own basis.
func (t *Transform) MoveRelative(delta rl.Vector3) {
	t.Move(t.RelativeDirection(delta))
}

// RelativeDirection rotates a local direction into parent space. Scale and
// translation are ignored.
func (t *Transform) RelativeDirection(v rl.Vector3) rl.Vector3 {
	return t.Rotation().MulVec(v)
}

// RelativePosition maps a local point into parent space with the full
// local matrix.
func (t *Transform) RelativePosition(p rl.Vector3) rl.Vector3 {
	return rl.Vector3Transform(p, t.Matrix())
}

func (t *Transform) Forward() rl.Vector3 { return t.RelativeDirection(forward) }
func (t *Transform) Up() rl.Vector3      { return t.RelativeDirection(up) }
func (t *Transform) Right() rl.Vector3   { return t.RelativeDirection(right) }

// SetEuler writes the Euler angles. Fatal in matrix mode.
func (t *Transform) SetEuler(degrees rl.Vector3) {
	if !t.EulerControlled {
		engine.Fatalf("SetEuler on a matrix-controlled transform")
	}
	t.Euler = degrees
}

// Rotate adds to the Euler angles. Fatal in matrix mode.
func (t *Transform) Rotate(degrees rl.Vector3) {
	t.SetEuler(rl.Vector3Add(t.Euler, degrees))
}

// SetRotationMatrix writes the rotation matrix. Fatal in Euler mode.
func (t *Transform) SetRotationMatrix(r geom.Mat3) {
	if t.EulerControlled {
		engine.Fatalf("SetRotationMatrix on an Euler-controlled transform")
	}
	t.RotationMatrix = r
}

// UseMatrix switches to matrix mode, seeding the matrix from the current
// Euler rotation. No-op in matrix mode.
func (t *Transform) UseMatrix() {
	if !t.EulerControlled {
		return
	}
	t.RotationMatrix = t.Rotation()
	t.EulerControlled = false
}

// UseEuler switches to Euler mode with the given angles.
func (t *Transform) UseEuler(degrees rl.Vector3) {
	t.EulerControlled = true
	t.Euler = degrees
}

func serializeTransform(t *Transform) map[string]any {
	m := map[string]any{
		"position": t.Position,
		"scale":    t.Scale,
	}
	if t.EulerControlled {
		m["euler"] = t.Euler
	} else {
		m["rotation"] = t.RotationMatrix
	}
	if t.Center != (rl.Vector3{}) {
		m["center"] = t.Center
	}
	if t.Parent.Valid() {
		m["parent"] = t.Parent.String()
	}
	return m
}
