package components

import (
	"aspect3d/internal/geom"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// RigidBody is momentum-based dynamical state. The integrator moves the
// sibling Transform.
//
// InverseMass == 0 marks an immovable body: linear momentum has no effect.
// AngularVelocity (radians per second) is applied regardless of mass.
type RigidBody struct {
	LinearMomentum  rl.Vector3
	AngularMomentum rl.Vector3
	AngularVelocity rl.Vector3
	Mass            float32
	InverseMass     float32
	CenterOfMass    rl.Vector3
	Inertia         geom.Mat3
	InverseInertia  geom.Mat3
	Shape           geom.Shape
}

// SetMass sets mass and inverse mass. A non-positive mass makes the body
// immovable.
func (rb *RigidBody) SetMass(m float32) {
	if m <= 0 {
		rb.Mass, rb.InverseMass = 0, 0
		return
	}
	rb.Mass, rb.InverseMass = m, 1/m
}

// Immovable reports whether linear momentum is ignored.
func (rb *RigidBody) Immovable() bool {
	return rb.InverseMass == 0
}

// Velocity is the linear velocity implied by the momentum.
func (rb *RigidBody) Velocity() rl.Vector3 {
	return rl.Vector3Scale(rb.LinearMomentum, rb.InverseMass)
}

// SetVelocity sets the linear momentum that yields v.
func (rb *RigidBody) SetVelocity(v rl.Vector3) {
	rb.LinearMomentum = rl.Vector3Scale(v, rb.Mass)
}

// SetBoxInertia sets the inertia tensor of a solid box with the given half
// extents about its center. Mass must be set first; an immovable body gets a
// zero inverse tensor.
func (rb *RigidBody) SetBoxInertia(half rl.Vector3) {
	x, y, z := 4*half.X*half.X, 4*half.Y*half.Y, 4*half.Z*half.Z
	k := rb.Mass / 12
	d := rl.Vector3{X: k * (y + z), Y: k * (x + z), Z: k * (x + y)}
	rb.Inertia = geom.Diagonal(d)
	rb.InverseInertia = geom.Mat3{}
	if rb.Immovable() || d.X == 0 || d.Y == 0 || d.Z == 0 {
		return
	}
	rb.InverseInertia = geom.Diagonal(rl.Vector3{X: 1 / d.X, Y: 1 / d.Y, Z: 1 / d.Z})
}

func serializeRigidBody(rb *RigidBody) map[string]any {
	m := map[string]any{
		"mass":             rb.Mass,
		"linear_momentum":  rb.LinearMomentum,
		"angular_velocity": rb.AngularVelocity,
	}
	switch s := rb.Shape.(type) {
	case geom.Polytope:
		m["shape"] = "polytope"
		m["points"] = len(s.Points)
	case nil:
		m["shape"] = "none"
	}
	return m
}
