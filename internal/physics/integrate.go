package physics

import (
	"aspect3d/internal/components"
	"aspect3d/internal/engine"
	"aspect3d/internal/geom"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Step advances every live RigidBody by dt with semi-implicit Euler,
// writing the result into the body's sibling Transform. A RigidBody without
// a Transform is fatal.
//
// Angular motion runs for immovable bodies too: only linear momentum is
// scaled by InverseMass.
func Step(w *engine.World, dt float32) {
	it := engine.Each[components.RigidBody](w)
	for it.Next() {
		rb := it.Get()
		t := engine.Sibling[components.Transform](w, it.ID())
		Integrate(rb, t, dt)
	}
}

// Integrate advances one body. The transform switches to matrix mode on
// first use and stays there.
func Integrate(rb *components.RigidBody, t *components.Transform, dt float32) {
	t.Move(rl.Vector3Scale(rb.LinearMomentum, rb.InverseMass*dt))

	t.UseMatrix()
	r := t.RotationMatrix
	wdt := rl.Vector3Scale(rb.AngularVelocity, dt)
	// R += skew(w dt) R, column by column: skew(a) c = a x c
	for i := range r {
		r[i] = rl.Vector3Add(r[i], rl.Vector3CrossProduct(wdt, r[i]))
	}
	t.SetRotationMatrix(Orthonormalize(r))
}

// Orthonormalize applies Gram-Schmidt: the first column is normalized, the
// second made orthogonal to it and normalized, the third rebuilt as their
// cross product.
func Orthonormalize(r geom.Mat3) geom.Mat3 {
	x := rl.Vector3Normalize(r[0])
	y := rl.Vector3Subtract(r[1], rl.Vector3Scale(x, rl.Vector3DotProduct(x, r[1])))
	y = rl.Vector3Normalize(y)
	z := rl.Vector3CrossProduct(x, y)
	return geom.Mat3{x, y, z}
}

// ApplyImpulse adds impulse to the body's linear momentum and, through arm
// (the application point relative to the center of mass, world axes), to
// its angular momentum. The angular velocity follows through the inverse
// inertia tensor.
func ApplyImpulse(rb *components.RigidBody, impulse, arm rl.Vector3) {
	rb.LinearMomentum = rl.Vector3Add(rb.LinearMomentum, impulse)
	dl := rl.Vector3CrossProduct(arm, impulse)
	rb.AngularMomentum = rl.Vector3Add(rb.AngularMomentum, dl)
	rb.AngularVelocity = rl.Vector3Add(rb.AngularVelocity, rb.InverseInertia.MulVec(dl))
}
