package components

import (
	"slices"

	"aspect3d/internal/dd"
	"aspect3d/internal/engine"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rotisserie/eris"
)

// BehaviourFactory builds a Logic update closure from a scene dictionary.
type BehaviourFactory func(props *dd.Dict) (UpdateFunc, error)

// Behaviours maps scene-file behaviour names to factories.
type Behaviours struct {
	factories map[string]BehaviourFactory
}

func NewBehaviours() *Behaviours {
	return &Behaviours{factories: map[string]BehaviourFactory{}}
}

// DefaultBehaviours returns a registry holding the built-in behaviours.
func DefaultBehaviours() *Behaviours {
	b := NewBehaviours()
	b.Register("Rotator", rotatorFactory)
	b.Register("Orbiter", orbiterFactory)
	b.Register("Spinner", spinnerFactory)
	return b
}

// Register adds a named behaviour. Registering a name twice is fatal.
func (b *Behaviours) Register(name string, f BehaviourFactory) {
	if _, exists := b.factories[name]; exists {
		engine.Fatalf("behaviour %q already registered", name)
	}
	b.factories[name] = f
}

// Build creates the named behaviour's closure.
func (b *Behaviours) Build(name string, props *dd.Dict) (UpdateFunc, error) {
	f, ok := b.factories[name]
	if !ok {
		return nil, eris.Errorf("unknown behaviour %q", name)
	}
	fn, err := f(props)
	if err != nil {
		return nil, eris.Wrapf(err, "behaviour %q", name)
	}
	return fn, nil
}

// Names returns the registered names, sorted.
func (b *Behaviours) Names() []string {
	names := make([]string, 0, len(b.factories))
	for name := range b.factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Rotator spins an Euler-controlled transform around Y.
func rotatorFactory(props *dd.Dict) (UpdateFunc, error) {
	speed := props.Float("speed", 90)
	return func(w *engine.World, self engine.AspectID, dt float32) {
		t := engine.Sibling[Transform](w, self)
		y := t.Euler.Y + speed*dt
		if y > 360 {
			y -= 360
		}
		t.SetEuler(rl.Vector3{X: t.Euler.X, Y: y, Z: t.Euler.Z})
	}, nil
}

// Orbiter moves the transform on a circle around where it started, bobbing
// up and down.
func orbiterFactory(props *dd.Dict) (UpdateFunc, error) {
	radius := props.Float("radius", 2)
	speed := props.Float("speed", 1)
	phase := props.Float("phase", 0)
	var (
		started bool
		origin  rl.Vector3
		elapsed float32
	)
	return func(w *engine.World, self engine.AspectID, dt float32) {
		t := engine.Sibling[Transform](w, self)
		if !started {
			origin, started = t.Position, true
		}
		elapsed += dt
		a := elapsed*speed + phase
		t.Position = rl.Vector3Add(origin, rl.Vector3{
			X: math32.Cos(a) * radius,
			Y: math32.Sin(a*2) * 0.5,
			Z: math32.Sin(a) * radius,
		})
	}, nil
}

// Spinner sets the sibling rigid body's angular velocity once and leaves
// the rest to the integrator.
func spinnerFactory(props *dd.Dict) (UpdateFunc, error) {
	var omega rl.Vector3
	if err := props.Require("angular_velocity", dd.KindVec3, &omega); err != nil {
		return nil, err
	}
	done := false
	return func(w *engine.World, self engine.AspectID, dt float32) {
		if done {
			return
		}
		engine.Sibling[RigidBody](w, self).AngularVelocity = omega
		done = true
	}, nil
}
