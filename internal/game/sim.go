package game

import (
	"aspect3d/internal/components"
	"aspect3d/internal/config"
	"aspect3d/internal/engine"
	"aspect3d/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Contact is one overlapping pair found after a physics tick.
type Contact struct {
	A, B     engine.AspectID
	Manifold physics.Manifold
}

// Sim runs everything in a frame that does not need a window: Logic
// aspects, then fixed-step integration and pairwise GJK.
type Sim struct {
	World     *engine.World
	Paused    bool
	TimeScale float32

	// OnContact fires once per overlapping pair per tick.
	OnContact engine.EventWithArg[Contact]
	Contacts  []Contact

	cfg    config.Sim
	acc    float32
	bodies []engine.AspectID
}

func NewSim(w *engine.World, cfg config.Sim) *Sim {
	return &Sim{World: w, TimeScale: 1, cfg: cfg}
}

// Update advances the simulation by a frame of dt seconds and returns the
// number of physics ticks it ran.
func (s *Sim) Update(dt float32) int {
	if s.Paused {
		return 0
	}
	dt *= s.TimeScale
	components.RunLogic(s.World, dt)

	if s.cfg.FixedStep <= 0 {
		s.tick(dt)
		return 1
	}
	s.acc += dt
	ticks := 0
	for s.acc >= s.cfg.FixedStep && ticks < s.cfg.MaxSteps {
		s.tick(s.cfg.FixedStep)
		s.acc -= s.cfg.FixedStep
		ticks++
	}
	if ticks == s.cfg.MaxSteps {
		// drop the backlog rather than spiral
		s.acc = 0
	}
	return ticks
}

func (s *Sim) tick(dt float32) {
	physics.Step(s.World, dt)
	s.Contacts = s.Contacts[:0]
	if s.cfg.Collisions {
		s.collide()
	}
}

// collide tests every pair of shaped bodies. Two immovable bodies are
// never tested.
func (s *Sim) collide() {
	s.bodies = s.bodies[:0]
	for id, rb := range engine.All[components.RigidBody](s.World) {
		if rb.Shape != nil {
			s.bodies = append(s.bodies, id)
		}
	}
	opts := physics.Options{MaxIterations: s.cfg.GJKMaxIterations}
	for i, a := range s.bodies {
		ra := engine.Resolve[components.RigidBody](s.World, a)
		for _, b := range s.bodies[i+1:] {
			if ra.Immovable() && engine.Resolve[components.RigidBody](s.World, b).Immovable() {
				continue
			}
			if !physics.BoundsOverlap(s.World, a, b) {
				continue
			}
			m := physics.Collide(s.World, a, b, opts)
			if m.Status == physics.Separated {
				continue
			}
			c := Contact{A: a, B: b, Manifold: m}
			s.Contacts = append(s.Contacts, c)
			s.OnContact.Invoke(c)
		}
	}
}

// Poke casts a ray and applies an impulse of the given strength along it
// to the first body hit, at the hit point.
func (s *Sim) Poke(origin, direction rl.Vector3, strength float32) (physics.RaycastHit, bool) {
	hit, ok := physics.Raycast(s.World, origin, direction, pokeRange)
	if !ok {
		return hit, false
	}
	rb := engine.Resolve[components.RigidBody](s.World, hit.Body)
	center := engine.Sibling[components.Transform](s.World, hit.Body).WorldPosition(s.World)
	impulse := rl.Vector3Scale(rl.Vector3Normalize(direction), strength)
	physics.ApplyImpulse(rb, impulse, rl.Vector3Subtract(hit.Point, center))
	return hit, true
}

const pokeRange = 1000
