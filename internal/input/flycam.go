package input

import (
	"aspect3d/internal/components"
	"aspect3d/internal/engine"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// FlyCamera steers its entity's Transform: WASD moves along the view, Q and
// E move down and up, dragging with the right button looks around.
type FlyCamera struct {
	Yaw       float32 // degrees about +Y
	Pitch     float32 // degrees about +X, clamped to ±89
	MoveSpeed float32 // units per second
	LookSpeed float32 // degrees per pixel

	held    map[int32]bool
	looking bool
}

func NewFlyCamera() *FlyCamera {
	return &FlyCamera{MoveSpeed: 8, LookSpeed: 0.1, held: map[int32]bool{}}
}

// Attach subscribes the controller to e's Input aspect and installs a Logic
// aspect that applies it, adding the aspects e lacks. e must have a
// Transform.
func (c *FlyCamera) Attach(w *engine.World, e engine.EntityID) {
	t := engine.MustGet[components.Transform](w, e)
	c.Pitch, c.Yaw = t.Euler.X, t.Euler.Y

	in, ok := engine.Get[components.Input](w, e)
	if !ok {
		in, _ = engine.Add[components.Input](w, e)
	}
	in.On(components.KeyHandler(c.key))
	in.On(components.MouseButtonHandler(c.button))
	in.On(components.MouseMoveHandler(c.look))

	l, ok := engine.Get[components.Logic](w, e)
	if !ok {
		l, _ = engine.Add[components.Logic](w, e)
	}
	l.Behaviour = "FlyCamera"
	l.Update = c.update
}

func (c *FlyCamera) key(key int32, pressed bool) {
	if pressed {
		c.held[key] = true
	} else {
		delete(c.held, key)
	}
}

func (c *FlyCamera) button(b rl.MouseButton, pressed bool) {
	if b == rl.MouseButtonRight {
		c.looking = pressed
	}
}

func (c *FlyCamera) look(delta rl.Vector2) {
	if !c.looking {
		return
	}
	c.Yaw -= delta.X * c.LookSpeed
	c.Pitch = math32.Max(-89, math32.Min(89, c.Pitch-delta.Y*c.LookSpeed))
}

func (c *FlyCamera) axis(pos, neg int32) float32 {
	var v float32
	if c.held[pos] {
		v++
	}
	if c.held[neg] {
		v--
	}
	return v
}

func (c *FlyCamera) update(w *engine.World, self engine.AspectID, dt float32) {
	t := engine.Sibling[components.Transform](w, self)
	t.SetEuler(rl.Vector3{X: c.Pitch, Y: c.Yaw})

	move := rl.Vector3{
		X: c.axis(rl.KeyD, rl.KeyA),
		Y: c.axis(rl.KeyE, rl.KeyQ),
		Z: c.axis(rl.KeyS, rl.KeyW),
	}
	if l := rl.Vector3Length(move); l > 0 {
		t.MoveRelative(rl.Vector3Scale(move, c.MoveSpeed*dt/l))
	}
}
