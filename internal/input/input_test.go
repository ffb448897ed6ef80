package input

import (
	"testing"

	"aspect3d/internal/components"
	"aspect3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scripted struct {
	frames []Frame
}

func (s *scripted) Poll() Frame {
	if len(s.frames) == 0 {
		return Frame{}
	}
	f := s.frames[0]
	s.frames = s.frames[1:]
	return f
}

func newWorld() *engine.World {
	w := engine.NewWorld()
	components.Register(w)
	return w
}

type recorder struct {
	keys    []KeyEvent
	buttons []ButtonEvent
	moves   []rl.Vector2
	pos     []rl.Vector2
	scroll  []float32
}

func (r *recorder) attach(in *components.Input) {
	in.On(components.KeyHandler(func(k int32, p bool) { r.keys = append(r.keys, KeyEvent{k, p}) }))
	in.On(components.MouseButtonHandler(func(b rl.MouseButton, p bool) { r.buttons = append(r.buttons, ButtonEvent{b, p}) }))
	in.On(components.MouseMoveHandler(func(d rl.Vector2) { r.moves = append(r.moves, d) }))
	in.On(components.MousePositionHandler(func(p rl.Vector2) { r.pos = append(r.pos, p) }))
	in.On(components.ScrollHandler(func(s float32) { r.scroll = append(r.scroll, s) }))
}

func TestDispatchDeliversByKind(t *testing.T) {
	w := newWorld()
	in, _ := engine.Add[components.Input](w, w.NewEntity())
	var r recorder
	r.attach(in)

	src := &scripted{frames: []Frame{
		{
			Keys:          []KeyEvent{{Key: rl.KeyW, Pressed: true}},
			Buttons:       []ButtonEvent{{Button: rl.MouseButtonLeft, Pressed: true}},
			MousePosition: rl.Vector2{X: 10, Y: 20},
			MouseDelta:    rl.Vector2{X: 1},
			Scroll:        -1,
		},
		{MousePosition: rl.Vector2{X: 10, Y: 20}},
	}}
	Dispatch(w, src.Poll())
	Dispatch(w, src.Poll())

	assert.Equal(t, []KeyEvent{{Key: rl.KeyW, Pressed: true}}, r.keys)
	assert.Equal(t, []ButtonEvent{{Button: rl.MouseButtonLeft, Pressed: true}}, r.buttons)
	assert.Equal(t, []rl.Vector2{{X: 1}}, r.moves, "no move event without movement")
	assert.Len(t, r.pos, 2, "position every frame")
	assert.Equal(t, []float32{-1}, r.scroll)
}

func TestDispatchSkipsDisabled(t *testing.T) {
	w := newWorld()
	_, onID := engine.Add[components.Input](w, w.NewEntity())
	off, _ := engine.Add[components.Input](w, w.NewEntity())
	off.Disabled = true
	on := engine.Resolve[components.Input](w, onID)
	var a, b recorder
	a.attach(on)
	b.attach(off)

	Dispatch(w, Frame{Keys: []KeyEvent{{Key: rl.KeySpace, Pressed: true}}})
	assert.Len(t, a.keys, 1)
	assert.Empty(t, b.keys)
}

func TestFlyCamera(t *testing.T) {
	w := newWorld()
	e := w.NewEntity()
	engine.Add[components.Transform](w, e)
	cam := NewFlyCamera()
	cam.Attach(w, e)

	logic := engine.MustGet[components.Logic](w, e)
	require.NotNil(t, logic.Update)
	assert.Equal(t, "FlyCamera", logic.Behaviour)

	// hold W for one second: forward is -Z
	Dispatch(w, Frame{Keys: []KeyEvent{{Key: rl.KeyW, Pressed: true}}})
	components.RunLogic(w, 1)
	tr := engine.MustGet[components.Transform](w, e)
	assert.InDelta(t, -8, tr.Position.Z, 1e-4)

	// release W; looking needs the right button
	Dispatch(w, Frame{Keys: []KeyEvent{{Key: rl.KeyW}}, MouseDelta: rl.Vector2{X: 100}})
	assert.Equal(t, float32(0), cam.Yaw)
	Dispatch(w, Frame{
		Buttons:    []ButtonEvent{{Button: rl.MouseButtonRight, Pressed: true}},
		MouseDelta: rl.Vector2{X: -900, Y: -2000},
	})
	components.RunLogic(w, 1)
	assert.InDelta(t, 90, cam.Yaw, 1e-4)
	assert.Equal(t, float32(89), cam.Pitch, "pitch is clamped")
	assert.InDelta(t, -8, tr.Position.Z, 1e-4, "nothing held, no movement")
	assert.InDelta(t, 90, tr.Euler.Y, 1e-4)
}
