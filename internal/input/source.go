// Package input polls the window once per frame and delivers the result
// to Input aspects.
package input

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

type KeyEvent struct {
	Key     int32
	Pressed bool
}

type ButtonEvent struct {
	Button  rl.MouseButton
	Pressed bool
}

// Frame is one poll's worth of input.
type Frame struct {
	Keys          []KeyEvent
	Buttons       []ButtonEvent
	MousePosition rl.Vector2
	MouseDelta    rl.Vector2
	Scroll        float32
}

// Source produces a Frame per call. Implementations may reuse the slices
// between calls.
type Source interface {
	Poll() Frame
}

var mouseButtons = []rl.MouseButton{rl.MouseButtonLeft, rl.MouseButtonRight, rl.MouseButtonMiddle}

// Raylib reads the raylib window. It reports releases only for keys it saw
// pressed.
type Raylib struct {
	down  map[int32]bool
	frame Frame
}

func NewRaylib() *Raylib {
	return &Raylib{down: map[int32]bool{}}
}

func (r *Raylib) Poll() Frame {
	f := &r.frame
	f.Keys = f.Keys[:0]
	f.Buttons = f.Buttons[:0]

	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		f.Keys = append(f.Keys, KeyEvent{Key: key, Pressed: true})
		r.down[key] = true
	}
	for key := range r.down {
		if rl.IsKeyReleased(key) {
			f.Keys = append(f.Keys, KeyEvent{Key: key})
			delete(r.down, key)
		}
	}

	for _, b := range mouseButtons {
		if rl.IsMouseButtonPressed(b) {
			f.Buttons = append(f.Buttons, ButtonEvent{Button: b, Pressed: true})
		}
		if rl.IsMouseButtonReleased(b) {
			f.Buttons = append(f.Buttons, ButtonEvent{Button: b})
		}
	}

	f.MousePosition = rl.GetMousePosition()
	f.MouseDelta = rl.GetMouseDelta()
	f.Scroll = rl.GetMouseWheelMove()
	return *f
}
