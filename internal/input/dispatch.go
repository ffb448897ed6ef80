package input

import (
	"aspect3d/internal/components"
	"aspect3d/internal/engine"
)

// Dispatch delivers f to every enabled Input aspect in w, synchronously.
// Mouse movement and scroll are only sent when non-zero; the cursor
// position is sent every frame. Handlers may add aspects but must not
// destroy Input aspects.
func Dispatch(w *engine.World, f Frame) {
	for _, in := range engine.All[components.Input](w) {
		if in.Disabled {
			continue
		}
		for _, h := range in.Handlers {
			deliver(h, &f)
		}
	}
}

func deliver(h components.InputHandler, f *Frame) {
	switch h := h.(type) {
	case components.KeyHandler:
		for _, k := range f.Keys {
			h(k.Key, k.Pressed)
		}
	case components.MousePositionHandler:
		h(f.MousePosition)
	case components.MouseMoveHandler:
		if f.MouseDelta.X != 0 || f.MouseDelta.Y != 0 {
			h(f.MouseDelta)
		}
	case components.MouseButtonHandler:
		for _, b := range f.Buttons {
			h(b.Button, b.Pressed)
		}
	case components.ScrollHandler:
		if f.Scroll != 0 {
			h(f.Scroll)
		}
	default:
		engine.Fatalf("unhandled input handler %T", h)
	}
}
