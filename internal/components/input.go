package components

import rl "github.com/gen2brain/raylib-go/raylib"

// InputHandler is one event subscription. The set of handler kinds is
// closed; dispatch switches on the concrete type.
type InputHandler interface {
	inputHandler()
}

// KeyHandler receives key presses and releases.
type KeyHandler func(key int32, pressed bool)

// MousePositionHandler receives the cursor position in window pixels.
type MousePositionHandler func(pos rl.Vector2)

// MouseMoveHandler receives the cursor movement since the last frame.
type MouseMoveHandler func(delta rl.Vector2)

// MouseButtonHandler receives button presses and releases.
type MouseButtonHandler func(button rl.MouseButton, pressed bool)

// ScrollHandler receives wheel movement.
type ScrollHandler func(delta float32)

func (KeyHandler) inputHandler()           {}
func (MousePositionHandler) inputHandler() {}
func (MouseMoveHandler) inputHandler()     {}
func (MouseButtonHandler) inputHandler()   {}
func (ScrollHandler) inputHandler()        {}

// Input holds an entity's event subscriptions.
type Input struct {
	Handlers []InputHandler
	Disabled bool
}

// On adds a subscription.
func (in *Input) On(h InputHandler) {
	in.Handlers = append(in.Handlers, h)
}

// cloneInput leaves the copy without subscriptions; handlers close over the
// source entity.
func cloneInput(dst, _ *Input) {
	dst.Handlers = nil
}

func serializeInput(in *Input) map[string]any {
	return map[string]any{
		"handlers": len(in.Handlers),
		"disabled": in.Disabled,
	}
}
