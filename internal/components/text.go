package components

import rl "github.com/gen2brain/raylib-go/raylib"

// Text is a label drawn at the sibling Transform's world position, facing
// the screen.
type Text struct {
	Value    string
	FontSize int32
	Color    rl.Color
}

func initText(t *Text) {
	t.FontSize = 20
	t.Color = rl.White
}

func serializeText(t *Text) map[string]any {
	return map[string]any{
		"value":    t.Value,
		"fontSize": t.FontSize,
	}
}
