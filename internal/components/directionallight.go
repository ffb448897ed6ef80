package components

import (
	"aspect3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// DirectionalLight shines along its sibling Transform's forward axis.
type DirectionalLight struct {
	Color        rl.Color
	Intensity    float32
	AmbientColor rl.Color
}

func initDirectionalLight(l *DirectionalLight) {
	l.Color = rl.White
	l.Intensity = 1
	l.AmbientColor = rl.NewColor(25, 25, 25, 255)
}

// Direction is the normalized world-space direction of the light.
func (l *DirectionalLight) Direction(w *engine.World, t *Transform) rl.Vector3 {
	m := t.WorldMatrix(w)
	d := rl.Vector3Subtract(rl.Vector3Transform(forward, m), rl.Vector3Transform(rl.Vector3Zero(), m))
	return rl.Vector3Normalize(d)
}

func (l *DirectionalLight) ColorFloat() []float32 {
	return []float32{
		float32(l.Color.R) / 255.0 * l.Intensity,
		float32(l.Color.G) / 255.0 * l.Intensity,
		float32(l.Color.B) / 255.0 * l.Intensity,
		1.0,
	}
}

func (l *DirectionalLight) AmbientFloat() []float32 {
	return []float32{
		float32(l.AmbientColor.R) / 255.0,
		float32(l.AmbientColor.G) / 255.0,
		float32(l.AmbientColor.B) / 255.0,
		1.0,
	}
}

func serializeDirectionalLight(l *DirectionalLight) map[string]any {
	return map[string]any{
		"color":     [3]uint8{l.Color.R, l.Color.G, l.Color.B},
		"intensity": l.Intensity,
	}
}
