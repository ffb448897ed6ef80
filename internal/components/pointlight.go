package components

import rl "github.com/gen2brain/raylib-go/raylib"

type PointLight struct {
	Color     rl.Color
	Intensity float32
	Radius    float32 // falloff distance
}

func initPointLight(p *PointLight) {
	p.Color = rl.White
	p.Intensity = 1
	p.Radius = 10
}

func serializePointLight(p *PointLight) map[string]any {
	return map[string]any{
		"color":     [3]uint8{p.Color.R, p.Color.G, p.Color.B},
		"intensity": p.Intensity,
		"radius":    p.Radius,
	}
}
