// Package render is the boundary between the world and the graphics
// backend. Frame walks the aspects once per frame and hands the visible
// bodies to a Renderer.
package render

import (
	"aspect3d/internal/components"
	"aspect3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Light slots in the lighting shader.
const (
	MaxDirectionalLights = 1
	MaxPointLights       = 4
)

type DirectionalLight struct {
	Direction rl.Vector3
	Color     []float32
	Ambient   []float32
}

type PointLight struct {
	Position  rl.Vector3
	Color     []float32
	Intensity float32
	Radius    float32
}

// View is everything a renderer needs before the first body.
type View struct {
	Camera      rl.Camera3D
	ViewProj    rl.Matrix
	Directional []DirectionalLight
	Points      []PointLight
}

// Renderer draws one frame. RenderBody receives the body's world matrix;
// scaling by Body.Size is the renderer's job.
type Renderer interface {
	BeginFrame(v *View)
	RenderBody(viewProj rl.Matrix, body *components.Body, transform rl.Matrix)
	RenderText(text *components.Text, at rl.Vector3)
	EndFrame()
}

type Stats struct {
	Bodies int
	Culled int
	Texts  int
	Lights int
}

// MainCamera returns the camera flagged IsMain, else the first live one.
func MainCamera(w *engine.World) (engine.AspectID, bool) {
	var first engine.AspectID
	for id, c := range engine.All[components.Camera](w) {
		if c.IsMain {
			return id, true
		}
		if !first.Valid() {
			first = id
		}
	}
	return first, first.Valid()
}

// Frame renders w through r from the main camera. It reports false, and
// draws nothing, when the world has no camera.
func Frame(w *engine.World, r Renderer, aspect float32) (Stats, bool) {
	camID, ok := MainCamera(w)
	if !ok {
		return Stats{}, false
	}
	cam := engine.Resolve[components.Camera](w, camID)
	camT := engine.Sibling[components.Transform](w, camID)

	view := &View{
		Camera:   cam.Raylib(w, camT),
		ViewProj: cam.ViewProjection(w, camT, aspect),
	}
	collectLights(w, view)
	stats := Stats{Lights: len(view.Directional) + len(view.Points)}

	frustum := ExtractFrustum(view.ViewProj)
	r.BeginFrame(view)

	bodies := engine.Each[components.Body](w)
	for bodies.Next() {
		b := bodies.Get()
		if b.Hidden {
			continue
		}
		m := engine.Sibling[components.Transform](w, bodies.ID()).WorldMatrix(w)
		if !frustum.ContainsAABB(b.LocalBounds().Transformed(m)) {
			stats.Culled++
			continue
		}
		r.RenderBody(view.ViewProj, b, m)
		stats.Bodies++
	}

	for id, text := range engine.All[components.Text](w) {
		at := engine.Sibling[components.Transform](w, id).WorldPosition(w)
		if !frustum.ContainsPoint(at) {
			continue
		}
		r.RenderText(text, at)
		stats.Texts++
	}

	r.EndFrame()
	return stats, true
}

// collectLights fills the light slots. More lights than slots is fatal.
func collectLights(w *engine.World, v *View) {
	for id, l := range engine.All[components.DirectionalLight](w) {
		if len(v.Directional) == MaxDirectionalLights {
			engine.Fatalf("more than %d directional lights", MaxDirectionalLights)
		}
		t := engine.Sibling[components.Transform](w, id)
		v.Directional = append(v.Directional, DirectionalLight{
			Direction: l.Direction(w, t),
			Color:     l.ColorFloat(),
			Ambient:   l.AmbientFloat(),
		})
	}
	for id, l := range engine.All[components.PointLight](w) {
		if len(v.Points) == MaxPointLights {
			engine.Fatalf("more than %d point lights", MaxPointLights)
		}
		c := l.Color
		v.Points = append(v.Points, PointLight{
			Position:  engine.Sibling[components.Transform](w, id).WorldPosition(w),
			Color:     []float32{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, 1},
			Intensity: l.Intensity,
			Radius:    l.Radius,
		})
	}
}
