package components

import (
	"aspect3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type Camera struct {
	FOV        float32 // vertical, degrees; height in world units when orthographic
	Near       float32
	Far        float32
	Projection rl.CameraProjection
	IsMain     bool
}

func initCamera(c *Camera) {
	c.FOV = 45
	c.Near = 0.1
	c.Far = 1000
	c.Projection = rl.CameraPerspective
}

// Raylib returns the raylib camera looking down the transform's forward
// axis.
func (c *Camera) Raylib(w *engine.World, t *Transform) rl.Camera3D {
	m := t.WorldMatrix(w)
	eye := rl.Vector3Transform(rl.Vector3Zero(), m)
	look := rl.Vector3Subtract(rl.Vector3Transform(forward, m), eye)
	upDir := rl.Vector3Subtract(rl.Vector3Transform(up, m), eye)
	return rl.Camera3D{
		Position:   eye,
		Target:     rl.Vector3Add(eye, rl.Vector3Normalize(look)),
		Up:         rl.Vector3Normalize(upDir),
		Fovy:       c.FOV,
		Projection: c.Projection,
	}
}

// ViewProjection is projection times view for the given aspect ratio.
func (c *Camera) ViewProjection(w *engine.World, t *Transform, aspect float32) rl.Matrix {
	cam := c.Raylib(w, t)
	view := rl.MatrixLookAt(cam.Position, cam.Target, cam.Up)
	var proj rl.Matrix
	if c.Projection == rl.CameraPerspective {
		proj = rl.MatrixPerspective(c.FOV*rl.Deg2rad, aspect, c.Near, c.Far)
	} else {
		halfH := c.FOV / 2
		halfW := halfH * aspect
		proj = rl.MatrixOrtho(-halfW, halfW, -halfH, halfH, c.Near, c.Far)
	}
	return rl.MatrixMultiply(view, proj)
}

func serializeCamera(c *Camera) map[string]any {
	return map[string]any{
		"fov":    c.FOV,
		"near":   c.Near,
		"far":    c.Far,
		"isMain": c.IsMain,
	}
}
