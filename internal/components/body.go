package components

import (
	"aspect3d/internal/geom"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type MeshType int

const (
	MeshCube MeshType = iota
	MeshSphere
	MeshPlane
	MeshModel
)

var meshNames = map[string]MeshType{
	"cube":   MeshCube,
	"sphere": MeshSphere,
	"plane":  MeshPlane,
	"model":  MeshModel,
}

func (m MeshType) String() string {
	for name, t := range meshNames {
		if t == m {
			return name
		}
	}
	return "unknown"
}

// ParseMeshType maps a scene-file mesh name to its type.
func ParseMeshType(name string) (MeshType, bool) {
	t, ok := meshNames[name]
	return t, ok
}

// Body is the renderable part of an entity. The renderer draws it with the
// sibling Transform's world matrix.
type Body struct {
	Mesh   MeshType
	Model  string // resource key, MeshModel only
	Color  rl.Color
	Size   rl.Vector3
	Hidden bool
}

func initBody(b *Body) {
	b.Color = rl.White
	b.Size = rl.Vector3{X: 1, Y: 1, Z: 1}
}

// LocalBounds is the body's box in its own space, before the transform.
func (b *Body) LocalBounds() geom.AABB {
	size := b.Size
	if b.Mesh == MeshPlane {
		size.Y = 0
	}
	return geom.NewAABBFromCenter(rl.Vector3Zero(), size)
}

func serializeBody(b *Body) map[string]any {
	m := map[string]any{
		"mesh":  b.Mesh.String(),
		"color": [4]uint8{b.Color.R, b.Color.G, b.Color.B, b.Color.A},
		"size":  b.Size,
	}
	if b.Model != "" {
		m["model"] = b.Model
	}
	if b.Hidden {
		m["hidden"] = true
	}
	return m
}
