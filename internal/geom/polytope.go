package geom

import rl "github.com/gen2brain/raylib-go/raylib"

// Shape is the collision shape of a rigid body. The set of shapes is closed;
// code that handles shapes switches on the concrete type.
type Shape interface {
	Bounds() AABB
	isShape()
}

// Polytope is a convex shape given as a point cloud. The hull is implied;
// queries scan every point.
type Polytope struct {
	Points []rl.Vector3
}

func (Polytope) isShape() {}

// Box returns the eight corners of a box centered on the origin.
func Box(half rl.Vector3) Polytope {
	pts := make([]rl.Vector3, 0, 8)
	for _, sx := range [2]float32{-1, 1} {
		for _, sy := range [2]float32{-1, 1} {
			for _, sz := range [2]float32{-1, 1} {
				pts = append(pts, rl.Vector3{X: sx * half.X, Y: sy * half.Y, Z: sz * half.Z})
			}
		}
	}
	return Polytope{Points: pts}
}

// Transformed returns a copy of p with every point transformed by m.
func (p Polytope) Transformed(m rl.Matrix) Polytope {
	out := make([]rl.Vector3, len(p.Points))
	for i, pt := range p.Points {
		out[i] = rl.Vector3Transform(pt, m)
	}
	return Polytope{Points: out}
}

// Bounds returns the tightest AABB around the points. An empty polytope has
// a zero box.
func (p Polytope) Bounds() AABB {
	if len(p.Points) == 0 {
		return AABB{}
	}
	b := AABB{Min: p.Points[0], Max: p.Points[0]}
	for _, pt := range p.Points[1:] {
		b = b.Extend(pt)
	}
	return b
}
