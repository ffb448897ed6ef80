package render

import (
	"aspect3d/internal/geom"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Frustum represents the 6 planes of a view frustum for culling
type Frustum struct {
	planes [6]Plane // left, right, bottom, top, near, far
}

// Plane represents a plane in 3D space (ax + by + cz + d = 0)
type Plane struct {
	Normal   rl.Vector3
	Distance float32
}

// ExtractFrustum extracts the frustum planes of a view-projection matrix
// built as rl.MatrixMultiply(view, proj). Gribb/Hartmann: each plane is the
// w row plus or minus one of the x, y, z rows.
func ExtractFrustum(vp rl.Matrix) Frustum {
	row := func(i int) [4]float32 {
		m := [16]float32{
			vp.M0, vp.M1, vp.M2, vp.M3,
			vp.M4, vp.M5, vp.M6, vp.M7,
			vp.M8, vp.M9, vp.M10, vp.M11,
			vp.M12, vp.M13, vp.M14, vp.M15,
		}
		return [4]float32{m[i], m[4+i], m[8+i], m[12+i]}
	}
	w := row(3)
	plane := func(r [4]float32, sign float32) Plane {
		return normalizePlane(Plane{
			Normal:   rl.Vector3{X: w[0] + sign*r[0], Y: w[1] + sign*r[1], Z: w[2] + sign*r[2]},
			Distance: w[3] + sign*r[3],
		})
	}

	var f Frustum
	for i := 0; i < 3; i++ {
		r := row(i)
		f.planes[2*i] = plane(r, 1)
		f.planes[2*i+1] = plane(r, -1)
	}
	return f
}

func normalizePlane(p Plane) Plane {
	length := rl.Vector3Length(p.Normal)
	if length == 0 {
		return p
	}
	return Plane{
		Normal:   rl.Vector3Scale(p.Normal, 1.0/length),
		Distance: p.Distance / length,
	}
}

func (p Plane) distance(point rl.Vector3) float32 {
	return rl.Vector3DotProduct(p.Normal, point) + p.Distance
}

// ContainsSphere tests if a sphere is inside or intersects the frustum
func (f *Frustum) ContainsSphere(center rl.Vector3, radius float32) bool {
	for i := range f.planes {
		if f.planes[i].distance(center) < -radius {
			return false
		}
	}
	return true
}

// ContainsPoint tests if a point is inside the frustum
func (f *Frustum) ContainsPoint(point rl.Vector3) bool {
	for i := range f.planes {
		if f.planes[i].distance(point) < 0 {
			return false
		}
	}
	return true
}

// ContainsAABB is conservative: it rejects a box only when all of it lies
// behind one plane.
func (f *Frustum) ContainsAABB(b geom.AABB) bool {
	for i := range f.planes {
		p := f.planes[i]
		// corner furthest along the plane normal
		far := b.Min
		if p.Normal.X > 0 {
			far.X = b.Max.X
		}
		if p.Normal.Y > 0 {
			far.Y = b.Max.Y
		}
		if p.Normal.Z > 0 {
			far.Z = b.Max.Z
		}
		if p.distance(far) < 0 {
			return false
		}
	}
	return true
}
