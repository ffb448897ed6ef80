package geom

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min rl.Vector3
	Max rl.Vector3
}

// NewAABBFromCenter creates an AABB from a center point and full size dimensions.
func NewAABBFromCenter(center, size rl.Vector3) AABB {
	half := rl.Vector3Scale(size, 0.5)
	return AABB{
		Min: rl.Vector3Subtract(center, half),
		Max: rl.Vector3Add(center, half),
	}
}

func (a AABB) Center() rl.Vector3 {
	return rl.Vector3Scale(rl.Vector3Add(a.Min, a.Max), 0.5)
}

func (a AABB) Size() rl.Vector3 {
	return rl.Vector3Subtract(a.Max, a.Min)
}

func (a AABB) Intersects(b AABB) bool {
	return a.Min.X <= b.Max.X && a.Max.X >= b.Min.X &&
		a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y &&
		a.Min.Z <= b.Max.Z && a.Max.Z >= b.Min.Z
}

// Extend grows the box to include p.
func (a AABB) Extend(p rl.Vector3) AABB {
	return AABB{
		Min: rl.Vector3{X: math32.Min(a.Min.X, p.X), Y: math32.Min(a.Min.Y, p.Y), Z: math32.Min(a.Min.Z, p.Z)},
		Max: rl.Vector3{X: math32.Max(a.Max.X, p.X), Y: math32.Max(a.Max.Y, p.Y), Z: math32.Max(a.Max.Z, p.Z)},
	}
}

// Resolve returns the minimum translation vector to push 'a' out of 'b'.
// Returns zero vector if no overlap.
func (a AABB) Resolve(b AABB) rl.Vector3 {
	if !a.Intersects(b) {
		return rl.Vector3Zero()
	}

	push := [6]rl.Vector3{
		{X: b.Max.X - a.Min.X},
		{X: -(a.Max.X - b.Min.X)},
		{Y: b.Max.Y - a.Min.Y},
		{Y: -(a.Max.Y - b.Min.Y)},
		{Z: b.Max.Z - a.Min.Z},
		{Z: -(a.Max.Z - b.Min.Z)},
	}
	best := push[0]
	bestLen := rl.Vector3Length(best)
	for _, p := range push[1:] {
		if l := rl.Vector3Length(p); l < bestLen {
			best, bestLen = p, l
		}
	}
	return best
}

// Transformed is the box around a's eight corners moved by m.
func (a AABB) Transformed(m rl.Matrix) AABB {
	c := a.Center()
	corners := Box(rl.Vector3Scale(a.Size(), 0.5))
	return corners.Transformed(rl.MatrixMultiply(rl.MatrixTranslate(c.X, c.Y, c.Z), m)).Bounds()
}

// Raycast intersects the ray origin + t*dir (dir normalized) with the box
// using the slab method. It returns the entry distance and the face normal;
// a ray starting inside reports the exit instead.
func (a AABB) Raycast(origin, dir rl.Vector3, maxDistance float32) (float32, rl.Vector3, bool) {
	o := [3]float32{origin.X, origin.Y, origin.Z}
	d := [3]float32{dir.X, dir.Y, dir.Z}
	lo := [3]float32{a.Min.X, a.Min.Y, a.Min.Z}
	hi := [3]float32{a.Max.X, a.Max.Y, a.Max.Z}

	tmin, tmax := float32(-1e30), float32(1e30)
	for i := 0; i < 3; i++ {
		if d[i] == 0 {
			if o[i] < lo[i] || o[i] > hi[i] {
				return 0, rl.Vector3{}, false
			}
			continue
		}
		t1 := (lo[i] - o[i]) / d[i]
		t2 := (hi[i] - o[i]) / d[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math32.Max(tmin, t1)
		tmax = math32.Min(tmax, t2)
		if tmin > tmax {
			return 0, rl.Vector3{}, false
		}
	}

	t := tmin
	if t < 0 {
		t = tmax
	}
	if t < 0 || t > maxDistance {
		return 0, rl.Vector3{}, false
	}

	point := rl.Vector3Add(origin, rl.Vector3Scale(dir, t))
	const epsilon = 0.001
	var normal rl.Vector3
	switch {
	case math32.Abs(point.X-a.Min.X) < epsilon:
		normal.X = -1
	case math32.Abs(point.X-a.Max.X) < epsilon:
		normal.X = 1
	case math32.Abs(point.Y-a.Min.Y) < epsilon:
		normal.Y = -1
	case math32.Abs(point.Y-a.Max.Y) < epsilon:
		normal.Y = 1
	case math32.Abs(point.Z-a.Min.Z) < epsilon:
		normal.Z = -1
	default:
		normal.Z = 1
	}
	return t, normal, true
}
