// Package geom holds the closest-point primitives used by the collision
// code: point to line, segment, triangle and tetrahedron.
package geom

import (
	"fmt"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Epsilon is the tolerance used for degenerate-shape and containment tests.
const Epsilon = 1e-6

// ClosestPointOnLine projects p onto the infinite line through a and b.
// Callers wanting a segment must test the end regions first. A degenerate
// line (a == b) yields a.
func ClosestPointOnLine(a, b, p rl.Vector3) rl.Vector3 {
	ab := rl.Vector3Subtract(b, a)
	denom := rl.Vector3DotProduct(ab, ab)
	if denom < Epsilon*Epsilon {
		return a
	}
	t := rl.Vector3DotProduct(rl.Vector3Subtract(p, a), ab) / denom
	return rl.Vector3Add(a, rl.Vector3Scale(ab, t))
}

// ClosestPointOnSegment returns the point of segment ab nearest to p.
func ClosestPointOnSegment(a, b, p rl.Vector3) rl.Vector3 {
	if rl.Vector3DotProduct(rl.Vector3Subtract(p, a), rl.Vector3Subtract(b, a)) <= 0 {
		return a
	}
	if rl.Vector3DotProduct(rl.Vector3Subtract(p, b), rl.Vector3Subtract(a, b)) <= 0 {
		return b
	}
	return ClosestPointOnLine(a, b, p)
}

// Barycentric returns the weights of p's projection onto the plane of abc
// with respect to a, b and c. The weights sum to 1. ok is false for a
// degenerate triangle.
func Barycentric(a, b, c, p rl.Vector3) (u, v, w float32, ok bool) {
	n := rl.Vector3CrossProduct(rl.Vector3Subtract(b, a), rl.Vector3Subtract(c, a))
	nn := rl.Vector3DotProduct(n, n)
	if nn < Epsilon*Epsilon {
		return 0, 0, 0, false
	}
	// Each weight is the signed area of the sub-triangle opposite its
	// vertex, measured along n.
	u = rl.Vector3DotProduct(n, rl.Vector3CrossProduct(rl.Vector3Subtract(c, b), rl.Vector3Subtract(p, b))) / nn
	v = rl.Vector3DotProduct(n, rl.Vector3CrossProduct(rl.Vector3Subtract(a, c), rl.Vector3Subtract(p, c))) / nn
	w = rl.Vector3DotProduct(n, rl.Vector3CrossProduct(rl.Vector3Subtract(b, a), rl.Vector3Subtract(p, a))) / nn
	return u, v, w, true
}

// ClosestPointOnTriangle returns the point of triangle abc nearest to p.
//
// Inside the prism over the triangle the answer is the barycentric blend,
// i.e. p projected onto the plane. Outside, every edge whose opposite weight
// is negative is tested with its two vertex regions first and the nearest
// candidate wins.
func ClosestPointOnTriangle(a, b, c, p rl.Vector3) rl.Vector3 {
	u, v, w, ok := Barycentric(a, b, c, p)
	if !ok {
		return nearest(p,
			ClosestPointOnSegment(a, b, p),
			ClosestPointOnSegment(b, c, p),
			ClosestPointOnSegment(c, a, p),
		)
	}
	if u >= 0 && v >= 0 && w >= 0 {
		return rl.Vector3Add(rl.Vector3Add(rl.Vector3Scale(a, u), rl.Vector3Scale(b, v)), rl.Vector3Scale(c, w))
	}

	var candidates [3]rl.Vector3
	n := 0
	if u < 0 {
		candidates[n] = closestOnEdge(b, c, p)
		n++
	}
	if v < 0 {
		candidates[n] = closestOnEdge(c, a, p)
		n++
	}
	if w < 0 {
		candidates[n] = closestOnEdge(a, b, p)
		n++
	}
	return nearest(p, candidates[:n]...)
}

// closestOnEdge is ClosestPointOnSegment spelled as the triangle code uses
// it: vertex regions of s and e first, then the line.
func closestOnEdge(s, e, p rl.Vector3) rl.Vector3 {
	se := rl.Vector3Subtract(e, s)
	if rl.Vector3DotProduct(rl.Vector3Subtract(p, s), se) <= 0 {
		return s
	}
	if rl.Vector3DotProduct(rl.Vector3Subtract(p, e), se) >= 0 {
		return e
	}
	return ClosestPointOnLine(s, e, p)
}

// ClosestPointOnTetrahedron returns the nearest of the closest points on the
// four faces. It measures distance to the boundary: a p inside the solid
// still maps onto a face. Use TetrahedronContains for containment.
func ClosestPointOnTetrahedron(a, b, c, d, p rl.Vector3) rl.Vector3 {
	return nearest(p,
		ClosestPointOnTriangle(a, b, c, p),
		ClosestPointOnTriangle(a, b, d, p),
		ClosestPointOnTriangle(a, c, d, p),
		ClosestPointOnTriangle(b, c, d, p),
	)
}

// ClosestPointOnSimplex dispatches on the number of points: 1 point, 2
// segment, 3 triangle, 4 tetrahedron.
func ClosestPointOnSimplex(points []rl.Vector3, p rl.Vector3) rl.Vector3 {
	switch len(points) {
	case 1:
		return points[0]
	case 2:
		return ClosestPointOnSegment(points[0], points[1], p)
	case 3:
		return ClosestPointOnTriangle(points[0], points[1], points[2], p)
	case 4:
		return ClosestPointOnTetrahedron(points[0], points[1], points[2], points[3], p)
	}
	panic(fmt.Sprintf("geom: simplex of %d points", len(points)))
}

// TetrahedronContains reports whether p lies inside or on tetrahedron abcd.
// Degenerate (flat) tetrahedra contain nothing.
func TetrahedronContains(a, b, c, d, p rl.Vector3) bool {
	vol := rl.Vector3DotProduct(rl.Vector3CrossProduct(rl.Vector3Subtract(b, a), rl.Vector3Subtract(c, a)), rl.Vector3Subtract(d, a))
	if math32.Abs(vol) < Epsilon {
		return false
	}
	return sameSide(a, b, c, d, p) &&
		sameSide(a, b, d, c, p) &&
		sameSide(a, c, d, b, p) &&
		sameSide(b, c, d, a, p)
}

// sameSide reports whether p is on the same side of plane abc as ref, or on
// the plane.
func sameSide(a, b, c, ref, p rl.Vector3) bool {
	n := rl.Vector3CrossProduct(rl.Vector3Subtract(b, a), rl.Vector3Subtract(c, a))
	dr := rl.Vector3DotProduct(n, rl.Vector3Subtract(ref, a))
	dp := rl.Vector3DotProduct(n, rl.Vector3Subtract(p, a))
	if math32.Abs(dp) < Epsilon {
		return true
	}
	return (dr > 0) == (dp > 0)
}

func nearest(p rl.Vector3, candidates ...rl.Vector3) rl.Vector3 {
	best := candidates[0]
	bestD := distSq(p, best)
	for _, c := range candidates[1:] {
		if d := distSq(p, c); d < bestD {
			best, bestD = c, d
		}
	}
	return best
}

func distSq(a, b rl.Vector3) float32 {
	d := rl.Vector3Subtract(a, b)
	return rl.Vector3DotProduct(d, d)
}
