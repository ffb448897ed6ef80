// Package physics holds the narrow-phase collision query and the rigid-body
// integrator. There is no broad phase: callers test the pairs they care
// about.
package physics

import (
	"fmt"
	"log"

	"aspect3d/internal/engine"
	"aspect3d/internal/geom"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Status is the outcome of a GJK query.
type Status int

const (
	Separated Status = iota
	Intersecting
	// Unknown means the iteration cap was hit before either answer.
	Unknown
)

func (s Status) String() string {
	switch s {
	case Separated:
		return "separated"
	case Intersecting:
		return "intersecting"
	case Unknown:
		return "unknown"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Manifold is the result of a GJK query.
type Manifold struct {
	Status Status
	// Separation is the point of A - B closest to the origin found so far.
	// For separated sets it points from B towards A and its length is the
	// distance between them.
	Separation rl.Vector3
	Distance   float32
	Iterations int
}

// Options tunes GJK. The zero value picks the defaults.
type Options struct {
	// MaxIterations caps the loop. 0 means 4*(len(a)+len(b))+16.
	MaxIterations int
	// Tolerance is the relative progress below which the search stops.
	// 0 means DefaultTolerance.
	Tolerance float32
}

const (
	DefaultTolerance = 1e-5
	// contactEpsilon is the distance under which the origin counts as
	// touching the simplex.
	contactEpsilon = 1e-5
)

func (o Options) limits(na, nb int) (int, float32) {
	maxIter := o.MaxIterations
	if maxIter <= 0 {
		maxIter = 4*(na+nb) + 16
	}
	tol := o.Tolerance
	if tol <= 0 {
		tol = DefaultTolerance
	}
	return maxIter, tol
}

// GJK finds whether the convex hulls of two point clouds overlap and, when
// they do not, the closest point of their Minkowski difference to the
// origin. Empty clouds are fatal.
//
// Each round takes the closest point v of the simplex to the origin and
// searches for a support point in direction -v. The sets intersect when v
// reaches the origin or a tetrahedron encloses it. They are separated when
// the new support point makes no progress past v or repeats a simplex
// vertex. A full simplex evicts the vertex least extreme along -v, which
// keeps the feature v lies on.
func GJK(a, b []rl.Vector3, opts Options) Manifold {
	if len(a) == 0 || len(b) == 0 {
		engine.Fatalf("GJK on an empty point cloud (%d vs %d points)", len(a), len(b))
	}
	maxIter, tol := opts.limits(len(a), len(b))

	var s Simplex
	var buf [4]rl.Vector3

	d := rl.Vector3Subtract(a[0], b[0])
	if rl.Vector3DotProduct(d, d) < contactEpsilon*contactEpsilon {
		d = rl.Vector3{X: 1}
	}
	s.Push(MinkowskiSupport(a, b, d))

	for it := 1; it <= maxIter; it++ {
		pts := s.Points(&buf)
		if len(pts) == 4 && geom.TetrahedronContains(pts[0], pts[1], pts[2], pts[3], rl.Vector3Zero()) {
			return Manifold{Status: Intersecting, Iterations: it}
		}

		v := geom.ClosestPointOnSimplex(pts, rl.Vector3Zero())
		dist2 := rl.Vector3DotProduct(v, v)
		if dist2 < contactEpsilon*contactEpsilon {
			return Manifold{Status: Intersecting, Separation: v, Iterations: it}
		}

		d = rl.Vector3Scale(v, -1)
		w := MinkowskiSupport(a, b, d)

		separated := Manifold{Status: Separated, Separation: v, Distance: math32.Sqrt(dist2), Iterations: it}
		if s.Contains(w) {
			return separated
		}
		// dist2 - dot(w, v) is how far w reaches past v towards the origin.
		if dist2-rl.Vector3DotProduct(w.Point, v) <= tol*dist2 {
			return separated
		}

		if s.Len() == 4 {
			s.Remove(s.leastExtreme(d))
		}
		s.Push(w)
	}

	pts := s.Points(&buf)
	v := geom.ClosestPointOnSimplex(pts, rl.Vector3Zero())
	log.Printf("Physics: GJK gave up after %d iterations (%d vs %d points)", maxIter, len(a), len(b))
	return Manifold{Status: Unknown, Separation: v, Distance: rl.Vector3Length(v), Iterations: maxIter}
}

// Intersects reports whether the hulls of a and b overlap. A query that
// hits the iteration cap counts as overlapping.
func Intersects(a, b []rl.Vector3) bool {
	return GJK(a, b, Options{}).Status != Separated
}
