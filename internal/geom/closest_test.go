package geom

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
)

const tol = 1e-4

func v3(x, y, z float32) rl.Vector3 { return rl.Vector3{X: x, Y: y, Z: z} }

func assertVec(t *testing.T, want, got rl.Vector3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, tol, "X of %v", got)
	assert.InDelta(t, want.Y, got.Y, tol, "Y of %v", got)
	assert.InDelta(t, want.Z, got.Z, tol, "Z of %v", got)
}

var (
	ta = v3(0, 0, 0)
	tb = v3(4, 0, 0)
	tc = v3(0, 4, 0)
)

func TestClosestPointOnLineIsUnclamped(t *testing.T) {
	assertVec(t, v3(2, 0, 0), ClosestPointOnLine(ta, tb, v3(2, 3, 1)))
	assertVec(t, v3(-5, 0, 0), ClosestPointOnLine(ta, tb, v3(-5, 1, 0)))
	assertVec(t, v3(9, 0, 0), ClosestPointOnLine(ta, tb, v3(9, -2, 0)))
}

func TestClosestPointOnLineDegenerate(t *testing.T) {
	assertVec(t, v3(1, 1, 1), ClosestPointOnLine(v3(1, 1, 1), v3(1, 1, 1), v3(5, 0, 0)))
}

func TestClosestPointOnSegment(t *testing.T) {
	assertVec(t, ta, ClosestPointOnSegment(ta, tb, v3(-5, 1, 0)))
	assertVec(t, tb, ClosestPointOnSegment(ta, tb, v3(9, -2, 0)))
	assertVec(t, v3(3, 0, 0), ClosestPointOnSegment(ta, tb, v3(3, 2, 2)))
}

func TestBarycentricSumsToOne(t *testing.T) {
	u, v, w, ok := Barycentric(ta, tb, tc, v3(1, 1, 5))
	assert.True(t, ok)
	assert.InDelta(t, 1, u+v+w, tol)
	assert.InDelta(t, 0.5, u, tol)
	assert.InDelta(t, 0.25, v, tol)
	assert.InDelta(t, 0.25, w, tol)

	_, _, _, ok = Barycentric(ta, tb, v3(8, 0, 0), v3(1, 1, 0))
	assert.False(t, ok)
}

func TestClosestPointOnTriangleInterior(t *testing.T) {
	// coplanar interior points map to themselves
	for _, p := range []rl.Vector3{v3(1, 1, 0), v3(0.1, 3.5, 0), v3(2, 2, 0), v3(0, 0, 0), v3(2, 0, 0)} {
		assertVec(t, p, ClosestPointOnTriangle(ta, tb, tc, p))
	}
	// off-plane points drop onto the plane
	assertVec(t, v3(1, 1, 0), ClosestPointOnTriangle(ta, tb, tc, v3(1, 1, 7)))
	assertVec(t, v3(1, 1, 0), ClosestPointOnTriangle(ta, tb, tc, v3(1, 1, -7)))
}

func TestClosestPointOnTriangleEdges(t *testing.T) {
	assertVec(t, v3(2, 0, 0), ClosestPointOnTriangle(ta, tb, tc, v3(2, -3, 0)))
	assertVec(t, v3(0, 2, 0), ClosestPointOnTriangle(ta, tb, tc, v3(-3, 2, 1)))
	assertVec(t, v3(2, 2, 0), ClosestPointOnTriangle(ta, tb, tc, v3(3, 3, 0)))
}

func TestClosestPointOnTriangleVertexRegions(t *testing.T) {
	assertVec(t, ta, ClosestPointOnTriangle(ta, tb, tc, v3(-1, -1, 0)))
	assertVec(t, tb, ClosestPointOnTriangle(ta, tb, tc, v3(6, -1, 2)))
	assertVec(t, tc, ClosestPointOnTriangle(ta, tb, tc, v3(-1, 6, -2)))
	// beyond edge bc but past b along it
	assertVec(t, tb, ClosestPointOnTriangle(ta, tb, tc, v3(6, 0.5, 0)))
}

func TestClosestPointOnTriangleObtuse(t *testing.T) {
	a, b, c := v3(0, 0, 0), v3(10, 0, 0), v3(5, 1, 0)
	// below the long edge, the answer is on ab, not at a vertex
	assertVec(t, v3(5, 0, 0), ClosestPointOnTriangle(a, b, c, v3(5, -3, 0)))
	// above c, the answer is c
	assertVec(t, c, ClosestPointOnTriangle(a, b, c, v3(5, 4, 0)))
}

func TestClosestPointOnTriangleDegenerate(t *testing.T) {
	assertVec(t, v3(2, 0, 0), ClosestPointOnTriangle(ta, tb, v3(8, 0, 0), v3(2, 1, 0)))
}

// Walking a query point out of the triangle through an edge and on into a
// vertex region moves the answer smoothly: no step is larger than the
// step of the query point.
func TestClosestPointOnTriangleContinuity(t *testing.T) {
	prev := ClosestPointOnTriangle(ta, tb, tc, v3(3, 0.5, 0))
	const steps = 400
	for i := 1; i <= steps; i++ {
		s := float32(i) / steps
		p := v3(3+3*s, 0.5-2*s, 0.3)
		cur := ClosestPointOnTriangle(ta, tb, tc, p)
		step := rl.Vector3Length(rl.Vector3Subtract(cur, prev))
		assert.LessOrEqual(t, step, float32(3*1.5/steps)+tol, "jump at step %d", i)
		prev = cur
	}
	assertVec(t, tb, prev)
}

func TestClosestPointOnSimplexDispatch(t *testing.T) {
	p := v3(1, 1, 3)
	assertVec(t, ta, ClosestPointOnSimplex([]rl.Vector3{ta}, p))
	assertVec(t, v3(1, 0, 0), ClosestPointOnSimplex([]rl.Vector3{ta, tb}, p))
	assertVec(t, v3(1, 1, 0), ClosestPointOnSimplex([]rl.Vector3{ta, tb, tc}, p))
	assert.Panics(t, func() { ClosestPointOnSimplex(nil, p) })
	assert.Panics(t, func() { ClosestPointOnSimplex(make([]rl.Vector3, 5), p) })
}

func TestClosestPointOnTetrahedron(t *testing.T) {
	td := v3(0, 0, 4)
	pts := []rl.Vector3{ta, tb, tc, td}

	assertVec(t, v3(1, 1, 0), ClosestPointOnSimplex(pts, v3(1, 1, -2)))
	assertVec(t, ta, ClosestPointOnSimplex(pts, v3(-1, -1, -1)))
	// interior points map to the nearest face
	assertVec(t, v3(0.5, 0.5, 0), ClosestPointOnSimplex(pts, v3(0.5, 0.5, 0.2)))
}

func TestTetrahedronContains(t *testing.T) {
	td := v3(0, 0, 4)
	assert.True(t, TetrahedronContains(ta, tb, tc, td, v3(0.5, 0.5, 0.5)))
	assert.True(t, TetrahedronContains(tb, ta, td, tc, v3(0.5, 0.5, 0.5)))
	assert.True(t, TetrahedronContains(ta, tb, tc, td, ta))
	assert.False(t, TetrahedronContains(ta, tb, tc, td, v3(3, 3, 3)))
	assert.False(t, TetrahedronContains(ta, tb, tc, td, v3(-0.1, 0.5, 0.5)))
	// flat
	assert.False(t, TetrahedronContains(ta, tb, tc, v3(1, 1, 0), v3(0.5, 0.5, 0)))
}
