package physics

import (
	"aspect3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Support returns the point of the cloud with the largest projection on d
// and its index. Ties go to the lowest index. The scan is brute force.
func Support(points []rl.Vector3, d rl.Vector3) (rl.Vector3, int) {
	if len(points) == 0 {
		engine.Fatalf("support of an empty point cloud")
	}
	best, bestDot := 0, rl.Vector3DotProduct(points[0], d)
	for i := 1; i < len(points); i++ {
		if dot := rl.Vector3DotProduct(points[i], d); dot > bestDot {
			best, bestDot = i, dot
		}
	}
	return points[best], best
}

// Vertex is a point of the Minkowski difference A - B together with the
// indices of the source points that produced it.
type Vertex struct {
	Point  rl.Vector3
	IA, IB int
}

// MinkowskiSupport is support(A, d) - support(B, -d).
func MinkowskiSupport(a, b []rl.Vector3, d rl.Vector3) Vertex {
	pa, ia := Support(a, d)
	pb, ib := Support(b, rl.Vector3Scale(d, -1))
	return Vertex{Point: rl.Vector3Subtract(pa, pb), IA: ia, IB: ib}
}
