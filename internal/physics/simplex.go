package physics

import (
	"aspect3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Simplex is GJK's working set of at most four Minkowski vertices.
type Simplex struct {
	verts [4]Vertex
	n     int
}

func (s *Simplex) Len() int { return s.n }

func (s *Simplex) Vertex(i int) Vertex { return s.verts[i] }

// Push appends v. A full simplex is fatal; evict first.
func (s *Simplex) Push(v Vertex) {
	if s.n == len(s.verts) {
		engine.Fatalf("simplex overflow")
	}
	s.verts[s.n] = v
	s.n++
}

// Remove drops vertex i, keeping the order of the rest.
func (s *Simplex) Remove(i int) {
	copy(s.verts[i:s.n], s.verts[i+1:s.n])
	s.n--
	s.verts[s.n] = Vertex{}
}

// Contains reports whether a vertex with the same source index pair is
// present.
func (s *Simplex) Contains(v Vertex) bool {
	for _, u := range s.verts[:s.n] {
		if u.IA == v.IA && u.IB == v.IB {
			return true
		}
	}
	return false
}

// Points copies the vertex positions into buf and returns the filled part.
func (s *Simplex) Points(buf *[4]rl.Vector3) []rl.Vector3 {
	for i, v := range s.verts[:s.n] {
		buf[i] = v.Point
	}
	return buf[:s.n]
}

// leastExtreme returns the index of the vertex with the smallest projection
// on d.
func (s *Simplex) leastExtreme(d rl.Vector3) int {
	worst, worstDot := 0, rl.Vector3DotProduct(s.verts[0].Point, d)
	for i := 1; i < s.n; i++ {
		if dot := rl.Vector3DotProduct(s.verts[i].Point, d); dot < worstDot {
			worst, worstDot = i, dot
		}
	}
	return worst
}
