package geom

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoxBounds(t *testing.T) {
	b := Box(v3(1, 2, 3))
	assert.Len(t, b.Points, 8)

	bounds := b.Bounds()
	assertVec(t, v3(-1, -2, -3), bounds.Min)
	assertVec(t, v3(1, 2, 3), bounds.Max)
	assertVec(t, v3(2, 4, 6), bounds.Size())
}

func TestPolytopeTransformed(t *testing.T) {
	b := Box(v3(1, 1, 1)).Transformed(rl.MatrixTranslate(3, 0, 0))
	bounds := b.Bounds()
	assertVec(t, v3(3, 0, 0), bounds.Center())
	assertVec(t, v3(2, -1, -1), bounds.Min)

	assert.Equal(t, AABB{}, Polytope{}.Bounds())
}

func TestAABBIntersectsAndResolve(t *testing.T) {
	a := NewAABBFromCenter(v3(0, 0, 0), v3(2, 2, 2))
	b := NewAABBFromCenter(v3(1.5, 0, 0), v3(2, 2, 2))
	c := NewAABBFromCenter(v3(5, 0, 0), v3(2, 2, 2))

	assert.True(t, a.Intersects(b))
	assert.False(t, a.Intersects(c))
	assertVec(t, v3(-0.5, 0, 0), a.Resolve(b))
	assertVec(t, v3(0, 0, 0), a.Resolve(c))
}

func TestMat3(t *testing.T) {
	id := Identity3()
	assertVec(t, v3(1, 2, 3), id.MulVec(v3(1, 2, 3)))

	d := Diagonal(v3(2, 3, 4))
	assertVec(t, v3(2, 6, 12), d.MulVec(v3(1, 2, 3)))

	rot := RotZ(rl.Pi / 2)
	assertVec(t, v3(0, 1, 0), rot.MulVec(v3(1, 0, 0)))
	assertVec(t, v3(1, 0, 0), rot.Transpose().MulVec(v3(0, 1, 0)))
	assertVec(t, v3(1, 0, 0), rot.Transpose().Mul(rot).MulVec(v3(1, 0, 0)))

	m := rot.Matrix()
	assertVec(t, v3(0, 1, 0), rl.Vector3Transform(v3(1, 0, 0), m))
	assertVec(t, v3(1, 0, 0), Mat3FromMatrix(m).MulVec(v3(0, -1, 0)))
}

func TestRotationsAreRightHanded(t *testing.T) {
	quarter := float32(rl.Pi / 2)
	assertVec(t, v3(0, 0, 1), RotX(quarter).MulVec(v3(0, 1, 0)))
	assertVec(t, v3(1, 0, 0), RotY(quarter).MulVec(v3(0, 0, 1)))
	assertVec(t, v3(0, 1, 0), RotZ(quarter).MulVec(v3(1, 0, 0)))

	assertVec(t, v3(0, 1, 0), Euler(v3(0, 0, 90)).MulVec(v3(1, 0, 0)))
	assertVec(t, v3(0, 0, 1), Euler(v3(90, 0, 0)).MulVec(v3(0, 1, 0)))
	assertVec(t, v3(1, 0, 0), Euler(v3(0, 90, 0)).MulVec(v3(0, 0, 1)))
}

func TestEulerAppliesXThenYThenZ(t *testing.T) {
	// X first takes +Y to +Z, then Y takes +Z to +X.
	assertVec(t, v3(1, 0, 0), Euler(v3(90, 90, 0)).MulVec(v3(0, 1, 0)))
	// Y first takes +X to -Z, then Z leaves it alone.
	assertVec(t, v3(0, 0, -1), Euler(v3(0, 90, 90)).MulVec(v3(1, 0, 0)))

	r := Euler(v3(30, -45, 60))
	assertVec(t, v3(1, 0, 0), r.Transpose().Mul(r).MulVec(v3(1, 0, 0)))
	assertVec(t, rl.Vector3CrossProduct(r[0], r[1]), r[2])
}

func TestAABBTransformed(t *testing.T) {
	a := NewAABBFromCenter(v3(1, 0, 0), v3(2, 2, 2))
	moved := a.Transformed(rl.MatrixTranslate(0, 3, 0))
	assertVec(t, v3(0, 2, -1), moved.Min)
	assertVec(t, v3(2, 4, 1), moved.Max)

	// a quarter turn about Y swaps the X and Z extents of an offset box
	turned := a.Transformed(RotY(rl.Pi / 2).Matrix())
	assertVec(t, v3(-1, -1, -2), turned.Min)
	assertVec(t, v3(1, 1, 0), turned.Max)
}

func TestAABBRaycast(t *testing.T) {
	box := NewAABBFromCenter(v3(0, 0, -5), v3(2, 2, 2))

	d, n, ok := box.Raycast(v3(0, 0, 0), v3(0, 0, -1), 100)
	require.True(t, ok)
	assert.InDelta(t, 4, d, 1e-5)
	assert.Equal(t, v3(0, 0, 1), n)

	_, _, ok = box.Raycast(v3(0, 3, 0), v3(0, 0, -1), 100)
	assert.False(t, ok, "parallel ray outside the Y slab")

	_, _, ok = box.Raycast(v3(0, 0, 0), v3(0, 0, 1), 100)
	assert.False(t, ok, "box behind the ray")

	d, n, ok = box.Raycast(v3(0, 0, -5), v3(1, 0, 0), 100)
	require.True(t, ok, "inside reports the exit")
	assert.InDelta(t, 1, d, 1e-5)
	assert.Equal(t, v3(1, 0, 0), n)
}
