package geom

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Mat3 is a 3x3 matrix stored as columns. For a rotation the columns are
// the images of the X, Y and Z axes.
type Mat3 [3]rl.Vector3

func Identity3() Mat3 {
	return Mat3{{X: 1}, {Y: 1}, {Z: 1}}
}

// Diagonal returns the matrix with d on the diagonal.
func Diagonal(d rl.Vector3) Mat3 {
	return Mat3{{X: d.X}, {Y: d.Y}, {Z: d.Z}}
}

// RotX is a right-handed rotation by rad about +X: +Y turns toward +Z.
func RotX(rad float32) Mat3 {
	s, c := math32.Sincos(rad)
	return Mat3{{X: 1}, {Y: c, Z: s}, {Y: -s, Z: c}}
}

// RotY is a right-handed rotation by rad about +Y: +Z turns toward +X.
func RotY(rad float32) Mat3 {
	s, c := math32.Sincos(rad)
	return Mat3{{X: c, Z: -s}, {Y: 1}, {X: s, Z: c}}
}

// RotZ is a right-handed rotation by rad about +Z: +X turns toward +Y.
func RotZ(rad float32) Mat3 {
	s, c := math32.Sincos(rad)
	return Mat3{{X: c, Y: s}, {X: -s, Y: c}, {Z: 1}}
}

// Euler composes rotations given in degrees, about X first, then Y, then Z.
func Euler(deg rl.Vector3) Mat3 {
	return RotZ(deg.Z * rl.Deg2rad).Mul(RotY(deg.Y * rl.Deg2rad).Mul(RotX(deg.X * rl.Deg2rad)))
}

func (m Mat3) MulVec(v rl.Vector3) rl.Vector3 {
	return rl.Vector3Add(rl.Vector3Add(rl.Vector3Scale(m[0], v.X), rl.Vector3Scale(m[1], v.Y)), rl.Vector3Scale(m[2], v.Z))
}

func (m Mat3) Mul(o Mat3) Mat3 {
	return Mat3{m.MulVec(o[0]), m.MulVec(o[1]), m.MulVec(o[2])}
}

func (m Mat3) Transpose() Mat3 {
	return Mat3{
		{X: m[0].X, Y: m[1].X, Z: m[2].X},
		{X: m[0].Y, Y: m[1].Y, Z: m[2].Y},
		{X: m[0].Z, Y: m[1].Z, Z: m[2].Z},
	}
}

// Matrix widens m to a raylib 4x4 matrix with no translation.
func (m Mat3) Matrix() rl.Matrix {
	return rl.Matrix{
		M0: m[0].X, M1: m[0].Y, M2: m[0].Z,
		M4: m[1].X, M5: m[1].Y, M6: m[1].Z,
		M8: m[2].X, M9: m[2].Y, M10: m[2].Z,
		M15: 1,
	}
}

// Mat3FromMatrix takes the upper-left 3x3 block of a raylib matrix.
func Mat3FromMatrix(m rl.Matrix) Mat3 {
	return Mat3{
		{X: m.M0, Y: m.M1, Z: m.M2},
		{X: m.M4, Y: m.M5, Z: m.M6},
		{X: m.M8, Y: m.M9, Z: m.M10},
	}
}
