package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// orthonormalTolerance bounds the deviation of R^T R from identity accepted
// for a rotation frame.
const orthonormalTolerance = 1e-6

// MulVec applies the 3x3 matrix m to v
func MulVec(m mgl64.Mat3, v Vector3) Vector3 {
	return FromVec(m.Mul3x1(v.Vec()))
}

// MulTransposeVec applies the transpose of m to v
func MulTransposeVec(m mgl64.Mat3, v Vector3) Vector3 {
	return FromVec(m.Transpose().Mul3x1(v.Vec()))
}

// Axis returns column i of the frame as a vector
func Axis(m mgl64.Mat3, i int) Vector3 {
	return FromVec(m.Col(i))
}

// IsOrthonormal reports whether the columns of m are unit length and
// mutually perpendicular within tol.
func IsOrthonormal(m mgl64.Mat3, tol float64) bool {
	p := m.Transpose().Mul3(m)
	id := mgl64.Ident3()
	for i := range p {
		if math.IsNaN(p[i]) || math.Abs(p[i]-id[i]) > tol {
			return false
		}
	}
	return true
}
