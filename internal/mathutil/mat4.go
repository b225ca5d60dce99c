package mathutil

import (
	"fmt"
	"math"
	"strings"
)

// Mat4 is a 4×4 homogeneous matrix stored row-major: m[r*4+c].
// Matrices act on column vectors (M × v) and are never mutated in place;
// every constructor and product returns a new value.
type Mat4 [16]float64

func Mat4Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mat4FromColumns builds a matrix from its four column vectors.
func Mat4FromColumns(c0, c1, c2, c3 Vec4) Mat4 {
	return Mat4{
		c0[0], c1[0], c2[0], c3[0],
		c0[1], c1[1], c2[1], c3[1],
		c0[2], c1[2], c2[2], c3[2],
		c0[3], c1[3], c2[3], c3[3],
	}
}

// Mat4Mul returns a × b.
func Mat4Mul(a, b Mat4) Mat4 {
	var m Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			m[r*4+c] = a[r*4+0]*b[0*4+c] + a[r*4+1]*b[1*4+c] +
				a[r*4+2]*b[2*4+c] + a[r*4+3]*b[3*4+c]
		}
	}
	return m
}

// Mul returns m × b. Composing on the right places b inside m's frame.
func (m Mat4) Mul(b Mat4) Mat4 {
	return Mat4Mul(m, b)
}

// MulVec4 returns m × v.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		m[0]*v[0] + m[1]*v[1] + m[2]*v[2] + m[3]*v[3],
		m[4]*v[0] + m[5]*v[1] + m[6]*v[2] + m[7]*v[3],
		m[8]*v[0] + m[9]*v[1] + m[10]*v[2] + m[11]*v[3],
		m[12]*v[0] + m[13]*v[1] + m[14]*v[2] + m[15]*v[3],
	}
}

// ApproxEqual compares element-wise within eps.
func (m Mat4) ApproxEqual(b Mat4, eps float64) bool {
	for i := range m {
		if math.Abs(m[i]-b[i]) > eps {
			return false
		}
	}
	return true
}

// IsIdentity checks if the matrix is approximately identity.
func (m Mat4) IsIdentity() bool {
	return m.ApproxEqual(Mat4Identity(), 1e-8)
}

func (m Mat4) String() string {
	var sb strings.Builder
	for r := 0; r < 4; r++ {
		fmt.Fprintf(&sb, "[% 10.5f  % 10.5f  % 10.5f  % 10.5f]\n",
			m[r*4], m[r*4+1], m[r*4+2], m[r*4+3])
	}
	return sb.String()
}
