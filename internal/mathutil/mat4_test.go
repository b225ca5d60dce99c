package mathutil

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

const tol = 1e-9

func randomMat4(r *rand.Rand) Mat4 {
	var m Mat4
	for i := range m {
		m[i] = r.Float64()*20 - 10
	}
	return m
}

func TestIdentityIsNeutral(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 50; i++ {
		a := randomMat4(r)
		assert.Equal(t, a, a.Mul(Mat4Identity()))
		assert.Equal(t, a, Mat4Identity().Mul(a))
	}
}

func TestTranslateRoundTrip(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	for i := 0; i < 50; i++ {
		x, y, z := r.Float64()*100-50, r.Float64()*100-50, r.Float64()*100-50
		m := Translate(x, y, z).Mul(Translate(-x, -y, -z))
		assert.True(t, m.ApproxEqual(Mat4Identity(), tol), "translate(%v,%v,%v) round trip:\n%v", x, y, z, m)
	}
}

func TestMulAssociative(t *testing.T) {
	r := rand.New(rand.NewPCG(5, 6))
	for i := 0; i < 50; i++ {
		a, b, c := randomMat4(r), randomMat4(r), randomMat4(r)
		left := a.Mul(b).Mul(c)
		right := a.Mul(b.Mul(c))
		assert.True(t, left.ApproxEqual(right, 1e-6), "(AB)C != A(BC)")
	}
}

func TestMulVec4(t *testing.T) {
	p := Point(1, 2, 3)

	assert.Equal(t, Point(3, 2, -1), Translate(2, 0, -4).MulVec4(p))
	assert.Equal(t, Point(2, 6, -3), Scale(2, 3, -1).MulVec4(p))
	assert.Equal(t, Point(2, 4, 6), ScaleUniform(2).MulVec4(p))

	// Directions ignore translation.
	d := Vec4{1, 0, 0, 0}
	assert.Equal(t, d, Translate(5, 5, 5).MulVec4(d))
}

func TestFromColumns(t *testing.T) {
	m := Mat4FromColumns(
		Vec4{1, 0, 0, 0},
		Vec4{0, 1, 0, 0},
		Vec4{0, 0, 1, 0},
		Vec4{7, 8, 9, 1},
	)
	assert.Equal(t, Translate(7, 8, 9), m)
}

func TestRotate(t *testing.T) {
	x := Vec4{1, 0, 0, 0}
	y := Vec4{0, 1, 0, 0}
	z := Vec4{0, 0, 1, 0}

	assert.True(t, RotateZ(90).MulVec4(x).ApproxEqual(y, tol))
	assert.True(t, RotateX(90).MulVec4(y).ApproxEqual(z, tol))
	assert.True(t, RotateY(90).MulVec4(z).ApproxEqual(x, tol))

	// The axis does not need to be unit length.
	assert.True(t, Rotate(90, 0, 0, 7).ApproxEqual(RotateZ(90), tol))

	// Rotations compose by adding angles.
	assert.True(t, RotateY(30).Mul(RotateY(60)).ApproxEqual(RotateY(90), tol))

	// Rotating by theta then -theta is the identity.
	assert.True(t, Rotate(37, 1, 2, 3).Mul(Rotate(-37, 1, 2, 3)).ApproxEqual(Mat4Identity(), tol))
}

func TestRotateZeroAxis(t *testing.T) {
	assert.Equal(t, Mat4Identity(), Rotate(45, 0, 0, 0))
}

func TestIsIdentity(t *testing.T) {
	assert.True(t, Mat4Identity().IsIdentity())
	assert.False(t, Translate(0, 0, 1e-3).IsIdentity())
}
