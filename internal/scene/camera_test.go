package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wireframe-renderer/internal/mathutil"
)

func TestOrthographicNormalizeCorners(t *testing.T) {
	c := &Camera{}
	c.ProjOrtho(-2, 6, 1, 5)

	assert.False(t, c.Perspective)
	lo := c.Normalize.MulVec4(mathutil.Point(-2, 1, -7))
	hi := c.Normalize.MulVec4(mathutil.Point(6, 5, 3))
	assert.True(t, lo.ApproxEqual(mathutil.Point(-1, -1, -7), 1e-12), "%v", lo)
	assert.True(t, hi.ApproxEqual(mathutil.Point(1, 1, 3), 1e-12), "%v", hi)
}

func TestOrthographicIsScaleAfterTranslate(t *testing.T) {
	got := OrthographicNormalize(-2, 6, 1, 5)
	want := mathutil.Scale(2.0/8, 2.0/4, 1).Mul(mathutil.Translate(-2, -3, 0))
	assert.True(t, got.ApproxEqual(want, 1e-12))
}

func TestPerspectiveNormalizeCorners(t *testing.T) {
	c := &Camera{}
	c.ProjPerspective(-1, 3, -2, 2, 2)
	require.True(t, c.Perspective)

	// Corners of the view rectangle at z = -near land on ±1 after the divide.
	for _, tc := range []struct {
		p    mathutil.Vec4
		x, y float64
	}{
		{mathutil.Point(-1, -2, -2), -1, -1},
		{mathutil.Point(3, 2, -2), 1, 1},
		{mathutil.Point(1, 0, -2), 0, 0},
		// Twice as far away: the rectangle doubles in size.
		{mathutil.Point(6, 4, -4), 1, 1},
	} {
		v := c.Normalize.MulVec4(tc.p)
		assert.InDelta(t, tc.x, v[0]/-v[2], 1e-12, "x of %v", tc.p)
		assert.InDelta(t, tc.y, v[1]/-v[2], 1e-12, "y of %v", tc.p)
		assert.Equal(t, tc.p[2], v[2], "z is preserved")
	}
}

func TestProjPerspectiveFOV(t *testing.T) {
	c := &Camera{}
	c.ProjPerspectiveFOV(90, 2, 1)

	assert.InDelta(t, 1, c.Top, 1e-12)
	assert.InDelta(t, -1, c.Bottom, 1e-12)
	assert.InDelta(t, 2, c.Right, 1e-12)
	assert.InDelta(t, -2, c.Left, 1e-12)
	assert.Equal(t, 1.0, c.Near)
	assert.InDelta(t, 90, c.FOVY(), 1e-9)
}

func TestProjOrthoFOVKeepsNear(t *testing.T) {
	c := &Camera{}
	c.ProjOrthoFOV(90, 1, 3)

	assert.False(t, c.Perspective)
	assert.InDelta(t, 3, c.Top, 1e-12)
	assert.Equal(t, 3.0, c.Near)
}

func TestReconfigureRebuildsMatrix(t *testing.T) {
	c := NewCamera()
	persp := c.Normalize
	c.ProjOrtho(-4, 4, -4, 4)
	assert.NotEqual(t, persp, c.Normalize)
	c.ProjPerspective(-1, 1, -1, 1, 1)
	assert.Equal(t, persp, c.Normalize)
}

func TestCameraValidate(t *testing.T) {
	assert.NoError(t, NewCamera().Validate())
	assert.NoError(t, NewOrthoCamera().Validate())

	c := &Camera{}
	c.ProjPerspective(-1, 1, -1, 1, 0)
	assert.ErrorIs(t, c.Validate(), ErrInvalidBounds)

	c.ProjPerspective(-1, 1, -1, 1, -2)
	assert.ErrorIs(t, c.Validate(), ErrInvalidBounds)

	c.ProjOrtho(1, 1, -1, 1)
	assert.ErrorIs(t, c.Validate(), ErrInvalidBounds)

	// Orthographic cameras do not care about near.
	c.ProjOrtho(-1, 1, -1, 1)
	c.Near = -5
	assert.NoError(t, c.Validate())
}
