package scene

import (
	"errors"
	"fmt"
	"math"

	"wireframe-renderer/internal/mathutil"
)

// ErrInvalidBounds is returned by Camera.Validate for a degenerate view volume.
var ErrInvalidBounds = errors.New("scene: invalid camera bounds")

// Camera sits at the origin looking down the negative z axis. Its view
// volume is either an infinite pyramid with apex at the origin whose
// cross-section at z = -Near is [Left,Right]×[Bottom,Top] (perspective),
// or an infinite box along z with the same cross-section (orthographic).
//
// Normalize maps the view volume onto the canonical volume; it is rebuilt
// by every Proj* call, so set the bounds through those methods.
type Camera struct {
	Perspective bool
	Left        float64
	Right       float64
	Bottom      float64
	Top         float64
	Near        float64 // distance to the image plane, positive

	Normalize mathutil.Mat4
}

// NewCamera returns the standard perspective camera: bounds [-1,1]², near 1.
func NewCamera() *Camera {
	c := &Camera{}
	c.ProjPerspective(-1, 1, -1, 1, 1)
	return c
}

// NewOrthoCamera returns the standard orthographic camera: bounds [-1,1]².
func NewOrthoCamera() *Camera {
	c := &Camera{}
	c.ProjOrtho(-1, 1, -1, 1)
	return c
}

// ProjPerspective sets a perspective view volume.
func (c *Camera) ProjPerspective(left, right, bottom, top, near float64) {
	c.Left, c.Right, c.Bottom, c.Top, c.Near = left, right, bottom, top, near
	c.Perspective = true
	c.Normalize = PerspectiveNormalize(left, right, bottom, top, near)
}

// ProjPerspectiveFOV sets a symmetric perspective view volume from a
// vertical field of view (degrees) and a width/height aspect ratio.
func (c *Camera) ProjPerspectiveFOV(fovy, aspect, near float64) {
	top := near * math.Tan(mathutil.Deg2Rad(fovy)/2)
	right := top * aspect
	c.ProjPerspective(-right, right, -top, top, near)
}

// ProjOrtho sets an orthographic view volume.
func (c *Camera) ProjOrtho(left, right, bottom, top float64) {
	c.Left, c.Right, c.Bottom, c.Top = left, right, bottom, top
	c.Perspective = false
	c.Normalize = OrthographicNormalize(left, right, bottom, top)
}

// ProjOrthoFOV sets an orthographic box matching the cross-section of the
// equivalent perspective frustum at near. Near itself is retained.
func (c *Camera) ProjOrthoFOV(fovy, aspect, near float64) {
	top := near * math.Tan(mathutil.Deg2Rad(fovy)/2)
	right := top * aspect
	c.ProjOrtho(-right, right, -top, top)
	c.Near = near
}

// Validate reports bounds that cannot be normalized.
func (c *Camera) Validate() error {
	if c.Right == c.Left || c.Top == c.Bottom {
		return fmt.Errorf("%w: empty view rectangle [%g,%g]x[%g,%g]",
			ErrInvalidBounds, c.Left, c.Right, c.Bottom, c.Top)
	}
	if c.Perspective && !(c.Near > 0) {
		return fmt.Errorf("%w: perspective near must be positive, got %g", ErrInvalidBounds, c.Near)
	}
	for _, v := range []float64{c.Left, c.Right, c.Bottom, c.Top, c.Near} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite bound", ErrInvalidBounds)
		}
	}
	return nil
}

// FOVY returns the vertical field of view in degrees implied by the bounds.
// Only meaningful for a symmetric perspective camera.
func (c *Camera) FOVY() float64 {
	if c.Near == 0 {
		return 0
	}
	return 2 * mathutil.Rad2Deg(math.Atan(c.Top/c.Near))
}

func (c *Camera) String() string {
	return fmt.Sprintf("Camera:\nperspective = %v\nleft = %g, right = %g\nbottom = %g, top = %g\nnear = %g\nNormalization Matrix\n%v",
		c.Perspective, c.Left, c.Right, c.Bottom, c.Top, c.Near, c.Normalize)
}

// OrthographicNormalize translates the box's center line onto the z axis,
// then scales it to 2 units wide and tall: S × T.
func OrthographicNormalize(l, r, b, t float64) mathutil.Mat4 {
	translate := mathutil.Translate(-(r+l)/2, -(t+b)/2, 0)
	scale := mathutil.Scale(2/(r-l), 2/(t-b), 1)
	return scale.Mul(translate)
}

// PerspectiveNormalize shears the frustum so its axis is the negative z
// axis, then scales it so the cross-section at z = -near is [-near,near]².
// Dividing by -z afterwards lands that cross-section on [-1,1]². z and w
// are left unchanged.
func PerspectiveNormalize(l, r, b, t, near float64) mathutil.Mat4 {
	shear := mathutil.Mat4FromColumns(
		mathutil.Vec4{1, 0, 0, 0},
		mathutil.Vec4{0, 1, 0, 0},
		mathutil.Vec4{(r + l) / (2 * near), (t + b) / (2 * near), 1, 0},
		mathutil.Vec4{0, 0, 0, 1},
	)
	scale := mathutil.Scale(2*near/(r-l), 2*near/(t-b), 1)
	return scale.Mul(shear)
}
