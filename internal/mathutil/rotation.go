package mathutil

import "math"

// Translate returns the matrix that moves points by (x, y, z).
func Translate(x, y, z float64) Mat4 {
	return Mat4{
		1, 0, 0, x,
		0, 1, 0, y,
		0, 0, 1, z,
		0, 0, 0, 1,
	}
}

// Scale returns a non-uniform scaling matrix.
func Scale(x, y, z float64) Mat4 {
	return Mat4{
		x, 0, 0, 0,
		0, y, 0, 0,
		0, 0, z, 0,
		0, 0, 0, 1,
	}
}

// ScaleUniform scales all three axes by s.
func ScaleUniform(s float64) Mat4 {
	return Scale(s, s, s)
}

// Rotate returns the rotation of theta degrees about the axis (x, y, z),
// using the OpenGL glRotate form of Rodrigues' formula. The axis is
// normalized here; a zero-length axis yields the identity.
func Rotate(theta, x, y, z float64) Mat4 {
	norm := math.Sqrt(x*x + y*y + z*z)
	if norm < 1e-12 {
		return Mat4Identity()
	}
	ux, uy, uz := x/norm, y/norm, z/norm

	a := Deg2Rad(theta)
	c, s := math.Cos(a), math.Sin(a)
	k := 1 - c

	return Mat4{
		ux*ux*k + c, ux*uy*k - uz*s, ux*uz*k + uy*s, 0,
		uy*ux*k + uz*s, uy*uy*k + c, uy*uz*k - ux*s, 0,
		uz*ux*k - uy*s, uz*uy*k + ux*s, uz*uz*k + c, 0,
		0, 0, 0, 1,
	}
}

// RotateX rotates theta degrees about the x axis.
func RotateX(theta float64) Mat4 { return Rotate(theta, 1, 0, 0) }

// RotateY rotates theta degrees about the y axis.
func RotateY(theta float64) Mat4 { return Rotate(theta, 0, 1, 0) }

// RotateZ rotates theta degrees about the z axis.
func RotateZ(theta float64) Mat4 { return Rotate(theta, 0, 0, 1) }

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}

// Rad2Deg converts radians to degrees.
func Rad2Deg(r float64) float64 {
	return r * 180 / math.Pi
}
