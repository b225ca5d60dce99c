package mathutil

import (
	"fmt"
	"math"
)

// Vec4 is a homogeneous 4-component vector (value type, stack-allocated).
// Points carry w=1, directions w=0.
type Vec4 [4]float64

// Point returns the affine point (x, y, z, 1).
func Point(x, y, z float64) Vec4 {
	return Vec4{x, y, z, 1}
}

func (a Vec4) Add(b Vec4) Vec4 {
	return Vec4{a[0] + b[0], a[1] + b[1], a[2] + b[2], a[3] + b[3]}
}

func (v Vec4) Scale(s float64) Vec4 {
	return Vec4{v[0] * s, v[1] * s, v[2] * s, v[3] * s}
}

// Dot is the 3-component dot product; w is ignored.
func (a Vec4) Dot(b Vec4) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// Len is the length of the xyz part.
func (v Vec4) Len() float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// Normalize scales the xyz part to unit length and keeps w.
// A near-zero vector normalizes to the zero direction.
func (v Vec4) Normalize() Vec4 {
	l := v.Len()
	if l < 1e-12 {
		return Vec4{0, 0, 0, v[3]}
	}
	return Vec4{v[0] / l, v[1] / l, v[2] / l, v[3]}
}

// Lerp returns a + t·(b−a) on all four components.
func (a Vec4) Lerp(b Vec4, t float64) Vec4 {
	return Vec4{
		a[0] + t*(b[0]-a[0]),
		a[1] + t*(b[1]-a[1]),
		a[2] + t*(b[2]-a[2]),
		a[3] + t*(b[3]-a[3]),
	}
}

// IsFinite reports whether no component is NaN or ±Inf.
func (v Vec4) IsFinite() bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// ApproxEqual compares component-wise within eps.
func (a Vec4) ApproxEqual(b Vec4, eps float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}

func (v Vec4) String() string {
	return fmt.Sprintf("(x,y,z,w)=(% .5f  % .5f  % .5f  % .5f)", v[0], v[1], v[2], v[3])
}
