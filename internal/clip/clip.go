// Package clip trims line segments to the canonical view volume.
//
// Endpoints are homogeneous clip coordinates. The volume is
//
//	-w <= x <= w,  -w <= y <= w,  w >= minW
//
// which is the box [-1,1]² for affine points (w = 1) and the normalized
// perspective pyramid when w carries the depth -z. Clipping before the
// perspective divide keeps every surviving w >= minW, so the divide that
// follows can never see a zero or negative denominator.
package clip

import (
	"math"

	"wireframe-renderer/internal/mathutil"
	"wireframe-renderer/internal/scene"
)

// Endpoint is one end of a segment with the color carried there.
type Endpoint struct {
	P mathutil.Vec4
	C scene.Color
}

// Result classifies the outcome of Line.
type Result int

const (
	Rejected Result = iota // fully outside
	Inside                 // returned unchanged
	Clipped                // shortened to the volume boundary
)

func (r Result) String() string {
	switch r {
	case Rejected:
		return "reject"
	case Inside:
		return "accept"
	case Clipped:
		return "clip"
	}
	return "unknown"
}

// boundary returns the signed distances of p to the five bounding planes;
// a point is inside when all are >= 0.
func boundary(p mathutil.Vec4, minW float64) [5]float64 {
	return [5]float64{
		p[3] + p[0], // x = -w
		p[3] - p[0], // x = +w
		p[3] + p[1], // y = -w
		p[3] - p[1], // y = +w
		p[3] - minW, // near
	}
}

// Line clips the segment a→b with the parametric Liang–Barsky method.
//
// The segment is P(t) = a + t·(b−a), t in [0,1]. Each plane narrows
// [tmin, tmax]; an empty interval rejects the segment. Endpoints that
// move are recomputed from the original a and b, and their colors are
// interpolated with the same t.
func Line(a, b Endpoint, minW float64) (Endpoint, Endpoint, Result) {
	da := boundary(a.P, minW)
	db := boundary(b.P, minW)

	tmin, tmax := 0.0, 1.0
	for i := range da {
		d0, d1 := da[i], db[i]
		switch {
		case d0 < 0 && d1 < 0:
			return a, b, Rejected
		case d0 < 0:
			// entering the half-space
			if t := d0 / (d0 - d1); t > tmin {
				tmin = t
			}
		case d1 < 0:
			// leaving the half-space
			if t := d0 / (d0 - d1); t < tmax {
				tmax = t
			}
		}
		if tmin > tmax {
			return a, b, Rejected
		}
	}

	if tmin == 0 && tmax == 1 {
		return a, b, Inside
	}

	na, nb := a, b
	if tmin > 0 {
		na = Endpoint{P: a.P.Lerp(b.P, tmin), C: a.C.Lerp(b.C, tmin)}
	}
	if tmax < 1 {
		nb = Endpoint{P: a.P.Lerp(b.P, tmax), C: a.C.Lerp(b.C, tmax)}
	}
	return na, nb, Clipped
}

// NoNear disables the near plane, for orthographic volumes.
var NoNear = math.Inf(-1)
