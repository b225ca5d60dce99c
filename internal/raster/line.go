package raster

import (
	"log/slog"
	"math"

	"wireframe-renderer/internal/mathutil"
	"wireframe-renderer/internal/scene"
)

// InvGamma is the gamma-encoding exponent applied to linear colors.
const InvGamma = 1.0 / 2.2

// pixelPlaneFudge replaces 2 in the viewport transform so that x = +1
// lands inside the last pixel instead of half a pixel past it
// (Blinn, "A Trip Down the Graphics Pipeline", p. 142).
const pixelPlaneFudge = 2.001

// LineOptions selects the optional rasterizer passes.
type LineOptions struct {
	Antialias bool
	Gamma     bool
	Trace     *slog.Logger // per-pixel debug output; nil disables
}

// DrawLine rasterizes the segment p0→p1, given in canonical [-1,1]²
// coordinates (only x and y are read), into vp. Color is interpolated
// linearly from c0 to c1.
//
// Both endpoints are first moved to the logical pixel plane, where pixel
// centers sit on integer coordinates 1..w and 1..h, and rounded to the
// nearest logical pixel. The segment is then walked one unit at a time
// along its major axis. With Antialias the minor coordinate is shared
// between the two bracketing pixels, each blended toward the viewport's
// background. The last pixel is always written on its own.
func DrawLine(vp Viewport, p0, p1 mathutil.Vec4, c0, c1 scene.Color, opt LineOptions) {
	if !p0.IsFinite() || !p1.IsFinite() {
		if opt.Trace != nil {
			opt.Trace.Debug("rasterize: skipping non-finite segment", "p0", p0, "p1", p1)
		}
		return
	}

	w, h := vp.Width(), vp.Height()
	if w <= 0 || h <= 0 {
		return
	}
	r := lineRun{vp: vp, h: h, opt: opt}

	x0 := roundHalfUp(0.5 + float64(w)/pixelPlaneFudge*(p0[0]+1))
	y0 := roundHalfUp(0.5 + float64(h)/pixelPlaneFudge*(p0[1]+1))
	x1 := roundHalfUp(0.5 + float64(w)/pixelPlaneFudge*(p1[0]+1))
	y1 := roundHalfUp(0.5 + float64(h)/pixelPlaneFudge*(p1[1]+1))

	// A segment that projects onto one point. We can't tell which endpoint
	// is in front, so use c0.
	if x0 == x1 && y0 == y1 {
		r.plot(x0, y0, c0)
		return
	}

	// Walk along the axis with the larger extent so each step moves at
	// most one pixel on the other axis.
	if math.Abs(y1-y0) > math.Abs(x1-x0) {
		r.transposed = true
		x0, y0 = y0, x0
		x1, y1 = y1, x1
	}
	if x1 < x0 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
		c0, c1 = c1, c0
	}

	major := w
	if r.transposed {
		major = h
	}
	bg := vp.Background()

	// Logical major coordinates outside [1, major] cannot reach the
	// viewport, so the walk is bounded by it, not by the endpoints.
	start := math.Max(x0, 0)
	end := math.Min(x1, float64(major)+1)

	dx := x1 - x0
	m := (y1 - y0) / dx
	for x := start; x < end; x++ {
		t := (x - x0) / dx
		y := y0 + m*(x-x0)
		c := c0.Lerp(c1, t)

		if !opt.Antialias {
			r.plot(x, roundHalfUp(y), c)
			continue
		}

		yLow := math.Floor(y)
		weight := y - yLow
		if weight == 0 {
			r.plot(x, yLow, c)
			continue
		}
		r.plot(x, yLow, c.Lerp(bg, weight))
		r.plot(x, yLow+1, bg.Lerp(c, weight))
	}

	r.plot(x1, y1, c1)
}

type lineRun struct {
	vp         Viewport
	h          int
	transposed bool
	opt        LineOptions
}

// plot writes the logical pixel (x, y) of the possibly transposed line.
func (r *lineRun) plot(x, y float64, c scene.Color) {
	if r.transposed {
		x, y = y, x
	}
	if r.opt.Gamma {
		c = GammaEncode(c)
	}
	vx := clampCoord(x) - 1
	vy := r.h - clampCoord(y)
	if r.opt.Trace != nil {
		r.opt.Trace.Debug("rasterize: pixel", "x", vx, "y", vy, "lx", x, "ly", y, "color", c)
	}
	r.vp.SetPixel(vx, vy, c)
}

// GammaEncode clamps each channel to [0,1] and raises it to 1/2.2.
func GammaEncode(c scene.Color) scene.Color {
	for k := range c {
		v := c[k]
		if v <= 0 {
			c[k] = 0
			continue
		}
		if v > 1 {
			v = 1
		}
		c[k] = math.Pow(v, InvGamma)
	}
	return c
}

// roundHalfUp rounds to the nearest integer with ties toward +Inf.
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

// clampCoord converts a logical coordinate to int without overflow; any
// value this far out is off the viewport anyway.
func clampCoord(v float64) int {
	const limit = 1 << 30
	if v > limit {
		return limit
	}
	if v < -limit {
		return -limit
	}
	return int(v)
}
