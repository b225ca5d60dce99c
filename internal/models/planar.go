package models

import (
	"math"

	"wireframe-renderer/internal/mathutil"
	"wireframe-renderer/internal/scene"
)

// Axes2D draws an x axis from xMin to xMax in red and a y axis from yMin
// to yMax in green, in the plane z, with xMarks+1 and yMarks+1 evenly
// spaced tick marks. Ticks are 1/50 of the other axis long.
func Axes2D(xMin, xMax, yMin, yMax float64, xMarks, yMarks int, z float64) *scene.Model {
	xMarks, yMarks = max(xMarks, 1), max(yMarks, 1)
	m := scene.NewModel("Axes 2D")
	m.AddColor(scene.Red, scene.Green)

	m.AddVertex(mathutil.Point(xMin, 0, z), mathutil.Point(xMax, 0, z))
	m.AddVertex(mathutil.Point(0, yMin, z), mathutil.Point(0, yMax, z))
	m.AddSegment(scene.SegmentColor(0, 1, 0), scene.SegmentColor(2, 3, 1))

	tick := (yMax - yMin) / 100
	for i := 0; i <= xMarks; i++ {
		x := xMin + (xMax-xMin)*float64(i)/float64(xMarks)
		n := len(m.Vertices)
		m.AddVertex(mathutil.Point(x, tick, z), mathutil.Point(x, -tick, z))
		m.AddSegment(scene.SegmentColor(n, n+1, 0))
	}
	tick = (xMax - xMin) / 100
	for i := 0; i <= yMarks; i++ {
		y := yMin + (yMax-yMin)*float64(i)/float64(yMarks)
		n := len(m.Vertices)
		m.AddVertex(mathutil.Point(tick, y, z), mathutil.Point(-tick, y, z))
		m.AddSegment(scene.SegmentColor(n, n+1, 1))
	}
	return m
}

// PanelXZ is a checkerboard of unit squares in the plane y, covering
// [xMin, xMax]×[zMin, zMax].
func PanelXZ(xMin, xMax, zMin, zMax int, y float64) *scene.Model {
	if xMax < xMin {
		xMin, xMax = xMax, xMin
	}
	if zMax < zMin {
		zMin, zMax = zMax, zMin
	}
	m := scene.NewModel("PanelXZ")
	nz := zMax - zMin + 1
	at := func(i, j int) int { return i*nz + j }

	for x := xMin; x <= xMax; x++ {
		for z := zMin; z <= zMax; z++ {
			m.AddVertex(mathutil.Point(float64(x), y, float64(z)))
		}
	}
	for i := 0; i <= xMax-xMin; i++ {
		for j := 0; j < nz-1; j++ {
			m.AddSegment(scene.Segment(at(i, j), at(i, j+1)))
		}
	}
	for j := 0; j < nz; j++ {
		for i := 0; i < xMax-xMin; i++ {
			m.AddSegment(scene.Segment(at(i, j), at(i+1, j)))
		}
	}
	SetColor(m, scene.White)
	return m
}

// RingSector is the part of the annulus between radii inner and outer
// from angle theta0 to theta1 (degrees) in the xy plane, drawn with n
// concentric arcs and k spokes. n is raised to at least 2 and k to at
// least 2.
func RingSector(outer, inner, theta0, theta1 float64, n, k int) *scene.Model {
	n, k = max(n, 2), max(k, 2)
	m := scene.NewModel("Ring Sector")
	at := func(i, j int) int { return i*k + j }

	for i := 0; i < n; i++ {
		r := inner + (outer-inner)*float64(i)/float64(n-1)
		for j := 0; j < k; j++ {
			a := mathutil.Deg2Rad(theta0 + (theta1-theta0)*float64(j)/float64(k-1))
			m.AddVertex(mathutil.Point(r*math.Cos(a), r*math.Sin(a), 0))
		}
	}
	for i := 0; i < n; i++ {
		for j := 0; j < k-1; j++ {
			m.AddSegment(scene.Segment(at(i, j), at(i, j+1)))
		}
	}
	for j := 0; j < k; j++ {
		for i := 0; i < n-1; i++ {
			m.AddSegment(scene.Segment(at(i, j), at(i+1, j)))
		}
	}
	SetColor(m, scene.White)
	return m
}
