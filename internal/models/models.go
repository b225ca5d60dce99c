// Package models generates procedural wireframe models.
//
// Every generator returns a complete Model: its segments color from the
// vertex with the same index, and the palette starts out all white. Use
// the functions in color.go to recolor.
package models

import (
	"math"

	"wireframe-renderer/internal/mathutil"
	"wireframe-renderer/internal/scene"
)

// Axes3D draws the positive x, y and z axes with the given lengths in red,
// green and blue.
func Axes3D(xMax, yMax, zMax float64) *scene.Model {
	m := scene.NewModel("Axes 3D")
	m.AddVertex(
		mathutil.Point(0, 0, 0), mathutil.Point(xMax, 0, 0),
		mathutil.Point(0, 0, 0), mathutil.Point(0, yMax, 0),
		mathutil.Point(0, 0, 0), mathutil.Point(0, 0, zMax),
	)
	m.AddColor(scene.Red, scene.Green, scene.Blue)
	m.AddSegment(
		scene.SegmentColor(0, 1, 0),
		scene.SegmentColor(2, 3, 1),
		scene.SegmentColor(4, 5, 2),
	)
	return m
}

// Cube is centered at the origin with edge length 2 and vertices at (±1, ±1, ±1).
func Cube() *scene.Model {
	m := scene.NewModel("Cube")
	m.AddVertex(
		mathutil.Point(-1, -1, -1), // bottom face
		mathutil.Point(1, -1, -1),
		mathutil.Point(1, -1, 1),
		mathutil.Point(-1, -1, 1),
		mathutil.Point(-1, 1, -1), // top face
		mathutil.Point(1, 1, -1),
		mathutil.Point(1, 1, 1),
		mathutil.Point(-1, 1, 1),
	)
	m.AddSegment(
		scene.Segment(0, 1), scene.Segment(1, 2), scene.Segment(2, 3), scene.Segment(3, 0),
		scene.Segment(4, 5), scene.Segment(5, 6), scene.Segment(6, 7), scene.Segment(7, 4),
		scene.Segment(0, 4), scene.Segment(1, 5), scene.Segment(2, 6), scene.Segment(3, 7),
	)
	SetColor(m, scene.White)
	return m
}

// Tetrahedron is the regular tetrahedron inscribed in the cube (±1, ±1, ±1).
func Tetrahedron() *scene.Model {
	m := scene.NewModel("Tetrahedron")
	m.AddVertex(
		mathutil.Point(1, 1, 1),
		mathutil.Point(-1, 1, -1),
		mathutil.Point(1, -1, -1),
		mathutil.Point(-1, -1, 1),
	)
	m.AddSegment(
		scene.Segment(0, 1), scene.Segment(0, 2), scene.Segment(0, 3),
		scene.Segment(1, 2), scene.Segment(1, 3), scene.Segment(2, 3),
	)
	SetColor(m, scene.White)
	return m
}

// Octahedron has side length 1, its center plane in y = 0 and its apexes
// on the y axis.
func Octahedron() *scene.Model {
	m := scene.NewModel("Octahedron")
	h := 1 / math.Sqrt2
	m.AddVertex(
		mathutil.Point(0.5, 0, 0.5), // center plane
		mathutil.Point(-0.5, 0, 0.5),
		mathutil.Point(-0.5, 0, -0.5),
		mathutil.Point(0.5, 0, -0.5),
		mathutil.Point(0, h, 0),
		mathutil.Point(0, -h, 0),
	)
	for i := 0; i < 4; i++ {
		m.AddSegment(scene.Segment(i, (i+1)%4), scene.Segment(i, 4), scene.Segment(i, 5))
	}
	SetColor(m, scene.White)
	return m
}

// Pyramid is a right square pyramid with base side s in the xz plane and
// its apex at (0, h, 0).
func Pyramid(s, h float64) *scene.Model {
	m := scene.NewModel("Pyramid")
	m.AddVertex(
		mathutil.Point(-s/2, 0, -s/2),
		mathutil.Point(-s/2, 0, s/2),
		mathutil.Point(s/2, 0, s/2),
		mathutil.Point(s/2, 0, -s/2),
		mathutil.Point(0, h, 0),
	)
	for i := 0; i < 4; i++ {
		m.AddSegment(scene.Segment(i, (i+1)%4), scene.Segment(4, i))
	}
	SetColor(m, scene.White)
	return m
}

// Circle is a regular n-gon of radius r in the xy plane centered at the
// origin. n is raised to at least 3.
func Circle(r float64, n int) *scene.Model {
	n = max(n, 3)
	m := scene.NewModel("Circle")
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		m.AddVertex(mathutil.Point(r*math.Cos(a), r*math.Sin(a), 0))
	}
	for i := 0; i < n; i++ {
		m.AddSegment(scene.Segment(i, (i+1)%n))
	}
	SetColor(m, scene.White)
	return m
}

// Sphere of radius r centered at the origin, drawn with n circles of
// latitude and k half circles of longitude from pole to pole. n is raised
// to at least 1 and k to at least 3.
func Sphere(r float64, n, k int) *scene.Model {
	n, k = max(n, 1), max(k, 3)
	m := scene.NewModel("Sphere")

	m.AddVertex(mathutil.Point(0, r, 0), mathutil.Point(0, -r, 0))
	north, south := 0, 1
	at := func(i, j int) int { return 2 + i*k + j }

	for i := 0; i < n; i++ {
		phi := math.Pi * float64(i+1) / float64(n+1) // from the north pole
		y, ring := r*math.Cos(phi), r*math.Sin(phi)
		for j := 0; j < k; j++ {
			theta := 2 * math.Pi * float64(j) / float64(k)
			m.AddVertex(mathutil.Point(ring*math.Sin(theta), y, ring*math.Cos(theta)))
		}
	}
	for i := 0; i < n; i++ {
		for j := 0; j < k; j++ {
			m.AddSegment(scene.Segment(at(i, j), at(i, (j+1)%k)))
		}
	}
	for j := 0; j < k; j++ {
		m.AddSegment(scene.Segment(north, at(0, j)))
		for i := 0; i+1 < n; i++ {
			m.AddSegment(scene.Segment(at(i, j), at(i+1, j)))
		}
		m.AddSegment(scene.Segment(at(n-1, j), south))
	}
	SetColor(m, scene.White)
	return m
}

// SquareGrid is the square with corners (±r, ±r, 0) crossed by n grid
// lines parallel to the y axis and m parallel to the x axis.
func SquareGrid(r float64, n, m int) *scene.Model {
	n, m = max(n, 0), max(m, 0)
	r = math.Abs(r)
	model := scene.NewModel("Square Grid")

	cols, rows := n+2, m+2
	xStep := 2 * r / float64(n+1)
	yStep := 2 * r / float64(m+1)
	at := func(row, col int) int { return row*cols + col }

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			model.AddVertex(mathutil.Point(-r+float64(j)*xStep, -r+float64(i)*yStep, 0))
		}
	}
	for i := 0; i < rows; i++ {
		for j := 0; j+1 < cols; j++ {
			model.AddSegment(scene.Segment(at(i, j), at(i, j+1)))
		}
	}
	for j := 0; j < cols; j++ {
		for i := 0; i+1 < rows; i++ {
			model.AddSegment(scene.Segment(at(i, j), at(i+1, j)))
		}
	}
	SetColor(model, scene.White)
	return model
}

// ViewFrustum draws a perspective view volume cut off at z = -near and
// z = -far, with the front face bounded by left, right, bottom and top.
func ViewFrustum(left, right, bottom, top, near, far float64) *scene.Model {
	m := scene.NewModel("View Frustum")
	s := far / near
	m.AddVertex(
		mathutil.Point(left, top, -near),
		mathutil.Point(right, top, -near),
		mathutil.Point(right, bottom, -near),
		mathutil.Point(left, bottom, -near),
		mathutil.Point(left*s, top*s, -far),
		mathutil.Point(right*s, top*s, -far),
		mathutil.Point(right*s, bottom*s, -far),
		mathutil.Point(left*s, bottom*s, -far),
	)
	for i := 0; i < 4; i++ {
		m.AddSegment(
			scene.Segment(i, (i+1)%4),     // front
			scene.Segment(4+i, 4+(i+1)%4), // back
			scene.Segment(i, 4+i),
		)
	}
	SetColor(m, scene.White)
	return m
}

// ViewFrustumFOV is ViewFrustum with the front face given by a vertical
// field of view in degrees and a width/height aspect ratio.
func ViewFrustumFOV(fovy, aspect, near, far float64) *scene.Model {
	top := near * math.Tan(mathutil.Deg2Rad(fovy)/2)
	right := top * aspect
	return ViewFrustum(-right, right, -top, top, near, far)
}

// Icosahedron is the regular icosahedron with edge length 2 centered at
// the origin: the cyclic permutations of (0, ±1, ±φ).
func Icosahedron() *scene.Model {
	t := (1 + math.Sqrt(5)) / 2
	m := scene.NewModel("Icosahedron")
	m.AddVertex(
		mathutil.Point(-1, t, 0), mathutil.Point(1, t, 0),
		mathutil.Point(-1, -t, 0), mathutil.Point(1, -t, 0),
		mathutil.Point(0, -1, t), mathutil.Point(0, 1, t),
		mathutil.Point(0, -1, -t), mathutil.Point(0, 1, -t),
		mathutil.Point(t, 0, -1), mathutil.Point(t, 0, 1),
		mathutil.Point(-t, 0, -1), mathutil.Point(-t, 0, 1),
	)
	for _, e := range [30][2]int{
		{0, 1}, {0, 5}, {0, 7}, {0, 11}, {0, 10},
		{1, 5}, {1, 7}, {1, 9}, {1, 8},
		{5, 11}, {5, 9}, {5, 4},
		{7, 10}, {7, 8}, {7, 6},
		{11, 10}, {11, 4}, {11, 2},
		{9, 8}, {9, 4}, {9, 3},
		{10, 6}, {10, 2},
		{8, 6}, {8, 3},
		{4, 2}, {4, 3},
		{6, 2}, {6, 3},
		{2, 3},
	} {
		m.AddSegment(scene.Segment(e[0], e[1]))
	}
	SetColor(m, scene.White)
	return m
}
