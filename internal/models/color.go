package models

import (
	"math/rand/v2"

	"wireframe-renderer/internal/scene"
)

// SetColor paints every palette entry c. A model without a palette gets
// one entry per vertex.
func SetColor(m *scene.Model, c scene.Color) {
	if len(m.Colors) == 0 {
		m.Colors = make([]scene.Color, len(m.Vertices))
	}
	for i := range m.Colors {
		m.Colors[i] = c
	}
}

// SetRandomColor paints the whole model one random color.
func SetRandomColor(m *scene.Model, rng *rand.Rand) {
	SetColor(m, randomColor(rng))
}

// SetRandomColors replaces every palette entry with its own random color,
// keeping the segments' color indices.
func SetRandomColors(m *scene.Model, rng *rand.Rand) {
	if len(m.Colors) == 0 {
		SetRandomVertexColors(m, rng)
		return
	}
	for i := range m.Colors {
		m.Colors[i] = randomColor(rng)
	}
}

// SetRandomVertexColors gives each vertex a random color and makes every
// segment color from its own vertices.
func SetRandomVertexColors(m *scene.Model, rng *rand.Rand) {
	m.Colors = make([]scene.Color, len(m.Vertices))
	for i := range m.Colors {
		m.Colors[i] = randomColor(rng)
	}
	colorFromVertices(m)
}

// SetRandomSegmentColors gives each segment its own uniform random color.
func SetRandomSegmentColors(m *scene.Model, rng *rand.Rand) {
	m.Colors = make([]scene.Color, len(m.Segments))
	for i := range m.Segments {
		m.Colors[i] = randomColor(rng)
		m.Segments[i].C = [2]int{i, i}
	}
}

// SetRainbowSegmentColors gives each end of each segment its own random color.
func SetRainbowSegmentColors(m *scene.Model, rng *rand.Rand) {
	m.Colors = make([]scene.Color, 0, 2*len(m.Segments))
	for i := range m.Segments {
		m.Colors = append(m.Colors, randomColor(rng), randomColor(rng))
		m.Segments[i].C = [2]int{2 * i, 2*i + 1}
	}
}

// SetGradient colors each vertex by its height, from c0 at the lowest
// vertex to c1 at the highest, and makes every segment color from its
// own vertices.
func SetGradient(m *scene.Model, c0, c1 scene.Color) {
	lo, hi, ok := m.Bounds()
	if !ok {
		return
	}
	span := hi[1] - lo[1]
	m.Colors = make([]scene.Color, len(m.Vertices))
	for i, v := range m.Vertices {
		t := 0.0
		if span > 0 {
			t = (v[1] - lo[1]) / span
		}
		m.Colors[i] = c0.Lerp(c1, t)
	}
	colorFromVertices(m)
}

func colorFromVertices(m *scene.Model) {
	for i := range m.Segments {
		m.Segments[i].C = m.Segments[i].V
	}
}

func randomColor(rng *rand.Rand) scene.Color {
	return scene.Color{rng.Float64(), rng.Float64(), rng.Float64()}
}
