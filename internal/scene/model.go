package scene

import (
	"fmt"
	"strings"

	"wireframe-renderer/internal/mathutil"
)

// LineSegment indexes two vertices and the colors at those two endpoints
// in its owning Model.
type LineSegment struct {
	V [2]int
	C [2]int
}

// Segment builds a LineSegment whose endpoint colors share the vertex indices.
func Segment(v0, v1 int) LineSegment {
	return LineSegment{V: [2]int{v0, v1}, C: [2]int{v0, v1}}
}

// SegmentColor builds a LineSegment with one uniform color index.
func SegmentColor(v0, v1, c int) LineSegment {
	return LineSegment{V: [2]int{v0, v1}, C: [2]int{c, c}}
}

// Model is a wireframe: vertices in the model's local coordinates, line
// segments indexing them, and the palette those segments color from.
type Model struct {
	Name     string
	Vertices []mathutil.Vec4
	Segments []LineSegment
	Colors   []Color
	Visible  bool
	Debug    bool // trace this model through the pipeline
}

// NewModel returns an empty, visible model.
func NewModel(name string) *Model {
	return &Model{Name: name, Visible: true}
}

func (m *Model) AddVertex(vs ...mathutil.Vec4) {
	m.Vertices = append(m.Vertices, vs...)
}

func (m *Model) AddSegment(ls ...LineSegment) {
	m.Segments = append(m.Segments, ls...)
}

func (m *Model) AddColor(cs ...Color) {
	m.Colors = append(m.Colors, cs...)
}

// Clone returns a deep copy.
func (m *Model) Clone() *Model {
	c := *m
	c.Vertices = append([]mathutil.Vec4(nil), m.Vertices...)
	c.Segments = append([]LineSegment(nil), m.Segments...)
	c.Colors = append([]Color(nil), m.Colors...)
	return &c
}

// Empty reports which of the model's lists are empty. A model with any
// empty list draws nothing.
func (m *Model) Empty() []string {
	var missing []string
	if len(m.Vertices) == 0 {
		missing = append(missing, "vertices")
	}
	if len(m.Segments) == 0 {
		missing = append(missing, "line segments")
	}
	if len(m.Colors) == 0 {
		missing = append(missing, "colors")
	}
	return missing
}

// Validate checks every segment's vertex and color indices.
func (m *Model) Validate() error {
	nv, nc := len(m.Vertices), len(m.Colors)
	for i, ls := range m.Segments {
		for k := 0; k < 2; k++ {
			if ls.V[k] < 0 || ls.V[k] >= nv {
				return fmt.Errorf("scene: model %q segment %d: vertex index %d out of range [0,%d)",
					m.Name, i, ls.V[k], nv)
			}
			if ls.C[k] < 0 || ls.C[k] >= nc {
				return fmt.Errorf("scene: model %q segment %d: color index %d out of range [0,%d)",
					m.Name, i, ls.C[k], nc)
			}
		}
	}
	return nil
}

// Bounds returns the axis-aligned extent of the vertices (xyz only).
func (m *Model) Bounds() (min, max mathutil.Vec4, ok bool) {
	if len(m.Vertices) == 0 {
		return min, max, false
	}
	min, max = m.Vertices[0], m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		for k := 0; k < 3; k++ {
			if v[k] < min[k] {
				min[k] = v[k]
			}
			if v[k] > max[k] {
				max[k] = v[k]
			}
		}
	}
	return min, max, true
}

func (m *Model) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Model: %s\n", m.Name)
	fmt.Fprintf(&sb, "visible: %v\n", m.Visible)
	fmt.Fprintf(&sb, "%d vertices, %d colors, %d line segments\n",
		len(m.Vertices), len(m.Colors), len(m.Segments))
	for i, v := range m.Vertices {
		fmt.Fprintf(&sb, "%3d: %v\n", i, v)
	}
	for i, c := range m.Colors {
		fmt.Fprintf(&sb, "%3d: %v\n", i, c)
	}
	for _, ls := range m.Segments {
		fmt.Fprintf(&sb, "Line Segment: (%v, %v)\n", ls.V, ls.C)
	}
	return sb.String()
}
