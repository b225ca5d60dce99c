package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wireframe-renderer/internal/mathutil"
)

func TestPositionTreeOwnership(t *testing.T) {
	root := NewPosition(nil)
	child := NewPosition(nil)
	grandchild := NewPosition(nil)

	require.NoError(t, root.AddChild(child))
	require.NoError(t, child.AddChild(grandchild))

	assert.Same(t, child, root.Children()[0])
	assert.Same(t, root, child.Parent())
	assert.Equal(t, 3, root.Depth())

	// A Position has exactly one owner.
	other := NewPosition(nil)
	assert.ErrorIs(t, other.AddChild(child), ErrAlreadyOwned)

	// No cycles.
	assert.ErrorIs(t, grandchild.AddChild(root), ErrCycle)
	assert.ErrorIs(t, root.AddChild(root), ErrCycle)
}

func TestSceneOwnsRoots(t *testing.T) {
	s := New(nil)
	require.NotNil(t, s.Camera)
	assert.True(t, s.Camera.Perspective)

	p := NewPosition(nil)
	require.NoError(t, s.AddPosition(p))
	assert.ErrorIs(t, s.AddPosition(p), ErrAlreadyOwned)
	assert.ErrorIs(t, NewPosition(nil).AddChild(p), ErrAlreadyOwned)
	assert.Len(t, s.Positions(), 1)
}

func TestSceneWalkPreOrder(t *testing.T) {
	a := NewPosition(NewModel("a"))
	b := NewPosition(NewModel("b"))
	c := NewPosition(NewModel("c"))
	d := NewPosition(NewModel("d"))
	require.NoError(t, a.AddChild(b, c))
	require.NoError(t, b.AddChild(d))

	s := New(NewOrthoCamera())
	require.NoError(t, s.AddPosition(a))

	var order []string
	var depths []int
	s.Walk(func(p *Position, depth int) {
		order = append(order, p.Model.Name)
		depths = append(depths, depth)
	})
	assert.Equal(t, []string{"a", "b", "d", "c"}, order)
	assert.Equal(t, []int{0, 1, 2, 1}, depths)
	assert.Contains(t, s.String(), "Scene has 1 root positions")
}

func TestModelValidate(t *testing.T) {
	m := NewModel("tri")
	m.AddVertex(mathutil.Point(0, 0, 0), mathutil.Point(1, 0, 0), mathutil.Point(0, 1, 0))
	m.AddColor(White)
	m.AddSegment(SegmentColor(0, 1, 0), SegmentColor(1, 2, 0), SegmentColor(2, 0, 0))
	require.NoError(t, m.Validate())
	assert.Empty(t, m.Empty())

	m.AddSegment(SegmentColor(2, 3, 0))
	assert.ErrorContains(t, m.Validate(), "vertex index 3")

	m.Segments[3] = SegmentColor(2, 0, 1)
	assert.ErrorContains(t, m.Validate(), "color index 1")
}

func TestModelEmpty(t *testing.T) {
	m := NewModel("nothing")
	assert.Equal(t, []string{"vertices", "line segments", "colors"}, m.Empty())
}

func TestModelCloneIsDeep(t *testing.T) {
	m := NewModel("seg")
	m.AddVertex(mathutil.Point(0, 0, 0), mathutil.Point(1, 1, 1))
	m.AddColor(Red, Blue)
	m.AddSegment(Segment(0, 1))

	c := m.Clone()
	c.Vertices[0][0] = 42
	c.Colors[0] = Green
	c.Segments[0].V[1] = 0

	assert.Equal(t, 0.0, m.Vertices[0][0])
	assert.Equal(t, Red, m.Colors[0])
	assert.Equal(t, 1, m.Segments[0].V[1])
}

func TestModelBounds(t *testing.T) {
	m := NewModel("b")
	_, _, ok := m.Bounds()
	assert.False(t, ok)

	m.AddVertex(mathutil.Point(-1, 2, 0), mathutil.Point(3, -4, 5))
	lo, hi, ok := m.Bounds()
	require.True(t, ok)
	assert.Equal(t, mathutil.Point(-1, -4, 0), lo)
	assert.Equal(t, mathutil.Point(3, 2, 5), hi)
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#ff0000")
	require.NoError(t, err)
	assert.Equal(t, Red, c)

	c, err = ParseHex("0f0")
	require.NoError(t, err)
	assert.Equal(t, Green, c)

	assert.Equal(t, "#808080", Color{128.0 / 255, 128.0 / 255, 128.0 / 255}.String())

	_, err = ParseHex("#12345")
	assert.Error(t, err)
	_, err = ParseHex("#zzzzzz")
	assert.Error(t, err)
}

func TestColorNRGBAClamps(t *testing.T) {
	n := Color{-0.5, 0.5, 2}.NRGBA()
	assert.Equal(t, uint8(0), n.R)
	assert.Equal(t, uint8(128), n.G)
	assert.Equal(t, uint8(255), n.B)
	assert.Equal(t, uint8(255), n.A)
}
