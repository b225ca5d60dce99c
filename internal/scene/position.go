package scene

import (
	"errors"
	"fmt"
	"strings"

	"wireframe-renderer/internal/mathutil"
)

var (
	// ErrAlreadyOwned is returned when a Position is attached a second time.
	ErrAlreadyOwned = errors.New("scene: position already has an owner")
	// ErrCycle is returned when attaching a Position below itself.
	ErrCycle = errors.New("scene: position would become its own ancestor")
)

// Position places an optional Model, and every nested Position, in its
// parent's coordinate frame via Matrix. Positions form a strict tree.
type Position struct {
	Model    *Model
	Matrix   mathutil.Mat4
	Visible  bool
	children []*Position
	owned    bool
	parent   *Position
}

// NewPosition returns a visible Position with the identity matrix.
// model may be nil.
func NewPosition(model *Model) *Position {
	return &Position{
		Model:   model,
		Matrix:  mathutil.Mat4Identity(),
		Visible: true,
	}
}

// AddChild attaches nested Positions. A child must not already be owned
// (by a Scene or another Position) and must not be an ancestor of p.
func (p *Position) AddChild(children ...*Position) error {
	for _, c := range children {
		if c == nil {
			continue
		}
		if c.owned {
			return ErrAlreadyOwned
		}
		for a := p; a != nil; a = a.Parent() {
			if a == c {
				return ErrCycle
			}
		}
		c.owned = true
		c.parent = p
		p.children = append(p.children, c)
	}
	return nil
}

// Children returns the nested Positions in insertion order.
func (p *Position) Children() []*Position {
	return p.children
}

// Parent returns the owning Position, or nil for a root.
func (p *Position) Parent() *Position {
	return p.parent
}

// Depth returns the number of Positions in the deepest path below p, including p.
func (p *Position) Depth() int {
	d := 0
	for _, c := range p.children {
		if cd := c.Depth(); cd > d {
			d = cd
		}
	}
	return d + 1
}

func (p *Position) String() string {
	var sb strings.Builder
	p.write(&sb, 0)
	return sb.String()
}

func (p *Position) write(sb *strings.Builder, depth int) {
	indent := strings.Repeat("  ", depth)
	name := "<no model>"
	if p.Model != nil {
		name = fmt.Sprintf("%s (%d verts, %d segs)", p.Model.Name, len(p.Model.Vertices), len(p.Model.Segments))
	}
	vis := ""
	if !p.Visible {
		vis = " [hidden]"
	}
	fmt.Fprintf(sb, "%sPosition %s%s\n", indent, name, vis)
	if !p.Matrix.IsIdentity() {
		for _, line := range strings.Split(strings.TrimRight(p.Matrix.String(), "\n"), "\n") {
			fmt.Fprintf(sb, "%s  %s\n", indent, line)
		}
	}
	for _, c := range p.children {
		c.write(sb, depth+1)
	}
}
