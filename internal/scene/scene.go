package scene

import (
	"fmt"
	"strings"
)

// Scene is a forest of root Positions viewed through one Camera.
type Scene struct {
	Camera    *Camera
	positions []*Position
}

// New returns an empty Scene. A nil camera gets the default perspective Camera.
func New(cam *Camera) *Scene {
	if cam == nil {
		cam = NewCamera()
	}
	return &Scene{Camera: cam}
}

// AddPosition appends root Positions. Roots follow the same ownership
// rule as nested Positions.
func (s *Scene) AddPosition(ps ...*Position) error {
	for _, p := range ps {
		if p == nil {
			continue
		}
		if p.owned {
			return ErrAlreadyOwned
		}
		p.owned = true
		s.positions = append(s.positions, p)
	}
	return nil
}

// Positions returns the root Positions in insertion order.
func (s *Scene) Positions() []*Position {
	return s.positions
}

// Walk visits every Position in pre-order, depth-first, regardless of visibility.
func (s *Scene) Walk(fn func(p *Position, depth int)) {
	var visit func(p *Position, depth int)
	visit = func(p *Position, depth int) {
		fn(p, depth)
		for _, c := range p.children {
			visit(c, depth+1)
		}
	}
	for _, p := range s.positions {
		visit(p, 0)
	}
}

func (s *Scene) String() string {
	var sb strings.Builder
	sb.WriteString(s.Camera.String())
	fmt.Fprintf(&sb, "Scene has %d root positions\n", len(s.positions))
	for _, p := range s.positions {
		sb.WriteString(p.String())
	}
	return sb.String()
}
