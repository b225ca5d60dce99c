package scenefile

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"wireframe-renderer/internal/mathutil"
	"wireframe-renderer/internal/models"
	"wireframe-renderer/internal/scene"
)

// Build constructs a fresh scene graph. orbitDegrees turns every root
// position about the document's orbit axis (the y axis through the origin
// when no orbit is given); pass 0 for the scene as written.
//
// Every call returns new Positions and Models, so frames may be built and
// rendered concurrently.
func (d *Document) Build(orbitDegrees float64) (*scene.Scene, error) {
	cam, err := d.Camera.build()
	if err != nil {
		return nil, err
	}
	s := scene.New(cam)

	var orbit mathutil.Mat4
	if orbitDegrees != 0 {
		if orbit, err = d.Orbit.matrix(orbitDegrees); err != nil {
			return nil, err
		}
	}

	for i := range d.Positions {
		p, err := d.buildPosition(&d.Positions[i], fmt.Sprintf("positions[%d]", i))
		if err != nil {
			return nil, err
		}
		if orbitDegrees != 0 {
			spin := scene.NewPosition(nil)
			spin.Matrix = orbit
			if err := spin.AddChild(p); err != nil {
				return nil, err
			}
			p = spin
		}
		if err := s.AddPosition(p); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (c Camera) build() (*scene.Camera, error) {
	near := c.Near
	if near == 0 {
		near = 1
	}
	cam := scene.NewCamera()
	ortho := false
	switch strings.ToLower(c.Projection) {
	case "", "perspective":
	case "ortho", "orthographic":
		cam, ortho = scene.NewOrthoCamera(), true
	default:
		return nil, fmt.Errorf("scenefile: camera: unknown projection %q", c.Projection)
	}

	if c.FOVY != 0 {
		aspect := c.Aspect
		if aspect == 0 {
			aspect = 1
		}
		if ortho {
			cam.ProjOrthoFOV(c.FOVY, aspect, near)
		} else {
			cam.ProjPerspectiveFOV(c.FOVY, aspect, near)
		}
	} else {
		l, r := orDefault(c.Left, -1), orDefault(c.Right, 1)
		b, t := orDefault(c.Bottom, -1), orDefault(c.Top, 1)
		if ortho {
			cam.ProjOrtho(l, r, b, t)
			cam.Near = near
		} else {
			cam.ProjPerspective(l, r, b, t, near)
		}
	}
	if err := cam.Validate(); err != nil {
		return nil, fmt.Errorf("scenefile: camera: %w", err)
	}
	return cam, nil
}

func orDefault(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

// matrix is T(pivot) × R(angle, axis) × T(-pivot).
func (o *Orbit) matrix(angle float64) (mathutil.Mat4, error) {
	axis, pivot := []float64{0, 1, 0}, []float64{0, 0, 0}
	if o != nil {
		if o.Axis != nil {
			axis = o.Axis
		}
		if o.Pivot != nil {
			pivot = o.Pivot
		}
	}
	a, err := vec3("orbit.axis", axis)
	if err != nil {
		return mathutil.Mat4{}, err
	}
	p, err := vec3("orbit.pivot", pivot)
	if err != nil {
		return mathutil.Mat4{}, err
	}
	m := mathutil.Translate(p[0], p[1], p[2])
	m = m.Mul(mathutil.Rotate(angle, a[0], a[1], a[2]))
	return m.Mul(mathutil.Translate(-p[0], -p[1], -p[2])), nil
}

func (d *Document) buildPosition(dp *Position, where string) (*scene.Position, error) {
	mat, err := transform(dp.Transform, where)
	if err != nil {
		return nil, err
	}

	var model *scene.Model
	if dp.Model != nil {
		if model, err = d.buildModel(dp.Model, where+".model"); err != nil {
			return nil, err
		}
		if dp.Name != "" {
			model.Name = dp.Name
		}
	}

	p := scene.NewPosition(model)
	p.Matrix = mat
	p.Visible = !dp.Hidden
	for i := range dp.Children {
		c, err := d.buildPosition(&dp.Children[i], fmt.Sprintf("%s.children[%d]", where, i))
		if err != nil {
			return nil, err
		}
		if err := p.AddChild(c); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (d *Document) buildModel(dm *Model, where string) (*scene.Model, error) {
	var (
		m   *scene.Model
		err error
	)
	switch {
	case dm.Shape != "" && dm.File != "":
		return nil, fmt.Errorf("scenefile: %s: give shape or file, not both", where)
	case dm.Shape != "":
		m, err = models.ByName(dm.Shape, dm.Params)
	case dm.File != "":
		m, err = d.modelCache().Get(d.resolve(dm.File))
	default:
		return nil, fmt.Errorf("scenefile: %s: needs a shape or a file", where)
	}
	if err != nil {
		return nil, fmt.Errorf("scenefile: %s: %w", where, err)
	}

	if dm.Colors != nil {
		if err := dm.Colors.apply(m); err != nil {
			return nil, fmt.Errorf("scenefile: %s.colors: %w", where, err)
		}
	}
	m.Visible = !dm.Hidden
	m.Debug = dm.Debug
	return m, nil
}

func (c *Colors) apply(m *scene.Model) error {
	set := 0
	for _, on := range []bool{c.Color != "", c.Random != "", c.Gradient != nil} {
		if on {
			set++
		}
	}
	if set > 1 {
		return fmt.Errorf("color, random and gradient are exclusive")
	}

	switch {
	case c.Color != "":
		col, err := scene.ParseHex(c.Color)
		if err != nil {
			return err
		}
		models.SetColor(m, col)

	case c.Gradient != nil:
		if len(c.Gradient) != 2 {
			return fmt.Errorf("gradient needs 2 colors, got %d", len(c.Gradient))
		}
		c0, err := scene.ParseHex(c.Gradient[0])
		if err != nil {
			return err
		}
		c1, err := scene.ParseHex(c.Gradient[1])
		if err != nil {
			return err
		}
		models.SetGradient(m, c0, c1)

	case c.Random != "":
		// A fixed seed keeps the colors stable from frame to frame.
		rng := rand.New(rand.NewPCG(c.Seed, 0x5eed))
		switch strings.ToLower(c.Random) {
		case "model":
			models.SetRandomColor(m, rng)
		case "palette":
			models.SetRandomColors(m, rng)
		case "vertex":
			models.SetRandomVertexColors(m, rng)
		case "segment":
			models.SetRandomSegmentColors(m, rng)
		case "rainbow":
			models.SetRainbowSegmentColors(m, rng)
		default:
			return fmt.Errorf("unknown random mode %q", c.Random)
		}
	}
	return nil
}

// transform composes the steps so that the first listed is outermost:
// steps[0] × steps[1] × … × steps[n-1].
func transform(steps []Step, where string) (mathutil.Mat4, error) {
	m := mathutil.Mat4Identity()
	for i, st := range steps {
		at := fmt.Sprintf("%s.transform[%d]", where, i)
		n := 0
		var step mathutil.Mat4
		if st.Translate != nil {
			n++
			v, err := vec3(at+".translate", st.Translate)
			if err != nil {
				return m, err
			}
			step = mathutil.Translate(v[0], v[1], v[2])
		}
		if st.Scale != nil {
			n++
			switch len(st.Scale) {
			case 1:
				step = mathutil.ScaleUniform(st.Scale[0])
			case 3:
				step = mathutil.Scale(st.Scale[0], st.Scale[1], st.Scale[2])
			default:
				return m, fmt.Errorf("scenefile: %s.scale: want 1 or 3 values, got %d", at, len(st.Scale))
			}
		}
		if st.Rotate != nil {
			n++
			a, err := vec3(at+".rotate.axis", st.Rotate.Axis)
			if err != nil {
				return m, err
			}
			if a == [3]float64{} {
				return m, fmt.Errorf("scenefile: %s.rotate.axis: zero axis", at)
			}
			step = mathutil.Rotate(st.Rotate.Angle, a[0], a[1], a[2])
		}
		if st.RotateX != nil {
			n++
			step = mathutil.RotateX(*st.RotateX)
		}
		if st.RotateY != nil {
			n++
			step = mathutil.RotateY(*st.RotateY)
		}
		if st.RotateZ != nil {
			n++
			step = mathutil.RotateZ(*st.RotateZ)
		}
		if n != 1 {
			return m, fmt.Errorf("scenefile: %s: want exactly one of translate, scale, rotate, rotate_x, rotate_y, rotate_z", at)
		}
		m = m.Mul(step)
	}
	return m, nil
}

func vec3(where string, v []float64) ([3]float64, error) {
	if len(v) != 3 {
		return [3]float64{}, fmt.Errorf("scenefile: %s: want 3 values, got %d", where, len(v))
	}
	return [3]float64{v[0], v[1], v[2]}, nil
}
