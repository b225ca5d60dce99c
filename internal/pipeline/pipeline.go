// Package pipeline renders a scene graph of wireframe models into a viewport.
//
// Each visible model is copied into a scratch buffer and pushed through
// model-to-view, view-to-camera and clip-space conversion. Every line
// segment is then clipped in homogeneous coordinates, projected and handed
// to the rasterizer. The scene itself is never modified.
package pipeline

import (
	"fmt"
	"log/slog"
	"strings"

	"wireframe-renderer/internal/clip"
	"wireframe-renderer/internal/logging"
	"wireframe-renderer/internal/mathutil"
	"wireframe-renderer/internal/raster"
	"wireframe-renderer/internal/scene"
)

// Options control one Renderer. The zero value renders plain aliased lines
// with no gamma correction and no logging.
type Options struct {
	Antialias bool
	Gamma     bool
	// Debug traces every model through every stage at slog.LevelDebug.
	// Models with Debug set are traced regardless.
	Debug  bool
	Logger *slog.Logger
}

// Stats counts what one Render call did.
type Stats struct {
	Models   int // models drawn
	Skipped  int // models skipped as empty or malformed
	Segments int // segments considered
	Accepted int // segments fully inside the view volume
	Clipped  int // segments shortened to the view volume
	Rejected int // segments outside the view volume
}

// Add accumulates o into s.
func (s *Stats) Add(o Stats) {
	s.Models += o.Models
	s.Skipped += o.Skipped
	s.Segments += o.Segments
	s.Accepted += o.Accepted
	s.Clipped += o.Clipped
	s.Rejected += o.Rejected
}

func (s Stats) String() string {
	return fmt.Sprintf("models=%d skipped=%d segments=%d accepted=%d clipped=%d rejected=%d",
		s.Models, s.Skipped, s.Segments, s.Accepted, s.Clipped, s.Rejected)
}

// Renderer draws scenes. It keeps a vertex scratch buffer between calls,
// sized to the largest model seen so far, so it must not be used by more
// than one goroutine at a time.
type Renderer struct {
	opts    Options
	log     *slog.Logger
	scratch []mathutil.Vec4
	stats   Stats
}

// New returns a Renderer for opts.
func New(opts Options) *Renderer {
	return &Renderer{opts: opts, log: logging.OrNop(opts.Logger)}
}

// Render is a convenience wrapper for New(opts).Render(s, vp).
func Render(s *scene.Scene, vp raster.Viewport, opts Options) Stats {
	return New(opts).Render(s, vp)
}

// Render draws every visible model of s into vp. Problems with a single
// model are logged and that model is skipped; an invalid camera draws
// nothing. The viewport is not cleared first.
func (r *Renderer) Render(s *scene.Scene, vp raster.Viewport) Stats {
	r.stats = Stats{}
	if s == nil || vp == nil {
		return r.stats
	}
	cam := s.Camera
	if cam == nil {
		r.log.Warn("pipeline: scene has no camera")
		return r.stats
	}
	if err := cam.Validate(); err != nil {
		r.log.Warn("pipeline: not rendering", "error", err)
		return r.stats
	}

	minW := clip.NoNear
	if cam.Perspective {
		minW = cam.Near
	}

	Traverse(s, func(p *scene.Position, ctm mathutil.Mat4) {
		if p.Model == nil || !p.Model.Visible {
			return
		}
		r.renderModel(p.Model, ctm, cam, minW, vp)
	})

	if r.opts.Debug {
		r.log.Debug("pipeline: frame done", "stats", r.stats.String())
	}
	return r.stats
}

func (r *Renderer) renderModel(m *scene.Model, ctm mathutil.Mat4, cam *scene.Camera, minW float64, vp raster.Viewport) {
	if missing := m.Empty(); len(missing) > 0 {
		r.log.Warn("pipeline: skipping model", "model", m.Name, "empty", strings.Join(missing, ", "))
		r.stats.Skipped++
		return
	}
	if err := m.Validate(); err != nil {
		r.log.Warn("pipeline: skipping model", "model", m.Name, "error", err)
		r.stats.Skipped++
		return
	}

	trace := r.opts.Debug || m.Debug
	vs := r.vertices(m)

	ModelToView(vs, ctm)
	if trace {
		r.traceVertices(m.Name, "model to view", vs)
	}
	ViewToCamera(vs, cam)
	ToClip(vs, cam.Perspective)
	if trace {
		r.traceVertices(m.Name, "view to clip", vs)
	}

	lineOpts := raster.LineOptions{Antialias: r.opts.Antialias, Gamma: r.opts.Gamma}
	if trace {
		lineOpts.Trace = r.log
	}

	for i, ls := range m.Segments {
		r.stats.Segments++
		a := clip.Endpoint{P: vs[ls.V[0]], C: m.Colors[ls.C[0]]}
		b := clip.Endpoint{P: vs[ls.V[1]], C: m.Colors[ls.C[1]]}

		a, b, res := clip.Line(a, b, minW)
		if trace {
			r.log.Debug("pipeline: clip", "model", m.Name, "segment", i, "result", res.String())
		}
		switch res {
		case clip.Rejected:
			r.stats.Rejected++
			continue
		case clip.Clipped:
			r.stats.Clipped++
		default:
			r.stats.Accepted++
		}

		p0, ok0 := Project(a.P)
		p1, ok1 := Project(b.P)
		if !ok0 || !ok1 {
			// Only reachable for non-finite input; clipping keeps w >= near.
			r.log.Warn("pipeline: segment not projectable", "model", m.Name, "segment", i)
			continue
		}
		raster.DrawLine(vp, p0, p1, a.C, b.C, lineOpts)
	}
	r.stats.Models++
}

// vertices copies m's vertices into the scratch buffer, growing it when m
// is the largest model seen so far.
func (r *Renderer) vertices(m *scene.Model) []mathutil.Vec4 {
	n := len(m.Vertices)
	if cap(r.scratch) < n {
		r.scratch = make([]mathutil.Vec4, n)
	}
	vs := r.scratch[:n]
	copy(vs, m.Vertices)
	return vs
}

func (r *Renderer) traceVertices(model, stage string, vs []mathutil.Vec4) {
	for i, v := range vs {
		r.log.Debug("pipeline: "+stage, "model", model, "vertex", i, "v", v.String())
	}
}
