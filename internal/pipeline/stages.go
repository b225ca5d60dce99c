package pipeline

import (
	"wireframe-renderer/internal/mathutil"
	"wireframe-renderer/internal/scene"
)

// ModelToView moves vertices from model coordinates into the camera's
// view coordinates by the composed transform ctm, in place.
func ModelToView(vs []mathutil.Vec4, ctm mathutil.Mat4) {
	for i := range vs {
		vs[i] = ctm.MulVec4(vs[i])
	}
}

// ViewToCamera applies the camera's normalization matrix in place.
func ViewToCamera(vs []mathutil.Vec4, cam *scene.Camera) {
	for i := range vs {
		vs[i] = cam.Normalize.MulVec4(vs[i])
	}
}

// ToClip turns normalized vertices into homogeneous clip coordinates.
// For a perspective camera the divisor w becomes the depth -z; an
// orthographic vertex keeps w = 1 and is already in the canonical box.
func ToClip(vs []mathutil.Vec4, perspective bool) {
	if !perspective {
		return
	}
	for i := range vs {
		vs[i][3] = -vs[i][2]
	}
}

// Project divides a clip-space point by w, returning its normalized
// device coordinates with w = 1. ok is false when w is not positive or
// the result is not finite; such a point cannot be projected.
func Project(p mathutil.Vec4) (ndc mathutil.Vec4, ok bool) {
	w := p[3]
	if !(w > 0) {
		return ndc, false
	}
	if w == 1 {
		return p, p.IsFinite()
	}
	ndc = mathutil.Vec4{p[0] / w, p[1] / w, p[2] / w, 1}
	return ndc, ndc.IsFinite()
}

// Traverse walks the visible part of the scene graph depth-first,
// calling fn with each visible Position and its composed transform
// ctm = parent ctm × Position.Matrix. A hidden Position hides its subtree.
func Traverse(s *scene.Scene, fn func(p *scene.Position, ctm mathutil.Mat4)) {
	var visit func(p *scene.Position, ctm mathutil.Mat4)
	visit = func(p *scene.Position, ctm mathutil.Mat4) {
		if !p.Visible {
			return
		}
		ctm = ctm.Mul(p.Matrix)
		fn(p, ctm)
		for _, c := range p.Children() {
			visit(c, ctm)
		}
	}
	for _, p := range s.Positions() {
		visit(p, mathutil.Mat4Identity())
	}
}
