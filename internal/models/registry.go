package models

import (
	"fmt"
	"sort"
	"strings"

	"wireframe-renderer/internal/scene"
)

type generator struct {
	usage    string
	defaults []float64
	build    func(p []float64) *scene.Model
}

var generators = map[string]generator{
	"axes": {"axes [x y z]", []float64{1, 1, 1}, func(p []float64) *scene.Model {
		return Axes3D(p[0], p[1], p[2])
	}},
	"cube":        {"cube", nil, func([]float64) *scene.Model { return Cube() }},
	"tetrahedron": {"tetrahedron", nil, func([]float64) *scene.Model { return Tetrahedron() }},
	"octahedron":  {"octahedron", nil, func([]float64) *scene.Model { return Octahedron() }},
	"icosahedron": {"icosahedron", nil, func([]float64) *scene.Model { return Icosahedron() }},
	"axes2d": {"axes2d [xmin xmax ymin ymax xmarks ymarks z]", []float64{-1, 1, -1, 1, 5, 5, 0}, func(p []float64) *scene.Model {
		return Axes2D(p[0], p[1], p[2], p[3], int(p[4]), int(p[5]), p[6])
	}},
	"panel": {"panel [xmin xmax zmin zmax y]", []float64{-1, 1, -1, 1, 0}, func(p []float64) *scene.Model {
		return PanelXZ(int(p[0]), int(p[1]), int(p[2]), int(p[3]), p[4])
	}},
	"ringsector": {"ringsector [outer inner from to arcs spokes]", []float64{1, 0.33, 0, 180, 5, 7}, func(p []float64) *scene.Model {
		return RingSector(p[0], p[1], p[2], p[3], int(p[4]), int(p[5]))
	}},
	"pyramid": {"pyramid [side height]", []float64{2, 1}, func(p []float64) *scene.Model {
		return Pyramid(p[0], p[1])
	}},
	"circle": {"circle [radius segments]", []float64{1, 16}, func(p []float64) *scene.Model {
		return Circle(p[0], int(p[1]))
	}},
	"sphere": {"sphere [radius latitudes longitudes]", []float64{1, 7, 12}, func(p []float64) *scene.Model {
		return Sphere(p[0], int(p[1]), int(p[2]))
	}},
	"grid": {"grid [radius xlines ylines]", []float64{1, 4, 4}, func(p []float64) *scene.Model {
		return SquareGrid(p[0], int(p[1]), int(p[2]))
	}},
	"frustum": {"frustum [left right bottom top near far]", []float64{-0.25, 0.25, -0.25, 0.25, 0.25, 1}, func(p []float64) *scene.Model {
		return ViewFrustum(p[0], p[1], p[2], p[3], p[4], p[5])
	}},
	"frustumfov": {"frustumfov [fovy aspect near far]", []float64{90, 1, 0.25, 1}, func(p []float64) *scene.Model {
		return ViewFrustumFOV(p[0], p[1], p[2], p[3])
	}},
}

// Names lists the generator names ByName accepts.
func Names() []string {
	names := make([]string, 0, len(generators))
	for n := range generators {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Usage returns a one-line parameter summary for name.
func Usage(name string) string {
	return generators[strings.ToLower(name)].usage
}

// ByName builds the named model. Missing trailing parameters take their
// defaults; extra ones are an error.
func ByName(name string, params []float64) (*scene.Model, error) {
	g, ok := generators[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("models: unknown shape %q (have %s)", name, strings.Join(Names(), ", "))
	}
	if len(params) > len(g.defaults) {
		return nil, fmt.Errorf("models: too many parameters for %s: usage %q", name, g.usage)
	}
	p := append([]float64(nil), g.defaults...)
	copy(p, params)
	return g.build(p), nil
}
