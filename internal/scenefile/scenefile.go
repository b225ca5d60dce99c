// Package scenefile reads declarative scene descriptions in JSON or YAML
// and builds scene graphs from them.
//
// A document names a camera, a background color, an optional orbit used
// for animations, and a tree of positions. Each position may draw a
// procedural shape or a model file and carries a list of transform steps.
package scenefile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"wireframe-renderer/internal/modelfile"
	"wireframe-renderer/internal/scene"
)

// Document is the top level of a scene file.
type Document struct {
	Camera     Camera     `json:"camera" yaml:"camera"`
	Background string     `json:"background,omitempty" yaml:"background,omitempty"`
	Orbit      *Orbit     `json:"orbit,omitempty" yaml:"orbit,omitempty"`
	ModelDirs  []string   `json:"model_dirs,omitempty" yaml:"model_dirs,omitempty"`
	Positions  []Position `json:"positions" yaml:"positions"`

	// Dir is the directory relative file references are resolved against.
	Dir string `json:"-" yaml:"-"`

	once   sync.Once
	index  *modelfile.Index
	models *modelfile.Cache
}

// Camera describes the view volume. Either the four bounds or a vertical
// field of view with an aspect ratio may be given; bounds default to
// [-1,1]² and near to 1.
type Camera struct {
	Projection string   `json:"projection,omitempty" yaml:"projection,omitempty"` // perspective (default) or orthographic
	Left       *float64 `json:"left,omitempty" yaml:"left,omitempty"`
	Right      *float64 `json:"right,omitempty" yaml:"right,omitempty"`
	Bottom     *float64 `json:"bottom,omitempty" yaml:"bottom,omitempty"`
	Top        *float64 `json:"top,omitempty" yaml:"top,omitempty"`
	Near       float64  `json:"near,omitempty" yaml:"near,omitempty"`
	FOVY       float64  `json:"fovy,omitempty" yaml:"fovy,omitempty"`
	Aspect     float64  `json:"aspect,omitempty" yaml:"aspect,omitempty"`
}

// Orbit spins every root position about Axis through Pivot.
type Orbit struct {
	Axis  []float64 `json:"axis,omitempty" yaml:"axis,omitempty"`
	Pivot []float64 `json:"pivot,omitempty" yaml:"pivot,omitempty"`
}

// Position is one node of the position tree.
type Position struct {
	Name      string     `json:"name,omitempty" yaml:"name,omitempty"`
	Model     *Model     `json:"model,omitempty" yaml:"model,omitempty"`
	Transform []Step     `json:"transform,omitempty" yaml:"transform,omitempty"`
	Hidden    bool       `json:"hidden,omitempty" yaml:"hidden,omitempty"`
	Children  []Position `json:"children,omitempty" yaml:"children,omitempty"`
}

// Model selects a procedural shape or a model file, and how to color it.
type Model struct {
	Shape  string    `json:"shape,omitempty" yaml:"shape,omitempty"`
	Params []float64 `json:"params,omitempty" yaml:"params,omitempty"`
	File   string    `json:"file,omitempty" yaml:"file,omitempty"`
	Colors *Colors   `json:"colors,omitempty" yaml:"colors,omitempty"`
	Hidden bool      `json:"hidden,omitempty" yaml:"hidden,omitempty"`
	Debug  bool      `json:"debug,omitempty" yaml:"debug,omitempty"`
}

// Colors recolors a model. At most one of Color, Random and Gradient may be set.
type Colors struct {
	Color    string   `json:"color,omitempty" yaml:"color,omitempty"`
	Random   string   `json:"random,omitempty" yaml:"random,omitempty"` // model, palette, vertex, segment or rainbow
	Seed     uint64   `json:"seed,omitempty" yaml:"seed,omitempty"`
	Gradient []string `json:"gradient,omitempty" yaml:"gradient,omitempty"` // bottom and top colors
}

// Step is one transform; exactly one field must be set. The RotateX/Y/Z
// shorthands are angles in degrees about the coordinate axes.
type Step struct {
	Translate []float64 `json:"translate,omitempty" yaml:"translate,omitempty"`
	Scale     []float64 `json:"scale,omitempty" yaml:"scale,omitempty"` // one uniform factor or x y z
	Rotate    *Rotation `json:"rotate,omitempty" yaml:"rotate,omitempty"`
	RotateX   *float64  `json:"rotate_x,omitempty" yaml:"rotate_x,omitempty"`
	RotateY   *float64  `json:"rotate_y,omitempty" yaml:"rotate_y,omitempty"`
	RotateZ   *float64  `json:"rotate_z,omitempty" yaml:"rotate_z,omitempty"`
}

// Rotation is an angle in degrees about an axis through the origin.
type Rotation struct {
	Angle float64   `json:"angle" yaml:"angle"`
	Axis  []float64 `json:"axis" yaml:"axis"`
}

// Load reads a scene file. The format follows the extension: .json, or
// .yaml / .yml.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenefile: read %s: %w", path, err)
	}
	doc, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("scenefile: parse %s: %w", path, err)
	}
	doc.Dir = filepath.Dir(path)
	return doc, nil
}

// Parse decodes a document. format is "json", "yaml" or "yml", with or
// without a leading dot. Unknown fields are an error.
func Parse(data []byte, format string) (*Document, error) {
	var doc Document
	switch strings.TrimPrefix(strings.ToLower(format), ".") {
	case "json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, err
		}
	case "yaml", "yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown scene format %q", format)
	}
	return &doc, nil
}

// Encode writes the document as YAML.
func (d *Document) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return err
	}
	return enc.Close()
}

// BackgroundColor parses Background, defaulting to black.
func (d *Document) BackgroundColor() (scene.Color, error) {
	if d.Background == "" {
		return scene.Black, nil
	}
	c, err := scene.ParseHex(d.Background)
	if err != nil {
		return c, fmt.Errorf("scenefile: background: %w", err)
	}
	return c, nil
}

// Files returns every model file the document refers to, resolved, plus
// the searched model directories. Used to watch a scene for changes.
func (d *Document) Files() []string {
	var out []string
	var walk func(ps []Position)
	walk = func(ps []Position) {
		for _, p := range ps {
			if p.Model != nil && p.Model.File != "" {
				if path, ok := d.modelIndex().ResolvePath(d.resolve(p.Model.File)); ok {
					out = append(out, path)
				}
			}
			walk(p.Children)
		}
	}
	walk(d.Positions)
	return append(out, d.modelDirs()...)
}

// modelCache returns the document's model file cache, indexing the model
// directories on first use.
func (d *Document) modelCache() *modelfile.Cache {
	d.once.Do(func() {
		d.index = modelfile.BuildIndex(d.modelDirs()...)
		d.models = modelfile.NewCache(d.index)
	})
	return d.models
}

func (d *Document) modelIndex() *modelfile.Index {
	d.modelCache()
	return d.index
}

func (d *Document) resolve(ref string) string {
	if filepath.IsAbs(ref) || d.Dir == "" {
		return ref
	}
	if joined := filepath.Join(d.Dir, ref); fileExists(joined) {
		return joined
	}
	return ref
}

func (d *Document) modelDirs() []string {
	dirs := make([]string, 0, len(d.ModelDirs)+1)
	if d.Dir != "" {
		dirs = append(dirs, d.Dir)
	}
	for _, m := range d.ModelDirs {
		if !filepath.IsAbs(m) && d.Dir != "" {
			m = filepath.Join(d.Dir, m)
		}
		dirs = append(dirs, m)
	}
	return dirs
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
