// Package modelfile loads wireframe models from GRS and OBJ files.
package modelfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"wireframe-renderer/internal/models"
	"wireframe-renderer/internal/scene"
)

// Extensions lists the file types Load understands.
var Extensions = []string{".grs", ".obj"}

// Supported reports whether Load can read path, judging by its extension.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Load parses a model file, picking the format by extension. The model is
// named after the file and colored white.
func Load(path string) (*scene.Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("modelfile: open %s: %w", path, err)
	}
	defer f.Close()

	var m *scene.Model
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".grs":
		m, _, err = ParseGRS(f)
	case ".obj":
		m, err = ParseOBJ(f)
	default:
		return nil, fmt.Errorf("modelfile: unknown extension %q: %s", ext, path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, path)
	}

	m.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	models.SetColor(m, scene.White)
	return m, nil
}
