package batch

import (
	"encoding/json"
	"os"
)

// ManifestEntry represents one frame in the output manifest.
type ManifestEntry struct {
	Frame    int     `json:"frame"`
	Angle    float64 `json:"angle"`
	Image    string  `json:"image,omitempty"`
	Models   int     `json:"models"`
	Skipped  int     `json:"skipped_models,omitempty"`
	Segments int     `json:"segments"`
	Clipped  int     `json:"clipped"`
	Rejected int     `json:"rejected"`
	Error    string  `json:"error,omitempty"`
}

// Manifest is the content of manifest.json.
type Manifest struct {
	Scene     string          `json:"scene"`
	Width     int             `json:"width"`
	Height    int             `json:"height"`
	Animation string          `json:"animation,omitempty"`
	Frames    []ManifestEntry `json:"frames"`
}

// NewManifest describes a finished run.
func NewManifest(scenePath string, cfg Config, results []Result) Manifest {
	m := Manifest{
		Scene:  scenePath,
		Width:  cfg.Width,
		Height: cfg.Height,
		Frames: make([]ManifestEntry, len(results)),
	}
	for i, r := range results {
		m.Frames[i] = ManifestEntry{
			Frame:    r.Frame,
			Angle:    r.Angle,
			Image:    r.Image,
			Models:   r.Stats.Models,
			Skipped:  r.Stats.Skipped,
			Segments: r.Stats.Segments,
			Clipped:  r.Stats.Clipped,
			Rejected: r.Stats.Rejected,
			Error:    r.Error,
		}
	}
	return m
}

// WriteManifest writes the manifest as indented JSON.
func WriteManifest(path string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
