package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config holds all configurable paths and render settings.
type Config struct {
	// Paths
	Scene     string `json:"scene" toml:"scene"`
	OutputDir string `json:"output_dir" toml:"output_dir"`
	Format    string `json:"format" toml:"format"`     // webp, png or tga
	Backdrop  string `json:"backdrop" toml:"backdrop"` // image drawn behind every frame

	// Render settings
	Width       int     `json:"width" toml:"width"`
	Height      int     `json:"height" toml:"height"`
	Supersample int     `json:"supersample" toml:"supersample"`
	Antialias   *bool   `json:"antialias" toml:"antialias"`
	Gamma       *bool   `json:"gamma" toml:"gamma"`
	Background  string  `json:"background" toml:"background"` // overrides the scene's
	Workers     int     `json:"workers" toml:"workers"`
	Frames      int     `json:"frames" toml:"frames"` // orbit frames over one full turn
	FrameDelay  int     `json:"frame_delay_ms" toml:"frame_delay_ms"`
	Animate     bool    `json:"animate" toml:"animate"`   // also write one animated WebP
	Annotate    bool    `json:"annotate" toml:"annotate"` // stamp frame number and stats
	StartAngle  float64 `json:"start_angle" toml:"start_angle"`
	Viewport    []int   `json:"viewport" toml:"viewport"` // x y w h in output pixels; empty: whole frame

	// Logging
	LogLevel  string `json:"log_level" toml:"log_level"`
	LogFormat string `json:"log_format" toml:"log_format"`
	Debug     bool   `json:"debug" toml:"debug"` // trace every model through the pipeline
}

// Load reads a JSON or TOML config file, chosen by extension.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&cfg)
	case ".toml":
		err = toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(&cfg)
	default:
		return Config{}, fmt.Errorf("config: %s: unknown extension %q", path, ext)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	// Relative paths in a config file are relative to the file.
	base := filepath.Dir(path)
	if cfg.Scene != "" && !filepath.IsAbs(cfg.Scene) {
		cfg.Scene = filepath.Join(base, cfg.Scene)
	}
	if cfg.OutputDir != "" && !filepath.IsAbs(cfg.OutputDir) {
		cfg.OutputDir = filepath.Join(base, cfg.OutputDir)
	}
	if cfg.Backdrop != "" && !filepath.IsAbs(cfg.Backdrop) {
		cfg.Backdrop = filepath.Join(base, cfg.Backdrop)
	}
	return cfg, nil
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.Scene != "" {
		c.Scene = flags.Scene
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Size > 0 {
		c.Width, c.Height = flags.Size, flags.Size
	}
	if flags.Supersample > 0 {
		c.Supersample = flags.Supersample
	}
	if flags.Antialias != nil {
		c.Antialias = flags.Antialias
	}
	if flags.Gamma != nil {
		c.Gamma = flags.Gamma
	}
	if flags.Background != "" {
		c.Background = flags.Background
	}
	if flags.Backdrop != "" {
		c.Backdrop = flags.Backdrop
	}
	if flags.Viewport != nil {
		c.Viewport = flags.Viewport
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Frames > 0 {
		c.Frames = flags.Frames
	}
	if flags.Animate {
		c.Animate = true
	}
	if flags.Annotate {
		c.Annotate = true
	}
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}
	if flags.Debug {
		c.Debug = true
	}

	// Defaults for render settings
	if c.OutputDir == "" {
		c.OutputDir = "renders"
	}
	c.Format = strings.TrimPrefix(strings.ToLower(c.Format), ".")
	if c.Format == "" {
		c.Format = "webp"
	}
	if c.Width <= 0 && c.Height <= 0 {
		c.Width, c.Height = 256, 256
	} else if c.Width <= 0 {
		c.Width = c.Height
	} else if c.Height <= 0 {
		c.Height = c.Width
	}
	if c.Supersample <= 0 {
		c.Supersample = 1
	}
	if c.Antialias == nil {
		c.Antialias = Bool(false)
	}
	if c.Gamma == nil {
		c.Gamma = Bool(true)
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Frames <= 0 {
		c.Frames = 1
	}
	if c.FrameDelay <= 0 {
		c.FrameDelay = 80
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "text"
	}
}

// Validate reports settings Resolve cannot repair.
func (c *Config) Validate() error {
	if c.Scene == "" {
		return fmt.Errorf("config: no scene file given")
	}
	switch c.Format {
	case "webp", "png", "tga":
	default:
		return fmt.Errorf("config: unknown output format %q", c.Format)
	}
	if c.Animate && c.Format != "webp" {
		return fmt.Errorf("config: animation needs webp output, have %s", c.Format)
	}
	if len(c.Viewport) > 0 {
		r := c.ViewportRect()
		if len(c.Viewport) != 4 || r.Empty() || !r.In(image.Rect(0, 0, c.Width, c.Height)) {
			return fmt.Errorf("config: viewport %v must be x y w h inside %dx%d", c.Viewport, c.Width, c.Height)
		}
	}
	return nil
}

// ViewportRect returns the viewport as a rectangle, or the empty rectangle
// when none is set.
func (c *Config) ViewportRect() image.Rectangle {
	if len(c.Viewport) != 4 {
		return image.Rectangle{}
	}
	x, y, w, h := c.Viewport[0], c.Viewport[1], c.Viewport[2], c.Viewport[3]
	return image.Rect(x, y, x+w, y+h)
}

// Delay returns the animation frame delay.
func (c *Config) Delay() time.Duration {
	return time.Duration(c.FrameDelay) * time.Millisecond
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Scene       string
	OutputDir   string
	Format      string
	Size        int
	Supersample int
	Antialias   *bool // nil when the flag was not given
	Gamma       *bool
	Background  string
	Backdrop    string
	Viewport    []int
	Workers     int
	Frames      int
	Animate     bool
	Annotate    bool
	LogLevel    string
	Debug       bool
}

// Bool returns a pointer to b.
func Bool(b bool) *bool { return &b }
